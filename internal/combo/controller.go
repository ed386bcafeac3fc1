package combo

import (
	"log"
	"sync"
	"time"

	"combobox/internal/domain"
	"combobox/internal/eventbus"
	"combobox/internal/sched"
)

const (
	// blurCloseDelay is the window a pointer interaction with the menu
	// has to cancel the close a blur armed. Pressing into the menu
	// blurs the input too; without the delay every item click would
	// close the menu before its own selection logic ran.
	blurCloseDelay = 200 * time.Millisecond

	// menuPressCancelDelay is near-zero so the cancellation runs after
	// the blur handler, whichever order the host delivered the events
	menuPressCancelDelay = time.Millisecond
)

// state is owned exclusively by the controller and mutated only
// through its own handlers
type state struct {
	isOpen           bool
	highlightedIndex int
	inputValue       string
	selectedItem     *domain.Item
}

// Controller owns the interaction state machine behind a searchable,
// keyboard-navigable selection widget. It renders nothing itself: the
// host binds the handlers it produces to an input, a list of items
// and a menu container, and re-renders through View after every
// transition.
type Controller struct {
	mu  sync.Mutex
	cfg Config

	state state
	reg   *registry

	blurTimer   sched.Handle // pending blur close
	cancelTimer sched.Handle // menu-press cancellation of the blur close
	settleTimer sched.Handle // outside-click settle tick

	unsubOutside func()
	torn         bool
}

// New creates a controller from configuration seeds and subscribes to
// the popover provider's outside-click notifications
func New(cfg Config) *Controller {
	if cfg.Bus == nil {
		cfg.Bus = &eventbus.NullBus{}
	}
	if cfg.Scheduler == nil {
		cfg.Scheduler = sched.NewTimer()
	}

	c := &Controller{
		cfg: cfg,
		reg: newRegistry(),
		state: state{
			highlightedIndex: cfg.DefaultHighlightedIndex,
			inputValue:       cfg.DefaultInputValue,
		},
	}
	if cfg.Provider != nil {
		c.unsubOutside = cfg.Provider.OnOutsideClick(func(x, y int) {
			c.handleOutsideClick()
		})
	}
	return c
}

// Snapshot returns the current externally visible state
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Controller) snapshotLocked() Snapshot {
	return Snapshot{
		InputValue:       c.state.inputValue,
		SelectedItem:     c.state.selectedItem,
		HighlightedIndex: c.state.highlightedIndex,
		IsOpen:           c.isOpenLocked(),
	}
}

// The externally reported flag is the controlled override when one is
// supplied, the internal state otherwise
func (c *Controller) isOpenLocked() bool {
	if c.cfg.controlled() {
		return *c.cfg.Open
	}
	return c.state.isOpen
}

// IsOpen reports whether the menu is visible
func (c *Controller) IsOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.isOpenLocked()
}

// Open requests the menu to open. Imperative handle for hosts, e.g. a
// clear button that reopens the list.
func (c *Controller) Open() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.openMenuLocked()
}

// Close requests the menu to close
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closeMenuLocked()
}

// openMenuLocked notifies, then transitions to open unless disabled or
// controlled. Opening always resets the highlight so a fresh input
// value starts from the default cursor.
func (c *Controller) openMenuLocked() {
	if c.cfg.OnOpen != nil {
		c.cfg.OnOpen()
	}
	c.cfg.Bus.Publish(eventbus.OpenRequestedEvent{})

	if c.cfg.Disabled || c.cfg.controlled() {
		return
	}

	wasOpen := c.state.isOpen
	c.resetHighlightLocked()
	c.state.isOpen = true

	if !wasOpen {
		if c.cfg.Provider != nil {
			c.cfg.Provider.NotifyOpen()
		}
		if c.cfg.OnMenuOpen != nil {
			c.cfg.OnMenuOpen()
		}
		c.cfg.Bus.Publish(eventbus.MenuOpenedEvent{})
	}
}

// closeMenuLocked notifies, then transitions to closed unless
// controlled. The input text survives the close unless configured
// otherwise.
func (c *Controller) closeMenuLocked() {
	if c.cfg.OnClose != nil {
		c.cfg.OnClose()
	}

	if c.cfg.controlled() {
		return
	}

	wasOpen := c.state.isOpen
	c.state.isOpen = false
	if c.cfg.ResetInputOnClose {
		c.state.inputValue = ""
	}

	if wasOpen {
		if c.cfg.Provider != nil {
			c.cfg.Provider.NotifyClose()
		}
		c.cfg.Bus.Publish(eventbus.MenuClosedEvent{})
	}
}

func (c *Controller) resetHighlightLocked() {
	c.state.highlightedIndex = c.cfg.DefaultHighlightedIndex
}

// MoveHighlight moves the navigation cursor by step, clamped to the
// navigable range. Repeated moves past either end are no-ops; there
// is no wraparound.
func (c *Controller) MoveHighlight(step int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.moveHighlightLocked(step)
}

func (c *Controller) moveHighlightLocked(step int) {
	count := c.reg.effectiveCount()
	if count <= 0 {
		return
	}

	old := c.state.highlightedIndex
	next := old + step
	if next < 0 {
		next = 0
	}
	if next > count-1 {
		next = count - 1
	}
	if next == old {
		return
	}

	c.state.highlightedIndex = next
	c.cfg.Bus.Publish(eventbus.HighlightMovedEvent{OldIndex: old, NewIndex: next})
}

func (c *Controller) setHighlightLocked(index int) {
	old := c.state.highlightedIndex
	if index == old {
		return
	}
	c.state.highlightedIndex = index
	c.cfg.Bus.Publish(eventbus.HighlightMovedEvent{OldIndex: old, NewIndex: index})
}

// selectHighlightedLocked commits the highlighted item if the registry
// holds one and it is selectable. Reports whether a selection occurred.
func (c *Controller) selectHighlightedLocked(source Source) bool {
	item, ok := c.reg.lookup(c.state.highlightedIndex)
	if !ok || item == nil || item.Disabled {
		return false
	}
	c.selectItemLocked(item, c.state.highlightedIndex, source)
	return true
}

// selectItemLocked runs the selection path: notify first with the
// pre-mutation state, then update selection, input and visibility
// according to CloseOnSelect.
func (c *Controller) selectItemLocked(item *domain.Item, index int, source Source) {
	if c.cfg.OnSelect != nil {
		c.cfg.OnSelect(item, c.snapshotLocked(), source)
	}
	c.cfg.Bus.Publish(eventbus.ItemSelectedEvent{Item: item, Index: index})

	prev := c.state.selectedItem
	c.state.selectedItem = item

	if c.cfg.closeOnSelect() {
		// Close first, then set the text: the selected item's string is
		// the final input value even when closing clears the input.
		c.resetHighlightLocked()
		c.closeMenuLocked()
		c.state.inputValue = c.cfg.itemToString(item)
		return
	}

	// Menu stays open. The cursor returns to the default position when
	// the selection changed, and stays put when the same item was
	// committed again.
	if item != prev {
		c.resetHighlightLocked()
	}
}

// handleChange force-opens the menu, then records the new text, in
// that order: the freshly opened menu must see the highlight reset
// that belongs to the new value
func (c *Controller) handleChange(value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.openMenuLocked()
	c.state.inputValue = value
	c.cfg.Bus.Publish(eventbus.InputChangedEvent{Value: value})
}

func (c *Controller) handleFocus() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.openMenuLocked()
}

// handleBlur arms the deferred close, re-arming on every blur. The
// delay distinguishes a pointer press into the menu, which also blurs
// the input, from a genuine departure.
func (c *Controller) handleBlur() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.torn {
		return
	}
	if c.blurTimer != nil {
		c.blurTimer.Stop()
	}
	c.blurTimer = c.cfg.Scheduler.AfterFunc(blurCloseDelay, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.torn {
			return
		}
		c.blurTimer = nil
		c.closeMenuLocked()
	})
}

// handleMenuMouseDown suppresses the pending blur close. The
// cancellation itself is deferred a near-zero interval so it lands
// after the blur handler regardless of delivery order.
func (c *Controller) handleMenuMouseDown() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.torn {
		return
	}
	if c.cancelTimer != nil {
		c.cancelTimer.Stop()
	}
	c.cancelTimer = c.cfg.Scheduler.AfterFunc(menuPressCancelDelay, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		c.cancelTimer = nil
		if c.blurTimer != nil {
			c.blurTimer.Stop()
			c.blurTimer = nil
		}
	})
}

// handleOutsideClick cancels any pending blur close, then closes after
// one scheduling tick. The yield lets click handlers on elements that
// are logically inside the widget but outside its subtree run first.
func (c *Controller) handleOutsideClick() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.torn {
		return
	}
	if c.blurTimer != nil {
		c.blurTimer.Stop()
		c.blurTimer = nil
	}
	if c.settleTimer != nil {
		c.settleTimer.Stop()
	}
	c.settleTimer = c.cfg.Scheduler.AfterFunc(0, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.torn {
			return
		}
		c.settleTimer = nil
		c.closeMenuLocked()
	})
}

// handleItemClick cancels the pending blur close and selects. A click
// on a disabled item changes nothing, not even the armed blur close.
func (c *Controller) handleItemClick(item *domain.Item, index int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if item == nil || item.Disabled {
		return
	}
	if c.blurTimer != nil {
		c.blurTimer.Stop()
		c.blurTimer = nil
	}
	c.setHighlightLocked(index)
	c.selectItemLocked(item, index, SourceClick)
}

func (c *Controller) handleItemMouseEnter(item *domain.Item, index int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if item != nil && item.Disabled {
		return
	}
	c.setHighlightLocked(index)
}

// Teardown cancels all outstanding deferred actions and detaches from
// the popover provider. The controller must not be used afterwards.
func (c *Controller) Teardown() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.torn {
		return
	}
	c.torn = true
	for _, h := range []sched.Handle{c.blurTimer, c.cancelTimer, c.settleTimer} {
		if h != nil {
			h.Stop()
		}
	}
	c.blurTimer, c.cancelTimer, c.settleTimer = nil, nil, nil
	if c.unsubOutside != nil {
		c.unsubOutside()
		c.unsubOutside = nil
	}
	log.Printf("combo: controller torn down")
}
