package combo

import (
	"log"

	tea "github.com/charmbracelet/bubbletea"

	"combobox/internal/domain"
	"combobox/internal/popover"
)

// RenderFunc is the caller-supplied projection from controller state
// to UI. It runs once per View call and is the only place items may
// be registered.
type RenderFunc func(f Frame)

// Frame is the per-pass binding surface handed to the render
// callback. Bindings created through it stay valid until the next
// pass replaces them.
type Frame struct {
	Snapshot
	c *Controller
}

// View runs one render pass: the item registry is cleared, the
// callback re-registers whatever is currently visible, and the pass
// is committed as a whole when the callback returns.
func (c *Controller) View(render RenderFunc) {
	c.mu.Lock()
	c.reg.begin()
	snap := c.snapshotLocked()
	c.mu.Unlock()

	render(Frame{Snapshot: snap, c: c})

	c.mu.Lock()
	c.reg.swap()
	c.mu.Unlock()
}

// InputHooks are the caller's own handlers, each invoked after the
// controller's logic for the same event
type InputHooks struct {
	OnChange  func(value string)
	OnKeyDown func(msg tea.KeyMsg)
	OnFocus   func()
	OnBlur    func()
}

// InputBinding is the prop bundle for the search input. KeyDown
// reports whether the controller consumed the key; a consumed key
// should not reach the host's default handling.
type InputBinding struct {
	Change  func(value string)
	KeyDown func(msg tea.KeyMsg) bool
	Focus   func()
	Blur    func()
	Props   popover.Props
}

// InputOpts configures an input binding
type InputOpts struct {
	Region popover.Rect
	Hooks  InputHooks
}

// Input binds the search input. When the input is the popover's
// actor, its props are decorated through the provider.
func (f Frame) Input(opts InputOpts) InputBinding {
	c := f.c
	props := popover.Props{Region: opts.Region}
	if c.cfg.Provider != nil && c.cfg.inputIsActor() {
		props = c.cfg.Provider.DecorateActor(props)
	}

	return InputBinding{
		Props: props,
		Change: func(value string) {
			c.handleChange(value)
			if opts.Hooks.OnChange != nil {
				opts.Hooks.OnChange(value)
			}
		},
		KeyDown: func(msg tea.KeyMsg) bool {
			consumed := c.handleKeyDown(msg)
			if opts.Hooks.OnKeyDown != nil {
				opts.Hooks.OnKeyDown(msg)
			}
			return consumed
		},
		Focus: func() {
			c.handleFocus()
			if opts.Hooks.OnFocus != nil {
				opts.Hooks.OnFocus()
			}
		},
		Blur: func() {
			c.handleBlur()
			if opts.Hooks.OnBlur != nil {
				opts.Hooks.OnBlur()
			}
		},
	}
}

// handleKeyDown dispatches the navigation and selection keys.
// Reported consumption mirrors what the host should swallow: arrows
// and Escape always, Enter and Tab only when a selection occurred.
func (c *Controller) handleKeyDown(msg tea.KeyMsg) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch msg.Type {
	case tea.KeyUp:
		c.moveHighlightLocked(-1)
		return true
	case tea.KeyDown:
		c.moveHighlightLocked(1)
		return true
	case tea.KeyEnter:
		if !c.cfg.selectWithEnter() {
			return false
		}
		return c.selectHighlightedLocked(SourceEnter)
	case tea.KeyTab:
		if !c.cfg.SelectWithTab {
			return false
		}
		return c.selectHighlightedLocked(SourceTab)
	case tea.KeyEsc:
		c.closeMenuLocked()
		return true
	}
	return false
}

// ItemOpts configures an item binding. A negative Index appends the
// item to the next free slot; callers must pass a stable index
// whenever order matters, e.g. under virtualization.
type ItemOpts struct {
	Item  *domain.Item
	Index int
}

// ItemBinding is the prop bundle for one visible item
type ItemBinding struct {
	Index      int
	Click      func()
	MouseEnter func()
}

// Item registers an item into the current render pass and returns its
// handlers. An item without identity is a caller contract violation:
// it is logged and still registered, never fatal.
func (f Frame) Item(opts ItemOpts) ItemBinding {
	c := f.c

	if !opts.Item.HasIdentity() {
		log.Printf("combo: item registered without identity at index %d", opts.Index)
	}

	c.mu.Lock()
	index := c.reg.register(opts.Item, opts.Index)
	c.mu.Unlock()

	item := opts.Item
	return ItemBinding{
		Index:      index,
		Click:      func() { c.handleItemClick(item, index) },
		MouseEnter: func() { c.handleItemMouseEnter(item, index) },
	}
}

// MenuOpts configures the menu-container binding. ItemCount carries
// the authoritative navigable total when virtualization hides most
// items from registration; zero or negative means the registry size
// is authoritative.
type MenuOpts struct {
	Region    popover.Rect
	ItemCount int
}

// MenuBinding is the prop bundle for the menu container
type MenuBinding struct {
	MouseDown func()
	Props     popover.Props
}

// Menu binds the menu container: records the virtualization item
// count and attaches the mousedown handler that keeps a press into
// the menu from being treated as leaving the widget.
func (f Frame) Menu(opts MenuOpts) MenuBinding {
	c := f.c

	c.mu.Lock()
	if opts.ItemCount > 0 {
		c.reg.setItemCount(opts.ItemCount)
	}
	c.mu.Unlock()

	props := popover.Props{Region: opts.Region}
	if c.cfg.Provider != nil {
		props = c.cfg.Provider.DecorateMenu(props, opts.ItemCount)
	}

	return MenuBinding{
		Props:     props,
		MouseDown: func() { c.handleMenuMouseDown() },
	}
}

// Open and Close expose the imperative action handles on the frame so
// a render callback can wire them to auxiliary controls
func (f Frame) Open()  { f.c.Open() }
func (f Frame) Close() { f.c.Close() }
