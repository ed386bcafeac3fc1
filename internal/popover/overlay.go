package popover

import (
	"strings"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"combobox/internal/eventbus"
)

// Overlay is the terminal Provider implementation. It tracks the open
// flag and the actor/menu rectangles registered through decoration,
// hit-tests mouse presses against them, and composes the open menu
// over the base view.
type Overlay struct {
	mu        sync.RWMutex
	open      bool
	actor     Rect
	menu      Rect
	itemCount int
	subs      []*outsideSub
	bus       eventbus.EventBus
}

type outsideSub struct {
	fn func(x, y int)
}

// NewOverlay creates a new overlay provider
func NewOverlay(bus eventbus.EventBus) *Overlay {
	if bus == nil {
		bus = &eventbus.NullBus{}
	}
	return &Overlay{bus: bus}
}

// IsOpen reports whether the popover is currently shown
func (o *Overlay) IsOpen() bool {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.open
}

// NotifyOpen marks the popover visible
func (o *Overlay) NotifyOpen() {
	o.mu.Lock()
	o.open = true
	o.mu.Unlock()
}

// NotifyClose marks the popover hidden
func (o *Overlay) NotifyClose() {
	o.mu.Lock()
	o.open = false
	o.mu.Unlock()
}

// OnOutsideClick subscribes to outside clicks
// Returns an unsubscribe function
func (o *Overlay) OnOutsideClick(fn func(x, y int)) func() {
	o.mu.Lock()
	defer o.mu.Unlock()

	sub := &outsideSub{fn: fn}
	o.subs = append(o.subs, sub)

	return func() {
		o.mu.Lock()
		defer o.mu.Unlock()
		for i, s := range o.subs {
			if s == sub {
				o.subs = append(o.subs[:i], o.subs[i+1:]...)
				break
			}
		}
	}
}

// DecorateActor records the element's region as the toggling actor
func (o *Overlay) DecorateActor(p Props) Props {
	o.mu.Lock()
	o.actor = p.Region
	o.mu.Unlock()
	p.Role = RoleActor
	return p
}

// DecorateMenu records the element's region as the menu container
func (o *Overlay) DecorateMenu(p Props, itemCount int) Props {
	o.mu.Lock()
	o.menu = p.Region
	o.itemCount = itemCount
	o.mu.Unlock()
	p.Role = RoleMenu
	p.ItemCount = itemCount
	return p
}

// ActorRegion returns the last decorated actor rectangle
func (o *Overlay) ActorRegion() Rect {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.actor
}

// MenuRegion returns the last decorated menu rectangle
func (o *Overlay) MenuRegion() Rect {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.menu
}

// HandleMouse inspects a mouse message and fires the outside-click
// notification when a press lands outside both the actor and the open
// menu. It reports whether the press was an outside click.
func (o *Overlay) HandleMouse(msg tea.MouseMsg) bool {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return false
	}

	o.mu.RLock()
	open := o.open
	inside := o.actor.Contains(msg.X, msg.Y) || (open && o.menu.Contains(msg.X, msg.Y))
	subs := make([]*outsideSub, len(o.subs))
	copy(subs, o.subs)
	o.mu.RUnlock()

	if !open || inside {
		return false
	}

	o.bus.Publish(eventbus.OutsideClickEvent{X: msg.X, Y: msg.Y})
	for _, s := range subs {
		s.fn(msg.X, msg.Y)
	}
	return true
}

// Compose renders the menu over the base content at the menu region,
// replacing the covered lines. Lines are replaced wholesale so styled
// base content never bleeds into the dropdown.
func (o *Overlay) Compose(base, menu string) string {
	o.mu.RLock()
	region := o.menu
	open := o.open
	o.mu.RUnlock()

	if !open || menu == "" || region.Empty() {
		return base
	}

	baseLines := strings.Split(base, "\n")
	menuLines := strings.Split(menu, "\n")
	pad := strings.Repeat(" ", max(region.X, 0))

	for i, ml := range menuLines {
		y := region.Y + i
		if y < 0 {
			continue
		}
		for y >= len(baseLines) {
			baseLines = append(baseLines, "")
		}
		baseLines[y] = pad + ml
	}
	return strings.Join(baseLines, "\n")
}

// MenuHeight reports the rendered height of a menu view, for placing
// the region before composing
func MenuHeight(menu string) int {
	if menu == "" {
		return 0
	}
	return lipgloss.Height(menu)
}

// MenuWidth reports the rendered width of a menu view
func MenuWidth(menu string) int {
	if menu == "" {
		return 0
	}
	return lipgloss.Width(menu)
}
