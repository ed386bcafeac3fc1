// Package popover is the positioning and outside-click subsystem the
// selection controller consumes as a capability. The controller never
// hit-tests or places anything itself; it only reacts to the
// notifications a Provider emits.
package popover

// Rect is a screen-space rectangle in cell coordinates
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether the cell (x, y) falls inside the rectangle
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Empty reports whether the rectangle covers no cells
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Role marks what part the decorated element plays in the popover
type Role int

const (
	RoleNone Role = iota
	RoleActor
	RoleMenu
)

// Props is the bundle a decorator augments so a rendered element
// becomes known to the popover subsystem
type Props struct {
	Region    Rect
	Role      Role
	ItemCount int // menu only; authoritative count when the list is virtualized
}

// Provider is the capability contract the selection controller needs
// from a popover implementation
type Provider interface {
	// IsOpen reports the provider's current visibility flag
	IsOpen() bool
	// NotifyOpen and NotifyClose keep the provider's flag in sync with
	// the controller's state machine
	NotifyOpen()
	NotifyClose()
	// OnOutsideClick subscribes to clicks landing outside both the
	// actor and the menu; returns an unsubscribe function
	OnOutsideClick(fn func(x, y int)) func()
	// DecorateActor marks the element owning the given props as the
	// popover's toggling actor
	DecorateActor(p Props) Props
	// DecorateMenu marks the element as the menu container, with an
	// optional authoritative item count
	DecorateMenu(p Props, itemCount int) Props
}
