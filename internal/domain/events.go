package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventMenuOpened     EventType = "MenuOpened"
	EventMenuClosed     EventType = "MenuClosed"
	EventOpenRequested  EventType = "OpenRequested"
	EventItemSelected   EventType = "ItemSelected"
	EventHighlightMoved EventType = "HighlightMoved"
	EventInputChanged   EventType = "InputChanged"
	EventOutsideClick   EventType = "OutsideClick"
	EventError          EventType = "Error"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// MenuOpenedEvent is emitted when the menu becomes visible
type MenuOpenedEvent struct{}

func (e MenuOpenedEvent) Type() EventType { return EventMenuOpened }

// MenuClosedEvent is emitted when the menu is dismissed
type MenuClosedEvent struct{}

func (e MenuClosedEvent) Type() EventType { return EventMenuClosed }

// OpenRequestedEvent is emitted whenever something asks the menu to open,
// including requests suppressed by controlled mode or a disabled widget
type OpenRequestedEvent struct{}

func (e OpenRequestedEvent) Type() EventType { return EventOpenRequested }

// ItemSelectedEvent is emitted when an item selection commits
type ItemSelectedEvent struct {
	Item  *Item
	Index int
}

func (e ItemSelectedEvent) Type() EventType { return EventItemSelected }

// HighlightMovedEvent is emitted when the navigation cursor moves
type HighlightMovedEvent struct {
	OldIndex int
	NewIndex int
}

func (e HighlightMovedEvent) Type() EventType { return EventHighlightMoved }

// InputChangedEvent is emitted when the search input text changes
type InputChangedEvent struct {
	Value string
}

func (e InputChangedEvent) Type() EventType { return EventInputChanged }

// OutsideClickEvent is emitted when a click lands outside the widget
type OutsideClickEvent struct {
	X int
	Y int
}

func (e OutsideClickEvent) Type() EventType { return EventOutsideClick }

// ErrorEvent is emitted when an error occurs
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }
