package combo

import (
	"combobox/internal/domain"
	"combobox/internal/eventbus"
	"combobox/internal/popover"
	"combobox/internal/sched"
)

// Source identifies which interaction committed a selection
type Source int

const (
	SourceEnter Source = iota
	SourceTab
	SourceClick
)

func (s Source) String() string {
	switch s {
	case SourceEnter:
		return "enter"
	case SourceTab:
		return "tab"
	case SourceClick:
		return "click"
	}
	return "unknown"
}

// Snapshot is the read-only view of controller state handed to the
// render callback and to selection notifications
type Snapshot struct {
	InputValue       string
	SelectedItem     *domain.Item
	HighlightedIndex int
	IsOpen           bool
}

// Config is the immutable per-instance configuration.
// Boolean fields that default to true are pointers so the zero value
// of Config still means "default behavior".
type Config struct {
	// ItemToString converts a selected item into input text.
	// Default renders every item as the empty string.
	ItemToString func(*domain.Item) string

	// InputIsActor marks the input as the element that toggles the
	// popover. Default true.
	InputIsActor *bool

	// Disabled suppresses opening entirely
	Disabled bool

	// CloseOnSelect closes the menu when a selection commits and
	// copies the item's string form into the input. Default true.
	CloseOnSelect *bool

	// SelectWithEnter lets Enter commit the highlighted item. Default true.
	SelectWithEnter *bool

	// SelectWithTab lets Tab commit the highlighted item. Default false.
	SelectWithTab bool

	// ResetInputOnClose clears the input text when the menu closes
	ResetInputOnClose bool

	// Initial-state seeds
	DefaultHighlightedIndex int
	DefaultInputValue       string

	// Open forces the externally visible open flag (controlled mode).
	// Internal open/close requests still fire notifications and side
	// effects but no longer change visibility.
	Open *bool

	// Notification callbacks, all optional
	OnOpen     func()                                   // open requested
	OnMenuOpen func()                                   // menu actually became visible
	OnClose    func()                                   // close requested
	OnSelect   func(item *domain.Item, snap Snapshot, source Source)

	// Collaborators
	Bus       eventbus.EventBus
	Scheduler sched.Scheduler
	Provider  popover.Provider
}

func (c Config) inputIsActor() bool {
	return c.InputIsActor == nil || *c.InputIsActor
}

func (c Config) closeOnSelect() bool {
	return c.CloseOnSelect == nil || *c.CloseOnSelect
}

func (c Config) selectWithEnter() bool {
	return c.SelectWithEnter == nil || *c.SelectWithEnter
}

func (c Config) controlled() bool {
	return c.Open != nil
}

func (c Config) itemToString(item *domain.Item) string {
	if c.ItemToString == nil {
		return ""
	}
	return c.ItemToString(item)
}

// Bool is a convenience for populating the pointer-typed fields
func Bool(v bool) *bool { return &v }
