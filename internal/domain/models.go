package domain

// Item is a selectable entry in the menu. The controller only inspects
// Disabled and TestID; Value is opaque and belongs to the caller.
type Item struct {
	Value    any
	Label    string // display text, also the default string form
	Disabled bool   // skips selection but not highlighting
	TestID   string // test-instrumentation pass-through
}

// String returns the item's display form
func (i *Item) String() string {
	if i == nil {
		return ""
	}
	return i.Label
}

// HasIdentity reports whether the item can be told apart from others.
// Items without identity are still usable but break caller expectations.
func (i *Item) HasIdentity() bool {
	if i == nil {
		return false
	}
	return i.Label != "" || i.TestID != "" || i.Value != nil
}
