package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the widget
type Styles struct {
	Title        lipgloss.Style
	Prompt       lipgloss.Style
	Menu         lipgloss.Style
	Item         lipgloss.Style
	ItemActive   lipgloss.Style
	ItemDisabled lipgloss.Style
	Match        lipgloss.Style
	Status       lipgloss.Style
	Help         lipgloss.Style
	Scroll       lipgloss.Style
}

// NewStyles creates a new Styles instance, accented with the
// configured color
func NewStyles(accent string) *Styles {
	if accent == "" {
		accent = "99"
	}
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(accent)),
		Prompt: lipgloss.NewStyle().Foreground(lipgloss.Color(accent)),
		Menu: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("241")),
		Item:         lipgloss.NewStyle().PaddingLeft(1),
		ItemActive:   lipgloss.NewStyle().PaddingLeft(1).Background(lipgloss.Color("238")).Bold(true),
		ItemDisabled: lipgloss.NewStyle().PaddingLeft(1).Faint(true),
		Match:        lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		Status:       lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Help:         lipgloss.NewStyle().Faint(true),
		Scroll:       lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
	}
}
