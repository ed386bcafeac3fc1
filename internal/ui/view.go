package ui

import (
	"fmt"
	"strings"
)

// View renders the demo: a title, the input, and status/help lines.
// The dropdown is composed over the base by the overlay provider so
// placement and base layout stay independent.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	lines := []string{
		m.styles.Title.Render("combobox"),
		"",
		m.input.View(),
		"",
		m.styles.Status.Render(m.statusLine()),
		m.styles.Help.Render("↑/↓ move · enter select · esc close · tab leave · ctrl+u clear · ctrl+c quit"),
	}
	base := strings.Join(lines, "\n")

	if !m.snap.IsOpen {
		return base
	}
	return m.overlay.Compose(base, m.renderMenu())
}

func (m *Model) statusLine() string {
	parts := []string{fmt.Sprintf("%d/%d", len(m.filtered), len(m.candidates))}
	if m.snap.SelectedItem != nil {
		parts = append(parts, fmt.Sprintf("selected: %s", m.snap.SelectedItem.String()))
	}
	if m.status != "" {
		parts = append(parts, m.status)
	}
	if count := len(m.filtered); count > m.visibleRows() {
		parts = append(parts, m.styles.Scroll.Render(
			fmt.Sprintf("rows %d-%d", m.scroll+1, m.scroll+m.visibleRows())))
	}
	return strings.Join(parts, "  ")
}

// renderMenu draws the visible dropdown rows
func (m *Model) renderMenu() string {
	if len(m.filtered) == 0 {
		return m.styles.ItemDisabled.Width(m.menuWidth()).Render("no matches")
	}

	w := m.menuWidth()
	rows := make([]string, 0, m.visibleRows())
	for row := 0; row < m.visibleRows(); row++ {
		idx := m.scroll + row
		item := m.filtered[idx]

		label := m.renderLabel(item.String(), m.matchIdx[idx])
		switch {
		case item.Disabled:
			rows = append(rows, m.styles.ItemDisabled.Width(w).Render(item.String()))
		case idx == m.snap.HighlightedIndex:
			rows = append(rows, m.styles.ItemActive.Width(w).Render(label))
		default:
			rows = append(rows, m.styles.Item.Width(w).Render(label))
		}
	}
	return strings.Join(rows, "\n")
}

// renderLabel emphasises the rune positions the fuzzy matcher hit
func (m *Model) renderLabel(label string, matched []int) string {
	if len(matched) == 0 {
		return label
	}
	hit := make(map[int]bool, len(matched))
	for _, i := range matched {
		hit[i] = true
	}

	var b strings.Builder
	for i, r := range []rune(label) {
		if hit[i] {
			b.WriteString(m.styles.Match.Render(string(r)))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// menuWidth sizes the dropdown to its widest candidate, bounded by
// the terminal
func (m *Model) menuWidth() int {
	w := 20
	for _, c := range m.candidates {
		if l := len([]rune(c.String())) + 2; l > w {
			w = l
		}
	}
	if m.width > 0 && w > m.width-2 {
		w = m.width - 2
	}
	return w
}
