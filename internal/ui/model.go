package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"

	"combobox/internal/combo"
	"combobox/internal/config"
	"combobox/internal/domain"
	"combobox/internal/eventbus"
	"combobox/internal/popover"
)

// Fixed layout rows: title, blank, input, then the dropdown
const (
	inputRow = 2
	menuRow  = 3
)

// Model is the Bubble Tea model hosting the combobox demo. It owns
// the presentation concerns the controller deliberately leaves to the
// caller: filtering, layout, and translating terminal events into the
// controller's bound handlers.
type Model struct {
	cfg     *config.Config
	styles  *Styles
	bus     eventbus.EventBus
	ctrl    *combo.Controller
	overlay *popover.Overlay
	input   textinput.Model

	candidates []*domain.Item
	filtered   []*domain.Item
	matchIdx   map[int][]int // filtered row -> matched rune positions

	snap      combo.Snapshot
	inputBind combo.InputBinding
	itemBinds map[int]combo.ItemBinding
	menuBind  combo.MenuBinding

	scroll   int
	width    int
	height   int
	status   string
	quitting bool
}

// NewModel creates the demo model and wires the controller to the
// overlay provider
func NewModel(cfg *config.Config, candidates []*domain.Item, bus eventbus.EventBus) *Model {
	if bus == nil {
		bus = &eventbus.NullBus{}
	}

	ti := textinput.New()
	ti.Placeholder = cfg.Placeholder
	ti.Prompt = "> "
	ti.Focus()

	m := &Model{
		cfg:        cfg,
		styles:     NewStyles(cfg.UISettings.AccentColor),
		bus:        bus,
		overlay:    popover.NewOverlay(bus),
		input:      ti,
		candidates: candidates,
		width:      80,
		height:     24,
	}

	m.ctrl = combo.New(combo.Config{
		ItemToString:      func(i *domain.Item) string { return i.String() },
		CloseOnSelect:     combo.Bool(cfg.Behavior.CloseOnSelect),
		SelectWithTab:     cfg.Behavior.SelectWithTab,
		ResetInputOnClose: cfg.Behavior.ResetInputOnClose,
		Provider:          m.overlay,
		Bus:               bus,
		OnSelect: func(item *domain.Item, snap combo.Snapshot, source combo.Source) {
			m.status = fmt.Sprintf("selected %q via %s", item.String(), source)
		},
	})

	m.refilter("")
	m.sync()
	return m
}

// Controller exposes the underlying controller, mainly for teardown
func (m *Model) Controller() *combo.Controller { return m.ctrl }

// Init is part of the tea.Model interface
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update responds to Bubble Tea messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.sync()
		return m, nil

	case tea.FocusMsg:
		if m.input.Focused() {
			m.inputBind.Focus()
			m.sync()
		}
		return m, nil

	case tea.BlurMsg:
		m.inputBind.Blur()
		m.sync()
		return m, nil

	case tea.MouseMsg:
		m.handleMouse(msg)
		m.sync()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		m.quitting = true
		m.ctrl.Teardown()
		return m, tea.Quit

	case tea.KeyCtrlU:
		// Clear and reopen, the "clear button" path
		m.input.SetValue("")
		m.refilter("")
		m.inputBind.Change("")
		m.sync()
		return m, nil
	}

	if m.input.Focused() {
		if consumed := m.inputBind.KeyDown(msg); consumed {
			m.sync()
			return m, nil
		}
		if msg.Type == tea.KeyTab {
			// Unconsumed Tab leaves the field
			m.input.Blur()
			m.inputBind.Blur()
			m.sync()
			return m, nil
		}

		before := m.input.Value()
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		if v := m.input.Value(); v != before {
			m.refilter(v)
			m.inputBind.Change(v)
		}
		m.sync()
		return m, cmd
	}

	// Input not focused: Tab or any rune returns focus to it
	if msg.Type == tea.KeyTab || msg.Type == tea.KeyRunes {
		m.input.Focus()
		m.inputBind.Focus()
		m.sync()
	}
	return m, nil
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	if m.overlay.HandleMouse(msg) {
		// Outside click: the controller heard it through the provider
		return
	}

	actor := m.overlay.ActorRegion()
	menu := m.overlay.MenuRegion()

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return
		}
		if actor.Contains(msg.X, msg.Y) {
			if !m.input.Focused() {
				m.input.Focus()
			}
			m.inputBind.Focus()
			return
		}
		if m.snap.IsOpen && menu.Contains(msg.X, msg.Y) {
			m.menuBind.MouseDown()
			if idx, ok := m.rowAt(msg.Y); ok {
				if b, ok := m.itemBinds[idx]; ok {
					b.Click()
				}
			}
		}

	case tea.MouseActionMotion:
		if m.snap.IsOpen && menu.Contains(msg.X, msg.Y) {
			if idx, ok := m.rowAt(msg.Y); ok {
				if b, ok := m.itemBinds[idx]; ok {
					b.MouseEnter()
				}
			}
		}
	}
}

// rowAt maps a screen row inside the menu region to a filtered-item index
func (m *Model) rowAt(y int) (int, bool) {
	region := m.overlay.MenuRegion()
	idx := m.scroll + (y - region.Y)
	if idx < 0 || idx >= len(m.filtered) {
		return 0, false
	}
	return idx, true
}

// refilter recomputes the visible candidate set for the query.
// Filtering is presentation-side work: the controller never sees it.
func (m *Model) refilter(query string) {
	m.scroll = 0
	if query == "" {
		m.filtered = m.candidates
		m.matchIdx = nil
		return
	}

	labels := make([]string, len(m.candidates))
	for i, c := range m.candidates {
		labels[i] = c.String()
	}

	matches := fuzzy.Find(query, labels)
	m.filtered = make([]*domain.Item, 0, len(matches))
	m.matchIdx = make(map[int][]int, len(matches))
	for i, match := range matches {
		m.filtered = append(m.filtered, m.candidates[match.Index])
		m.matchIdx[i] = match.MatchedIndexes
	}
}

// visibleRows is how many menu rows the dropdown currently shows
func (m *Model) visibleRows() int {
	rows := len(m.filtered)
	if max := m.cfg.UISettings.MaxVisibleRows; rows > max {
		rows = max
	}
	return rows
}

// sync runs one controller render pass: scroll the highlight into
// view, decorate the actor and menu regions, and register exactly the
// rows the dropdown will draw. Hidden rows stay unregistered; the
// menu binding carries the authoritative total instead.
func (m *Model) sync() {
	// The controller owns the input text: a committed selection or a
	// reset-on-close rewrites it, and the field follows
	pre := m.ctrl.Snapshot()
	if pre.InputValue != m.input.Value() {
		m.input.SetValue(pre.InputValue)
		m.refilter(pre.InputValue)
	}

	count := len(m.filtered)
	maxRows := m.cfg.UISettings.MaxVisibleRows

	h := pre.HighlightedIndex
	if h < m.scroll {
		m.scroll = h
	}
	if h >= m.scroll+maxRows {
		m.scroll = h - maxRows + 1
	}
	if m.scroll > count-maxRows {
		m.scroll = count - maxRows
	}
	if m.scroll < 0 {
		m.scroll = 0
	}

	visible := m.visibleRows()
	menuHeight := visible
	if menuHeight == 0 {
		menuHeight = 1 // the "no matches" row
	}

	m.itemBinds = make(map[int]combo.ItemBinding, visible)
	m.ctrl.View(func(f combo.Frame) {
		m.snap = f.Snapshot
		m.inputBind = f.Input(combo.InputOpts{
			Region: popover.Rect{X: 0, Y: inputRow, W: m.width, H: 1},
		})
		m.menuBind = f.Menu(combo.MenuOpts{
			Region:    popover.Rect{X: 0, Y: menuRow, W: m.menuWidth(), H: menuHeight},
			ItemCount: count,
		})
		if !f.IsOpen {
			return
		}
		for row := 0; row < visible; row++ {
			idx := m.scroll + row
			m.itemBinds[idx] = f.Item(combo.ItemOpts{Item: m.filtered[idx], Index: idx})
		}
	})
}
