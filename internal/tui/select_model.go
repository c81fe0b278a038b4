// Package tui provides the interactive item selection screen.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/macsnap/macsnap/internal/domain/catalog"
)

// SelectionResult is what the selection screen produced.
type SelectionResult struct {
	IDs       []string
	Cancelled bool
}

// RunSelection shows the catalog grouped by category and returns the
// checked ids in display order. Items marked selected_by_default start
// checked.
func RunSelection(cat *catalog.Catalog) (SelectionResult, error) {
	final, err := tea.NewProgram(newSelectModel(cat)).Run()
	if err != nil {
		return SelectionResult{}, err
	}
	model, ok := final.(selectModel)
	if !ok {
		return SelectionResult{Cancelled: true}, nil
	}
	if model.cancelled {
		return SelectionResult{Cancelled: true}, nil
	}
	return SelectionResult{IDs: model.selectedIDs()}, nil
}

// entry is one display row: a category header or a selectable item.
type entry struct {
	header string
	item   catalog.Item
}

func (e entry) isHeader() bool {
	return e.header != ""
}

type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	Toggle   key.Binding
	All      key.Binding
	None     key.Binding
	Defaults key.Binding
	Confirm  key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Toggle:   key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle")),
		All:      key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "all")),
		None:     key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "none")),
		Defaults: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "defaults")),
		Confirm:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "install")),
		Quit:     key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Defaults, k.Confirm, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Toggle},
		{k.All, k.None, k.Defaults},
		{k.Confirm, k.Quit},
	}
}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	categoryStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("5"))
	checkedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// selectModel is the Bubble Tea model for catalog selection.
type selectModel struct {
	entries   []entry
	checked   map[string]bool
	cursor    int
	keys      keyMap
	help      help.Model
	height    int
	confirmed bool
	cancelled bool
}

func newSelectModel(cat *catalog.Catalog) selectModel {
	var entries []entry
	checked := make(map[string]bool)
	for _, category := range cat.Categories() {
		entries = append(entries, entry{header: category})
		for _, item := range cat.ItemsByCategory(category) {
			entries = append(entries, entry{item: item})
			if item.SelectedByDefault {
				checked[item.ID] = true
			}
		}
	}

	m := selectModel{
		entries: entries,
		checked: checked,
		keys:    defaultKeyMap(),
		help:    help.New(),
		height:  24,
	}
	m.cursor = m.nextItem(-1, +1)
	return m
}

// nextItem finds the nearest selectable row from start in the given
// direction, or returns start's clamp if none exists.
func (m selectModel) nextItem(start, dir int) int {
	for i := start + dir; i >= 0 && i < len(m.entries); i += dir {
		if !m.entries[i].isHeader() {
			return i
		}
	}
	if start < 0 {
		return 0
	}
	return start
}

// Init implements tea.Model.
func (m selectModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m selectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.cancelled = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Confirm):
			m.confirmed = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Up):
			m.cursor = m.nextItem(m.cursor, -1)
			return m, nil

		case key.Matches(msg, m.keys.Down):
			m.cursor = m.nextItem(m.cursor, +1)
			return m, nil

		case key.Matches(msg, m.keys.Toggle):
			if e := m.entries[m.cursor]; !e.isHeader() {
				m.checked[e.item.ID] = !m.checked[e.item.ID]
			}
			return m, nil

		case key.Matches(msg, m.keys.All):
			for _, e := range m.entries {
				if !e.isHeader() {
					m.checked[e.item.ID] = true
				}
			}
			return m, nil

		case key.Matches(msg, m.keys.None):
			m.checked = make(map[string]bool)
			return m, nil

		case key.Matches(msg, m.keys.Defaults):
			m.checked = make(map[string]bool)
			for _, e := range m.entries {
				if !e.isHeader() && e.item.SelectedByDefault {
					m.checked[e.item.ID] = true
				}
			}
			return m, nil
		}
	}

	return m, nil
}

// View implements tea.Model.
func (m selectModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Select items to install"))
	b.WriteString(mutedStyle.Render(fmt.Sprintf("  %d selected", len(m.selectedIDs()))))
	b.WriteString("\n\n")

	top, bottom := m.viewportBounds()
	for i := top; i < bottom; i++ {
		e := m.entries[i]
		if e.isHeader() {
			b.WriteString(categoryStyle.Render(e.header))
			b.WriteString("\n")
			continue
		}

		cursor := "  "
		if i == m.cursor {
			cursor = cursorStyle.Render("> ")
		}
		box := "[ ]"
		if m.checked[e.item.ID] {
			box = checkedStyle.Render("[x]")
		}
		line := fmt.Sprintf("%s%s %s", cursor, box, e.item.Name)
		if len(e.item.Dependencies) > 0 {
			line += mutedStyle.Render(fmt.Sprintf("  (needs %s)", strings.Join(e.item.Dependencies, ", ")))
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

// viewportBounds keeps the cursor visible when the catalog is taller
// than the terminal.
func (m selectModel) viewportBounds() (int, int) {
	visible := m.height - 5 // title, blank lines, help
	if visible < 1 || len(m.entries) <= visible {
		return 0, len(m.entries)
	}
	top := m.cursor - visible/2
	if top < 0 {
		top = 0
	}
	if top+visible > len(m.entries) {
		top = len(m.entries) - visible
	}
	return top, top + visible
}

// selectedIDs returns checked ids in display order, which downstream
// resolution uses as the tie-breaking selection order.
func (m selectModel) selectedIDs() []string {
	var ids []string
	for _, e := range m.entries {
		if !e.isHeader() && m.checked[e.item.ID] {
			ids = append(ids, e.item.ID)
		}
	}
	return ids
}
