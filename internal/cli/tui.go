package cli

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/patchboard/atlas/pkg/world"
)

var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorGreen)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// PickItem is one unplaced entity offered by the picker.
type PickItem struct {
	ID    world.ID
	Title string
	Inbox string
}

// unplaced lists the entities that have no placement yet.
func unplaced(w *world.World) []PickItem {
	var items []PickItem
	for _, id := range w.IDs() {
		if w.Placed(id) {
			continue
		}
		c, _ := w.Card(id)
		items = append(items, PickItem{ID: id, Title: c.Name(), Inbox: c.Inbox})
	}
	return items
}

// PickerModel is the bubbletea model for choosing an entity to place.
type PickerModel struct {
	Items    []PickItem
	Cursor   int
	Offset   int
	Height   int
	Selected *world.ID
}

func NewPickerModel(items []PickItem) PickerModel {
	return PickerModel{Items: items, Height: 15}
}

func (m PickerModel) Init() tea.Cmd {
	return nil
}

func (m PickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Items)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			if len(m.Items) == 0 {
				return m, tea.Quit
			}
			id := m.Items[m.Cursor].ID
			m.Selected = &id
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-6, 5)
	}
	return m, nil
}

func (m PickerModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Place Component"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Items))
	var rows [][]string
	for i := m.Offset; i < end; i++ {
		it := m.Items[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		title := it.Title
		if title == "" {
			title = "—"
		}
		rows = append(rows, []string{cursor, strconv.Itoa(int(it.ID)), title, it.Inbox})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "ID", "Title", "Inbox").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			switch {
			case m.Offset+row == m.Cursor:
				return listSelectedStyle
			case col == 3:
				return listDimStyle
			}
			return listNormalStyle
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Items))))

	return b.String()
}

// runPicker shows the picker and returns the chosen entity. ok is false when
// the user quits without choosing.
func runPicker(items []PickItem) (id world.ID, ok bool, err error) {
	final, err := tea.NewProgram(NewPickerModel(items)).Run()
	if err != nil {
		return 0, false, err
	}
	fm, isPicker := final.(PickerModel)
	if !isPicker || fm.Selected == nil {
		return 0, false, nil
	}
	return *fm.Selected, true, nil
}
