package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/thereceipt/template-studio/internal/catalog"
	"github.com/thereceipt/template-studio/internal/draft"
)

// LayoutModel shows the section stack and the trash
type LayoutModel struct {
	controller *draft.Controller
	cursor     int
	width      int
	height     int
}

// NewLayoutModel creates the layout panel
func NewLayoutModel(controller *draft.Controller) LayoutModel {
	return LayoutModel{controller: controller}
}

// SetSize sets the component size
func (m *LayoutModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// SelectedID returns the id under the cursor, empty for an empty layout
func (m *LayoutModel) SelectedID() string {
	sections := m.controller.Document().Sections()
	if m.cursor < 0 || m.cursor >= len(sections) {
		return ""
	}
	return sections[m.cursor].ID
}

func (m *LayoutModel) clampCursor() {
	n := len(m.controller.Document().Sections())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// Update handles layout panel keys
func (m LayoutModel) Update(msg tea.Msg) (LayoutModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	sections := m.controller.Document().Sections()

	switch keyMsg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		m.controller.Select(m.SelectedID())

	case "down", "j":
		if m.cursor < len(sections)-1 {
			m.cursor++
		}
		m.controller.Select(m.SelectedID())

	case "K", "shift+up":
		if m.controller.Reorder(m.cursor, m.cursor-1) {
			m.cursor--
		}

	case "J", "shift+down":
		if m.controller.Reorder(m.cursor, m.cursor+1) {
			m.cursor++
		}

	case "d", "delete":
		if id := m.SelectedID(); id != "" {
			m.controller.DeleteSection(id)
			m.clampCursor()
		}

	case "u":
		// Restore the most recently trashed section
		trash := m.controller.Document().Trash()
		if len(trash) > 0 {
			m.controller.RestoreSection(trash[len(trash)-1].ID)
			m.cursor = len(m.controller.Document().Sections()) - 1
		}
	}

	return m, nil
}

// View renders the section stack with the trash below it
func (m LayoutModel) View() string {
	var b strings.Builder

	doc := m.controller.Document()
	sections := doc.Sections()

	b.WriteString(CardTitleStyle.Render("Layout"))
	b.WriteString("\n")

	if len(sections) == 0 {
		b.WriteString(TextMuted.Render("  No sections yet. Press 'a' to add one or 'p' for a preset."))
		b.WriteString("\n")
	}

	for i, s := range sections {
		label := catalog.Label(s.Kind)
		line := fmt.Sprintf("%2d  %s", i, Truncate(label, m.width-16))
		if !catalog.Known(s.Kind) {
			line += " " + WarningStyle.Render("(unknown)")
		}
		if i == m.cursor {
			b.WriteString(SelectedItemStyle.Render(line))
		} else {
			b.WriteString(ListItemStyle.Render(line))
		}
		b.WriteString("\n")
	}

	if trash := doc.Trash(); len(trash) > 0 {
		b.WriteString("\n")
		b.WriteString(SectionHeaderStyle.Render(fmt.Sprintf("Trash (%d)", len(trash))))
		b.WriteString("\n")
		for _, s := range trash {
			b.WriteString(TrashItemStyle.Render(catalog.Label(s.Kind)))
			b.WriteString("\n")
		}
		b.WriteString(TextMuted.Render("  'u' restores the most recent"))
		b.WriteString("\n")
	}

	return b.String()
}
