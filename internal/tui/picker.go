package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/thereceipt/template-studio/internal/catalog"
	"github.com/thereceipt/template-studio/internal/preset"
)

// pickerItem is one choosable entry
type pickerItem struct {
	key   string
	label string
}

// pickedMsg reports the chosen key back to the app
type pickedMsg struct {
	purpose string
	key     string
}

// Picker purposes
const (
	pickAddSection  = "add_section"
	pickApplyPreset = "apply_preset"
)

// PickerModel is a small modal chooser
type PickerModel struct {
	title   string
	purpose string
	items   []pickerItem
	cursor  int
	visible bool
	width   int
}

// ShowKinds opens the picker over the section catalog
func (m *PickerModel) ShowKinds() {
	m.title = "Add section"
	m.purpose = pickAddSection
	m.items = nil
	for _, k := range catalog.Kinds() {
		m.items = append(m.items, pickerItem{key: k, label: catalog.Label(k)})
	}
	m.cursor = 0
	m.visible = true
}

// ShowPresets opens the picker over the preset library
func (m *PickerModel) ShowPresets(kind string) {
	m.title = "Apply preset"
	m.purpose = pickApplyPreset
	m.items = nil
	for _, p := range preset.List(kind) {
		m.items = append(m.items, pickerItem{key: p.Key, label: p.Name + "  " + p.Description})
	}
	m.cursor = 0
	m.visible = true
}

func (m *PickerModel) Hide() {
	m.visible = false
}

func (m *PickerModel) IsVisible() bool {
	return m.visible
}

func (m *PickerModel) SetSize(width int) {
	m.width = width
}

// Update handles picker keys
func (m PickerModel) Update(msg tea.Msg) (PickerModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || !m.visible {
		return m, nil
	}

	switch keyMsg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
	case "enter":
		if len(m.items) == 0 {
			m.visible = false
			return m, nil
		}
		purpose, key := m.purpose, m.items[m.cursor].key
		m.visible = false
		return m, func() tea.Msg {
			return pickedMsg{purpose: purpose, key: key}
		}
	case "esc":
		m.visible = false
	}

	return m, nil
}

// View renders the chooser
func (m PickerModel) View() string {
	if !m.visible {
		return ""
	}

	var b strings.Builder
	b.WriteString(CardTitleStyle.Render(m.title))
	b.WriteString("\n")

	for i, item := range m.items {
		line := Truncate(item.label, m.width-10)
		if i == m.cursor {
			b.WriteString(SelectedItemStyle.Render(line))
		} else {
			b.WriteString(ListItemStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(TextMuted.Render("Enter to choose, Esc to close"))

	return CardStyle.Render(b.String())
}
