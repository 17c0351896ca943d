package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/thereceipt/template-studio/internal/command"
)

// CommandModel handles command input
type CommandModel struct {
	executor   *command.Executor
	input      textinput.Model
	visible    bool
	lastResult *command.Result
	width      int
	height     int
	scrollPos  int // For scrolling long results
}

// NewCommandModel creates a new command model
func NewCommandModel(executor *command.Executor) CommandModel {
	input := textinput.New()
	input.Placeholder = "Enter command (e.g., 'add header', 'help')"
	input.CharLimit = 200
	input.Prompt = "> "
	input.PromptStyle = lipgloss.NewStyle().Foreground(Secondary)

	return CommandModel{
		executor: executor,
		input:    input,
		visible:  false,
		width:    80,
	}
}

// SetSize sets the component size
func (m *CommandModel) SetSize(width int) {
	if width < 40 {
		width = 40
	}
	m.width = width
	m.input.Width = width - 6
}

// SetHeight sets the maximum height for the command view
func (m *CommandModel) SetHeight(height int) {
	m.height = height
}

// Show shows the command input
func (m *CommandModel) Show() {
	m.visible = true
	m.input.Focus()
	m.lastResult = nil
	m.scrollPos = 0
}

// Hide hides the command input
func (m *CommandModel) Hide() {
	m.visible = false
	m.input.Blur()
	m.input.SetValue("")
}

// IsVisible returns whether the command input is visible
func (m *CommandModel) IsVisible() bool {
	return m.visible
}

// Update handles messages
func (m CommandModel) Update(msg tea.Msg) (CommandModel, tea.Cmd) {
	if !m.visible {
		return m, nil
	}

	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			cmdStr := strings.TrimSpace(m.input.Value())
			if cmdStr != "" {
				m.lastResult = m.executor.Execute(context.Background(), cmdStr)
				m.input.SetValue("")
				m.scrollPos = 0
				// Keep command bar open for quick commands
			}
			return m, cmd

		case "esc":
			m.Hide()
			return m, nil

		case "up":
			if m.scrollPos > 0 {
				m.scrollPos--
			}
			return m, nil

		case "down":
			m.scrollPos++
			return m, nil

		case "home":
			m.scrollPos = 0
			return m, nil

		case "end":
			// Clamped in View
			m.scrollPos = 9999
			return m, nil

		default:
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}
	}

	return m, cmd
}

// View renders the command input
func (m CommandModel) View() string {
	if !m.visible {
		return ""
	}

	headerHeight := 3
	footerHeight := 2
	availableHeight := m.height - headerHeight - footerHeight
	if m.height == 0 {
		availableHeight = 15
	}
	if availableHeight < 5 {
		availableHeight = 5
	}

	var b strings.Builder

	b.WriteString(HeaderStyle.Render("Command"))
	b.WriteString("\n\n")

	inputView := m.input.View()
	boxStyle := InputFocusedStyle.
		Width(m.width-4).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Secondary).
		Padding(0, 1)

	b.WriteString(boxStyle.Render(inputView))
	b.WriteString("\n")

	resultLines := m.resultLines()

	// Apply scrolling (calculate limits, don't modify m.scrollPos in View)
	totalLines := len(resultLines)
	maxScroll := totalLines - availableHeight
	if maxScroll < 0 {
		maxScroll = 0
	}
	scrollPos := m.scrollPos
	if scrollPos > maxScroll {
		scrollPos = maxScroll
	}
	if scrollPos < 0 {
		scrollPos = 0
	}

	start := scrollPos
	end := start + availableHeight
	if end > totalLines {
		end = totalLines
	}

	if totalLines > 0 {
		b.WriteString("\n")
		for i := start; i < end; i++ {
			b.WriteString(resultLines[i])
			b.WriteString("\n")
		}

		if totalLines > availableHeight {
			b.WriteString(TextMuted.Render(fmt.Sprintf("  ... (↑/↓ to scroll, %d/%d lines) ...", scrollPos+1, totalLines)))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	helpText := "Press Enter to execute, Esc to close"
	if totalLines > availableHeight {
		helpText += ", ↑/↓ to scroll"
	}
	b.WriteString(TextMuted.Render(helpText))

	return b.String()
}

// resultLines flattens the last result into styled display lines
func (m CommandModel) resultLines() []string {
	var lines []string
	res := m.lastResult
	if res == nil {
		return nil
	}

	if !res.Success {
		for _, line := range wrapText("✗ "+res.Error, m.width-4) {
			lines = append(lines, ErrorStyle.Render(line))
		}
		return lines
	}

	if res.Message != "" {
		if strings.Contains(res.Message, "Available commands:") {
			// Help text renders as-is
			for _, line := range strings.Split(res.Message, "\n") {
				lines = append(lines, TextMuted.Render(line))
			}
		} else {
			for _, line := range wrapText("✓ "+res.Message, m.width-4) {
				lines = append(lines, SuccessStyle.Render(line))
			}
		}
	}

	if len(res.Data) == 0 {
		return lines
	}

	if items, ok := res.Data["sections"].([]map[string]any); ok {
		lines = append(lines, "", SectionHeaderStyle.Render("Layout:"))
		for _, s := range items {
			lines = append(lines, fmt.Sprintf("  %v  %s  %s",
				s["index"], getStringValue(s, "label"), TextMuted.Render(getStringValue(s, "id"))))
		}
	}
	if items, ok := res.Data["trash"].([]map[string]any); ok {
		lines = append(lines, "", SectionHeaderStyle.Render("Trash:"))
		for _, s := range items {
			lines = append(lines, fmt.Sprintf("  %s  %s",
				getStringValue(s, "label"), TextMuted.Render(getStringValue(s, "id"))))
		}
	}
	if items, ok := res.Data["kinds"].([]map[string]any); ok {
		lines = append(lines, "", SectionHeaderStyle.Render("Section kinds:"))
		for _, k := range items {
			lines = append(lines, fmt.Sprintf("  %-18s %s",
				getStringValue(k, "kind"), TextMuted.Render(getStringValue(k, "label"))))
		}
	}
	if items, ok := res.Data["presets"].([]map[string]any); ok {
		lines = append(lines, "", SectionHeaderStyle.Render("Presets:"))
		for _, p := range items {
			lines = append(lines, fmt.Sprintf("  %-10s %s %s",
				getStringValue(p, "key"), getStringValue(p, "name"),
				TextMuted.Render("("+getStringValue(p, "kind")+")")))
		}
	}
	if state := getStringValue(res.Data, "state"); state != "" {
		lines = append(lines, "", InfoStyle.Render("State: "+state))
		if saveErr := getStringValue(res.Data, "saveError"); saveErr != "" {
			lines = append(lines, ErrorStyle.Render("  Save error: "+saveErr))
		}
	}

	return lines
}

// wrapText wraps text to fit within a given width
func wrapText(text string, width int) []string {
	if width <= 0 {
		return []string{text}
	}

	var lines []string
	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{""}
	}

	currentLine := words[0]
	for _, word := range words[1:] {
		if len(currentLine)+1+len(word) <= width {
			currentLine += " " + word
		} else {
			lines = append(lines, currentLine)
			currentLine = word
		}
	}
	if currentLine != "" {
		lines = append(lines, currentLine)
	}

	return lines
}

// getStringValue safely pulls a string out of a data map
func getStringValue(m map[string]any, key string) string {
	if val, ok := m[key]; ok {
		if str, ok := val.(string); ok {
			return str
		}
	}
	return ""
}
