// Package tui is the terminal front end for the template editor
package tui

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/thereceipt/template-studio/internal/command"
	"github.com/thereceipt/template-studio/internal/draft"
)

// Messages
type saveDoneMsg struct {
	err error
}

type statusEntry struct {
	message string
	level   string
	at      time.Time
}

// App is the main Bubble Tea model
type App struct {
	// Dependencies
	controller *draft.Controller
	executor   *command.Executor

	// UI State
	width    int
	height   int
	ready    bool
	quitting bool
	naming   bool
	saving   bool
	status   statusEntry

	// Components
	spinner   spinner.Model
	layout    LayoutModel
	picker    PickerModel
	command   CommandModel
	nameInput textinput.Model
}

// NewApp creates a new Bubble Tea editor for one editing session
func NewApp(controller *draft.Controller) *App {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SpinnerStyle

	nameInput := textinput.New()
	nameInput.Placeholder = "Template name"
	nameInput.CharLimit = 120
	nameInput.Prompt = "Name: "
	nameInput.PromptStyle = lipgloss.NewStyle().Foreground(Secondary)

	executor := command.NewExecutor(controller)

	app := &App{
		controller: controller,
		executor:   executor,
		spinner:    s,
		nameInput:  nameInput,
	}
	app.layout = NewLayoutModel(controller)
	app.command = NewCommandModel(executor)

	return app
}

// Init initializes the application
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		a.spinner.Tick,
		tea.EnterAltScreen,
	)
}

func (a *App) saveCmd() tea.Cmd {
	return func() tea.Msg {
		return saveDoneMsg{err: a.controller.Save(context.Background())}
	}
}

func (a *App) setStatus(message, level string) {
	a.status = statusEntry{message: message, level: level, at: time.Now()}
}

// Update handles messages
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		// A showing saved notice is dismissed by the next key press
		if a.controller.SavedNotice() {
			a.controller.DismissSavedNotice()
		}

		// Modal surfaces take key priority
		if a.command.IsVisible() {
			newCmd, cmd := a.command.Update(msg)
			a.command = newCmd
			return a, cmd
		}
		if a.picker.IsVisible() {
			newPicker, cmd := a.picker.Update(msg)
			a.picker = newPicker
			return a, cmd
		}
		if a.naming {
			return a.updateNaming(msg)
		}
		if a.controller.Pending() != draft.PendingNone {
			return a.updateConfirmation(msg)
		}
		if a.controller.State() == draft.StateSaveError {
			// Any key acknowledges the error and returns to editing
			a.controller.AcknowledgeError()
			a.setStatus("save failed, draft kept", "warning")
			return a, nil
		}

		switch msg.String() {
		case ":":
			a.command.Show()
			a.command.SetSize(maxInt(20, a.width))
			a.command.SetHeight(a.bottomAreaHeight())
			return a, nil

		case "a":
			a.picker.SetSize(a.width / 2)
			a.picker.ShowKinds()
			return a, nil

		case "p":
			a.picker.SetSize(a.width / 2)
			a.picker.ShowPresets(a.controller.Document().Kind())
			return a, nil

		case "n":
			a.naming = true
			a.nameInput.SetValue(a.controller.Document().Name())
			a.nameInput.Focus()
			return a, nil

		case "s":
			if a.saving {
				return a, nil
			}
			if strings.TrimSpace(a.controller.Document().Name()) == "" {
				// Ask for a name first; save follows from the input
				a.naming = true
				a.nameInput.SetValue("")
				a.nameInput.Focus()
				a.setStatus("template needs a name", "warning")
				return a, nil
			}
			a.saving = true
			return a, a.saveCmd()

		case "ctrl+c", "q":
			closed, err := a.controller.RequestClose()
			if errors.Is(err, draft.ErrBusy) {
				a.setStatus("still saving, one moment", "warning")
				return a, nil
			}
			if closed {
				a.quitting = true
				return a, tea.Quit
			}
			// Pending discard confirmation renders as a dialog
			return a, nil
		}

		// Delegate the rest to the layout panel
		newLayout, cmd := a.layout.Update(msg)
		a.layout = newLayout
		cmds = append(cmds, cmd)

	case pickedMsg:
		switch msg.purpose {
		case pickAddSection:
			a.controller.AddSection(msg.key)
			a.setStatus("added "+msg.key, "success")
		case pickApplyPreset:
			applied, err := a.controller.RequestApplyPreset(msg.key)
			if err != nil {
				a.setStatus(err.Error(), "error")
			} else if applied {
				a.setStatus("applied preset "+msg.key, "success")
			}
			// Not applied and no error: the confirm dialog takes over
		}

	case saveDoneMsg:
		a.saving = false
		if msg.err == nil {
			a.setStatus("saved "+a.controller.Document().Name(), "success")
		} else if errors.Is(msg.err, draft.ErrNameRequired) {
			a.naming = true
			a.nameInput.Focus()
			a.setStatus("template needs a name", "warning")
		} else {
			a.setStatus(a.controller.SaveError(), "error")
		}

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true

		contentHeight := a.height - a.bottomAreaHeight() - 2
		if contentHeight < 1 {
			contentHeight = 1
		}
		a.layout.SetSize(a.width, contentHeight)
		a.picker.SetSize(a.width / 2)
		a.command.SetSize(a.width)
		a.command.SetHeight(a.bottomAreaHeight())

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		cmds = append(cmds, cmd)
	}

	return a, tea.Batch(cmds...)
}

func (a *App) updateNaming(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		name := strings.TrimSpace(a.nameInput.Value())
		a.naming = false
		a.nameInput.Blur()
		if name != "" {
			a.controller.SetName(name)
			a.setStatus("named "+name, "success")
		}
		return a, nil
	case "esc":
		a.naming = false
		a.nameInput.Blur()
		return a, nil
	}

	var cmd tea.Cmd
	a.nameInput, cmd = a.nameInput.Update(msg)
	return a, cmd
}

func (a *App) updateConfirmation(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	pending := a.controller.Pending()

	switch msg.String() {
	case "y", "enter":
		if err := a.controller.Confirm(); err != nil {
			a.setStatus(err.Error(), "error")
			return a, nil
		}
		if pending == draft.PendingDiscard {
			a.quitting = true
			return a, tea.Quit
		}
		a.setStatus("preset applied", "success")
	case "n", "esc":
		a.controller.Cancel()
	}
	return a, nil
}

// View renders the UI
func (a *App) View() string {
	if a.quitting {
		return "\n  Goodbye!\n\n"
	}

	if !a.ready {
		return "\n  Loading...\n"
	}

	header := a.renderHeader()

	var body string
	switch {
	case a.picker.IsVisible():
		body = a.picker.View()
	case a.controller.Pending() != draft.PendingNone:
		body = a.renderConfirmDialog()
	case a.controller.State() == draft.StateSaveError:
		body = a.renderSaveErrorDialog()
	default:
		body = a.layout.View()
	}

	var bottom string
	if a.command.IsVisible() {
		bottom = a.command.View()
	} else if a.naming {
		bottom = InputFocusedStyle.Width(a.width - 4).Render(a.nameInput.View())
	} else {
		bottom = a.renderStatusBar()
	}

	full := lipgloss.JoinVertical(lipgloss.Left, header, body, bottom)

	// Fill the screen exactly so stale content never bleeds through
	lines := strings.Split(full, "\n")
	if len(lines) < a.height {
		for len(lines) < a.height {
			lines = append(lines, "")
		}
	} else if len(lines) > a.height {
		lines = lines[:a.height]
	}

	return strings.Join(lines, "\n")
}

func (a *App) renderHeader() string {
	doc := a.controller.Document()

	name := doc.Name()
	if name == "" {
		name = "(unnamed)"
	}

	left := LogoStyle.Render("Template Studio") + "  " +
		TextNormal.Render(name) + "  " +
		TextMuted.Render(doc.Kind()+"/"+doc.Mode())

	var badge string
	switch a.controller.State() {
	case draft.StateClean:
		badge = SuccessStyle.Render("clean")
	case draft.StateDirty:
		badge = WarningStyle.Render("unsaved")
	case draft.StateSaving:
		badge = a.spinner.View() + InfoStyle.Render(" saving")
	case draft.StateSaveError:
		badge = ErrorStyle.Render("save failed")
	}
	if a.controller.SavedNotice() {
		badge = SuccessStyle.Render("saved ✓")
	}

	gap := a.width - lipgloss.Width(left) - lipgloss.Width(badge) - 2
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + badge
}

func (a *App) renderConfirmDialog() string {
	var text string
	switch a.controller.Pending() {
	case draft.PendingPresetReplace:
		text = "Applying this preset replaces your current layout.\nDeleted sections cannot be restored afterwards.\n\n" +
			RenderHelp("y", "replace") + "   " + RenderHelp("n", "keep my layout")
	case draft.PendingDiscard:
		text = "Close the editor and discard unsaved changes?\n\n" +
			RenderHelp("y", "discard") + "   " + RenderHelp("n", "keep editing")
	}
	return DialogStyle.Render(text)
}

func (a *App) renderSaveErrorDialog() string {
	text := ErrorStyle.Render("Save failed") + "\n\n" +
		TextNormal.Render(a.controller.SaveError()) + "\n\n" +
		TextMuted.Render("Your draft is untouched. Press any key, then save again to retry.")
	return DialogStyle.Render(text)
}

func (a *App) renderStatusBar() string {
	base := lipgloss.NewStyle().Background(BgCard).Foreground(colorTextNormal)

	help := strings.Join([]string{
		RenderHelp("a", "add"),
		RenderHelp("d", "delete"),
		RenderHelp("u", "restore"),
		RenderHelp("J/K", "move"),
		RenderHelp("p", "preset"),
		RenderHelp("n", "name"),
		RenderHelp("s", "save"),
		RenderHelp(":", "cmd"),
		RenderHelp("q", "quit"),
	}, "  ")

	var msg string
	if a.status.message != "" {
		text := Truncate(a.status.message, maxInt(10, a.width-lipgloss.Width(help)-6))
		switch a.status.level {
		case "error":
			msg = ErrorStyle.Render(text)
		case "warning":
			msg = WarningStyle.Render(text)
		case "success":
			msg = SuccessStyle.Render(text)
		default:
			msg = TextNormal.Render(text)
		}
	}

	gap := a.width - lipgloss.Width(help) - lipgloss.Width(msg) - 2
	if gap < 1 {
		gap = 1
	}
	return base.Width(a.width).Render(help + strings.Repeat(" ", gap) + msg)
}

func (a *App) bottomAreaHeight() int {
	if a.command.IsVisible() {
		h := a.height / 3
		if h < 5 {
			h = 5
		}
		if h > 10 {
			h = 10
		}
		return h
	}
	return 1
}

// Run starts the TUI
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
