package command

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/thereceipt/template-studio/internal/catalog"
	"github.com/thereceipt/template-studio/internal/draft"
	"github.com/thereceipt/template-studio/internal/preset"
)

// handleAdd handles add commands
// Usage: add <kind>
func (e *Executor) handleAdd(args []string) *Result {
	if len(args) < 1 {
		return &Result{
			Success: false,
			Error:   "usage: add <kind>",
		}
	}

	kind := args[0]
	if !e.controller.AddSection(kind) {
		return &Result{
			Success: false,
			Error:   "editor is busy",
		}
	}

	sections := e.controller.Document().Sections()
	added := sections[len(sections)-1]

	msg := fmt.Sprintf("added %s", catalog.Label(kind))
	if !catalog.Known(kind) {
		msg = fmt.Sprintf("added unknown section %q (rendered as placeholder)", kind)
	}
	return &Result{
		Success: true,
		Message: msg,
		Data: map[string]any{
			"id":   added.ID,
			"kind": added.Kind,
		},
	}
}

// handleDelete handles delete commands
// Usage: delete <section-id>
func (e *Executor) handleDelete(args []string) *Result {
	if len(args) < 1 {
		return &Result{
			Success: false,
			Error:   "usage: delete <section-id>",
		}
	}

	id := args[0]
	if !e.controller.DeleteSection(id) {
		return &Result{
			Success: false,
			Error:   fmt.Sprintf("section not found: %s", id),
		}
	}
	return &Result{
		Success: true,
		Message: fmt.Sprintf("deleted %s (restore with 'restore %s')", id, id),
	}
}

// handleRestore handles restore commands
// Usage: restore <section-id>
func (e *Executor) handleRestore(args []string) *Result {
	if len(args) < 1 {
		return &Result{
			Success: false,
			Error:   "usage: restore <section-id>",
		}
	}

	id := args[0]
	if !e.controller.RestoreSection(id) {
		return &Result{
			Success: false,
			Error:   fmt.Sprintf("nothing to restore for: %s", id),
		}
	}

	sections := e.controller.Document().Sections()
	restored := sections[len(sections)-1]
	return &Result{
		Success: true,
		Message: fmt.Sprintf("restored %s as %s", catalog.Label(restored.Kind), restored.ID),
		Data: map[string]any{
			"id": restored.ID,
		},
	}
}

// handleReorder handles reorder commands
// Usage: reorder <from-index> <to-index>
func (e *Executor) handleReorder(args []string) *Result {
	if len(args) < 2 {
		return &Result{
			Success: false,
			Error:   "usage: reorder <from-index> <to-index>",
		}
	}

	from, err1 := strconv.Atoi(args[0])
	to, err2 := strconv.Atoi(args[1])
	if err1 != nil || err2 != nil {
		return &Result{
			Success: false,
			Error:   "indexes must be integers",
		}
	}

	if !e.controller.Reorder(from, to) {
		return &Result{
			Success: false,
			Error:   fmt.Sprintf("cannot move %d to %d", from, to),
		}
	}
	return &Result{
		Success: true,
		Message: fmt.Sprintf("moved section %d to %d", from, to),
	}
}

// handleSet handles property updates
// Usage: set <section-id> <key> <value>
func (e *Executor) handleSet(args []string) *Result {
	if len(args) < 3 {
		return &Result{
			Success: false,
			Error:   "usage: set <section-id> <key> <value>",
		}
	}

	id, key := args[0], args[1]
	value := parseValue(strings.Join(args[2:], " "))

	if !e.controller.UpdateProperties(id, map[string]any{key: value}) {
		return &Result{
			Success: false,
			Error:   fmt.Sprintf("section not found: %s", id),
		}
	}
	return &Result{
		Success: true,
		Message: fmt.Sprintf("set %s.%s = %v", id, key, value),
	}
}

// handleSelect handles select commands
// Usage: select <section-id> | select none
func (e *Executor) handleSelect(args []string) *Result {
	if len(args) < 1 {
		return &Result{
			Success: false,
			Error:   "usage: select <section-id>|none",
		}
	}

	id := args[0]
	if id == "none" {
		id = ""
	}
	e.controller.Select(id)
	return &Result{Success: true, Message: "selection updated"}
}

// handleName handles name commands
// Usage: name <template-name>
func (e *Executor) handleName(args []string) *Result {
	if len(args) < 1 {
		return &Result{
			Success: false,
			Error:   "usage: name <template-name>",
		}
	}

	name := strings.Join(args, " ")
	if !e.controller.SetName(name) {
		return &Result{
			Success: false,
			Error:   "editor is busy",
		}
	}
	return &Result{
		Success: true,
		Message: fmt.Sprintf("template named %q", name),
	}
}

// handleAccent handles accent commands
// Usage: accent <#rrggbb>
func (e *Executor) handleAccent(args []string) *Result {
	if len(args) < 1 {
		return &Result{
			Success: false,
			Error:   "usage: accent <#rrggbb>",
		}
	}

	if !e.controller.SetAccentColor(args[0]) {
		return &Result{
			Success: false,
			Error:   "editor is busy",
		}
	}
	return &Result{
		Success: true,
		Message: fmt.Sprintf("accent color set to %s", args[0]),
	}
}

// handlePreset handles preset commands
// Usage: preset list | preset apply <key>
func (e *Executor) handlePreset(args []string) *Result {
	if len(args) < 1 {
		return &Result{
			Success: false,
			Error:   "usage: preset list | preset apply <key>",
		}
	}

	switch args[0] {
	case "list":
		infos := preset.List("")
		presets := make([]map[string]any, len(infos))
		for i, p := range infos {
			presets[i] = map[string]any{
				"key":      p.Key,
				"name":     p.Name,
				"kind":     p.Kind,
				"sections": p.SectionCount,
			}
		}
		return &Result{
			Success: true,
			Message: fmt.Sprintf("%d presets available", len(infos)),
			Data:    map[string]any{"presets": presets},
		}

	case "apply":
		if len(args) < 2 {
			return &Result{
				Success: false,
				Error:   "usage: preset apply <key>",
			}
		}
		applied, err := e.controller.RequestApplyPreset(args[1])
		if err != nil {
			return &Result{
				Success: false,
				Error:   err.Error(),
			}
		}
		if !applied {
			return &Result{
				Success: true,
				Message: "applying this preset replaces your current layout; 'confirm' to proceed or 'cancel' to keep it",
				Data:    map[string]any{"pending": string(e.controller.Pending())},
			}
		}
		return &Result{
			Success: true,
			Message: fmt.Sprintf("applied preset %s", args[1]),
		}

	default:
		return &Result{
			Success: false,
			Error:   fmt.Sprintf("unknown preset subcommand: %s", args[0]),
		}
	}
}

// handleSections lists the current layout
func (e *Executor) handleSections() *Result {
	doc := e.controller.Document()
	sections := doc.Sections()

	items := make([]map[string]any, len(sections))
	for i, s := range sections {
		items[i] = map[string]any{
			"index": i,
			"id":    s.ID,
			"kind":  s.Kind,
			"label": catalog.Label(s.Kind),
		}
	}
	return &Result{
		Success: true,
		Message: fmt.Sprintf("%d sections", len(sections)),
		Data:    map[string]any{"sections": items},
	}
}

// handleTrash lists deleted sections available for restore
func (e *Executor) handleTrash() *Result {
	trash := e.controller.Document().Trash()

	items := make([]map[string]any, len(trash))
	for i, s := range trash {
		items[i] = map[string]any{
			"id":    s.ID,
			"kind":  s.Kind,
			"label": catalog.Label(s.Kind),
		}
	}
	return &Result{
		Success: true,
		Message: fmt.Sprintf("%d deleted sections", len(trash)),
		Data:    map[string]any{"trash": items},
	}
}

// handleKinds lists the section kinds that can be added
func (e *Executor) handleKinds() *Result {
	kinds := catalog.Kinds()
	items := make([]map[string]any, len(kinds))
	for i, k := range kinds {
		items[i] = map[string]any{
			"kind":  k,
			"label": catalog.Label(k),
		}
	}
	return &Result{
		Success: true,
		Message: fmt.Sprintf("%d section kinds", len(kinds)),
		Data:    map[string]any{"kinds": items},
	}
}

// handleConfirm resolves a pending confirmation
func (e *Executor) handleConfirm() *Result {
	pending := e.controller.Pending()
	if pending == draft.PendingNone {
		return &Result{
			Success: false,
			Error:   "nothing to confirm",
		}
	}
	if err := e.controller.Confirm(); err != nil {
		return &Result{
			Success: false,
			Error:   err.Error(),
		}
	}
	if pending == draft.PendingDiscard {
		return &Result{Success: true, Message: "editor closed"}
	}
	return &Result{Success: true, Message: "preset applied"}
}

// handleSave hands the draft to the store
func (e *Executor) handleSave(ctx context.Context) *Result {
	err := e.controller.Save(ctx)
	if err == nil {
		e.controller.DismissSavedNotice()
		return &Result{
			Success: true,
			Message: fmt.Sprintf("saved %q", e.controller.Document().Name()),
		}
	}

	if errors.Is(err, draft.ErrNameRequired) {
		return &Result{
			Success: false,
			Error:   "template needs a name first: name <template-name>",
		}
	}
	return &Result{
		Success: false,
		Error:   e.controller.SaveError(),
	}
}

// handleClose asks to close the editing session
func (e *Executor) handleClose() *Result {
	closed, err := e.controller.RequestClose()
	if err != nil {
		return &Result{
			Success: false,
			Error:   err.Error(),
		}
	}
	if !closed {
		return &Result{
			Success: true,
			Message: "you have unsaved changes; 'confirm' to discard or 'cancel' to keep editing",
			Data:    map[string]any{"pending": string(e.controller.Pending())},
		}
	}
	return &Result{Success: true, Message: "editor closed"}
}

// handleStatus reports the session state
func (e *Executor) handleStatus() *Result {
	doc := e.controller.Document()
	return &Result{
		Success: true,
		Message: string(e.controller.State()),
		Data: map[string]any{
			"state":     string(e.controller.State()),
			"pending":   string(e.controller.Pending()),
			"name":      doc.Name(),
			"kind":      doc.Kind(),
			"mode":      doc.Mode(),
			"accent":    doc.AccentColor(),
			"sections":  len(doc.Sections()),
			"trash":     len(doc.Trash()),
			"selection": doc.Selection(),
			"saveError": e.controller.SaveError(),
		},
	}
}

// handleHelp handles help commands
func (e *Executor) handleHelp(args []string) *Result {
	help := `Available commands:

Layout:
  add <kind>                    Add a section (see 'kinds')
  delete <section-id>           Move a section to the trash
  restore <section-id>          Restore a deleted section
  reorder <from> <to>           Move a section to a new position
  set <id> <key> <value>        Update a section property
  select <section-id>|none      Change the selection
  sections                      List the current layout
  trash                         List deleted sections
  kinds                         List available section kinds

Template:
  name <template-name>          Set the template name
  accent <#rrggbb>              Set the accent color
  preset list                   List starter presets
  preset apply <key>            Replace the layout with a preset

Session:
  save                          Save the template
  close                         Close the editor
  confirm / cancel              Resolve a pending confirmation
  status                        Show the session state
  help                          Show this help`

	return &Result{
		Success: true,
		Message: help,
	}
}
