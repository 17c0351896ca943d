// Package command provides a text command system for the template editor
package command

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/thereceipt/template-studio/internal/draft"
)

// Executor executes editor commands against one editing session
type Executor struct {
	controller *draft.Controller
}

// NewExecutor creates a new command executor
func NewExecutor(controller *draft.Controller) *Executor {
	return &Executor{controller: controller}
}

// Result represents the result of executing a command
type Result struct {
	Success bool           `json:"success"`
	Message string         `json:"message,omitempty"`
	Data    map[string]any `json:"data,omitempty"`
	Error   string         `json:"error,omitempty"`
}

// Execute executes a command string and returns a result
func (e *Executor) Execute(ctx context.Context, cmdStr string) *Result {
	parts := parseCommand(cmdStr)
	if len(parts) == 0 {
		return &Result{
			Success: false,
			Error:   "empty command",
		}
	}

	command := parts[0]
	args := parts[1:]

	// Route to appropriate handler
	switch command {
	case "add":
		return e.handleAdd(args)
	case "delete":
		return e.handleDelete(args)
	case "restore":
		return e.handleRestore(args)
	case "reorder":
		return e.handleReorder(args)
	case "set":
		return e.handleSet(args)
	case "select":
		return e.handleSelect(args)
	case "name":
		return e.handleName(args)
	case "accent":
		return e.handleAccent(args)
	case "preset":
		return e.handlePreset(args)
	case "sections":
		return e.handleSections()
	case "trash":
		return e.handleTrash()
	case "kinds":
		return e.handleKinds()
	case "confirm":
		return e.handleConfirm()
	case "cancel":
		e.controller.Cancel()
		return &Result{Success: true, Message: "cancelled"}
	case "save":
		return e.handleSave(ctx)
	case "close":
		return e.handleClose()
	case "status":
		return e.handleStatus()
	case "help":
		return e.handleHelp(args)
	default:
		return &Result{
			Success: false,
			Error:   fmt.Sprintf("unknown command: %s. Type 'help' for available commands", command),
		}
	}
}

// parseCommand parses a command string into parts, handling quoted strings
func parseCommand(cmdStr string) []string {
	cmdStr = strings.TrimSpace(cmdStr)
	if cmdStr == "" {
		return []string{}
	}

	var parts []string
	var current strings.Builder
	inQuotes := false
	quoteChar := byte(0)

	for i := 0; i < len(cmdStr); i++ {
		char := cmdStr[i]

		if char == '"' || char == '\'' {
			if !inQuotes {
				inQuotes = true
				quoteChar = char
			} else if char == quoteChar {
				inQuotes = false
				quoteChar = 0
			} else {
				current.WriteByte(char)
			}
		} else if char == ' ' && !inQuotes {
			if current.Len() > 0 {
				parts = append(parts, current.String())
				current.Reset()
			}
		} else {
			current.WriteByte(char)
		}
	}

	if current.Len() > 0 {
		parts = append(parts, current.String())
	}

	return parts
}

// parseValue converts a command argument into a property value. Bools
// and numbers are recognized; everything else stays a string.
func parseValue(s string) any {
	switch s {
	case "true":
		return true
	case "false":
		return false
	}
	if n, err := strconv.ParseFloat(s, 64); err == nil {
		return n
	}
	return s
}
