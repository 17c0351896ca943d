// Package draft orchestrates the editing session: dirty tracking,
// destructive-action confirmation, and handing the document to the
// persistence collaborator
package draft

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/thereceipt/template-studio/internal/document"
	"github.com/thereceipt/template-studio/internal/preset"
	"github.com/thereceipt/template-studio/pkg/templatedoc"
)

// State is the controller's save state.
type State string

const (
	StateClean     State = "clean"
	StateDirty     State = "dirty"
	StateSaving    State = "saving"
	StateSaveError State = "save_error"
)

// Pending is a confirmation sub-state. While a confirmation is pending
// the main state is unchanged; Confirm or Cancel resolves it.
type Pending string

const (
	PendingNone          Pending = ""
	PendingPresetReplace Pending = "confirm_preset_replace"
	PendingDiscard       Pending = "confirm_discard"
)

var (
	// ErrNameRequired is the local validation failure for an empty or
	// whitespace-only name. The store is never called in this case.
	ErrNameRequired = errors.New("template name is required")

	// ErrBusy is returned when an operation is attempted while a save
	// is in flight. Mutations are rejected, not queued.
	ErrBusy = errors.New("save in progress")

	// ErrClosed is returned once the session has been closed.
	ErrClosed = errors.New("editor session is closed")
)

// genericSaveError is surfaced when the store fails without a message.
const genericSaveError = "failed to save template, please try again"

// Persistence is the external save collaborator. The controller does
// not know how documents are transported or stored.
type Persistence interface {
	Save(ctx context.Context, doc *templatedoc.Document) error
}

// Controller is the editing-session state machine. All methods are safe
// for concurrent use, but the model is single-writer: exactly one
// document is edited per session.
type Controller struct {
	mu    sync.Mutex
	doc   *document.Document
	store Persistence

	state            State
	pending          Pending
	pendingPresetKey string

	loadedExisting bool
	closed         bool
	saveError      string
	nameError      string
	savedNotice    bool

	editID    string
	editDraft map[string]any
}

// New creates a controller around a draft document. A fresh or freshly
// loaded document starts Clean.
func New(doc *document.Document, store Persistence) *Controller {
	return &Controller{doc: doc, store: store, state: StateClean}
}

// NewFromSaved creates a controller for a document loaded from an
// existing saved template. Closing such a session always asks for
// confirmation, even without new edits.
func NewFromSaved(doc *document.Document, store Persistence) *Controller {
	c := New(doc, store)
	c.loadedExisting = true
	return c
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Controller) Pending() Pending {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending
}

// SaveError returns the message from the last failed save, empty when
// the last save succeeded.
func (c *Controller) SaveError() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.saveError
}

// NameError returns the field-level validation message for the name,
// empty when the name is acceptable.
func (c *Controller) NameError() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.nameError
}

// Closed reports whether the session has been closed.
func (c *Controller) Closed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// SavedNotice reports whether an unacknowledged "saved" notification is
// showing. It is dismissed by the caller, never by a timer.
func (c *Controller) SavedNotice() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.savedNotice
}

// DismissSavedNotice acknowledges the saved notification.
func (c *Controller) DismissSavedNotice() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.savedNotice = false
}

// Document returns the underlying draft document.
func (c *Controller) Document() *document.Document {
	return c.doc
}

// mutate runs a document mutation unless a save is in flight or the
// session is closed. Any applied mutation makes the draft Dirty.
func (c *Controller) mutate(fn func() bool) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == StateSaving || c.closed {
		return false
	}
	if !fn() {
		return false
	}
	c.markDirtyLocked()
	return true
}

func (c *Controller) markDirtyLocked() {
	if c.state != StateSaving {
		c.state = StateDirty
	}
}

// SetName updates the draft name and clears any field-level name error.
func (c *Controller) SetName(name string) bool {
	return c.mutate(func() bool {
		c.doc.SetName(name)
		c.nameError = ""
		return true
	})
}

func (c *Controller) SetAccentColor(color string) bool {
	return c.mutate(func() bool {
		c.doc.SetAccentColor(color)
		return true
	})
}

func (c *Controller) AddSection(kind string) bool {
	return c.mutate(func() bool {
		c.doc.AddSection(kind)
		return true
	})
}

func (c *Controller) DeleteSection(id string) bool {
	return c.mutate(func() bool { return c.doc.DeleteSection(id) })
}

func (c *Controller) RestoreSection(id string) bool {
	return c.mutate(func() bool {
		_, ok := c.doc.RestoreSection(id)
		return ok
	})
}

func (c *Controller) Reorder(fromIndex, toIndex int) bool {
	return c.mutate(func() bool { return c.doc.Reorder(fromIndex, toIndex) })
}

// UpdateProperties merges a property patch into a section in one step,
// for callers that do not need the keystroke-level edit draft.
func (c *Controller) UpdateProperties(id string, patch map[string]any) bool {
	return c.mutate(func() bool { return c.doc.UpdateProperties(id, patch) })
}

func (c *Controller) AddElement(kind string) bool {
	return c.mutate(func() bool {
		c.doc.AddElement(kind)
		return true
	})
}

func (c *Controller) MoveElement(id string, x, y float64) bool {
	return c.mutate(func() bool { return c.doc.MoveElement(id, x, y) })
}

func (c *Controller) ResizeElement(id string, width, height float64) bool {
	return c.mutate(func() bool { return c.doc.ResizeElement(id, width, height) })
}

func (c *Controller) UpdateElement(id string, patch document.ElementPatch) bool {
	return c.mutate(func() bool { return c.doc.UpdateElement(id, patch) })
}

func (c *Controller) DeleteElement(id string) bool {
	return c.mutate(func() bool { return c.doc.DeleteElement(id) })
}

// Select changes the selection. Selection is editing state, not
// document content, so it never dirties the draft.
func (c *Controller) Select(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.doc.Select(id)
}

// RequestApplyPreset applies the preset immediately when the draft is
// Clean or still empty. Otherwise it parks the key and waits for an
// explicit Confirm; the document is untouched until then.
func (c *Controller) RequestApplyPreset(key string) (applied bool, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return false, ErrClosed
	}
	if c.state == StateSaving {
		return false, ErrBusy
	}

	if c.state == StateClean || len(c.doc.Sections()) == 0 {
		if err := c.applyPresetLocked(key); err != nil {
			return false, err
		}
		return true, nil
	}

	// Dirty with content: destructive replace needs confirmation
	if _, err := presetExists(key); err != nil {
		return false, err
	}
	c.pending = PendingPresetReplace
	c.pendingPresetKey = key
	return false, nil
}

func presetExists(key string) (bool, error) {
	if _, _, err := preset.Apply(key); err != nil {
		return false, err
	}
	return true, nil
}

func (c *Controller) applyPresetLocked(key string) error {
	sections, accent, err := preset.Apply(key)
	if err != nil {
		return err
	}
	c.doc.ApplyPreset(sections, accent)
	c.state = StateDirty
	return nil
}

// RequestClose asks to close the editor. A Dirty draft, or one loaded
// from an existing saved template, needs explicit confirmation; a
// pristine draft closes immediately. Closing while a save is in flight
// is rejected: the save is allowed to complete first.
func (c *Controller) RequestClose() (closed bool, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return true, nil
	}
	if c.state == StateSaving {
		return false, ErrBusy
	}

	if c.state == StateDirty || c.state == StateSaveError || c.loadedExisting {
		c.pending = PendingDiscard
		return false, nil
	}

	c.closed = true
	return true, nil
}

// Confirm resolves the pending confirmation: a parked preset is applied
// (clearing the trash), or the draft is discarded and the session
// closed.
func (c *Controller) Confirm() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.pending {
	case PendingPresetReplace:
		key := c.pendingPresetKey
		c.pending = PendingNone
		c.pendingPresetKey = ""
		return c.applyPresetLocked(key)
	case PendingDiscard:
		c.pending = PendingNone
		c.closed = true
		return nil
	default:
		return nil
	}
}

// Cancel abandons the pending confirmation. The document and the prior
// state are untouched; a parked preset key is discarded.
func (c *Controller) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pending = PendingNone
	c.pendingPresetKey = ""
}

// Save validates the name locally, then hands the serialized document
// to the persistence collaborator. A store failure is recoverable: the
// draft is retained, the state moves to SaveError, and calling Save
// again retries.
func (c *Controller) Save(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	if c.state == StateSaving {
		c.mu.Unlock()
		return ErrBusy
	}

	if strings.TrimSpace(c.doc.Name()) == "" {
		c.nameError = "name is required"
		if c.state != StateClean {
			c.state = StateDirty
		}
		c.mu.Unlock()
		return ErrNameRequired
	}

	c.state = StateSaving
	c.nameError = ""
	snapshot := c.doc.Snapshot()
	c.mu.Unlock()

	err := c.store.Save(ctx, snapshot)

	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		c.state = StateSaveError
		if msg := strings.TrimSpace(err.Error()); msg != "" {
			c.saveError = msg
		} else {
			c.saveError = genericSaveError
		}
		return err
	}

	c.state = StateClean
	c.saveError = ""
	c.savedNotice = true
	return nil
}

// AcknowledgeError moves the controller from SaveError back to Dirty so
// the user can keep editing or retry.
func (c *Controller) AcknowledgeError() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == StateSaveError {
		c.state = StateDirty
		c.saveError = ""
	}
}
