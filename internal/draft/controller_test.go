package draft

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/thereceipt/template-studio/internal/document"
	"github.com/thereceipt/template-studio/pkg/templatedoc"
)

// fakeStore is a persistence collaborator for tests.
type fakeStore struct {
	mu      sync.Mutex
	calls   int
	fail    error
	last    *templatedoc.Document
	release chan struct{} // when set, Save blocks until closed
}

func (f *fakeStore) Save(ctx context.Context, doc *templatedoc.Document) error {
	f.mu.Lock()
	f.calls++
	f.last = doc
	release := f.release
	fail := f.fail
	f.mu.Unlock()

	if release != nil {
		<-release
	}
	return fail
}

func (f *fakeStore) saveCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func newDirtyController(store *fakeStore) *Controller {
	c := New(document.New(templatedoc.KindInvoice, templatedoc.ModeLinear), store)
	c.SetName("Draft Invoice")
	c.AddSection("header")
	return c
}

func TestMutationsMakeDirty(t *testing.T) {
	c := New(document.NewStarter(templatedoc.KindInvoice), &fakeStore{})

	if c.State() != StateClean {
		t.Fatalf("Expected fresh controller Clean, got %s", c.State())
	}

	c.AddSection("divider")
	if c.State() != StateDirty {
		t.Errorf("Expected Dirty after mutation, got %s", c.State())
	}
}

func TestSelect_DoesNotDirty(t *testing.T) {
	doc := document.NewStarter(templatedoc.KindInvoice)
	id := doc.Sections()[0].ID
	c := New(doc, &fakeStore{})

	c.Select(id)
	if c.State() != StateClean {
		t.Errorf("Selection must not dirty the draft, got %s", c.State())
	}
}

func TestSave_EmptyNameRejectedLocally(t *testing.T) {
	store := &fakeStore{}
	c := New(document.New(templatedoc.KindInvoice, templatedoc.ModeLinear), store)
	c.AddSection("header")

	for _, name := range []string{"", "   "} {
		c.SetName(name)
		err := c.Save(context.Background())
		if !errors.Is(err, ErrNameRequired) {
			t.Errorf("Expected ErrNameRequired for name %q, got %v", name, err)
		}
		if store.saveCalls() != 0 {
			t.Error("Store must never be called with an invalid name")
		}
		if c.State() != StateDirty {
			t.Errorf("Expected state Dirty after rejected save, got %s", c.State())
		}
		if c.NameError() == "" {
			t.Error("Expected field-level name error")
		}
	}
}

func TestSave_Success(t *testing.T) {
	store := &fakeStore{}
	c := newDirtyController(store)

	if err := c.Save(context.Background()); err != nil {
		t.Fatalf("Expected successful save, got %v", err)
	}
	if c.State() != StateClean {
		t.Errorf("Expected Clean after save, got %s", c.State())
	}
	if !c.SavedNotice() {
		t.Error("Expected saved notice after success")
	}
	if store.last == nil || store.last.Name != "Draft Invoice" {
		t.Error("Expected serialized document handed to the store")
	}

	c.DismissSavedNotice()
	if c.SavedNotice() {
		t.Error("Expected notice dismissed by the caller")
	}
}

func TestSave_FailureIsRecoverable(t *testing.T) {
	store := &fakeStore{fail: errors.New("storage quota exceeded")}
	c := newDirtyController(store)

	if err := c.Save(context.Background()); err == nil {
		t.Fatal("Expected save error")
	}
	if c.State() != StateSaveError {
		t.Errorf("Expected SaveError, got %s", c.State())
	}
	if c.SaveError() != "storage quota exceeded" {
		t.Errorf("Expected collaborator message verbatim, got %q", c.SaveError())
	}

	// The draft is retained
	if len(c.Document().Sections()) != 1 {
		t.Error("Draft must be retained after a failed save")
	}

	// Retry succeeds
	store.mu.Lock()
	store.fail = nil
	store.mu.Unlock()
	c.AcknowledgeError()
	if c.State() != StateDirty {
		t.Errorf("Expected Dirty after acknowledging error, got %s", c.State())
	}
	if err := c.Save(context.Background()); err != nil {
		t.Fatalf("Expected retry to succeed, got %v", err)
	}
	if c.State() != StateClean {
		t.Errorf("Expected Clean after retry, got %s", c.State())
	}
}

func TestSave_RejectsMutationsWhileInFlight(t *testing.T) {
	release := make(chan struct{})
	store := &fakeStore{release: release}
	c := newDirtyController(store)

	done := make(chan error, 1)
	go func() { done <- c.Save(context.Background()) }()

	// Wait until the save is in flight
	for c.State() != StateSaving {
		time.Sleep(time.Millisecond)
	}

	if c.AddSection("totals") {
		t.Error("Mutations while Saving must be rejected, not queued")
	}
	if c.Reorder(0, 0) {
		t.Error("Reorder while Saving must be rejected")
	}
	if err := c.Save(context.Background()); !errors.Is(err, ErrBusy) {
		t.Errorf("Expected ErrBusy for concurrent save, got %v", err)
	}
	if _, err := c.RequestClose(); !errors.Is(err, ErrBusy) {
		t.Errorf("Expected ErrBusy for close during save, got %v", err)
	}

	close(release)
	if err := <-done; err != nil {
		t.Fatalf("Expected in-flight save to complete, got %v", err)
	}
	if len(c.Document().Sections()) != 1 {
		t.Error("Rejected mutation must not have been applied")
	}
}

func TestRequestApplyPreset_ImmediateWhenClean(t *testing.T) {
	c := New(document.NewStarter(templatedoc.KindInvoice), &fakeStore{})

	applied, err := c.RequestApplyPreset("modern")
	if err != nil {
		t.Fatalf("Expected apply, got error: %v", err)
	}
	if !applied {
		t.Fatal("Expected immediate apply on a clean draft")
	}
	if c.State() != StateDirty {
		t.Errorf("Expected Dirty after preset apply, got %s", c.State())
	}
}

func TestRequestApplyPreset_ImmediateWhenEmpty(t *testing.T) {
	c := New(document.New(templatedoc.KindInvoice, templatedoc.ModeLinear), &fakeStore{})
	c.SetName("Renamed but empty") // dirty, but no sections

	applied, err := c.RequestApplyPreset("classic")
	if err != nil || !applied {
		t.Fatalf("Expected immediate apply on an empty draft, applied=%v err=%v", applied, err)
	}
}

func TestRequestApplyPreset_ConfirmFlow(t *testing.T) {
	c := newDirtyController(&fakeStore{})
	before := c.Document().Sections()

	applied, err := c.RequestApplyPreset("modern")
	if err != nil {
		t.Fatalf("Expected pending confirm, got error: %v", err)
	}
	if applied {
		t.Fatal("Expected no immediate apply on a dirty draft")
	}
	if c.Pending() != PendingPresetReplace {
		t.Fatalf("Expected pending preset replace, got %s", c.Pending())
	}

	// Sections untouched until confirm
	after := c.Document().Sections()
	if len(after) != len(before) || after[0].ID != before[0].ID {
		t.Fatal("Sections must be unchanged while confirmation is pending")
	}

	if err := c.Confirm(); err != nil {
		t.Fatalf("Expected confirm to apply preset, got %v", err)
	}
	if c.Pending() != PendingNone {
		t.Error("Expected pending cleared after confirm")
	}
	if len(c.Document().Trash()) != 0 {
		t.Error("Expected trash cleared by preset apply")
	}
	if c.Document().Sections()[0].ID == before[0].ID {
		t.Error("Expected sections replaced after confirm")
	}
}

func TestRequestApplyPreset_CancelKeepsEverything(t *testing.T) {
	c := newDirtyController(&fakeStore{})
	before := c.Document().Sections()

	c.RequestApplyPreset("modern")
	c.Cancel()

	if c.Pending() != PendingNone {
		t.Error("Expected pending cleared after cancel")
	}
	if c.State() != StateDirty {
		t.Errorf("Expected prior state retained, got %s", c.State())
	}
	after := c.Document().Sections()
	if len(after) != len(before) || after[0].ID != before[0].ID {
		t.Error("Cancel must leave sections permanently unchanged")
	}

	// Confirm after cancel must not apply the stale key
	if err := c.Confirm(); err != nil {
		t.Errorf("Confirm with nothing pending must be a no-op, got %v", err)
	}
	if c.Document().Sections()[0].ID != before[0].ID {
		t.Error("Stale preset key must have been discarded")
	}
}

func TestRequestApplyPreset_UnknownKey(t *testing.T) {
	c := newDirtyController(&fakeStore{})

	if _, err := c.RequestApplyPreset("vaporwave"); err == nil {
		t.Error("Expected error for unknown preset key")
	}
	if c.Pending() != PendingNone {
		t.Error("Unknown preset must not leave a pending confirmation")
	}
}

func TestRequestClose_CleanClosesImmediately(t *testing.T) {
	c := New(document.NewStarter(templatedoc.KindInvoice), &fakeStore{})

	closed, err := c.RequestClose()
	if err != nil || !closed {
		t.Fatalf("Expected clean draft to close immediately, closed=%v err=%v", closed, err)
	}
	if !c.Closed() {
		t.Error("Expected session closed")
	}
}

func TestRequestClose_DirtyNeedsConfirm(t *testing.T) {
	c := newDirtyController(&fakeStore{})

	closed, err := c.RequestClose()
	if err != nil {
		t.Fatalf("Expected pending discard, got error: %v", err)
	}
	if closed {
		t.Fatal("Dirty draft must not close without confirmation")
	}
	if c.Pending() != PendingDiscard {
		t.Fatalf("Expected pending discard, got %s", c.Pending())
	}

	c.Cancel()
	if c.Closed() {
		t.Error("Cancel must return to the editing session")
	}
	if c.State() != StateDirty {
		t.Errorf("Expected prior state after cancel, got %s", c.State())
	}

	c.RequestClose()
	c.Confirm()
	if !c.Closed() {
		t.Error("Confirm must close the session")
	}
}

func TestRequestClose_LoadedExistingAlwaysConfirms(t *testing.T) {
	snap := document.NewStarter(templatedoc.KindInvoice).Snapshot()
	snap.Name = "Saved Template"
	c := NewFromSaved(document.FromSnapshot(snap), &fakeStore{})

	closed, err := c.RequestClose()
	if err != nil {
		t.Fatalf("Expected pending discard, got error: %v", err)
	}
	if closed {
		t.Error("A draft loaded from a saved template must confirm on close")
	}
}

func TestEditDraft_ConfirmAndCancel(t *testing.T) {
	c := newDirtyController(&fakeStore{})
	id := c.Document().Sections()[0].ID

	if !c.BeginEdit(id) {
		t.Fatal("Expected edit draft to open")
	}
	c.SetEditProperty("alignment", "center")
	c.SetEditProperty("fontSize", "lg")

	// Canonical document untouched before confirm
	if c.Document().Sections()[0].Properties["alignment"] != "left" {
		t.Fatal("Edit draft must not leak into the document before confirm")
	}

	if !c.ConfirmEdit() {
		t.Fatal("Expected confirm to merge the draft")
	}
	props := c.Document().Sections()[0].Properties
	if props["alignment"] != "center" || props["fontSize"] != "lg" {
		t.Errorf("Expected merged properties, got %v", props)
	}

	// Cancel path
	c.BeginEdit(id)
	c.SetEditProperty("alignment", "right")
	c.CancelEdit()
	if c.Document().Sections()[0].Properties["alignment"] != "center" {
		t.Error("Cancelled edit draft must be discarded")
	}
	if c.SetEditProperty("alignment", "right") {
		t.Error("SetEditProperty without an open draft must be a no-op")
	}
}

func TestEditDraft_SectionDeletedUnderneath(t *testing.T) {
	c := newDirtyController(&fakeStore{})
	id := c.Document().Sections()[0].ID

	c.BeginEdit(id)
	c.SetEditProperty("alignment", "center")
	c.DeleteSection(id)

	if c.ConfirmEdit() {
		t.Error("Confirming an edit of a deleted section must report failure")
	}
	if c.EditingSection() != "" {
		t.Error("Edit draft must be closed either way")
	}
}
