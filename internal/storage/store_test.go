package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/thereceipt/template-studio/internal/document"
	"github.com/thereceipt/template-studio/pkg/templatedoc"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "templates.json"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	return s
}

func testDoc(name string) *templatedoc.Document {
	d := document.NewStarter(templatedoc.KindInvoice)
	d.SetName(name)
	return d.Snapshot()
}

func TestSaveAndLoad(t *testing.T) {
	s := newTestStore(t)

	if err := s.Save(context.Background(), testDoc("Quarterly Invoice")); err != nil {
		t.Fatalf("Expected successful save, got %v", err)
	}

	entries := s.List()
	if len(entries) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(entries))
	}
	if entries[0].Name != "Quarterly Invoice" {
		t.Errorf("Expected entry name kept, got %s", entries[0].Name)
	}

	loaded, err := s.Load(entries[0].ID)
	if err != nil {
		t.Fatalf("Expected successful load, got %v", err)
	}
	if loaded.Name != "Quarterly Invoice" || len(loaded.Sections) == 0 {
		t.Error("Expected full document round-trip")
	}
}

func TestSave_RejectsInvalidDocument(t *testing.T) {
	s := newTestStore(t)

	doc := testDoc("") // empty name
	if err := s.Save(context.Background(), doc); err == nil {
		t.Error("Expected error for unnamed document")
	}
	if len(s.List()) != 0 {
		t.Error("Invalid document must not be stored")
	}
}

func TestSave_SameNameReplaces(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	first := testDoc("Monthly")
	if err := s.Save(ctx, first); err != nil {
		t.Fatal(err)
	}

	second := testDoc("monthly") // case-insensitive match
	second.AccentColor = "#ff0055"
	if err := s.Save(ctx, second); err != nil {
		t.Fatal(err)
	}

	entries := s.List()
	if len(entries) != 1 {
		t.Fatalf("Expected replacement, got %d entries", len(entries))
	}

	loaded, err := s.Load(entries[0].ID)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.AccentColor != "#ff0055" {
		t.Error("Expected newer document to replace the older one")
	}
}

func TestLoad_ReturnsCopies(t *testing.T) {
	s := newTestStore(t)
	if err := s.Save(context.Background(), testDoc("Mutable?")); err != nil {
		t.Fatal(err)
	}
	id := s.List()[0].ID

	first, _ := s.Load(id)
	first.Sections[0].Properties["alignment"] = "right"
	first.Name = "Mutated"

	second, _ := s.Load(id)
	if second.Name != "Mutable?" {
		t.Error("Load must return copies, not shared state")
	}
	if second.Sections[0].Properties["alignment"] == "right" {
		t.Error("Load must deep-copy section properties")
	}
}

func TestDelete(t *testing.T) {
	s := newTestStore(t)
	if err := s.Save(context.Background(), testDoc("Doomed")); err != nil {
		t.Fatal(err)
	}
	id := s.List()[0].ID

	if !s.Delete(id) {
		t.Error("Expected delete to apply")
	}
	if s.Delete(id) {
		t.Error("Expected second delete to report false")
	}
	if _, err := s.Load(id); err == nil {
		t.Error("Expected load of deleted template to fail")
	}
}

func TestPersistence_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "templates.json")

	s1, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	want := testDoc("Durable")
	if err := s1.Save(context.Background(), want); err != nil {
		t.Fatal(err)
	}
	id := s1.List()[0].ID

	s2, err := New(path)
	if err != nil {
		t.Fatalf("Expected reopen to succeed, got %v", err)
	}
	got, err := s2.Load(id)
	if err != nil {
		t.Fatalf("Expected saved template after reopen, got %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Reloaded document mismatch (-want +got):\n%s", diff)
	}
}

func TestSave_CancelledContext(t *testing.T) {
	s := newTestStore(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := s.Save(ctx, testDoc("Too late")); err == nil {
		t.Error("Expected error for cancelled context")
	}
}
