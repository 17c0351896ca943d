// Package storage persists saved templates to a JSON file on disk
package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/thereceipt/template-studio/pkg/templatedoc"
)

// Entry is one saved template with its bookkeeping fields.
type Entry struct {
	ID        string                `json:"id"`
	Name      string                `json:"name"`
	Kind      string                `json:"kind"`
	Mode      string                `json:"mode"`
	UpdatedAt time.Time             `json:"updated_at"`
	Document  *templatedoc.Document `json:"document"`
}

// Store manages saved templates in a single JSON file. Lookups return
// copies so callers can never corrupt the stored data.
type Store struct {
	filePath string
	data     map[string]*Entry
	mu       sync.RWMutex
}

// New creates a Store backed by the given file path.
func New(filePath string) (*Store, error) {
	s := &Store{
		filePath: filePath,
		data:     make(map[string]*Entry),
	}

	if err := s.load(); err != nil {
		// If the file doesn't exist yet, that's okay - it's created on first save
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to load template store: %w", err)
		}
	}

	return s, nil
}

// Save validates and stores a document. A document whose name matches
// an existing entry (case-insensitive) replaces that entry; otherwise a
// new entry is created. It implements the draft.Persistence contract.
func (s *Store) Save(ctx context.Context, doc *templatedoc.Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := templatedoc.ValidateForSave(doc); err != nil {
		return fmt.Errorf("invalid template: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entry := s.findByNameLocked(doc.Name)
	if entry == nil {
		entry = &Entry{ID: uuid.New().String()}
		s.data[entry.ID] = entry
	}

	entry.Name = doc.Name
	entry.Kind = doc.Kind
	entry.Mode = doc.Mode
	entry.UpdatedAt = time.Now().UTC()
	entry.Document = doc.Clone()

	if err := s.persist(); err != nil {
		// Roll nothing back; the in-memory copy is still good and the
		// next save retries the write
		return fmt.Errorf("failed to write template store: %w", err)
	}
	return nil
}

// Load returns a saved document by id.
func (s *Store) Load(id string) (*templatedoc.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.data[id]
	if !ok {
		return nil, fmt.Errorf("template not found: %s", id)
	}
	return entry.Document.Clone(), nil
}

// List returns all saved entries, most recently updated first. The
// returned entries omit the document body; use Load for the content.
func (s *Store) List() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Entry, 0, len(s.data))
	for _, e := range s.data {
		out = append(out, Entry{
			ID:        e.ID,
			Name:      e.Name,
			Kind:      e.Kind,
			Mode:      e.Mode,
			UpdatedAt: e.UpdatedAt,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	return out
}

// Delete removes a saved template. Unknown ids report false.
func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.data[id]; !ok {
		return false
	}
	delete(s.data, id)

	if err := s.persist(); err != nil {
		// Non-critical: the delete is applied in memory and the next
		// successful persist writes it out
	}
	return true
}

func (s *Store) findByNameLocked(name string) *Entry {
	for _, e := range s.data {
		if strings.EqualFold(e.Name, name) {
			return e
		}
	}
	return nil
}

func (s *Store) load() error {
	data, err := os.ReadFile(s.filePath)
	if err != nil {
		return err
	}

	return json.Unmarshal(data, &s.data)
}

func (s *Store) persist() error {
	data, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(s.filePath, data, 0644)
}
