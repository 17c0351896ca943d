// Package document holds the in-memory template being edited and its
// mutation operations
package document

import (
	"github.com/google/uuid"
	"github.com/thereceipt/template-studio/internal/catalog"
	"github.com/thereceipt/template-studio/pkg/templatedoc"
)

// Default placement for new freeform elements. Each new element is
// staggered so it does not land exactly on top of the previous one.
const (
	defaultElementX       = 48.0
	defaultElementY       = 64.0
	defaultElementStagger = 28.0
	defaultElementWidth   = 220.0
	defaultElementHeight  = 44.0
)

// Document is the mutable in-memory template. All operations are total:
// they always leave the document in a valid state and never panic.
// Operations referencing a missing id are silent no-ops so double-fired
// UI events cannot crash the editor.
//
// The trash is session-local. It survives deletes within one editing
// session but is never serialized.
type Document struct {
	name        string
	kind        string // "invoice" or "receipt"
	mode        string // fixed at creation
	accentColor string
	sections    []templatedoc.Section
	elements    []templatedoc.FreeformElement
	trash       []templatedoc.Section
	selection   string
}

// New creates an empty document in the given mode.
func New(kind, mode string) *Document {
	return &Document{
		kind:        kind,
		mode:        mode,
		accentColor: "#667eea",
	}
}

// NewStarter creates a linear document seeded with the default starter
// section list for its kind.
func NewStarter(kind string) *Document {
	d := New(kind, templatedoc.ModeLinear)

	details := "invoiceDetails"
	if kind == templatedoc.KindReceipt {
		details = "receiptDetails"
	}

	for _, k := range []string{"header", "companyInfo", "customerInfo", details, "itemsTable", "totals", "paymentInfo", "footer"} {
		d.sections = append(d.sections, catalog.Instantiate(k))
	}
	return d
}

// FromSnapshot creates a document from a previously saved snapshot. The
// trash starts empty; it is never persisted.
func FromSnapshot(snap *templatedoc.Document) *Document {
	clone := snap.Clone()
	return &Document{
		name:        clone.Name,
		kind:        clone.Kind,
		mode:        clone.Mode,
		accentColor: clone.AccentColor,
		sections:    clone.Sections,
		elements:    clone.Elements,
	}
}

// Snapshot serializes the document into its wire shape. The trash and
// selection are editing state and are left out.
func (d *Document) Snapshot() *templatedoc.Document {
	snap := &templatedoc.Document{
		Version:     "1.0",
		Name:        d.name,
		Kind:        d.kind,
		Mode:        d.mode,
		AccentColor: d.accentColor,
	}
	for _, s := range d.sections {
		snap.Sections = append(snap.Sections, s.Clone())
	}
	snap.Elements = append(snap.Elements, d.elements...)
	return snap
}

func (d *Document) Name() string        { return d.name }
func (d *Document) Kind() string        { return d.kind }
func (d *Document) Mode() string        { return d.mode }
func (d *Document) AccentColor() string { return d.accentColor }
func (d *Document) Selection() string   { return d.selection }

func (d *Document) SetName(name string)     { d.name = name }
func (d *Document) SetAccentColor(c string) { d.accentColor = c }

// Select sets the current selection. An empty id clears it. Selection
// never affects the section list.
func (d *Document) Select(id string) { d.selection = id }

// Sections returns a copy of the ordered section list.
func (d *Document) Sections() []templatedoc.Section {
	out := make([]templatedoc.Section, len(d.sections))
	for i, s := range d.sections {
		out[i] = s.Clone()
	}
	return out
}

// Trash returns a copy of the deleted-section holding area.
func (d *Document) Trash() []templatedoc.Section {
	out := make([]templatedoc.Section, len(d.trash))
	for i, s := range d.trash {
		out[i] = s.Clone()
	}
	return out
}

// AddSection appends a fresh section of the given kind and returns it.
func (d *Document) AddSection(kind string) templatedoc.Section {
	s := catalog.Instantiate(kind)
	d.sections = append(d.sections, s)
	return s.Clone()
}

// DeleteSection moves the section with the given id to the trash and
// clears the selection if it pointed at it. Deleting an absent id is
// idempotent.
func (d *Document) DeleteSection(id string) bool {
	for i, s := range d.sections {
		if s.ID == id {
			d.trash = append(d.trash, s.Clone())
			d.sections = append(d.sections[:i], d.sections[i+1:]...)
			if d.selection == id {
				d.selection = ""
			}
			return true
		}
	}
	return false
}

// RestoreSection moves a trashed section back into the document. The
// restored section gets a new id (the old one may have been reused) and
// is appended at the end, not its original position.
func (d *Document) RestoreSection(id string) (templatedoc.Section, bool) {
	for i, s := range d.trash {
		if s.ID == id {
			restored := s.Clone()
			restored.ID = uuid.New().String()
			d.trash = append(d.trash[:i], d.trash[i+1:]...)
			d.sections = append(d.sections, restored)
			return restored.Clone(), true
		}
	}
	return templatedoc.Section{}, false
}

// Reorder moves the section at fromIndex to toIndex. It is a pure
// permutation: no sections are created or destroyed, and out-of-range
// indices are a no-op rather than a partial apply.
func (d *Document) Reorder(fromIndex, toIndex int) bool {
	n := len(d.sections)
	if fromIndex < 0 || fromIndex >= n || toIndex < 0 || toIndex >= n {
		return false
	}
	if fromIndex == toIndex {
		return true
	}

	s := d.sections[fromIndex]
	d.sections = append(d.sections[:fromIndex], d.sections[fromIndex+1:]...)

	rest := append([]templatedoc.Section{}, d.sections[toIndex:]...)
	d.sections = append(d.sections[:toIndex], s)
	d.sections = append(d.sections, rest...)
	return true
}

// UpdateProperties shallow-merges the patch into the section's property
// map. Unknown id is a no-op.
func (d *Document) UpdateProperties(id string, patch map[string]any) bool {
	for i := range d.sections {
		if d.sections[i].ID == id {
			if d.sections[i].Properties == nil {
				d.sections[i].Properties = make(map[string]any, len(patch))
			}
			for k, v := range patch {
				d.sections[i].Properties[k] = v
			}
			return true
		}
	}
	return false
}

// ApplyPreset replaces the section list and accent color wholesale. The
// trash and selection are cleared; restore does not reach across a
// preset boundary.
func (d *Document) ApplyPreset(sections []templatedoc.Section, accentColor string) {
	d.sections = make([]templatedoc.Section, len(sections))
	for i, s := range sections {
		d.sections[i] = s.Clone()
	}
	if accentColor != "" {
		d.accentColor = accentColor
	}
	d.trash = nil
	d.selection = ""
}
