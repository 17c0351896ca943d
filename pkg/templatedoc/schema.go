// Package templatedoc defines the types for the .template document format
package templatedoc

// Document modes. A document is in exactly one mode, fixed at creation.
const (
	ModeLinear   = "linear"
	ModeFreeform = "freeform"
)

// Document kinds.
const (
	KindInvoice = "invoice"
	KindReceipt = "receipt"
)

// Color tokens that sections may use in place of a concrete color value.
const (
	TokenAccent      = "accent"
	TokenAccentLight = "accentLight"
	TokenTransparent = "transparent"
)

// Document represents the root structure of a .template file
type Document struct {
	Version     string            `json:"version"`
	Name        string            `json:"name,omitempty"`
	Description string            `json:"description,omitempty"`
	CreatedWith string            `json:"created_with,omitempty"`
	Kind        string            `json:"kind,omitempty"` // "invoice" or "receipt"
	Mode        string            `json:"mode,omitempty"` // "linear" or "freeform"
	AccentColor string            `json:"accent_color,omitempty"`
	Sections    []Section         `json:"sections,omitempty"`
	Elements    []FreeformElement `json:"elements,omitempty"`
}

// Section is one addressable, orderable block of a linear-mode document.
// Each kind defines which property names it reads; absent keys fall back
// to the catalog defaults for that kind.
type Section struct {
	ID         string         `json:"id"`
	Kind       string         `json:"kind"`
	Label      string         `json:"label,omitempty"`
	Properties map[string]any `json:"properties,omitempty"`
}

// Position is an absolute canvas position in document units.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Size is an advisory bounding box; content may overflow it.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// FreeformElement is a document block positioned by absolute coordinates
// rather than list order. Freeform mode trades the generic property map
// for direct style fields.
type FreeformElement struct {
	ID        string   `json:"id"`
	Kind      string   `json:"kind"`
	Label     string   `json:"label,omitempty"`
	Text      string   `json:"text,omitempty"`
	Position  Position `json:"position"`
	Size      Size     `json:"size,omitempty"`
	FontSize  int      `json:"font_size,omitempty"`
	Alignment string   `json:"alignment,omitempty"`
	Bold      bool     `json:"bold,omitempty"`
}

// Clone returns a deep copy of the section, including its property map.
func (s Section) Clone() Section {
	out := s
	if s.Properties != nil {
		out.Properties = make(map[string]any, len(s.Properties))
		for k, v := range s.Properties {
			out.Properties[k] = v
		}
	}
	return out
}

// Clone returns a deep copy of the document.
func (d *Document) Clone() *Document {
	out := *d
	if d.Sections != nil {
		out.Sections = make([]Section, len(d.Sections))
		for i, s := range d.Sections {
			out.Sections[i] = s.Clone()
		}
	}
	if d.Elements != nil {
		out.Elements = make([]FreeformElement, len(d.Elements))
		copy(out.Elements, d.Elements)
	}
	return &out
}
