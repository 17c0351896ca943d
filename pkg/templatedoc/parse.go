package templatedoc

import (
	"encoding/json"
	"fmt"
	"os"
)

// Parse parses a .template file from a byte slice
func Parse(data []byte) (*Document, error) {
	// Unmarshal into a temporary struct to capture legacy fields
	var temp struct {
		Version     string            `json:"version"`
		Name        string            `json:"name,omitempty"`
		Description string            `json:"description,omitempty"`
		CreatedWith string            `json:"created_with,omitempty"`
		Kind        string            `json:"kind,omitempty"`
		Mode        string            `json:"mode,omitempty"`
		AccentColor string            `json:"accent_color,omitempty"`
		Accent      string            `json:"accent,omitempty"` // Legacy field
		Sections    []Section         `json:"sections,omitempty"`
		Elements    []FreeformElement `json:"elements,omitempty"`
	}

	if err := json.Unmarshal(data, &temp); err != nil {
		return nil, fmt.Errorf("failed to parse template: %w", err)
	}

	doc := Document{
		Version:     temp.Version,
		Name:        temp.Name,
		Description: temp.Description,
		CreatedWith: temp.CreatedWith,
		Kind:        temp.Kind,
		Mode:        temp.Mode,
		AccentColor: temp.AccentColor,
		Sections:    temp.Sections,
		Elements:    temp.Elements,
	}

	// Migrate legacy accent to accent_color if present
	if temp.Accent != "" && doc.AccentColor == "" {
		doc.AccentColor = temp.Accent
	}

	// Early documents predate the mode field; infer it from the content
	if doc.Mode == "" {
		if len(doc.Elements) > 0 {
			doc.Mode = ModeFreeform
		} else {
			doc.Mode = ModeLinear
		}
	}

	if doc.Kind == "" {
		doc.Kind = KindInvoice
	}

	if err := Validate(&doc); err != nil {
		return nil, err
	}

	return &doc, nil
}

// ParseFile parses a .template file from disk
func ParseFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read template file: %w", err)
	}

	return Parse(data)
}

// ToJSON converts a Document to JSON bytes
func (d *Document) ToJSON() ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}

// SaveToFile saves a Document to a file
func (d *Document) SaveToFile(path string) error {
	data, err := d.ToJSON()
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
