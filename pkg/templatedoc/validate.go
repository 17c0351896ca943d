package templatedoc

import (
	"fmt"
	"strings"
)

// Validate validates a Document structure.
//
// Unknown section kinds are deliberately accepted: documents created by a
// newer catalog must still load and degrade to a placeholder at render
// time. Validation only rejects structural problems.
func Validate(d *Document) error {
	// Validate version
	if d.Version == "" {
		return fmt.Errorf("version is required")
	}
	if d.Version != "1.0" {
		return fmt.Errorf("unsupported version: %s (expected 1.0)", d.Version)
	}

	// Validate kind if specified
	if d.Kind != "" && d.Kind != KindInvoice && d.Kind != KindReceipt {
		return fmt.Errorf("invalid kind: %s (must be invoice or receipt)", d.Kind)
	}

	// Validate mode
	switch d.Mode {
	case ModeLinear, ModeFreeform:
	case "":
		return fmt.Errorf("mode is required")
	default:
		return fmt.Errorf("invalid mode: %s (must be linear or freeform)", d.Mode)
	}

	// A document is in exactly one mode
	if d.Mode == ModeLinear && len(d.Elements) > 0 {
		return fmt.Errorf("linear document must not contain freeform elements")
	}
	if d.Mode == ModeFreeform && len(d.Sections) > 0 {
		return fmt.Errorf("freeform document must not contain sections")
	}

	// Validate sections
	ids := make(map[string]bool)
	for i, s := range d.Sections {
		if s.ID == "" {
			return fmt.Errorf("section[%d]: 'id' is required", i)
		}
		if ids[s.ID] {
			return fmt.Errorf("section[%d]: duplicate section id '%s'", i, s.ID)
		}
		ids[s.ID] = true

		if s.Kind == "" {
			return fmt.Errorf("section[%d]: 'kind' is required", i)
		}

		if err := validateProperties(s.Properties); err != nil {
			return fmt.Errorf("section[%d] '%s': %w", i, s.Kind, err)
		}
	}

	// Validate freeform elements
	for i, e := range d.Elements {
		if e.ID == "" {
			return fmt.Errorf("element[%d]: 'id' is required", i)
		}
		if ids[e.ID] {
			return fmt.Errorf("element[%d]: duplicate element id '%s'", i, e.ID)
		}
		ids[e.ID] = true

		if e.Kind == "" {
			return fmt.Errorf("element[%d]: 'kind' is required", i)
		}

		if err := validateAlign(e.Alignment); err != nil {
			return fmt.Errorf("element[%d] '%s': %w", i, e.Kind, err)
		}

		if e.FontSize < 0 {
			return fmt.Errorf("element[%d] '%s': font_size must not be negative", i, e.Kind)
		}
	}

	return nil
}

// ValidateForSave applies the stricter rules for a document being persisted:
// everything Validate checks, plus a non-empty name.
func ValidateForSave(d *Document) error {
	if strings.TrimSpace(d.Name) == "" {
		return fmt.Errorf("name is required")
	}
	return Validate(d)
}

// validateProperties checks that property values are of the supported
// primitive types. JSON numbers arrive as float64.
func validateProperties(props map[string]any) error {
	for name, value := range props {
		switch value.(type) {
		case string, bool, float64, int:
		default:
			return fmt.Errorf("property '%s' has unsupported type %T (must be string, number, or boolean)", name, value)
		}
	}
	return nil
}

func validateAlign(align string) error {
	if align == "" {
		return nil
	}
	validAligns := []string{"left", "center", "right"}
	for _, a := range validAligns {
		if align == a {
			return nil
		}
	}
	return fmt.Errorf("invalid alignment '%s' (must be left, center, or right)", align)
}
