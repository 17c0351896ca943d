// Package catalog is the static registry of section kinds
package catalog

import (
	"sort"

	"github.com/google/uuid"
	"github.com/thereceipt/template-studio/pkg/templatedoc"
)

// Entry describes one section kind: its display label, the property
// defaults a fresh section starts with, and the property names the
// renderer requires to be resolvable.
type Entry struct {
	Label    string
	Defaults map[string]any
	Required []string
}

// UnknownLabel is the label given to sections whose kind is not in the
// catalog. They render as a visible placeholder, never an error.
const UnknownLabel = "Unknown section"

var entries = map[string]Entry{
	"header": {
		Label: "Header",
		Defaults: map[string]any{
			"alignment":  "left",
			"fontSize":   "2xl",
			"fontWeight": "bold",
			"color":      "accent",
			"showLogo":   false,
			"padding":    "md",
		},
		Required: []string{"alignment", "fontSize"},
	},
	"companyInfo": {
		Label: "Company Info",
		Defaults: map[string]any{
			"alignment": "left",
			"fontSize":  "sm",
			"color":     "#374151",
			"padding":   "sm",
			"showEmail": true,
			"showPhone": true,
		},
	},
	"customerInfo": {
		Label: "Customer Info",
		Defaults: map[string]any{
			"alignment": "left",
			"fontSize":  "sm",
			"color":     "#374151",
			"padding":   "sm",
			"heading":   "Bill To",
		},
	},
	"invoiceDetails": {
		Label: "Invoice Details",
		Defaults: map[string]any{
			"alignment":   "right",
			"fontSize":    "sm",
			"color":       "#374151",
			"padding":     "sm",
			"showDueDate": true,
		},
	},
	"receiptDetails": {
		Label: "Receipt Details",
		Defaults: map[string]any{
			"alignment":    "right",
			"fontSize":     "sm",
			"color":        "#374151",
			"padding":      "sm",
			"barcodeValue": "",
		},
	},
	"itemsTable": {
		Label: "Items Table",
		Defaults: map[string]any{
			"fontSize":        "sm",
			"headerColor":     "accent",
			"headerTextColor": "#ffffff",
			"rowStripeColor":  "accentLight",
			"padding":         "sm",
			"showQuantity":    true,
			"showUnitPrice":   true,
		},
		Required: []string{"headerColor"},
	},
	"totals": {
		Label: "Totals",
		Defaults: map[string]any{
			"alignment":     "right",
			"fontSize":      "md",
			"fontWeight":    "semibold",
			"color":         "#111827",
			"padding":       "sm",
			"showTax":       true,
			"highlightTotal": true,
		},
	},
	"modernTotals": {
		Label: "Modern Totals",
		Defaults: map[string]any{
			"alignment":  "right",
			"fontSize":   "lg",
			"fontWeight": "bold",
			"color":      "#ffffff",
			"background": "accent",
			"padding":    "lg",
		},
	},
	"paymentInfo": {
		Label: "Payment Info",
		Defaults: map[string]any{
			"alignment": "left",
			"fontSize":  "sm",
			"color":     "#374151",
			"padding":   "sm",
			"heading":   "Payment Details",
			"qrValue":   "",
		},
	},
	"customText": {
		Label: "Custom Text",
		Defaults: map[string]any{
			"text":       "Your text here",
			"alignment":  "left",
			"fontSize":   "sm",
			"fontWeight": "normal",
			"color":      "#374151",
			"padding":    "sm",
		},
		Required: []string{"text"},
	},
	"divider": {
		Label: "Divider",
		Defaults: map[string]any{
			"style":   "solid",
			"color":   "#e5e7eb",
			"padding": "sm",
		},
	},
	"accentBar": {
		Label: "Accent Bar",
		Defaults: map[string]any{
			"color":   "accent",
			"height":  6.0,
			"padding": "none",
		},
	},
	"diamondDivider": {
		Label: "Diamond Divider",
		Defaults: map[string]any{
			"color":   "accent",
			"padding": "sm",
		},
	},
	"threeColumnInfo": {
		Label: "Three Column Info",
		Defaults: map[string]any{
			"fontSize":     "xs",
			"color":        "#6b7280",
			"headingColor": "accent",
			"padding":      "sm",
		},
	},
	"footer": {
		Label: "Footer",
		Defaults: map[string]any{
			"text":      "Thank you for your business!",
			"alignment": "center",
			"fontSize":  "xs",
			"color":     "#9ca3af",
			"padding":   "md",
		},
	},
}

// Describe returns the catalog entry for a kind. The returned entry's
// Defaults map is a copy; callers may mutate it freely.
func Describe(kind string) (Entry, bool) {
	e, ok := entries[kind]
	if !ok {
		return Entry{}, false
	}
	return Entry{
		Label:    e.Label,
		Defaults: copyProperties(e.Defaults),
		Required: append([]string(nil), e.Required...),
	}, true
}

// Defaults returns the default property map for a kind, or an empty map
// for unknown kinds.
func Defaults(kind string) map[string]any {
	if e, ok := entries[kind]; ok {
		return copyProperties(e.Defaults)
	}
	return map[string]any{}
}

// Label returns the display label for a kind, or UnknownLabel.
func Label(kind string) string {
	if e, ok := entries[kind]; ok {
		return e.Label
	}
	return UnknownLabel
}

// Known reports whether the kind is in the catalog.
func Known(kind string) bool {
	_, ok := entries[kind]
	return ok
}

// Kinds returns all known kind tags in a stable order.
func Kinds() []string {
	kinds := make([]string, 0, len(entries))
	for k := range entries {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}

// Instantiate creates a new Section of the given kind with a fresh id,
// the catalog label, and a deep copy of the kind's defaults. Default
// maps are never shared across instances. Unknown kinds still produce a
// placeholder section so the editor keeps working.
func Instantiate(kind string) templatedoc.Section {
	return templatedoc.Section{
		ID:         uuid.New().String(),
		Kind:       kind,
		Label:      Label(kind),
		Properties: Defaults(kind),
	}
}

func copyProperties(props map[string]any) map[string]any {
	out := make(map[string]any, len(props))
	for k, v := range props {
		out[k] = v
	}
	return out
}
