// Package preset holds the named starter documents offered to seed or
// replace a draft
package preset

import (
	"fmt"
	"sort"

	"github.com/thereceipt/template-studio/internal/catalog"
	"github.com/thereceipt/template-studio/pkg/templatedoc"
)

// Info describes one preset for listing.
type Info struct {
	Key          string `json:"key"`
	Name         string `json:"name"`
	Kind         string `json:"kind"`
	SectionCount int    `json:"section_count"`
	Description  string `json:"description,omitempty"`
}

type preset struct {
	name        string
	kind        string
	description string
	accentColor string
	build       func() []templatedoc.Section
}

// section instantiates a kind and overlays property overrides.
func section(kind string, overrides map[string]any) templatedoc.Section {
	s := catalog.Instantiate(kind)
	for k, v := range overrides {
		s.Properties[k] = v
	}
	return s
}

var presets = map[string]preset{
	"classic": {
		name:        "Classic",
		kind:        templatedoc.KindInvoice,
		description: "Traditional layout with a full details block",
		accentColor: "#1f2937",
		build: func() []templatedoc.Section {
			return []templatedoc.Section{
				section("header", map[string]any{"alignment": "left", "fontSize": "3xl"}),
				section("companyInfo", nil),
				section("divider", nil),
				section("customerInfo", nil),
				section("invoiceDetails", nil),
				section("itemsTable", nil),
				section("totals", nil),
				section("paymentInfo", nil),
				section("footer", nil),
			}
		},
	},
	"modern": {
		name:        "Modern",
		kind:        templatedoc.KindInvoice,
		description: "Accent bar, stripe table, and highlighted totals",
		accentColor: "#667eea",
		build: func() []templatedoc.Section {
			return []templatedoc.Section{
				section("accentBar", nil),
				section("header", map[string]any{"alignment": "center", "fontSize": "2xl", "showLogo": true}),
				section("threeColumnInfo", nil),
				section("diamondDivider", nil),
				section("itemsTable", map[string]any{"rowStripeColor": "accentLight"}),
				section("modernTotals", nil),
				section("paymentInfo", map[string]any{"heading": "How to pay"}),
				section("footer", map[string]any{"color": "accent"}),
			}
		},
	},
	"minimal": {
		name:        "Minimal",
		kind:        templatedoc.KindInvoice,
		description: "Bare essentials, lots of whitespace",
		accentColor: "#111827",
		build: func() []templatedoc.Section {
			return []templatedoc.Section{
				section("header", map[string]any{"fontSize": "xl", "fontWeight": "medium", "color": "#111827"}),
				section("customerInfo", map[string]any{"heading": ""}),
				section("itemsTable", map[string]any{"headerColor": "transparent", "headerTextColor": "#111827"}),
				section("totals", map[string]any{"highlightTotal": false}),
				section("footer", map[string]any{"text": ""}),
			}
		},
	},
	"simple": {
		name:        "Simple",
		kind:        templatedoc.KindReceipt,
		description: "Compact receipt with barcode footer",
		accentColor: "#10b981",
		build: func() []templatedoc.Section {
			return []templatedoc.Section{
				section("header", map[string]any{"alignment": "center", "fontSize": "xl"}),
				section("receiptDetails", map[string]any{"alignment": "center"}),
				section("divider", map[string]any{"style": "dashed"}),
				section("itemsTable", map[string]any{"showUnitPrice": false}),
				section("totals", nil),
				section("footer", map[string]any{"text": "Thanks for shopping with us"}),
			}
		},
	},
	"detailed": {
		name:        "Detailed",
		kind:        templatedoc.KindReceipt,
		description: "Itemized receipt with payment and return info",
		accentColor: "#0ea5e9",
		build: func() []templatedoc.Section {
			return []templatedoc.Section{
				section("accentBar", nil),
				section("header", map[string]any{"alignment": "center"}),
				section("companyInfo", map[string]any{"alignment": "center"}),
				section("receiptDetails", nil),
				section("divider", nil),
				section("itemsTable", nil),
				section("totals", nil),
				section("paymentInfo", nil),
				section("customText", map[string]any{"text": "Returns accepted within 30 days with receipt.", "fontSize": "xs", "alignment": "center"}),
				section("footer", nil),
			}
		},
	},
}

// List returns the presets offered for a document kind, sorted by key.
// An empty kind lists everything.
func List(kind string) []Info {
	out := make([]Info, 0, len(presets))
	for key, p := range presets {
		if kind != "" && p.kind != kind {
			continue
		}
		out = append(out, Info{
			Key:          key,
			Name:         p.name,
			Kind:         p.kind,
			SectionCount: len(p.build()),
			Description:  p.description,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// Apply returns a fresh copy of the preset's sections and accent color.
// Every call builds new sections with new ids; applying the same preset
// twice never shares state.
func Apply(key string) ([]templatedoc.Section, string, error) {
	p, ok := presets[key]
	if !ok {
		return nil, "", fmt.Errorf("unknown preset: %s", key)
	}
	return p.build(), p.accentColor, nil
}
