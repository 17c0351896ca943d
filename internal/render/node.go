// Package render maps resolved sections into a presentation tree and
// rasterizes it for preview
package render

import (
	"github.com/thereceipt/template-studio/internal/money"
	"github.com/thereceipt/template-studio/internal/style"
	"github.com/thereceipt/template-studio/pkg/templatedoc"
)

// NodeKind tags a presentation node.
type NodeKind string

const (
	NodeStack       NodeKind = "stack"   // children laid out vertically
	NodeRow         NodeKind = "row"     // children laid out horizontally
	NodeText        NodeKind = "text"    // leaf text run
	NodeRule        NodeKind = "rule"    // horizontal divider line
	NodeBox         NodeKind = "box"     // filled block (accent bars, total bands)
	NodeImage       NodeKind = "image"   // raster image by path
	NodeQRCode      NodeKind = "qrcode"  // QR code carrying Data
	NodeBarcode     NodeKind = "barcode" // code128 barcode carrying Data
	NodeSpacer      NodeKind = "spacer"
	NodePlaceholder NodeKind = "placeholder" // unknown section kind marker
)

// Node is one node of the presentation tree. Styling decisions are
// already made: Style holds only concrete values produced by the
// property resolver.
type Node struct {
	Kind        NodeKind
	Text        string
	Data        string // payload for qrcode/barcode, path for image
	Style       style.Resolved
	RuleStyle   string  // "solid", "double", "dashed", "dotted"
	Height      float64 // boxes and spacers
	Grow        float64 // relative width share inside a row
	SectionID   string  // set on each section's root node
	SectionKind string
	Position    *templatedoc.Position // absolute placement (freeform mode)
	Children    []*Node
}

// Theme supplies the non-accent base palette. It is consumed, never
// mutated, by the renderer.
type Theme struct {
	Dark       bool
	Text       string
	Muted      string
	Background string
	Rule       string
}

// LightTheme is the default palette.
func LightTheme() Theme {
	return Theme{
		Text:       "#111827",
		Muted:      "#6b7280",
		Background: "#ffffff",
		Rule:       "#e5e7eb",
	}
}

// DarkTheme is the inverted palette.
func DarkTheme() Theme {
	return Theme{
		Dark:       true,
		Text:       "#f9fafb",
		Muted:      "#9ca3af",
		Background: "#111827",
		Rule:       "#374151",
	}
}

// Context carries everything a render needs. Callers construct it
// explicitly per call; the renderer holds no ambient state.
type Context struct {
	Accent    string
	Theme     Theme
	Formatter *money.Formatter
}

// NewContext builds a render context with sensible fallbacks.
func NewContext(accent string, theme Theme, formatter *money.Formatter) Context {
	if accent == "" {
		accent = "#667eea"
	}
	if formatter == nil {
		formatter = money.NewFormatter("USD", "")
	}
	return Context{Accent: accent, Theme: theme, Formatter: formatter}
}

func text(s string, st style.Resolved) *Node {
	return &Node{Kind: NodeText, Text: s, Style: st}
}

func stack(children ...*Node) *Node {
	return &Node{Kind: NodeStack, Children: children}
}

func row(children ...*Node) *Node {
	return &Node{Kind: NodeRow, Children: children}
}
