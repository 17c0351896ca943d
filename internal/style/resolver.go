// Package style resolves raw section properties into concrete
// presentation values
package style

import (
	"regexp"

	"github.com/thereceipt/template-studio/pkg/templatedoc"
)

// accentLightAlpha is the hex alpha suffix applied when a color resolves
// through the "accentLight" token: 0x2E ≈ 18% opacity.
const accentLightAlpha = "2E"

// Resolved holds the concrete presentation values for one section. Every
// field is a final value; no tokens or enum names survive resolution.
type Resolved struct {
	Align      string  // "left", "center", or "right"
	FontSizePx float64 // pixels
	FontWeight int     // 300..700
	PaddingPx  float64 // pixels
	Color      string  // concrete color, or "transparent"
	Background string  // concrete color, or "transparent"
}

// Global defaults used when neither the section nor its kind supplies a
// value.
const (
	defaultAlign      = "left"
	defaultFontSize   = "sm"
	defaultFontWeight = "normal"
	defaultPadding    = "md"
	defaultColor      = "#111827"
	defaultBackground = templatedoc.TokenTransparent
)

var fontSizes = map[string]float64{
	"xs":  12,
	"sm":  14,
	"md":  16,
	"lg":  18,
	"xl":  20,
	"2xl": 24,
	"3xl": 30,
	"4xl": 36,
}

var fontWeights = map[string]int{
	"light":    300,
	"normal":   400,
	"medium":   500,
	"semibold": 600,
	"bold":     700,
}

var paddings = map[string]float64{
	"none": 0,
	"xs":   4,
	"sm":   8,
	"md":   16,
	"lg":   24,
	"xl":   32,
}

var alignments = map[string]bool{
	"left":   true,
	"center": true,
	"right":  true,
}

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// Resolve turns a section's raw property map plus the document accent
// color into concrete presentation values. Resolution order for every
// property is: explicit value → kind default → global default. The
// function is pure; it is safe to call on every render.
func Resolve(props map[string]any, accent string, kindDefaults map[string]any) Resolved {
	align := String(props, kindDefaults, "alignment", defaultAlign)
	if !alignments[align] {
		align = defaultAlign
	}

	size, ok := fontSizes[String(props, kindDefaults, "fontSize", defaultFontSize)]
	if !ok {
		size = fontSizes[defaultFontSize]
	}

	weight, ok := fontWeights[String(props, kindDefaults, "fontWeight", defaultFontWeight)]
	if !ok {
		weight = fontWeights[defaultFontWeight]
	}

	padding, ok := paddings[String(props, kindDefaults, "padding", defaultPadding)]
	if !ok {
		padding = paddings[defaultPadding]
	}

	return Resolved{
		Align:      align,
		FontSizePx: size,
		FontWeight: weight,
		PaddingPx:  padding,
		Color:      ResolveColor(String(props, kindDefaults, "color", defaultColor), accent),
		Background: ResolveColor(String(props, kindDefaults, "background", defaultBackground), accent),
	}
}

// ResolveColor resolves the symbolic color tokens against the document
// accent color. "transparent" passes through unchanged (it is a real
// value, not "unset"), and any other string is already a concrete color.
func ResolveColor(value, accent string) string {
	switch value {
	case templatedoc.TokenAccent:
		return accent
	case templatedoc.TokenAccentLight:
		if hexColor.MatchString(accent) {
			return accent + accentLightAlpha
		}
		return accent
	default:
		return value
	}
}

// Lookup finds a property value: explicit value first, then the kind
// default. The global default is the caller's concern.
func Lookup(props, kindDefaults map[string]any, key string) (any, bool) {
	if v, ok := props[key]; ok {
		return v, true
	}
	if v, ok := kindDefaults[key]; ok {
		return v, true
	}
	return nil, false
}

// String resolves a string-valued property with fallback.
func String(props, kindDefaults map[string]any, key, fallback string) string {
	if v, ok := Lookup(props, kindDefaults, key); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return fallback
}

// Bool resolves a boolean-valued property with fallback.
func Bool(props, kindDefaults map[string]any, key string, fallback bool) bool {
	if v, ok := Lookup(props, kindDefaults, key); ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return fallback
}

// Number resolves a numeric property with fallback. JSON numbers arrive
// as float64; ints are accepted for values built in code.
func Number(props, kindDefaults map[string]any, key string, fallback float64) float64 {
	if v, ok := Lookup(props, kindDefaults, key); ok {
		switch n := v.(type) {
		case float64:
			return n
		case int:
			return float64(n)
		}
	}
	return fallback
}
