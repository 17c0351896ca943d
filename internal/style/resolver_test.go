package style

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestResolveColor_Tokens(t *testing.T) {
	tests := []struct {
		name   string
		value  string
		accent string
		want   string
	}{
		{"accent token", "accent", "#667eea", "#667eea"},
		{"accentLight token", "accentLight", "#667eea", "#667eea2E"},
		{"transparent passes through", "transparent", "#667eea", "transparent"},
		{"concrete color verbatim", "#ff0055", "#667eea", "#ff0055"},
		{"named color verbatim", "rebeccapurple", "#667eea", "rebeccapurple"},
		{"accentLight with non-hex accent", "accentLight", "cornflowerblue", "cornflowerblue"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveColor(tt.value, tt.accent); got != tt.want {
				t.Errorf("ResolveColor(%q, %q) = %q, want %q", tt.value, tt.accent, got, tt.want)
			}
		})
	}
}

func TestResolve_Order(t *testing.T) {
	kindDefaults := map[string]any{
		"alignment": "center",
		"fontSize":  "lg",
		"color":     "accent",
	}

	// Explicit wins over kind default
	got := Resolve(map[string]any{"alignment": "right"}, "#667eea", kindDefaults)
	if got.Align != "right" {
		t.Errorf("Expected explicit alignment to win, got %s", got.Align)
	}

	// Kind default wins over global default
	got = Resolve(map[string]any{}, "#667eea", kindDefaults)
	if got.Align != "center" {
		t.Errorf("Expected kind default alignment, got %s", got.Align)
	}
	if got.FontSizePx != 18 {
		t.Errorf("Expected lg size 18px, got %v", got.FontSizePx)
	}
	if got.Color != "#667eea" {
		t.Errorf("Expected accent color resolved, got %s", got.Color)
	}

	// Global default when nothing is set
	got = Resolve(map[string]any{}, "#667eea", map[string]any{})
	want := Resolved{
		Align:      "left",
		FontSizePx: 14,
		FontWeight: 400,
		PaddingPx:  16,
		Color:      "#111827",
		Background: "transparent",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Resolve() mismatch (-want +got):\n%s", diff)
	}
}

func TestResolve_UnrecognizedEnumFallsBack(t *testing.T) {
	props := map[string]any{
		"alignment":  "justify",
		"fontSize":   "enormous",
		"fontWeight": "heavy",
		"padding":    "tight",
	}

	got := Resolve(props, "#667eea", map[string]any{})

	if got.Align != "left" {
		t.Errorf("Expected alignment fallback to left, got %s", got.Align)
	}
	if got.FontSizePx != 14 {
		t.Errorf("Expected fontSize fallback to sm, got %v", got.FontSizePx)
	}
	if got.FontWeight != 400 {
		t.Errorf("Expected fontWeight fallback to normal, got %d", got.FontWeight)
	}
	if got.PaddingPx != 16 {
		t.Errorf("Expected padding fallback to md, got %v", got.PaddingPx)
	}
}

func TestResolve_Pure(t *testing.T) {
	props := map[string]any{"color": "accent"}

	first := Resolve(props, "#667eea", map[string]any{})
	second := Resolve(props, "#667eea", map[string]any{})

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("Resolve is not idempotent (-first +second):\n%s", diff)
	}

	// Input maps must be untouched
	if len(props) != 1 || props["color"] != "accent" {
		t.Errorf("Resolve mutated its input: %v", props)
	}
}

func TestResolve_FontScale(t *testing.T) {
	sizes := map[string]float64{
		"xs": 12, "sm": 14, "md": 16, "lg": 18,
		"xl": 20, "2xl": 24, "3xl": 30, "4xl": 36,
	}
	for name, px := range sizes {
		got := Resolve(map[string]any{"fontSize": name}, "#000000", nil)
		if got.FontSizePx != px {
			t.Errorf("fontSize %s: expected %vpx, got %v", name, px, got.FontSizePx)
		}
	}
}

func TestHelpers_TypeMismatchFallsBack(t *testing.T) {
	props := map[string]any{
		"heading":  42,       // not a string
		"showLogo": "yes",    // not a bool
		"height":   "twelve", // not a number
	}

	if got := String(props, nil, "heading", "Bill To"); got != "Bill To" {
		t.Errorf("Expected string fallback, got %q", got)
	}
	if got := Bool(props, nil, "showLogo", true); got != true {
		t.Errorf("Expected bool fallback, got %v", got)
	}
	if got := Number(props, nil, "height", 6); got != 6 {
		t.Errorf("Expected number fallback, got %v", got)
	}

	// JSON numbers arrive as float64, code-built values as int
	if got := Number(map[string]any{"height": 12.0}, nil, "height", 0); got != 12 {
		t.Errorf("Expected float64 accepted, got %v", got)
	}
	if got := Number(map[string]any{"height": 12}, nil, "height", 0); got != 12 {
		t.Errorf("Expected int accepted, got %v", got)
	}
}
