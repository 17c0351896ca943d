package render

import (
	"strings"
	"testing"

	"github.com/thereceipt/template-studio/internal/catalog"
	"github.com/thereceipt/template-studio/internal/money"
	"github.com/thereceipt/template-studio/pkg/templatedoc"
)

func testContext() Context {
	return NewContext("#667eea", LightTheme(), money.NewFormatter("USD", ""))
}

func findNodes(n *Node, kind NodeKind) []*Node {
	var out []*Node
	if n.Kind == kind {
		out = append(out, n)
	}
	for _, c := range n.Children {
		out = append(out, findNodes(c, kind)...)
	}
	return out
}

func collectText(n *Node) string {
	var b strings.Builder
	var walk func(*Node)
	walk = func(n *Node) {
		if n.Text != "" {
			b.WriteString(n.Text)
			b.WriteString("\n")
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

func TestRender_EverySectionKind(t *testing.T) {
	doc := &templatedoc.Document{
		Version: "1.0",
		Mode:    templatedoc.ModeLinear,
	}
	for _, kind := range catalog.Kinds() {
		doc.Sections = append(doc.Sections, catalog.Instantiate(kind))
	}

	tree := Render(doc, testContext())

	if len(tree.Children) != len(catalog.Kinds()) {
		t.Fatalf("Expected %d section nodes, got %d", len(catalog.Kinds()), len(tree.Children))
	}
	for i, n := range tree.Children {
		if n.SectionKind != doc.Sections[i].Kind {
			t.Errorf("Node %d tagged %s, expected %s", i, n.SectionKind, doc.Sections[i].Kind)
		}
		if n.SectionID != doc.Sections[i].ID {
			t.Errorf("Node %d must carry its section id", i)
		}
		if n.Kind == NodePlaceholder {
			t.Errorf("Catalog kind %s rendered as placeholder", doc.Sections[i].Kind)
		}
	}
}

func TestRender_UnknownKindPlaceholder(t *testing.T) {
	s := templatedoc.Section{ID: "x1", Kind: "hologramSeal"}
	node := RenderSection(&s, testContext())

	if node.Kind != NodePlaceholder {
		t.Fatalf("Expected placeholder node, got %s", node.Kind)
	}
	if !strings.Contains(node.Text, "hologramSeal") {
		t.Errorf("Placeholder must name the unknown kind, got %q", node.Text)
	}
}

func TestRender_AccentResolvedIntoTree(t *testing.T) {
	s := catalog.Instantiate("itemsTable")
	node := RenderSection(&s, testContext())

	header := node.Children[0]
	if header.Style.Background != "#667eea" {
		t.Errorf("Expected header background resolved to accent, got %q", header.Style.Background)
	}

	// No symbolic tokens may survive into the tree
	var walk func(*Node)
	walk = func(n *Node) {
		for _, v := range []string{n.Style.Color, n.Style.Background} {
			if v == templatedoc.TokenAccent || v == templatedoc.TokenAccentLight {
				t.Errorf("Unresolved token %q in presentation tree", v)
			}
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(node)
}

func TestRender_TotalsUsesFormatter(t *testing.T) {
	s := catalog.Instantiate("totals")
	node := RenderSection(&s, testContext())

	text := collectText(node)
	if !strings.Contains(text, "$") {
		t.Errorf("Expected formatted currency in totals, got:\n%s", text)
	}
	if !strings.Contains(text, "Total") {
		t.Errorf("Expected total label, got:\n%s", text)
	}

	// Tax line toggles off
	s.Properties["showTax"] = false
	withoutTax := collectText(RenderSection(&s, testContext()))
	if strings.Contains(withoutTax, "Tax") {
		t.Error("Expected tax line suppressed when showTax=false")
	}
}

func TestRender_PaymentInfoQRCode(t *testing.T) {
	s := catalog.Instantiate("paymentInfo")
	node := RenderSection(&s, testContext())
	if len(findNodes(node, NodeQRCode)) != 0 {
		t.Error("Expected no QR node without qrValue")
	}

	s.Properties["qrValue"] = "https://pay.example/INV-2041"
	node = RenderSection(&s, testContext())
	qrs := findNodes(node, NodeQRCode)
	if len(qrs) != 1 || qrs[0].Data != "https://pay.example/INV-2041" {
		t.Error("Expected QR node carrying the qrValue payload")
	}
}

func TestRender_ReceiptBarcode(t *testing.T) {
	s := catalog.Instantiate("receiptDetails")
	s.Properties["barcodeValue"] = "RCP-88612"

	node := RenderSection(&s, testContext())
	codes := findNodes(node, NodeBarcode)
	if len(codes) != 1 || codes[0].Data != "RCP-88612" {
		t.Error("Expected barcode node carrying the barcodeValue payload")
	}
}

func TestRender_CustomTextProperty(t *testing.T) {
	s := catalog.Instantiate("customText")
	s.Properties["text"] = "Wire transfers only."

	node := RenderSection(&s, testContext())
	if node.Text != "Wire transfers only." {
		t.Errorf("Expected custom text rendered, got %q", node.Text)
	}
}

func TestRender_Freeform(t *testing.T) {
	doc := &templatedoc.Document{
		Version: "1.0",
		Mode:    templatedoc.ModeFreeform,
		Elements: []templatedoc.FreeformElement{
			{ID: "e1", Kind: "customText", Text: "Paid", Position: templatedoc.Position{X: 100, Y: 200}, FontSize: 18, Bold: true},
			{ID: "e2", Kind: "hologramSeal", Position: templatedoc.Position{X: -50, Y: 0}},
		},
	}

	tree := Render(doc, testContext())
	if len(tree.Children) != 2 {
		t.Fatalf("Expected 2 element nodes, got %d", len(tree.Children))
	}

	first := tree.Children[0]
	if first.Position == nil || first.Position.X != 100 {
		t.Error("Expected element position carried into the tree")
	}
	if first.Style.FontWeight != 700 {
		t.Error("Expected bold mapped to weight 700")
	}

	second := tree.Children[1]
	if second.Kind != NodePlaceholder {
		t.Error("Expected unknown element kind to render a placeholder")
	}
}

func TestRenderPNG_Linear(t *testing.T) {
	doc := &templatedoc.Document{
		Version:     "1.0",
		Mode:        templatedoc.ModeLinear,
		AccentColor: "#667eea",
	}
	for _, kind := range []string{"accentBar", "header", "itemsTable", "totals", "divider", "footer"} {
		doc.Sections = append(doc.Sections, catalog.Instantiate(kind))
	}

	img, err := RenderPNG(doc, testContext())
	if err != nil {
		t.Fatalf("Expected successful render, got error: %v", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() != pageWidth {
		t.Errorf("Expected page width %d, got %d", pageWidth, bounds.Dx())
	}
	if bounds.Dy() < pageHeight {
		t.Errorf("Expected at least one page height, got %d", bounds.Dy())
	}
}

func TestRenderPNG_FreeformOffCanvas(t *testing.T) {
	doc := &templatedoc.Document{
		Version: "1.0",
		Mode:    templatedoc.ModeFreeform,
		Elements: []templatedoc.FreeformElement{
			{ID: "e1", Kind: "customText", Text: "visible", Position: templatedoc.Position{X: 50, Y: 50}},
			{ID: "e2", Kind: "customText", Text: "off page", Position: templatedoc.Position{X: -500, Y: -500}},
		},
	}

	// Off-canvas elements must not fail the render
	img, err := RenderPNG(doc, testContext())
	if err != nil {
		t.Fatalf("Expected successful render, got error: %v", err)
	}
	if img.Bounds().Dy() != pageHeight {
		t.Errorf("Freeform preview is a fixed page, got height %d", img.Bounds().Dy())
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		value string
		isNil bool
	}{
		{"#667eea", false},
		{"#667eea2E", false},
		{"transparent", true},
		{"", true},
		{"not-a-color", true},
		{"#zzzzzz", true},
	}

	for _, tt := range tests {
		got := parseColorOrNil(tt.value)
		if (got == nil) != tt.isNil {
			t.Errorf("parseColorOrNil(%q) nil=%v, want nil=%v", tt.value, got == nil, tt.isNil)
		}
	}
}
