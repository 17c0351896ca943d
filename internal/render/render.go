package render

import (
	"fmt"
	"strings"

	"github.com/thereceipt/template-studio/internal/catalog"
	"github.com/thereceipt/template-studio/internal/style"
	"github.com/thereceipt/template-studio/pkg/templatedoc"
)

// Render maps a document into a presentation tree. It never fails:
// sections with unknown kinds become visible placeholders so documents
// from a newer catalog still display.
func Render(doc *templatedoc.Document, ctx Context) *Node {
	root := &Node{Kind: NodeStack}

	if doc.Mode == templatedoc.ModeFreeform {
		for i := range doc.Elements {
			root.Children = append(root.Children, renderElement(&doc.Elements[i], ctx))
		}
		return root
	}

	for i := range doc.Sections {
		root.Children = append(root.Children, RenderSection(&doc.Sections[i], ctx))
	}
	return root
}

// RenderSection maps one section into its presentation subtree.
func RenderSection(s *templatedoc.Section, ctx Context) *Node {
	defaults := catalog.Defaults(s.Kind)
	st := style.Resolve(s.Properties, ctx.Accent, defaults)

	var node *Node
	switch s.Kind {
	case "header":
		node = renderHeader(s, st, ctx)
	case "companyInfo":
		node = renderCompanyInfo(s, st, ctx)
	case "customerInfo":
		node = renderCustomerInfo(s, st, ctx)
	case "invoiceDetails":
		node = renderInvoiceDetails(s, st, ctx)
	case "receiptDetails":
		node = renderReceiptDetails(s, st, ctx)
	case "itemsTable":
		node = renderItemsTable(s, st, ctx)
	case "totals":
		node = renderTotals(s, st, ctx)
	case "modernTotals":
		node = renderModernTotals(s, st, ctx)
	case "paymentInfo":
		node = renderPaymentInfo(s, st, ctx)
	case "customText":
		node = renderCustomText(s, st, ctx)
	case "divider":
		node = renderDivider(s, st, ctx)
	case "accentBar":
		node = renderAccentBar(s, st, ctx)
	case "diamondDivider":
		node = renderDiamondDivider(s, st, ctx)
	case "threeColumnInfo":
		node = renderThreeColumnInfo(s, st, ctx)
	case "footer":
		node = renderFooter(s, st, ctx)
	default:
		node = renderUnknown(s, ctx)
	}

	node.SectionID = s.ID
	node.SectionKind = s.Kind
	node.Style.PaddingPx = st.PaddingPx
	return node
}

// renderElement maps a freeform element to an absolutely positioned
// text node.
func renderElement(e *templatedoc.FreeformElement, ctx Context) *Node {
	st := style.Resolved{
		Align:      e.Alignment,
		FontSizePx: float64(e.FontSize),
		FontWeight: 400,
		Color:      ctx.Theme.Text,
	}
	if st.Align == "" {
		st.Align = "left"
	}
	if st.FontSizePx == 0 {
		st.FontSizePx = 14
	}
	if e.Bold {
		st.FontWeight = 700
	}

	textValue := e.Text
	if textValue == "" {
		textValue = e.Label
	}

	pos := e.Position
	node := text(textValue, st)
	node.SectionID = e.ID
	node.SectionKind = e.Kind
	node.Position = &pos
	if !catalog.Known(e.Kind) {
		node.Kind = NodePlaceholder
		node.Text = fmt.Sprintf("Unknown element: %s", e.Kind)
	}
	return node
}

func muted(st style.Resolved, ctx Context) style.Resolved {
	out := st
	out.Color = ctx.Theme.Muted
	out.FontWeight = 400
	return out
}

func renderHeader(s *templatedoc.Section, st style.Resolved, ctx Context) *Node {
	defaults := catalog.Defaults(s.Kind)
	children := []*Node{}

	if style.Bool(s.Properties, defaults, "showLogo", false) {
		logo := &Node{Kind: NodeImage, Data: style.String(s.Properties, defaults, "logoPath", ""), Style: st}
		children = append(children, logo)
	}

	children = append(children, text(sampleCompany.Name, st))

	tagStyle := muted(st, ctx)
	tagStyle.FontSizePx = 14
	children = append(children, text(strings.ToUpper(documentTag(s)), tagStyle))

	return stack(children...)
}

// documentTag guesses the banner word from the section's property bag,
// defaulting to "Invoice".
func documentTag(s *templatedoc.Section) string {
	if v, ok := s.Properties["tag"].(string); ok && v != "" {
		return v
	}
	return "Invoice"
}

func renderCompanyInfo(s *templatedoc.Section, st style.Resolved, ctx Context) *Node {
	defaults := catalog.Defaults(s.Kind)
	lines := []*Node{
		text(sampleCompany.Name, st),
		text(sampleCompany.Address, st),
		text(sampleCompany.City, st),
	}
	if style.Bool(s.Properties, defaults, "showEmail", true) {
		lines = append(lines, text(sampleCompany.Email, muted(st, ctx)))
	}
	if style.Bool(s.Properties, defaults, "showPhone", true) {
		lines = append(lines, text(sampleCompany.Phone, muted(st, ctx)))
	}
	return stack(lines...)
}

func renderCustomerInfo(s *templatedoc.Section, st style.Resolved, ctx Context) *Node {
	defaults := catalog.Defaults(s.Kind)
	lines := []*Node{}

	if heading := style.String(s.Properties, defaults, "heading", "Bill To"); heading != "" {
		headingStyle := st
		headingStyle.FontWeight = 700
		headingStyle.Color = style.ResolveColor(style.String(s.Properties, defaults, "headingColor", "accent"), ctx.Accent)
		lines = append(lines, text(heading, headingStyle))
	}

	lines = append(lines,
		text(sampleCustomer.Name, st),
		text(sampleCustomer.Company, st),
		text(sampleCustomer.Address, muted(st, ctx)),
	)
	return stack(lines...)
}

func renderInvoiceDetails(s *templatedoc.Section, st style.Resolved, ctx Context) *Node {
	defaults := catalog.Defaults(s.Kind)
	lines := []*Node{
		text(fmt.Sprintf("Invoice %s", sampleInvoiceNumber), st),
		text(fmt.Sprintf("Issued %s", ctx.Formatter.FormatDate(sampleIssueDate)), muted(st, ctx)),
	}
	if style.Bool(s.Properties, defaults, "showDueDate", true) {
		lines = append(lines, text(fmt.Sprintf("Due %s", ctx.Formatter.FormatDate(sampleDueDate)), muted(st, ctx)))
	}
	return stack(lines...)
}

func renderReceiptDetails(s *templatedoc.Section, st style.Resolved, ctx Context) *Node {
	defaults := catalog.Defaults(s.Kind)
	lines := []*Node{
		text(fmt.Sprintf("Receipt %s", sampleReceiptNumber), st),
		text(ctx.Formatter.FormatDate(sampleIssueDate), muted(st, ctx)),
	}
	if value := style.String(s.Properties, defaults, "barcodeValue", ""); value != "" {
		lines = append(lines, &Node{Kind: NodeBarcode, Data: value, Style: st})
	}
	return stack(lines...)
}

func renderItemsTable(s *templatedoc.Section, st style.Resolved, ctx Context) *Node {
	defaults := catalog.Defaults(s.Kind)

	headerStyle := st
	headerStyle.FontWeight = 600
	headerStyle.Color = style.ResolveColor(style.String(s.Properties, defaults, "headerTextColor", "#ffffff"), ctx.Accent)
	headerStyle.Background = style.ResolveColor(style.String(s.Properties, defaults, "headerColor", "accent"), ctx.Accent)

	showQty := style.Bool(s.Properties, defaults, "showQuantity", true)
	showUnit := style.Bool(s.Properties, defaults, "showUnitPrice", true)
	stripe := style.ResolveColor(style.String(s.Properties, defaults, "rowStripeColor", templatedoc.TokenTransparent), ctx.Accent)

	header := headerRow(headerStyle, showQty, showUnit)
	rows := []*Node{header}

	rowStyle := st
	rowStyle.Background = templatedoc.TokenTransparent
	for i, item := range sampleItems {
		r := itemRow(item, rowStyle, ctx, showQty, showUnit)
		if i%2 == 1 {
			r.Style.Background = stripe
		}
		rows = append(rows, r)
	}
	return stack(rows...)
}

func headerRow(st style.Resolved, showQty, showUnit bool) *Node {
	cells := []*Node{cell("Description", st, 3, "left")}
	if showQty {
		cells = append(cells, cell("Qty", st, 1, "right"))
	}
	if showUnit {
		cells = append(cells, cell("Unit Price", st, 1, "right"))
	}
	cells = append(cells, cell("Amount", st, 1, "right"))
	r := row(cells...)
	r.Style = st
	return r
}

func itemRow(item sampleItem, st style.Resolved, ctx Context, showQty, showUnit bool) *Node {
	amount := item.UnitPrice.Mul(decimalFromInt(item.Quantity))
	cells := []*Node{cell(item.Description, st, 3, "left")}
	if showQty {
		cells = append(cells, cell(fmt.Sprintf("%d", item.Quantity), st, 1, "right"))
	}
	if showUnit {
		cells = append(cells, cell(ctx.Formatter.FormatCurrency(item.UnitPrice), st, 1, "right"))
	}
	cells = append(cells, cell(ctx.Formatter.FormatCurrency(amount), st, 1, "right"))
	r := row(cells...)
	r.Style = st
	return r
}

func cell(s string, st style.Resolved, grow float64, align string) *Node {
	c := text(s, st)
	c.Style.Align = align
	c.Grow = grow
	return c
}

func renderTotals(s *templatedoc.Section, st style.Resolved, ctx Context) *Node {
	defaults := catalog.Defaults(s.Kind)
	lines := []*Node{
		totalLine("Subtotal", ctx.Formatter.FormatCurrency(sampleSubtotal()), muted(st, ctx)),
	}
	if style.Bool(s.Properties, defaults, "showTax", true) {
		lines = append(lines, totalLine("Tax (8%)", ctx.Formatter.FormatCurrency(sampleTax()), muted(st, ctx)))
	}

	totalStyle := st
	if style.Bool(s.Properties, defaults, "highlightTotal", true) {
		totalStyle.Color = ctx.Accent
		totalStyle.FontWeight = 700
	}
	lines = append(lines, totalLine("Total", ctx.Formatter.FormatCurrency(sampleTotal()), totalStyle))
	return stack(lines...)
}

func totalLine(label, amount string, st style.Resolved) *Node {
	l := cell(label, st, 1, "left")
	a := cell(amount, st, 1, "right")
	r := row(l, a)
	r.Style.Align = st.Align
	return r
}

func renderModernTotals(s *templatedoc.Section, st style.Resolved, ctx Context) *Node {
	band := &Node{
		Kind:   NodeBox,
		Style:  st,
		Height: st.FontSizePx * 2.5,
		Children: []*Node{
			totalLine("Total Due", ctx.Formatter.FormatCurrency(sampleTotal()), st),
		},
	}
	return band
}

func renderPaymentInfo(s *templatedoc.Section, st style.Resolved, ctx Context) *Node {
	defaults := catalog.Defaults(s.Kind)
	lines := []*Node{}

	if heading := style.String(s.Properties, defaults, "heading", "Payment Details"); heading != "" {
		headingStyle := st
		headingStyle.FontWeight = 700
		lines = append(lines, text(heading, headingStyle))
	}
	lines = append(lines,
		text("Bank: First National Bank", st),
		text("Account: 0042-5518-77", st),
		text(fmt.Sprintf("Reference: %s", sampleInvoiceNumber), muted(st, ctx)),
	)

	if value := style.String(s.Properties, defaults, "qrValue", ""); value != "" {
		lines = append(lines, &Node{Kind: NodeQRCode, Data: value, Style: st})
	}
	return stack(lines...)
}

func renderCustomText(s *templatedoc.Section, st style.Resolved, _ Context) *Node {
	defaults := catalog.Defaults(s.Kind)
	return text(style.String(s.Properties, defaults, "text", ""), st)
}

func renderDivider(s *templatedoc.Section, st style.Resolved, ctx Context) *Node {
	defaults := catalog.Defaults(s.Kind)
	lineStyle := st
	if lineStyle.Color == "" {
		lineStyle.Color = ctx.Theme.Rule
	}
	return &Node{
		Kind:      NodeRule,
		Style:     lineStyle,
		RuleStyle: style.String(s.Properties, defaults, "style", "solid"),
	}
}

func renderAccentBar(s *templatedoc.Section, st style.Resolved, _ Context) *Node {
	defaults := catalog.Defaults(s.Kind)
	return &Node{
		Kind:   NodeBox,
		Style:  st,
		Height: style.Number(s.Properties, defaults, "height", 6),
	}
}

func renderDiamondDivider(_ *templatedoc.Section, st style.Resolved, _ Context) *Node {
	left := &Node{Kind: NodeRule, Style: st, RuleStyle: "solid", Grow: 1}
	mark := cell("◆", st, 0, "center")
	right := &Node{Kind: NodeRule, Style: st, RuleStyle: "solid", Grow: 1}
	return row(left, mark, right)
}

func renderThreeColumnInfo(s *templatedoc.Section, st style.Resolved, ctx Context) *Node {
	defaults := catalog.Defaults(s.Kind)
	headingStyle := st
	headingStyle.FontWeight = 600
	headingStyle.Color = style.ResolveColor(style.String(s.Properties, defaults, "headingColor", "accent"), ctx.Accent)

	col := func(heading string, lines ...string) *Node {
		children := []*Node{text(heading, headingStyle)}
		for _, l := range lines {
			children = append(children, text(l, st))
		}
		c := stack(children...)
		c.Grow = 1
		return c
	}

	return row(
		col("From", sampleCompany.Name, sampleCompany.City),
		col("Bill To", sampleCustomer.Name, sampleCustomer.Company),
		col("Details", sampleInvoiceNumber, ctx.Formatter.FormatDate(sampleIssueDate)),
	)
}

func renderFooter(s *templatedoc.Section, st style.Resolved, _ Context) *Node {
	defaults := catalog.Defaults(s.Kind)
	return text(style.String(s.Properties, defaults, "text", ""), st)
}

func renderUnknown(s *templatedoc.Section, ctx Context) *Node {
	st := style.Resolve(nil, ctx.Accent, nil)
	st.Color = ctx.Theme.Muted
	st.Align = "center"
	return &Node{
		Kind:  NodePlaceholder,
		Text:  fmt.Sprintf("Unknown section: %s", s.Kind),
		Style: st,
	}
}
