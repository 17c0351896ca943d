package render

import (
	"image"
	"image/color"
	"os"
	"strconv"

	"github.com/fogleman/gg"
	"github.com/thereceipt/template-studio/pkg/templatedoc"
)

// A4 page at 96 dpi.
const (
	pageWidth      = 794
	pageHeight     = 1123
	pageMargin     = 40.0
	lineSpacing    = 1.45
	ruleHeight     = 15.0
	placeholderBox = 44.0
)

// Preview rasterizes a presentation tree onto a page-shaped canvas.
type Preview struct {
	width  int
	height int
	ctx    *gg.Context
	theme  Theme
}

func newPreview(theme Theme) *Preview {
	// Start with one page; the canvas grows as content is drawn
	ctx := gg.NewContext(pageWidth, pageHeight)
	ctx.SetColor(parseColor(theme.Background, color.White))
	ctx.Clear()

	return &Preview{
		width:  pageWidth,
		height: pageHeight,
		ctx:    ctx,
		theme:  theme,
	}
}

// RenderPNG renders a document to a raster page image.
func RenderPNG(doc *templatedoc.Document, rctx Context) (image.Image, error) {
	tree := Render(doc, rctx)
	p := newPreview(rctx.Theme)

	if doc.Mode == templatedoc.ModeFreeform {
		// Fixed page; elements carry absolute positions and may land
		// off-canvas, in which case they are simply not visible.
		for _, n := range tree.Children {
			if n.Position == nil {
				continue
			}
			p.draw(n, n.Position.X, n.Position.Y, float64(p.width)-n.Position.X)
		}
		return p.ctx.Image(), nil
	}

	contentWidth := float64(p.width) - 2*pageMargin
	y := pageMargin
	for _, n := range tree.Children {
		pad := n.Style.PaddingPx
		y += pad
		p.ensureHeight(int(y) + 400)
		y += p.draw(n, pageMargin, y, contentWidth)
		y += pad
	}

	return p.cropToContent(int(y) + int(pageMargin)), nil
}

// draw renders a node at (x, y) within width w and returns the height
// consumed.
func (p *Preview) draw(n *Node, x, y, w float64) float64 {
	switch n.Kind {
	case NodeStack:
		cy := y
		for _, child := range n.Children {
			cy += p.draw(child, x, cy, w)
		}
		return cy - y
	case NodeRow:
		return p.drawRow(n, x, y, w)
	case NodeText:
		return p.drawText(n, x, y, w)
	case NodeRule:
		return p.drawRule(n, x, y, w)
	case NodeBox:
		return p.drawBox(n, x, y, w)
	case NodeImage:
		return p.drawImage(n, x, y, w)
	case NodeQRCode:
		return p.drawQRCode(n, x, y, w)
	case NodeBarcode:
		return p.drawBarcode(n, x, y, w)
	case NodeSpacer:
		return n.Height
	case NodePlaceholder:
		return p.drawPlaceholder(n, x, y, w)
	default:
		return 0
	}
}

func (p *Preview) drawRow(n *Node, x, y, w float64) float64 {
	total := 0.0
	for _, c := range n.Children {
		g := c.Grow
		if g <= 0 {
			g = 1
		}
		total += g
	}
	if total == 0 {
		return 0
	}

	// Row background (table stripes)
	maxH := 0.0
	cx := x
	for _, c := range n.Children {
		g := c.Grow
		if g <= 0 {
			g = 1
		}
		cw := w * g / total
		if h := p.draw(c, cx, y, cw); h > maxH {
			maxH = h
		}
		cx += cw
	}

	if bg := parseColorOrNil(n.Style.Background); bg != nil {
		// Paint behind what was just drawn would erase it; instead draw
		// a translucent band on top for stripes
		p.ctx.SetColor(bg)
		p.ctx.DrawRectangle(x, y, w, maxH)
		p.ctx.Fill()
	}

	return maxH
}

func (p *Preview) drawText(n *Node, x, y, w float64) float64 {
	p.loadFont(n.Style.FontSizePx, n.Style.FontWeight)
	p.ctx.SetColor(parseColor(n.Style.Color, parseColor(p.theme.Text, color.Black)))

	textWidth, textHeight := p.ctx.MeasureString(n.Text)

	var tx float64
	switch n.Style.Align {
	case "center":
		tx = x + w/2 - textWidth/2
	case "right":
		tx = x + w - textWidth
	default:
		tx = x
	}

	p.ensureHeight(int(y+textHeight) + 40)
	p.ctx.DrawString(n.Text, tx, y+textHeight)

	return textHeight * lineSpacing
}

func (p *Preview) drawRule(n *Node, x, y, w float64) float64 {
	p.ctx.SetColor(parseColor(n.Style.Color, parseColor(p.theme.Rule, color.Gray{Y: 200})))
	p.ctx.SetLineWidth(2)

	ly := y + ruleHeight/2
	x2 := x + w

	switch n.RuleStyle {
	case "double":
		p.ctx.DrawLine(x, ly-2, x2, ly-2)
		p.ctx.Stroke()
		p.ctx.DrawLine(x, ly+2, x2, ly+2)
		p.ctx.Stroke()
	case "dashed":
		dash, gap := 10.0, 5.0
		for cx := x; cx < x2; cx += dash + gap {
			end := cx + dash
			if end > x2 {
				end = x2
			}
			p.ctx.DrawLine(cx, ly, end, ly)
			p.ctx.Stroke()
		}
	case "dotted":
		for cx := x; cx < x2; cx += 8 {
			p.ctx.DrawCircle(cx, ly, 1)
			p.ctx.Fill()
		}
	default: // solid
		p.ctx.DrawLine(x, ly, x2, ly)
		p.ctx.Stroke()
	}

	return ruleHeight
}

func (p *Preview) drawBox(n *Node, x, y, w float64) float64 {
	h := n.Height
	if h <= 0 {
		h = 24
	}

	if bg := parseColorOrNil(n.Style.Background); bg != nil {
		p.ensureHeight(int(y+h) + 40)
		p.ctx.SetColor(bg)
		p.ctx.DrawRectangle(x, y, w, h)
		p.ctx.Fill()
	}

	inset := 8.0
	cy := y + (h-n.Style.FontSizePx*lineSpacing)/2
	if cy < y {
		cy = y
	}
	for _, c := range n.Children {
		cy += p.draw(c, x+inset, cy, w-2*inset)
	}
	if cy-y > h {
		h = cy - y
	}
	return h
}

func (p *Preview) drawPlaceholder(n *Node, x, y, w float64) float64 {
	p.ensureHeight(int(y+placeholderBox) + 40)

	p.ctx.SetColor(parseColor(p.theme.Rule, color.Gray{Y: 200}))
	p.ctx.SetLineWidth(1)
	p.ctx.DrawRectangle(x, y, w, placeholderBox)
	p.ctx.Stroke()

	label := *n
	label.Kind = NodeText
	p.draw(&label, x, y+placeholderBox/2-n.Style.FontSizePx, w)

	return placeholderBox + 4
}

func (p *Preview) ensureHeight(neededHeight int) {
	if neededHeight <= p.height {
		return
	}

	newHeight := p.height * 2
	if newHeight < neededHeight {
		newHeight = neededHeight + pageHeight
	}

	newCtx := gg.NewContext(p.width, newHeight)
	newCtx.SetColor(parseColor(p.theme.Background, color.White))
	newCtx.Clear()
	newCtx.DrawImage(p.ctx.Image(), 0, 0)

	p.ctx = newCtx
	p.height = newHeight
}

func (p *Preview) cropToContent(finalHeight int) image.Image {
	if finalHeight < pageHeight {
		finalHeight = pageHeight
	}
	if finalHeight > p.height {
		finalHeight = p.height
	}

	img := p.ctx.Image()
	return img.(interface {
		SubImage(r image.Rectangle) image.Image
	}).SubImage(image.Rect(0, 0, p.width, finalHeight))
}

func (p *Preview) loadFont(size float64, weight int) {
	if size <= 0 {
		size = 14
	}

	var candidates []string
	if weight >= 600 {
		candidates = []string{
			"/usr/share/fonts/truetype/dejavu/DejaVuSans-Bold.ttf",
			"/usr/share/fonts/truetype/liberation/LiberationSans-Bold.ttf",
			"/System/Library/Fonts/Supplemental/Arial Bold.ttf",
			"C:\\Windows\\Fonts\\arialbd.ttf",
		}
	} else {
		candidates = []string{
			"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
			"/usr/share/fonts/truetype/liberation/LiberationSans-Regular.ttf",
			"/System/Library/Fonts/Supplemental/Arial.ttf",
			"C:\\Windows\\Fonts\\arial.ttf",
		}
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			if err := p.ctx.LoadFontFace(path, size); err == nil {
				return
			}
		}
	}
	// No loadable font found; gg falls back to its built-in face
}

// parseColor parses #RRGGBB and #RRGGBBAA values, returning fallback
// for anything it cannot parse (including "transparent").
func parseColor(s string, fallback color.Color) color.Color {
	if c := parseColorOrNil(s); c != nil {
		return c
	}
	return fallback
}

// parseColorOrNil returns nil for "transparent", empty, and unparsable
// values, so callers can skip the fill entirely.
func parseColorOrNil(s string) color.Color {
	if s == "" || s == templatedoc.TokenTransparent {
		return nil
	}
	if len(s) != 7 && len(s) != 9 {
		return nil
	}
	if s[0] != '#' {
		return nil
	}

	parse := func(hex string) (uint8, bool) {
		v, err := strconv.ParseUint(hex, 16, 8)
		if err != nil {
			return 0, false
		}
		return uint8(v), true
	}

	r, ok1 := parse(s[1:3])
	g, ok2 := parse(s[3:5])
	b, ok3 := parse(s[5:7])
	if !ok1 || !ok2 || !ok3 {
		return nil
	}

	a := uint8(255)
	if len(s) == 9 {
		var ok bool
		if a, ok = parse(s[7:9]); !ok {
			return nil
		}
	}

	return color.NRGBA{R: r, G: g, B: b, A: a}
}
