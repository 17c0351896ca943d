package render

import (
	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/code128"
	"github.com/skip2/go-qrcode"
)

const (
	qrSize        = 120
	barcodeWidth  = 240
	barcodeHeight = 56
)

func (p *Preview) drawQRCode(n *Node, x, y, w float64) float64 {
	if n.Data == "" {
		return 0
	}

	qr, err := qrcode.New(n.Data, qrcode.Medium)
	if err != nil {
		// Bad payloads degrade to nothing rather than failing the page
		return 0
	}

	img := qr.Image(qrSize)
	h := img.Bounds().Dy()
	p.ensureHeight(int(y) + h + 40)

	ix := alignOffset(n.Style.Align, x, w, float64(img.Bounds().Dx()))
	p.ctx.DrawImage(img, int(ix), int(y))

	return float64(h) + 8
}

func (p *Preview) drawBarcode(n *Node, x, y, w float64) float64 {
	if n.Data == "" {
		return 0
	}

	code, err := code128.Encode(n.Data)
	if err != nil {
		return 0
	}

	scaled, err := barcode.Scale(code, barcodeWidth, barcodeHeight)
	if err != nil {
		return 0
	}

	h := scaled.Bounds().Dy()
	p.ensureHeight(int(y) + h + 40)

	ix := alignOffset(n.Style.Align, x, w, float64(scaled.Bounds().Dx()))
	p.ctx.DrawImage(scaled, int(ix), int(y))

	return float64(h) + 8
}

func alignOffset(align string, x, w, itemWidth float64) float64 {
	switch align {
	case "center":
		return x + w/2 - itemWidth/2
	case "right":
		return x + w - itemWidth
	default:
		return x
	}
}
