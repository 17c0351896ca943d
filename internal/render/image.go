package render

import (
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/disintegration/imaging"
)

// maxLogoWidth bounds header logos so an oversized upload cannot push
// the rest of the page off-screen.
const maxLogoWidth = 160

func (p *Preview) drawImage(n *Node, x, y, w float64) float64 {
	if n.Data == "" {
		return 0
	}

	file, err := os.Open(n.Data)
	if err != nil {
		// Missing logo files degrade to nothing
		return 0
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return 0
	}

	if img.Bounds().Dx() > maxLogoWidth {
		img = imaging.Resize(img, maxLogoWidth, 0, imaging.Lanczos)
	}

	h := img.Bounds().Dy()
	p.ensureHeight(int(y) + h + 40)

	ix := alignOffset(n.Style.Align, x, w, float64(img.Bounds().Dx()))
	p.ctx.DrawImage(img, int(ix), int(y))

	return float64(h) + 8
}
