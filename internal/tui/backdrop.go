package tui

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"strings"

	"github.com/charmbracelet/lipgloss"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	"github.com/f3rmion/mindvault/internal/vault"
)

// Backdrop draws a generated background image as colored half-blocks.
type Backdrop struct {
	img image.Image

	cols, rows int
	rendered   string
}

// NewBackdrop decodes the asset's image data. It returns nil when the asset
// has no data or the data cannot be decoded.
func NewBackdrop(asset vault.ImageAsset) (*Backdrop, error) {
	if len(asset.Data) == 0 {
		return nil, nil
	}
	img, _, err := image.Decode(bytes.NewReader(asset.Data))
	if err != nil {
		return nil, fmt.Errorf("decoding background: %w", err)
	}
	return &Backdrop{img: img}, nil
}

// Render returns the image scaled to cols x rows cells. The result is cached
// per size.
func (b *Backdrop) Render(cols, rows int) string {
	if b == nil || cols <= 0 || rows <= 0 {
		return ""
	}
	if b.rendered != "" && b.cols == cols && b.rows == rows {
		return b.rendered
	}

	scaled := image.NewRGBA(image.Rect(0, 0, cols, rows*2))
	xdraw.ApproxBiLinear.Scale(scaled, scaled.Bounds(), b.img, b.img.Bounds(), xdraw.Src, nil)

	var sb strings.Builder
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			top := hexColor(scaled, col, row*2)
			bottom := hexColor(scaled, col, row*2+1)
			sb.WriteString(lipgloss.NewStyle().
				Foreground(lipgloss.Color(top)).
				Background(lipgloss.Color(bottom)).
				Render("▀"))
		}
		if row < rows-1 {
			sb.WriteRune('\n')
		}
	}

	b.cols, b.rows = cols, rows
	b.rendered = sb.String()
	return b.rendered
}

func hexColor(img *image.RGBA, x, y int) string {
	c := img.RGBAAt(x, y)
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
