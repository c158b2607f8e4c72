// Package bigchar renders short text, such as a countdown, as large block
// art using half-block characters.
package bigchar

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strings"
	"sync"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

const (
	fontSize  = 64
	threshold = 96 // Brightness above which a half cell is "on"
	maxCached = 512
)

var (
	loadedFace font.Face

	mu    sync.Mutex
	cache = make(map[string]string)
)

func init() {
	fnt, err := opentype.Parse(gobold.TTF)
	if err != nil {
		return
	}
	face, err := opentype.NewFace(fnt, &opentype.FaceOptions{
		Size:    fontSize,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return
	}
	loadedFace = face
}

// IsAvailable returns true if the block font loaded.
func IsAvailable() bool {
	return loadedFace != nil
}

// RenderBlock renders text using half-block characters (▀▄█).
// cols and rows define the output size in terminal cells.
func RenderBlock(text string, cols, rows int) string {
	if text == "" || loadedFace == nil || cols <= 0 || rows <= 0 {
		return ""
	}

	// Measure the whole string at the font's natural size
	bounds, _ := font.BoundString(loadedFace, text)
	textWidth := (bounds.Max.X - bounds.Min.X).Ceil()
	textHeight := (bounds.Max.Y - bounds.Min.Y).Ceil()

	padding := 4
	srcWidth := textWidth + padding*2
	srcHeight := textHeight + padding*2

	srcImg := image.NewGray(image.Rect(0, 0, srcWidth, srcHeight))
	draw.Draw(srcImg, srcImg.Bounds(), &image.Uniform{color.Black}, image.Point{}, draw.Src)

	d := &font.Drawer{
		Dst:  srcImg,
		Src:  image.White,
		Face: loadedFace,
		Dot:  fixed.P(padding-bounds.Min.X.Floor(), padding-bounds.Min.Y.Floor()),
	}
	d.DrawString(text)

	// Scale to target size (rows*2 because half-blocks)
	scaled := image.NewGray(image.Rect(0, 0, cols, rows*2))
	xdraw.ApproxBiLinear.Scale(scaled, scaled.Bounds(), srcImg, srcImg.Bounds(), xdraw.Src, nil)

	return imageToHalfBlocks(scaled, cols, rows)
}

// imageToHalfBlocks converts a grayscale image to half-block art
func imageToHalfBlocks(img *image.Gray, cols, rows int) string {
	var result strings.Builder

	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			// Each character cell represents 2 vertical pixels
			topOn := pixelBrightness(img, col, row*2) > threshold
			bottomOn := pixelBrightness(img, col, row*2+1) > threshold

			switch {
			case topOn && bottomOn:
				result.WriteRune('█')
			case topOn:
				result.WriteRune('▀')
			case bottomOn:
				result.WriteRune('▄')
			default:
				result.WriteRune(' ')
			}
		}
		if row < rows-1 {
			result.WriteRune('\n')
		}
	}

	return result.String()
}

func pixelBrightness(img *image.Gray, x, y int) uint8 {
	if x < 0 || y < 0 || x >= img.Bounds().Max.X || y >= img.Bounds().Max.Y {
		return 0
	}
	return img.GrayAt(x, y).Y
}

// GetCached returns cached block text or renders it.
func GetCached(text string, cols, rows int) string {
	if !IsAvailable() {
		return ""
	}

	key := fmt.Sprintf("%s/%dx%d", text, cols, rows)

	mu.Lock()
	defer mu.Unlock()
	if cached, ok := cache[key]; ok {
		return cached
	}
	if len(cache) >= maxCached {
		cache = make(map[string]string)
	}

	rendered := RenderBlock(text, cols, rows)
	cache[key] = rendered
	return rendered
}
