// Package vision post-processes captured screenshots for coordinate-based
// automation. The grid overlay gives a vision model pixel-accurate reference
// points so its tap coordinates land where it thinks they will.
package vision

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// DefaultGridSpacing is the pixel distance between grid lines.
const DefaultGridSpacing = 100

// GridOptions controls the overlay.
type GridOptions struct {
	Spacing int // pixels between grid lines; <= 0 means DefaultGridSpacing
}

// OverlayGrid decodes a PNG screenshot, draws a labeled coordinate grid over
// it and re-encodes it. The input bytes are never modified.
func OverlayGrid(pngData []byte, opts GridOptions) ([]byte, error) {
	img, err := png.Decode(bytes.NewReader(pngData))
	if err != nil {
		return nil, fmt.Errorf("decode screenshot: %w", err)
	}

	annotated := DrawGrid(img, opts)

	var buf bytes.Buffer
	if err := png.Encode(&buf, annotated); err != nil {
		return nil, fmt.Errorf("encode screenshot: %w", err)
	}
	return buf.Bytes(), nil
}

// DrawGrid returns a copy of img with grid lines every opts.Spacing pixels
// and "(x,y)" labels at the line intersections.
func DrawGrid(img image.Image, opts GridOptions) *image.RGBA {
	spacing := opts.Spacing
	if spacing <= 0 {
		spacing = DefaultGridSpacing
	}

	rgba := imageToRGBA(img)
	bounds := rgba.Bounds()

	lineColor := color.RGBA{R: 255, G: 0, B: 0, A: 100}
	textColor := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	outlineColor := color.RGBA{R: 0, G: 0, B: 0, A: 200}

	for x := bounds.Min.X + spacing; x < bounds.Max.X; x += spacing {
		drawVerticalLine(rgba, x, lineColor)
	}
	for y := bounds.Min.Y + spacing; y < bounds.Max.Y; y += spacing {
		drawHorizontalLine(rgba, y, lineColor)
	}

	// Labels at intersections, skipping the image border row and column.
	for x := bounds.Min.X + spacing; x < bounds.Max.X; x += spacing {
		for y := bounds.Min.Y + spacing; y < bounds.Max.Y; y += spacing {
			label := fmt.Sprintf("(%d,%d)", x, y)
			drawTextWithOutline(rgba, label, x, y, textColor, outlineColor)
		}
	}

	return rgba
}

func imageToRGBA(img image.Image) *image.RGBA {
	bounds := img.Bounds()
	rgba := image.NewRGBA(bounds)
	draw.Draw(rgba, bounds, img, bounds.Min, draw.Src)
	return rgba
}

func drawVerticalLine(img *image.RGBA, x int, c color.Color) {
	bounds := img.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		img.Set(x, y, c)
	}
}

func drawHorizontalLine(img *image.RGBA, y int, c color.Color) {
	bounds := img.Bounds()
	for x := bounds.Min.X; x < bounds.Max.X; x++ {
		img.Set(x, y, c)
	}
}

// drawTextWithOutline draws text with an outline for better visibility
func drawTextWithOutline(img *image.RGBA, text string, x, y int, textColor, outlineColor color.Color) {
	// basicfont.Face7x13 character dimensions
	textWidth := len(text) * 7
	textHeight := 13

	// Offset position to center the text at (x, y)
	offsetX := x - textWidth/2
	offsetY := y - textHeight/2

	// Draw outline (8 directions around the text)
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			if dx == 0 && dy == 0 {
				continue
			}
			p := fixed.Point26_6{
				X: fixed.Int26_6((offsetX + dx) * 64),
				Y: fixed.Int26_6((offsetY + dy) * 64),
			}
			d := &font.Drawer{
				Dst:  img,
				Src:  image.NewUniform(outlineColor),
				Face: basicfont.Face7x13,
				Dot:  p,
			}
			d.DrawString(text)
		}
	}

	// Draw main text
	point := fixed.Point26_6{
		X: fixed.Int26_6(offsetX * 64),
		Y: fixed.Int26_6(offsetY * 64),
	}
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(textColor),
		Face: basicfont.Face7x13,
		Dot:  point,
	}
	d.DrawString(text)
}
