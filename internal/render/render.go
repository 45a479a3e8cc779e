// Package render rasterizes lines of text to images.
package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"os"
	"path/filepath"

	"github.com/npillmayer/otglyph"
	"golang.org/x/image/vector"
)

// Options control the rasterization of a line.
type Options struct {
	Size      float64 // font size in pixels per em
	Spacing   float64 // letter spacing in em
	Margin    int     // in pixels, on every side
	ShowBoxes bool    // draw red bounding-box outlines per glyph
}

// DefaultOptions renders at 48 pixels per em.
var DefaultOptions = Options{Size: 48, Margin: 8}

// Line renders text black on white. The image is as wide as the text plus
// margins, and as high as the font's ascender and descender plus margins.
func Line(f *otglyph.Font, text string, opts Options) (*image.RGBA, error) {
	if f == nil {
		return nil, errors.New("no font")
	}
	if opts.Size <= 0 {
		return nil, fmt.Errorf("illegal font size %g", opts.Size)
	}
	var placements []otglyph.Placement
	penX, err := f.LayoutString(text, opts.Size, opts.Spacing, func(g *otglyph.Glyph, x float64) {
		placements = append(placements, otglyph.Placement{Glyph: g, X: x})
	})
	if err != nil {
		return nil, err
	}
	if len(placements) == 0 {
		return nil, errors.New("nothing to render")
	}
	scale := opts.Size / float64(f.UnitsPerEm())
	margin := float64(opts.Margin)
	width := int(math.Ceil(max(penX, 1) + 2*margin))
	height := int(math.Ceil(float64(f.Ascender()-f.Descender())*scale + 2*margin))
	baseline := margin + float64(f.Ascender())*scale

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.RGBA{255, 255, 255, 255}), image.Point{}, draw.Src)
	rast := vector.NewRasterizer(width, height)
	rast.DrawOp = draw.Over
	for _, p := range placements {
		dx := float32(margin + p.X)
		tx := func(x float32) float32 { return dx + x*float32(scale) }
		ty := func(y float32) float32 { return float32(baseline) - y*float32(scale) }
		err := p.Glyph.ForEachPathCommand(func(cmd otglyph.OutlineCommand) {
			a := cmd.Args()
			switch cmd.Op {
			case otglyph.OpMoveTo:
				rast.MoveTo(tx(a[0]), ty(a[1]))
			case otglyph.OpLineTo:
				rast.LineTo(tx(a[0]), ty(a[1]))
			case otglyph.OpQuadTo:
				rast.QuadTo(tx(a[0]), ty(a[1]), tx(a[2]), ty(a[3]))
			case otglyph.OpCubeTo:
				rast.CubeTo(tx(a[0]), ty(a[1]), tx(a[2]), ty(a[3]), tx(a[4]), ty(a[5]))
			case otglyph.OpClose:
				rast.ClosePath()
			}
		})
		if err != nil {
			return nil, err
		}
	}
	rast.Draw(img, img.Bounds(), image.Black, image.Point{})
	if opts.ShowBoxes {
		for _, p := range placements {
			if p.Glyph.Bounds().Empty() {
				continue
			}
			b := p.Glyph.Bounds()
			minX := int(math.Floor(margin + p.X + float64(b.XMin)*scale))
			maxX := int(math.Ceil(margin + p.X + float64(b.XMax)*scale))
			minY := int(math.Floor(baseline - float64(b.YMax)*scale))
			maxY := int(math.Ceil(baseline - float64(b.YMin)*scale))
			drawRectOutline(img, minX, minY, maxX, maxY, color.RGBA{255, 0, 0, 255})
		}
	}
	return img, nil
}

// WritePNG encodes an image as PNG to a file, creating the directory if necessary.
func WritePNG(img image.Image, outPath string) error {
	if dir := filepath.Dir(outPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("cannot create output directory: %w", err)
		}
	}
	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("cannot create output file: %w", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("cannot encode png: %w", err)
	}
	return nil
}

func drawRectOutline(img *image.RGBA, minX, minY, maxX, maxY int, c color.RGBA) {
	b := img.Bounds()
	minX, minY = max(minX, b.Min.X), max(minY, b.Min.Y)
	maxX, maxY = min(maxX, b.Max.X), min(maxY, b.Max.Y)
	if minX >= maxX || minY >= maxY {
		return
	}
	// top and bottom
	for x := minX; x < maxX; x++ {
		img.SetRGBA(x, minY, c)
		img.SetRGBA(x, maxY-1, c)
	}
	// left and right
	for y := minY; y < maxY; y++ {
		img.SetRGBA(minX, y, c)
		img.SetRGBA(maxX-1, y, c)
	}
}
