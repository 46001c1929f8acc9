package compile

import (
	"image"
	"math"
	"os"

	"golang.org/x/image/vector"

	"github.com/kfntc/kfntc/core/container"
	"github.com/kfntc/kfntc/core/geometry"
	"github.com/kfntc/kfntc/core/glyf"
	"github.com/kfntc/kfntc/core/kerr"
)

// Rasterizer is the bitmap flavor's external collaborator (§6):
// rasterize(input_path, glyph_height) → bitmap glyph blocks. The
// rasterization algorithm itself is out of scope for this package; the
// driver only depends on this interface.
type Rasterizer interface {
	Rasterize(inputPath string, glyphHeight uint8) ([]BitmapGlyphBlock, error)
}

// printableASCII is the codepoint range DefaultRasterizer renders. It maps
// each codepoint directly to the same-numbered glyph index, since the
// container decoder (§4.2) does not decode 'cmap' — a real cmap-driven
// mapping is left to a richer Rasterizer implementation.
var printableASCII = [2]rune{0x20, 0x7e}

// DefaultRasterizer is a concrete Rasterizer built on this module's own
// decoder and geometry pipeline (§4.2–§4.5) plus golang.org/x/image/vector
// for the actual scan conversion, the same non-zero-winding CPU
// rasterizer seehuhn.de/go/pdf's image renderer drives with MoveTo/
// LineTo/CubeTo calls ahead of a single Draw into an alpha mask. It lets
// the bitmap flavor be exercised end-to-end without a separate rasterizer
// process, at the cost of the codepoint-to-glyph-index simplification
// above.
type DefaultRasterizer struct{}

func (DefaultRasterizer) Rasterize(inputPath string, glyphHeight uint8) ([]BitmapGlyphBlock, error) {
	data, err := os.ReadFile(inputPath)
	if err != nil {
		return nil, kerr.IO(err.Error())
	}
	c, err := container.Parse(data)
	if err != nil {
		return nil, err
	}

	unitsPerEm := float64(c.Head.UnitsPerEm)
	scale := float64(glyphHeight) / unitsPerEm

	var blocks []BitmapGlyphBlock
	for cp := printableASCII[0]; cp <= printableASCII[1]; cp++ {
		gid := int(cp)
		if gid >= int(c.Maxp.NumGlyphs) {
			continue
		}
		outline, err := glyf.Decode(c, gid)
		if err != nil {
			return nil, err
		}
		mesh, err := geometry.Process(outline, c.Head.UnitsPerEm, gid)
		if err != nil {
			if kerr.IsRecoverable(err) {
				continue
			}
			return nil, err
		}
		if len(mesh.Vertices) == 0 || len(mesh.Indices) == 0 {
			continue
		}

		width := pixelDim(outline.XMax, outline.XMin, scale)
		height := pixelDim(outline.YMax, outline.YMin, scale)
		if width == 0 || height == 0 {
			continue
		}

		toPixel := func(v geometry.Vec2) (float32, float32) {
			rawX := v.X * unitsPerEm
			rawY := v.Y * unitsPerEm
			px := rawX*scale - float64(outline.XMin)*scale
			py := float64(outline.YMax)*scale - rawY*scale
			return float32(px), float32(py)
		}

		raster := vector.NewRasterizer(int(width), int(height))
		for i := 0; i < len(mesh.Indices); i += 3 {
			a := mesh.Vertices[mesh.Indices[i]]
			b := mesh.Vertices[mesh.Indices[i+1]]
			cc := mesh.Vertices[mesh.Indices[i+2]]
			ax, ay := toPixel(a)
			bx, by := toPixel(b)
			cx, cy := toPixel(cc)
			raster.MoveTo(ax, ay)
			raster.LineTo(bx, by)
			raster.LineTo(cx, cy)
			raster.LineTo(ax, ay)
		}
		dst := image.NewAlpha(image.Rect(0, 0, int(width), int(height)))
		raster.Draw(dst, dst.Bounds(), image.Opaque, image.Point{})

		metric := c.HMetrics[gid]
		blocks = append(blocks, BitmapGlyphBlock{
			Codepoint: uint32(cp),
			Width:     width,
			Height:    height,
			BearingX:  int16(math.Round(float64(metric.LSB) * scale)),
			BearingY:  int16(math.Round(float64(outline.YMax) * scale)),
			Advance:   uint16(math.Round(float64(metric.AdvanceWidth) * scale)),
			Coverage:  dst.Pix,
		})
	}
	return blocks, nil
}

func pixelDim(max, min int16, scale float64) uint16 {
	d := math.Round(float64(max-min) * scale)
	if d < 0 {
		return 0
	}
	return uint16(d)
}
