// Package glyf expands TrueType 'glyf' records — simple and composite —
// into lists of contours. It follows the bounds-checked, offset-walking
// style of the teacher's core/font/opentype/ot byte-segment helpers, but
// (unlike that package's stubbed glyf handling) actually decodes the flag
// and coordinate streams described in §4.3/§4.4 of the outline format.
package glyf

import (
	"github.com/kfntc/kfntc/core/container"
	"github.com/kfntc/kfntc/core/kerr"
	"github.com/kfntc/kfntc/core/sfntio"
)

// Point is a single glyph-outline point in font design units.
type Point struct {
	X, Y    float64
	OnCurve bool
}

// Contour is an ordered ring of points. The ring closes implicitly from
// the last point back to the first.
type Contour []Point

// Outline is the fully expanded outline of one glyph: composite glyphs
// are expanded eagerly into contours before leaving this package.
type Outline struct {
	Contours   []Contour
	XMin, YMin int16
	XMax, YMax int16
	// Transform is the 2x2 affine hint carried alongside the glyph result
	// (§3): identity for simple glyphs, or the first non-identity scale
	// found among a composite's components. Contour coordinates are
	// already transformed; this is metadata for the runtime, not a
	// pending transform.
	Transform [4]float64
}

// MaxCompositeDepth bounds composite-glyph recursion (§4.4 recursion guard).
const MaxCompositeDepth = 32

// Decode expands glyph index gid into an Outline. loca and glyfData come
// from a decoded container.Container.
func Decode(c *container.Container, gid int) (*Outline, error) {
	return decode(c, gid, 0)
}

func decode(c *container.Container, gid int, depth int) (*Outline, error) {
	if depth > MaxCompositeDepth {
		return nil, kerr.MalformedGlyph(gid, "composite depth")
	}
	if gid < 0 || gid+1 >= len(c.Loca) {
		return nil, kerr.MalformedGlyph(gid, "glyph index out of range")
	}
	start, end := c.Loca[gid], c.Loca[gid+1]
	if start == end {
		return &Outline{}, nil // empty glyph; metrics still apply
	}

	r := sfntio.New(c.GlyfData)
	base := int(start)
	length := int(end - start)
	if _, err := r.Slice(base, length); err != nil {
		return nil, kerr.MalformedGlyph(gid, "glyph record out of bounds")
	}
	if length < 10 {
		return nil, kerr.MalformedGlyph(gid, "incomplete glyph header")
	}

	numContours, err := r.ReadI16(base)
	if err != nil {
		return nil, kerr.MalformedGlyph(gid, "unreadable glyph header")
	}
	xmin, _ := r.ReadI16(base + 2)
	ymin, _ := r.ReadI16(base + 4)
	xmax, _ := r.ReadI16(base + 6)
	ymax, _ := r.ReadI16(base + 8)

	out := &Outline{XMin: xmin, YMin: ymin, XMax: xmax, YMax: ymax, Transform: [4]float64{1, 0, 0, 1}}

	if numContours >= 0 {
		contours, err := decodeSimple(r, base+10, int(end), int(numContours), gid)
		if err != nil {
			return nil, err
		}
		out.Contours = contours
		return out, nil
	}

	contours, hint, err := decodeComposite(c, r, base+10, int(end), gid, depth)
	if err != nil {
		return nil, err
	}
	out.Contours = contours
	out.Transform = hint
	return out, nil
}
