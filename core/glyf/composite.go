package glyf

import (
	"github.com/kfntc/kfntc/core/container"
	"github.com/kfntc/kfntc/core/kerr"
	"github.com/kfntc/kfntc/core/sfntio"
)

const (
	compArgsAreWords     = 0x0001
	compArgsAreXY        = 0x0002
	compHaveScale        = 0x0008
	compMoreComponents   = 0x0020
	compHaveXYScale      = 0x0040
	compHaveTwoByTwo     = 0x0080
	compHaveInstructions = 0x0100
)

var identityTransform = [4]float64{1, 0, 0, 1}

// affine is a 2x2 linear transform plus translation, in F2DOT14/design-unit
// terms, applied to a recursed component's contours before they are
// concatenated into the parent outline (§4.4).
type affine struct {
	a, b, c, d float64
	dx, dy     float64
}

func (m affine) apply(p Point) Point {
	return Point{
		X:       m.a*p.X + m.c*p.Y + m.dx,
		Y:       m.b*p.X + m.d*p.Y + m.dy,
		OnCurve: p.OnCurve,
	}
}

func readF2Dot14(r *sfntio.Reader, pos int) (float64, error) {
	v, err := r.ReadI16(pos)
	if err != nil {
		return 0, err
	}
	return float64(v) / 16384.0, nil
}

// decodeComposite expands a composite glyph's components, recursively
// decoding each referenced glyph and folding its contours through the
// component's affine transform and translation, per §4.4. It also returns
// a transform hint: the first component's scale/transform that is not the
// identity, or identity if every component is an unscaled translation.
func decodeComposite(c *container.Container, r *sfntio.Reader, pos, end, gid, depth int) ([]Contour, [4]float64, error) {
	within := func(n int) error {
		if pos+n > end {
			return kerr.MalformedGlyph(gid, "composite glyph record truncated")
		}
		return nil
	}

	hint := identityTransform
	hintSet := false
	var result []Contour
	for {
		if err := within(4); err != nil {
			return nil, hint, err
		}
		flags, err := r.ReadU16(pos)
		if err != nil {
			return nil, hint, kerr.MalformedGlyph(gid, "component flags")
		}
		compGid, err := r.ReadU16(pos + 2)
		if err != nil {
			return nil, hint, kerr.MalformedGlyph(gid, "component glyph index")
		}
		pos += 4

		var dx, dy float64
		if flags&compArgsAreWords != 0 {
			if err := within(4); err != nil {
				return nil, hint, err
			}
			if flags&compArgsAreXY != 0 {
				a1, err1 := r.ReadI16(pos)
				a2, err2 := r.ReadI16(pos + 2)
				if err1 != nil || err2 != nil {
					return nil, hint, kerr.MalformedGlyph(gid, "component arguments")
				}
				dx, dy = float64(a1), float64(a2)
			}
			pos += 4
		} else {
			if err := within(2); err != nil {
				return nil, hint, err
			}
			if flags&compArgsAreXY != 0 {
				a1, err1 := r.ReadU8(pos)
				a2, err2 := r.ReadU8(pos + 1)
				if err1 != nil || err2 != nil {
					return nil, hint, kerr.MalformedGlyph(gid, "component arguments")
				}
				dx, dy = float64(int8(a1)), float64(int8(a2))
			}
			pos += 2
		}
		// ARGS_ARE_XY_VALUES unset means point-matching anchors, which this
		// compiler does not support; the component still decodes with a
		// zero translation rather than failing the whole glyph.

		m := affine{a: 1, b: 0, c: 0, d: 1, dx: dx, dy: dy}
		switch {
		case flags&compHaveScale != 0:
			if err := within(2); err != nil {
				return nil, hint, err
			}
			s, err := readF2Dot14(r, pos)
			if err != nil {
				return nil, hint, kerr.MalformedGlyph(gid, "component scale")
			}
			pos += 2
			m.a, m.d = s, s
		case flags&compHaveXYScale != 0:
			if err := within(4); err != nil {
				return nil, hint, err
			}
			sx, err1 := readF2Dot14(r, pos)
			sy, err2 := readF2Dot14(r, pos+2)
			if err1 != nil || err2 != nil {
				return nil, hint, kerr.MalformedGlyph(gid, "component x/y scale")
			}
			pos += 4
			m.a, m.d = sx, sy
		case flags&compHaveTwoByTwo != 0:
			if err := within(8); err != nil {
				return nil, hint, err
			}
			a, e1 := readF2Dot14(r, pos)
			b, e2 := readF2Dot14(r, pos+2)
			cc, e3 := readF2Dot14(r, pos+4)
			d, e4 := readF2Dot14(r, pos+6)
			if e1 != nil || e2 != nil || e3 != nil || e4 != nil {
				return nil, hint, kerr.MalformedGlyph(gid, "component 2x2 transform")
			}
			pos += 8
			m.a, m.b, m.c, m.d = a, b, cc, d
		}

		if !hintSet && (m.a != 1 || m.b != 0 || m.c != 0 || m.d != 1) {
			hint = [4]float64{m.a, m.b, m.c, m.d}
			hintSet = true
		}

		sub, err := decode(c, int(compGid), depth+1)
		if err != nil {
			return nil, hint, err
		}
		for _, ring := range sub.Contours {
			transformed := make(Contour, len(ring))
			for i, p := range ring {
				transformed[i] = m.apply(p)
			}
			result = append(result, transformed)
		}

		if flags&compMoreComponents == 0 {
			if flags&compHaveInstructions != 0 {
				if err := within(2); err != nil {
					return nil, hint, err
				}
				instrLen, err := r.ReadU16(pos)
				if err != nil {
					return nil, hint, kerr.MalformedGlyph(gid, "composite instruction length")
				}
				pos += 2 + int(instrLen)
			}
			break
		}
	}
	return result, hint, nil
}
