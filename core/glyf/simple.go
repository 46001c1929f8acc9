package glyf

import (
	"github.com/kfntc/kfntc/core/kerr"
	"github.com/kfntc/kfntc/core/sfntio"
)

const (
	flagOnCurve     = 0x01
	flagXShort      = 0x02
	flagRepeat      = 0x08
	flagYShort      = 0x04
	flagXSameOrPos  = 0x10
	flagYSameOrPos  = 0x20
)

// decodeSimple decodes a simple glyph's contours, per §4.3. pos is the
// absolute offset just past the 10-byte glyph header; end is the absolute
// offset one past the end of this glyph's record (from loca), used to
// reject reads that would silently wander into the next glyph's bytes.
func decodeSimple(r *sfntio.Reader, pos, end, numContours, gid int) ([]Contour, error) {
	within := func(n int) error {
		if pos+n > end {
			return kerr.MalformedGlyph(gid, "simple glyph record truncated")
		}
		return nil
	}

	endPts := make([]int, numContours)
	if err := within(2 * numContours); err != nil {
		return nil, err
	}
	for i := 0; i < numContours; i++ {
		v, err := r.ReadU16(pos)
		if err != nil {
			return nil, kerr.MalformedGlyph(gid, "end-point index")
		}
		endPts[i] = int(v)
		pos += 2
	}

	if numContours == 0 {
		return nil, nil
	}
	numPoints := endPts[numContours-1] + 1

	if err := within(2); err != nil {
		return nil, err
	}
	instrLen, err := r.ReadU16(pos)
	if err != nil {
		return nil, kerr.MalformedGlyph(gid, "instruction length")
	}
	pos += 2
	if err := within(int(instrLen)); err != nil {
		return nil, err
	}
	pos += int(instrLen) // hinting instructions are discarded

	flags := make([]byte, numPoints)
	i := 0
	for i < numPoints {
		if err := within(1); err != nil {
			return nil, err
		}
		f, err := r.ReadU8(pos)
		if err != nil {
			return nil, kerr.MalformedGlyph(gid, "point flag")
		}
		pos++
		flags[i] = f
		i++
		if f&flagRepeat != 0 {
			if err := within(1); err != nil {
				return nil, err
			}
			count, err := r.ReadU8(pos)
			if err != nil {
				return nil, kerr.MalformedGlyph(gid, "point flag repeat count")
			}
			pos++
			for count > 0 && i < numPoints {
				flags[i] = f
				i++
				count--
			}
		}
	}

	xs := make([]float64, numPoints)
	var x int32
	for i, f := range flags {
		switch {
		case f&flagXShort != 0:
			if err := within(1); err != nil {
				return nil, err
			}
			d, err := r.ReadU8(pos)
			if err != nil {
				return nil, kerr.MalformedGlyph(gid, "x delta")
			}
			pos++
			if f&flagXSameOrPos != 0 {
				x += int32(d)
			} else {
				x -= int32(d)
			}
		case f&flagXSameOrPos == 0:
			if err := within(2); err != nil {
				return nil, err
			}
			d, err := r.ReadI16(pos)
			if err != nil {
				return nil, kerr.MalformedGlyph(gid, "x delta")
			}
			pos += 2
			x += int32(d)
		}
		xs[i] = float64(x)
	}

	ys := make([]float64, numPoints)
	var y int32
	for i, f := range flags {
		switch {
		case f&flagYShort != 0:
			if err := within(1); err != nil {
				return nil, err
			}
			d, err := r.ReadU8(pos)
			if err != nil {
				return nil, kerr.MalformedGlyph(gid, "y delta")
			}
			pos++
			if f&flagYSameOrPos != 0 {
				y += int32(d)
			} else {
				y -= int32(d)
			}
		case f&flagYSameOrPos == 0:
			if err := within(2); err != nil {
				return nil, err
			}
			d, err := r.ReadI16(pos)
			if err != nil {
				return nil, kerr.MalformedGlyph(gid, "y delta")
			}
			pos += 2
			y += int32(d)
		}
		ys[i] = float64(y)
	}

	contours := make([]Contour, numContours)
	start := 0
	for ci := 0; ci < numContours; ci++ {
		last := endPts[ci] + 1
		if last <= start || last > numPoints {
			return nil, kerr.MalformedGlyph(gid, "contour end-point out of order")
		}
		pts := make(Contour, last-start)
		for j := start; j < last; j++ {
			pts[j-start] = Point{X: xs[j], Y: ys[j], OnCurve: flags[j]&flagOnCurve != 0}
		}
		contours[ci] = pts
		start = last
	}
	return contours, nil
}
