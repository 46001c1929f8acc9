// Package geometry turns decoded glyph outlines into triangulated, EM-
// normalized meshes: Bezier flattening, ring cleanup, even-odd hole
// classification and ear-clip triangulation (§4.5). Every stage consumes
// and produces plain value types; nothing here touches sfnt bytes.
package geometry

import "math"

// Vec2 is a 2D point in whichever unit the stage currently works in:
// design units before Normalize, EM units after.
type Vec2 struct {
	X, Y float64
}

const flattenEpsilon = 1e-9
const cleanupEpsilon = 1e-6

func dist(a, b Vec2) float64 {
	dx, dy := a.X-b.X, a.Y-b.Y
	return math.Sqrt(dx*dx + dy*dy)
}

func midVec(a, b Vec2) Vec2 {
	return Vec2{(a.X + b.X) / 2, (a.Y + b.Y) / 2}
}

// signedArea is the polygon area via the shoelace formula; its sign
// gives the winding direction (positive = counter-clockwise).
func signedArea(ring []Vec2) float64 {
	var sum float64
	n := len(ring)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		sum += ring[i].X*ring[j].Y - ring[j].X*ring[i].Y
	}
	return sum / 2
}

// triangleSignedArea is twice the area of triangle (a,b,c); positive for
// counter-clockwise winding.
func triangleSignedArea(a, b, c Vec2) float64 {
	return (b.X-a.X)*(c.Y-a.Y) - (c.X-a.X)*(b.Y-a.Y)
}

// pointInPolygon reports whether p lies inside poly, via horizontal
// ray-cast parity (even-odd rule). Boundary behavior is not load-bearing
// here: callers only ever test centroids, which by construction do not
// land exactly on an edge except in pathological degenerate input.
func pointInPolygon(p Vec2, poly []Vec2) bool {
	inside := false
	n := len(poly)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		a, b := poly[j], poly[i]
		if (a.Y > p.Y) != (b.Y > p.Y) {
			x := a.X + (p.Y-a.Y)*(b.X-a.X)/(b.Y-a.Y)
			if p.X < x {
				inside = !inside
			}
		}
	}
	return inside
}
