package geometry

import (
	"math"
	"sort"

	"github.com/emirpasic/gods/lists/doublylinkedlist"
	"github.com/kfntc/kfntc/core/kerr"
)

const triangulateEpsilon = 1e-9

// TriangulateOuter triangulates a single outer ring together with its
// direct holes (§4.5's triangulation stage). Each hole is stitched into
// the outer boundary via a visibility bridge (the classic "keyhole"
// technique for turning a polygon-with-holes into a simple polygon ear
// clipping can consume directly), so the combined ring's vertices —
// returned alongside the triangle indices — include every hole vertex a
// surviving triangle may reference. The centroid-in-hole rejection from
// §4.5 step 3 still runs afterward as a defensive check against any
// bridge that produced a sliver crossing back into a hole.
func TriangulateOuter(outer []Vec2, holes [][]Vec2, gid int) ([]Vec2, []int, error) {
	if len(outer) < 3 {
		return outer, nil, nil
	}

	allPoints := append([]Vec2{}, outer...)
	ring := make([]int, len(outer))
	for i := range outer {
		ring[i] = i
	}

	for _, hole := range holes {
		if len(hole) < 3 {
			continue
		}
		holeBase := len(allPoints)
		allPoints = append(allPoints, hole...)
		holeIdx := make([]int, len(hole))
		for i := range hole {
			holeIdx[i] = holeBase + i
		}
		ring = bridgeHole(ring, holeIdx, allPoints)
	}

	tris, err := earClip(ring, allPoints, gid)
	if err != nil {
		return nil, nil, err
	}
	return allPoints, rejectHoleTriangles(allPoints, tris, holes), nil
}

// bridgeHole splices hole (indices into points) into ring by connecting
// the hole's rightmost vertex to the nearest ring vertex whose bridge
// segment crosses no edge already on the ring. The hole is walked against
// its own winding (rings leave CleanRing counter-clockwise), so it runs
// clockwise inside the counter-clockwise merged ring.
func bridgeHole(ring []int, hole []int, points []Vec2) []int {
	hi := 0
	for i, idx := range hole {
		if points[idx].X > points[hole[hi]].X {
			hi = i
		}
	}
	bridgePoint := points[hole[hi]]

	type candidate struct {
		pos  int
		dist float64
	}
	candidates := make([]candidate, len(ring))
	for i, idx := range ring {
		candidates[i] = candidate{pos: i, dist: dist(bridgePoint, points[idx])}
	}
	sort.Slice(candidates, func(a, b int) bool { return candidates[a].dist < candidates[b].dist })

	target := candidates[0].pos
	for _, cand := range candidates {
		if !bridgeCrossesRing(ring, cand.pos, hole[hi], points) {
			target = cand.pos
			break
		}
	}

	merged := make([]int, 0, len(ring)+len(hole)+2)
	merged = append(merged, ring[:target+1]...)
	for k := 0; k <= len(hole); k++ {
		merged = append(merged, hole[(hi-k+len(hole))%len(hole)])
	}
	merged = append(merged, ring[target])
	merged = append(merged, ring[target+1:]...)
	return merged
}

// bridgeCrossesRing reports whether the segment from ring[targetPos] to
// holePoint properly crosses any edge of ring (sharing an endpoint does
// not count as crossing).
func bridgeCrossesRing(ring []int, targetPos, holePoint int, points []Vec2) bool {
	a := points[ring[targetPos]]
	b := points[holePoint]
	n := len(ring)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		if i == targetPos || j == targetPos {
			continue
		}
		if segmentsProperlyIntersect(a, b, points[ring[i]], points[ring[j]]) {
			return true
		}
	}
	return false
}

func segmentsProperlyIntersect(a, b, c, d Vec2) bool {
	d1 := triangleSignedArea(a, b, c)
	d2 := triangleSignedArea(a, b, d)
	d3 := triangleSignedArea(c, d, a)
	d4 := triangleSignedArea(c, d, b)
	return ((d1 > 0) != (d2 > 0)) && (d1 != 0 && d2 != 0) &&
		((d3 > 0) != (d4 > 0)) && (d3 != 0 && d4 != 0)
}

// earClip runs ear-clipping over ring (a sequence of indices into points),
// per §4.5's triangulation algorithm: repeatedly clip a convex ear
// containing no other ring vertex, falling back to dropping the
// least-significant vertex when a pass finds none, bounded by a 3n-
// iteration watchdog.
func earClip(ring []int, points []Vec2, gid int) ([]int, error) {
	n := len(ring)
	if n < 3 {
		return nil, nil
	}

	active := doublylinkedlist.New()
	for _, idx := range ring {
		active.Add(idx)
	}

	var tris []int
	watchdog := 3 * n
	iterations := 0
	for active.Size() > 2 {
		iterations++
		if iterations > watchdog {
			return nil, kerr.DegenerateGlyph(gid, "triangulation watchdog exhausted")
		}

		size := active.Size()
		earFound := false
		for k := 0; k < size; k++ {
			prevPos, nextPos := (k-1+size)%size, (k+1)%size
			aRaw, _ := active.Get(prevPos)
			bRaw, _ := active.Get(k)
			cRaw, _ := active.Get(nextPos)
			ai, bi, ci := aRaw.(int), bRaw.(int), cRaw.(int)
			pa, pb, pc := points[ai], points[bi], points[ci]

			area := triangleSignedArea(pa, pb, pc)
			if area <= triangulateEpsilon {
				continue
			}
			if anyOtherVertexInside(active, points, k, prevPos, nextPos, pa, pb, pc) {
				continue
			}

			tris = append(tris, ai, bi, ci)
			active.Remove(k)
			earFound = true
			break
		}

		if !earFound {
			size = active.Size()
			if size <= 2 {
				break
			}
			minArea := math.MaxFloat64
			minPos := -1
			for k := 0; k < size; k++ {
				prevPos, nextPos := (k-1+size)%size, (k+1)%size
				aRaw, _ := active.Get(prevPos)
				bRaw, _ := active.Get(k)
				cRaw, _ := active.Get(nextPos)
				area := math.Abs(triangleSignedArea(
					points[aRaw.(int)], points[bRaw.(int)], points[cRaw.(int)]))
				if area < minArea {
					minArea = area
					minPos = k
				}
			}
			if minPos == -1 {
				return nil, kerr.DegenerateGlyph(gid, "no removable vertex found")
			}
			active.Remove(minPos)
		}
	}

	return tris, nil
}

func anyOtherVertexInside(active *doublylinkedlist.List, points []Vec2, k, prevPos, nextPos int, a, b, c Vec2) bool {
	size := active.Size()
	for m := 0; m < size; m++ {
		if m == k || m == prevPos || m == nextPos {
			continue
		}
		vRaw, _ := active.Get(m)
		p := points[vRaw.(int)]
		if pointInTriangle(p, a, b, c) {
			return true
		}
	}
	return false
}

// pointInTriangle assumes (a,b,c) is wound counter-clockwise (its callers
// only ever test ear candidates already filtered for positive area). A
// point counts as inside only once it is strictly beyond eps past every
// edge, so a vertex lying exactly on an edge does not block the ear
// (§4.5's "inclusive test with -eps tolerance").
func pointInTriangle(p, a, b, c Vec2) bool {
	d1 := triangleSignedArea(a, b, p)
	d2 := triangleSignedArea(b, c, p)
	d3 := triangleSignedArea(c, a, p)
	return d1 > triangulateEpsilon && d2 > triangulateEpsilon && d3 > triangulateEpsilon
}

func rejectHoleTriangles(points []Vec2, tris []int, holes [][]Vec2) []int {
	if len(holes) == 0 {
		return tris
	}
	var accepted []int
	for i := 0; i < len(tris); i += 3 {
		pa, pb, pc := points[tris[i]], points[tris[i+1]], points[tris[i+2]]
		cen := Vec2{(pa.X + pb.X + pc.X) / 3, (pa.Y + pb.Y + pc.Y) / 3}
		inHole := false
		for _, h := range holes {
			if pointInPolygon(cen, h) {
				inHole = true
				break
			}
		}
		if !inHole {
			accepted = append(accepted, tris[i], tris[i+1], tris[i+2])
		}
	}
	return accepted
}
