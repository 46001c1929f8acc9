package geometry

import "github.com/kfntc/kfntc/core/kerr"

// maxNestingDepth guards the parent-chain walk in Classify; real glyphs
// never approach it since the parent relation cannot cycle by construction
// (§4.5), but malformed pipeline state must still fail loudly rather than
// loop forever.
const maxNestingDepth = 32

// RingInfo is one cleaned-up ring plus its hole-classification result.
type RingInfo struct {
	Points []Vec2
	Area   float64 // signed area after CleanRing; always >= 0
	Parent int     // index into the Classify input, or -1
	Depth  int
	IsHole bool
}

// Classify computes, for every ring, its containing parent (the smallest
// other ring of strictly larger area whose polygon contains this ring's
// centroid) and the
// resulting even-odd nesting depth, per §4.5's hole-classification stage.
func Classify(rings [][]Vec2, gid int) ([]RingInfo, error) {
	infos := make([]RingInfo, len(rings))
	centroids := make([]Vec2, len(rings))
	for i, r := range rings {
		infos[i] = RingInfo{Points: r, Area: signedArea(r), Parent: -1}
		centroids[i] = centroid(r)
	}

	for i := range infos {
		ownArea := infos[i].Area
		if ownArea < 0 {
			ownArea = -ownArea
		}
		bestArea := -1.0
		parent := -1
		for j := range infos {
			if i == j {
				continue
			}
			if !pointInPolygon(centroids[i], infos[j].Points) {
				continue
			}
			area := infos[j].Area
			if area < 0 {
				area = -area
			}
			// A ring no larger than ring i cannot contain it, even when it
			// holds i's centroid (concentric rings share one); skipping it
			// keeps the parent relation acyclic.
			if area <= ownArea {
				continue
			}
			if parent == -1 || area < bestArea {
				bestArea = area
				parent = j
			}
		}
		infos[i].Parent = parent
	}

	for i := range infos {
		depth := 0
		cur := infos[i].Parent
		for cur != -1 {
			depth++
			if depth > maxNestingDepth {
				return nil, kerr.MalformedGlyph(gid, "hole nesting depth exceeded")
			}
			cur = infos[cur].Parent
		}
		infos[i].Depth = depth
		infos[i].IsHole = depth%2 == 1
	}
	return infos, nil
}

func centroid(ring []Vec2) Vec2 {
	var sx, sy float64
	for _, p := range ring {
		sx += p.X
		sy += p.Y
	}
	n := float64(len(ring))
	return Vec2{sx / n, sy / n}
}
