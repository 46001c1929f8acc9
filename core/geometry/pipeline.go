package geometry

import "github.com/kfntc/kfntc/core/glyf"

// Process runs the full per-glyph geometry pipeline (§4.5) over a decoded
// outline: flattening, ring cleanup, hole classification, ear-clip
// triangulation and EM normalization. Empty outlines (empty glyphs) yield
// an empty, non-nil Mesh.
func Process(outline *glyf.Outline, unitsPerEm uint16, gid int) (*Mesh, error) {
	if len(outline.Contours) == 0 {
		return &Mesh{}, nil
	}

	rings := make([][]Vec2, 0, len(outline.Contours))
	for _, contour := range outline.Contours {
		flat := Flatten(contour)
		clean := CleanRing(flat)
		if len(clean) < 3 {
			continue
		}
		rings = append(rings, clean)
	}
	if len(rings) == 0 {
		return &Mesh{}, nil
	}

	infos, err := Classify(rings, gid)
	if err != nil {
		return nil, err
	}

	var vertices []Vec2
	var indices []int
	for i, info := range infos {
		if info.IsHole {
			continue
		}
		var holes [][]Vec2
		for j, other := range infos {
			if other.IsHole && other.Parent == i {
				holes = append(holes, infos[j].Points)
			}
		}

		localVerts, localIndices, err := TriangulateOuter(info.Points, holes, gid)
		if err != nil {
			return nil, err
		}
		if len(localIndices) == 0 {
			continue
		}

		base := len(vertices)
		vertices = append(vertices, localVerts...)
		for _, idx := range localIndices {
			indices = append(indices, idx+base)
		}
	}

	return Normalize(vertices, indices, unitsPerEm, gid)
}
