package geometry

import "github.com/kfntc/kfntc/core/kerr"

// MaxVerticesPerGlyph and MaxIndicesPerGlyph are the per-glyph resource
// caps enforced after EM normalization (§4.5).
const (
	MaxVerticesPerGlyph = 8192
	MaxIndicesPerGlyph  = 8192
)

// Mesh is the normalized, triangulated result of one glyph's geometry
// pipeline: the §3 "Glyph result", minus the advance/lsb/anchor/transform
// metadata the caller already has from the container and outline decoders.
type Mesh struct {
	Vertices []Vec2
	Indices  []int
}

// Normalize divides every vertex coordinate by unitsPerEm and enforces the
// per-glyph vertex/index caps.
func Normalize(vertices []Vec2, indices []int, unitsPerEm uint16, gid int) (*Mesh, error) {
	if len(vertices) > MaxVerticesPerGlyph {
		return nil, kerr.GlyphTooLarge(gid, "vertex count exceeds cap")
	}
	if len(indices) > MaxIndicesPerGlyph {
		return nil, kerr.GlyphTooLarge(gid, "index count exceeds cap")
	}
	scale := 1.0 / float64(unitsPerEm)
	out := make([]Vec2, len(vertices))
	for i, v := range vertices {
		out[i] = Vec2{v.X * scale, v.Y * scale}
	}
	return &Mesh{Vertices: out, Indices: indices}, nil
}
