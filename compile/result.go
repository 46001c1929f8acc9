// Package compile assembles the geometry pipeline's per-glyph output into
// the two compiled-file flavors and serializes them bit-exactly (§4.6,
// §4.7), and drives the whole pipeline on behalf of a CLI shell (§4.8).
package compile

import (
	"github.com/kfntc/kfntc/core/container"
	"github.com/kfntc/kfntc/core/geometry"
	"github.com/kfntc/kfntc/core/glyf"
	"github.com/kfntc/kfntc/core/kerr"
	"github.com/kfntc/kfntc/core/klog"
)

// GlyphResult is the per-glyph output of the pipeline (§3): metrics plus
// a normalized triangle mesh, ready to hand to the glyph-flavor writer.
type GlyphResult struct {
	Index        uint32
	AdvanceWidth float32
	LSB          float32
	AnchorX      float32
	AnchorY      float32
	Transform    [4]float64
	Vertices     []geometry.Vec2
	Indices      []int
}

// AssembleGlyphs runs the outline decoder and geometry pipeline (§4.3–§4.5)
// over every glyph in c, normalizing metrics by unitsPerEm and dropping
// glyphs whose pipeline output carries no vertices or no indices, per
// §4.6. A DegenerateGlyph error is recovered locally: the glyph is
// skipped and logged as a warning, matching the propagation policy in §7.
// Every other error aborts the whole invocation.
func AssembleGlyphs(c *container.Container, log klog.Logger) ([]GlyphResult, error) {
	unitsPerEm := c.Head.UnitsPerEm
	numGlyphs := int(c.Maxp.NumGlyphs)
	results := make([]GlyphResult, 0, numGlyphs)

	for gid := 0; gid < numGlyphs; gid++ {
		outline, err := glyf.Decode(c, gid)
		if err != nil {
			return nil, err
		}
		mesh, err := geometry.Process(outline, unitsPerEm, gid)
		if err != nil {
			if kerr.IsRecoverable(err) {
				log.Log(klog.Warning, "geometry", err.Error())
				continue
			}
			return nil, err
		}
		if len(mesh.Vertices) == 0 || len(mesh.Indices) == 0 {
			continue
		}

		metric := c.HMetrics[gid]
		em := float64(unitsPerEm)
		indices := make([]int, len(mesh.Indices))
		copy(indices, mesh.Indices)

		results = append(results, GlyphResult{
			Index:        uint32(gid),
			AdvanceWidth: float32(float64(metric.AdvanceWidth) / em),
			LSB:          float32(float64(metric.LSB) / em),
			AnchorX:      float32(float64(metric.LSB) / em),
			AnchorY:      0,
			Transform:    outline.Transform,
			Vertices:     mesh.Vertices,
			Indices:      indices,
		})
	}
	return results, nil
}
