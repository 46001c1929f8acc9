package compile

import (
	"bytes"
	"encoding/binary"
	"io"
	"math"
)

// WriteGlyphFile serializes results as a glyph-flavor compiled file (§4.6):
// tag KFNT, version 1, glyph count, then one GLYF block per glyph with
// nested VERT/INDI sub-blocks. All integers are little-endian. Glyphs
// with no vertices or no indices are expected to have been dropped
// already by AssembleGlyphs; WriteGlyphFile re-checks defensively.
func WriteGlyphFile(w io.Writer, results []GlyphResult) error {
	kept := make([]GlyphResult, 0, len(results))
	for _, r := range results {
		if len(r.Vertices) == 0 || len(r.Indices) == 0 {
			continue
		}
		kept = append(kept, r)
	}

	var buf bytes.Buffer
	buf.Write([]byte("KFNT"))
	writeU32(&buf, 1)
	writeU32(&buf, uint32(len(kept)))

	for _, r := range kept {
		buf.Write([]byte("GLYF"))
		writeU32(&buf, r.Index)
		writeF32(&buf, r.AdvanceWidth)
		writeF32(&buf, r.LSB)
		writeF32(&buf, r.AnchorX)
		writeF32(&buf, r.AnchorY)
		for _, m := range r.Transform {
			writeF32(&buf, float32(m))
		}

		buf.Write([]byte("VERT"))
		writeU32(&buf, uint32(len(r.Vertices)))
		for _, v := range r.Vertices {
			writeF32(&buf, float32(v.X))
			writeF32(&buf, float32(v.Y))
		}

		buf.Write([]byte("INDI"))
		writeU32(&buf, uint32(len(r.Indices)))
		for _, idx := range r.Indices {
			writeU32(&buf, uint32(idx))
		}
	}

	_, err := w.Write(buf.Bytes())
	return err
}

func writeU32(buf *bytes.Buffer, v uint32) {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], v)
	buf.Write(tmp[:])
}

func writeF32(buf *bytes.Buffer, v float32) {
	writeU32(buf, math.Float32bits(v))
}
