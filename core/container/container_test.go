package container

import (
	"testing"

	"github.com/kfntc/kfntc/core/kerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tableSpec struct {
	tag  string
	data []byte
}

// buildSfnt assembles a minimal, well-formed sfnt buffer (offset table plus
// table directory plus padded table bodies) from the given tables, in the
// teacher's own table-directory layout (core/font/opentype/ot.Parse reads
// the same 12-byte header and 16-byte records).
func buildSfnt(t *testing.T, scaler uint32, tables []tableSpec) []byte {
	t.Helper()
	put16 := func(b []byte, v uint16) []byte { return append(b, byte(v>>8), byte(v)) }
	put32 := func(b []byte, v uint32) []byte {
		return append(b, byte(v>>24), byte(v>>16), byte(v>>8), byte(v))
	}

	var head []byte
	head = put32(head, scaler)
	head = put16(head, uint16(len(tables)))
	head = put16(head, 0) // searchRange
	head = put16(head, 0) // entrySelector
	head = put16(head, 0) // rangeShift

	dirSize := 16 * len(tables)
	bodyStart := len(head) + dirSize
	var dir []byte
	var bodies []byte
	offset := bodyStart
	for _, ts := range tables {
		dir = append(dir, ts.tag[0], ts.tag[1], ts.tag[2], ts.tag[3])
		dir = put32(dir, 0) // checksum, unchecked by this decoder
		dir = put32(dir, uint32(offset))
		dir = put32(dir, uint32(len(ts.data)))
		bodies = append(bodies, ts.data...)
		offset += len(ts.data)
	}
	return append(append(head, dir...), bodies...)
}

func headTable(unitsPerEm uint16, indexToLoc int16) []byte {
	b := make([]byte, 54)
	put32 := func(off int, v uint32) {
		b[off] = byte(v >> 24)
		b[off+1] = byte(v >> 16)
		b[off+2] = byte(v >> 8)
		b[off+3] = byte(v)
	}
	put16 := func(off int, v uint16) {
		b[off] = byte(v >> 8)
		b[off+1] = byte(v)
	}
	put32(12, headMagic)
	put16(18, unitsPerEm)
	put16(50, uint16(indexToLoc))
	return b
}

func maxpTable(numGlyphs uint16) []byte {
	b := make([]byte, 6)
	b[4] = byte(numGlyphs >> 8)
	b[5] = byte(numGlyphs)
	return b
}

func hheaTable(numHMetrics uint16) []byte {
	b := make([]byte, 36)
	b[34] = byte(numHMetrics >> 8)
	b[35] = byte(numHMetrics)
	return b
}

func hmtxTable(advances []uint16, lsbs []int16) []byte {
	var b []byte
	for _, a := range advances {
		b = append(b, byte(a>>8), byte(a))
	}
	for _, l := range lsbs {
		b = append(b, byte(uint16(l)>>8), byte(uint16(l)))
	}
	return b
}

func locaTableShort(offsets []uint32) []byte {
	var b []byte
	for _, o := range offsets {
		v := uint16(o / 2)
		b = append(b, byte(v>>8), byte(v))
	}
	return b
}

func minimalTrueType(t *testing.T) []byte {
	t.Helper()
	// One empty glyph: loca == [0, 0].
	tables := []tableSpec{
		{"head", headTable(1000, 0)},
		{"maxp", maxpTable(1)},
		{"hhea", hheaTable(1)},
		{"hmtx", hmtxTable([]uint16{500}, []int16{10})},
		{"loca", locaTableShort([]uint32{0, 0})},
		{"glyf", nil},
	}
	return buildSfnt(t, uint32(ScalerTrueType), tables)
}

func TestParseMinimalTrueType(t *testing.T) {
	buf := minimalTrueType(t)
	c, err := Parse(buf)
	require.NoError(t, err)
	assert.True(t, c.IsTrueType)
	assert.Equal(t, uint16(1000), c.Head.UnitsPerEm)
	assert.Equal(t, uint16(1), c.Maxp.NumGlyphs)
	require.Len(t, c.HMetrics, 1)
	assert.Equal(t, uint16(500), c.HMetrics[0].AdvanceWidth)
	assert.Equal(t, int16(10), c.HMetrics[0].LSB)
	assert.Equal(t, []uint32{0, 0}, c.Loca)
}

func TestParseRejectsCFFContainer(t *testing.T) {
	tables := []tableSpec{{"head", headTable(1000, 0)}}
	buf := buildSfnt(t, uint32(ScalerOpenTypeCFF), tables)
	_, err := Parse(buf)
	require.Error(t, err)
	assert.Equal(t, kerr.CodeUnsupportedContainer, kerr.CodeOf(err))
}

func TestParseRejectsUnknownScaler(t *testing.T) {
	buf := buildSfnt(t, 0xDEADBEEF, nil)
	_, err := Parse(buf)
	require.Error(t, err)
	assert.Equal(t, kerr.CodeUnsupportedContainer, kerr.CodeOf(err))
}

func TestParseReportsMissingTable(t *testing.T) {
	tables := []tableSpec{
		{"head", headTable(1000, 0)},
		{"maxp", maxpTable(1)},
	}
	buf := buildSfnt(t, uint32(ScalerTrueType), tables)
	_, err := Parse(buf)
	require.Error(t, err)
	assert.Equal(t, kerr.CodeMissingTable, kerr.CodeOf(err))
}

func TestParseRejectsBadHeadMagic(t *testing.T) {
	head := headTable(1000, 0)
	head[12] = 0x00 // corrupt the magic number
	tables := []tableSpec{
		{"head", head},
		{"maxp", maxpTable(1)},
		{"hhea", hheaTable(1)},
		{"hmtx", hmtxTable([]uint16{500}, nil)},
		{"loca", locaTableShort([]uint32{0, 0})},
		{"glyf", nil},
	}
	buf := buildSfnt(t, uint32(ScalerTrueType), tables)
	_, err := Parse(buf)
	require.Error(t, err)
	assert.Equal(t, kerr.CodeMalformedTable, kerr.CodeOf(err))
}

func TestParseRejectsNonMonotoneLoca(t *testing.T) {
	tables := []tableSpec{
		{"head", headTable(1000, 0)},
		{"maxp", maxpTable(1)},
		{"hhea", hheaTable(1)},
		{"hmtx", hmtxTable([]uint16{500}, []int16{0})},
		{"loca", locaTableShort([]uint32{4, 0})},
		{"glyf", make([]byte, 8)},
	}
	buf := buildSfnt(t, uint32(ScalerTrueType), tables)
	_, err := Parse(buf)
	require.Error(t, err)
	assert.Equal(t, kerr.CodeMalformedTable, kerr.CodeOf(err))
}
