// Package container decodes the sfnt table directory and the fixed-layout
// tables needed to reach glyph outlines: head, maxp, hhea, hmtx and, for
// TrueType outlines, loca. It is grounded on the table-record walk in the
// teacher's core/font/opentype/ot package (Parse, parseHead, parseHHea,
// parseMaxP), generalized from that package's lazily-navigated table model
// into the eagerly-decoded value types the geometry pipeline needs.
package container

import (
	"github.com/kfntc/kfntc/core/kerr"
	"github.com/kfntc/kfntc/core/sfntio"
)

// ScalerType identifies the sfnt container flavor.
type ScalerType uint32

const (
	// ScalerTrueType is the classic TrueType scaler tag 0x00010000.
	ScalerTrueType ScalerType = 0x00010000
	// ScalerOpenTypeCFF is the 'OTTO' tag used by CFF-outline OpenType fonts.
	ScalerOpenTypeCFF ScalerType = 0x4f54544f // "OTTO"
)

// TableRecord is one entry of the sfnt table directory.
type TableRecord struct {
	Tag    sfntio.Tag
	Offset uint32
	Length uint32
}

// OffsetTable is the parsed sfnt header: the scaler type plus the ordered
// table directory. Duplicate tags are resolved by first occurrence, per
// the data model invariant in §3.
type OffsetTable struct {
	ScalerType ScalerType
	Records    []TableRecord
	byTag      map[sfntio.Tag]TableRecord
}

// Find returns the table record for tag, and whether it was present.
// Matches only the first occurrence of a duplicated tag.
func (o *OffsetTable) Find(tag sfntio.Tag) (TableRecord, bool) {
	rec, ok := o.byTag[tag]
	return rec, ok
}

// Head is the decoded 'head' table (the fields this compiler needs).
type Head struct {
	UnitsPerEm       uint16
	IndexToLocFormat int16
	XMin, YMin       int16
	XMax, YMax       int16
}

// Maxp is the decoded 'maxp' table.
type Maxp struct {
	NumGlyphs uint16
}

// Hhea is the decoded 'hhea' table (the fields needed to build Hmtx).
type Hhea struct {
	NumberOfHMetrics uint16
}

// HMetric is one glyph's horizontal metrics: advance width and left side
// bearing, both in font design units.
type HMetric struct {
	AdvanceWidth uint16
	LSB          int16
}

// Container is the fully decoded, value-typed result of Parse: the offset
// table plus head/maxp/hhea/hmtx, and, for TrueType outlines, the loca
// offsets and the glyf table's own byte range.
type Container struct {
	Offsets OffsetTable
	Head    Head
	Maxp    Maxp
	Hhea    Hhea
	HMetrics []HMetric // length == Maxp.NumGlyphs

	IsTrueType bool
	Loca       []uint32 // length == NumGlyphs+1, absolute offsets into GlyfData
	GlyfData   []byte   // raw bytes of the 'glyf' table
}

const headMagic = 0x5F0F3CF5

var requiredTrueType = []string{"head", "maxp", "hhea", "hmtx", "loca", "glyf"}

// Parse decodes the sfnt container from buf: the offset table, then
// head/maxp/hhea/hmtx, and for TrueType fonts, loca and the glyf byte
// range. CFF-outline OpenType fonts are recognized but rejected with
// UnsupportedContainer, per the open question in §9.
func Parse(buf []byte) (*Container, error) {
	r := sfntio.New(buf)

	scaler, err := r.ReadU32(0)
	if err != nil {
		return nil, err
	}
	st := ScalerType(scaler)
	if st != ScalerTrueType && st != ScalerOpenTypeCFF {
		return nil, kerr.UnsupportedContainer("unrecognized scaler type")
	}

	numTables, err := r.ReadU16(4)
	if err != nil {
		return nil, err
	}

	offsets := OffsetTable{
		ScalerType: st,
		byTag:      make(map[sfntio.Tag]TableRecord, numTables),
	}
	const recordSize = 16
	dirStart := 12
	for i := 0; i < int(numTables); i++ {
		base := dirStart + i*recordSize
		tag, err := r.ReadTag(base)
		if err != nil {
			return nil, err
		}
		off, err := r.ReadU32(base + 8)
		if err != nil {
			return nil, err
		}
		length, err := r.ReadU32(base + 12)
		if err != nil {
			return nil, err
		}
		if _, err := r.Slice(int(off), int(length)); err != nil {
			return nil, err
		}
		rec := TableRecord{Tag: tag, Offset: off, Length: length}
		offsets.Records = append(offsets.Records, rec)
		if _, seen := offsets.byTag[tag]; !seen {
			offsets.byTag[tag] = rec
		}
	}

	if st == ScalerOpenTypeCFF {
		// The table directory is well-formed, but this compiler only
		// reaches glyph outlines through 'glyf'; CFF-family glyph
		// stores are stubbed per §6.
		return nil, kerr.UnsupportedContainer("CFF outlines are not decoded")
	}

	for _, tag := range requiredTrueType {
		t := sfntio.MakeTag(tag[0], tag[1], tag[2], tag[3])
		if _, ok := offsets.Find(t); !ok {
			return nil, kerr.MissingTable(tag)
		}
	}

	head, err := decodeHead(r, offsets)
	if err != nil {
		return nil, err
	}
	maxp, err := decodeMaxp(r, offsets)
	if err != nil {
		return nil, err
	}
	hhea, err := decodeHhea(r, offsets)
	if err != nil {
		return nil, err
	}
	hmetrics, err := decodeHmtx(r, offsets, hhea, maxp)
	if err != nil {
		return nil, err
	}

	c := &Container{
		Offsets:    offsets,
		Head:       *head,
		Maxp:       *maxp,
		Hhea:       *hhea,
		HMetrics:   hmetrics,
		IsTrueType: true,
	}

	locaRec, _ := offsets.Find(sfntio.MakeTag('l', 'o', 'c', 'a'))
	glyfRec, _ := offsets.Find(sfntio.MakeTag('g', 'l', 'y', 'f'))
	glyfData, err := r.Slice(int(glyfRec.Offset), int(glyfRec.Length))
	if err != nil {
		return nil, err
	}
	c.GlyfData = glyfData

	loca, err := decodeLoca(r, locaRec, head, maxp, len(glyfData))
	if err != nil {
		return nil, err
	}
	c.Loca = loca

	return c, nil
}

func decodeHead(r *sfntio.Reader, offsets OffsetTable) (*Head, error) {
	rec, ok := offsets.Find(sfntio.MakeTag('h', 'e', 'a', 'd'))
	if !ok {
		return nil, kerr.MissingTable("head")
	}
	base := int(rec.Offset)
	magic, err := r.ReadU32(base + 12)
	if err != nil {
		return nil, err
	}
	if magic != headMagic {
		return nil, kerr.MalformedTable("head", "bad magic number")
	}
	unitsPerEm, err := r.ReadU16(base + 18)
	if err != nil {
		return nil, err
	}
	if unitsPerEm < 1 || unitsPerEm > 16384 {
		return nil, kerr.MalformedTable("head", "unitsPerEm out of range")
	}
	xmin, err := r.ReadI16(base + 36)
	if err != nil {
		return nil, err
	}
	ymin, err := r.ReadI16(base + 38)
	if err != nil {
		return nil, err
	}
	xmax, err := r.ReadI16(base + 40)
	if err != nil {
		return nil, err
	}
	ymax, err := r.ReadI16(base + 42)
	if err != nil {
		return nil, err
	}
	indexToLoc, err := r.ReadI16(base + 50)
	if err != nil {
		return nil, err
	}
	if indexToLoc != 0 && indexToLoc != 1 {
		return nil, kerr.MalformedTable("head", "invalid indexToLocFormat")
	}
	return &Head{
		UnitsPerEm:       unitsPerEm,
		IndexToLocFormat: indexToLoc,
		XMin:             xmin,
		YMin:             ymin,
		XMax:             xmax,
		YMax:             ymax,
	}, nil
}

func decodeMaxp(r *sfntio.Reader, offsets OffsetTable) (*Maxp, error) {
	rec, ok := offsets.Find(sfntio.MakeTag('m', 'a', 'x', 'p'))
	if !ok {
		return nil, kerr.MissingTable("maxp")
	}
	numGlyphs, err := r.ReadU16(int(rec.Offset) + 4)
	if err != nil {
		return nil, err
	}
	if numGlyphs < 1 {
		return nil, kerr.MalformedTable("maxp", "numGlyphs must be >= 1")
	}
	return &Maxp{NumGlyphs: numGlyphs}, nil
}

func decodeHhea(r *sfntio.Reader, offsets OffsetTable) (*Hhea, error) {
	rec, ok := offsets.Find(sfntio.MakeTag('h', 'h', 'e', 'a'))
	if !ok {
		return nil, kerr.MissingTable("hhea")
	}
	if rec.Length < 36 {
		return nil, kerr.MalformedTable("hhea", "table too short")
	}
	n, err := r.ReadU16(int(rec.Offset) + 34)
	if err != nil {
		return nil, err
	}
	return &Hhea{NumberOfHMetrics: n}, nil
}

func decodeHmtx(r *sfntio.Reader, offsets OffsetTable, hhea *Hhea, maxp *Maxp) ([]HMetric, error) {
	rec, ok := offsets.Find(sfntio.MakeTag('h', 'm', 't', 'x'))
	if !ok {
		return nil, kerr.MissingTable("hmtx")
	}
	numLong := int(hhea.NumberOfHMetrics)
	numGlyphs := int(maxp.NumGlyphs)
	if numLong > numGlyphs || numLong == 0 {
		return nil, kerr.MalformedTable("hmtx", "numberOfHMetrics inconsistent with numGlyphs")
	}

	metrics := make([]HMetric, numGlyphs)
	base := int(rec.Offset)
	var lastAdvance uint16
	for i := 0; i < numLong; i++ {
		adv, err := r.ReadU16(base + i*4)
		if err != nil {
			return nil, err
		}
		lsb, err := r.ReadI16(base + i*4 + 2)
		if err != nil {
			return nil, err
		}
		metrics[i] = HMetric{AdvanceWidth: adv, LSB: lsb}
		lastAdvance = adv
	}
	tailBase := base + numLong*4
	for i := numLong; i < numGlyphs; i++ {
		lsb, err := r.ReadI16(tailBase + (i-numLong)*2)
		if err != nil {
			return nil, err
		}
		metrics[i] = HMetric{AdvanceWidth: lastAdvance, LSB: lsb}
	}
	return metrics, nil
}

func decodeLoca(r *sfntio.Reader, rec TableRecord, head *Head, maxp *Maxp, glyfLen int) ([]uint32, error) {
	numGlyphs := int(maxp.NumGlyphs)
	n := numGlyphs + 1
	offsets := make([]uint32, n)
	base := int(rec.Offset)
	if head.IndexToLocFormat == 0 {
		for i := 0; i < n; i++ {
			v, err := r.ReadU16(base + i*2)
			if err != nil {
				return nil, err
			}
			offsets[i] = uint32(v) * 2
		}
	} else {
		for i := 0; i < n; i++ {
			v, err := r.ReadU32(base + i*4)
			if err != nil {
				return nil, err
			}
			offsets[i] = v
		}
	}
	for i := 1; i < n; i++ {
		if offsets[i] < offsets[i-1] {
			return nil, kerr.MalformedTable("loca", "offsets are not monotonically non-decreasing")
		}
	}
	if int(offsets[n-1]) > glyfLen {
		return nil, kerr.MalformedTable("loca", "final offset exceeds glyf table length")
	}
	return offsets, nil
}
