package compile

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/kfntc/kfntc/core/kerr"
)

// MaxBitmapGlyphs is the bitmap flavor's hard glyph-count ceiling (§4.7,
// §8 invariant 8, scenario S6).
const MaxBitmapGlyphs = 1024

// bitmapMagic is "KTF\0" read as a big-endian u32 (§4.7).
const bitmapMagic uint32 = 0x4B544600

const bitmapTypeTag = 1 // "1 = bitmap" per §4.7

// BitmapGlyphBlock is one rasterized glyph (§3): the codepoint it
// represents, its pixel extents and bearings, and its raw row-major
// coverage bytes. It arrives pre-rendered from a Rasterizer collaborator
// (§6) — this package only collects and serializes it.
type BitmapGlyphBlock struct {
	Codepoint          uint32
	Width, Height      uint16
	BearingX, BearingY int16
	Advance            uint16
	Coverage           []byte // row-major, row length == Width
}

// corners derives the four signed 2D corner vertices in top-left,
// top-right, bottom-right, bottom-left order (§4.7) and narrows them to
// int8, reporting GlyphTooLarge on overflow.
func (b BitmapGlyphBlock) corners() ([4][2]int8, error) {
	bx, by := int(b.BearingX), int(b.BearingY)
	w, h := int(b.Width), int(b.Height)
	pts := [4][2]int{
		{bx, by},
		{bx + w, by},
		{bx + w, by - h},
		{bx, by - h},
	}
	var out [4][2]int8
	for i, p := range pts {
		for j, v := range p {
			if v < -128 || v > 127 {
				return out, kerr.GlyphTooLarge(int(b.Codepoint), "bitmap corner vertex overflows int8")
			}
			out[i][j] = int8(v)
		}
	}
	return out, nil
}

// indexPattern and quadUV are the fixed per-file constants written once
// into the bitmap header (§4.7): a quad's triangle index pattern and its
// UV corners in the 0..255 coverage-sample space.
var indexPattern = [6]byte{0, 1, 2, 2, 3, 0}
var quadUV = [4][2]byte{{0, 255}, {255, 0}, {255, 255}, {0, 255}}

// WriteBitmapFile serializes blocks as a bitmap-flavor compiled file
// (§4.7): a big-endian magic followed by little-endian header fields, a
// fixed-size glyph table, then the glyph blocks themselves. glyphHeight
// must already have been validated into [12,255] by the driver (§6).
func WriteBitmapFile(w io.Writer, glyphHeight uint8, blocks []BitmapGlyphBlock) error {
	if len(blocks) > MaxBitmapGlyphs {
		return kerr.InvalidArgument("bitmap glyph count exceeds 1024")
	}

	blockBytes := make([][]byte, len(blocks))
	for i, b := range blocks {
		corners, err := b.corners()
		if err != nil {
			return err
		}
		var bb bytes.Buffer
		writeU32(&bb, b.Codepoint)
		writeU16(&bb, b.Width)
		writeU16(&bb, b.Height)
		writeI16(&bb, b.BearingX)
		writeI16(&bb, b.BearingY)
		writeU16(&bb, b.Advance)
		for _, c := range corners {
			bb.WriteByte(byte(c[0]))
			bb.WriteByte(byte(c[1]))
		}
		writeU32(&bb, uint32(len(b.Coverage)))
		bb.Write(b.Coverage)
		blockBytes[i] = bb.Bytes()
	}

	const glyphTableEntrySize = 12
	tableSize := len(blocks) * glyphTableEntrySize
	var blockSize int
	for _, bb := range blockBytes {
		blockSize += len(bb)
	}

	const headerSize = 4 + 1 + 1 + 2 + 4 + 6 + 8 + 4 + 4

	var out bytes.Buffer
	writeU32BE(&out, bitmapMagic)
	out.WriteByte(1) // version
	out.WriteByte(bitmapTypeTag)
	writeU16(&out, uint16(glyphHeight))
	writeU32(&out, uint32(len(blocks)))
	out.Write(indexPattern[:])
	for _, uv := range quadUV {
		out.WriteByte(uv[0])
		out.WriteByte(uv[1])
	}
	writeU32(&out, uint32(tableSize))
	writeU32(&out, uint32(blockSize))

	offset := uint32(headerSize + tableSize)
	for i, b := range blocks {
		writeU32(&out, b.Codepoint)
		writeU32(&out, offset)
		writeU32(&out, uint32(len(blockBytes[i])))
		offset += uint32(len(blockBytes[i]))
	}
	for _, bb := range blockBytes {
		out.Write(bb)
	}

	_, err := w.Write(out.Bytes())
	return err
}

func writeU16(buf *bytes.Buffer, v uint16) {
	var tmp [2]byte
	binary.LittleEndian.PutUint16(tmp[:], v)
	buf.Write(tmp[:])
}

func writeI16(buf *bytes.Buffer, v int16) {
	writeU16(buf, uint16(v))
}

func writeU32BE(buf *bytes.Buffer, v uint32) {
	var tmp [4]byte
	binary.BigEndian.PutUint32(tmp[:], v)
	buf.Write(tmp[:])
}
