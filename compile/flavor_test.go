package compile

import (
	"bytes"
	"testing"

	"github.com/kfntc/kfntc/core/geometry"
	"github.com/kfntc/kfntc/core/kerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlavorAcceptsBothTags(t *testing.T) {
	g, err := ParseFlavor("glyph")
	require.NoError(t, err)
	assert.Equal(t, FlavorGlyph, g)

	b, err := ParseFlavor("bitmap")
	require.NoError(t, err)
	assert.Equal(t, FlavorBitmap, b)
}

func TestParseFlavorRejectsUnknown(t *testing.T) {
	_, err := ParseFlavor("vector")
	require.Error(t, err)
	assert.Equal(t, kerr.CodeInvalidArgument, kerr.CodeOf(err))
}

func TestOutputFileSerializeDispatchesOnFlavor(t *testing.T) {
	glyphOut := &OutputFile{
		Flavor: FlavorGlyph,
		Glyph: &GlyphFile{Glyphs: []GlyphResult{{
			Index: 0, Vertices: []geometry.Vec2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}}, Indices: []int{0, 1, 2},
		}}},
	}
	var buf bytes.Buffer
	require.NoError(t, glyphOut.Serialize(&buf))
	assert.Equal(t, "KFNT", buf.String()[0:4])

	bitmapOut := &OutputFile{
		Flavor: FlavorBitmap,
		Bitmap: &BitmapFile{GlyphHeight: 16, Blocks: nil},
	}
	buf.Reset()
	require.NoError(t, bitmapOut.Serialize(&buf))
	assert.Equal(t, byte('K'), buf.Bytes()[0]) // big-endian magic starts with 'K'
}
