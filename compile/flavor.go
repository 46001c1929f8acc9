package compile

import (
	"io"

	"github.com/kfntc/kfntc/core/kerr"
)

// Flavor selects which compiled-file layout a run produces (§4.6, §4.7).
type Flavor int

const (
	FlavorGlyph Flavor = iota
	FlavorBitmap
)

// ParseFlavor validates the CLI flavor argument (§6): exactly "glyph" or
// "bitmap".
func ParseFlavor(s string) (Flavor, error) {
	switch s {
	case "glyph":
		return FlavorGlyph, nil
	case "bitmap":
		return FlavorBitmap, nil
	default:
		return 0, kerr.InvalidArgument("flavor must be \"glyph\" or \"bitmap\", got " + s)
	}
}

// GlyphFile is the glyph-flavor payload (§4.6): the retained per-glyph
// meshes in ascending glyph-index order (§5's determinism requirement).
type GlyphFile struct {
	Glyphs []GlyphResult
}

// BitmapFile is the bitmap-flavor payload (§4.7).
type BitmapFile struct {
	GlyphHeight uint8
	Blocks      []BitmapGlyphBlock
}

// OutputFile is the sum type design note §9 asks for in place of two
// duplicated per-variant exporters: exactly one of Glyph or Bitmap is
// set, selected by Flavor, and Serialize dispatches on that tag rather
// than exposing two entry points to callers.
type OutputFile struct {
	Flavor Flavor
	Glyph  *GlyphFile
	Bitmap *BitmapFile
}

// Serialize writes the file in whichever flavor OutputFile carries.
func (o *OutputFile) Serialize(w io.Writer) error {
	switch o.Flavor {
	case FlavorGlyph:
		return WriteGlyphFile(w, o.Glyph.Glyphs)
	case FlavorBitmap:
		return WriteBitmapFile(w, o.Bitmap.GlyphHeight, o.Bitmap.Blocks)
	default:
		return kerr.InvalidArgument("unknown output flavor")
	}
}
