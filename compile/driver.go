package compile

import (
	"bytes"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/kfntc/kfntc/core/container"
	"github.com/kfntc/kfntc/core/kerr"
	"github.com/kfntc/kfntc/core/klog"
)

func serializeToBytes(out *OutputFile) ([]byte, error) {
	var buf bytes.Buffer
	if err := out.Serialize(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Args is the parsed form of the CLI argument contract in §6:
// `parse|vp <flavor> <glyphHeight> <superSample> <input> <output>`.
type Args struct {
	Flavor      string
	GlyphHeight int
	SuperSample int
	Input       string
	Output      string
}

// FileSystem is the driver's abstract collaborator for everything the
// CLI shell delegates (§6: read_file, write_file, plus the stat calls
// argument validation needs). OSFileSystem is the production
// implementation; tests substitute an in-memory fake.
type FileSystem interface {
	Stat(path string) (fs.FileInfo, error)
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, data []byte) error
}

// OSFileSystem is the default FileSystem, backed by the standard library.
type OSFileSystem struct{}

func (OSFileSystem) Stat(path string) (fs.FileInfo, error) { return os.Stat(path) }

func (OSFileSystem) ReadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, kerr.IO(err.Error())
	}
	return data, nil
}

func (OSFileSystem) WriteFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return kerr.IO(err.Error())
	}
	return nil
}

// Validate enforces the CLI argument contract (§6) before any I/O runs:
// flavor, glyphHeight and superSample ranges, and the input/output path
// constraints. It is the only place §6's InvalidArgument cases originate.
func Validate(args Args, files FileSystem) error {
	if _, err := ParseFlavor(args.Flavor); err != nil {
		return err
	}
	if args.GlyphHeight < 12 || args.GlyphHeight > 255 {
		return kerr.InvalidArgument("glyphHeight must be in [12, 255]")
	}
	if args.SuperSample < 1 || args.SuperSample > 3 {
		return kerr.InvalidArgument("superSample must be in [1, 3]")
	}

	inExt := strings.ToLower(filepath.Ext(args.Input))
	if inExt != ".ttf" && inExt != ".otf" {
		return kerr.InvalidArgument("input extension must be .ttf or .otf")
	}
	info, err := files.Stat(args.Input)
	if err != nil {
		return kerr.InvalidArgument("input file does not exist: " + args.Input)
	}
	if !info.Mode().IsRegular() {
		return kerr.InvalidArgument("input must be a regular file")
	}

	outExt := strings.ToLower(filepath.Ext(args.Output))
	if outExt != ".ktf" {
		return kerr.InvalidArgument("output extension must be .ktf")
	}
	if _, err := files.Stat(args.Output); err == nil {
		return kerr.InvalidArgument("output already exists: " + args.Output)
	}
	parentInfo, err := files.Stat(filepath.Dir(args.Output))
	if err != nil || !parentInfo.IsDir() {
		return kerr.InvalidArgument("output directory does not exist: " + filepath.Dir(args.Output))
	}

	return nil
}

// Run validates args, then orchestrates §4.2–§4.5 (for the glyph flavor)
// or the rasterizer collaborator (for the bitmap flavor), and writes the
// serialized file (§4.6/§4.7). Apart from the rasterizer collaborator,
// which reads the input path itself, it is the only component that
// performs I/O (§4.8); every other stage consumes or produces owned
// in-memory values.
func Run(args Args, files FileSystem, log klog.Logger, raster Rasterizer) error {
	if err := Validate(args, files); err != nil {
		log.Log(klog.Error, "driver", err.Error())
		return err
	}
	flavor, _ := ParseFlavor(args.Flavor)

	out := &OutputFile{Flavor: flavor}
	switch flavor {
	case FlavorGlyph:
		data, err := files.ReadFile(args.Input)
		if err != nil {
			log.Log(klog.Error, "driver", err.Error())
			return err
		}
		c, err := container.Parse(data)
		if err != nil {
			log.Log(klog.Error, "driver", err.Error())
			return err
		}
		glyphs, err := AssembleGlyphs(c, log)
		if err != nil {
			log.Log(klog.Error, "driver", err.Error())
			return err
		}
		out.Glyph = &GlyphFile{Glyphs: glyphs}
		log.Log(klog.Success, "driver", "compiled glyph flavor")

	case FlavorBitmap:
		blocks, err := raster.Rasterize(args.Input, uint8(args.GlyphHeight))
		if err != nil {
			log.Log(klog.Error, "driver", err.Error())
			return err
		}
		out.Bitmap = &BitmapFile{GlyphHeight: uint8(args.GlyphHeight), Blocks: blocks}
		log.Log(klog.Success, "driver", "compiled bitmap flavor")
	}

	serialized, err := serializeToBytes(out)
	if err != nil {
		log.Log(klog.Error, "driver", err.Error())
		return err
	}
	if err := files.WriteFile(args.Output, serialized); err != nil {
		log.Log(klog.Error, "driver", err.Error())
		return err
	}
	return nil
}
