package compile

import (
	"encoding/binary"
	"io/fs"
	"testing"
	"time"

	"github.com/kfntc/kfntc/core/klog"
	"github.com/kfntc/kfntc/core/kerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFileInfo struct {
	name  string
	isDir bool
}

func (f fakeFileInfo) Name() string       { return f.name }
func (f fakeFileInfo) Size() int64        { return 0 }
func (f fakeFileInfo) Mode() fs.FileMode {
	if f.isDir {
		return fs.ModeDir
	}
	return 0
}
func (f fakeFileInfo) ModTime() time.Time { return time.Time{} }
func (f fakeFileInfo) IsDir() bool        { return f.isDir }
func (f fakeFileInfo) Sys() interface{}   { return nil }

type fakeFS struct {
	files map[string][]byte
	dirs  map[string]bool
}

func (f *fakeFS) Stat(path string) (fs.FileInfo, error) {
	if f.dirs[path] {
		return fakeFileInfo{name: path, isDir: true}, nil
	}
	if _, ok := f.files[path]; ok {
		return fakeFileInfo{name: path}, nil
	}
	return nil, fs.ErrNotExist
}

func (f *fakeFS) ReadFile(path string) ([]byte, error) {
	data, ok := f.files[path]
	if !ok {
		return nil, kerr.IO("not found")
	}
	return data, nil
}

func (f *fakeFS) WriteFile(path string, data []byte) error {
	f.files[path] = data
	return nil
}

func newFakeFS() *fakeFS {
	return &fakeFS{files: map[string][]byte{}, dirs: map[string]bool{"/out": true}}
}

func baseArgs() Args {
	return Args{Flavor: "glyph", GlyphHeight: 64, SuperSample: 1, Input: "/in/font.ttf", Output: "/out/font.ktf"}
}

func TestValidateAcceptsWellFormedArgs(t *testing.T) {
	fs := newFakeFS()
	fs.files["/in/font.ttf"] = []byte{1}
	require.NoError(t, Validate(baseArgs(), fs))
}

func TestValidateRejectsBadFlavor(t *testing.T) {
	fs := newFakeFS()
	fs.files["/in/font.ttf"] = []byte{1}
	args := baseArgs()
	args.Flavor = "vector"
	err := Validate(args, fs)
	require.Error(t, err)
	assert.Equal(t, kerr.CodeInvalidArgument, kerr.CodeOf(err))
}

func TestValidateRejectsOutOfRangeGlyphHeight(t *testing.T) {
	fs := newFakeFS()
	fs.files["/in/font.ttf"] = []byte{1}
	args := baseArgs()
	args.GlyphHeight = 300
	require.Error(t, Validate(args, fs))
}

func TestValidateRejectsOutOfRangeSuperSample(t *testing.T) {
	fs := newFakeFS()
	fs.files["/in/font.ttf"] = []byte{1}
	args := baseArgs()
	args.SuperSample = 4
	require.Error(t, Validate(args, fs))
}

func TestValidateRejectsMissingInput(t *testing.T) {
	fs := newFakeFS()
	require.Error(t, Validate(baseArgs(), fs))
}

func TestValidateRejectsWrongInputExtension(t *testing.T) {
	fs := newFakeFS()
	fs.files["/in/font.woff"] = []byte{1}
	args := baseArgs()
	args.Input = "/in/font.woff"
	require.Error(t, Validate(args, fs))
}

func TestValidateRejectsExistingOutput(t *testing.T) {
	fs := newFakeFS()
	fs.files["/in/font.ttf"] = []byte{1}
	fs.files["/out/font.ktf"] = []byte{9}
	require.Error(t, Validate(baseArgs(), fs))
}

func TestValidateRejectsWrongOutputExtension(t *testing.T) {
	fs := newFakeFS()
	fs.files["/in/font.ttf"] = []byte{1}
	args := baseArgs()
	args.Output = "/out/font.bin"
	require.Error(t, Validate(args, fs))
}

type fakeRasterizer struct {
	blocks []BitmapGlyphBlock
	err    error
}

func (f fakeRasterizer) Rasterize(inputPath string, glyphHeight uint8) ([]BitmapGlyphBlock, error) {
	return f.blocks, f.err
}

func TestRunBitmapFlavorWritesOutput(t *testing.T) {
	fs := newFakeFS()
	fs.files["/in/font.ttf"] = []byte{1}
	args := baseArgs()
	args.Flavor = "bitmap"

	raster := fakeRasterizer{blocks: []BitmapGlyphBlock{
		{Codepoint: 'A', Width: 2, Height: 2, Coverage: []byte{1, 2, 3, 4}},
	}}

	err := Run(args, fs, klog.Discard{}, raster)
	require.NoError(t, err)
	out, ok := fs.files["/out/font.ktf"]
	require.True(t, ok)
	require.GreaterOrEqual(t, len(out), 4)
	assert.Equal(t, bitmapMagic, binary.BigEndian.Uint32(out[0:4]))
}

func TestRunStopsBeforeWritingOnValidationFailure(t *testing.T) {
	fs := newFakeFS()
	args := baseArgs() // input missing
	err := Run(args, fs, klog.Discard{}, fakeRasterizer{})
	require.Error(t, err)
	_, ok := fs.files["/out/font.ktf"]
	assert.False(t, ok)
}
