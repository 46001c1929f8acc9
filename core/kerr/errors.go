// Package kerr defines the typed error taxonomy shared by the container
// decoder, outline decoder, geometry pipeline and serializer.
//
// Every error constructed here satisfies the standard error interface and
// additionally exposes a Code so that a driver can decide, without string
// matching, whether a failure is fatal to the whole invocation or may be
// recovered locally (currently only DegenerateGlyph is recoverable).
package kerr

import "fmt"

// Code classifies an error without requiring callers to inspect its message.
type Code int

const (
	// CodeIO covers file-system failures: missing input, permission denied,
	// short reads or writes.
	CodeIO Code = iota
	// CodeInvalidArgument covers CLI-level validation failures.
	CodeInvalidArgument
	// CodeUnsupportedContainer covers scaler types or glyph stores this
	// compiler does not decode (CFF outlines, unknown sfnt magic).
	CodeUnsupportedContainer
	// CodeMissingTable means a required sfnt table is absent from the
	// table directory.
	CodeMissingTable
	// CodeMalformedTable means a table was present but structurally
	// inconsistent (bad magic, non-monotone loca, ...).
	CodeMalformedTable
	// CodeTruncated means the byte reader hit the end of the buffer.
	CodeTruncated
	// CodeMalformedGlyph means the outline decoder reached an
	// inconsistent state while expanding a glyph.
	CodeMalformedGlyph
	// CodeDegenerateGlyph means triangulation could not converge for a
	// glyph. The glyph is dropped; the invocation continues.
	CodeDegenerateGlyph
	// CodeGlyphTooLarge means a per-glyph resource cap was exceeded.
	CodeGlyphTooLarge
)

func (c Code) String() string {
	switch c {
	case CodeIO:
		return "IoError"
	case CodeInvalidArgument:
		return "InvalidArgument"
	case CodeUnsupportedContainer:
		return "UnsupportedContainer"
	case CodeMissingTable:
		return "MissingTable"
	case CodeMalformedTable:
		return "MalformedTable"
	case CodeTruncated:
		return "Truncated"
	case CodeMalformedGlyph:
		return "MalformedGlyph"
	case CodeDegenerateGlyph:
		return "DegenerateGlyph"
	case CodeGlyphTooLarge:
		return "GlyphTooLarge"
	default:
		return "Unknown"
	}
}

// Error is the concrete type returned by every constructor in this package.
type Error struct {
	Code   Code
	Tag    string // sfnt table tag, when applicable
	Index  int    // glyph index, when applicable
	Offset int    // byte offset, when applicable (Truncated)
	Reason string
}

func (e *Error) Error() string {
	switch {
	case e.Tag != "" && e.Index != 0 || (e.Tag != "" && e.Code == CodeMissingTable) || (e.Tag != "" && e.Code == CodeMalformedTable):
		if e.Reason != "" {
			return fmt.Sprintf("%s(%s): %s", e.Code, e.Tag, e.Reason)
		}
		return fmt.Sprintf("%s(%s)", e.Code, e.Tag)
	case e.Code == CodeMalformedGlyph || e.Code == CodeDegenerateGlyph || e.Code == CodeGlyphTooLarge:
		if e.Reason != "" {
			return fmt.Sprintf("%s(glyph %d): %s", e.Code, e.Index, e.Reason)
		}
		return fmt.Sprintf("%s(glyph %d)", e.Code, e.Index)
	case e.Code == CodeTruncated:
		return fmt.Sprintf("Truncated(offset %d)", e.Offset)
	default:
		if e.Reason != "" {
			return fmt.Sprintf("%s: %s", e.Code, e.Reason)
		}
		return e.Code.String()
	}
}

// IO wraps a file-system failure.
func IO(reason string) error { return &Error{Code: CodeIO, Reason: reason} }

// InvalidArgument reports a malformed CLI argument.
func InvalidArgument(reason string) error {
	return &Error{Code: CodeInvalidArgument, Reason: reason}
}

// UnsupportedContainer reports a scaler type or glyph store this compiler
// cannot decode.
func UnsupportedContainer(reason string) error {
	return &Error{Code: CodeUnsupportedContainer, Reason: reason}
}

// MissingTable reports a required sfnt table that could not be found.
func MissingTable(tag string) error {
	return &Error{Code: CodeMissingTable, Tag: tag}
}

// MalformedTable reports a structurally inconsistent table.
func MalformedTable(tag, reason string) error {
	return &Error{Code: CodeMalformedTable, Tag: tag, Reason: reason}
}

// Truncated reports a bounds-check failure in the byte reader.
func Truncated(offset int) error {
	return &Error{Code: CodeTruncated, Offset: offset}
}

// MalformedGlyph reports an inconsistent outline decode for a glyph.
func MalformedGlyph(index int, reason string) error {
	return &Error{Code: CodeMalformedGlyph, Index: index, Reason: reason}
}

// DegenerateGlyph reports a glyph whose triangulation did not converge.
// It is the only recoverable error: the caller drops the glyph and
// continues.
func DegenerateGlyph(index int, reason string) error {
	return &Error{Code: CodeDegenerateGlyph, Index: index, Reason: reason}
}

// GlyphTooLarge reports a glyph that exceeded a per-glyph resource cap.
func GlyphTooLarge(index int, reason string) error {
	return &Error{Code: CodeGlyphTooLarge, Index: index, Reason: reason}
}

// CodeOf extracts the Code from err, or -1 if err was not produced by this
// package.
func CodeOf(err error) Code {
	if e, ok := err.(*Error); ok {
		return e.Code
	}
	return -1
}

// IsRecoverable reports whether err can be handled locally (by dropping a
// glyph) instead of aborting the whole invocation.
func IsRecoverable(err error) bool {
	return CodeOf(err) == CodeDegenerateGlyph
}
