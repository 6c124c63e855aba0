// Package position provides the source location value types shared by the
// Flux front end: points, spans, and line-indexed source files used to
// attach locations to tokens, AST nodes, and diagnostics.
package position

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Position is a single point in a source file.
type Position struct {
	Filename string // source file name
	Line     int    // 1-based line number
	Column   int    // 1-based column number (runes)
	Offset   int    // 0-based byte offset
}

// IsValid reports whether the position refers to a real location.
func (p Position) IsValid() bool {
	return p.Line > 0 && p.Column > 0 && p.Offset >= 0
}

// Before reports whether p comes before other in source order.
func (p Position) Before(other Position) bool {
	if p.Filename != other.Filename {
		return p.Filename < other.Filename
	}
	return p.Offset < other.Offset
}

func (p Position) String() string {
	if p.Filename != "" {
		return fmt.Sprintf("%s:%d:%d", filepath.Base(p.Filename), p.Line, p.Column)
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Span is a half-open range of source text, Start inclusive and End
// exclusive. Start never comes after End.
type Span struct {
	Start Position
	End   Position
}

// NewSpan builds a span from two positions, swapping them if given out of
// order so the ordering invariant always holds.
func NewSpan(start, end Position) Span {
	if end.Before(start) {
		start, end = end, start
	}
	return Span{Start: start, End: end}
}

// IsValid reports whether both endpoints are valid, in the same file, and
// ordered.
func (s Span) IsValid() bool {
	return s.Start.IsValid() && s.End.IsValid() &&
		s.Start.Filename == s.End.Filename &&
		s.Start.Offset <= s.End.Offset
}

// Contains reports whether pos falls inside the span.
func (s Span) Contains(pos Position) bool {
	if !s.IsValid() || !pos.IsValid() || s.Start.Filename != pos.Filename {
		return false
	}
	return s.Start.Offset <= pos.Offset && pos.Offset < s.End.Offset
}

// Union returns the smallest span covering both s and other. Spans from
// different files cannot be merged; s wins.
func (s Span) Union(other Span) Span {
	if !s.IsValid() {
		return other
	}
	if !other.IsValid() || s.Start.Filename != other.Start.Filename {
		return s
	}
	out := s
	if other.Start.Before(out.Start) {
		out.Start = other.Start
	}
	if out.End.Before(other.End) {
		out.End = other.End
	}
	return out
}

// Length returns the number of bytes the span covers.
func (s Span) Length() int {
	if !s.IsValid() {
		return 0
	}
	return s.End.Offset - s.Start.Offset
}

func (s Span) String() string {
	if s.Start.Line == s.End.Line {
		if s.Start.Filename != "" {
			return fmt.Sprintf("%s:%d:%d-%d", filepath.Base(s.Start.Filename), s.Start.Line, s.Start.Column, s.End.Column)
		}
		return fmt.Sprintf("%d:%d-%d", s.Start.Line, s.Start.Column, s.End.Column)
	}
	if s.Start.Filename != "" {
		return fmt.Sprintf("%s:%d:%d-%d:%d", filepath.Base(s.Start.Filename), s.Start.Line, s.Start.Column, s.End.Line, s.End.Column)
	}
	return fmt.Sprintf("%d:%d-%d:%d", s.Start.Line, s.Start.Column, s.End.Line, s.End.Column)
}

// SourceFile pairs a file's content with a line index so diagnostics can
// quote the offending line. The content is immutable for the lifetime of
// any parse over it; token lexemes are slices into it.
type SourceFile struct {
	Filename string
	Content  string
	lines    []string
}

// NewSourceFile indexes content by line.
func NewSourceFile(filename, content string) *SourceFile {
	return &SourceFile{
		Filename: filename,
		Content:  content,
		lines:    strings.Split(content, "\n"),
	}
}

// Line returns the 1-based line n without its trailing newline, or "" when
// n is out of range.
func (f *SourceFile) Line(n int) string {
	if n < 1 || n > len(f.lines) {
		return ""
	}
	return strings.TrimSuffix(f.lines[n-1], "\r")
}

// LineCount returns the number of lines in the file.
func (f *SourceFile) LineCount() int {
	return len(f.lines)
}

// Slice returns the text covered by span, or "" when the span does not lie
// inside this file.
func (f *SourceFile) Slice(span Span) string {
	if !span.IsValid() || span.Start.Filename != f.Filename {
		return ""
	}
	if span.End.Offset > len(f.Content) {
		return ""
	}
	return f.Content[span.Start.Offset:span.End.Offset]
}
