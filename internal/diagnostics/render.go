package diagnostics

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/flux-lang/flux/internal/position"
)

const (
	ansiReset  = "\x1b[0m"
	ansiBold   = "\x1b[1m"
	ansiRed    = "\x1b[31m"
	ansiYellow = "\x1b[33m"
)

// Renderer writes diagnostics to a writer, quoting the offending source
// line with a caret underline sized by the diagnostic span.
type Renderer struct {
	out   io.Writer
	color bool
}

// NewRenderer builds a renderer. Color output is the caller's choice;
// WriterIsTerminal is the usual probe.
func NewRenderer(out io.Writer, color bool) *Renderer {
	return &Renderer{out: out, color: color}
}

// Render writes every diagnostic in order against its source file.
func (r *Renderer) Render(file *position.SourceFile, diags []Diagnostic) {
	for _, d := range diags {
		r.RenderOne(file, d)
	}
}

// RenderOne writes a single diagnostic:
//
//	main.flux:3:5: error[ExpectedExpression]: expected expression
//	   3 | x =
//	     |     ^
func (r *Renderer) RenderOne(file *position.SourceFile, d Diagnostic) {
	sev := d.Severity.String()
	if r.color {
		c := ansiRed
		if d.Severity == SeverityWarning {
			c = ansiYellow
		}
		sev = c + sev + ansiReset
		fmt.Fprintf(r.out, "%s%s:%s %s[%s]: %s%s%s\n",
			ansiBold, d.Span.Start, ansiReset, sev, d.Code, ansiBold, d.Message, ansiReset)
	} else {
		fmt.Fprintf(r.out, "%s: %s[%s]: %s\n", d.Span.Start, sev, d.Code, d.Message)
	}

	if file == nil || !d.Span.Start.IsValid() {
		return
	}
	line := file.Line(d.Span.Start.Line)
	if line == "" && d.Span.Start.Line > file.LineCount() {
		return
	}

	fmt.Fprintf(r.out, "%4d | %s\n", d.Span.Start.Line, line)
	fmt.Fprintf(r.out, "     | %s\n", caretRow(line, d.Span))
}

// caretRow builds the underline row for a span on its starting line. Tabs
// in the padding are preserved so the carets line up under tabbed source.
func caretRow(line string, span position.Span) string {
	var b strings.Builder
	runes := []rune(line)

	for i := 1; i < span.Start.Column; i++ {
		if i <= len(runes) && runes[i-1] == '\t' {
			b.WriteByte('\t')
		} else {
			b.WriteByte(' ')
		}
	}

	width := 1
	if span.End.Line == span.Start.Line && span.End.Column > span.Start.Column {
		width = span.End.Column - span.Start.Column
	} else if span.End.Line > span.Start.Line {
		width = utf8.RuneCountInString(line) - span.Start.Column + 1
	}
	if rest := len(runes) - span.Start.Column + 1; rest > 0 && width > rest {
		width = rest
	}
	if width < 1 {
		width = 1
	}

	b.WriteString(strings.Repeat("^", width))
	return b.String()
}
