// Package diagnostics collects and renders the structured syntax errors
// produced by the Flux front end. The parser reports into a Sink; drivers
// render the accumulated list against the source file.
package diagnostics

import (
	"fmt"

	"github.com/flux-lang/flux/internal/position"
)

// Code classifies a diagnostic. The set is closed: every error the front
// end can report carries exactly one of these.
type Code int

const (
	LexicalError Code = iota
	UnexpectedToken
	ExpectedDeclaration
	ExpectedStatement
	ExpectedExpression
	ExpectedType
	ExpectedIdentifier
	MissingDelimiter
	InvalidControlContext
	DuplicateDefaultCase
	MissingCatchClause
	UnsupportedConstruct
	NestingTooDeep
)

func (c Code) String() string {
	switch c {
	case LexicalError:
		return "LexicalError"
	case UnexpectedToken:
		return "UnexpectedToken"
	case ExpectedDeclaration:
		return "ExpectedDeclaration"
	case ExpectedStatement:
		return "ExpectedStatement"
	case ExpectedExpression:
		return "ExpectedExpression"
	case ExpectedType:
		return "ExpectedType"
	case ExpectedIdentifier:
		return "ExpectedIdentifier"
	case MissingDelimiter:
		return "MissingDelimiter"
	case InvalidControlContext:
		return "InvalidControlContext"
	case DuplicateDefaultCase:
		return "DuplicateDefaultCase"
	case MissingCatchClause:
		return "MissingCatchClause"
	case UnsupportedConstruct:
		return "UnsupportedConstruct"
	case NestingTooDeep:
		return "NestingTooDeep"
	default:
		return "Unknown"
	}
}

// Severity ranks a diagnostic. The parser only emits errors; warnings exist
// for outer tooling (manifest checks, future lints).
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return "unknown"
	}
}

// Diagnostic is one reported problem, located by span.
type Diagnostic struct {
	Code     Code
	Severity Severity
	Message  string
	Span     position.Span
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s[%s]: %s", d.Span.Start, d.Severity, d.Code, d.Message)
}

// Sink accumulates diagnostics in report order.
type Sink struct {
	diags []Diagnostic
}

// NewSink returns an empty sink.
func NewSink() *Sink {
	return &Sink{}
}

// Report appends d to the sink.
func (s *Sink) Report(d Diagnostic) {
	s.diags = append(s.diags, d)
}

// Errorf reports an error-severity diagnostic with a formatted message.
func (s *Sink) Errorf(code Code, span position.Span, format string, args ...any) {
	s.Report(Diagnostic{
		Code:     code,
		Severity: SeverityError,
		Message:  fmt.Sprintf(format, args...),
		Span:     span,
	})
}

// Warnf reports a warning-severity diagnostic with a formatted message.
func (s *Sink) Warnf(code Code, span position.Span, format string, args ...any) {
	s.Report(Diagnostic{
		Code:     code,
		Severity: SeverityWarning,
		Message:  fmt.Sprintf(format, args...),
		Span:     span,
	})
}

// HasErrors reports whether any error-severity diagnostic was recorded.
func (s *Sink) HasErrors() bool {
	for _, d := range s.diags {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

// ErrorCount returns the number of error-severity diagnostics.
func (s *Sink) ErrorCount() int {
	n := 0
	for _, d := range s.diags {
		if d.Severity == SeverityError {
			n++
		}
	}
	return n
}

// Len returns the total number of recorded diagnostics.
func (s *Sink) Len() int {
	return len(s.diags)
}

// All returns the recorded diagnostics in report order.
func (s *Sink) All() []Diagnostic {
	return s.diags
}
