package lsp

import (
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/flux-lang/flux/internal/diagnostics"
	"github.com/flux-lang/flux/internal/position"
)

const diagnosticSource = "flux"

// toProtocol maps one sink diagnostic onto the wire shape.
func toProtocol(d diagnostics.Diagnostic) protocol.Diagnostic {
	severity := protocol.DiagnosticSeverityError
	if d.Severity == diagnostics.SeverityWarning {
		severity = protocol.DiagnosticSeverityWarning
	}
	code := protocol.IntegerOrString{Value: d.Code.String()}
	source := diagnosticSource
	return protocol.Diagnostic{
		Range:    toRange(d.Span),
		Severity: &severity,
		Code:     &code,
		Source:   &source,
		Message:  d.Message,
	}
}

// toRange converts a 1-based source span to a 0-based protocol range.
func toRange(sp position.Span) protocol.Range {
	return protocol.Range{
		Start: toPosition(sp.Start),
		End:   toPosition(sp.End),
	}
}

func toPosition(p position.Position) protocol.Position {
	line := p.Line - 1
	if line < 0 {
		line = 0
	}
	char := p.Column - 1
	if char < 0 {
		char = 0
	}
	return protocol.Position{
		Line:      protocol.UInteger(line),
		Character: protocol.UInteger(char),
	}
}
