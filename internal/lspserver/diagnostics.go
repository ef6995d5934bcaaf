package lspserver

import (
	"sort"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/aster-lang/aster-ls/internal/reporter"
)

// publishDiagnostics converts every reporter.Entry recorded against uri
// (already in per-file 1-based compiler coordinates) to 0-based LSP
// coordinates and notifies the client. It must be called with s.mu held by
// the caller. A nil context, or one with no Notify function, publishes
// nothing.
func (s *Server) publishDiagnostics(ctx *glsp.Context, uri string) {
	if ctx == nil || ctx.Notify == nil {
		return
	}

	entries := s.ctx.Reporter().ForFile(uri)
	diagnostics := make([]protocol.Diagnostic, 0, len(entries))
	for _, e := range entries {
		diagnostics = append(diagnostics, entryToDiagnostic(e))
	}
	sortDiagnostics(diagnostics)

	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
}

// entryToDiagnostic converts a reporter.Entry's 1-based compiler Span into
// an LSP Diagnostic's 0-based Range, mirroring the teacher's createDiagnostic
// line/column conversion.
func entryToDiagnostic(e reporter.Entry) protocol.Diagnostic {
	severity := protocol.DiagnosticSeverityError
	if e.Severity == reporter.SeverityWarning {
		severity = protocol.DiagnosticSeverityWarning
	}

	return protocol.Diagnostic{
		Range: protocol.Range{
			Start: protocol.Position{
				Line:      protocol.UInteger(e.Span.Begin.Line - 1),
				Character: protocol.UInteger(e.Span.Begin.Column - 1),
			},
			End: protocol.Position{
				Line:      protocol.UInteger(e.Span.End.Line - 1),
				Character: protocol.UInteger(e.Span.End.Column),
			},
		},
		Severity: &severity,
		Source:   strPtr("aster"),
		Message:  e.Message,
	}
}

func sortDiagnostics(diagnostics []protocol.Diagnostic) {
	sort.Slice(diagnostics, func(i, j int) bool {
		if diagnostics[i].Range.Start.Line != diagnostics[j].Range.Start.Line {
			return diagnostics[i].Range.Start.Line < diagnostics[j].Range.Start.Line
		}
		return diagnostics[i].Range.Start.Character < diagnostics[j].Range.Start.Character
	})
}

func strPtr(s string) *string { return &s }
