package lspserver

import (
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/aster-lang/aster-ls/internal/document"
	"github.com/aster-lang/aster-ls/internal/logging"
)

// DidOpen materializes a document not previously seen, registers it with
// the Compilation Context, runs check() if dirty, and publishes
// diagnostics for the opened file.
func (s *Server) DidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	trace := logging.Trace()
	uri := params.TextDocument.URI
	text := params.TextDocument.Text
	version := int(params.TextDocument.Version)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.docs.Open(uri, pathFromURI(uri), document.KindSource, text, version, params.TextDocument.LanguageID, languageID); !ok {
		s.logf("[%s] didOpen rejected unsupported language %q for %s", trace, params.TextDocument.LanguageID, uri)
		return nil
	}

	s.ctx.AddSourceFile(uri, text)
	if err := s.ctx.Check(); err != nil {
		s.logf("[%s] didOpen check() failed for %s: %v", trace, uri, err)
	}

	s.publishDiagnostics(ctx, uri)
	return nil
}

// DidChange applies every content-change event in order, rejects stale
// versions, invalidates and re-checks, then publishes diagnostics for
// every currently-registered file (an edit can shift diagnostics produced
// by cross-file analysis of files other than the one that changed).
func (s *Server) DidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	trace := logging.Trace()
	uri := params.TextDocument.URI
	version := int(params.TextDocument.Version)

	s.mu.Lock()
	defer s.mu.Unlock()

	f, ok := s.docs.Get(uri)
	if !ok {
		s.logf("[%s] didChange for unknown document %s", trace, uri)
		return nil
	}

	newText := f.Text()
	for _, raw := range params.ContentChanges {
		change, ok := raw.(protocol.TextDocumentContentChangeEvent)
		if !ok {
			continue
		}

		edit := document.Edit{Text: change.Text}
		if change.Range != nil {
			edit.HasRange = true
			edit.StartLine = int(change.Range.Start.Line)
			edit.StartChar = int(change.Range.Start.Character)
			edit.EndLine = int(change.Range.End.Line)
			edit.EndChar = int(change.Range.End.Character)
		}

		applied, err := document.Apply(newText, edit)
		if err != nil {
			s.logf("[%s] didChange: invalid edit for %s: %v", trace, uri, err)
			continue
		}
		newText = applied
	}

	if err := s.docs.Change(uri, version, newText); err != nil {
		s.logf("[%s] didChange rejected for %s: %v", trace, uri, err)
		return nil
	}

	s.ctx.AddSourceFile(uri, newText)
	if err := s.ctx.Check(); err != nil {
		s.logf("[%s] didChange check() failed for %s: %v", trace, uri, err)
	}

	for _, uri := range s.ctx.GetSourceFiles() {
		s.publishDiagnostics(ctx, uri)
	}
	return nil
}

// DidClose drops uri from the Document Store and clears its diagnostics on
// the client side; the Compilation Context keeps its registered text
// (mirroring the teacher, which never un-registers a file from analysis
// just because its editor buffer closed).
func (s *Server) DidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	uri := params.TextDocument.URI
	s.mu.Lock()
	s.docs.Delete(uri)
	s.mu.Unlock()

	if ctx != nil && ctx.Notify != nil {
		ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
			URI:         uri,
			Diagnostics: []protocol.Diagnostic{},
		})
	}
	return nil
}
