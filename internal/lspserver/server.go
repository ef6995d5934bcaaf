// Package lspserver implements the Query Handlers: initialize,
// textDocument/didOpen, didChange, didClose, definition, completion,
// shutdown. It registers no handler for exit.
// It wires the Compilation Context and Document Store together and
// translates between LSP wire coordinates and the compiler's combined-
// buffer coordinates.
package lspserver

import (
	"strings"
	"sync"

	"github.com/tliron/commonlog"

	"github.com/aster-lang/aster-ls/internal/compilecontext"
	"github.com/aster-lang/aster-ls/internal/document"
)

// languageID is the only textDocument languageId this server accepts.
const languageID = "aster"

// Server owns the two core pieces of state a Query Handler needs: the
// Compilation Context and the Document Store, wired so that every document
// mutation invalidates the context automatically.
type Server struct {
	mu sync.Mutex

	ctx  *compilecontext.CompilationContext
	docs *document.Store

	logger commonlog.Logger

	shutdownCalled bool
}

// New creates a Server with a fresh, empty Compilation Context and
// Document Store. logger may be nil (handlers skip logging in that case,
// which keeps unit tests free of any commonlog setup).
func New(logger commonlog.Logger) *Server {
	ctx := compilecontext.New()
	return &Server{
		ctx:    ctx,
		docs:   document.New(ctx.Invalidate),
		logger: logger,
	}
}

func (s *Server) logf(format string, args ...any) {
	if s.logger == nil {
		return
	}
	s.logger.Infof(format, args...)
}

// pathFromURI strips a file:// scheme, leaving whatever the Document Store
// and Compilation Context use as a registration key for everything else
// (bare paths, untitled: buffers, ...). Diagnostics and locations round-trip
// through the original URI regardless, since both stores key by it.
func pathFromURI(uri string) string {
	return strings.TrimPrefix(uri, "file://")
}
