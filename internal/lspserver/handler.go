package lspserver

import (
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// Handler assembles a protocol.Handler whose fields are all bound to srv's
// methods, replacing the teacher's package-global serverInstance/SetServer
// indirection with ordinary method receivers.
func Handler(srv *Server) protocol.Handler {
	return protocol.Handler{
		Initialize:  srv.Initialize,
		Initialized: srv.Initialized,
		Shutdown:    srv.Shutdown,
		SetTrace:    srv.SetTrace,

		TextDocumentDidOpen:   srv.DidOpen,
		TextDocumentDidChange: srv.DidChange,
		TextDocumentDidClose:  srv.DidClose,

		TextDocumentDefinition: srv.Definition,
		TextDocumentCompletion: srv.Completion,
	}
}
