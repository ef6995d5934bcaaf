package lspserver

import (
	"path/filepath"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/aster-lang/aster-ls/internal/config"
)

const serverName = "aster-ls"

var serverVersion = "0.1.0"

// Initialize seeds the Compilation Context from the workspace's .aster.yaml
// (if present), runs an initial check(), starts watching whatever vapidirs
// that seeding registered, and answers with the server's capabilities.
// Unlike the teacher, which advertises hover/references/document-symbol/
// workspace-symbol/signature-help/rename/semantic-tokens/code-action, this
// server only ever implements definition and completion, so only those two
// are advertised.
func (s *Server) Initialize(context *glsp.Context, params *protocol.InitializeParams) (any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	root := workspaceRoot(params)
	if root != "" {
		cfg, ok, err := config.Load(filepath.Join(root, config.FileName))
		if err != nil {
			s.logf("initialize: failed to load %s: %v", config.FileName, err)
		} else if ok {
			for _, pkg := range cfg.Packages {
				s.ctx.AddPackage(pkg)
			}
			for _, dir := range cfg.Vapidirs {
				s.ctx.AddVapidir(dir)
			}
			for _, c := range cfg.CSources {
				s.ctx.AddCSourceFile(c)
			}
		}
	}

	if s.ctx.Dirty() {
		if err := s.ctx.Check(); err != nil {
			s.logf("initialize: check() failed: %v", err)
		}
	}

	if err := s.ctx.StartWatching(func(err error) {
		s.logf("vapidir watcher: %v", err)
	}); err != nil {
		s.logf("initialize: failed to start vapidir watcher: %v", err)
	}

	syncKind := protocol.TextDocumentSyncKindFull
	trueVal := true
	falseVal := false

	capabilities := protocol.ServerCapabilities{
		TextDocumentSync: protocol.TextDocumentSyncOptions{
			OpenClose: &trueVal,
			Change:    &syncKind,
		},
		DefinitionProvider: &trueVal,
		CompletionProvider: &protocol.CompletionOptions{
			TriggerCharacters: []string{".", ">", " ", "(", "["},
			ResolveProvider:   &falseVal,
		},
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    serverName,
			Version: &serverVersion,
		},
	}, nil
}

// workspaceRoot extracts a single root path from whichever of the three
// (now-overlapping) ways a client may report it, preferring the newer
// WorkspaceFolders field over the deprecated RootURI/RootPath.
func workspaceRoot(params *protocol.InitializeParams) string {
	if len(params.WorkspaceFolders) > 0 {
		return pathFromURI(params.WorkspaceFolders[0].URI)
	}
	if params.RootURI != nil {
		return pathFromURI(*params.RootURI)
	}
	if params.RootPath != nil {
		return *params.RootPath
	}
	return ""
}

// Initialized is a no-op: nothing here needs to wait for the client's ack
// that it has processed the initialize result.
func (s *Server) Initialized(context *glsp.Context, params *protocol.InitializedParams) error {
	return nil
}

// Shutdown clears all server-held state (including stopping the vapidir
// watcher started by Initialize) and sets shutdownCalled. This package
// registers no exit handler (see Handler), and nothing here reads
// shutdownCalled.
func (s *Server) Shutdown(context *glsp.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ctx.Clear()
	s.docs.Clear()
	s.shutdownCalled = true
	return nil
}

// SetTrace is a no-op; this server does not implement $/logTrace.
func (s *Server) SetTrace(context *glsp.Context, params *protocol.SetTraceParams) error {
	return nil
}
