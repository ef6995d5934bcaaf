package lspserver

import (
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/aster-lang/aster-ls/internal/completion"
	"github.com/aster-lang/aster-ls/internal/position"
	"github.com/aster-lang/aster-ls/internal/scope"
)

// Completion handles textDocument/completion. This server only offers
// member-access completions: "." moves the query position one column left
// onto the object expression, "->" (pointer indirection, which this
// compiler parses identically to ".") moves it two columns left past both
// characters. Any other trigger yields an empty, non-incomplete list —
// this server has no whole-scope ("bare identifier") completion mode.
func (s *Server) Completion(context *glsp.Context, params *protocol.CompletionParams) (any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	empty := &protocol.CompletionList{IsIncomplete: false, Items: []protocol.CompletionItem{}}

	program := s.ctx.Program()
	if program == nil {
		return empty, nil
	}

	uri := params.TextDocument.URI
	file, ok := s.docs.Get(uri)
	if !ok {
		return empty, nil
	}

	localLine := int(params.Position.Line)
	character := int(params.Position.Character)
	lineText := scope.LineText(file.Text(), localLine)

	queryChar, ok := adjustForMemberAccess(lineText, character)
	if !ok {
		return empty, nil
	}

	// See definition.go for why +1 goes in and -1 comes back out: CombinedLine
	// speaks the compiler's 1-based lines, position.Position speaks LSP's
	// 0-based ones.
	combinedLine, ok := s.ctx.CombinedLine(uri, localLine+1)
	if !ok {
		return empty, nil
	}

	p := position.Position{Line: combinedLine - 1, Character: queryChar}
	matches := position.FindSymbol(program, p)
	node := position.TightestMatch(matches)
	if node == nil {
		root := scope.BuildScopeTree(program)
		node = scope.FindToken(root, lineText, p)
	}
	if node == nil {
		return empty, nil
	}

	r := completion.NewResolver(program)
	ts, ok := r.ResolveExpressionType(node)
	if !ok {
		return empty, nil
	}

	items := completion.Members(ts)
	return &protocol.CompletionList{IsIncomplete: false, Items: items}, nil
}

// adjustForMemberAccess inspects the character immediately before the
// cursor and, for a recognized member-access trigger, returns the column
// the object expression's query position should use instead. ok is false
// for any trigger this server doesn't support.
func adjustForMemberAccess(lineText string, character int) (int, bool) {
	if character < 1 || character > len(lineText) {
		return 0, false
	}

	if lineText[character-1] == '.' {
		return character - 1, true
	}

	if lineText[character-1] == '>' && character >= 2 && lineText[character-2] == '-' {
		return character - 2, true
	}

	return 0, false
}
