package position

import (
	"testing"

	"github.com/cwbudde/go-dws/pkg/ast"
	"github.com/cwbudde/go-dws/pkg/token"
)

func ident(name string, line, startCol, endCol int) *ast.Identifier {
	return &ast.Identifier{
		Token:  token.Token{Pos: token.Position{Line: line, Column: startCol}, Literal: name},
		Value:  name,
		EndPos: token.Position{Line: line, Column: endCol},
	}
}

func TestFindSymbolMatchesContainingSingleLineSpan(t *testing.T) {
	n := ident("x", 1, 5, 6)
	program := &ast.Program{Statements: []ast.Statement{&ast.VarDeclStatement{
		Token: token.Token{Pos: token.Position{Line: 1, Column: 1}},
		Names: []*ast.Identifier{n},
		Value: &ast.IntegerLiteral{Token: token.Token{Pos: token.Position{Line: 1, Column: 10}}, EndPos: token.Position{Line: 1, Column: 12}},
		EndPos: token.Position{Line: 1, Column: 13},
	}}}

	// LSP position (0, 4) => AST (1, 5), right at the start of the identifier.
	matches := FindSymbol(program, Position{Line: 0, Character: 4})

	found := false
	for _, m := range matches {
		if m == ast.Node(n) {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected identifier %q among matches, got %d matches", n.Value, len(matches))
	}
}

func TestFindSymbolSkipsMultiLineSpans(t *testing.T) {
	multiLine := &ast.VarDeclStatement{
		Token:  token.Token{Pos: token.Position{Line: 1, Column: 1}},
		EndPos: token.Position{Line: 3, Column: 1},
	}
	matches := FindSymbol(multiLine, Position{Line: 1, Character: 0})
	for _, m := range matches {
		if m == ast.Node(multiLine) {
			t.Fatal("expected multi-line span to be excluded")
		}
	}
}

func TestFindSymbolNoMatchIsEmptyNotError(t *testing.T) {
	n := ident("x", 1, 5, 6)
	matches := FindSymbol(n, Position{Line: 99, Character: 0})
	if len(matches) != 0 {
		t.Fatalf("expected no matches, got %d", len(matches))
	}
}

func TestTightestMatchPicksMostNested(t *testing.T) {
	outer := ident("outer", 1, 1, 20)
	inner := ident("inner", 1, 5, 10)

	best := TightestMatch([]ast.Node{outer, inner})
	if best != ast.Node(inner) {
		t.Fatalf("expected inner (tightest) node to win, got %v", best)
	}
}

func TestTightestMatchTieBreaksOnFirstEncountered(t *testing.T) {
	a := ident("a", 1, 5, 10)
	b := ident("b", 1, 5, 10)

	best := TightestMatch([]ast.Node{a, b})
	if best != ast.Node(a) {
		t.Fatal("expected first node in traversal order to win a tie")
	}
}

func TestTightestMatchEmptyReturnsNil(t *testing.T) {
	if TightestMatch(nil) != nil {
		t.Fatal("expected nil for empty input")
	}
}

func TestPositionConversionRoundTrips(t *testing.T) {
	lsp := Position{Line: 4, Character: 9}
	astPos := lsp.ToAST()
	if astPos.Line != 5 || astPos.Column != 10 {
		t.Fatalf("unexpected AST position: %+v", astPos)
	}
	back := FromAST(astPos)
	if back != lsp {
		t.Fatalf("round trip mismatch: got %+v, want %+v", back, lsp)
	}
}
