package scope

import (
	"testing"

	"github.com/cwbudde/go-dws/pkg/ast"
	"github.com/cwbudde/go-dws/pkg/token"

	"github.com/aster-lang/aster-ls/internal/position"
)

func ident(name string, line, startCol, endCol int) *ast.Identifier {
	return &ast.Identifier{
		Token:  token.Token{Pos: token.Position{Line: line, Column: startCol}, Literal: name},
		Value:  name,
		EndPos: token.Position{Line: line, Column: endCol},
	}
}

func TestBuildScopeTreeBindsTopLevelFunction(t *testing.T) {
	fn := &ast.FunctionDecl{
		Name: ident("doThing", 1, 10, 17),
		Parameters: []*ast.Parameter{
			{Name: ident("arg", 1, 19, 22)},
		},
		Body: &ast.BlockStatement{
			Statements: []ast.Statement{
				&ast.VarDeclStatement{Names: []*ast.Identifier{ident("local", 2, 5, 10)}},
			},
		},
	}
	program := &ast.Program{Statements: []ast.Statement{fn}}

	root := BuildScopeTree(program)

	if _, ok := root.Symbols["doThing"]; !ok {
		t.Fatal("expected function name bound at root scope")
	}
	if len(root.Children) != 1 {
		t.Fatalf("expected 1 child scope (function body), got %d", len(root.Children))
	}

	fnScope := root.Children[0]
	if _, ok := fnScope.Symbols["arg"]; !ok {
		t.Fatal("expected parameter bound in function scope")
	}
	if _, ok := fnScope.Symbols["local"]; !ok {
		t.Fatal("expected local var bound in function scope")
	}
}

func TestBuildScopeTreeBindsClassMembers(t *testing.T) {
	class := &ast.ClassDecl{
		Name:   ident("Widget", 1, 7, 13),
		Fields: []*ast.FieldDecl{{Name: ident("count", 2, 3, 8)}},
		Methods: []*ast.FunctionDecl{
			{Name: ident("reset", 3, 3, 8), Body: &ast.BlockStatement{}},
		},
	}
	program := &ast.Program{Statements: []ast.Statement{class}}

	root := BuildScopeTree(program)
	if len(root.Children) != 1 {
		t.Fatalf("expected 1 child scope (class), got %d", len(root.Children))
	}
	classScope := root.Children[0]
	if _, ok := classScope.Symbols["count"]; !ok {
		t.Fatal("expected field bound in class scope")
	}
	if _, ok := classScope.Symbols["reset"]; !ok {
		t.Fatal("expected method name bound in class scope")
	}
}

func TestFindScopeContainsPositionInsideParameterSpan(t *testing.T) {
	fn := &ast.FunctionDecl{
		Name:       ident("f", 1, 1, 2),
		Parameters: []*ast.Parameter{{Name: ident("x", 1, 5, 6)}},
		Body:       &ast.BlockStatement{},
	}
	program := &ast.Program{Statements: []ast.Statement{fn}}
	root := BuildScopeTree(program)

	// AST (1,5) => LSP (0,4)
	scopes := FindScope(root, position.Position{Line: 0, Character: 4})
	if len(scopes) == 0 {
		t.Fatal("expected to find a scope containing the parameter position")
	}
}

func TestFindScopeEmptySymbolTableYieldsNoRange(t *testing.T) {
	program := &ast.Program{}
	root := BuildScopeTree(program)
	scopes := FindScope(root, position.Position{Line: 0, Character: 0})
	if len(scopes) != 0 {
		t.Fatalf("expected no scopes for an empty program, got %d", len(scopes))
	}
}

func TestTokenExtractsTrailingIdentifier(t *testing.T) {
	got := Token("  foo.bar", 9)
	if got != "bar" {
		t.Fatalf("got %q, want %q", got, "bar")
	}
}

func TestTokenEmptyWhenCursorNotOnIdentifier(t *testing.T) {
	got := Token("foo.", 4)
	if got != "" {
		t.Fatalf("expected empty token, got %q", got)
	}
}

func TestFindTokenResolvesBoundSymbol(t *testing.T) {
	fn := &ast.FunctionDecl{
		Name:       ident("f", 1, 1, 2),
		Parameters: []*ast.Parameter{{Name: ident("count", 1, 5, 10)}},
		Body:       &ast.BlockStatement{},
	}
	program := &ast.Program{Statements: []ast.Statement{fn}}
	root := BuildScopeTree(program)

	node := FindToken(root, "  count", position.Position{Line: 0, Character: 7})
	if node == nil {
		t.Fatal("expected FindToken to resolve 'count' via the parameter scope")
	}
}

func TestFindTokenNoMatchReturnsNil(t *testing.T) {
	program := &ast.Program{}
	root := BuildScopeTree(program)
	node := FindToken(root, "nope", position.Position{Line: 0, Character: 4})
	if node != nil {
		t.Fatal("expected nil for an unbound token")
	}
}

func TestLineTextExtractsByIndex(t *testing.T) {
	text := "one\r\ntwo\nthree"
	if got := LineText(text, 1); got != "two" {
		t.Fatalf("got %q", got)
	}
	if got := LineText(text, 0); got != "one" {
		t.Fatalf("got %q", got)
	}
	if got := LineText(text, 99); got != "" {
		t.Fatalf("expected empty string for out-of-range line, got %q", got)
	}
}
