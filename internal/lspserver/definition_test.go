package lspserver

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

// TestFindIdentifierDeclResolvesReferenceOnALaterLine reproduces the
// go-to-definition scenario scope.FindScope cannot serve: a declaration on
// one line and a reference on another, with no symbol bound anywhere near
// the reference itself. scope.FindScope's range for the enclosing scope is
// the union of its own declared symbols' spans, which here is just x's
// declaration on line 1 — a query on line 2 falls outside it entirely.
func TestFindIdentifierDeclResolvesReferenceOnALaterLine(t *testing.T) {
	decl := &ast.VarDeclStatement{
		Token: token.Token{Pos: token.Position{Line: 1, Column: 1}},
		Names: []*ast.Identifier{ident("x", 1, 5, 6)},
	}
	program := &ast.Program{Statements: []ast.Statement{decl}}

	got := findIdentifierDecl(program, "x")
	if got != ast.Node(decl) {
		t.Fatalf("expected the var declaration, got %v", got)
	}
}

func TestFindIdentifierDeclResolvesFunctionParameter(t *testing.T) {
	paramName := ident("arg", 1, 19, 22)
	fn := &ast.FunctionDecl{
		Name:       ident("doThing", 1, 10, 17),
		Parameters: []*ast.Parameter{{Name: paramName}},
		Body: &ast.BlockStatement{
			Statements: []ast.Statement{
				&ast.VarDeclStatement{Names: []*ast.Identifier{ident("local", 2, 3, 8)}},
			},
		},
	}
	program := &ast.Program{Statements: []ast.Statement{fn}}

	got := findIdentifierDecl(program, "arg")
	if got != ast.Node(paramName) {
		t.Fatalf("expected the parameter's own identifier node, got %v", got)
	}
}

func TestFindIdentifierDeclResolvesFunctionName(t *testing.T) {
	fn := &ast.FunctionDecl{Name: ident("doThing", 1, 10, 17), Body: &ast.BlockStatement{}}
	program := &ast.Program{Statements: []ast.Statement{fn}}

	got := findIdentifierDecl(program, "doThing")
	if got != ast.Node(fn) {
		t.Fatalf("expected the function declaration, got %v", got)
	}
}

func TestFindIdentifierDeclUnknownNameReturnsNil(t *testing.T) {
	program := &ast.Program{Statements: []ast.Statement{
		&ast.VarDeclStatement{Names: []*ast.Identifier{ident("x", 1, 5, 6)}},
	}}

	if got := findIdentifierDecl(program, "nope"); got != nil {
		t.Fatalf("expected nil, got %v", got)
	}
}

func TestResolveDeclarationDispatchesPlainIdentifierByName(t *testing.T) {
	decl := &ast.VarDeclStatement{Names: []*ast.Identifier{ident("x", 1, 5, 6)}}
	program := &ast.Program{Statements: []ast.Statement{decl}}
	ref := ident("x", 3, 1, 2)

	s := New(nil)
	got := s.resolveDeclaration(program, ref)
	if got != ast.Node(decl) {
		t.Fatalf("expected resolveDeclaration to find the declaration by name, got %v", got)
	}
}
