// Package completion implements the Completion Projection: classifying a
// resolved AST node into a type-symbol and enumerating that type-symbol's
// members as LSP completion items.
package completion

import (
	"strings"

	"github.com/cwbudde/go-dws/pkg/ast"
)

// Kind classifies a declaration for the purposes of member enumeration.
type Kind int

const (
	KindUnknown Kind = iota
	KindClass
	KindInterface
	KindStruct
	KindEnum
	KindErrorDomain
	KindDelegate
)

// TypeSymbol pairs a classified Kind with the declaration node it came from.
type TypeSymbol struct {
	Kind Kind
	Decl ast.Node
}

// ClassifyDecl classifies a top-level (or nested) declaration statement into
// a TypeSymbol. Returns ok=false for statements that aren't type-symbol
// declarations at all (variable declarations, statements, expressions).
//
// EnumDecl has no dedicated "error domain" AST node in this compiler — the
// source language expresses error domains as an ordinary enum whose name
// conventionally ends in "Error" or "Errors" (mirroring how the teacher's
// own GetSymbolName/ExtractSymbolName treat EnumDecl uniformly and leave
// the distinction to callers). ClassifyDecl applies that naming convention
// to split KindEnum from KindErrorDomain; see DESIGN.md for the open
// question this resolves.
func ClassifyDecl(stmt ast.Statement) (TypeSymbol, bool) {
	switch n := stmt.(type) {
	case *ast.ClassDecl:
		return TypeSymbol{Kind: KindClass, Decl: n}, true

	case *ast.InterfaceDecl:
		return TypeSymbol{Kind: KindInterface, Decl: n}, true

	case *ast.RecordDecl:
		return TypeSymbol{Kind: KindStruct, Decl: n}, true

	case *ast.EnumDecl:
		name := ""
		if n.Name != nil {
			name = n.Name.Value
		}
		if looksLikeErrorDomain(name) {
			return TypeSymbol{Kind: KindErrorDomain, Decl: n}, true
		}
		return TypeSymbol{Kind: KindEnum, Decl: n}, true

	case *ast.TypeDeclaration:
		if _, ok := n.Type.(*ast.FunctionPointerTypeNode); ok {
			return TypeSymbol{Kind: KindDelegate, Decl: n}, true
		}
		return TypeSymbol{}, false
	}

	return TypeSymbol{}, false
}

func looksLikeErrorDomain(name string) bool {
	return strings.HasSuffix(name, "Error") || strings.HasSuffix(name, "Errors")
}
