// Package scope implements the Scope Locator (FindScope) and the Token
// Fallback Finder over the compiler's AST.
//
// The compiler front-end used here doesn't expose a native Scope type with
// parent pointers and a symbol table — the teacher's own SymbolResolver
// works around the same gap by hand-walking FunctionDecl/ClassDecl nodes
// with ast.Inspect instead of querying a scope object. BuildScopeTree does
// the same walk once, up front, and materializes the Scope/Symbol
// abstraction the rest of this package needs.
package scope

import (
	"github.com/cwbudde/go-dws/pkg/ast"
	"github.com/cwbudde/go-dws/pkg/token"

	"github.com/aster-lang/aster-ls/internal/position"
)

// Symbol is a named, source-located declaration bound in a Scope.
type Symbol struct {
	Name   string
	Node   ast.Node
	Source token.Position // begin, paired with End below
	End    token.Position
}

// Scope carries a symbol table and a parent pointer. Scopes form a tree
// rooted at the top-level namespace of a source file.
type Scope struct {
	Parent   *Scope
	Children []*Scope
	Symbols  map[string]*Symbol
	Node     ast.Node // the declaration this scope belongs to (nil for root)
}

func newScope(parent *Scope, node ast.Node) *Scope {
	s := &Scope{Parent: parent, Symbols: make(map[string]*Symbol), Node: node}
	if parent != nil {
		parent.Children = append(parent.Children, s)
	}
	return s
}

func (s *Scope) bind(name string, node ast.Node, begin, end token.Position) {
	if name == "" {
		return
	}
	s.Symbols[name] = &Symbol{Name: name, Node: node, Source: begin, End: end}
}

// BuildScopeTree walks program and constructs its scope tree: one root
// scope for top-level declarations, one child scope per function body, and
// one child scope per class (its fields/methods/properties).
func BuildScopeTree(program *ast.Program) *Scope {
	root := newScope(nil, nil)
	if program == nil {
		return root
	}

	for _, stmt := range program.Statements {
		bindTopLevel(root, stmt)
	}
	return root
}

func bindTopLevel(root *Scope, stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.VarDeclStatement:
		for _, n := range s.Names {
			root.bind(n.Value, n, n.Pos(), n.End())
		}

	case *ast.ConstDecl:
		if s.Name != nil {
			root.bind(s.Name.Value, s.Name, s.Name.Pos(), s.Name.End())
		}

	case *ast.FunctionDecl:
		if s.Name != nil {
			root.bind(s.Name.Value, s.Name, s.Name.Pos(), s.Name.End())
		}
		buildFunctionScope(root, s)

	case *ast.ClassDecl:
		if s.Name != nil {
			root.bind(s.Name.Value, s.Name, s.Name.Pos(), s.Name.End())
		}
		buildClassScope(root, s)

	case *ast.InterfaceDecl:
		if s.Name != nil {
			root.bind(s.Name.Value, s.Name, s.Name.Pos(), s.Name.End())
		}

	case *ast.RecordDecl:
		if s.Name != nil {
			root.bind(s.Name.Value, s.Name, s.Name.Pos(), s.Name.End())
		}

	case *ast.EnumDecl:
		if s.Name != nil {
			root.bind(s.Name.Value, s.Name, s.Name.Pos(), s.Name.End())
		}
	}
}

func buildFunctionScope(parent *Scope, fn *ast.FunctionDecl) *Scope {
	fnScope := newScope(parent, fn)

	for _, p := range fn.Parameters {
		if p.Name != nil {
			fnScope.bind(p.Name.Value, p.Name, p.Name.Pos(), p.Name.End())
		}
	}

	if fn.Body != nil {
		bindBlockLocals(fnScope, fn.Body)
	}

	return fnScope
}

// bindBlockLocals binds every var declaration in block into scope, including
// those in nested blocks (if/while/for bodies), which are intentionally
// flattened into the same function scope rather than given their own nested
// Scope: the compiler's AST doesn't expose block-level lexical scoping
// distinct from function-level, and FindScope only needs "is this name
// visible from here" — not C-style block shadowing. Nested function
// declarations are not descended into.
func bindBlockLocals(s *Scope, block *ast.BlockStatement) {
	if block == nil {
		return
	}
	ast.Inspect(block, func(n ast.Node) bool {
		switch v := n.(type) {
		case *ast.FunctionDecl:
			return false
		case *ast.VarDeclStatement:
			for _, name := range v.Names {
				s.bind(name.Value, name, name.Pos(), name.End())
			}
		}
		return true
	})
}

func buildClassScope(parent *Scope, class *ast.ClassDecl) *Scope {
	classScope := newScope(parent, class)

	for _, f := range class.Fields {
		if f.Name != nil {
			classScope.bind(f.Name.Value, f.Name, f.Name.Pos(), f.Name.End())
		}
	}
	for _, m := range class.Methods {
		if m.Name != nil {
			classScope.bind(m.Name.Value, m.Name, m.Name.Pos(), m.Name.End())
		}
		buildFunctionScope(classScope, m)
	}
	for _, p := range class.Properties {
		if p.Name != nil {
			classScope.bind(p.Name.Value, p.Name, p.Name.Pos(), p.Name.End())
		}
	}

	return classScope
}

// ownerRange computes the union of source-references of every symbol in
// s's own table (not inherited from ancestors). Symbols with a null
// (zero-value) source position are excluded. Returns ok=false if the table
// is empty or every entry was excluded.
func ownerRange(s *Scope) (begin, end token.Position, ok bool) {
	first := true
	for _, sym := range s.Symbols {
		if sym.Source == (token.Position{}) && sym.End == (token.Position{}) {
			continue
		}
		if first {
			begin, end = sym.Source, sym.End
			first = false
			continue
		}
		if before(sym.Source, begin) {
			begin = sym.Source
		}
		if before(end, sym.End) {
			end = sym.End
		}
	}
	return begin, end, !first
}

func before(a, b token.Position) bool {
	if a.Line != b.Line {
		return a.Line < b.Line
	}
	return a.Column < b.Column
}

func contains(begin, end token.Position, p token.Position) bool {
	if before(p, begin) {
		return false
	}
	if before(end, p) {
		return false
	}
	return true
}

// FindScope walks the scope tree rooted at root and returns the owning
// scope of every symbol whose scope's computed range contains p. Duplicates
// are expected and allowed when a scope has more than one contained symbol;
// callers iterate rather than assume uniqueness.
func FindScope(root *Scope, p position.Position) []*Scope {
	target := p.ToAST()
	var out []*Scope
	walkScopes(root, target, &out)
	return out
}

func walkScopes(s *Scope, target token.Position, out *[]*Scope) {
	if s == nil {
		return
	}

	if begin, end, ok := ownerRange(s); ok && contains(begin, end, target) {
		for range s.Symbols {
			*out = append(*out, s)
		}
	}

	for _, child := range s.Children {
		walkScopes(child, target, out)
	}
}
