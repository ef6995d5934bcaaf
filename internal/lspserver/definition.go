package lspserver

import (
	"github.com/cwbudde/go-dws/pkg/ast"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/aster-lang/aster-ls/internal/astwalk"
	"github.com/aster-lang/aster-ls/internal/completion"
	"github.com/aster-lang/aster-ls/internal/position"
)

// Definition handles textDocument/definition: translate the request's
// per-file position into combined-buffer coordinates, find the tightest
// enclosing node there, resolve it to a declaration (member access
// dereferences through the Completion Projection's Resolver; a plain
// identifier is looked up by name against every declaration in the
// program), and translate the declaration's position back to a per-file
// Location.
func (s *Server) Definition(context *glsp.Context, params *protocol.DefinitionParams) (any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	uri := params.TextDocument.URI
	program := s.ctx.Program()
	if program == nil {
		return nil, nil
	}

	// CombinedLine takes the compiler's 1-based line convention; LSP's
	// Position.Line is 0-based, hence the +1. The combinedLine it returns is
	// likewise 1-based, so -1 before handing it to position.Position, which
	// expects LSP's 0-based convention and re-adds 1 itself via ToAST.
	combinedLine, ok := s.ctx.CombinedLine(uri, int(params.Position.Line)+1)
	if !ok {
		return nil, nil
	}

	p := position.Position{Line: combinedLine - 1, Character: int(params.Position.Character)}
	matches := position.FindSymbol(program, p)
	node := position.TightestMatch(matches)
	if node == nil {
		return nil, nil
	}

	decl := s.resolveDeclaration(program, node)
	if decl == nil {
		return nil, nil
	}

	loc := s.declarationLocation(decl)
	if loc == nil {
		return nil, nil
	}
	return loc, nil
}

// resolveDeclaration dereferences node to the declaration it names: a
// member-access expression resolves through completion's Resolver (the same
// declared-type lookup the Completion Projection uses); anything else that
// carries an identifier name is resolved by findIdentifierDecl.
func (s *Server) resolveDeclaration(program *ast.Program, node ast.Node) ast.Node {
	if access, ok := node.(*ast.MemberAccessExpression); ok {
		return s.resolveMemberDeclaration(program, access)
	}

	ident, ok := node.(*ast.Identifier)
	if !ok {
		return nil
	}

	return findIdentifierDecl(program, ident.Value)
}

// findIdentifierDecl searches program for a declaration bound to name: a
// variable, constant, function (or one of its parameters), class, record,
// interface, enum (or one of its values), or field. Scope's Scope Locator
// (scope.FindScope) isn't the right tool here — its "range" for a scope is
// the union of that scope's own declared symbols' spans, not the scope's
// lexical extent, so it has no useful answer for a reference that sits on a
// different line than every declaration around it, which is the common case.
// Instead this walks the whole program by name, the way findIdentifierDecl's
// namesake in the teacher does it with ast.Inspect: first declaration found
// wins, with no attempt at shadowing or block-scoping.
func findIdentifierDecl(program *ast.Program, name string) ast.Node {
	var found ast.Node

	astwalk.Visit(program, func(n ast.Node) bool {
		if found != nil {
			return false
		}

		switch decl := n.(type) {
		case *ast.VarDeclStatement:
			for _, v := range decl.Names {
				if v.Value == name {
					found = decl
					return false
				}
			}

		case *ast.FunctionDecl:
			if decl.Name != nil && decl.Name.Value == name {
				found = decl
				return false
			}
			for _, param := range decl.Parameters {
				if param.Name != nil && param.Name.Value == name {
					found = param.Name
					return false
				}
			}

		case *ast.ClassDecl:
			if decl.Name != nil && decl.Name.Value == name {
				found = decl
				return false
			}

		case *ast.RecordDecl:
			if decl.Name != nil && decl.Name.Value == name {
				found = decl
				return false
			}

		case *ast.InterfaceDecl:
			if decl.Name != nil && decl.Name.Value == name {
				found = decl
				return false
			}

		case *ast.ConstDecl:
			if decl.Name != nil && decl.Name.Value == name {
				found = decl
				return false
			}

		case *ast.EnumDecl:
			if decl.Name != nil && decl.Name.Value == name {
				found = decl
				return false
			}
			for _, v := range decl.Values {
				if v.Name == name {
					found = decl
					return false
				}
			}

		case *ast.FieldDecl:
			if decl.Name != nil && decl.Name.Value == name {
				found = decl
				return false
			}
		}
		return true
	})

	return found
}

// resolveMemberDeclaration resolves a member-access expression's object to
// its type-symbol via completion.Resolver, then looks up the member name's
// own declaration node among that type-symbol's fields/properties/methods.
func (s *Server) resolveMemberDeclaration(program *ast.Program, access *ast.MemberAccessExpression) ast.Node {
	if access.Member == nil {
		return nil
	}

	r := completion.NewResolver(program)
	objType, ok := r.ResolveExpressionType(access.Object)
	if !ok {
		return nil
	}

	return memberDeclNode(objType, access.Member.Value)
}

// memberDeclNode looks up name among owner's members and returns the
// declaration node itself (not its resolved type, unlike
// completion.Resolver.resolveMemberType which this mirrors).
func memberDeclNode(owner completion.TypeSymbol, name string) ast.Node {
	switch decl := owner.Decl.(type) {
	case *ast.ClassDecl:
		for _, f := range decl.Fields {
			if f.Name != nil && f.Name.Value == name {
				return f.Name
			}
		}
		for _, p := range decl.Properties {
			if p.Name != nil && p.Name.Value == name {
				return p.Name
			}
		}
		for _, m := range decl.Methods {
			if m.Name != nil && m.Name.Value == name {
				return m.Name
			}
		}

	case *ast.RecordDecl:
		for _, f := range decl.Fields {
			if f.Name != nil && f.Name.Value == name {
				return f.Name
			}
		}

	case *ast.InterfaceDecl:
		for _, m := range decl.Methods {
			if m.Name != nil && m.Name.Value == name {
				return m.Name
			}
		}
	}
	return nil
}

// declarationLocation translates decl's combined-buffer position back to a
// per-file protocol.Location, or nil if decl's line no longer maps to any
// registered file (stale Compilation Context).
func (s *Server) declarationLocation(decl ast.Node) *protocol.Location {
	begin, end := decl.Pos(), decl.End()

	uri, localBeginLine, ok := s.ctx.LocalLine(begin.Line)
	if !ok {
		return nil
	}
	_, localEndLine, ok := s.ctx.LocalLine(end.Line)
	if !ok {
		localEndLine = localBeginLine
	}

	return &protocol.Location{
		URI: uri,
		Range: protocol.Range{
			Start: protocol.Position{
				Line:      protocol.UInteger(localBeginLine - 1),
				Character: protocol.UInteger(begin.Column - 1),
			},
			End: protocol.Position{
				Line:      protocol.UInteger(localEndLine - 1),
				Character: protocol.UInteger(end.Column - 1),
			},
		},
	}
}
