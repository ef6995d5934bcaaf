package completion

import "github.com/cwbudde/go-dws/pkg/ast"

// Resolver resolves an AST node to the TypeSymbol whose members should be
// offered as completions, given the program it was parsed from.
//
// The compiler doesn't expose a resolved DataType per expression (no
// semantic-analysis output beyond the AST itself), so resolution here is
// name-based: look up a node's declared type annotation, then look up a
// top-level declaration with that name and classify it. This mirrors the
// teacher's own type_resolver.go, which does the same declared-annotation
// lookup rather than querying a semantic type.
type Resolver struct {
	program *ast.Program
}

// NewResolver creates a Resolver over program.
func NewResolver(program *ast.Program) *Resolver {
	return &Resolver{program: program}
}

// ResolveExpressionType projects node to the TypeSymbol whose members a
// completion request should enumerate, following the node-kind rules:
// member-access expressions resolve through their object's type; pointer
// indirection is handled by the same member-access path (this compiler has
// no separate pointer-indirection node — "->" and "." both parse to
// MemberAccessExpression, so there is nothing to special-case); an
// identifier resolves via its declaration's type and a call via its
// function's (or member's) return type; a variable declaration resolves to
// its declared type; a type-symbol declaration resolves to itself. Any other
// node, including literals and other expression kinds, does not resolve.
func (r *Resolver) ResolveExpressionType(node ast.Node) (TypeSymbol, bool) {
	switch n := node.(type) {
	case *ast.MemberAccessExpression:
		return r.resolveMemberAccess(n)

	case *ast.Identifier:
		return r.resolveIdentifierType(n)

	case *ast.CallExpression:
		if ident, ok := n.Function.(*ast.Identifier); ok {
			if fn := r.findFunctionDecl(ident.Value); fn != nil {
				return r.typeSymbolFromTypeExpr(fn.ReturnType)
			}
		}
		if member, ok := n.Function.(*ast.MemberAccessExpression); ok {
			return r.resolveMemberAccess(member)
		}
		return TypeSymbol{}, false

	case *ast.VarDeclStatement:
		return r.typeSymbolFromTypeExpr(n.Type)

	case *ast.ClassDecl, *ast.InterfaceDecl, *ast.RecordDecl, *ast.EnumDecl, *ast.TypeDeclaration:
		if stmt, ok := node.(ast.Statement); ok {
			return ClassifyDecl(stmt)
		}
		return TypeSymbol{}, false

	default:
		return TypeSymbol{}, false
	}
}

// resolveMemberAccess implements §4.8's member-access projection rule: if
// the object's type resolves, look up Member within it and resolve that
// member's declared type. If Member is nil — an incomplete parse of a
// trailing dot, the implicit-receiver case — fall back to resolving the
// object expression directly, since there is no "nested member by name"
// to look up yet.
func (r *Resolver) resolveMemberAccess(n *ast.MemberAccessExpression) (TypeSymbol, bool) {
	if n.Member == nil {
		return r.ResolveExpressionType(n.Object)
	}

	objType, ok := r.ResolveExpressionType(n.Object)
	if !ok {
		return TypeSymbol{}, false
	}

	return r.resolveMemberType(objType, n.Member.Value)
}

// resolveMemberType looks up name among owner's members and resolves its
// declared type to a TypeSymbol.
func (r *Resolver) resolveMemberType(owner TypeSymbol, name string) (TypeSymbol, bool) {
	switch owner.Kind {
	case KindClass, KindInterface, KindStruct:
		// fields/properties/methods share enough shape (Name, Type) across
		// ClassDecl/RecordDecl that a small per-kind switch covers both.
		switch decl := owner.Decl.(type) {
		case *ast.ClassDecl:
			for _, f := range decl.Fields {
				if f.Name != nil && f.Name.Value == name {
					return r.typeSymbolFromTypeExpr(f.Type)
				}
			}
			for _, p := range decl.Properties {
				if p.Name != nil && p.Name.Value == name {
					return r.typeSymbolFromTypeExpr(p.Type)
				}
			}
			for _, m := range decl.Methods {
				if m.Name != nil && m.Name.Value == name {
					return r.typeSymbolFromTypeExpr(m.ReturnType)
				}
			}

		case *ast.RecordDecl:
			for _, f := range decl.Fields {
				if f.Name != nil && f.Name.Value == name {
					return r.typeSymbolFromTypeExpr(f.Type)
				}
			}

		case *ast.InterfaceDecl:
			for _, m := range decl.Methods {
				if m.Name != nil && m.Name.Value == name {
					return r.typeSymbolFromTypeExpr(m.ReturnType)
				}
			}
		}
	}

	return TypeSymbol{}, false
}

// resolveIdentifierType resolves an identifier reference to its declared
// type: a local variable, a function parameter, or a class field, searched
// in that order (mirroring the teacher's findVariableType /
// findParameterType / findFieldType precedence).
func (r *Resolver) resolveIdentifierType(ident *ast.Identifier) (TypeSymbol, bool) {
	if r.program == nil {
		return TypeSymbol{}, false
	}

	var varType, paramType, fieldType ast.TypeExpression
	ast.Inspect(r.program, func(n ast.Node) bool {
		switch decl := n.(type) {
		case *ast.VarDeclStatement:
			for _, name := range decl.Names {
				if varType == nil && name.Value == ident.Value && decl.Type != nil {
					varType = decl.Type
				}
			}
		case *ast.FunctionDecl:
			for _, p := range decl.Parameters {
				if paramType == nil && p.Name != nil && p.Name.Value == ident.Value && p.Type != nil {
					paramType = p.Type
				}
			}
		case *ast.FieldDecl:
			if fieldType == nil && decl.Name != nil && decl.Name.Value == ident.Value {
				fieldType = decl.Type
			}
		}
		return varType == nil
	})

	found := varType
	if found == nil {
		found = paramType
	}
	if found == nil {
		found = fieldType
	}
	if found == nil {
		return TypeSymbol{}, false
	}
	return r.typeSymbolFromTypeExpr(found)
}

func (r *Resolver) findFunctionDecl(name string) *ast.FunctionDecl {
	if r.program == nil {
		return nil
	}
	for _, stmt := range r.program.Statements {
		if fn, ok := stmt.(*ast.FunctionDecl); ok && fn.Name != nil && fn.Name.Value == name {
			return fn
		}
	}
	return nil
}

// typeSymbolFromTypeExpr resolves a TypeExpression to its backing
// type-symbol by name lookup among the program's top-level declarations.
// Per §4.8's DataType resolution rules: interface/class/value/object/error
// types resolve to their respective symbol kinds; unresolved, built-in, or
// void/null types yield no type-symbol.
func (r *Resolver) typeSymbolFromTypeExpr(t ast.TypeExpression) (TypeSymbol, bool) {
	if t == nil || r.program == nil {
		return TypeSymbol{}, false
	}
	return r.typeSymbolByName(typeExprName(t))
}

func (r *Resolver) typeSymbolByName(name string) (TypeSymbol, bool) {
	if name == "" {
		return TypeSymbol{}, false
	}
	for _, stmt := range r.program.Statements {
		ts, ok := ClassifyDecl(stmt)
		if !ok {
			continue
		}
		if declName(ts.Decl) == name {
			return ts, true
		}
	}
	return TypeSymbol{}, false
}

func declName(n ast.Node) string {
	switch d := n.(type) {
	case *ast.ClassDecl:
		if d.Name != nil {
			return d.Name.Value
		}
	case *ast.InterfaceDecl:
		if d.Name != nil {
			return d.Name.Value
		}
	case *ast.RecordDecl:
		if d.Name != nil {
			return d.Name.Value
		}
	case *ast.EnumDecl:
		if d.Name != nil {
			return d.Name.Value
		}
	case *ast.TypeDeclaration:
		if d.Name != nil {
			return d.Name.Value
		}
	}
	return ""
}

// typeExprName extracts a type name from a TypeExpression, the way the
// teacher's util.GetTypeName does: TypeAnnotation exposes Name directly;
// other implementations (FunctionPointerTypeNode, ArrayTypeNode) fall back
// to their String() form.
func typeExprName(t ast.TypeExpression) string {
	if t == nil {
		return ""
	}
	if ta, ok := t.(*ast.TypeAnnotation); ok {
		return ta.Name
	}
	return t.String()
}
