// Package astwalk provides a uniform pre-order traversal over compiler AST
// nodes, wrapping ast.Inspect with a typed collection helper.
//
// The teacher's own analysis helpers (FindNodeAtPosition, DetermineScope)
// each hand-roll their own ast.Inspect closure with its own continuation
// logic. That's fine in isolation, but it means any asymmetry in how one
// helper prunes versus another silently changes traversal behavior between
// callers — visiting a block differently than a loop body, say. Collect and
// CollectAs give every caller in this module the same walk, so a fix to the
// traversal only has to happen once.
package astwalk

import "github.com/cwbudde/go-dws/pkg/ast"

// Visit walks root in pre-order, calling fn for every non-nil node. fn
// returns true to recurse into the node's children, false to prune the
// subtree — the same continuation convention as ast.Inspect.
func Visit(root ast.Node, fn func(ast.Node) bool) {
	ast.Inspect(root, func(n ast.Node) bool {
		if n == nil {
			return true
		}
		return fn(n)
	})
}

// Collect walks root in pre-order and returns every node for which match
// returns true. Traversal never prunes on a match; match decides inclusion
// only, not whether to recurse into the matched node's children.
func Collect(root ast.Node, match func(ast.Node) bool) []ast.Node {
	var out []ast.Node
	Visit(root, func(n ast.Node) bool {
		if match(n) {
			out = append(out, n)
		}
		return true
	})
	return out
}

// CollectAs walks root in pre-order and returns every node assignable to T,
// in traversal order. It is the generic counterpart to Collect for callers
// that want concretely typed results (e.g. CollectAs[*ast.ClassDecl](program)
// instead of a []ast.Node the caller type-switches over itself).
func CollectAs[T ast.Node](root ast.Node) []T {
	var out []T
	Visit(root, func(n ast.Node) bool {
		if t, ok := n.(T); ok {
			out = append(out, t)
		}
		return true
	})
	return out
}

// Find walks root in pre-order and returns the first node for which match
// returns true, or nil if none matches. Unlike Collect, Find stops the walk
// as soon as a match is found.
func Find(root ast.Node, match func(ast.Node) bool) ast.Node {
	var found ast.Node
	ast.Inspect(root, func(n ast.Node) bool {
		if found != nil {
			return false
		}
		if n == nil {
			return true
		}
		if match(n) {
			found = n
			return false
		}
		return true
	})
	return found
}
