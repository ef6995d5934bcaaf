// Package position implements the Position Locator: given an LSP 0-based
// (line, character), find every AST node whose source range contains it and
// pick the tightest enclosing one.
package position

import (
	"log"

	"github.com/cwbudde/go-dws/pkg/ast"
	"github.com/cwbudde/go-dws/pkg/token"

	"github.com/aster-lang/aster-ls/internal/astwalk"
)

// Position is an LSP 0-based (line, character) pair.
type Position struct {
	Line      int
	Character int
}

// ToAST converts an LSP 0-based position to the compiler's 1-based
// (line, column) convention.
func (p Position) ToAST() token.Position {
	return token.Position{Line: p.Line + 1, Column: p.Character + 1}
}

// FromAST converts a compiler 1-based (line, column) position to LSP's
// 0-based (line, character) convention.
func FromAST(p token.Position) Position {
	return Position{Line: p.Line - 1, Character: p.Column - 1}
}

// FindSymbol collects every node in root whose source range is a single-line
// span containing p. Nodes with no source reference, multi-line spans, or a
// degenerate span (begin after end) are excluded; the degenerate case is
// logged rather than treated as an error.
func FindSymbol(root ast.Node, p Position) []ast.Node {
	target := p.ToAST()

	return astwalk.Collect(root, func(n ast.Node) bool {
		begin, end := n.Pos(), n.End()
		if begin == (token.Position{}) && end == (token.Position{}) {
			return false
		}
		if begin.Line > end.Line {
			log.Printf("position: degenerate span on %T: begin=%v end=%v", n, begin, end)
			return false
		}
		if begin.Line != end.Line {
			return false
		}
		if begin.Line != target.Line {
			return false
		}
		return begin.Column <= target.Column && target.Column <= end.Column
	})
}

// TightestMatch picks the node with maximal begin.Column and minimal
// end.Column from matches — the most nested span. Ties break on the first
// node encountered in matches' order (which FindSymbol returns in traversal
// order). Returns nil if matches is empty.
func TightestMatch(matches []ast.Node) ast.Node {
	var best ast.Node
	var bestBegin, bestEnd token.Position

	for _, n := range matches {
		begin, end := n.Pos(), n.End()
		if best == nil {
			best, bestBegin, bestEnd = n, begin, end
			continue
		}
		if isTighter(begin, end, bestBegin, bestEnd) {
			best, bestBegin, bestEnd = n, begin, end
		}
	}
	return best
}

// isTighter reports whether span (begin, end) nests more tightly than
// (otherBegin, otherEnd): a strictly greater begin.Column, or an equal
// begin.Column with a strictly smaller end.Column.
func isTighter(begin, end, otherBegin, otherEnd token.Position) bool {
	if begin.Column != otherBegin.Column {
		return begin.Column > otherBegin.Column
	}
	return end.Column < otherEnd.Column
}
