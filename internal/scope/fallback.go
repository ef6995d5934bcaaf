package scope

import (
	"strings"
	"unicode"

	"github.com/cwbudde/go-dws/pkg/ast"

	"github.com/aster-lang/aster-ls/internal/position"
)

// Token extracts the identifier run immediately preceding and touching the
// cursor, scanning backwards while runes are alphanumeric or underscore.
// Returns the empty string if the character immediately before the cursor
// isn't part of an identifier.
func Token(lineText string, character int) string {
	if character > len(lineText) {
		character = len(lineText)
	}

	end := character
	start := end
	for start > 0 && isIdentRune(rune(lineText[start-1])) {
		start--
	}
	return lineText[start:end]
}

func isIdentRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// FindToken runs the Token Fallback Finder: given the text of the cursor's
// line and the cursor position, extract the trailing token, locate the
// scopes containing the cursor, walk each scope's parent chain to the
// root, and return the tightest-ranged node bound to the token across all
// candidate scopes. Returns nil if the token is empty or unbound anywhere
// in the chain.
func FindToken(root *Scope, lineText string, p position.Position) ast.Node {
	tok := Token(lineText, p.Character)
	if tok == "" {
		return nil
	}

	scopes := FindScope(root, p)

	var candidates []ast.Node
	seen := make(map[*Scope]bool)
	for _, s := range scopes {
		for cur := s; cur != nil; cur = cur.Parent {
			if seen[cur] {
				continue
			}
			seen[cur] = true
			if sym, ok := cur.Symbols[tok]; ok {
				candidates = append(candidates, sym.Node)
			}
		}
	}

	if len(candidates) == 0 {
		return nil
	}
	return position.TightestMatch(candidates)
}

// LineText extracts the line at (0-based) lineIndex from the full document
// text, without its trailing newline.
func LineText(text string, lineIndex int) string {
	lines := strings.Split(text, "\n")
	if lineIndex < 0 || lineIndex >= len(lines) {
		return ""
	}
	return strings.TrimSuffix(lines[lineIndex], "\r")
}
