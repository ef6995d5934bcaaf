package compilecontext

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/aster-lang/aster-ls/internal/reporter"
)

// These patterns mirror the compiler's own error-message conventions: a
// trailing "[line X]" marker, an explicit "line X, col Y" phrase, a bare
// "(X,Y)" pair, or just a "line X" mention with no column at all.
var (
	diagBracketLine = regexp.MustCompile(`\[line (\d+)\]`)
	diagLineCol     = regexp.MustCompile(`line (\d+)[,:]\s*col(?:umn)?\s*(\d+)`)
	diagParenPair   = regexp.MustCompile(`\((\d+),(\d+)\)`)
	diagLineOnly    = regexp.MustCompile(`line (\d+)`)

	diagBracketLineTrim = regexp.MustCompile(`\s*\[line \d+\]\s*$`)
	diagParenPairTrim   = regexp.MustCompile(`\s*\(\d+,\d+\)\s*`)
	diagLineColPrefix   = regexp.MustCompile(`^line \d+[,:]\s*col(?:umn)?\s*\d+:\s*`)
)

// extractPosition pulls a (line, column) pair out of a compiler error
// message, in combined-buffer coordinates. column is 0 when the message
// carries no column information.
func extractPosition(msg string) (line, column int, ok bool) {
	if m := diagBracketLine.FindStringSubmatch(msg); len(m) > 1 {
		line, _ = strconv.Atoi(m[1])
		return line, 0, true
	}
	if m := diagLineCol.FindStringSubmatch(msg); len(m) > 2 {
		line, _ = strconv.Atoi(m[1])
		column, _ = strconv.Atoi(m[2])
		return line, column, true
	}
	if m := diagParenPair.FindStringSubmatch(msg); len(m) > 2 {
		line, _ = strconv.Atoi(m[1])
		column, _ = strconv.Atoi(m[2])
		return line, column, true
	}
	if m := diagLineOnly.FindStringSubmatch(msg); len(m) > 1 {
		line, _ = strconv.Atoi(m[1])
		return line, 0, true
	}
	return 0, 0, false
}

// cleanMessage strips the position markers extractPosition consumed, so the
// text the Reporter stores doesn't repeat a position the caller already has
// structured access to.
func cleanMessage(msg string) string {
	msg = diagBracketLineTrim.ReplaceAllString(msg, "")
	msg = diagParenPairTrim.ReplaceAllString(msg, " ")
	msg = diagLineColPrefix.ReplaceAllString(msg, "")
	return strings.TrimSpace(msg)
}

// recordCompileErrors translates each raw compiler error message into a
// Reporter entry, mapping its combined-buffer line back to the (file,
// localLine) it came from via spans. A message whose line falls outside
// every registered file's span (or carries no position at all) is recorded
// against the first registered file, rather than dropped, since every
// compile error belongs to exactly one of the files that produced it.
func recordCompileErrors(r *reporter.Reporter, messages []string, spans []fileSpan) {
	fallbackURI := ""
	for _, s := range spans {
		if s.uri != usingsURI {
			fallbackURI = s.uri
			break
		}
	}

	for _, msg := range messages {
		line, column, ok := extractPosition(msg)
		uri := fallbackURI
		localLine := 1
		localColumn := column

		if ok {
			if foundURI, foundLine, found := toLocal(spans, line); found && foundURI != usingsURI {
				uri = foundURI
				localLine = foundLine
			}
		}
		if uri == "" {
			continue
		}

		pos := reporter.Position{Line: localLine, Column: localColumn}
		r.AddError(uri, reporter.Span{Begin: pos, End: pos}, cleanMessage(msg))
	}
}
