package compilecontext

import "strings"

// fileSpan records where one source file's text landed inside the combined
// buffer handed to the compiler: its first line in combined coordinates and
// how many lines it contributed. Lines are 1-based, matching the compiler's
// own convention, so offset arithmetic stays in one coordinate system end
// to end.
type fileSpan struct {
	uri       string
	startLine int
	lineCount int
}

// buildCombinedBuffer concatenates entries in order, separated by a blank
// line, and records the line span each one occupies in the result. The
// separating blank line keeps one file's trailing statement from fusing
// with the next file's leading one when the compiler's grammar is
// whitespace-sensitive at statement boundaries.
func buildCombinedBuffer(entries []*sourceEntry) (string, []fileSpan) {
	var b strings.Builder
	spans := make([]fileSpan, 0, len(entries))
	line := 1

	for i, e := range entries {
		if i > 0 {
			b.WriteByte('\n')
			line++
		}
		b.WriteString(e.text)

		lineCount := strings.Count(e.text, "\n")
		if !strings.HasSuffix(e.text, "\n") {
			b.WriteByte('\n')
			lineCount++
		}
		spans = append(spans, fileSpan{uri: e.uri, startLine: line, lineCount: lineCount})
		line += lineCount
	}

	return b.String(), spans
}

// toLocal maps a 1-based combined-buffer line to the (uri, localLine) it
// came from. Returns ok=false for a line that falls in a separator, or past
// the end of the registered set entirely.
func toLocal(spans []fileSpan, combinedLine int) (uri string, localLine int, ok bool) {
	for _, s := range spans {
		if combinedLine >= s.startLine && combinedLine < s.startLine+s.lineCount {
			return s.uri, combinedLine - s.startLine + 1, true
		}
	}
	return "", 0, false
}
