package compilecontext

import (
	"testing"

	"github.com/aster-lang/aster-ls/internal/reporter"
)

func TestExtractPositionBracketLine(t *testing.T) {
	line, col, ok := extractPosition("unexpected token [line 12]")
	if !ok || line != 12 || col != 0 {
		t.Fatalf("got line=%d col=%d ok=%v", line, col, ok)
	}
}

func TestExtractPositionLineCol(t *testing.T) {
	line, col, ok := extractPosition("Error at line 3, col 7: unexpected token")
	if !ok || line != 3 || col != 7 {
		t.Fatalf("got line=%d col=%d ok=%v", line, col, ok)
	}
}

func TestExtractPositionParenPair(t *testing.T) {
	line, col, ok := extractPosition("unexpected token (4,9)")
	if !ok || line != 4 || col != 9 {
		t.Fatalf("got line=%d col=%d ok=%v", line, col, ok)
	}
}

func TestExtractPositionLineOnly(t *testing.T) {
	line, col, ok := extractPosition("undeclared identifier on line 8")
	if !ok || line != 8 || col != 0 {
		t.Fatalf("got line=%d col=%d ok=%v", line, col, ok)
	}
}

func TestExtractPositionNoMatch(t *testing.T) {
	if _, _, ok := extractPosition("totally unpositioned message"); ok {
		t.Fatal("expected no position to be extracted")
	}
}

func TestCleanMessageStripsBracketLine(t *testing.T) {
	got := cleanMessage("unexpected token [line 12]")
	if got != "unexpected token" {
		t.Fatalf("got %q", got)
	}
}

func TestCleanMessageStripsLineColPrefix(t *testing.T) {
	got := cleanMessage("line 3, col 7: unexpected token")
	if got != "unexpected token" {
		t.Fatalf("got %q", got)
	}
}

func TestRecordCompileErrorsMapsToOwningFile(t *testing.T) {
	spans := []fileSpan{
		{uri: "a", startLine: 1, lineCount: 3},
		{uri: "b", startLine: 5, lineCount: 2},
	}
	r := reporter.New()

	recordCompileErrors(r, []string{"unexpected token [line 6]"}, spans)

	entries := r.ForFile("b")
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry for file b, got %d", len(entries))
	}
	if entries[0].Span.Begin.Line != 2 {
		t.Fatalf("expected local line 2, got %d", entries[0].Span.Begin.Line)
	}
}

func TestRecordCompileErrorsFallsBackToFirstFileWhenUnpositioned(t *testing.T) {
	spans := []fileSpan{{uri: "only", startLine: 1, lineCount: 1}}
	r := reporter.New()

	recordCompileErrors(r, []string{"something went wrong"}, spans)

	entries := r.ForFile("only")
	if len(entries) != 1 {
		t.Fatalf("expected the unpositioned error to land on the only file, got %d", len(entries))
	}
}
