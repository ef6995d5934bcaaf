package compilecontext

import "testing"

func TestBuildCombinedBufferConcatenatesWithBlankSeparator(t *testing.T) {
	entries := []*sourceEntry{
		{uri: "a", text: "var x: Integer;\n"},
		{uri: "b", text: "var y: Integer;\n"},
	}

	combined, spans := buildCombinedBuffer(entries)

	want := "var x: Integer;\n\nvar y: Integer;\n"
	if combined != want {
		t.Fatalf("got %q want %q", combined, want)
	}

	if len(spans) != 2 {
		t.Fatalf("expected 2 spans, got %d", len(spans))
	}
	if spans[0].uri != "a" || spans[0].startLine != 1 || spans[0].lineCount != 1 {
		t.Fatalf("unexpected span for a: %+v", spans[0])
	}
	if spans[1].uri != "b" || spans[1].startLine != 3 || spans[1].lineCount != 1 {
		t.Fatalf("unexpected span for b: %+v", spans[1])
	}
}

func TestBuildCombinedBufferMultiLineFile(t *testing.T) {
	entries := []*sourceEntry{
		{uri: "a", text: "line1\nline2\nline3\n"},
		{uri: "b", text: "only\n"},
	}

	_, spans := buildCombinedBuffer(entries)

	if spans[0].startLine != 1 || spans[0].lineCount != 3 {
		t.Fatalf("unexpected span for a: %+v", spans[0])
	}
	if spans[1].startLine != 5 || spans[1].lineCount != 1 {
		t.Fatalf("unexpected span for b: %+v", spans[1])
	}
}

func TestBuildCombinedBufferAddsMissingTrailingNewline(t *testing.T) {
	entries := []*sourceEntry{
		{uri: "a", text: "var x: Integer;"},
	}

	combined, spans := buildCombinedBuffer(entries)

	if combined != "var x: Integer;\n" {
		t.Fatalf("expected a trailing newline to be added, got %q", combined)
	}
	if spans[0].lineCount != 1 {
		t.Fatalf("expected 1 line, got %d", spans[0].lineCount)
	}
}

func TestToLocalMapsCombinedLineBackToFile(t *testing.T) {
	spans := []fileSpan{
		{uri: "a", startLine: 1, lineCount: 3},
		{uri: "b", startLine: 5, lineCount: 2},
	}

	uri, local, ok := toLocal(spans, 6)
	if !ok || uri != "b" || local != 2 {
		t.Fatalf("got uri=%q local=%d ok=%v", uri, local, ok)
	}

	uri, local, ok = toLocal(spans, 2)
	if !ok || uri != "a" || local != 2 {
		t.Fatalf("got uri=%q local=%d ok=%v", uri, local, ok)
	}
}

func TestToLocalSeparatorLineIsNotOk(t *testing.T) {
	spans := []fileSpan{
		{uri: "a", startLine: 1, lineCount: 1},
		{uri: "b", startLine: 3, lineCount: 1},
	}

	if _, _, ok := toLocal(spans, 2); ok {
		t.Fatal("expected the separator line to map to nothing")
	}
}

func TestToLocalPastEndIsNotOk(t *testing.T) {
	spans := []fileSpan{{uri: "a", startLine: 1, lineCount: 1}}

	if _, _, ok := toLocal(spans, 99); ok {
		t.Fatal("expected an out-of-range line to map to nothing")
	}
}
