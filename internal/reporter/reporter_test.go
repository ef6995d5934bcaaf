package reporter

import "testing"

func TestForFileFiltersByFile(t *testing.T) {
	r := New()
	r.AddError("a.aster", Span{Begin: Position{1, 1}, End: Position{1, 3}}, "bad thing")
	r.AddWarning("b.aster", Span{Begin: Position{2, 1}, End: Position{2, 3}}, "maybe bad")
	r.AddError("b.aster", Span{Begin: Position{3, 1}, End: Position{3, 3}}, "also bad")

	entries := r.ForFile("b.aster")
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries for b.aster, got %d", len(entries))
	}
	for _, e := range entries {
		if e.File != "b.aster" {
			t.Fatalf("unexpected file leaked into filtered result: %s", e.File)
		}
	}
}

func TestResetClearsBothSequences(t *testing.T) {
	r := New()
	r.AddError("a.aster", Span{}, "err")
	r.AddWarning("a.aster", Span{}, "warn")

	if !r.HasErrors() {
		t.Fatal("expected HasErrors true before reset")
	}

	r.Reset()

	if r.HasErrors() {
		t.Fatal("expected HasErrors false after reset")
	}
	if len(r.Errors()) != 0 || len(r.Warnings()) != 0 {
		t.Fatal("expected empty sequences after reset")
	}
}

func TestHasErrorsIgnoresWarnings(t *testing.T) {
	r := New()
	r.AddWarning("a.aster", Span{}, "just a warning")
	if r.HasErrors() {
		t.Fatal("warnings must not count as errors")
	}
}
