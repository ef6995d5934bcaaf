// Package compilecontext owns the compiler front-end state: the registered
// source files, package dependencies, vapi search directories, auxiliary C
// sources, and the diagnostics Reporter, and drives check()/invalidate()
// the way the compiler front-end expects to be driven — wholesale,
// non-incrementally, on every edit.
//
// The compiler's own entry point (dwscript.Engine.Compile) takes a single
// source string and returns a single AST for it; it has no notion of a
// multi-file project. To still give the rest of the server one coherent
// program to query across every open file, check() concatenates every
// registered file's text into one combined buffer, compiles that, and
// keeps a line-span table translating combined-buffer coordinates back to
// (file, local line) for diagnostics. Position Locator / Scope Locator
// queries over the resulting *ast.Program therefore see combined-buffer
// coordinates; callers translate a file-local query position into combined
// coordinates with CombinedLine before walking the tree, and translate
// results back with LocalLine.
package compilecontext

import (
	"fmt"
	"strings"
	"sync"

	"github.com/cwbudde/go-dws/pkg/ast"
	"github.com/cwbudde/go-dws/pkg/dwscript"
	"github.com/fsnotify/fsnotify"

	"github.com/aster-lang/aster-ls/internal/reporter"
)

type sourceEntry struct {
	uri  string
	text string
}

// CompilationContext is created once per server process and cleared on
// shutdown. Every exported method except Reporter takes mu, so the vapidir watcher
// goroutine (watch.go) can call Invalidate while the server drives the rest
// from its event loop; Check holds mu for the whole compile, so the
// compiler front-end's non-reentrant Compile never runs twice at once.
type CompilationContext struct {
	mu sync.Mutex

	sources  []*sourceEntry
	indexOf  map[string]int
	packages []string
	packageSet map[string]bool
	vapidirs []string
	cSources []string
	usings   []string

	dirty    bool
	reporter *reporter.Reporter
	program  *ast.Program
	spans    []fileSpan

	watcher *fsnotify.Watcher

	newEngine func() (*dwscript.Engine, error)
}

// New creates an empty CompilationContext.
func New() *CompilationContext {
	return &CompilationContext{
		indexOf:    make(map[string]int),
		packageSet: make(map[string]bool),
		reporter:   reporter.New(),
		newEngine:  dwscript.New,
	}
}

// AddSourceFile registers uri with its current text, or updates the text of
// an already-registered uri. Either way, sets dirty.
func (c *CompilationContext) AddSourceFile(uri, text string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if i, ok := c.indexOf[uri]; ok {
		c.sources[i].text = text
	} else {
		c.indexOf[uri] = len(c.sources)
		c.sources = append(c.sources, &sourceEntry{uri: uri, text: text})
	}
	c.dirty = true
}

// AddPackage adds a named package dependency, deduplicated, and sets dirty.
func (c *CompilationContext) AddPackage(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.packageSet[name] {
		return
	}
	c.packageSet[name] = true
	c.packages = append(c.packages, name)
	c.dirty = true
}

// AddVapidir adds a search directory for package interface files.
func (c *CompilationContext) AddVapidir(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vapidirs = append(c.vapidirs, path)
	c.dirty = true
}

// AddCSourceFile registers an auxiliary C source used for cross-checks.
func (c *CompilationContext) AddCSourceFile(uri string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cSources = append(c.cSources, uri)
	c.dirty = true
}

// usingsURI is the synthetic, unregistered uri sourcesWithUsings gives the
// prepended "uses" header entry. No real source file is ever registered
// under it, so it never matches a Document Store lookup; CombinedLine/
// LocalLine simply never resolve to it, which is the point — it's
// compiler input with no editor buffer behind it.
const usingsURI = ""

// AddUsing registers a using-directive that Check prepends, as a single
// "uses ...;" header, ahead of every registered source in the combined
// buffer — the namespace becomes visible to every file being compiled,
// which is what "applied to every new source file" means once all sources
// compile as one unit (see buildCombinedBuffer's doc comment). Marks dirty:
// the next Check recompiles with the new header in effect immediately.
func (c *CompilationContext) AddUsing(namespace string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.usings = append(c.usings, namespace)
	c.dirty = true
}

// sourcesWithUsings returns c.sources as-is when no using-directives are
// registered, or with a synthetic header entry prepended listing all of
// them in one "uses a, b, c;" statement otherwise.
func (c *CompilationContext) sourcesWithUsings() []*sourceEntry {
	if len(c.usings) == 0 {
		return c.sources
	}

	header := &sourceEntry{
		uri:  usingsURI,
		text: "uses " + strings.Join(c.usings, ", ") + ";\n",
	}
	return append([]*sourceEntry{header}, c.sources...)
}

// Invalidate marks the context dirty without changing any registered
// input. didChange calls this after applying edits to the Document Store,
// since the edited text is re-pushed via AddSourceFile separately.
func (c *CompilationContext) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dirty = true
}

// Dirty reports whether a check() is pending.
func (c *CompilationContext) Dirty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dirty
}

// Check re-runs the compiler over the full registered set if dirty,
// resetting the Reporter first. A compile failure reported as
// *dwscript.CompileError is translated into Reporter entries rather than
// returned as an error — that's the expected, common case, and the
// Reporter is exactly how the rest of the server learns about it. Any
// other error from engine construction or Compile is a genuine failure of
// the front-end itself and is returned so the caller can log it; dirty is
// left set so a subsequent edit (or retry) gets another chance.
func (c *CompilationContext) Check() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.dirty {
		return nil
	}

	c.reporter.Reset()

	if len(c.sources) == 0 {
		c.program = nil
		c.spans = nil
		c.dirty = false
		return nil
	}

	engine, err := c.newEngine()
	if err != nil {
		return fmt.Errorf("creating compiler engine: %w", err)
	}

	combined, spans := buildCombinedBuffer(c.sourcesWithUsings())

	dwProgram, compileErr := engine.Compile(combined)
	if compileErr != nil {
		if ce, ok := compileErr.(*dwscript.CompileError); ok {
			recordCompileErrors(c.reporter, ce.Errors, spans)
		} else {
			return fmt.Errorf("compiling combined sources: %w", compileErr)
		}
	}

	if dwProgram != nil {
		c.program = dwProgram.AST()
	} else {
		c.program = nil
	}
	c.spans = spans
	c.dirty = false
	return nil
}

// Clear drops all registered state: sources, packages, vapidirs, C
// sources, usings, the last program, and the Reporter's contents. Also
// stops the vapidir watcher started by StartWatching, if any.
func (c *CompilationContext) Clear() {
	c.mu.Lock()
	watcher := c.watcher
	c.watcher = nil

	c.sources = nil
	c.indexOf = make(map[string]int)
	c.packages = nil
	c.packageSet = make(map[string]bool)
	c.vapidirs = nil
	c.cSources = nil
	c.usings = nil
	c.program = nil
	c.spans = nil
	c.dirty = false
	c.reporter.Reset()
	c.mu.Unlock()

	if watcher != nil {
		watcher.Close()
	}
}

// GetSourceFiles returns the URI of every registered source file, in
// registration order.
func (c *CompilationContext) GetSourceFiles() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]string, len(c.sources))
	for i, s := range c.sources {
		out[i] = s.uri
	}
	return out
}

// GetSourceFile returns the current text registered for uri.
func (c *CompilationContext) GetSourceFile(uri string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if i, ok := c.indexOf[uri]; ok {
		return c.sources[i].text, true
	}
	return "", false
}

// GetFilenames is an alias over the same registered set as GetSourceFiles,
// kept distinct because callers that only want names (e.g. a workspace
// summary log line) shouldn't have to know it's backed by the same slice.
func (c *CompilationContext) GetFilenames() []string {
	return c.GetSourceFiles()
}

// Program returns the last successfully-populated AST — a combined,
// cross-file tree spanning every registered source, in combined-buffer
// coordinates. It may be non-nil even after a failed Check: the compiler
// front-end is expected to populate a partial AST on error.
func (c *CompilationContext) Program() *ast.Program {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.program
}

// Reporter returns the Reporter accumulating the result of the last Check.
func (c *CompilationContext) Reporter() *reporter.Reporter {
	return c.reporter
}

// CombinedLine translates a 1-based local line within uri's own text to its
// 1-based line in the combined buffer produced by the last Check. ok is
// false if uri wasn't part of that combined buffer (e.g. it was added or
// edited since, and Check hasn't run again yet).
func (c *CompilationContext) CombinedLine(uri string, localLine int) (combinedLine int, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, s := range c.spans {
		if s.uri == uri {
			if localLine < 1 || localLine > s.lineCount {
				return 0, false
			}
			return s.startLine + localLine - 1, true
		}
	}
	return 0, false
}

// LocalLine translates a 1-based combined-buffer line back to the (uri,
// local line) it came from.
func (c *CompilationContext) LocalLine(combinedLine int) (uri string, localLine int, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return toLocal(c.spans, combinedLine)
}
