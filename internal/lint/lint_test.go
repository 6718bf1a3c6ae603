package lint

import (
	"sort"
	"testing"

	"surgelint/internal/ast"
	"surgelint/internal/diag"
	"surgelint/internal/parser"
	"surgelint/internal/sema"
	"surgelint/internal/source"
)

// lintSource parses and lints one snippet, returning the collected bag.
func lintSource(t *testing.T, src string, opts Options) *diag.Bag {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.sg", []byte(src))
	file := fs.Get(id)

	parseBag := diag.NewBag(64)
	builder := ast.NewBuilder(ast.Hints{})
	res := parser.ParseFile(file, builder, parser.Options{Reporter: diag.BagReporter{Bag: parseBag}})
	if parseBag.HasErrors() {
		t.Fatalf("parse errors in test input: %v", parseBag.Items())
	}

	facts := sema.Analyze(builder, res.File)
	bag := diag.NewBag(64)
	if opts.Reporter == nil {
		opts.Reporter = diag.BagReporter{Bag: bag}
	}
	Run(file, builder, res.File, facts, opts)
	bag.Sort()
	return bag
}

// codesOf lists the distinct rule IDs present in a bag, sorted.
func codesOf(bag *diag.Bag) []string {
	seen := make(map[string]bool)
	for _, d := range bag.Items() {
		seen[string(d.Code)] = true
	}
	out := make([]string, 0, len(seen))
	for code := range seen {
		out = append(out, code)
	}
	sort.Strings(out)
	return out
}

// hasCode reports whether the bag contains a diagnostic with the code.
func hasCode(bag *diag.Bag, code diag.Code) bool {
	for _, d := range bag.Items() {
		if d.Code == code {
			return true
		}
	}
	return false
}

// firstFix returns the first fix attached to a diagnostic with code.
func firstFix(t *testing.T, bag *diag.Bag, code diag.Code) diag.Fix {
	t.Helper()
	for _, d := range bag.Items() {
		if d.Code == code && len(d.Fixes) > 0 {
			return d.Fixes[0]
		}
	}
	t.Fatalf("no fix found for %s in %v", code, bag.Items())
	return diag.Fix{}
}

// applyFix applies a fix's edits to src and returns the new text.
// Edits are applied back to front so earlier spans stay valid.
func applyFix(t *testing.T, src string, fix diag.Fix) string {
	t.Helper()
	edits := append([]diag.TextEdit(nil), fix.Edits...)
	sort.Slice(edits, func(i, j int) bool { return edits[i].Span.Start > edits[j].Span.Start })
	out := []byte(src)
	for _, e := range edits {
		if int(e.Span.End) > len(out) {
			t.Fatalf("edit out of bounds: %v", e.Span)
		}
		if e.OldText != "" && string(out[e.Span.Start:e.Span.End]) != e.OldText {
			t.Fatalf("OldText mismatch at %v: %q", e.Span, out[e.Span.Start:e.Span.End])
		}
		out = append(out[:e.Span.Start], append([]byte(e.NewText), out[e.Span.End:]...)...)
	}
	return string(out)
}

// checkFixed applies the first fix for code and asserts that the rule
// no longer fires on the result.
func checkFixed(t *testing.T, src string, code diag.Code, want string) {
	t.Helper()
	bag := lintSource(t, src, Options{})
	if !hasCode(bag, code) {
		t.Fatalf("%s did not fire on %q; got %v", code, src, bag.Items())
	}
	fixed := applyFix(t, src, firstFix(t, bag, code))
	if fixed != want {
		t.Fatalf("fixed text = %q, want %q", fixed, want)
	}
	if hasCode(lintSource(t, fixed, Options{}), code) {
		t.Fatalf("%s still fires after its own fix: %q", code, fixed)
	}
}
