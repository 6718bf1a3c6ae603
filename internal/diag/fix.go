package diag

import (
	"surgelint/internal/source"
)

// FixApplicability is the confidence level of an automatic fix.
type FixApplicability uint8

const (
	// FixAlwaysSafe marks fixes that preserve behavior for every input.
	FixAlwaysSafe FixApplicability = iota
	// FixSafeWithHeuristics marks fixes that rely on facts which may be
	// incomplete (inferred types, copyability).
	FixSafeWithHeuristics
	// FixManualReview marks fixes a human should confirm before applying.
	FixManualReview
)

func (a FixApplicability) String() string {
	switch a {
	case FixAlwaysSafe:
		return "always-safe"
	case FixSafeWithHeuristics:
		return "safe-with-heuristics"
	case FixManualReview:
		return "manual-review"
	}
	return "unknown"
}

// TextEdit replaces the text covered by Span with NewText. OldText is
// an optional guard: when non-empty, the fix engine validates that the
// current file content still matches before applying the edit.
type TextEdit struct {
	Span    source.Span
	NewText string
	OldText string
}

// Fix is a concrete, span-addressed rewrite that eliminates the
// diagnosed issue. Edits within one Fix must be pairwise disjoint.
type Fix struct {
	ID            string
	Title         string
	Applicability FixApplicability
	IsPreferred   bool
	Edits         []TextEdit
}

// Valid reports whether the fix's own edits are structurally sound:
// non-empty, each edit inside bounds of container, and pairwise
// non-overlapping. A fix that fails this check is treated as "no fix
// produced"; the diagnostic itself still stands.
func (f Fix) Valid(container source.Span) bool {
	if len(f.Edits) == 0 {
		return false
	}
	for i, e := range f.Edits {
		if !container.Contains(e.Span) {
			return false
		}
		for _, other := range f.Edits[i+1:] {
			if e.Span.Overlaps(other.Span) {
				return false
			}
		}
	}
	return true
}
