// Package diag defines the diagnostic model shared by all phases of
// the linter.
//
// Diagnostic is the central record: severity, rule code, message,
// primary span, optional notes and optional fixes. Producers emit
// through a Reporter so that storage and formatting stay decoupled;
// BagReporter aggregates into a Bag, which supports deterministic
// sorting, deduplication and merging across files.
//
// Fix models an automatic correction as a set of disjoint TextEdits
// with an applicability level. The package performs no IO and no
// formatting: rendering lives in internal/diagfmt, edit application in
// internal/fix.
package diag
