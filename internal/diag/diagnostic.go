package diag

import (
	"surgelint/internal/source"
)

// Code is the stable identifier of the rule (or internal check) that
// produced a diagnostic, e.g. "double_comparison". Codes are plain
// tokens so they can be referenced from @allow attributes and from
// surgelint.toml verbatim.
type Code string

func (c Code) String() string {
	return string(c)
}

// Note is a secondary span with extra context for a diagnostic.
type Note struct {
	Span source.Span
	Msg  string
}

// Diagnostic is one finding produced by a rule or pipeline phase.
// Diagnostics are value objects: created once, never mutated after
// being handed to a Reporter.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
	Fixes    []Fix
}

// New constructs a plain diagnostic without notes or fixes.
func New(sev Severity, code Code, primary source.Span, msg string) Diagnostic {
	return Diagnostic{
		Severity: sev,
		Code:     code,
		Primary:  primary,
		Message:  msg,
	}
}

// WithNote returns a copy with the note appended.
func (d Diagnostic) WithNote(sp source.Span, msg string) Diagnostic {
	d.Notes = append(d.Notes, Note{Span: sp, Msg: msg})
	return d
}

// WithFix returns a copy with a fix appended.
func (d Diagnostic) WithFix(fix Fix) Diagnostic {
	d.Fixes = append(d.Fixes, fix)
	return d
}
