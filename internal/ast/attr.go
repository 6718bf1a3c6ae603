package ast

import (
	"surgelint/internal/source"
)

// AttrArg is one decoded attribute argument. String literal arguments
// are stored unquoted, so `@allow("eq_op")` and `@allow(eq_op)` decode
// to the same text.
type AttrArg struct {
	Text string
	Span source.Span
}

// Attr describes a user attribute of the form `@name(args...)`.
type Attr struct {
	Name string
	Args []AttrArg
	Span source.Span
}
