package ast

import (
	"surgelint/internal/source"
)

// StmtKind enumerates statement kinds.
type StmtKind uint8

const (
	StmtBlock StmtKind = iota
	StmtLet
	StmtExpr
	StmtReturn
	StmtBreak
	StmtContinue
	StmtIf
	StmtWhile
	StmtLoop
	StmtForIn
)

// Stmt represents a statement node in the AST. Attrs carries the
// attributes written directly before the statement; the suppression
// resolver reads them during traversal.
type Stmt struct {
	Kind    StmtKind
	Span    source.Span
	Payload PayloadID
	Attrs   []AttrID
}

// Payload side tables.

type StmtBlockData struct {
	Stmts []StmtID
}

type StmtLetData struct {
	Name     string
	NameSpan source.Span
	Mut      bool
	Type     TypeRef
	Value    ExprID // NoExprID when the declaration has no initializer
}

type StmtExprData struct {
	Expr ExprID
}

type StmtReturnData struct {
	Value ExprID // NoExprID for bare `return;`
}

type StmtIfData struct {
	Cond ExprID
	Then StmtID // always a block
	Else StmtID // NoStmtID, a block, or a nested if
	// CondSpan covers the condition as written, including optional
	// surrounding parens, for precise fixes.
	CondSpan source.Span
}

type StmtWhileData struct {
	Cond ExprID
	Body StmtID
}

type StmtLoopData struct {
	Body StmtID
	// KwSpan covers the `loop` keyword for loop-to-while rewrites.
	KwSpan source.Span
}

type StmtForInData struct {
	Var     string
	VarSpan source.Span
	Iter    ExprID
	Body    StmtID
}

// TypeRef is a textual type annotation. The linted subset does not
// build a type tree; sema interprets well-known spellings.
type TypeRef struct {
	Name string
	Span source.Span
}

// IsValid reports whether the annotation is present.
func (t TypeRef) IsValid() bool { return t.Name != "" }
