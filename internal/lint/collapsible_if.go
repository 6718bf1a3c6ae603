package lint

import (
	"fmt"

	"surgelint/internal/ast"
	"surgelint/internal/diag"
	"surgelint/internal/fix"
)

// CollapsibleIf flags `if a { if b { ... } }` with nothing else in the
// outer body and suggests `if a && b { ... }`.
type CollapsibleIf struct{}

func (CollapsibleIf) Meta() Meta {
	return Meta{
		ID:        "collapsible_if",
		Summary:   "nested if that can merge into the outer condition",
		Severity:  diag.SevWarning,
		DefaultOn: true,
		HasFix:    true,
	}
}

func (CollapsibleIf) CheckStmt(ctx *Context, id ast.StmtID) {
	b := ctx.Builder
	outer := b.Stmts.If(id)
	if outer == nil || outer.Else.IsValid() {
		return
	}
	innerID, ok := soleStmt(b, outer.Then)
	if !ok {
		return
	}
	inner := b.Stmts.If(innerID)
	if inner == nil || inner.Else.IsValid() {
		return
	}
	// An attribute on the inner if would be lost by the merge.
	if len(b.Stmts.Get(innerID).Attrs) != 0 {
		return
	}

	stmt := b.Stmts.Get(id)
	merged := fmt.Sprintf("if %s && %s %s",
		andOperandText(ctx, outer.Cond),
		andOperandText(ctx, inner.Cond),
		ctx.Text(b.Stmts.Get(inner.Then).Span))
	ctx.Report(stmt.Span, "nested if can be collapsed into the outer condition").
		WithFix(fix.ReplaceSpan("merge the conditions with &&", stmt.Span, merged, ctx.Text(stmt.Span),
			fix.WithID("collapse_if"), fix.Preferred())).
		Emit()
}

// CollapsibleIfElse flags `else { if c { ... } }` and suggests
// `else if c { ... }`.
type CollapsibleIfElse struct{}

func (CollapsibleIfElse) Meta() Meta {
	return Meta{
		ID:        "collapsible_if_else",
		Summary:   "else block holding a single if",
		Severity:  diag.SevWarning,
		DefaultOn: true,
		HasFix:    true,
	}
}

func (CollapsibleIfElse) CheckStmt(ctx *Context, id ast.StmtID) {
	b := ctx.Builder
	data := b.Stmts.If(id)
	if data == nil || !data.Else.IsValid() {
		return
	}
	// `else if` chains parse the nested if directly, not wrapped in a
	// block, so a block here is the written-out form.
	elseBlock := b.Stmts.Block(data.Else)
	if elseBlock == nil {
		return
	}
	innerID, ok := soleStmt(b, data.Else)
	if !ok {
		return
	}
	inner := b.Stmts.Get(innerID)
	if inner == nil || inner.Kind != ast.StmtIf || len(inner.Attrs) != 0 {
		return
	}

	blockSpan := b.Stmts.Get(data.Else).Span
	ctx.Report(blockSpan, "else block holds a single if, use `else if`").
		WithFix(fix.ReplaceSpan("flatten to else if", blockSpan, ctx.Text(inner.Span), ctx.Text(blockSpan),
			fix.WithID("collapse_else_if"), fix.Preferred())).
		Emit()
}

// IfsSameCond flags consecutive ifs over the same side-effect-free
// condition. Diagnostic only: the right merge depends on intent.
type IfsSameCond struct{}

func (IfsSameCond) Meta() Meta {
	return Meta{
		ID:        "ifs_same_cond",
		Summary:   "consecutive ifs with the same condition",
		Severity:  diag.SevWarning,
		DefaultOn: true,
		HasFix:    false,
	}
}

func (IfsSameCond) CheckStmt(ctx *Context, id ast.StmtID) {
	b := ctx.Builder
	block := b.Stmts.Block(id)
	if block == nil {
		return
	}
	for i := 0; i+1 < len(block.Stmts); i++ {
		first := b.Stmts.If(block.Stmts[i])
		second := b.Stmts.If(block.Stmts[i+1])
		if first == nil || second == nil {
			continue
		}
		if !StructuralEq(b, first.Cond, second.Cond) {
			continue
		}
		if HasSideEffects(b, first.Cond) {
			continue
		}
		ctx.Report(second.CondSpan, "consecutive if with the same condition").
			WithNote(first.CondSpan, "first checked here").
			Emit()
	}
}

// soleStmt returns the only statement of a block, if the block holds
// exactly one.
func soleStmt(b *ast.Builder, blockID ast.StmtID) (ast.StmtID, bool) {
	block := b.Stmts.Block(blockID)
	if block == nil || len(block.Stmts) != 1 {
		return ast.NoStmtID, false
	}
	return block.Stmts[0], true
}
