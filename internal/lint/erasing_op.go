package lint

import (
	"surgelint/internal/ast"
	"surgelint/internal/diag"
	"surgelint/internal/fix"
)

// ErasingOp flags operations whose result is always zero regardless of
// the other operand: `x * 0`, `0 / x`, `x & 0`.
type ErasingOp struct{}

func (ErasingOp) Meta() Meta {
	return Meta{
		ID:        "erasing_op",
		Summary:   "operation that erases its result to zero",
		Severity:  diag.SevWarning,
		DefaultOn: true,
		HasFix:    true,
	}
}

func (ErasingOp) CheckExpr(ctx *Context, id ast.ExprID) {
	b := ctx.Builder
	bin, ok := b.Exprs.Binary(id)
	if !ok {
		return
	}

	leftIsZero := constZero(ctx, bin.Left)
	rightIsZero := constZero(ctx, bin.Right)

	applicability := diag.FixAlwaysSafe
	erases := false
	switch bin.Op {
	case ast.ExprBinaryMul, ast.ExprBinaryBitAnd:
		erases = leftIsZero || rightIsZero
	case ast.ExprBinaryDiv:
		// 0 / x erases, but x may be zero at runtime and trap; the
		// rewrite would silence that trap.
		erases = leftIsZero
		applicability = diag.FixSafeWithHeuristics
	}
	if !erases {
		return
	}

	other := bin.Left
	if leftIsZero {
		other = bin.Right
	}
	if HasSideEffects(b, other) {
		return
	}

	expr := b.Exprs.Get(id)
	ctx.Report(expr.Span, "this operation erases the result, it always evaluates to 0").
		WithFix(fix.ReplaceSpan("replace with 0", expr.Span, "0", ctx.Text(expr.Span),
			fix.WithID("erase_to_zero"), fix.Preferred(), fix.WithApplicability(applicability))).
		Emit()
}

func constZero(ctx *Context, id ast.ExprID) bool {
	c, ok := ctx.Facts.ConstInt(id)
	return ok && c == 0
}
