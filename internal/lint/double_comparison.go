package lint

import (
	"fmt"

	"surgelint/internal/ast"
	"surgelint/internal/diag"
	"surgelint/internal/fix"
)

// DoubleComparison flags two comparisons of the same operands joined
// by && or ||, e.g. `a == b || a < b`, and rewrites them to a single
// comparison when one exists.
type DoubleComparison struct{}

func (DoubleComparison) Meta() Meta {
	return Meta{
		ID:        "double_comparison",
		Summary:   "two comparisons of the same operands that fold into one",
		Severity:  diag.SevWarning,
		DefaultOn: true,
		HasFix:    true,
	}
}

func (r DoubleComparison) CheckExpr(ctx *Context, id ast.ExprID) {
	b := ctx.Builder
	bin, ok := b.Exprs.Binary(id)
	if !ok {
		return
	}
	isAnd := bin.Op == ast.ExprBinaryLogicalAnd
	if !isAnd && bin.Op != ast.ExprBinaryLogicalOr {
		return
	}

	left, okL := b.Exprs.Binary(unwrapGroups(b, bin.Left))
	right, okR := b.Exprs.Binary(unwrapGroups(b, bin.Right))
	if !okL || !okR || !left.Op.IsComparison() || !right.Op.IsComparison() {
		return
	}
	if HasSideEffects(b, bin.Left) || HasSideEffects(b, bin.Right) {
		return
	}

	rightOp, operandsMatch := matchOperands(b, left, right)
	if !operandsMatch {
		if isAnd {
			r.checkImpossibleRange(ctx, id, left, right)
		}
		return
	}

	cls, ok := Classify(left.Op, rightOp, isAnd)
	if !ok {
		return
	}

	expr := b.Exprs.Get(id)
	lhsText := ctx.ExprText(left.Left)
	rhsText := ctx.ExprText(left.Right)

	switch cls.Outcome {
	case OutcomeContradictory:
		ctx.Report(expr.Span, "this double comparison is contradictory and always false").Emit()
	case OutcomeTautological:
		ctx.Report(expr.Span, "this double comparison is always true").Emit()
	case OutcomeRedundant:
		simplified := fmt.Sprintf("%s %s %s", lhsText, cls.Op, rhsText)
		ctx.Report(expr.Span, "redundant double comparison, `%s` already covers it", simplified).
			WithFix(fix.ReplaceSpan("replace with "+simplified, expr.Span, simplified, ctx.Text(expr.Span),
				fix.WithID("simplify_comparison"), fix.Preferred())).
			Emit()
	case OutcomeSimplifiable:
		simplified := fmt.Sprintf("%s %s %s", lhsText, cls.Op, rhsText)
		ctx.Report(expr.Span, "this double comparison can be simplified to `%s`", simplified).
			WithFix(fix.ReplaceSpan("replace with "+simplified, expr.Span, simplified, ctx.Text(expr.Span),
				fix.WithID("simplify_comparison"), fix.Preferred())).
			Emit()
	}
}

// matchOperands aligns the second comparison's operands with the
// first's. When the second is written mirrored (`a < b && b > a`) its
// operator is flipped so both compare in the same direction.
func matchOperands(b *ast.Builder, left, right *ast.ExprBinaryData) (ast.ExprBinaryOp, bool) {
	if StructuralEq(b, left.Left, right.Left) && StructuralEq(b, left.Right, right.Right) {
		return right.Op, true
	}
	if StructuralEq(b, left.Left, right.Right) && StructuralEq(b, left.Right, right.Left) {
		return mirror(right.Op), true
	}
	return 0, false
}

// checkImpossibleRange catches conjunctions that pin one operand into
// an empty interval, e.g. `x < 2 && x > 5`.
func (DoubleComparison) checkImpossibleRange(ctx *Context, id ast.ExprID, left, right *ast.ExprBinaryData) {
	b := ctx.Builder
	lvar, lo1, hi1, ok1 := constBounds(ctx, left)
	rvar, lo2, hi2, ok2 := constBounds(ctx, right)
	if !ok1 || !ok2 || !StructuralEq(b, lvar, rvar) {
		return
	}
	lo := lo1
	if lo2 > lo {
		lo = lo2
	}
	hi := hi1
	if hi2 < hi {
		hi = hi2
	}
	if lo > hi {
		expr := b.Exprs.Get(id)
		ctx.Report(expr.Span, "impossible condition, always false").Emit()
	}
}

// constBounds normalizes `x <op> C` or the mirrored spelling `C <op> x`
// into the pinned operand and the inclusive interval of its values that
// satisfy the comparison.
func constBounds(ctx *Context, cmp *ast.ExprBinaryData) (v ast.ExprID, lo, hi int64, ok bool) {
	const (
		minInt = -1 << 63
		maxInt = 1<<63 - 1
	)
	op := cmp.Op
	v = cmp.Left
	c, isConst := ctx.Facts.ConstInt(cmp.Right)
	if !isConst {
		// Literal-first spelling: `200 > x` pins x from above.
		c, isConst = ctx.Facts.ConstInt(cmp.Left)
		if !isConst {
			return ast.NoExprID, 0, 0, false
		}
		v = cmp.Right
		op = mirror(op)
	}
	switch op {
	case ast.ExprBinaryLess:
		return v, minInt, c - 1, true
	case ast.ExprBinaryLessEq:
		return v, minInt, c, true
	case ast.ExprBinaryEq:
		return v, c, c, true
	case ast.ExprBinaryGreater:
		return v, c + 1, maxInt, true
	case ast.ExprBinaryGreaterEq:
		return v, c, maxInt, true
	default:
		return ast.NoExprID, 0, 0, false
	}
}
