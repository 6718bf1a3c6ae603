package lint

import (
	"surgelint/internal/ast"
	"surgelint/internal/diag"
	"surgelint/internal/fix"
)

// EqOp flags binary operations whose operands are structurally
// identical (`a == a`, `x - x`, `v & v`). The result is a constant or
// the operand itself, which usually indicates a typo.
type EqOp struct{}

func (EqOp) Meta() Meta {
	return Meta{
		ID:        "eq_op",
		Summary:   "identical operands on both sides of a binary operator",
		Severity:  diag.SevWarning,
		DefaultOn: true,
		HasFix:    true,
	}
}

func (EqOp) CheckExpr(ctx *Context, id ast.ExprID) {
	b := ctx.Builder
	bin, ok := b.Exprs.Binary(id)
	if !ok {
		return
	}

	var replacement string
	applicability := diag.FixAlwaysSafe
	switch bin.Op {
	case ast.ExprBinaryEq, ast.ExprBinaryLessEq, ast.ExprBinaryGreaterEq:
		replacement = "true"
	case ast.ExprBinaryNotEq, ast.ExprBinaryLess, ast.ExprBinaryGreater:
		replacement = "false"
	case ast.ExprBinarySub, ast.ExprBinaryMod, ast.ExprBinaryBitXor:
		replacement = "0"
	case ast.ExprBinaryDiv:
		// x / x is 1 except when x is zero, which would have trapped
		// anyway, but the rewrite hides the trap.
		replacement = "1"
		applicability = diag.FixSafeWithHeuristics
	case ast.ExprBinaryBitAnd, ast.ExprBinaryBitOr,
		ast.ExprBinaryLogicalAnd, ast.ExprBinaryLogicalOr:
		replacement = ""
	default:
		return
	}

	if !StructuralEq(b, bin.Left, bin.Right) {
		return
	}
	if HasSideEffects(b, bin.Left) {
		return
	}

	expr := b.Exprs.Get(id)
	if replacement == "" {
		// Idempotent operators collapse to the operand itself.
		replacement = ctx.ExprText(bin.Left)
	}
	ctx.Report(expr.Span, "identical operands on both sides of `%s`, this always evaluates to `%s`",
		bin.Op, replacement).
		WithFix(fix.ReplaceSpan("replace with "+replacement, expr.Span, replacement, ctx.Text(expr.Span),
			fix.WithID("collapse_eq_op"), fix.Preferred(), fix.WithApplicability(applicability))).
		Emit()
}

// RedundantOp flags arithmetic that cannot change its operand:
// `x + 0`, `x - 0`, `x * 1`, `x / 1` and the commuted spellings.
type RedundantOp struct{}

func (RedundantOp) Meta() Meta {
	return Meta{
		ID:        "redundant_op",
		Summary:   "arithmetic with a neutral element",
		Severity:  diag.SevWarning,
		DefaultOn: true,
		HasFix:    true,
	}
}

func (RedundantOp) CheckExpr(ctx *Context, id ast.ExprID) {
	b := ctx.Builder
	bin, ok := b.Exprs.Binary(id)
	if !ok {
		return
	}

	var neutral int64
	commutes := false
	switch bin.Op {
	case ast.ExprBinaryAdd:
		neutral, commutes = 0, true
	case ast.ExprBinarySub:
		neutral = 0
	case ast.ExprBinaryMul:
		neutral, commutes = 1, true
	case ast.ExprBinaryDiv:
		neutral = 1
	default:
		return
	}

	keep := ast.NoExprID
	if c, ok := ctx.Facts.ConstInt(bin.Right); ok && c == neutral {
		keep = bin.Left
	} else if c, ok := ctx.Facts.ConstInt(bin.Left); ok && c == neutral && commutes {
		keep = bin.Right
	}
	if !keep.IsValid() {
		return
	}

	expr := b.Exprs.Get(id)
	kept := ctx.ExprText(keep)
	ctx.Report(expr.Span, "this operation has no effect, `%s` is unchanged", kept).
		WithFix(fix.ReplaceSpan("replace with "+kept, expr.Span, kept, ctx.Text(expr.Span),
			fix.WithID("drop_neutral_op"), fix.Preferred())).
		Emit()
}
