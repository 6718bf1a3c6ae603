package lint

import (
	"surgelint/internal/ast"
	"surgelint/internal/diag"
	"surgelint/internal/fix"
)

// BitwiseForParity flags `x & 1` used inside an equality to test
// parity and rewrites it to `x % 2`, which states the intent.
type BitwiseForParity struct{}

func (BitwiseForParity) Meta() Meta {
	return Meta{
		ID:        "bitwise_for_parity_check",
		Summary:   "bitwise AND with 1 used as a parity check",
		Severity:  diag.SevWarning,
		DefaultOn: true,
		HasFix:    true,
	}
}

func (BitwiseForParity) CheckExpr(ctx *Context, id ast.ExprID) {
	b := ctx.Builder
	bin, ok := b.Exprs.Binary(id)
	if !ok || (bin.Op != ast.ExprBinaryEq && bin.Op != ast.ExprBinaryNotEq) {
		return
	}

	// One side is `x & 1`, the other a 0 or 1 literal.
	andSide, constSide := bin.Left, bin.Right
	masked, ok := maskWithOne(ctx, andSide)
	if !ok {
		andSide, constSide = bin.Right, bin.Left
		masked, ok = maskWithOne(ctx, andSide)
	}
	if !ok {
		return
	}
	if c, isConst := ctx.Facts.ConstInt(constSide); !isConst || (c != 0 && c != 1) {
		return
	}
	if !ctx.Facts.TypeOf(masked).IsInteger() {
		return
	}

	andExpr := b.Exprs.Get(unwrapGroups(b, andSide))
	replacement := atomText(ctx, masked) + " % 2"
	ctx.Report(andExpr.Span, "bitwise AND used for parity check, consider `%s`", replacement).
		WithFix(fix.ReplaceSpan("replace with "+replacement, andExpr.Span, replacement, ctx.Text(andExpr.Span),
			fix.WithID("parity_with_mod"), fix.Preferred())).
		Emit()
}

// maskWithOne matches `e & 1` or `1 & e` and returns e.
func maskWithOne(ctx *Context, id ast.ExprID) (ast.ExprID, bool) {
	bin, ok := ctx.Builder.Exprs.Binary(unwrapGroups(ctx.Builder, id))
	if !ok || bin.Op != ast.ExprBinaryBitAnd {
		return ast.NoExprID, false
	}
	if c, ok := ctx.Facts.ConstInt(bin.Right); ok && c == 1 {
		return bin.Left, true
	}
	if c, ok := ctx.Facts.ConstInt(bin.Left); ok && c == 1 {
		return bin.Right, true
	}
	return ast.NoExprID, false
}
