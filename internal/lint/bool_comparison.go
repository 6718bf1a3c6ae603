package lint

import (
	"surgelint/internal/ast"
	"surgelint/internal/diag"
	"surgelint/internal/fix"
)

// BoolComparison flags comparisons against a boolean literal:
// `x == true` is `x`, `x != true` is `!x`.
type BoolComparison struct{}

func (BoolComparison) Meta() Meta {
	return Meta{
		ID:        "bool_comparison",
		Summary:   "comparison with a boolean literal",
		Severity:  diag.SevWarning,
		DefaultOn: true,
		HasFix:    true,
	}
}

func (BoolComparison) CheckExpr(ctx *Context, id ast.ExprID) {
	b := ctx.Builder
	bin, ok := b.Exprs.Binary(id)
	if !ok || (bin.Op != ast.ExprBinaryEq && bin.Op != ast.ExprBinaryNotEq) {
		return
	}

	other := ast.NoExprID
	var lit bool
	if v, ok := ctx.Facts.ConstBool(bin.Right); ok {
		other, lit = bin.Left, v
	} else if v, ok := ctx.Facts.ConstBool(bin.Left); ok {
		other, lit = bin.Right, v
	}
	if !other.IsValid() {
		return
	}
	// Both sides literal is constant folding territory, not this rule.
	if _, ok := ctx.Facts.ConstBool(other); ok {
		return
	}

	// `x == true` and `x != false` keep x; the other two negate it.
	keep := lit == (bin.Op == ast.ExprBinaryEq)
	var replacement string
	if keep {
		replacement = ctx.ExprText(other)
	} else {
		replacement = negatedText(ctx, other)
	}

	expr := b.Exprs.Get(id)
	ctx.Report(expr.Span, "unnecessary comparison with a boolean literal, use `%s`", replacement).
		WithFix(fix.ReplaceSpan("replace with "+replacement, expr.Span, replacement, ctx.Text(expr.Span),
			fix.WithID("drop_bool_comparison"), fix.Preferred())).
		Emit()
}
