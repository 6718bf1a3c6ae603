package lint

import (
	"surgelint/internal/ast"
	"surgelint/internal/diag"
	"surgelint/internal/fix"
)

// DoubleParens flags directly nested parentheses: `((x))`.
type DoubleParens struct{}

func (DoubleParens) Meta() Meta {
	return Meta{
		ID:        "double_parens",
		Summary:   "unnecessary nested parentheses",
		Severity:  diag.SevWarning,
		DefaultOn: true,
		HasFix:    true,
	}
}

func (DoubleParens) CheckExpr(ctx *Context, id ast.ExprID) {
	b := ctx.Builder
	group, ok := b.Exprs.Group(id)
	if !ok {
		return
	}
	if _, nested := b.Exprs.Group(group.Inner); !nested {
		return
	}

	expr := b.Exprs.Get(id)
	replacement := "(" + ctx.ExprText(unwrapGroups(b, group.Inner)) + ")"
	ctx.Report(expr.Span, "unnecessary double parentheses, consider removing them").
		WithFix(fix.ReplaceSpan("remove the extra parentheses", expr.Span, replacement, ctx.Text(expr.Span),
			fix.WithID("strip_parens"), fix.Preferred())).
		Emit()
}
