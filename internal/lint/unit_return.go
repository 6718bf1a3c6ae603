package lint

import (
	"surgelint/internal/ast"
	"surgelint/internal/diag"
	"surgelint/internal/fix"
)

// UnitReturnType flags an explicit `-> unit` annotation, which is the
// default and only adds noise.
type UnitReturnType struct{}

func (UnitReturnType) Meta() Meta {
	return Meta{
		ID:        "unit_return_type",
		Summary:   "explicitly declared unit return type",
		Severity:  diag.SevWarning,
		DefaultOn: true,
		HasFix:    true,
	}
}

func (UnitReturnType) CheckItem(ctx *Context, id ast.ItemID) {
	fn, ok := ctx.Builder.Items.Fn(id)
	if !ok || fn.Ret.Name != "unit" {
		return
	}
	ctx.Report(fn.ArrowSpan, "unnecessary declared unit return type").
		WithFix(fix.DeleteSpan("remove the annotation", fn.ArrowSpan, ctx.Text(fn.ArrowSpan),
			fix.WithID("drop_unit_return"), fix.Preferred())).
		Emit()
}

// RedundantEnumBrackets flags unit variants written as calls:
// `None()` instead of `None`.
type RedundantEnumBrackets struct{}

// unit variants of the built-in enums.
var unitVariants = map[string]bool{
	"None": true,
}

func (RedundantEnumBrackets) Meta() Meta {
	return Meta{
		ID:        "redundant_brackets_in_enum_call",
		Summary:   "redundant parentheses on a unit enum variant",
		Severity:  diag.SevWarning,
		DefaultOn: true,
		HasFix:    true,
	}
}

func (RedundantEnumBrackets) CheckExpr(ctx *Context, id ast.ExprID) {
	b := ctx.Builder
	call, ok := b.Exprs.Call(id)
	if !ok || len(call.Args) != 0 {
		return
	}
	ident, ok := b.Exprs.Ident(call.Callee)
	if !ok || !unitVariants[ident.Name] {
		return
	}

	expr := b.Exprs.Get(id)
	ctx.Report(expr.Span, "redundant parentheses in enum call, `%s` takes no payload", ident.Name).
		WithFix(fix.ReplaceSpan("replace with "+ident.Name, expr.Span, ident.Name, ctx.Text(expr.Span),
			fix.WithID("drop_enum_brackets"), fix.Preferred())).
		Emit()
}
