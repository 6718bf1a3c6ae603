package lint

import (
	"fmt"

	"surgelint/internal/ast"
	"surgelint/internal/diag"
	"surgelint/internal/fix"
)

// IntOpOne flags integer comparisons that shift a bound by one instead
// of using the strict operator: `x >= y + 1` is `x > y`.
type IntOpOne struct{}

func (IntOpOne) Meta() Meta {
	return Meta{
		ID:        "int_op_one",
		Summary:   "off-by-one arithmetic in an integer comparison",
		Severity:  diag.SevWarning,
		DefaultOn: true,
		HasFix:    true,
	}
}

func (r IntOpOne) CheckExpr(ctx *Context, id ast.ExprID) {
	b := ctx.Builder
	bin, ok := b.Exprs.Binary(id)
	if !ok {
		return
	}

	// Four shapes, all equivalences over integers:
	//   x >= y + 1  ->  x > y
	//   x - 1 >= y  ->  x > y
	//   x <= y - 1  ->  x < y
	//   x + 1 <= y  ->  x < y
	var lhs, rhs ast.ExprID
	var strict ast.ExprBinaryOp
	switch bin.Op {
	case ast.ExprBinaryGreaterEq:
		if base, ok := plusOne(ctx, bin.Right); ok {
			lhs, rhs, strict = bin.Left, base, ast.ExprBinaryGreater
		} else if base, ok := minusOne(ctx, bin.Left); ok {
			lhs, rhs, strict = base, bin.Right, ast.ExprBinaryGreater
		}
	case ast.ExprBinaryLessEq:
		if base, ok := minusOne(ctx, bin.Right); ok {
			lhs, rhs, strict = bin.Left, base, ast.ExprBinaryLess
		} else if base, ok := plusOne(ctx, bin.Left); ok {
			lhs, rhs, strict = base, bin.Right, ast.ExprBinaryLess
		}
	}
	if !lhs.IsValid() || !rhs.IsValid() {
		return
	}
	if !ctx.Facts.TypeOf(lhs).IsInteger() || !ctx.Facts.TypeOf(rhs).IsInteger() {
		return
	}
	if HasSideEffects(b, lhs) || HasSideEffects(b, rhs) {
		return
	}

	expr := b.Exprs.Get(id)
	simplified := fmt.Sprintf("%s %s %s", ctx.ExprText(lhs), strict, ctx.ExprText(rhs))
	ctx.Report(expr.Span, "unnecessary arithmetic in integer comparison, use `%s`", simplified).
		WithFix(fix.ReplaceSpan("replace with "+simplified, expr.Span, simplified, ctx.Text(expr.Span),
			fix.WithID("strict_comparison"), fix.Preferred())).
		Emit()
}

// plusOne matches `e + 1` or `1 + e` and returns e.
func plusOne(ctx *Context, id ast.ExprID) (ast.ExprID, bool) {
	bin, ok := ctx.Builder.Exprs.Binary(unwrapGroups(ctx.Builder, id))
	if !ok || bin.Op != ast.ExprBinaryAdd {
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

// minusOne matches `e - 1` and returns e.
func minusOne(ctx *Context, id ast.ExprID) (ast.ExprID, bool) {
	bin, ok := ctx.Builder.Exprs.Binary(unwrapGroups(ctx.Builder, id))
	if !ok || bin.Op != ast.ExprBinarySub {
		return ast.NoExprID, false
	}
	if c, ok := ctx.Facts.ConstInt(bin.Right); ok && c == 1 {
		return bin.Left, true
	}
	return ast.NoExprID, false
}
