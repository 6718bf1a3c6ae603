package lint

import (
	"surgelint/internal/ast"
)

// atomText renders an expression for splicing into a tighter context
// (operand of `!`, receiver of a call). Anything that is not already
// atomic gets wrapped in parens.
func atomText(ctx *Context, id ast.ExprID) string {
	text := ctx.ExprText(id)
	expr := ctx.Builder.Exprs.Get(id)
	if expr == nil {
		return text
	}
	switch expr.Kind {
	case ast.ExprIdent, ast.ExprLit, ast.ExprGroup, ast.ExprCall,
		ast.ExprMember, ast.ExprIndex, ast.ExprWildcard:
		return text
	default:
		return "(" + text + ")"
	}
}

// negatedText renders the logical negation of a condition. A top-level
// comparison flips its operator instead of growing a `!`.
func negatedText(ctx *Context, id ast.ExprID) string {
	b := ctx.Builder
	inner := unwrapGroups(b, id)
	if bin, ok := b.Exprs.Binary(inner); ok && bin.Op.IsComparison() {
		negated, _ := opOf(relAll &^ mustRel(bin.Op))
		return ctx.ExprText(bin.Left) + " " + negated.String() + " " + ctx.ExprText(bin.Right)
	}
	if un, ok := b.Exprs.Unary(inner); ok && un.Op == ast.ExprUnaryNot {
		return ctx.ExprText(un.Operand)
	}
	return "!" + atomText(ctx, inner)
}

func mustRel(op ast.ExprBinaryOp) RelSet {
	set, _ := relOf(op)
	return set
}

// andOperandText renders a condition as an `&&` operand,
// parenthesizing when the condition's own top operator binds looser.
func andOperandText(ctx *Context, id ast.ExprID) string {
	b := ctx.Builder
	inner := unwrapGroups(b, id)
	if bin, ok := b.Exprs.Binary(inner); ok {
		if bin.Op == ast.ExprBinaryLogicalOr || bin.Op.IsAssign() {
			return "(" + ctx.ExprText(inner) + ")"
		}
	}
	return ctx.ExprText(inner)
}
