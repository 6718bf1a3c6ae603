package lint

import (
	"surgelint/internal/ast"
)

// StructuralEq reports whether two expressions are the same tree:
// same shape, same operators, same identifier and literal spellings.
// Grouping parens are transparent, so `(a)` equals `a`.
func StructuralEq(b *ast.Builder, x, y ast.ExprID) bool {
	x = unwrapGroups(b, x)
	y = unwrapGroups(b, y)

	ex := b.Exprs.Get(x)
	ey := b.Exprs.Get(y)
	if ex == nil || ey == nil {
		return ex == ey
	}
	if ex.Kind != ey.Kind {
		return false
	}

	switch ex.Kind {
	case ast.ExprIdent:
		dx, _ := b.Exprs.Ident(x)
		dy, _ := b.Exprs.Ident(y)
		return dx.Name == dy.Name
	case ast.ExprLit:
		dx, _ := b.Exprs.Literal(x)
		dy, _ := b.Exprs.Literal(y)
		return dx.Kind == dy.Kind && dx.Text == dy.Text
	case ast.ExprUnary:
		dx, _ := b.Exprs.Unary(x)
		dy, _ := b.Exprs.Unary(y)
		return dx.Op == dy.Op && StructuralEq(b, dx.Operand, dy.Operand)
	case ast.ExprBinary:
		dx, _ := b.Exprs.Binary(x)
		dy, _ := b.Exprs.Binary(y)
		return dx.Op == dy.Op &&
			StructuralEq(b, dx.Left, dy.Left) &&
			StructuralEq(b, dx.Right, dy.Right)
	case ast.ExprCall:
		dx, _ := b.Exprs.Call(x)
		dy, _ := b.Exprs.Call(y)
		if len(dx.Args) != len(dy.Args) || !StructuralEq(b, dx.Callee, dy.Callee) {
			return false
		}
		for i := range dx.Args {
			if !StructuralEq(b, dx.Args[i], dy.Args[i]) {
				return false
			}
		}
		return true
	case ast.ExprMember:
		dx, _ := b.Exprs.Member(x)
		dy, _ := b.Exprs.Member(y)
		return dx.Name == dy.Name && StructuralEq(b, dx.Recv, dy.Recv)
	case ast.ExprIndex:
		dx, _ := b.Exprs.Index(x)
		dy, _ := b.Exprs.Index(y)
		return StructuralEq(b, dx.Recv, dy.Recv) && StructuralEq(b, dx.Index, dy.Index)
	case ast.ExprWildcard:
		return true
	default:
		// Compare expressions never count as structurally equal; they
		// are too big for operand-level reasoning.
		return false
	}
}

// unwrapGroups strips redundant parens from an expression ID.
func unwrapGroups(b *ast.Builder, id ast.ExprID) ast.ExprID {
	for {
		group, ok := b.Exprs.Group(id)
		if !ok {
			return id
		}
		id = group.Inner
	}
}

// HasSideEffects reports whether evaluating the expression could do
// more than read values. Calls and assignments count; duplicating or
// deleting them in a rewrite would change behavior.
func HasSideEffects(b *ast.Builder, id ast.ExprID) bool {
	expr := b.Exprs.Get(id)
	if expr == nil {
		return false
	}
	switch expr.Kind {
	case ast.ExprIdent, ast.ExprLit, ast.ExprWildcard:
		return false
	case ast.ExprUnary:
		data, _ := b.Exprs.Unary(id)
		return HasSideEffects(b, data.Operand)
	case ast.ExprBinary:
		data, _ := b.Exprs.Binary(id)
		if data.Op.IsAssign() {
			return true
		}
		return HasSideEffects(b, data.Left) || HasSideEffects(b, data.Right)
	case ast.ExprGroup:
		data, _ := b.Exprs.Group(id)
		return HasSideEffects(b, data.Inner)
	case ast.ExprMember:
		data, _ := b.Exprs.Member(id)
		return HasSideEffects(b, data.Recv)
	case ast.ExprIndex:
		data, _ := b.Exprs.Index(id)
		return HasSideEffects(b, data.Recv) || HasSideEffects(b, data.Index)
	default:
		// Calls and compare expressions may run arbitrary code.
		return true
	}
}

// ReferencesName reports whether the expression mentions the
// identifier name anywhere. Unknown expression kinds count as a
// mention, so rewrites that hoist an expression out of a binding's
// scope stay on the safe side.
func ReferencesName(b *ast.Builder, id ast.ExprID, name string) bool {
	expr := b.Exprs.Get(id)
	if expr == nil {
		return false
	}
	switch expr.Kind {
	case ast.ExprIdent:
		data, _ := b.Exprs.Ident(id)
		return data.Name == name
	case ast.ExprLit, ast.ExprWildcard:
		return false
	case ast.ExprUnary:
		data, _ := b.Exprs.Unary(id)
		return ReferencesName(b, data.Operand, name)
	case ast.ExprBinary:
		data, _ := b.Exprs.Binary(id)
		return ReferencesName(b, data.Left, name) || ReferencesName(b, data.Right, name)
	case ast.ExprGroup:
		data, _ := b.Exprs.Group(id)
		return ReferencesName(b, data.Inner, name)
	case ast.ExprMember:
		// The member name lives in the field namespace, only the
		// receiver can mention a binding.
		data, _ := b.Exprs.Member(id)
		return ReferencesName(b, data.Recv, name)
	case ast.ExprIndex:
		data, _ := b.Exprs.Index(id)
		return ReferencesName(b, data.Recv, name) || ReferencesName(b, data.Index, name)
	case ast.ExprCall:
		data, _ := b.Exprs.Call(id)
		if ReferencesName(b, data.Callee, name) {
			return true
		}
		for _, arg := range data.Args {
			if ReferencesName(b, arg, name) {
				return true
			}
		}
		return false
	default:
		return true
	}
}
