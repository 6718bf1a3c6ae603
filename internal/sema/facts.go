package sema

import (
	"strconv"
	"strings"

	"surgelint/internal/ast"
)

// Facts holds per-file inference results. It is built once after
// parsing and queried read-only by the lint rules.
type Facts struct {
	builder *ast.Builder

	exprTypes map[ast.ExprID]Type
	fnRets    map[string]Type
}

// Analyze infers types for every expression reachable from file.
func Analyze(builder *ast.Builder, fileID ast.FileID) *Facts {
	f := &Facts{
		builder:   builder,
		exprTypes: make(map[ast.ExprID]Type),
		fnRets:    make(map[string]Type),
	}

	file := builder.Files.Get(fileID)
	if file == nil {
		return f
	}

	// First pass: function signatures, so calls resolve across items.
	for _, itemID := range file.Items {
		if fn, ok := builder.Items.Fn(itemID); ok {
			f.fnRets[fn.Name] = TypeFromName(fn.Ret.Name)
		}
	}

	for _, itemID := range file.Items {
		fn, ok := builder.Items.Fn(itemID)
		if !ok {
			continue
		}
		scope := newScope(nil)
		for _, param := range fn.Params {
			scope.bind(param.Name, TypeFromName(param.Type.Name))
		}
		f.inferStmt(fn.Body, scope)
	}
	return f
}

// TypeOf returns the inferred type of an expression, TypeUnknown when
// inference could not decide.
func (f *Facts) TypeOf(id ast.ExprID) Type {
	return f.exprTypes[id]
}

// scope is one lexical binding level.
type scope struct {
	parent   *scope
	bindings map[string]Type
}

func newScope(parent *scope) *scope {
	return &scope{parent: parent, bindings: make(map[string]Type)}
}

func (s *scope) bind(name string, t Type) {
	s.bindings[name] = t
}

func (s *scope) lookup(name string) Type {
	for cur := s; cur != nil; cur = cur.parent {
		if t, ok := cur.bindings[name]; ok {
			return t
		}
	}
	return Type{}
}

func (f *Facts) inferStmt(id ast.StmtID, sc *scope) {
	stmt := f.builder.Stmts.Get(id)
	if stmt == nil {
		return
	}
	switch stmt.Kind {
	case ast.StmtBlock:
		inner := newScope(sc)
		for _, child := range f.builder.Stmts.Block(id).Stmts {
			f.inferStmt(child, inner)
		}
	case ast.StmtLet:
		data := f.builder.Stmts.Let(id)
		t := Type{}
		if data.Value.IsValid() {
			t = f.inferExpr(data.Value, sc)
		}
		if data.Type.IsValid() {
			t = TypeFromName(data.Type.Name)
		}
		sc.bind(data.Name, t)
	case ast.StmtExpr:
		f.inferExpr(f.builder.Stmts.Expr(id).Expr, sc)
	case ast.StmtReturn:
		if value := f.builder.Stmts.Return(id).Value; value.IsValid() {
			f.inferExpr(value, sc)
		}
	case ast.StmtIf:
		data := f.builder.Stmts.If(id)
		f.inferExpr(data.Cond, sc)
		f.inferStmt(data.Then, sc)
		if data.Else.IsValid() {
			f.inferStmt(data.Else, sc)
		}
	case ast.StmtWhile:
		data := f.builder.Stmts.While(id)
		f.inferExpr(data.Cond, sc)
		f.inferStmt(data.Body, sc)
	case ast.StmtLoop:
		f.inferStmt(f.builder.Stmts.Loop(id).Body, sc)
	case ast.StmtForIn:
		data := f.builder.Stmts.ForIn(id)
		f.inferExpr(data.Iter, sc)
		inner := newScope(sc)
		inner.bind(data.Var, Type{})
		f.inferStmt(data.Body, inner)
	}
}

func (f *Facts) inferExpr(id ast.ExprID, sc *scope) Type {
	expr := f.builder.Exprs.Get(id)
	if expr == nil {
		return Type{}
	}
	var t Type
	switch expr.Kind {
	case ast.ExprIdent:
		data, _ := f.builder.Exprs.Ident(id)
		t = sc.lookup(data.Name)
	case ast.ExprLit:
		data, _ := f.builder.Exprs.Literal(id)
		switch data.Kind {
		case ast.ExprLitInt:
			t = Type{Kind: TypeInt}
		case ast.ExprLitBool:
			t = Type{Kind: TypeBool}
		case ast.ExprLitString:
			t = Type{Kind: TypeString}
		}
	case ast.ExprUnary:
		data, _ := f.builder.Exprs.Unary(id)
		operand := f.inferExpr(data.Operand, sc)
		if data.Op == ast.ExprUnaryNot {
			t = Type{Kind: TypeBool}
		} else {
			t = operand
		}
	case ast.ExprBinary:
		data, _ := f.builder.Exprs.Binary(id)
		left := f.inferExpr(data.Left, sc)
		right := f.inferExpr(data.Right, sc)
		switch {
		case data.Op.IsComparison(),
			data.Op == ast.ExprBinaryLogicalAnd, data.Op == ast.ExprBinaryLogicalOr:
			t = Type{Kind: TypeBool}
		case data.Op.IsAssign():
			t = Type{Kind: TypeUnit}
		case left.Kind != TypeUnknown:
			t = left
		default:
			t = right
		}
	case ast.ExprGroup:
		data, _ := f.builder.Exprs.Group(id)
		t = f.inferExpr(data.Inner, sc)
	case ast.ExprCall:
		data, _ := f.builder.Exprs.Call(id)
		f.inferExpr(data.Callee, sc)
		for _, arg := range data.Args {
			f.inferExpr(arg, sc)
		}
		t = f.inferCall(data)
	case ast.ExprMember:
		data, _ := f.builder.Exprs.Member(id)
		f.inferExpr(data.Recv, sc)
	case ast.ExprIndex:
		data, _ := f.builder.Exprs.Index(id)
		f.inferExpr(data.Recv, sc)
		f.inferExpr(data.Index, sc)
	case ast.ExprCompare:
		data, _ := f.builder.Exprs.Compare(id)
		f.inferExpr(data.Subject, sc)
		for _, arm := range data.Arms {
			armScope := newScope(sc)
			f.bindPattern(arm.Pattern, armScope)
			if arm.Guard.IsValid() {
				f.inferExpr(arm.Guard, armScope)
			}
			if arm.Result.IsValid() {
				rt := f.inferExpr(arm.Result, armScope)
				if t.Kind == TypeUnknown {
					t = rt
				}
			}
			if arm.Body.IsValid() {
				f.inferStmt(arm.Body, armScope)
			}
		}
	}
	f.exprTypes[id] = t
	return t
}

// inferCall resolves direct calls against known constructors and the
// file's own functions. Method calls stay unknown except for clone,
// which preserves the receiver type.
func (f *Facts) inferCall(data *ast.ExprCallData) Type {
	if ident, ok := f.builder.Exprs.Ident(data.Callee); ok {
		switch ident.Name {
		case "Some", "None":
			return Type{Kind: TypeNamed, Name: "Option"}
		case "Ok", "Err":
			return Type{Kind: TypeNamed, Name: "Result"}
		}
		if ret, ok := f.fnRets[ident.Name]; ok {
			return ret
		}
		return Type{}
	}
	if member, ok := f.builder.Exprs.Member(data.Callee); ok {
		if member.Name == "clone" {
			return f.TypeOf(member.Recv)
		}
	}
	return Type{}
}

// bindPattern introduces pattern bindings for one compare arm.
// `Some(v)` binds v; a bare identifier pattern binds nothing because it
// matches a constant.
func (f *Facts) bindPattern(id ast.ExprID, sc *scope) {
	if !id.IsValid() {
		return
	}
	if call, ok := f.builder.Exprs.Call(id); ok {
		for _, arg := range call.Args {
			if ident, ok := f.builder.Exprs.Ident(arg); ok {
				sc.bind(ident.Name, Type{})
			}
		}
	}
}

// ConstInt evaluates an integer constant expression. It folds literals,
// negation, grouping and the basic arithmetic operators.
func (f *Facts) ConstInt(id ast.ExprID) (int64, bool) {
	expr := f.builder.Exprs.Get(id)
	if expr == nil {
		return 0, false
	}
	switch expr.Kind {
	case ast.ExprLit:
		data, _ := f.builder.Exprs.Literal(id)
		if data.Kind != ast.ExprLitInt {
			return 0, false
		}
		text := strings.ReplaceAll(data.Text, "_", "")
		v, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return 0, false
		}
		return v, true
	case ast.ExprUnary:
		data, _ := f.builder.Exprs.Unary(id)
		if data.Op != ast.ExprUnaryNeg {
			return 0, false
		}
		v, ok := f.ConstInt(data.Operand)
		return -v, ok
	case ast.ExprGroup:
		data, _ := f.builder.Exprs.Group(id)
		return f.ConstInt(data.Inner)
	case ast.ExprBinary:
		data, _ := f.builder.Exprs.Binary(id)
		left, okL := f.ConstInt(data.Left)
		right, okR := f.ConstInt(data.Right)
		if !okL || !okR {
			return 0, false
		}
		switch data.Op {
		case ast.ExprBinaryAdd:
			return left + right, true
		case ast.ExprBinarySub:
			return left - right, true
		case ast.ExprBinaryMul:
			return left * right, true
		default:
			return 0, false
		}
	}
	return 0, false
}

// ConstBool evaluates a boolean literal, through grouping.
func (f *Facts) ConstBool(id ast.ExprID) (bool, bool) {
	expr := f.builder.Exprs.Get(id)
	if expr == nil {
		return false, false
	}
	switch expr.Kind {
	case ast.ExprLit:
		data, _ := f.builder.Exprs.Literal(id)
		if data.Kind != ast.ExprLitBool {
			return false, false
		}
		return data.Text == "true", true
	case ast.ExprGroup:
		data, _ := f.builder.Exprs.Group(id)
		return f.ConstBool(data.Inner)
	}
	return false, false
}
