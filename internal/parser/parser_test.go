package parser

import (
	"testing"

	"surgelint/internal/ast"
	"surgelint/internal/diag"
	"surgelint/internal/source"
)

// parseSource parses one virtual file and returns the builder, the file
// node and the diagnostic bag.
func parseSource(t *testing.T, input string) (*ast.Builder, *ast.File, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.sg", []byte(input))
	bag := diag.NewBag(64)
	builder := ast.NewBuilder(ast.Hints{})
	res := ParseFile(fs.Get(id), builder, Options{Reporter: diag.BagReporter{Bag: bag}})
	file := builder.Files.Get(res.File)
	if file == nil {
		t.Fatalf("no file node produced")
	}
	return builder, file, bag
}

// fnBody returns the statements of the first function in the file.
func fnBody(t *testing.T, b *ast.Builder, file *ast.File) []ast.StmtID {
	t.Helper()
	if len(file.Items) == 0 {
		t.Fatalf("file has no items")
	}
	fn, ok := b.Items.Fn(file.Items[0])
	if !ok {
		t.Fatalf("first item is not a function")
	}
	block := b.Stmts.Block(fn.Body)
	if block == nil {
		t.Fatalf("function body is not a block")
	}
	return block.Stmts
}

// firstExpr unwraps the first statement of the first function as an
// expression statement.
func firstExpr(t *testing.T, b *ast.Builder, file *ast.File) ast.ExprID {
	t.Helper()
	stmts := fnBody(t, b, file)
	if len(stmts) == 0 {
		t.Fatalf("function body is empty")
	}
	data := b.Stmts.Expr(stmts[0])
	if data == nil {
		t.Fatalf("first statement is not an expression statement")
	}
	return data.Expr
}

func TestParser_FnItem(t *testing.T) {
	b, file, bag := parseSource(t, "fn add(a: int, b: int) -> int { return a + b; }")
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", bag.Items())
	}
	if len(file.Items) != 1 {
		t.Fatalf("got %d items, want 1", len(file.Items))
	}
	fn, ok := b.Items.Fn(file.Items[0])
	if !ok || fn.Name != "add" {
		t.Fatalf("fn = %+v", fn)
	}
	if len(fn.Params) != 2 || fn.Params[0].Name != "a" || fn.Params[1].Type.Name != "int" {
		t.Fatalf("params = %+v", fn.Params)
	}
	if fn.Ret.Name != "int" {
		t.Fatalf("ret = %+v", fn.Ret)
	}
}

func TestParser_Precedence(t *testing.T) {
	tests := []struct {
		name  string
		input string
		top   ast.ExprBinaryOp
		left  ast.ExprBinaryOp
	}{
		{"mul over add", "a + b * c;", ast.ExprBinaryAdd, 0},
		{"bitand over eq", "x & 1 == 1;", ast.ExprBinaryEq, ast.ExprBinaryBitAnd},
		{"and over or", "a == b || a > b && c;", ast.ExprBinaryLogicalOr, ast.ExprBinaryEq},
		{"cmp over and", "a < b && b < c;", ast.ExprBinaryLogicalAnd, ast.ExprBinaryLess},
		{"shift over bitand", "a << 2 & m;", ast.ExprBinaryBitAnd, ast.ExprBinaryShiftLeft},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, file, bag := parseSource(t, "fn f() { "+tt.input+" }")
			if bag.HasErrors() {
				t.Fatalf("unexpected errors: %v", bag.Items())
			}
			bin, ok := b.Exprs.Binary(firstExpr(t, b, file))
			if !ok {
				t.Fatalf("top expression is not binary")
			}
			if bin.Op != tt.top {
				t.Fatalf("top op = %v, want %v", bin.Op, tt.top)
			}
			if tt.left != 0 {
				left, ok := b.Exprs.Binary(bin.Left)
				if !ok || left.Op != tt.left {
					t.Fatalf("left op = %+v, want %v", left, tt.left)
				}
			}
		})
	}
}

func TestParser_AssignmentIsLoosest(t *testing.T) {
	b, file, bag := parseSource(t, "fn f() { x = a == b; }")
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", bag.Items())
	}
	bin, ok := b.Exprs.Binary(firstExpr(t, b, file))
	if !ok || bin.Op != ast.ExprBinaryAssign {
		t.Fatalf("top = %+v, want assignment", bin)
	}
	right, ok := b.Exprs.Binary(bin.Right)
	if !ok || right.Op != ast.ExprBinaryEq {
		t.Fatalf("rhs = %+v, want ==", right)
	}
}

func TestParser_CompoundAssign(t *testing.T) {
	b, file, bag := parseSource(t, "fn f() { i += 1; }")
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", bag.Items())
	}
	bin, ok := b.Exprs.Binary(firstExpr(t, b, file))
	if !ok || bin.Op != ast.ExprBinaryAddAssign {
		t.Fatalf("top = %+v, want +=", bin)
	}
}

func TestParser_PostfixChain(t *testing.T) {
	b, file, bag := parseSource(t, "fn f() { a.b(c)[0]; }")
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", bag.Items())
	}
	idx, ok := b.Exprs.Index(firstExpr(t, b, file))
	if !ok {
		t.Fatalf("top expression is not an index")
	}
	call, ok := b.Exprs.Call(idx.Recv)
	if !ok || len(call.Args) != 1 {
		t.Fatalf("call = %+v", call)
	}
	member, ok := b.Exprs.Member(call.Callee)
	if !ok || member.Name != "b" {
		t.Fatalf("member = %+v", member)
	}
}

func TestParser_Groups(t *testing.T) {
	b, file, bag := parseSource(t, "fn f() { ((x)); }")
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", bag.Items())
	}
	outer, ok := b.Exprs.Group(firstExpr(t, b, file))
	if !ok {
		t.Fatalf("top is not a group")
	}
	inner, ok := b.Exprs.Group(outer.Inner)
	if !ok {
		t.Fatalf("inner is not a group")
	}
	if _, ok := b.Exprs.Ident(inner.Inner); !ok {
		t.Fatalf("innermost is not an identifier")
	}
}

func TestParser_LetForms(t *testing.T) {
	b, file, bag := parseSource(t, "fn f() { let x = 1; let mut y: int = 2; let z: bool; }")
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", bag.Items())
	}
	stmts := fnBody(t, b, file)
	if len(stmts) != 3 {
		t.Fatalf("got %d statements, want 3", len(stmts))
	}
	first := b.Stmts.Let(stmts[0])
	if first == nil || first.Name != "x" || first.Mut || !first.Value.IsValid() {
		t.Fatalf("first let = %+v", first)
	}
	second := b.Stmts.Let(stmts[1])
	if second == nil || !second.Mut || second.Type.Name != "int" {
		t.Fatalf("second let = %+v", second)
	}
	third := b.Stmts.Let(stmts[2])
	if third == nil || third.Value.IsValid() || third.Type.Name != "bool" {
		t.Fatalf("third let = %+v", third)
	}
}

func TestParser_ControlFlow(t *testing.T) {
	src := `fn f(n: int) -> int {
	if n > 0 {
		return 1;
	} else if n < 0 {
		return -1;
	} else {
		return 0;
	}
}`
	b, file, bag := parseSource(t, src)
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", bag.Items())
	}
	stmts := fnBody(t, b, file)
	ifData := b.Stmts.If(stmts[0])
	if ifData == nil {
		t.Fatalf("first statement is not an if")
	}
	elseIf := b.Stmts.If(ifData.Else)
	if elseIf == nil {
		t.Fatalf("else branch is not a nested if")
	}
	if !elseIf.Else.IsValid() || b.Stmts.Block(elseIf.Else) == nil {
		t.Fatalf("final else is not a block")
	}
}

func TestParser_Loops(t *testing.T) {
	src := `fn f() {
	while a < 10 { a += 1; }
	loop { break; }
	for item in list { use(item); }
}`
	b, file, bag := parseSource(t, src)
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", bag.Items())
	}
	stmts := fnBody(t, b, file)
	if len(stmts) != 3 {
		t.Fatalf("got %d statements, want 3", len(stmts))
	}
	if b.Stmts.While(stmts[0]) == nil {
		t.Fatalf("first is not a while")
	}
	loopData := b.Stmts.Loop(stmts[1])
	if loopData == nil || loopData.KwSpan.Empty() {
		t.Fatalf("second is not a loop with keyword span")
	}
	forData := b.Stmts.ForIn(stmts[2])
	if forData == nil || forData.Var != "item" {
		t.Fatalf("third is not a for-in: %+v", forData)
	}
}

func TestParser_CompareExpr(t *testing.T) {
	src := `fn f(opt: Option<int>) -> int {
	return compare opt {
		Some(v) if v > 0 => v;
		Some(v) => 0 - v;
		None => 0;
		finally => -1;
	};
}`
	b, file, bag := parseSource(t, src)
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", bag.Items())
	}
	stmts := fnBody(t, b, file)
	ret := b.Stmts.Return(stmts[0])
	if ret == nil {
		t.Fatalf("first statement is not a return")
	}
	cmp, ok := b.Exprs.Compare(ret.Value)
	if !ok {
		t.Fatalf("return value is not a compare")
	}
	if len(cmp.Arms) != 4 {
		t.Fatalf("got %d arms, want 4", len(cmp.Arms))
	}
	if !cmp.Arms[0].Guard.IsValid() {
		t.Fatalf("first arm lost its guard")
	}
	if cmp.Arms[1].Guard.IsValid() {
		t.Fatalf("second arm should have no guard")
	}
	if !cmp.Arms[3].IsFinally {
		t.Fatalf("last arm should be finally")
	}
	pat, ok := b.Exprs.Call(cmp.Arms[0].Pattern)
	if !ok || len(pat.Args) != 1 {
		t.Fatalf("first arm pattern = %+v", pat)
	}
}

func TestParser_CompareArmStmtBody(t *testing.T) {
	src := `fn f() {
	loop {
		compare it.next() {
			Some(v) => { handle(v); }
			None => break;
		};
	}
}`
	b, file, bag := parseSource(t, src)
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", bag.Items())
	}
	stmts := fnBody(t, b, file)
	loopData := b.Stmts.Loop(stmts[0])
	if loopData == nil {
		t.Fatalf("outer statement is not a loop")
	}
	body := b.Stmts.Block(loopData.Body)
	exprStmt := b.Stmts.Expr(body.Stmts[0])
	if exprStmt == nil {
		t.Fatalf("loop body statement is not an expression statement")
	}
	cmp, ok := b.Exprs.Compare(exprStmt.Expr)
	if !ok || len(cmp.Arms) != 2 {
		t.Fatalf("compare = %+v", cmp)
	}
	if !cmp.Arms[0].Body.IsValid() || cmp.Arms[0].Result.IsValid() {
		t.Fatalf("first arm should carry a block body")
	}
	brk := b.Stmts.Get(cmp.Arms[1].Body)
	if brk == nil || brk.Kind != ast.StmtBreak {
		t.Fatalf("second arm should carry a break body")
	}
}

func TestParser_Wildcard(t *testing.T) {
	src := "fn f(x: int) -> int { return compare x { 1 => 10; _ => 0; }; }"
	b, file, bag := parseSource(t, src)
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", bag.Items())
	}
	stmts := fnBody(t, b, file)
	ret := b.Stmts.Return(stmts[0])
	cmp, _ := b.Exprs.Compare(ret.Value)
	if len(cmp.Arms) != 2 {
		t.Fatalf("got %d arms", len(cmp.Arms))
	}
	pat := b.Exprs.Get(cmp.Arms[1].Pattern)
	if pat == nil || pat.Kind != ast.ExprWildcard {
		t.Fatalf("second pattern = %+v", pat)
	}
}

func TestParser_Attrs(t *testing.T) {
	src := `@allow("eq_op")
fn f() {
	@deny(all)
	let x = 1;
}`
	b, file, bag := parseSource(t, src)
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", bag.Items())
	}
	item := b.Items.Get(file.Items[0])
	if len(item.Attrs) != 1 {
		t.Fatalf("item attrs = %+v", item.Attrs)
	}
	attr := b.Attr(item.Attrs[0])
	if attr.Name != "allow" || len(attr.Args) != 1 || attr.Args[0].Text != "eq_op" {
		t.Fatalf("attr = %+v", attr)
	}
	stmts := fnBody(t, b, file)
	stmt := b.Stmts.Get(stmts[0])
	if len(stmt.Attrs) != 1 {
		t.Fatalf("stmt attrs = %+v", stmt.Attrs)
	}
	stmtAttr := b.Attr(stmt.Attrs[0])
	if stmtAttr.Name != "deny" || stmtAttr.Args[0].Text != "all" {
		t.Fatalf("stmt attr = %+v", stmtAttr)
	}
}

func TestParser_RecoversFromErrors(t *testing.T) {
	src := `fn f() {
	let = 1;
	let y = 2;
}`
	b, file, bag := parseSource(t, src)
	if !bag.HasErrors() {
		t.Fatal("expected a parse error")
	}
	stmts := fnBody(t, b, file)
	// The good statement after the bad one still parses.
	found := false
	for _, id := range stmts {
		if letData := b.Stmts.Let(id); letData != nil && letData.Name == "y" {
			found = true
		}
	}
	if !found {
		t.Fatalf("recovery lost the following statement")
	}
}

func TestParser_MissingSemicolonDiagnostic(t *testing.T) {
	_, _, bag := parseSource(t, "fn f() { let x = 1 }")
	found := false
	for _, d := range bag.Items() {
		if d.Code == CodeExpectSemicolon {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected %s, got %v", CodeExpectSemicolon, bag.Items())
	}
}
