package sema

import (
	"testing"

	"surgelint/internal/ast"
	"surgelint/internal/diag"
	"surgelint/internal/parser"
	"surgelint/internal/source"
)

func analyzeSource(t *testing.T, input string) (*ast.Builder, *ast.File, *Facts) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.sg", []byte(input))
	bag := diag.NewBag(64)
	builder := ast.NewBuilder(ast.Hints{})
	res := parser.ParseFile(fs.Get(id), builder, parser.Options{Reporter: diag.BagReporter{Bag: bag}})
	if bag.HasErrors() {
		t.Fatalf("parse errors: %v", bag.Items())
	}
	file := builder.Files.Get(res.File)
	return builder, file, Analyze(builder, res.File)
}

// returnedExpr digs out the expression of the first return statement in
// the first function.
func returnedExpr(t *testing.T, b *ast.Builder, file *ast.File) ast.ExprID {
	t.Helper()
	fn, ok := b.Items.Fn(file.Items[0])
	if !ok {
		t.Fatalf("no function item")
	}
	for _, stmtID := range b.Stmts.Block(fn.Body).Stmts {
		if ret := b.Stmts.Return(stmtID); ret != nil {
			return ret.Value
		}
	}
	t.Fatalf("no return statement found")
	return ast.NoExprID
}

func TestFacts_TypeOf(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want TypeKind
	}{
		{"int literal", "fn f() -> int { return 42; }", TypeInt},
		{"bool comparison", "fn f(a: int) -> bool { return a > 0; }", TypeBool},
		{"param passthrough", "fn f(a: uint) -> uint { return a; }", TypeUint},
		{"let annotation wins", "fn f() -> u8 { let x: u8 = 1; return x; }", TypeUint},
		{"arithmetic keeps operand type", "fn f(a: int) -> int { return a + 1; }", TypeInt},
		{"logical is bool", "fn f(a: bool, b: bool) -> bool { return a && b; }", TypeBool},
		{"not is bool", "fn f(a: bool) -> bool { return !a; }", TypeBool},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, file, facts := analyzeSource(t, tt.src)
			got := facts.TypeOf(returnedExpr(t, b, file))
			if got.Kind != tt.want {
				t.Fatalf("TypeOf = %v, want kind %v", got, tt.want)
			}
		})
	}
}

func TestFacts_OptionConstructors(t *testing.T) {
	b, file, facts := analyzeSource(t, "fn f(v: int) -> Option<int> { return Some(v); }")
	got := facts.TypeOf(returnedExpr(t, b, file))
	if got.Kind != TypeNamed || got.Name != "Option" {
		t.Fatalf("TypeOf(Some(v)) = %v", got)
	}
}

func TestFacts_CallResolvesDeclaredReturn(t *testing.T) {
	src := `fn helper() -> bool { return true; }
fn f() -> bool { return helper(); }`
	b, file, facts := analyzeSource(t, src)
	fn, _ := b.Items.Fn(file.Items[1])
	var callExpr ast.ExprID
	for _, stmtID := range b.Stmts.Block(fn.Body).Stmts {
		if ret := b.Stmts.Return(stmtID); ret != nil {
			callExpr = ret.Value
		}
	}
	if got := facts.TypeOf(callExpr); got.Kind != TypeBool {
		t.Fatalf("TypeOf(helper()) = %v", got)
	}
}

func TestFacts_CloneKeepsReceiverType(t *testing.T) {
	b, file, facts := analyzeSource(t, "fn f(a: int) -> int { return a.clone(); }")
	got := facts.TypeOf(returnedExpr(t, b, file))
	if got.Kind != TypeInt {
		t.Fatalf("TypeOf(a.clone()) = %v", got)
	}
	if !got.IsCopyable() {
		t.Fatal("int should be copyable")
	}
}

func TestFacts_CompareArmBindings(t *testing.T) {
	src := `fn f(opt: Option<int>) -> int {
	return compare opt {
		Some(v) => v + 1;
		finally => 0;
	};
}`
	b, file, facts := analyzeSource(t, src)
	cmpExpr := returnedExpr(t, b, file)
	cmp, ok := b.Exprs.Compare(cmpExpr)
	if !ok {
		t.Fatalf("return value is not a compare")
	}
	// Arm result v + 1 stays an expression over an unknown binding, but
	// the compare's own type comes from the first typed arm result.
	if got := facts.TypeOf(cmp.Arms[1].Result); got.Kind != TypeInt {
		t.Fatalf("finally arm result type = %v", got)
	}
}

func TestFacts_ConstInt(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want int64
		ok   bool
	}{
		{"literal", "fn f() -> int { return 42; }", 42, true},
		{"underscores", "fn f() -> int { return 1_000; }", 1000, true},
		{"negated", "fn f() -> int { return -7; }", -7, true},
		{"grouped", "fn f() -> int { return (3); }", 3, true},
		{"folded sum", "fn f() -> int { return 2 + 3 * 4; }", 14, true},
		{"non-const", "fn f(a: int) -> int { return a + 1; }", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, file, facts := analyzeSource(t, tt.src)
			got, ok := facts.ConstInt(returnedExpr(t, b, file))
			if ok != tt.ok || got != tt.want {
				t.Fatalf("ConstInt = (%d, %v), want (%d, %v)", got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestFacts_ConstBool(t *testing.T) {
	b, file, facts := analyzeSource(t, "fn f() -> bool { return (true); }")
	got, ok := facts.ConstBool(returnedExpr(t, b, file))
	if !ok || !got {
		t.Fatalf("ConstBool = (%v, %v)", got, ok)
	}
}

func TestTypeFromName(t *testing.T) {
	if got := TypeFromName("Option<int>"); got.Kind != TypeNamed || got.Name != "Option" {
		t.Fatalf("TypeFromName(Option<int>) = %v", got)
	}
	if got := TypeFromName("u32"); got.Kind != TypeUint {
		t.Fatalf("TypeFromName(u32) = %v", got)
	}
	if got := TypeFromName(""); got.Kind != TypeUnit {
		t.Fatalf("TypeFromName(empty) = %v", got)
	}
}
