package lint

import (
	"strings"
	"testing"

	"surgelint/internal/diag"
)

func TestDoubleComparison_Simplifiable(t *testing.T) {
	checkFixed(t,
		"fn f(a: int, b: int) -> bool { return a == b || a < b; }",
		"double_comparison",
		"fn f(a: int, b: int) -> bool { return a <= b; }")
}

func TestDoubleComparison_Mirrored(t *testing.T) {
	checkFixed(t,
		"fn f(a: int, b: int) -> bool { return a < b || b < a; }",
		"double_comparison",
		"fn f(a: int, b: int) -> bool { return a != b; }")
}

func TestDoubleComparison_Redundant(t *testing.T) {
	checkFixed(t,
		"fn f(a: int, b: int) -> bool { return a <= b || a < b; }",
		"double_comparison",
		"fn f(a: int, b: int) -> bool { return a <= b; }")
}

func TestDoubleComparison_Contradictory(t *testing.T) {
	bag := lintSource(t, "fn f(a: int, b: int) -> bool { return a < b && a > b; }", Options{})
	if !hasCode(bag, "double_comparison") {
		t.Fatalf("expected a finding, got %v", bag.Items())
	}
	for _, d := range bag.Items() {
		if d.Code == "double_comparison" && len(d.Fixes) != 0 {
			t.Fatal("contradictory comparison must stay diagnostic-only")
		}
	}
}

func TestDoubleComparison_ImpossibleRange(t *testing.T) {
	bag := lintSource(t, "fn f(x: int) -> bool { return x < 2 && x > 5; }", Options{})
	found := false
	for _, d := range bag.Items() {
		if d.Code == "double_comparison" && strings.Contains(d.Message, "impossible") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected impossible-range finding, got %v", bag.Items())
	}
}

func TestDoubleComparison_ImpossibleRangeLiteralFirst(t *testing.T) {
	bag := lintSource(t, "fn f(x: int) -> bool { return 2 > x && x > 5; }", Options{})
	found := false
	for _, d := range bag.Items() {
		if d.Code == "double_comparison" && strings.Contains(d.Message, "impossible") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected impossible-range finding for the mirrored spelling, got %v", bag.Items())
	}
}

func TestDoubleComparison_RedundantSpelledOutNe(t *testing.T) {
	src := "fn f(a: int, b: int) -> bool { return a < b || a > b; }"
	bag := lintSource(t, src, Options{})
	found := false
	for _, d := range bag.Items() {
		if d.Code == "double_comparison" && strings.Contains(d.Message, "redundant") {
			found = true
		}
	}
	if !found {
		t.Fatalf("spelled-out != must classify as redundant, got %v", bag.Items())
	}
	fixed := applyFix(t, src, firstFix(t, bag, "double_comparison"))
	if fixed != "fn f(a: int, b: int) -> bool { return a != b; }" {
		t.Fatalf("fixed text = %q", fixed)
	}
}

func TestDoubleComparison_SideEffectsSkipped(t *testing.T) {
	bag := lintSource(t, "fn f(b: int) -> bool { return g() == b || g() < b; }\nfn g() -> int { return 1; }", Options{})
	if hasCode(bag, "double_comparison") {
		t.Fatal("side-effecting operands must not be folded")
	}
}

func TestEqOp(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"eq", "fn f(a: int) -> bool { return a == a; }", "fn f(a: int) -> bool { return true; }"},
		{"lt", "fn f(a: int) -> bool { return a < a; }", "fn f(a: int) -> bool { return false; }"},
		{"sub", "fn f(a: int) -> int { return a - a; }", "fn f(a: int) -> int { return 0; }"},
		{"and", "fn f(a: int) -> int { return a & a; }", "fn f(a: int) -> int { return a; }"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkFixed(t, tt.src, "eq_op", tt.want)
		})
	}
}

func TestEqOp_CallOperandsSkipped(t *testing.T) {
	bag := lintSource(t, "fn f() -> bool { return g() == g(); }\nfn g() -> int { return 1; }", Options{})
	if hasCode(bag, "eq_op") {
		t.Fatal("call operands must not be collapsed")
	}
}

func TestRedundantOp(t *testing.T) {
	checkFixed(t,
		"fn f(x: int) -> int { return x + 0; }",
		"redundant_op",
		"fn f(x: int) -> int { return x; }")
	checkFixed(t,
		"fn f(x: int) -> int { return 1 * x; }",
		"redundant_op",
		"fn f(x: int) -> int { return x; }")
}

func TestErasingOp(t *testing.T) {
	checkFixed(t,
		"fn f(x: int) -> int { return x * 0; }",
		"erasing_op",
		"fn f(x: int) -> int { return 0; }")
	checkFixed(t,
		"fn f(x: int) -> int { return 0 / x; }",
		"erasing_op",
		"fn f(x: int) -> int { return 0; }")
}

func TestErasingOp_DividendNotErasing(t *testing.T) {
	bag := lintSource(t, "fn f(x: int) -> int { return x / 0; }", Options{})
	if hasCode(bag, "erasing_op") {
		t.Fatal("x / 0 does not erase to zero")
	}
}

func TestBoolComparison(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"eq true", "fn f(x: bool) -> bool { return x == true; }", "fn f(x: bool) -> bool { return x; }"},
		{"ne false", "fn f(x: bool) -> bool { return x != false; }", "fn f(x: bool) -> bool { return x; }"},
		{"eq false", "fn f(x: bool) -> bool { return x == false; }", "fn f(x: bool) -> bool { return !x; }"},
		{"literal first", "fn f(x: bool) -> bool { return true == x; }", "fn f(x: bool) -> bool { return x; }"},
		{"negates comparison", "fn f(a: int, b: int) -> bool { return (a < b) == false; }", "fn f(a: int, b: int) -> bool { return a >= b; }"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkFixed(t, tt.src, "bool_comparison", tt.want)
		})
	}
}

func TestDoubleParens(t *testing.T) {
	checkFixed(t,
		"fn f(x: int) -> int { return ((x)); }",
		"double_parens",
		"fn f(x: int) -> int { return (x); }")
}

func TestIntOpOne(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"ge plus one", "fn f(x: int, y: int) -> bool { return x >= y + 1; }", "fn f(x: int, y: int) -> bool { return x > y; }"},
		{"minus one ge", "fn f(x: int, y: int) -> bool { return x - 1 >= y; }", "fn f(x: int, y: int) -> bool { return x > y; }"},
		{"le minus one", "fn f(x: int, y: int) -> bool { return x <= y - 1; }", "fn f(x: int, y: int) -> bool { return x < y; }"},
		{"plus one le", "fn f(x: int, y: int) -> bool { return x + 1 <= y; }", "fn f(x: int, y: int) -> bool { return x < y; }"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkFixed(t, tt.src, "int_op_one", tt.want)
		})
	}
}

func TestIntOpOne_NonIntegerSkipped(t *testing.T) {
	bag := lintSource(t, "fn f(x: Price, y: Price) -> bool { return x >= y + 1; }", Options{})
	if hasCode(bag, "int_op_one") {
		t.Fatal("rule is integer-only")
	}
}

func TestBitwiseForParity(t *testing.T) {
	checkFixed(t,
		"fn f(x: int) -> bool { return x & 1 == 1; }",
		"bitwise_for_parity_check",
		"fn f(x: int) -> bool { return x % 2 == 1; }")
}

func TestCollapsibleIf(t *testing.T) {
	src := `fn f(a: bool, b: bool) {
	if a {
		if b {
			act();
		}
	}
}
fn act() { }`
	bag := lintSource(t, src, Options{})
	if !hasCode(bag, "collapsible_if") {
		t.Fatalf("expected collapsible_if, got %v", bag.Items())
	}
	fixed := applyFix(t, src, firstFix(t, bag, "collapsible_if"))
	if !strings.Contains(fixed, "if a && b {") {
		t.Fatalf("fixed text = %q", fixed)
	}
	if hasCode(lintSource(t, fixed, Options{}), "collapsible_if") {
		t.Fatal("rule still fires after fix")
	}
}

func TestCollapsibleIf_ParenthesizesOr(t *testing.T) {
	src := `fn f(a: bool, b: bool, c: bool) {
	if a || b {
		if c {
			act();
		}
	}
}
fn act() { }`
	bag := lintSource(t, src, Options{})
	fixed := applyFix(t, src, firstFix(t, bag, "collapsible_if"))
	if !strings.Contains(fixed, "if (a || b) && c {") {
		t.Fatalf("fixed text = %q", fixed)
	}
}

func TestCollapsibleIfElse(t *testing.T) {
	src := `fn f(a: bool, b: bool) {
	if a {
		one();
	} else {
		if b {
			two();
		}
	}
}
fn one() { }
fn two() { }`
	bag := lintSource(t, src, Options{})
	if !hasCode(bag, "collapsible_if_else") {
		t.Fatalf("expected collapsible_if_else, got %v", bag.Items())
	}
	fixed := applyFix(t, src, firstFix(t, bag, "collapsible_if_else"))
	if !strings.Contains(fixed, "} else if b {") {
		t.Fatalf("fixed text = %q", fixed)
	}
	if hasCode(lintSource(t, fixed, Options{}), "collapsible_if_else") {
		t.Fatal("rule still fires after fix")
	}
}

func TestCollapsibleIfElse_ElseIfChainClean(t *testing.T) {
	src := `fn f(a: bool, b: bool) {
	if a {
		one();
	} else if b {
		two();
	}
}
fn one() { }
fn two() { }`
	bag := lintSource(t, src, Options{})
	if hasCode(bag, "collapsible_if_else") {
		t.Fatal("written else if must not be flagged")
	}
}

func TestIfsSameCond(t *testing.T) {
	src := `fn f(a: int) {
	if a > 0 {
		one();
	}
	if a > 0 {
		two();
	}
}
fn one() { }
fn two() { }`
	bag := lintSource(t, src, Options{})
	if !hasCode(bag, "ifs_same_cond") {
		t.Fatalf("expected ifs_same_cond, got %v", bag.Items())
	}
}

func TestIfsSameCond_SideEffectCondSkipped(t *testing.T) {
	src := `fn f() {
	if roll() > 0 {
		one();
	}
	if roll() > 0 {
		two();
	}
}
fn roll() -> int { return 4; }
fn one() { }
fn two() { }`
	bag := lintSource(t, src, Options{})
	if hasCode(bag, "ifs_same_cond") {
		t.Fatal("side-effecting conditions may differ between runs")
	}
}

func TestLoopForWhile(t *testing.T) {
	src := `fn f(x: int) {
	loop {
		if x > 10 {
			break;
		}
		step();
	}
}
fn step() { }`
	bag := lintSource(t, src, Options{})
	if !hasCode(bag, "loop_for_while") {
		t.Fatalf("expected loop_for_while, got %v", bag.Items())
	}
	fixed := applyFix(t, src, firstFix(t, bag, "loop_for_while"))
	if !strings.Contains(fixed, "while x <= 10 {") {
		t.Fatalf("fixed text = %q", fixed)
	}
	if hasCode(lintSource(t, fixed, Options{}), "loop_for_while") {
		t.Fatal("rule still fires after fix")
	}
}

func TestLoopComparePop(t *testing.T) {
	src := `fn f(items: Iter) {
	loop {
		compare items.next() {
			Some(v) => { handle(v); }
			None => break;
		};
	}
}
fn handle(v: int) { }`
	bag := lintSource(t, src, Options{})
	if !hasCode(bag, "loop_compare_pop") {
		t.Fatalf("expected loop_compare_pop, got %v", bag.Items())
	}
	fixed := applyFix(t, src, firstFix(t, bag, "loop_compare_pop"))
	if !strings.Contains(fixed, "for v in items {") {
		t.Fatalf("fixed text = %q", fixed)
	}
}

func TestManualIsSome(t *testing.T) {
	checkFixed(t,
		"fn f(opt: Option<int>) -> bool { return compare opt { Some(v) => true; None => false; }; }",
		"manual_is_some",
		"fn f(opt: Option<int>) -> bool { return opt.is_some(); }")
}

func TestManualIsNone(t *testing.T) {
	checkFixed(t,
		"fn f(opt: Option<int>) -> bool { return compare opt { Some(v) => false; None => true; }; }",
		"manual_is_none",
		"fn f(opt: Option<int>) -> bool { return opt.is_none(); }")
}

func TestManualIsOk(t *testing.T) {
	checkFixed(t,
		"fn f(res: Result<int>) -> bool { return compare res { Ok(v) => true; Err(e) => false; }; }",
		"manual_is_ok",
		"fn f(res: Result<int>) -> bool { return res.is_ok(); }")
}

func TestManualIsErr(t *testing.T) {
	checkFixed(t,
		"fn f(res: Result<int>) -> bool { return compare res { Ok(v) => false; Err(e) => true; }; }",
		"manual_is_err",
		"fn f(res: Result<int>) -> bool { return res.is_err(); }")
}

func TestManualBool_GuardBlocksMatch(t *testing.T) {
	src := "fn f(opt: Option<int>) -> bool { return compare opt { Some(v) if v > 0 => true; finally => false; }; }"
	bag := lintSource(t, src, Options{})
	if hasCode(bag, "manual_is_some") {
		t.Fatal("guarded arms are not a plain is_some")
	}
}

func TestManualUnwrapOr(t *testing.T) {
	checkFixed(t,
		"fn f(opt: Option<int>) -> int { return compare opt { Some(v) => v; None => 0; }; }",
		"manual_unwrap_or",
		"fn f(opt: Option<int>) -> int { return opt.unwrap_or(0); }")
}

func TestManualUnwrapOr_SideEffectDefaultSkipped(t *testing.T) {
	src := "fn f(opt: Option<int>) -> int { return compare opt { Some(v) => v; None => fallback(); }; }\nfn fallback() -> int { return 1; }"
	bag := lintSource(t, src, Options{})
	if hasCode(bag, "manual_unwrap_or") {
		t.Fatal("unwrap_or evaluates eagerly; calls must not be hoisted")
	}
}

func TestManualUnwrapOr_FallbackBindingSkipped(t *testing.T) {
	src := "fn f(res: Result<int>) -> int { return compare res { Ok(x) => x; Err(e) => e; }; }"
	bag := lintSource(t, src, Options{})
	if hasCode(bag, "manual_unwrap_or") {
		t.Fatal("the default leans on the Err binding; hoisting it breaks scope")
	}
}

func TestManualUnwrapOr_UnusedFallbackBindingFires(t *testing.T) {
	checkFixed(t,
		"fn f(res: Result<int>) -> int { return compare res { Ok(x) => x; Err(e) => 0; }; }",
		"manual_unwrap_or",
		"fn f(res: Result<int>) -> int { return res.unwrap_or(0); }")
}

func TestManualOkOr(t *testing.T) {
	checkFixed(t,
		`fn f(opt: Option<int>) -> Result<int> { return compare opt { Some(v) => Ok(v); None => Err("missing"); }; }`,
		"manual_ok_or",
		`fn f(opt: Option<int>) -> Result<int> { return opt.ok_or("missing"); }`)
}

func TestManualExpect(t *testing.T) {
	src := `fn f(opt: Option<int>) -> int { return compare opt { Some(v) => v; None => panic("missing"); }; }`
	checkFixed(t, src,
		"manual_expect",
		`fn f(opt: Option<int>) -> int { return opt.expect("missing"); }`)

	// expect runs the message on the success path too, so the fix
	// stays behind the heuristic gate.
	f := firstFix(t, lintSource(t, src, Options{}), "manual_expect")
	if f.Applicability != diag.FixSafeWithHeuristics {
		t.Fatalf("applicability = %v, want safe-with-heuristics", f.Applicability)
	}
}

func TestManualExpect_SideEffectMessageSkipped(t *testing.T) {
	src := "fn f(opt: Option<int>) -> int { return compare opt { Some(v) => v; None => panic(msg()); }; }\nfn msg() -> string { return \"missing\"; }"
	bag := lintSource(t, src, Options{})
	if hasCode(bag, "manual_expect") {
		t.Fatal("expect evaluates the message eagerly; calls must not be hoisted")
	}
}

func TestManualExpect_FallbackBindingMessageSkipped(t *testing.T) {
	src := "fn f(res: Result<int>) -> int { return compare res { Ok(x) => x; Err(e) => panic(e); }; }"
	bag := lintSource(t, src, Options{})
	if hasCode(bag, "manual_expect") {
		t.Fatal("the message leans on the Err binding; hoisting it breaks scope")
	}
}

func TestUnitReturnType(t *testing.T) {
	src := "fn f() -> unit { act(); }\nfn act() { }"
	bag := lintSource(t, src, Options{})
	if !hasCode(bag, "unit_return_type") {
		t.Fatalf("expected unit_return_type, got %v", bag.Items())
	}
	fixed := applyFix(t, src, firstFix(t, bag, "unit_return_type"))
	if strings.Contains(fixed, "unit") {
		t.Fatalf("fixed text = %q", fixed)
	}
}

func TestDuplicateUnderscoreArgs(t *testing.T) {
	bag := lintSource(t, "fn f(a: int, _a: int) -> int { return a; }", Options{})
	if !hasCode(bag, "duplicate_underscore_args") {
		t.Fatalf("expected duplicate_underscore_args, got %v", bag.Items())
	}
	for _, d := range bag.Items() {
		if d.Code == "duplicate_underscore_args" && len(d.Fixes) != 0 {
			t.Fatal("renaming a parameter is not the linter's call")
		}
	}
}

func TestDuplicateUnderscoreArgs_UnderscoreFirst(t *testing.T) {
	bag := lintSource(t, "fn f(_a: int, a: int) -> int { return a; }", Options{})
	if !hasCode(bag, "duplicate_underscore_args") {
		t.Fatalf("order must not matter, got %v", bag.Items())
	}
}

func TestDuplicateUnderscoreArgs_DistinctNamesQuiet(t *testing.T) {
	bag := lintSource(t, "fn f(_a: int, _b: int, c: int) -> int { return c; }", Options{})
	if hasCode(bag, "duplicate_underscore_args") {
		t.Fatalf("distinct names must not fire, got %v", bag.Items())
	}
}

func TestRedundantEnumBrackets(t *testing.T) {
	checkFixed(t,
		"fn f() -> Option<int> { return None(); }",
		"redundant_brackets_in_enum_call",
		"fn f() -> Option<int> { return None; }")
}

func TestCloneOnCopy(t *testing.T) {
	checkFixed(t,
		"fn f(x: int) -> int { return x.clone(); }",
		"clone_on_copy",
		"fn f(x: int) -> int { return x; }")
}

func TestCloneOnCopy_NonCopyableSkipped(t *testing.T) {
	bag := lintSource(t, "fn f(x: Buffer) -> Buffer { return x.clone(); }", Options{})
	if hasCode(bag, "clone_on_copy") {
		t.Fatal("named types are not known to be copyable")
	}
}

func TestUnwrapSyscall(t *testing.T) {
	checkFixed(t,
		"fn f(r: SysResult<int>) -> int { return r.unwrap(); }",
		"unwrap_syscall",
		"fn f(r: SysResult<int>) -> int { return r.unwrap_sys(); }")
}

func TestPanic_OffByDefault(t *testing.T) {
	src := `fn f() { panic("boom"); }`
	if hasCode(lintSource(t, src, Options{}), "panic") {
		t.Fatal("panic rule should be off by default")
	}
	bag := lintSource(t, src, Options{Enabled: map[diag.Code]bool{"panic": true}})
	if !hasCode(bag, "panic") {
		t.Fatalf("expected panic finding when enabled, got %v", bag.Items())
	}
}
