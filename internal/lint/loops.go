package lint

import (
	"fmt"

	"surgelint/internal/ast"
	"surgelint/internal/diag"
	"surgelint/internal/fix"
	"surgelint/internal/source"
)

// LoopForWhile flags `loop { if cond { break; } ... }` and rewrites it
// to `while` with the negated condition.
type LoopForWhile struct{}

func (LoopForWhile) Meta() Meta {
	return Meta{
		ID:        "loop_for_while",
		Summary:   "loop with a leading conditional break",
		Severity:  diag.SevWarning,
		DefaultOn: true,
		HasFix:    true,
	}
}

func (LoopForWhile) CheckStmt(ctx *Context, id ast.StmtID) {
	b := ctx.Builder
	data := b.Stmts.Loop(id)
	if data == nil {
		return
	}
	block := b.Stmts.Block(data.Body)
	if block == nil || len(block.Stmts) == 0 {
		return
	}

	// The exit check must come first; anywhere else the rewrite would
	// reorder the iteration.
	guardID := block.Stmts[0]
	guard := b.Stmts.If(guardID)
	if guard == nil || guard.Else.IsValid() {
		return
	}
	soleID, ok := soleStmt(b, guard.Then)
	if !ok {
		return
	}
	if sole := b.Stmts.Get(soleID); sole == nil || sole.Kind != ast.StmtBreak {
		return
	}
	if HasSideEffects(b, guard.Cond) {
		return
	}

	guardStmt := b.Stmts.Get(guardID)
	cond := negatedText(ctx, guard.Cond)
	ctx.Report(data.KwSpan, "this loop is a while in disguise, consider `while %s`", cond).
		WithFix(fix.ReplaceSpans(fmt.Sprintf("rewrite as while %s", cond),
			[]source.Span{data.KwSpan, guardStmt.Span},
			[]string{"while " + cond, ""},
			[]string{ctx.Text(data.KwSpan), ctx.Text(guardStmt.Span)},
			fix.WithID("loop_to_while"), fix.Preferred())).
		Emit()
}

// LoopComparePop flags the manual iterator drain
//
//	loop {
//		compare it.next() {
//			Some(x) => { ... }
//			None => break;
//		};
//	}
//
// and rewrites it to `for x in it { ... }`.
type LoopComparePop struct{}

func (LoopComparePop) Meta() Meta {
	return Meta{
		ID:        "loop_compare_pop",
		Summary:   "loop draining an iterator by hand",
		Severity:  diag.SevWarning,
		DefaultOn: true,
		HasFix:    true,
	}
}

func (LoopComparePop) CheckStmt(ctx *Context, id ast.StmtID) {
	b := ctx.Builder
	data := b.Stmts.Loop(id)
	if data == nil {
		return
	}
	soleID, ok := soleStmt(b, data.Body)
	if !ok {
		return
	}
	exprStmt := b.Stmts.Expr(soleID)
	if exprStmt == nil {
		return
	}
	cmp, ok := b.Exprs.Compare(unwrapGroups(b, exprStmt.Expr))
	if !ok || len(cmp.Arms) != 2 {
		return
	}

	// Subject must be `<recv>.next()` with no arguments.
	call, ok := b.Exprs.Call(unwrapGroups(b, cmp.Subject))
	if !ok || len(call.Args) != 0 {
		return
	}
	member, ok := b.Exprs.Member(call.Callee)
	if !ok || member.Name != "next" {
		return
	}

	someArm, noneArm, ok := splitOptionArms(b, cmp.Arms)
	if !ok {
		return
	}
	// Some(x) carries a block body; None breaks out.
	bindName, ok := singleBinding(b, someArm.Pattern)
	if !ok || !someArm.Body.IsValid() || someArm.Guard.IsValid() {
		return
	}
	body := b.Stmts.Get(someArm.Body)
	if body == nil || body.Kind != ast.StmtBlock {
		return
	}
	if noneArm.Guard.IsValid() || !noneArm.Body.IsValid() {
		return
	}
	if brk := b.Stmts.Get(noneArm.Body); brk == nil || brk.Kind != ast.StmtBreak {
		return
	}

	stmt := b.Stmts.Get(id)
	rewritten := fmt.Sprintf("for %s in %s %s", bindName, atomText(ctx, member.Recv), ctx.Text(body.Span))
	ctx.Report(data.KwSpan, "manual iterator loop, consider `for %s in %s`", bindName, ctx.ExprText(member.Recv)).
		WithFix(fix.ReplaceSpan("rewrite as a for-in loop", stmt.Span, rewritten, ctx.Text(stmt.Span),
			fix.WithID("loop_to_for"), fix.Preferred(),
			fix.WithApplicability(diag.FixSafeWithHeuristics))).
		Emit()
}

// splitOptionArms separates a two-arm compare into its Some and None
// arms regardless of order.
func splitOptionArms(b *ast.Builder, arms []ast.CompareArm) (someArm, noneArm ast.CompareArm, ok bool) {
	for _, arm := range arms {
		if arm.IsFinally {
			return someArm, noneArm, false
		}
		switch ctorName(b, arm.Pattern) {
		case "Some":
			someArm = arm
		case "None":
			noneArm = arm
		default:
			return someArm, noneArm, false
		}
	}
	return someArm, noneArm, someArm.Pattern.IsValid() && noneArm.Pattern.IsValid()
}

// ctorName returns the constructor of a pattern: "Some" for
// `Some(...)`, "None" for a bare `None`, and so on.
func ctorName(b *ast.Builder, id ast.ExprID) string {
	id = unwrapGroups(b, id)
	if call, ok := b.Exprs.Call(id); ok {
		if ident, ok := b.Exprs.Ident(call.Callee); ok {
			return ident.Name
		}
		return ""
	}
	if ident, ok := b.Exprs.Ident(id); ok {
		return ident.Name
	}
	return ""
}

// singleBinding returns the identifier bound by a one-argument
// constructor pattern like `Some(x)`.
func singleBinding(b *ast.Builder, id ast.ExprID) (string, bool) {
	call, ok := b.Exprs.Call(unwrapGroups(b, id))
	if !ok || len(call.Args) != 1 {
		return "", false
	}
	ident, ok := b.Exprs.Ident(call.Args[0])
	if !ok {
		return "", false
	}
	return ident.Name, true
}

// patternBindings returns every identifier a constructor pattern binds:
// `Err(e)` binds e, bare `None` and `Err(_)` bind nothing.
func patternBindings(b *ast.Builder, id ast.ExprID) []string {
	call, ok := b.Exprs.Call(unwrapGroups(b, id))
	if !ok {
		return nil
	}
	var names []string
	for _, arg := range call.Args {
		if ident, ok := b.Exprs.Ident(arg); ok {
			names = append(names, ident.Name)
		}
	}
	return names
}
