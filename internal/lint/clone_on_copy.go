package lint

import (
	"surgelint/internal/ast"
	"surgelint/internal/diag"
	"surgelint/internal/fix"
)

// CloneOnCopy flags `.clone()` on a value whose type is a plain copy
// anyway.
type CloneOnCopy struct{}

func (CloneOnCopy) Meta() Meta {
	return Meta{
		ID:        "clone_on_copy",
		Summary:   "clone of a trivially copyable value",
		Severity:  diag.SevWarning,
		DefaultOn: true,
		HasFix:    true,
	}
}

func (CloneOnCopy) CheckExpr(ctx *Context, id ast.ExprID) {
	b := ctx.Builder
	call, ok := b.Exprs.Call(id)
	if !ok || len(call.Args) != 0 {
		return
	}
	member, ok := b.Exprs.Member(call.Callee)
	if !ok || member.Name != "clone" {
		return
	}
	if !ctx.Facts.TypeOf(member.Recv).IsCopyable() {
		return
	}

	expr := b.Exprs.Get(id)
	recv := ctx.ExprText(member.Recv)
	ctx.Report(expr.Span, "using `clone` on a copyable value, `%s` copies anyway", recv).
		WithFix(fix.ReplaceSpan("replace with "+recv, expr.Span, recv, ctx.Text(expr.Span),
			fix.WithID("drop_clone"), fix.Preferred(),
			fix.WithApplicability(diag.FixSafeWithHeuristics))).
		Emit()
}

// UnwrapSyscall flags `.unwrap()` on a SysResult, which has a
// dedicated accessor carrying the system error context.
type UnwrapSyscall struct{}

func (UnwrapSyscall) Meta() Meta {
	return Meta{
		ID:        "unwrap_syscall",
		Summary:   "plain unwrap on a system call result",
		Severity:  diag.SevWarning,
		DefaultOn: true,
		HasFix:    true,
	}
}

func (UnwrapSyscall) CheckExpr(ctx *Context, id ast.ExprID) {
	b := ctx.Builder
	call, ok := b.Exprs.Call(id)
	if !ok || len(call.Args) != 0 {
		return
	}
	member, ok := b.Exprs.Member(call.Callee)
	if !ok || member.Name != "unwrap" {
		return
	}
	recvType := ctx.Facts.TypeOf(member.Recv)
	if recvType.Name != "SysResult" {
		return
	}

	ctx.Report(member.NameSpan, "consider `unwrap_sys` instead of `unwrap` on a SysResult").
		WithFix(fix.ReplaceSpan("replace with unwrap_sys", member.NameSpan, "unwrap_sys", ctx.Text(member.NameSpan),
			fix.WithID("use_unwrap_sys"), fix.Preferred(),
			fix.WithApplicability(diag.FixSafeWithHeuristics))).
		Emit()
}

// PanicUse flags panic calls. Off by default; projects that forbid
// aborts opt in.
type PanicUse struct{}

func (PanicUse) Meta() Meta {
	return Meta{
		ID:        "panic",
		Summary:   "panic left in the code",
		Severity:  diag.SevWarning,
		DefaultOn: false,
		HasFix:    false,
	}
}

func (PanicUse) CheckExpr(ctx *Context, id ast.ExprID) {
	b := ctx.Builder
	call, ok := b.Exprs.Call(id)
	if !ok {
		return
	}
	ident, ok := b.Exprs.Ident(call.Callee)
	if !ok || ident.Name != "panic" {
		return
	}
	expr := b.Exprs.Get(id)
	ctx.Report(expr.Span, "leaving `panic` in the code is discouraged").Emit()
}
