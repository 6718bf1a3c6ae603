package lint

import (
	"surgelint/internal/ast"
	"surgelint/internal/diag"
	"surgelint/internal/fix"
)

// The manual_* family flags compare expressions that re-implement a
// combinator the standard library already provides. Matching is exact
// template matching on the arm shapes; anything that deviates from the
// template is left alone.

// ManualBoolCheck covers the four predicates that reduce a two-arm
// compare over Option or Result to a method call: is_some, is_none,
// is_ok, is_err.
type ManualBoolCheck struct {
	id        diag.Code
	matchCtor string // the arm that must yield true
	otherCtor string
	method    string
}

func ManualIsSome() *ManualBoolCheck {
	return &ManualBoolCheck{id: "manual_is_some", matchCtor: "Some", otherCtor: "None", method: "is_some"}
}

func ManualIsNone() *ManualBoolCheck {
	return &ManualBoolCheck{id: "manual_is_none", matchCtor: "None", otherCtor: "Some", method: "is_none"}
}

func ManualIsOk() *ManualBoolCheck {
	return &ManualBoolCheck{id: "manual_is_ok", matchCtor: "Ok", otherCtor: "Err", method: "is_ok"}
}

func ManualIsErr() *ManualBoolCheck {
	return &ManualBoolCheck{id: "manual_is_err", matchCtor: "Err", otherCtor: "Ok", method: "is_err"}
}

func (r *ManualBoolCheck) Meta() Meta {
	return Meta{
		ID:        r.id,
		Summary:   "manual compare for " + r.method,
		Severity:  diag.SevWarning,
		DefaultOn: true,
		HasFix:    true,
	}
}

func (r *ManualBoolCheck) CheckExpr(ctx *Context, id ast.ExprID) {
	b := ctx.Builder
	cmp, ok := b.Exprs.Compare(id)
	if !ok || len(cmp.Arms) != 2 {
		return
	}
	if HasSideEffects(b, cmp.Subject) {
		return
	}

	matched := false
	for _, arm := range cmp.Arms {
		ctor := ctorName(b, arm.Pattern)
		want := ctor == r.matchCtor
		if !want && ctor != r.otherCtor {
			return
		}
		if arm.IsFinally || arm.Guard.IsValid() || !arm.Result.IsValid() {
			return
		}
		v, isBool := ctx.Facts.ConstBool(arm.Result)
		if !isBool || v != want {
			return
		}
		if want {
			matched = true
		}
	}
	if !matched {
		return
	}

	expr := b.Exprs.Get(id)
	replacement := atomText(ctx, cmp.Subject) + "." + r.method + "()"
	ctx.Report(expr.Span, "manual compare for `%s`, consider `%s`", r.method, replacement).
		WithFix(fix.ReplaceSpan("replace with "+replacement, expr.Span, replacement, ctx.Text(expr.Span),
			fix.WithID("use_"+r.method), fix.Preferred())).
		Emit()
}

// ManualUnwrapOr flags `compare v { Some(x) => x; None => d; }` (and
// the Ok/Err form) as a hand-written unwrap_or.
type ManualUnwrapOr struct{}

func (ManualUnwrapOr) Meta() Meta {
	return Meta{
		ID:        "manual_unwrap_or",
		Summary:   "manual compare that unwraps with a default",
		Severity:  diag.SevWarning,
		DefaultOn: true,
		HasFix:    true,
	}
}

func (ManualUnwrapOr) CheckExpr(ctx *Context, id ast.ExprID) {
	b := ctx.Builder
	_, fallbackArm, ok := unwrapShape(b, id)
	if !ok {
		return
	}
	if !fallbackArm.Result.IsValid() {
		return
	}
	// unwrap_or evaluates its argument eagerly; a side-effecting
	// default would change behavior.
	if HasSideEffects(b, fallbackArm.Result) {
		return
	}
	// The rewrite hoists the default out of the arm, so it must not
	// lean on names the fallback pattern binds (`Err(e) => e`).
	for _, bind := range patternBindings(b, fallbackArm.Pattern) {
		if ReferencesName(b, fallbackArm.Result, bind) {
			return
		}
	}

	cmp, _ := b.Exprs.Compare(id)
	expr := b.Exprs.Get(id)
	replacement := atomText(ctx, cmp.Subject) + ".unwrap_or(" + ctx.ExprText(fallbackArm.Result) + ")"
	ctx.Report(expr.Span, "manual unwrap with default, consider `unwrap_or`").
		WithFix(fix.ReplaceSpan("replace with "+replacement, expr.Span, replacement, ctx.Text(expr.Span),
			fix.WithID("use_unwrap_or"), fix.Preferred(),
			fix.WithApplicability(diag.FixSafeWithHeuristics))).
		Emit()
}

// ManualExpect flags the same shape with a panicking fallback:
// `compare v { Some(x) => x; None => panic(msg); }`.
type ManualExpect struct{}

func (ManualExpect) Meta() Meta {
	return Meta{
		ID:        "manual_expect",
		Summary:   "manual compare that unwraps or panics",
		Severity:  diag.SevWarning,
		DefaultOn: true,
		HasFix:    true,
	}
}

func (ManualExpect) CheckExpr(ctx *Context, id ast.ExprID) {
	b := ctx.Builder
	_, fallbackArm, ok := unwrapShape(b, id)
	if !ok {
		return
	}
	msg, ok := panicArg(b, fallbackArm)
	if !ok {
		return
	}
	// expect evaluates its message on every path, the panic arm only
	// ran it on failure; the message must be pure and must not use
	// names the fallback pattern binds.
	if HasSideEffects(b, msg) {
		return
	}
	for _, bind := range patternBindings(b, fallbackArm.Pattern) {
		if ReferencesName(b, msg, bind) {
			return
		}
	}

	cmp, _ := b.Exprs.Compare(id)
	expr := b.Exprs.Get(id)
	replacement := atomText(ctx, cmp.Subject) + ".expect(" + ctx.ExprText(msg) + ")"
	ctx.Report(expr.Span, "manual compare for `expect`, consider `%s`", replacement).
		WithFix(fix.ReplaceSpan("replace with "+replacement, expr.Span, replacement, ctx.Text(expr.Span),
			fix.WithID("use_expect"), fix.Preferred(),
			fix.WithApplicability(diag.FixSafeWithHeuristics))).
		Emit()
}

// ManualOkOr flags `compare opt { Some(x) => Ok(x); None => Err(e); }`
// as a hand-written ok_or.
type ManualOkOr struct{}

func (ManualOkOr) Meta() Meta {
	return Meta{
		ID:        "manual_ok_or",
		Summary:   "manual Option to Result conversion",
		Severity:  diag.SevWarning,
		DefaultOn: true,
		HasFix:    true,
	}
}

func (ManualOkOr) CheckExpr(ctx *Context, id ast.ExprID) {
	b := ctx.Builder
	cmp, ok := b.Exprs.Compare(id)
	if !ok || len(cmp.Arms) != 2 {
		return
	}
	if HasSideEffects(b, cmp.Subject) {
		return
	}

	var someArm, noneArm ast.CompareArm
	var haveSome, haveNone bool
	for _, arm := range cmp.Arms {
		if arm.IsFinally || arm.Guard.IsValid() || !arm.Result.IsValid() {
			return
		}
		switch ctorName(b, arm.Pattern) {
		case "Some":
			someArm, haveSome = arm, true
		case "None":
			noneArm, haveNone = arm, true
		default:
			return
		}
	}
	if !haveSome || !haveNone {
		return
	}

	// Some(x) => Ok(x), same binding on both sides.
	bind, ok := singleBinding(b, someArm.Pattern)
	if !ok {
		return
	}
	okCall, isCall := b.Exprs.Call(unwrapGroups(b, someArm.Result))
	if !isCall || ctorName(b, someArm.Result) != "Ok" || len(okCall.Args) != 1 {
		return
	}
	if ident, isIdent := b.Exprs.Ident(okCall.Args[0]); !isIdent || ident.Name != bind {
		return
	}
	// None => Err(e), eager argument must be pure.
	errCall, isCall := b.Exprs.Call(unwrapGroups(b, noneArm.Result))
	if !isCall || ctorName(b, noneArm.Result) != "Err" || len(errCall.Args) != 1 {
		return
	}
	if HasSideEffects(b, errCall.Args[0]) {
		return
	}

	expr := b.Exprs.Get(id)
	replacement := atomText(ctx, cmp.Subject) + ".ok_or(" + ctx.ExprText(errCall.Args[0]) + ")"
	ctx.Report(expr.Span, "manual Option to Result conversion, consider `ok_or`").
		WithFix(fix.ReplaceSpan("replace with "+replacement, expr.Span, replacement, ctx.Text(expr.Span),
			fix.WithID("use_ok_or"), fix.Preferred(),
			fix.WithApplicability(diag.FixSafeWithHeuristics))).
		Emit()
}

// unwrapShape matches the common frame of manual_unwrap_or and
// manual_expect: a two-arm compare where the Some/Ok arm returns its
// own binding untouched. The other arm is returned for the caller to
// inspect.
func unwrapShape(b *ast.Builder, id ast.ExprID) (unwrapArm, fallbackArm ast.CompareArm, ok bool) {
	cmp, isCmp := b.Exprs.Compare(id)
	if !isCmp || len(cmp.Arms) != 2 {
		return unwrapArm, fallbackArm, false
	}
	if HasSideEffects(b, cmp.Subject) {
		return unwrapArm, fallbackArm, false
	}

	var haveUnwrap, haveFallback bool
	for _, arm := range cmp.Arms {
		if arm.IsFinally || arm.Guard.IsValid() {
			return unwrapArm, fallbackArm, false
		}
		switch ctorName(b, arm.Pattern) {
		case "Some", "Ok":
			bind, isBind := singleBinding(b, arm.Pattern)
			if !isBind || !arm.Result.IsValid() {
				return unwrapArm, fallbackArm, false
			}
			ident, isIdent := b.Exprs.Ident(unwrapGroups(b, arm.Result))
			if !isIdent || ident.Name != bind {
				return unwrapArm, fallbackArm, false
			}
			unwrapArm, haveUnwrap = arm, true
		case "None", "Err":
			fallbackArm, haveFallback = arm, true
		default:
			return unwrapArm, fallbackArm, false
		}
	}
	return unwrapArm, fallbackArm, haveUnwrap && haveFallback
}

// panicArg matches a fallback arm of the form `panic(msg)` and returns
// the message expression.
func panicArg(b *ast.Builder, arm ast.CompareArm) (ast.ExprID, bool) {
	if !arm.Result.IsValid() {
		return ast.NoExprID, false
	}
	call, ok := b.Exprs.Call(unwrapGroups(b, arm.Result))
	if !ok || len(call.Args) != 1 {
		return ast.NoExprID, false
	}
	if ident, ok := b.Exprs.Ident(call.Callee); !ok || ident.Name != "panic" {
		return ast.NoExprID, false
	}
	return call.Args[0], true
}
