package lint

import (
	"fmt"

	"surgelint/internal/ast"
	"surgelint/internal/diag"
	"surgelint/internal/sema"
	"surgelint/internal/source"
)

// Meta describes one lint rule for registration, configuration and the
// `rules` listing.
type Meta struct {
	ID        diag.Code
	Summary   string
	Severity  diag.Severity
	DefaultOn bool
	HasFix    bool
}

// Rule is the base contract every lint rule satisfies. Concrete rules
// additionally implement one or more of the Check* interfaces below;
// the engine dispatches by node kind during traversal.
type Rule interface {
	Meta() Meta
}

// ExprRule is called for every expression in pre-order.
type ExprRule interface {
	Rule
	CheckExpr(ctx *Context, id ast.ExprID)
}

// StmtRule is called for every statement in pre-order.
type StmtRule interface {
	Rule
	CheckStmt(ctx *Context, id ast.StmtID)
}

// ItemRule is called once per top-level item.
type ItemRule interface {
	Rule
	CheckItem(ctx *Context, id ast.ItemID)
}

// Context carries everything a rule needs while checking one file.
type Context struct {
	File    *source.File
	Builder *ast.Builder
	Facts   *sema.Facts

	engine *Engine
	rule   Meta
}

// Text returns the source text covered by span.
func (c *Context) Text(span source.Span) string {
	if int(span.End) > len(c.File.Content) || span.Start > span.End {
		return ""
	}
	return string(c.File.Content[span.Start:span.End])
}

// ExprText returns the source text of an expression as written.
func (c *Context) ExprText(id ast.ExprID) string {
	expr := c.Builder.Exprs.Get(id)
	if expr == nil {
		return ""
	}
	return c.Text(expr.Span)
}

// Report starts a diagnostic for the current rule. The severity and
// the decision to emit at all are resolved against the suppression
// state at the reported span; a suppressed report becomes a no-op.
func (c *Context) Report(span source.Span, format string, args ...any) *diag.ReportBuilder {
	sev, on := c.engine.resolve(c.rule)
	if !on {
		return diag.NewReportBuilder(diag.NopReporter{}, sev, c.rule.ID, span, "")
	}
	msg := fmt.Sprintf(format, args...)
	return diag.NewReportBuilder(c.engine.reporter, sev, c.rule.ID, span, msg)
}
