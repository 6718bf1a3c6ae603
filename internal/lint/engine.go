package lint

import (
	"surgelint/internal/ast"
	"surgelint/internal/diag"
	"surgelint/internal/sema"
	"surgelint/internal/source"
)

// Options configures one lint run.
type Options struct {
	// Registry defaults to Default() when nil.
	Registry *Registry
	Reporter diag.Reporter
	// Enabled overrides each rule's DefaultOn. Severity overrides the
	// rule's default level. Both usually come from surgelint.toml.
	Enabled  map[diag.Code]bool
	Severity map[diag.Code]diag.Severity
}

// Engine walks one file's AST and dispatches registered rules,
// honoring suppression attributes along the way.
type Engine struct {
	registry *Registry
	reporter diag.Reporter
	enabled  map[diag.Code]bool
	severity map[diag.Code]diag.Severity

	exprRules []ExprRule
	stmtRules []StmtRule
	itemRules []ItemRule

	suppress Suppressions
}

// Run lints one parsed file.
func Run(file *source.File, builder *ast.Builder, fileID ast.FileID, facts *sema.Facts, opts Options) {
	registry := opts.Registry
	if registry == nil {
		registry = Default()
	}
	reporter := opts.Reporter
	if reporter == nil {
		reporter = diag.NopReporter{}
	}

	e := &Engine{
		registry: registry,
		reporter: reporter,
		enabled:  opts.Enabled,
		severity: opts.Severity,
	}
	for _, rule := range registry.All() {
		if r, ok := rule.(ExprRule); ok {
			e.exprRules = append(e.exprRules, r)
		}
		if r, ok := rule.(StmtRule); ok {
			e.stmtRules = append(e.stmtRules, r)
		}
		if r, ok := rule.(ItemRule); ok {
			e.itemRules = append(e.itemRules, r)
		}
	}

	root := builder.Files.Get(fileID)
	if root == nil {
		return
	}
	ctx := &Context{
		File:    file,
		Builder: builder,
		Facts:   facts,
		engine:  e,
	}
	for _, itemID := range root.Items {
		e.walkItem(ctx, itemID)
	}
}

// resolve decides whether the rule fires here and at what severity.
// Suppression attributes beat configuration; configuration beats the
// rule's defaults.
func (e *Engine) resolve(meta Meta) (diag.Severity, bool) {
	on := meta.DefaultOn
	if v, ok := e.enabled[meta.ID]; ok {
		on = v
	}
	sev := meta.Severity
	if v, ok := e.severity[meta.ID]; ok {
		sev = v
	}
	switch e.suppress.Resolve(meta.ID) {
	case actAllow:
		on = false
	case actWarn:
		on = true
		sev = diag.SevWarning
	case actDeny:
		on = true
		sev = diag.SevError
	}
	return sev, on
}

func (e *Engine) walkItem(ctx *Context, id ast.ItemID) {
	item := ctx.Builder.Items.Get(id)
	if item == nil {
		return
	}
	e.suppress.Push(decodeAttrs(ctx.Builder, item.Attrs, e.registry, e.reporter))
	defer e.suppress.Pop()

	for _, rule := range e.itemRules {
		ctx.rule = rule.Meta()
		rule.CheckItem(ctx, id)
	}
	if fn, ok := ctx.Builder.Items.Fn(id); ok {
		e.walkStmt(ctx, fn.Body)
	}
}

func (e *Engine) walkStmt(ctx *Context, id ast.StmtID) {
	stmt := ctx.Builder.Stmts.Get(id)
	if stmt == nil {
		return
	}
	e.suppress.Push(decodeAttrs(ctx.Builder, stmt.Attrs, e.registry, e.reporter))
	defer e.suppress.Pop()

	for _, rule := range e.stmtRules {
		ctx.rule = rule.Meta()
		rule.CheckStmt(ctx, id)
	}

	b := ctx.Builder
	switch stmt.Kind {
	case ast.StmtBlock:
		for _, child := range b.Stmts.Block(id).Stmts {
			e.walkStmt(ctx, child)
		}
	case ast.StmtLet:
		if value := b.Stmts.Let(id).Value; value.IsValid() {
			e.walkExpr(ctx, value)
		}
	case ast.StmtExpr:
		e.walkExpr(ctx, b.Stmts.Expr(id).Expr)
	case ast.StmtReturn:
		if value := b.Stmts.Return(id).Value; value.IsValid() {
			e.walkExpr(ctx, value)
		}
	case ast.StmtIf:
		data := b.Stmts.If(id)
		e.walkExpr(ctx, data.Cond)
		e.walkStmt(ctx, data.Then)
		if data.Else.IsValid() {
			e.walkStmt(ctx, data.Else)
		}
	case ast.StmtWhile:
		data := b.Stmts.While(id)
		e.walkExpr(ctx, data.Cond)
		e.walkStmt(ctx, data.Body)
	case ast.StmtLoop:
		e.walkStmt(ctx, b.Stmts.Loop(id).Body)
	case ast.StmtForIn:
		data := b.Stmts.ForIn(id)
		e.walkExpr(ctx, data.Iter)
		e.walkStmt(ctx, data.Body)
	}
}

func (e *Engine) walkExpr(ctx *Context, id ast.ExprID) {
	expr := ctx.Builder.Exprs.Get(id)
	if expr == nil {
		return
	}
	for _, rule := range e.exprRules {
		ctx.rule = rule.Meta()
		rule.CheckExpr(ctx, id)
	}

	b := ctx.Builder
	switch expr.Kind {
	case ast.ExprUnary:
		data, _ := b.Exprs.Unary(id)
		e.walkExpr(ctx, data.Operand)
	case ast.ExprBinary:
		data, _ := b.Exprs.Binary(id)
		e.walkExpr(ctx, data.Left)
		e.walkExpr(ctx, data.Right)
	case ast.ExprGroup:
		data, _ := b.Exprs.Group(id)
		e.walkExpr(ctx, data.Inner)
	case ast.ExprCall:
		data, _ := b.Exprs.Call(id)
		e.walkExpr(ctx, data.Callee)
		for _, arg := range data.Args {
			e.walkExpr(ctx, arg)
		}
	case ast.ExprMember:
		data, _ := b.Exprs.Member(id)
		e.walkExpr(ctx, data.Recv)
	case ast.ExprIndex:
		data, _ := b.Exprs.Index(id)
		e.walkExpr(ctx, data.Recv)
		e.walkExpr(ctx, data.Index)
	case ast.ExprCompare:
		data, _ := b.Exprs.Compare(id)
		e.walkExpr(ctx, data.Subject)
		for _, arm := range data.Arms {
			if arm.Pattern.IsValid() {
				e.walkExpr(ctx, arm.Pattern)
			}
			if arm.Guard.IsValid() {
				e.walkExpr(ctx, arm.Guard)
			}
			if arm.Result.IsValid() {
				e.walkExpr(ctx, arm.Result)
			}
			if arm.Body.IsValid() {
				e.walkStmt(ctx, arm.Body)
			}
		}
	}
}
