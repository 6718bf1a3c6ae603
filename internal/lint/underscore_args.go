package lint

import (
	"strings"

	"surgelint/internal/ast"
	"surgelint/internal/diag"
)

// DuplicateUnderscoreArgs flags parameter pairs that differ only by a
// leading underscore, like `fn f(a: int, _a: int)`. The near-duplicate
// names make the signature and its call sites harder to read.
type DuplicateUnderscoreArgs struct{}

func (DuplicateUnderscoreArgs) Meta() Meta {
	return Meta{
		ID:        "duplicate_underscore_args",
		Summary:   "parameters that differ only by a leading underscore",
		Severity:  diag.SevWarning,
		DefaultOn: true,
		HasFix:    false,
	}
}

func (DuplicateUnderscoreArgs) CheckItem(ctx *Context, id ast.ItemID) {
	fn, ok := ctx.Builder.Items.Fn(id)
	if !ok {
		return
	}
	// stripped name -> the spelling that claimed it first.
	seen := make(map[string]string, len(fn.Params))
	for _, param := range fn.Params {
		if param.Name == "_" {
			continue
		}
		stripped := strings.TrimPrefix(param.Name, "_")
		if first, dup := seen[stripped]; dup {
			ctx.Report(param.Span,
				"parameter `%s` differs from `%s` only by a leading underscore", param.Name, first).
				Emit()
			continue
		}
		seen[stripped] = param.Name
	}
}
