package lint

import (
	"fmt"

	"surgelint/internal/ast"
	"surgelint/internal/diag"
)

// CodeUnknownRule is reported when a suppression attribute names a rule
// that does not exist. The attribute itself still applies to the rules
// it does name.
const CodeUnknownRule diag.Code = "unknown_rule"

// allKey marks an attribute that addresses every rule: `@allow(all)`.
const allKey = "all"

// suppressAction is what an attribute requests for a rule.
type suppressAction uint8

const (
	actNone suppressAction = iota
	actAllow
	actWarn
	actDeny
)

// Suppressions resolves the lint level for a rule at the current point
// of the traversal. Frames are pushed when the walk enters an item or
// statement carrying attributes and popped on the way out; the
// innermost frame that mentions a rule wins, so a statement-level
// @deny overrides a function-level @allow.
type Suppressions struct {
	frames []map[string]suppressAction
}

// Push enters a scope with the given attribute decisions. Entries may
// be nil for scopes without relevant attributes; a frame is pushed
// either way so Pop stays symmetric.
func (s *Suppressions) Push(entries map[string]suppressAction) {
	s.frames = append(s.frames, entries)
}

// Pop leaves the innermost scope.
func (s *Suppressions) Pop() {
	s.frames = s.frames[:len(s.frames)-1]
}

// Resolve returns the action in effect for a rule, innermost first.
// A frame that names the rule directly beats its own `all` entry.
func (s *Suppressions) Resolve(id diag.Code) suppressAction {
	for i := len(s.frames) - 1; i >= 0; i-- {
		frame := s.frames[i]
		if frame == nil {
			continue
		}
		if act, ok := frame[string(id)]; ok {
			return act
		}
		if act, ok := frame[allKey]; ok {
			return act
		}
	}
	return actNone
}

// decodeAttrs translates the suppression attributes of one node into a
// frame. Unknown rule names are reported (non-fatal) and skipped.
func decodeAttrs(b *ast.Builder, attrs []ast.AttrID, registry *Registry, reporter diag.Reporter) map[string]suppressAction {
	var entries map[string]suppressAction
	for _, attrID := range attrs {
		attr := b.Attr(attrID)
		if attr == nil {
			continue
		}
		var act suppressAction
		switch attr.Name {
		case "allow":
			act = actAllow
		case "warn":
			act = actWarn
		case "deny":
			act = actDeny
		default:
			continue
		}
		for _, arg := range attr.Args {
			name := arg.Text
			if name != allKey && !registry.Known(diag.Code(name)) {
				diag.ReportWarning(reporter, CodeUnknownRule, arg.Span,
					fmt.Sprintf("unknown lint rule %q in @%s attribute", name, attr.Name)).Emit()
				continue
			}
			if entries == nil {
				entries = make(map[string]suppressAction)
			}
			entries[name] = act
		}
	}
	return entries
}
