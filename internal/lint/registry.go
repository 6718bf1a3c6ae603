package lint

import (
	"sort"

	"surgelint/internal/diag"
)

// Registry holds the known rules keyed by ID.
type Registry struct {
	rules map[diag.Code]Rule
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{rules: make(map[diag.Code]Rule)}
}

// Register adds a rule. Registering the same ID twice panics; rule IDs
// are a fixed namespace and a collision is a programming error.
func (r *Registry) Register(rule Rule) {
	id := rule.Meta().ID
	if _, exists := r.rules[id]; exists {
		panic("lint: duplicate rule id " + string(id))
	}
	r.rules[id] = rule
}

// Get returns the rule with the given ID.
func (r *Registry) Get(id diag.Code) (Rule, bool) {
	rule, ok := r.rules[id]
	return rule, ok
}

// Known reports whether id names a registered rule.
func (r *Registry) Known(id diag.Code) bool {
	_, ok := r.rules[id]
	return ok
}

// All returns every registered rule sorted by ID.
func (r *Registry) All() []Rule {
	out := make([]Rule, 0, len(r.rules))
	for _, rule := range r.rules {
		out = append(out, rule)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Meta().ID < out[j].Meta().ID
	})
	return out
}

// Default returns a registry populated with every built-in rule.
func Default() *Registry {
	r := NewRegistry()
	r.Register(&DoubleComparison{})
	r.Register(&EqOp{})
	r.Register(&RedundantOp{})
	r.Register(&ErasingOp{})
	r.Register(&BoolComparison{})
	r.Register(&DoubleParens{})
	r.Register(&IntOpOne{})
	r.Register(&BitwiseForParity{})
	r.Register(&CollapsibleIf{})
	r.Register(&CollapsibleIfElse{})
	r.Register(&IfsSameCond{})
	r.Register(&LoopForWhile{})
	r.Register(&LoopComparePop{})
	r.Register(ManualIsSome())
	r.Register(ManualIsNone())
	r.Register(ManualIsOk())
	r.Register(ManualIsErr())
	r.Register(&ManualUnwrapOr{})
	r.Register(&ManualOkOr{})
	r.Register(&ManualExpect{})
	r.Register(&UnitReturnType{})
	r.Register(&DuplicateUnderscoreArgs{})
	r.Register(&RedundantEnumBrackets{})
	r.Register(&CloneOnCopy{})
	r.Register(&UnwrapSyscall{})
	r.Register(&PanicUse{})
	return r
}
