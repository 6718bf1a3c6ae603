package lint

import (
	"surgelint/internal/ast"
)

// RelSet is a set of the three possible orderings between two values.
// Every comparison operator denotes such a set: `<=` is {less, equal},
// `!=` is {less, greater}, and so on. Conjunction intersects the sets,
// disjunction unites them, which turns double-comparison analysis into
// set algebra.
type RelSet uint8

const (
	relLess RelSet = 1 << iota
	relEqual
	relGreater

	relNone RelSet = 0
	relAll         = relLess | relEqual | relGreater
)

// relOf maps a comparison operator to its ordering set.
func relOf(op ast.ExprBinaryOp) (RelSet, bool) {
	switch op {
	case ast.ExprBinaryLess:
		return relLess, true
	case ast.ExprBinaryLessEq:
		return relLess | relEqual, true
	case ast.ExprBinaryEq:
		return relEqual, true
	case ast.ExprBinaryNotEq:
		return relLess | relGreater, true
	case ast.ExprBinaryGreater:
		return relGreater, true
	case ast.ExprBinaryGreaterEq:
		return relEqual | relGreater, true
	default:
		return relNone, false
	}
}

// opOf is the inverse of relOf for the six representable proper
// subsets. The empty and full sets have no operator spelling.
func opOf(set RelSet) (ast.ExprBinaryOp, bool) {
	switch set {
	case relLess:
		return ast.ExprBinaryLess, true
	case relLess | relEqual:
		return ast.ExprBinaryLessEq, true
	case relEqual:
		return ast.ExprBinaryEq, true
	case relLess | relGreater:
		return ast.ExprBinaryNotEq, true
	case relGreater:
		return ast.ExprBinaryGreater, true
	case relEqual | relGreater:
		return ast.ExprBinaryGreaterEq, true
	default:
		return 0, false
	}
}

// mirror flips a comparison so that `a < b` and `b > a` classify the
// same way once operands are put in a canonical order.
func mirror(op ast.ExprBinaryOp) ast.ExprBinaryOp {
	switch op {
	case ast.ExprBinaryLess:
		return ast.ExprBinaryGreater
	case ast.ExprBinaryGreater:
		return ast.ExprBinaryLess
	case ast.ExprBinaryLessEq:
		return ast.ExprBinaryGreaterEq
	case ast.ExprBinaryGreaterEq:
		return ast.ExprBinaryLessEq
	default:
		return op // == and != are symmetric
	}
}

// Outcome classifies a pair of comparisons over the same operands
// joined by && or ||.
type Outcome uint8

const (
	// OutcomeContradictory means the combination is always false.
	OutcomeContradictory Outcome = iota
	// OutcomeTautological means the combination is always true.
	OutcomeTautological
	// OutcomeRedundant means one side already covers the whole
	// combination.
	OutcomeRedundant
	// OutcomeSimplifiable means the combination equals a single
	// different comparison operator.
	OutcomeSimplifiable
)

func (o Outcome) String() string {
	switch o {
	case OutcomeContradictory:
		return "contradictory"
	case OutcomeTautological:
		return "tautological"
	case OutcomeRedundant:
		return "redundant"
	case OutcomeSimplifiable:
		return "simplifiable"
	}
	return "?"
}

// Classification is the result of classifying one double comparison.
// Op carries the single operator the combination reduces to; it is only
// meaningful for OutcomeRedundant and OutcomeSimplifiable.
type Classification struct {
	Outcome Outcome
	Op      ast.ExprBinaryOp
}

// Classify combines two comparison operators over identical operands.
// isAnd selects conjunction. ok is false when either operator is not a
// comparison.
func Classify(lhs, rhs ast.ExprBinaryOp, isAnd bool) (Classification, bool) {
	left, okL := relOf(lhs)
	right, okR := relOf(rhs)
	if !okL || !okR {
		return Classification{}, false
	}

	var combined RelSet
	if isAnd {
		combined = left & right
	} else {
		combined = left | right
	}

	switch combined {
	case relNone:
		return Classification{Outcome: OutcomeContradictory}, true
	case relAll:
		return Classification{Outcome: OutcomeTautological}, true
	}
	if combined == left {
		return Classification{Outcome: OutcomeRedundant, Op: lhs}, true
	}
	if combined == right {
		return Classification{Outcome: OutcomeRedundant, Op: rhs}, true
	}
	op, _ := opOf(combined)
	// Pairs that re-spell equality or inequality out of their halves
	// (`a < b || a > b`, `a <= b && a >= b`) are redundant spellings of
	// a single operator, not a simplification to a tighter one.
	if combined == relEqual || combined == relLess|relGreater {
		return Classification{Outcome: OutcomeRedundant, Op: op}, true
	}
	return Classification{Outcome: OutcomeSimplifiable, Op: op}, true
}
