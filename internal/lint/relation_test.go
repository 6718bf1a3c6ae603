package lint

import (
	"testing"

	"surgelint/internal/ast"
)

var cmpOps = []ast.ExprBinaryOp{
	ast.ExprBinaryLess,
	ast.ExprBinaryLessEq,
	ast.ExprBinaryEq,
	ast.ExprBinaryNotEq,
	ast.ExprBinaryGreater,
	ast.ExprBinaryGreaterEq,
}

// truth evaluates a comparison operator on concrete integers.
func truth(op ast.ExprBinaryOp, a, b int) bool {
	switch op {
	case ast.ExprBinaryLess:
		return a < b
	case ast.ExprBinaryLessEq:
		return a <= b
	case ast.ExprBinaryEq:
		return a == b
	case ast.ExprBinaryNotEq:
		return a != b
	case ast.ExprBinaryGreater:
		return a > b
	case ast.ExprBinaryGreaterEq:
		return a >= b
	}
	return false
}

// TestClassify_Exhaustive cross-checks all 72 operator combinations
// against direct evaluation over the three possible orderings of the
// operands.
func TestClassify_Exhaustive(t *testing.T) {
	// One representative pair per ordering: less, equal, greater.
	pairs := [3][2]int{{1, 2}, {2, 2}, {3, 2}}

	pattern := func(op ast.ExprBinaryOp) (p [3]bool) {
		for i, pr := range pairs {
			p[i] = truth(op, pr[0], pr[1])
		}
		return p
	}

	for _, lhs := range cmpOps {
		for _, rhs := range cmpOps {
			for _, isAnd := range []bool{true, false} {
				var combined [3]bool
				for i, pr := range pairs {
					l := truth(lhs, pr[0], pr[1])
					r := truth(rhs, pr[0], pr[1])
					if isAnd {
						combined[i] = l && r
					} else {
						combined[i] = l || r
					}
				}

				cls, ok := Classify(lhs, rhs, isAnd)
				if !ok {
					t.Fatalf("Classify(%v, %v, %v) rejected comparison operators", lhs, rhs, isAnd)
				}

				switch {
				case combined == [3]bool{false, false, false}:
					if cls.Outcome != OutcomeContradictory {
						t.Errorf("%v/%v and=%v: got %v, want contradictory", lhs, rhs, isAnd, cls.Outcome)
					}
				case combined == [3]bool{true, true, true}:
					if cls.Outcome != OutcomeTautological {
						t.Errorf("%v/%v and=%v: got %v, want tautological", lhs, rhs, isAnd, cls.Outcome)
					}
				case combined == pattern(lhs) || combined == pattern(rhs):
					if cls.Outcome != OutcomeRedundant {
						t.Errorf("%v/%v and=%v: got %v, want redundant", lhs, rhs, isAnd, cls.Outcome)
					}
					if pattern(cls.Op) != combined {
						t.Errorf("%v/%v and=%v: kept op %v does not cover the combination", lhs, rhs, isAnd, cls.Op)
					}
				default:
					// A collapse to == or != re-spells that operator out
					// of its halves and counts as redundant; any other
					// new operator is a simplification.
					want := OutcomeSimplifiable
					if combined == pattern(ast.ExprBinaryEq) || combined == pattern(ast.ExprBinaryNotEq) {
						want = OutcomeRedundant
					}
					if cls.Outcome != want {
						t.Errorf("%v/%v and=%v: got %v, want %v", lhs, rhs, isAnd, cls.Outcome, want)
					}
					if pattern(cls.Op) != combined {
						t.Errorf("%v/%v and=%v: collapsed op %v has wrong truth pattern", lhs, rhs, isAnd, cls.Op)
					}
				}
			}
		}
	}
}

func TestClassify_KnownCases(t *testing.T) {
	tests := []struct {
		name    string
		lhs     ast.ExprBinaryOp
		rhs     ast.ExprBinaryOp
		isAnd   bool
		outcome Outcome
		op      ast.ExprBinaryOp
	}{
		{"eq or less is le", ast.ExprBinaryEq, ast.ExprBinaryLess, false, OutcomeSimplifiable, ast.ExprBinaryLessEq},
		{"eq or greater is ge", ast.ExprBinaryEq, ast.ExprBinaryGreater, false, OutcomeSimplifiable, ast.ExprBinaryGreaterEq},
		{"less or greater is redundant ne", ast.ExprBinaryLess, ast.ExprBinaryGreater, false, OutcomeRedundant, ast.ExprBinaryNotEq},
		{"ge and le is redundant eq", ast.ExprBinaryGreaterEq, ast.ExprBinaryLessEq, true, OutcomeRedundant, ast.ExprBinaryEq},
		{"eq and ne is false", ast.ExprBinaryEq, ast.ExprBinaryNotEq, true, OutcomeContradictory, 0},
		{"less and greater is false", ast.ExprBinaryLess, ast.ExprBinaryGreater, true, OutcomeContradictory, 0},
		{"le or ne is true", ast.ExprBinaryLessEq, ast.ExprBinaryNotEq, false, OutcomeTautological, 0},
		{"le or less is redundant", ast.ExprBinaryLessEq, ast.ExprBinaryLess, false, OutcomeRedundant, ast.ExprBinaryLessEq},
		{"le and less is redundant", ast.ExprBinaryLessEq, ast.ExprBinaryLess, true, OutcomeRedundant, ast.ExprBinaryLess},
		{"same op twice", ast.ExprBinaryLess, ast.ExprBinaryLess, true, OutcomeRedundant, ast.ExprBinaryLess},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cls, ok := Classify(tt.lhs, tt.rhs, tt.isAnd)
			if !ok {
				t.Fatal("Classify rejected comparison operators")
			}
			if cls.Outcome != tt.outcome {
				t.Fatalf("outcome = %v, want %v", cls.Outcome, tt.outcome)
			}
			if (tt.outcome == OutcomeSimplifiable || tt.outcome == OutcomeRedundant) && cls.Op != tt.op {
				t.Fatalf("op = %v, want %v", cls.Op, tt.op)
			}
		})
	}
}

func TestClassify_RejectsNonComparison(t *testing.T) {
	if _, ok := Classify(ast.ExprBinaryAdd, ast.ExprBinaryLess, true); ok {
		t.Fatal("Classify accepted a non-comparison operator")
	}
}

func TestMirror(t *testing.T) {
	if mirror(ast.ExprBinaryLess) != ast.ExprBinaryGreater {
		t.Fatal("mirror(<) should be >")
	}
	if mirror(ast.ExprBinaryGreaterEq) != ast.ExprBinaryLessEq {
		t.Fatal("mirror(>=) should be <=")
	}
	if mirror(ast.ExprBinaryEq) != ast.ExprBinaryEq {
		t.Fatal("mirror(==) should stay ==")
	}
}
