package ast

import (
	"surgelint/internal/source"
)

// ExprKind enumerates the different kinds of expressions.
type ExprKind uint8

const (
	// ExprIdent represents an identifier expression.
	ExprIdent ExprKind = iota
	// ExprLit represents a literal expression.
	ExprLit
	// ExprUnary represents a unary expression.
	ExprUnary
	// ExprBinary represents a binary expression.
	ExprBinary
	// ExprGroup represents a parenthesized expression.
	ExprGroup
	// ExprCall represents a function or method call expression.
	ExprCall
	// ExprMember represents member access (receiver.name).
	ExprMember
	// ExprIndex represents an index expression.
	ExprIndex
	// ExprCompare represents a compare expression with pattern arms.
	ExprCompare
	// ExprWildcard represents the `_` pattern.
	ExprWildcard
)

// Expr represents an expression node in the AST.
type Expr struct {
	Kind    ExprKind
	Span    source.Span
	Payload PayloadID
}

// ExprBinaryOp enumerates binary operator kinds.
type ExprBinaryOp uint8

const (
	// Arithmetic

	// ExprBinaryAdd represents the addition operator (+).
	ExprBinaryAdd ExprBinaryOp = iota
	ExprBinarySub
	ExprBinaryMul
	ExprBinaryDiv
	ExprBinaryMod

	// Bitwise

	// ExprBinaryBitAnd represents the bitwise AND operator (&).
	ExprBinaryBitAnd
	ExprBinaryBitOr
	ExprBinaryBitXor
	ExprBinaryShiftLeft
	ExprBinaryShiftRight

	// Logical

	// ExprBinaryLogicalAnd represents the logical AND operator (&&).
	ExprBinaryLogicalAnd
	ExprBinaryLogicalOr

	// Comparisons

	// ExprBinaryEq represents the equality operator (==).
	ExprBinaryEq
	ExprBinaryNotEq
	ExprBinaryLess
	ExprBinaryLessEq
	ExprBinaryGreater
	ExprBinaryGreaterEq

	// Assignment

	// ExprBinaryAssign represents the assignment operator (=).
	ExprBinaryAssign
	ExprBinaryAddAssign
	ExprBinarySubAssign
	ExprBinaryMulAssign
	ExprBinaryDivAssign
)

// String returns the symbol representation of a binary operator.
func (op ExprBinaryOp) String() string {
	switch op {
	case ExprBinaryAdd:
		return "+"
	case ExprBinarySub:
		return "-"
	case ExprBinaryMul:
		return "*"
	case ExprBinaryDiv:
		return "/"
	case ExprBinaryMod:
		return "%"
	case ExprBinaryBitAnd:
		return "&"
	case ExprBinaryBitOr:
		return "|"
	case ExprBinaryBitXor:
		return "^"
	case ExprBinaryShiftLeft:
		return "<<"
	case ExprBinaryShiftRight:
		return ">>"
	case ExprBinaryLogicalAnd:
		return "&&"
	case ExprBinaryLogicalOr:
		return "||"
	case ExprBinaryEq:
		return "=="
	case ExprBinaryNotEq:
		return "!="
	case ExprBinaryLess:
		return "<"
	case ExprBinaryLessEq:
		return "<="
	case ExprBinaryGreater:
		return ">"
	case ExprBinaryGreaterEq:
		return ">="
	case ExprBinaryAssign:
		return "="
	case ExprBinaryAddAssign:
		return "+="
	case ExprBinarySubAssign:
		return "-="
	case ExprBinaryMulAssign:
		return "*="
	case ExprBinaryDivAssign:
		return "/="
	}
	return "?"
}

// IsComparison reports whether op is one of the six relational operators.
func (op ExprBinaryOp) IsComparison() bool {
	switch op {
	case ExprBinaryEq, ExprBinaryNotEq, ExprBinaryLess, ExprBinaryLessEq,
		ExprBinaryGreater, ExprBinaryGreaterEq:
		return true
	default:
		return false
	}
}

// IsAssign reports whether op mutates its left operand.
func (op ExprBinaryOp) IsAssign() bool {
	switch op {
	case ExprBinaryAssign, ExprBinaryAddAssign, ExprBinarySubAssign,
		ExprBinaryMulAssign, ExprBinaryDivAssign:
		return true
	default:
		return false
	}
}

// ExprUnaryOp enumerates unary operator kinds.
type ExprUnaryOp uint8

const (
	// ExprUnaryNeg represents arithmetic negation (-).
	ExprUnaryNeg ExprUnaryOp = iota
	// ExprUnaryNot represents logical negation (!).
	ExprUnaryNot
)

func (op ExprUnaryOp) String() string {
	switch op {
	case ExprUnaryNeg:
		return "-"
	case ExprUnaryNot:
		return "!"
	}
	return "?"
}

// ExprLitKind enumerates literal kinds.
type ExprLitKind uint8

const (
	ExprLitInt ExprLitKind = iota
	ExprLitBool
	ExprLitString
)

// Payload side tables.

type ExprIdentData struct {
	Name string
}

type ExprLiteralData struct {
	Kind ExprLitKind
	// Text is the literal spelling as written ("42", "true", "\"s\"").
	Text string
}

type ExprUnaryData struct {
	Op      ExprUnaryOp
	Operand ExprID
}

type ExprBinaryData struct {
	Op    ExprBinaryOp
	Left  ExprID
	Right ExprID
	// OpSpan covers the operator token itself; fixes that only swap an
	// operator edit this span.
	OpSpan source.Span
}

type ExprGroupData struct {
	Inner ExprID
}

type ExprCallData struct {
	Callee ExprID
	Args   []ExprID
}

type ExprMemberData struct {
	Recv     ExprID
	Name     string
	NameSpan source.Span
}

type ExprIndexData struct {
	Recv  ExprID
	Index ExprID
}

// CompareArm is one `pattern [if guard] => result;` arm. The result is
// either an expression or a statement body (block, break, continue,
// return); exactly one of Result/Body is set. A finally arm has no
// pattern.
type CompareArm struct {
	Pattern   ExprID
	Guard     ExprID
	Result    ExprID
	Body      StmtID
	IsFinally bool
	Span      source.Span
}

type ExprCompareData struct {
	Subject ExprID
	Arms    []CompareArm
}
