package token

// Kind enumerates token kinds for the linted Surge subset.
type Kind uint8

const (
	EOF Kind = iota
	Error

	Ident
	IntLit
	StringLit

	// Operators and punctuation
	Plus
	Minus
	Star
	Slash
	Percent
	Amp
	Pipe
	Caret
	Shl
	Shr
	AndAnd
	OrOr
	Bang
	EqEq
	BangEq
	Lt
	LtEq
	Gt
	GtEq
	Assign
	PlusAssign
	MinusAssign
	StarAssign
	SlashAssign
	Arrow
	FatArrow
	LParen
	RParen
	LBrace
	RBrace
	LBracket
	RBracket
	At
	Underscore
	Semicolon
	Comma
	Dot
	Colon

	// Keywords
	KwFn
	KwLet
	KwMut
	KwIf
	KwElse
	KwWhile
	KwLoop
	KwFor
	KwIn
	KwBreak
	KwContinue
	KwReturn
	KwCompare
	KwFinally
	KwTrue
	KwFalse
)

var kindNames = map[Kind]string{
	EOF:         "EOF",
	Error:       "error",
	Ident:       "identifier",
	IntLit:      "int literal",
	StringLit:   "string literal",
	Plus:        "+",
	Minus:       "-",
	Star:        "*",
	Slash:       "/",
	Percent:     "%",
	Amp:         "&",
	Pipe:        "|",
	Caret:       "^",
	Shl:         "<<",
	Shr:         ">>",
	AndAnd:      "&&",
	OrOr:        "||",
	Bang:        "!",
	EqEq:        "==",
	BangEq:      "!=",
	Lt:          "<",
	LtEq:        "<=",
	Gt:          ">",
	GtEq:        ">=",
	Assign:      "=",
	PlusAssign:  "+=",
	MinusAssign: "-=",
	StarAssign:  "*=",
	SlashAssign: "/=",
	Arrow:       "->",
	FatArrow:    "=>",
	LParen:      "(",
	RParen:      ")",
	LBrace:      "{",
	RBrace:      "}",
	LBracket:    "[",
	RBracket:    "]",
	At:          "@",
	Underscore:  "_",
	Semicolon:   ";",
	Comma:       ",",
	Dot:         ".",
	Colon:       ":",
	KwFn:        "fn",
	KwLet:       "let",
	KwMut:       "mut",
	KwIf:        "if",
	KwElse:      "else",
	KwWhile:     "while",
	KwLoop:      "loop",
	KwFor:       "for",
	KwIn:        "in",
	KwBreak:     "break",
	KwContinue:  "continue",
	KwReturn:    "return",
	KwCompare:   "compare",
	KwFinally:   "finally",
	KwTrue:      "true",
	KwFalse:     "false",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}
