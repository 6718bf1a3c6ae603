package lexer

import (
	"fmt"

	"surgelint/internal/diag"
	"surgelint/internal/source"
	"surgelint/internal/token"
)

// Diagnostic codes emitted by the lexer.
const (
	CodeUnknownChar         diag.Code = "unknown_character"
	CodeUnterminatedString  diag.Code = "unterminated_string"
	CodeUnterminatedComment diag.Code = "unterminated_comment"
)

// Options configures a Lexer.
type Options struct {
	Reporter diag.Reporter
}

// Lexer produces tokens from a single source file. Whitespace and
// comments are skipped; they carry no meaning for linting because
// fixes address byte spans directly.
type Lexer struct {
	file     *source.File
	reporter diag.Reporter
	pos      uint32
}

// New creates a lexer over file.
func New(file *source.File, opts Options) *Lexer {
	reporter := opts.Reporter
	if reporter == nil {
		reporter = diag.NopReporter{}
	}
	return &Lexer{
		file:     file,
		reporter: reporter,
	}
}

func (lx *Lexer) span(start, end uint32) source.Span {
	return source.Span{File: lx.file.ID, Start: start, End: end}
}

func (lx *Lexer) peek() byte {
	if int(lx.pos) >= len(lx.file.Content) {
		return 0
	}
	return lx.file.Content[lx.pos]
}

func (lx *Lexer) peekAt(offset uint32) byte {
	idx := int(lx.pos + offset)
	if idx >= len(lx.file.Content) {
		return 0
	}
	return lx.file.Content[idx]
}

func (lx *Lexer) eof() bool {
	return int(lx.pos) >= len(lx.file.Content)
}

// Next returns the next token, emitting diagnostics for malformed
// input. After the end of input it keeps returning EOF tokens.
func (lx *Lexer) Next() token.Token {
	lx.skipTrivia()
	start := lx.pos
	if lx.eof() {
		return token.Token{Kind: token.EOF, Span: lx.span(start, start)}
	}

	c := lx.peek()
	switch {
	case isIdentStart(c):
		return lx.scanIdent()
	case isDigit(c):
		return lx.scanNumber()
	case c == '"':
		return lx.scanString()
	default:
		return lx.scanOperator()
	}
}

func (lx *Lexer) skipTrivia() {
	for !lx.eof() {
		c := lx.peek()
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			lx.pos++
		case c == '/' && lx.peekAt(1) == '/':
			for !lx.eof() && lx.peek() != '\n' {
				lx.pos++
			}
		case c == '/' && lx.peekAt(1) == '*':
			start := lx.pos
			lx.pos += 2
			closed := false
			for !lx.eof() {
				if lx.peek() == '*' && lx.peekAt(1) == '/' {
					lx.pos += 2
					closed = true
					break
				}
				lx.pos++
			}
			if !closed {
				diag.ReportError(lx.reporter, CodeUnterminatedComment,
					lx.span(start, lx.pos), "unterminated block comment").Emit()
			}
		default:
			return
		}
	}
}

func (lx *Lexer) scanIdent() token.Token {
	start := lx.pos
	for !lx.eof() && isIdentCont(lx.peek()) {
		lx.pos++
	}
	text := string(lx.file.Content[start:lx.pos])
	return token.Token{
		Kind: token.LookupKeyword(text),
		Span: lx.span(start, lx.pos),
		Text: text,
	}
}

func (lx *Lexer) scanNumber() token.Token {
	start := lx.pos
	for !lx.eof() && (isDigit(lx.peek()) || lx.peek() == '_') {
		lx.pos++
	}
	text := string(lx.file.Content[start:lx.pos])
	return token.Token{
		Kind: token.IntLit,
		Span: lx.span(start, lx.pos),
		Text: text,
	}
}

func (lx *Lexer) scanString() token.Token {
	start := lx.pos
	lx.pos++ // opening quote
	for !lx.eof() {
		c := lx.peek()
		if c == '\\' {
			lx.pos += 2
			continue
		}
		if c == '"' {
			lx.pos++
			text := string(lx.file.Content[start:lx.pos])
			return token.Token{Kind: token.StringLit, Span: lx.span(start, lx.pos), Text: text}
		}
		if c == '\n' {
			break
		}
		lx.pos++
	}
	diag.ReportError(lx.reporter, CodeUnterminatedString,
		lx.span(start, lx.pos), "unterminated string literal").Emit()
	return token.Token{Kind: token.Error, Span: lx.span(start, lx.pos)}
}

// twoByteOps maps the first byte to candidate two-byte operators.
var twoByteOps = map[string]token.Kind{
	"&&": token.AndAnd,
	"||": token.OrOr,
	"==": token.EqEq,
	"!=": token.BangEq,
	"<=": token.LtEq,
	">=": token.GtEq,
	"<<": token.Shl,
	">>": token.Shr,
	"->": token.Arrow,
	"=>": token.FatArrow,
	"+=": token.PlusAssign,
	"-=": token.MinusAssign,
	"*=": token.StarAssign,
	"/=": token.SlashAssign,
}

var oneByteOps = map[byte]token.Kind{
	'+': token.Plus,
	'-': token.Minus,
	'*': token.Star,
	'/': token.Slash,
	'%': token.Percent,
	'&': token.Amp,
	'|': token.Pipe,
	'^': token.Caret,
	'!': token.Bang,
	'<': token.Lt,
	'>': token.Gt,
	'=': token.Assign,
	'(': token.LParen,
	')': token.RParen,
	'{': token.LBrace,
	'}': token.RBrace,
	'[': token.LBracket,
	']': token.RBracket,
	'@': token.At,
	';': token.Semicolon,
	',': token.Comma,
	'.': token.Dot,
	':': token.Colon,
}

func (lx *Lexer) scanOperator() token.Token {
	start := lx.pos
	if !lx.eof() {
		pair := string([]byte{lx.peek(), lx.peekAt(1)})
		if kind, ok := twoByteOps[pair]; ok {
			lx.pos += 2
			return token.Token{Kind: kind, Span: lx.span(start, lx.pos), Text: pair}
		}
	}
	c := lx.peek()
	if kind, ok := oneByteOps[c]; ok {
		lx.pos++
		return token.Token{Kind: kind, Span: lx.span(start, lx.pos), Text: string(c)}
	}

	lx.pos++
	diag.ReportError(lx.reporter, CodeUnknownChar,
		lx.span(start, lx.pos), fmt.Sprintf("unknown character %q", c)).Emit()
	return token.Token{Kind: token.Error, Span: lx.span(start, lx.pos)}
}

func isIdentStart(c byte) bool {
	return c == '_' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func isIdentCont(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}
