package parser

import (
	"fmt"

	"surgelint/internal/ast"
	"surgelint/internal/diag"
	"surgelint/internal/lexer"
	"surgelint/internal/source"
	"surgelint/internal/token"
)

// Diagnostic codes emitted by the parser.
const (
	CodeUnexpectedToken  diag.Code = "unexpected_token"
	CodeExpectSemicolon  diag.Code = "expect_semicolon"
	CodeExpectExpression diag.Code = "expect_expression"
	CodeExpectIdentifier diag.Code = "expect_identifier"
	CodeExpectType       diag.Code = "expect_type"
)

// Options configures a parse.
type Options struct {
	Reporter  diag.Reporter
	MaxErrors uint
}

// Result is the outcome of parsing one file.
type Result struct {
	File ast.FileID
}

// Parser consumes a token stream and produces AST nodes through a
// Builder. It is error-tolerant: on unexpected input it reports and
// resynchronizes so that linting can still run over what parsed.
type Parser struct {
	builder  *ast.Builder
	reporter diag.Reporter
	fileID   source.FileID

	tokens []token.Token
	pos    int

	errors    uint
	maxErrors uint
}

// ParseFile tokenizes and parses one file into builder.
func ParseFile(file *source.File, builder *ast.Builder, opts Options) Result {
	reporter := opts.Reporter
	if reporter == nil {
		reporter = diag.NopReporter{}
	}

	lx := lexer.New(file, lexer.Options{Reporter: reporter})
	var tokens []token.Token
	for {
		tok := lx.Next()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			break
		}
	}

	maxErrors := opts.MaxErrors
	if maxErrors == 0 {
		maxErrors = 100
	}

	p := &Parser{
		builder:   builder,
		reporter:  reporter,
		fileID:    file.ID,
		tokens:    tokens,
		maxErrors: maxErrors,
	}
	return Result{File: p.parseFile()}
}

func (p *Parser) peek() token.Token {
	return p.tokens[p.pos]
}

func (p *Parser) peekAt(offset int) token.Token {
	idx := p.pos + offset
	if idx >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1] // EOF
	}
	return p.tokens[idx]
}

func (p *Parser) at(kind token.Kind) bool {
	return p.peek().Kind == kind
}

func (p *Parser) advance() token.Token {
	tok := p.tokens[p.pos]
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return tok
}

func (p *Parser) eat(kind token.Kind) (token.Token, bool) {
	if p.at(kind) {
		return p.advance(), true
	}
	return p.peek(), false
}

func (p *Parser) expect(kind token.Kind, code diag.Code) (token.Token, bool) {
	if tok, ok := p.eat(kind); ok {
		return tok, true
	}
	tok := p.peek()
	p.errorf(code, tok.Span, "expected %s, found %s", kind, tok.Kind)
	return tok, false
}

func (p *Parser) errorf(code diag.Code, span source.Span, format string, args ...any) {
	if p.errors >= p.maxErrors {
		return
	}
	p.errors++
	diag.ReportError(p.reporter, code, span, fmt.Sprintf(format, args...)).Emit()
}

// parseFile parses top-level items until EOF.
func (p *Parser) parseFile() ast.FileID {
	start := p.peek().Span
	var items []ast.ItemID

	for !p.at(token.EOF) {
		attrs := p.parseAttrs()
		switch p.peek().Kind {
		case token.KwFn:
			if id := p.parseFnItem(attrs); id.IsValid() {
				items = append(items, id)
			}
		default:
			tok := p.advance()
			p.errorf(CodeUnexpectedToken, tok.Span, "unexpected token %s at top level", tok.Kind)
		}
	}

	span := start.Cover(p.peek().Span)
	return p.builder.Files.New(span, items)
}

// parseAttrs parses zero or more `@name(args...)` attributes.
func (p *Parser) parseAttrs() []ast.AttrID {
	var attrs []ast.AttrID
	for p.at(token.At) {
		atTok := p.advance()
		nameTok, ok := p.expect(token.Ident, CodeExpectIdentifier)
		if !ok {
			continue
		}
		attr := ast.Attr{
			Name: nameTok.Text,
			Span: atTok.Span.Cover(nameTok.Span),
		}
		if p.at(token.LParen) {
			p.advance()
			for !p.at(token.RParen) && !p.at(token.EOF) {
				argTok := p.advance()
				text := argTok.Text
				if argTok.Kind == token.StringLit && len(text) >= 2 {
					text = text[1 : len(text)-1]
				}
				attr.Args = append(attr.Args, ast.AttrArg{Text: text, Span: argTok.Span})
				if !p.at(token.Comma) {
					break
				}
				p.advance()
			}
			if rp, ok := p.expect(token.RParen, CodeUnexpectedToken); ok {
				attr.Span = attr.Span.Cover(rp.Span)
			}
		}
		attrs = append(attrs, p.builder.NewAttr(attr))
	}
	return attrs
}

// parseTypeRef parses a textual type annotation: an identifier with an
// optional angle-bracketed argument list, e.g. `Option<int>`.
func (p *Parser) parseTypeRef() ast.TypeRef {
	nameTok, ok := p.expect(token.Ident, CodeExpectType)
	if !ok {
		return ast.TypeRef{}
	}
	name := nameTok.Text
	span := nameTok.Span
	if p.at(token.Lt) {
		depth := 0
		for !p.at(token.EOF) {
			tok := p.advance()
			name += tok.Text
			span = span.Cover(tok.Span)
			switch tok.Kind {
			case token.Lt:
				depth++
			case token.Gt:
				depth--
			case token.Shr:
				depth -= 2
			}
			if depth <= 0 {
				break
			}
		}
	}
	return ast.TypeRef{Name: name, Span: span}
}

// parseFnItem parses `fn name(params) [-> type] block`.
func (p *Parser) parseFnItem(attrs []ast.AttrID) ast.ItemID {
	fnTok := p.advance() // fn
	nameTok, ok := p.expect(token.Ident, CodeExpectIdentifier)
	if !ok {
		p.recoverTo(token.RBrace)
		return ast.NoItemID
	}

	data := ast.ItemFnData{
		Name:     nameTok.Text,
		NameSpan: nameTok.Span,
	}

	if _, ok := p.expect(token.LParen, CodeUnexpectedToken); ok {
		for !p.at(token.RParen) && !p.at(token.EOF) {
			paramTok, ok := p.expect(token.Ident, CodeExpectIdentifier)
			if !ok {
				break
			}
			param := ast.FnParam{Name: paramTok.Text, Span: paramTok.Span}
			if p.at(token.Colon) {
				p.advance()
				param.Type = p.parseTypeRef()
				param.Span = param.Span.Cover(param.Type.Span)
			}
			data.Params = append(data.Params, param)
			if !p.at(token.Comma) {
				break
			}
			p.advance()
		}
		p.expect(token.RParen, CodeUnexpectedToken)
	}

	if p.at(token.Arrow) {
		arrowTok := p.advance()
		data.Ret = p.parseTypeRef()
		data.ArrowSpan = arrowTok.Span.Cover(data.Ret.Span)
	}

	data.Body = p.parseBlock()

	span := fnTok.Span
	if body := p.builder.Stmts.Get(data.Body); body != nil {
		span = span.Cover(body.Span)
	}
	return p.builder.Items.NewFn(span, data, attrs)
}

// recoverTo skips tokens until after the given kind or EOF.
func (p *Parser) recoverTo(kind token.Kind) {
	for !p.at(token.EOF) {
		tok := p.advance()
		if tok.Kind == kind {
			return
		}
	}
}
