package parser

import (
	"surgelint/internal/ast"
	"surgelint/internal/source"
	"surgelint/internal/token"
)

// parseBlock parses `{ stmt* }` and returns the block statement.
func (p *Parser) parseBlock() ast.StmtID {
	lb, ok := p.expect(token.LBrace, CodeUnexpectedToken)
	if !ok {
		return ast.NoStmtID
	}
	var stmts []ast.StmtID
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		before := p.pos
		if id := p.parseStmt(); id.IsValid() {
			stmts = append(stmts, id)
		}
		if p.pos == before {
			// No progress on malformed input; skip one token.
			p.advance()
		}
	}
	rb, _ := p.expect(token.RBrace, CodeUnexpectedToken)
	return p.builder.Stmts.NewBlock(lb.Span.Cover(rb.Span), stmts, nil)
}

// parseStmt parses a single statement, attributes included.
func (p *Parser) parseStmt() ast.StmtID {
	attrs := p.parseAttrs()

	switch p.peek().Kind {
	case token.LBrace:
		id := p.parseBlock()
		if stmt := p.builder.Stmts.Get(id); stmt != nil {
			stmt.Attrs = attrs
		}
		return id
	case token.KwLet:
		return p.parseLet(attrs)
	case token.KwReturn:
		return p.parseReturn(attrs)
	case token.KwBreak:
		tok := p.advance()
		semi := p.expectSemi()
		return p.builder.Stmts.NewBreak(tok.Span.Cover(semi), attrs)
	case token.KwContinue:
		tok := p.advance()
		semi := p.expectSemi()
		return p.builder.Stmts.NewContinue(tok.Span.Cover(semi), attrs)
	case token.KwIf:
		return p.parseIf(attrs)
	case token.KwWhile:
		return p.parseWhile(attrs)
	case token.KwLoop:
		return p.parseLoop(attrs)
	case token.KwFor:
		return p.parseForIn(attrs)
	default:
		return p.parseExprStmt(attrs)
	}
}

func (p *Parser) expectSemi() source.Span {
	tok, ok := p.eat(token.Semicolon)
	if !ok {
		p.errorf(CodeExpectSemicolon, p.peek().Span, "expected ';', found %s", p.peek().Kind)
		return p.peek().Span
	}
	return tok.Span
}

func (p *Parser) parseLet(attrs []ast.AttrID) ast.StmtID {
	letTok := p.advance()
	data := ast.StmtLetData{}

	if p.at(token.KwMut) {
		p.advance()
		data.Mut = true
	}

	nameTok, ok := p.expect(token.Ident, CodeExpectIdentifier)
	if !ok {
		p.recoverTo(token.Semicolon)
		return ast.NoStmtID
	}
	data.Name = nameTok.Text
	data.NameSpan = nameTok.Span

	if p.at(token.Colon) {
		p.advance()
		data.Type = p.parseTypeRef()
	}
	if p.at(token.Assign) {
		p.advance()
		data.Value = p.parseExpr()
	}
	semi := p.expectSemi()
	return p.builder.Stmts.NewLet(letTok.Span.Cover(semi), data, attrs)
}

func (p *Parser) parseReturn(attrs []ast.AttrID) ast.StmtID {
	retTok := p.advance()
	value := ast.NoExprID
	if !p.at(token.Semicolon) && !p.at(token.RBrace) {
		value = p.parseExpr()
	}
	semi := p.expectSemi()
	return p.builder.Stmts.NewReturn(retTok.Span.Cover(semi), value, attrs)
}

func (p *Parser) parseIf(attrs []ast.AttrID) ast.StmtID {
	ifTok := p.advance()
	condStart := p.peek().Span
	cond := p.parseExpr()
	condSpan := condStart
	if expr := p.builder.Exprs.Get(cond); expr != nil {
		condSpan = expr.Span
	}

	data := ast.StmtIfData{
		Cond:     cond,
		CondSpan: condSpan,
		Then:     p.parseBlock(),
	}

	span := ifTok.Span
	if then := p.builder.Stmts.Get(data.Then); then != nil {
		span = span.Cover(then.Span)
	}

	if p.at(token.KwElse) {
		p.advance()
		if p.at(token.KwIf) {
			data.Else = p.parseIf(nil)
		} else {
			data.Else = p.parseBlock()
		}
		if els := p.builder.Stmts.Get(data.Else); els != nil {
			span = span.Cover(els.Span)
		}
	}

	return p.builder.Stmts.NewIf(span, data, attrs)
}

func (p *Parser) parseWhile(attrs []ast.AttrID) ast.StmtID {
	whileTok := p.advance()
	cond := p.parseExpr()
	body := p.parseBlock()

	span := whileTok.Span
	if b := p.builder.Stmts.Get(body); b != nil {
		span = span.Cover(b.Span)
	}
	return p.builder.Stmts.NewWhile(span, cond, body, attrs)
}

func (p *Parser) parseLoop(attrs []ast.AttrID) ast.StmtID {
	loopTok := p.advance()
	body := p.parseBlock()

	span := loopTok.Span
	if b := p.builder.Stmts.Get(body); b != nil {
		span = span.Cover(b.Span)
	}
	return p.builder.Stmts.NewLoop(span, body, loopTok.Span, attrs)
}

func (p *Parser) parseForIn(attrs []ast.AttrID) ast.StmtID {
	forTok := p.advance()
	varTok, ok := p.expect(token.Ident, CodeExpectIdentifier)
	if !ok {
		p.recoverTo(token.RBrace)
		return ast.NoStmtID
	}
	data := ast.StmtForInData{Var: varTok.Text, VarSpan: varTok.Span}

	if _, ok := p.expect(token.KwIn, CodeUnexpectedToken); !ok {
		p.recoverTo(token.RBrace)
		return ast.NoStmtID
	}
	data.Iter = p.parseExpr()
	data.Body = p.parseBlock()

	span := forTok.Span
	if b := p.builder.Stmts.Get(data.Body); b != nil {
		span = span.Cover(b.Span)
	}
	return p.builder.Stmts.NewForIn(span, data, attrs)
}

func (p *Parser) parseExprStmt(attrs []ast.AttrID) ast.StmtID {
	start := p.peek().Span
	expr := p.parseExpr()
	if !expr.IsValid() {
		return ast.NoStmtID
	}
	semi := p.expectSemi()
	return p.builder.Stmts.NewExpr(start.Cover(semi), expr, attrs)
}
