package parser

import (
	"surgelint/internal/ast"
	"surgelint/internal/source"
	"surgelint/internal/token"
)

// binOpInfo pairs the AST operator with its binding power. Higher binds
// tighter; assignment is the loosest and right-associative.
type binOpInfo struct {
	op         ast.ExprBinaryOp
	bp         uint8
	rightAssoc bool
}

var binOps = map[token.Kind]binOpInfo{
	token.Assign:      {ast.ExprBinaryAssign, 1, true},
	token.PlusAssign:  {ast.ExprBinaryAddAssign, 1, true},
	token.MinusAssign: {ast.ExprBinarySubAssign, 1, true},
	token.StarAssign:  {ast.ExprBinaryMulAssign, 1, true},
	token.SlashAssign: {ast.ExprBinaryDivAssign, 1, true},

	token.OrOr:   {ast.ExprBinaryLogicalOr, 2, false},
	token.AndAnd: {ast.ExprBinaryLogicalAnd, 3, false},

	token.EqEq:   {ast.ExprBinaryEq, 4, false},
	token.BangEq: {ast.ExprBinaryNotEq, 4, false},
	token.Lt:     {ast.ExprBinaryLess, 4, false},
	token.LtEq:   {ast.ExprBinaryLessEq, 4, false},
	token.Gt:     {ast.ExprBinaryGreater, 4, false},
	token.GtEq:   {ast.ExprBinaryGreaterEq, 4, false},

	token.Pipe:  {ast.ExprBinaryBitOr, 5, false},
	token.Caret: {ast.ExprBinaryBitXor, 6, false},
	token.Amp:   {ast.ExprBinaryBitAnd, 7, false},

	token.Shl: {ast.ExprBinaryShiftLeft, 8, false},
	token.Shr: {ast.ExprBinaryShiftRight, 8, false},

	token.Plus:  {ast.ExprBinaryAdd, 9, false},
	token.Minus: {ast.ExprBinarySub, 9, false},

	token.Star:    {ast.ExprBinaryMul, 10, false},
	token.Slash:   {ast.ExprBinaryDiv, 10, false},
	token.Percent: {ast.ExprBinaryMod, 10, false},
}

// parseExpr parses a full expression, assignment included.
func (p *Parser) parseExpr() ast.ExprID {
	return p.parseBinaryExpr(0)
}

func (p *Parser) exprSpan(id ast.ExprID) source.Span {
	if expr := p.builder.Exprs.Get(id); expr != nil {
		return expr.Span
	}
	return source.Span{}
}

func (p *Parser) parseBinaryExpr(minBP uint8) ast.ExprID {
	left := p.parseUnaryExpr()
	if !left.IsValid() {
		return ast.NoExprID
	}
	for {
		info, ok := binOps[p.peek().Kind]
		if !ok || info.bp < minBP {
			return left
		}
		opTok := p.advance()
		nextBP := info.bp + 1
		if info.rightAssoc {
			nextBP = info.bp
		}
		right := p.parseBinaryExpr(nextBP)
		if !right.IsValid() {
			return left
		}
		span := p.exprSpan(left).Cover(p.exprSpan(right))
		left = p.builder.Exprs.NewBinary(span, info.op, left, right, opTok.Span)
	}
}

func (p *Parser) parseUnaryExpr() ast.ExprID {
	switch p.peek().Kind {
	case token.Minus:
		tok := p.advance()
		operand := p.parseUnaryExpr()
		if !operand.IsValid() {
			return ast.NoExprID
		}
		return p.builder.Exprs.NewUnary(tok.Span.Cover(p.exprSpan(operand)), ast.ExprUnaryNeg, operand)
	case token.Bang:
		tok := p.advance()
		operand := p.parseUnaryExpr()
		if !operand.IsValid() {
			return ast.NoExprID
		}
		return p.builder.Exprs.NewUnary(tok.Span.Cover(p.exprSpan(operand)), ast.ExprUnaryNot, operand)
	default:
		return p.parsePostfixExpr()
	}
}

func (p *Parser) parsePostfixExpr() ast.ExprID {
	expr := p.parsePrimaryExpr()
	if !expr.IsValid() {
		return ast.NoExprID
	}
	for {
		switch p.peek().Kind {
		case token.LParen:
			p.advance()
			var args []ast.ExprID
			for !p.at(token.RParen) && !p.at(token.EOF) {
				if arg := p.parseExpr(); arg.IsValid() {
					args = append(args, arg)
				} else {
					break
				}
				if !p.at(token.Comma) {
					break
				}
				p.advance()
			}
			rp, _ := p.expect(token.RParen, CodeUnexpectedToken)
			expr = p.builder.Exprs.NewCall(p.exprSpan(expr).Cover(rp.Span), expr, args)
		case token.Dot:
			p.advance()
			nameTok, ok := p.expect(token.Ident, CodeExpectIdentifier)
			if !ok {
				return expr
			}
			expr = p.builder.Exprs.NewMember(p.exprSpan(expr).Cover(nameTok.Span), expr, nameTok.Text, nameTok.Span)
		case token.LBracket:
			p.advance()
			index := p.parseExpr()
			rb, _ := p.expect(token.RBracket, CodeUnexpectedToken)
			expr = p.builder.Exprs.NewIndex(p.exprSpan(expr).Cover(rb.Span), expr, index)
		default:
			return expr
		}
	}
}

func (p *Parser) parsePrimaryExpr() ast.ExprID {
	tok := p.peek()
	switch tok.Kind {
	case token.Ident:
		p.advance()
		return p.builder.Exprs.NewIdent(tok.Span, tok.Text)
	case token.IntLit:
		p.advance()
		return p.builder.Exprs.NewLiteral(tok.Span, ast.ExprLitInt, tok.Text)
	case token.StringLit:
		p.advance()
		return p.builder.Exprs.NewLiteral(tok.Span, ast.ExprLitString, tok.Text)
	case token.KwTrue, token.KwFalse:
		p.advance()
		return p.builder.Exprs.NewLiteral(tok.Span, ast.ExprLitBool, tok.Text)
	case token.Underscore:
		p.advance()
		return p.builder.Exprs.NewWildcard(tok.Span)
	case token.LParen:
		p.advance()
		inner := p.parseExpr()
		rp, _ := p.expect(token.RParen, CodeUnexpectedToken)
		return p.builder.Exprs.NewGroup(tok.Span.Cover(rp.Span), inner)
	case token.KwCompare:
		return p.parseCompareExpr()
	default:
		p.errorf(CodeExpectExpression, tok.Span, "expected expression, found %s", tok.Kind)
		return ast.NoExprID
	}
}

// parseCompareExpr parses `compare subject { arm* }` where each arm is
// `pattern [if guard] => result;` or `finally => result;`.
func (p *Parser) parseCompareExpr() ast.ExprID {
	cmpTok := p.advance() // compare
	subject := p.parseExpr()

	if _, ok := p.expect(token.LBrace, CodeUnexpectedToken); !ok {
		return ast.NoExprID
	}

	var arms []ast.CompareArm
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		before := p.pos
		if arm, ok := p.parseCompareArm(); ok {
			arms = append(arms, arm)
		}
		if p.pos == before {
			p.advance()
		}
	}
	rb, _ := p.expect(token.RBrace, CodeUnexpectedToken)
	return p.builder.Exprs.NewCompare(cmpTok.Span.Cover(rb.Span), subject, arms)
}

func (p *Parser) parseCompareArm() (ast.CompareArm, bool) {
	arm := ast.CompareArm{}
	start := p.peek().Span

	if p.at(token.KwFinally) {
		p.advance()
		arm.IsFinally = true
	} else {
		arm.Pattern = p.parseExpr()
		if !arm.Pattern.IsValid() {
			return arm, false
		}
		if p.at(token.KwIf) {
			p.advance()
			arm.Guard = p.parseExpr()
		}
	}

	if _, ok := p.expect(token.FatArrow, CodeUnexpectedToken); !ok {
		p.recoverTo(token.Semicolon)
		return arm, false
	}

	switch p.peek().Kind {
	case token.LBrace:
		arm.Body = p.parseBlock()
		arm.Span = start.Cover(p.stmtSpan(arm.Body))
		// Optional trailing semicolon after a block body.
		if p.at(token.Semicolon) {
			p.advance()
		}
	case token.KwBreak, token.KwContinue, token.KwReturn:
		arm.Body = p.parseStmt()
		arm.Span = start.Cover(p.stmtSpan(arm.Body))
	default:
		arm.Result = p.parseExpr()
		if !arm.Result.IsValid() {
			p.recoverTo(token.Semicolon)
			return arm, false
		}
		semi := p.expectSemi()
		arm.Span = start.Cover(semi)
	}
	return arm, true
}

func (p *Parser) stmtSpan(id ast.StmtID) source.Span {
	if stmt := p.builder.Stmts.Get(id); stmt != nil {
		return stmt.Span
	}
	return source.Span{}
}
