package ast

import (
	"surgelint/internal/source"
)

// Stmts manages allocation of statements.
type Stmts struct {
	Arena   *Arena[Stmt]
	Blocks  *Arena[StmtBlockData]
	Lets    *Arena[StmtLetData]
	Exprs   *Arena[StmtExprData]
	Returns *Arena[StmtReturnData]
	Ifs     *Arena[StmtIfData]
	Whiles  *Arena[StmtWhileData]
	Loops   *Arena[StmtLoopData]
	ForIns  *Arena[StmtForInData]
}

// NewStmts creates a new Stmts with arenas preallocated using capHint.
func NewStmts(capHint uint) *Stmts {
	if capHint == 0 {
		capHint = 1 << 8
	}
	return &Stmts{
		Arena:   NewArena[Stmt](capHint),
		Blocks:  NewArena[StmtBlockData](capHint),
		Lets:    NewArena[StmtLetData](capHint),
		Exprs:   NewArena[StmtExprData](capHint),
		Returns: NewArena[StmtReturnData](capHint),
		Ifs:     NewArena[StmtIfData](capHint),
		Whiles:  NewArena[StmtWhileData](capHint),
		Loops:   NewArena[StmtLoopData](capHint),
		ForIns:  NewArena[StmtForInData](capHint),
	}
}

func (s *Stmts) new(kind StmtKind, span source.Span, payload PayloadID, attrs []AttrID) StmtID {
	return StmtID(s.Arena.Allocate(Stmt{
		Kind:    kind,
		Span:    span,
		Payload: payload,
		Attrs:   attrs,
	}))
}

// Get returns the statement with the given ID.
func (s *Stmts) Get(id StmtID) *Stmt {
	return s.Arena.Get(uint32(id))
}

// NewBlock creates a block statement.
func (s *Stmts) NewBlock(span source.Span, stmts []StmtID, attrs []AttrID) StmtID {
	payload := s.Blocks.Allocate(StmtBlockData{Stmts: stmts})
	return s.new(StmtBlock, span, PayloadID(payload), attrs)
}

// Block returns block data, or nil if id is not a block.
func (s *Stmts) Block(id StmtID) *StmtBlockData {
	stmt := s.Get(id)
	if stmt == nil || stmt.Kind != StmtBlock {
		return nil
	}
	return s.Blocks.Get(uint32(stmt.Payload))
}

// NewLet creates a let statement.
func (s *Stmts) NewLet(span source.Span, data StmtLetData, attrs []AttrID) StmtID {
	payload := s.Lets.Allocate(data)
	return s.new(StmtLet, span, PayloadID(payload), attrs)
}

// Let returns let data, or nil if id is not a let.
func (s *Stmts) Let(id StmtID) *StmtLetData {
	stmt := s.Get(id)
	if stmt == nil || stmt.Kind != StmtLet {
		return nil
	}
	return s.Lets.Get(uint32(stmt.Payload))
}

// NewExpr creates an expression statement.
func (s *Stmts) NewExpr(span source.Span, expr ExprID, attrs []AttrID) StmtID {
	payload := s.Exprs.Allocate(StmtExprData{Expr: expr})
	return s.new(StmtExpr, span, PayloadID(payload), attrs)
}

// Expr returns expression-statement data, or nil.
func (s *Stmts) Expr(id StmtID) *StmtExprData {
	stmt := s.Get(id)
	if stmt == nil || stmt.Kind != StmtExpr {
		return nil
	}
	return s.Exprs.Get(uint32(stmt.Payload))
}

// NewReturn creates a return statement.
func (s *Stmts) NewReturn(span source.Span, value ExprID, attrs []AttrID) StmtID {
	payload := s.Returns.Allocate(StmtReturnData{Value: value})
	return s.new(StmtReturn, span, PayloadID(payload), attrs)
}

// Return returns return data, or nil.
func (s *Stmts) Return(id StmtID) *StmtReturnData {
	stmt := s.Get(id)
	if stmt == nil || stmt.Kind != StmtReturn {
		return nil
	}
	return s.Returns.Get(uint32(stmt.Payload))
}

// NewBreak creates a break statement.
func (s *Stmts) NewBreak(span source.Span, attrs []AttrID) StmtID {
	return s.new(StmtBreak, span, 0, attrs)
}

// NewContinue creates a continue statement.
func (s *Stmts) NewContinue(span source.Span, attrs []AttrID) StmtID {
	return s.new(StmtContinue, span, 0, attrs)
}

// NewIf creates an if statement.
func (s *Stmts) NewIf(span source.Span, data StmtIfData, attrs []AttrID) StmtID {
	payload := s.Ifs.Allocate(data)
	return s.new(StmtIf, span, PayloadID(payload), attrs)
}

// If returns if data, or nil.
func (s *Stmts) If(id StmtID) *StmtIfData {
	stmt := s.Get(id)
	if stmt == nil || stmt.Kind != StmtIf {
		return nil
	}
	return s.Ifs.Get(uint32(stmt.Payload))
}

// NewWhile creates a while statement.
func (s *Stmts) NewWhile(span source.Span, cond ExprID, body StmtID, attrs []AttrID) StmtID {
	payload := s.Whiles.Allocate(StmtWhileData{Cond: cond, Body: body})
	return s.new(StmtWhile, span, PayloadID(payload), attrs)
}

// While returns while data, or nil.
func (s *Stmts) While(id StmtID) *StmtWhileData {
	stmt := s.Get(id)
	if stmt == nil || stmt.Kind != StmtWhile {
		return nil
	}
	return s.Whiles.Get(uint32(stmt.Payload))
}

// NewLoop creates a loop statement.
func (s *Stmts) NewLoop(span source.Span, body StmtID, kwSpan source.Span, attrs []AttrID) StmtID {
	payload := s.Loops.Allocate(StmtLoopData{Body: body, KwSpan: kwSpan})
	return s.new(StmtLoop, span, PayloadID(payload), attrs)
}

// Loop returns loop data, or nil.
func (s *Stmts) Loop(id StmtID) *StmtLoopData {
	stmt := s.Get(id)
	if stmt == nil || stmt.Kind != StmtLoop {
		return nil
	}
	return s.Loops.Get(uint32(stmt.Payload))
}

// NewForIn creates a for-in statement.
func (s *Stmts) NewForIn(span source.Span, data StmtForInData, attrs []AttrID) StmtID {
	payload := s.ForIns.Allocate(data)
	return s.new(StmtForIn, span, PayloadID(payload), attrs)
}

// ForIn returns for-in data, or nil.
func (s *Stmts) ForIn(id StmtID) *StmtForInData {
	stmt := s.Get(id)
	if stmt == nil || stmt.Kind != StmtForIn {
		return nil
	}
	return s.ForIns.Get(uint32(stmt.Payload))
}
