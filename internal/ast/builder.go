package ast

// Hints carries arena capacity hints for a Builder.
type Hints struct {
	Exprs uint
	Stmts uint
	Items uint
}

// Builder owns all arenas for one parse. The tree it produces is
// logically immutable once parsing finishes; consumers (sema, lint)
// only read from it.
type Builder struct {
	Files *Files
	Items *Items
	Stmts *Stmts
	Exprs *Exprs
	Attrs *Arena[Attr]
}

// NewBuilder creates a Builder with the given capacity hints.
func NewBuilder(hints Hints) *Builder {
	return &Builder{
		Files: NewFiles(0),
		Items: NewItems(hints.Items),
		Stmts: NewStmts(hints.Stmts),
		Exprs: NewExprs(hints.Exprs),
		Attrs: NewArena[Attr](1 << 4),
	}
}

// NewAttr allocates an attribute and returns its ID.
func (b *Builder) NewAttr(attr Attr) AttrID {
	return AttrID(b.Attrs.Allocate(attr))
}

// Attr returns the attribute for id, or nil.
func (b *Builder) Attr(id AttrID) *Attr {
	return b.Attrs.Get(uint32(id))
}
