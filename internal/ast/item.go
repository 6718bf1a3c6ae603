package ast

import (
	"surgelint/internal/source"
)

// ItemKind enumerates top-level item kinds. The linted subset only
// contains functions.
type ItemKind uint8

const (
	ItemFn ItemKind = iota
)

// Item represents a top-level item.
type Item struct {
	Kind    ItemKind
	Span    source.Span
	Payload PayloadID
	Attrs   []AttrID
}

// FnParam is one function parameter.
type FnParam struct {
	Name string
	Type TypeRef
	Span source.Span
}

// ItemFnData is the payload of a function item.
type ItemFnData struct {
	Name     string
	NameSpan source.Span
	Params   []FnParam
	// Ret is the annotated return type; invalid when omitted. ArrowSpan
	// covers `-> type` including the arrow, for annotation-removal fixes.
	Ret       TypeRef
	ArrowSpan source.Span
	Body      StmtID
}

// Items manages allocation of top-level items.
type Items struct {
	Arena *Arena[Item]
	Fns   *Arena[ItemFnData]
}

// NewItems creates a new Items store.
func NewItems(capHint uint) *Items {
	if capHint == 0 {
		capHint = 1 << 4
	}
	return &Items{
		Arena: NewArena[Item](capHint),
		Fns:   NewArena[ItemFnData](capHint),
	}
}

// Get returns the item with the given ID.
func (it *Items) Get(id ItemID) *Item {
	return it.Arena.Get(uint32(id))
}

// NewFn creates a function item.
func (it *Items) NewFn(span source.Span, data ItemFnData, attrs []AttrID) ItemID {
	payload := it.Fns.Allocate(data)
	return ItemID(it.Arena.Allocate(Item{
		Kind:    ItemFn,
		Span:    span,
		Payload: PayloadID(payload),
		Attrs:   attrs,
	}))
}

// Fn returns function data for the given item ID.
func (it *Items) Fn(id ItemID) (*ItemFnData, bool) {
	item := it.Get(id)
	if item == nil || item.Kind != ItemFn {
		return nil, false
	}
	return it.Fns.Get(uint32(item.Payload)), true
}
