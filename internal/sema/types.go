package sema

import (
	"strings"
)

// TypeKind classifies the types the analyzer distinguishes. Rules only
// need coarse answers (is it an integer, is it bool, is it copyable),
// so the lattice stays flat.
type TypeKind uint8

const (
	TypeUnknown TypeKind = iota
	TypeInt
	TypeUint
	TypeBool
	TypeString
	TypeUnit
	TypeNamed
)

// Type is the inferred type of an expression or binding. Name holds
// the base spelling for named types ("Option", "Result").
type Type struct {
	Kind TypeKind
	Name string
}

func (t Type) String() string {
	switch t.Kind {
	case TypeInt:
		return "int"
	case TypeUint:
		return "uint"
	case TypeBool:
		return "bool"
	case TypeString:
		return "string"
	case TypeUnit:
		return "unit"
	case TypeNamed:
		return t.Name
	}
	return "?"
}

// IsInteger reports whether t is a signed or unsigned integer.
func (t Type) IsInteger() bool {
	return t.Kind == TypeInt || t.Kind == TypeUint
}

// IsCopyable reports whether values of t are plain copies, so that
// cloning one is pointless.
func (t Type) IsCopyable() bool {
	switch t.Kind {
	case TypeInt, TypeUint, TypeBool, TypeUnit:
		return true
	default:
		return false
	}
}

// signed and unsigned integer spellings of the surface language.
var intNames = map[string]TypeKind{
	"int": TypeInt, "i8": TypeInt, "i16": TypeInt, "i32": TypeInt, "i64": TypeInt,
	"uint": TypeUint, "u8": TypeUint, "u16": TypeUint, "u32": TypeUint, "u64": TypeUint,
}

// TypeFromName maps a written type annotation to a Type. Generic
// arguments are stripped, so "Option<int>" resolves by its base name.
func TypeFromName(name string) Type {
	base := name
	if i := strings.IndexByte(base, '<'); i >= 0 {
		base = base[:i]
	}
	if kind, ok := intNames[base]; ok {
		return Type{Kind: kind}
	}
	switch base {
	case "bool":
		return Type{Kind: TypeBool}
	case "string":
		return Type{Kind: TypeString}
	case "unit", "":
		return Type{Kind: TypeUnit}
	default:
		return Type{Kind: TypeNamed, Name: base}
	}
}
