package ast

import (
	"surgelint/internal/source"
)

// File is the root of one parsed source file.
type File struct {
	Span  source.Span
	Items []ItemID
}

// Files manages allocation of file nodes.
type Files struct {
	Arena *Arena[File]
}

func NewFiles(capHint uint) *Files {
	if capHint == 0 {
		capHint = 1 << 2
	}
	return &Files{Arena: NewArena[File](capHint)}
}

func (f *Files) New(span source.Span, items []ItemID) FileID {
	return FileID(f.Arena.Allocate(File{Span: span, Items: items}))
}

func (f *Files) Get(id FileID) *File {
	return f.Arena.Get(uint32(id))
}
