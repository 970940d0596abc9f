package ast

import (
	"latch/internal/source"
)

// Ident is a name with the span it was spelled at. The name is interned in
// canonical (case-folded) form.
type Ident struct {
	Name source.StringID
	Span source.Span
}

// NamePartKind enumerates the suffix parts of a compound name.
type NamePartKind uint8

const (
	// NamePartSelect is a `.ident` selection.
	NamePartSelect NamePartKind = iota
	// NamePartAttr is a `'ident` attribute selection.
	NamePartAttr
	// NamePartAll is the trailing `.all` wildcard.
	NamePartAll
)

// NamePart is one suffix element of a compound name.
type NamePart struct {
	Kind  NamePartKind
	Ident Ident       // valid for Select and Attr
	Span  source.Span // full span of the part, including the dot or tick
}

// Name is a compound (possibly dotted) name such as `work.mypkg.all`.
type Name struct {
	Span  source.Span
	Prim  Ident
	Parts []NamePart
}
