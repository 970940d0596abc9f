package ast

import (
	"latch/internal/source"
)

// CtxItemKind distinguishes the context clauses preceding a design unit.
type CtxItemKind uint8

const (
	CtxInvalid CtxItemKind = iota
	// CtxLibClause is a `library a, b;` clause.
	CtxLibClause
	// CtxUseClause is a `use work.pkg.all;` clause.
	CtxUseClause
)

func (k CtxItemKind) String() string {
	switch k {
	case CtxLibClause:
		return "library clause"
	case CtxUseClause:
		return "use clause"
	default:
		return "invalid"
	}
}

// CtxItem is a single library or use clause.
type CtxItem struct {
	Kind CtxItemKind
	Span source.Span
	// Names lists the libraries of a library clause.
	Names []Ident
	// Uses lists the compound names of a use clause.
	Uses []Name
}
