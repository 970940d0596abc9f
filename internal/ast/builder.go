package ast

import (
	"latch/internal/source"
)

// Builder owns the syntax-tree arenas. The parser (or a test, or the builtin
// library installer) fills it; the scoreboard only reads from it.
type Builder struct {
	Units       *Arena[Unit]
	CtxItems    *Arena[CtxItem]
	Decls       *Arena[Decl]
	Ports       *Arena[Port]
	Exprs       *Arena[Expr]
	Constraints *Arena[Constraint]
	ConcStmts   *Arena[ConcStmt]

	Strings *source.Interner
}

// Hints provide optional capacity suggestions for the syntax arenas.
type Hints struct{ Units, Decls, Exprs uint }

// NewBuilder creates a builder. If strings is nil, a fresh interner is
// allocated.
func NewBuilder(h Hints, strings *source.Interner) *Builder {
	if strings == nil {
		strings = source.NewInterner()
	}
	return &Builder{
		Units:       NewArena[Unit](h.Units),
		CtxItems:    NewArena[CtxItem](h.Units),
		Decls:       NewArena[Decl](h.Decls),
		Ports:       NewArena[Port](h.Decls),
		Exprs:       NewArena[Expr](h.Exprs),
		Constraints: NewArena[Constraint](h.Exprs),
		ConcStmts:   NewArena[ConcStmt](h.Decls),
		Strings:     strings,
	}
}

// Ident interns the case-folded spelling and pairs it with the span.
func (b *Builder) Ident(name string, span source.Span) Ident {
	return Ident{Name: b.Strings.Intern(source.Fold(name)), Span: span}
}

// SimpleName builds a compound name consisting of a single identifier.
func (b *Builder) SimpleName(name string, span source.Span) Name {
	return Name{Span: span, Prim: b.Ident(name, span)}
}

func (b *Builder) AddUnit(u Unit) UnitID {
	return UnitID(b.Units.Allocate(u))
}

func (b *Builder) AddCtxItem(item CtxItem) CtxItemID {
	return CtxItemID(b.CtxItems.Allocate(item))
}

func (b *Builder) AddDecl(d Decl) DeclID {
	return DeclID(b.Decls.Allocate(d))
}

func (b *Builder) AddPort(p Port) PortID {
	return PortID(b.Ports.Allocate(p))
}

func (b *Builder) AddExpr(e Expr) ExprID {
	return ExprID(b.Exprs.Allocate(e))
}

func (b *Builder) AddConstraint(c Constraint) ConstraintID {
	return ConstraintID(b.Constraints.Allocate(c))
}

func (b *Builder) AddConcStmt(s ConcStmt) ConcStmtID {
	return ConcStmtID(b.ConcStmts.Allocate(s))
}

// Unit returns the design unit for the ID, or nil for the sentinel.
func (b *Builder) Unit(id UnitID) *Unit {
	return b.Units.Get(uint32(id))
}

func (b *Builder) CtxItem(id CtxItemID) *CtxItem {
	return b.CtxItems.Get(uint32(id))
}

func (b *Builder) Decl(id DeclID) *Decl {
	return b.Decls.Get(uint32(id))
}

func (b *Builder) Port(id PortID) *Port {
	return b.Ports.Get(uint32(id))
}

func (b *Builder) Expr(id ExprID) *Expr {
	return b.Exprs.Get(uint32(id))
}

func (b *Builder) Constraint(id ConstraintID) *Constraint {
	return b.Constraints.Get(uint32(id))
}

func (b *Builder) ConcStmt(id ConcStmtID) *ConcStmt {
	return b.ConcStmts.Get(uint32(id))
}
