package ast

import (
	"latch/internal/source"
)

// UnitKind enumerates VHDL design unit kinds.
type UnitKind uint8

const (
	UnitInvalid UnitKind = iota
	UnitEntity
	UnitArch
	UnitPkgDecl
	UnitPkgBody
	UnitPkgInst
	UnitCtx
	UnitCfg
)

func (k UnitKind) String() string {
	switch k {
	case UnitEntity:
		return "entity"
	case UnitArch:
		return "architecture"
	case UnitPkgDecl:
		return "package"
	case UnitPkgBody:
		return "package body"
	case UnitPkgInst:
		return "package instance"
	case UnitCtx:
		return "context"
	case UnitCfg:
		return "configuration"
	default:
		return "invalid"
	}
}

// Unit is a design unit together with its preceding context items. Fields
// beyond Name apply only to the kinds noted; consumers switch on Kind.
type Unit struct {
	Kind     UnitKind
	Span     source.Span
	Name     Ident
	CtxItems []CtxItemID

	// Entity payload.
	Generics []DeclID
	Ports    []PortID

	// Architecture payload: the name of the entity being implemented,
	// plus body declarations and concurrent statements.
	EntityName Ident
	Stmts      []ConcStmtID

	// Package (and architecture body) declarations.
	Decls []DeclID
}
