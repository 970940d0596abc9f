package hir

import (
	"latch/internal/ast"
)

// Lib lists the design units a library contains, grouped by kind in source
// order.
type Lib struct {
	Entities  []EntityID
	Cfgs      []CfgID
	PkgDecls  []PkgID
	PkgInsts  []PkgInstID
	Ctxs      []CtxID
	Archs     []ArchID
	PkgBodies []PkgBodyID
}

// CtxItems pins down the context clause region preceding a design unit.
// It is addressed by CtxItemsID so that several queries (defs, scope) refer
// to the same region.
type CtxItems struct {
	Unit  ast.UnitID
	Items []ast.CtxItemID
}

// GenericKind tags the generic union.
type GenericKind uint8

const (
	GenericType GenericKind = iota
	GenericSubtype
	GenericConst
	GenericPkg
)

// GenericRef is a tagged union over the constructs an entity or package may
// declare as a generic.
type GenericRef struct {
	Kind    GenericKind
	Type    TypeDeclID
	Subtype SubtypeDeclID
	Const   ConstDeclID
	Pkg     PkgID
}

// Entity is an entity declaration.
type Entity struct {
	// CtxItems references the context items associated with the entity.
	CtxItems CtxItemsID
	// Lib is the library in which the entity is defined.
	Lib LibID
	// Name carries the entity name and its span.
	Name ast.Ident
	// Generics the entity declares, in source order.
	Generics []GenericRef
	// Ports the entity declares, in source order.
	Ports []IntfSignalID
}

// Arch is an architecture body. Its declarations and concurrent statements
// stay as syntactic references in this slice; elaboration lowers them.
type Arch struct {
	CtxItems CtxItemsID
	// Entity is the entity this architecture implements. It is resolved
	// syntactically within the owning library, not through a scope query.
	Entity EntityID
	Name   ast.Ident
	Decls  []ast.DeclID
	Stmts  []ast.ConcStmtID
}

// IntfSignal is an interface signal (port) of an entity.
type IntfSignal struct {
	Name ast.Ident
	Mode ast.Mode
	// Ty is the subtype of the signal.
	Ty SubtypeIndID
	// Bus reports whether the signal was declared with the `bus` keyword.
	Bus bool
	// Init optionally gives the default value expression.
	Init ExprID
}

// DeclInPkgKind tags the declarations legal inside a package.
type DeclInPkgKind uint8

const (
	DeclInPkgPkg DeclInPkgKind = iota
	DeclInPkgPkgInst
	DeclInPkgType
	DeclInPkgSubtype
	DeclInPkgConst
	DeclInPkgSignal
	DeclInPkgVariable
	DeclInPkgFile
)

// DeclInPkgRef is a tagged union over package-level declarations.
type DeclInPkgRef struct {
	Kind DeclInPkgKind
	raw  uint32
}

func PkgDeclRef(id PkgID) DeclInPkgRef          { return DeclInPkgRef{Kind: DeclInPkgPkg, raw: uint32(id)} }
func PkgInstDeclRef(id PkgInstID) DeclInPkgRef  { return DeclInPkgRef{Kind: DeclInPkgPkgInst, raw: uint32(id)} }
func TypeDeclRef(id TypeDeclID) DeclInPkgRef    { return DeclInPkgRef{Kind: DeclInPkgType, raw: uint32(id)} }
func SubtypeDeclRef(id SubtypeDeclID) DeclInPkgRef {
	return DeclInPkgRef{Kind: DeclInPkgSubtype, raw: uint32(id)}
}
func ConstDeclRef(id ConstDeclID) DeclInPkgRef { return DeclInPkgRef{Kind: DeclInPkgConst, raw: uint32(id)} }
func SignalDeclRef(id SignalDeclID) DeclInPkgRef {
	return DeclInPkgRef{Kind: DeclInPkgSignal, raw: uint32(id)}
}
func VariableDeclRef(id VariableDeclID) DeclInPkgRef {
	return DeclInPkgRef{Kind: DeclInPkgVariable, raw: uint32(id)}
}
func FileDeclRef(id FileDeclID) DeclInPkgRef { return DeclInPkgRef{Kind: DeclInPkgFile, raw: uint32(id)} }

func (r DeclInPkgRef) Pkg() PkgID               { return PkgID(r.raw) }
func (r DeclInPkgRef) PkgInst() PkgInstID       { return PkgInstID(r.raw) }
func (r DeclInPkgRef) Type() TypeDeclID         { return TypeDeclID(r.raw) }
func (r DeclInPkgRef) Subtype() SubtypeDeclID   { return SubtypeDeclID(r.raw) }
func (r DeclInPkgRef) Const() ConstDeclID       { return ConstDeclID(r.raw) }
func (r DeclInPkgRef) Signal() SignalDeclID     { return SignalDeclID(r.raw) }
func (r DeclInPkgRef) Variable() VariableDeclID { return VariableDeclID(r.raw) }
func (r DeclInPkgRef) File() FileDeclID         { return FileDeclID(r.raw) }

// Pkg is a package declaration.
type Pkg struct {
	// Parent is the scope the package is declared in.
	Parent   ScopeRef
	Name     ast.Ident
	Generics []GenericRef
	Decls    []DeclInPkgRef
}
