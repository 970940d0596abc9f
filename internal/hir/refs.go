package hir

import (
	"latch/internal/source"
)

// ScopeRefKind tags the scope-introducing constructs.
type ScopeRefKind uint8

const (
	ScopeRefInvalid ScopeRefKind = iota
	ScopeRefLib
	ScopeRefCtxItems
	ScopeRefEntity
	ScopeRefArch
	ScopeRefPkg
	ScopeRefPkgInst
)

func (k ScopeRefKind) String() string {
	switch k {
	case ScopeRefLib:
		return "library"
	case ScopeRefCtxItems:
		return "context items"
	case ScopeRefEntity:
		return "entity"
	case ScopeRefArch:
		return "architecture"
	case ScopeRefPkg:
		return "package"
	case ScopeRefPkgInst:
		return "package instance"
	default:
		return "invalid"
	}
}

// ScopeRef is a closed tagged union over the scope-introducing identifier
// kinds. It is comparable and usable as a map key. The zero value means "no
// scope".
type ScopeRef struct {
	Kind ScopeRefKind
	raw  uint32
}

// NoScopeRef marks the absence of a scope reference.
var NoScopeRef = ScopeRef{}

func (r ScopeRef) IsValid() bool { return r.Kind != ScopeRefInvalid }

func LibScope(id LibID) ScopeRef           { return ScopeRef{Kind: ScopeRefLib, raw: uint32(id)} }
func CtxItemsScope(id CtxItemsID) ScopeRef { return ScopeRef{Kind: ScopeRefCtxItems, raw: uint32(id)} }
func EntityScope(id EntityID) ScopeRef     { return ScopeRef{Kind: ScopeRefEntity, raw: uint32(id)} }
func ArchScope(id ArchID) ScopeRef         { return ScopeRef{Kind: ScopeRefArch, raw: uint32(id)} }
func PkgScope(id PkgID) ScopeRef           { return ScopeRef{Kind: ScopeRefPkg, raw: uint32(id)} }
func PkgInstScope(id PkgInstID) ScopeRef   { return ScopeRef{Kind: ScopeRefPkgInst, raw: uint32(id)} }

// Lib returns the library payload; valid only when Kind == ScopeRefLib.
func (r ScopeRef) Lib() LibID           { return LibID(r.raw) }
func (r ScopeRef) CtxItems() CtxItemsID { return CtxItemsID(r.raw) }
func (r ScopeRef) Entity() EntityID     { return EntityID(r.raw) }
func (r ScopeRef) Arch() ArchID         { return ArchID(r.raw) }
func (r ScopeRef) Pkg() PkgID           { return PkgID(r.raw) }
func (r ScopeRef) PkgInst() PkgInstID   { return PkgInstID(r.raw) }

// DefKind tags the definition union.
type DefKind uint8

const (
	DefInvalid DefKind = iota
	DefLib
	DefEntity
	DefArch
	DefCfg
	DefPkg
	DefPkgInst
	DefCtx
	DefType
	DefSubtype
	DefEnum
	DefConst
	DefSignal
	DefVariable
	DefFile
)

func (k DefKind) String() string {
	switch k {
	case DefLib:
		return "library"
	case DefEntity:
		return "entity"
	case DefArch:
		return "architecture"
	case DefCfg:
		return "configuration"
	case DefPkg:
		return "package"
	case DefPkgInst:
		return "package instance"
	case DefCtx:
		return "context"
	case DefType:
		return "type"
	case DefSubtype:
		return "subtype"
	case DefEnum:
		return "enumeration literal"
	case DefConst:
		return "constant"
	case DefSignal:
		return "signal"
	case DefVariable:
		return "variable"
	case DefFile:
		return "file"
	default:
		return "invalid"
	}
}

// Overloadable reports whether multiple simultaneous definitions under one
// name are legal for this kind. Only enumeration literals are in this slice.
func (k DefKind) Overloadable() bool {
	return k == DefEnum
}

// Def is a closed tagged union over everything a name may denote. Pos carries
// the literal position for enumeration literals (the pair TypeDecl+Pos
// identifies one literal).
type Def struct {
	Kind DefKind
	raw  uint32
	Pos  uint32
}

func (d Def) IsValid() bool { return d.Kind != DefInvalid }

func LibDef(id LibID) Def         { return Def{Kind: DefLib, raw: uint32(id)} }
func EntityDef(id EntityID) Def   { return Def{Kind: DefEntity, raw: uint32(id)} }
func ArchDef(id ArchID) Def       { return Def{Kind: DefArch, raw: uint32(id)} }
func CfgDef(id CfgID) Def         { return Def{Kind: DefCfg, raw: uint32(id)} }
func PkgDef(id PkgID) Def         { return Def{Kind: DefPkg, raw: uint32(id)} }
func PkgInstDef(id PkgInstID) Def { return Def{Kind: DefPkgInst, raw: uint32(id)} }
func CtxDef(id CtxID) Def         { return Def{Kind: DefCtx, raw: uint32(id)} }
func TypeDef(id TypeDeclID) Def   { return Def{Kind: DefType, raw: uint32(id)} }
func SubtypeDef(id SubtypeDeclID) Def {
	return Def{Kind: DefSubtype, raw: uint32(id)}
}
func EnumDef(id TypeDeclID, pos uint32) Def {
	return Def{Kind: DefEnum, raw: uint32(id), Pos: pos}
}
func ConstDef(id ConstDeclID) Def       { return Def{Kind: DefConst, raw: uint32(id)} }
func SignalDef(id SignalDeclID) Def     { return Def{Kind: DefSignal, raw: uint32(id)} }
func VariableDef(id VariableDeclID) Def { return Def{Kind: DefVariable, raw: uint32(id)} }
func FileDef(id FileDeclID) Def         { return Def{Kind: DefFile, raw: uint32(id)} }

func (d Def) Lib() LibID              { return LibID(d.raw) }
func (d Def) Entity() EntityID        { return EntityID(d.raw) }
func (d Def) Arch() ArchID            { return ArchID(d.raw) }
func (d Def) Cfg() CfgID              { return CfgID(d.raw) }
func (d Def) Pkg() PkgID              { return PkgID(d.raw) }
func (d Def) PkgInst() PkgInstID      { return PkgInstID(d.raw) }
func (d Def) Ctx() CtxID              { return CtxID(d.raw) }
func (d Def) Type() TypeDeclID        { return TypeDeclID(d.raw) }
func (d Def) Subtype() SubtypeDeclID  { return SubtypeDeclID(d.raw) }
func (d Def) Const() ConstDeclID      { return ConstDeclID(d.raw) }
func (d Def) Signal() SignalDeclID    { return SignalDeclID(d.raw) }
func (d Def) Variable() VariableDeclID {
	return VariableDeclID(d.raw)
}
func (d Def) File() FileDeclID { return FileDeclID(d.raw) }

// DefSpan tags a definition with the span of its declaring name.
type DefSpan struct {
	Def  Def
	Span source.Span
}

// ScopeOf returns the ScopeRef form of a definition for the kinds that
// introduce scopes, or NoScopeRef otherwise.
func (d Def) ScopeOf() ScopeRef {
	switch d.Kind {
	case DefLib:
		return LibScope(d.Lib())
	case DefEntity:
		return EntityScope(d.Entity())
	case DefArch:
		return ArchScope(d.Arch())
	case DefPkg:
		return PkgScope(d.Pkg())
	case DefPkgInst:
		return PkgInstScope(d.PkgInst())
	default:
		return NoScopeRef
	}
}
