package ast

import (
	"latch/internal/source"
)

// Dir is the direction of a range.
type Dir uint8

const (
	DirTo Dir = iota
	DirDownto
)

func (d Dir) String() string {
	if d == DirDownto {
		return "downto"
	}
	return "to"
}

// Mode is the direction mode of an interface signal.
type Mode uint8

const (
	ModeIn Mode = iota
	ModeOut
	ModeInout
	ModeBuffer
	ModeLinkage
)

func (m Mode) String() string {
	switch m {
	case ModeIn:
		return "in"
	case ModeOut:
		return "out"
	case ModeInout:
		return "inout"
	case ModeBuffer:
		return "buffer"
	case ModeLinkage:
		return "linkage"
	default:
		return "invalid"
	}
}

// SignalKind distinguishes normal, register and bus signals.
type SignalKind uint8

const (
	SignalNormal SignalKind = iota
	SignalRegister
	SignalBus
)

// SubtypeInd is a syntactic subtype indication: a type mark name with an
// optional constraint.
type SubtypeInd struct {
	Span   source.Span
	Mark   Name
	Constr ConstraintID // NoConstraintID when unconstrained
}

// ConstraintKind enumerates subtype constraints.
type ConstraintKind uint8

const (
	ConstraintRange ConstraintKind = iota
	ConstraintArray
	ConstraintRecord
)

// NamedConstraint pairs a record element with its constraint.
type NamedConstraint struct {
	Name Ident
	Elem ConstraintID
}

// Constraint is a subtype constraint. Array and record constraints nest
// element constraints through the constraint arena.
type Constraint struct {
	Kind ConstraintKind
	Span source.Span
	// Range payload.
	Range ExprID
	// Array payload: index ranges (empty slice means `open`) and optional
	// element constraint.
	Index []ExprID
	Elem  ConstraintID
	// Record payload.
	Elems []NamedConstraint
}

// TypeDefKind enumerates supported type definition shapes.
type TypeDefKind uint8

const (
	// TypeDefNone marks an incomplete type declaration.
	TypeDefNone TypeDefKind = iota
	// TypeDefRange is an integer or float type: `range lo to hi`.
	TypeDefRange
	// TypeDefEnum is an enumeration type.
	TypeDefEnum
)

// TypeDef is the definition part of a type declaration.
type TypeDef struct {
	Kind TypeDefKind
	Span source.Span
	Dir  Dir
	Lo   ExprID
	Hi   ExprID
	Lits []Ident // enumeration literals, identifiers or character literals
}

// DeclKind enumerates declarations appearing in packages and blocks.
type DeclKind uint8

const (
	DeclInvalid DeclKind = iota
	DeclType
	DeclSubtype
	DeclConst
	DeclSignal
	DeclVariable
	DeclFile
	DeclPkg
	DeclPkgInst
)

func (k DeclKind) String() string {
	switch k {
	case DeclType:
		return "type"
	case DeclSubtype:
		return "subtype"
	case DeclConst:
		return "constant"
	case DeclSignal:
		return "signal"
	case DeclVariable:
		return "variable"
	case DeclFile:
		return "file"
	case DeclPkg:
		return "package"
	case DeclPkgInst:
		return "package instance"
	default:
		return "invalid"
	}
}

// Decl is a declaration inside a package or block. Payload fields apply only
// to the kinds noted.
type Decl struct {
	Kind DeclKind
	Span source.Span
	Name Ident

	// Type declaration payload.
	Type TypeDef

	// Object declaration payload (subtype, constant, signal, variable, file).
	Subtype SubtypeInd
	Init    ExprID // optional initializer

	Signal SignalKind // signals only
	Shared bool       // variables only

	// File payload: file name expression and optional open-kind expression.
	FileName ExprID
	FileOpen ExprID

	// Nested package declaration payload.
	Decls []DeclID
}

// Port is an interface signal declaration of an entity.
type Port struct {
	Span    source.Span
	Name    Ident
	Mode    Mode
	Subtype SubtypeInd
	Bus     bool
	Default ExprID // optional default value expression
}
