package hir

import (
	"latch/internal/ast"
	"latch/internal/source"
)

// TypeDataKind tags the type definition union.
type TypeDataKind uint8

const (
	// TypeRange is an integer or float type defined by a range.
	TypeRange TypeDataKind = iota
	// TypeEnum is an enumeration type.
	TypeEnum
)

// TypeData is the definition part of a type declaration.
type TypeData struct {
	Kind TypeDataKind
	Span source.Span
	// Range payload: direction and bound expressions.
	Dir Dir
	Lo  ExprID
	Hi  ExprID
	// Enum payload: literals in declaration order. Character literals are
	// interned with their quotes, identifiers case-folded.
	Lits []ast.Ident
}

// Dir is re-exported from ast; ranges keep their syntactic direction.
type Dir = ast.Dir

// TypeDecl is a type declaration.
type TypeDecl struct {
	// Parent is the scope the type is declared in.
	Parent ScopeRef
	Name   ast.Ident
	// Data is nil for incomplete type declarations.
	Data *TypeData
}

// SubtypeDecl is a subtype declaration (IEEE 1076-2008 section 6.3).
type SubtypeDecl struct {
	Parent ScopeRef
	Name   ast.Ident
	Subty  SubtypeIndID
}

// ConstDecl is a constant declaration.
type ConstDecl struct {
	Parent ScopeRef
	Name   ast.Ident
	Subty  SubtypeIndID
	// Init optionally gives the initial value.
	Init ExprID
}

// SignalDecl is a signal declaration.
type SignalDecl struct {
	Parent ScopeRef
	Name   ast.Ident
	Subty  SubtypeIndID
	Kind   ast.SignalKind
	Init   ExprID
}

// VariableDecl is a variable declaration.
type VariableDecl struct {
	Parent ScopeRef
	// Shared reports whether the variable was declared as shared.
	Shared bool
	Name   ast.Ident
	Subty  SubtypeIndID
	Init   ExprID
}

// FileDecl is a file declaration. FileName evaluates to a string with the
// file name; OpenKind optionally evaluates to a file open kind.
type FileDecl struct {
	Parent   ScopeRef
	Name     ast.Ident
	Subty    SubtypeIndID
	FileName ExprID
	OpenKind ExprID
}
