package ast

import (
	"latch/internal/source"
)

// ExprKind enumerates syntactic expression shapes.
type ExprKind uint8

const (
	ExprInvalid ExprKind = iota
	// ExprName is a compound name (identifier with optional selections).
	ExprName
	ExprIntLit
	ExprFloatLit
	ExprUnary
	ExprBinary
	// ExprRange is `lo to hi` / `hi downto lo`.
	ExprRange
)

// UnaryOp enumerates unary operators.
type UnaryOp uint8

const (
	UnaryNot UnaryOp = iota
	UnaryAbs
	UnaryPos
	UnaryNeg
)

// BinaryOp enumerates binary operators. Only the subset the semantic core
// inspects is distinguished; the rest flow through as opaque applications.
type BinaryOp uint8

const (
	BinaryAdd BinaryOp = iota
	BinarySub
	BinaryMul
	BinaryDiv
	BinaryAnd
	BinaryOr
	BinaryXor
	BinaryConcat
)

// Expr is a syntactic expression. Payload fields apply per kind.
type Expr struct {
	Kind ExprKind
	Span source.Span

	Name  Name    // ExprName
	Int   int64   // ExprIntLit
	Float float64 // ExprFloatLit

	Unary  UnaryOp
	Binary BinaryOp
	Dir    Dir // ExprRange
	X, Y   ExprID
}
