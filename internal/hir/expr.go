package hir

import (
	"latch/internal/ast"
	"latch/internal/source"
)

// ConstraintKind tags subtype constraints.
type ConstraintKind uint8

const (
	// ConstraintNone marks an unconstrained subtype indication.
	ConstraintNone ConstraintKind = iota
	ConstraintRange
	ConstraintArray
	ConstraintRecord
)

// RecordElem constrains one record element by name.
type RecordElem struct {
	Name source.StringID
	Elem *Constraint
}

// Constraint is a resolved subtype constraint. Array and record constraints
// recursively nest element constraints.
type Constraint struct {
	Kind ConstraintKind
	Span source.Span
	// Range payload.
	Range ExprID
	// Array payload: index expressions (empty means `open`) and the optional
	// element constraint.
	Index []ExprID
	Elem  *Constraint
	// Record payload.
	Elems []RecordElem
}

// SubtypeInd is a subtype indication: a type mark with an optional
// constraint. The type mark stays a syntactic name in this slice; binding it
// to a type is the type checker's query.
type SubtypeInd struct {
	Span       source.Span
	TypeMark   ast.Name
	Constraint Constraint
}

// ExprKind tags the expression union.
type ExprKind uint8

const (
	ExprInvalid ExprKind = iota
	// ExprName is a resolved name reference.
	ExprName
	// ExprSelect is a selection `a.b`.
	ExprSelect
	// ExprAttr is an attribute selection `a'b`.
	ExprAttr
	ExprIntLit
	ExprFloatLit
	ExprUnary
	ExprBinary
	ExprRange
)

// Expr is an expression. Sub-expressions are addressed by ID, never
// embedded, so expression trees are DAG-like and shareable.
type Expr struct {
	// Parent is the scope in which the expression's names resolve.
	Parent ScopeRef
	Span   source.Span
	Kind   ExprKind

	// ExprName payload: the resolved definition and the span it was named at.
	Def     Def
	DefSpan source.Span

	// ExprSelect / ExprAttr payload: prefix expression and selector. The
	// selector is left unresolved here; resolving it needs type information.
	Sel ast.Ident

	Int   int64
	Float float64

	Unary  ast.UnaryOp
	Binary ast.BinaryOp
	Dir    Dir
	X, Y   ExprID
}
