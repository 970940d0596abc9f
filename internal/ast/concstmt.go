package ast

import (
	"latch/internal/source"
)

// ConcStmtID identifies a concurrent statement.
type ConcStmtID uint32

const NoConcStmtID ConcStmtID = 0

func (id ConcStmtID) IsValid() bool { return id != NoConcStmtID }

// ConcStmtKind enumerates the concurrent statement shapes the tree records.
// The semantic core carries these through unlowered; elaboration is a
// downstream consumer.
type ConcStmtKind uint8

const (
	ConcInvalid ConcStmtKind = iota
	// ConcAssign is a concurrent signal assignment `target <= value;`.
	ConcAssign
	// ConcProcess is a process statement.
	ConcProcess
)

// ConcStmt is a concurrent statement inside an architecture body.
type ConcStmt struct {
	Kind   ConcStmtKind
	Span   source.Span
	Label  Ident
	Target Name   // ConcAssign
	Value  ExprID // ConcAssign
}
