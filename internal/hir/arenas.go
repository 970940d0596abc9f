package hir

import (
	"fmt"

	"fortio.org/safecast"
)

// pool is an append-only arena for one node kind. IDs are 1-based; index 0
// is the sentinel. An ID can be reserved before its node exists, because
// identifiers address syntax-derived entities and are handed out while the
// node itself is still being computed. Nodes are heap-allocated, so the
// pointer returned for an ID never moves.
type pool[T any] struct {
	nodes []*T
}

// reserve hands out the next ID without committing a node.
func (p *pool[T]) reserve() uint32 {
	p.nodes = append(p.nodes, nil)
	id, err := safecast.Conv[uint32](len(p.nodes))
	if err != nil {
		panic(fmt.Errorf("hir: arena overflow: %w", err))
	}
	return id
}

// put commits the node for a reserved ID. Committing twice is a defect.
func (p *pool[T]) put(id uint32, v T) *T {
	if id == 0 || int(id) > len(p.nodes) {
		panic("hir: commit against unreserved ID")
	}
	if p.nodes[id-1] != nil {
		panic("hir: node committed twice")
	}
	n := &v
	p.nodes[id-1] = n
	return n
}

// alloc reserves and commits in one step.
func (p *pool[T]) alloc(v T) (uint32, *T) {
	id := p.reserve()
	return id, p.put(id, v)
}

// get dereferences a committed node. Stale or foreign IDs are a defect in
// the compiler, not in the input program, hence the panic.
func (p *pool[T]) get(id uint32, kind string) *T {
	if id == 0 || int(id) > len(p.nodes) || p.nodes[id-1] == nil {
		panic("hir: dereference of invalid " + kind)
	}
	return p.nodes[id-1]
}

func (p *pool[T]) len() int { return len(p.nodes) }

// Arenas bundles one pool per HIR node kind. Arenas own every node for the
// whole compilation run; no node is ever freed or mutated once committed.
type Arenas struct {
	libs          pool[Lib]
	ctxItems      pool[CtxItems]
	entities      pool[Entity]
	archs         pool[Arch]
	intfSignals   pool[IntfSignal]
	subtypeInds   pool[SubtypeInd]
	pkgs          pool[Pkg]
	typeDecls     pool[TypeDecl]
	subtypeDecls  pool[SubtypeDecl]
	constDecls    pool[ConstDecl]
	signalDecls   pool[SignalDecl]
	variableDecls pool[VariableDecl]
	fileDecls     pool[FileDecl]
	exprs         pool[Expr]
}

// NewArenas creates an empty arena set.
func NewArenas() *Arenas {
	return &Arenas{}
}

// Reservation for lazily built design units.

func (a *Arenas) ReserveLib() LibID       { return LibID(a.libs.reserve()) }
func (a *Arenas) ReserveEntity() EntityID { return EntityID(a.entities.reserve()) }
func (a *Arenas) ReserveArch() ArchID     { return ArchID(a.archs.reserve()) }
func (a *Arenas) ReservePkg() PkgID       { return PkgID(a.pkgs.reserve()) }
func (a *Arenas) ReserveIntfSignal() IntfSignalID {
	return IntfSignalID(a.intfSignals.reserve())
}
func (a *Arenas) ReserveTypeDecl() TypeDeclID       { return TypeDeclID(a.typeDecls.reserve()) }
func (a *Arenas) ReserveSubtypeDecl() SubtypeDeclID { return SubtypeDeclID(a.subtypeDecls.reserve()) }
func (a *Arenas) ReserveConstDecl() ConstDeclID     { return ConstDeclID(a.constDecls.reserve()) }
func (a *Arenas) ReserveSignalDecl() SignalDeclID   { return SignalDeclID(a.signalDecls.reserve()) }
func (a *Arenas) ReserveVariableDecl() VariableDeclID {
	return VariableDeclID(a.variableDecls.reserve())
}
func (a *Arenas) ReserveFileDecl() FileDeclID { return FileDeclID(a.fileDecls.reserve()) }
func (a *Arenas) ReserveExpr() ExprID         { return ExprID(a.exprs.reserve()) }

// Commit. Each node is committed exactly once, by the query that computes it.

func (a *Arenas) PutLib(id LibID, v Lib) *Lib             { return a.libs.put(uint32(id), v) }
func (a *Arenas) PutEntity(id EntityID, v Entity) *Entity { return a.entities.put(uint32(id), v) }
func (a *Arenas) PutArch(id ArchID, v Arch) *Arch         { return a.archs.put(uint32(id), v) }
func (a *Arenas) PutPkg(id PkgID, v Pkg) *Pkg             { return a.pkgs.put(uint32(id), v) }
func (a *Arenas) PutIntfSignal(id IntfSignalID, v IntfSignal) *IntfSignal {
	return a.intfSignals.put(uint32(id), v)
}
func (a *Arenas) PutTypeDecl(id TypeDeclID, v TypeDecl) *TypeDecl {
	return a.typeDecls.put(uint32(id), v)
}
func (a *Arenas) PutSubtypeDecl(id SubtypeDeclID, v SubtypeDecl) *SubtypeDecl {
	return a.subtypeDecls.put(uint32(id), v)
}
func (a *Arenas) PutConstDecl(id ConstDeclID, v ConstDecl) *ConstDecl {
	return a.constDecls.put(uint32(id), v)
}
func (a *Arenas) PutSignalDecl(id SignalDeclID, v SignalDecl) *SignalDecl {
	return a.signalDecls.put(uint32(id), v)
}
func (a *Arenas) PutVariableDecl(id VariableDeclID, v VariableDecl) *VariableDecl {
	return a.variableDecls.put(uint32(id), v)
}
func (a *Arenas) PutFileDecl(id FileDeclID, v FileDecl) *FileDecl {
	return a.fileDecls.put(uint32(id), v)
}
func (a *Arenas) PutExpr(id ExprID, v Expr) *Expr { return a.exprs.put(uint32(id), v) }

// One-step allocation for nodes built eagerly by their enclosing query.

func (a *Arenas) AllocCtxItems(v CtxItems) CtxItemsID {
	id, _ := a.ctxItems.alloc(v)
	return CtxItemsID(id)
}
func (a *Arenas) AllocSubtypeInd(v SubtypeInd) SubtypeIndID {
	id, _ := a.subtypeInds.alloc(v)
	return SubtypeIndID(id)
}
func (a *Arenas) AllocExpr(v Expr) ExprID {
	id, _ := a.exprs.alloc(v)
	return ExprID(id)
}

// Dereference.

func (a *Arenas) Lib(id LibID) *Lib { return a.libs.get(uint32(id), "LibID") }
func (a *Arenas) CtxItems(id CtxItemsID) *CtxItems {
	return a.ctxItems.get(uint32(id), "CtxItemsID")
}
func (a *Arenas) Entity(id EntityID) *Entity { return a.entities.get(uint32(id), "EntityID") }
func (a *Arenas) Arch(id ArchID) *Arch       { return a.archs.get(uint32(id), "ArchID") }
func (a *Arenas) IntfSignal(id IntfSignalID) *IntfSignal {
	return a.intfSignals.get(uint32(id), "IntfSignalID")
}
func (a *Arenas) SubtypeInd(id SubtypeIndID) *SubtypeInd {
	return a.subtypeInds.get(uint32(id), "SubtypeIndID")
}
func (a *Arenas) Pkg(id PkgID) *Pkg { return a.pkgs.get(uint32(id), "PkgID") }
func (a *Arenas) TypeDecl(id TypeDeclID) *TypeDecl {
	return a.typeDecls.get(uint32(id), "TypeDeclID")
}
func (a *Arenas) SubtypeDecl(id SubtypeDeclID) *SubtypeDecl {
	return a.subtypeDecls.get(uint32(id), "SubtypeDeclID")
}
func (a *Arenas) ConstDecl(id ConstDeclID) *ConstDecl {
	return a.constDecls.get(uint32(id), "ConstDeclID")
}
func (a *Arenas) SignalDecl(id SignalDeclID) *SignalDecl {
	return a.signalDecls.get(uint32(id), "SignalDeclID")
}
func (a *Arenas) VariableDecl(id VariableDeclID) *VariableDecl {
	return a.variableDecls.get(uint32(id), "VariableDeclID")
}
func (a *Arenas) FileDecl(id FileDeclID) *FileDecl {
	return a.fileDecls.get(uint32(id), "FileDeclID")
}
func (a *Arenas) Expr(id ExprID) *Expr { return a.exprs.get(uint32(id), "ExprID") }

// Stats reports how many nodes each arena holds, including reserved but not
// yet computed slots.
type Stats struct {
	Libs, CtxItems, Entities, Archs int
	IntfSignals, SubtypeInds        int
	Pkgs, TypeDecls, SubtypeDecls   int
	ConstDecls, SignalDecls         int
	VariableDecls, FileDecls, Exprs int
}

func (a *Arenas) Stats() Stats {
	return Stats{
		Libs:          a.libs.len(),
		CtxItems:      a.ctxItems.len(),
		Entities:      a.entities.len(),
		Archs:         a.archs.len(),
		IntfSignals:   a.intfSignals.len(),
		SubtypeInds:   a.subtypeInds.len(),
		Pkgs:          a.pkgs.len(),
		TypeDecls:     a.typeDecls.len(),
		SubtypeDecls:  a.subtypeDecls.len(),
		ConstDecls:    a.constDecls.len(),
		SignalDecls:   a.signalDecls.len(),
		VariableDecls: a.variableDecls.len(),
		FileDecls:     a.fileDecls.len(),
		Exprs:         a.exprs.len(),
	}
}
