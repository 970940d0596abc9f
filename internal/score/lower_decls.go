package score

import (
	"latch/internal/ast"
	"latch/internal/hir"
)

// HirTypeDecl lowers a type declaration. Range bounds are reserved, not
// resolved; their names are looked up only when the bound expression itself
// is queried.
func (b *Board) HirTypeDecl(id hir.TypeDeclID) (*hir.TypeDecl, error) {
	if r, ok := b.hirTypes[id]; ok {
		return r.val, nil
	}

	site, ok := b.typeSites[id]
	if !ok {
		panic("score: type declaration ID without a syntax site")
	}
	decl := b.syn.Decl(site.decl)

	var data *hir.TypeData
	switch decl.Type.Kind {
	case ast.TypeDefNone:
		// Incomplete type declaration; data stays nil.
	case ast.TypeDefRange:
		data = &hir.TypeData{
			Kind: hir.TypeRange,
			Span: decl.Type.Span,
			Dir:  decl.Type.Dir,
			Lo:   b.reserveExpr(site.parent, decl.Type.Lo),
			Hi:   b.reserveExpr(site.parent, decl.Type.Hi),
		}
	case ast.TypeDefEnum:
		data = &hir.TypeData{
			Kind: hir.TypeEnum,
			Span: decl.Type.Span,
			Lits: decl.Type.Lits,
		}
	}

	node := b.arenas.PutTypeDecl(id, hir.TypeDecl{
		Parent: site.parent,
		Name:   decl.Name,
		Data:   data,
	})
	b.hirTypes[id] = result[*hir.TypeDecl]{val: node}
	return node, nil
}

// HirSubtypeDecl lowers a subtype declaration.
func (b *Board) HirSubtypeDecl(id hir.SubtypeDeclID) (*hir.SubtypeDecl, error) {
	if r, ok := b.hirSubtypes[id]; ok {
		return r.val, nil
	}

	site, ok := b.subtypeSites[id]
	if !ok {
		panic("score: subtype declaration ID without a syntax site")
	}
	decl := b.syn.Decl(site.decl)
	node := b.arenas.PutSubtypeDecl(id, hir.SubtypeDecl{
		Parent: site.parent,
		Name:   decl.Name,
		Subty:  b.lowerSubtypeInd(site.parent, decl.Subtype),
	})
	b.hirSubtypes[id] = result[*hir.SubtypeDecl]{val: node}
	return node, nil
}

// HirConstDecl lowers a constant declaration.
func (b *Board) HirConstDecl(id hir.ConstDeclID) (*hir.ConstDecl, error) {
	if r, ok := b.hirConsts[id]; ok {
		return r.val, nil
	}

	site, ok := b.constSites[id]
	if !ok {
		panic("score: constant declaration ID without a syntax site")
	}
	decl := b.syn.Decl(site.decl)
	node := b.arenas.PutConstDecl(id, hir.ConstDecl{
		Parent: site.parent,
		Name:   decl.Name,
		Subty:  b.lowerSubtypeInd(site.parent, decl.Subtype),
		Init:   b.reserveExpr(site.parent, decl.Init),
	})
	b.hirConsts[id] = result[*hir.ConstDecl]{val: node}
	return node, nil
}

// HirSignalDecl lowers a signal declaration.
func (b *Board) HirSignalDecl(id hir.SignalDeclID) (*hir.SignalDecl, error) {
	if r, ok := b.hirSignals[id]; ok {
		return r.val, nil
	}

	site, ok := b.signalSites[id]
	if !ok {
		panic("score: signal declaration ID without a syntax site")
	}
	decl := b.syn.Decl(site.decl)
	node := b.arenas.PutSignalDecl(id, hir.SignalDecl{
		Parent: site.parent,
		Name:   decl.Name,
		Subty:  b.lowerSubtypeInd(site.parent, decl.Subtype),
		Kind:   decl.Signal,
		Init:   b.reserveExpr(site.parent, decl.Init),
	})
	b.hirSignals[id] = result[*hir.SignalDecl]{val: node}
	return node, nil
}

// HirVariableDecl lowers a variable declaration.
func (b *Board) HirVariableDecl(id hir.VariableDeclID) (*hir.VariableDecl, error) {
	if r, ok := b.hirVars[id]; ok {
		return r.val, nil
	}

	site, ok := b.variableSites[id]
	if !ok {
		panic("score: variable declaration ID without a syntax site")
	}
	decl := b.syn.Decl(site.decl)
	node := b.arenas.PutVariableDecl(id, hir.VariableDecl{
		Parent: site.parent,
		Shared: decl.Shared,
		Name:   decl.Name,
		Subty:  b.lowerSubtypeInd(site.parent, decl.Subtype),
		Init:   b.reserveExpr(site.parent, decl.Init),
	})
	b.hirVars[id] = result[*hir.VariableDecl]{val: node}
	return node, nil
}

// HirFileDecl lowers a file declaration.
func (b *Board) HirFileDecl(id hir.FileDeclID) (*hir.FileDecl, error) {
	if r, ok := b.hirFiles[id]; ok {
		return r.val, nil
	}

	site, ok := b.fileSites[id]
	if !ok {
		panic("score: file declaration ID without a syntax site")
	}
	decl := b.syn.Decl(site.decl)
	node := b.arenas.PutFileDecl(id, hir.FileDecl{
		Parent:   site.parent,
		Name:     decl.Name,
		Subty:    b.lowerSubtypeInd(site.parent, decl.Subtype),
		FileName: b.reserveExpr(site.parent, decl.FileName),
		OpenKind: b.reserveExpr(site.parent, decl.FileOpen),
	})
	b.hirFiles[id] = result[*hir.FileDecl]{val: node}
	return node, nil
}

// HirIntfSignal lowers an interface signal (port) of an entity.
func (b *Board) HirIntfSignal(id hir.IntfSignalID) (*hir.IntfSignal, error) {
	if r, ok := b.hirPorts[id]; ok {
		return r.val, nil
	}

	site, ok := b.portSites[id]
	if !ok {
		panic("score: interface signal ID without a syntax site")
	}
	port := b.syn.Port(site.port)
	node := b.arenas.PutIntfSignal(id, hir.IntfSignal{
		Name: port.Name,
		Mode: port.Mode,
		Ty:   b.lowerSubtypeInd(site.parent, port.Subtype),
		Bus:  port.Bus,
		Init: b.reserveExpr(site.parent, port.Default),
	})
	b.hirPorts[id] = result[*hir.IntfSignal]{val: node}
	return node, nil
}

// lowerSubtypeInd lowers a subtype indication. The type mark stays syntactic;
// constraint expressions are reserved for lazy lowering.
func (b *Board) lowerSubtypeInd(parent hir.ScopeRef, si ast.SubtypeInd) hir.SubtypeIndID {
	return b.arenas.AllocSubtypeInd(hir.SubtypeInd{
		Span:       si.Span,
		TypeMark:   si.Mark,
		Constraint: b.lowerConstraint(parent, si.Constr),
	})
}

// lowerConstraint lowers a subtype constraint. An invalid ID means the
// indication was unconstrained.
func (b *Board) lowerConstraint(parent hir.ScopeRef, id ast.ConstraintID) hir.Constraint {
	if !id.IsValid() {
		return hir.Constraint{Kind: hir.ConstraintNone}
	}
	c := b.syn.Constraint(id)
	switch c.Kind {
	case ast.ConstraintRange:
		return hir.Constraint{
			Kind:  hir.ConstraintRange,
			Span:  c.Span,
			Range: b.reserveExpr(parent, c.Range),
		}
	case ast.ConstraintArray:
		index := make([]hir.ExprID, 0, len(c.Index))
		for _, eid := range c.Index {
			index = append(index, b.reserveExpr(parent, eid))
		}
		var elem *hir.Constraint
		if c.Elem.IsValid() {
			lowered := b.lowerConstraint(parent, c.Elem)
			elem = &lowered
		}
		return hir.Constraint{Kind: hir.ConstraintArray, Span: c.Span, Index: index, Elem: elem}
	case ast.ConstraintRecord:
		elems := make([]hir.RecordElem, 0, len(c.Elems))
		for _, nc := range c.Elems {
			lowered := b.lowerConstraint(parent, nc.Elem)
			elems = append(elems, hir.RecordElem{Name: nc.Name.Name, Elem: &lowered})
		}
		return hir.Constraint{Kind: hir.ConstraintRecord, Span: c.Span, Elems: elems}
	default:
		panic("score: constraint of invalid kind")
	}
}
