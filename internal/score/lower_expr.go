package score

import (
	"latch/internal/ast"
	"latch/internal/diag"
	"latch/internal/hir"
	"latch/internal/source"
)

// reserveExpr hands out an expression ID for a syntactic expression without
// lowering it. Lowering, and with it name resolution, happens lazily in
// HirExpr; this keeps declaration lowering free of scope queries and thereby
// free of false cycles (a range bound naming a constant of the same package
// must not re-enter the package's definitions query). An invalid input ID
// (an absent optional expression) maps to the invalid output ID.
func (b *Board) reserveExpr(parent hir.ScopeRef, id ast.ExprID) hir.ExprID {
	if !id.IsValid() {
		return hir.NoExprID
	}
	eid := b.arenas.ReserveExpr()
	b.exprSites[eid] = exprSite{expr: id, parent: parent}
	return eid
}

// HirExpr lowers an expression. Sub-expressions are reserved here and lowered
// by their own queries.
func (b *Board) HirExpr(id hir.ExprID) (*hir.Expr, error) {
	if r, ok := b.hirExprs[id]; ok {
		if r.failed {
			return nil, ErrFailed
		}
		return r.val, nil
	}

	site, ok := b.exprSites[id]
	if !ok {
		panic("score: expression ID without a syntax site")
	}
	e := b.syn.Expr(site.expr)

	var (
		node hir.Expr
		err  error
	)
	switch e.Kind {
	case ast.ExprIntLit:
		node = hir.Expr{Kind: hir.ExprIntLit, Int: e.Int}
	case ast.ExprFloatLit:
		node = hir.Expr{Kind: hir.ExprFloatLit, Float: e.Float}
	case ast.ExprUnary:
		node = hir.Expr{
			Kind:  hir.ExprUnary,
			Unary: e.Unary,
			X:     b.reserveExpr(site.parent, e.X),
		}
	case ast.ExprBinary:
		node = hir.Expr{
			Kind:   hir.ExprBinary,
			Binary: e.Binary,
			X:      b.reserveExpr(site.parent, e.X),
			Y:      b.reserveExpr(site.parent, e.Y),
		}
	case ast.ExprRange:
		node = hir.Expr{
			Kind: hir.ExprRange,
			Dir:  e.Dir,
			X:    b.reserveExpr(site.parent, e.X),
			Y:    b.reserveExpr(site.parent, e.Y),
		}
	case ast.ExprName:
		node, err = b.lowerNameExpr(site.parent, e)
	default:
		diag.ReportError(b.reporter, diag.ScoreNotYetSupported, e.Span,
			"expression form not yet supported").Emit()
		err = ErrFailed
	}
	if err != nil {
		b.hirExprs[id] = result[*hir.Expr]{failed: true}
		return nil, err
	}
	node.Parent = site.parent
	node.Span = e.Span
	out := b.arenas.PutExpr(id, node)
	b.hirExprs[id] = result[*hir.Expr]{val: out}
	return out, nil
}

// commitExpr allocates and memoizes an already-lowered node. Later HirExpr
// calls on the returned ID serve the memo; there is no syntax site to go
// back to.
func (b *Board) commitExpr(node hir.Expr) hir.ExprID {
	id := b.arenas.ReserveExpr()
	out := b.arenas.PutExpr(id, node)
	b.hirExprs[id] = result[*hir.Expr]{val: out}
	return id
}

// lowerNameExpr resolves the leading prefix of a name expression in the
// enclosing scope and chains the remaining selections and attributes as
// unresolved suffix nodes for the type checker.
func (b *Board) lowerNameExpr(parent hir.ScopeRef, e *ast.Expr) (hir.Expr, error) {
	sc, err := b.ScopeOf(parent)
	if err != nil {
		return hir.Expr{}, err
	}
	res, err := b.resolveCompoundName(&e.Name, sc)
	if err != nil {
		return hir.Expr{}, err
	}

	last := res.Defs[len(res.Defs)-1]
	node := hir.Expr{
		Kind:    hir.ExprName,
		Def:     last.Def,
		DefSpan: res.Name.Span,
	}
	for i := range res.Tail {
		part := &res.Tail[i]
		switch part.Kind {
		case ast.NamePartSelect:
			inner := b.commitExpr(withContext(node, parent, res.ValidSpan))
			node = hir.Expr{Kind: hir.ExprSelect, Sel: part.Ident, X: inner}
		case ast.NamePartAttr:
			inner := b.commitExpr(withContext(node, parent, res.ValidSpan))
			node = hir.Expr{Kind: hir.ExprAttr, Sel: part.Ident, X: inner}
		default:
			diag.ReportError(b.reporter, diag.ScoreInvalidAll, part.Span,
				"`all` not possible in an expression").Emit()
			return hir.Expr{}, ErrFailed
		}
		res.ValidSpan = res.ValidSpan.Cover(part.Span)
	}
	return node, nil
}

func withContext(node hir.Expr, parent hir.ScopeRef, span source.Span) hir.Expr {
	node.Parent = parent
	node.Span = span
	return node
}
