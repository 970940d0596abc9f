package score

import (
	"fmt"

	"latch/internal/ast"
	"latch/internal/diag"
	"latch/internal/hir"
	"latch/internal/source"
)

// Scope is a resolved visibility region. Name lookup consults, in order, the
// explicit imports, then the definition tables of every construct in Refs,
// then the parent scope.
type Scope struct {
	// Parent is the enclosing scope, or NoScopeRef at the root.
	Parent hir.ScopeRef
	// Refs lists the constructs whose definition tables are visible here.
	// The first entry is always the scope's own construct; wildcard imports
	// (`use lib.pkg.all`) append further entries.
	Refs []hir.ScopeRef
	// Explicit holds names imported one by one (`use lib.pkg.name`) and the
	// implicitly visible library names.
	Explicit map[source.StringID][]hir.DefSpan
}

func (s *Scope) addExplicit(name source.StringID, ds ...hir.DefSpan) {
	if s.Explicit == nil {
		s.Explicit = make(map[source.StringID][]hir.DefSpan)
	}
	s.Explicit[name] = append(s.Explicit[name], ds...)
}

// ScopeOf returns the scope of a scope-introducing construct. Results are
// memoized, cached failures included.
func (b *Board) ScopeOf(ref hir.ScopeRef) (*Scope, error) {
	if r, ok := b.scopes[ref]; ok {
		if r.failed {
			return nil, ErrFailed
		}
		return r.val, nil
	}
	t := task{art: artifactScope, ref: ref}
	if err := b.begin(t, b.refSpan(ref)); err != nil {
		return nil, err
	}
	defer b.end(t)

	var (
		sc  *Scope
		err error
	)
	switch ref.Kind {
	case hir.ScopeRefLib:
		sc = &Scope{Refs: []hir.ScopeRef{ref}}
	case hir.ScopeRefCtxItems:
		sc, err = b.makeCtxItemsScope(ref.CtxItems())
	case hir.ScopeRefEntity:
		sc, err = b.makeEntityScope(ref.Entity())
	case hir.ScopeRefArch:
		sc, err = b.makeArchScope(ref.Arch())
	case hir.ScopeRefPkg:
		sc, err = b.makePkgScope(ref.Pkg())
	case hir.ScopeRefPkgInst:
		diag.ReportError(b.reporter, diag.ScoreNotYetSupported, b.refSpan(ref),
			"package instance scopes are not yet supported").Emit()
		err = ErrFailed
	default:
		panic("score: scope of invalid scope ref")
	}
	if err != nil {
		b.scopes[ref] = result[*Scope]{failed: true}
		return nil, err
	}
	b.scopes[ref] = result[*Scope]{val: sc}
	return sc, nil
}

// makeCtxItemsScope builds the scope of the context clause region preceding a
// design unit. The region's own library clauses are visible through its
// definition table; each use clause is resolved against the scope under
// construction, which is safe because resolving a use-clause prefix only ever
// consults definition tables, never this scope's finished form. A use clause
// that does require the finished scope is caught by the in-progress mark and
// reported as a circular dependency instead of recursing forever.
func (b *Board) makeCtxItemsScope(id hir.CtxItemsID) (*Scope, error) {
	items := b.arenas.CtxItems(id)
	sc := &Scope{
		Parent: b.ctxParents[id],
		Refs:   []hir.ScopeRef{hir.CtxItemsScope(id)},
	}

	// `work` denotes the owning library, `std` is visible without a library
	// clause (IEEE 1076-2008 section 13.2).
	owner := b.ctxLib[id]
	if owner.IsValid() {
		sc.addExplicit(b.workName, hir.DefSpan{Def: hir.LibDef(owner)})
	}
	if stdLib, ok := b.libNames[b.stdName]; ok {
		sc.addExplicit(b.stdName, hir.DefSpan{Def: hir.LibDef(stdLib)})
	}

	hadFails := false
	for _, itemID := range items.Items {
		item := b.syn.CtxItem(itemID)
		if item.Kind != ast.CtxUseClause {
			continue
		}
		for i := range item.Uses {
			name := &item.Uses[i]
			res, err := b.resolveCompoundName(name, sc)
			if err != nil {
				hadFails = true
				continue
			}
			tail := res.Tail
			consumed := res.ValidSpan

			// Resolve the optional trailing `all`.
			if len(tail) > 0 && tail[0].Kind == ast.NamePartAll {
				allSpan := tail[0].Span
				tail = tail[1:]
				consumed = consumed.Cover(allSpan)
				last := res.Defs[len(res.Defs)-1]
				if last.Def.Kind == hir.DefPkg {
					sc.Refs = append(sc.Refs, hir.PkgScope(last.Def.Pkg()))
				} else {
					diag.ReportError(b.reporter, diag.ScoreInvalidAll, allSpan,
						fmt.Sprintf("`all` not possible on `%s`", b.name(res.Name.Name))).Emit()
					hadFails = true
					continue
				}
			} else {
				sc.addExplicit(res.Name.Name, res.Defs...)
			}

			// Anything left over after the `all` is garbage.
			if len(tail) > 0 {
				span := consumed.Between(name.Span)
				diag.ReportError(b.reporter, diag.ScoreInvalidNameSuffix, span,
					"invalid name suffix").Emit()
				hadFails = true
				continue
			}
		}
	}
	if hadFails {
		return nil, ErrFailed
	}
	return sc, nil
}

// makeEntityScope builds the scope of an entity. The entity's context clause
// region is its parent.
func (b *Board) makeEntityScope(id hir.EntityID) (*Scope, error) {
	entity, err := b.HirEntity(id)
	if err != nil {
		return nil, err
	}
	return &Scope{
		Parent: hir.CtxItemsScope(entity.CtxItems),
		Refs:   []hir.ScopeRef{hir.EntityScope(id)},
	}, nil
}

// makeArchScope builds the scope of an architecture. The architecture's
// context clause region is its parent; the region itself is parented to the
// entity scope.
func (b *Board) makeArchScope(id hir.ArchID) (*Scope, error) {
	arch, err := b.HirArch(id)
	if err != nil {
		return nil, err
	}
	return &Scope{
		Parent: hir.CtxItemsScope(arch.CtxItems),
		Refs:   []hir.ScopeRef{hir.ArchScope(id)},
	}, nil
}

// makePkgScope builds the scope of a package declaration. A top-level package
// is parented to its context clause region; a nested one to its enclosing
// scope.
func (b *Board) makePkgScope(id hir.PkgID) (*Scope, error) {
	pkg, err := b.HirPkg(id)
	if err != nil {
		return nil, err
	}
	return &Scope{
		Parent: pkg.Parent,
		Refs:   []hir.ScopeRef{hir.PkgScope(id)},
	}, nil
}
