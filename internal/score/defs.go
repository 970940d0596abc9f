package score

import (
	"fmt"

	"latch/internal/ast"
	"latch/internal/diag"
	"latch/internal/hir"
	"latch/internal/source"
)

// Defs is the definition table of one scope-introducing construct: every name
// the construct declares, mapped to the definitions behind it. Overloadable
// kinds (enumeration literals) accumulate several entries under one name;
// everything else is unique. The names slice keeps insertion order so that
// iteration, and with it diagnostic ordering, is deterministic.
type Defs struct {
	byName map[source.StringID][]hir.DefSpan
	names  []source.StringID
}

func newDefs() *Defs {
	return &Defs{byName: make(map[source.StringID][]hir.DefSpan)}
}

func (d *Defs) add(name source.StringID, ds hir.DefSpan) {
	if _, ok := d.byName[name]; !ok {
		d.names = append(d.names, name)
	}
	d.byName[name] = append(d.byName[name], ds)
}

// Lookup returns all definitions under the given (case-folded) name, or nil.
func (d *Defs) Lookup(name source.StringID) []hir.DefSpan {
	return d.byName[name]
}

// Names lists the defined names in insertion order.
func (d *Defs) Names() []source.StringID {
	return d.names
}

// Len reports how many distinct names are defined.
func (d *Defs) Len() int {
	return len(d.byName)
}

// DefsOf returns the definition table of a scope-introducing construct. The
// result is memoized; diagnostics for duplicate or unresolvable names are
// emitted once, on first computation.
func (b *Board) DefsOf(ref hir.ScopeRef) (*Defs, error) {
	if r, ok := b.defs[ref]; ok {
		if r.failed {
			return nil, ErrFailed
		}
		return r.val, nil
	}
	t := task{art: artifactDefs, ref: ref}
	if err := b.begin(t, b.refSpan(ref)); err != nil {
		return nil, err
	}
	defer b.end(t)

	var (
		defs *Defs
		err  error
	)
	switch ref.Kind {
	case hir.ScopeRefLib:
		defs, err = b.defsOfLib(ref.Lib())
	case hir.ScopeRefCtxItems:
		defs, err = b.defsOfCtxItems(ref.CtxItems())
	case hir.ScopeRefPkg:
		defs, err = b.defsOfPkg(ref.Pkg())
	case hir.ScopeRefEntity, hir.ScopeRefArch, hir.ScopeRefPkgInst:
		diag.ReportError(b.reporter, diag.ScoreNotYetSupported, b.refSpan(ref),
			fmt.Sprintf("definitions of %s are not yet supported", ref.Kind)).Emit()
		err = ErrFailed
	default:
		panic("score: defs of invalid scope ref")
	}
	if err != nil {
		b.defs[ref] = result[*Defs]{failed: true}
		return nil, err
	}
	b.defs[ref] = result[*Defs]{val: defs}
	return defs, nil
}

// defsOfLib gathers the primary design unit names a library defines.
// Architectures and package bodies are secondary units named inside the
// namespace of their primary unit and do not appear here.
func (b *Board) defsOfLib(id hir.LibID) (*Defs, error) {
	lib, err := b.HirLib(id)
	if err != nil {
		return nil, err
	}

	defs := newDefs()
	put := func(name ast.Ident, def hir.Def) {
		b.tracef("declaring `%s` as %s", b.name(name.Name), def.Kind)
		defs.add(name.Name, hir.DefSpan{Def: def, Span: name.Span})
	}
	for _, eid := range lib.Entities {
		put(b.syn.Unit(b.entitySites[eid].unit).Name, hir.EntityDef(eid))
	}
	for _, cid := range lib.Cfgs {
		put(b.syn.Unit(b.cfgSites[cid].unit).Name, hir.CfgDef(cid))
	}
	for _, pid := range lib.PkgDecls {
		put(b.syn.Unit(b.pkgSites[pid].unit).Name, hir.PkgDef(pid))
	}
	for _, iid := range lib.PkgInsts {
		put(b.syn.Unit(b.pkgInstSite[iid].unit).Name, hir.PkgInstDef(iid))
	}
	for _, xid := range lib.Ctxs {
		put(b.syn.Unit(b.ctxSites[xid].unit).Name, hir.CtxDef(xid))
	}

	hadDups := false
	for _, name := range defs.names {
		ds := defs.byName[name]
		if len(ds) <= 1 {
			continue
		}
		rb := diag.ReportError(b.reporter, diag.ScoreDuplicateDef, ds[0].Span,
			fmt.Sprintf("`%s` declared multiple times", b.name(name)))
		for _, d := range ds[1:] {
			rb.WithNote(d.Span, "also declared here")
		}
		rb.Emit()
		hadDups = true
	}
	if hadDups {
		return nil, ErrFailed
	}
	return defs, nil
}

// defsOfCtxItems gathers the library names that the library clauses of a
// context clause region bring into scope. Use clauses contribute to the scope,
// not to the definition table.
func (b *Board) defsOfCtxItems(id hir.CtxItemsID) (*Defs, error) {
	items := b.arenas.CtxItems(id)
	defs := newDefs()
	hadFails := false
	for _, itemID := range items.Items {
		item := b.syn.CtxItem(itemID)
		if item.Kind != ast.CtxLibClause {
			continue
		}
		for _, ident := range item.Names {
			libID, ok := b.libNames[ident.Name]
			if !ok {
				diag.ReportError(b.reporter, diag.ScoreUnknownLibrary, ident.Span,
					fmt.Sprintf("no library named `%s` found", b.name(ident.Name))).Emit()
				hadFails = true
				continue
			}
			if prev := defs.Lookup(ident.Name); len(prev) > 0 {
				diag.ReportError(b.reporter, diag.ScoreDuplicateLibClause, ident.Span,
					fmt.Sprintf("`%s` has already been declared", b.name(ident.Name))).
					WithNote(prev[0].Span, "previous declaration is here").
					Emit()
				hadFails = true
				continue
			}
			b.tracef("declaring `%s` as %s", b.name(ident.Name), hir.DefLib)
			defs.add(ident.Name, hir.DefSpan{Def: hir.LibDef(libID), Span: ident.Span})
		}
	}
	if hadFails {
		return nil, ErrFailed
	}
	return defs, nil
}

// defsOfPkg gathers the names a package declares: one per declaration, plus
// one per enumeration literal of each enumeration type declaration.
func (b *Board) defsOfPkg(id hir.PkgID) (*Defs, error) {
	pkg, err := b.HirPkg(id)
	if err != nil {
		return nil, err
	}

	defs := newDefs()
	hadFails := false
	put := func(name ast.Ident, def hir.Def) {
		b.tracef("declaring `%s` as %s", b.name(name.Name), def.Kind)
		existing := defs.Lookup(name.Name)
		if len(existing) > 0 && !(def.Kind.Overloadable() && existing[0].Def.Kind.Overloadable()) {
			diag.ReportError(b.reporter, diag.ScoreDuplicateDef, name.Span,
				fmt.Sprintf("`%s` has already been declared", b.name(name.Name))).
				WithNote(existing[len(existing)-1].Span, "previous declaration is here").
				Emit()
			hadFails = true
			return
		}
		defs.add(name.Name, hir.DefSpan{Def: def, Span: name.Span})
	}

	for _, decl := range pkg.Decls {
		switch decl.Kind {
		case hir.DeclInPkgPkg:
			put(b.declName(b.pkgDeclSites[decl.Pkg()].decl), hir.PkgDef(decl.Pkg()))
		case hir.DeclInPkgPkgInst:
			put(b.declName(b.pkgInstDeclSite[decl.PkgInst()].decl), hir.PkgInstDef(decl.PkgInst()))
		case hir.DeclInPkgType:
			tid := decl.Type()
			ty, err := b.HirTypeDecl(tid)
			if err != nil {
				hadFails = true
				continue
			}
			put(ty.Name, hir.TypeDef(tid))
			if ty.Data != nil && ty.Data.Kind == hir.TypeEnum {
				for i, lit := range ty.Data.Lits {
					put(lit, hir.EnumDef(tid, uint32(i)))
				}
			}
		case hir.DeclInPkgSubtype:
			put(b.declName(b.subtypeSites[decl.Subtype()].decl), hir.SubtypeDef(decl.Subtype()))
		case hir.DeclInPkgConst:
			put(b.declName(b.constSites[decl.Const()].decl), hir.ConstDef(decl.Const()))
		case hir.DeclInPkgSignal:
			put(b.declName(b.signalSites[decl.Signal()].decl), hir.SignalDef(decl.Signal()))
		case hir.DeclInPkgVariable:
			put(b.declName(b.variableSites[decl.Variable()].decl), hir.VariableDef(decl.Variable()))
		case hir.DeclInPkgFile:
			put(b.declName(b.fileSites[decl.File()].decl), hir.FileDef(decl.File()))
		}
	}
	if hadFails {
		return nil, ErrFailed
	}
	return defs, nil
}

func (b *Board) declName(id ast.DeclID) ast.Ident {
	return b.syn.Decl(id).Name
}
