package score

import (
	"fmt"

	"latch/internal/ast"
	"latch/internal/diag"
	"latch/internal/hir"
)

// HirLib buckets the design units of a library by kind and reserves an ID for
// each, so that definition tables can reference units whose HIR has not been
// computed yet. The query never fails.
func (b *Board) HirLib(id hir.LibID) (*hir.Lib, error) {
	if r, ok := b.hirLibs[id]; ok {
		return r.val, nil
	}

	var lib hir.Lib
	for _, uid := range b.libUnits[id] {
		unit := b.syn.Unit(uid)
		site := unitSite{unit: uid, lib: id}
		switch unit.Kind {
		case ast.UnitEntity:
			eid := b.arenas.ReserveEntity()
			b.entitySites[eid] = site
			lib.Entities = append(lib.Entities, eid)
		case ast.UnitArch:
			aid := b.arenas.ReserveArch()
			b.archSites[aid] = site
			lib.Archs = append(lib.Archs, aid)
		case ast.UnitPkgDecl:
			pid := b.arenas.ReservePkg()
			b.pkgSites[pid] = site
			lib.PkgDecls = append(lib.PkgDecls, pid)
		case ast.UnitPkgBody:
			b.nextPkgBody++
			bid := hir.PkgBodyID(b.nextPkgBody)
			b.pkgBodySite[bid] = site
			lib.PkgBodies = append(lib.PkgBodies, bid)
		case ast.UnitPkgInst:
			b.nextPkgInst++
			iid := hir.PkgInstID(b.nextPkgInst)
			b.pkgInstSite[iid] = site
			lib.PkgInsts = append(lib.PkgInsts, iid)
		case ast.UnitCtx:
			b.nextCtx++
			xid := hir.CtxID(b.nextCtx)
			b.ctxSites[xid] = site
			lib.Ctxs = append(lib.Ctxs, xid)
		case ast.UnitCfg:
			b.nextCfg++
			cid := hir.CfgID(b.nextCfg)
			b.cfgSites[cid] = site
			lib.Cfgs = append(lib.Cfgs, cid)
		default:
			panic("score: design unit of invalid kind")
		}
	}

	node := b.arenas.PutLib(id, lib)
	b.hirLibs[id] = result[*hir.Lib]{val: node}
	return node, nil
}

// allocCtxItems materializes the context clause region of a design unit and
// records the owning library and the parent scope its consumer dictates.
func (b *Board) allocCtxItems(uid ast.UnitID, lib hir.LibID, parent hir.ScopeRef) hir.CtxItemsID {
	unit := b.syn.Unit(uid)
	cid := b.arenas.AllocCtxItems(hir.CtxItems{Unit: uid, Items: unit.CtxItems})
	b.ctxLib[cid] = lib
	b.ctxParents[cid] = parent
	return cid
}

// HirEntity lowers an entity declaration. Generic and port declarations are
// reserved here and lowered lazily by their own queries.
func (b *Board) HirEntity(id hir.EntityID) (*hir.Entity, error) {
	if r, ok := b.hirEntities[id]; ok {
		if r.failed {
			return nil, ErrFailed
		}
		return r.val, nil
	}

	site, ok := b.entitySites[id]
	if !ok {
		panic("score: entity ID without a syntax site")
	}
	unit := b.syn.Unit(site.unit)
	ctx := b.allocCtxItems(site.unit, site.lib, hir.NoScopeRef)
	scope := hir.EntityScope(id)

	hadFails := false
	var generics []hir.GenericRef
	for _, did := range unit.Generics {
		decl := b.syn.Decl(did)
		ds := declSite{decl: did, parent: scope}
		switch decl.Kind {
		case ast.DeclType:
			tid := b.arenas.ReserveTypeDecl()
			b.typeSites[tid] = ds
			generics = append(generics, hir.GenericRef{Kind: hir.GenericType, Type: tid})
		case ast.DeclSubtype:
			sid := b.arenas.ReserveSubtypeDecl()
			b.subtypeSites[sid] = ds
			generics = append(generics, hir.GenericRef{Kind: hir.GenericSubtype, Subtype: sid})
		case ast.DeclConst:
			cid := b.arenas.ReserveConstDecl()
			b.constSites[cid] = ds
			generics = append(generics, hir.GenericRef{Kind: hir.GenericConst, Const: cid})
		case ast.DeclPkg:
			pid := b.arenas.ReservePkg()
			b.pkgDeclSites[pid] = ds
			generics = append(generics, hir.GenericRef{Kind: hir.GenericPkg, Pkg: pid})
		default:
			diag.ReportError(b.reporter, diag.ScoreNotYetSupported, decl.Name.Span,
				fmt.Sprintf("%s generics are not yet supported", decl.Kind)).Emit()
			hadFails = true
		}
	}

	ports := make([]hir.IntfSignalID, 0, len(unit.Ports))
	for _, pid := range unit.Ports {
		sid := b.arenas.ReserveIntfSignal()
		b.portSites[sid] = portSite{port: pid, parent: scope}
		ports = append(ports, sid)
	}

	if hadFails {
		b.hirEntities[id] = result[*hir.Entity]{failed: true}
		return nil, ErrFailed
	}
	node := b.arenas.PutEntity(id, hir.Entity{
		CtxItems: ctx,
		Lib:      site.lib,
		Name:     unit.Name,
		Generics: generics,
		Ports:    ports,
	})
	b.hirEntities[id] = result[*hir.Entity]{val: node}
	return node, nil
}

// HirArch lowers an architecture body. The entity it implements is found by
// direct syntactic search within the owning library; the context clause
// region is parented to the entity scope so ports and generics stay visible.
func (b *Board) HirArch(id hir.ArchID) (*hir.Arch, error) {
	if r, ok := b.hirArchs[id]; ok {
		if r.failed {
			return nil, ErrFailed
		}
		return r.val, nil
	}

	site, ok := b.archSites[id]
	if !ok {
		panic("score: architecture ID without a syntax site")
	}
	unit := b.syn.Unit(site.unit)
	lib, err := b.HirLib(site.lib)
	if err != nil {
		b.hirArchs[id] = result[*hir.Arch]{failed: true}
		return nil, err
	}

	entity := hir.NoEntityID
	for _, eid := range lib.Entities {
		if b.syn.Unit(b.entitySites[eid].unit).Name.Name == unit.EntityName.Name {
			entity = eid
			break
		}
	}
	if !entity.IsValid() {
		diag.ReportError(b.reporter, diag.ScoreUnresolvedEntity, unit.EntityName.Span,
			fmt.Sprintf("no entity named `%s` found in library `%s`",
				b.name(unit.EntityName.Name), b.name(b.libIdents[site.lib].Name))).Emit()
		b.hirArchs[id] = result[*hir.Arch]{failed: true}
		return nil, ErrFailed
	}

	ctx := b.allocCtxItems(site.unit, site.lib, hir.EntityScope(entity))
	node := b.arenas.PutArch(id, hir.Arch{
		CtxItems: ctx,
		Entity:   entity,
		Name:     unit.Name,
		Decls:    unit.Decls,
		Stmts:    unit.Stmts,
	})
	b.hirArchs[id] = result[*hir.Arch]{val: node}
	return node, nil
}

// HirPkg lowers a package declaration, either a top-level design unit or a
// package nested in another declarative region. The declarations themselves
// are reserved here and lowered lazily.
func (b *Board) HirPkg(id hir.PkgID) (*hir.Pkg, error) {
	if r, ok := b.hirPkgs[id]; ok {
		if r.failed {
			return nil, ErrFailed
		}
		return r.val, nil
	}

	var (
		name    ast.Ident
		parent  hir.ScopeRef
		declIDs []ast.DeclID
	)
	if site, ok := b.pkgSites[id]; ok {
		unit := b.syn.Unit(site.unit)
		ctx := b.allocCtxItems(site.unit, site.lib, hir.NoScopeRef)
		name = unit.Name
		parent = hir.CtxItemsScope(ctx)
		declIDs = unit.Decls
	} else if site, ok := b.pkgDeclSites[id]; ok {
		decl := b.syn.Decl(site.decl)
		name = decl.Name
		parent = site.parent
		declIDs = decl.Decls
	} else {
		panic("score: package ID without a syntax site")
	}

	decls, hadFails := b.reservePkgDecls(hir.PkgScope(id), declIDs)
	if hadFails {
		b.hirPkgs[id] = result[*hir.Pkg]{failed: true}
		return nil, ErrFailed
	}
	node := b.arenas.PutPkg(id, hir.Pkg{
		Parent: parent,
		Name:   name,
		Decls:  decls,
	})
	b.hirPkgs[id] = result[*hir.Pkg]{val: node}
	return node, nil
}

// reservePkgDecls reserves IDs for the declarations of a package and records
// their syntax sites. Unsupported declaration kinds are reported and skipped.
func (b *Board) reservePkgDecls(parent hir.ScopeRef, declIDs []ast.DeclID) ([]hir.DeclInPkgRef, bool) {
	hadFails := false
	decls := make([]hir.DeclInPkgRef, 0, len(declIDs))
	for _, did := range declIDs {
		decl := b.syn.Decl(did)
		ds := declSite{decl: did, parent: parent}
		switch decl.Kind {
		case ast.DeclType:
			tid := b.arenas.ReserveTypeDecl()
			b.typeSites[tid] = ds
			decls = append(decls, hir.TypeDeclRef(tid))
		case ast.DeclSubtype:
			sid := b.arenas.ReserveSubtypeDecl()
			b.subtypeSites[sid] = ds
			decls = append(decls, hir.SubtypeDeclRef(sid))
		case ast.DeclConst:
			cid := b.arenas.ReserveConstDecl()
			b.constSites[cid] = ds
			decls = append(decls, hir.ConstDeclRef(cid))
		case ast.DeclSignal:
			sid := b.arenas.ReserveSignalDecl()
			b.signalSites[sid] = ds
			decls = append(decls, hir.SignalDeclRef(sid))
		case ast.DeclVariable:
			vid := b.arenas.ReserveVariableDecl()
			b.variableSites[vid] = ds
			decls = append(decls, hir.VariableDeclRef(vid))
		case ast.DeclFile:
			fid := b.arenas.ReserveFileDecl()
			b.fileSites[fid] = ds
			decls = append(decls, hir.FileDeclRef(fid))
		case ast.DeclPkg:
			pid := b.arenas.ReservePkg()
			b.pkgDeclSites[pid] = ds
			decls = append(decls, hir.PkgDeclRef(pid))
		case ast.DeclPkgInst:
			b.nextPkgInst++
			iid := hir.PkgInstID(b.nextPkgInst)
			b.pkgInstDeclSite[iid] = ds
			decls = append(decls, hir.PkgInstDeclRef(iid))
		default:
			diag.ReportError(b.reporter, diag.ScoreNotYetSupported, decl.Name.Span,
				fmt.Sprintf("%s declarations are not yet supported here", decl.Kind)).Emit()
			hadFails = true
		}
	}
	return decls, hadFails
}
