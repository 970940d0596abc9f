package score

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"latch/internal/ast"
	"latch/internal/diag"
	"latch/internal/hir"
	"latch/internal/source"
)

// fixture bundles a syntax builder, a diagnostic bag and a board, plus a
// running byte offset so every span in a test is distinct.
type fixture struct {
	syn   *ast.Builder
	bag   *diag.Bag
	board *Board
	off   uint32
	trace bytes.Buffer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		syn: ast.NewBuilder(ast.Hints{}, nil),
		bag: diag.NewBag(64),
	}
	f.board = NewBoard(f.syn, Options{
		Reporter:   diag.BagReporter{Bag: f.bag},
		TraceScore: true,
		TraceW:     &f.trace,
	})
	return f
}

func (f *fixture) span(n uint32) source.Span {
	sp := source.Span{File: 1, Start: f.off, End: f.off + n}
	f.off += n + 1
	return sp
}

func (f *fixture) ident(name string) ast.Ident {
	return f.syn.Ident(name, f.span(uint32(len(name))))
}

func (f *fixture) entity(name string, ctxItems ...ast.CtxItemID) ast.UnitID {
	return f.syn.AddUnit(ast.Unit{
		Kind:     ast.UnitEntity,
		Name:     f.ident(name),
		CtxItems: ctxItems,
	})
}

func (f *fixture) constDecl(name string) ast.DeclID {
	return f.syn.AddDecl(ast.Decl{
		Kind: ast.DeclConst,
		Name: f.ident(name),
		Subtype: ast.SubtypeInd{
			Mark: ast.Name{Prim: f.ident("integer")},
		},
	})
}

func (f *fixture) enumType(name string, lits ...string) ast.DeclID {
	idents := make([]ast.Ident, 0, len(lits))
	for _, lit := range lits {
		idents = append(idents, f.ident(lit))
	}
	return f.syn.AddDecl(ast.Decl{
		Kind: ast.DeclType,
		Name: f.ident(name),
		Type: ast.TypeDef{Kind: ast.TypeDefEnum, Lits: idents},
	})
}

func (f *fixture) pkg(name string, decls ...ast.DeclID) ast.UnitID {
	return f.syn.AddUnit(ast.Unit{
		Kind:  ast.UnitPkgDecl,
		Name:  f.ident(name),
		Decls: decls,
	})
}

func (f *fixture) useClause(prim string, parts ...ast.NamePart) ast.CtxItemID {
	name := ast.Name{Prim: f.ident(prim)}
	name.Span = name.Prim.Span
	for _, p := range parts {
		name.Parts = append(name.Parts, p)
		name.Span = name.Span.Cover(p.Span)
	}
	return f.syn.AddCtxItem(ast.CtxItem{
		Kind: ast.CtxUseClause,
		Uses: []ast.Name{name},
	})
}

func (f *fixture) selPart(name string) ast.NamePart {
	id := f.ident(name)
	return ast.NamePart{Kind: ast.NamePartSelect, Ident: id, Span: id.Span}
}

func (f *fixture) allPart() ast.NamePart {
	return ast.NamePart{Kind: ast.NamePartAll, Span: f.span(3)}
}

func (f *fixture) attrPart(name string) ast.NamePart {
	id := f.ident(name)
	return ast.NamePart{Kind: ast.NamePartAttr, Ident: id, Span: id.Span}
}

func (f *fixture) intLit(v int64) ast.ExprID {
	return f.syn.AddExpr(ast.Expr{Kind: ast.ExprIntLit, Span: f.span(2), Int: v})
}

func (f *fixture) nameExpr(prim string, parts ...ast.NamePart) ast.ExprID {
	name := ast.Name{Prim: f.ident(prim)}
	name.Span = name.Prim.Span
	for _, p := range parts {
		name.Parts = append(name.Parts, p)
		name.Span = name.Span.Cover(p.Span)
	}
	return f.syn.AddExpr(ast.Expr{Kind: ast.ExprName, Span: name.Span, Name: name})
}

func (f *fixture) constInit(name string, init ast.ExprID) ast.DeclID {
	return f.syn.AddDecl(ast.Decl{
		Kind:    ast.DeclConst,
		Name:    f.ident(name),
		Subtype: ast.SubtypeInd{Mark: ast.Name{Prim: f.ident("integer")}},
		Init:    init,
	})
}

// firstPkg lowers the first package declaration of the library.
func (f *fixture) firstPkg(t *testing.T, lib hir.LibID) (hir.PkgID, *hir.Pkg) {
	t.Helper()
	hlib, err := f.board.HirLib(lib)
	if err != nil {
		t.Fatalf("HirLib failed: %v", err)
	}
	pkg, err := f.board.HirPkg(hlib.PkgDecls[0])
	if err != nil {
		t.Fatalf("HirPkg failed: %v", err)
	}
	return hlib.PkgDecls[0], pkg
}

func (f *fixture) lowered(t *testing.T, id hir.ExprID) *hir.Expr {
	t.Helper()
	e, err := f.board.HirExpr(id)
	if err != nil {
		t.Fatalf("HirExpr failed: %v", err)
	}
	return e
}

// entityCtxScope returns the scope built from the context items of the
// entity at position idx in the library. Name lookup targets this scope
// because the entity's own definition table is outside the supported slice.
func (f *fixture) entityCtxScope(t *testing.T, lib hir.LibID, idx int) hir.ScopeRef {
	t.Helper()
	hlib, err := f.board.HirLib(lib)
	if err != nil {
		t.Fatalf("HirLib failed: %v", err)
	}
	e, err := f.board.HirEntity(hlib.Entities[idx])
	if err != nil {
		t.Fatalf("HirEntity failed: %v", err)
	}
	return hir.CtxItemsScope(e.CtxItems)
}

func (f *fixture) onlyCode(t *testing.T, code diag.Code) diag.Diagnostic {
	t.Helper()
	if f.bag.Len() != 1 {
		for _, d := range f.bag.Items() {
			t.Logf("diagnostic: %s %s", d.Code.ID(), d.Message)
		}
		t.Fatalf("expected exactly 1 diagnostic, got %d", f.bag.Len())
	}
	d := f.bag.Items()[0]
	if d.Code != code {
		t.Fatalf("expected code %v, got %v (%s)", code, d.Code, d.Message)
	}
	return d
}

func TestLibDefsMemoized(t *testing.T) {
	f := newFixture(t)
	lib, _ := f.board.AddLibrary(f.ident("work"), []ast.UnitID{f.entity("foo")})

	first, err := f.board.DefsOf(hir.LibScope(lib))
	if err != nil {
		t.Fatalf("DefsOf failed: %v", err)
	}
	second, err := f.board.DefsOf(hir.LibScope(lib))
	if err != nil {
		t.Fatalf("second DefsOf failed: %v", err)
	}
	if first != second {
		t.Fatalf("expected identical *Defs across calls, got %p and %p", first, second)
	}

	// The side-effecting computation ran exactly once.
	if got := strings.Count(f.trace.String(), "declaring `foo`"); got != 1 {
		t.Fatalf("expected 1 trace line for foo, got %d\n%s", got, f.trace.String())
	}
}

func TestDuplicateEntityNames(t *testing.T) {
	f := newFixture(t)
	lib, _ := f.board.AddLibrary(f.ident("work"), []ast.UnitID{
		f.entity("foo"),
		f.entity("foo"),
	})

	if _, err := f.board.DefsOf(hir.LibScope(lib)); !errors.Is(err, ErrFailed) {
		t.Fatalf("expected ErrFailed, got %v", err)
	}
	d := f.onlyCode(t, diag.ScoreDuplicateDef)
	if len(d.Notes) != 1 {
		t.Fatalf("expected the conflicting span as a note, got %d notes", len(d.Notes))
	}
	if d.Primary == d.Notes[0].Span {
		t.Fatalf("primary and note should cite distinct spans")
	}

	// Cached failure: no second diagnostic.
	if _, err := f.board.DefsOf(hir.LibScope(lib)); !errors.Is(err, ErrFailed) {
		t.Fatalf("expected cached ErrFailed, got %v", err)
	}
	if f.bag.Len() != 1 {
		t.Fatalf("cached failure must not report again, got %d diagnostics", f.bag.Len())
	}
}

func TestEnumLiteralsOverload(t *testing.T) {
	f := newFixture(t)
	lib, _ := f.board.AddLibrary(f.ident("work"), []ast.UnitID{
		f.pkg("p",
			f.enumType("color", "red", "green"),
			f.enumType("fruit", "apple", "green"),
		),
	})

	hlib, err := f.board.HirLib(lib)
	if err != nil {
		t.Fatalf("HirLib failed: %v", err)
	}
	defs, err := f.board.DefsOf(hir.PkgScope(hlib.PkgDecls[0]))
	if err != nil {
		t.Fatalf("DefsOf failed: %v", err)
	}
	if f.bag.Len() != 0 {
		t.Fatalf("overloaded enum literal must not diagnose, got %d diagnostics", f.bag.Len())
	}

	green := defs.Lookup(f.syn.Strings.Intern("green"))
	if len(green) != 2 {
		t.Fatalf("expected 2 definitions for green, got %d", len(green))
	}
	for i, ds := range green {
		if ds.Def.Kind != hir.DefEnum {
			t.Errorf("green[%d]: expected enumeration literal, got %v", i, ds.Def.Kind)
		}
	}
	if green[0].Def == green[1].Def {
		t.Errorf("the two literals must be distinct definitions")
	}
}

func TestPkgDuplicateDecl(t *testing.T) {
	f := newFixture(t)
	lib, _ := f.board.AddLibrary(f.ident("work"), []ast.UnitID{
		f.pkg("p", f.constDecl("c"), f.constDecl("c")),
	})

	hlib, _ := f.board.HirLib(lib)
	if _, err := f.board.DefsOf(hir.PkgScope(hlib.PkgDecls[0])); !errors.Is(err, ErrFailed) {
		t.Fatalf("expected ErrFailed, got %v", err)
	}
	d := f.onlyCode(t, diag.ScoreDuplicateDef)
	if len(d.Notes) != 1 {
		t.Fatalf("expected previous declaration note, got %d notes", len(d.Notes))
	}
}

func TestWildcardImport(t *testing.T) {
	f := newFixture(t)
	use := f.useClause("work", f.selPart("mypkg"), f.allPart())
	lib, _ := f.board.AddLibrary(f.ident("mylib"), []ast.UnitID{
		f.pkg("mypkg", f.constDecl("foo"), f.constDecl("bar")),
		f.entity("e", use),
	})

	defs, err := f.board.ResolveName(f.ident("bar"), f.entityCtxScope(t, lib, 0))
	if err != nil {
		t.Fatalf("ResolveName failed: %v", err)
	}
	if len(defs) != 1 || defs[0].Def.Kind != hir.DefConst {
		t.Fatalf("expected one constant definition for bar, got %+v", defs)
	}
	if f.bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %+v", f.bag.Items())
	}
}

func TestInvalidNameSuffix(t *testing.T) {
	f := newFixture(t)
	all := f.allPart()
	use := f.useClause("work", f.selPart("mypkg"), all, f.selPart("extra"))
	lib, _ := f.board.AddLibrary(f.ident("mylib"), []ast.UnitID{
		f.pkg("mypkg", f.constDecl("foo")),
		f.entity("e", use),
	})

	if _, err := f.board.ScopeOf(f.entityCtxScope(t, lib, 0)); !errors.Is(err, ErrFailed) {
		t.Fatalf("expected ErrFailed, got %v", err)
	}
	d := f.onlyCode(t, diag.ScoreInvalidNameSuffix)
	if d.Primary.Start != all.Span.End {
		t.Fatalf("suffix span must start after `all`: got start %d, want %d",
			d.Primary.Start, all.Span.End)
	}
}

func TestAllOnNonPackage(t *testing.T) {
	f := newFixture(t)
	use := f.useClause("work", f.selPart("e2"), f.allPart())
	lib, _ := f.board.AddLibrary(f.ident("mylib"), []ast.UnitID{
		f.entity("e2"),
		f.entity("e", use),
	})

	if _, err := f.board.ScopeOf(f.entityCtxScope(t, lib, 1)); !errors.Is(err, ErrFailed) {
		t.Fatalf("expected ErrFailed, got %v", err)
	}
	f.onlyCode(t, diag.ScoreInvalidAll)
}

func TestUnknownLibrary(t *testing.T) {
	f := newFixture(t)
	libClause := f.syn.AddCtxItem(ast.CtxItem{
		Kind:  ast.CtxLibClause,
		Names: []ast.Ident{f.ident("nosuch")},
	})
	use := f.useClause("nosuch", f.selPart("pkg"), f.allPart())
	lib, _ := f.board.AddLibrary(f.ident("mylib"), []ast.UnitID{
		f.entity("e", libClause, use),
	})

	if _, err := f.board.ScopeOf(f.entityCtxScope(t, lib, 0)); !errors.Is(err, ErrFailed) {
		t.Fatalf("expected ErrFailed, got %v", err)
	}
	if f.bag.Len() == 0 {
		t.Fatalf("expected an unknown-library diagnostic")
	}
	if got := f.bag.Items()[0].Code; got != diag.ScoreUnknownLibrary {
		t.Fatalf("expected ScoreUnknownLibrary first, got %v", got)
	}
}

func TestDuplicateLibClause(t *testing.T) {
	f := newFixture(t)
	libClause := f.syn.AddCtxItem(ast.CtxItem{
		Kind:  ast.CtxLibClause,
		Names: []ast.Ident{f.ident("other"), f.ident("other")},
	})
	f.board.AddLibrary(f.ident("other"), nil)
	lib, _ := f.board.AddLibrary(f.ident("mylib"), []ast.UnitID{
		f.entity("e", libClause),
	})

	hlib, _ := f.board.HirLib(lib)
	entity, err := f.board.HirEntity(hlib.Entities[0])
	if err != nil {
		t.Fatalf("HirEntity failed: %v", err)
	}
	if _, err := f.board.DefsOf(hir.CtxItemsScope(entity.CtxItems)); !errors.Is(err, ErrFailed) {
		t.Fatalf("expected ErrFailed, got %v", err)
	}
	f.onlyCode(t, diag.ScoreDuplicateLibClause)
}

func TestCaseInsensitiveResolution(t *testing.T) {
	f := newFixture(t)
	use := f.useClause("WORK", f.selPart("MyPkg"), f.allPart())
	lib, _ := f.board.AddLibrary(f.ident("MyLib"), []ast.UnitID{
		f.pkg("mypkg", f.constDecl("Foo")),
		f.entity("e", use),
	})

	defs, err := f.board.ResolveName(f.ident("FOO"), f.entityCtxScope(t, lib, 0))
	if err != nil {
		t.Fatalf("ResolveName failed: %v", err)
	}
	if len(defs) != 1 {
		t.Fatalf("expected 1 definition, got %d", len(defs))
	}
}

func TestStdStandardVisible(t *testing.T) {
	f := newFixture(t)
	if _, err := f.board.InstallStd(); err != nil {
		t.Fatalf("InstallStd failed: %v", err)
	}
	use := f.useClause("std", f.selPart("standard"), f.allPart())
	lib, _ := f.board.AddLibrary(f.ident("work"), []ast.UnitID{
		f.entity("e", use),
	})

	scope := f.entityCtxScope(t, lib, 0)

	defs, err := f.board.ResolveName(f.ident("boolean"), scope)
	if err != nil {
		t.Fatalf("boolean did not resolve: %v", err)
	}
	if defs[0].Def.Kind != hir.DefType {
		t.Fatalf("expected a type definition, got %v", defs[0].Def.Kind)
	}

	defs, err = f.board.ResolveName(f.ident("true"), scope)
	if err != nil {
		t.Fatalf("true did not resolve: %v", err)
	}
	if defs[0].Def.Kind != hir.DefEnum || defs[0].Def.Pos != 1 {
		t.Fatalf("expected enumeration literal at position 1, got %+v", defs[0].Def)
	}
	if f.bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %+v", f.bag.Items())
	}
}

func TestArchResolvesEntity(t *testing.T) {
	f := newFixture(t)
	arch := f.syn.AddUnit(ast.Unit{
		Kind:       ast.UnitArch,
		Name:       f.ident("rtl"),
		EntityName: f.ident("top"),
	})
	lib, _ := f.board.AddLibrary(f.ident("work"), []ast.UnitID{
		f.entity("top"),
		arch,
	})

	hlib, _ := f.board.HirLib(lib)
	ha, err := f.board.HirArch(hlib.Archs[0])
	if err != nil {
		t.Fatalf("HirArch failed: %v", err)
	}
	if ha.Entity != hlib.Entities[0] {
		t.Fatalf("architecture bound to wrong entity: %v", ha.Entity)
	}
}

func TestArchUnresolvedEntity(t *testing.T) {
	f := newFixture(t)
	arch := f.syn.AddUnit(ast.Unit{
		Kind:       ast.UnitArch,
		Name:       f.ident("rtl"),
		EntityName: f.ident("nope"),
	})
	lib, _ := f.board.AddLibrary(f.ident("work"), []ast.UnitID{arch})

	hlib, _ := f.board.HirLib(lib)
	if _, err := f.board.HirArch(hlib.Archs[0]); !errors.Is(err, ErrFailed) {
		t.Fatalf("expected ErrFailed, got %v", err)
	}
	f.onlyCode(t, diag.ScoreUnresolvedEntity)
}

func TestCycleGuard(t *testing.T) {
	f := newFixture(t)
	lib, _ := f.board.AddLibrary(f.ident("work"), nil)
	ref := hir.LibScope(lib)

	tk := task{art: artifactScope, ref: ref}
	if err := f.board.begin(tk, source.Span{}); err != nil {
		t.Fatalf("first begin must succeed: %v", err)
	}
	if err := f.board.begin(tk, source.Span{}); !errors.Is(err, ErrFailed) {
		t.Fatalf("re-entrant begin must fail, got %v", err)
	}
	f.onlyCode(t, diag.ScoreCircularDependency)

	f.board.end(tk)
	if err := f.board.begin(tk, source.Span{}); err != nil {
		t.Fatalf("begin after end must succeed: %v", err)
	}
}

func TestDuplicateLibraryRegistration(t *testing.T) {
	f := newFixture(t)
	first, fresh := f.board.AddLibrary(f.ident("work"), nil)
	if !fresh {
		t.Fatalf("first registration must be fresh")
	}
	second, fresh := f.board.AddLibrary(f.ident("WORK"), nil)
	if fresh {
		t.Fatalf("case-folded re-registration must not be fresh")
	}
	if first != second {
		t.Fatalf("re-registration must return the existing ID")
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	f := newFixture(t)
	if _, err := f.board.InstallStd(); err != nil {
		t.Fatalf("InstallStd failed: %v", err)
	}
	f.board.AddLibrary(f.ident("work"), []ast.UnitID{f.entity("top")})

	snap := f.board.Snapshot()
	if len(snap.Libraries) != 2 {
		t.Fatalf("expected 2 libraries in snapshot, got %d", len(snap.Libraries))
	}
	if snap.Libraries[0].Name != "std" || snap.Libraries[0].Exports[0] != "standard" {
		t.Fatalf("unexpected std snapshot: %+v", snap.Libraries[0])
	}

	var buf bytes.Buffer
	if err := WriteSnapshot(&buf, snap); err != nil {
		t.Fatalf("WriteSnapshot failed: %v", err)
	}
	got, err := ReadSnapshot(&buf)
	if err != nil {
		t.Fatalf("ReadSnapshot failed: %v", err)
	}
	if got.Schema != snap.Schema || len(got.Libraries) != len(snap.Libraries) {
		t.Fatalf("round trip mismatch: %+v vs %+v", got, snap)
	}

	bad := snap
	bad.Schema = 99
	buf.Reset()
	if err := WriteSnapshot(&buf, bad); err != nil {
		t.Fatalf("WriteSnapshot failed: %v", err)
	}
	if _, err := ReadSnapshot(&buf); err == nil {
		t.Fatalf("expected schema mismatch error")
	}
}

func TestLowerConstInit(t *testing.T) {
	f := newFixture(t)
	sum := f.syn.AddExpr(ast.Expr{
		Kind:   ast.ExprBinary,
		Span:   f.span(6),
		Binary: ast.BinaryAdd,
		X:      f.intLit(40),
		Y:      f.intLit(2),
	})
	lib, _ := f.board.AddLibrary(f.ident("work"), []ast.UnitID{
		f.pkg("p", f.constInit("c", sum)),
	})
	pid, pkg := f.firstPkg(t, lib)

	c, err := f.board.HirConstDecl(pkg.Decls[0].Const())
	if err != nil {
		t.Fatalf("HirConstDecl failed: %v", err)
	}
	if c.Parent != hir.PkgScope(pid) {
		t.Fatalf("constant parented to %v", c.Parent)
	}
	e := f.lowered(t, c.Init)
	if e.Kind != hir.ExprBinary || e.Binary != ast.BinaryAdd {
		t.Fatalf("expected a binary addition, got %+v", e)
	}
	if x := f.lowered(t, e.X); x.Kind != hir.ExprIntLit || x.Int != 40 {
		t.Fatalf("left operand: %+v", x)
	}
	if y := f.lowered(t, e.Y); y.Kind != hir.ExprIntLit || y.Int != 2 {
		t.Fatalf("right operand: %+v", y)
	}
	if again := f.lowered(t, c.Init); again != e {
		t.Fatalf("expected identical *Expr across calls, got %p and %p", e, again)
	}
}

func TestLowerNameInit(t *testing.T) {
	f := newFixture(t)
	lib, _ := f.board.AddLibrary(f.ident("work"), []ast.UnitID{
		f.pkg("p",
			f.constInit("foo", f.intLit(1)),
			f.constInit("bar", f.nameExpr("foo")),
		),
	})
	pid, pkg := f.firstPkg(t, lib)

	bar, err := f.board.HirConstDecl(pkg.Decls[1].Const())
	if err != nil {
		t.Fatalf("HirConstDecl failed: %v", err)
	}
	e := f.lowered(t, bar.Init)
	if e.Kind != hir.ExprName || e.Def.Kind != hir.DefConst {
		t.Fatalf("expected a constant name reference, got %+v", e)
	}
	if e.Def.Const() != pkg.Decls[0].Const() {
		t.Fatalf("bar resolved to the wrong constant: %+v", e.Def)
	}
	if e.Parent != hir.PkgScope(pid) {
		t.Fatalf("name parented to %v", e.Parent)
	}
	if f.bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %+v", f.bag.Items())
	}
}

func TestLowerAttrInit(t *testing.T) {
	f := newFixture(t)
	lib, _ := f.board.AddLibrary(f.ident("work"), []ast.UnitID{
		f.pkg("p",
			f.constInit("foo", f.intLit(1)),
			f.constInit("bar", f.nameExpr("foo", f.attrPart("left"))),
		),
	})
	_, pkg := f.firstPkg(t, lib)

	bar, err := f.board.HirConstDecl(pkg.Decls[1].Const())
	if err != nil {
		t.Fatalf("HirConstDecl failed: %v", err)
	}
	outer := f.lowered(t, bar.Init)
	if outer.Kind != hir.ExprAttr {
		t.Fatalf("expected an attribute node, got %+v", outer)
	}
	if got := f.syn.Strings.MustLookup(outer.Sel.Name); got != "left" {
		t.Fatalf("attribute selector: %q", got)
	}

	// The prefix was committed by the attribute lowering; querying it must
	// serve the finished node.
	inner := f.lowered(t, outer.X)
	if inner.Kind != hir.ExprName || inner.Def.Kind != hir.DefConst {
		t.Fatalf("expected the prefix to be a resolved constant, got %+v", inner)
	}
	if inner.Def.Const() != pkg.Decls[0].Const() {
		t.Fatalf("prefix resolved to the wrong constant: %+v", inner.Def)
	}
	if f.bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %+v", f.bag.Items())
	}
}

func TestLowerSelectChain(t *testing.T) {
	f := newFixture(t)
	lib, _ := f.board.AddLibrary(f.ident("work"), []ast.UnitID{
		f.pkg("p",
			f.constInit("foo", f.intLit(1)),
			f.constInit("bar", f.nameExpr("foo", f.selPart("sub"), f.attrPart("left"))),
		),
	})
	pid, pkg := f.firstPkg(t, lib)

	bar, err := f.board.HirConstDecl(pkg.Decls[1].Const())
	if err != nil {
		t.Fatalf("HirConstDecl failed: %v", err)
	}
	outer := f.lowered(t, bar.Init)
	if outer.Kind != hir.ExprAttr {
		t.Fatalf("expected an attribute node, got %+v", outer)
	}
	mid := f.lowered(t, outer.X)
	if mid.Kind != hir.ExprSelect {
		t.Fatalf("expected a selection node, got %+v", mid)
	}
	if got := f.syn.Strings.MustLookup(mid.Sel.Name); got != "sub" {
		t.Fatalf("selection selector: %q", got)
	}
	if mid.Parent != hir.PkgScope(pid) {
		t.Fatalf("selection parented to %v", mid.Parent)
	}
	base := f.lowered(t, mid.X)
	if base.Kind != hir.ExprName || base.Def.Kind != hir.DefConst {
		t.Fatalf("expected the chain base to be a resolved constant, got %+v", base)
	}
}

func TestLowerUnresolvedInit(t *testing.T) {
	f := newFixture(t)
	lib, _ := f.board.AddLibrary(f.ident("work"), []ast.UnitID{
		f.pkg("p", f.constInit("bar", f.nameExpr("nosuch"))),
	})
	_, pkg := f.firstPkg(t, lib)

	bar, err := f.board.HirConstDecl(pkg.Decls[0].Const())
	if err != nil {
		t.Fatalf("HirConstDecl failed: %v", err)
	}
	if _, err := f.board.HirExpr(bar.Init); !errors.Is(err, ErrFailed) {
		t.Fatalf("expected ErrFailed, got %v", err)
	}
	f.onlyCode(t, diag.ScoreUnresolvedName)

	// Cached failure: no second diagnostic.
	if _, err := f.board.HirExpr(bar.Init); !errors.Is(err, ErrFailed) {
		t.Fatalf("expected cached ErrFailed, got %v", err)
	}
	if f.bag.Len() != 1 {
		t.Fatalf("cached failure must not report again, got %d diagnostics", f.bag.Len())
	}
}

func TestLowerAllInExpr(t *testing.T) {
	f := newFixture(t)
	lib, _ := f.board.AddLibrary(f.ident("work"), []ast.UnitID{
		f.pkg("p",
			f.constInit("foo", f.intLit(1)),
			f.constInit("bar", f.nameExpr("foo", f.allPart())),
		),
	})
	_, pkg := f.firstPkg(t, lib)

	bar, err := f.board.HirConstDecl(pkg.Decls[1].Const())
	if err != nil {
		t.Fatalf("HirConstDecl failed: %v", err)
	}
	if _, err := f.board.HirExpr(bar.Init); !errors.Is(err, ErrFailed) {
		t.Fatalf("expected ErrFailed, got %v", err)
	}
	f.onlyCode(t, diag.ScoreInvalidAll)
}

func TestLowerUnsupportedExprForm(t *testing.T) {
	f := newFixture(t)
	weird := f.syn.AddExpr(ast.Expr{Kind: ast.ExprInvalid, Span: f.span(4)})
	lib, _ := f.board.AddLibrary(f.ident("work"), []ast.UnitID{
		f.pkg("p", f.constInit("bar", weird)),
	})
	_, pkg := f.firstPkg(t, lib)

	bar, err := f.board.HirConstDecl(pkg.Decls[0].Const())
	if err != nil {
		t.Fatalf("HirConstDecl failed: %v", err)
	}
	if _, err := f.board.HirExpr(bar.Init); !errors.Is(err, ErrFailed) {
		t.Fatalf("expected ErrFailed, got %v", err)
	}
	f.onlyCode(t, diag.ScoreNotYetSupported)
}

func TestLowerEntityPorts(t *testing.T) {
	f := newFixture(t)
	clk := f.syn.AddPort(ast.Port{
		Name:    f.ident("clk"),
		Mode:    ast.ModeIn,
		Subtype: ast.SubtypeInd{Mark: ast.Name{Prim: f.ident("bit")}},
	})
	dout := f.syn.AddPort(ast.Port{
		Name:    f.ident("dout"),
		Mode:    ast.ModeOut,
		Subtype: ast.SubtypeInd{Mark: ast.Name{Prim: f.ident("bit")}},
		Bus:     true,
		Default: f.intLit(0),
	})
	ent := f.syn.AddUnit(ast.Unit{
		Kind:  ast.UnitEntity,
		Name:  f.ident("top"),
		Ports: []ast.PortID{clk, dout},
	})
	lib, _ := f.board.AddLibrary(f.ident("work"), []ast.UnitID{ent})

	hlib, err := f.board.HirLib(lib)
	if err != nil {
		t.Fatalf("HirLib failed: %v", err)
	}
	e, err := f.board.HirEntity(hlib.Entities[0])
	if err != nil {
		t.Fatalf("HirEntity failed: %v", err)
	}
	if len(e.Ports) != 2 {
		t.Fatalf("expected 2 ports, got %d", len(e.Ports))
	}

	in, err := f.board.HirIntfSignal(e.Ports[0])
	if err != nil {
		t.Fatalf("HirIntfSignal failed: %v", err)
	}
	if in.Mode != ast.ModeIn || in.Bus || in.Init.IsValid() {
		t.Fatalf("clk port: %+v", in)
	}
	mark := f.board.Arenas().SubtypeInd(in.Ty).TypeMark
	if got := f.syn.Strings.MustLookup(mark.Prim.Name); got != "bit" {
		t.Fatalf("clk type mark: %q", got)
	}

	out, err := f.board.HirIntfSignal(e.Ports[1])
	if err != nil {
		t.Fatalf("HirIntfSignal failed: %v", err)
	}
	if out.Mode != ast.ModeOut || !out.Bus {
		t.Fatalf("dout port: %+v", out)
	}
	def := f.lowered(t, out.Init)
	if def.Kind != hir.ExprIntLit || def.Int != 0 {
		t.Fatalf("dout default: %+v", def)
	}
}

func TestLowerObjectDecls(t *testing.T) {
	f := newFixture(t)
	sig := f.syn.AddDecl(ast.Decl{
		Kind:    ast.DeclSignal,
		Name:    f.ident("s"),
		Subtype: ast.SubtypeInd{Mark: ast.Name{Prim: f.ident("bit")}},
		Signal:  ast.SignalRegister,
		Init:    f.intLit(0),
	})
	v := f.syn.AddDecl(ast.Decl{
		Kind:    ast.DeclVariable,
		Name:    f.ident("v"),
		Subtype: ast.SubtypeInd{Mark: ast.Name{Prim: f.ident("integer")}},
		Shared:  true,
	})
	file := f.syn.AddDecl(ast.Decl{
		Kind:     ast.DeclFile,
		Name:     f.ident("log"),
		Subtype:  ast.SubtypeInd{Mark: ast.Name{Prim: f.ident("text")}},
		FileName: f.intLit(7),
	})
	lib, _ := f.board.AddLibrary(f.ident("work"), []ast.UnitID{
		f.pkg("p", sig, v, file),
	})
	pid, pkg := f.firstPkg(t, lib)

	hs, err := f.board.HirSignalDecl(pkg.Decls[0].Signal())
	if err != nil {
		t.Fatalf("HirSignalDecl failed: %v", err)
	}
	if hs.Parent != hir.PkgScope(pid) || hs.Kind != ast.SignalRegister || !hs.Init.IsValid() {
		t.Fatalf("signal: %+v", hs)
	}

	hv, err := f.board.HirVariableDecl(pkg.Decls[1].Variable())
	if err != nil {
		t.Fatalf("HirVariableDecl failed: %v", err)
	}
	if !hv.Shared || hv.Init.IsValid() {
		t.Fatalf("variable: %+v", hv)
	}

	hf, err := f.board.HirFileDecl(pkg.Decls[2].File())
	if err != nil {
		t.Fatalf("HirFileDecl failed: %v", err)
	}
	if !hf.FileName.IsValid() || hf.OpenKind.IsValid() {
		t.Fatalf("file: %+v", hf)
	}
}

func TestLowerSubtypeConstraints(t *testing.T) {
	f := newFixture(t)
	rangeExpr := func(lo, hi int64) ast.ExprID {
		return f.syn.AddExpr(ast.Expr{
			Kind: ast.ExprRange,
			Span: f.span(6),
			Dir:  ast.DirTo,
			X:    f.intLit(lo),
			Y:    f.intLit(hi),
		})
	}
	small := f.syn.AddDecl(ast.Decl{
		Kind: ast.DeclSubtype,
		Name: f.ident("small"),
		Subtype: ast.SubtypeInd{
			Mark: ast.Name{Prim: f.ident("integer")},
			Constr: f.syn.AddConstraint(ast.Constraint{
				Kind:  ast.ConstraintRange,
				Span:  f.span(6),
				Range: rangeExpr(0, 7),
			}),
		},
	})
	elem := f.syn.AddConstraint(ast.Constraint{
		Kind:  ast.ConstraintRange,
		Span:  f.span(6),
		Range: rangeExpr(0, 1),
	})
	word := f.syn.AddDecl(ast.Decl{
		Kind: ast.DeclSubtype,
		Name: f.ident("word"),
		Subtype: ast.SubtypeInd{
			Mark: ast.Name{Prim: f.ident("bitvec")},
			Constr: f.syn.AddConstraint(ast.Constraint{
				Kind:  ast.ConstraintArray,
				Span:  f.span(10),
				Index: []ast.ExprID{rangeExpr(7, 0)},
				Elem:  elem,
			}),
		},
	})
	lib, _ := f.board.AddLibrary(f.ident("work"), []ast.UnitID{
		f.pkg("p", small, word),
	})
	_, pkg := f.firstPkg(t, lib)

	hs, err := f.board.HirSubtypeDecl(pkg.Decls[0].Subtype())
	if err != nil {
		t.Fatalf("HirSubtypeDecl failed: %v", err)
	}
	si := f.board.Arenas().SubtypeInd(hs.Subty)
	if si.Constraint.Kind != hir.ConstraintRange {
		t.Fatalf("expected a range constraint, got %+v", si.Constraint)
	}
	r := f.lowered(t, si.Constraint.Range)
	if r.Kind != hir.ExprRange || r.Dir != ast.DirTo {
		t.Fatalf("range expression: %+v", r)
	}
	if lo := f.lowered(t, r.X); lo.Int != 0 {
		t.Fatalf("low bound: %+v", lo)
	}
	if hi := f.lowered(t, r.Y); hi.Int != 7 {
		t.Fatalf("high bound: %+v", hi)
	}

	hw, err := f.board.HirSubtypeDecl(pkg.Decls[1].Subtype())
	if err != nil {
		t.Fatalf("HirSubtypeDecl failed: %v", err)
	}
	si = f.board.Arenas().SubtypeInd(hw.Subty)
	if si.Constraint.Kind != hir.ConstraintArray || len(si.Constraint.Index) != 1 {
		t.Fatalf("expected a one-dimensional array constraint, got %+v", si.Constraint)
	}
	if !si.Constraint.Index[0].IsValid() {
		t.Fatalf("index range was not reserved")
	}
	if si.Constraint.Elem == nil || si.Constraint.Elem.Kind != hir.ConstraintRange {
		t.Fatalf("element constraint: %+v", si.Constraint.Elem)
	}
}

func TestRangeBoundNamesSiblingConst(t *testing.T) {
	f := newFixture(t)
	width := f.constInit("width", f.intLit(8))
	ty := f.syn.AddDecl(ast.Decl{
		Kind: ast.DeclType,
		Name: f.ident("t"),
		Type: ast.TypeDef{
			Kind: ast.TypeDefRange,
			Span: f.span(10),
			Dir:  ast.DirTo,
			Lo:   f.intLit(0),
			Hi:   f.nameExpr("width"),
		},
	})
	lib, _ := f.board.AddLibrary(f.ident("work"), []ast.UnitID{
		f.pkg("p", width, ty),
	})
	pid, pkg := f.firstPkg(t, lib)

	// Building the definition table must not touch the bound expression.
	if _, err := f.board.DefsOf(hir.PkgScope(pid)); err != nil {
		t.Fatalf("DefsOf failed: %v", err)
	}

	td, err := f.board.HirTypeDecl(pkg.Decls[1].Type())
	if err != nil {
		t.Fatalf("HirTypeDecl failed: %v", err)
	}
	if td.Data == nil || td.Data.Kind != hir.TypeRange {
		t.Fatalf("type data: %+v", td.Data)
	}
	hi := f.lowered(t, td.Data.Hi)
	if hi.Kind != hir.ExprName || hi.Def.Kind != hir.DefConst {
		t.Fatalf("expected the bound to resolve to a constant, got %+v", hi)
	}
	if hi.Def.Const() != pkg.Decls[0].Const() {
		t.Fatalf("bound resolved to the wrong constant: %+v", hi.Def)
	}
	if f.bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %+v", f.bag.Items())
	}
}

func TestCircularDependencyFailsQuery(t *testing.T) {
	f := newFixture(t)
	lib, _ := f.board.AddLibrary(f.ident("work"), []ast.UnitID{
		f.pkg("p", f.constDecl("c")),
	})
	hlib, _ := f.board.HirLib(lib)
	ref := hir.PkgScope(hlib.PkgDecls[0])

	// Mark the defs computation of `p` as in flight, as if a caller were
	// re-entering it.
	tk := task{art: artifactDefs, ref: ref}
	if err := f.board.begin(tk, source.Span{}); err != nil {
		t.Fatalf("begin failed: %v", err)
	}
	if _, err := f.board.DefsOf(ref); !errors.Is(err, ErrFailed) {
		t.Fatalf("expected ErrFailed, got %v", err)
	}
	f.onlyCode(t, diag.ScoreCircularDependency)
	f.board.end(tk)

	// The circular attempt must not be cached as a failure; once the stack
	// unwinds the query computes normally.
	defs, err := f.board.DefsOf(ref)
	if err != nil {
		t.Fatalf("DefsOf after unwinding failed: %v", err)
	}
	if defs.Len() != 1 {
		t.Fatalf("expected 1 definition, got %d", defs.Len())
	}
}
