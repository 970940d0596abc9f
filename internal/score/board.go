package score

import (
	"errors"
	"fmt"
	"io"
	"os"

	"latch/internal/ast"
	"latch/internal/diag"
	"latch/internal/hir"
	"latch/internal/source"
)

// ErrFailed is the unit-valued failure result of a query. The reason was
// already reported through the diagnostic reporter at the point of
// detection; callers branch on the failure signal without re-deriving the
// message.
var ErrFailed = errors.New("score: query failed")

// Options configure a scoreboard session.
type Options struct {
	Reporter diag.Reporter
	// TraceScore logs every definition as it is declared.
	TraceScore bool
	// TraceW receives trace output; defaults to os.Stderr.
	TraceW io.Writer
}

// result memoizes one query outcome, successes and failures alike.
type result[T any] struct {
	val    T
	failed bool
}

// artifact distinguishes the query families for cycle bookkeeping.
type artifact uint8

const (
	artifactDefs artifact = iota
	artifactScope
)

// task identifies one in-flight computation.
type task struct {
	art artifact
	ref hir.ScopeRef
}

// unitSite links a reserved design-unit ID back to its syntax and library.
type unitSite struct {
	unit ast.UnitID
	lib  hir.LibID
}

// declSite links a reserved declaration ID back to its syntax and the scope
// it is declared in.
type declSite struct {
	decl   ast.DeclID
	parent hir.ScopeRef
}

// portSite links a reserved interface signal back to its syntax and the
// entity scope its names resolve in.
type portSite struct {
	port   ast.PortID
	parent hir.ScopeRef
}

// exprSite links a reserved expression back to its syntax and the scope its
// names resolve in.
type exprSite struct {
	expr   ast.ExprID
	parent hir.ScopeRef
}

// Board is the scoreboard: the memoizing query engine that turns the syntax
// tree into HIR nodes, scopes and definition tables. One Board serves one
// batch compilation session; its arenas, memo tables and reporter are shared
// mutable state guarded only by the single-threaded execution discipline.
type Board struct {
	syn      *ast.Builder
	arenas   *hir.Arenas
	reporter diag.Reporter
	trace    bool
	traceW   io.Writer

	// Canonical spellings of the implicitly visible library names.
	workName source.StringID
	stdName  source.StringID

	// Library-name registry, populated during session setup and read-only
	// afterwards.
	libNames  map[source.StringID]hir.LibID
	libIdents map[hir.LibID]ast.Ident
	libUnits  map[hir.LibID][]ast.UnitID

	// Syntax back-references for reserved IDs.
	entitySites map[hir.EntityID]unitSite
	archSites   map[hir.ArchID]unitSite
	pkgSites    map[hir.PkgID]unitSite // top-level package declarations
	pkgInstSite map[hir.PkgInstID]unitSite
	ctxSites    map[hir.CtxID]unitSite
	cfgSites    map[hir.CfgID]unitSite
	pkgBodySite map[hir.PkgBodyID]unitSite

	pkgDeclSites    map[hir.PkgID]declSite // nested package declarations
	pkgInstDeclSite map[hir.PkgInstID]declSite
	typeSites       map[hir.TypeDeclID]declSite
	subtypeSites    map[hir.SubtypeDeclID]declSite
	constSites      map[hir.ConstDeclID]declSite
	signalSites     map[hir.SignalDeclID]declSite
	variableSites   map[hir.VariableDeclID]declSite
	fileSites       map[hir.FileDeclID]declSite
	portSites       map[hir.IntfSignalID]portSite
	exprSites       map[hir.ExprID]exprSite

	// Per context-items region: the owning library and the parent scope the
	// consumer design unit dictates.
	ctxLib     map[hir.CtxItemsID]hir.LibID
	ctxParents map[hir.CtxItemsID]hir.ScopeRef

	nextPkgInst uint32
	nextCtx     uint32
	nextCfg     uint32
	nextPkgBody uint32

	// Memo tables: compute once, reuse forever, cached failures included.
	hirLibs     map[hir.LibID]result[*hir.Lib]
	hirEntities map[hir.EntityID]result[*hir.Entity]
	hirArchs    map[hir.ArchID]result[*hir.Arch]
	hirPkgs     map[hir.PkgID]result[*hir.Pkg]
	hirTypes    map[hir.TypeDeclID]result[*hir.TypeDecl]
	hirSubtypes map[hir.SubtypeDeclID]result[*hir.SubtypeDecl]
	hirConsts   map[hir.ConstDeclID]result[*hir.ConstDecl]
	hirSignals  map[hir.SignalDeclID]result[*hir.SignalDecl]
	hirVars     map[hir.VariableDeclID]result[*hir.VariableDecl]
	hirFiles    map[hir.FileDeclID]result[*hir.FileDecl]
	hirPorts    map[hir.IntfSignalID]result[*hir.IntfSignal]
	hirExprs    map[hir.ExprID]result[*hir.Expr]

	defs   map[hir.ScopeRef]result[*Defs]
	scopes map[hir.ScopeRef]result[*Scope]

	// inProgress marks (artifact, ref) pairs whose computation is on the
	// call stack. A re-request for a marked pair is a circular dependency.
	inProgress map[task]struct{}
}

// NewBoard creates a scoreboard over the given syntax tree.
func NewBoard(syn *ast.Builder, opts Options) *Board {
	traceW := opts.TraceW
	if traceW == nil {
		traceW = os.Stderr
	}
	return &Board{
		syn:      syn,
		arenas:   hir.NewArenas(),
		reporter: opts.Reporter,
		trace:    opts.TraceScore,
		traceW:   traceW,

		workName: syn.Strings.Intern("work"),
		stdName:  syn.Strings.Intern("std"),

		libNames:  make(map[source.StringID]hir.LibID),
		libIdents: make(map[hir.LibID]ast.Ident),
		libUnits:  make(map[hir.LibID][]ast.UnitID),

		entitySites: make(map[hir.EntityID]unitSite),
		archSites:   make(map[hir.ArchID]unitSite),
		pkgSites:    make(map[hir.PkgID]unitSite),
		pkgInstSite: make(map[hir.PkgInstID]unitSite),
		ctxSites:    make(map[hir.CtxID]unitSite),
		cfgSites:    make(map[hir.CfgID]unitSite),
		pkgBodySite: make(map[hir.PkgBodyID]unitSite),

		pkgDeclSites:    make(map[hir.PkgID]declSite),
		pkgInstDeclSite: make(map[hir.PkgInstID]declSite),
		typeSites:       make(map[hir.TypeDeclID]declSite),
		subtypeSites:    make(map[hir.SubtypeDeclID]declSite),
		constSites:      make(map[hir.ConstDeclID]declSite),
		signalSites:     make(map[hir.SignalDeclID]declSite),
		variableSites:   make(map[hir.VariableDeclID]declSite),
		fileSites:       make(map[hir.FileDeclID]declSite),
		portSites:       make(map[hir.IntfSignalID]portSite),
		exprSites:       make(map[hir.ExprID]exprSite),

		ctxLib:     make(map[hir.CtxItemsID]hir.LibID),
		ctxParents: make(map[hir.CtxItemsID]hir.ScopeRef),

		hirLibs:     make(map[hir.LibID]result[*hir.Lib]),
		hirEntities: make(map[hir.EntityID]result[*hir.Entity]),
		hirArchs:    make(map[hir.ArchID]result[*hir.Arch]),
		hirPkgs:     make(map[hir.PkgID]result[*hir.Pkg]),
		hirTypes:    make(map[hir.TypeDeclID]result[*hir.TypeDecl]),
		hirSubtypes: make(map[hir.SubtypeDeclID]result[*hir.SubtypeDecl]),
		hirConsts:   make(map[hir.ConstDeclID]result[*hir.ConstDecl]),
		hirSignals:  make(map[hir.SignalDeclID]result[*hir.SignalDecl]),
		hirVars:     make(map[hir.VariableDeclID]result[*hir.VariableDecl]),
		hirFiles:    make(map[hir.FileDeclID]result[*hir.FileDecl]),
		hirPorts:    make(map[hir.IntfSignalID]result[*hir.IntfSignal]),
		hirExprs:    make(map[hir.ExprID]result[*hir.Expr]),

		defs:   make(map[hir.ScopeRef]result[*Defs]),
		scopes: make(map[hir.ScopeRef]result[*Scope]),

		inProgress: make(map[task]struct{}),
	}
}

// Arenas exposes the HIR arena set for downstream consumers (type checker,
// elaborator).
func (b *Board) Arenas() *hir.Arenas { return b.arenas }

// Syntax exposes the underlying syntax tree.
func (b *Board) Syntax() *ast.Builder { return b.syn }

// Strings exposes the session interner.
func (b *Board) Strings() *source.Interner { return b.syn.Strings }

// AddLibrary registers a library with its design units and returns its ID.
// Registering the same name twice returns the existing ID and false.
func (b *Board) AddLibrary(name ast.Ident, units []ast.UnitID) (hir.LibID, bool) {
	if existing, ok := b.libNames[name.Name]; ok {
		return existing, false
	}
	id := b.arenas.ReserveLib()
	b.libNames[name.Name] = id
	b.libIdents[id] = name
	b.libUnits[id] = units
	return id, true
}

// LookupLibrary resolves a registered library name.
func (b *Board) LookupLibrary(name source.StringID) (hir.LibID, bool) {
	id, ok := b.libNames[name]
	return id, ok
}

// LibName returns the registered name of a library.
func (b *Board) LibName(id hir.LibID) ast.Ident {
	return b.libIdents[id]
}

// Libraries lists the registered libraries in registration order.
func (b *Board) Libraries() []hir.LibID {
	out := make([]hir.LibID, 0, len(b.libIdents))
	for i := 1; i <= len(b.libIdents); i++ {
		out = append(out, hir.LibID(i))
	}
	return out
}

// begin marks a task as in progress. If the task is already on the call
// stack the query is circular: the mandated deviation from the original
// design is to fail fast with a diagnostic here instead of recursing until
// the stack is exhausted.
func (b *Board) begin(t task, span source.Span) error {
	if _, busy := b.inProgress[t]; busy {
		diag.ReportError(b.reporter, diag.ScoreCircularDependency, span,
			fmt.Sprintf("circular dependency while resolving %s", t.ref.Kind)).Emit()
		return ErrFailed
	}
	b.inProgress[t] = struct{}{}
	return nil
}

func (b *Board) end(t task) {
	delete(b.inProgress, t)
}

// refSpan picks a representative span for a scope-introducing construct,
// used by diagnostics that cannot point at anything more precise.
func (b *Board) refSpan(ref hir.ScopeRef) source.Span {
	switch ref.Kind {
	case hir.ScopeRefLib:
		return b.libIdents[ref.Lib()].Span
	case hir.ScopeRefCtxItems:
		items := b.arenas.CtxItems(ref.CtxItems())
		if u := b.syn.Unit(items.Unit); u != nil {
			return u.Name.Span
		}
	case hir.ScopeRefEntity:
		if site, ok := b.entitySites[ref.Entity()]; ok {
			return b.syn.Unit(site.unit).Name.Span
		}
	case hir.ScopeRefArch:
		if site, ok := b.archSites[ref.Arch()]; ok {
			return b.syn.Unit(site.unit).Name.Span
		}
	case hir.ScopeRefPkg:
		if site, ok := b.pkgSites[ref.Pkg()]; ok {
			return b.syn.Unit(site.unit).Name.Span
		}
		if site, ok := b.pkgDeclSites[ref.Pkg()]; ok {
			return b.syn.Decl(site.decl).Name.Span
		}
	case hir.ScopeRefPkgInst:
		if site, ok := b.pkgInstSite[ref.PkgInst()]; ok {
			return b.syn.Unit(site.unit).Name.Span
		}
	}
	return source.Span{}
}

func (b *Board) tracef(format string, args ...any) {
	if !b.trace {
		return
	}
	fmt.Fprintf(b.traceW, "[score] "+format+"\n", args...)
}

// name renders an interned name for diagnostics.
func (b *Board) name(id source.StringID) string {
	return b.syn.Strings.MustLookup(id)
}
