package score

import (
	"latch/internal/ast"
	"latch/internal/hir"
	"latch/internal/source"
)

// InstallStd synthesizes the `std` library with its `standard` package and
// registers it with the board. The package is built through the ordinary
// syntax builder so that the regular defs and scope machinery serves it; no
// special-cased builtin tables exist. Spans are empty since there is no
// source text behind the builtin declarations.
//
// Only the slice of package standard the resolver inspects is provided:
// BOOLEAN, BIT, SEVERITY_LEVEL and INTEGER.
func (b *Board) InstallStd() (hir.LibID, error) {
	var noSpan source.Span

	enum := func(name string, lits ...string) ast.DeclID {
		idents := make([]ast.Ident, 0, len(lits))
		for _, lit := range lits {
			idents = append(idents, b.syn.Ident(lit, noSpan))
		}
		return b.syn.AddDecl(ast.Decl{
			Kind: ast.DeclType,
			Name: b.syn.Ident(name, noSpan),
			Type: ast.TypeDef{Kind: ast.TypeDefEnum, Lits: idents},
		})
	}
	intLit := func(v int64) ast.ExprID {
		return b.syn.AddExpr(ast.Expr{Kind: ast.ExprIntLit, Int: v})
	}

	decls := []ast.DeclID{
		enum("boolean", "false", "true"),
		enum("bit", "'0'", "'1'"),
		enum("severity_level", "note", "warning", "error", "failure"),
		b.syn.AddDecl(ast.Decl{
			Kind: ast.DeclType,
			Name: b.syn.Ident("integer", noSpan),
			Type: ast.TypeDef{
				Kind: ast.TypeDefRange,
				Dir:  ast.DirTo,
				Lo:   intLit(-2147483648),
				Hi:   intLit(2147483647),
			},
		}),
	}

	standard := b.syn.AddUnit(ast.Unit{
		Kind:  ast.UnitPkgDecl,
		Name:  b.syn.Ident("standard", noSpan),
		Decls: decls,
	})

	id, fresh := b.AddLibrary(b.syn.Ident("std", noSpan), []ast.UnitID{standard})
	if !fresh {
		return id, ErrFailed
	}
	return id, nil
}
