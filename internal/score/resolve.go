package score

import (
	"fmt"

	"latch/internal/ast"
	"latch/internal/diag"
	"latch/internal/hir"
	"latch/internal/source"
)

// resolvedName is the outcome of resolving the longest valid prefix of a
// compound name.
type resolvedName struct {
	// Name is the last identifier the prefix resolved through.
	Name ast.Ident
	// Defs are the definitions the prefix denotes. Never empty on success.
	Defs []hir.DefSpan
	// ValidSpan covers the consumed prefix.
	ValidSpan source.Span
	// Tail holds the unconsumed name parts. A trailing `all` and garbage
	// after it are the caller's business.
	Tail []ast.NamePart
}

// lookupInScope resolves a name against a single scope record: explicit
// imports first, then the definition tables listed in Refs. A failing
// definition table fails the lookup; its diagnostic was already emitted.
func (b *Board) lookupInScope(name source.StringID, sc *Scope) ([]hir.DefSpan, error) {
	var out []hir.DefSpan
	out = append(out, sc.Explicit[name]...)
	for _, ref := range sc.Refs {
		defs, err := b.DefsOf(ref)
		if err != nil {
			return nil, err
		}
		out = append(out, defs.Lookup(name)...)
	}
	return out, nil
}

// resolveIdent resolves a single identifier by walking the scope chain
// starting at the given record. An empty result is reported as an unresolved
// name.
func (b *Board) resolveIdent(ident ast.Ident, sc *Scope) ([]hir.DefSpan, error) {
	for {
		matches, err := b.lookupInScope(ident.Name, sc)
		if err != nil {
			return nil, err
		}
		if len(matches) > 0 {
			return matches, nil
		}
		if !sc.Parent.IsValid() {
			diag.ReportError(b.reporter, diag.ScoreUnresolvedName, ident.Span,
				fmt.Sprintf("`%s` is unknown", b.name(ident.Name))).Emit()
			return nil, ErrFailed
		}
		parent, err := b.ScopeOf(sc.Parent)
		if err != nil {
			return nil, err
		}
		sc = parent
	}
}

// ResolveName resolves a single identifier in the scope of the given
// construct.
func (b *Board) ResolveName(ident ast.Ident, ref hir.ScopeRef) ([]hir.DefSpan, error) {
	sc, err := b.ScopeOf(ref)
	if err != nil {
		return nil, err
	}
	return b.resolveIdent(ident, sc)
}

// resolveCompoundName resolves the longest valid prefix of a compound name
// against a scope record. The leading identifier walks the scope chain;
// each selected suffix part is looked up in the definition table exposed by
// the previously resolved part. Resolution stops without error at the first
// part that cannot be a selection prefix (a trailing `all`, an attribute, or
// a selection on something without exported definitions); the remainder comes
// back in Tail.
//
// The scope record may be a partial one still under construction; the walk
// only ever consults definition tables and parent scopes, never the record's
// finished form.
func (b *Board) resolveCompoundName(name *ast.Name, sc *Scope) (resolvedName, error) {
	defs, err := b.resolveIdent(name.Prim, sc)
	if err != nil {
		return resolvedName{}, err
	}
	res := resolvedName{
		Name:      name.Prim,
		Defs:      defs,
		ValidSpan: name.Prim.Span,
	}

	for i := range name.Parts {
		part := &name.Parts[i]
		if part.Kind != ast.NamePartSelect {
			res.Tail = name.Parts[i:]
			return res, nil
		}

		// Selection needs a unique prefix with a definition table behind it.
		last := res.Defs[len(res.Defs)-1]
		inner := last.Def.ScopeOf()
		if !inner.IsValid() {
			res.Tail = name.Parts[i:]
			return res, nil
		}
		table, err := b.DefsOf(inner)
		if err != nil {
			return resolvedName{}, err
		}
		matches := table.Lookup(part.Ident.Name)
		if len(matches) == 0 {
			diag.ReportError(b.reporter, diag.ScoreUnresolvedName, part.Ident.Span,
				fmt.Sprintf("`%s` is unknown within `%s`",
					b.name(part.Ident.Name), b.name(res.Name.Name))).Emit()
			return resolvedName{}, ErrFailed
		}
		res.Name = part.Ident
		res.Defs = matches
		res.ValidSpan = res.ValidSpan.Cover(part.Span)
	}
	return res, nil
}
