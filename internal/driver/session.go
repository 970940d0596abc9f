package driver

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"latch/internal/ast"
	"latch/internal/diag"
	"latch/internal/project"
	"latch/internal/score"
	"latch/internal/source"
)

// Session bundles the state of one analysis run: the loaded files, the
// syntax builder the parser fills, the scoreboard and the diagnostic bag.
type Session struct {
	Files *source.FileSet
	Syn   *ast.Builder
	Board *score.Board
	Bag   *diag.Bag
	// Loaded lists the manifest files in registration order.
	Loaded []LoadedFile
}

// Options configure a session.
type Options struct {
	MaxDiagnostics int
	TraceScore     bool
}

// NewSession loads the manifest's files, sets up a scoreboard with the
// builtin std library installed and registers one library per manifest
// entry. Design units stay empty until a parser fills the syntax builder;
// registration still validates names and exercises the resolver surface.
func NewSession(ctx context.Context, m *project.Manifest, opts Options) (*Session, error) {
	if opts.MaxDiagnostics <= 0 {
		opts.MaxDiagnostics = 100
	}

	files := source.NewFileSet()
	loaded, err := LoadLibraries(ctx, files, m, opts.MaxDiagnostics)
	if err != nil {
		return nil, err
	}

	bag := diag.NewBag(opts.MaxDiagnostics)
	bag.Merge(loaded.Bag)

	syn := ast.NewBuilder(ast.Hints{}, nil)
	board := score.NewBoard(syn, score.Options{
		Reporter:   diag.BagReporter{Bag: bag},
		TraceScore: opts.TraceScore,
	})
	if _, err := board.InstallStd(); err != nil {
		return nil, fmt.Errorf("installing builtin std library: %w", err)
	}
	for _, lib := range m.Libraries {
		board.AddLibrary(syn.Ident(lib.Name, source.Span{}), nil)
	}

	return &Session{
		Files:  files,
		Syn:    syn,
		Board:  board,
		Bag:    bag,
		Loaded: loaded.Files,
	}, nil
}

// WriteSnapshot persists the board snapshot next to the manifest, replacing
// any previous one atomically.
func (s *Session) WriteSnapshot(dir string) (string, error) {
	path := filepath.Join(dir, "latch.snapshot.mp")
	f, err := os.CreateTemp(dir, "tmp-snapshot-*")
	if err != nil {
		return "", err
	}
	defer os.Remove(f.Name())

	if err := score.WriteSnapshot(f, s.Board.Snapshot()); err != nil {
		f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	if err := os.Rename(f.Name(), path); err != nil {
		return "", err
	}
	return path, nil
}
