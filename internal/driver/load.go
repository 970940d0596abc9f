package driver

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"golang.org/x/sync/errgroup"

	"latch/internal/diag"
	"latch/internal/project"
	"latch/internal/source"
)

// LoadedFile is one manifest source file after loading.
type LoadedFile struct {
	Library string
	Path    string
	FileID  source.FileID
}

// LoadResult carries the outcome of loading a manifest's files.
type LoadResult struct {
	Files []LoadedFile
	// Bag accumulates I/O diagnostics; a missing file is reported here, not
	// returned as an error, so one bad path does not abort the session.
	Bag *diag.Bag
}

// LoadLibraries reads every file named by the manifest concurrently and adds
// the contents to the file set. Contents are read in parallel; the file set
// is filled afterwards in manifest order so IDs come out deterministic.
func LoadLibraries(ctx context.Context, fs *source.FileSet, m *project.Manifest, maxDiagnostics int) (*LoadResult, error) {
	type slot struct {
		library string
		path    string
		content []byte
		err     error
	}

	var slots []slot
	for _, lib := range m.Libraries {
		for _, path := range lib.Files {
			slots = append(slots, slot{library: lib.Name, path: path})
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(runtime.NumCPU(), max(len(slots), 1)))
	for i := range slots {
		i := i
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			slots[i].content, slots[i].err = os.ReadFile(slots[i].path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	res := &LoadResult{Bag: diag.NewBag(maxDiagnostics)}
	for _, s := range slots {
		if s.err != nil {
			diag.ReportError(diag.BagReporter{Bag: res.Bag}, diag.IOLoadFileError, source.Span{},
				fmt.Sprintf("library %s: cannot load %s: %v", s.library, s.path, s.err)).Emit()
			continue
		}
		id := fs.Add(s.path, s.content, source.FileFlags(0))
		res.Files = append(res.Files, LoadedFile{Library: s.library, Path: s.path, FileID: id})
	}
	return res, nil
}
