package project

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"latch/internal/source"
)

// LibrarySpec describes one library entry in [libraries].
type LibrarySpec struct {
	Files []string `toml:"files"`
}

// Library is a validated library mapping: a canonical (case-folded) name and
// the source files that make it up, resolved relative to the manifest
// directory.
type Library struct {
	Name  string
	Files []string
}

// Manifest is a parsed and validated latch.toml.
type Manifest struct {
	// Root is the directory containing the manifest; file paths resolve
	// against it.
	Root string
	// Libraries in canonical name order.
	Libraries []Library
}

var (
	// ErrNoLibraries indicates that [libraries] is missing or empty.
	ErrNoLibraries = errors.New("missing [libraries]")
	// ErrBadLibraryName indicates a library name that is not a VHDL basic
	// identifier.
	ErrBadLibraryName = errors.New("invalid library name")
	// ErrDuplicateLibrary indicates two library names that fold to the same
	// canonical form.
	ErrDuplicateLibrary = errors.New("duplicate library")
	// ErrNoFiles indicates a library with an empty file list.
	ErrNoFiles = errors.New("library has no files")
)

type manifestFile struct {
	Libraries map[string]LibrarySpec `toml:"libraries"`
}

// Load parses and validates a latch.toml manifest.
func Load(path string) (*Manifest, error) {
	var cfg manifestFile
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("libraries") || len(cfg.Libraries) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrNoLibraries)
	}

	root := filepath.Dir(path)
	m := &Manifest{Root: root}
	seen := make(map[string]string)
	for name, spec := range cfg.Libraries {
		canonical := source.Fold(name)
		if !isBasicIdentifier(canonical) {
			return nil, fmt.Errorf("%s: %w: %q", path, ErrBadLibraryName, name)
		}
		if prev, dup := seen[canonical]; dup {
			return nil, fmt.Errorf("%s: %w: %q and %q fold to `%s`",
				path, ErrDuplicateLibrary, prev, name, canonical)
		}
		seen[canonical] = name
		if len(spec.Files) == 0 {
			return nil, fmt.Errorf("%s: %w: %s", path, ErrNoFiles, canonical)
		}

		files := make([]string, 0, len(spec.Files))
		for _, f := range spec.Files {
			if !filepath.IsAbs(f) {
				f = filepath.Join(root, f)
			}
			files = append(files, filepath.Clean(f))
		}
		m.Libraries = append(m.Libraries, Library{Name: canonical, Files: files})
	}
	sort.Slice(m.Libraries, func(i, j int) bool {
		return m.Libraries[i].Name < m.Libraries[j].Name
	})
	return m, nil
}

// isBasicIdentifier reports whether s is a VHDL basic identifier: a letter
// followed by letters, digits or single underscores, with no trailing
// underscore.
func isBasicIdentifier(s string) bool {
	if s == "" {
		return false
	}
	if !isLetter(s[0]) {
		return false
	}
	for i := 1; i < len(s); i++ {
		c := s[i]
		switch {
		case isLetter(c) || c >= '0' && c <= '9':
		case c == '_':
			if s[i-1] == '_' || i == len(s)-1 {
				return false
			}
		default:
			return false
		}
	}
	return !strings.HasSuffix(s, "_")
}

func isLetter(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}
