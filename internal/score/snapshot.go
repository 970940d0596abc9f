package score

import (
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"

	"latch/internal/hir"
)

// Increment when the snapshot format changes.
const snapshotSchemaVersion uint16 = 1

// Snapshot is a serializable summary of a scoreboard session: which libraries
// were registered, which names each one exports, and how large the HIR arenas
// grew. The driver persists it next to the diagnostic output so that external
// tooling can inspect a run without re-running resolution.
type Snapshot struct {
	Schema    uint16
	Libraries []LibrarySnapshot
	Arenas    hir.Stats
}

// LibrarySnapshot summarizes one registered library.
type LibrarySnapshot struct {
	Name  string
	Units int
	// Exports lists the library-level names in insertion order. Empty when
	// the library's definitions query failed.
	Exports []string
}

// Snapshot captures the current session state. Definition queries run for
// every registered library; failures were already reported and leave the
// export list empty.
func (b *Board) Snapshot() Snapshot {
	snap := Snapshot{
		Schema: snapshotSchemaVersion,
		Arenas: b.arenas.Stats(),
	}
	for _, id := range b.Libraries() {
		ls := LibrarySnapshot{
			Name:  b.name(b.libIdents[id].Name),
			Units: len(b.libUnits[id]),
		}
		if defs, err := b.DefsOf(hir.LibScope(id)); err == nil {
			for _, name := range defs.Names() {
				ls.Exports = append(ls.Exports, b.name(name))
			}
		}
		snap.Libraries = append(snap.Libraries, ls)
	}
	return snap
}

// WriteSnapshot encodes a snapshot to the writer.
func WriteSnapshot(w io.Writer, snap Snapshot) error {
	return msgpack.NewEncoder(w).Encode(&snap)
}

// ReadSnapshot decodes a snapshot from the reader and validates its schema.
func ReadSnapshot(r io.Reader) (Snapshot, error) {
	var snap Snapshot
	if err := msgpack.NewDecoder(r).Decode(&snap); err != nil {
		return Snapshot{}, err
	}
	if snap.Schema != snapshotSchemaVersion {
		return Snapshot{}, fmt.Errorf("snapshot schema %d not supported (want %d)",
			snap.Schema, snapshotSchemaVersion)
	}
	return snap, nil
}
