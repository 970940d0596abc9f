package source

import (
	"slices"
)

// StringID is a handle to an interned name.
type StringID uint32

const NoStringID StringID = 0

// Interner deduplicates names and hands out stable StringIDs.
//
// VHDL basic identifiers compare case-insensitively, so callers are expected
// to pass names through Fold before interning. Extended identifiers and
// character literals keep their spelling.
type Interner struct {
	byID  []string            // index -> string (byID[0] = "" for NoStringID)
	index map[string]StringID // string -> ID
}

func NewInterner() *Interner {
	return &Interner{
		byID:  []string{""},
		index: map[string]StringID{"": 0},
	}
}

// Intern inserts the string and returns its ID, reusing an existing entry if
// the string was seen before.
func (i *Interner) Intern(s string) StringID {
	if id, ok := i.index[s]; ok {
		return id
	}

	// Own copy, so we do not pin the caller's backing buffer.
	cpy := string([]byte(s))
	id := StringID(len(i.byID))
	i.byID = append(i.byID, cpy)
	i.index[cpy] = id
	return id
}

// Lookup returns the string for the ID, or ("", false) for an invalid ID.
func (i *Interner) Lookup(id StringID) (string, bool) {
	if !i.Has(id) {
		return "", false
	}
	return i.byID[id], true
}

// MustLookup returns the string for the ID and panics on an invalid ID.
func (i *Interner) MustLookup(id StringID) string {
	s, ok := i.Lookup(id)
	if !ok {
		panic("invalid string ID")
	}
	return s
}

// Has reports whether the ID refers to an interned string.
func (i *Interner) Has(id StringID) bool {
	return int(id) < len(i.byID)
}

// Len returns the number of interned strings, counting NoStringID.
func (i *Interner) Len() int {
	return len(i.byID)
}

// Snapshot returns a copy of all interned strings.
func (i *Interner) Snapshot() []string {
	return slices.Clone(i.byID)
}

// Fold canonicalizes a VHDL name for lookup purposes. Basic identifiers are
// lowered to ASCII lowercase; extended identifiers (\Foo\) and character
// literals ('x') are case-sensitive and returned unchanged.
func Fold(name string) string {
	if len(name) > 0 && (name[0] == '\\' || name[0] == '\'') {
		return name
	}
	lowered := false
	for i := 0; i < len(name); i++ {
		if name[i] >= 'A' && name[i] <= 'Z' {
			lowered = true
			break
		}
	}
	if !lowered {
		return name
	}
	b := []byte(name)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}
