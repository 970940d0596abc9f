package source

import (
	"fmt"
)

// Span marks a half-open byte range inside a source file.
type Span struct {
	File  FileID
	Start uint32 // inclusive byte offset
	End   uint32 // exclusive byte offset
}

func (s Span) Empty() bool {
	return s.Start == s.End
}

func (s Span) Len() uint32 {
	return s.End - s.Start
}

func (s Span) String() string {
	return fmt.Sprintf("%d:%d-%d", s.File, s.Start, s.End)
}

// Cover widens the span to include other. Spans from different files are
// left untouched.
func (s Span) Cover(other Span) Span {
	if s.File != other.File {
		return s
	}
	if other.Start < s.Start {
		s.Start = other.Start
	}
	if other.End > s.End {
		s.End = other.End
	}
	return s
}

// Between returns the span starting at the end of s and stopping at the end
// of other. Used for "invalid name suffix" style diagnostics that point at
// the unconsumed tail of a name.
func (s Span) Between(other Span) Span {
	return Span{File: s.File, Start: s.End, End: other.End}
}
