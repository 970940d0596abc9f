package ast

import (
	"fmt"

	"fortio.org/safecast"
)

// Arena is an append-only pool. Allocated values never move and are never
// freed individually; indices stay valid for the whole session.
type Arena[T any] struct {
	data []T
}

// NewArena returns an arena whose backing slice is preallocated to capHint.
func NewArena[T any](capHint uint) *Arena[T] {
	return &Arena[T]{
		data: make([]T, 0, capHint),
	}
}

// Allocate appends the value and returns its index (1-based; 0 is the
// sentinel for "no value").
func (a *Arena[T]) Allocate(value T) uint32 {
	a.data = append(a.data, value)
	idx, err := safecast.Conv[uint32](len(a.data))
	if err != nil {
		panic(fmt.Errorf("arena overflow: %w", err))
	}
	return idx
}

// Get returns a pointer to the value at index, or nil for the sentinel.
func (a *Arena[T]) Get(index uint32) *T {
	if index == 0 {
		return nil
	}
	return &a.data[index-1]
}

// Slice exposes the arena storage. Read-only.
func (a *Arena[T]) Slice() []T {
	return a.data
}

func (a *Arena[T]) Len() uint32 {
	return uint32(len(a.data))
}
