package ast

import (
	"fmt"

	"fortio.org/safecast"
)

// Arena хранит узлы одного вида; индексы 1-based, 0: «нет узла».
type Arena[T any] struct {
	data []T
}

// NewArena creates an arena with capHint preallocated slots.
func NewArena[T any](capHint uint) *Arena[T] {
	return &Arena[T]{
		data: make([]T, 0, capHint),
	}
}

// Возвращает индекс нового элемента (1-based).
func (a *Arena[T]) Allocate(value T) uint32 {
	a.data = append(a.data, value)
	return a.Len()
}

// Get returns a pointer into the arena, nil for index 0 or out of range.
func (a *Arena[T]) Get(index uint32) *T {
	if index == 0 || int(index) > len(a.data) {
		return nil
	}
	return &a.data[index-1]
}

func (a *Arena[T]) Len() uint32 {
	n, err := safecast.Conv[uint32](len(a.data))
	if err != nil {
		panic(fmt.Errorf("arena overflow: %w", err))
	}
	return n
}
