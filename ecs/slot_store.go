package ecs

import "iter"

// SlotStore is a fixed-capacity slot map. Items are addressed by generation
// checked Refs; add, remove and lookup are O(1) and freed slots are reused
// most-recently-freed first.
//
// A SlotStore is not safe for concurrent use.
type SlotStore[T any] struct {
	items []T
	gens  []uint32
	used  []bool
	free  []int32 // stack of free slot indices, top is the next slot handed out
	live  int
}

// NewSlotStore creates a store holding at most capacity items.
func NewSlotStore[T any](capacity int) *SlotStore[T] {
	if capacity <= 0 {
		panic("slot store capacity must be positive")
	}

	s := &SlotStore[T]{
		items: make([]T, capacity),
		gens:  make([]uint32, capacity),
		used:  make([]bool, capacity),
		free:  make([]int32, capacity),
	}

	// Lowest index on top so a fresh store fills in index order.
	for i := range s.free {
		s.free[i] = int32(capacity - 1 - i)
	}
	return s
}

// Add copies value into a free slot and returns its ref.
// When the store is full the returned ref is nil with index -1.
func (s *SlotStore[T]) Add(value T) Ref {
	if len(s.free) == 0 {
		return failedRef
	}

	index := s.free[len(s.free)-1]
	s.free = s.free[:len(s.free)-1]

	s.items[index] = value
	s.used[index] = true
	s.gens[index]++
	s.live++

	return Ref{Kind: KindItem, Generation: s.gens[index], Index: index}
}

// Remove frees the slot addressed by ref. Nil, stale and already-freed refs
// are ignored. It reports whether a slot was freed.
func (s *SlotStore[T]) Remove(ref Ref) bool {
	if !s.Valid(ref) {
		return false
	}

	var zero T
	s.items[ref.Index] = zero
	s.used[ref.Index] = false
	s.free = append(s.free, ref.Index)
	s.live--
	return true
}

// Valid reports whether ref addresses a live item.
func (s *SlotStore[T]) Valid(ref Ref) bool {
	if ref.Kind == KindNil || ref.Index < 0 || int(ref.Index) >= len(s.items) {
		return false
	}
	return s.used[ref.Index] && s.gens[ref.Index] == ref.Generation
}

// Get returns a pointer to the payload at ref's index without checking the
// generation. Out-of-range indices return nil. Use Lookup when the ref may be
// stale.
func (s *SlotStore[T]) Get(ref Ref) *T {
	if ref.Index < 0 || int(ref.Index) >= len(s.items) {
		return nil
	}
	return &s.items[ref.Index]
}

// Lookup returns the payload for ref, or nil and false if the ref is nil,
// stale or freed.
func (s *SlotStore[T]) Lookup(ref Ref) (*T, bool) {
	if !s.Valid(ref) {
		return nil, false
	}
	return &s.items[ref.Index], true
}

// RefAt returns the live ref for a slot index.
func (s *SlotStore[T]) RefAt(index int) (Ref, bool) {
	if index < 0 || index >= len(s.items) || !s.used[index] {
		return NilRef, false
	}
	return Ref{Kind: KindItem, Generation: s.gens[index], Index: int32(index)}, true
}

// All iterates occupied slots in index order. Removing items while
// iterating is not supported; collect refs first (see Refs).
func (s *SlotStore[T]) All() iter.Seq2[Ref, *T] {
	return func(yield func(Ref, *T) bool) {
		for i := range s.items {
			if !s.used[i] {
				continue
			}
			ref := Ref{Kind: KindItem, Generation: s.gens[i], Index: int32(i)}
			if !yield(ref, &s.items[i]) {
				return
			}
		}
	}
}

// Values iterates payloads of occupied slots in index order.
func (s *SlotStore[T]) Values() iter.Seq[*T] {
	return func(yield func(*T) bool) {
		for i := range s.items {
			if s.used[i] && !yield(&s.items[i]) {
				return
			}
		}
	}
}

// Refs returns a snapshot of all live refs in index order.
func (s *SlotStore[T]) Refs() []Ref {
	refs := make([]Ref, 0, s.live)
	for ref := range s.All() {
		refs = append(refs, ref)
	}
	return refs
}

// Clear removes every item.
func (s *SlotStore[T]) Clear() {
	for _, ref := range s.Refs() {
		s.Remove(ref)
	}
}

// Len returns the number of occupied slots.
func (s *SlotStore[T]) Len() int {
	return s.live
}

// Cap returns the fixed capacity.
func (s *SlotStore[T]) Cap() int {
	return len(s.items)
}

// Free returns the number of slots available to Add.
func (s *SlotStore[T]) Free() int {
	return len(s.free)
}
