package ecs

import "fmt"

// Kind tags a Ref as either empty or pointing at a stored item.
type Kind uint8

const (
	KindNil Kind = iota
	KindItem
)

// Ref is a generation-checked handle into a SlotStore.
// Refs are plain values: comparable, usable as map keys, cheap to copy.
type Ref struct {
	Kind       Kind
	Generation uint32
	Index      int32
}

// NilRef is the empty reference. No stored item is ever addressed by it.
var NilRef = Ref{}

// failedRef is returned by SlotStore.Add when the store is full.
var failedRef = Ref{Kind: KindNil, Index: -1}

// IsNil reports whether the ref points at nothing.
func (r Ref) IsNil() bool {
	return r.Kind == KindNil
}

// Failed reports whether the ref is the result of a failed allocation.
func (r Ref) Failed() bool {
	return r.Kind == KindNil && r.Index < 0
}

// Key packs index and generation into a single integer, unique among live refs.
func (r Ref) Key() uint64 {
	if r.Kind == KindNil {
		return 0
	}
	return uint64(r.Generation)<<32 | uint64(uint32(r.Index))
}

// RefFromKey is the inverse of Ref.Key.
func RefFromKey(key uint64) Ref {
	if key == 0 {
		return NilRef
	}
	return Ref{Kind: KindItem, Generation: uint32(key >> 32), Index: int32(uint32(key))}
}

// String formats the ref as "index:generation", or "nil".
func (r Ref) String() string {
	if r.Kind == KindNil {
		return "nil"
	}
	return fmt.Sprintf("%d:%d", r.Index, r.Generation)
}

// ParseRef parses the "index:generation" form produced by String.
func ParseRef(s string) (Ref, error) {
	if s == "nil" {
		return NilRef, nil
	}
	var idx int32
	var gen uint32
	if _, err := fmt.Sscanf(s, "%d:%d", &idx, &gen); err != nil {
		return NilRef, fmt.Errorf("parse ref %q: %w", s, err)
	}
	if idx < 0 {
		return NilRef, fmt.Errorf("parse ref %q: negative index", s)
	}
	return Ref{Kind: KindItem, Generation: gen, Index: idx}, nil
}
