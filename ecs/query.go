package ecs

import "iter"

// Query caches the refs of items matching a predicate. Execute rebuilds the
// cache; iteration then skips entries removed since the last Execute, which
// makes it safe to remove items while walking a query.
type Query[T any] struct {
	store  *SlotStore[T]
	match  func(Ref, *T) bool
	cached []Ref
	valid  bool
}

// NewQuery creates a query over store. A nil match selects every item.
func NewQuery[T any](store *SlotStore[T], match func(Ref, *T) bool) *Query[T] {
	return &Query[T]{
		store: store,
		match: match,
	}
}

// Execute snapshots the matching refs in store order.
func (q *Query[T]) Execute() {
	q.cached = q.cached[:0]
	for ref, item := range q.store.All() {
		if q.match == nil || q.match(ref, item) {
			q.cached = append(q.cached, ref)
		}
	}
	q.valid = true
}

// Refs returns the refs captured by the last Execute.
// Panics if Execute has not been called.
func (q *Query[T]) Refs() []Ref {
	if !q.valid {
		panic("Query.Refs() called before Query.Execute()")
	}
	return q.cached
}

// Len returns the number of refs captured by the last Execute.
func (q *Query[T]) Len() int {
	return len(q.cached)
}

// Iter yields the cached items that are still live.
// Panics if Execute has not been called.
func (q *Query[T]) Iter() iter.Seq2[Ref, *T] {
	if !q.valid {
		panic("Query.Iter() called before Query.Execute()")
	}

	return func(yield func(Ref, *T) bool) {
		for _, ref := range q.cached {
			item, ok := q.store.Lookup(ref)
			if !ok {
				continue
			}
			if !yield(ref, item) {
				return
			}
		}
	}
}

// Invalidate drops the cache so the next Iter panics until Execute runs.
func (q *Query[T]) Invalidate() {
	q.cached = q.cached[:0]
	q.valid = false
}
