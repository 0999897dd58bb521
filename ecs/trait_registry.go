package ecs

import (
	"fmt"
	"iter"
	"strings"
)

// DefaultMaxTraits is the trait ceiling used by most games built on this package.
const DefaultMaxTraits = 10

// TraitCarrier is implemented by payload types that can hold traits.
// It is normally satisfied by a pointer to the entity struct.
type TraitCarrier interface {
	TraitMask() *TraitMask
}

// TraitInitFunc runs once when a trait is applied to an entity.
type TraitInitFunc[E TraitCarrier] func(e E)

// TraitUpdateFunc runs every tick for each entity holding the trait.
type TraitUpdateFunc[E TraitCarrier] func(e E, dt float64)

// TraitEntry describes one registered trait.
type TraitEntry[E TraitCarrier] struct {
	Name   string
	Slot   int
	Init   TraitInitFunc[E]
	Update TraitUpdateFunc[E]
}

// TraitRegistry maps trait names to dense slot indices and behavior callbacks.
// Slots are handed out in registration order starting at 0 and never change.
// Each game owns its registry; there is no process-wide instance.
type TraitRegistry[E TraitCarrier] struct {
	entries []TraitEntry[E]
	slots   map[string]int
	max     int
}

// NewTraitRegistry creates a registry accepting at most maxTraits names.
func NewTraitRegistry[E TraitCarrier](maxTraits int) *TraitRegistry[E] {
	if maxTraits <= 0 || maxTraits > MaxTraitSlots {
		panic(fmt.Sprintf("trait ceiling must be in 1..%d, got %d", MaxTraitSlots, maxTraits))
	}
	return &TraitRegistry[E]{
		slots: make(map[string]int),
		max:   maxTraits,
	}
}

// Register adds a trait and returns its slot. Registering a known name
// returns the existing slot and keeps the original callbacks. Exceeding the
// ceiling is a configuration error and panics.
func (r *TraitRegistry[E]) Register(name string, init TraitInitFunc[E], update TraitUpdateFunc[E]) int {
	if slot, ok := r.slots[name]; ok {
		return slot
	}
	if len(r.entries) >= r.max {
		panic(fmt.Sprintf("too many traits: cannot register %q, ceiling is %d", name, r.max))
	}

	slot := len(r.entries)
	r.entries = append(r.entries, TraitEntry[E]{
		Name:   name,
		Slot:   slot,
		Init:   init,
		Update: update,
	})
	r.slots[name] = slot
	return slot
}

// Find returns the slot for name.
func (r *TraitRegistry[E]) Find(name string) (int, bool) {
	slot, ok := r.slots[name]
	return slot, ok
}

// Apply marks e as holding the named trait and runs its init callback.
// Unknown names are ignored.
func (r *TraitRegistry[E]) Apply(e E, name string) {
	slot, ok := r.slots[name]
	if !ok {
		return
	}
	e.TraitMask().Set(slot)
	if init := r.entries[slot].Init; init != nil {
		init(e)
	}
}

// Remove clears the named trait from e. Unknown names are ignored.
func (r *TraitRegistry[E]) Remove(e E, name string) {
	if slot, ok := r.slots[name]; ok {
		e.TraitMask().Unset(slot)
	}
}

// Has reports whether e holds the named trait.
func (r *TraitRegistry[E]) Has(e E, name string) bool {
	slot, ok := r.slots[name]
	return ok && e.TraitMask().Has(slot)
}

// TickAll runs every update callback, trait by trait in registration order,
// over the entities in iteration order. Tag-only traits are skipped.
func (r *TraitRegistry[E]) TickAll(entities iter.Seq[E], dt float64) {
	for i := range r.entries {
		entry := &r.entries[i]
		if entry.Update == nil {
			continue
		}
		for e := range entities {
			if e.TraitMask().Has(entry.Slot) {
				entry.Update(e, dt)
			}
		}
	}
}

// Entries returns the registered traits in registration order.
func (r *TraitRegistry[E]) Entries() []TraitEntry[E] {
	return r.entries
}

// Len returns the number of registered traits.
func (r *TraitRegistry[E]) Len() int {
	return len(r.entries)
}

// Describe lists the traits e holds, joined with " | ".
func (r *TraitRegistry[E]) Describe(e E) string {
	mask := *e.TraitMask()
	names := make([]string, 0, mask.Count())
	for _, entry := range r.entries {
		if mask.Has(entry.Slot) {
			names = append(names, entry.Name)
		}
	}
	return strings.Join(names, " | ")
}

// DescribeRegistered lists every trait as "name [slot N]", one per line.
func (r *TraitRegistry[E]) DescribeRegistered() string {
	var b strings.Builder
	for _, entry := range r.entries {
		fmt.Fprintf(&b, "%s [slot %d]\n", entry.Name, entry.Slot)
	}
	return b.String()
}
