package ecs_test

import "github.com/plus3/thingbox/ecs"

// Common test payload types
type Enemy struct {
	X, Y   float32
	Health int
	traits ecs.TraitMask
}

func (e *Enemy) TraitMask() *ecs.TraitMask {
	return &e.traits
}

type Pickup struct {
	Name  string
	Value int
}

func countItems[T any](store *ecs.SlotStore[T]) int {
	n := 0
	for range store.All() {
		n++
	}
	return n
}
