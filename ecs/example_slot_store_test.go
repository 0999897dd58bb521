package ecs_test

import (
	"fmt"

	"github.com/plus3/thingbox/ecs"
)

// ExampleSlotStore shows that a ref to a removed item stays invalid after
// its slot is reused.
func ExampleSlotStore() {
	store := ecs.NewSlotStore[Pickup](2)

	coin := store.Add(Pickup{Name: "coin", Value: 1})
	gem := store.Add(Pickup{Name: "gem", Value: 50})
	fmt.Println(coin, gem)

	full := store.Add(Pickup{Name: "extra"})
	fmt.Println("full:", full.IsNil(), full.Index)

	store.Remove(coin)
	key := store.Add(Pickup{Name: "key"})
	fmt.Println(key, store.Valid(coin), store.Valid(key))

	if p, ok := store.Lookup(key); ok {
		fmt.Println(p.Name)
	}

	// Output:
	// 0:1 1:1
	// full: true -1
	// 0:2 false true
	// key
}
