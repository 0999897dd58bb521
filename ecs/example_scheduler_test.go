package ecs_test

import (
	"fmt"

	"github.com/plus3/thingbox/ecs"
)

type Mover struct {
	X, DX float64
	Life  float64
}

type MoveSystem struct {
	Store *ecs.SlotStore[Mover]
}

func (s *MoveSystem) Execute(frame *ecs.UpdateFrame) {
	for m := range s.Store.Values() {
		m.X += m.DX * frame.DeltaTime
	}
}

type LifetimeSystem struct {
	Store *ecs.SlotStore[Mover]
}

func (s *LifetimeSystem) Execute(frame *ecs.UpdateFrame) {
	for ref, m := range s.Store.All() {
		m.Life -= frame.DeltaTime
		if m.Life <= 0 {
			frame.Commands.Remove(ref)
		}
	}
}

// ExampleScheduler runs two systems per frame. Removals queued by the
// lifetime system land before the frame ends.
func ExampleScheduler() {
	store := ecs.NewSlotStore[Mover](4)
	store.Add(Mover{DX: 2, Life: 1})
	keep := store.Add(Mover{DX: 1, Life: 10})

	scheduler := ecs.NewScheduler(func(ref ecs.Ref) { store.Remove(ref) })
	scheduler.Register(&MoveSystem{Store: store})
	scheduler.Register(&LifetimeSystem{Store: store})

	for i := 0; i < 3; i++ {
		scheduler.Once(0.5)
		fmt.Printf("frame %d: %d alive\n", i, store.Len())
	}

	fmt.Println("x:", store.Get(keep).X)
	for _, s := range scheduler.GetStats().Systems {
		fmt.Println(s.Name, s.ExecutionCount)
	}

	// Output:
	// frame 0: 2 alive
	// frame 1: 1 alive
	// frame 2: 1 alive
	// x: 1.5
	// MoveSystem 3
	// LifetimeSystem 3
}
