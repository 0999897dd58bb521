package ecs_test

import (
	"context"
	"testing"
	"time"

	"github.com/plus3/thingbox/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type moveSystem struct {
	store *ecs.SlotStore[Enemy]
	calls int
}

func (s *moveSystem) Execute(frame *ecs.UpdateFrame) {
	s.calls++
	for e := range s.store.Values() {
		e.X += float32(frame.DeltaTime)
	}
}

func TestSchedulerOrder(t *testing.T) {
	var order []string
	scheduler := ecs.NewScheduler(nil)
	scheduler.RegisterNamed("first", ecs.SystemFunc(func(*ecs.UpdateFrame) { order = append(order, "first") }))
	scheduler.RegisterNamed("second", ecs.SystemFunc(func(*ecs.UpdateFrame) { order = append(order, "second") }))
	scheduler.RegisterNamed("third", ecs.SystemFunc(func(*ecs.UpdateFrame) { order = append(order, "third") }))

	scheduler.Once(0.1)
	scheduler.Once(0.1)

	assert.Equal(t, []string{"first", "second", "third", "first", "second", "third"}, order)
}

func TestSchedulerFrameIndex(t *testing.T) {
	var seen []uint64
	var dts []float64
	scheduler := ecs.NewScheduler(nil)
	scheduler.RegisterNamed("record", ecs.SystemFunc(func(f *ecs.UpdateFrame) {
		seen = append(seen, f.Index)
		dts = append(dts, f.DeltaTime)
	}))

	scheduler.Once(0.5)
	scheduler.Once(0.25)

	assert.Equal(t, []uint64{0, 1}, seen)
	assert.Equal(t, []float64{0.5, 0.25}, dts)
}

func TestSchedulerStats(t *testing.T) {
	store := ecs.NewSlotStore[Enemy](4)
	store.Add(Enemy{})

	scheduler := ecs.NewScheduler(func(ref ecs.Ref) { store.Remove(ref) })
	mover := &moveSystem{store: store}
	scheduler.Register(mover)
	scheduler.RegisterNamed("idle", ecs.SystemFunc(func(*ecs.UpdateFrame) {}))

	empty := scheduler.GetStats()
	require.Len(t, empty.Systems, 2)
	assert.Equal(t, "moveSystem", empty.Systems[0].Name)
	assert.Equal(t, time.Duration(0), empty.Systems[0].MinDuration)
	assert.Equal(t, time.Duration(0), empty.Systems[0].AvgDuration)

	for i := 0; i < 3; i++ {
		scheduler.Once(1)
	}

	stats := scheduler.GetStats()
	assert.Equal(t, 2, stats.SystemCount)
	assert.Equal(t, int64(6), stats.TotalExecutions)
	assert.Equal(t, uint64(3), stats.Frames)
	assert.Equal(t, int64(3), stats.Systems[0].ExecutionCount)
	assert.Equal(t, "idle", stats.Systems[1].Name)
	assert.LessOrEqual(t, stats.Systems[0].MinDuration, stats.Systems[0].MaxDuration)
	assert.Equal(t, 3, mover.calls)

	for e := range store.Values() {
		assert.Equal(t, float32(3), e.X)
	}
}

func TestSchedulerRun(t *testing.T) {
	store := ecs.NewSlotStore[Enemy](4)
	store.Add(Enemy{})

	scheduler := ecs.NewScheduler(nil)
	mover := &moveSystem{store: store}
	scheduler.Register(mover)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Millisecond)
	defer cancel()
	scheduler.Run(ctx, 5*time.Millisecond)

	assert.Greater(t, mover.calls, 0)
	assert.Equal(t, uint64(mover.calls), scheduler.GetStats().Frames)
}
