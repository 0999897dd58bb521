package game_test

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/thingbox/ecs"
	"github.com/plus3/thingbox/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPickup(t *testing.T) {
	c := newTestContext(t)
	events := &eventLog{}
	c.AddNotifier(events)

	player := spawnAt(t, c, "cube", mgl32.Vec3{}, game.TraitWSAD)
	coin := spawnAt(t, c, "coin", mgl32.Vec3{0.5, 0, 0}, game.TraitPickup)

	c.Update(frame, game.Input{})

	assert.False(t, c.Valid(coin))
	assert.True(t, c.Valid(player))
	require.Equal(t, 1, events.count(game.EventPickup))
	assert.Equal(t, "Picked up coin", events.events[0].Message())
	assert.Equal(t, player, events.events[0].Source)

	labels := withTrait(c, game.TraitIsText)
	require.Len(t, labels, 1)
	assert.Equal(t, "Picked up coin", labels[0].Text)
}

func TestPickupNeedsPlayer(t *testing.T) {
	c := newTestContext(t)
	spawnAt(t, c, "cube", mgl32.Vec3{})
	coin := spawnAt(t, c, "coin", mgl32.Vec3{0.5, 0, 0}, game.TraitPickup)

	c.Update(frame, game.Input{})
	assert.True(t, c.Valid(coin))
}

func TestImpactIsOrderIndependent(t *testing.T) {
	for _, moverFirst := range []bool{true, false} {
		name := "target first"
		if moverFirst {
			name = "mover first"
		}
		t.Run(name, func(t *testing.T) {
			c := newTestContext(t)
			events := &eventLog{}
			c.AddNotifier(events)

			var mover, target ecs.Ref
			if moverFirst {
				mover = spawnAt(t, c, "cube", mgl32.Vec3{-1.05, 0, 0})
				target = spawnAt(t, c, "cube", mgl32.Vec3{}, game.TraitPushable)
			} else {
				target = spawnAt(t, c, "cube", mgl32.Vec3{}, game.TraitPushable)
				mover = spawnAt(t, c, "cube", mgl32.Vec3{-1.05, 0, 0})
			}
			c.SetVelocity(mover, mgl32.Vec3{2, 0, 0})

			c.Update(0.1, game.Input{})

			want := 2 * float32(math.Exp(-0.3))
			m, tg := entity(t, c, mover), entity(t, c, target)
			assert.False(t, m.Moving(), "mover stops")
			v, ok := tg.Velocity.Get()
			require.True(t, ok, "target picks up the mover's velocity")
			assert.InDelta(t, want, v.X(), 1e-5)
			assert.InDelta(t, -0.85, m.Position.X(), 1e-5)

			require.Equal(t, 1, events.count(game.EventImpact))
			ev := events.events[0]
			assert.Equal(t, mover, ev.Source)
			assert.Equal(t, target, ev.Target)
			assert.InDelta(t, want, ev.Speed, 1e-5)
		})
	}
}

func TestMovingPickupIsOrderIndependent(t *testing.T) {
	for _, coinFirst := range []bool{true, false} {
		name := "player first"
		if coinFirst {
			name = "coin first"
		}
		t.Run(name, func(t *testing.T) {
			c := newTestContext(t)
			events := &eventLog{}
			c.AddNotifier(events)

			var coin, player ecs.Ref
			if coinFirst {
				coin = spawnAt(t, c, "coin", mgl32.Vec3{0.6, 0, 0}, game.TraitPickup)
				player = spawnAt(t, c, "cube", mgl32.Vec3{}, game.TraitWSAD)
			} else {
				player = spawnAt(t, c, "cube", mgl32.Vec3{}, game.TraitWSAD)
				coin = spawnAt(t, c, "coin", mgl32.Vec3{0.6, 0, 0}, game.TraitPickup)
			}
			c.SetVelocity(coin, mgl32.Vec3{-2, 0, 0})

			c.Update(frame, game.Input{})

			assert.Equal(t, 1, events.count(game.EventPickup))
			assert.Zero(t, events.count(game.EventImpact))
			assert.False(t, c.Valid(coin))
			assert.True(t, c.Valid(player))
		})
	}
}

func TestImpactOnFixedTarget(t *testing.T) {
	c := newTestContext(t)
	mover := spawnAt(t, c, "cube", mgl32.Vec3{-1.05, 0, 0})
	wall := spawnAt(t, c, "cube", mgl32.Vec3{})
	c.SetVelocity(mover, mgl32.Vec3{2, 0, 0})

	c.Update(0.1, game.Input{})
	assert.False(t, entity(t, c, mover).Moving())
	assert.False(t, entity(t, c, wall).Moving())

	labels := withTrait(c, game.TraitIsText)
	require.Len(t, labels, 1)
	assert.Equal(t, "hit cube (1.5)", labels[0].Text)
	assert.Equal(t, mover, labels[0].Spawner)
}

func TestBothMovingNoImpact(t *testing.T) {
	c := newTestContext(t)
	a := spawnAt(t, c, "cube", mgl32.Vec3{-0.6, 0, 0})
	b := spawnAt(t, c, "cube", mgl32.Vec3{0.6, 0, 0})
	c.SetVelocity(a, mgl32.Vec3{2, 0, 0})
	c.SetVelocity(b, mgl32.Vec3{-2, 0, 0})

	c.Update(0.1, game.Input{})
	assert.True(t, entity(t, c, a).Moving())
	assert.True(t, entity(t, c, b).Moving())
}

func TestCrossSlashPushesAndHits(t *testing.T) {
	c := newTestContext(t)
	events := &eventLog{}
	c.AddNotifier(events)

	player := spawnAt(t, c, "cube", mgl32.Vec3{}, game.TraitWSAD)
	crate := spawnAt(t, c, "cube", mgl32.Vec3{1.5, 0, 0}, game.TraitPushable)

	hitboxes := c.CrossSlash(player)
	require.Len(t, hitboxes, 5)
	assert.Equal(t, 1, events.count(game.EventSlash))

	c.Update(frame, game.Input{})

	v, ok := entity(t, c, crate).Velocity.Get()
	require.True(t, ok, "east hitbox pushes the crate")
	assert.InDelta(t, 1, v.X(), 0.1)
	assert.InDelta(t, 0, v.Z(), 1e-6)

	require.Equal(t, 1, events.count(game.EventSlashHit))
	for _, ev := range events.events {
		if ev.Kind == game.EventSlashHit {
			assert.Equal(t, crate, ev.Target)
			assert.Equal(t, "cross slash hit cube", ev.Message())
		}
	}
	assert.True(t, c.Valid(player), "hitboxes ignore their spawner")
}

func TestParentChildNeverResolve(t *testing.T) {
	c := newTestContext(t)
	events := &eventLog{}
	c.AddNotifier(events)

	parent := c.Spawn(game.SpawnArgs{Model: "cube", PushDistance: game.Some[float32](3)})
	child := c.Spawn(game.SpawnArgs{Model: "cube", Pos: mgl32.Vec3{0.5, 0, 0}, Spawner: parent, Traits: []string{game.TraitPushable}})

	entered := 0
	c.OnPairEnter(func(ecs.Ref, ecs.Ref) { entered++ })
	c.Update(frame, game.Input{})

	assert.Equal(t, 1, entered, "the pair still forms")
	assert.False(t, entity(t, c, child).Moving())
	assert.Empty(t, events.events)
}

func TestPushWithoutSpawnerLink(t *testing.T) {
	c := newTestContext(t)
	pusher := c.Spawn(game.SpawnArgs{Model: "cube", PushDistance: game.Some[float32](3)})
	box := c.Spawn(game.SpawnArgs{Model: "cube", Pos: mgl32.Vec3{0, 0.5, 0.5}, Traits: []string{game.TraitPushable}})

	c.Update(frame, game.Input{})

	v, ok := entity(t, c, box).Velocity.Get()
	require.True(t, ok)
	// Planar push along +Z at the push distance; the Y offset is ignored.
	assert.InDelta(t, 0, v.Y(), 1e-6)
	assert.InDelta(t, 0, v.X(), 1e-6)
	assert.InDelta(t, 3, v.Z(), 1e-5)
	assert.False(t, entity(t, c, pusher).Moving())
}

func TestReleaseAfterDragSlashes(t *testing.T) {
	c := newTestContext(t)
	player := spawnAt(t, c, "cube", mgl32.Vec3{}, game.TraitWSAD)

	c.Update(frame, game.Input{Ray: downRay(0, 0), LeftPressed: true, LeftDown: true})
	require.True(t, c.Frames().Current().Dragging(player))

	c.Update(frame, game.Input{Ray: downRay(0, 0), LeftReleased: true})

	hitboxes := withTrait(c, game.TraitIsHitbox)
	require.Len(t, hitboxes, 5)
	names := make([]string, 0, 5)
	for _, hb := range hitboxes {
		names = append(names, hb.DebugName)
		assert.Equal(t, player, hb.Spawner)
		assert.True(t, c.Traits().Has(hb, game.TraitCrossSlashHitbox))
		push, _ := hb.PushDistance.Get()
		assert.Equal(t, float32(1), push)
		life, _ := hb.LifeTime.Get()
		assert.Equal(t, float32(1), life)
	}
	assert.ElementsMatch(t, []string{
		"north slash hitbox", "south slash hitbox", "east slash hitbox",
		"west slash hitbox", "west west slash hitbox",
	}, names)

	labels := withTrait(c, game.TraitIsText)
	require.Len(t, labels, 1)
	assert.Equal(t, "cross slash at (0.0, 0.0, 0.0)", labels[0].Text)

	// Hitboxes vanish after their lifetime.
	for i := 0; i < 61; i++ {
		c.Update(frame, game.Input{})
	}
	assert.Empty(t, withTrait(c, game.TraitIsHitbox))
	assert.True(t, c.Valid(player))
}

func TestReleaseWithoutDragDoesNothing(t *testing.T) {
	c := newTestContext(t)
	spawnAt(t, c, "cube", mgl32.Vec3{}, game.TraitWSAD)

	c.Update(frame, game.Input{Ray: downRay(0, 0)})
	c.Update(frame, game.Input{Ray: downRay(0, 0), LeftReleased: true})
	assert.Empty(t, withTrait(c, game.TraitIsHitbox))

	// Released while the GUI owns the mouse.
	c.Update(frame, game.Input{Ray: downRay(0, 0), LeftDown: true})
	c.Update(frame, game.Input{Ray: downRay(0, 0), LeftReleased: true, GUIWantsMouse: true})
	assert.Empty(t, withTrait(c, game.TraitIsHitbox))
}
