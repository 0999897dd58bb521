package game_test

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/thingbox/assets"
	"github.com/plus3/thingbox/ecs"
	"github.com/plus3/thingbox/game"
	"github.com/plus3/thingbox/geom"
	"github.com/stretchr/testify/require"
)

const frame = 1.0 / 60

func newTestContext(t testing.TB, tweak ...func(*game.Options)) *game.Context {
	t.Helper()
	store := assets.NewStore(nil)
	require.NoError(t, store.LoadDefs([]assets.ModelDef{
		{Name: "cube"},
		{Name: "coin", Shape: assets.ShapeCylinder, Size: [3]float32{0.5, 0.1, 0.5}},
	}))

	opts := game.DefaultOptions()
	for _, fn := range tweak {
		fn(&opts)
	}
	return game.New(store, opts)
}

// downRay looks straight down at (x, z) from above the scene.
func downRay(x, z float32) geom.Ray {
	return geom.Ray{Origin: mgl32.Vec3{x, 10, z}, Dir: mgl32.Vec3{0, -1, 0}}
}

func spawnAt(t *testing.T, c *game.Context, model string, pos mgl32.Vec3, traits ...string) ecs.Ref {
	t.Helper()
	ref := c.Spawn(game.SpawnArgs{Model: model, Pos: pos, DebugName: model, Traits: traits})
	require.False(t, ref.IsNil(), "spawn %s", model)
	return ref
}

func entity(t *testing.T, c *game.Context, ref ecs.Ref) *game.Entity {
	t.Helper()
	e, ok := c.Get(ref)
	require.True(t, ok, "entity %s", ref)
	return e
}

// withTrait collects live entities holding a trait.
func withTrait(c *game.Context, trait string) []*game.Entity {
	var out []*game.Entity
	for _, e := range c.Entities().All() {
		if c.Traits().Has(e, trait) {
			out = append(out, e)
		}
	}
	return out
}

type eventLog struct {
	events []game.Event
}

func (l *eventLog) Notify(ev game.Event) { l.events = append(l.events, ev) }

func (l *eventLog) count(kind game.EventKind) int {
	n := 0
	for _, ev := range l.events {
		if ev.Kind == kind {
			n++
		}
	}
	return n
}
