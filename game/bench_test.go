package game_test

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/thingbox/game"
)

func BenchmarkUpdate500(b *testing.B) {
	c := newTestContext(b)
	for i := 0; i < 500; i++ {
		x, z := float32(i%25)*1.5, float32(i/25)*1.5
		ref := c.Spawn(game.SpawnArgs{Model: "cube", Pos: mgl32.Vec3{x, 0, z}, Traits: []string{game.TraitPushable}})
		if i%7 == 0 {
			c.SetVelocity(ref, mgl32.Vec3{1, 0, 0.5})
		}
	}
	in := game.Input{Ray: downRay(10, 10)}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Update(frame, in)
	}
}
