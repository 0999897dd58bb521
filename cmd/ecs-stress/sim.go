package main

import (
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/thingbox/ecs"
	"github.com/plus3/thingbox/game"
	"github.com/plus3/thingbox/geom"
)

// Simulation churns entities through a game.Context: each step removes and
// spawns a few random entities, occasionally cross slashes, then runs one
// update with a fixed pick ray over the arena center.
type Simulation struct {
	ctx   *game.Context
	rng   *rand.Rand
	churn int
	arena float32

	Events  map[game.EventKind]int
	Spawned int
	Failed  int
	Removed int
	Slashes int
	Peak    int
}

func NewSimulation(ctx *game.Context, seed uint64, churn int, arena float32) *Simulation {
	s := &Simulation{
		ctx:    ctx,
		rng:    rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		churn:  churn,
		arena:  arena,
		Events: make(map[game.EventKind]int),
	}
	ctx.AddNotifier(game.NotifierFunc(func(ev game.Event) { s.Events[ev.Kind]++ }))
	return s
}

// Populate spawns n random entities.
func (s *Simulation) Populate(n int) {
	for range n {
		s.spawnRandom()
	}
}

// Step runs one frame of churn and update.
func (s *Simulation) Step(dt float64) {
	for range s.churn {
		s.removeRandom()
		s.spawnRandom()
	}
	if s.rng.IntN(30) == 0 {
		if ref := s.randomRef(); !ref.IsNil() {
			s.ctx.CrossSlash(ref)
			s.Slashes++
		}
	}

	s.ctx.Update(dt, game.Input{
		Ray: geom.Ray{Origin: mgl32.Vec3{0, 20, 0}, Dir: mgl32.Vec3{0, -1, 0}},
	})
	s.Peak = max(s.Peak, s.ctx.Count())
}

func (s *Simulation) spawnRandom() {
	pos := mgl32.Vec3{s.coord(), 0, s.coord()}

	args := game.SpawnArgs{Model: "cube", Pos: pos, Traits: []string{game.TraitPushable}}
	if s.rng.IntN(4) == 0 {
		args = game.SpawnArgs{Model: "coin", Pos: pos, Traits: []string{game.TraitPickup}}
	}

	ref := s.ctx.Spawn(args)
	if ref.IsNil() {
		s.Failed++
		return
	}
	s.Spawned++

	if s.rng.IntN(5) == 0 {
		s.ctx.SetVelocity(ref, mgl32.Vec3{s.coord(), 0, s.coord()})
	}
}

func (s *Simulation) removeRandom() {
	if ref := s.randomRef(); !ref.IsNil() && s.ctx.Remove(ref) {
		s.Removed++
	}
}

func (s *Simulation) randomRef() ecs.Ref {
	refs := s.ctx.Entities().Refs()
	if len(refs) == 0 {
		return ecs.NilRef
	}
	return refs[s.rng.IntN(len(refs))]
}

func (s *Simulation) coord() float32 {
	return (s.rng.Float32()*2 - 1) * s.arena
}
