package game

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/thingbox/assets"
	"github.com/plus3/thingbox/ecs"
)

// Flags are the per-entity behavior switches the pipeline reads directly.
type Flags uint8

const (
	FlagCollidable Flags = 1 << iota
	FlagHighlightable
	FlagDraggable
)

// Has reports whether any bit of flag is set.
func (f Flags) Has(flag Flags) bool { return f&flag != 0 }

// Set turns flag on.
func (f *Flags) Set(flag Flags) { *f |= flag }

// Clear turns flag off.
func (f *Flags) Clear(flag Flags) { *f &^= flag }

// RenderState is what the renderer needs beyond the transform.
type RenderState struct {
	Visible bool
}

// Entity is the payload stored in the context's slot store.
type Entity struct {
	DebugName string
	Model     assets.Handle

	Position mgl32.Vec3
	Rotation mgl32.Vec3
	Scale    float32

	// ParentOffset is the position relative to Spawner. Children follow
	// their spawner rigidly while it is alive.
	ParentOffset Opt[mgl32.Vec3]
	Velocity     Opt[mgl32.Vec3]
	PushDistance Opt[float32]
	LifeTime     Opt[float32]

	Flags   Flags
	Render  RenderState
	Spawner ecs.Ref
	Text    string

	ref    ecs.Ref
	traits ecs.TraitMask
}

// TraitMask exposes the trait membership bits to the registry.
func (e *Entity) TraitMask() *ecs.TraitMask {
	return &e.traits
}

// Ref returns the entity's own ref, assigned when it was added.
func (e *Entity) Ref() ecs.Ref {
	return e.ref
}

// Name returns the model name, or "???" for entities without one.
func (e *Entity) Name() string {
	if e.Model.Valid() {
		return e.Model.Name
	}
	return "???"
}

// Moving reports whether the entity has a velocity.
func (e *Entity) Moving() bool {
	return e.Velocity.IsSet()
}

// Transform builds scale * rotation * translation. A non-positive s uses the
// entity's own scale.
func (e *Entity) Transform(s float32) mgl32.Mat4 {
	if s <= 0 {
		s = e.Scale
	}
	rot := mgl32.AnglesToQuat(e.Rotation.X(), e.Rotation.Y(), e.Rotation.Z(), mgl32.XYZ).Mat4()
	return mgl32.Translate3D(e.Position.X(), e.Position.Y(), e.Position.Z()).
		Mul4(rot).
		Mul4(mgl32.Scale3D(s, s, s))
}
