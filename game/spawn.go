package game

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/thingbox/ecs"
)

// SpawnArgs describes a new entity.
type SpawnArgs struct {
	// Model is the model name; NoModel spawns an entity drawn as a unit cube.
	Model        string
	Pos          mgl32.Vec3
	Scale        float32 // zero means 1
	LifeTime     Opt[float32]
	Spawner      ecs.Ref
	DebugName    string
	PushDistance Opt[float32]
	// Flags are added to the default collidable and highlightable flags.
	Flags  Flags
	Traits []string
}

// NoModel is the model name for entities without a renderable model.
const NoModel = TraitNoModel

// Spawn adds an entity. It returns a nil ref if the model is unknown or the
// store is full.
func (c *Context) Spawn(args SpawnArgs) ecs.Ref {
	handle := c.models.Instance(args.Model)
	if !handle.Valid() && args.Model != NoModel {
		c.logger.Debug("spawn failed: unknown model", "model", args.Model)
		return ecs.NilRef
	}

	scale := args.Scale
	if scale == 0 {
		scale = 1
	}
	name := args.DebugName
	if name == "" {
		name = "default_name"
	}

	ent := Entity{
		DebugName:    name,
		Model:        handle,
		Position:     args.Pos,
		Scale:        scale,
		LifeTime:     args.LifeTime,
		PushDistance: args.PushDistance,
		Spawner:      args.Spawner,
		Flags:        FlagCollidable | FlagHighlightable | args.Flags,
		Render:       RenderState{Visible: true},
	}
	if parent, ok := c.entities.Lookup(args.Spawner); ok {
		ent.ParentOffset = Some(args.Pos.Sub(parent.Position))
	}

	ref := c.entities.Add(ent)
	if ref.IsNil() {
		c.logger.Warn("spawn failed: entity store full", "model", args.Model, "capacity", c.entities.Cap())
		return ref
	}

	e := c.entities.Get(ref)
	e.ref = ref
	if args.Model == NoModel {
		c.traits.Apply(e, TraitNoModel)
	}
	for _, trait := range args.Traits {
		c.traits.Apply(e, trait)
	}

	c.logger.Debug("entity spawned", "ref", ref, "model", args.Model, "name", name)
	return ref
}

// SpawnLabel adds a floating text entity that fades out over the configured
// label lifetime. With a live spawner it follows the spawner, otherwise it
// floats at the label height above the origin.
func (c *Context) SpawnLabel(text string, spawner ecs.Ref) ecs.Ref {
	offset := mgl32.Vec3{0, c.opts.LabelHeight, 0}

	ent := Entity{
		DebugName:    "log_text",
		Text:         text,
		Position:     offset,
		Scale:        1,
		LifeTime:     Some(c.opts.LabelFade),
		Spawner:      spawner,
		ParentOffset: Some(offset),
		Render:       RenderState{Visible: true},
	}
	if parent, ok := c.entities.Lookup(spawner); ok {
		ent.Position = parent.Position.Add(offset)
	}

	ref := c.entities.Add(ent)
	if ref.IsNil() {
		c.logger.Warn("label dropped: entity store full", "text", text)
		return ref
	}
	e := c.entities.Get(ref)
	e.ref = ref
	c.traits.Apply(e, TraitIsText)
	return ref
}

// LabelAlpha is the fade factor of a text entity, 1 when fresh and 0 when
// expired.
func (c *Context) LabelAlpha(e *Entity) float32 {
	life := e.LifeTime.Or(c.opts.LabelFade)
	return mgl32.Clamp(life/c.opts.LabelFade, 0, 1)
}

// UpdatePosition moves an entity, snapping X and Z to whole units for grid
// aligned entities and keeping the offset to a live spawner current.
func (c *Context) UpdatePosition(ref ecs.Ref, pos mgl32.Vec3) {
	e, ok := c.entities.Lookup(ref)
	if !ok {
		return
	}

	if c.traits.Has(e, TraitGridAligned) {
		pos[0] = float32(math.Round(float64(pos[0])))
		pos[2] = float32(math.Round(float64(pos[2])))
	}

	if parent, ok := c.entities.Lookup(e.Spawner); ok {
		e.ParentOffset = Some(pos.Sub(parent.Position))
	}

	e.Position = pos
}

// SetVelocity gives ref a velocity. A zero vector clears it.
func (c *Context) SetVelocity(ref ecs.Ref, v mgl32.Vec3) {
	e, ok := c.entities.Lookup(ref)
	if !ok {
		return
	}
	if v.Len() == 0 {
		e.Velocity.Unset()
		return
	}
	e.Velocity = Some(v)
}
