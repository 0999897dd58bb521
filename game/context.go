// Package game is the entity demo core: an entity slot store, the built-in
// traits, and a fixed-order per-frame pipeline that picks, drags, moves,
// collides and submits entities for drawing.
//
// A Context is single-threaded. Hosts call Update once per frame with that
// frame's Input, then read the DrawList.
package game

import (
	"image/color"
	"log/slog"

	"github.com/plus3/thingbox/assets"
	"github.com/plus3/thingbox/ecs"
	"github.com/plus3/thingbox/geom"
)

// ModelSource resolves model names to handles and bounds. *assets.Store
// implements it.
type ModelSource interface {
	Instance(name string) assets.Handle
	Bounds(h assets.Handle) (geom.AABB, bool)
}

// Options tunes a Context. Zero fields take the DefaultOptions value.
type Options struct {
	Capacity  int
	MaxTraits int

	// Friction is the exponential velocity decay rate per second.
	Friction        float32
	VelocityEpsilon float32
	MoveSpeed       float32

	LabelFade   float32
	LabelHeight float32

	PushDistance float32
	HitboxLife   float32

	HighlightColor color.RGBA
	SelectionColor color.RGBA

	Logger *slog.Logger
}

// DefaultOptions returns the stock tuning.
func DefaultOptions() Options {
	return Options{
		Capacity:        1000,
		MaxTraits:       16,
		Friction:        3,
		VelocityEpsilon: 0.05,
		MoveSpeed:       4,
		LabelFade:       5,
		LabelHeight:     1.5,
		PushDistance:    1,
		HitboxLife:      1,
		HighlightColor:  color.RGBA{R: 253, G: 249, B: 0, A: 255},
		SelectionColor:  color.RGBA{R: 255, G: 161, B: 0, A: 255},
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Capacity <= 0 {
		o.Capacity = d.Capacity
	}
	if o.MaxTraits <= 0 {
		o.MaxTraits = d.MaxTraits
	}
	if o.Friction <= 0 {
		o.Friction = d.Friction
	}
	if o.VelocityEpsilon <= 0 {
		o.VelocityEpsilon = d.VelocityEpsilon
	}
	if o.MoveSpeed <= 0 {
		o.MoveSpeed = d.MoveSpeed
	}
	if o.LabelFade <= 0 {
		o.LabelFade = d.LabelFade
	}
	if o.LabelHeight == 0 {
		o.LabelHeight = d.LabelHeight
	}
	if o.PushDistance <= 0 {
		o.PushDistance = d.PushDistance
	}
	if o.HitboxLife <= 0 {
		o.HitboxLife = d.HitboxLife
	}
	if o.HighlightColor == (color.RGBA{}) {
		o.HighlightColor = d.HighlightColor
	}
	if o.SelectionColor == (color.RGBA{}) {
		o.SelectionColor = d.SelectionColor
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	return o
}

// Context owns the entities, the trait registry and the frame pipeline.
type Context struct {
	opts   Options
	logger *slog.Logger
	models ModelSource

	entities  *ecs.SlotStore[Entity]
	traits    *ecs.TraitRegistry[*Entity]
	scheduler *ecs.Scheduler
	frames    *FrameBuffer
	draw      *DrawList

	selected ecs.Ref
	input    Input

	notifiers     []Notifier
	pairObservers []func(a, b ecs.Ref)
	collidables   *ecs.Query[Entity]
}

// New creates a context with the built-in traits registered and the
// pipeline phases scheduled.
func New(models ModelSource, opts Options) *Context {
	opts = opts.withDefaults()

	c := &Context{
		opts:     opts,
		logger:   opts.Logger,
		models:   models,
		entities: ecs.NewSlotStore[Entity](opts.Capacity),
		traits:   ecs.NewTraitRegistry[*Entity](opts.MaxTraits),
		frames:   NewFrameBuffer(),
		draw:     &DrawList{},
	}
	c.scheduler = ecs.NewScheduler(func(ref ecs.Ref) { c.Remove(ref) })
	c.collidables = ecs.NewQuery(c.entities, func(_ ecs.Ref, e *Entity) bool {
		return e.Flags.Has(FlagCollidable)
	})

	c.registerBuiltinTraits()
	c.schedulePhases()

	return c
}

// Options returns the options the context was built with, defaults applied.
func (c *Context) Options() Options { return c.opts }

// Logger returns the context logger.
func (c *Context) Logger() *slog.Logger { return c.logger }

// Models returns the model source entities are spawned from.
func (c *Context) Models() ModelSource { return c.models }

// Entities returns the entity store.
func (c *Context) Entities() *ecs.SlotStore[Entity] { return c.entities }

// Traits returns the trait registry.
func (c *Context) Traits() *ecs.TraitRegistry[*Entity] { return c.traits }

// Scheduler returns the scheduler that runs the frame phases.
func (c *Context) Scheduler() *ecs.Scheduler { return c.scheduler }

// Frames returns the double-buffered per-frame state.
func (c *Context) Frames() *FrameBuffer { return c.frames }

// DrawList returns the draw list filled by the last render phase.
func (c *Context) DrawList() *DrawList { return c.draw }

// Count returns the number of live entities.
func (c *Context) Count() int { return c.entities.Len() }

// Get returns the entity for ref, or false if ref is stale.
func (c *Context) Get(ref ecs.Ref) (*Entity, bool) { return c.entities.Lookup(ref) }

// Valid reports whether ref names a live entity.
func (c *Context) Valid(ref ecs.Ref) bool { return c.entities.Valid(ref) }

// AddNotifier subscribes n to every event the context emits.
func (c *Context) AddNotifier(n Notifier) { c.notifiers = append(c.notifiers, n) }

// OnPairEnter registers fn to run once for every newly overlapping pair,
// before the pair is resolved.
func (c *Context) OnPairEnter(fn func(a, b ecs.Ref)) {
	c.pairObservers = append(c.pairObservers, fn)
}

// Selected returns the selected entity, or NilRef.
func (c *Context) Selected() ecs.Ref {
	if !c.entities.Valid(c.selected) {
		return ecs.NilRef
	}
	return c.selected
}

// Select makes ref the selection. Selecting an invalid ref clears it.
func (c *Context) Select(ref ecs.Ref) {
	if !c.entities.Valid(ref) {
		ref = ecs.NilRef
	}
	c.selected = ref
}

// Hovered returns the first hovered entity of the current frame, or NilRef.
func (c *Context) Hovered() ecs.Ref {
	hovered := c.frames.Current().Hovered
	if len(hovered) == 0 {
		return ecs.NilRef
	}
	return hovered[0]
}

// Remove deletes an entity, clearing the selection if it pointed at it.
// Stale and nil refs are ignored.
func (c *Context) Remove(ref ecs.Ref) bool {
	if ref == c.selected {
		c.selected = ecs.NilRef
	}
	if !c.entities.Remove(ref) {
		return false
	}
	c.logger.Debug("entity removed", "ref", ref)
	return true
}

// Clear removes every entity and the selection.
func (c *Context) Clear() {
	c.entities.Clear()
	c.selected = ecs.NilRef
}

// WorldBounds returns the model bounds scaled and moved to the entity's
// transform. Entities without a loaded model use a unit cube.
func (c *Context) WorldBounds(e *Entity) geom.AABB {
	local := geom.UnitBox
	if e.Model.Valid() && c.models != nil {
		if b, ok := c.models.Bounds(e.Model); ok {
			local = b
		}
	}
	return local.Scale(e.Scale).Translate(e.Position)
}

// renderable reports whether e takes part in picking and model drawing.
func (c *Context) renderable(e *Entity) bool {
	if !e.Render.Visible {
		return false
	}
	return e.Model.Valid() || c.traits.Has(e, TraitNoModel)
}

func (c *Context) emit(ev Event) {
	c.logger.Debug("event", "kind", ev.Kind, "source", ev.Source, "target", ev.Target, "msg", ev.Message())
	for _, n := range c.notifiers {
		n.Notify(ev)
	}
}
