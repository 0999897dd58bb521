package game

import (
	"cmp"
	"math"
	"slices"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/thingbox/ecs"
	"github.com/plus3/thingbox/geom"
)

// Input is one frame of host input.
type Input struct {
	Mouse mgl32.Vec2
	// Ray is the world-space pick ray under Mouse.
	Ray geom.Ray

	LeftPressed  bool
	LeftDown     bool
	LeftReleased bool

	// GUIWantsMouse is set while an overlay owns the mouse; picking still
	// runs but hover, select, drag and release are skipped.
	GUIWantsMouse bool

	// Move is the planar movement axis for wsad entities: X right, Y away
	// from the camera.
	Move mgl32.Vec2
}

// Phase names in execution order.
const (
	PhaseRotate    = "rotate"
	PhaseExpire    = "expire"
	PhasePick      = "pick"
	PhaseHover     = "hover"
	PhaseDrag      = "drag"
	PhaseIntegrate = "integrate"
	PhaseTraits    = "traits"
	PhaseCollide   = "collide"
	PhasePairs     = "pairs"
	PhaseRelease   = "release"
	PhaseRender    = "render"
)

func (c *Context) schedulePhases() {
	s := c.scheduler
	s.RegisterNamed(PhaseRotate, ecs.SystemFunc(c.rotatePhase))
	s.RegisterNamed(PhaseExpire, ecs.SystemFunc(c.expirePhase))
	s.RegisterNamed(PhasePick, ecs.SystemFunc(c.pickPhase))
	s.RegisterNamed(PhaseHover, ecs.SystemFunc(c.hoverPhase))
	s.RegisterNamed(PhaseDrag, ecs.SystemFunc(c.dragPhase))
	s.RegisterNamed(PhaseIntegrate, ecs.SystemFunc(c.integratePhase))
	s.RegisterNamed(PhaseTraits, ecs.SystemFunc(c.traitPhase))
	s.RegisterNamed(PhaseCollide, ecs.SystemFunc(c.collidePhase))
	s.RegisterNamed(PhasePairs, ecs.SystemFunc(c.pairPhase))
	s.RegisterNamed(PhaseRelease, ecs.SystemFunc(c.releasePhase))
	s.RegisterNamed(PhaseRender, ecs.SystemFunc(c.renderPhase))
}

// Update runs every phase once with dt seconds of elapsed time.
func (c *Context) Update(dt float64, in Input) {
	c.input = in
	c.scheduler.Once(dt)
}

func (c *Context) rotatePhase(*ecs.UpdateFrame) {
	c.frames.Advance()
	cur := c.frames.Current()
	cur.Mouse = c.input.Mouse
	cur.Ray = c.input.Ray
}

func (c *Context) expirePhase(frame *ecs.UpdateFrame) {
	dt := float32(frame.DeltaTime)
	for ref, e := range c.entities.All() {
		life, ok := e.LifeTime.Get()
		if !ok {
			continue
		}
		life -= dt
		e.LifeTime.Set(life)
		if life <= 0 {
			frame.Commands.Remove(ref)
		}
	}
}

func (c *Context) pickPhase(*ecs.UpdateFrame) {
	cur := c.frames.Current()
	for ref, e := range c.entities.All() {
		if !c.renderable(e) {
			continue
		}
		if d, hit := geom.RayBox(cur.Ray, c.WorldBounds(e)); hit {
			cur.AddHit(ref, d)
		}
	}
	slices.SortStableFunc(cur.UnderMouse, func(a, b RayHit) int {
		return cmp.Compare(a.Distance, b.Distance)
	})
}

func (c *Context) hoverPhase(*ecs.UpdateFrame) {
	if c.input.GUIWantsMouse {
		return
	}
	cur := c.frames.Current()
	for _, hit := range cur.UnderMouse {
		e, ok := c.entities.Lookup(hit.Ref)
		if ok && e.Flags.Has(FlagHighlightable) {
			cur.Hovered = append(cur.Hovered, hit.Ref)
			break
		}
	}
	if c.input.LeftPressed && len(cur.Hovered) > 0 {
		c.selected = cur.Hovered[0]
	}
}

func (c *Context) dragPhase(*ecs.UpdateFrame) {
	if c.input.GUIWantsMouse || !c.input.LeftDown {
		return
	}
	cur, last := c.frames.Current(), c.frames.Previous()
	for _, ref := range last.Dragged() {
		if c.entities.Valid(ref) {
			cur.Drag(ref)
		}
	}
	for _, hit := range cur.UnderMouse {
		if e, ok := c.entities.Lookup(hit.Ref); ok && e.Flags.Has(FlagDraggable) {
			cur.Drag(hit.Ref)
		}
	}
}

func (c *Context) integratePhase(frame *ecs.UpdateFrame) {
	cur := c.frames.Current()
	dt := float32(frame.DeltaTime)
	decay := float32(math.Exp(float64(-c.opts.Friction * dt)))

	for ref, e := range c.entities.All() {
		if cur.Dragging(ref) {
			if p, ok := geom.RayPlaneY(cur.Ray, e.Position.Y()); ok {
				c.UpdatePosition(ref, mgl32.Vec3{p.X(), e.Position.Y(), p.Z()})
			}
		} else if parent, ok := c.entities.Lookup(e.Spawner); ok {
			e.Position = parent.Position.Add(e.ParentOffset.Or(mgl32.Vec3{}))
			e.Rotation = parent.Rotation
		}

		if v, ok := e.Velocity.Get(); ok {
			e.Position = e.Position.Add(v.Mul(dt))
			v = v.Mul(decay)
			if v.Len() < c.opts.VelocityEpsilon {
				e.Velocity.Unset()
			} else {
				e.Velocity.Set(v)
			}
		}
	}
}

func (c *Context) traitPhase(frame *ecs.UpdateFrame) {
	c.traits.TickAll(c.entities.Values(), frame.DeltaTime)
}

func (c *Context) collidePhase(*ecs.UpdateFrame) {
	cur := c.frames.Current()

	type boxed struct {
		ref    ecs.Ref
		bounds geom.AABB
	}
	c.collidables.Execute()
	live := make([]boxed, 0, c.collidables.Len())
	for ref, e := range c.collidables.Iter() {
		live = append(live, boxed{ref, c.WorldBounds(e)})
	}

	for i, a := range live {
		for _, b := range live[i+1:] {
			if a.bounds.Overlaps(b.bounds) {
				cur.AddPair(a.ref, b.ref)
			}
		}
	}
}

func (c *Context) pairPhase(*ecs.UpdateFrame) {
	cur, last := c.frames.Current(), c.frames.Previous()
	for _, p := range cur.Pairs() {
		if last.HasPair(p.A, p.B) {
			continue
		}
		if !c.entities.Valid(p.A) || !c.entities.Valid(p.B) {
			continue
		}
		for _, fn := range c.pairObservers {
			fn(p.A, p.B)
		}
		c.resolvePair(p.A, p.B)
	}
}

func (c *Context) releasePhase(*ecs.UpdateFrame) {
	if c.input.GUIWantsMouse || !c.input.LeftReleased {
		return
	}
	if len(c.frames.Previous().Dragged()) == 0 {
		return
	}
	for _, hit := range c.frames.Current().UnderMouse {
		if e, ok := c.entities.Lookup(hit.Ref); ok && c.traits.Has(e, TraitWSAD) {
			c.CrossSlash(hit.Ref)
			return
		}
	}
}

func (c *Context) renderPhase(*ecs.UpdateFrame) {
	c.buildDrawList()
}
