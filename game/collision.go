package game

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/thingbox/ecs"
	"github.com/plus3/thingbox/geom"
)

// motion is an entity's velocity as it was before a contact was resolved.
type motion struct {
	moving   bool
	velocity mgl32.Vec3
}

func motionOf(e *Entity) motion {
	v, ok := e.Velocity.Get()
	return motion{moving: ok, velocity: v}
}

// resolvePair handles a newly formed contact between a and b. Each rule is
// evaluated in both directions, against the motion the two entities had
// before the contact, so the outcome does not depend on which one the
// broad phase found first.
func (c *Context) resolvePair(ra, rb ecs.Ref) {
	a, okA := c.entities.Lookup(ra)
	b, okB := c.entities.Lookup(rb)
	if !okA || !okB {
		return
	}

	// Children never collide with their spawner.
	if a.Spawner == rb || b.Spawner == ra {
		return
	}
	if c.traits.Has(a, TraitCrossSlashHitbox) && c.traits.Has(b, TraitCrossSlashHitbox) {
		return
	}

	before := map[ecs.Ref]motion{ra: motionOf(a), rb: motionOf(b)}
	pushed := make(map[ecs.Ref]bool, 2)

	for _, dir := range [2][2]ecs.Ref{{ra, rb}, {rb, ra}} {
		src, dst := dir[0], dir[1]
		s, okS := c.entities.Lookup(src)
		d, okD := c.entities.Lookup(dst)
		if !okS || !okD {
			return
		}
		if c.push(s, d) {
			pushed[dst] = true
		}
	}

	// A pickup removes one side, so nothing else applies to the pair.
	if c.pickup(a, b) || c.pickup(b, a) {
		return
	}

	for _, dir := range [2][2]ecs.Ref{{ra, rb}, {rb, ra}} {
		src, dst := dir[0], dir[1]
		s, okS := c.entities.Lookup(src)
		d, okD := c.entities.Lookup(dst)
		if !okS || !okD {
			return
		}
		c.slashHit(s, d)
		if !pushed[dst] {
			c.impact(s, d, before[src], before[dst])
		}
	}
}

// push gives a pushable dst a planar velocity away from a src that carries a
// push distance.
func (c *Context) push(src, dst *Entity) bool {
	dist, ok := src.PushDistance.Get()
	if !ok || !c.traits.Has(dst, TraitPushable) {
		return false
	}
	dir := geom.Planar(dst.Position.Sub(src.Position))
	l := dir.Len()
	if l <= 0.001 {
		return false
	}
	dst.Velocity = Some(dir.Mul(dist / l))
	return true
}

func (c *Context) pickup(src, dst *Entity) bool {
	if !c.traits.Has(src, TraitWSAD) || !c.traits.Has(dst, TraitPickup) {
		return false
	}
	ev := Event{Kind: EventPickup, Source: src.ref, Target: dst.ref, Name: dst.Name(), Position: dst.Position}
	c.emit(ev)
	c.SpawnLabel(ev.Message(), ecs.NilRef)
	c.Remove(dst.ref)
	return true
}

func (c *Context) slashHit(src, dst *Entity) {
	if !c.traits.Has(src, TraitCrossSlashHitbox) {
		return
	}
	ev := Event{Kind: EventSlashHit, Source: src.ref, Target: dst.ref, Name: dst.Name(), Position: dst.Position}
	c.emit(ev)
	c.SpawnLabel(ev.Message(), dst.ref)
}

// impact stops a mover that runs into a stationary entity, handing its
// velocity over if the target is pushable.
func (c *Context) impact(src, dst *Entity, srcBefore, dstBefore motion) {
	if !srcBefore.moving || dstBefore.moving {
		return
	}
	// A rule earlier in this resolution may already have stopped the mover.
	if !src.Moving() {
		return
	}
	ev := Event{
		Kind:     EventImpact,
		Source:   src.ref,
		Target:   dst.ref,
		Name:     dst.Name(),
		Speed:    srcBefore.velocity.Len(),
		Position: dst.Position,
	}
	c.emit(ev)
	c.SpawnLabel(ev.Message(), src.ref)

	if c.traits.Has(dst, TraitPushable) {
		dst.Velocity = Some(srcBefore.velocity)
	}
	src.Velocity.Unset()
}

// slashOffsets are the planar hitbox positions around a cross slash target.
var slashOffsets = []struct {
	dx, dz float32
	name   string
}{
	{0, 1, "north slash hitbox"},
	{0, -1, "south slash hitbox"},
	{1, 0, "east slash hitbox"},
	{-1, 0, "west slash hitbox"},
	{-2, 0, "west west slash hitbox"},
}

// CrossSlash spawns short-lived pushing hitboxes around target. It returns
// the hitbox refs; slots that could not be spawned are omitted.
func (c *Context) CrossSlash(target ecs.Ref) []ecs.Ref {
	t, ok := c.entities.Lookup(target)
	if !ok {
		return nil
	}

	c.logger.Info("cross slash", "target", target, "model", t.Name())
	ev := Event{Kind: EventSlash, Source: target, Target: target, Name: t.Name(), Position: t.Position}
	c.emit(ev)
	c.SpawnLabel(ev.Message(), target)

	model := NoModel
	if t.Model.Valid() {
		model = t.Model.Name
	}
	origin := t.Position

	refs := make([]ecs.Ref, 0, len(slashOffsets))
	for _, off := range slashOffsets {
		ref := c.Spawn(SpawnArgs{
			Model:        model,
			Pos:          mgl32.Vec3{origin.X() + off.dx, origin.Y(), origin.Z() + off.dz},
			LifeTime:     Some(c.opts.HitboxLife),
			Spawner:      target,
			DebugName:    off.name,
			PushDistance: Some(c.opts.PushDistance),
			Traits:       []string{TraitCrossSlashHitbox, TraitIsHitbox},
		})
		if !ref.IsNil() {
			refs = append(refs, ref)
		}
	}
	return refs
}
