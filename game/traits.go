package game

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Built-in trait names.
const (
	TraitWSAD             = "wsad"
	TraitPickup           = "pickup"
	TraitCrossSlashHitbox = "cross_slash_hitbox"
	TraitIsHitbox         = "is_hitbox"
	TraitIsText           = "is_text"
	TraitGridAligned      = "is_grid_aligned"
	TraitPushable         = "is_pushable"
	TraitNoModel          = "no-model"
	TraitBillboard        = "is_billboard"
)

// BuiltinTraits lists the traits every Context registers, in slot order.
var BuiltinTraits = []string{
	TraitWSAD, TraitPickup, TraitCrossSlashHitbox, TraitIsHitbox, TraitIsText,
	TraitGridAligned, TraitPushable, TraitNoModel, TraitBillboard,
}

// spinRate is the pickup idle rotation in radians per second.
const spinRate = 1.5

func (c *Context) registerBuiltinTraits() {
	c.traits.Register(TraitWSAD, wsadInit, c.wsadUpdate)
	c.traits.Register(TraitPickup, spinInit, spinUpdate)
	c.traits.Register(TraitCrossSlashHitbox, spinInit, spinUpdate)
	c.traits.Register(TraitIsHitbox, nil, nil)
	c.traits.Register(TraitIsText, nil, nil)
	c.traits.Register(TraitGridAligned, nil, nil)
	c.traits.Register(TraitPushable, nil, nil)
	c.traits.Register(TraitNoModel, nil, nil)
	c.traits.Register(TraitBillboard, nil, nil)
}

// wsad entities are player controlled and can be dragged around.
func wsadInit(e *Entity) {
	e.Flags.Set(FlagDraggable)
}

func (c *Context) wsadUpdate(e *Entity, dt float64) {
	move := c.input.Move
	if move.Len() == 0 {
		return
	}
	if move.Len() > 1 {
		move = move.Normalize()
	}
	step := c.opts.MoveSpeed * float32(dt)
	e.Position = e.Position.Add(mgl32.Vec3{move.X() * step, 0, -move.Y() * step})
}

func spinInit(e *Entity) {
	e.Flags.Set(FlagHighlightable)
}

func spinUpdate(e *Entity, dt float64) {
	e.Rotation[1] = float32(math.Mod(float64(e.Rotation[1])+spinRate*dt, 2*math.Pi))
}
