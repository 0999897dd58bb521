package game

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/thingbox/ecs"
)

// EventKind identifies a gameplay notification.
type EventKind int

const (
	EventPickup EventKind = iota
	EventSlashHit
	EventImpact
	EventSlash
)

func (k EventKind) String() string {
	switch k {
	case EventPickup:
		return "pickup"
	case EventSlashHit:
		return "slash-hit"
	case EventImpact:
		return "impact"
	case EventSlash:
		return "slash"
	}
	return fmt.Sprintf("event(%d)", int(k))
}

// Event is emitted by pair resolution and the cross slash.
type Event struct {
	Kind EventKind
	// Source acted on Target. For EventSlash both are the slashing entity.
	Source, Target ecs.Ref
	// Name is the target's model name.
	Name     string
	Speed    float32
	Position mgl32.Vec3
}

// Message is the human-readable line shown in the console and in labels.
func (e Event) Message() string {
	switch e.Kind {
	case EventPickup:
		return "Picked up " + e.Name
	case EventSlashHit:
		return "cross slash hit " + e.Name
	case EventImpact:
		return fmt.Sprintf("hit %s (%.1f)", e.Name, e.Speed)
	case EventSlash:
		return fmt.Sprintf("cross slash at (%.1f, %.1f, %.1f)", e.Position.X(), e.Position.Y(), e.Position.Z())
	}
	return e.Kind.String()
}

// Notifier receives gameplay events. Notify runs on the frame loop and must
// not block.
type Notifier interface {
	Notify(Event)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(Event)

func (f NotifierFunc) Notify(e Event) { f(e) }
