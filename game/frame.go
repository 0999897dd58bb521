package game

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/kamstrup/intmap"
	"github.com/plus3/thingbox/ecs"
	"github.com/plus3/thingbox/geom"
)

// RayHit is an entity under the cursor and its distance along the pick ray.
type RayHit struct {
	Ref      ecs.Ref
	Distance float32
}

// Pair is an ordered pair of entity refs. The frame's pair set stores both
// orderings of every overlapping pair.
type Pair struct {
	A, B ecs.Ref
}

// Swap returns the pair with A and B exchanged.
func (p Pair) Swap() Pair {
	return Pair{A: p.B, B: p.A}
}

// FrameContext is the scratch state of one frame.
type FrameContext struct {
	Mouse mgl32.Vec2
	Ray   geom.Ray

	// UnderMouse is sorted by ascending distance.
	UnderMouse []RayHit
	Hovered    []ecs.Ref

	pairs     map[Pair]struct{}
	pairOrder []Pair

	dragging  *intmap.Map[uint64, ecs.Ref]
	dragOrder []ecs.Ref

	hits *intmap.Map[uint64, float32]
}

func newFrameContext() *FrameContext {
	return &FrameContext{
		pairs:    make(map[Pair]struct{}),
		dragging: intmap.New[uint64, ecs.Ref](8),
		hits:     intmap.New[uint64, float32](16),
	}
}

func (f *FrameContext) reset() {
	f.Mouse = mgl32.Vec2{}
	f.Ray = geom.Ray{}
	f.UnderMouse = f.UnderMouse[:0]
	f.Hovered = f.Hovered[:0]
	clear(f.pairs)
	f.pairOrder = f.pairOrder[:0]
	f.dragging.Clear()
	f.dragOrder = f.dragOrder[:0]
	f.hits.Clear()
}

// AddHit records an entity under the cursor. Call SortHits once all hits are
// in.
func (f *FrameContext) AddHit(ref ecs.Ref, distance float32) {
	f.UnderMouse = append(f.UnderMouse, RayHit{Ref: ref, Distance: distance})
	f.hits.Put(ref.Key(), distance)
}

// HitDistance reports whether ref was under the cursor this frame.
func (f *FrameContext) HitDistance(ref ecs.Ref) (float32, bool) {
	return f.hits.Get(ref.Key())
}

// AddPair inserts both orderings of an overlapping pair.
func (f *FrameContext) AddPair(a, b ecs.Ref) {
	p := Pair{A: a, B: b}
	if _, ok := f.pairs[p]; ok {
		return
	}
	f.pairs[p] = struct{}{}
	f.pairs[p.Swap()] = struct{}{}
	f.pairOrder = append(f.pairOrder, p)
}

// HasPair reports whether a and b overlapped this frame, in either order.
func (f *FrameContext) HasPair(a, b ecs.Ref) bool {
	_, ok := f.pairs[Pair{A: a, B: b}]
	return ok
}

// Pairs returns each overlapping unordered pair once, in discovery order.
func (f *FrameContext) Pairs() []Pair {
	return f.pairOrder
}

// PairCount returns the size of the symmetric pair set.
func (f *FrameContext) PairCount() int {
	return len(f.pairs)
}

// Drag marks ref as dragged this frame.
func (f *FrameContext) Drag(ref ecs.Ref) {
	if f.dragging.Has(ref.Key()) {
		return
	}
	f.dragging.Put(ref.Key(), ref)
	f.dragOrder = append(f.dragOrder, ref)
}

// Dragging reports whether ref is dragged this frame.
func (f *FrameContext) Dragging(ref ecs.Ref) bool {
	return f.dragging.Has(ref.Key())
}

// Dragged returns the dragged refs in the order they were picked up.
func (f *FrameContext) Dragged() []ecs.Ref {
	return f.dragOrder
}

// FrameBuffer holds the current and previous frame. Advance is the only way
// state crosses a frame boundary.
type FrameBuffer struct {
	current  *FrameContext
	previous *FrameContext
}

// NewFrameBuffer returns a buffer with two empty frames.
func NewFrameBuffer() *FrameBuffer {
	return &FrameBuffer{
		current:  newFrameContext(),
		previous: newFrameContext(),
	}
}

// Advance moves current to previous and starts an empty current frame. The
// old previous frame's storage is reused.
func (b *FrameBuffer) Advance() {
	b.previous, b.current = b.current, b.previous
	b.current.reset()
}

// Current returns the frame being built.
func (b *FrameBuffer) Current() *FrameContext {
	return b.current
}

// Previous returns last frame's snapshot. Callers must not modify it.
func (b *FrameBuffer) Previous() *FrameContext {
	return b.previous
}
