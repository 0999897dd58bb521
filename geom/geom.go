// Package geom holds the small amount of 3D geometry the entity pipeline
// needs: axis-aligned boxes, rays, and the overlap and slab tests between
// them.
package geom

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// AABB is an axis-aligned bounding box. Min must not exceed Max on any axis.
type AABB struct {
	Min, Max mgl32.Vec3
}

// UnitBox is the model-local bounds used for entities without a model.
var UnitBox = AABB{
	Min: mgl32.Vec3{-0.5, -0.5, -0.5},
	Max: mgl32.Vec3{0.5, 0.5, 0.5},
}

// BoxAround returns a box of the given half extents centered on c.
func BoxAround(c, half mgl32.Vec3) AABB {
	return AABB{Min: c.Sub(half), Max: c.Add(half)}
}

// Overlaps reports whether the two boxes intersect. Touching faces count.
func (b AABB) Overlaps(o AABB) bool {
	return b.Min.X() <= o.Max.X() && b.Max.X() >= o.Min.X() &&
		b.Min.Y() <= o.Max.Y() && b.Max.Y() >= o.Min.Y() &&
		b.Min.Z() <= o.Max.Z() && b.Max.Z() >= o.Min.Z()
}

// Contains reports whether p lies inside or on the box.
func (b AABB) Contains(p mgl32.Vec3) bool {
	for i := 0; i < 3; i++ {
		if p[i] < b.Min[i] || p[i] > b.Max[i] {
			return false
		}
	}
	return true
}

// Scale multiplies both corners by s. For model-local boxes this scales
// about the model origin.
func (b AABB) Scale(s float32) AABB {
	return AABB{Min: b.Min.Mul(s), Max: b.Max.Mul(s)}
}

// Translate moves the box by d.
func (b AABB) Translate(d mgl32.Vec3) AABB {
	return AABB{Min: b.Min.Add(d), Max: b.Max.Add(d)}
}

// Center returns the midpoint of the box.
func (b AABB) Center() mgl32.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Size returns the extent of the box on each axis.
func (b AABB) Size() mgl32.Vec3 {
	return b.Max.Sub(b.Min)
}

// Corners returns the eight corners, bottom face first.
func (b AABB) Corners() [8]mgl32.Vec3 {
	lo, hi := b.Min, b.Max
	return [8]mgl32.Vec3{
		{lo.X(), lo.Y(), lo.Z()},
		{hi.X(), lo.Y(), lo.Z()},
		{hi.X(), lo.Y(), hi.Z()},
		{lo.X(), lo.Y(), hi.Z()},
		{lo.X(), hi.Y(), lo.Z()},
		{hi.X(), hi.Y(), lo.Z()},
		{hi.X(), hi.Y(), hi.Z()},
		{lo.X(), hi.Y(), hi.Z()},
	}
}

// Edges lists corner index pairs forming the 12 box edges, for wireframes.
var Edges = [12][2]int{
	{0, 1}, {1, 2}, {2, 3}, {3, 0},
	{4, 5}, {5, 6}, {6, 7}, {7, 4},
	{0, 4}, {1, 5}, {2, 6}, {3, 7},
}

func (b AABB) String() string {
	return fmt.Sprintf("[%.2f %.2f %.2f]-[%.2f %.2f %.2f]",
		b.Min.X(), b.Min.Y(), b.Min.Z(), b.Max.X(), b.Max.Y(), b.Max.Z())
}

// Ray is a half-line. Dir should be normalized for distances to be in world
// units.
type Ray struct {
	Origin, Dir mgl32.Vec3
}

// NewRay builds a ray from origin towards target.
func NewRay(origin, target mgl32.Vec3) Ray {
	return Ray{Origin: origin, Dir: target.Sub(origin).Normalize()}
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float32) mgl32.Vec3 {
	return r.Origin.Add(r.Dir.Mul(t))
}

// RayBox intersects r with b using the slab method. It returns the distance
// to the nearest intersection in front of the origin, or 0 when the origin
// is inside the box.
func RayBox(r Ray, b AABB) (float32, bool) {
	tmin := float32(math.Inf(-1))
	tmax := float32(math.Inf(1))

	for i := 0; i < 3; i++ {
		if r.Dir[i] == 0 {
			if r.Origin[i] < b.Min[i] || r.Origin[i] > b.Max[i] {
				return 0, false
			}
			continue
		}
		inv := 1 / r.Dir[i]
		t1 := (b.Min[i] - r.Origin[i]) * inv
		t2 := (b.Max[i] - r.Origin[i]) * inv
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = max(tmin, t1)
		tmax = min(tmax, t2)
		if tmin > tmax {
			return 0, false
		}
	}

	if tmax < 0 {
		return 0, false
	}
	if tmin < 0 {
		return 0, true
	}
	return tmin, true
}

// RayPlaneY intersects r with the horizontal plane at height y.
func RayPlaneY(r Ray, y float32) (mgl32.Vec3, bool) {
	if mgl32.Abs(r.Dir.Y()) < 1e-6 {
		return mgl32.Vec3{}, false
	}
	t := (y - r.Origin.Y()) / r.Dir.Y()
	if t < 0 {
		return mgl32.Vec3{}, false
	}
	return r.At(t), true
}

// Planar zeroes the Y component.
func Planar(v mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{v.X(), 0, v.Z()}
}
