package geom_test

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/thingbox/geom"
	"github.com/stretchr/testify/assert"
)

func TestOverlaps(t *testing.T) {
	a := geom.BoxAround(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{1, 1, 1})

	cases := []struct {
		name string
		b    geom.AABB
		want bool
	}{
		{"same", a, true},
		{"partial", geom.BoxAround(mgl32.Vec3{1.5, 0, 0}, mgl32.Vec3{1, 1, 1}), true},
		{"touching", geom.BoxAround(mgl32.Vec3{2, 0, 0}, mgl32.Vec3{1, 1, 1}), true},
		{"apart x", geom.BoxAround(mgl32.Vec3{2.5, 0, 0}, mgl32.Vec3{1, 1, 1}), false},
		{"apart y", geom.BoxAround(mgl32.Vec3{0, 3, 0}, mgl32.Vec3{1, 1, 1}), false},
		{"apart z", geom.BoxAround(mgl32.Vec3{0, 0, -3}, mgl32.Vec3{1, 1, 1}), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, a.Overlaps(tc.b))
			assert.Equal(t, tc.want, tc.b.Overlaps(a))
		})
	}
}

func TestScaleTranslate(t *testing.T) {
	b := geom.UnitBox.Scale(2).Translate(mgl32.Vec3{10, 0, 0})
	assert.Equal(t, mgl32.Vec3{9, -1, -1}, b.Min)
	assert.Equal(t, mgl32.Vec3{11, 1, 1}, b.Max)
	assert.Equal(t, mgl32.Vec3{10, 0, 0}, b.Center())
	assert.Equal(t, mgl32.Vec3{2, 2, 2}, b.Size())
	assert.True(t, b.Contains(mgl32.Vec3{10.5, 0, 0}))
	assert.False(t, b.Contains(mgl32.Vec3{8, 0, 0}))
}

func TestRayBox(t *testing.T) {
	box := geom.UnitBox.Translate(mgl32.Vec3{0, 0, -5})

	t.Run("hit", func(t *testing.T) {
		d, ok := geom.RayBox(geom.Ray{Dir: mgl32.Vec3{0, 0, -1}}, box)
		assert.True(t, ok)
		assert.InDelta(t, 4.5, d, 1e-5)
	})

	t.Run("miss", func(t *testing.T) {
		_, ok := geom.RayBox(geom.Ray{Dir: mgl32.Vec3{0, 1, 0}}, box)
		assert.False(t, ok)
	})

	t.Run("behind", func(t *testing.T) {
		_, ok := geom.RayBox(geom.Ray{Dir: mgl32.Vec3{0, 0, 1}}, box)
		assert.False(t, ok)
	})

	t.Run("inside", func(t *testing.T) {
		d, ok := geom.RayBox(geom.Ray{Origin: mgl32.Vec3{0, 0, -5}, Dir: mgl32.Vec3{1, 0, 0}}, box)
		assert.True(t, ok)
		assert.Equal(t, float32(0), d)
	})

	t.Run("axis parallel outside slab", func(t *testing.T) {
		_, ok := geom.RayBox(geom.Ray{Origin: mgl32.Vec3{2, 0, 0}, Dir: mgl32.Vec3{0, 0, -1}}, box)
		assert.False(t, ok)
	})

	t.Run("diagonal", func(t *testing.T) {
		r := geom.NewRay(mgl32.Vec3{5, 5, -5}, mgl32.Vec3{0, 0, -5})
		d, ok := geom.RayBox(r, box)
		assert.True(t, ok)
		assert.InDelta(t, 4.5*1.41421356, d, 1e-4)
	})
}

func TestRayPlaneY(t *testing.T) {
	r := geom.NewRay(mgl32.Vec3{0, 10, 0}, mgl32.Vec3{5, 0, 5})
	p, ok := geom.RayPlaneY(r, 0)
	assert.True(t, ok)
	assert.InDelta(t, 5, p.X(), 1e-4)
	assert.InDelta(t, 0, p.Y(), 1e-4)
	assert.InDelta(t, 5, p.Z(), 1e-4)

	_, ok = geom.RayPlaneY(geom.Ray{Dir: mgl32.Vec3{1, 0, 0}}, 0)
	assert.False(t, ok)

	_, ok = geom.RayPlaneY(r, 20)
	assert.False(t, ok)
}

func TestCorners(t *testing.T) {
	c := geom.UnitBox.Corners()
	for _, e := range geom.Edges {
		// Every edge changes exactly one axis.
		diff := 0
		for i := 0; i < 3; i++ {
			if c[e[0]][i] != c[e[1]][i] {
				diff++
			}
		}
		assert.Equal(t, 1, diff)
	}
}
