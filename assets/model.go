package assets

import (
	"fmt"
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/thingbox/geom"
)

// Shape selects the primitive a model is generated from.
type Shape string

const (
	ShapeCube     Shape = "cube"
	ShapeSphere   Shape = "sphere"
	ShapeCylinder Shape = "cylinder"
	ShapePyramid  Shape = "pyramid"
	ShapePlane    Shape = "plane"
)

// Segment is one wireframe line in model space.
type Segment [2]mgl32.Vec3

// Model is a loaded, shareable renderable. Hosts draw its segments; the
// entity pipeline only reads its bounds.
type Model struct {
	Name     string
	Shape    Shape
	Color    color.RGBA
	Bounds   geom.AABB
	Segments []Segment
}

// ModelDef describes a primitive model in a manifest or config file.
type ModelDef struct {
	Name  string     `yaml:"name"`
	Shape Shape      `yaml:"shape"`
	Size  [3]float32 `yaml:"size"`
	Color [4]uint8   `yaml:"color"`
}

// Magenta is the placeholder color for defs that leave color unset.
var Magenta = color.RGBA{R: 255, G: 0, B: 255, A: 255}

const ringSegments = 16

// Build generates the model described by def.
func (def ModelDef) Build() (*Model, error) {
	if def.Name == "" {
		return nil, fmt.Errorf("model def: missing name")
	}

	size := mgl32.Vec3{def.Size[0], def.Size[1], def.Size[2]}
	if size == (mgl32.Vec3{}) {
		size = mgl32.Vec3{1, 1, 1}
	}
	half := size.Mul(0.5)

	c := color.RGBA{R: def.Color[0], G: def.Color[1], B: def.Color[2], A: def.Color[3]}
	if c == (color.RGBA{}) {
		c = Magenta
	}

	m := &Model{
		Name:   def.Name,
		Shape:  def.Shape,
		Color:  c,
		Bounds: geom.BoxAround(mgl32.Vec3{}, half),
	}

	switch def.Shape {
	case ShapeCube, "":
		m.Shape = ShapeCube
		m.Segments = boxSegments(m.Bounds)
	case ShapeSphere:
		m.Segments = append(m.Segments, ring(half, 0, 1)...)
		m.Segments = append(m.Segments, ring(half, 0, 2)...)
		m.Segments = append(m.Segments, ring(half, 1, 2)...)
	case ShapeCylinder:
		top := ring(half, 0, 2)
		bottom := ring(half, 0, 2)
		for i := range top {
			top[i][0][1], top[i][1][1] = half.Y(), half.Y()
			bottom[i][0][1], bottom[i][1][1] = -half.Y(), -half.Y()
		}
		m.Segments = append(top, bottom...)
		for _, a := range []float64{0, math.Pi / 2, math.Pi, 3 * math.Pi / 2} {
			x := half.X() * float32(math.Cos(a))
			z := half.Z() * float32(math.Sin(a))
			m.Segments = append(m.Segments, Segment{{x, -half.Y(), z}, {x, half.Y(), z}})
		}
	case ShapePyramid:
		apex := mgl32.Vec3{0, half.Y(), 0}
		base := [4]mgl32.Vec3{
			{-half.X(), -half.Y(), -half.Z()},
			{half.X(), -half.Y(), -half.Z()},
			{half.X(), -half.Y(), half.Z()},
			{-half.X(), -half.Y(), half.Z()},
		}
		for i := range base {
			m.Segments = append(m.Segments,
				Segment{base[i], base[(i+1)%4]},
				Segment{base[i], apex})
		}
	case ShapePlane:
		m.Bounds = geom.AABB{
			Min: mgl32.Vec3{-half.X(), 0, -half.Z()},
			Max: mgl32.Vec3{half.X(), 0, half.Z()},
		}
		corners := m.Bounds.Corners()
		for i := 0; i < 4; i++ {
			m.Segments = append(m.Segments, Segment{corners[i], corners[(i+1)%4]})
		}
	default:
		return nil, fmt.Errorf("model %q: unknown shape %q", def.Name, def.Shape)
	}

	return m, nil
}

func boxSegments(b geom.AABB) []Segment {
	corners := b.Corners()
	segs := make([]Segment, 0, len(geom.Edges))
	for _, e := range geom.Edges {
		segs = append(segs, Segment{corners[e[0]], corners[e[1]]})
	}
	return segs
}

// ring traces an ellipse in the plane spanned by axes a and b.
func ring(half mgl32.Vec3, a, b int) []Segment {
	segs := make([]Segment, 0, ringSegments)
	point := func(i int) mgl32.Vec3 {
		theta := 2 * math.Pi * float64(i) / ringSegments
		var p mgl32.Vec3
		p[a] = half[a] * float32(math.Cos(theta))
		p[b] = half[b] * float32(math.Sin(theta))
		return p
	}
	for i := 0; i < ringSegments; i++ {
		segs = append(segs, Segment{point(i), point(i + 1)})
	}
	return segs
}
