package main

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/thingbox/geom"
)

// View maps the XZ plane onto terminal cells, looking straight down with -Z
// at the top. Cells are about twice as tall as wide, so one world unit spans
// 2*Zoom columns and Zoom rows.
type View struct {
	Cols, Rows int
	Center     mgl32.Vec2 // world X, Z at the middle cell
	Zoom       float32
}

// Cell returns the cell containing world point p.
func (v View) Cell(p mgl32.Vec3) (col, row int) {
	col = v.Cols/2 + int(math.Floor(float64((p.X()-v.Center.X())*2*v.Zoom)))
	row = v.Rows/2 + int(math.Floor(float64((p.Z()-v.Center.Y())*v.Zoom)))
	return col, row
}

// World returns the world XZ point at the middle of a cell.
func (v View) World(col, row int) mgl32.Vec3 {
	x := (float32(col-v.Cols/2)+0.5)/(2*v.Zoom) + v.Center.X()
	z := (float32(row-v.Rows/2)+0.5)/v.Zoom + v.Center.Y()
	return mgl32.Vec3{x, 0, z}
}

// Ray is the downward pick ray through a cell.
func (v View) Ray(col, row int) geom.Ray {
	p := v.World(col, row)
	return geom.Ray{Origin: mgl32.Vec3{p.X(), 50, p.Z()}, Dir: mgl32.Vec3{0, -1, 0}}
}

// Visible reports whether a cell is on screen.
func (v View) Visible(col, row int) bool {
	return col >= 0 && row >= 0 && col < v.Cols && row < v.Rows
}

// Footprint returns the cell rectangle covered by a box's XZ extent.
func (v View) Footprint(b geom.AABB) (c0, r0, c1, r1 int) {
	c0, r0 = v.Cell(b.Min)
	c1, r1 = v.Cell(b.Max)
	return
}
