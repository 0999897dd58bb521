// Package hexgrid lays out pointy-top hexagons in offset rows, odd rows
// shifted right by half a hex, scaled to fill a rectangle.
package hexgrid

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

const sqrt3 = 1.732050808

// Config is a grid of Rows x Cols hexes that must fit within Bounds.
type Config struct {
	Rows, Cols int
	Bounds     mgl32.Vec2
}

// Dims are the hex measurements for a Config.
type Dims struct {
	Radius       float32 // center to vertex
	Width        float32 // sqrt(3) * Radius
	Height       float32 // 2 * Radius
	HorizSpacing float32
	VertSpacing  float32
}

// DimsFor picks the largest radius that fits both the columns (plus the
// half-hex odd row offset) and the rows.
func DimsFor(cfg Config) Dims {
	if cfg.Rows <= 0 || cfg.Cols <= 0 {
		return Dims{}
	}
	fromWidth := cfg.Bounds.X() / (float32(cfg.Cols) + 0.5) / sqrt3
	fromHeight := cfg.Bounds.Y() / (0.5 + 1.5*float32(cfg.Rows))

	r := min(fromWidth, fromHeight)
	d := Dims{
		Radius: r,
		Width:  sqrt3 * r,
		Height: 2 * r,
	}
	d.HorizSpacing = d.Width
	d.VertSpacing = d.Height * 0.75
	return d
}

// Centers returns Rows*Cols hex centers, indexed by Index, with the grid
// centered in Bounds.
func Centers(cfg Config, d Dims) []mgl32.Vec2 {
	if cfg.Rows <= 0 || cfg.Cols <= 0 {
		return nil
	}

	gridW := float32(cfg.Cols-1)*d.HorizSpacing + d.Width
	if cfg.Rows > 1 {
		gridW += d.HorizSpacing / 2
	}
	gridH := float32(cfg.Rows-1)*d.VertSpacing + d.Height
	offX := (cfg.Bounds.X()-gridW)/2 + d.Width/2
	offY := (cfg.Bounds.Y()-gridH)/2 + d.Radius

	out := make([]mgl32.Vec2, cfg.Rows*cfg.Cols)
	for row := 0; row < cfg.Rows; row++ {
		for col := 0; col < cfg.Cols; col++ {
			x := offX + float32(col)*d.HorizSpacing
			if row%2 == 1 {
				x += d.HorizSpacing / 2
			}
			y := offY + float32(row)*d.VertSpacing
			out[Index(row, col, cfg.Cols)] = mgl32.Vec2{x, y}
		}
	}
	return out
}

// Index maps a row and column to a flat index.
func Index(row, col, cols int) int {
	return row*cols + col
}

// RowCol is the inverse of Index.
func RowCol(index, cols int) (row, col int) {
	return index / cols, index % cols
}

// Corners returns the six vertices of a pointy-top hex, starting at -30
// degrees and going counter-clockwise in a y-down frame.
func Corners(center mgl32.Vec2, radius float32) [6]mgl32.Vec2 {
	var pts [6]mgl32.Vec2
	for i := range pts {
		a := float64(mgl32.DegToRad(60*float32(i) - 30))
		pts[i] = mgl32.Vec2{
			center.X() + radius*float32(math.Cos(a)),
			center.Y() + radius*float32(math.Sin(a)),
		}
	}
	return pts
}

// Nearest returns the index of the center closest to p, or -1 for an empty
// grid.
func Nearest(centers []mgl32.Vec2, p mgl32.Vec2) int {
	best, bestDist := -1, float32(math.MaxFloat32)
	for i, c := range centers {
		if d := c.Sub(p).LenSqr(); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}
