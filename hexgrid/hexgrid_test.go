package hexgrid_test

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/thingbox/hexgrid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDimsFor(t *testing.T) {
	t.Run("height bound", func(t *testing.T) {
		d := hexgrid.DimsFor(hexgrid.Config{Rows: 2, Cols: 2, Bounds: mgl32.Vec2{100, 7}})
		// 7 / (0.5 + 3) = 2 is smaller than 100 / 2.5 / sqrt3.
		assert.InDelta(t, 2, d.Radius, 1e-5)
		assert.InDelta(t, 4, d.Height, 1e-5)
		assert.InDelta(t, 3, d.VertSpacing, 1e-5)
		assert.InDelta(t, 3.4641, d.Width, 1e-3)
		assert.Equal(t, d.Width, d.HorizSpacing)
	})

	t.Run("width bound", func(t *testing.T) {
		d := hexgrid.DimsFor(hexgrid.Config{Rows: 1, Cols: 3, Bounds: mgl32.Vec2{3.5 * 1.732050808, 100}})
		assert.InDelta(t, 1, d.Radius, 1e-5)
	})

	t.Run("empty", func(t *testing.T) {
		assert.Equal(t, hexgrid.Dims{}, hexgrid.DimsFor(hexgrid.Config{Rows: 0, Cols: 3, Bounds: mgl32.Vec2{1, 1}}))
	})
}

func TestCentersFitBounds(t *testing.T) {
	cfg := hexgrid.Config{Rows: 4, Cols: 5, Bounds: mgl32.Vec2{20, 12}}
	d := hexgrid.DimsFor(cfg)
	centers := hexgrid.Centers(cfg, d)
	require.Len(t, centers, 20)

	for i, c := range centers {
		for _, p := range hexgrid.Corners(c, d.Radius) {
			assert.GreaterOrEqual(t, p.X(), float32(-1e-3), "hex %d", i)
			assert.LessOrEqual(t, p.X(), cfg.Bounds.X()+1e-3, "hex %d", i)
			assert.GreaterOrEqual(t, p.Y(), float32(-1e-3), "hex %d", i)
			assert.LessOrEqual(t, p.Y(), cfg.Bounds.Y()+1e-3, "hex %d", i)
		}
	}

	// Odd rows shift right by half a hex.
	row0 := centers[hexgrid.Index(0, 0, cfg.Cols)]
	row1 := centers[hexgrid.Index(1, 0, cfg.Cols)]
	assert.InDelta(t, d.HorizSpacing/2, row1.X()-row0.X(), 1e-4)
	assert.InDelta(t, d.VertSpacing, row1.Y()-row0.Y(), 1e-4)

	assert.Nil(t, hexgrid.Centers(hexgrid.Config{}, d))
}

func TestIndexRowCol(t *testing.T) {
	for idx := 0; idx < 12; idx++ {
		row, col := hexgrid.RowCol(idx, 4)
		assert.Equal(t, idx, hexgrid.Index(row, col, 4))
	}
	row, col := hexgrid.RowCol(9, 4)
	assert.Equal(t, 2, row)
	assert.Equal(t, 1, col)
}

func TestCorners(t *testing.T) {
	pts := hexgrid.Corners(mgl32.Vec2{0, 0}, 2)
	for _, p := range pts {
		assert.InDelta(t, 2, p.Len(), 1e-5)
	}
	// Pointy top: a vertex straight up (y down frame, 270 degrees).
	assert.InDelta(t, 0, pts[5].X(), 1e-5)
	assert.InDelta(t, -2, pts[5].Y(), 1e-5)
}

func TestNearest(t *testing.T) {
	cfg := hexgrid.Config{Rows: 3, Cols: 3, Bounds: mgl32.Vec2{9, 9}}
	centers := hexgrid.Centers(cfg, hexgrid.DimsFor(cfg))
	for i, c := range centers {
		assert.Equal(t, i, hexgrid.Nearest(centers, c.Add(mgl32.Vec2{0.1, 0.1})))
	}
	assert.Equal(t, -1, hexgrid.Nearest(nil, mgl32.Vec2{}))
}
