package main

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plus3/thingbox/assets"
	"github.com/plus3/thingbox/game"
	"github.com/plus3/thingbox/geom"
)

// Renderer draws a game.DrawList as projected wireframes.
type Renderer struct {
	cam    *Camera
	models *assets.Store
	labels map[string]*ebiten.Image
}

func NewRenderer(cam *Camera, models *assets.Store) *Renderer {
	return &Renderer{cam: cam, models: models, labels: make(map[string]*ebiten.Image)}
}

func (r *Renderer) Draw(screen *ebiten.Image, list *game.DrawList) {
	for _, layer := range game.Layers {
		for _, item := range list.Items(layer) {
			r.drawItem(screen, item)
		}
	}
}

func (r *Renderer) drawItem(screen *ebiten.Image, item game.DrawItem) {
	switch item.Kind {
	case game.ItemModel:
		m := r.models.Get(item.Model.Name)
		if m == nil {
			r.box(screen, item.Bounds, fallbackColor(item))
			return
		}
		clr := m.Color
		if item.Tinted {
			clr = item.Color
		}
		for _, seg := range m.Segments {
			a := item.Transform.Mul4x1(seg[0].Vec4(1)).Vec3()
			b := item.Transform.Mul4x1(seg[1].Vec4(1)).Vec3()
			r.line(screen, a, b, clr)
		}
	case game.ItemTile:
		h := item.Scale / 2
		p := item.Position
		c := [4]mgl32.Vec3{
			p.Add(mgl32.Vec3{-h, 0, -h}), p.Add(mgl32.Vec3{h, 0, -h}),
			p.Add(mgl32.Vec3{h, 0, h}), p.Add(mgl32.Vec3{-h, 0, h}),
		}
		for i := range c {
			r.line(screen, c[i], c[(i+1)%4], item.Color)
		}
	case game.ItemBounds:
		r.box(screen, item.Bounds, item.Color)
	case game.ItemBillboard:
		x, y, ok := r.cam.Project(item.Position)
		if !ok {
			return
		}
		ex, _, ok := r.cam.Project(item.Position.Add(r.cam.Right().Mul(item.Scale / 2)))
		if !ok {
			return
		}
		h := max(ex-x, 2)
		vector.StrokeRect(screen, x-h, y-h, 2*h, 2*h, 1, item.Color, false)
	case game.ItemText:
		r.text(screen, item)
	}
}

func fallbackColor(item game.DrawItem) color.Color {
	if item.Tinted {
		return item.Color
	}
	return color.White
}

func (r *Renderer) line(screen *ebiten.Image, a, b mgl32.Vec3, clr color.Color) {
	x0, y0, ok0 := r.cam.Project(a)
	x1, y1, ok1 := r.cam.Project(b)
	if !ok0 || !ok1 {
		return
	}
	vector.StrokeLine(screen, x0, y0, x1, y1, 1, clr, true)
}

func (r *Renderer) box(screen *ebiten.Image, b geom.AABB, clr color.Color) {
	corners := b.Corners()
	for _, e := range geom.Edges {
		r.line(screen, corners[e[0]], corners[e[1]], clr)
	}
}

func (r *Renderer) text(screen *ebiten.Image, item game.DrawItem) {
	if item.Alpha <= 0 || item.Text == "" {
		return
	}
	x, y, ok := r.cam.Project(item.Position)
	if !ok {
		return
	}

	img, ok := r.labels[item.Text]
	if !ok {
		img = ebiten.NewImage(len(item.Text)*6+4, 16)
		ebitenutil.DebugPrintAt(img, item.Text, 2, 0)
		r.labels[item.Text] = img
	}

	op := &ebiten.DrawImageOptions{}
	w := float64(img.Bounds().Dx())
	op.GeoM.Translate(float64(x)-w/2, float64(y))
	op.ColorScale.ScaleWithColor(item.Color)
	op.ColorScale.ScaleAlpha(item.Alpha)
	screen.DrawImage(img, op)
}

// Forget drops cached label images no longer on screen.
func (r *Renderer) Forget(list *game.DrawList) {
	live := make(map[string]bool)
	for _, item := range list.Items(game.LayerUIWorld) {
		if item.Kind == game.ItemText {
			live[item.Text] = true
		}
	}
	for text, img := range r.labels {
		if !live[text] {
			img.Deallocate()
			delete(r.labels, text)
		}
	}
}
