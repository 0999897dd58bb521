package game

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/thingbox/assets"
	"github.com/plus3/thingbox/ecs"
	"github.com/plus3/thingbox/geom"
)

// Layer is a draw pass. Hosts draw layers in ascending order.
type Layer int

const (
	LayerBackground Layer = iota
	LayerHighlight
	LayerEntities
	LayerFocus
	LayerUIWorld
	layerCount
)

func (l Layer) String() string {
	switch l {
	case LayerBackground:
		return "background"
	case LayerHighlight:
		return "highlight"
	case LayerEntities:
		return "entities"
	case LayerFocus:
		return "focus"
	case LayerUIWorld:
		return "ui_world"
	}
	return "unknown"
}

// Layers lists every layer in draw order.
var Layers = []Layer{LayerBackground, LayerHighlight, LayerEntities, LayerFocus, LayerUIWorld}

// ItemKind says how a DrawItem should be drawn.
type ItemKind int

const (
	// ItemModel draws Model with Transform; Tinted items replace the
	// model's color with Color.
	ItemModel ItemKind = iota
	// ItemTile is a one unit floor square centered on Position.
	ItemTile
	// ItemBounds is a wireframe of Bounds.
	ItemBounds
	// ItemBillboard is a camera-facing square of size Scale at Position.
	ItemBillboard
	// ItemText draws Text at the screen projection of Position.
	ItemText
)

// DrawItem is one thing to draw.
type DrawItem struct {
	Kind      ItemKind
	Ref       ecs.Ref
	Model     assets.Handle
	Position  mgl32.Vec3
	Scale     float32
	Transform mgl32.Mat4
	Color     color.RGBA
	Tinted    bool
	Bounds    geom.AABB
	Text      string
	Alpha     float32
}

// DrawList is the render submission of one frame.
type DrawList struct {
	layers [layerCount][]DrawItem
}

// Items returns the items of one layer in submission order.
func (d *DrawList) Items(l Layer) []DrawItem {
	if l < 0 || l >= layerCount {
		return nil
	}
	return d.layers[l]
}

// Len returns the total number of items.
func (d *DrawList) Len() int {
	n := 0
	for _, items := range d.layers {
		n += len(items)
	}
	return n
}

func (d *DrawList) reset() {
	for i := range d.layers {
		d.layers[i] = d.layers[i][:0]
	}
}

func (d *DrawList) add(l Layer, item DrawItem) {
	d.layers[l] = append(d.layers[l], item)
}

var (
	tileLight = color.RGBA{R: 60, G: 60, B: 60, A: 255}
	tileDark  = color.RGBA{R: 40, G: 40, B: 40, A: 255}
	boundsRed = color.RGBA{R: 230, G: 41, B: 55, A: 255}
	white     = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

// gridHalf is the half width of the checkerboard floor in tiles.
const gridHalf = 10

func (c *Context) modelItem(e *Entity, scale float32) DrawItem {
	return DrawItem{
		Kind:      ItemModel,
		Ref:       e.ref,
		Model:     e.Model,
		Position:  e.Position,
		Scale:     scale,
		Transform: e.Transform(scale),
		Bounds:    c.WorldBounds(e),
	}
}

func (c *Context) buildDrawList() {
	d := c.draw
	d.reset()

	for x := -gridHalf; x <= gridHalf; x++ {
		for z := -gridHalf; z <= gridHalf; z++ {
			tile := tileDark
			if (x+z)%2 == 0 {
				tile = tileLight
			}
			d.add(LayerBackground, DrawItem{
				Kind:     ItemTile,
				Position: mgl32.Vec3{float32(x), -0.1, float32(z)},
				Scale:    1,
				Color:    tile,
			})
		}
	}

	if h, ok := c.entities.Lookup(c.Hovered()); ok && c.renderable(h) {
		item := c.modelItem(h, h.Scale*1.1)
		item.Color, item.Tinted = c.opts.HighlightColor, true
		d.add(LayerHighlight, item)
	}

	for _, e := range c.entities.All() {
		if !c.renderable(e) {
			continue
		}
		d.add(LayerEntities, c.modelItem(e, e.Scale))
		if c.traits.Has(e, TraitIsHitbox) {
			d.add(LayerEntities, DrawItem{
				Kind:   ItemBounds,
				Ref:    e.ref,
				Bounds: c.WorldBounds(e),
				Color:  boundsRed,
			})
		}
	}

	if sel, ok := c.entities.Lookup(c.selected); ok && c.renderable(sel) {
		item := c.modelItem(sel, sel.Scale*1.15)
		item.Color, item.Tinted = c.opts.SelectionColor, true
		d.add(LayerFocus, item)
	}

	for _, e := range c.entities.All() {
		if c.traits.Has(e, TraitBillboard) {
			d.add(LayerUIWorld, DrawItem{
				Kind:     ItemBillboard,
				Ref:      e.ref,
				Model:    e.Model,
				Position: e.Position,
				Scale:    e.Scale,
				Color:    white,
			})
		}
	}
	for _, e := range c.entities.All() {
		if c.traits.Has(e, TraitIsText) {
			d.add(LayerUIWorld, DrawItem{
				Kind:     ItemText,
				Ref:      e.ref,
				Position: e.Position,
				Text:     e.Text,
				Color:    boundsRed,
				Alpha:    c.LabelAlpha(e),
			})
		}
	}
}
