package main

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/plus3/thingbox/console"
	"github.com/plus3/thingbox/debugui"
	debugui_ebiten "github.com/plus3/thingbox/debugui/ebiten"
	"github.com/plus3/thingbox/game"
)

const tickDelta = 1.0 / 60.0

var clearColor = color.RGBA{R: 245, G: 245, B: 245, A: 255}

// Demo implements ebiten.Game.
type Demo struct {
	world    *game.Context
	console  *console.Console
	ui       *debugui.UI
	prompt   *debugui.ConsolePanel
	perf     *debugui.PerformancePanel
	backend  *debugui_ebiten.ImguiBackend
	cam      *Camera
	renderer *Renderer
}

func (d *Demo) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyGraveAccent) {
		d.console.ToggleVisible()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		d.ui.Toggle()
	}
	if d.console.Visible() {
		if inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) {
			d.prompt.RecallPrev()
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) {
			d.prompt.RecallNext()
		}
	}

	typing := d.ui.WantsKeyboard()
	cameraControls(d.cam, tickDelta, typing)
	d.backend.Frame(d.world, d.ui, tickDelta, readInput(d.cam, typing))
	return nil
}

func (d *Demo) Draw(screen *ebiten.Image) {
	screen.Fill(clearColor)
	list := d.world.DrawList()
	d.renderer.Draw(screen, list)
	d.renderer.Forget(list)

	ebitenutil.DebugPrintAt(screen, "~ console  F1 panels  Q/E orbit  wheel zoom", 8, d.cam.Height-20)
	d.backend.Overlay(screen)
}

func (d *Demo) Layout(outsideWidth, outsideHeight int) (int, int) {
	d.cam.Resize(outsideWidth, outsideHeight)
	d.backend.Layout(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}
