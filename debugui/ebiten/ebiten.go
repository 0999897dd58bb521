// Package ebiten provides Dear ImGui backend integration for the Ebiten game engine.
package ebiten

import (
	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/thingbox/debugui"
	"github.com/plus3/thingbox/game"
)

// ImguiBackend wraps the Ebiten-specific Dear ImGui backend implementation.
type ImguiBackend struct {
	*ebitenbackend.EbitenBackend
}

// NewImguiBackend creates the backend and its window. imgui.ini is not
// written.
func NewImguiBackend(title string, width, height int) *ImguiBackend {
	b := ebitenbackend.NewEbitenBackend()
	b.CreateWindow(title, width, height)
	imgui.CurrentIO().SetIniFilename("")
	return &ImguiBackend{EbitenBackend: b}
}

// Frame runs one game update inside an ImGui frame: panels are built by the
// scheduler phase ui was registered as, and in.GUIWantsMouse is taken from
// the GUI's capture state.
func (b *ImguiBackend) Frame(ctx *game.Context, ui *debugui.UI, dt float64, in game.Input) {
	b.BeginFrame()
	ui.Capture()
	in.GUIWantsMouse = in.GUIWantsMouse || ui.WantsMouse()
	ctx.Update(dt, in)
	b.EndFrame()
}

// Overlay draws the GUI on top of screen.
func (b *ImguiBackend) Overlay(screen *ebiten.Image) {
	b.Draw(screen)
}
