package main

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/plus3/thingbox/game"
)

// readInput samples mouse and keyboard into a game.Input. WASD movement is
// suppressed while typing into a GUI field.
func readInput(cam *Camera, keyboardCaptured bool) game.Input {
	mx, my := ebiten.CursorPosition()
	in := game.Input{
		Mouse:        mgl32.Vec2{float32(mx), float32(my)},
		Ray:          cam.Ray(float32(mx), float32(my)),
		LeftPressed:  inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
		LeftDown:     ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		LeftReleased: inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft),
	}
	if keyboardCaptured {
		return in
	}

	if ebiten.IsKeyPressed(ebiten.KeyW) {
		in.Move[1]++
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) {
		in.Move[1]--
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) {
		in.Move[0]++
	}
	if ebiten.IsKeyPressed(ebiten.KeyA) {
		in.Move[0]--
	}
	return in
}

// cameraControls orbits with Q/E and zooms with the wheel.
func cameraControls(cam *Camera, dt float32, keyboardCaptured bool) {
	if _, wy := ebiten.Wheel(); wy != 0 {
		cam.Zoom(1 - float32(wy)*0.1)
	}
	if keyboardCaptured {
		return
	}
	if ebiten.IsKeyPressed(ebiten.KeyQ) {
		cam.Orbit(-dt)
	}
	if ebiten.IsKeyPressed(ebiten.KeyE) {
		cam.Orbit(dt)
	}
}
