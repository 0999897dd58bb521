// Package debugui provides Dear ImGui panels for inspecting and editing a
// running game.Context.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/thingbox/ecs"
)

// Panel is a window drawn once per frame between the backend's BeginFrame
// and EndFrame.
type Panel interface {
	Render(dt float32)
}

// InputState tracks Dear ImGui's input capture for the current frame.
// Hosts feed WantCaptureMouse into game.Input.GUIWantsMouse so clicks on a
// panel never reach the world.
type InputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// UI is a scheduler system that defers every panel's render to the end of
// its phase.
type UI struct {
	Panels  []Panel
	Visible bool
	Input   InputState

	// capture reads the ImGui IO; replaced in tests.
	capture func() InputState
}

// New creates a visible UI drawing panels in order.
func New(panels ...Panel) *UI {
	return &UI{Panels: panels, Visible: true, capture: currentCapture}
}

// Add appends a panel.
func (u *UI) Add(p Panel) { u.Panels = append(u.Panels, p) }

// Toggle flips visibility and returns the new state.
func (u *UI) Toggle() bool {
	u.Visible = !u.Visible
	return u.Visible
}

// WantsMouse reports whether the GUI owns the mouse this frame.
func (u *UI) WantsMouse() bool {
	return u.Visible && u.Input.WantCaptureMouse
}

// WantsKeyboard reports whether the GUI owns the keyboard this frame.
func (u *UI) WantsKeyboard() bool {
	return u.Visible && u.Input.WantCaptureKeyboard
}

// Capture refreshes Input from ImGui. Call it after BeginFrame.
func (u *UI) Capture() InputState {
	if u.Visible {
		u.Input = u.capture()
	} else {
		u.Input = InputState{}
	}
	return u.Input
}

// Execute implements ecs.System.
func (u *UI) Execute(frame *ecs.UpdateFrame) {
	if !u.Visible {
		return
	}
	dt := float32(frame.DeltaTime)
	for _, p := range u.Panels {
		frame.Commands.Defer(func() { p.Render(dt) })
	}
}

func currentCapture() InputState {
	io := imgui.CurrentIO()
	return InputState{
		WantCaptureMouse:    io.WantCaptureMouse(),
		WantCaptureKeyboard: io.WantCaptureKeyboard(),
	}
}
