package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/thingbox/console"
)

// ConsolePanel draws the console scrollback and an input line. It is only
// shown while the console is visible.
type ConsolePanel struct {
	con   *console.Console
	input string
	focus bool
}

func NewConsolePanel(con *console.Console) *ConsolePanel {
	return &ConsolePanel{con: con, focus: true}
}

// Input returns the pending input line.
func (cp *ConsolePanel) Input() string { return cp.input }

// SetInput replaces the pending input line.
func (cp *ConsolePanel) SetInput(s string) { cp.input = s }

// Submit executes the pending line and clears it. Blank lines are dropped.
func (cp *ConsolePanel) Submit() string {
	line := cp.input
	cp.input = ""
	cp.focus = true
	if line == "" {
		return ""
	}
	return cp.con.Execute(line)
}

// RecallPrev loads the previous history entry into the input line.
func (cp *ConsolePanel) RecallPrev() { cp.input = cp.con.HistoryPrev() }

// RecallNext loads the next history entry, or blanks the line past the end.
func (cp *ConsolePanel) RecallNext() { cp.input = cp.con.HistoryNext() }

func (cp *ConsolePanel) Render(float32) {
	if !cp.con.Visible() {
		return
	}
	if !imgui.BeginV("Console", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	for _, line := range cp.con.Lines() {
		imgui.Text(line)
	}
	imgui.Separator()

	if cp.focus {
		imgui.SetKeyboardFocusHere()
		cp.focus = false
	}
	if imgui.InputTextWithHint("##input", "command", &cp.input, imgui.InputTextFlagsEnterReturnsTrue, nil) {
		cp.Submit()
	}
	imgui.SameLine()
	if imgui.Button("Clear") {
		cp.con.Clear()
	}

	imgui.End()
}
