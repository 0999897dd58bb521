package main

import (
	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/thingbox/assets"
	"github.com/plus3/thingbox/console"
	"github.com/plus3/thingbox/game"
)

// App turns tcell events into game input and draws the world top-down.
// Terminals report no key releases, so a movement key moves wsad entities
// for the next tick only.
type App struct {
	screen  tcell.Screen
	world   *game.Context
	console *console.Console
	models  *assets.Store
	view    View

	mouseCol, mouseRow int
	leftDown, wasDown  bool
	move               mgl32.Vec2
	typing             bool
	input              string
	quit               bool
}

func NewApp(screen tcell.Screen, world *game.Context, con *console.Console, models *assets.Store) *App {
	cols, rows := screen.Size()
	return &App{
		screen:  screen,
		world:   world,
		console: con,
		models:  models,
		view:    View{Cols: cols, Rows: rows, Zoom: 2},
	}
}

// HandleEvent applies one terminal event.
func (a *App) HandleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.view.Cols, a.view.Rows = ev.Size()
		a.screen.Sync()
	case *tcell.EventMouse:
		a.mouseCol, a.mouseRow = ev.Position()
		a.leftDown = ev.Buttons()&tcell.Button1 != 0
	case *tcell.EventKey:
		if a.typing {
			a.promptKey(ev)
			return
		}
		a.worldKey(ev)
	}
}

func (a *App) promptKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEnter:
		if a.input != "" {
			a.console.Execute(a.input)
		}
		a.input = ""
	case tcell.KeyEscape:
		a.typing, a.input = false, ""
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		a.input = backspace(a.input)
	case tcell.KeyUp:
		a.input = a.console.HistoryPrev()
	case tcell.KeyDown:
		a.input = a.console.HistoryNext()
	case tcell.KeyRune:
		a.input += string(ev.Rune())
	}
}

func (a *App) worldKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		a.quit = true
		return
	}
	switch ev.Rune() {
	case 'q':
		a.quit = true
	case ':', '`', '~':
		a.typing = true
		a.console.SetVisible(true)
	case 'w':
		a.move[1] = 1
	case 's':
		a.move[1] = -1
	case 'a':
		a.move[0] = -1
	case 'd':
		a.move[0] = 1
	case '+', '=':
		a.view.Zoom = min(a.view.Zoom*1.25, 16)
	case '-':
		a.view.Zoom = max(a.view.Zoom/1.25, 0.25)
	}
}

// Tick advances the world by dt using the input gathered since the last
// tick.
func (a *App) Tick(dt float64) {
	in := game.Input{
		Mouse:        mgl32.Vec2{float32(a.mouseCol), float32(a.mouseRow)},
		Ray:          a.view.Ray(a.mouseCol, a.mouseRow),
		LeftPressed:  a.leftDown && !a.wasDown,
		LeftDown:     a.leftDown,
		LeftReleased: !a.leftDown && a.wasDown,
		Move:         a.move,
	}
	a.world.Update(dt, in)
	a.wasDown = a.leftDown
	a.move = mgl32.Vec2{}
}

// Draw renders the frame and shows it.
func (a *App) Draw() {
	a.screen.Clear()
	a.screen.HideCursor()
	drawScene(a.screen, a.view, a.world.DrawList(), a.models)
	drawString(a.screen, 0, 0, statusLine(a.world), tcell.StyleDefault.Reverse(true))
	if a.console.Visible() {
		drawConsole(a.screen, a.console.Lines(), a.input, a.typing, 5)
	}
	a.screen.Show()
}

// Done reports whether the user asked to quit.
func (a *App) Done() bool { return a.quit }
