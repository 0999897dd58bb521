package main

import (
	"fmt"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"github.com/plus3/thingbox/assets"
	"github.com/plus3/thingbox/game"
)

var (
	floorStyle  = tcell.StyleDefault.Foreground(tcell.ColorDimGray)
	boundsStyle = tcell.StyleDefault.Foreground(tcell.ColorRed)
	labelStyle  = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	promptStyle = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorNavy)
	logStyle    = tcell.StyleDefault.Foreground(tcell.ColorSilver)
)

var shapeGlyphs = map[assets.Shape]rune{
	assets.ShapeCube:     '#',
	assets.ShapeSphere:   'o',
	assets.ShapeCylinder: '$',
	assets.ShapePyramid:  '^',
	assets.ShapePlane:    '=',
}

// drawScene paints one frame of the draw list. Later layers overwrite
// earlier ones.
func drawScene(s tcell.Screen, v View, list *game.DrawList, models *assets.Store) {
	for _, layer := range game.Layers {
		for _, item := range list.Items(layer) {
			drawItem(s, v, item, models)
		}
	}
}

func drawItem(s tcell.Screen, v View, item game.DrawItem, models *assets.Store) {
	switch item.Kind {
	case game.ItemTile:
		col, row := v.Cell(item.Position)
		if v.Visible(col, row) && item.Color.R > 50 {
			s.SetContent(col, row, '·', nil, floorStyle)
		}
	case game.ItemModel:
		glyph, style := '?', tcell.StyleDefault
		if m := models.Get(item.Model.Name); m != nil {
			if g, ok := shapeGlyphs[m.Shape]; ok {
				glyph = g
			}
			style = style.Foreground(tcell.NewRGBColor(int32(m.Color.R), int32(m.Color.G), int32(m.Color.B)))
		}
		if item.Tinted {
			c := item.Color
			style = style.Background(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))).Foreground(tcell.ColorBlack)
		}
		fill(s, v, item, glyph, style)
	case game.ItemBounds:
		fill(s, v, item, 'x', boundsStyle)
	case game.ItemBillboard:
		col, row := v.Cell(item.Position)
		if v.Visible(col, row) {
			s.SetContent(col, row, '*', nil, tcell.StyleDefault)
		}
	case game.ItemText:
		if item.Alpha < 0.2 {
			return
		}
		col, row := v.Cell(item.Position)
		drawCentered(s, col, row-1, item.Text, labelStyle.Dim(item.Alpha < 0.5))
	}
}

func fill(s tcell.Screen, v View, item game.DrawItem, glyph rune, style tcell.Style) {
	c0, r0, c1, r1 := v.Footprint(item.Bounds)
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			if v.Visible(col, row) {
				s.SetContent(col, row, glyph, nil, style)
			}
		}
	}
}

// drawString writes text from col, advancing by display width. It returns
// the column after the last rune.
func drawString(s tcell.Screen, col, row int, text string, style tcell.Style) int {
	for _, r := range text {
		s.SetContent(col, row, r, nil, style)
		col += runewidth.RuneWidth(r)
	}
	return col
}

func drawCentered(s tcell.Screen, col, row int, text string, style tcell.Style) {
	drawString(s, col-runewidth.StringWidth(text)/2, row, text, style)
}

// drawConsole shows the last log lines above a prompt line at the bottom.
// Lines wider than the screen are truncated.
func drawConsole(s tcell.Screen, lines []string, input string, typing bool, logRows int) {
	w, h := s.Size()
	start := max(len(lines)-logRows, 0)
	row := h - 1 - (len(lines) - start)
	for _, line := range lines[start:] {
		drawString(s, 0, row, runewidth.Truncate(line, w, "…"), logStyle)
		row++
	}
	if !typing {
		return
	}
	prompt := "> " + input
	for col := drawString(s, 0, h-1, prompt, promptStyle); col < w; col++ {
		s.SetContent(col, h-1, ' ', nil, promptStyle)
	}
	s.ShowCursor(runewidth.StringWidth(prompt), h-1)
}

// backspace drops the last rune of s.
func backspace(s string) string {
	if s == "" {
		return s
	}
	_, size := utf8.DecodeLastRuneInString(s)
	return s[:len(s)-size]
}

// statusLine summarizes the world for the top row.
func statusLine(world *game.Context) string {
	line := fmt.Sprintf("entities: %d", world.Count())
	if e, ok := world.Get(world.Selected()); ok {
		line += fmt.Sprintf("  selected: %s %s", world.Selected(), e.Name())
	}
	return line + "  [: console  wasd move  +/- zoom  q quit]"
}
