package ui

import (
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/samdwyer/scavenger/internal/entity"
	"github.com/samdwyer/scavenger/internal/game"
	"github.com/samdwyer/scavenger/internal/world"
)

// hudRows is the space kept below the map for the separator and status line.
const hudRows = 2

var (
	styleFloor     = tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
	styleOuterWall = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleFood      = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	styleExit      = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleWall      = tcell.StyleDefault.Foreground(tcell.ColorSaddleBrown)
	stylePlayer    = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleGain      = tcell.StyleDefault.Foreground(tcell.ColorLightGreen)
	styleLoss      = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleCard      = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)
)

// wallGlyphs shades a breakable wall by its remaining hit points.
var wallGlyphs = []rune{'░', '▒', '▓'}

// Frame is everything one draw needs.
type Frame struct {
	Grid   world.GridSnapshot
	Actors []entity.Actor
	Player *entity.Player
	Level  int
	Best   int
	State  game.State
	Now    time.Time
}

// Renderer draws frames to a screen.
type Renderer struct {
	screen *Screen
	camera *Camera
	motion *Motion
	popups *Popups
}

// NewRenderer creates a renderer. motion and popups may be nil.
func NewRenderer(screen *Screen, motion *Motion, popups *Popups) *Renderer {
	w, h := screen.Size()
	return &Renderer{
		screen: screen,
		camera: NewCamera(world.Point{}, w, max(h-hudRows, 1)),
		motion: motion,
		popups: popups,
	}
}

// Render draws f and flushes the screen.
func (r *Renderer) Render(f Frame) {
	r.screen.Clear()
	defer r.screen.Show()

	w, h := r.screen.Size()
	if f.State == game.StateSetup {
		r.drawCard(w, h, dayText(f.Level))
		return
	}

	r.camera.Resize(w, max(h-hudRows, 1))
	if f.Player != nil {
		r.camera.Follow(r.position(f.Player, f.Now), f.Grid.Width, f.Grid.Height)
	}
	r.drawGrid(f.Grid)
	r.drawActors(f)
	r.drawPopups(f.Now)
	r.drawHUD(f, w, h)

	if f.State == game.StateGameOver {
		r.drawCard(w, h, starvedText(f.Level), "Press r to play again or q to quit")
	}
}

func (r *Renderer) drawGrid(g world.GridSnapshot) {
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			p := world.Point{X: x, Y: y}
			t := g.At(p)
			switch {
			case t == world.OuterWall:
				r.put(p, '#', styleOuterWall)
			case t.HasWall():
				r.put(p, wallGlyphs[len(wallGlyphs)-1], styleWall)
			case t.HasFood():
				r.put(p, '%', styleFood)
			case t.HasExit():
				r.put(p, '>', styleExit)
			case t.Has(world.Ground):
				r.put(p, '.', styleFloor)
			}
		}
	}
}

// drawActors draws walls first, then enemies, then the player on top.
func (r *Renderer) drawActors(f Frame) {
	for _, a := range f.Actors {
		if w, ok := a.(*entity.BreakableWall); ok {
			idx := min(max(w.HP, 1), len(wallGlyphs)) - 1
			r.put(w.Position(), wallGlyphs[idx], styleWall)
		}
	}
	for _, a := range f.Actors {
		if e, ok := a.(*entity.Enemy); ok {
			glyph, style := 'z', tcell.StyleDefault.Foreground(tcell.ColorOlive)
			if e.Def != nil {
				glyph = e.Def.GlyphRune()
				style = tcell.StyleDefault.Foreground(e.Def.TCellColor())
			}
			if e.Skipping() {
				style = style.Dim(true)
			}
			r.put(r.position(e, f.Now), glyph, style)
		}
	}
	if f.Player != nil {
		r.put(r.position(f.Player, f.Now), '@', stylePlayer)
	}
}

func (r *Renderer) drawPopups(now time.Time) {
	if r.popups == nil {
		return
	}
	items, fade := r.popups.Active(now)
	for i, it := range items {
		sx, sy, ok := r.camera.WorldToScreen(it.At)
		if !ok {
			continue
		}
		style := styleLoss
		if it.Gain {
			style = styleGain
		}
		if fade[i] < 0.5 {
			style = style.Dim(true)
		}
		r.drawText(sx, sy, it.Text, style)
	}
}

func (r *Renderer) position(a entity.Actor, now time.Time) world.Point {
	if r.motion == nil {
		return a.Position()
	}
	return r.motion.Position(a.ID(), a.Position(), now)
}

// put draws a single-width glyph in the left column of a cell.
func (r *Renderer) put(p world.Point, glyph rune, style tcell.Style) {
	sx, sy, ok := r.camera.WorldToScreen(p)
	if !ok {
		return
	}
	r.screen.SetContent(sx, sy, glyph, style)
	if runewidth.RuneWidth(glyph) < 2 {
		r.screen.SetContent(sx+1, sy, ' ', style)
	}
}

// drawCard blanks the screen and centers lines of text on it.
func (r *Renderer) drawCard(w, h int, lines ...string) {
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r.screen.SetContent(x, y, ' ', styleCard)
		}
	}
	top := (h - len(lines)) / 2
	for i, line := range lines {
		x := (w - runewidth.StringWidth(line)) / 2
		r.drawText(max(x, 0), top+i, line, styleCard)
	}
}

func (r *Renderer) drawText(x, y int, text string, style tcell.Style) {
	col := x
	for _, ch := range text {
		r.screen.SetContent(col, y, ch, style)
		col += max(runewidth.RuneWidth(ch), 1)
	}
}

func (r *Renderer) drawHLine(y, w int, color tcell.Color) {
	style := tcell.StyleDefault.Foreground(color)
	for x := 0; x < w; x++ {
		r.screen.SetContent(x, y, '─', style)
	}
}
