package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

func (r *Renderer) drawHUD(f Frame, w, h int) {
	if h < hudRows {
		return
	}
	r.drawHLine(h-2, w, tcell.ColorGray)

	food := 0
	if f.Player != nil {
		food = f.Player.Food
	}
	left := fmt.Sprintf("Food: %d", food)
	r.drawText(0, h-1, left, tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true))

	right := fmt.Sprintf("%s  Best: %d", dayText(f.Level), max(f.Best, f.Level))
	x := w - runewidth.StringWidth(right)
	if x <= runewidth.StringWidth(left) {
		x = runewidth.StringWidth(left) + 2
	}
	r.drawText(x, h-1, right, tcell.StyleDefault.Foreground(tcell.ColorLightGray))
}

func dayText(level int) string {
	return fmt.Sprintf("Day %d", level)
}

func starvedText(level int) string {
	return fmt.Sprintf("After %d days, you starved.", level)
}
