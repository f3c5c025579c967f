package keyboard

import (
	"github.com/gdamore/tcell/v2"
)

var (
	styleHeader = tcell.StyleDefault.Bold(true).Reverse(true)
	styleBody   = tcell.StyleDefault.Foreground(tcell.ColorReset)
	styleHelp   = tcell.StyleDefault.Foreground(tcell.ColorGray)
)

// Menu is the key binding summary shown above the live status.
var Menu = []string{
	"W/S  forward / back      D/A  right / left",
	"I/U  down / up           L/J  yaw right / left",
	"K    stop yaw            P    land",
	"ESC  quit",
}

// Render redraws the status screen: a title bar, the key menu and the
// caller's status lines. It is a no-op without a terminal.
func (k *Keyboard) Render(title string, status []string) {
	if k.screen == nil {
		return
	}
	k.screen.Clear()
	width, height := k.screen.Size()

	y := 0
	drawText(k.screen, 0, y, width, styleHeader, " "+title)
	y += 2
	for _, line := range Menu {
		if y >= height {
			break
		}
		drawText(k.screen, 1, y, width-1, styleHelp, line)
		y++
	}
	y++
	for _, line := range status {
		if y >= height {
			break
		}
		drawText(k.screen, 1, y, width-1, styleBody, line)
		y++
	}
	k.screen.Show()
}

func drawText(screen tcell.Screen, x, y, maxWidth int, style tcell.Style, text string) {
	col := 0
	for _, r := range text {
		if col >= maxWidth {
			break
		}
		screen.SetContent(x+col, y, r, nil, style)
		col++
	}
	for col < maxWidth {
		screen.SetContent(x+col, y, ' ', nil, style)
		col++
	}
}
