// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/desktop/input.go
// Summary: Keyboard and mouse handling for the desktop.

package desktop

import (
	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texelfx/fx"
	"github.com/framegrace/texelfx/internal/window"
)

func (d *Desktop) handleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		d.screen.Clear()
		d.draw()
	case *tcell.EventKey:
		d.handleKey(ev)
	case *tcell.EventMouse:
		d.handleMouse(ev)
	}
}

func (d *Desktop) handleKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyCtrlC, tcell.KeyEscape:
		d.Quit()
		return
	case tcell.KeyTab:
		d.FocusNext()
		return
	case tcell.KeyLeft:
		d.nudge(-1, 0, ev.Modifiers())
		return
	case tcell.KeyRight:
		d.nudge(1, 0, ev.Modifiers())
		return
	case tcell.KeyUp:
		d.nudge(0, -1, ev.Modifiers())
		return
	case tcell.KeyDown:
		d.nudge(0, 1, ev.Modifiers())
		return
	case tcell.KeyRune:
	default:
		return
	}

	switch ev.Rune() {
	case 'q':
		d.Quit()
	case 'n':
		d.OpenWindow("")
	case 'm':
		d.MinimizeFocused()
	case 'r':
		d.RestoreLast()
	case 'x':
		d.CloseFocused()
	case 'u':
		// Keyboard stand-in for double-clicking the title bar.
		if w := d.focused; w != nil {
			w.Press(0, 0, 2)
		}
	}
}

func (d *Desktop) nudge(dx, dy int, mods tcell.ModMask) {
	w := d.focused
	if w == nil {
		return
	}
	if mods&tcell.ModShift != 0 {
		dx, dy = dx*4, dy*4
	}
	p := w.Position()
	w.SetPosition(fx.Point{X: p.X + dx, Y: p.Y + dy})
}

func (d *Desktop) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	buttons := ev.Buttons()
	pressed := buttons&tcell.Button1 != 0 && d.buttons&tcell.Button1 == 0
	released := buttons&tcell.Button1 == 0 && d.buttons&tcell.Button1 != 0
	d.buttons = buttons

	switch {
	case pressed:
		d.press(x, y)
	case released:
		d.drag = nil
	case buttons&tcell.Button1 != 0 && d.drag != nil:
		dr := d.drag
		dr.win.SetPosition(fx.Point{
			X: dr.origin.X + x - dr.startX,
			Y: dr.origin.Y + y - dr.startY,
		})
	}
}

func (d *Desktop) press(x, y int) {
	w := d.windowAt(x, y)
	if w == nil {
		d.lastClick = clickState{}
		return
	}
	d.Focus(w)

	clicks := 1
	now := d.sched.Now()
	if d.lastClick.win == w && now.Sub(d.lastClick.at) <= doubleClickTime {
		clicks = 2
		d.lastClick = clickState{}
	} else {
		d.lastClick = clickState{win: w, at: now}
	}

	p := w.Position()
	if y == p.Y {
		d.drag = &dragState{win: w, startX: x, startY: y, origin: p}
	} else {
		// Only the title bar reports multi-clicks.
		clicks = 1
	}
	w.Press(x-p.X, y-p.Y, clicks)
}

// windowAt returns the top-most visible window covering the cell.
func (d *Desktop) windowAt(x, y int) *window.Window {
	visible := d.visible(nil)
	for i := len(visible) - 1; i >= 0; i-- {
		r := bounds(visible[i])
		if r.contains(x, y) {
			return visible[i]
		}
	}
	return nil
}
