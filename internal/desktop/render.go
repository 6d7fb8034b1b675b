// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/desktop/render.go
// Summary: Draws windows with their opacity, blur and shadow properties.

package desktop

import (
	"fmt"
	"math"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/framegrace/texelfx/fx"
	"github.com/framegrace/texelfx/internal/window"
)

const statusHelp = " n new  tab focus  m min  r restore  x close  u roll  q quit "

type theme struct {
	desktopBg     tcell.Color
	desktopFg     tcell.Color
	windowBg      tcell.Color
	windowFg      tcell.Color
	border        tcell.Color
	titleActive   tcell.Color
	titleInactive tcell.Color
	titleFg       tcell.Color
	barBg         tcell.Color
	barFg         tcell.Color

	styles map[styleKey]tcell.Style
}

type styleKey struct {
	fg, bg tcell.Color
	bold   bool
}

func defaultTheme() theme {
	return theme{
		desktopBg:     tcell.NewRGBColor(24, 26, 33),
		desktopFg:     tcell.NewRGBColor(90, 96, 110),
		windowBg:      tcell.NewRGBColor(40, 44, 52),
		windowFg:      tcell.NewRGBColor(220, 223, 228),
		border:        tcell.NewRGBColor(97, 175, 239),
		titleActive:   tcell.NewRGBColor(97, 175, 239),
		titleInactive: tcell.NewRGBColor(76, 82, 99),
		titleFg:       tcell.NewRGBColor(20, 22, 28),
		barBg:         tcell.NewRGBColor(33, 37, 43),
		barFg:         tcell.NewRGBColor(171, 178, 191),
		styles:        make(map[styleKey]tcell.Style),
	}
}

func (t *theme) style(fg, bg tcell.Color, bold bool) tcell.Style {
	key := styleKey{fg: fg, bg: bg, bold: bold}
	if st, ok := t.styles[key]; ok {
		return st
	}
	st := tcell.StyleDefault.Foreground(fg).Background(bg).Bold(bold)
	t.styles[key] = st
	return st
}

type rect struct {
	x, y, w, h int
}

func (r rect) contains(x, y int) bool {
	return x >= r.x && x < r.x+r.w && y >= r.y && y < r.y+r.h
}

// bounds converts a window's presentation geometry to cells.
func bounds(w fx.Window) rect {
	p := w.Position()
	s := w.Size()
	return rect{x: p.X, y: p.Y, w: cells(s.Width), h: cells(s.Height)}
}

func cells(v float64) int {
	if v <= 0 {
		return 0
	}
	n := int(math.Round(v))
	if n < 1 {
		n = 1
	}
	return n
}

func (d *Desktop) draw() {
	sw, sh := d.screen.Size()
	bg := d.theme.style(d.theme.desktopFg, d.theme.desktopBg, false)
	for y := 0; y < sh; y++ {
		for x := 0; x < sw; x++ {
			d.screen.SetContent(x, y, ' ', nil, bg)
		}
	}

	for _, w := range d.windows {
		if w.Closed() || w.State() == fx.StateMinimized {
			continue
		}
		d.drawShadow(w)
		d.drawWindow(w)
	}

	d.drawStatus(sw)
	d.drawDock(sw, sh)
	d.screen.Show()
}

func (d *Desktop) drawShadow(w *window.Window) {
	shadow, ok := w.Filter().(fx.DropShadow)
	if !ok || shadow.Opacity <= 0 {
		return
	}
	r := bounds(w)
	if r.w == 0 || r.h == 0 {
		return
	}
	tint := blendColor(d.theme.desktopBg, shadow.Color, float32(shadow.Opacity*w.Opacity()))
	st := d.theme.style(d.theme.desktopFg, tint, false)
	for y := r.y + shadow.OffsetY; y < r.y+shadow.OffsetY+r.h; y++ {
		for x := r.x + shadow.OffsetX; x < r.x+shadow.OffsetX+r.w; x++ {
			if !r.contains(x, y) {
				d.screen.SetContent(x, y, ' ', nil, st)
			}
		}
	}
}

func (d *Desktop) drawWindow(w *window.Window) {
	r := bounds(w)
	if r.w == 0 || r.h == 0 {
		return
	}
	fade := float32(1 - w.Opacity())
	dim := float32(0)
	if blur, ok := w.Filter().(fx.Blur); ok {
		dim = float32(math.Min(blur.Radius/12, 1) * 0.7)
	}
	paint := func(c tcell.Color) tcell.Color {
		return blendColor(c, d.theme.desktopBg, fade)
	}

	titleBg := d.theme.titleInactive
	if w.Active() {
		titleBg = d.theme.titleActive
	}
	bodyBg := paint(d.theme.windowBg)
	bodyFg := paint(blendColor(d.theme.windowFg, d.theme.windowBg, dim))
	borderFg := paint(blendColor(d.theme.border, d.theme.windowBg, dim))
	titleStyle := d.theme.style(paint(d.theme.titleFg), paint(titleBg), true)
	bodyStyle := d.theme.style(bodyFg, bodyBg, false)
	borderStyle := d.theme.style(borderFg, bodyBg, false)

	for x := r.x; x < r.x+r.w; x++ {
		d.screen.SetContent(x, r.y, ' ', nil, titleStyle)
	}
	if r.w > 2 {
		title := runewidth.Truncate(w.Title(), r.w-2, "…")
		d.putString(r.x+1, r.y, r.w-2, title, titleStyle)
	}

	for y := r.y + 1; y < r.y+r.h; y++ {
		bottom := y == r.y+r.h-1 && r.h >= 3
		for x := r.x; x < r.x+r.w; x++ {
			ch, st := ' ', bodyStyle
			switch {
			case bottom && x == r.x:
				ch, st = '└', borderStyle
			case bottom && x == r.x+r.w-1:
				ch, st = '┘', borderStyle
			case bottom:
				ch, st = '─', borderStyle
			case x == r.x || x == r.x+r.w-1:
				ch, st = '│', borderStyle
			}
			d.screen.SetContent(x, y, ch, nil, st)
		}
	}

	inner := r.w - 4
	if inner <= 0 {
		return
	}
	lines := []string{
		"key: " + w.Key(),
		"effects: " + strings.Join(d.engine.Bound(w), ", "),
		fmt.Sprintf("opacity: %.2f", w.Opacity()),
	}
	for i, line := range lines {
		y := r.y + 2 + i
		if y >= r.y+r.h-1 {
			break
		}
		d.putString(r.x+2, y, inner, runewidth.Truncate(line, inner, "…"), bodyStyle)
	}
}

func (d *Desktop) drawStatus(width int) {
	st := d.theme.style(d.theme.barFg, d.theme.barBg, false)
	for x := 0; x < width; x++ {
		d.screen.SetContent(x, 0, ' ', nil, st)
	}
	text := statusHelp
	if w := d.focused; w != nil {
		text += "| " + w.Title() + ": " + strings.Join(d.engine.Bound(w), " ")
	}
	d.putString(0, 0, width, runewidth.Truncate(text, width, "…"), st)
}

func (d *Desktop) drawDock(width, height int) {
	var titles []string
	for _, w := range d.windows {
		if w.State() == fx.StateMinimized {
			titles = append(titles, "["+w.Title()+"]")
		}
	}
	if len(titles) == 0 || height < 2 {
		return
	}
	st := d.theme.style(d.theme.barFg, d.theme.barBg, false)
	y := height - 1
	for x := 0; x < width; x++ {
		d.screen.SetContent(x, y, ' ', nil, st)
	}
	text := " dock: " + strings.Join(titles, " ")
	d.putString(0, y, width, runewidth.Truncate(text, width, "…"), st)
}

// putString writes s starting at x, clipped to maxWidth cells.
func (d *Desktop) putString(x, y, maxWidth int, s string, st tcell.Style) {
	col := 0
	for _, ch := range s {
		cw := runewidth.RuneWidth(ch)
		if cw == 0 {
			continue
		}
		if col+cw > maxWidth {
			return
		}
		d.screen.SetContent(x+col, y, ch, nil, st)
		col += cw
	}
}

// blendColor mixes original toward blend by intensity in [0,1].
func blendColor(original, blend tcell.Color, intensity float32) tcell.Color {
	if !original.Valid() || !blend.Valid() {
		return original
	}
	if intensity <= 0 {
		return original
	}
	if intensity >= 1 {
		return blend
	}
	r1, g1, b1 := original.RGB()
	r2, g2, b2 := blend.RGB()
	mix := func(a, b int32) int32 {
		v := int32(float32(a)*(1-intensity) + float32(b)*intensity)
		if v < 0 {
			return 0
		}
		if v > 255 {
			return 255
		}
		return v
	}
	return tcell.NewRGBColor(mix(r1, r2), mix(g1, g2), mix(b1, b2))
}
