// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/effects/open.go
// Summary: Entrance animations played when a window opens.
// Usage: GlideOpen slides in from the left; Dream fades in out of a blur.

package effects

import (
	"github.com/framegrace/texelfx/fx"
)

type openState struct {
	sub  fx.Subscription
	anim *run

	rest       fx.Point
	prevFilter savedFilter
}

type openStyle int

const (
	styleGlide openStyle = iota
	styleDream
)

type openEffect struct {
	effectBase
	style   openStyle
	offset  int
	radius  float64
	windows *arena[openState]
}

// NewGlideOpen slides and fades a window into place when it opens.
func NewGlideOpen(s Settings) fx.Effect {
	return &openEffect{
		effectBase: newEffectBase("GlideOpen", "Glides a window in from the side as it opens", s, 280),
		style:      styleGlide,
		offset:     s.int("GlideOpen", "offset_x", 12),
		windows:    newArena[openState](),
	}
}

// NewDream fades a window in while its blur clears.
func NewDream(s Settings) fx.Effect {
	return &openEffect{
		effectBase: newEffectBase("Dream", "Fades a window in out of a dreamy blur", s, 300),
		style:      styleDream,
		radius:     s.float("Dream", "radius", 12),
		windows:    newArena[openState](),
	}
}

func (e *openEffect) Attach(w fx.Window) {
	rec, created := e.windows.acquire(w.ID())
	if !created {
		return
	}
	rec.sub = w.Subscribe(fx.SignalOpened, func(*fx.Event) { e.onOpened(w) })
}

func (e *openEffect) onOpened(w fx.Window) {
	rec := e.windows.get(w.ID())
	if rec == nil || rec.anim.Running() {
		return
	}
	ok := guard(e.name, func() {
		rec.rest = w.Position()
		rec.prevFilter = saveFilter(w)
		w.SetOpacity(0)
		switch e.style {
		case styleGlide:
			w.SetPosition(fx.Point{X: rec.rest.X - e.offset, Y: rec.rest.Y})
		case styleDream:
			w.SetFilter(fx.Blur{Radius: e.radius})
		}
		rec.anim = e.animate(w, func(t float64) {
			w.SetOpacity(t)
			switch e.style {
			case styleGlide:
				w.SetPosition(fx.Point{X: lerpInt(rec.rest.X-e.offset, rec.rest.X, t), Y: rec.rest.Y})
			case styleDream:
				w.SetFilter(fx.Blur{Radius: lerp(e.radius, 0, t)})
			}
		}, func() {
			e.settle(w, rec)
		}, func(interface{}) {
			e.settle(w, rec)
		})
	})
	if !ok {
		e.settle(w, rec)
	}
}

// settle puts the window at its resting values.
func (e *openEffect) settle(w fx.Window, rec *openState) {
	rec.anim.Stop()
	guard(e.name, func() {
		w.SetOpacity(1)
		switch e.style {
		case styleGlide:
			w.SetPosition(rec.rest)
		case styleDream:
			rec.prevFilter.restore(w)
		}
	})
}

func (e *openEffect) Detach(w fx.Window) {
	rec := e.windows.release(w.ID())
	if rec == nil {
		return
	}
	if rec.anim.Running() {
		e.settle(w, rec)
	}
	w.Unsubscribe(rec.sub)
}
