// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/effects/focus.go
// Summary: Focus-driven effects that animate between an active and an
//   inactive look.
// Usage: Transparency fades inactive windows, BlurInactive blurs them and
//   DodgeFocus nudges them aside.
// Notes: A new focus change stops the previous run and starts from the
//   current value toward the new endpoint.

package effects

import (
	"github.com/framegrace/texelfx/fx"
)

type focusState struct {
	activated   fx.Subscription
	deactivated fx.Subscription
	anim        *run

	inactive   bool
	displaced  bool // away from the active look
	rest       fx.Point
	prevFilter savedFilter
	radius     float64
}

type focusStyle int

const (
	styleTransparency focusStyle = iota
	styleBlurInactive
	styleDodge
)

type focusEffect struct {
	effectBase
	style   focusStyle
	opacity float64
	radius  float64
	dodge   fx.Point
	windows *arena[focusState]
}

// NewTransparency makes unfocused windows translucent.
func NewTransparency(s Settings) fx.Effect {
	return &focusEffect{
		effectBase: newEffectBase("Transparency", "Makes unfocused windows translucent", s, 160),
		style:      styleTransparency,
		opacity:    clamp01(s.float("Transparency", "opacity", 0.8)),
		windows:    newArena[focusState](),
	}
}

// NewBlurInactive blurs windows while they are unfocused.
func NewBlurInactive(s Settings) fx.Effect {
	return &focusEffect{
		effectBase: newEffectBase("BlurInactive", "Blurs windows that lose focus", s, 180),
		style:      styleBlurInactive,
		radius:     s.float("BlurInactive", "radius", 6),
		windows:    newArena[focusState](),
	}
}

// NewDodgeFocus moves unfocused windows aside by a fixed delta.
func NewDodgeFocus(s Settings) fx.Effect {
	return &focusEffect{
		effectBase: newEffectBase("DodgeFocus", "Nudges windows aside when they lose focus", s, 200),
		style:      styleDodge,
		dodge: fx.Point{
			X: s.int("DodgeFocus", "offset_x", 4),
			Y: s.int("DodgeFocus", "offset_y", 2),
		},
		windows: newArena[focusState](),
	}
}

func (e *focusEffect) Attach(w fx.Window) {
	rec, created := e.windows.acquire(w.ID())
	if !created {
		return
	}
	rec.activated = w.Subscribe(fx.SignalActivated, func(*fx.Event) { e.onFocus(w, false) })
	rec.deactivated = w.Subscribe(fx.SignalDeactivated, func(*fx.Event) { e.onFocus(w, true) })
}

func (e *focusEffect) onFocus(w fx.Window, inactive bool) {
	rec := e.windows.get(w.ID())
	if rec == nil {
		return
	}
	rec.anim.Stop()
	rec.inactive = inactive
	guard(e.name, func() {
		switch e.style {
		case styleTransparency:
			e.fadeTo(w, rec, inactive)
		case styleBlurInactive:
			e.blurTo(w, rec, inactive)
		case styleDodge:
			e.dodgeTo(w, rec, inactive)
		}
	})
}

func (e *focusEffect) fadeTo(w fx.Window, rec *focusState, inactive bool) {
	from := w.Opacity()
	to := 1.0
	if inactive {
		to = e.opacity
	}
	rec.anim = e.animate(w, func(t float64) {
		w.SetOpacity(lerp(from, to, t))
	}, nil, func(interface{}) {
		guard(e.name, func() { w.SetOpacity(to) })
	})
}

func (e *focusEffect) blurTo(w fx.Window, rec *focusState, inactive bool) {
	if !inactive && !rec.displaced {
		return
	}
	if inactive && !rec.displaced {
		rec.prevFilter = saveFilter(w)
	}
	rec.displaced = true
	from := rec.radius
	to := 0.0
	if inactive {
		to = e.radius
	}
	final := func() {
		rec.radius = to
		if to > 0 {
			w.SetFilter(fx.Blur{Radius: to})
			return
		}
		rec.prevFilter.restore(w)
		rec.prevFilter = savedFilter{}
		rec.displaced = false
	}
	rec.anim = e.animate(w, func(t float64) {
		rec.radius = lerp(from, to, t)
		w.SetFilter(fx.Blur{Radius: rec.radius})
	}, final, func(interface{}) {
		guard(e.name, final)
	})
}

func (e *focusEffect) dodgeTo(w fx.Window, rec *focusState, inactive bool) {
	if !inactive && !rec.displaced {
		return
	}
	if inactive && !rec.displaced {
		rec.rest = w.Position()
	}
	rec.displaced = true
	from := w.Position()
	to := rec.rest
	if inactive {
		to = fx.Point{X: rec.rest.X + e.dodge.X, Y: rec.rest.Y + e.dodge.Y}
	}
	final := func() {
		w.SetPosition(to)
		if !inactive {
			rec.displaced = false
		}
	}
	rec.anim = e.animate(w, func(t float64) {
		w.SetPosition(fx.Point{X: lerpInt(from.X, to.X, t), Y: lerpInt(from.Y, to.Y, t)})
	}, final, func(interface{}) {
		guard(e.name, final)
	})
}

func (e *focusEffect) Detach(w fx.Window) {
	rec := e.windows.release(w.ID())
	if rec == nil {
		return
	}
	moving := rec.anim.Running()
	rec.anim.Stop()
	w.Unsubscribe(rec.activated)
	w.Unsubscribe(rec.deactivated)
	guard(e.name, func() {
		switch e.style {
		case styleTransparency:
			if rec.inactive || moving {
				w.SetOpacity(1)
			}
		case styleBlurInactive:
			if rec.displaced {
				rec.prevFilter.restore(w)
			}
		case styleDodge:
			if rec.displaced {
				w.SetPosition(rec.rest)
			}
		}
	})
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
