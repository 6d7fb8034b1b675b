// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/effects/rollup.go
// Summary: Double-click toggle that rolls a window up to its title bar.

package effects

import (
	"github.com/framegrace/texelfx/fx"
)

type rollUpState struct {
	sub      fx.Subscription
	anim     *run
	rolled   bool
	expanded float64
}

type rollUpEffect struct {
	effectBase
	windows *arena[rollUpState]
}

// NewRollUp toggles a window between its minimum and expanded height on
// double-click.
func NewRollUp(s Settings) fx.Effect {
	return &rollUpEffect{
		effectBase: newEffectBase("RollUp", "Rolls a window up to its title bar on double-click", s, 200),
		windows:    newArena[rollUpState](),
	}
}

func (e *rollUpEffect) Attach(w fx.Window) {
	rec, created := e.windows.acquire(w.ID())
	if !created {
		return
	}
	rec.sub = w.Subscribe(fx.SignalPointerPressed, func(ev *fx.Event) {
		if ev.ClickCount == 2 {
			e.toggle(w)
		}
	})
}

func (e *rollUpEffect) toggle(w fx.Window) {
	rec := e.windows.get(w.ID())
	if rec == nil {
		return
	}
	midway := rec.anim.Running()
	rec.anim.Stop()
	guard(e.name, func() {
		size := w.Size()
		var target float64
		if rec.rolled {
			target = rec.expanded
		} else {
			if !midway || rec.expanded == 0 {
				rec.expanded = size.Height
			}
			target = w.MinHeight()
		}
		rec.rolled = !rec.rolled
		from := size.Height
		rec.anim = e.animate(w, func(t float64) {
			w.SetSize(fx.Size{Width: size.Width, Height: lerp(from, target, t)})
		}, nil, func(interface{}) {
			guard(e.name, func() { w.SetSize(fx.Size{Width: size.Width, Height: target}) })
		})
	})
}

func (e *rollUpEffect) Detach(w fx.Window) {
	rec := e.windows.release(w.ID())
	if rec == nil {
		return
	}
	midway := rec.anim.Running()
	rec.anim.Stop()
	w.Unsubscribe(rec.sub)
	if (rec.rolled || midway) && rec.expanded > 0 {
		guard(e.name, func() {
			s := w.Size()
			w.SetSize(fx.Size{Width: s.Width, Height: rec.expanded})
		})
	}
}
