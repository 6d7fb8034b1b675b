// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/effects/close.go
// Summary: Close interceptors that animate a window out before it is destroyed.
// Usage: Burn fades and shrinks; Explode fades and grows.
// Notes: Closing is canceled, the window is animated, then the Closing
//   handler is removed before Close is issued again.

package effects

import (
	"github.com/framegrace/texelfx/fx"
)

type closeState struct {
	closing   fx.Subscription
	anim      *run
	replaying bool

	startOpacity float64
	startSize    fx.Size
}

type closeEffect struct {
	effectBase
	sizeFactor float64
	windows    *arena[closeState]
}

// NewBurn fades a closing window out while shrinking it.
func NewBurn(s Settings) fx.Effect {
	return newCloseEffect("Burn", "Fades and shrinks a window as it closes", s, 200, s.float("Burn", "factor", 0.85))
}

// NewExplode fades a closing window out while growing it.
func NewExplode(s Settings) fx.Effect {
	return newCloseEffect("Explode", "Blows a window apart as it closes", s, 200, s.float("Explode", "factor", 1.25))
}

func newCloseEffect(name, desc string, s Settings, fallbackMS int64, factor float64) *closeEffect {
	if factor < 0 {
		factor = 0
	}
	return &closeEffect{
		effectBase: newEffectBase(name, desc, s, fallbackMS),
		sizeFactor: factor,
		windows:    newArena[closeState](),
	}
}

func (e *closeEffect) Attach(w fx.Window) {
	rec, created := e.windows.acquire(w.ID())
	if !created || e.duration <= 0 {
		return
	}
	rec.closing = w.Subscribe(fx.SignalClosing, func(ev *fx.Event) { e.onClosing(w, ev) })
}

func (e *closeEffect) onClosing(w fx.Window, ev *fx.Event) {
	rec := e.windows.get(w.ID())
	if rec == nil || rec.replaying {
		return
	}
	ev.Cancel()
	if rec.anim.Running() {
		return
	}
	ok := guard(e.name, func() {
		rec.startOpacity = w.Opacity()
		rec.startSize = w.Size()
		target := fx.Size{
			Width:  rec.startSize.Width * e.sizeFactor,
			Height: rec.startSize.Height * e.sizeFactor,
		}
		rec.anim = e.animate(w, func(t float64) {
			w.SetOpacity(lerp(rec.startOpacity, 0, t))
			w.SetSize(fx.Size{
				Width:  lerp(rec.startSize.Width, target.Width, t),
				Height: lerp(rec.startSize.Height, target.Height, t),
			})
		}, func() {
			e.replay(w, rec)
		}, func(interface{}) {
			e.replay(w, rec)
		})
	})
	if !ok {
		e.replay(w, rec)
	}
}

// replay removes the interceptor and issues the real close exactly once.
func (e *closeEffect) replay(w fx.Window, rec *closeState) {
	if rec.replaying {
		return
	}
	rec.replaying = true
	w.Unsubscribe(rec.closing)
	rec.closing = fx.Subscription{}
	w.Close()
}

func (e *closeEffect) Detach(w fx.Window) {
	rec := e.windows.release(w.ID())
	if rec == nil {
		return
	}
	if rec.anim.Running() && !rec.replaying {
		rec.anim.Stop()
		w.SetOpacity(rec.startOpacity)
		w.SetSize(rec.startSize)
	}
	w.Unsubscribe(rec.closing)
}
