// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/effects/minimize.go
// Summary: Minimize interceptors that animate a window before it is minimized.
// Usage: BeamUp lifts and fades the window; MagicLamp collapses its height.
// Notes: The window is forced back to Normal, animated, restored, then
//   minimized for real. A per-window guard ignores the state changes the
//   effect causes itself.

package effects

import (
	"sync"

	"github.com/framegrace/texelfx/fx"
)

// replayingMinimize marks windows whose real minimize is being issued by a
// minimize effect, so other minimize effects on the same window let it pass.
var replayingMinimize sync.Map

type minimizeState struct {
	sub       fx.Subscription
	animating bool
	anim      *run

	origPos     fx.Point
	origSize    fx.Size
	origOpacity float64
}

type minimizeStyle int

const (
	styleBeam minimizeStyle = iota
	styleLamp
)

type minimizeEffect struct {
	effectBase
	style   minimizeStyle
	lift    int
	windows *arena[minimizeState]
}

// NewBeamUp lifts a window upward while fading it out before minimizing.
func NewBeamUp(s Settings) fx.Effect {
	return &minimizeEffect{
		effectBase: newEffectBase("BeamUp", "Beams a window upward as it minimizes", s, 220),
		style:      styleBeam,
		lift:       s.int("BeamUp", "lift", 8),
		windows:    newArena[minimizeState](),
	}
}

// NewMagicLamp collapses a window toward its minimum height before minimizing.
func NewMagicLamp(s Settings) fx.Effect {
	return &minimizeEffect{
		effectBase: newEffectBase("MagicLamp", "Squeezes a window into the dock as it minimizes", s, 220),
		style:      styleLamp,
		windows:    newArena[minimizeState](),
	}
}

func (e *minimizeEffect) Attach(w fx.Window) {
	rec, created := e.windows.acquire(w.ID())
	if !created {
		return
	}
	rec.sub = w.Subscribe(fx.SignalPropertyChanged, func(ev *fx.Event) {
		if ev.Property != fx.PropertyState || w.State() != fx.StateMinimized {
			return
		}
		e.onMinimized(w)
	})
}

func (e *minimizeEffect) onMinimized(w fx.Window) {
	if _, busy := replayingMinimize.Load(w.ID()); busy {
		return
	}
	rec := e.windows.get(w.ID())
	if rec == nil || rec.animating || e.duration <= 0 {
		return
	}
	rec.animating = true
	ok := guard(e.name, func() {
		rec.origPos = w.Position()
		rec.origSize = w.Size()
		rec.origOpacity = w.Opacity()
		w.SetState(fx.StateNormal)
		rec.anim = e.animate(w, func(t float64) {
			e.step(w, rec, t)
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

func (e *minimizeEffect) step(w fx.Window, rec *minimizeState, t float64) {
	switch e.style {
	case styleBeam:
		w.SetPosition(fx.Point{X: rec.origPos.X, Y: lerpInt(rec.origPos.Y, rec.origPos.Y-e.lift, t)})
		w.SetOpacity(lerp(rec.origOpacity, 0, t))
	case styleLamp:
		w.SetSize(fx.Size{Width: rec.origSize.Width, Height: lerp(rec.origSize.Height, w.MinHeight(), t)})
		w.SetOpacity(lerp(rec.origOpacity, 0.2, t))
	}
}

// settle restores the animated properties and issues the real minimize. It is
// also the failure path, so every step is attempted independently.
func (e *minimizeEffect) settle(w fx.Window, rec *minimizeState) {
	if !rec.animating {
		return
	}
	rec.anim.Stop()
	guard(e.name, func() {
		w.SetPosition(rec.origPos)
		w.SetSize(rec.origSize)
	})
	guard(e.name, func() { w.SetOpacity(1) })
	replayingMinimize.Store(w.ID(), struct{}{})
	guard(e.name, func() { w.SetState(fx.StateMinimized) })
	replayingMinimize.Delete(w.ID())
	rec.animating = false
}

func (e *minimizeEffect) Detach(w fx.Window) {
	rec := e.windows.get(w.ID())
	if rec == nil {
		return
	}
	if rec.animating {
		e.settle(w, rec)
	}
	e.windows.release(w.ID())
	w.Unsubscribe(rec.sub)
}
