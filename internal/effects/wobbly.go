// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/effects/wobbly.go
// Summary: Continuous follow effect that lets a window trail its target position.
// Usage: Attach starts a frame timer; every external move becomes the new
//   target and the window eases toward it 25% of the remaining distance per tick.

package effects

import (
	"math"
	"time"

	"github.com/framegrace/texelfx/fx"
)

type wobblyState struct {
	sub   fx.Subscription
	timer fx.Timer

	curX, curY float64
	target     fx.Point
	settled    bool
	applying   bool
}

type wobblyEffect struct {
	effectBase
	follow  float64
	windows *arena[wobblyState]
}

// NewWobbly creates the follow effect.
func NewWobbly(s Settings) fx.Effect {
	follow := s.float("Wobbly", "follow", 0.25)
	if follow <= 0 || follow > 1 {
		follow = 0.25
	}
	return &wobblyEffect{
		effectBase: newEffectBase("Wobbly", "Makes moved windows trail behind the pointer", s, 0),
		follow:     follow,
		windows:    newArena[wobblyState](),
	}
}

func (e *wobblyEffect) Attach(w fx.Window) {
	rec, created := e.windows.acquire(w.ID())
	if !created {
		return
	}
	p := w.Position()
	rec.curX, rec.curY = float64(p.X), float64(p.Y)
	rec.target = p
	rec.settled = true
	rec.sub = w.Subscribe(fx.SignalPositionChanged, func(*fx.Event) { e.onMoved(w) })
	rec.timer = w.Scheduler().Every(e.frame, func(time.Duration) { e.tick(w) })
}

func (e *wobblyEffect) onMoved(w fx.Window) {
	rec := e.windows.get(w.ID())
	if rec == nil || rec.applying {
		return
	}
	rec.target = w.Position()
	rec.settled = false
	e.apply(w, rec)
}

func (e *wobblyEffect) tick(w fx.Window) {
	rec := e.windows.get(w.ID())
	if rec == nil || rec.settled {
		return
	}
	dx := float64(rec.target.X) - rec.curX
	dy := float64(rec.target.Y) - rec.curY
	if math.Abs(dx) < 1 && math.Abs(dy) < 1 {
		rec.curX, rec.curY = float64(rec.target.X), float64(rec.target.Y)
		rec.settled = true
	} else {
		rec.curX += dx * e.follow
		rec.curY += dy * e.follow
	}
	e.apply(w, rec)
}

// apply moves the window to the followed position without treating the
// resulting PositionChanged as a new target.
func (e *wobblyEffect) apply(w fx.Window, rec *wobblyState) {
	rec.applying = true
	defer func() { rec.applying = false }()
	guard(e.name, func() {
		w.SetPosition(fx.Point{X: int(math.Round(rec.curX)), Y: int(math.Round(rec.curY))})
	})
}

func (e *wobblyEffect) Detach(w fx.Window) {
	rec := e.windows.release(w.ID())
	if rec == nil {
		return
	}
	if rec.timer != nil {
		rec.timer.Stop()
	}
	w.Unsubscribe(rec.sub)
	if !rec.settled {
		guard(e.name, func() { w.SetPosition(rec.target) })
	}
}
