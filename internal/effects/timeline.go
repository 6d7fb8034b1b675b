// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/effects/timeline.go
// Summary: Easing curves and the time-based animation run driver.
// Usage: Effects call startRun to interpolate window properties over a
//   fixed duration on the window's scheduler.
// Notes: Progress is computed from elapsed wall-clock time, never from a
//   tick count, so it stays correct when the loop jitters.

package effects

import (
	"log"
	"strings"
	"time"

	"github.com/framegrace/texelfx/fx"
)

// EasingFunc maps progress [0,1] to eased value [0,1].
type EasingFunc func(progress float64) float64

// Common easing functions
var (
	// EaseLinear - No easing, constant speed
	EaseLinear EasingFunc = func(t float64) float64 { return t }

	// EaseSmoothstep - Smooth S-curve
	EaseSmoothstep EasingFunc = func(t float64) float64 {
		return t * t * (3.0 - 2.0*t)
	}

	// EaseSmootherstep - Even smoother S-curve with zero derivatives at 0 and 1
	EaseSmootherstep EasingFunc = func(t float64) float64 {
		return t * t * t * (t*(t*6.0-15.0) + 10.0)
	}

	EaseInQuad EasingFunc = func(t float64) float64 {
		return t * t
	}

	EaseOutQuad EasingFunc = func(t float64) float64 {
		return t * (2.0 - t)
	}

	// EaseOutCubic - 1-(1-t)^3, the default for every built-in effect
	EaseOutCubic EasingFunc = func(t float64) float64 {
		t1 := t - 1.0
		return t1*t1*t1 + 1.0
	}

	EaseInOutCubic EasingFunc = func(t float64) float64 {
		if t < 0.5 {
			return 4.0 * t * t * t
		}
		t1 := 2.0*t - 2.0
		return 1.0 + t1*t1*t1*0.5
	}
)

var easingNames = map[string]EasingFunc{
	"linear":            EaseLinear,
	"smoothstep":        EaseSmoothstep,
	"smootherstep":      EaseSmootherstep,
	"ease-in-quad":      EaseInQuad,
	"ease-out-quad":     EaseOutQuad,
	"ease-out-cubic":    EaseOutCubic,
	"ease-in-out-cubic": EaseInOutCubic,
}

// EasingByName resolves a configured easing name.
func EasingByName(name string) (EasingFunc, bool) {
	fn, ok := easingNames[strings.ToLower(strings.TrimSpace(name))]
	return fn, ok
}

// Progress converts elapsed time into [0,1] progress.
func Progress(elapsed, duration time.Duration) float64 {
	if duration <= 0 {
		return 1
	}
	p := float64(elapsed) / float64(duration)
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

func lerp(from, to, t float64) float64 {
	return from + (to-from)*t
}

func lerpInt(from, to int, t float64) int {
	v := lerp(float64(from), float64(to), t)
	if v < 0 {
		return int(v - 0.5)
	}
	return int(v + 0.5)
}

// animation describes one fixed-duration interpolation.
type animation struct {
	duration time.Duration
	frame    time.Duration
	easing   EasingFunc

	// step receives the eased progress on every frame, ending with 1.
	step func(eased float64)
	// done runs once after the final step.
	done func()
	// fail runs instead of done when step or done panics.
	fail func(reason interface{})
}

// run is a live animation. Stop cancels it without calling done.
type run struct {
	timer    fx.Timer
	finished bool
}

func (r *run) Stop() {
	if r == nil || r.finished {
		return
	}
	r.finished = true
	if r.timer != nil {
		r.timer.Stop()
	}
}

func (r *run) Running() bool { return r != nil && !r.finished }

// startRun begins a on w's scheduler. A zero duration completes
// synchronously.
func startRun(w fx.Window, a animation) *run {
	if a.easing == nil {
		a.easing = EaseOutCubic
	}
	if a.frame <= 0 {
		a.frame = defaultFrame
	}
	r := &run{}
	if a.duration <= 0 {
		r.finished = true
		a.finish(1)
		return r
	}
	r.timer = w.Scheduler().Every(a.frame, func(elapsed time.Duration) {
		if r.finished {
			return
		}
		p := Progress(elapsed, a.duration)
		if p < 1 {
			if !a.safeStep(a.easing(p)) {
				r.Stop()
			}
			return
		}
		r.Stop()
		a.finish(1)
	})
	return r
}

// finish applies the final frame and completion, routing a panic in either
// to fail.
func (a animation) finish(eased float64) {
	if !a.safeStep(eased) {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			a.failed(r)
		}
	}()
	if a.done != nil {
		a.done()
	}
}

func (a animation) safeStep(eased float64) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			ok = false
			a.failed(r)
		}
	}()
	if a.step != nil {
		a.step(eased)
	}
	return true
}

func (a animation) failed(reason interface{}) {
	log.Printf("Effects: animation failed: %v", reason)
	if a.fail == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Effects: animation fallback failed: %v", r)
		}
	}()
	a.fail(reason)
}

// guard runs fn, logging instead of propagating a panic. Returns false when
// fn panicked.
func guard(name string, fn func()) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Effects: %s: recovered: %v", name, r)
			ok = false
		}
	}()
	fn()
	return true
}
