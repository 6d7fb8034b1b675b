// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/effects/effects_test.go
// Summary: Shared fixtures for effect tests.

package effects

import (
	"testing"
	"time"

	"github.com/framegrace/texelfx/fx"
	"github.com/framegrace/texelfx/internal/loop"
	"github.com/framegrace/texelfx/internal/window"
)

const settleTime = 500 * time.Millisecond

func newTestWindow(t *testing.T) (*loop.Manual, *window.Window) {
	t.Helper()
	clock := loop.NewManual(time.Unix(0, 0))
	w := window.New(clock, window.Options{
		Title:     "test",
		Position:  fx.Point{X: 100, Y: 100},
		Size:      fx.Size{Width: 80, Height: 400},
		MinHeight: 30,
	})
	return clock, w
}

// faultyWindow panics from selected setters to exercise fallback paths.
type faultyWindow struct {
	*window.Window
	failOpacity  bool
	failPosition bool
}

func (f *faultyWindow) SetOpacity(v float64) {
	if f.failOpacity && v < 1 {
		panic("compositor unavailable")
	}
	f.Window.SetOpacity(v)
}

func (f *faultyWindow) SetPosition(p fx.Point) {
	if f.failPosition {
		panic("window manager refused move")
	}
	f.Window.SetPosition(p)
}

func TestProgressClamped(t *testing.T) {
	cases := []struct {
		elapsed, duration time.Duration
		want              float64
	}{
		{0, 100 * time.Millisecond, 0},
		{50 * time.Millisecond, 100 * time.Millisecond, 0.5},
		{150 * time.Millisecond, 100 * time.Millisecond, 1},
		{-time.Millisecond, 100 * time.Millisecond, 0},
		{time.Millisecond, 0, 1},
	}
	for _, tc := range cases {
		if got := Progress(tc.elapsed, tc.duration); got != tc.want {
			t.Errorf("Progress(%v, %v) = %v, want %v", tc.elapsed, tc.duration, got, tc.want)
		}
	}
}

func TestEaseOutCubic(t *testing.T) {
	for _, p := range []float64{0, 0.25, 0.5, 0.75, 1} {
		want := 1 - (1-p)*(1-p)*(1-p)
		if got := EaseOutCubic(p); got-want > 1e-9 || want-got > 1e-9 {
			t.Errorf("EaseOutCubic(%v) = %v, want %v", p, got, want)
		}
	}
}

func TestEasingByName(t *testing.T) {
	if _, ok := EasingByName(" Ease-Out-Cubic "); !ok {
		t.Fatalf("expected ease-out-cubic to resolve")
	}
	if _, ok := EasingByName("bounce"); ok {
		t.Fatalf("unexpected easing resolved")
	}
}

func TestRunUsesElapsedTime(t *testing.T) {
	clock, w := newTestWindow(t)
	var seen []float64
	done := 0
	startRun(w, animation{
		duration: 100 * time.Millisecond,
		frame:    16 * time.Millisecond,
		easing:   EaseLinear,
		step:     func(v float64) { seen = append(seen, v) },
		done:     func() { done++ },
	})
	clock.Advance(50 * time.Millisecond)
	if len(seen) == 0 || seen[len(seen)-1] < 0.45 {
		t.Fatalf("progress after 50ms = %v", seen)
	}
	clock.Advance(settleTime)
	if done != 1 {
		t.Fatalf("done called %d times", done)
	}
	if seen[len(seen)-1] != 1 {
		t.Fatalf("final step = %v, want 1", seen[len(seen)-1])
	}
	if clock.ActiveTimers() != 0 {
		t.Fatalf("timer leaked")
	}
}

func TestRunZeroDurationCompletesSynchronously(t *testing.T) {
	_, w := newTestWindow(t)
	done := false
	r := startRun(w, animation{step: func(float64) {}, done: func() { done = true }})
	if !done || r.Running() {
		t.Fatalf("zero-duration run did not complete immediately")
	}
}

func TestSettingsDisableAnimations(t *testing.T) {
	s := Settings{AnimationsEnabled: false, Params: map[string]Params{"Burn": {"duration_ms": 500}}}
	if d := s.duration("Burn", 200); d != 0 {
		t.Fatalf("duration = %v, want 0", d)
	}
	s.AnimationsEnabled = true
	if d := s.duration("Burn", 200); d != 500*time.Millisecond {
		t.Fatalf("duration = %v, want 500ms", d)
	}
	if d := s.duration("Explode", 200); d != 200*time.Millisecond {
		t.Fatalf("fallback duration = %v", d)
	}
}

func TestRegisterBuiltins(t *testing.T) {
	reg := &recordingRegistrar{}
	RegisterBuiltins(reg, DefaultSettings())
	if len(reg.names) != len(BuiltinNames()) {
		t.Fatalf("registered %d effects, want %d", len(reg.names), len(BuiltinNames()))
	}
	for i, name := range BuiltinNames() {
		if reg.names[i] != name {
			t.Fatalf("registration %d = %q, want %q", i, reg.names[i], name)
		}
	}
}

type recordingRegistrar struct{ names []string }

func (r *recordingRegistrar) Register(d fx.Descriptor, e fx.Effect) {
	if d.Name != e.Name() {
		panic("descriptor mismatch")
	}
	r.names = append(r.names, d.Name)
}
