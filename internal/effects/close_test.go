// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/effects/close_test.go
// Summary: Close interception produces exactly one real close.

package effects

import (
	"testing"
	"time"

	"github.com/framegrace/texelfx/fx"
)

func TestCloseEffectsCloseExactlyOnce(t *testing.T) {
	for _, name := range []string{"Burn", "Explode"} {
		t.Run(name, func(t *testing.T) {
			clock, w := newTestWindow(t)
			e, _ := Builtin(name, DefaultSettings())
			e.Attach(w)

			closed := 0
			w.Subscribe(fx.SignalClosed, func(*fx.Event) { closed++ })

			w.Close()
			if w.Closed() {
				t.Fatalf("close was not intercepted")
			}
			clock.Advance(80 * time.Millisecond)
			if op := w.Opacity(); op <= 0 || op >= 1 {
				t.Fatalf("opacity mid-animation = %v", op)
			}
			w.Close()
			clock.Advance(settleTime)

			if !w.Closed() {
				t.Fatalf("window never closed")
			}
			if closed != 1 {
				t.Fatalf("Closed fired %d times, want 1", closed)
			}
			if n := w.HandlerCount(fx.SignalClosing); n != 0 {
				t.Fatalf("closing interceptor still subscribed (%d)", n)
			}
			if clock.ActiveTimers() != 0 {
				t.Fatalf("timer leaked")
			}
		})
	}
}

func TestCloseEffectSizeDirection(t *testing.T) {
	clock, w := newTestWindow(t)
	burn := NewBurn(DefaultSettings())
	burn.Attach(w)
	w.Close()
	clock.Advance(100 * time.Millisecond)
	if h := w.Size().Height; h >= 400 {
		t.Fatalf("Burn should shrink, height = %v", h)
	}

	clock, w = newTestWindow(t)
	explode := NewExplode(DefaultSettings())
	explode.Attach(w)
	w.Close()
	clock.Advance(100 * time.Millisecond)
	if h := w.Size().Height; h <= 400 {
		t.Fatalf("Explode should grow, height = %v", h)
	}
}

func TestStackedCloseEffectsCloseOnce(t *testing.T) {
	clock, w := newTestWindow(t)
	s := DefaultSettings()
	NewBurn(s).Attach(w)
	NewExplode(s).Attach(w)

	closed := 0
	w.Subscribe(fx.SignalClosed, func(*fx.Event) { closed++ })
	w.Close()
	clock.Advance(settleTime)

	if !w.Closed() || closed != 1 {
		t.Fatalf("closed=%v count=%d", w.Closed(), closed)
	}
}

func TestCloseWithoutAnimationPassesThrough(t *testing.T) {
	_, w := newTestWindow(t)
	NewBurn(Settings{AnimationsEnabled: false}).Attach(w)
	w.Close()
	if !w.Closed() {
		t.Fatalf("close should not be intercepted with animations disabled")
	}
}

func TestCloseFailureStillCloses(t *testing.T) {
	clock, inner := newTestWindow(t)
	w := &faultyWindow{Window: inner, failOpacity: true}
	NewBurn(DefaultSettings()).Attach(w)

	w.Close()
	clock.Advance(settleTime)
	if !inner.Closed() {
		t.Fatalf("failed animation left the window open")
	}
}

func TestCloseDetachReleasesState(t *testing.T) {
	clock, w := newTestWindow(t)
	e := NewBurn(DefaultSettings()).(*closeEffect)
	e.Attach(w)
	w.Close()
	clock.Advance(50 * time.Millisecond)

	e.Detach(w)
	if e.windows.len() != 0 {
		t.Fatalf("state kept after detach")
	}
	if w.Opacity() != 1 || w.Size().Height != 400 {
		t.Fatalf("detach mid-animation left opacity=%v height=%v", w.Opacity(), w.Size().Height)
	}
	if clock.ActiveTimers() != 0 {
		t.Fatalf("timer leaked")
	}
	e.Detach(w)
}
