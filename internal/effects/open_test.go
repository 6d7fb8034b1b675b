// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/effects/open_test.go
// Summary: Entrance effects settle at the window's resting values.

package effects

import (
	"testing"
	"time"

	"github.com/framegrace/texelfx/fx"
)

func TestGlideOpenSlidesIntoPlace(t *testing.T) {
	clock, w := newTestWindow(t)
	NewGlideOpen(DefaultSettings()).Attach(w)

	w.Open()
	if w.Opacity() != 0 {
		t.Fatalf("initial opacity = %v", w.Opacity())
	}
	if x := w.Position().X; x != 88 {
		t.Fatalf("initial x = %d, want 88", x)
	}
	clock.Advance(100 * time.Millisecond)
	if x := w.Position().X; x <= 88 || x > 100 {
		t.Fatalf("x mid-animation = %d", x)
	}
	clock.Advance(settleTime)
	if w.Opacity() != 1 || w.Position() != (fx.Point{X: 100, Y: 100}) {
		t.Fatalf("settled opacity=%v position=%v", w.Opacity(), w.Position())
	}
}

func TestDreamRestoresPreviousFilter(t *testing.T) {
	clock, w := newTestWindow(t)
	s := DefaultSettings()
	NewShadow(s).Attach(w)
	NewDream(s).Attach(w)

	w.Open()
	blur, ok := w.Filter().(fx.Blur)
	if !ok || blur.Radius != 12 {
		t.Fatalf("initial filter = %#v", w.Filter())
	}
	clock.Advance(150 * time.Millisecond)
	if b, ok := w.Filter().(fx.Blur); !ok || b.Radius >= 12 {
		t.Fatalf("blur not decaying: %#v", w.Filter())
	}
	clock.Advance(settleTime)
	if !fx.IsShadow(w.Filter()) {
		t.Fatalf("filter after settle = %#v, want shadow", w.Filter())
	}
	if w.Opacity() != 1 {
		t.Fatalf("opacity = %v", w.Opacity())
	}
}

func TestOpenDetachMidAnimationSettles(t *testing.T) {
	clock, w := newTestWindow(t)
	e := NewGlideOpen(DefaultSettings()).(*openEffect)
	e.Attach(w)
	w.Open()
	clock.Advance(50 * time.Millisecond)
	e.Detach(w)

	if w.Opacity() != 1 || w.Position().X != 100 {
		t.Fatalf("opacity=%v x=%d", w.Opacity(), w.Position().X)
	}
	if e.windows.len() != 0 || clock.ActiveTimers() != 0 {
		t.Fatalf("state or timer leaked")
	}
}

func TestDreamDropsFilterOfDetachedOwner(t *testing.T) {
	clock, w := newTestWindow(t)
	s := DefaultSettings()
	shadow := NewShadow(s)
	dream := NewDream(s)
	shadow.Attach(w)
	dream.Attach(w)

	w.Open()
	clock.Advance(100 * time.Millisecond)
	shadow.Detach(w)
	dream.Detach(w)
	if w.Filter() != nil {
		t.Fatalf("filter after teardown = %#v, want none", w.Filter())
	}
	if clock.ActiveTimers() != 0 {
		t.Fatalf("timers left running: %d", clock.ActiveTimers())
	}
}
