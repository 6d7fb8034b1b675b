// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/effects/rollup_test.go
// Summary: RollUp toggles between minimum and recorded expanded height.

package effects

import (
	"testing"
	"time"
)

func TestRollUpToggle(t *testing.T) {
	clock, w := newTestWindow(t)
	NewRollUp(DefaultSettings()).Attach(w)

	w.Press(0, 0, 1)
	clock.Advance(settleTime)
	if h := w.Size().Height; h != 400 {
		t.Fatalf("single click changed height to %v", h)
	}

	w.Press(0, 0, 2)
	clock.Advance(100 * time.Millisecond)
	if h := w.Size().Height; h <= 30 || h >= 400 {
		t.Fatalf("height mid-roll = %v", h)
	}
	clock.Advance(settleTime)
	if h := w.Size().Height; h != 30 {
		t.Fatalf("rolled height = %v, want 30", h)
	}

	w.Press(0, 0, 2)
	clock.Advance(settleTime)
	if h := w.Size().Height; h != 400 {
		t.Fatalf("expanded height = %v, want 400", h)
	}
}

func TestRollUpRapidToggleKeepsExpandedHeight(t *testing.T) {
	clock, w := newTestWindow(t)
	e := NewRollUp(DefaultSettings()).(*rollUpEffect)
	e.Attach(w)

	for i := 0; i < 9; i++ {
		w.Press(0, 0, 2)
		clock.Advance(30 * time.Millisecond)
	}
	clock.Advance(settleTime)
	if h := w.Size().Height; h != 30 {
		t.Fatalf("after odd toggles height = %v, want 30", h)
	}
	w.Press(0, 0, 2)
	clock.Advance(settleTime)
	if h := w.Size().Height; h != 400 {
		t.Fatalf("expanded height = %v, want 400", h)
	}
	if clock.ActiveTimers() != 0 {
		t.Fatalf("timer leaked")
	}

	e.Detach(w)
	if e.windows.len() != 0 {
		t.Fatalf("state kept after detach")
	}
}

func TestRollUpDetachRestoresHeight(t *testing.T) {
	clock, w := newTestWindow(t)
	e := NewRollUp(DefaultSettings())
	e.Attach(w)
	w.Press(0, 0, 2)
	clock.Advance(settleTime)
	e.Detach(w)
	if h := w.Size().Height; h != 400 {
		t.Fatalf("height after detach = %v", h)
	}
}
