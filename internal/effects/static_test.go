// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/effects/static_test.go

package effects

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texelfx/fx"
)

func TestShadowIdempotent(t *testing.T) {
	_, w := newTestWindow(t)
	e := NewShadow(DefaultSettings())

	e.Attach(w)
	first := w.Filter()
	e.Attach(w)
	if w.Filter() != first {
		t.Fatalf("second attach replaced the shadow")
	}
	e.Detach(w)
	if w.Filter() != nil {
		t.Fatalf("filter after detach = %#v", w.Filter())
	}
	e.Detach(w)
}

func TestShadowParams(t *testing.T) {
	_, w := newTestWindow(t)
	s := DefaultSettings()
	s.Params = map[string]Params{"Shadow": {"offset_x": 3, "color": "#102030", "opacity": "0.25"}}
	NewShadow(s).Attach(w)

	shadow, ok := w.Filter().(fx.DropShadow)
	if !ok {
		t.Fatalf("filter = %#v", w.Filter())
	}
	if shadow.OffsetX != 3 || shadow.OffsetY != 1 {
		t.Fatalf("offset = (%d,%d)", shadow.OffsetX, shadow.OffsetY)
	}
	if shadow.Color != tcell.NewRGBColor(0x10, 0x20, 0x30) {
		t.Fatalf("color = %v", shadow.Color)
	}
	if shadow.Opacity != 0.25 {
		t.Fatalf("opacity = %v", shadow.Opacity)
	}

	_, named := newTestWindow(t)
	s.Params = map[string]Params{"Shadow": {"color": "navy"}}
	NewShadow(s).Attach(named)
	if got := named.Filter().(fx.DropShadow).Color; got != tcell.ColorNavy {
		t.Fatalf("named color = %v, want navy", got)
	}
}

func TestBlurWindowsLeavesOtherFiltersOnDetach(t *testing.T) {
	_, w := newTestWindow(t)
	blur := NewBlurWindows(DefaultSettings())
	blur.Attach(w)
	if !fx.IsBlur(w.Filter()) {
		t.Fatalf("filter = %#v", w.Filter())
	}
	w.SetFilter(fx.DropShadow{})
	blur.Detach(w)
	if !fx.IsShadow(w.Filter()) {
		t.Fatalf("detach removed a filter it does not own")
	}
}
