// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/effects/static.go
// Summary: Effects that set a filter once on attach and clear it on detach.

package effects

import (
	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texelfx/fx"
)

type shadowEffect struct {
	effectBase
	shadow fx.DropShadow
}

// NewShadow draws a drop shadow under every attached window.
func NewShadow(s Settings) fx.Effect {
	return &shadowEffect{
		effectBase: newEffectBase("Shadow", "Draws a drop shadow under windows", s, 0),
		shadow: fx.DropShadow{
			OffsetX: s.int("Shadow", "offset_x", 1),
			OffsetY: s.int("Shadow", "offset_y", 1),
			Blur:    s.float("Shadow", "blur", 2),
			Color:   s.color("Shadow", "color", tcell.ColorBlack),
			Opacity: clamp01(s.float("Shadow", "opacity", 0.5)),
		},
	}
}

func (e *shadowEffect) Attach(w fx.Window) {
	if !fx.IsShadow(w.Filter()) {
		w.SetFilter(e.shadow)
	}
	claimFilter(w.ID(), e.shadow, e.name)
}

func (e *shadowEffect) Detach(w fx.Window) {
	releaseFilter(w.ID(), e.shadow, e.name)
	if fx.IsShadow(w.Filter()) {
		w.SetFilter(nil)
	}
}

type blurEffect struct {
	effectBase
	radius float64
}

// NewBlurWindows blurs every attached window.
func NewBlurWindows(s Settings) fx.Effect {
	return &blurEffect{
		effectBase: newEffectBase("BlurWindows", "Blurs window contents", s, 0),
		radius:     s.float("BlurWindows", "radius", 4),
	}
}

func (e *blurEffect) Attach(w fx.Window) {
	if !fx.IsBlur(w.Filter()) {
		w.SetFilter(fx.Blur{Radius: e.radius})
	}
	claimFilter(w.ID(), fx.Blur{}, e.name)
}

func (e *blurEffect) Detach(w fx.Window) {
	releaseFilter(w.ID(), fx.Blur{}, e.name)
	if fx.IsBlur(w.Filter()) {
		w.SetFilter(nil)
	}
}
