// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/effects/base.go
// Summary: Shared identity, timing and no-op event handling for built-in effects.
// Usage: Embed effectBase in an effect struct.

package effects

import (
	"time"

	"github.com/framegrace/texelfx/fx"
)

type effectBase struct {
	name        string
	description string
	duration    time.Duration
	frame       time.Duration
	easing      EasingFunc
}

func newEffectBase(name, description string, s Settings, fallbackMS int64) effectBase {
	return effectBase{
		name:        name,
		description: description,
		duration:    s.duration(name, fallbackMS),
		frame:       s.frame(),
		easing:      s.easing(name),
	}
}

func (b *effectBase) Name() string        { return b.name }
func (b *effectBase) Description() string { return b.description }

// ApplyEvent is reserved for host-pushed events; built-in effects ignore it.
func (b *effectBase) ApplyEvent(fx.EventType, fx.EventArgs) {}

// animate starts a run with this effect's timing.
func (b *effectBase) animate(w fx.Window, step func(float64), done func(), fail func(interface{})) *run {
	return startRun(w, animation{
		duration: b.duration,
		frame:    b.frame,
		easing:   b.easing,
		step:     step,
		done:     done,
		fail:     fail,
	})
}
