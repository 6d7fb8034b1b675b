// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/effects/registry.go
// Summary: Catalogue of built-in effect constructors.
// Usage: RegisterBuiltins installs every built-in into an effect registry.

package effects

import (
	"sort"

	"github.com/framegrace/texelfx/fx"
)

// Factory constructs an effect from the shared settings.
type Factory func(Settings) fx.Effect

var builtins = map[string]Factory{
	"Burn":         NewBurn,
	"Explode":      NewExplode,
	"BeamUp":       NewBeamUp,
	"MagicLamp":    NewMagicLamp,
	"GlideOpen":    NewGlideOpen,
	"Dream":        NewDream,
	"Transparency": NewTransparency,
	"BlurInactive": NewBlurInactive,
	"DodgeFocus":   NewDodgeFocus,
	"Wobbly":       NewWobbly,
	"RollUp":       NewRollUp,
	"Shadow":       NewShadow,
	"BlurWindows":  NewBlurWindows,
}

// Registrar receives effect instances. The effect registry satisfies it.
type Registrar interface {
	Register(d fx.Descriptor, e fx.Effect)
}

// BuiltinNames returns the names of all built-in effects, sorted.
func BuiltinNames() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Builtin constructs a single built-in effect by name.
func Builtin(name string, s Settings) (fx.Effect, bool) {
	factory, ok := builtins[name]
	if !ok {
		return nil, false
	}
	return factory(s), true
}

// RegisterBuiltins constructs every built-in effect and registers it in
// name order.
func RegisterBuiltins(r Registrar, s Settings) {
	for _, name := range BuiltinNames() {
		e := builtins[name](s)
		r.Register(fx.Describe(e), e)
	}
}
