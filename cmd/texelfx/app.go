// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/texelfx/app.go
// Summary: Builds the config store, effect registry and orchestrator shared
//   by all subcommands.

package main

import (
	"fmt"
	"time"

	"github.com/framegrace/texelfx/config"
	"github.com/framegrace/texelfx/internal/effects"
	"github.com/framegrace/texelfx/internal/engine"
	"github.com/framegrace/texelfx/registry"
)

type app struct {
	store    *config.Store
	registry *registry.Registry
	engine   *engine.Orchestrator
	plugins  registry.LoadReport
}

func openApp(flags *globalFlags) (*app, error) {
	store, err := config.Open(flags.configPath)
	if store == nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	if err != nil {
		// Leave an unreadable file untouched and run on defaults.
		store = config.NewMemory(nil)
	}

	reg := registry.New()
	effects.RegisterBuiltins(reg, effectSettings(store, flags.noAnimations))
	registry.RegisterProviders(reg)

	a := &app{store: store, registry: reg}
	if dir, enabled := store.PluginDir(); enabled && !flags.noPlugins {
		a.plugins = reg.LoadPluginEffects(dir)
	}
	a.engine = engine.New(reg, store)
	return a, nil
}

// effectSettings converts stored configuration into effect settings.
func effectSettings(store *config.Store, noAnimations bool) effects.Settings {
	s := effects.DefaultSettings()
	s.AnimationsEnabled = store.AnimationsEnabled() && !noAnimations
	if ms := store.FrameMS(); ms > 0 {
		s.Frame = time.Duration(ms) * time.Millisecond
	}
	s.Params = make(map[string]effects.Params)
	for _, name := range store.EffectNames() {
		s.Params[name] = effects.Params(store.EffectParams(name))
	}
	return s
}
