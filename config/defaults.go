// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/defaults.go
// Summary: Default values for the texelfx configuration file.

package config

func applyDefaults(cfg Config) {
	if cfg == nil {
		return
	}
	if _, ok := cfg[SectionTargets]; !ok {
		cfg[SectionTargets] = Bindings{Wildcard: {"Shadow"}}.section()
	}
	cfg.RegisterDefaults(SectionPlugins, Section{
		"enabled": true,
		"dir":     "",
	})
	cfg.RegisterDefaults(SectionAnimation, Section{
		"enabled": true,
		"tick_ms": 16,
	})
	cfg.RegisterDefaults(EffectSectionPrefix+"Transparency", Section{
		"opacity":     0.8,
		"duration_ms": 160,
	})
	cfg.RegisterDefaults(EffectSectionPrefix+"Shadow", Section{
		"offset_x": 1,
		"offset_y": 1,
		"opacity":  0.5,
		"color":    "#000000",
	})
}
