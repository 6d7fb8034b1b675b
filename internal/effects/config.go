// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/effects/config.go
// Summary: Per-effect parameters and global animation settings.
// Usage: The host builds Settings from the config store and passes them to
//   RegisterBuiltins; each effect reads its own Params section.

package effects

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/gdamore/tcell/v2"
)

const defaultFrame = 16 * time.Millisecond

// Params is the effect.<Name> configuration section of one effect.
type Params map[string]interface{}

// Settings controls all built-in effects.
type Settings struct {
	// AnimationsEnabled=false makes every duration zero.
	AnimationsEnabled bool
	// Frame is the animation tick interval.
	Frame  time.Duration
	Params map[string]Params
}

// DefaultSettings enables animation with a 16ms frame and no overrides.
func DefaultSettings() Settings {
	return Settings{AnimationsEnabled: true, Frame: defaultFrame}
}

// For returns the parameters for an effect, never nil.
func (s Settings) For(name string) Params {
	if p, ok := s.Params[name]; ok && p != nil {
		return p
	}
	return Params{}
}

func (s Settings) frame() time.Duration {
	if s.Frame <= 0 {
		return defaultFrame
	}
	return s.Frame
}

// duration returns the configured duration_ms for name, or zero when
// animations are off.
func (s Settings) duration(name string, fallbackMS int64) time.Duration {
	if !s.AnimationsEnabled {
		return 0
	}
	d := parseDurationOrDefault(s.For(name), "duration_ms", fallbackMS)
	if d < 0 {
		return 0
	}
	return d
}

func (s Settings) easing(name string) EasingFunc {
	if raw, ok := s.For(name)["easing"].(string); ok {
		if fn, ok := EasingByName(raw); ok {
			return fn
		}
	}
	return EaseOutCubic
}

func (s Settings) float(name, key string, fallback float64) float64 {
	return parseFloatOrDefault(s.For(name), key, fallback)
}

func (s Settings) int(name, key string, fallback int) int {
	return int(parseFloatOrDefault(s.For(name), key, float64(fallback)))
}

func (s Settings) color(name, key string, fallback tcell.Color) tcell.Color {
	return parseColorOrDefault(s.For(name), key, fallback)
}

func parseColorOrDefault(cfg Params, key string, fallback tcell.Color) tcell.Color {
	if cfg == nil {
		return fallback
	}
	if raw, ok := cfg[key]; ok {
		if str, ok := raw.(string); ok {
			if color, ok := parseHexColor(str); ok {
				return color
			}
			// Named colours such as "black" or "navy".
			if color := tcell.GetColor(str); color != tcell.ColorDefault {
				return color
			}
		}
	}
	return fallback
}

// parseHexColor parses "#rrggbb" into a tcell color.
func parseHexColor(value string) (tcell.Color, bool) {
	if len(value) == 7 && value[0] == '#' {
		if v, err := strconv.ParseInt(value[1:], 16, 32); err == nil {
			return tcell.NewRGBColor(int32((v>>16)&0xFF), int32((v>>8)&0xFF), int32(v&0xFF)), true
		}
	}
	return tcell.ColorDefault, false
}

func parseFloatOrDefault(cfg Params, key string, fallback float64) float64 {
	if cfg == nil {
		return fallback
	}
	if raw, ok := cfg[key]; ok {
		switch v := raw.(type) {
		case float64:
			return v
		case float32:
			return float64(v)
		case int:
			return float64(v)
		case int64:
			return float64(v)
		case json.Number:
			if parsed, err := v.Float64(); err == nil {
				return parsed
			}
		case string:
			if parsed, err := strconv.ParseFloat(v, 64); err == nil {
				return parsed
			}
		}
	}
	return fallback
}

func parseDurationOrDefault(cfg Params, key string, fallbackMS int64) time.Duration {
	ms := parseFloatOrDefault(cfg, key, float64(fallbackMS))
	return time.Duration(ms * float64(time.Millisecond))
}
