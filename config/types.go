// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/types.go
// Summary: Typed access helpers for config store data.
// Notes: Values may come from JSON (float64), TOML (int64) or hand-built
//   maps (int), so every getter accepts all numeric forms.

package config

import (
	"encoding/json"
	"strconv"
)

// Section returns the named section or nil if missing.
func (c Config) Section(sectionName string) Section {
	if c == nil {
		return nil
	}
	if sectionName == "" {
		return Section(c)
	}
	switch v := c[sectionName].(type) {
	case Section:
		return v
	case map[string]interface{}:
		return Section(v)
	}
	return nil
}

// RegisterDefaults ensures a section has defaults without overwriting existing keys.
func (c Config) RegisterDefaults(sectionName string, defaults Section) {
	if c == nil || defaults == nil {
		return
	}
	section := c.Section(sectionName)
	if section == nil {
		section = make(Section)
		c[sectionName] = section
	}
	for key, value := range defaults {
		if _, ok := section[key]; !ok {
			section[key] = value
		}
	}
}

func (c Config) GetString(sectionName, key, defaultValue string) string {
	return c.Section(sectionName).String(key, defaultValue)
}

func (c Config) GetFloat(sectionName, key string, defaultValue float64) float64 {
	return c.Section(sectionName).Float(key, defaultValue)
}

func (c Config) GetInt(sectionName, key string, defaultValue int) int {
	return c.Section(sectionName).Int(key, defaultValue)
}

func (c Config) GetBool(sectionName, key string, defaultValue bool) bool {
	return c.Section(sectionName).Bool(key, defaultValue)
}

// String returns a string value or the default.
func (s Section) String(key, defaultValue string) string {
	if v, ok := s[key].(string); ok {
		return v
	}
	return defaultValue
}

// Float returns a numeric value or the default.
func (s Section) Float(key string, defaultValue float64) float64 {
	if f, ok := toFloat(s[key]); ok {
		return f
	}
	return defaultValue
}

// Int returns an integer value or the default. Fractions are truncated.
func (s Section) Int(key string, defaultValue int) int {
	if f, ok := toFloat(s[key]); ok {
		return int(f)
	}
	return defaultValue
}

// Bool returns a boolean value or the default. Numbers are true when non-zero.
func (s Section) Bool(key string, defaultValue bool) bool {
	switch v := s[key].(type) {
	case bool:
		return v
	case string:
		if parsed, err := strconv.ParseBool(v); err == nil {
			return parsed
		}
		return defaultValue
	}
	if f, ok := toFloat(s[key]); ok {
		return f != 0
	}
	return defaultValue
}

func toFloat(raw interface{}) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		if parsed, err := v.Float64(); err == nil {
			return parsed, true
		}
	case string:
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			return parsed, true
		}
	}
	return 0, false
}
