// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/config.go
// Summary: Settings store for texelfx: effect bindings, plugin and
//   animation options, and per-effect parameters.
// Usage: Open the store once at startup; the orchestrator reads Bindings and
//   calls Save after every enable/disable.

package config

import (
	"fmt"
	"log"
	"sync"
)

const (
	// SectionTargets maps target keys to ordered effect-name lists.
	SectionTargets = "effects.targets"
	// SectionPlugins holds plugin discovery options.
	SectionPlugins = "plugins"
	// SectionAnimation holds global animation options.
	SectionAnimation = "animation"
	// EffectSectionPrefix prefixes per-effect parameter sections.
	EffectSectionPrefix = "effect."
)

// Config stores configuration sections as JSON-compatible data.
type Config map[string]interface{}

// Section stores key/value pairs for a configuration section.
type Section map[string]interface{}

// Store is a configuration file plus its in-memory state.
type Store struct {
	mu      sync.RWMutex
	path    string
	backend backend
	cfg     Config
}

// Open loads the store at path, or at DefaultPath when path is empty. A
// missing file yields the defaults, which are written out immediately. A
// file that cannot be parsed is logged and replaced by defaults in memory.
func Open(path string) (*Store, error) {
	path, err := resolvePath(path)
	if err != nil {
		return nil, err
	}
	s := &Store{path: path, backend: backendFor(path)}
	if err := s.Reload(); err != nil {
		return s, err
	}
	return s, nil
}

// Load reads the store at path like Open but never writes. A missing file
// yields the defaults and stays missing.
func Load(path string) (*Store, error) {
	path, err := resolvePath(path)
	if err != nil {
		return nil, err
	}
	s := &Store{path: path, backend: backendFor(path)}
	cfg, _, err := s.backend.read(path)
	if err != nil || cfg == nil {
		cfg = make(Config)
	}
	applyDefaults(cfg)
	s.cfg = cfg
	return s, err
}

func resolvePath(path string) (string, error) {
	if path != "" {
		return path, nil
	}
	p, err := DefaultPath()
	if err != nil {
		return "", fmt.Errorf("resolve config path: %w", err)
	}
	return p, nil
}

// NewMemory creates a store that never touches disk.
func NewMemory(cfg Config) *Store {
	cfg = Clone(cfg)
	if cfg == nil {
		cfg = make(Config)
	}
	applyDefaults(cfg)
	return &Store{cfg: cfg}
}

// Path returns the backing file, or "" for memory stores.
func (s *Store) Path() string { return s.path }

// Reload re-reads the backing file.
func (s *Store) Reload() error {
	if s.path == "" {
		return nil
	}
	cfg, exists, err := s.backend.read(s.path)
	if err != nil {
		log.Printf("Config: Failed to read %s: %v", s.path, err)
		cfg = make(Config)
	}
	if cfg == nil {
		cfg = make(Config)
	}
	applyDefaults(cfg)

	s.mu.Lock()
	s.cfg = cfg
	s.mu.Unlock()

	if !exists && err == nil {
		if werr := s.Save(); werr != nil {
			log.Printf("Config: Failed to write default config: %v", werr)
			return werr
		}
		log.Printf("Config: Wrote default config to %s", s.path)
		return nil
	}
	if err == nil {
		log.Printf("Config: Loaded config from %s", s.path)
	}
	return err
}

// Save persists the in-memory configuration.
func (s *Store) Save() error {
	if s.path == "" {
		return nil
	}
	s.mu.RLock()
	snapshot := Clone(s.cfg)
	s.mu.RUnlock()
	if err := s.backend.write(s.path, snapshot); err != nil {
		return fmt.Errorf("save %s: %w", s.path, err)
	}
	return nil
}

// Config returns a copy of the whole configuration.
func (s *Store) Config() Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Clone(s.cfg)
}

// Set stores a single value.
func (s *Store) Set(section, key string, value interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sec := s.cfg.Section(section)
	if sec == nil {
		sec = make(Section)
		s.cfg[section] = sec
	}
	sec[key] = value
}

// Bindings returns a copy of the target key to effect list mapping.
func (s *Store) Bindings() Bindings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return parseBindings(s.cfg[SectionTargets])
}

// SetBindings replaces the target mapping in memory.
func (s *Store) SetBindings(b Bindings) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg[SectionTargets] = b.section()
}

// EffectParams returns a copy of the effect.<name> section.
func (s *Store) EffectParams(name string) Section {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneSection(s.cfg.Section(EffectSectionPrefix + name))
}

// EffectNames lists effects that have a parameter section.
func (s *Store) EffectNames() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var names []string
	for key := range s.cfg {
		if len(key) > len(EffectSectionPrefix) && key[:len(EffectSectionPrefix)] == EffectSectionPrefix {
			names = append(names, key[len(EffectSectionPrefix):])
		}
	}
	return names
}

// AnimationsEnabled reports the animation.enabled switch.
func (s *Store) AnimationsEnabled() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg.GetBool(SectionAnimation, "enabled", true)
}

// FrameMS returns the animation tick interval in milliseconds.
func (s *Store) FrameMS() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg.GetInt(SectionAnimation, "tick_ms", 16)
}

// PluginDir returns the configured plugin directory and whether plugin
// loading is enabled.
func (s *Store) PluginDir() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	dir := s.cfg.GetString(SectionPlugins, "dir", "")
	if dir == "" {
		dir = DefaultPluginDir()
	}
	return dir, s.cfg.GetBool(SectionPlugins, "enabled", true)
}
