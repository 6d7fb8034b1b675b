// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: registry/registry.go
// Summary: Implements the effect registry keyed by effect name.
// Usage: Hosts register built-ins, then load plugin effects from
//   ~/.local/share/texelfx/plugins/ with LoadPluginEffects.

package registry

import (
	"log"
	"sort"
	"sync"

	"github.com/framegrace/texelfx/fx"
)

// SourceBuiltIn marks effects registered directly by the host.
const SourceBuiltIn = "built-in"

// Entry is a registered effect along with where it came from.
type Entry struct {
	Descriptor fx.Descriptor
	Effect     fx.Effect
	// Source is SourceBuiltIn, a provider name or a plugin library path.
	Source string
}

// Registry manages the collection of available effects.
type Registry struct {
	mu      sync.RWMutex
	effects map[string]*Entry
	open    opener
}

// New creates a new empty registry.
func New() *Registry {
	return &Registry{
		effects: make(map[string]*Entry),
		open:    openPlugin,
	}
}

// Register inserts or replaces the effect registered under d.Name. The last
// registration wins, so plugins can shadow built-ins.
func (r *Registry) Register(d fx.Descriptor, e fx.Effect) {
	r.register(d, e, SourceBuiltIn)
}

func (r *Registry) register(d fx.Descriptor, e fx.Effect, source string) {
	if e == nil || d.Name == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if prev, ok := r.effects[d.Name]; ok {
		log.Printf("Registry: Effect '%s' from %s replaces %s", d.Name, source, prev.Source)
	}
	r.effects[d.Name] = &Entry{Descriptor: d, Effect: e, Source: source}
}

// Lookup returns the effect instance registered under name.
func (r *Registry) Lookup(name string) (fx.Effect, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.effects[name]
	if !ok {
		return nil, false
	}
	return entry.Effect, true
}

// Get retrieves an entry by name.
// Returns nil if the effect doesn't exist.
func (r *Registry) Get(name string) *Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.effects[name]
	if !ok {
		return nil
	}
	copied := *entry
	return &copied
}

// GetRegisteredNames returns all known effect names, sorted.
func (r *Registry) GetRegisteredNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.effects))
	for name := range r.effects {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// List returns all entries sorted by name.
func (r *Registry) List() []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entries := make([]Entry, 0, len(r.effects))
	for _, entry := range r.effects {
		entries = append(entries, *entry)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Descriptor.Name < entries[j].Descriptor.Name
	})
	return entries
}

// Count returns the number of registered effects.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.effects)
}

// Descriptors returns the descriptor of every registered effect, sorted by
// name.
func (r *Registry) Descriptors() []fx.Descriptor {
	entries := r.List()
	out := make([]fx.Descriptor, len(entries))
	for i, entry := range entries {
		out[i] = entry.Descriptor
	}
	return out
}
