// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/bindings.go
// Summary: Target key to effect-name list mapping.

package config

import "sort"

// Wildcard is the target key that applies to every window.
const Wildcard = "*"

// Bindings maps a target key to an ordered, duplicate-free list of effect
// names. A missing key means no effects for it.
type Bindings map[string][]string

// Enable appends name to key's list unless already present.
func (b Bindings) Enable(key, name string) bool {
	if key == "" || name == "" {
		return false
	}
	for _, existing := range b[key] {
		if existing == name {
			return false
		}
	}
	b[key] = append(b[key], name)
	return true
}

// Disable removes name from key's list. An emptied key is removed.
func (b Bindings) Disable(key, name string) bool {
	list, ok := b[key]
	if !ok {
		return false
	}
	for i, existing := range list {
		if existing != name {
			continue
		}
		rest := append(append([]string(nil), list[:i]...), list[i+1:]...)
		if len(rest) == 0 {
			delete(b, key)
		} else {
			b[key] = rest
		}
		return true
	}
	return false
}

// Resolve returns the wildcard list followed by the key's list. Names that
// appear in both are kept twice; attaching is idempotent.
func (b Bindings) Resolve(key string) []string {
	names := append([]string(nil), b[Wildcard]...)
	if key != Wildcard {
		names = append(names, b[key]...)
	}
	return names
}

// Keys returns the configured target keys, sorted.
func (b Bindings) Keys() []string {
	keys := make([]string, 0, len(b))
	for key := range b {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Clone returns a deep copy.
func (b Bindings) Clone() Bindings {
	out := make(Bindings, len(b))
	for key, list := range b {
		out[key] = append([]string(nil), list...)
	}
	return out
}

func (b Bindings) section() Section {
	out := make(Section, len(b))
	for key, list := range b {
		out[key] = append([]string(nil), list...)
	}
	return out
}

// parseBindings reads the targets section, dropping non-string entries and
// duplicates while keeping first-seen order.
func parseBindings(raw interface{}) Bindings {
	out := make(Bindings)
	var section Section
	switch v := raw.(type) {
	case Section:
		section = v
	case map[string]interface{}:
		section = Section(v)
	default:
		return out
	}
	for key, value := range section {
		var names []string
		switch list := value.(type) {
		case []string:
			names = list
		case []interface{}:
			for _, item := range list {
				if s, ok := item.(string); ok {
					names = append(names, s)
				}
			}
		case string:
			names = []string{list}
		}
		for _, name := range names {
			out.Enable(key, name)
		}
	}
	return out
}
