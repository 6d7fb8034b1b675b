// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: registry/manifest.go
// Summary: Plugin manifest read from plugin subdirectories.
// Usage: A plugin directory may contain <name>/manifest.json pointing at the
//   shared library that exports the effects.

package registry

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const manifestFile = "manifest.json"

// Manifest describes a plugin library.
type Manifest struct {
	// Name identifies the plugin package, not an effect.
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Version     string `json:"version,omitempty"`
	// Library is the shared object, relative to the manifest directory.
	Library string `json:"library"`
	// Effects optionally restricts which exported effects are registered.
	Effects []string `json:"effects,omitempty"`
}

// LoadManifest reads dir/manifest.json.
func LoadManifest(dir string) (*Manifest, error) {
	data, err := os.ReadFile(filepath.Join(dir, manifestFile))
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	return &m, nil
}

// Validate checks that the manifest names a shared object that exists inside
// dir.
func (m *Manifest) Validate(dir string) error {
	switch {
	case m.Name == "":
		return errors.New("manifest name is empty")
	case m.Library == "":
		return errors.New("manifest has no library")
	case !isLibrary(m.Library):
		return fmt.Errorf("library %q is not a shared object", m.Library)
	case filepath.IsAbs(m.Library) || strings.HasPrefix(filepath.Clean(m.Library), ".."):
		return fmt.Errorf("library %q escapes the plugin directory", m.Library)
	}
	if _, err := os.Stat(m.LibraryPath(dir)); err != nil {
		return fmt.Errorf("library %s: %w", m.Library, err)
	}
	return nil
}

// LibraryPath returns the shared library location for a manifest in dir.
func (m *Manifest) LibraryPath(dir string) string {
	return filepath.Join(dir, filepath.Clean(m.Library))
}

// Allows reports whether the manifest permits registering the named effect.
// An empty Effects list allows everything.
func (m *Manifest) Allows(name string) bool {
	if m == nil || len(m.Effects) == 0 {
		return true
	}
	for _, allowed := range m.Effects {
		if allowed == name {
			return true
		}
	}
	return false
}

func isLibrary(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".so")
}
