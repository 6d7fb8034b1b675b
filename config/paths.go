// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/paths.go
// Summary: XDG path helpers for texelfx configuration and data.

package config

import (
	"path/filepath"

	"github.com/adrg/xdg"
)

const (
	appDirName     = "texelfx"
	configFileName = "texelfx.json"
)

// DefaultPath returns the configuration file to use when none is given. An
// existing texelfx.json, texelfx.toml or texelfx.db is preferred in that
// order; otherwise a new texelfx.json location is returned.
func DefaultPath() (string, error) {
	for _, name := range []string{configFileName, "texelfx.toml", "texelfx.db"} {
		if path, err := xdg.SearchConfigFile(filepath.Join(appDirName, name)); err == nil {
			return path, nil
		}
	}
	return ConfigFile(configFileName)
}

// ConfigFile returns the path of name under the texelfx config directory,
// creating the directory if needed.
func ConfigFile(name string) (string, error) {
	return xdg.ConfigFile(filepath.Join(appDirName, name))
}

// DefaultPluginDir returns the directory scanned for plugin libraries.
func DefaultPluginDir() string {
	return filepath.Join(xdg.DataHome, appDirName, "plugins")
}

// StateFile returns a path for runtime state such as log files.
func StateFile(name string) (string, error) {
	return xdg.StateFile(filepath.Join(appDirName, name))
}
