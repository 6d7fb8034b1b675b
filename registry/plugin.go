// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: registry/plugin.go
// Summary: Discovers and loads effects from shared-library plugins.
// Usage: A plugin is built with -buildmode=plugin and exports either
//   NewEffects func() []fx.Effect or NewEffect func() fx.Effect.
// Notes: Each library is loaded in isolation; a failure is logged and the
//   scan continues.

package registry

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"plugin"
	"sort"

	"github.com/framegrace/texelfx/fx"
)

// Exported symbol names looked up in plugin libraries.
const (
	FactoriesSymbol = "NewEffects"
	FactorySymbol   = "NewEffect"
)

var errNoFactory = errors.New("library exports neither " + FactoriesSymbol + " nor " + FactorySymbol)

type symbolTable interface {
	Lookup(name string) (plugin.Symbol, error)
}

type opener func(path string) (symbolTable, error)

func openPlugin(path string) (symbolTable, error) {
	return plugin.Open(path)
}

// SkippedLibrary records a library that could not be loaded.
type SkippedLibrary struct {
	Path string
	Err  error
}

// LoadReport summarizes a plugin scan.
type LoadReport struct {
	// Loaded holds the names of registered plugin effects.
	Loaded  []string
	Skipped []SkippedLibrary
}

// LoadPluginEffects scans dir for plugin libraries and registers every effect
// they export. A missing directory is not an error. Failures never propagate;
// they are logged and listed in the report.
func (r *Registry) LoadPluginEffects(dir string) LoadReport {
	var report LoadReport
	if dir == "" {
		return report
	}
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		log.Printf("Registry: Plugin directory does not exist: %s", dir)
		return report
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		log.Printf("Registry: Failed to read plugin directory %s: %v", dir, err)
		report.Skipped = append(report.Skipped, SkippedLibrary{Path: dir, Err: err})
		return report
	}

	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		var manifest *Manifest
		if entry.IsDir() {
			m, err := manifestFor(path)
			if err != nil {
				log.Printf("Registry: Skipping plugin %s: %v", path, err)
				report.Skipped = append(report.Skipped, SkippedLibrary{Path: path, Err: err})
				continue
			}
			manifest = m
			path = m.LibraryPath(path)
		} else if !isLibrary(entry.Name()) {
			continue
		}

		effects, err := r.loadLibrary(path)
		if err != nil {
			log.Printf("Registry: Failed to load plugin %s: %v", path, err)
			report.Skipped = append(report.Skipped, SkippedLibrary{Path: path, Err: err})
			continue
		}
		for _, e := range effects {
			d := fx.Describe(e)
			if !manifest.Allows(d.Name) {
				log.Printf("Registry: Ignoring effect '%s' not declared by %s", d.Name, manifest.Name)
				continue
			}
			r.register(d, e, path)
			report.Loaded = append(report.Loaded, d.Name)
		}
	}

	sort.Strings(report.Loaded)
	log.Printf("Registry: Loaded %d plugin effects, skipped %d libraries", len(report.Loaded), len(report.Skipped))
	return report
}

func manifestFor(dir string) (*Manifest, error) {
	manifest, err := LoadManifest(dir)
	if err != nil {
		return nil, err
	}
	if err := manifest.Validate(dir); err != nil {
		return nil, fmt.Errorf("validate manifest: %w", err)
	}
	return manifest, nil
}

// loadLibrary opens one library and instantiates its effects. Panics from
// the library's factories are turned into errors.
func (r *Registry) loadLibrary(path string) (effects []fx.Effect, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			effects = nil
			err = fmt.Errorf("plugin panicked: %v", rec)
		}
	}()

	lib, err := r.open(path)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	provide, err := lookupProvider(lib)
	if err != nil {
		return nil, err
	}
	return collect(provide)
}

func lookupProvider(lib symbolTable) (Provider, error) {
	if sym, err := lib.Lookup(FactoriesSymbol); err == nil {
		switch fn := sym.(type) {
		case func() []fx.Effect:
			return fn, nil
		case *func() []fx.Effect:
			return *fn, nil
		}
		return nil, fmt.Errorf("%s has type %T", FactoriesSymbol, sym)
	}
	if sym, err := lib.Lookup(FactorySymbol); err == nil {
		var single func() fx.Effect
		switch fn := sym.(type) {
		case func() fx.Effect:
			single = fn
		case *func() fx.Effect:
			single = *fn
		default:
			return nil, fmt.Errorf("%s has type %T", FactorySymbol, sym)
		}
		return func() []fx.Effect { return []fx.Effect{single()} }, nil
	}
	return nil, errNoFactory
}

// collect calls provide and drops nil or unnamed effects.
func collect(provide Provider) (effects []fx.Effect, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			effects = nil
			err = fmt.Errorf("factory panicked: %v", rec)
		}
	}()
	for _, e := range provide() {
		if e == nil || e.Name() == "" {
			continue
		}
		effects = append(effects, e)
	}
	return effects, nil
}
