// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: registry/registry_test.go
// Summary: Registry lookup, overwrite and plugin isolation tests.

package registry

import (
	"errors"
	"os"
	"path/filepath"
	"plugin"
	"testing"

	"github.com/framegrace/texelfx/fx"
)

type stubEffect struct {
	name string
	desc string
}

func (s *stubEffect) Name() string                          { return s.name }
func (s *stubEffect) Description() string                   { return s.desc }
func (s *stubEffect) Attach(fx.Window)                      {}
func (s *stubEffect) Detach(fx.Window)                      {}
func (s *stubEffect) ApplyEvent(fx.EventType, fx.EventArgs) {}

type fakeLibrary map[string]plugin.Symbol

func (f fakeLibrary) Lookup(name string) (plugin.Symbol, error) {
	if sym, ok := f[name]; ok {
		return sym, nil
	}
	return nil, errors.New("symbol not found")
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestRegisterLastWins(t *testing.T) {
	r := New()
	first := &stubEffect{name: "Shadow", desc: "built-in"}
	second := &stubEffect{name: "Shadow", desc: "plugin"}
	r.Register(fx.Describe(first), first)
	r.Register(fx.Describe(second), second)

	got, ok := r.Lookup("Shadow")
	if !ok || got != second {
		t.Fatalf("Lookup returned %v, want the later registration", got)
	}
	if r.Count() != 1 {
		t.Fatalf("Count = %d, want 1", r.Count())
	}
	if desc := r.Get("Shadow").Descriptor.Description; desc != "plugin" {
		t.Fatalf("description = %q", desc)
	}
}

func TestLookupIsCaseSensitive(t *testing.T) {
	r := New()
	e := &stubEffect{name: "Wobbly"}
	r.Register(fx.Describe(e), e)
	if _, ok := r.Lookup("wobbly"); ok {
		t.Fatalf("lookup should be case-sensitive")
	}
	if r.Get("missing") != nil {
		t.Fatalf("Get of unknown name should be nil")
	}
}

func TestGetRegisteredNamesSorted(t *testing.T) {
	r := New()
	for _, name := range []string{"Wobbly", "Burn", "RollUp"} {
		e := &stubEffect{name: name}
		r.Register(fx.Describe(e), e)
	}
	names := r.GetRegisteredNames()
	want := []string{"Burn", "RollUp", "Wobbly"}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("names = %v, want %v", names, want)
		}
	}
	descs := r.Descriptors()
	if len(descs) != len(want) {
		t.Fatalf("Descriptors len = %d, want %d", len(descs), len(want))
	}
	for i := range want {
		if descs[i].Name != want[i] {
			t.Fatalf("Descriptors[%d] = %q, want %q", i, descs[i].Name, want[i])
		}
	}
}

func TestLoadPluginEffectsMissingDirectory(t *testing.T) {
	r := New()
	report := r.LoadPluginEffects(filepath.Join(t.TempDir(), "nope"))
	if len(report.Loaded) != 0 || len(report.Skipped) != 0 {
		t.Fatalf("unexpected report %+v", report)
	}
}

func TestLoadPluginEffectsSkipsCorruptLibrary(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "broken.so"), "definitely not an ELF file")
	writeFile(t, filepath.Join(dir, "good.so"), "stand-in")
	writeFile(t, filepath.Join(dir, "README.txt"), "ignored")

	r := New()
	builtin := &stubEffect{name: "Shadow"}
	r.Register(fx.Describe(builtin), builtin)

	r.open = func(path string) (symbolTable, error) {
		if filepath.Base(path) == "good.so" {
			return fakeLibrary{
				FactoriesSymbol: func() []fx.Effect {
					return []fx.Effect{&stubEffect{name: "Pulse"}, nil}
				},
			}, nil
		}
		return openPlugin(path)
	}

	report := r.LoadPluginEffects(dir)
	if _, ok := r.Lookup("Pulse"); !ok {
		t.Fatalf("valid plugin effect not registered")
	}
	if _, ok := r.Lookup("Shadow"); !ok {
		t.Fatalf("built-in lost after plugin scan")
	}
	if len(report.Loaded) != 1 || report.Loaded[0] != "Pulse" {
		t.Fatalf("loaded = %v", report.Loaded)
	}
	if len(report.Skipped) != 1 || filepath.Base(report.Skipped[0].Path) != "broken.so" {
		t.Fatalf("skipped = %+v", report.Skipped)
	}
	if got := r.Get("Pulse").Source; got != filepath.Join(dir, "good.so") {
		t.Fatalf("source = %q", got)
	}
}

func TestLoadPluginEffectsRecoversFactoryPanic(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.so"), "x")
	writeFile(t, filepath.Join(dir, "b.so"), "x")

	r := New()
	r.open = func(path string) (symbolTable, error) {
		if filepath.Base(path) == "a.so" {
			return fakeLibrary{FactorySymbol: func() fx.Effect { panic("init failed") }}, nil
		}
		single := func() fx.Effect { return &stubEffect{name: "Glow"} }
		return fakeLibrary{FactorySymbol: &single}, nil
	}

	report := r.LoadPluginEffects(dir)
	if _, ok := r.Lookup("Glow"); !ok {
		t.Fatalf("second library not loaded after first panicked")
	}
	if len(report.Skipped) != 1 {
		t.Fatalf("skipped = %+v", report.Skipped)
	}
}

func TestLoadPluginEffectsRejectsMissingFactory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "empty.so"), "x")
	r := New()
	r.open = func(string) (symbolTable, error) {
		return fakeLibrary{FactoriesSymbol: 42}, nil
	}
	report := r.LoadPluginEffects(dir)
	if len(report.Skipped) != 1 || r.Count() != 0 {
		t.Fatalf("report = %+v, count = %d", report, r.Count())
	}
}

func TestLoadPluginEffectsFromManifest(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "pulse", "manifest.json"), `{"name":"pulse","library":"pulse.so"}`)
	writeFile(t, filepath.Join(dir, "pulse", "pulse.so"), "x")
	writeFile(t, filepath.Join(dir, "bad", "manifest.json"), `{"name":"bad"}`)

	r := New()
	var opened []string
	r.open = func(path string) (symbolTable, error) {
		opened = append(opened, path)
		return fakeLibrary{FactoriesSymbol: func() []fx.Effect {
			return []fx.Effect{&stubEffect{name: "Pulse"}}
		}}, nil
	}

	report := r.LoadPluginEffects(dir)
	if len(opened) != 1 || opened[0] != filepath.Join(dir, "pulse", "pulse.so") {
		t.Fatalf("opened = %v", opened)
	}
	if len(report.Loaded) != 1 || len(report.Skipped) != 1 {
		t.Fatalf("report = %+v", report)
	}
}

func TestManifestRestrictsEffects(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "pack", "manifest.json"), `{"name":"pack","library":"pack.so","effects":["Pulse"]}`)
	writeFile(t, filepath.Join(dir, "pack", "pack.so"), "x")

	r := New()
	r.open = func(string) (symbolTable, error) {
		return fakeLibrary{FactoriesSymbol: func() []fx.Effect {
			return []fx.Effect{&stubEffect{name: "Pulse"}, &stubEffect{name: "Sneaky"}}
		}}, nil
	}
	report := r.LoadPluginEffects(dir)
	if len(report.Loaded) != 1 || report.Loaded[0] != "Pulse" {
		t.Fatalf("loaded = %v, want only the declared effect", report.Loaded)
	}
	if _, ok := r.Lookup("Sneaky"); ok {
		t.Fatal("undeclared effect should not be registered")
	}
}

func TestManifestValidate(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "ok.so"), "x")
	cases := []struct {
		name    string
		m       Manifest
		wantErr bool
	}{
		{"valid", Manifest{Name: "p", Library: "ok.so"}, false},
		{"no name", Manifest{Library: "ok.so"}, true},
		{"no library", Manifest{Name: "p"}, true},
		{"not shared object", Manifest{Name: "p", Library: "ok.dll"}, true},
		{"escapes dir", Manifest{Name: "p", Library: "../ok.so"}, true},
		{"missing file", Manifest{Name: "p", Library: "gone.so"}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.m.Validate(dir)
			if (err != nil) != tc.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestRegisterProviders(t *testing.T) {
	providerMu.Lock()
	saved := providers
	providers = nil
	providerMu.Unlock()
	t.Cleanup(func() {
		providerMu.Lock()
		providers = saved
		providerMu.Unlock()
	})

	RegisterProvider("linked", func() []fx.Effect { return []fx.Effect{&stubEffect{name: "Linked"}} })
	RegisterProvider("broken", func() []fx.Effect { panic("boom") })

	r := New()
	RegisterProviders(r)
	if entry := r.Get("Linked"); entry == nil || entry.Source != "linked" {
		t.Fatalf("entry = %+v", entry)
	}
}
