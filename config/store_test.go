// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestOpenWritesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "texelfx.json")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if got := s.Bindings()[Wildcard]; len(got) != 1 || got[0] != "Shadow" {
		t.Fatalf("default wildcard bindings = %v", got)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read config: %v", err)
	}
	var disk Config
	if err := json.Unmarshal(data, &disk); err != nil {
		t.Fatalf("unmarshal config: %v", err)
	}
	if disk.Section(SectionAnimation) == nil {
		t.Fatalf("expected animation section on disk")
	}
}

func TestOpenCorruptFileFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "texelfx.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	s, err := Open(path)
	if err == nil {
		t.Fatalf("expected parse error")
	}
	if s == nil || !s.AnimationsEnabled() {
		t.Fatalf("expected usable defaults after parse error")
	}
}

func TestLoadDoesNotCreateFile(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"texelfx.json", "texelfx.toml", "texelfx.db"} {
		path := filepath.Join(dir, name)
		s, err := Load(path)
		if err != nil {
			t.Fatalf("Load(%s): %v", name, err)
		}
		if got := s.Bindings()[Wildcard]; len(got) != 1 || got[0] != "Shadow" {
			t.Fatalf("%s: default wildcard bindings = %v", name, got)
		}
		if _, err := os.Stat(path); !os.IsNotExist(err) {
			t.Fatalf("%s: Load created the file (stat err %v)", name, err)
		}
	}
}

func TestLoadReadsExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "texelfx.json")
	if err := os.WriteFile(path, []byte(`{"plugins":{"dir":"/opt/fx","enabled":false}}`), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if dir, enabled := s.PluginDir(); dir != "/opt/fx" || enabled {
		t.Fatalf("PluginDir = %q, %v", dir, enabled)
	}
}

func TestBindingsRoundTripAllBackends(t *testing.T) {
	for _, name := range []string{"texelfx.json", "texelfx.toml", "texelfx.db"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			s, err := Open(path)
			if err != nil {
				t.Fatalf("Open: %v", err)
			}
			b := s.Bindings()
			b.Enable(Wildcard, "Wobbly")
			b.Enable("MainWindow", "GlideOpen")
			s.SetBindings(b)
			s.Set(EffectSectionPrefix+"Burn", "duration_ms", 150)
			s.Set(SectionAnimation, "enabled", false)
			if err := s.Save(); err != nil {
				t.Fatalf("Save: %v", err)
			}

			reopened, err := Open(path)
			if err != nil {
				t.Fatalf("reopen: %v", err)
			}
			got := reopened.Bindings()
			if list := got[Wildcard]; len(list) != 2 || list[0] != "Shadow" || list[1] != "Wobbly" {
				t.Fatalf("wildcard = %v", list)
			}
			if list := got["MainWindow"]; len(list) != 1 || list[0] != "GlideOpen" {
				t.Fatalf("MainWindow = %v", list)
			}
			if d := reopened.EffectParams("Burn").Int("duration_ms", 0); d != 150 {
				t.Fatalf("Burn duration = %d", d)
			}
			if reopened.AnimationsEnabled() {
				t.Fatalf("animation.enabled not persisted")
			}
		})
	}
}

func TestMemoryStoreSaveIsNoop(t *testing.T) {
	s := NewMemory(Config{SectionTargets: map[string]interface{}{"*": []interface{}{"Burn", "Burn", 7}}})
	if err := s.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if got := s.Bindings()[Wildcard]; len(got) != 1 || got[0] != "Burn" {
		t.Fatalf("bindings = %v", got)
	}
	if s.Path() != "" {
		t.Fatalf("memory store has a path")
	}
}

func TestConfigIsCopied(t *testing.T) {
	s := NewMemory(nil)
	cfg := s.Config()
	cfg.Section(SectionAnimation)["enabled"] = false
	if !s.AnimationsEnabled() {
		t.Fatalf("mutating a copy changed the store")
	}
	b := s.Bindings()
	b.Enable(Wildcard, "Burn")
	if len(s.Bindings()[Wildcard]) != 1 {
		t.Fatalf("mutating returned bindings changed the store")
	}
}

func TestTypedGetters(t *testing.T) {
	cfg := Config{"s": map[string]interface{}{
		"i64":   int64(7),
		"num":   json.Number("2.5"),
		"str":   "3",
		"flag":  "true",
		"zero":  0.0,
		"label": "x",
	}}
	if cfg.GetInt("s", "i64", 0) != 7 {
		t.Errorf("int64 not read")
	}
	if cfg.GetFloat("s", "num", 0) != 2.5 {
		t.Errorf("json.Number not read")
	}
	if cfg.GetInt("s", "str", 0) != 3 {
		t.Errorf("numeric string not read")
	}
	if !cfg.GetBool("s", "flag", false) || cfg.GetBool("s", "zero", true) {
		t.Errorf("bool conversion wrong")
	}
	if cfg.GetString("s", "label", "") != "x" || cfg.GetString("missing", "label", "d") != "d" {
		t.Errorf("string lookup wrong")
	}
}
