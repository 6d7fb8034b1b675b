// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/engine/engine.go
// Summary: Binds configured effects to live windows and tears them down on close.
// Usage: The desktop calls ApplyConfigured when a window becomes available;
//   settings UIs call EnableFor/DisableFor.
// Notes: Effect calls happen outside the binding lock so effects may call
//   back into the orchestrator.

// Package engine resolves configured effect names and maintains the table of
// effects attached to each window.
package engine

import (
	"log"
	"sync"

	"github.com/framegrace/texelfx/config"
	"github.com/framegrace/texelfx/fx"
)

// Catalog resolves effect names to instances. *registry.Registry satisfies it.
type Catalog interface {
	Lookup(name string) (fx.Effect, bool)
}

// Settings is the persisted target key to effect list mapping.
// *config.Store satisfies it.
type Settings interface {
	Bindings() config.Bindings
	SetBindings(config.Bindings)
	Save() error
}

type binding struct {
	window  fx.Window
	effects []fx.Effect
	closed  fx.Subscription
}

// Orchestrator owns the active binding table.
type Orchestrator struct {
	catalog  Catalog
	settings Settings

	mu       sync.Mutex
	bindings map[fx.WindowID]*binding

	// settingsMu serializes read-modify-write of the bindings.
	settingsMu sync.Mutex
}

// New creates an orchestrator.
func New(catalog Catalog, settings Settings) *Orchestrator {
	return &Orchestrator{
		catalog:  catalog,
		settings: settings,
		bindings: make(map[fx.WindowID]*binding),
	}
}

// ApplyConfigured attaches the wildcard effects followed by the effects
// configured for key. Unknown names are skipped.
func (o *Orchestrator) ApplyConfigured(w fx.Window, key string) {
	if w == nil {
		return
	}
	for _, name := range o.resolve(key) {
		o.Attach(w, name)
	}
}

// Reapply attaches effects newly enabled for key to an already bound window.
// Effects already attached are left alone.
func (o *Orchestrator) Reapply(w fx.Window, key string) {
	o.ApplyConfigured(w, key)
}

func (o *Orchestrator) resolve(key string) []string {
	if o.settings == nil {
		return nil
	}
	o.settingsMu.Lock()
	defer o.settingsMu.Unlock()
	return o.settings.Bindings().Resolve(key)
}

// Attach binds the named effect to w. Unknown names and effects already
// bound to w are ignored.
func (o *Orchestrator) Attach(w fx.Window, name string) {
	if w == nil || o.catalog == nil {
		return
	}
	effect, ok := o.catalog.Lookup(name)
	if !ok || effect == nil {
		return
	}

	o.mu.Lock()
	b := o.bindings[w.ID()]
	created := false
	if b == nil {
		b = &binding{window: w}
		o.bindings[w.ID()] = b
		created = true
	}
	for _, bound := range b.effects {
		if bound.Name() == effect.Name() {
			o.mu.Unlock()
			return
		}
	}
	b.effects = append(b.effects, effect)
	o.mu.Unlock()

	if created {
		sub := w.Subscribe(fx.SignalClosed, func(*fx.Event) { o.DetachAll(w) })
		o.mu.Lock()
		if o.bindings[w.ID()] == b {
			b.closed = sub
			sub = fx.Subscription{}
		}
		o.mu.Unlock()
		if sub.Valid() {
			// Torn down before the handler was recorded.
			w.Unsubscribe(sub)
		}
	}

	if callEffect(effect, "Attach", func() { effect.Attach(w) }) {
		return
	}
	// Let the effect drop whatever it set up before failing.
	callEffect(effect, "Detach", func() { effect.Detach(w) })
	o.mu.Lock()
	b.effects = removeEffect(b.effects, effect)
	var closed fx.Subscription
	if len(b.effects) == 0 && o.bindings[w.ID()] == b {
		delete(o.bindings, w.ID())
		closed = b.closed
		b.closed = fx.Subscription{}
	}
	o.mu.Unlock()
	if closed.Valid() {
		w.Unsubscribe(closed)
	}
}

// DetachAll detaches every effect bound to w in attach order and removes the
// binding. Calling it for an unbound window does nothing.
func (o *Orchestrator) DetachAll(w fx.Window) {
	if w == nil {
		return
	}
	o.mu.Lock()
	b := o.bindings[w.ID()]
	if b == nil {
		o.mu.Unlock()
		return
	}
	delete(o.bindings, w.ID())
	effects := append([]fx.Effect(nil), b.effects...)
	sub := b.closed
	o.mu.Unlock()

	w.Unsubscribe(sub)
	for _, effect := range effects {
		effect := effect
		callEffect(effect, "Detach", func() { effect.Detach(w) })
	}
}

// EnableFor adds name to key's configured list and persists the change.
// Windows already bound are not affected.
func (o *Orchestrator) EnableFor(key, name string) error {
	return o.mutate(func(b config.Bindings) bool { return b.Enable(key, name) })
}

// DisableFor removes name from key's configured list and persists the change.
// Effects already attached keep running.
func (o *Orchestrator) DisableFor(key, name string) error {
	return o.mutate(func(b config.Bindings) bool { return b.Disable(key, name) })
}

func (o *Orchestrator) mutate(fn func(config.Bindings) bool) error {
	if o.settings == nil {
		return nil
	}
	o.settingsMu.Lock()
	defer o.settingsMu.Unlock()
	b := o.settings.Bindings()
	if b == nil {
		b = make(config.Bindings)
	}
	fn(b)
	o.settings.SetBindings(b)
	if err := o.settings.Save(); err != nil {
		log.Printf("Engine: Failed to save bindings: %v", err)
		return err
	}
	return nil
}

// Bound returns the names of effects bound to w, in attach order.
func (o *Orchestrator) Bound(w fx.Window) []string {
	if w == nil {
		return nil
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	b := o.bindings[w.ID()]
	if b == nil {
		return nil
	}
	names := make([]string, len(b.effects))
	for i, e := range b.effects {
		names[i] = e.Name()
	}
	return names
}

// Windows returns the number of windows with a binding entry.
func (o *Orchestrator) Windows() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.bindings)
}

// callEffect runs an effect lifecycle method, logging a panic instead of
// letting it reach the host. Returns false on panic.
func callEffect(e fx.Effect, op string, fn func()) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Engine: %s.%s panicked: %v", e.Name(), op, r)
			ok = false
		}
	}()
	fn()
	return true
}

func removeEffect(list []fx.Effect, target fx.Effect) []fx.Effect {
	for i, e := range list {
		if e.Name() == target.Name() {
			return append(list[:i:i], list[i+1:]...)
		}
	}
	return list
}
