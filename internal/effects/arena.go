// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/effects/arena.go
// Summary: Per-window state records owned by an effect instance.

package effects

import (
	"sync"

	"github.com/framegrace/texelfx/fx"
)

// arena holds one state record per window. Records are created on attach
// and released on detach.
type arena[T any] struct {
	mu    sync.Mutex
	slots map[fx.WindowID]*T
}

func newArena[T any]() *arena[T] {
	return &arena[T]{slots: make(map[fx.WindowID]*T)}
}

// acquire returns the record for id, creating it if needed. created is true
// when no record existed.
func (a *arena[T]) acquire(id fx.WindowID) (rec *T, created bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if rec, ok := a.slots[id]; ok {
		return rec, false
	}
	rec = new(T)
	a.slots[id] = rec
	return rec, true
}

func (a *arena[T]) get(id fx.WindowID) *T {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.slots[id]
}

// release removes and returns the record for id.
func (a *arena[T]) release(id fx.WindowID) *T {
	a.mu.Lock()
	defer a.mu.Unlock()
	rec := a.slots[id]
	delete(a.slots, id)
	return rec
}

func (a *arena[T]) len() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.slots)
}
