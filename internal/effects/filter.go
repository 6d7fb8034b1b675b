// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/effects/filter.go
// Summary: Ownership of the single filter slot shared by static and
//   transient effects.

package effects

import (
	"sync"

	"github.com/framegrace/texelfx/fx"
)

type filterKey struct {
	window fx.WindowID
	kind   string
}

// filterOwners maps a window's filter kind to the static effect that
// installed it. Transient effects consult it before putting a saved filter
// back, so a filter whose owner has detached is not resurrected.
var filterOwners sync.Map

func filterKind(f fx.Filter) string {
	switch {
	case fx.IsShadow(f):
		return "shadow"
	case fx.IsBlur(f):
		return "blur"
	}
	return ""
}

func claimFilter(id fx.WindowID, f fx.Filter, owner string) {
	if kind := filterKind(f); kind != "" {
		filterOwners.Store(filterKey{id, kind}, owner)
	}
}

func releaseFilter(id fx.WindowID, f fx.Filter, owner string) {
	if kind := filterKind(f); kind != "" {
		filterOwners.CompareAndDelete(filterKey{id, kind}, owner)
	}
}

func filterOwned(id fx.WindowID, f fx.Filter) bool {
	kind := filterKind(f)
	if kind == "" {
		return false
	}
	_, ok := filterOwners.Load(filterKey{id, kind})
	return ok
}

// savedFilter is the filter a transient effect displaced.
type savedFilter struct {
	filter fx.Filter
	owned  bool
}

func saveFilter(w fx.Window) savedFilter {
	f := w.Filter()
	return savedFilter{filter: f, owned: filterOwned(w.ID(), f)}
}

// restore puts the saved filter back unless it belonged to an effect that
// has since detached, in which case the slot is cleared.
func (s savedFilter) restore(w fx.Window) {
	if s.owned && !filterOwned(w.ID(), s.filter) {
		w.SetFilter(nil)
		return
	}
	w.SetFilter(s.filter)
}
