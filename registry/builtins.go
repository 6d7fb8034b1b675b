// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: registry/builtins.go
// Summary: Supports init-time registration of statically linked effects.
// Usage: Effect packages compiled into the binary call RegisterProvider from
//   init; hosts call RegisterProviders once the registry exists.

package registry

import (
	"log"
	"sync"

	"github.com/framegrace/texelfx/fx"
)

// Provider returns the effects contributed by a linked-in package.
type Provider func() []fx.Effect

var (
	providerMu sync.RWMutex
	providers  []namedProvider
)

type namedProvider struct {
	source  string
	provide Provider
}

// RegisterProvider registers an init-time effect provider.
func RegisterProvider(source string, provide Provider) {
	if provide == nil {
		return
	}
	providerMu.Lock()
	providers = append(providers, namedProvider{source: source, provide: provide})
	providerMu.Unlock()
}

// RegisterProviders registers the effects of every init-time provider.
func RegisterProviders(reg *Registry) {
	if reg == nil {
		return
	}
	providerMu.RLock()
	list := append([]namedProvider(nil), providers...)
	providerMu.RUnlock()

	for _, p := range list {
		effects, err := collect(p.provide)
		if err != nil {
			log.Printf("Registry: Provider %s failed: %v", p.source, err)
			continue
		}
		for _, e := range effects {
			reg.register(fx.Describe(e), e, p.source)
		}
	}
}
