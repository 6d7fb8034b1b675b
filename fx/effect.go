// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: fx/effect.go
// Summary: Capability contract implemented by every window effect.
// Usage: Built-in effects and plugin libraries implement Effect and are
//   registered by name with the effect registry.

// Package fx defines the boundary between window effects and the host that
// owns the windows they decorate.
package fx

// EventType identifies a host-pushed synthetic event passed to ApplyEvent.
type EventType int

const (
	EventMove EventType = iota
	EventResize
	EventClose
	EventMinimize
	EventFocus
	EventBlur
	EventDragStart
	EventDragEnd
)

var eventTypeNames = [...]string{
	EventMove:      "Move",
	EventResize:    "Resize",
	EventClose:     "Close",
	EventMinimize:  "Minimize",
	EventFocus:     "Focus",
	EventBlur:      "Blur",
	EventDragStart: "DragStart",
	EventDragEnd:   "DragEnd",
}

func (t EventType) String() string {
	if t < 0 || int(t) >= len(eventTypeNames) {
		return "Unknown"
	}
	return eventTypeNames[t]
}

// EventArgs carries the payload of a synthetic event.
type EventArgs struct {
	Window Window
	X, Y   int
}

// Effect is a named behavior that observes a window's lifecycle and mutates
// its presentation properties over time. A single instance may be attached to
// many windows at once and must keep its per-window state keyed by window ID.
type Effect interface {
	Name() string
	Description() string
	// Attach subscribes to the window's lifecycle signals.
	Attach(w Window)
	// Detach stops any running animation for w and releases all state and
	// subscriptions held for it.
	Detach(w Window)
	// ApplyEvent handles a host-pushed event. Built-in effects ignore it.
	ApplyEvent(t EventType, args EventArgs)
}

// Descriptor is the immutable registry metadata for an effect.
type Descriptor struct {
	Name        string
	Description string
}

// Describe builds the descriptor for an effect instance.
func Describe(e Effect) Descriptor {
	return Descriptor{Name: e.Name(), Description: e.Description()}
}
