// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: fx/signal.go
// Summary: Window lifecycle signals and subscriptions.

package fx

// SignalKind identifies a window lifecycle signal.
type SignalKind int

const (
	SignalOpened SignalKind = iota
	SignalActivated
	SignalDeactivated
	SignalClosing
	SignalClosed
	SignalPositionChanged
	SignalPropertyChanged
	SignalPointerPressed
)

func (k SignalKind) String() string {
	switch k {
	case SignalOpened:
		return "Opened"
	case SignalActivated:
		return "Activated"
	case SignalDeactivated:
		return "Deactivated"
	case SignalClosing:
		return "Closing"
	case SignalClosed:
		return "Closed"
	case SignalPositionChanged:
		return "PositionChanged"
	case SignalPropertyChanged:
		return "PropertyChanged"
	case SignalPointerPressed:
		return "PointerPressed"
	}
	return "Unknown"
}

// PropertyState is the property name reported when the window state changes.
const PropertyState = "State"

// Event is delivered to signal handlers.
type Event struct {
	Kind SignalKind
	// Property names the changed property for SignalPropertyChanged.
	Property string
	// ClickCount is set for SignalPointerPressed.
	ClickCount int
	// X and Y hold the pointer location for SignalPointerPressed.
	X, Y int

	canceled bool
}

// Cancel prevents the pending transition. Only meaningful for SignalClosing.
func (e *Event) Cancel() {
	if e.Kind == SignalClosing {
		e.canceled = true
	}
}

// Canceled reports whether a handler canceled the event.
func (e *Event) Canceled() bool { return e.canceled }

// Handler receives window signals.
type Handler func(*Event)

// Subscription identifies a handler registered with Window.Subscribe.
type Subscription struct {
	Kind SignalKind
	ID   uint64
}

// Valid reports whether s refers to a registered handler.
func (s Subscription) Valid() bool { return s.ID != 0 }
