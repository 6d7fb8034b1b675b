// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: fx/window.go
// Summary: Host window boundary required by effects.
// Usage: Hosts implement Window; effects only observe it and mutate its
//   presentation properties while attached.

package fx

import (
	"time"

	"github.com/gdamore/tcell/v2"
)

// WindowID is a stable identifier for a host window.
type WindowID string

// WindowState is the minimized/normal/maximized state of a window.
type WindowState int

const (
	StateNormal WindowState = iota
	StateMinimized
	StateMaximized
)

func (s WindowState) String() string {
	switch s {
	case StateMinimized:
		return "Minimized"
	case StateMaximized:
		return "Maximized"
	default:
		return "Normal"
	}
}

// Point is an integer screen position.
type Point struct {
	X, Y int
}

// Size is a width/height in layout units.
type Size struct {
	Width, Height float64
}

// Filter is an optional post-process applied when the window is composited.
// A nil Filter means no post-processing.
type Filter interface {
	filterKind() string
}

// Blur blurs the window contents by Radius.
type Blur struct {
	Radius float64
}

func (Blur) filterKind() string { return "blur" }

// DropShadow draws a shadow under the window.
type DropShadow struct {
	OffsetX, OffsetY int
	Blur             float64
	Color            tcell.Color
	Opacity          float64
}

func (DropShadow) filterKind() string { return "shadow" }

// IsBlur reports whether f is a blur filter.
func IsBlur(f Filter) bool {
	_, ok := f.(Blur)
	return ok
}

// IsShadow reports whether f is a drop-shadow filter.
func IsShadow(f Filter) bool {
	_, ok := f.(DropShadow)
	return ok
}

// Window is the host window surface effects operate on. All methods are
// called from the host's UI loop.
type Window interface {
	ID() WindowID

	Position() Point
	SetPosition(p Point)
	Size() Size
	SetSize(s Size)
	MinHeight() float64

	Opacity() float64
	SetOpacity(v float64)
	Filter() Filter
	SetFilter(f Filter)

	State() WindowState
	SetState(s WindowState)

	// Close requests the window to close. It fires Closing, and if no
	// handler cancels, Closed.
	Close()

	Subscribe(kind SignalKind, h Handler) Subscription
	Unsubscribe(s Subscription)

	// Scheduler is the UI loop the window's signals are dispatched on.
	Scheduler() Scheduler
}

// Scheduler runs periodic callbacks on the host UI loop. Callbacks are
// serialized with lifecycle signal dispatch.
type Scheduler interface {
	Now() time.Time
	// Every calls fn every interval with the wall-clock time elapsed since
	// the timer was started, until the returned Timer is stopped.
	Every(interval time.Duration, fn func(elapsed time.Duration)) Timer
}

// Timer is a running periodic callback.
type Timer interface {
	Stop()
}
