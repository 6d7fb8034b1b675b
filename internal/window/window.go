// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/window/window.go
// Summary: Host window model implementing the fx.Window boundary.
// Usage: The desktop creates windows, drives their lifecycle with Open,
//   Activate, Close and friends, and renders their presentation properties.
// Notes: Signal dispatch is re-entrant; handlers run without the lock held.

// Package window contains the concrete window type hosted by the desktop.
package window

import (
	"log"
	"sync"

	"github.com/google/uuid"

	"github.com/framegrace/texelfx/fx"
)

// Options configures a new window.
type Options struct {
	Title string
	// Key is the component name used to resolve configured effects.
	Key       string
	Position  fx.Point
	Size      fx.Size
	MinHeight float64
}

type handlerEntry struct {
	id uint64
	fn fx.Handler
}

// Window is a top-level host window.
type Window struct {
	mu sync.Mutex

	id        fx.WindowID
	title     string
	key       string
	pos       fx.Point
	size      fx.Size
	minHeight float64
	opacity   float64
	filter    fx.Filter
	state     fx.WindowState
	active    bool
	opened    bool
	closed    bool

	sched    fx.Scheduler
	handlers map[fx.SignalKind][]handlerEntry
	nextSub  uint64
}

// New creates a window bound to the given scheduler.
func New(sched fx.Scheduler, opts Options) *Window {
	minHeight := opts.MinHeight
	if minHeight <= 0 {
		minHeight = 1
	}
	return &Window{
		id:        fx.WindowID(uuid.NewString()),
		title:     opts.Title,
		key:       opts.Key,
		pos:       opts.Position,
		size:      opts.Size,
		minHeight: minHeight,
		opacity:   1,
		sched:     sched,
		handlers:  make(map[fx.SignalKind][]handlerEntry),
	}
}

func (w *Window) ID() fx.WindowID         { return w.id }
func (w *Window) Scheduler() fx.Scheduler { return w.sched }
func (w *Window) MinHeight() float64      { return w.minHeight }
func (w *Window) Title() string           { return w.title }
func (w *Window) Key() string             { return w.key }

func (w *Window) Position() fx.Point {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.pos
}

// SetPosition moves the window and fires PositionChanged when it changed.
func (w *Window) SetPosition(p fx.Point) {
	w.mu.Lock()
	if w.pos == p {
		w.mu.Unlock()
		return
	}
	w.pos = p
	w.mu.Unlock()
	w.emit(&fx.Event{Kind: fx.SignalPositionChanged, X: p.X, Y: p.Y})
}

func (w *Window) Size() fx.Size {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.size
}

func (w *Window) SetSize(s fx.Size) {
	if s.Width < 0 {
		s.Width = 0
	}
	if s.Height < 0 {
		s.Height = 0
	}
	w.mu.Lock()
	w.size = s
	w.mu.Unlock()
}

func (w *Window) Opacity() float64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.opacity
}

func (w *Window) SetOpacity(v float64) {
	if v < 0 {
		v = 0
	} else if v > 1 {
		v = 1
	}
	w.mu.Lock()
	w.opacity = v
	w.mu.Unlock()
}

func (w *Window) Filter() fx.Filter {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.filter
}

func (w *Window) SetFilter(f fx.Filter) {
	w.mu.Lock()
	w.filter = f
	w.mu.Unlock()
}

func (w *Window) State() fx.WindowState {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// SetState changes the window state and fires PropertyChanged("State").
func (w *Window) SetState(s fx.WindowState) {
	w.mu.Lock()
	if w.state == s {
		w.mu.Unlock()
		return
	}
	w.state = s
	w.mu.Unlock()
	w.emit(&fx.Event{Kind: fx.SignalPropertyChanged, Property: fx.PropertyState})
}

// Active reports whether the window has focus.
func (w *Window) Active() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.active
}

// Closed reports whether the window has been destroyed.
func (w *Window) Closed() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.closed
}

// Open fires Opened once.
func (w *Window) Open() {
	w.mu.Lock()
	if w.opened || w.closed {
		w.mu.Unlock()
		return
	}
	w.opened = true
	w.mu.Unlock()
	w.emit(&fx.Event{Kind: fx.SignalOpened})
}

// Activate gives the window focus.
func (w *Window) Activate() { w.setActive(true) }

// Deactivate removes focus from the window.
func (w *Window) Deactivate() { w.setActive(false) }

func (w *Window) setActive(active bool) {
	w.mu.Lock()
	if w.closed || w.active == active {
		w.mu.Unlock()
		return
	}
	w.active = active
	w.mu.Unlock()
	kind := fx.SignalDeactivated
	if active {
		kind = fx.SignalActivated
	}
	w.emit(&fx.Event{Kind: kind})
}

// Minimize requests the Minimized state.
func (w *Window) Minimize() { w.SetState(fx.StateMinimized) }

// Restore returns the window to the Normal state.
func (w *Window) Restore() { w.SetState(fx.StateNormal) }

// Press delivers a pointer press with the given click count.
func (w *Window) Press(x, y, clicks int) {
	w.emit(&fx.Event{Kind: fx.SignalPointerPressed, X: x, Y: y, ClickCount: clicks})
}

// Close fires Closing; unless a handler cancels it, the window is marked
// closed and Closed fires. Closing a closed window does nothing.
func (w *Window) Close() {
	if w.Closed() {
		return
	}
	ev := &fx.Event{Kind: fx.SignalClosing}
	w.emit(ev)
	if ev.Canceled() {
		return
	}
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	w.closed = true
	w.active = false
	w.mu.Unlock()
	w.emit(&fx.Event{Kind: fx.SignalClosed})
}

// Subscribe registers h for signals of the given kind.
func (w *Window) Subscribe(kind fx.SignalKind, h fx.Handler) fx.Subscription {
	if h == nil {
		return fx.Subscription{}
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.nextSub++
	w.handlers[kind] = append(w.handlers[kind], handlerEntry{id: w.nextSub, fn: h})
	return fx.Subscription{Kind: kind, ID: w.nextSub}
}

// Unsubscribe removes a handler. Unknown subscriptions are ignored.
func (w *Window) Unsubscribe(s fx.Subscription) {
	if !s.Valid() {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	list := w.handlers[s.Kind]
	for i, entry := range list {
		if entry.id == s.ID {
			w.handlers[s.Kind] = append(list[:i:i], list[i+1:]...)
			return
		}
	}
}

// HandlerCount returns the number of handlers subscribed to kind.
func (w *Window) HandlerCount(kind fx.SignalKind) int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.handlers[kind])
}

func (w *Window) subscribed(kind fx.SignalKind, id uint64) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, entry := range w.handlers[kind] {
		if entry.id == id {
			return true
		}
	}
	return false
}

// emit calls a snapshot of the handlers for ev.Kind. A handler removed by an
// earlier handler in the same dispatch is skipped.
func (w *Window) emit(ev *fx.Event) {
	w.mu.Lock()
	snapshot := append([]handlerEntry(nil), w.handlers[ev.Kind]...)
	w.mu.Unlock()
	for _, entry := range snapshot {
		if !w.subscribed(ev.Kind, entry.id) {
			continue
		}
		w.call(entry.fn, ev)
	}
}

func (w *Window) call(fn fx.Handler, ev *fx.Event) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Window: %s handler panicked on %s: %v", ev.Kind, w.id, r)
		}
	}()
	fn(ev)
}

var _ fx.Window = (*Window)(nil)
