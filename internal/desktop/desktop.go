// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/desktop/desktop.go
// Summary: Terminal desktop that hosts windows and lets configured effects
//   drive their presentation.
// Usage: cmd/texelfx demo builds a Desktop over a tcell screen and calls Run.
// Notes: Everything except Run and Close must be called on the loop
//   goroutine; Run posts input events and redraws to that loop.

// Package desktop renders fx windows on a tcell screen and translates
// keyboard and mouse input into window lifecycle signals.
package desktop

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texelfx/fx"
	"github.com/framegrace/texelfx/internal/engine"
	"github.com/framegrace/texelfx/internal/loop"
	"github.com/framegrace/texelfx/internal/window"
)

const (
	defaultFrame    = 16 * time.Millisecond
	doubleClickTime = 400 * time.Millisecond
	defaultKey      = "Window"
)

// Options configures a Desktop.
type Options struct {
	// Screen defaults to tcell.NewScreen. It must not be initialized yet.
	Screen tcell.Screen
	// Loop runs input, rendering and effect timers. Required by Run.
	Loop *loop.Loop
	// Scheduler is handed to new windows; defaults to Loop.
	Scheduler fx.Scheduler
	Engine    *engine.Orchestrator
	// Keys are the target keys assigned to new windows, round-robin.
	Keys  []string
	Frame time.Duration
}

// Desktop is the window host.
type Desktop struct {
	screen tcell.Screen
	loop   *loop.Loop
	sched  fx.Scheduler
	engine *engine.Orchestrator
	keys   []string
	frame  time.Duration

	// windows is in stacking order; the last entry is on top.
	windows   []*window.Window
	focused   *window.Window
	minimized []*window.Window
	opened    int

	drag      *dragState
	lastClick clickState
	buttons   tcell.ButtonMask

	theme theme

	cancel    context.CancelFunc
	closeOnce sync.Once
}

type dragState struct {
	win    *window.Window
	startX int
	startY int
	origin fx.Point
}

type clickState struct {
	win *window.Window
	at  time.Time
}

// New initializes the screen and returns an empty desktop.
func New(opts Options) (*Desktop, error) {
	if opts.Engine == nil {
		return nil, errors.New("desktop: engine is required")
	}
	sched := opts.Scheduler
	if sched == nil {
		if opts.Loop == nil {
			return nil, errors.New("desktop: loop or scheduler is required")
		}
		sched = opts.Loop
	}
	screen := opts.Screen
	if screen == nil {
		s, err := tcell.NewScreen()
		if err != nil {
			return nil, fmt.Errorf("create screen: %w", err)
		}
		screen = s
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("init screen: %w", err)
	}
	screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorReset).Foreground(tcell.ColorReset))
	screen.HideCursor()
	screen.EnableMouse()

	keys := opts.Keys
	if len(keys) == 0 {
		keys = []string{defaultKey}
	}
	frame := opts.Frame
	if frame <= 0 {
		frame = defaultFrame
	}
	return &Desktop{
		screen: screen,
		loop:   opts.Loop,
		sched:  sched,
		engine: opts.Engine,
		keys:   keys,
		frame:  frame,
		theme:  defaultTheme(),
	}, nil
}

// Run processes input and redraws until ctx is canceled or the user quits.
func (d *Desktop) Run(ctx context.Context) error {
	if d.loop == nil {
		return errors.New("desktop: Run requires a loop")
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	d.cancel = cancel

	go d.poll(ctx)

	redraw := d.loop.Every(d.frame, func(time.Duration) { d.draw() })
	defer redraw.Stop()

	d.loop.Post(func() {
		if len(d.windows) == 0 {
			d.OpenWindow("")
		}
		d.draw()
	})

	err := d.loop.Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (d *Desktop) poll(ctx context.Context) {
	for {
		ev := d.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case <-ctx.Done():
			return
		default:
		}
		d.loop.Post(func() { d.handleEvent(ev) })
	}
}

// Quit stops Run.
func (d *Desktop) Quit() {
	if d.cancel != nil {
		d.cancel()
	}
}

// Close closes every window, which detaches their effects, and releases the
// terminal.
func (d *Desktop) Close() {
	d.closeOnce.Do(func() {
		for _, w := range append([]*window.Window(nil), d.windows...) {
			d.engine.DetachAll(w)
		}
		d.screen.Fini()
	})
}

// OpenWindow creates a window, attaches its configured effects and opens it.
// An empty title is replaced by a numbered one.
func (d *Desktop) OpenWindow(title string) *window.Window {
	d.opened++
	if title == "" {
		title = fmt.Sprintf("Window %d", d.opened)
	}
	key := d.keys[(d.opened-1)%len(d.keys)]

	sw, sh := d.screen.Size()
	width, height := 36, 10
	if width > sw-2 {
		width = sw - 2
	}
	if height > sh-4 {
		height = sh - 4
	}
	step := (d.opened - 1) % 6
	w := window.New(d.sched, window.Options{
		Title:     title,
		Key:       key,
		Position:  fx.Point{X: 4 + step*4, Y: 2 + step*2},
		Size:      fx.Size{Width: float64(width), Height: float64(height)},
		MinHeight: 1,
	})
	w.Subscribe(fx.SignalClosed, func(*fx.Event) { d.forget(w) })

	d.windows = append(d.windows, w)
	d.engine.ApplyConfigured(w, key)
	w.Open()
	d.Focus(w)
	return w
}

// Focus activates w, deactivates the previous window and raises w.
func (d *Desktop) Focus(w *window.Window) {
	if w == nil || w.Closed() {
		return
	}
	if d.focused == w {
		return
	}
	if prev := d.focused; prev != nil && !prev.Closed() {
		prev.Deactivate()
	}
	d.focused = w
	d.raise(w)
	w.Activate()
}

// Focused returns the active window, or nil.
func (d *Desktop) Focused() *window.Window { return d.focused }

// Windows returns the hosted windows in stacking order.
func (d *Desktop) Windows() []*window.Window {
	return append([]*window.Window(nil), d.windows...)
}

// FocusNext cycles focus to the next visible window.
func (d *Desktop) FocusNext() {
	visible := d.visible(nil)
	if len(visible) == 0 {
		return
	}
	// The focused window is on top, so the bottom-most is next.
	d.Focus(visible[0])
}

// MinimizeFocused minimizes the active window and focuses the next one.
func (d *Desktop) MinimizeFocused() {
	w := d.focused
	if w == nil || w.State() == fx.StateMinimized {
		return
	}
	w.Deactivate()
	d.focused = nil
	d.minimized = append(d.minimized, w)
	w.Minimize()
	if next := d.topmost(w); next != nil {
		d.Focus(next)
	}
}

// RestoreLast restores the most recently minimized window.
func (d *Desktop) RestoreLast() {
	for len(d.minimized) > 0 {
		w := d.minimized[len(d.minimized)-1]
		d.minimized = d.minimized[:len(d.minimized)-1]
		if w.Closed() {
			continue
		}
		w.Restore()
		d.Focus(w)
		return
	}
}

// CloseFocused asks the active window to close. Close effects may delay the
// actual close.
func (d *Desktop) CloseFocused() {
	if d.focused != nil {
		d.focused.Close()
	}
}

func (d *Desktop) forget(w *window.Window) {
	d.windows = removeWindow(d.windows, w)
	d.minimized = removeWindow(d.minimized, w)
	if d.drag != nil && d.drag.win == w {
		d.drag = nil
	}
	if d.lastClick.win == w {
		d.lastClick = clickState{}
	}
	if d.focused == w {
		d.focused = nil
		if next := d.topmost(nil); next != nil {
			d.Focus(next)
		}
	}
}

func (d *Desktop) raise(w *window.Window) {
	d.windows = append(removeWindow(d.windows, w), w)
}

// visible returns non-minimized windows in stacking order, excluding skip.
func (d *Desktop) visible(skip *window.Window) []*window.Window {
	var out []*window.Window
	for _, w := range d.windows {
		if w == skip || w.Closed() || d.isMinimized(w) {
			continue
		}
		out = append(out, w)
	}
	return out
}

func (d *Desktop) topmost(skip *window.Window) *window.Window {
	visible := d.visible(skip)
	if len(visible) == 0 {
		return nil
	}
	return visible[len(visible)-1]
}

// isMinimized reports minimized windows, including ones still playing a
// minimize animation in the Normal state.
func (d *Desktop) isMinimized(w *window.Window) bool {
	if w.State() == fx.StateMinimized {
		return true
	}
	for _, m := range d.minimized {
		if m == w {
			return true
		}
	}
	return false
}

func removeWindow(list []*window.Window, w *window.Window) []*window.Window {
	for i, candidate := range list {
		if candidate == w {
			return append(list[:i:i], list[i+1:]...)
		}
	}
	return list
}
