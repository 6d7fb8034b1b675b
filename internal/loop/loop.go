// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/loop/loop.go
// Summary: Single-threaded UI loop that serializes tasks and timer callbacks.
// Usage: The desktop posts input events with Post and effects schedule
//   animation ticks with Every; Run executes everything on one goroutine.

// Package loop provides the UI-thread scheduler used by windows and effects.
package loop

import (
	"context"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/framegrace/texelfx/fx"
)

// Loop is a serialized task queue with periodic timers.
type Loop struct {
	mu     sync.Mutex
	queue  []func()
	notify chan struct{}
	closed chan struct{}
	once   sync.Once
	active atomic.Int64
}

// New creates an idle loop. Tasks posted before Run are kept until it starts.
func New() *Loop {
	return &Loop{
		notify: make(chan struct{}, 1),
		closed: make(chan struct{}),
	}
}

// Post queues fn to run on the loop goroutine. Safe from any goroutine,
// including the loop itself.
func (l *Loop) Post(fn func()) {
	if fn == nil {
		return
	}
	l.mu.Lock()
	l.queue = append(l.queue, fn)
	l.mu.Unlock()
	select {
	case l.notify <- struct{}{}:
	default:
	}
}

// Now returns the wall-clock time.
func (l *Loop) Now() time.Time { return time.Now() }

// Every starts a periodic callback driven by a real ticker. The callback is
// posted to the loop so it never runs concurrently with other tasks.
func (l *Loop) Every(interval time.Duration, fn func(elapsed time.Duration)) fx.Timer {
	if interval <= 0 {
		interval = 16 * time.Millisecond
	}
	t := &loopTimer{loop: l, done: make(chan struct{})}
	start := time.Now()
	l.active.Add(1)
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-t.done:
				return
			case <-l.closed:
				return
			case now := <-ticker.C:
				elapsed := now.Sub(start)
				l.Post(func() {
					if t.stopped.Load() {
						return
					}
					fn(elapsed)
				})
			}
		}
	}()
	return t
}

// ActiveTimers returns the number of timers that have not been stopped.
func (l *Loop) ActiveTimers() int { return int(l.active.Load()) }

// Run executes queued tasks until ctx is canceled.
func (l *Loop) Run(ctx context.Context) error {
	defer l.once.Do(func() { close(l.closed) })
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.notify:
		}
		for {
			l.mu.Lock()
			if len(l.queue) == 0 {
				l.mu.Unlock()
				break
			}
			batch := l.queue
			l.queue = nil
			l.mu.Unlock()
			for _, fn := range batch {
				runTask(fn)
				if ctx.Err() != nil {
					return ctx.Err()
				}
			}
		}
	}
}

func runTask(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Loop: task panicked: %v", r)
		}
	}()
	fn()
}

type loopTimer struct {
	loop    *Loop
	done    chan struct{}
	stopped atomic.Bool
}

func (t *loopTimer) Stop() {
	if t.stopped.Swap(true) {
		return
	}
	close(t.done)
	t.loop.active.Add(-1)
}
