// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/loop/manual.go
// Summary: Deterministic scheduler whose clock only moves when advanced.
// Usage: Tests drive animations by calling Advance; due timers fire
//   synchronously on the calling goroutine in time order.

package loop

import (
	"sync"
	"time"

	"github.com/framegrace/texelfx/fx"
)

// Manual is a controllable fx.Scheduler for tests and headless use.
type Manual struct {
	mu     sync.Mutex
	start  time.Time
	now    time.Time
	timers []*manualTimer
}

// NewManual creates a manual scheduler at the given start time.
func NewManual(start time.Time) *Manual {
	return &Manual{start: start, now: start}
}

// Now returns the current mocked time.
func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Every registers a periodic callback. The first call happens one interval
// after registration.
func (m *Manual) Every(interval time.Duration, fn func(elapsed time.Duration)) fx.Timer {
	if interval <= 0 {
		interval = 16 * time.Millisecond
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	t := &manualTimer{
		owner:    m,
		started:  m.now,
		next:     m.now.Add(interval),
		interval: interval,
		fn:       fn,
	}
	m.timers = append(m.timers, t)
	return t
}

// Advance moves the clock forward by d, firing every timer that comes due
// in chronological order. Callbacks may start or stop timers.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	target := m.now.Add(d)
	m.mu.Unlock()
	for {
		m.mu.Lock()
		t := m.nextDueLocked(target)
		if t == nil {
			m.now = target
			m.mu.Unlock()
			return
		}
		m.now = t.next
		t.next = t.next.Add(t.interval)
		elapsed := m.now.Sub(t.started)
		m.mu.Unlock()
		t.fn(elapsed)
	}
}

// Step advances the clock n times by interval.
func (m *Manual) Step(n int, interval time.Duration) {
	for i := 0; i < n; i++ {
		m.Advance(interval)
	}
}

// ActiveTimers returns the number of timers that have not been stopped.
func (m *Manual) ActiveTimers() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.timers)
}

func (m *Manual) nextDueLocked(target time.Time) *manualTimer {
	var due *manualTimer
	for _, t := range m.timers {
		if t.next.After(target) {
			continue
		}
		if due == nil || t.next.Before(due.next) {
			due = t
		}
	}
	return due
}

func (m *Manual) remove(t *manualTimer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, other := range m.timers {
		if other == t {
			m.timers = append(m.timers[:i], m.timers[i+1:]...)
			return
		}
	}
}

type manualTimer struct {
	owner    *Manual
	started  time.Time
	next     time.Time
	interval time.Duration
	fn       func(time.Duration)
}

func (t *manualTimer) Stop() { t.owner.remove(t) }
