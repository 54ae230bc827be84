// Package clock tracks file timestamps against the command start time.
package clock

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"go.trai.ch/prism/internal/core/ports"
)

var _ ports.TimestampMonitor = (*Monitor)(nil)

// DefaultGranularity is the assumed resolution of file modification times.
const DefaultGranularity = 10 * time.Millisecond

// Monitor implements ports.TimestampMonitor.
//
// A file read during a command whose modification time falls in the same
// granularity tick as the command start could be changed again without its
// timestamp moving. WaitForGranularity sleeps past that tick.
type Monitor struct {
	clock       clockwork.Clock
	granularity time.Duration

	mu         sync.Mutex
	start      time.Time
	latest     time.Time
	waitNeeded bool
}

// NewMonitor creates a monitor reading time from clock.
func NewMonitor(clock clockwork.Clock, granularity time.Duration) *Monitor {
	if granularity <= 0 {
		granularity = DefaultGranularity
	}
	return &Monitor{clock: clock, granularity: granularity}
}

// SetCommandStartTime implements ports.TimestampMonitor.
func (m *Monitor) SetCommandStartTime() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.start = m.clock.Now()
	m.latest = time.Time{}
	m.waitNeeded = false
}

// Notify implements ports.TimestampMonitor.
func (m *Monitor) Notify(_ string, modTime time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.start.IsZero() {
		return
	}
	if modTime.Truncate(m.granularity).Before(m.start.Truncate(m.granularity)) {
		return
	}
	m.waitNeeded = true
	if modTime.After(m.latest) {
		m.latest = modTime
	}
}

// WaitNeeded reports whether a recently modified file was seen since the command started.
func (m *Monitor) WaitNeeded() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.waitNeeded
}

// WaitForGranularity implements ports.TimestampMonitor.
func (m *Monitor) WaitForGranularity(ctx context.Context) error {
	m.mu.Lock()
	needed := m.waitNeeded
	tick := m.latest
	if m.start.After(tick) {
		tick = m.start
	}
	m.mu.Unlock()

	if !needed {
		return nil
	}

	deadline := tick.Truncate(m.granularity).Add(m.granularity)
	wait := deadline.Sub(m.clock.Now())
	if wait <= 0 {
		return nil
	}

	timer := m.clock.NewTimer(wait)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.Chan():
		return nil
	}
}
