// Package reporter collects pipeline events and forwards diagnostics to a logger.
package reporter

import (
	"slices"
	"sync"

	"github.com/jonboulle/clockwork"
	"go.trai.ch/prism/internal/core/domain"
	"go.trai.ch/prism/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.EventHandler = (*Collector)(nil)

// Collector stores every event it handles. It is safe for concurrent use.
type Collector struct {
	clock  clockwork.Clock
	logger ports.Logger

	mu     sync.Mutex
	events []domain.Event
}

// NewCollector creates a collector. A nil logger only collects.
func NewCollector(clock clockwork.Clock, logger ports.Logger) *Collector {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Collector{clock: clock, logger: logger}
}

// Handle implements ports.EventHandler.
func (c *Collector) Handle(ev domain.Event) {
	if ev.Time.IsZero() {
		ev.Time = c.clock.Now()
	}

	c.mu.Lock()
	c.events = append(c.events, ev)
	c.mu.Unlock()

	c.forward(ev)
}

func (c *Collector) forward(ev domain.Event) {
	if c.logger == nil {
		return
	}
	msg := ev.Message
	if ev.Label != "" {
		msg = ev.Label + ": " + msg
	}
	switch ev.Kind {
	case domain.EventError:
		err := zerr.New(ev.Message)
		if ev.Label != "" {
			err = zerr.With(err, "label", ev.Label)
		}
		c.logger.Error(err)
	case domain.EventWarning:
		c.logger.Warn(msg)
	default:
		c.logger.Debug(msg)
	}
}

// Events returns a copy of the handled events in arrival order.
func (c *Collector) Events() []domain.Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.events)
}

// Filter returns the handled events of kind in arrival order.
func (c *Collector) Filter(kind domain.EventKind) []domain.Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []domain.Event
	for _, ev := range c.events {
		if ev.Kind == kind {
			out = append(out, ev)
		}
	}
	return out
}

// HasErrors reports whether an error event was handled.
func (c *Collector) HasErrors() bool {
	return len(c.Filter(domain.EventError)) > 0
}

// Clear drops the handled events.
func (c *Collector) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = nil
}
