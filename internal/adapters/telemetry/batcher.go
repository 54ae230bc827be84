// Package telemetry records pipeline phases as OpenTelemetry spans.
package telemetry

import (
	"bytes"
	"errors"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

const (
	// DefaultMaxLines is the number of complete lines that triggers a flush.
	DefaultMaxLines = 64
	// DefaultFlushInterval bounds how long a complete line waits for its batch.
	DefaultFlushInterval = 50 * time.Millisecond
)

var errBatcherClosed = errors.New("line batcher is closed")

// LineBatcher collects diagnostic text written to a span and hands it on as
// batches of complete lines. A trailing partial line waits for its newline
// or for Close. It is safe for concurrent use.
type LineBatcher struct {
	maxLines int
	interval time.Duration
	onFlush  func(lines []string)

	mu      sync.Mutex
	partial bytes.Buffer
	lines   []string
	ticker  clockwork.Ticker
	stop    chan struct{}
	closed  bool
}

// NewLineBatcher returns a LineBatcher delivering to onFlush. Non-positive
// limits fall back to the defaults. Close stops its ticker.
func NewLineBatcher(
	clock clockwork.Clock,
	maxLines int,
	interval time.Duration,
	onFlush func(lines []string),
) *LineBatcher {
	if maxLines <= 0 {
		maxLines = DefaultMaxLines
	}
	if interval <= 0 {
		interval = DefaultFlushInterval
	}

	b := &LineBatcher{
		maxLines: maxLines,
		interval: interval,
		onFlush:  onFlush,
		ticker:   clock.NewTicker(interval),
		stop:     make(chan struct{}),
	}
	go b.run()
	return b
}

// Write splits p into lines and flushes once maxLines are pending.
func (b *LineBatcher) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return 0, errBatcherClosed
	}

	rest := p
	for {
		i := bytes.IndexByte(rest, '\n')
		if i < 0 {
			break
		}
		b.partial.Write(rest[:i])
		b.lines = append(b.lines, b.partial.String())
		b.partial.Reset()
		rest = rest[i+1:]
	}
	b.partial.Write(rest)

	if len(b.lines) >= b.maxLines {
		b.flushLocked()
		b.ticker.Reset(b.interval)
	}
	return len(p), nil
}

// Flush delivers the pending complete lines.
func (b *LineBatcher) Flush() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.closed {
		b.flushLocked()
	}
}

// Close stops the ticker and delivers everything, the partial line included.
func (b *LineBatcher) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true
	close(b.stop)
	if b.partial.Len() > 0 {
		b.lines = append(b.lines, b.partial.String())
		b.partial.Reset()
	}
	b.flushLocked()
	return nil
}

func (b *LineBatcher) run() {
	for {
		select {
		case <-b.ticker.Chan():
			b.Flush()
		case <-b.stop:
			b.ticker.Stop()
			return
		}
	}
}

// flushLocked runs onFlush under mu so batches keep their order.
func (b *LineBatcher) flushLocked() {
	if len(b.lines) == 0 {
		return
	}
	lines := b.lines
	b.lines = nil
	if b.onFlush != nil {
		b.onFlush(lines)
	}
}
