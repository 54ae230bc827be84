package watcher

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"go.trai.ch/prism/internal/core/domain"
	"go.trai.ch/prism/internal/core/ports"
)

var _ ports.ChangeDetector = (*Detector)(nil)

// Detector reports the files changed under a workspace root since it was last asked.
// Watching starts with the first call, which reports everything as modified.
type Detector struct {
	watcher   ports.Watcher
	root      string
	debouncer *Debouncer

	mu      sync.Mutex
	started bool
	pending map[string]struct{}
	cancel  context.CancelFunc
	done    chan struct{}
}

// NewDetector creates a detector watching root through w.
func NewDetector(w ports.Watcher, root string, clock clockwork.Clock, window time.Duration) *Detector {
	d := &Detector{
		watcher: w,
		root:    root,
		pending: make(map[string]struct{}),
	}
	d.debouncer = NewDebouncer(clock, window, d.record)
	return d
}

// ModifiedFiles implements ports.ChangeDetector.
func (d *Detector) ModifiedFiles(ctx context.Context) (domain.ModifiedFileSet, error) {
	d.mu.Lock()
	started := d.started
	d.mu.Unlock()

	if !started {
		if err := d.start(ctx); err != nil {
			return domain.ModifiedFileSet{}, errors.Join(domain.ErrWatcherFailed, err)
		}
		return domain.EverythingModified, nil
	}

	d.debouncer.Flush()

	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.pending) == 0 {
		return domain.NothingModified, nil
	}
	paths := make([]string, 0, len(d.pending))
	for p := range d.pending {
		paths = append(paths, p)
	}
	slices.Sort(paths)
	d.pending = make(map[string]struct{})
	return domain.ModifiedFileSet{Paths: paths}, nil
}

// Stop ends watching and releases the watcher.
func (d *Detector) Stop() error {
	d.mu.Lock()
	cancel, done := d.cancel, d.done
	d.started = false
	d.cancel, d.done = nil, nil
	d.mu.Unlock()

	if cancel == nil {
		return nil
	}
	cancel()
	err := d.watcher.Stop()
	<-done
	return err
}

// start begins watching. The watch outlives ctx, which only scopes one update.
func (d *Detector) start(ctx context.Context) error {
	watchCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	if err := d.watcher.Start(watchCtx, d.root); err != nil {
		cancel()
		return err
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for ev := range d.watcher.Events() {
			d.debouncer.Add(ev.Path)
		}
	}()

	d.mu.Lock()
	d.started = true
	d.cancel = cancel
	d.done = done
	d.mu.Unlock()
	return nil
}

func (d *Detector) record(paths []string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, p := range paths {
		d.pending[p] = struct{}{}
	}
}
