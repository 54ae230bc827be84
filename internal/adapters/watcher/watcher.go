package watcher

import (
	"context"
	"errors"
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"go.trai.ch/prism/internal/core/domain"
	"go.trai.ch/prism/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Watcher = (*Watcher)(nil)

const eventBuffer = 128

// ops maps fsnotify operations to watch operations, most specific first.
// Chmod is absent: permission changes never alter a package.
var ops = []struct {
	raw fsnotify.Op
	op  ports.WatchOp
}{
	{fsnotify.Write, ports.OpWrite},
	{fsnotify.Create, ports.OpCreate},
	{fsnotify.Remove, ports.OpRemove},
	{fsnotify.Rename, ports.OpRename},
}

// Watcher reports changes below a workspace root using fsnotify. Hidden
// directories (the .prism output tree among them) and node_modules are not watched.
type Watcher struct {
	fsw    *fsnotify.Watcher
	events chan ports.WatchEvent

	// OnError receives errors reported by fsnotify. Nil drops them.
	OnError func(error)
}

// NewWatcher creates a watcher. Nothing is watched until Start.
func NewWatcher() (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Join(domain.ErrWatcherFailed, err)
	}
	return &Watcher{
		fsw:    fsw,
		events: make(chan ports.WatchEvent, eventBuffer),
	}, nil
}

// Start watches every package directory below root and forwards events
// until ctx ends or Stop is called.
func (w *Watcher) Start(ctx context.Context, root string) error {
	for dir := range directories(root) {
		if err := w.fsw.Add(dir); err != nil {
			return zerr.With(errors.Join(domain.ErrWatcherFailed, err), "path", dir)
		}
	}
	go w.loop(ctx)
	return nil
}

// Stop closes the underlying fsnotify watcher, which ends the event stream.
func (w *Watcher) Stop() error {
	return w.fsw.Close()
}

// Events yields watch events until the watcher stops.
func (w *Watcher) Events() iter.Seq[ports.WatchEvent] {
	return func(yield func(ports.WatchEvent) bool) {
		for ev := range w.events {
			if !yield(ev) {
				return
			}
		}
	}
}

func (w *Watcher) loop(ctx context.Context) {
	defer close(w.events)

	for {
		select {
		case <-ctx.Done():
			return
		case raw, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			ev, relevant := translate(raw)
			if !relevant {
				continue
			}
			select {
			case w.events <- ev:
			case <-ctx.Done():
				return
			}
			if ev.Operation == ports.OpCreate {
				w.follow(raw.Name)
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			if w.OnError != nil {
				w.OnError(err)
			}
		}
	}
}

// follow adds a newly created directory tree, so packages created while
// watching are seen.
func (w *Watcher) follow(path string) {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() || skipDir(info.Name()) {
		return
	}
	for dir := range directories(path) {
		_ = w.fsw.Add(dir)
	}
}

func translate(raw fsnotify.Event) (ports.WatchEvent, bool) {
	for _, m := range ops {
		if raw.Op.Has(m.raw) {
			return ports.WatchEvent{Path: raw.Name, Operation: m.op}, true
		}
	}
	return ports.WatchEvent{}, false
}

// directories yields root and every directory below it that may hold packages.
// Unreadable directories are skipped.
func directories(root string) iter.Seq[string] {
	return func(yield func(string) bool) {
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return nil //nolint:nilerr // unreadable directories are not watched
			}
			if !d.IsDir() {
				return nil
			}
			if path != root && skipDir(d.Name()) {
				return fs.SkipDir
			}
			if !yield(path) {
				return fs.SkipAll
			}
			return nil
		})
	}
}

func skipDir(name string) bool {
	return name == "node_modules" || strings.HasPrefix(name, ".")
}
