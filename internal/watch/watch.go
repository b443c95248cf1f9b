// Package watch reloads a catalog file when it changes on disk and
// publishes the rebuilt catalog atomically.
package watch

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/papapumpkin/furlong/internal/catalog"
)

// DefaultDebounce is how long a file must stay quiet before it is reloaded.
const DefaultDebounce = 100 * time.Millisecond

// ErrCatalogRemoved indicates the watched catalog file was deleted. The
// last good catalog stays current.
var ErrCatalogRemoved = errors.New("catalog file removed")

// Event reports the outcome of one reload attempt. On failure Err is set
// and Catalog is nil; the previously published catalog remains current.
type Event struct {
	File       string
	Catalog    *catalog.Catalog
	Unresolved []catalog.Unresolved
	Err        error
}

// Option configures a Reloader.
type Option func(*Reloader)

// WithDebounce sets the quiet period before a reload. Non-positive values
// are ignored.
func WithDebounce(d time.Duration) Option {
	return func(r *Reloader) {
		if d > 0 {
			r.debounce = d
		}
	}
}

// WithLogger sets the logger for reload diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(r *Reloader) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithCatalogOptions sets the options passed to catalog.Open on reload.
func WithCatalogOptions(opts ...catalog.Option) Option {
	return func(r *Reloader) {
		r.catalogOpts = opts
	}
}

// Reloader monitors one catalog file using fsnotify. It watches the
// containing directory so editors that replace the file on save are seen.
type Reloader struct {
	Path   string
	Events <-chan Event // Read-only external channel

	events      chan Event // Internal write channel
	current     atomic.Pointer[catalog.Catalog]
	debounce    time.Duration
	logger      *slog.Logger
	catalogOpts []catalog.Option

	stop    chan struct{}
	done    chan struct{}
	watcher *fsnotify.Watcher
}

// New creates a reloader for path with initial as the current catalog.
func New(path string, initial *catalog.Catalog, opts ...Option) (*Reloader, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", path, err)
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	ch := make(chan Event, 16)
	r := &Reloader{
		Path:     abs,
		Events:   ch,
		events:   ch,
		debounce: DefaultDebounce,
		logger:   slog.Default(),
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
		watcher:  fw,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.current.Store(initial)
	return r, nil
}

// Current returns the most recently published catalog. Safe for
// concurrent use.
func (r *Reloader) Current() *catalog.Catalog {
	return r.current.Load()
}

// Start begins watching the catalog file for changes. On failure the
// underlying watcher is released; Stop may still be called.
func (r *Reloader) Start() error {
	if err := r.watcher.Add(filepath.Dir(r.Path)); err != nil {
		r.watcher.Close()
		close(r.done)
		return fmt.Errorf("watching %s: %w", r.Path, err)
	}
	go r.loop()
	return nil
}

// Stop closes the watcher and the Events channel.
func (r *Reloader) Stop() {
	close(r.stop)
	r.watcher.Close()
	<-r.done // Wait for loop to exit
	close(r.events)
}

func (r *Reloader) loop() {
	defer close(r.done)

	var pending time.Time
	ticker := time.NewTicker(r.debounce)
	defer ticker.Stop()

	for {
		select {
		case event, ok := <-r.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != r.Path {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
				event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				pending = time.Now()
			}

		case <-ticker.C:
			if !pending.IsZero() && time.Since(pending) >= r.debounce {
				pending = time.Time{}
				r.emit(r.reload())
			}

		case err, ok := <-r.watcher.Errors:
			if !ok {
				return
			}
			r.logger.Warn("catalog watch error", "path", r.Path, "error", err)
		}
	}
}

func (r *Reloader) reload() Event {
	ev := Event{File: r.Path}
	if _, err := os.Stat(r.Path); errors.Is(err, os.ErrNotExist) {
		ev.Err = ErrCatalogRemoved
		r.logger.Warn("catalog file removed; keeping previous catalog", "path", r.Path)
		return ev
	}

	c, err := catalog.Open(r.Path, r.catalogOpts...)
	if err != nil {
		ev.Err = err
		r.logger.Warn("catalog reload failed; keeping previous catalog", "path", r.Path, "error", err)
		return ev
	}
	r.current.Store(c)
	ev.Catalog = c
	ev.Unresolved = c.Verify()
	r.logger.Info("catalog reloaded", "path", r.Path,
		"units", len(c.Units()), "unresolved", len(ev.Unresolved))
	return ev
}

func (r *Reloader) emit(ev Event) {
	select {
	case r.events <- ev:
	case <-r.stop:
	}
}
