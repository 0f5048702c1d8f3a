package reload

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/dmitrymomot/i18nrouter/pkg/config"
	"github.com/dmitrymomot/i18nrouter/pkg/logger"
	"github.com/dmitrymomot/i18nrouter/pkg/manifest"
)

// DefaultDebounce is the quiet period after the last file event before a
// reload starts.
const DefaultDebounce = 100 * time.Millisecond

// Loader builds a manifest from the document at path.
type Loader func(path string) (*manifest.Manifest, error)

// Hook is called after every reload attempt with its result.
type Hook func(err error)

// Option configures a Watcher.
type Option func(*Watcher)

// WithLoader replaces the default loader, config.LoadManifest.
func WithLoader(l Loader) Option {
	return func(w *Watcher) {
		if l != nil {
			w.load = l
		}
	}
}

// WithDebounce sets the debounce period. Non-positive values are ignored.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(w *Watcher) {
		if l != nil {
			w.logger = l
		}
	}
}

// WithHook registers a callback for reload results, e.g. for metrics.
func WithHook(h Hook) Option {
	return func(w *Watcher) {
		if h != nil {
			w.hooks = append(w.hooks, h)
		}
	}
}

// Watcher reloads a routing document into a manifest store on change.
type Watcher struct {
	path     string
	store    *manifest.Store
	load     Loader
	debounce time.Duration
	logger   *slog.Logger
	hooks    []Hook
	running  atomic.Bool
}

// New creates a watcher for the document at path. It does not touch the file
// system until Run is called.
func New(path string, store *manifest.Store, opts ...Option) (*Watcher, error) {
	if store == nil {
		return nil, ErrNilStore
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("reload: resolve %q: %w", path, err)
	}

	w := &Watcher{
		path:     abs,
		store:    store,
		load:     func(p string) (*manifest.Manifest, error) { return config.LoadManifest(p) },
		debounce: DefaultDebounce,
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Path returns the absolute path of the watched document.
func (w *Watcher) Path() string { return w.path }

// Reload rebuilds the manifest and swaps it into the store. On failure the
// current snapshot is left untouched.
func (w *Watcher) Reload(ctx context.Context) error {
	start := time.Now()
	m, err := w.load(w.path)
	if err == nil {
		_, err = w.store.Swap(m)
	}
	if err != nil {
		err = errors.Join(ErrReloadFailed, err)
		w.logger.ErrorContext(ctx, "routing manifest reload failed",
			logger.ConfigFile(w.path),
			logger.Error(err),
		)
	} else {
		w.logger.InfoContext(ctx, "routing manifest reloaded",
			logger.ConfigFile(w.path),
			logger.Duration(time.Since(start)),
		)
	}
	for _, h := range w.hooks {
		h(err)
	}
	return err
}

// Run watches the document until ctx is done. It blocks and returns nil on
// cancellation.
func (w *Watcher) Run(ctx context.Context) error {
	if !w.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer w.running.Store(false)

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Join(ErrWatcherFailed, err)
	}
	defer fw.Close()

	// Watch the directory so atomic replace-by-rename is observed.
	if err := fw.Add(filepath.Dir(w.path)); err != nil {
		return errors.Join(ErrWatcherFailed, err)
	}
	w.logger.InfoContext(ctx, "watching routing document", logger.ConfigFile(w.path))

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Chmod) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			_ = w.Reload(ctx)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.WarnContext(ctx, "file watcher error", logger.ConfigFile(w.path), logger.Error(err))
		}
	}
}
