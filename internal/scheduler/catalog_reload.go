package scheduler

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/MrSnakeDoc/sitehub/internal/logger"
)

// DefaultDebounce groups the burst of events an editor save produces.
const DefaultDebounce = 250 * time.Millisecond

// Refresher reloads the catalog from its static source.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// CatalogReloader refreshes the catalog on start, on a ticker, on manual
// trigger and when the catalog file changes.
type CatalogReloader struct {
	refresher     Refresher
	logger        logger.Logger
	interval      time.Duration
	watchPath     string
	debounce      time.Duration
	manualTrigger chan struct{}

	started  atomic.Bool
	stopOnce sync.Once
	stopCh   chan struct{}
	done     chan struct{}
}

// NewCatalogReloader creates a reloader. interval 0 disables periodic
// refresh and an empty watchPath disables file watching.
func NewCatalogReloader(
	refresher Refresher,
	log logger.Logger,
	interval time.Duration,
	watchPath string,
	manualTrigger chan struct{},
) *CatalogReloader {
	return &CatalogReloader{
		refresher:     refresher,
		logger:        log,
		interval:      interval,
		watchPath:     watchPath,
		debounce:      DefaultDebounce,
		manualTrigger: manualTrigger,
		stopCh:        make(chan struct{}),
		done:          make(chan struct{}),
	}
}

// Start refreshes once, then keeps refreshing in the background until Stop
// or ctx cancellation. A failing first refresh is logged, not returned: the
// catalog is simply empty until the source recovers.
func (cr *CatalogReloader) Start(ctx context.Context) error {
	cr.reload(ctx, "startup")

	var events <-chan fsnotify.Event
	var watchErrs <-chan error
	var watcher *fsnotify.Watcher
	if cr.watchPath != "" {
		w, err := cr.watch()
		if err != nil {
			return err
		}
		watcher = w
		events, watchErrs = w.Events, w.Errors
	}

	var ticker *time.Ticker
	if cr.interval > 0 {
		ticker = time.NewTicker(cr.interval)
	}

	cr.started.Store(true)
	go cr.loop(ctx, ticker, events, watchErrs, watcher)
	return nil
}

func (cr *CatalogReloader) watch() (*fsnotify.Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create catalog watcher: %w", err)
	}

	// Watch the directory: editors and config maps replace the file.
	dir := filepath.Dir(cr.watchPath)
	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	cr.logger.Info("watching catalog file", logger.String("path", cr.watchPath))
	return watcher, nil
}

func (cr *CatalogReloader) loop(
	ctx context.Context,
	ticker *time.Ticker,
	events <-chan fsnotify.Event,
	watchErrs <-chan error,
	watcher *fsnotify.Watcher,
) {
	defer close(cr.done)

	var tick <-chan time.Time
	if ticker != nil {
		tick = ticker.C
		defer ticker.Stop()
	}
	if watcher != nil {
		defer func() { _ = watcher.Close() }()
	}

	var debounce *time.Timer
	var fire <-chan time.Time
	defer func() {
		if debounce != nil {
			debounce.Stop()
		}
	}()

	for {
		select {
		case <-tick:
			cr.reload(ctx, "interval")

		case <-cr.manualTrigger:
			cr.logger.Info("manual reload triggered")
			cr.reload(ctx, "manual")

		case ev, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			if !cr.isCatalogEvent(ev) {
				continue
			}
			if debounce == nil {
				debounce = time.NewTimer(cr.debounce)
			} else {
				debounce.Reset(cr.debounce)
			}
			fire = debounce.C

		case <-fire:
			fire = nil
			cr.reload(ctx, "file change")

		case err, ok := <-watchErrs:
			if !ok {
				watchErrs = nil
				continue
			}
			cr.logger.Warn("catalog watcher error", logger.Error(err))

		case <-cr.stopCh:
			return
		case <-ctx.Done():
			return
		}
	}
}

func (cr *CatalogReloader) isCatalogEvent(ev fsnotify.Event) bool {
	if filepath.Clean(ev.Name) != filepath.Clean(cr.watchPath) {
		return false
	}
	return ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename)
}

func (cr *CatalogReloader) reload(ctx context.Context, reason string) {
	start := time.Now()
	if err := cr.refresher.Refresh(ctx); err != nil {
		cr.logger.Error("failed to reload catalog",
			logger.String("reason", reason),
			logger.Error(err))
		return
	}
	cr.logger.Debug("catalog reloaded",
		logger.String("reason", reason),
		logger.Duration("took", time.Since(start)))
}

// Stop stops the reloader and waits for the background loop to exit.
func (cr *CatalogReloader) Stop() {
	cr.stopOnce.Do(func() { close(cr.stopCh) })
	if cr.started.Load() {
		<-cr.done
	}
}
