package scheduler

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/MrSnakeDoc/sitehub/internal/logger"
)

type countingRefresher struct {
	calls atomic.Int32
	err   error
}

func (c *countingRefresher) Refresh(context.Context) error {
	c.calls.Add(1)
	return c.err
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func TestCatalogReloader_InitialRefresh(t *testing.T) {
	r := &countingRefresher{}
	cr := NewCatalogReloader(r, logger.NewNop(), 0, "", nil)

	if err := cr.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer cr.Stop()

	if got := r.calls.Load(); got != 1 {
		t.Errorf("Refresh called %d times, want 1", got)
	}
}

func TestCatalogReloader_InitialFailureIsNotFatal(t *testing.T) {
	r := &countingRefresher{err: errors.New("missing file")}
	cr := NewCatalogReloader(r, logger.NewNop(), 0, "", nil)

	if err := cr.Start(context.Background()); err != nil {
		t.Fatalf("Start should not fail when the first refresh fails: %v", err)
	}
	cr.Stop()
}

func TestCatalogReloader_ManualTrigger(t *testing.T) {
	r := &countingRefresher{}
	trigger := make(chan struct{}, 1)
	cr := NewCatalogReloader(r, logger.NewNop(), 0, "", trigger)

	if err := cr.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer cr.Stop()

	trigger <- struct{}{}
	waitFor(t, func() bool { return r.calls.Load() == 2 })
}

func TestCatalogReloader_Interval(t *testing.T) {
	r := &countingRefresher{}
	cr := NewCatalogReloader(r, logger.NewNop(), 20*time.Millisecond, "", nil)

	if err := cr.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer cr.Stop()

	waitFor(t, func() bool { return r.calls.Load() >= 3 })
}

func TestCatalogReloader_WatchFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "websites.yaml")
	if err := os.WriteFile(path, []byte("websites: []\n"), 0o644); err != nil {
		t.Fatalf("Failed to create catalog file: %v", err)
	}

	r := &countingRefresher{}
	cr := NewCatalogReloader(r, logger.NewNop(), 0, path, nil)
	cr.debounce = 10 * time.Millisecond

	if err := cr.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer cr.Stop()

	// unrelated files in the same directory are ignored
	if err := os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("Failed to write other file: %v", err)
	}
	time.Sleep(50 * time.Millisecond)
	if got := r.calls.Load(); got != 1 {
		t.Fatalf("Refresh called %d times after unrelated write, want 1", got)
	}

	if err := os.WriteFile(path, []byte("websites: []\n# edited\n"), 0o644); err != nil {
		t.Fatalf("Failed to rewrite catalog file: %v", err)
	}
	waitFor(t, func() bool { return r.calls.Load() >= 2 })
}

func TestCatalogReloader_WatchMissingDirectory(t *testing.T) {
	r := &countingRefresher{}
	cr := NewCatalogReloader(r, logger.NewNop(), 0, "/nonexistent/dir/websites.yaml", nil)

	if err := cr.Start(context.Background()); err == nil {
		cr.Stop()
		t.Fatal("Start should fail when the catalog directory cannot be watched")
	}
	cr.Stop()
}

func TestCatalogReloader_StopsOnContextCancel(t *testing.T) {
	r := &countingRefresher{}
	ctx, cancel := context.WithCancel(context.Background())
	cr := NewCatalogReloader(r, logger.NewNop(), 0, "", nil)

	if err := cr.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	cancel()

	select {
	case <-cr.done:
	case <-time.After(time.Second):
		t.Fatal("reloader did not stop after context cancellation")
	}
}
