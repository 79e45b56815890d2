package configwatcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"health_edu_backend/internal/config"
)

func TestWatchConfigReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("server:\n  mode: debug\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reloaded := make(chan *config.Config, 1)
	done := make(chan error, 1)
	go func() {
		done <- WatchConfig(ctx, path, func(cfg *config.Config) {
			select {
			case reloaded <- cfg:
			default:
			}
		})
	}()

	// Give the watcher time to register before writing.
	time.Sleep(100 * time.Millisecond)
	if err := os.WriteFile(path, []byte("server:\n  mode: release_test\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case cfg := <-reloaded:
		if cfg.Server.Mode != "release_test" {
			t.Fatalf("mode = %q", cfg.Server.Mode)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("config was not reloaded")
	}

	cancel()
	if err := <-done; err != nil {
		t.Fatalf("watcher returned %v", err)
	}
}
