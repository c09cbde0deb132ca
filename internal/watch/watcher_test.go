package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFileWatcherReportsDebouncedChange(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "logo.svg")
	other := filepath.Join(dir, "other.svg")
	if err := os.WriteFile(target, []byte("<svg/>"), 0644); err != nil {
		t.Fatal(err)
	}

	w, err := NewFileWatcher([]string{target}, 50*time.Millisecond)
	if err != nil {
		t.Fatalf("NewFileWatcher() error = %v", err)
	}
	defer w.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	events, err := w.Start(ctx)
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	if err := os.WriteFile(other, []byte("<svg/>"), 0644); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		if err := os.WriteFile(target, []byte("<svg></svg>"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	select {
	case ev := <-events:
		if ev.Path != target {
			t.Errorf("event path = %q, want %q", ev.Path, target)
		}
	case <-ctx.Done():
		t.Fatal("no event before timeout")
	}

	// The burst of writes settles into a single event.
	select {
	case ev := <-events:
		t.Errorf("unexpected second event %+v", ev)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestStopClosesEvents(t *testing.T) {
	dir := t.TempDir()
	w, err := NewFileWatcher([]string{filepath.Join(dir, "a.svg")}, time.Millisecond)
	if err != nil {
		t.Fatal(err)
	}

	events, err := w.Start(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Stop(); err != nil {
		t.Fatalf("Stop() error = %v", err)
	}
	if err := w.Stop(); err != nil {
		t.Fatalf("second Stop() error = %v", err)
	}

	select {
	case _, ok := <-events:
		if ok {
			t.Error("expected closed channel")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("events channel not closed after Stop")
	}
}
