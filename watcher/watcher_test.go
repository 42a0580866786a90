package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

type recorder struct {
	mu    sync.Mutex
	paths []string
	ch    chan string
}

func newRecorder() *recorder {
	return &recorder{ch: make(chan string, 16)}
}

func (r *recorder) record(path string) {
	r.mu.Lock()
	r.paths = append(r.paths, path)
	r.mu.Unlock()
	r.ch <- path
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.paths)
}

func startWatcher(t *testing.T, files []string, onChange func(string)) *Watcher {
	t.Helper()
	w, err := New(files, onChange, WithDebounce(50*time.Millisecond))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Run(ctx)
		close(done)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
		w.Close()
	})
	return w
}

func TestWatcherReportsWrites(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "main.tg")
	if err := os.WriteFile(script, []byte("1"), 0644); err != nil {
		t.Fatal(err)
	}

	rec := newRecorder()
	w := startWatcher(t, []string{script}, rec.record)

	if err := os.WriteFile(script, []byte("2"), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case got := <-rec.ch:
		if got != script {
			t.Errorf("expected %q, got %q", script, got)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for change")
	}
	if w.ChangeSeq() != 1 {
		t.Errorf("expected change seq 1, got %d", w.ChangeSeq())
	}
}

func TestWatcherDebouncesBursts(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "main.tg")
	if err := os.WriteFile(script, []byte("1"), 0644); err != nil {
		t.Fatal(err)
	}

	rec := newRecorder()
	startWatcher(t, []string{script}, rec.record)

	for i := range 5 {
		if err := os.WriteFile(script, []byte{byte('0' + i)}, 0644); err != nil {
			t.Fatal(err)
		}
	}

	select {
	case <-rec.ch:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for change")
	}
	time.Sleep(300 * time.Millisecond)
	if n := rec.count(); n != 1 {
		t.Errorf("expected one call for a burst of writes, got %d", n)
	}
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "main.tg")
	other := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(script, []byte("1"), 0644); err != nil {
		t.Fatal(err)
	}

	rec := newRecorder()
	startWatcher(t, []string{script}, rec.record)

	if err := os.WriteFile(other, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case got := <-rec.ch:
		t.Errorf("unexpected change for %q", got)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestNewRequiresFiles(t *testing.T) {
	if _, err := New(nil, func(string) {}); err == nil {
		t.Error("expected error for empty file list")
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "main.tg")
	if err := os.WriteFile(script, nil, 0644); err != nil {
		t.Fatal(err)
	}

	w, err := New([]string{script}, func(string) {})
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := w.Run(ctx); err != context.Canceled {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
