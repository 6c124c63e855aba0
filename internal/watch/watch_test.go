package watch

import (
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
)

func TestTranslateOps(t *testing.T) {
	tests := []struct {
		name string
		in   fsnotify.Op
		out  Op
	}{
		{"create", fsnotify.Create, Create},
		{"write", fsnotify.Write, Write},
		{"remove", fsnotify.Remove, Remove},
		{"rename", fsnotify.Rename, Rename},
		{"chmod", fsnotify.Chmod, Chmod},
		{"combined", fsnotify.Create | fsnotify.Write, Create | Write},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := translate(tt.in); got != tt.out {
				t.Errorf("expected %s, got %s", tt.out, got)
			}
		})
	}
}

func TestOpString(t *testing.T) {
	if got := (Create | Write).String(); got != "create|write" {
		t.Errorf("expected create|write, got %s", got)
	}
	if got := Op(0).String(); got != "none" {
		t.Errorf("expected none, got %s", got)
	}
}

func TestWatcherDeliversWrite(t *testing.T) {
	w, err := New()
	if err != nil {
		t.Skip("fsnotify not supported:", err)
	}
	defer w.Close()

	dir := t.TempDir()
	if err := w.Add(dir); err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(dir, "main.flux")
	if err := os.WriteFile(path, []byte("def main() { }"), 0o644); err != nil {
		t.Fatal(err)
	}

	deadline := time.After(2 * time.Second)
	for {
		select {
		case ev := <-w.Events():
			if ev.Path == "" {
				t.Fatal("event with empty path")
			}
			if filepath.Base(ev.Path) == "main.flux" && (ev.Op.Has(Create) || ev.Op.Has(Write)) {
				return
			}
		case <-deadline:
			t.Fatal("timeout waiting for filesystem event")
		}
	}
}

func TestAddTreeWatchesSubdirectories(t *testing.T) {
	w, err := New()
	if err != nil {
		t.Skip("fsnotify not supported:", err)
	}
	defer w.Close()

	root := t.TempDir()
	sub := filepath.Join(root, "src", "core")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	hidden := filepath.Join(root, ".git")
	if err := os.MkdirAll(hidden, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := w.AddTree(root); err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(sub, "mem.flux")
	if err := os.WriteFile(path, []byte("x: int;"), 0o644); err != nil {
		t.Fatal(err)
	}

	deadline := time.After(2 * time.Second)
	for {
		select {
		case ev := <-w.Events():
			if filepath.Base(ev.Path) == "mem.flux" {
				return
			}
		case <-deadline:
			t.Fatal("timeout waiting for event in subdirectory")
		}
	}
}

func TestUndrainedErrorsDoNotStallEvents(t *testing.T) {
	events := make(chan fsnotify.Event, 4)
	errs := make(chan error, 4)
	w := &Watcher{evC: make(chan Event, 128), erC: make(chan error, 1)}
	go w.loop(events, errs)

	for i := 0; i < 3; i++ {
		errs <- errors.New("backend failure")
	}
	events <- fsnotify.Event{Name: "main.flux", Op: fsnotify.Write}
	defer close(events)

	select {
	case ev := <-w.Events():
		if filepath.Base(ev.Path) != "main.flux" || !ev.Op.Has(Write) {
			t.Fatalf("unexpected event %s %s", ev.Path, ev.Op)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("event delivery stalled behind undrained errors")
	}

	select {
	case err := <-w.Errors():
		if err == nil {
			t.Fatal("expected a buffered backend error")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no backend error delivered")
	}
}

func TestDebouncerCoalesces(t *testing.T) {
	d := NewDebouncer(30 * time.Millisecond)
	defer d.Stop()

	var runs atomic.Int32
	for i := 0; i < 5; i++ {
		d.Trigger("a.flux", func() { runs.Add(1) })
	}

	time.Sleep(120 * time.Millisecond)
	if got := runs.Load(); got != 1 {
		t.Errorf("expected 1 run, got %d", got)
	}
}

func TestDebouncerSeparateKeys(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)
	defer d.Stop()

	var runs atomic.Int32
	d.Trigger("a.flux", func() { runs.Add(1) })
	d.Trigger("b.flux", func() { runs.Add(1) })

	time.Sleep(100 * time.Millisecond)
	if got := runs.Load(); got != 2 {
		t.Errorf("expected 2 runs, got %d", got)
	}
}

func TestDebouncerStopCancels(t *testing.T) {
	d := NewDebouncer(30 * time.Millisecond)

	var runs atomic.Int32
	d.Trigger("a.flux", func() { runs.Add(1) })
	d.Stop()

	time.Sleep(100 * time.Millisecond)
	if got := runs.Load(); got != 0 {
		t.Errorf("expected no runs after Stop, got %d", got)
	}
}
