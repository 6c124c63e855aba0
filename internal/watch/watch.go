// Package watch delivers filesystem change events for Flux source trees.
// It wraps OS-native notifications behind channels the CLI can select on.
package watch

import (
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Op is a bitmask of change kinds observed on a path.
type Op uint32

const (
	Create Op = 1 << iota
	Write
	Remove
	Rename
	Chmod
)

// Has reports whether o includes every bit of k.
func (o Op) Has(k Op) bool { return o&k == k }

func (o Op) String() string {
	var parts []string
	for _, e := range [...]struct {
		bit  Op
		name string
	}{
		{Create, "create"},
		{Write, "write"},
		{Remove, "remove"},
		{Rename, "rename"},
		{Chmod, "chmod"},
	} {
		if o&e.bit != 0 {
			parts = append(parts, e.name)
		}
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "|")
}

// Event is one filesystem change.
type Event struct {
	Path string
	Op   Op
	Time time.Time
}

// Watcher translates fsnotify events onto its own channels. Close stops
// delivery and releases all watches.
type Watcher struct {
	fw  *fsnotify.Watcher
	evC chan Event
	erC chan error
}

// New starts a watcher with no paths registered.
func New() (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{fw: fw, evC: make(chan Event, 128), erC: make(chan error, 1)}
	go w.loop(fw.Events, fw.Errors)
	return w, nil
}

func (w *Watcher) loop(events <-chan fsnotify.Event, errs <-chan error) {
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				close(w.evC)
				return
			}
			w.evC <- Event{Path: ev.Name, Op: translate(ev.Op), Time: time.Now()}
		case err, ok := <-errs:
			if !ok {
				return
			}
			// Never block event delivery behind an undrained error
			// channel; callers that only select on Events still make
			// progress.
			select {
			case w.erC <- err:
			default:
			}
		}
	}
}

func translate(op fsnotify.Op) Op {
	var out Op
	if op&fsnotify.Create != 0 {
		out |= Create
	}
	if op&fsnotify.Write != 0 {
		out |= Write
	}
	if op&fsnotify.Remove != 0 {
		out |= Remove
	}
	if op&fsnotify.Rename != 0 {
		out |= Rename
	}
	if op&fsnotify.Chmod != 0 {
		out |= Chmod
	}
	return out
}

// Events is the translated change stream. It closes after Close.
func (w *Watcher) Events() <-chan Event { return w.evC }

// Errors carries watch backend failures. Errors arriving while the
// buffer is full are dropped.
func (w *Watcher) Errors() <-chan error { return w.erC }

// Add registers one file or directory. Directories are not recursive;
// use AddTree for a whole source tree.
func (w *Watcher) Add(name string) error { return w.fw.Add(name) }

// Remove unregisters a previously added path.
func (w *Watcher) Remove(name string) error { return w.fw.Remove(name) }

// AddTree registers root and every directory below it, skipping dot
// directories.
func (w *Watcher) AddTree(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if name := d.Name(); name != "." && strings.HasPrefix(name, ".") && path != root {
			return filepath.SkipDir
		}
		return w.fw.Add(path)
	})
}

// Close releases the watcher; pending events may be dropped.
func (w *Watcher) Close() error { return w.fw.Close() }
