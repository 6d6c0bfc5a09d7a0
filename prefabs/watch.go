package prefabs

import (
	"cmp"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period after the last write to a file before
// its change is reported. Editors often save in several steps.
const DefaultDebounce = 100 * time.Millisecond

// Change names a tuning file that changed on disk.
type Change struct {
	Name   string
	Script bool
}

// Watcher reports settled changes to spec and script files. Events and
// Errors are closed once the watcher stops.
type Watcher struct {
	fs       *fsnotify.Watcher
	debounce time.Duration
	Events   chan Change
	Errors   chan error
	done     chan struct{}
	stop     sync.Once
}

// WatchDir watches Dir and its scripts directory, skipping whichever does
// not exist.
func WatchDir() (*Watcher, error) {
	var dirs []string
	for _, dir := range []string{Dir, filepath.Join(Dir, "scripts")} {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			dirs = append(dirs, dir)
		}
	}
	return NewWatcher(dirs...)
}

func NewWatcher(dirs ...string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	for _, dir := range dirs {
		if err := fsw.Add(dir); err != nil {
			_ = fsw.Close()
			return nil, err
		}
	}

	w := &Watcher{
		fs:       fsw,
		debounce: DefaultDebounce,
		Events:   make(chan Change, 16),
		Errors:   make(chan error, 1),
		done:     make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

func (w *Watcher) Close() error {
	var err error
	w.stop.Do(func() {
		close(w.done)
		err = w.fs.Close()
	})
	return err
}

func (w *Watcher) loop() {
	defer close(w.Events)
	defer close(w.Errors)

	pending := make(map[string]Change)
	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if change, ok := classify(ev.Name); ok {
				pending[change.Name] = change
				timer.Reset(w.debounce)
			}
		case <-timer.C:
			if !w.flush(pending) {
				return
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
			}
		case <-w.done:
			return
		}
	}
}

// flush delivers pending changes in name order and reports false when the
// watcher was closed meanwhile.
func (w *Watcher) flush(pending map[string]Change) bool {
	changes := make([]Change, 0, len(pending))
	for _, c := range pending {
		changes = append(changes, c)
	}
	clear(pending)
	slices.SortFunc(changes, func(a, b Change) int { return cmp.Compare(a.Name, b.Name) })
	for _, c := range changes {
		select {
		case w.Events <- c:
		case <-w.done:
			return false
		}
	}
	return true
}

// classify maps a path to the name Load or LoadScript expects.
func classify(path string) (Change, bool) {
	base := filepath.Base(path)
	switch strings.ToLower(filepath.Ext(base)) {
	case ".yaml", ".yml":
		return Change{Name: base}, true
	case ".tengo":
		return Change{Name: base, Script: true}, true
	}
	return Change{}, false
}
