// Package fsnotify watches the artifacts directory and signals a
// debounced event when the vocabulary files change, so the server can
// rebuild without a restart.
package fsnotify

import (
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const debounceWindow = 250 * time.Millisecond

// watchedFiles limits reloads to the files that feed the recognizer.
// Editors drop temp files next to them; those are ignored.
var watchedFiles = map[string]bool{
	"gazetteer.json": true,
	"aliases.jsonl":  true,
}

// Watcher signals artifact file changes, collapsed per burst.
type Watcher struct {
	fw     *fsnotify.Watcher
	events chan struct{}
	done   chan struct{}
	stop   sync.Once
}

// New starts watching dir. The directory must exist.
func New(dir string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(dir); err != nil {
		fw.Close()
		return nil, err
	}
	w := &Watcher{
		fw:     fw,
		events: make(chan struct{}, 1),
		done:   make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

// Events delivers one value per debounced change burst. The channel
// has capacity one: an unconsumed signal absorbs later ones.
func (w *Watcher) Events() <-chan struct{} { return w.events }

// Stop ends watching. Safe to call more than once.
func (w *Watcher) Stop() {
	w.stop.Do(func() {
		close(w.done)
		w.fw.Close()
	})
}

func (w *Watcher) loop() {
	var timer *time.Timer
	for {
		select {
		case <-w.done:
			if timer != nil {
				timer.Stop()
			}
			return
		case ev, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if !watchedFiles[filepath.Base(ev.Name)] {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounceWindow, w.signal)
		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			log.Printf("[watcher] error: %v", err)
		}
	}
}

func (w *Watcher) signal() {
	select {
	case w.events <- struct{}{}:
	default:
	}
}
