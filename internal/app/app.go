// Package app wires the recognition engine to its adapters: artifact
// loading, the bolt cache, file watching and the periodic refresh.
package app

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/corey/intentd/internal/adapters/artifacts"
	"github.com/corey/intentd/internal/adapters/bbolt"
	"github.com/corey/intentd/internal/adapters/cron"
	"github.com/corey/intentd/internal/adapters/fsnotify"
	"github.com/corey/intentd/internal/domain/recognizer"
	"github.com/corey/intentd/internal/ports"
)

// Config holds everything App needs to start.
type Config struct {
	// ArtifactsDir is where gazetteer.json and aliases.jsonl live.
	ArtifactsDir string
	// CachePath is the bolt cache file. Empty disables the cache.
	CachePath string
	// CacheTTL bounds cache freshness. Zero selects the default.
	CacheTTL time.Duration
	// RefreshSpec is the cron spec for periodic refresh. Empty
	// selects the default; "-" disables it.
	RefreshSpec string
	// Watch enables reload on artifact file changes.
	Watch bool
	// FuzzyThreshold tunes fuzzy matching. Zero selects the default.
	FuzzyThreshold float64
}

// UpdateRecord describes one artifact reload.
type UpdateRecord struct {
	ID       string               `json:"id"`
	At       time.Time            `json:"at"`
	Source   ports.ArtifactSource `json:"source"`
	Trigger  string               `json:"trigger"`
	Patterns int                  `json:"patterns"`
	Err      string               `json:"error,omitempty"`
}

// App owns the recognizer and the machinery that keeps its vocabulary
// current.
type App struct {
	Recognizer *recognizer.Recognizer

	loader  *artifacts.Loader
	cache   ports.Storage
	watcher *fsnotify.Watcher
	sched   *cron.Scheduler

	mu      sync.Mutex
	source  ports.ArtifactSource
	updates []UpdateRecord

	done     chan struct{}
	stopOnce sync.Once
}

// New builds the app and performs the initial vocabulary load. On
// error, anything already opened is closed.
func New(cfg Config) (*App, error) {
	a := &App{
		Recognizer: recognizer.New(recognizer.Config{FuzzyThreshold: cfg.FuzzyThreshold}),
		done:       make(chan struct{}),
	}

	if cfg.CachePath != "" {
		cache, err := bbolt.Open(cfg.CachePath, cfg.CacheTTL)
		if err != nil {
			return nil, fmt.Errorf("open artifact cache: %w", err)
		}
		a.cache = cache
	}
	a.loader = artifacts.NewLoader(cfg.ArtifactsDir, a.cache)

	set, source, err := a.loader.Load()
	if err != nil {
		a.closeAdapters()
		return nil, fmt.Errorf("initial artifact load: %w", err)
	}
	a.Recognizer.Rebuild(set)
	a.source = source
	a.record(UpdateRecord{Source: source, Trigger: "startup"})
	log.Printf("[app] artifacts loaded from %s", source)

	if cfg.Watch {
		w, err := fsnotify.New(cfg.ArtifactsDir)
		if err != nil {
			a.closeAdapters()
			return nil, fmt.Errorf("watch artifacts: %w", err)
		}
		a.watcher = w
	}

	if cfg.RefreshSpec != "-" {
		s, err := cron.New(cfg.RefreshSpec, func() { a.Reload("schedule") })
		if err != nil {
			a.closeAdapters()
			return nil, fmt.Errorf("refresh schedule: %w", err)
		}
		a.sched = s
	}
	return a, nil
}

// Start launches the watch loop and the refresh schedule. Returns
// immediately.
func (a *App) Start() {
	if a.watcher != nil {
		go a.watchLoop()
	}
	if a.sched != nil {
		a.sched.Start()
	}
}

// Stop shuts everything down. Safe to call more than once.
func (a *App) Stop() {
	a.stopOnce.Do(func() {
		close(a.done)
		a.closeAdapters()
	})
}

func (a *App) closeAdapters() {
	if a.sched != nil {
		a.sched.Stop()
	}
	if a.watcher != nil {
		a.watcher.Stop()
	}
	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			log.Printf("[app] cache close: %v", err)
		}
	}
}

func (a *App) watchLoop() {
	for {
		select {
		case <-a.done:
			return
		case <-a.watcher.Events():
			a.Reload("file-change")
		}
	}
}

// Reload re-reads the artifact files, refreshes the cache and swaps
// in a new recognizer generation. A failed load keeps the current
// generation and records the error.
func (a *App) Reload(trigger string) UpdateRecord {
	rec := UpdateRecord{Trigger: trigger}

	set, err := a.loader.LoadFiles()
	if err != nil {
		log.Printf("[app] reload (%s) failed, keeping current vocabulary: %v", trigger, err)
		rec.Err = err.Error()
		a.record(rec)
		return rec
	}
	if a.cache != nil {
		if err := a.cache.PutArtifacts(set); err != nil {
			log.Printf("[app] cache refresh failed: %v", err)
		}
	}
	a.Recognizer.Rebuild(set)
	rec.Source = ports.SourceFiles

	a.mu.Lock()
	a.source = ports.SourceFiles
	a.mu.Unlock()

	rec.Patterns = a.Recognizer.Stats().Patterns
	a.record(rec)
	log.Printf("[app] artifacts reloaded (%s)", trigger)
	return rec
}

const maxUpdateHistory = 20

func (a *App) record(rec UpdateRecord) {
	rec.ID = uuid.NewString()
	rec.At = time.Now().UTC()
	if rec.Patterns == 0 {
		rec.Patterns = a.Recognizer.Stats().Patterns
	}
	a.mu.Lock()
	a.updates = append(a.updates, rec)
	if len(a.updates) > maxUpdateHistory {
		a.updates = a.updates[len(a.updates)-maxUpdateHistory:]
	}
	a.mu.Unlock()
}

// Status reports artifact provenance and reload history.
type Status struct {
	Source     ports.ArtifactSource `json:"source"`
	Recognizer recognizer.Stats     `json:"recognizer"`
	Cache      *ports.CacheStats    `json:"cache,omitempty"`
	Updates    []UpdateRecord       `json:"updates"`
}

// ArtifactStatus returns the current artifact provenance, recognizer
// stats, cache stats when a cache is configured, and recent updates.
func (a *App) ArtifactStatus() Status {
	a.mu.Lock()
	st := Status{
		Source:  a.source,
		Updates: append([]UpdateRecord(nil), a.updates...),
	}
	a.mu.Unlock()

	st.Recognizer = a.Recognizer.Stats()
	if a.cache != nil {
		if cs, err := a.cache.Stats(); err == nil {
			st.Cache = &cs
		} else {
			log.Printf("[app] cache stats: %v", err)
		}
	}
	return st
}
