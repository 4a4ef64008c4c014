package ports

import "time"

// Storage persists artifact sets between runs so startup can skip the
// slower file load. Implementations decide freshness via TTL.
type Storage interface {
	// GetArtifacts returns the cached artifact set, or ok=false when
	// nothing fresh is stored.
	GetArtifacts() (set ArtifactSet, ok bool, err error)

	// PutArtifacts stores the artifact set with the current time as
	// its freshness mark.
	PutArtifacts(set ArtifactSet) error

	// Invalidate drops the cached artifact set.
	Invalidate() error

	// Stats reports cache metadata for diagnostics.
	Stats() (CacheStats, error)

	// Close releases the underlying store.
	Close() error
}

// CacheStats describes the state of the artifact cache.
type CacheStats struct {
	Present   bool          `json:"present"`
	Fresh     bool          `json:"fresh"`
	StoredAt  time.Time     `json:"stored_at"`
	TTL       time.Duration `json:"ttl"`
	SizeBytes int           `json:"size_bytes"`
	Hits      int64         `json:"hits"`
	Misses    int64         `json:"misses"`
}

// ArtifactSource tells where a loaded artifact set came from.
type ArtifactSource string

const (
	SourceCache    ArtifactSource = "cache"
	SourceFiles    ArtifactSource = "files"
	SourceDefaults ArtifactSource = "defaults"
)

// ArtifactLoader produces artifact sets from wherever they live.
type ArtifactLoader interface {
	// Load returns the best available artifact set and its source.
	// It falls back through cache, files and built-in defaults and
	// only errors when every tier fails.
	Load() (ArtifactSet, ArtifactSource, error)
}

// Watcher notifies about changes to artifact files on disk.
type Watcher interface {
	// Events delivers one value per debounced change burst.
	Events() <-chan struct{}
	Stop()
}
