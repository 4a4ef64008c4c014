// Package bbolt persists the artifact cache in a single-file bolt
// database so restarts skip the file load while the cache is fresh.
package bbolt

import (
	"encoding/json"
	"fmt"
	"sync/atomic"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/corey/intentd/internal/ports"
)

var (
	artifactsBucket = []byte("artifacts")

	artifactsKey = []byte("current")
	storedAtKey  = []byte("stored_at")
)

// DefaultTTL is how long a cached artifact set stays fresh.
const DefaultTTL = 24 * time.Hour

// Store is a bolt-backed ports.Storage with TTL-based freshness.
type Store struct {
	db  *bolt.DB
	ttl time.Duration

	hits   atomic.Int64
	misses atomic.Int64
}

// Open opens or creates the database at path. A ttl of 0 selects
// DefaultTTL.
func Open(path string, ttl time.Duration) (*Store, error) {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open cache db: %w", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(artifactsBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("init cache bucket: %w", err)
	}
	return &Store{db: db, ttl: ttl}, nil
}

// GetArtifacts returns the cached set when present and fresh.
func (s *Store) GetArtifacts() (ports.ArtifactSet, bool, error) {
	var set ports.ArtifactSet
	var raw []byte
	var storedAt time.Time

	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(artifactsBucket)
		if v := b.Get(artifactsKey); v != nil {
			raw = append([]byte(nil), v...)
		}
		if v := b.Get(storedAtKey); v != nil {
			return storedAt.UnmarshalText(v)
		}
		return nil
	})
	if err != nil {
		return set, false, fmt.Errorf("read cache: %w", err)
	}
	if raw == nil || time.Since(storedAt) > s.ttl {
		s.misses.Add(1)
		return set, false, nil
	}
	if err := json.Unmarshal(raw, &set); err != nil {
		s.misses.Add(1)
		return set, false, fmt.Errorf("decode cached artifacts: %w", err)
	}
	s.hits.Add(1)
	return set, true, nil
}

// Invalidate drops the cached artifact set and its timestamp.
func (s *Store) Invalidate() error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(artifactsBucket)
		if err := b.Delete(artifactsKey); err != nil {
			return err
		}
		return b.Delete(storedAtKey)
	})
}

// PutArtifacts stores the set and stamps it with the current time.
func (s *Store) PutArtifacts(set ports.ArtifactSet) error {
	raw, err := json.Marshal(set)
	if err != nil {
		return fmt.Errorf("encode artifacts: %w", err)
	}
	stamp, err := time.Now().UTC().MarshalText()
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(artifactsBucket)
		if err := b.Put(artifactsKey, raw); err != nil {
			return err
		}
		return b.Put(storedAtKey, stamp)
	})
}

// Stats reports cache presence, freshness and payload size.
func (s *Store) Stats() (ports.CacheStats, error) {
	stats := ports.CacheStats{
		TTL:    s.ttl,
		Hits:   s.hits.Load(),
		Misses: s.misses.Load(),
	}
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(artifactsBucket)
		if v := b.Get(artifactsKey); v != nil {
			stats.Present = true
			stats.SizeBytes = len(v)
		}
		if v := b.Get(storedAtKey); v != nil {
			return stats.StoredAt.UnmarshalText(v)
		}
		return nil
	})
	if err != nil {
		return stats, fmt.Errorf("read cache stats: %w", err)
	}
	stats.Fresh = stats.Present && time.Since(stats.StoredAt) <= s.ttl
	return stats, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
