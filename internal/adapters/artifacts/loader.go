// Package artifacts loads recognition vocabulary from disk, with a
// persistent cache in front and built-in defaults behind. Artifact
// files are a gazetteer.json plus an aliases.jsonl of one alias
// record per line.
package artifacts

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/corey/intentd/internal/ports"
)

const (
	gazetteerFile = "gazetteer.json"
	aliasesFile   = "aliases.jsonl"
)

// Loader resolves an artifact set through cache, files and defaults,
// in that order. Cache may be nil, in which case it is skipped.
type Loader struct {
	dir   string
	cache ports.Storage
}

// NewLoader returns a loader reading from dir, with an optional cache.
func NewLoader(dir string, cache ports.Storage) *Loader {
	return &Loader{dir: dir, cache: cache}
}

// Load returns the freshest available artifact set and where it came
// from. File loads refresh the cache. Only a total miss across all
// three tiers returns an error, and the defaults tier cannot miss, so
// Load practically always succeeds.
func (l *Loader) Load() (ports.ArtifactSet, ports.ArtifactSource, error) {
	if l.cache != nil {
		set, ok, err := l.cache.GetArtifacts()
		if err != nil {
			log.Printf("[artifacts] cache read failed: %v", err)
		} else if ok {
			return set, ports.SourceCache, nil
		}
	}

	set, err := l.LoadFiles()
	if err != nil {
		log.Printf("[artifacts] file load failed, using defaults: %v", err)
		return Defaults(), ports.SourceDefaults, nil
	}
	if l.cache != nil {
		if err := l.cache.PutArtifacts(set); err != nil {
			log.Printf("[artifacts] cache write failed: %v", err)
		}
	}
	return set, ports.SourceFiles, nil
}

// LoadFiles reads the artifact files directly, bypassing the cache.
// Used by the reload path so file edits take effect immediately.
func (l *Loader) LoadFiles() (ports.ArtifactSet, error) {
	var set ports.ArtifactSet

	data, err := os.ReadFile(filepath.Join(l.dir, gazetteerFile))
	if err != nil {
		return set, fmt.Errorf("read gazetteer: %w", err)
	}
	if err := json.Unmarshal(data, &set.Gazetteer); err != nil {
		return set, fmt.Errorf("parse gazetteer: %w", err)
	}

	aliases, err := l.loadAliases()
	if err != nil {
		return set, err
	}
	set.Aliases = aliases
	return set, nil
}

// loadAliases parses aliases.jsonl. A missing file is fine; a
// malformed line is skipped with a warning rather than failing the
// whole load.
func (l *Loader) loadAliases() ([]ports.Alias, error) {
	f, err := os.Open(filepath.Join(l.dir, aliasesFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("open aliases: %w", err)
	}
	defer f.Close()

	var aliases []ports.Alias
	scanner := bufio.NewScanner(f)
	line := 0
	for scanner.Scan() {
		line++
		raw := scanner.Bytes()
		if len(raw) == 0 {
			continue
		}
		var a ports.Alias
		if err := json.Unmarshal(raw, &a); err != nil {
			log.Printf("[artifacts] skipping malformed alias at line %d: %v", line, err)
			continue
		}
		if a.ID == "" {
			a.ID = uuid.NewString()
		}
		aliases = append(aliases, a)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan aliases: %w", err)
	}
	return aliases, nil
}
