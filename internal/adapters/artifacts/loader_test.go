package artifacts

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corey/intentd/internal/ports"
)

func writeArtifacts(t *testing.T, dir, gazetteer, aliases string) {
	t.Helper()
	if gazetteer != "" {
		require.NoError(t, os.WriteFile(filepath.Join(dir, gazetteerFile), []byte(gazetteer), 0o644))
	}
	if aliases != "" {
		require.NoError(t, os.WriteFile(filepath.Join(dir, aliasesFile), []byte(aliases), 0o644))
	}
}

const testGazetteer = `{
	"entities": {"manufacturers": ["Cadbury"], "brands": ["Dairy Milk"]},
	"metrics": ["revenue"],
	"timewords": ["Q1"],
	"special_tokens": ["vs"]
}`

func TestLoadFromFiles(t *testing.T) {
	dir := t.TempDir()
	writeArtifacts(t, dir, testGazetteer,
		`{"type":"manufacturer","name":"Cadbury","alias":"cadburys","confidence":0.9}`+"\n")

	set, source, err := NewLoader(dir, nil).Load()
	require.NoError(t, err)
	assert.Equal(t, ports.SourceFiles, source)
	assert.Equal(t, []string{"Cadbury"}, set.Gazetteer.Entities.Manufacturers)
	require.Len(t, set.Aliases, 1)
	assert.Equal(t, "cadburys", set.Aliases[0].Alias)
	// Records without an id are assigned one on load.
	assert.NotEmpty(t, set.Aliases[0].ID)
}

func TestLoadMissingAliasesFile(t *testing.T) {
	dir := t.TempDir()
	writeArtifacts(t, dir, testGazetteer, "")

	set, source, err := NewLoader(dir, nil).Load()
	require.NoError(t, err)
	assert.Equal(t, ports.SourceFiles, source)
	assert.Empty(t, set.Aliases)
}

func TestLoadSkipsMalformedAliasLines(t *testing.T) {
	dir := t.TempDir()
	writeArtifacts(t, dir, testGazetteer,
		"not json\n"+
			`{"type":"metric","name":"revenue","alias":"sales"}`+"\n"+
			"\n")

	set, err := NewLoader(dir, nil).LoadFiles()
	require.NoError(t, err)
	require.Len(t, set.Aliases, 1)
	assert.Equal(t, "sales", set.Aliases[0].Alias)
}

func TestLoadFallsBackToDefaults(t *testing.T) {
	set, source, err := NewLoader(t.TempDir(), nil).Load()
	require.NoError(t, err)
	assert.Equal(t, ports.SourceDefaults, source)
	assert.Contains(t, set.Gazetteer.Entities.Manufacturers, "Cadbury")
	assert.NotEmpty(t, set.Aliases)
}

type stubCache struct {
	set    ports.ArtifactSet
	ok     bool
	stored *ports.ArtifactSet
}

func (s *stubCache) GetArtifacts() (ports.ArtifactSet, bool, error) { return s.set, s.ok, nil }
func (s *stubCache) PutArtifacts(set ports.ArtifactSet) error       { s.stored = &set; return nil }
func (s *stubCache) Invalidate() error                              { s.ok = false; return nil }
func (s *stubCache) Stats() (ports.CacheStats, error)               { return ports.CacheStats{}, nil }
func (s *stubCache) Close() error                                   { return nil }

func TestLoadPrefersCache(t *testing.T) {
	cached := Defaults()
	cached.Gazetteer.Entities.Manufacturers = []string{"FromCache"}
	loader := NewLoader(t.TempDir(), &stubCache{set: cached, ok: true})

	set, source, err := loader.Load()
	require.NoError(t, err)
	assert.Equal(t, ports.SourceCache, source)
	assert.Equal(t, []string{"FromCache"}, set.Gazetteer.Entities.Manufacturers)
}

func TestLoadRefreshesCacheFromFiles(t *testing.T) {
	dir := t.TempDir()
	writeArtifacts(t, dir, testGazetteer, "")
	cache := &stubCache{}

	_, source, err := NewLoader(dir, cache).Load()
	require.NoError(t, err)
	assert.Equal(t, ports.SourceFiles, source)
	require.NotNil(t, cache.stored)
	assert.Equal(t, []string{"Cadbury"}, cache.stored.Gazetteer.Entities.Manufacturers)
}
