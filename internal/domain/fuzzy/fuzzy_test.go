package fuzzy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corey/intentd/internal/ports"
)

var testCandidates = []Candidate{
	{Name: "Cadbury", Type: ports.TypeManufacturer},
	{Name: "Dairy Milk", Type: ports.TypeBrand},
	{Name: "market share", Type: ports.TypeMetric},
	{Name: "Snickers", Type: ports.TypeBrand},
}

func TestEnhanceTypo(t *testing.T) {
	// "cadbry" is one deletion away from Cadbury and scores well
	// above the default threshold.
	e := New(testCandidates)
	got := e.Enhance("show cadbry results", nil, 0)
	require.Len(t, got.Entities, 1)
	ent := got.Entities[0]
	assert.Equal(t, "cadbry", ent.Text)
	assert.Equal(t, "Cadbury", ent.Metadata.DisplayName)
	assert.Equal(t, ports.TypeManufacturer, ent.Type)
	assert.Equal(t, "fuzzy", ent.Metadata.Source)
	assert.GreaterOrEqual(t, ent.Confidence, 0.8)
	assert.Equal(t, 5, ent.Start)
	assert.Equal(t, 11, ent.End)
}

func TestEnhanceSuggestionBand(t *testing.T) {
	// With a high threshold the same near miss drops into the
	// suggestion band instead of producing an entity.
	e := New(testCandidates)
	got := e.Enhance("cadbry", nil, 0.99)
	assert.Empty(t, got.Entities)
	require.NotEmpty(t, got.Suggestions)
	assert.Equal(t, "cadbry", got.Suggestions[0].Input)
	assert.Equal(t, "Cadbury", got.Suggestions[0].Candidate)
	assert.Less(t, got.Suggestions[0].Confidence, 0.99)
}

func TestEnhanceAliasCandidate(t *testing.T) {
	// An alias surface form scores on its own spelling but the match
	// resolves to the canonical display name.
	e := New([]Candidate{
		{Name: "Coca-Cola", Type: ports.TypeBrand},
		{Name: "coke", DisplayName: "Coca-Cola", Type: ports.TypeBrand},
	})
	got := e.Enhance("cokke", nil, 0)
	require.Len(t, got.Entities, 1)
	assert.Equal(t, "cokke", got.Entities[0].Text)
	assert.Equal(t, "Coca-Cola", got.Entities[0].Metadata.DisplayName)
	assert.Equal(t, ports.TypeBrand, got.Entities[0].Type)
}

func TestEnhanceSkipsResolvedSpans(t *testing.T) {
	// Text already claimed by exact matches is not rescanned.
	e := New(testCandidates)
	resolved := []ports.RecognizedEntity{{Start: 0, End: 7}}
	got := e.Enhance("cadbury numbers", resolved, 0)
	assert.Empty(t, got.Entities)
}

func TestEnhanceUnrelatedToken(t *testing.T) {
	e := New(testCandidates)
	got := e.Enhance("zzzzqqq", nil, 0)
	assert.Empty(t, got.Entities)
	assert.Empty(t, got.Suggestions)
}

func TestEnhanceNilNoOp(t *testing.T) {
	var e *Enhancer
	got := e.Enhance("cadbry", nil, 0)
	assert.Empty(t, got.Entities)
	assert.Empty(t, got.Suggestions)
	assert.Equal(t, 0, e.CacheSize())
}

func TestRankCaching(t *testing.T) {
	e := New(testCandidates)
	first := e.rank("cadbry", topK)
	require.NotEmpty(t, first)
	assert.Equal(t, 1, e.CacheSize())

	second := e.rank("cadbry", topK)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, e.CacheSize())

	// Different limits are distinct cache entries.
	e.rank("cadbry", 1)
	assert.Equal(t, 2, e.CacheSize())
}

func TestRankOrderedAndCapped(t *testing.T) {
	e := New(testCandidates)
	matches := e.rank("cadbry", topK)
	require.NotEmpty(t, matches)
	assert.LessOrEqual(t, len(matches), topK)
	for i := 1; i < len(matches); i++ {
		assert.GreaterOrEqual(t, matches[i-1].Score, matches[i].Score)
	}
	assert.Equal(t, "Cadbury", matches[0].Candidate.Name)
	assert.Equal(t, 1, matches[0].EditDistance)
}

func TestScoreMultiWordCandidate(t *testing.T) {
	// A single token still scores against multi-word candidates via
	// the concatenated and per-token strategies.
	assert.GreaterOrEqual(t, score("marketshare", "market share"), 85)
	assert.GreaterOrEqual(t, score("market", "market share"), 80)
}

func TestGapTokens(t *testing.T) {
	text := "show Cadbury revnue trends"
	resolved := []ports.RecognizedEntity{{Start: 5, End: 12}}
	toks := gapTokens(text, resolved)
	require.Len(t, toks, 3)
	assert.Equal(t, gapToken{text: "show", start: 0}, toks[0])
	assert.Equal(t, gapToken{text: "revnue", start: 13}, toks[1])
	assert.Equal(t, gapToken{text: "trends", start: 20}, toks[2])
}

func TestGapTokensSkipShort(t *testing.T) {
	toks := gapTokens("a is x", nil)
	assert.Len(t, toks, 1)
	assert.Equal(t, "is", toks[0].text)
}
