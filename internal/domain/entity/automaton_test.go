package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corey/intentd/internal/ports"
)

func buildAutomaton(t *testing.T, patterns ...Pattern) *Automaton {
	t.Helper()
	a := NewAutomaton()
	a.Build(patterns)
	return a
}

func TestScanNotBuilt(t *testing.T) {
	a := NewAutomaton()
	_, err := a.Scan("anything")
	assert.ErrorIs(t, err, ErrNotBuilt)
}

func TestScanWordBoundary(t *testing.T) {
	// "Mars" must not match inside "Marshmallow" but the standalone
	// occurrence still fires at its exact byte offset.
	a := buildAutomaton(t, Pattern{Text: "Mars", Type: ports.TypeManufacturer, DisplayName: "Mars", Confidence: 1.0})
	matches, err := a.Scan("Marshmallow is not Mars")
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, 19, matches[0].Start)
	assert.Equal(t, 23, matches[0].End)
}

func TestScanCaseInsensitive(t *testing.T) {
	a := buildAutomaton(t, Pattern{Text: "Cadbury", Type: ports.TypeManufacturer, DisplayName: "Cadbury", Confidence: 1.0})
	matches, err := a.Scan("CADBURY, cadbury, and Cadbury")
	require.NoError(t, err)
	require.Len(t, matches, 3)
	assert.Equal(t, 0, matches[0].Start)
	assert.Equal(t, 9, matches[1].Start)
	assert.Equal(t, 22, matches[2].Start)
	// Offsets point into the original text, casing preserved.
	assert.Equal(t, "CADBURY", "CADBURY, cadbury, and Cadbury"[matches[0].Start:matches[0].End])
}

func TestScanOverlappingPatterns(t *testing.T) {
	// Both the short and the long pattern fire; Resolve picks later.
	a := buildAutomaton(t,
		Pattern{Text: "market", Type: ports.TypeMetric, DisplayName: "market", Confidence: 1.0},
		Pattern{Text: "market share", Type: ports.TypeMetric, DisplayName: "market share", Confidence: 1.0},
	)
	matches, err := a.Scan("show market share by brand")
	require.NoError(t, err)
	assert.Len(t, matches, 2)
}

func TestScanSharedSuffix(t *testing.T) {
	// Failure links must surface a pattern that is a suffix of a
	// longer pattern's prefix path.
	a := buildAutomaton(t,
		Pattern{Text: "he", Type: ports.TypeSpecial, DisplayName: "he", Confidence: 1.0},
		Pattern{Text: "she", Type: ports.TypeSpecial, DisplayName: "she", Confidence: 1.0},
	)
	matches, err := a.Scan("she")
	require.NoError(t, err)
	// "he" ends mid-word inside "she", so only "she" passes the
	// boundary filter.
	require.Len(t, matches, 1)
	assert.Equal(t, "she", matches[0].Pattern.Text)
}

func TestScanAdjacentPunctuation(t *testing.T) {
	a := buildAutomaton(t, Pattern{Text: "Q1", Type: ports.TypeTimePeriod, DisplayName: "Q1", Confidence: 1.0})
	matches, err := a.Scan("revenue (Q1) vs Q1.")
	require.NoError(t, err)
	assert.Len(t, matches, 2)
}

func TestScanEmptyText(t *testing.T) {
	a := buildAutomaton(t, Pattern{Text: "Cadbury", Type: ports.TypeManufacturer, DisplayName: "Cadbury", Confidence: 1.0})
	matches, err := a.Scan("")
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestRebuildReplacesPatterns(t *testing.T) {
	a := buildAutomaton(t, Pattern{Text: "Cadbury", Type: ports.TypeManufacturer, DisplayName: "Cadbury", Confidence: 1.0})
	a.Build([]Pattern{{Text: "Nestle", Type: ports.TypeManufacturer, DisplayName: "Nestle", Confidence: 1.0}})
	matches, err := a.Scan("Cadbury and Nestle")
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "Nestle", matches[0].Pattern.Text)
}
