// Package entity implements the exact-match recognition core: the
// pattern store built from vocabulary artifacts, a multi-pattern
// string automaton, overlap resolution and text tagging.
package entity

import "github.com/corey/intentd/internal/ports"

// Pattern is one surface form the automaton searches for, together
// with the vocabulary record it resolves to.
type Pattern struct {
	Text        string
	Type        ports.EntityType
	DisplayName string
	EntityID    string
	Confidence  float64
	IsAlias     bool
}

// Match is one raw automaton hit: byte offsets into the scanned text
// plus the pattern that fired. [Start, End) half-open.
type Match struct {
	Start   int
	End     int
	Pattern Pattern
}

// Len returns the matched span length in bytes.
func (m Match) Len() int { return m.End - m.Start }
