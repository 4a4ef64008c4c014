package entity

import (
	"strings"

	"github.com/corey/intentd/internal/ports"
)

const (
	canonicalConfidence = 1.0
	defaultAliasConf    = 0.9
	minPatternLen       = 2
)

// stopWords are generic tokens that would fire on nearly every query
// and so never become patterns, even when an artifact lists them.
var stopWords = map[string]bool{
	"the": true, "a": true, "an": true, "and": true, "or": true,
	"of": true, "in": true, "on": true, "for": true, "to": true,
	"is": true, "it": true, "by": true, "at": true, "as": true,
	"be": true, "me": true, "my": true, "we": true, "us": true,
}

// Store holds the deduplicated pattern list for one vocabulary
// generation. It is immutable after construction.
type Store struct {
	patterns []Pattern
	byKey    map[string]int
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{byKey: make(map[string]int)}
}

// FromArtifacts builds a store from a gazetteer and its aliases.
// Canonical names get confidence 1.0, aliases keep their own score.
func FromArtifacts(set ports.ArtifactSet) *Store {
	s := NewStore()
	g := set.Gazetteer
	s.addAll(ports.TypeManufacturer, g.Entities.Manufacturers)
	s.addAll(ports.TypeBrand, g.Entities.Brands)
	s.addAll(ports.TypeCategory, g.Entities.Categories)
	s.addAll(ports.TypeProduct, g.Entities.Products)
	s.addAll(ports.TypeMetric, g.Metrics)
	s.addAll(ports.TypeTimePeriod, g.Timewords)
	s.addAll(ports.TypeSpecial, g.SpecialTokens)
	for _, a := range set.Aliases {
		conf := a.Confidence
		if conf <= 0 {
			conf = defaultAliasConf
		}
		s.Add(Pattern{
			Text:        a.Alias,
			Type:        a.Type,
			DisplayName: a.Name,
			EntityID:    a.ID,
			Confidence:  conf,
			IsAlias:     true,
		})
	}
	return s
}

func (s *Store) addAll(t ports.EntityType, names []string) {
	for _, name := range names {
		s.Add(Pattern{
			Text:        name,
			Type:        t,
			DisplayName: name,
			Confidence:  canonicalConfidence,
		})
	}
}

// Add registers a pattern. Short strings and stopwords are dropped.
// A later pattern with the same lowercased text and type replaces an
// earlier one only when its confidence is higher.
func (s *Store) Add(p Pattern) {
	p.Text = strings.TrimSpace(p.Text)
	if len(p.Text) < minPatternLen {
		return
	}
	lower := strings.ToLower(p.Text)
	if stopWords[lower] {
		return
	}
	if p.DisplayName == "" {
		p.DisplayName = p.Text
	}
	key := lower + "\x00" + string(p.Type)
	if i, ok := s.byKey[key]; ok {
		if p.Confidence > s.patterns[i].Confidence {
			s.patterns[i] = p
		}
		return
	}
	s.byKey[key] = len(s.patterns)
	s.patterns = append(s.patterns, p)
}

// Patterns returns the stored patterns in insertion order. The slice
// is shared: callers must not mutate it.
func (s *Store) Patterns() []Pattern { return s.patterns }

// Len reports the number of stored patterns.
func (s *Store) Len() int { return len(s.patterns) }

// OfType returns the display names of patterns with the given type.
// Aliases are skipped so the list holds canonical vocabulary only.
func (s *Store) OfType(t ports.EntityType) []string {
	var out []string
	for _, p := range s.patterns {
		if p.Type == t && !p.IsAlias {
			out = append(out, p.DisplayName)
		}
	}
	return out
}
