// Package fuzzy adds approximate matching on top of the exact
// recognizer: tokens the automaton left unclaimed are compared against
// the vocabulary with Jaro-Winkler similarity, producing extra
// entities above the match threshold and near-miss suggestions below
// it.
package fuzzy

import (
	"fmt"
	"regexp"
	"sort"
	"sync"

	"github.com/corey/intentd/internal/ports"
)

const (
	// DefaultThreshold is the minimum similarity (0-1) for a fuzzy
	// entity match.
	DefaultThreshold = 0.8
	// candidateFloor is the minimum similarity for a token to be
	// considered at all. Candidates between the floor and the
	// threshold surface as suggestions.
	candidateFloor = 0.55
	// topK caps how many candidates are kept per token.
	topK = 3
	// maxSuggestions caps the suggestion list per input.
	maxSuggestions = 5
	// minTokenLen skips tokens too short to score meaningfully.
	minTokenLen = 2
)

var wordRun = regexp.MustCompile(`\w+`)

// Candidate is one vocabulary surface form the enhancer scores
// against. DisplayName is the canonical name a match resolves to; it
// differs from Name when the surface form is an alias.
type Candidate struct {
	Name        string
	DisplayName string
	Type        ports.EntityType
}

// FuzzyMatch is one scored candidate for an input token.
type FuzzyMatch struct {
	Token        string
	Candidate    Candidate
	Score        int
	EditDistance int
}

// Enhancer scores unmatched tokens against a fixed candidate list.
// It is immutable after construction aside from its internal cache,
// which is safe for concurrent use. A nil Enhancer degrades to a
// no-op.
type Enhancer struct {
	candidates []Candidate

	mu    sync.Mutex
	cache map[string][]FuzzyMatch
}

// New builds an enhancer over the given candidates. A candidate
// without a display name resolves to its own surface form.
func New(candidates []Candidate) *Enhancer {
	for i := range candidates {
		if candidates[i].DisplayName == "" {
			candidates[i].DisplayName = candidates[i].Name
		}
	}
	return &Enhancer{
		candidates: candidates,
		cache:      make(map[string][]FuzzyMatch),
	}
}

// Enhancement is what Enhance adds on top of the exact matches.
type Enhancement struct {
	Entities    []ports.RecognizedEntity
	Suggestions []ports.Suggestion
}

// Enhance scans the regions of text not covered by resolved entities
// and returns fuzzy entities and suggestions for them. resolved must
// be ordered by start offset. A threshold at or below 0 selects
// DefaultThreshold.
func (e *Enhancer) Enhance(text string, resolved []ports.RecognizedEntity, threshold float64) Enhancement {
	var out Enhancement
	if e == nil || len(e.candidates) == 0 {
		return out
	}
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	for _, tok := range gapTokens(text, resolved) {
		matches := e.rank(tok.text, topK)
		for _, m := range matches {
			conf := float64(m.Score) / 100
			if conf >= threshold {
				out.Entities = append(out.Entities, ports.RecognizedEntity{
					Text:       tok.text,
					Type:       m.Candidate.Type,
					Start:      tok.start,
					End:        tok.start + len(tok.text),
					Confidence: conf,
					Metadata: ports.EntityMetadata{
						DisplayName: m.Candidate.DisplayName,
						Source:      "fuzzy",
						FuzzyScore:  m.Score,
					},
				})
				// One fuzzy entity per token: the top candidate wins.
				break
			}
			if len(out.Suggestions) < maxSuggestions {
				out.Suggestions = append(out.Suggestions, ports.Suggestion{
					Input:      tok.text,
					Candidate:  m.Candidate.DisplayName,
					Type:       m.Candidate.Type,
					Confidence: conf,
				})
			}
		}
	}
	return out
}

// rank returns up to maxMatches candidates for token, best first,
// all scoring at or above the candidate floor. Results are cached per
// token so repeated queries over one vocabulary generation are cheap.
func (e *Enhancer) rank(token string, maxMatches int) []FuzzyMatch {
	key := fmt.Sprintf("%s:%d", token, maxMatches)
	e.mu.Lock()
	cached, ok := e.cache[key]
	e.mu.Unlock()
	if ok {
		return cached
	}

	floor := int(candidateFloor * 100)
	var matches []FuzzyMatch
	for _, c := range e.candidates {
		sc := score(token, c.Name)
		if sc < floor {
			continue
		}
		matches = append(matches, FuzzyMatch{
			Token:        token,
			Candidate:    c,
			Score:        sc,
			EditDistance: editDistance(token, c.Name),
		})
	}
	sort.SliceStable(matches, func(i, j int) bool { return matches[i].Score > matches[j].Score })
	if len(matches) > maxMatches {
		matches = matches[:maxMatches]
	}

	e.mu.Lock()
	e.cache[key] = matches
	e.mu.Unlock()
	return matches
}

// CacheSize reports the number of cached token lookups.
func (e *Enhancer) CacheSize() int {
	if e == nil {
		return 0
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.cache)
}

type gapToken struct {
	text  string
	start int
}

// gapTokens splits the uncovered regions of text into word tokens,
// keeping each token's byte offset into the original text.
func gapTokens(text string, resolved []ports.RecognizedEntity) []gapToken {
	var toks []gapToken
	pos := 0
	emit := func(lo, hi int) {
		for _, loc := range wordRun.FindAllStringIndex(text[lo:hi], -1) {
			tok := text[lo+loc[0] : lo+loc[1]]
			if len(tok) >= minTokenLen {
				toks = append(toks, gapToken{text: tok, start: lo + loc[0]})
			}
		}
	}
	for _, r := range resolved {
		if r.Start > pos {
			emit(pos, r.Start)
		}
		if r.End > pos {
			pos = r.End
		}
	}
	if pos < len(text) {
		emit(pos, len(text))
	}
	return toks
}
