// Package recognizer is the public face of entity recognition. It
// owns the current vocabulary generation and turns raw query text
// into a tagged, resolved, fuzzy-enhanced result. Recognize never
// returns an error: failures surface in the result's Error field so
// callers always have something renderable.
package recognizer

import (
	"fmt"
	"log"
	"sync/atomic"
	"time"
	"unicode/utf8"

	"github.com/corey/intentd/internal/domain/entity"
	"github.com/corey/intentd/internal/domain/fuzzy"
	"github.com/corey/intentd/internal/ports"
)

// MaxInputLen is the hard cap on recognized text. Longer input is
// truncated, not rejected.
const MaxInputLen = 500

// Options tunes a single Recognize call.
type Options struct {
	// Mode selects overlap resolution. Zero value is longest-match.
	Mode entity.ResolveMode
	// Fuzzy enables the enhancement pass. Off by default.
	Fuzzy bool
	// Threshold overrides the fuzzy confidence threshold for this
	// call. Zero keeps the configured default.
	Threshold float64
}

// generation is one immutable vocabulary snapshot: the pattern store,
// a built automaton and a fuzzy enhancer with its own cache. Swapped
// wholesale on rebuild so in-flight calls keep a consistent view.
type generation struct {
	store     *entity.Store
	automaton *entity.Automaton
	enhancer  *fuzzy.Enhancer
	builtAt   time.Time
}

// Recognizer resolves entities in query text against the currently
// loaded vocabulary. Safe for concurrent use; Rebuild may run while
// Recognize calls are in flight.
type Recognizer struct {
	current   atomic.Pointer[generation]
	threshold float64
	requests  atomic.Int64
}

// Config controls recognizer construction.
type Config struct {
	// FuzzyThreshold is the similarity floor for fuzzy entity
	// matches. Zero selects the package default.
	FuzzyThreshold float64
}

// New returns a recognizer with no vocabulary loaded. Recognize works
// immediately but reports an error result until Rebuild runs.
func New(cfg Config) *Recognizer {
	return &Recognizer{threshold: cfg.FuzzyThreshold}
}

// Rebuild constructs a fresh generation from the artifact set and
// atomically swaps it in. In-flight Recognize calls finish on the
// generation they started with.
func (r *Recognizer) Rebuild(set ports.ArtifactSet) {
	store := entity.FromArtifacts(set)
	automaton := entity.NewAutomaton()
	automaton.Build(store.Patterns())

	// Every surface form is a fuzzy candidate. Aliases score on their
	// own spelling but resolve to the canonical display name.
	var candidates []fuzzy.Candidate
	for _, p := range store.Patterns() {
		name := p.DisplayName
		if p.IsAlias {
			name = p.Text
		}
		candidates = append(candidates, fuzzy.Candidate{Name: name, DisplayName: p.DisplayName, Type: p.Type})
	}

	gen := &generation{
		store:     store,
		automaton: automaton,
		enhancer:  fuzzy.New(candidates),
		builtAt:   time.Now(),
	}
	r.current.Store(gen)
	log.Printf("[recognizer] rebuilt: %d patterns, %d fuzzy candidates", store.Len(), len(candidates))
}

// Recognize processes text and returns a complete result. It always
// stamps ProcessingTimeMS, truncates input beyond MaxInputLen, and
// converts internal failures into the result's Error field.
func (r *Recognizer) Recognize(text string, opts Options) (result ports.RecognitionResult) {
	start := time.Now()
	r.requests.Add(1)
	defer func() {
		result.ProcessingTimeMS = float64(time.Since(start).Microseconds()) / 1000
		if rec := recover(); rec != nil {
			log.Printf("[recognizer] recovered: %v", rec)
			result = ports.RecognitionResult{
				TaggedText:       text,
				ProcessingTimeMS: float64(time.Since(start).Microseconds()) / 1000,
				Error:            fmt.Sprintf("recognition failed: %v", rec),
			}
		}
	}()

	if len(text) > MaxInputLen {
		log.Printf("[recognizer] input truncated from %d to %d bytes", len(text), MaxInputLen)
		cut := MaxInputLen
		for cut > 0 && !utf8.RuneStart(text[cut]) {
			cut--
		}
		text = text[:cut]
	}
	result.TaggedText = text

	gen := r.current.Load()
	if gen == nil {
		result.Error = "no vocabulary loaded"
		return result
	}

	raw, err := gen.automaton.Scan(text)
	if err != nil {
		result.Error = fmt.Sprintf("scan: %v", err)
		return result
	}
	resolved := entity.Resolve(raw, opts.Mode)
	result.TaggedText = entity.Tag(text, resolved)

	entities := make([]ports.RecognizedEntity, 0, len(resolved))
	for _, m := range resolved {
		source := "exact"
		if m.Pattern.IsAlias {
			source = "alias"
		}
		entities = append(entities, ports.RecognizedEntity{
			Text:       text[m.Start:m.End],
			Type:       m.Pattern.Type,
			Start:      m.Start,
			End:        m.End,
			Confidence: m.Pattern.Confidence,
			ID:         m.Pattern.EntityID,
			Metadata:   ports.EntityMetadata{DisplayName: m.Pattern.DisplayName, Source: source},
		})
	}

	// Fuzzy results extend the entity list only; the tagged text keeps
	// the exact match set so misspellings are never wrapped in tags.
	if opts.Fuzzy {
		threshold := opts.Threshold
		if threshold <= 0 {
			threshold = r.threshold
		}
		enh := gen.enhancer.Enhance(text, entities, threshold)
		entities = mergeFuzzy(entities, enh.Entities)
		result.Suggestions = enh.Suggestions
	}

	result.Entities = entities
	return result
}

// Stats reports the current generation and request counters.
func (r *Recognizer) Stats() Stats {
	s := Stats{Requests: r.requests.Load()}
	if gen := r.current.Load(); gen != nil {
		s.Loaded = true
		s.Patterns = gen.store.Len()
		s.BuiltAt = gen.builtAt
		s.FuzzyCacheSize = gen.enhancer.CacheSize()
	}
	return s
}

// Stats is a snapshot of recognizer state for diagnostics.
type Stats struct {
	Loaded         bool      `json:"loaded"`
	Patterns       int       `json:"patterns"`
	BuiltAt        time.Time `json:"built_at"`
	FuzzyCacheSize int       `json:"fuzzy_cache_size"`
	Requests       int64     `json:"requests"`
}

// Vocabulary returns the canonical names of the given type from the
// current generation, or nil when nothing is loaded.
func (r *Recognizer) Vocabulary(t ports.EntityType) []string {
	gen := r.current.Load()
	if gen == nil {
		return nil
	}
	return gen.store.OfType(t)
}

// mergeFuzzy splices fuzzy entities into the exact list, keeping the
// combined slice ordered by start offset.
func mergeFuzzy(exact, extra []ports.RecognizedEntity) []ports.RecognizedEntity {
	if len(extra) == 0 {
		return exact
	}
	merged := append(exact, extra...)
	for i := 1; i < len(merged); i++ {
		for j := i; j > 0 && merged[j].Start < merged[j-1].Start; j-- {
			merged[j], merged[j-1] = merged[j-1], merged[j]
		}
	}
	return merged
}
