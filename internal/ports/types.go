// Package ports defines the interfaces and shared record types that
// connect the domain layer to its adapters. Domain packages depend on
// these contracts, never on concrete adapter implementations.
package ports

// EntityType identifies the kind of vocabulary term a pattern or
// recognized entity refers to. The set is closed: adapters and the
// domain layer agree on these exact strings.
type EntityType string

const (
	TypeManufacturer EntityType = "manufacturer"
	TypeBrand        EntityType = "brand"
	TypeProduct      EntityType = "product"
	TypeCategory     EntityType = "category"
	TypeMetric       EntityType = "metric"
	TypeTimePeriod   EntityType = "time_period"
	TypeSpecial      EntityType = "special"
)

// Priority returns the resolution rank for the type. Lower wins ties.
func (t EntityType) Priority() int {
	switch t {
	case TypeManufacturer:
		return 1
	case TypeBrand:
		return 2
	case TypeProduct:
		return 3
	case TypeCategory:
		return 4
	case TypeMetric:
		return 5
	case TypeTimePeriod:
		return 6
	case TypeSpecial:
		return 7
	default:
		return 8
	}
}

// TagName returns the XML-style tag used when annotating text with
// this type. Underscores become hyphens so tags stay well formed.
func (t EntityType) TagName() string {
	if t == TypeTimePeriod {
		return "time-period"
	}
	return string(t)
}

// Gazetteer is the canonical vocabulary: named entities grouped by
// kind, plus the flat metric, time and special token lists.
type Gazetteer struct {
	Entities      GazetteerEntities `json:"entities"`
	Metrics       []string          `json:"metrics"`
	Timewords     []string          `json:"timewords"`
	SpecialTokens []string          `json:"special_tokens"`
}

// GazetteerEntities holds the named-entity sections of a gazetteer.
// JSON keys are plural; the domain layer maps them to EntityType.
type GazetteerEntities struct {
	Manufacturers []string `json:"manufacturers"`
	Brands        []string `json:"brands"`
	Categories    []string `json:"categories"`
	Products      []string `json:"products"`
}

// Alias maps an alternate surface form to a canonical entity name.
type Alias struct {
	ID         string     `json:"id"`
	Type       EntityType `json:"type"`
	Name       string     `json:"name"`
	Alias      string     `json:"alias"`
	Confidence float64    `json:"confidence"`
}

// ArtifactSet bundles a gazetteer with its aliases. It is the unit of
// vocabulary loading, caching and hot reload.
type ArtifactSet struct {
	Gazetteer Gazetteer `json:"gazetteer"`
	Aliases   []Alias   `json:"aliases"`
}

// RecognizedEntity is one resolved span of input text.
type RecognizedEntity struct {
	Text       string         `json:"text"`
	Type       EntityType     `json:"type"`
	Start      int            `json:"start"`
	End        int            `json:"end"`
	Confidence float64        `json:"confidence"`
	ID         string         `json:"id,omitempty"`
	Metadata   EntityMetadata `json:"metadata"`
}

// EntityMetadata carries the canonical name and provenance of an
// entity. DisplayName is the canonical vocabulary name; for aliases
// it differs from the matched text.
type EntityMetadata struct {
	DisplayName string `json:"display_name"`
	Source      string `json:"source"`
	FuzzyScore  int    `json:"fuzzy_score,omitempty"`
}

// Suggestion is a near-miss token offered when no exact or fuzzy
// match claimed it but a candidate scored close to the threshold.
type Suggestion struct {
	Input      string     `json:"input"`
	Candidate  string     `json:"candidate"`
	Type       EntityType `json:"type"`
	Confidence float64    `json:"confidence"`
}

// RecognitionResult is the full outcome of one recognize call. Error
// is set instead of returning an error so callers always get a usable
// result shape.
type RecognitionResult struct {
	TaggedText       string             `json:"tagged_text"`
	Entities         []RecognizedEntity `json:"entities"`
	Suggestions      []Suggestion       `json:"suggestions"`
	ProcessingTimeMS float64            `json:"processing_time_ms"`
	Error            string             `json:"error,omitempty"`
}
