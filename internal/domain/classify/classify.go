// Package classify categorizes chat messages by topic so the server
// can pick a canned analytics response. Scoring is weighted keyword
// matching: primary keywords count double, the best total wins.
package classify

import (
	"regexp"
	"sort"
)

// Category is the topic a message resolves to.
type Category string

const (
	CategoryRevenue   Category = "revenue"
	CategoryPromotion Category = "promotion"
	CategoryPricing   Category = "pricing"
	CategoryProduct   Category = "product"
	CategoryHelp      Category = "help"
	CategoryUnknown   Category = "unknown"
)

const (
	primaryWeight   = 2.0
	secondaryWeight = 1.0
	// maxScore normalizes raw scores into a 0-1 confidence.
	maxScore = 10.0
	// ambiguityGap is the minimum lead the top category needs over
	// the runner-up to not be considered ambiguous.
	ambiguityGap = 0.3
)

type patternSet struct {
	primary   []*regexp.Regexp
	secondary []*regexp.Regexp
}

func compileAll(exprs []string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(exprs))
	for i, e := range exprs {
		out[i] = regexp.MustCompile(`(?i)\b(` + e + `)\b`)
	}
	return out
}

var patterns = map[Category]patternSet{
	CategoryRevenue: {
		primary:   compileAll([]string{`revenue|revenues`, `sales|sale`, `earnings|earning`, `income|incomes`, `turnover`, `performance`}),
		secondary: compileAll([]string{`growth|growing|grew`, `total|overall`, `quarterly|monthly|yearly`, `target|targets|goal|goals`, `achievement|achievements`}),
	},
	CategoryPromotion: {
		primary:   compileAll([]string{`promotion|promotions|promo|promos`, `campaign|campaigns`, `discount|discounts`, `offer|offers|offering`, `deal|deals`, `marketing`}),
		secondary: compileAll([]string{`roi|return`, `effectiveness|effective`, `performance|performing`, `impact|impacts`, `optimization|optimize`}),
	},
	CategoryPricing: {
		primary:   compileAll([]string{`price|prices|pricing`, `cost|costs|costing`, `competitor|competitors|competitive`, `elasticity|elastic`, `positioning|position`}),
		secondary: compileAll([]string{`strategy|strategies`, `analysis|analyze`, `comparison|compare|comparing`, `optimization|optimize`, `recommendation|recommendations`}),
	},
	CategoryProduct: {
		primary:   compileAll([]string{`product|products`, `brand|brands|branding`, `category|categories`, `item|items`, `portfolio`}),
		secondary: compileAll([]string{`performance|performing`, `market share|share`, `growth|growing`, `opportunity|opportunities`, `analysis|analyze`}),
	},
	CategoryHelp: {
		primary:   compileAll([]string{`help|helping`, `what can|what do|how do`, `available|options`, `guide|guidance`, `support`}),
		secondary: compileAll([]string{`questions|question`, `ask|asking`, `information|info`, `assistance|assist`}),
	},
}

// Categorize returns the best-scoring category for the message, or
// CategoryUnknown when nothing matches.
func Categorize(message string) Category {
	best := CategoryUnknown
	bestScore := 0.0
	for _, c := range orderedCategories() {
		if s := Score(message, c); s > bestScore {
			best, bestScore = c, s
		}
	}
	return best
}

// Score computes the weighted keyword score for one category.
func Score(message string, c Category) float64 {
	ps, ok := patterns[c]
	if !ok {
		return 0
	}
	score := 0.0
	for _, p := range ps.primary {
		score += float64(len(p.FindAllString(message, -1))) * primaryWeight
	}
	for _, p := range ps.secondary {
		score += float64(len(p.FindAllString(message, -1))) * secondaryWeight
	}
	return score
}

// Confidence normalizes the category score into [0, 1].
func Confidence(message string, c Category) float64 {
	conf := Score(message, c) / maxScore
	if conf > 1 {
		conf = 1
	}
	return conf
}

// IsAmbiguous reports whether the two best categories score too close
// to distinguish, which calls for a clarifying response.
func IsAmbiguous(message string) bool {
	var scores []float64
	for _, c := range orderedCategories() {
		scores = append(scores, Score(message, c))
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(scores)))
	if scores[0] < 0.1 {
		return false
	}
	return scores[0]-scores[1] < ambiguityGap
}

// orderedCategories keeps scoring deterministic when totals tie.
func orderedCategories() []Category {
	return []Category{CategoryRevenue, CategoryPromotion, CategoryPricing, CategoryProduct, CategoryHelp}
}
