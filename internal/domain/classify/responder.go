package classify

import "sync"

// maxHistory bounds how many past categories the responder remembers.
const maxHistory = 5

// Responder wraps Respond with a short memory of past categories, so
// follow-up suggestions can lean toward what the user was exploring.
type Responder struct {
	mu      sync.Mutex
	history []Category
}

// NewResponder returns a responder with empty history.
func NewResponder() *Responder {
	return &Responder{}
}

// Respond answers the message and records its category. Unknown
// responses get suggestions biased toward the most recent topic.
func (r *Responder) Respond(message string) Response {
	resp := Respond(message)

	r.mu.Lock()
	if resp.Category == CategoryUnknown {
		if n := len(r.history); n > 0 {
			resp.Suggestions = contextSuggestions(r.history[n-1])
		}
	} else {
		r.history = append(r.history, resp.Category)
		if len(r.history) > maxHistory {
			r.history = r.history[len(r.history)-maxHistory:]
		}
	}
	r.mu.Unlock()
	return resp
}

// History returns the remembered categories, oldest first.
func (r *Responder) History() []Category {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Category(nil), r.history...)
}

// contextSuggestions picks follow-ups for the topic the user was last
// asking about.
func contextSuggestions(last Category) []string {
	switch last {
	case CategoryRevenue:
		return []string{"Break revenue down by region", "Compare to last quarter", "Show YoY growth trends"}
	case CategoryPromotion:
		return []string{"Which campaign had the best ROI?", "Show promotion impact on revenue", "Optimize the promotion calendar"}
	case CategoryPricing:
		return []string{"Run a price elasticity analysis", "Compare competitor pricing", "Find premium opportunities"}
	case CategoryProduct:
		return []string{"Which categories are growing fastest?", "Show market share by brand", "Find product opportunities"}
	default:
		return defaultSuggestions
	}
}
