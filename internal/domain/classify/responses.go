package classify

import "fmt"

// Response is a canned analytics answer for a chat message.
type Response struct {
	Text        string         `json:"response"`
	Category    Category       `json:"category"`
	Confidence  float64        `json:"confidence"`
	Suggestions []string       `json:"suggestions"`
	Data        map[string]any `json:"data,omitempty"`
}

// Sample figures for the demo dataset. One period, fixed numbers.
const (
	currentPeriod = "Q3-2025"
	totalRevenue  = 2450000
	growthRate    = 15.2
	yoyGrowth     = 8.7
)

var defaultSuggestions = []string{
	"Show me revenue performance",
	"How are promotions doing?",
	"What's our pricing strategy?",
	"Which products are top performers?",
}

// Respond categorizes the message and returns the matching canned
// response. Unknown and ambiguous messages get guidance instead of
// data.
func Respond(message string) Response {
	category := Categorize(message)
	switch category {
	case CategoryRevenue:
		return revenueResponse(message)
	case CategoryPromotion:
		return promotionResponse(message)
	case CategoryPricing:
		return pricingResponse(message)
	case CategoryProduct:
		return productResponse(message)
	case CategoryHelp:
		return helpResponse(message)
	default:
		return defaultResponse(message)
	}
}

func revenueResponse(message string) Response {
	text := fmt.Sprintf(`Here's your revenue summary for %s:

Total revenue: $%d (%.1f%% growth, %.1f%% YoY)

Top performers:
- Premium Energy Drink: $185,000 (+22.5%%)
- Organic Crackers: $142,000 (+18.3%%)
- Greek Yogurt: $128,000 (+12.1%%)`, currentPeriod, totalRevenue, growthRate, yoyGrowth)
	return Response{
		Text:        text,
		Category:    CategoryRevenue,
		Confidence:  Confidence(message, CategoryRevenue),
		Suggestions: []string{"Break revenue down by region", "Compare to last quarter", "Show YoY growth trends"},
		Data: map[string]any{
			"total_revenue": totalRevenue,
			"currency":      "USD",
			"period":        currentPeriod,
			"growth_rate":   growthRate,
		},
	}
}

func promotionResponse(message string) Response {
	text := `Promotion performance overview:

- Summer BOGO (beverages): 3.2x ROI, +18% lift
- Back to School bundle (snacks): 2.4x ROI, +12% lift
- Loyalty double points: 1.8x ROI, +7% lift

Overall promotion ROI is trending up quarter over quarter.`
	return Response{
		Text:        text,
		Category:    CategoryPromotion,
		Confidence:  Confidence(message, CategoryPromotion),
		Suggestions: []string{"Which campaign had the best ROI?", "Show promotion impact on revenue", "Optimize the promotion calendar"},
		Data:        map[string]any{"active_campaigns": 3, "avg_roi": 2.5},
	}
}

func pricingResponse(message string) Response {
	text := `Pricing position summary:

Competitive position: strong
- Premium Energy Drink: priced 4% above category average, holding share
- Organic Crackers: price elasticity -1.2, room for a modest increase
- Market price sensitivity: medium`
	return Response{
		Text:        text,
		Category:    CategoryPricing,
		Confidence:  Confidence(message, CategoryPricing),
		Suggestions: []string{"Run a price elasticity analysis", "Compare competitor pricing", "Find premium opportunities"},
		Data:        map[string]any{"competitive_position": "strong", "price_sensitivity": "medium"},
	}
}

func productResponse(message string) Response {
	text := `Product category performance:

- Beverages: $980,000 revenue, growing, 14.8% share
- Snacks: $612,000 revenue, growing, 11.4% share
- Dairy: $490,000 revenue, stable, 10.2% share
- Frozen foods: $368,000 revenue, stable, 8.9% share`
	return Response{
		Text:        text,
		Category:    CategoryProduct,
		Confidence:  Confidence(message, CategoryProduct),
		Suggestions: []string{"Which categories are growing fastest?", "Show market share by brand", "Find product opportunities"},
		Data:        map[string]any{"categories": 4, "period": currentPeriod},
	}
}

func helpResponse(message string) Response {
	text := `I can help you with:

- Revenue performance: growth rates, regional breakdown, top performers
- Promotion analysis: campaign ROI, effectiveness, optimization
- Pricing strategy: competitive positioning, elasticity, opportunities
- Product insights: category performance, market share, growth

Try asking "Show me our revenue performance" or "How are our promotions doing?"`
	return Response{
		Text:        text,
		Category:    CategoryHelp,
		Confidence:  Confidence(message, CategoryHelp),
		Suggestions: defaultSuggestions,
		Data: map[string]any{
			"available_categories": []string{"revenue", "promotion", "pricing", "product"},
		},
	}
}

func defaultResponse(message string) Response {
	text := `I'm not sure I understand that question. I specialize in revenue, sales, and promotion analysis.

Try asking:
- "What's our revenue this quarter?"
- "How are our promotions performing?"
- "Show me pricing analysis"
- "Which products are doing well?"`
	if IsAmbiguous(message) {
		text = `I found multiple topics in your question. Could you be more specific?

Try asking about one area, like "Show me revenue performance" or "How are promotions doing?".`
	}
	return Response{
		Text:        text,
		Category:    CategoryUnknown,
		Confidence:  0,
		Suggestions: defaultSuggestions,
		Data:        map[string]any{"query_category": "unrecognized"},
	}
}
