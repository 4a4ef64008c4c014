package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategorize(t *testing.T) {
	cases := []struct {
		message string
		want    Category
	}{
		{"show me revenue performance", CategoryRevenue},
		{"what were total sales last quarter", CategoryRevenue},
		{"how are our promotions doing", CategoryPromotion},
		{"campaign ROI breakdown", CategoryPromotion},
		{"compare competitor pricing", CategoryPricing},
		{"price elasticity analysis", CategoryPricing},
		{"which products are top performers", CategoryProduct},
		{"brand portfolio overview", CategoryProduct},
		{"what can you help me with", CategoryHelp},
		{"", CategoryUnknown},
		{"tell me a joke", CategoryUnknown},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Categorize(c.message), "message: %q", c.message)
	}
}

func TestScorePrimaryOutweighsSecondary(t *testing.T) {
	// One primary keyword beats one secondary keyword.
	primary := Score("revenue", CategoryRevenue)
	secondary := Score("growth", CategoryRevenue)
	assert.Equal(t, 2.0, primary)
	assert.Equal(t, 1.0, secondary)
	assert.Equal(t, 3.0, Score("revenue growth", CategoryRevenue))
}

func TestConfidenceClamped(t *testing.T) {
	assert.Equal(t, 0.0, Confidence("nothing relevant here", CategoryRevenue))
	many := "revenue sales earnings income turnover performance growth total"
	assert.Equal(t, 1.0, Confidence(many, CategoryRevenue))
}

func TestIsAmbiguous(t *testing.T) {
	// A message hitting two categories with equal weight is ambiguous.
	assert.True(t, IsAmbiguous("revenue and promotion"))
	assert.False(t, IsAmbiguous("quarterly revenue and sales earnings report"))
	// No signal at all is unknown, not ambiguous.
	assert.False(t, IsAmbiguous("hello there"))
}

func TestRespondCategories(t *testing.T) {
	r := Respond("show me revenue performance")
	assert.Equal(t, CategoryRevenue, r.Category)
	assert.Contains(t, r.Text, "revenue summary")
	assert.Greater(t, r.Confidence, 0.0)
	assert.NotEmpty(t, r.Suggestions)

	r = Respond("gibberish input")
	assert.Equal(t, CategoryUnknown, r.Category)
	assert.Equal(t, 0.0, r.Confidence)
	assert.Equal(t, defaultSuggestions, r.Suggestions)
}
