package insights

import (
	"strings"

	"github.com/shopspring/decimal"
)

const (
	matchedConfidence  = 0.8
	fallbackConfidence = 0.3
	fallbackCategory   = "other"
)

type keywordRule struct {
	category string
	keywords []string
}

// Declaration order is the tie-break: the first rule with a hit wins.
var keywordRules = []keywordRule{
	{category: "food", keywords: []string{"food", "restaurant", "grocery", "lunch", "dinner", "breakfast"}},
	{category: "transport", keywords: []string{"uber", "taxi", "gas", "fuel", "transport", "parking"}},
	{category: "entertainment", keywords: []string{"movie", "game", "netflix", "spotify", "entertainment"}},
	{category: "shopping", keywords: []string{"amazon", "shop", "store", "mall", "clothing"}},
	{category: "utilities", keywords: []string{"electric", "water", "internet", "phone", "utility"}},
	{category: "health", keywords: []string{"doctor", "hospital", "pharmacy", "medical", "health"}},
}

// PredictCategory guesses a spending category from a free-text description.
// The amount is part of the signature but does not influence the result.
func (e *Engine) PredictCategory(_ decimal.Decimal, description string) CategoryPrediction {
	text := strings.ToLower(description)
	for _, rule := range keywordRules {
		for _, keyword := range rule.keywords {
			if strings.Contains(text, keyword) {
				return CategoryPrediction{PredictedCategory: rule.category, Confidence: matchedConfidence}
			}
		}
	}
	return CategoryPrediction{PredictedCategory: fallbackCategory, Confidence: fallbackConfidence}
}
