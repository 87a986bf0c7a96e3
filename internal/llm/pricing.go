package llm

import "strings"

// Price is the list price of a model in USD per million tokens.
type Price struct {
	Input  float64
	Output float64
}

// Cost returns the USD cost of a request with the given usage.
func (p Price) Cost(u Usage) float64 {
	return (float64(u.InputTokens)*p.Input + float64(u.OutputTokens)*p.Output) / 1e6
}

// prices lists model families by ID prefix. Longer prefixes win, so
// "gpt-4o-mini" is not priced as "gpt-4o".
var prices = map[string]Price{
	"claude-haiku-4-5":  {1, 5},
	"claude-sonnet-4":   {3, 15},
	"claude-opus-4-5":   {5, 25},
	"claude-opus-4":     {15, 75},
	"claude-3-5-haiku":  {0.8, 4},
	"gpt-4o":            {2.5, 10},
	"gpt-4o-mini":       {0.15, 0.6},
	"gpt-4.1":           {2, 8},
	"gpt-4.1-mini":      {0.4, 1.6},
	"gpt-4.1-nano":      {0.1, 0.4},
	"gpt-5":             {1.25, 10},
	"gpt-5-mini":        {0.25, 2},
	"gpt-5-nano":        {0.05, 0.4},
	"gemini-2.0-flash":  {0.1, 0.4},
	"gemini-2.5-flash":  {0.3, 2.5},
	"gemini-2.5-pro":    {1.25, 10},
	"google/gemini-2.5": {0.3, 2.5},
}

// PriceOf returns the price of a model ID, matching dated and suffixed
// IDs by their longest known prefix.
func PriceOf(model string) (Price, bool) {
	best, found := "", false
	for prefix := range prices {
		if strings.HasPrefix(model, prefix) && len(prefix) > len(best) {
			best, found = prefix, true
		}
	}
	if !found {
		return Price{}, false
	}
	return prices[best], true
}
