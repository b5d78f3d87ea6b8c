package main

import (
	"errors"
	"fmt"

	"github.com/openai/openai-go"
)

var (
	ErrUnknownModel  = errors.New("no pricing for model")
	ErrUsageMismatch = errors.New("total tokens does not match prompt + completion tokens")
)

// Usage is the token accounting reported with a completion.
type Usage struct {
	PromptTokens     int64
	CompletionTokens int64
	TotalTokens      int64
}

func usageFrom(u openai.CompletionUsage) Usage {
	return Usage{
		PromptTokens:     u.PromptTokens,
		CompletionTokens: u.CompletionTokens,
		TotalTokens:      u.TotalTokens,
	}
}

// ModelPrice is the USD price of PerTokens tokens. Models that bill prompt
// and completion tokens differently set PromptCost and CompletionCost;
// the others set Cost.
type ModelPrice struct {
	PerTokens      int64
	Cost           float64
	PromptCost     float64
	CompletionCost float64
}

func (p ModelPrice) split() bool {
	return p.PromptCost != 0 || p.CompletionCost != 0
}

// Pricing maps model names to prices.
type Pricing map[string]ModelPrice

// DefaultPricing returns the list prices for the models this tool talks to.
func DefaultPricing() Pricing {
	return Pricing{
		openai.ChatModelGPT3_5Turbo: {PerTokens: 1000, PromptCost: 0.0015, CompletionCost: 0.002},
		openai.ChatModelGPT4:        {PerTokens: 1000, PromptCost: 0.03, CompletionCost: 0.06},
		"text-embedding-ada-002":    {PerTokens: 1000, Cost: 0.0001},
	}
}

// EstimateCost returns the USD cost of usage on model.
func (p Pricing) EstimateCost(model string, usage Usage) (float64, error) {
	if usage.TotalTokens != usage.PromptTokens+usage.CompletionTokens {
		return 0, fmt.Errorf("%w: %d != %d + %d", ErrUsageMismatch,
			usage.TotalTokens, usage.PromptTokens, usage.CompletionTokens)
	}
	price, ok := p[model]
	if !ok || price.PerTokens <= 0 {
		return 0, fmt.Errorf("%w: %s", ErrUnknownModel, model)
	}

	per := float64(price.PerTokens)
	if price.split() {
		return float64(usage.PromptTokens)/per*price.PromptCost +
			float64(usage.CompletionTokens)/per*price.CompletionCost, nil
	}
	return float64(usage.TotalTokens) / per * price.Cost, nil
}

// FormatCost renders a USD amount the way the usage report shows it.
func FormatCost(cost float64) string {
	return fmt.Sprintf("$%.6f", cost)
}
