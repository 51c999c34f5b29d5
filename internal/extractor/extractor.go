// Package extractor turns a route-instruction transcript into a
// structured RouteRecord by way of an OpenAI chat completion with a
// fixed correction/extraction prompt.
package extractor

import "context"

// Placeholder stands in for fields the backend did not return. Missing
// fields are tolerated, not fatal.
const Placeholder = "N/A"

// RouteRecord is the structured extraction result. Segments are in
// traversal order. Never mutated after creation.
type RouteRecord struct {
	StartPoint    string
	EndPoint      string
	Segments      []string
	CorrectedText string
	HasRoutes     bool
}

type Extractor interface {
	Extract(ctx context.Context, transcript string) (*RouteRecord, error)
}

type Config struct {
	APIKey        string
	Model         string
	FallbackModel string // used once when the primary model is unavailable
	Temperature   float32
	MaxTokens     int
}

func DefaultConfig() Config {
	return Config{
		Model:         "gpt-4o",
		FallbackModel: "gpt-3.5-turbo",
		Temperature:   0.2, // deterministic-leaning for consistent JSON
		MaxTokens:     800,
	}
}
