package outfitgen

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
)

var recommendationTypes = map[string]bool{
	"style":    true,
	"wardrobe": true,
	"shopping": true,
	"trend":    true,
}

var recommendationPriorities = map[string]bool{
	"high":   true,
	"medium": true,
	"low":    true,
}

type recommendationWire struct {
	Type        string   `json:"type"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Priority    string   `json:"priority"`
	Tags        []string `json:"tags"`
	Reasoning   string   `json:"reasoning"`
}

type recommendationsEnvelope struct {
	Recommendations []recommendationWire `json:"recommendations"`
}

// GenerateRecommendations produces styling advice for the user's wardrobe. An
// empty wardrobe is allowed here: the advice then leans toward starter
// shopping guidance.
func (g *Generator) GenerateRecommendations(ctx context.Context, items []Item, profile *Profile) ([]Recommendation, Usage, error) {
	prompt := BuildRecommendationsPrompt(items, profile)
	completion, err := g.complete(ctx, prompt, recommendationsResponseSchema)
	if err != nil {
		return nil, Usage{}, err
	}

	var envelope recommendationsEnvelope
	cleaned := cleanResponseText(completion.Text)
	if err := json.Unmarshal([]byte(cleaned), &envelope); err != nil {
		return nil, Usage{}, &MalformedResponseError{Raw: cleaned, Err: err}
	}

	recommendations := make([]Recommendation, 0, len(envelope.Recommendations))
	for _, wire := range envelope.Recommendations {
		if wire.Title == "" || wire.Description == "" {
			log.Printf("[Dropping recommendation without title or description]")
			continue
		}
		if !recommendationTypes[wire.Type] {
			wire.Type = "style"
		}
		if !recommendationPriorities[wire.Priority] {
			wire.Priority = "medium"
		}
		tags := wire.Tags
		if tags == nil {
			tags = []string{}
		}
		recommendations = append(recommendations, Recommendation{
			Type:        wire.Type,
			Title:       wire.Title,
			Description: wire.Description,
			Priority:    wire.Priority,
			Tags:        tags,
			Reasoning:   wire.Reasoning,
		})
	}
	if len(recommendations) == 0 {
		return nil, Usage{}, fmt.Errorf("%w: provider returned %d entries, none usable", ErrNoRecommendations, len(envelope.Recommendations))
	}
	return recommendations, g.usageOf(completion), nil
}
