package outfitgen

import (
	"context"
	"encoding/json"
)

var recommendationTags = map[string]bool{
	"keep":   true,
	"alter":  true,
	"donate": true,
}

type itemAnalysisWire struct {
	StyleScore        int    `json:"style_score"`
	ColorMatchScore   int    `json:"color_match_score"`
	FitAssessment     string `json:"fit_assessment"`
	RecommendationTag string `json:"recommendation_tag"`
	Reason            string `json:"reason"`
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// AnalyzeItem scores a single garment against the user's style diagnosis.
func (g *Generator) AnalyzeItem(ctx context.Context, item Item, profile *Profile) (*AnalysisResult, error) {
	prompt := BuildItemAnalysisPrompt(item, profile)
	completion, err := g.complete(ctx, prompt, itemAnalysisResponseSchema)
	if err != nil {
		return nil, err
	}

	var wire itemAnalysisWire
	cleaned := cleanResponseText(completion.Text)
	if err := json.Unmarshal([]byte(cleaned), &wire); err != nil {
		return nil, &MalformedResponseError{Raw: cleaned, Err: err}
	}
	if !recommendationTags[wire.RecommendationTag] {
		wire.RecommendationTag = "keep"
	}
	return &AnalysisResult{
		Analysis: ItemAnalysis{
			StyleScore:        clampScore(wire.StyleScore),
			ColorMatchScore:   clampScore(wire.ColorMatchScore),
			FitAssessment:     wire.FitAssessment,
			RecommendationTag: wire.RecommendationTag,
			Reason:            wire.Reason,
		},
		Usage: g.usageOf(completion),
	}, nil
}
