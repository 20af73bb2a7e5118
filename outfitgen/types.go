package outfitgen

import (
	"context"

	"google.golang.org/genai"
)

// Item is the generation-time view of one wardrobe garment. The slice of
// items handed to a generation call is the inventory snapshot for that call:
// generated outfits may reference these IDs and no others.
type Item struct {
	ID       uint
	Name     string
	Category string
	Color    string
	Pattern  *string
	Material *string
	Brand    *string
}

// Profile carries the user's style diagnosis. A nil profile is valid and
// degrades generation quality, never blocks it.
type Profile struct {
	BodyType         string
	HeightBand       string
	AgeBand          string
	DailyActivity    string
	ComfortLevel     string
	Lifestyle        string
	Occasions        []string
	StyleInspiration string
	BudgetBand       string
	ColorPreferences []string
	ColorAvoidances  []string
	Goals            []string
}

// Request describes one generation call. Occasion is required; Count
// defaults to 3 and is capped by the generator config.
type Request struct {
	Occasion    string
	Weather     string
	Season      string
	Mood        string
	Preferences string
	Count       int
}

// Outfit is one validated generation result.
type Outfit struct {
	Name        string
	Description string
	ItemIDs     []uint
	Occasion    string
	Season      string
	Mood        string
	Tags        []string
	Reasoning   string
}

// Recommendation is a typed piece of styling advice.
type Recommendation struct {
	Type        string // style, wardrobe, shopping, trend
	Title       string
	Description string
	Priority    string // high, medium, low
	Tags        []string
	Reasoning   string
}

// ItemAnalysis is the per-garment assessment attached to wardrobe items.
type ItemAnalysis struct {
	StyleScore        int // 0-100
	ColorMatchScore   int // 0-100
	FitAssessment     string
	RecommendationTag string // keep, alter, donate
	Reason            string
}

// Usage is the provider-side token accounting for one call.
type Usage struct {
	Model              string
	InputTokenCount    int32
	OutputTokenCount   int32
	ThoughtsTokenCount int32
	TotalTokenCount    int32
}

// Result is the outcome of one successful generation call.
type Result struct {
	Outfits []Outfit
	Usage   Usage
}

// AnalysisResult is the outcome of one successful item analysis call.
type AnalysisResult struct {
	Analysis ItemAnalysis
	Usage    Usage
}

// Completion is the raw structured-output reply from the provider.
type Completion struct {
	Text               string
	InputTokenCount    int32
	OutputTokenCount   int32
	ThoughtsTokenCount int32
	TotalTokenCount    int32
}

// CompletionProvider is the single network dependency of the generator. The
// provider must honor the supplied response schema (JSON structured output)
// and the deadline on ctx.
type CompletionProvider interface {
	Complete(ctx context.Context, model string, prompt string, schema *genai.Schema) (*Completion, error)
}
