package outfitgen

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateRecommendationsNormalizesPriorityAndType(t *testing.T) {
	provider := &stubProvider{respond: func(prompt string) (*Completion, error) {
		return textCompletion(`{"recommendations":[
			{"type":"shopping","title":"Get a belt","description":"A brown leather belt ties the loafers in","priority":"high"},
			{"type":"color-theory","title":"Warm palette","description":"Lean into warm neutrals","priority":"urgent"}
		]}`), nil
	}}
	generator := NewGenerator(provider, Config{})

	recommendations, usage, err := generator.GenerateRecommendations(context.Background(), testItems(), nil)
	require.NoError(t, err)
	require.Len(t, recommendations, 2)

	assert.Equal(t, "shopping", recommendations[0].Type)
	assert.Equal(t, "high", recommendations[0].Priority)

	// Out-of-vocabulary values map to the safe defaults instead of leaking.
	assert.Equal(t, "style", recommendations[1].Type)
	assert.Equal(t, "medium", recommendations[1].Priority)

	assert.Equal(t, DefaultModel, usage.Model)
	assert.Equal(t, int32(160), usage.TotalTokenCount)
}

func TestGenerateRecommendationsDropsUntitledEntries(t *testing.T) {
	provider := &stubProvider{respond: func(prompt string) (*Completion, error) {
		return textCompletion(`{"recommendations":[
			{"type":"style","title":"","description":"nameless","priority":"low"},
			{"type":"style","title":"Layer more","description":"Add a light jacket over tees","priority":"low"}
		]}`), nil
	}}
	generator := NewGenerator(provider, Config{})

	recommendations, _, err := generator.GenerateRecommendations(context.Background(), testItems(), nil)
	require.NoError(t, err)
	require.Len(t, recommendations, 1)
	assert.Equal(t, "Layer more", recommendations[0].Title)
}

func TestGenerateRecommendationsNoneUsable(t *testing.T) {
	provider := &stubProvider{respond: func(prompt string) (*Completion, error) {
		return textCompletion(`{"recommendations":[]}`), nil
	}}
	generator := NewGenerator(provider, Config{})

	_, _, err := generator.GenerateRecommendations(context.Background(), testItems(), nil)
	assert.ErrorIs(t, err, ErrNoRecommendations)
}

func TestGenerateRecommendationsAllowsEmptyWardrobe(t *testing.T) {
	provider := &stubProvider{respond: func(prompt string) (*Completion, error) {
		return textCompletion(`{"recommendations":[
			{"type":"shopping","title":"Start with basics","description":"White tee, dark jeans, white sneakers","priority":"high"}
		]}`), nil
	}}
	generator := NewGenerator(provider, Config{})

	recommendations, _, err := generator.GenerateRecommendations(context.Background(), nil, &Profile{BodyType: "athletic"})
	require.NoError(t, err)
	assert.Len(t, recommendations, 1)
	assert.Contains(t, provider.prompts[0], "starter wardrobe")
}

func TestGenerateRecommendationsMalformedReply(t *testing.T) {
	provider := &stubProvider{respond: func(prompt string) (*Completion, error) {
		return textCompletion("not json at all"), nil
	}}
	generator := NewGenerator(provider, Config{})

	_, _, err := generator.GenerateRecommendations(context.Background(), testItems(), nil)
	var malformed *MalformedResponseError
	assert.ErrorAs(t, err, &malformed)
}
