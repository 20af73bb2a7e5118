package outfitgen

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"google.golang.org/genai"
)

func stringPtr(s string) *string {
	return &s
}

// stubProvider scripts completions per occasion. Prompt text is captured so
// tests can check what actually went over the wire.
type stubProvider struct {
	mu      sync.Mutex
	calls   int
	prompts []string
	respond func(prompt string) (*Completion, error)
}

func (s *stubProvider) Complete(ctx context.Context, model string, prompt string, schema *genai.Schema) (*Completion, error) {
	s.mu.Lock()
	s.calls++
	s.prompts = append(s.prompts, prompt)
	s.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.respond(prompt)
}

func (s *stubProvider) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func textCompletion(text string) *Completion {
	return &Completion{
		Text:             text,
		InputTokenCount:  120,
		OutputTokenCount: 40,
		TotalTokenCount:  160,
	}
}

func testItems() []Item {
	return []Item{
		{ID: 1, Name: "White oxford shirt", Category: "tops", Color: "white", Material: stringPtr("cotton")},
		{ID: 2, Name: "Navy chinos", Category: "bottoms", Color: "navy"},
		{ID: 3, Name: "Brown loafers", Category: "shoes", Color: "brown", Brand: stringPtr("Loake")},
	}
}

func outfitsJSON(itemIDs ...uint) string {
	ids := make([]string, 0, len(itemIDs))
	for _, id := range itemIDs {
		ids = append(ids, fmt.Sprintf("%d", id))
	}
	return fmt.Sprintf(`{"outfits":[{"name":"Smart casual","description":"A clean daily look","item_ids":[%s],"occasion":"casual","reasoning":"balanced colors"}]}`,
		strings.Join(ids, ","))
}

func TestGenerateReturnsValidatedOutfits(t *testing.T) {
	provider := &stubProvider{respond: func(prompt string) (*Completion, error) {
		return textCompletion(outfitsJSON(1, 2, 3)), nil
	}}
	generator := NewGenerator(provider, Config{})

	result, err := generator.Generate(context.Background(), testItems(), nil, Request{Occasion: "casual"})
	require.NoError(t, err)
	require.Len(t, result.Outfits, 1)
	assert.Equal(t, "Smart casual", result.Outfits[0].Name)
	assert.Equal(t, []uint{1, 2, 3}, result.Outfits[0].ItemIDs)
	assert.Equal(t, DefaultModel, result.Usage.Model)
	assert.Equal(t, int32(160), result.Usage.TotalTokenCount)
	assert.Equal(t, 1, provider.callCount())
}

func TestGenerateEmptyInventoryNeverCallsProvider(t *testing.T) {
	provider := &stubProvider{respond: func(prompt string) (*Completion, error) {
		return textCompletion(outfitsJSON(1)), nil
	}}
	generator := NewGenerator(provider, Config{})

	_, err := generator.Generate(context.Background(), nil, nil, Request{Occasion: "casual"})
	assert.ErrorIs(t, err, ErrEmptyInventory)
	assert.Equal(t, 0, provider.callCount())
}

func TestGenerateRequiresOccasion(t *testing.T) {
	generator := NewGenerator(&stubProvider{}, Config{})

	_, err := generator.Generate(context.Background(), testItems(), nil, Request{})
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func TestGenerateRejectsNegativeCount(t *testing.T) {
	generator := NewGenerator(&stubProvider{}, Config{})

	_, err := generator.Generate(context.Background(), testItems(), nil, Request{Occasion: "casual", Count: -2})
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func TestGenerateCountDefaultsAndCap(t *testing.T) {
	provider := &stubProvider{respond: func(prompt string) (*Completion, error) {
		return textCompletion(outfitsJSON(1, 2)), nil
	}}
	generator := NewGenerator(provider, Config{MaxOutfits: 5})

	_, err := generator.Generate(context.Background(), testItems(), nil, Request{Occasion: "casual"})
	require.NoError(t, err)
	assert.Contains(t, provider.prompts[0], "Number of outfits to propose: 3")

	_, err = generator.Generate(context.Background(), testItems(), nil, Request{Occasion: "casual", Count: 40})
	require.NoError(t, err)
	assert.Contains(t, provider.prompts[1], "Number of outfits to propose: 5")
}

func TestGenerateWrapsProviderFailure(t *testing.T) {
	providerDown := errors.New("connection refused")
	provider := &stubProvider{respond: func(prompt string) (*Completion, error) {
		return nil, providerDown
	}}
	generator := NewGenerator(provider, Config{})

	_, err := generator.Generate(context.Background(), testItems(), nil, Request{Occasion: "casual"})
	var providerErr *ProviderError
	require.ErrorAs(t, err, &providerErr)
	assert.ErrorIs(t, err, providerDown)
	// One shot only, no internal retry.
	assert.Equal(t, 1, provider.callCount())
}

func TestGenerateEmptyReplyIsMalformed(t *testing.T) {
	provider := &stubProvider{respond: func(prompt string) (*Completion, error) {
		return textCompletion(""), nil
	}}
	generator := NewGenerator(provider, Config{})

	_, err := generator.Generate(context.Background(), testItems(), nil, Request{Occasion: "casual"})
	var malformed *MalformedResponseError
	assert.ErrorAs(t, err, &malformed)
}

func TestGenerateUnknownItemIDFailsHard(t *testing.T) {
	provider := &stubProvider{respond: func(prompt string) (*Completion, error) {
		return textCompletion(outfitsJSON(1, 2, 99)), nil
	}}
	generator := NewGenerator(provider, Config{})

	_, err := generator.Generate(context.Background(), testItems(), nil, Request{Occasion: "casual"})
	var violation *ClosedVocabularyError
	require.ErrorAs(t, err, &violation)
	assert.Equal(t, []uint{99}, violation.UnknownIDs)
	assert.Equal(t, "Smart casual", violation.OutfitName)
}

func TestGenerateCanceledContextBecomesProviderError(t *testing.T) {
	provider := &stubProvider{respond: func(prompt string) (*Completion, error) {
		return textCompletion(outfitsJSON(1)), nil
	}}
	generator := NewGenerator(provider, Config{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := generator.Generate(ctx, testItems(), nil, Request{Occasion: "casual"})
	var providerErr *ProviderError
	assert.ErrorAs(t, err, &providerErr)
}
