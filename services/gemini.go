package services

import (
	"context"
	"fmt"

	"stylistapi/outfitgen"

	"google.golang.org/genai"
)

// LLMModelName pins the GenAI model used for styling calls.
type LLMModelName int32

const (
	Flash25 LLMModelName = iota
	Pro25
	FlashLite25
	Flash20
)

func (t LLMModelName) String() string {
	switch t {
	case Pro25:
		return "gemini-2.5-pro"
	case Flash25:
		return "gemini-2.5-flash"
	case FlashLite25:
		return "gemini-2.5-flash-lite-preview-06-17"
	case Flash20:
		return "gemini-2.0-flash"
	default:
		return "gemini-2.5-flash"
	}
}

func Int32Pointer(i int32) *int32 {
	return &i
}

// GeminiStylist is the production outfitgen.CompletionProvider. The client is
// built once at startup from an explicit API key; nothing here reads the
// environment.
type GeminiStylist struct {
	client *genai.Client
}

func NewGeminiStylist(ctx context.Context, apiKey string) (*GeminiStylist, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating genai client: %w", err)
	}
	return &GeminiStylist{client: client}, nil
}

// Complete performs one schema-constrained text generation call. The model
// name comes from the caller on every call so the generator stays in charge
// of model pinning.
func (g *GeminiStylist) Complete(ctx context.Context, model string, prompt string, schema *genai.Schema) (*outfitgen.Completion, error) {
	parts := []*genai.Part{{Text: prompt}}
	result, err := g.client.Models.GenerateContent(ctx, model, []*genai.Content{{Parts: parts}}, &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   schema,
		CandidateCount:   1,
	})
	if err != nil {
		return nil, fmt.Errorf("generate content: %w", err)
	}
	if result.PromptFeedback != nil {
		return nil, fmt.Errorf("content blocked: %s %s", result.PromptFeedback.BlockReason, result.PromptFeedback.BlockReasonMessage)
	}

	completion := &outfitgen.Completion{Text: result.Text()}
	if result.UsageMetadata != nil {
		completion.InputTokenCount = result.UsageMetadata.PromptTokenCount
		completion.OutputTokenCount = result.UsageMetadata.CandidatesTokenCount
		completion.ThoughtsTokenCount = result.UsageMetadata.ThoughtsTokenCount
		completion.TotalTokenCount = result.UsageMetadata.TotalTokenCount
	}
	return completion, nil
}
