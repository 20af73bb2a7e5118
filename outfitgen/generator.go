package outfitgen

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/genai"
)

const (
	DefaultModel         = "gemini-2.5-flash"
	DefaultTimeout       = 45 * time.Second
	DefaultMaxConcurrent = 4
	DefaultMaxOutfits    = 10
	defaultOutfitCount   = 3
)

// Config is the explicit generator configuration. The model identity is
// pinned here and never auto-upgraded; API credentials live in the provider,
// not in ambient package state.
type Config struct {
	Model         string
	Timeout       time.Duration
	MaxConcurrent int
	MaxOutfits    int
}

func (cfg Config) withDefaults() Config {
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.MaxConcurrent <= 0 {
		cfg.MaxConcurrent = DefaultMaxConcurrent
	}
	if cfg.MaxOutfits <= 0 {
		cfg.MaxOutfits = DefaultMaxOutfits
	}
	return cfg
}

// Generator drives the prompt -> provider -> validation pipeline. Every call
// is a fresh provider request: no caching, no dedup, no internal retry.
type Generator struct {
	provider CompletionProvider
	cfg      Config
}

func NewGenerator(provider CompletionProvider, cfg Config) *Generator {
	return &Generator{provider: provider, cfg: cfg.withDefaults()}
}

func (g *Generator) normalizeRequest(req Request) (Request, error) {
	if req.Occasion == "" {
		return req, fmt.Errorf("%w: occasion is required", ErrInvalidRequest)
	}
	if req.Count < 0 {
		return req, fmt.Errorf("%w: count must be positive", ErrInvalidRequest)
	}
	if req.Count == 0 {
		req.Count = defaultOutfitCount
	}
	if req.Count > g.cfg.MaxOutfits {
		req.Count = g.cfg.MaxOutfits
	}
	return req, nil
}

// complete performs the single provider round-trip with the configured
// timeout. Transport failures come back as *ProviderError; an empty reply is
// treated as malformed.
func (g *Generator) complete(ctx context.Context, prompt string, schema *genai.Schema) (*Completion, error) {
	ctx, cancel := context.WithTimeout(ctx, g.cfg.Timeout)
	defer cancel()

	completion, err := g.provider.Complete(ctx, g.cfg.Model, prompt, schema)
	if err != nil {
		return nil, &ProviderError{Err: err}
	}
	if completion == nil || completion.Text == "" {
		return nil, &MalformedResponseError{Raw: "", Err: fmt.Errorf("provider returned empty response")}
	}
	return completion, nil
}

func (g *Generator) usageOf(c *Completion) Usage {
	return Usage{
		Model:              g.cfg.Model,
		InputTokenCount:    c.InputTokenCount,
		OutputTokenCount:   c.OutputTokenCount,
		ThoughtsTokenCount: c.ThoughtsTokenCount,
		TotalTokenCount:    c.TotalTokenCount,
	}
}

func (g *Generator) generateOne(ctx context.Context, items []Item, profile *Profile, req Request, policy vocabularyPolicy) (*Result, error) {
	req, err := g.normalizeRequest(req)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrEmptyInventory
	}

	prompt := BuildOutfitPrompt(items, profile, req)
	completion, err := g.complete(ctx, prompt, outfitsResponseSchema)
	if err != nil {
		return nil, err
	}

	outfits, err := parseOutfits(completion.Text, items, req, policy)
	if err != nil {
		return nil, err
	}
	return &Result{Outfits: outfits, Usage: g.usageOf(completion)}, nil
}

// Generate runs one single-occasion generation call. A closed-vocabulary
// violation fails the whole call here; only batch runs drop and continue.
func (g *Generator) Generate(ctx context.Context, items []Item, profile *Profile, req Request) (*Result, error) {
	return g.generateOne(ctx, items, profile, req, failOnViolation)
}
