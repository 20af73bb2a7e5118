package outfitgen

import (
	"context"
	"fmt"
	"sync"
)

// Occasions used for a seasonal plan, one generation call each.
var seasonalOccasions = []string{"casual", "work", "evening", "weekend"}

// generateBatch runs the single-call pipeline once per request, concurrently
// up to the configured cap. Every call reads the same immutable snapshot; a
// failure in one occasion never aborts the others. Results keep the order of
// the incoming requests.
func (g *Generator) generateBatch(ctx context.Context, items []Item, profile *Profile, reqs []Request) (*BatchResult, error) {
	if len(reqs) == 0 {
		return nil, fmt.Errorf("%w: no occasions given", ErrInvalidRequest)
	}
	if len(items) == 0 {
		return nil, ErrEmptyInventory
	}

	results := make([]*Result, len(reqs))
	failures := make([]*OccasionFailure, len(reqs))

	var wg sync.WaitGroup
	sem := make(chan struct{}, g.cfg.MaxConcurrent)
	for i, req := range reqs {
		wg.Add(1)
		go func(index int, req Request) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			// Caller gave up: don't start new provider calls, but results
			// already collected stay collected.
			if err := ctx.Err(); err != nil {
				failures[index] = &OccasionFailure{Occasion: req.Occasion, Reason: err.Error(), Err: err}
				return
			}

			result, err := g.generateOne(ctx, items, profile, req, dropOnViolation)
			if err != nil {
				failures[index] = &OccasionFailure{Occasion: req.Occasion, Reason: err.Error(), Err: err}
				return
			}
			results[index] = result
		}(i, req)
	}
	wg.Wait()

	batch := &BatchResult{Usage: Usage{Model: g.cfg.Model}}
	for i := range reqs {
		if failures[i] != nil {
			batch.Failures = append(batch.Failures, *failures[i])
			continue
		}
		result := results[i]
		batch.Outfits = append(batch.Outfits, result.Outfits...)
		batch.Usage.InputTokenCount += result.Usage.InputTokenCount
		batch.Usage.OutputTokenCount += result.Usage.OutputTokenCount
		batch.Usage.ThoughtsTokenCount += result.Usage.ThoughtsTokenCount
		batch.Usage.TotalTokenCount += result.Usage.TotalTokenCount
	}

	if len(batch.Outfits) == 0 {
		return batch, fmt.Errorf("%w: %d of %d occasions failed", ErrAllOccasionsFailed, len(batch.Failures), len(reqs))
	}
	return batch, nil
}

// GenerateWeekly produces one outfit per caller-supplied occasion. Weather,
// mood and preferences from base apply to every occasion.
func (g *Generator) GenerateWeekly(ctx context.Context, items []Item, profile *Profile, occasions []string, base Request) (*BatchResult, error) {
	reqs := make([]Request, 0, len(occasions))
	for _, occasion := range occasions {
		req := base
		req.Occasion = occasion
		req.Count = 1
		reqs = append(reqs, req)
	}
	return g.generateBatch(ctx, items, profile, reqs)
}

// GenerateSeasonal produces one outfit per fixed occasion within a season.
func (g *Generator) GenerateSeasonal(ctx context.Context, items []Item, profile *Profile, season string) (*BatchResult, error) {
	if season == "" {
		return nil, fmt.Errorf("%w: season is required", ErrInvalidRequest)
	}
	reqs := make([]Request, 0, len(seasonalOccasions))
	for _, occasion := range seasonalOccasions {
		reqs = append(reqs, Request{Occasion: occasion, Season: season, Count: 1})
	}
	return g.generateBatch(ctx, items, profile, reqs)
}
