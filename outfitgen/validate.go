package outfitgen

import (
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/getsentry/sentry-go"
)

// vocabularyPolicy picks what happens when a generated outfit references an
// item id outside the inventory snapshot: single-outfit calls fail hard,
// batch calls drop the offending outfit and keep the rest.
type vocabularyPolicy int

const (
	failOnViolation vocabularyPolicy = iota
	dropOnViolation
)

type outfitWire struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	ItemIDs     []uint   `json:"item_ids"`
	Occasion    string   `json:"occasion"`
	Season      string   `json:"season"`
	Mood        string   `json:"mood"`
	Tags        []string `json:"tags"`
	Reasoning   string   `json:"reasoning"`
}

type outfitsEnvelope struct {
	Outfits []outfitWire `json:"outfits"`
}

// Some models still wrap schema-constrained JSON in markdown fences.
func cleanResponseText(text string) string {
	clean := strings.ReplaceAll(text, "```json", "")
	clean = strings.ReplaceAll(clean, "```", "")
	return strings.TrimSpace(clean)
}

func snapshotIDSet(items []Item) map[uint]bool {
	ids := make(map[uint]bool, len(items))
	for _, item := range items {
		ids[item.ID] = true
	}
	return ids
}

func unknownIDs(outfit outfitWire, known map[uint]bool) []uint {
	var unknown []uint
	for _, id := range outfit.ItemIDs {
		if !known[id] {
			unknown = append(unknown, id)
		}
	}
	return unknown
}

func requiredFieldError(outfit outfitWire) error {
	if outfit.Name == "" {
		return fmt.Errorf("outfit is missing name")
	}
	if len(outfit.ItemIDs) == 0 {
		return fmt.Errorf("outfit %q has no item ids", outfit.Name)
	}
	return nil
}

func normalizeOutfit(outfit outfitWire, req Request) Outfit {
	normalized := Outfit{
		Name:        outfit.Name,
		Description: outfit.Description,
		ItemIDs:     outfit.ItemIDs,
		Occasion:    outfit.Occasion,
		Season:      outfit.Season,
		Mood:        outfit.Mood,
		Tags:        outfit.Tags,
		Reasoning:   outfit.Reasoning,
	}
	if normalized.Occasion == "" {
		normalized.Occasion = req.Occasion
	}
	if normalized.Season == "" {
		normalized.Season = req.Season
	}
	if normalized.Mood == "" {
		normalized.Mood = req.Mood
	}
	if normalized.Tags == nil {
		normalized.Tags = []string{}
	}
	return normalized
}

// parseOutfits enforces the response contract: envelope shape, per-outfit
// required fields, and the closed-vocabulary invariant against the snapshot
// used to build the prompt. Violations are never silently accepted.
func parseOutfits(raw string, items []Item, req Request, policy vocabularyPolicy) ([]Outfit, error) {
	clean := cleanResponseText(raw)

	var envelope outfitsEnvelope
	if err := json.Unmarshal([]byte(clean), &envelope); err != nil {
		return nil, &MalformedResponseError{Raw: raw, Err: err}
	}
	if envelope.Outfits == nil {
		return nil, &MalformedResponseError{Raw: raw, Err: fmt.Errorf("response has no outfits field")}
	}

	known := snapshotIDSet(items)
	valid := make([]Outfit, 0, len(envelope.Outfits))
	for _, outfit := range envelope.Outfits {
		if err := requiredFieldError(outfit); err != nil {
			if policy == failOnViolation {
				return nil, &MalformedResponseError{Raw: raw, Err: err}
			}
			log.Printf("[Generate %q] Dropping malformed outfit: %v", req.Occasion, err)
			sentry.CaptureException(fmt.Errorf("[Generate %q] malformed outfit dropped: %v", req.Occasion, err))
			continue
		}
		if unknown := unknownIDs(outfit, known); len(unknown) > 0 {
			violation := &ClosedVocabularyError{OutfitName: outfit.Name, UnknownIDs: unknown}
			if policy == failOnViolation {
				return nil, violation
			}
			log.Printf("[Generate %q] Dropping outfit with unknown item ids: %v", req.Occasion, violation)
			sentry.CaptureException(fmt.Errorf("[Generate %q] closed vocabulary violation dropped: %v", req.Occasion, violation))
			continue
		}
		valid = append(valid, normalizeOutfit(outfit, req))
	}

	if len(valid) == 0 {
		return nil, ErrNoValidOutfits
	}
	return valid, nil
}
