package outfitgen

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidRequest covers caller mistakes: empty occasion, negative count.
	ErrInvalidRequest = errors.New("invalid generation request")

	// ErrEmptyInventory is the fail-fast precondition: generation never
	// reaches the provider with zero wardrobe items.
	ErrEmptyInventory = errors.New("wardrobe inventory is empty")

	// ErrNoValidOutfits means the provider answered but zero outfits
	// survived validation.
	ErrNoValidOutfits = errors.New("no valid outfits after validation")

	// ErrNoRecommendations means the provider answered but zero
	// recommendations survived validation.
	ErrNoRecommendations = errors.New("no valid recommendations after validation")

	// ErrAllOccasionsFailed is the terminal batch condition: every occasion
	// in the batch failed.
	ErrAllOccasionsFailed = errors.New("all occasions in batch failed")
)

// ProviderError wraps a transport-level failure (network, timeout, provider
// 5xx). The generator never retries these; the caller decides.
type ProviderError struct {
	Err error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("generation provider unavailable: %v", e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// MalformedResponseError means the provider returned content that does not
// parse against the requested schema. This is an integration defect, not a
// user error; Raw is kept for diagnosis and must never be echoed to clients.
type MalformedResponseError struct {
	Raw string
	Err error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed provider response: %v", e.Err)
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }

// RawSummary returns a log-safe truncated view of the offending response.
func (e *MalformedResponseError) RawSummary() string {
	raw := strings.TrimSpace(e.Raw)
	if len(raw) > 300 {
		return raw[:297] + "..."
	}
	return raw
}

// ClosedVocabularyError means a generated outfit referenced item IDs that do
// not exist in the inventory snapshot of the call.
type ClosedVocabularyError struct {
	OutfitName string
	UnknownIDs []uint
}

func (e *ClosedVocabularyError) Error() string {
	return fmt.Sprintf("outfit %q references unknown item ids %v", e.OutfitName, e.UnknownIDs)
}

// OccasionFailure records one failed occasion inside a batch.
type OccasionFailure struct {
	Occasion string `json:"occasion"`
	Reason   string `json:"reason"`
	Err      error  `json:"-"`
}

// BatchResult aggregates a weekly or seasonal run. A batch with failures but
// at least one outfit is a partial success, not an error.
type BatchResult struct {
	Outfits  []Outfit
	Failures []OccasionFailure
	Usage    Usage
}

func (r *BatchResult) PartiallyFailed() bool {
	return len(r.Failures) > 0 && len(r.Outfits) > 0
}
