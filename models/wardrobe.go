package models

import (
	"regexp"

	"stylistapi/outfitgen"

	"github.com/go-playground/validator"
)

var categoryRule = regexp.MustCompile("^(tops|bottoms|dresses|outerwear|shoes|accessories)$")

func ValidateCategory(fl validator.FieldLevel) bool {
	return categoryRule.MatchString(fl.Field().String())
}

// WardrobeItem is one physical garment owned by a user. The ID is assigned at
// creation and never changes; items are never hard-deleted by this service.
type WardrobeItem struct {
	JsonModel
	Name     string      `json:"name"`
	Category string      `json:"category"` // tops, bottoms, dresses, outerwear, shoes, accessories
	Color    string      `json:"color"`
	Pattern  *string     `json:"pattern"`
	Material *string     `json:"material"`
	Brand    *string     `json:"brand"`
	Owner    UserAccount `json:"-"`
	OwnerID  uint        `json:"-"`

	ImageURL    *string `json:"image_url"`
	ImageStatus string  `json:"image_status"` // draft, uploaded

	// Per-item AI analysis is attached asynchronously by the worker,
	// never required at creation.
	AnalysisStatus       string  `json:"analysis_status"` // idle, pending, generating, completed, failed
	AnalysisRetryTimes   int     `json:"analysis_retry_times"`
	AnalysisErrorMessage *string `json:"analysis_error_message"`

	StyleScore        *int    `json:"style_score"`       // 0-100
	ColorMatchScore   *int    `json:"color_match_score"` // 0-100
	FitAssessment     *string `gorm:"type:text" json:"fit_assessment"`
	RecommendationTag *string `json:"recommendation_tag"` // keep, alter, donate
	AnalysisReason    *string `gorm:"type:text" json:"analysis_reason"`

	AnalysisLLMModel        *string `json:"analysis_llm_model"`
	AnalysisTotalTokenCount *int32  `json:"analysis_total_token_count"`
}

// ToGenItem maps the stored garment onto the generation-time view.
func (w WardrobeItem) ToGenItem() outfitgen.Item {
	return outfitgen.Item{
		ID:       w.ID,
		Name:     w.Name,
		Category: w.Category,
		Color:    w.Color,
		Pattern:  w.Pattern,
		Material: w.Material,
		Brand:    w.Brand,
	}
}
