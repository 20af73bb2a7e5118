package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"stylistapi/models"
	"stylistapi/outfitgen"

	"github.com/getsentry/sentry-go"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

type GenerateOutfitsIn struct {
	Occasion    string `json:"occasion" validate:"required,max=100"`
	Weather     string `json:"weather" validate:"omitempty,max=100"`
	Season      string `json:"season" validate:"omitempty,max=50"`
	Mood        string `json:"mood" validate:"omitempty,max=100"`
	Preferences string `json:"preferences" validate:"omitempty,max=500"`
	Count       int    `json:"count" validate:"omitempty,min=0,max=10"`
}

type GenerateWeeklyIn struct {
	Occasions   []string `json:"occasions" validate:"required,min=1,max=14,dive,required,max=100"`
	Weather     string   `json:"weather" validate:"omitempty,max=100"`
	Season      string   `json:"season" validate:"omitempty,max=50"`
	Preferences string   `json:"preferences" validate:"omitempty,max=500"`
}

type GenerateSeasonalIn struct {
	Season string `json:"season" validate:"required,oneof=spring summer autumn winter"`
}

type OutfitsGeneratedResponse struct {
	Outfits         []models.Outfit             `json:"outfits"`
	Failures        []outfitgen.OccasionFailure `json:"failures,omitempty"`
	PartiallyFailed bool                        `json:"partially_failed"`
}

type OutfitsController struct {
	Generator *outfitgen.Generator
}

func (controller *OutfitsController) OutfitRoutes(g *echo.Group) {
	g.POST("/generate", controller.GenerateOutfits)
	g.POST("/weekly", controller.GenerateWeekly)
	g.POST("/seasonal", controller.GenerateSeasonal)
	g.GET("/list", controller.ListOutfits)
}

// wardrobeSnapshot reads the user's wardrobe once; every generation call of
// one request works against this single read.
func wardrobeSnapshot(db *gorm.DB, userID uint) ([]outfitgen.Item, error) {
	var items []models.WardrobeItem
	if err := db.Where("owner_id = ?", userID).Order("id asc").Find(&items).Error; err != nil {
		return nil, err
	}
	snapshot := make([]outfitgen.Item, 0, len(items))
	for _, item := range items {
		snapshot = append(snapshot, item.ToGenItem())
	}
	return snapshot, nil
}

func styleProfileOf(db *gorm.DB, userID uint) *outfitgen.Profile {
	var profile models.StyleProfile
	result := db.Where("user_account_id = ?", userID).First(&profile)
	if result.Error != nil {
		return nil
	}
	return profile.ToGenProfile()
}

// generationErrorResponse maps pipeline failures onto HTTP statuses: caller
// mistakes and empty wardrobes are 4xx, provider outages 503, and anything
// that smells like a broken integration 502.
func generationErrorResponse(c echo.Context, err error) error {
	var providerErr *outfitgen.ProviderError
	var malformedErr *outfitgen.MalformedResponseError
	var vocabularyErr *outfitgen.ClosedVocabularyError

	switch {
	case errors.Is(err, outfitgen.ErrEmptyInventory):
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Your wardrobe is empty, add some items first"})
	case errors.Is(err, outfitgen.ErrInvalidRequest):
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.Is(err, outfitgen.ErrNoValidOutfits):
		return c.JSON(http.StatusUnprocessableEntity, map[string]string{"error": "We could not compose valid outfits from your wardrobe, please try again"})
	case errors.As(err, &providerErr):
		sentry.CaptureException(err)
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"error": "Styling service is unavailable, please try again later"})
	case errors.As(err, &malformedErr):
		sentry.CaptureException(fmt.Errorf("malformed generation response: %v, raw: %s", malformedErr.Err, malformedErr.RawSummary()))
		return c.JSON(http.StatusBadGateway, map[string]string{"error": "Styling service returned an unexpected response, please try again"})
	case errors.As(err, &vocabularyErr):
		sentry.CaptureException(err)
		return c.JSON(http.StatusBadGateway, map[string]string{"error": "Styling service returned an unexpected response, please try again"})
	case errors.Is(err, outfitgen.ErrAllOccasionsFailed):
		sentry.CaptureException(err)
		return c.JSON(http.StatusBadGateway, map[string]string{"error": "We could not generate any outfits right now, please try again"})
	default:
		sentry.CaptureException(err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to generate outfits"})
	}
}

func persistOutfits(db *gorm.DB, userID uint, outfits []outfitgen.Outfit, usage outfitgen.Usage) ([]models.Outfit, error) {
	records := make([]models.Outfit, 0, len(outfits))
	for _, outfit := range outfits {
		record := models.Outfit{
			OwnerID:             userID,
			Name:                outfit.Name,
			Description:         outfit.Description,
			ItemIDs:             outfit.ItemIDs,
			Occasion:            outfit.Occasion,
			Season:              StrPointerOrNil(outfit.Season),
			Mood:                StrPointerOrNil(outfit.Mood),
			Tags:                outfit.Tags,
			Reasoning:           outfit.Reasoning,
			LLMModel:            StrPointerOrNil(usage.Model),
			LLMInputTokenCount:  Int32Pointer(usage.InputTokenCount),
			LLMOutputTokenCount: Int32Pointer(usage.OutputTokenCount),
			LLMTotalTokenCount:  Int32Pointer(usage.TotalTokenCount),
		}
		if err := db.Create(&record).Error; err != nil {
			sentry.CaptureException(err)
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

func StrPointerOrNil(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func (controller *OutfitsController) GenerateOutfits(c echo.Context) error {
	var req GenerateOutfitsIn
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	user := c.Get("currentUser").(models.UserAccount)
	db := c.Get("__db").(*gorm.DB)

	snapshot, err := wardrobeSnapshot(db, user.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch wardrobe"})
	}

	result, err := controller.Generator.Generate(c.Request().Context(), snapshot, styleProfileOf(db, user.ID), outfitgen.Request{
		Occasion:    req.Occasion,
		Weather:     req.Weather,
		Season:      req.Season,
		Mood:        req.Mood,
		Preferences: req.Preferences,
		Count:       req.Count,
	})
	if err != nil {
		return generationErrorResponse(c, err)
	}

	records, err := persistOutfits(db, user.ID, result.Outfits, result.Usage)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to save outfits"})
	}
	return c.JSON(http.StatusCreated, OutfitsGeneratedResponse{Outfits: records})
}

func (controller *OutfitsController) GenerateWeekly(c echo.Context) error {
	var req GenerateWeeklyIn
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	user := c.Get("currentUser").(models.UserAccount)
	db := c.Get("__db").(*gorm.DB)

	snapshot, err := wardrobeSnapshot(db, user.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch wardrobe"})
	}

	batch, err := controller.Generator.GenerateWeekly(c.Request().Context(), snapshot, styleProfileOf(db, user.ID), req.Occasions, outfitgen.Request{
		Weather:     req.Weather,
		Season:      req.Season,
		Preferences: req.Preferences,
	})
	if err != nil {
		return generationErrorResponse(c, err)
	}

	records, err := persistOutfits(db, user.ID, batch.Outfits, batch.Usage)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to save outfits"})
	}
	return c.JSON(http.StatusCreated, OutfitsGeneratedResponse{
		Outfits:         records,
		Failures:        batch.Failures,
		PartiallyFailed: batch.PartiallyFailed(),
	})
}

func (controller *OutfitsController) GenerateSeasonal(c echo.Context) error {
	var req GenerateSeasonalIn
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	user := c.Get("currentUser").(models.UserAccount)
	db := c.Get("__db").(*gorm.DB)

	snapshot, err := wardrobeSnapshot(db, user.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch wardrobe"})
	}

	batch, err := controller.Generator.GenerateSeasonal(c.Request().Context(), snapshot, styleProfileOf(db, user.ID), req.Season)
	if err != nil {
		return generationErrorResponse(c, err)
	}

	records, err := persistOutfits(db, user.ID, batch.Outfits, batch.Usage)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to save outfits"})
	}
	return c.JSON(http.StatusCreated, OutfitsGeneratedResponse{
		Outfits:         records,
		Failures:        batch.Failures,
		PartiallyFailed: batch.PartiallyFailed(),
	})
}

func (controller *OutfitsController) ListOutfits(c echo.Context) error {
	user := c.Get("currentUser").(models.UserAccount)
	db := c.Get("__db").(*gorm.DB)

	var outfits []models.Outfit
	if err := db.Where("owner_id = ?", user.ID).Order("id desc").Find(&outfits).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch outfits"})
	}
	return c.JSON(http.StatusOK, echo.Map{"outfits": outfits})
}
