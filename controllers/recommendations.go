package controllers

import (
	"errors"
	"net/http"

	"stylistapi/models"
	"stylistapi/outfitgen"

	"github.com/getsentry/sentry-go"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

type RecommendationsController struct {
	Generator *outfitgen.Generator
}

func (controller *RecommendationsController) RecommendationRoutes(g *echo.Group) {
	g.POST("/generate", controller.GenerateRecommendations)
	g.GET("/list", controller.ListRecommendations)
}

func (controller *RecommendationsController) GenerateRecommendations(c echo.Context) error {
	user := c.Get("currentUser").(models.UserAccount)
	db := c.Get("__db").(*gorm.DB)

	// Unlike outfit generation, advice works on an empty wardrobe too.
	snapshot, err := wardrobeSnapshot(db, user.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch wardrobe"})
	}

	recommendations, _, err := controller.Generator.GenerateRecommendations(c.Request().Context(), snapshot, styleProfileOf(db, user.ID))
	if err != nil {
		if errors.Is(err, outfitgen.ErrNoRecommendations) {
			return c.JSON(http.StatusUnprocessableEntity, map[string]string{"error": "We could not produce advice right now, please try again"})
		}
		return generationErrorResponse(c, err)
	}

	records := make([]models.Recommendation, 0, len(recommendations))
	for _, recommendation := range recommendations {
		record := models.Recommendation{
			OwnerID:     user.ID,
			Type:        recommendation.Type,
			Title:       recommendation.Title,
			Description: recommendation.Description,
			Priority:    recommendation.Priority,
			Tags:        recommendation.Tags,
			Reasoning:   recommendation.Reasoning,
		}
		if err := db.Create(&record).Error; err != nil {
			sentry.CaptureException(err)
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to save recommendations"})
		}
		records = append(records, record)
	}
	return c.JSON(http.StatusCreated, echo.Map{"recommendations": records})
}

func (controller *RecommendationsController) ListRecommendations(c echo.Context) error {
	user := c.Get("currentUser").(models.UserAccount)
	db := c.Get("__db").(*gorm.DB)

	var recommendations []models.Recommendation
	if err := db.Where("owner_id = ?", user.ID).Order("id desc").Find(&recommendations).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch recommendations"})
	}
	return c.JSON(http.StatusOK, echo.Map{"recommendations": recommendations})
}
