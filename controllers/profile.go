package controllers

import (
	"errors"
	"net/http"

	"stylistapi/models"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

type ProfileController struct {
}

func (controller *ProfileController) ProfileRoutes(g *echo.Group) {
	g.GET("/me", func(c echo.Context) error {
		user := c.Get("currentUser").(models.UserAccount)
		return c.JSON(http.StatusOK, models.UserInfoOut{
			Id:        user.ID,
			Name:      user.Name,
			Email:     user.Email,
			Status:    user.Status,
			AvatarUrl: user.AvatarURL,
		})
	})

	g.GET("/style", func(c echo.Context) error {
		user := c.Get("currentUser").(models.UserAccount)
		db := c.Get("__db").(*gorm.DB)

		var profile models.StyleProfile
		result := db.Where("user_account_id = ?", user.ID).First(&profile)
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "No style profile yet"})
		}
		if result.Error != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch style profile"})
		}
		return c.JSON(http.StatusOK, profile)
	})

	// A new diagnosis replaces the stored one wholesale, field by field.
	g.POST("/style", func(c echo.Context) error {
		user := c.Get("currentUser").(models.UserAccount)
		db := c.Get("__db").(*gorm.DB)

		var req models.StyleProfileIn
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
		}
		if err := c.Validate(req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}

		var profile models.StyleProfile
		result := db.Where("user_account_id = ?", user.ID).First(&profile)
		if result.Error != nil && !errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch style profile"})
		}

		profile.UserAccountID = user.ID
		profile.BodyType = req.BodyType
		profile.HeightBand = req.HeightBand
		profile.AgeBand = req.AgeBand
		profile.DailyActivity = req.DailyActivity
		profile.ComfortLevel = req.ComfortLevel
		profile.Lifestyle = req.Lifestyle
		profile.Occasions = req.Occasions
		profile.StyleInspiration = req.StyleInspiration
		profile.BudgetBand = req.BudgetBand
		profile.ColorPreferences = req.ColorPreferences
		profile.ColorAvoidances = req.ColorAvoidances
		profile.Goals = req.Goals

		if err := db.Save(&profile).Error; err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to save style profile"})
		}
		return c.JSON(http.StatusOK, profile)
	})
}
