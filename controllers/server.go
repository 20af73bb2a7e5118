package controllers

import (
	"context"
	"log"
	"net/http"
	"os"

	"stylistapi/models"
	"stylistapi/outfitgen"
	"stylistapi/services"

	firebase "firebase.google.com/go/v4"
	"github.com/go-playground/validator"
	"github.com/hibiken/asynq"
	echojwt "github.com/labstack/echo-jwt"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"gorm.io/gorm"
)

type CustomValidator struct {
	validator *validator.Validate
}

func (cv *CustomValidator) Validate(i interface{}) error {
	if err := cv.validator.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

func SetupServer(
	db *gorm.DB,
	googleService services.GoogleServiceProvider,
	awsService services.AWSServiceProvider,
	urlCache services.URLCacheServiceProvider,
	firebaseApp *firebase.App,
	asynqClient *asynq.Client,
	generator *outfitgen.Generator,
) *echo.Echo {

	err := awsService.InitPresignClient(context.Background())
	if err != nil {
		log.Fatal("Failed to initialize AWS provider: S3")
	}

	e := echo.New()
	v := validator.New()
	v.RegisterValidation("platform", models.ValidatePlatform)
	v.RegisterValidation("category", models.ValidateCategory)
	e.Validator = &CustomValidator{validator: v}
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("__db", db)
			c.Set("__asynqclient", asynqClient)
			return next(c)
		}
	})

	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
	}))

	authGroup := e.Group("auth")
	authController := AuthController{Google: googleService, FirebaseApp: firebaseApp}
	authController.AuthRoutes(authGroup)

	shopGroup := e.Group("shop", echojwt.JWT([]byte(os.Getenv("JWT_SECRET"))))
	shopGroup.Use(UserMiddleware)

	profileController := ProfileController{}
	profileGroup := shopGroup.Group("/profile")
	profileController.ProfileRoutes(profileGroup)

	wardrobeController := WardrobeController{AWSService: awsService, FirebaseApp: firebaseApp, URLCache: urlCache}
	wardrobeGroup := shopGroup.Group("/wardrobe")
	wardrobeController.WardrobeRoutes(wardrobeGroup)

	outfitsController := OutfitsController{Generator: generator}
	outfitsGroup := shopGroup.Group("/outfits")
	outfitsController.OutfitRoutes(outfitsGroup)

	recommendationsController := RecommendationsController{Generator: generator}
	recommendationsGroup := shopGroup.Group("/recommendations")
	recommendationsController.RecommendationRoutes(recommendationsGroup)

	return e
}
