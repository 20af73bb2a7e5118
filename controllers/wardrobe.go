package controllers

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"sync"

	"stylistapi/models"
	"stylistapi/services"
	"stylistapi/tasks"

	firebase "firebase.google.com/go/v4"
	"github.com/getsentry/sentry-go"
	"github.com/hibiken/asynq"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

type CreateWardrobeItemIn struct {
	Name     string  `json:"name" validate:"required,max=100"`
	Category string  `json:"category" validate:"required,category"`
	Color    string  `json:"color" validate:"required,max=50"`
	Pattern  *string `json:"pattern" validate:"omitempty,max=50"`
	Material *string `json:"material" validate:"omitempty,max=50"`
	Brand    *string `json:"brand" validate:"omitempty,max=100"`
	FileName *string `json:"file_name" validate:"omitempty,max=200"`
	Analyze  *bool   `json:"analyze"`
}

type WardrobeItemResponse struct {
	ID       uint    `json:"id"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Color    string  `json:"color"`
	Pattern  *string `json:"pattern"`
	Material *string `json:"material"`
	Brand    *string `json:"brand"`

	AnalysisStatus    string  `json:"analysis_status"`
	StyleScore        *int    `json:"style_score"`
	ColorMatchScore   *int    `json:"color_match_score"`
	FitAssessment     *string `json:"fit_assessment"`
	RecommendationTag *string `json:"recommendation_tag"`

	Uri       *string `json:"uri,omitempty"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at"`
}

type WardrobeItemCreatedResponse struct {
	Item          WardrobeItemResponse `json:"item"`
	FileUploadUrl string               `json:"file_upload_url,omitempty"`
}

type WardrobeListResponse struct {
	Tops        []WardrobeItemResponse `json:"tops"`
	Bottoms     []WardrobeItemResponse `json:"bottoms"`
	Dresses     []WardrobeItemResponse `json:"dresses"`
	Outerwear   []WardrobeItemResponse `json:"outerwear"`
	Shoes       []WardrobeItemResponse `json:"shoes"`
	Accessories []WardrobeItemResponse `json:"accessories"`
}

type WardrobeController struct {
	AWSService  services.AWSServiceProvider
	FirebaseApp *firebase.App
	URLCache    services.URLCacheServiceProvider
}

func (controller *WardrobeController) WardrobeRoutes(g *echo.Group) {
	g.POST("/create", controller.CreateItem)
	g.GET("/list", controller.ListItems)
}

func wardrobeItemResponseOf(item models.WardrobeItem, uri *string) WardrobeItemResponse {
	return WardrobeItemResponse{
		ID:                item.ID,
		Name:              item.Name,
		Category:          item.Category,
		Color:             item.Color,
		Pattern:           item.Pattern,
		Material:          item.Material,
		Brand:             item.Brand,
		AnalysisStatus:    item.AnalysisStatus,
		StyleScore:        item.StyleScore,
		ColorMatchScore:   item.ColorMatchScore,
		FitAssessment:     item.FitAssessment,
		RecommendationTag: item.RecommendationTag,
		Uri:               uri,
		CreatedAt:         item.CreatedAt.Format("2006-01-02T15:04:05Z"),
		UpdatedAt:         item.UpdatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

func (controller *WardrobeController) CreateItem(c echo.Context) error {
	var req CreateWardrobeItemIn
	if err := c.Bind(&req); err != nil {
		fmt.Println(err)
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	user, ok := c.Get("currentUser").(models.UserAccount)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}
	db, ok := c.Get("__db").(*gorm.DB)
	if !ok {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Database connection error"})
	}
	asynqClient, ok := c.Get("__asynqclient").(*asynq.Client)
	if !ok {
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Service is not available, please try again a bit later"})
	}

	item := models.WardrobeItem{
		Name:           req.Name,
		Category:       req.Category,
		Color:          req.Color,
		Pattern:        req.Pattern,
		Material:       req.Material,
		Brand:          req.Brand,
		OwnerID:        user.ID,
		ImageStatus:    "draft",
		AnalysisStatus: "idle",
	}

	var uploadUrl string
	if req.FileName != nil && *req.FileName != "" {
		if !services.IsAllowedImageName(*req.FileName) {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Unsupported image file type"})
		}
		var bucketName = services.GetEnv("R2_BUCKET_NAME", "")
		safeFileName := fmt.Sprintf("wardrobe/%d/%s", user.ID, *req.FileName)
		url, presignErr := controller.AWSService.PresignLink(context.Background(), bucketName, safeFileName)
		if presignErr != nil {
			log.Printf("Unable to presign upload for %s!, %s", item.Name, presignErr)
			return c.JSON(http.StatusInternalServerError, echo.Map{
				"message": "Error while creating item with attachment",
			})
		}
		uploadUrl = url
		item.ImageURL = &safeFileName
	}

	if err := db.Create(&item).Error; err != nil {
		sentry.CaptureException(err)
		return err
	}

	if req.Analyze != nil && *req.Analyze {
		item.AnalysisStatus = "pending"
		if err := db.Save(&item).Error; err != nil {
			sentry.CaptureException(err)
			return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Failed to update item status, please try again"})
		}
		task, err := tasks.NewWardrobeAnalysisTask(item.ID)
		if err != nil {
			sentry.CaptureException(err)
			return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Sorry, could not schedule analysis, please try again"})
		}
		info, err := asynqClient.Enqueue(task, asynq.MaxRetry(3), asynq.Queue("analyze"))
		if err != nil {
			sentry.CaptureException(err)
			return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Sorry, could not schedule analysis, please try again"})
		}
		fmt.Println("[Queue] Analyze item task submitted, Item ID: ", item.ID, " Task ID: ", info.ID)
	}

	return c.JSON(http.StatusCreated, WardrobeItemCreatedResponse{
		Item:          wardrobeItemResponseOf(item, nil),
		FileUploadUrl: uploadUrl,
	})
}

// populatePresignedItemImages resolves presigned read URLs concurrently, one
// goroutine per item, falling back to a direct R2 presign when the cache
// layer misbehaves.
func (controller *WardrobeController) populatePresignedItemImages(ctx context.Context, items []models.WardrobeItem) []WardrobeItemResponse {
	if len(items) == 0 {
		return []WardrobeItemResponse{}
	}

	var wg sync.WaitGroup
	processedResponses := make([]WardrobeItemResponse, len(items))
	bucketName := services.GetEnv("R2_BUCKET_NAME", "")

	for i, wardrobeItem := range items {
		wg.Add(1)
		go func(index int, item models.WardrobeItem) {
			defer wg.Done()

			var imageUrl string
			if item.ImageURL != nil && *item.ImageURL != "" {
				objectKey := *item.ImageURL

				url, err := controller.URLCache.GetReadURL(ctx, objectKey)
				if err == nil {
					imageUrl = url
				} else {
					log.Printf("CACHE WARNING: Cache system failed for key '%s': %v. Triggering manual R2 fallback.", objectKey, err)
					sentry.WithScope(func(scope *sentry.Scope) {
						scope.SetTag("failure_type", "cache_system")
						scope.SetExtra("objectKey", objectKey)
						sentry.CaptureException(err)
					})

					fallbackUrl, fallbackErr := controller.AWSService.GetPresignedR2FileReadURL(ctx, bucketName, objectKey)
					if fallbackErr != nil {
						log.Printf("CRITICAL: Manual R2 fallback also failed for key '%s': %v", objectKey, fallbackErr)
						sentry.CaptureException(fallbackErr)
						// imageUrl stays empty, the listing still succeeds.
					} else {
						imageUrl = fallbackUrl
					}
				}
			}
			processedResponses[index] = wardrobeItemResponseOf(item, &imageUrl)
		}(i, wardrobeItem)
	}

	wg.Wait()
	return processedResponses
}

func (controller *WardrobeController) ListItems(c echo.Context) error {
	user, ok := c.Get("currentUser").(models.UserAccount)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}
	db, ok := c.Get("__db").(*gorm.DB)
	if !ok {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Database connection error"})
	}

	var items []models.WardrobeItem
	if err := db.Where("owner_id = ?", user.ID).Order("id asc").Find(&items).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch wardrobe"})
	}

	processedResponses := controller.populatePresignedItemImages(c.Request().Context(), items)

	response := WardrobeListResponse{
		Tops:        []WardrobeItemResponse{},
		Bottoms:     []WardrobeItemResponse{},
		Dresses:     []WardrobeItemResponse{},
		Outerwear:   []WardrobeItemResponse{},
		Shoes:       []WardrobeItemResponse{},
		Accessories: []WardrobeItemResponse{},
	}
	for _, resp := range processedResponses {
		switch resp.Category {
		case "tops":
			response.Tops = append(response.Tops, resp)
		case "bottoms":
			response.Bottoms = append(response.Bottoms, resp)
		case "dresses":
			response.Dresses = append(response.Dresses, resp)
		case "outerwear":
			response.Outerwear = append(response.Outerwear, resp)
		case "shoes":
			response.Shoes = append(response.Shoes, resp)
		case "accessories":
			response.Accessories = append(response.Accessories, resp)
		}
	}

	return c.JSON(http.StatusOK, response)
}
