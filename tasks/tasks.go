package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"stylistapi/models"
	"stylistapi/outfitgen"
	"stylistapi/services"

	firebase "firebase.google.com/go/v4"
	"github.com/getsentry/sentry-go"
	"github.com/hibiken/asynq"
	"gorm.io/gorm"
)

const TypeWardrobeAnalysis = "analyze:item"

type WardrobeAnalysisPayload struct {
	ItemID uint `json:"item_id"`
}

// Client initializes an asynq client for enqueuing tasks
func NewClient() (*asynq.Client, error) {
	return asynq.NewClient(asynq.RedisClientOpt{Addr: services.GetEnv("REDIS_ADDR", "localhost:6379")}), nil
}

func NewWardrobeAnalysisTask(itemID uint) (*asynq.Task, error) {
	payload, err := json.Marshal(WardrobeAnalysisPayload{ItemID: itemID})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeWardrobeAnalysis, payload), nil
}

func analysisProfileOf(db *gorm.DB, userID uint) *outfitgen.Profile {
	var profile models.StyleProfile
	res := db.Where("user_account_id = ?", userID).First(&profile)
	if res.Error != nil {
		return nil
	}
	return profile.ToGenProfile()
}

// HandleWardrobeAnalysisTask scores one wardrobe item against the owner's
// style profile and persists the verdict on the item row.
func HandleWardrobeAnalysisTask(ctx context.Context, t *asynq.Task, db *gorm.DB, generator *outfitgen.Generator, fbApp *firebase.App) error {
	var payload WardrobeAnalysisPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return err
	}
	fmt.Printf("[Item: %v] Start analysis\n", payload.ItemID)

	var item models.WardrobeItem
	res := db.First(&item, payload.ItemID)
	if res.Error != nil {
		sentry.CaptureException(fmt.Errorf("[QUEUE] Error on retrieving wardrobe item for analysis %v", payload.ItemID))
		return res.Error
	}

	item.AnalysisStatus = "generating"
	if tx := db.Save(&item); tx.Error != nil {
		sentry.CaptureException(fmt.Errorf("[Item: %v] Error on saving generating status", item.ID))
		return tx.Error
	}

	profile := analysisProfileOf(db, item.OwnerID)
	result, err := generator.AnalyzeItem(ctx, item.ToGenItem(), profile)
	if err != nil {
		sentry.CaptureException(fmt.Errorf("[Item: %v] Error on analyzing item: %v", item.ID, err))
		return saveAnalysisFail(db, item, "We could not analyze this item, please retry later", shouldRetryAnalysis(err))
	}

	item.AnalysisStatus = "completed"
	item.AnalysisErrorMessage = nil
	item.StyleScore = &result.Analysis.StyleScore
	item.ColorMatchScore = &result.Analysis.ColorMatchScore
	item.FitAssessment = services.StrPointer(result.Analysis.FitAssessment)
	item.RecommendationTag = services.StrPointer(result.Analysis.RecommendationTag)
	item.AnalysisReason = services.StrPointer(result.Analysis.Reason)
	item.AnalysisLLMModel = services.StrPointer(result.Usage.Model)
	item.AnalysisTotalTokenCount = services.Int32Pointer(result.Usage.TotalTokenCount)
	if tx := db.Save(&item); tx.Error != nil {
		sentry.CaptureException(fmt.Errorf("[Item: %v] Error on saving analysis result", item.ID))
		return tx.Error
	}

	fmt.Printf("[Item: %v] Analysis completed, tag: %s\n", item.ID, result.Analysis.RecommendationTag)
	services.SendNotification(fbApp, db, item.OwnerID,
		"Wardrobe analysis ready",
		fmt.Sprintf("We finished analyzing %q", item.Name),
		map[string]string{"item_id": fmt.Sprintf("%d", item.ID)},
	)
	return nil
}

// Provider outages are worth retrying; malformed output means the prompt and
// schema need fixing, retrying the same input would just burn tokens.
func shouldRetryAnalysis(err error) bool {
	var providerErr *outfitgen.ProviderError
	return errors.As(err, &providerErr)
}

func saveAnalysisFail(db *gorm.DB, item models.WardrobeItem, msg string, shouldRetry bool) error {
	item.AnalysisRetryTimes = item.AnalysisRetryTimes + 1
	item.AnalysisErrorMessage = &msg
	if !shouldRetry || item.AnalysisRetryTimes >= 3 {
		item.AnalysisStatus = "failed"
	}
	tx := db.Save(&item)
	if tx.Error != nil {
		sentry.CaptureException(fmt.Errorf("[Fail Item %v] Error on saving item for failed status", item.ID))
		return tx.Error
	}
	if item.AnalysisStatus == "failed" {
		return nil
	}
	return fmt.Errorf("[Item: %v] analysis failed, will retry: %s", item.ID, msg)
}
