package tasks

import (
	"context"
	"testing"

	"stylistapi/dbhelper"
	"stylistapi/models"
	"stylistapi/outfitgen"
	"stylistapi/test"

	"github.com/stretchr/testify/assert"
)

const analysisReply = `{"style_score":82,"color_match_score":74,"fit_assessment":"Works well for your frame","recommendation_tag":"keep","reason":"matches your palette"}`

func TestHandleWardrobeAnalysisTask(t *testing.T) {
	db := dbhelper.SetupTestDB()
	cleaner := dbhelper.SetupCleaner(db)
	defer cleaner()

	user := test.FakeUser(db)
	test.FakeStyleProfile(db, user.ID)
	item := test.FakeWardrobeItem(db, user.ID, "White oxford shirt", "tops", "white")
	item.AnalysisStatus = "pending"
	db.Save(&item)

	stub := &test.StubStylist{Response: analysisReply}
	generator := outfitgen.NewGenerator(stub, outfitgen.Config{})

	task, err := NewWardrobeAnalysisTask(item.ID)
	assert.NoError(t, err)

	err = HandleWardrobeAnalysisTask(context.Background(), task, db, generator, nil)
	assert.NoError(t, err)
	assert.Equal(t, 1, stub.Calls)

	var saved models.WardrobeItem
	db.First(&saved, item.ID)
	assert.Equal(t, "completed", saved.AnalysisStatus)
	assert.Equal(t, 82, *saved.StyleScore)
	assert.Equal(t, 74, *saved.ColorMatchScore)
	assert.Equal(t, "keep", *saved.RecommendationTag)
	assert.Equal(t, "matches your palette", *saved.AnalysisReason)
	assert.Equal(t, int32(23), *saved.AnalysisTotalTokenCount)
	assert.Nil(t, saved.AnalysisErrorMessage)
}

func TestHandleWardrobeAnalysisTaskProviderDownRetries(t *testing.T) {
	db := dbhelper.SetupTestDB()
	cleaner := dbhelper.SetupCleaner(db)
	defer cleaner()

	user := test.FakeUser(db)
	item := test.FakeWardrobeItem(db, user.ID, "Navy chinos", "bottoms", "navy")

	stub := &test.StubStylist{FailOccasions: []string{""}}
	generator := outfitgen.NewGenerator(stub, outfitgen.Config{})

	task, _ := NewWardrobeAnalysisTask(item.ID)

	// An outage is worth retrying, so the handler reports failure back to
	// the queue while the item stays out of the terminal state.
	err := HandleWardrobeAnalysisTask(context.Background(), task, db, generator, nil)
	assert.Error(t, err)

	var saved models.WardrobeItem
	db.First(&saved, item.ID)
	assert.Equal(t, "generating", saved.AnalysisStatus)
	assert.Equal(t, 1, saved.AnalysisRetryTimes)
	assert.NotNil(t, saved.AnalysisErrorMessage)

	// Third strike moves it to failed and stops the retry loop.
	assert.Error(t, HandleWardrobeAnalysisTask(context.Background(), task, db, generator, nil))
	assert.NoError(t, HandleWardrobeAnalysisTask(context.Background(), task, db, generator, nil))

	db.First(&saved, item.ID)
	assert.Equal(t, "failed", saved.AnalysisStatus)
	assert.Equal(t, 3, saved.AnalysisRetryTimes)
}

func TestHandleWardrobeAnalysisTaskMalformedReplyFailsFast(t *testing.T) {
	db := dbhelper.SetupTestDB()
	cleaner := dbhelper.SetupCleaner(db)
	defer cleaner()

	user := test.FakeUser(db)
	item := test.FakeWardrobeItem(db, user.ID, "Brown loafers", "shoes", "brown")

	stub := &test.StubStylist{Response: "these loafers spark joy"}
	generator := outfitgen.NewGenerator(stub, outfitgen.Config{})

	task, _ := NewWardrobeAnalysisTask(item.ID)
	err := HandleWardrobeAnalysisTask(context.Background(), task, db, generator, nil)
	assert.NoError(t, err)

	var saved models.WardrobeItem
	db.First(&saved, item.ID)
	assert.Equal(t, "failed", saved.AnalysisStatus)
	assert.Equal(t, 1, saved.AnalysisRetryTimes)
}

func TestHandleWardrobeAnalysisTaskMissingItem(t *testing.T) {
	db := dbhelper.SetupTestDB()
	cleaner := dbhelper.SetupCleaner(db)
	defer cleaner()

	stub := &test.StubStylist{Response: analysisReply}
	generator := outfitgen.NewGenerator(stub, outfitgen.Config{})

	task, _ := NewWardrobeAnalysisTask(987654)
	err := HandleWardrobeAnalysisTask(context.Background(), task, db, generator, nil)
	assert.Error(t, err)
	assert.Equal(t, 0, stub.Calls)
}
