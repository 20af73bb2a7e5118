package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"stylistapi/models"
	"stylistapi/test"
	"testing"

	"github.com/stretchr/testify/assert"
)

const recommendationsReply = `{"recommendations":[
	{"type":"wardrobe","title":"Add a white sneaker","description":"A clean white sneaker pairs with most of your bottoms.","priority":"high","tags":["versatile"],"reasoning":"gap in casual shoes"},
	{"type":"color-theory","title":"Try warmer tones","description":"Warmer tones complement your stated preferences.","priority":"urgent","tags":[],"reasoning":"profile colors"}
]}`

func TestGenerateRecommendations(t *testing.T) {
	stub := &test.StubStylist{Response: recommendationsReply}
	f, cleaner := outfitsTestServer(t, stub)
	defer cleaner()
	fillTestWardrobe(f)

	req := test.NewJSONAuthRequest("POST", "/shop/recommendations/generate", f.userPk, "")
	rec := httptest.NewRecorder()

	f.e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var resp struct {
		Recommendations []models.Recommendation `json:"recommendations"`
	}
	json.Unmarshal(rec.Body.Bytes(), &resp)
	assert.Len(t, resp.Recommendations, 2)
	assert.Equal(t, "Add a white sneaker", resp.Recommendations[0].Title)
	// Out-of-vocabulary type and priority are normalized, not rejected.
	assert.Equal(t, "style", resp.Recommendations[1].Type)
	assert.Equal(t, "medium", resp.Recommendations[1].Priority)

	var count int64
	f.db.Model(&models.Recommendation{}).Where("owner_id = ?", f.user.ID).Count(&count)
	assert.Equal(t, int64(2), count)
}

func TestGenerateRecommendationsEmptyWardrobe(t *testing.T) {
	stub := &test.StubStylist{Response: recommendationsReply}
	f, cleaner := outfitsTestServer(t, stub)
	defer cleaner()

	req := test.NewJSONAuthRequest("POST", "/shop/recommendations/generate", f.userPk, "")
	rec := httptest.NewRecorder()

	f.e.ServeHTTP(rec, req)

	// Advice is allowed on an empty wardrobe, unlike outfit generation.
	assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, 1, stub.Calls)
}

func TestGenerateRecommendationsNothingUsable(t *testing.T) {
	stub := &test.StubStylist{Response: `{"recommendations":[{"type":"style","title":"","description":""}]}`}
	f, cleaner := outfitsTestServer(t, stub)
	defer cleaner()
	fillTestWardrobe(f)

	req := test.NewJSONAuthRequest("POST", "/shop/recommendations/generate", f.userPk, "")
	rec := httptest.NewRecorder()

	f.e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code, rec.Body.String())
}

func TestGenerateRecommendationsProviderDown(t *testing.T) {
	stub := &test.StubStylist{FailOccasions: []string{""}}
	f, cleaner := outfitsTestServer(t, stub)
	defer cleaner()
	fillTestWardrobe(f)

	req := test.NewJSONAuthRequest("POST", "/shop/recommendations/generate", f.userPk, "")
	rec := httptest.NewRecorder()

	f.e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code, rec.Body.String())
}

func TestListRecommendations(t *testing.T) {
	stub := &test.StubStylist{}
	f, cleaner := outfitsTestServer(t, stub)
	defer cleaner()

	f.db.Create(&models.Recommendation{OwnerID: f.user.ID, Type: "wardrobe", Title: "Older", Priority: "low"})
	f.db.Create(&models.Recommendation{OwnerID: f.user.ID, Type: "style", Title: "Newer", Priority: "high"})

	req := test.NewJSONAuthRequest("GET", "/shop/recommendations/list", f.userPk, "")
	rec := httptest.NewRecorder()

	f.e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp struct {
		Recommendations []models.Recommendation `json:"recommendations"`
	}
	json.Unmarshal(rec.Body.Bytes(), &resp)
	assert.Len(t, resp.Recommendations, 2)
	assert.Equal(t, "Newer", resp.Recommendations[0].Title)
}
