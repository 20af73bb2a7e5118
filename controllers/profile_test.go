package controllers

import (
	"encoding/json"
	"log"
	"net/http"
	"net/http/httptest"
	"strconv"
	"stylistapi/dbhelper"
	"stylistapi/models"
	"stylistapi/test"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetProfileMe(t *testing.T) {
	db := dbhelper.SetupTestDB()
	cleaner := dbhelper.SetupCleaner(db)
	defer cleaner()
	e := SetupServer(db, test.GoogleServiceMock{}, &test.AWSProviderMock{}, nil, nil, nil, nil)
	user := test.FakeUser(db)

	req := test.NewJSONAuthRequest("GET", "/shop/profile/me", strconv.FormatUint(uint64(user.ID), 10), "")
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	payload := map[string]interface{}{}

	err := json.Unmarshal(rec.Body.Bytes(), &payload)
	if err != nil {
		log.Fatal(err)
	}
	assert.Equal(t, user.Name, payload["name"])
	assert.Equal(t, user.Email, payload["email"])
	assert.Equal(t, "pictureurl", payload["avatar_url"])
}

func TestGetStyleProfileMissing(t *testing.T) {
	db := dbhelper.SetupTestDB()
	cleaner := dbhelper.SetupCleaner(db)
	defer cleaner()
	e := SetupServer(db, test.GoogleServiceMock{}, &test.AWSProviderMock{}, nil, nil, nil, nil)
	user := test.FakeUser(db)

	req := test.NewJSONAuthRequest("GET", "/shop/profile/style", strconv.FormatUint(uint64(user.ID), 10), "")
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code, rec.Body.String())
}

func TestSaveStyleProfile(t *testing.T) {
	db := dbhelper.SetupTestDB()
	cleaner := dbhelper.SetupCleaner(db)
	defer cleaner()
	e := SetupServer(db, test.GoogleServiceMock{}, &test.AWSProviderMock{}, nil, nil, nil, nil)
	user := test.FakeUser(db)
	userPk := strconv.FormatUint(uint64(user.ID), 10)

	param := models.StyleProfileIn{
		BodyType:         "hourglass",
		HeightBand:       "160-170",
		AgeBand:          "25-34",
		DailyActivity:    "office",
		Occasions:        []string{"work", "evening"},
		ColorPreferences: []string{"navy", "beige"},
		ColorAvoidances:  []string{"orange"},
		Goals:            []string{"capsule wardrobe"},
	}
	req := test.NewJSONAuthRequest("POST", "/shop/profile/style", userPk, param)
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var profile models.StyleProfile
	db.Where("user_account_id = ?", user.ID).First(&profile)
	assert.Equal(t, "hourglass", profile.BodyType)
	assert.Equal(t, []string{"navy", "beige"}, profile.ColorPreferences)

	// A second diagnosis replaces the stored one wholesale.
	param2 := models.StyleProfileIn{
		BodyType: "rectangle",
	}
	req2 := test.NewJSONAuthRequest("POST", "/shop/profile/style", userPk, param2)
	rec2 := httptest.NewRecorder()

	e.ServeHTTP(rec2, req2)

	assert.Equal(t, http.StatusOK, rec2.Code, rec2.Body.String())

	var count int64
	db.Model(&models.StyleProfile{}).Where("user_account_id = ?", user.ID).Count(&count)
	assert.Equal(t, int64(1), count)

	db.Where("user_account_id = ?", user.ID).First(&profile)
	assert.Equal(t, "rectangle", profile.BodyType)
	assert.Empty(t, profile.ColorPreferences)
	assert.Equal(t, "", profile.HeightBand)
}

func TestSaveStyleProfileMissingBodyType(t *testing.T) {
	db := dbhelper.SetupTestDB()
	cleaner := dbhelper.SetupCleaner(db)
	defer cleaner()
	e := SetupServer(db, test.GoogleServiceMock{}, &test.AWSProviderMock{}, nil, nil, nil, nil)
	user := test.FakeUser(db)

	param := models.StyleProfileIn{HeightBand: "160-170"}
	req := test.NewJSONAuthRequest("POST", "/shop/profile/style", strconv.FormatUint(uint64(user.ID), 10), param)
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
}
