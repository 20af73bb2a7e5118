package test

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"time"

	"stylistapi/models"
	"stylistapi/outfitgen"

	"github.com/golang-jwt/jwt/v4"
	"google.golang.org/api/idtoken"
	"google.golang.org/genai"
	"gorm.io/gorm"
)

func JsonString(model interface{}) string {
	bytes, _ := json.Marshal(model)
	return string(bytes)
}

func NewJSONRequest(method string, target string, param interface{}) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(JsonString(param)))
	req.Header.Add("Content-Type", "application/json")
	req.Header.Add("Accept", "application/json")
	return req
}

func GenerateUserToken(userPk string) string {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   userPk,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour * 72)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	})
	t, err := token.SignedString([]byte(os.Getenv("JWT_SECRET")))
	if err != nil {
		log.Fatalf("Error when signing user token for %s. Error %s ", userPk, err)
	}
	return t
}

func NewJSONAuthRequest(method string, target string, userPk string, param interface{}) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(JsonString(param)))
	req.Header.Add("Content-Type", "application/json")
	req.Header.Add("Accept", "application/json")
	token := GenerateUserToken(userPk)
	req.Header.Add("Authorization", fmt.Sprintf("Bearer %s", token))
	return req
}

func NewJSONAuthRequestRaw(method string, target string, userPk string, json string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(json))
	req.Header.Add("Content-Type", "application/json")
	req.Header.Add("Accept", "application/json")
	token := GenerateUserToken(userPk)
	req.Header.Add("Authorization", fmt.Sprintf("Bearer %s", token))
	return req
}

func NewRefString(data string) *string {
	return &data
}

func FakeUser(db *gorm.DB) *models.UserAccount {
	user := &models.UserAccount{
		Name:      "OurName",
		Email:     fmt.Sprintf("email%d@example.com", time.Now().UnixNano()),
		GoogleID:  "12232",
		Platform:  models.PlatformIOS,
		LastIp:    "123.122.122.122",
		Status:    "FINISHED_AUTH",
		AvatarURL: NewRefString("pictureurl"),
	}
	db.Create(&user)
	tokenDb := models.UserPushToken{
		UserAccountID: user.ID,
		Platform:      "android",
		Token:         "cX-UZ3zwQEiPt-2GJkG2gA:APA91bGqRflaGrJrnynhRwZ442HdgUjVcO7mWMFnx6IwAdJ9RRKopvSP4QU7hbvTmk1XAp8XGvtHZLvo5JmOPTVKBbGqqvhfbZWKlXA9csEjx1hgpNvrWepU",
		Active:        true,
	}
	db.Save(&tokenDb)
	return user
}

func FakeWardrobeItem(db *gorm.DB, ownerID uint, name string, category string, color string) *models.WardrobeItem {
	item := &models.WardrobeItem{
		Name:           name,
		Category:       category,
		Color:          color,
		OwnerID:        ownerID,
		ImageStatus:    "draft",
		AnalysisStatus: "idle",
	}
	db.Create(&item)
	return item
}

func FakeStyleProfile(db *gorm.DB, ownerID uint) *models.StyleProfile {
	profile := &models.StyleProfile{
		UserAccountID:    ownerID,
		BodyType:         "rectangle",
		HeightBand:       "170-180",
		ColorPreferences: []string{"navy", "white"},
		ColorAvoidances:  []string{"neon green"},
		Goals:            []string{"look taller"},
	}
	db.Create(&profile)
	return profile
}

type GoogleServiceMock struct{}

func (gsm GoogleServiceMock) ValidateIdToken(ctx context.Context, idToken string, audience string) (*idtoken.Payload, error) {
	return &idtoken.Payload{Issuer: "Issue", Audience: "AAA", Expires: 119919191919, IssuedAt: 12312321321, Subject: "fake@example.com", Claims: map[string]interface{}{
		"email":   "fake@example.com",
		"picture": "pictureurl",
		"name":    "Fake Name",
		"sub":     "123googleid",
	}}, nil
}

type AWSProviderMock struct {
	MockUrl string
}

func (awsService *AWSProviderMock) InitPresignClient(ctx context.Context) error {
	return nil
}

func (awsService *AWSProviderMock) PresignLink(ctx context.Context, bucketName string, fileName string) (string, error) {
	return fmt.Sprintf("https://fakebucketurl.com/%s", fileName), nil
}

func (awsService *AWSProviderMock) GetPresignedR2FileReadURL(ctx context.Context, bucketName, fileKey string) (string, error) {
	return awsService.MockUrl, nil
}

func (awsService *AWSProviderMock) UploadToPresignedURL(ctx context.Context, bucketName, url string, fileContent []byte) (string, int, error) {
	return url, 204, nil
}

type URLCacheMock struct {
	MockUrl string
}

func (m *URLCacheMock) GetReadURL(ctx context.Context, objectKey string) (string, error) {
	return m.MockUrl, nil
}

// StubStylist is a scripted outfitgen.CompletionProvider. With no overrides
// it answers every outfit prompt with one outfit built from the first two
// wardrobe item ids it finds enumerated in the prompt; FailOccasions lists
// occasions that should error out instead.
type StubStylist struct {
	mu            sync.Mutex
	Calls         int
	Prompts       []string
	Response      string
	FailOccasions []string
}

func promptOccasion(prompt string) string {
	for _, line := range strings.Split(prompt, "\n") {
		if strings.HasPrefix(line, "- Occasion: ") {
			return strings.TrimPrefix(line, "- Occasion: ")
		}
	}
	return ""
}

func promptItemIDs(prompt string) []string {
	var ids []string
	for _, line := range strings.Split(prompt, "\n") {
		if strings.HasPrefix(line, "- id=") {
			rest := strings.TrimPrefix(line, "- id=")
			end := strings.Index(rest, " ")
			if end > 0 {
				ids = append(ids, rest[:end])
			}
		}
	}
	return ids
}

func (s *StubStylist) Complete(ctx context.Context, model string, prompt string, schema *genai.Schema) (*outfitgen.Completion, error) {
	s.mu.Lock()
	s.Calls++
	s.Prompts = append(s.Prompts, prompt)
	s.mu.Unlock()

	occasion := promptOccasion(prompt)
	for _, fail := range s.FailOccasions {
		if fail == occasion {
			return nil, fmt.Errorf("stub provider down for %s", occasion)
		}
	}
	text := s.Response
	if text == "" {
		ids := promptItemIDs(prompt)
		if len(ids) > 2 {
			ids = ids[:2]
		}
		text = fmt.Sprintf(`{"outfits":[{"name":"Stub look","description":"scripted","item_ids":[%s],"occasion":"%s","reasoning":"stubbed"}]}`,
			strings.Join(ids, ","), occasion)
	}
	return &outfitgen.Completion{
		Text:             text,
		InputTokenCount:  10,
		OutputTokenCount: 13,
		TotalTokenCount:  23,
	}, nil
}
