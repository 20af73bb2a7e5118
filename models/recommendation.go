package models

// Recommendation is a free-form typed piece of advice, independent of any
// specific outfit.
type Recommendation struct {
	JsonModel
	Owner   UserAccount `json:"-"`
	OwnerID uint        `json:"-"`

	Type        string   `json:"type"` // style, wardrobe, shopping, trend
	Title       string   `json:"title"`
	Description string   `gorm:"type:text" json:"description"`
	Priority    string   `json:"priority"` // high, medium, low
	Tags        []string `gorm:"serializer:json" json:"tags"`
	Reasoning   string   `gorm:"type:text" json:"reasoning"`
}
