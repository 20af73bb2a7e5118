package models

import "stylistapi/outfitgen"

// StyleProfile is the result of the style diagnosis flow. One per user,
// optional; a new diagnosis replaces all prior values wholesale.
type StyleProfile struct {
	JsonModel
	UserAccountID uint        `gorm:"uniqueIndex" json:"-"`
	UserAccount   UserAccount `json:"-"`

	BodyType      string `json:"body_type"`
	HeightBand    string `json:"height_band"`
	AgeBand       string `json:"age_band"`
	DailyActivity string `json:"daily_activity"`
	ComfortLevel  string `json:"comfort_level"`
	Lifestyle     string `json:"lifestyle"`

	Occasions        []string `gorm:"serializer:json" json:"occasions"`
	StyleInspiration string   `json:"style_inspiration"`
	BudgetBand       string   `json:"budget_band"`
	ColorPreferences []string `gorm:"serializer:json" json:"color_preferences"`
	ColorAvoidances  []string `gorm:"serializer:json" json:"color_avoidances"`
	Goals            []string `gorm:"serializer:json" json:"goals"`
}

// ToGenProfile maps the stored diagnosis onto the generation-time view.
func (p *StyleProfile) ToGenProfile() *outfitgen.Profile {
	if p == nil {
		return nil
	}
	return &outfitgen.Profile{
		BodyType:         p.BodyType,
		HeightBand:       p.HeightBand,
		AgeBand:          p.AgeBand,
		DailyActivity:    p.DailyActivity,
		ComfortLevel:     p.ComfortLevel,
		Lifestyle:        p.Lifestyle,
		Occasions:        p.Occasions,
		StyleInspiration: p.StyleInspiration,
		BudgetBand:       p.BudgetBand,
		ColorPreferences: p.ColorPreferences,
		ColorAvoidances:  p.ColorAvoidances,
		Goals:            p.Goals,
	}
}

type StyleProfileIn struct {
	BodyType      string `json:"body_type" validate:"required,max=50"`
	HeightBand    string `json:"height_band" validate:"omitempty,max=50"`
	AgeBand       string `json:"age_band" validate:"omitempty,max=50"`
	DailyActivity string `json:"daily_activity" validate:"omitempty,max=100"`
	ComfortLevel  string `json:"comfort_level" validate:"omitempty,max=100"`
	Lifestyle     string `json:"lifestyle" validate:"omitempty,max=200"`

	Occasions        []string `json:"occasions"`
	StyleInspiration string   `json:"style_inspiration" validate:"omitempty,max=100"`
	BudgetBand       string   `json:"budget_band" validate:"omitempty,max=50"`
	ColorPreferences []string `json:"color_preferences"`
	ColorAvoidances  []string `json:"color_avoidances"`
	Goals            []string `json:"goals"`
}
