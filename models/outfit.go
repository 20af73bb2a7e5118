package models

// Outfit is a persisted generation result. Records are immutable after
// creation; regenerating produces a new record, never an edit.
type Outfit struct {
	JsonModel
	Owner   UserAccount `json:"-"`
	OwnerID uint        `json:"-"`

	Name        string   `json:"name"`
	Description string   `gorm:"type:text" json:"description"`
	ItemIDs     []uint   `gorm:"serializer:json" json:"item_ids"`
	Occasion    string   `json:"occasion"`
	Season      *string  `json:"season"`
	Mood        *string  `json:"mood"`
	Tags        []string `gorm:"serializer:json" json:"tags"`
	Reasoning   string   `gorm:"type:text" json:"reasoning"`

	LLMModel            *string `json:"llm_model"`
	LLMInputTokenCount  *int32  `json:"llm_input_token_count"`
	LLMOutputTokenCount *int32  `json:"llm_output_token_count"`
	LLMTotalTokenCount  *int32  `json:"llm_total_token_count"`
}
