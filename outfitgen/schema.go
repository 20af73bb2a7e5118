package outfitgen

import "google.golang.org/genai"

// Response schemas are fixed values: identical for every call, only the
// instruction content varies. The provider is asked for JSON constrained to
// these shapes, and the validator re-checks the result anyway.

var outfitsResponseSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"outfits": {
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"name":        {Type: genai.TypeString},
					"description": {Type: genai.TypeString},
					"item_ids": {
						Type:  genai.TypeArray,
						Items: &genai.Schema{Type: genai.TypeInteger},
					},
					"occasion":  {Type: genai.TypeString},
					"season":    {Type: genai.TypeString},
					"mood":      {Type: genai.TypeString},
					"tags":      {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
					"reasoning": {Type: genai.TypeString},
				},
				Required: []string{"name", "description", "item_ids", "occasion", "reasoning"},
			},
		},
	},
	Required: []string{"outfits"},
}

var recommendationsResponseSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"recommendations": {
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"type":        {Type: genai.TypeString},
					"title":       {Type: genai.TypeString},
					"description": {Type: genai.TypeString},
					"priority":    {Type: genai.TypeString},
					"tags":        {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
					"reasoning":   {Type: genai.TypeString},
				},
				Required: []string{"type", "title", "description", "priority"},
			},
		},
	},
	Required: []string{"recommendations"},
}

var itemAnalysisResponseSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"style_score":        {Type: genai.TypeInteger},
		"color_match_score":  {Type: genai.TypeInteger},
		"fit_assessment":     {Type: genai.TypeString},
		"recommendation_tag": {Type: genai.TypeString},
		"reason":             {Type: genai.TypeString},
	},
	Required: []string{"style_score", "color_match_score", "fit_assessment", "recommendation_tag"},
}
