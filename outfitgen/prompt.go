package outfitgen

import (
	"fmt"
	"strings"
)

// Prompt building is a pure function of its inputs: same snapshot, profile
// and request always produce the same instruction string.

const neutralBodyType = "unspecified"

func writeProfileSection(b *strings.Builder, profile *Profile) {
	b.WriteString("USER STYLE PROFILE:\n")
	if profile == nil {
		fmt.Fprintf(b, "- Body type: %s\n", neutralBodyType)
		b.WriteString("- Color preferences: none, any color is acceptable\n")
		return
	}
	bodyType := profile.BodyType
	if bodyType == "" {
		bodyType = neutralBodyType
	}
	fmt.Fprintf(b, "- Body type: %s\n", bodyType)
	if profile.HeightBand != "" {
		fmt.Fprintf(b, "- Height: %s\n", profile.HeightBand)
	}
	if profile.AgeBand != "" {
		fmt.Fprintf(b, "- Age: %s\n", profile.AgeBand)
	}
	if profile.DailyActivity != "" {
		fmt.Fprintf(b, "- Daily activity: %s\n", profile.DailyActivity)
	}
	if profile.ComfortLevel != "" {
		fmt.Fprintf(b, "- Comfort preference: %s\n", profile.ComfortLevel)
	}
	if profile.Lifestyle != "" {
		fmt.Fprintf(b, "- Lifestyle: %s\n", profile.Lifestyle)
	}
	if len(profile.Occasions) > 0 {
		fmt.Fprintf(b, "- Typical occasions: %s\n", strings.Join(profile.Occasions, ", "))
	}
	if profile.StyleInspiration != "" {
		fmt.Fprintf(b, "- Style inspiration: %s\n", profile.StyleInspiration)
	}
	if profile.BudgetBand != "" {
		fmt.Fprintf(b, "- Budget: %s\n", profile.BudgetBand)
	}
	if len(profile.ColorPreferences) > 0 {
		fmt.Fprintf(b, "- Preferred colors: %s\n", strings.Join(profile.ColorPreferences, ", "))
	} else {
		b.WriteString("- Color preferences: none, any color is acceptable\n")
	}
	if len(profile.ColorAvoidances) > 0 {
		fmt.Fprintf(b, "- Colors to avoid: %s\n", strings.Join(profile.ColorAvoidances, ", "))
	}
	if len(profile.Goals) > 0 {
		fmt.Fprintf(b, "- Style goals: %s\n", strings.Join(profile.Goals, ", "))
	}
}

func writeInventorySection(b *strings.Builder, items []Item) {
	b.WriteString("WARDROBE INVENTORY (the complete closed list of available items):\n")
	for _, item := range items {
		fmt.Fprintf(b, "- id=%d [%s] %s, color %s", item.ID, item.Category, item.Name, item.Color)
		if item.Pattern != nil && *item.Pattern != "" {
			fmt.Fprintf(b, ", pattern %s", *item.Pattern)
		}
		if item.Material != nil && *item.Material != "" {
			fmt.Fprintf(b, ", material %s", *item.Material)
		}
		if item.Brand != nil && *item.Brand != "" {
			fmt.Fprintf(b, ", brand %s", *item.Brand)
		}
		b.WriteString("\n")
	}
}

// BuildOutfitPrompt serializes the snapshot, profile and request into one
// structured-completion instruction. Callers must have rejected an empty
// snapshot already; this function assumes at least one item.
func BuildOutfitPrompt(items []Item, profile *Profile, req Request) string {
	var b strings.Builder
	b.WriteString("You are a personal fashion stylist. Compose outfits strictly from the user's own wardrobe.\n\n")

	writeProfileSection(&b, profile)
	b.WriteString("\n")
	writeInventorySection(&b, items)

	b.WriteString("\nREQUEST:\n")
	fmt.Fprintf(&b, "- Occasion: %s\n", req.Occasion)
	if req.Weather != "" {
		fmt.Fprintf(&b, "- Weather: %s\n", req.Weather)
	}
	if req.Season != "" {
		fmt.Fprintf(&b, "- Season: %s\n", req.Season)
	}
	if req.Mood != "" {
		fmt.Fprintf(&b, "- Mood: %s\n", req.Mood)
	}
	if req.Preferences != "" {
		fmt.Fprintf(&b, "- Extra preferences: %s\n", req.Preferences)
	}
	fmt.Fprintf(&b, "- Number of outfits to propose: %d\n", req.Count)

	b.WriteString("\nRULES:\n")
	b.WriteString("1. Every outfit's item_ids MUST reference ONLY the numeric ids enumerated in the wardrobe inventory above. Never invent an id.\n")
	b.WriteString("2. Each outfit needs at least two items and should cover a wearable combination for the occasion.\n")
	b.WriteString("3. Respect the color avoidances; prefer the preferred colors when possible.\n")
	b.WriteString("4. reasoning explains why the combination works for this user and occasion.\n")
	b.WriteString("Return JSON only, matching the response schema.\n")

	return b.String()
}

// BuildRecommendationsPrompt asks for typed styling advice over the whole
// wardrobe. An empty wardrobe is allowed here: the advice degrades to
// starter shopping guidance.
func BuildRecommendationsPrompt(items []Item, profile *Profile) string {
	var b strings.Builder
	b.WriteString("You are a personal fashion stylist. Produce actionable style advice for the user.\n\n")

	writeProfileSection(&b, profile)
	b.WriteString("\n")
	if len(items) == 0 {
		b.WriteString("WARDROBE INVENTORY: empty. Focus on shopping recommendations to build a starter wardrobe.\n")
	} else {
		writeInventorySection(&b, items)
	}

	b.WriteString("\nProduce 3 to 6 recommendations. Each has:\n")
	b.WriteString("- type: one of style, wardrobe, shopping, trend\n")
	b.WriteString("- priority: one of high, medium, low\n")
	b.WriteString("- a short title, a concrete description, optional tags, and the reasoning behind it.\n")
	b.WriteString("Return JSON only, matching the response schema.\n")

	return b.String()
}

// BuildItemAnalysisPrompt asks for a single-garment assessment against the
// user's profile.
func BuildItemAnalysisPrompt(item Item, profile *Profile) string {
	var b strings.Builder
	b.WriteString("You are a personal fashion stylist assessing a single garment for the user.\n\n")

	writeProfileSection(&b, profile)
	b.WriteString("\nGARMENT:\n")
	fmt.Fprintf(&b, "- [%s] %s, color %s", item.Category, item.Name, item.Color)
	if item.Pattern != nil && *item.Pattern != "" {
		fmt.Fprintf(&b, ", pattern %s", *item.Pattern)
	}
	if item.Material != nil && *item.Material != "" {
		fmt.Fprintf(&b, ", material %s", *item.Material)
	}
	if item.Brand != nil && *item.Brand != "" {
		fmt.Fprintf(&b, ", brand %s", *item.Brand)
	}
	b.WriteString("\n\nAssess:\n")
	b.WriteString("- style_score: 0-100, how well the garment fits the user's style profile\n")
	b.WriteString("- color_match_score: 0-100, how well the color works with the user's palette\n")
	b.WriteString("- fit_assessment: one or two sentences on fit for the user's body type\n")
	b.WriteString("- recommendation_tag: one of keep, alter, donate\n")
	b.WriteString("- reason: why you chose that tag\n")
	b.WriteString("Return JSON only, matching the response schema.\n")

	return b.String()
}
