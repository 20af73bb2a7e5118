package outfitgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOutfitsAcceptsKnownIDs(t *testing.T) {
	raw := `{"outfits":[{"name":"Weekend","description":"relaxed","item_ids":[1,2],"occasion":"weekend","reasoning":"comfortable"}]}`

	outfits, err := parseOutfits(raw, testItems(), Request{Occasion: "weekend"}, failOnViolation)
	require.NoError(t, err)
	require.Len(t, outfits, 1)
	assert.Equal(t, []uint{1, 2}, outfits[0].ItemIDs)
}

func TestParseOutfitsUnknownIDFailPolicy(t *testing.T) {
	raw := `{"outfits":[{"name":"Weekend","description":"relaxed","item_ids":[1,2,99],"occasion":"weekend","reasoning":"comfortable"}]}`

	_, err := parseOutfits(raw, testItems(), Request{Occasion: "weekend"}, failOnViolation)
	var violation *ClosedVocabularyError
	require.ErrorAs(t, err, &violation)
	assert.Equal(t, []uint{99}, violation.UnknownIDs)
}

func TestParseOutfitsUnknownIDDropPolicyKeepsRest(t *testing.T) {
	raw := `{"outfits":[
		{"name":"Good","description":"ok","item_ids":[1,2],"occasion":"weekend","reasoning":"fits"},
		{"name":"Bad","description":"hallucinated","item_ids":[1,2,99],"occasion":"weekend","reasoning":"no"}
	]}`

	outfits, err := parseOutfits(raw, testItems(), Request{Occasion: "weekend"}, dropOnViolation)
	require.NoError(t, err)
	require.Len(t, outfits, 1)
	assert.Equal(t, "Good", outfits[0].Name)
}

func TestParseOutfitsAllDroppedMeansNoValidOutfits(t *testing.T) {
	raw := `{"outfits":[{"name":"Bad","description":"hallucinated","item_ids":[99],"occasion":"weekend","reasoning":"no"}]}`

	_, err := parseOutfits(raw, testItems(), Request{Occasion: "weekend"}, dropOnViolation)
	assert.ErrorIs(t, err, ErrNoValidOutfits)
}

func TestParseOutfitsMissingRequiredFields(t *testing.T) {
	noName := `{"outfits":[{"name":"","description":"x","item_ids":[1],"occasion":"casual","reasoning":"r"}]}`
	_, err := parseOutfits(noName, testItems(), Request{Occasion: "casual"}, failOnViolation)
	var malformed *MalformedResponseError
	assert.ErrorAs(t, err, &malformed)

	noItems := `{"outfits":[{"name":"Empty","description":"x","item_ids":[],"occasion":"casual","reasoning":"r"}]}`
	_, err = parseOutfits(noItems, testItems(), Request{Occasion: "casual"}, failOnViolation)
	assert.ErrorAs(t, err, &malformed)
}

func TestParseOutfitsNotJSON(t *testing.T) {
	_, err := parseOutfits("Sure! Here are some outfits for you.", testItems(), Request{Occasion: "casual"}, failOnViolation)
	var malformed *MalformedResponseError
	require.ErrorAs(t, err, &malformed)
	assert.NotEmpty(t, malformed.RawSummary())
}

func TestParseOutfitsMissingEnvelope(t *testing.T) {
	_, err := parseOutfits(`{"results":[]}`, testItems(), Request{Occasion: "casual"}, failOnViolation)
	var malformed *MalformedResponseError
	assert.ErrorAs(t, err, &malformed)
}

func TestParseOutfitsStripsMarkdownFences(t *testing.T) {
	raw := "```json\n{\"outfits\":[{\"name\":\"Fenced\",\"description\":\"d\",\"item_ids\":[1],\"occasion\":\"casual\",\"reasoning\":\"r\"}]}\n```"

	outfits, err := parseOutfits(raw, testItems(), Request{Occasion: "casual"}, failOnViolation)
	require.NoError(t, err)
	assert.Equal(t, "Fenced", outfits[0].Name)
}

func TestParseOutfitsNormalizesFromRequest(t *testing.T) {
	raw := `{"outfits":[{"name":"Sparse","description":"d","item_ids":[2,3],"occasion":"","reasoning":"r"}]}`
	req := Request{Occasion: "work", Season: "autumn", Mood: "calm"}

	outfits, err := parseOutfits(raw, testItems(), req, failOnViolation)
	require.NoError(t, err)
	assert.Equal(t, "work", outfits[0].Occasion)
	assert.Equal(t, "autumn", outfits[0].Season)
	assert.Equal(t, "calm", outfits[0].Mood)
	assert.NotNil(t, outfits[0].Tags)
	assert.Empty(t, outfits[0].Tags)
}
