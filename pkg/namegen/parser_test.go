package namegen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCandidatesPlainJSON(t *testing.T) {
	raw := `[
		{"name": "Ash", "summary": "An English nature name referring to the ash tree."},
		{"name": "Rowan", "meaning": "little red one", "origin": "Gaelic"}
	]`

	candidates, err := ParseCandidates(raw)
	require.NoError(t, err)
	require.Len(t, candidates, 2)

	assert.Equal(t, "Ash", candidates[0].Name)
	// summary folds into meaning for the older response shape
	assert.Equal(t, "An English nature name referring to the ash tree.", candidates[0].Meaning)
	assert.Equal(t, "Gaelic", candidates[1].Origin)
}

func TestParseCandidatesStripsCodeFences(t *testing.T) {
	raw := "```json\n[{\"name\": \"Ivy\", \"summary\": \"A climbing evergreen plant.\"}]\n```"

	candidates, err := ParseCandidates(raw)
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, "Ivy", candidates[0].Name)
}

func TestParseCandidatesRejectsMalformedOutput(t *testing.T) {
	cases := map[string]string{
		"prose instead of JSON": "Here are some lovely names for you!",
		"truncated array":       `[{"name": "Ash", "summ`,
		"empty response":        "",
		"empty fences":          "```json\n```",
		"object not array":      `{"name": "Ash"}`,
		"empty array":           `[]`,
		"nameless candidate":    `[{"summary": "a name with no name"}]`,
		"whitespace name":       `[{"name": "   "}]`,
	}

	for label, raw := range cases {
		t.Run(label, func(t *testing.T) {
			_, err := ParseCandidates(raw)
			assert.Error(t, err)
		})
	}
}

func TestWordCount(t *testing.T) {
	assert.Equal(t, 0, WordCount(""))
	assert.Equal(t, 0, WordCount("   \n\t"))
	assert.Equal(t, 5, WordCount("a short five word sentence"))
}
