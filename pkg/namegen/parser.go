package namegen

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Candidate is one generated name suggestion.
type Candidate struct {
	Name    string `json:"name"`
	Summary string `json:"summary"`
	Meaning string `json:"meaning"`
	Origin  string `json:"origin"`
}

// stripFences removes a surrounding markdown code fence, the one formatting
// quirk models add despite raw-JSON instructions. Anything else must parse
// as-is or fail.
func stripFences(raw string) []byte {
	b := bytes.TrimSpace([]byte(raw))
	b = bytes.TrimPrefix(b, []byte("```json"))
	b = bytes.TrimPrefix(b, []byte("```"))
	b = bytes.TrimSuffix(b, []byte("```"))
	return bytes.TrimSpace(b)
}

// ParseCandidates enforces the parse-or-fail contract at the text-generator
// boundary: the response must be a JSON array of candidates with non-empty
// names, or the whole response is rejected. Malformed collaborator output
// never propagates into the store.
func ParseCandidates(raw string) ([]Candidate, error) {
	cleaned := stripFences(raw)
	if len(cleaned) == 0 {
		return nil, fmt.Errorf("empty generator response")
	}

	var candidates []Candidate
	if err := json.Unmarshal(cleaned, &candidates); err != nil {
		return nil, fmt.Errorf("generator response is not a JSON array: %w", err)
	}
	if len(candidates) == 0 {
		return nil, fmt.Errorf("generator returned no candidates")
	}

	for i := range candidates {
		candidates[i].Name = strings.TrimSpace(candidates[i].Name)
		if candidates[i].Name == "" {
			return nil, fmt.Errorf("candidate %d has no name", i)
		}
		// Older prompt versions returned a single summary line instead of
		// split meaning/origin.
		if candidates[i].Meaning == "" && candidates[i].Summary != "" {
			candidates[i].Meaning = candidates[i].Summary
		}
	}
	return candidates, nil
}

// WordCount reports prose length for the short-response guard.
func WordCount(text string) int {
	return len(strings.Fields(text))
}
