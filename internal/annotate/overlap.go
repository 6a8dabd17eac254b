package annotate

import "strings"

// MeaningOverlap reports whether any vocabulary meaning occurs inside the
// dictionary gloss, ignoring case. An empty gloss never overlaps, and empty
// meanings are ignored rather than treated as universal substrings.
func MeaningOverlap(gloss string, meanings []string) bool {
	gloss = strings.ToLower(strings.TrimSpace(gloss))
	if gloss == "" {
		return false
	}
	for _, meaning := range meanings {
		meaning = strings.ToLower(strings.TrimSpace(meaning))
		if meaning == "" {
			continue
		}
		if strings.Contains(gloss, meaning) {
			return true
		}
	}
	return false
}
