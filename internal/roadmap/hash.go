package roadmap

import "encoding/json"

// GenerationAttrs are the profile fields that drive roadmap generation. Two
// profiles with equal attrs produce the same cache key, so editing any of
// these fields invalidates the cached roadmap while unrelated profile edits
// do not.
type GenerationAttrs struct {
	EducationLevel  string   `json:"educationLevel"`
	Interests       []string `json:"interests"`
	Strengths       []string `json:"strengths"`
	WorkPreferences []string `json:"workPreferences"`
	BroadField      string   `json:"broadField"`
	SpecificRole    string   `json:"specificRole"`
}

// ProfileHash returns the deterministic cache key for the attrs. Struct
// fields marshal in declaration order, so equal attrs always produce equal
// keys.
func ProfileHash(attrs GenerationAttrs) string {
	data, err := json.Marshal(attrs)
	if err != nil {
		// Marshal of plain strings and slices cannot fail.
		return ""
	}
	return string(data)
}
