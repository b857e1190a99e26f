package prompts

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetKnownPrompts(t *testing.T) {
	tests := []struct {
		file string
		key  string
	}{
		{"roadmap.json", "generate-tasks"},
		{"analysis.json", "analyze-resume"},
		{"chat.json", "resume-system"},
		{"chat.json", "generic-system"},
		{"chat.json", "profile-block"},
		{"chat.json", "analysis-context"},
		{"suggest.json", "fields-and-roles"},
		{"suggest.json", "roles-for-field"},
	}
	for _, tt := range tests {
		prompt, err := Get(tt.file, tt.key)
		require.NoError(t, err, "%s/%s", tt.file, tt.key)
		assert.NotEmpty(t, prompt)
	}
}

func TestGetErrors(t *testing.T) {
	_, err := Get("missing.json", "key")
	assert.Error(t, err)

	_, err = Get("roadmap.json", "no-such-key")
	assert.Error(t, err)
}

func TestFormatReplacesPlaceholders(t *testing.T) {
	out := Format("Hello {{.Name}}, field: {{.Field}}", map[string]string{
		"Name":  "Ada",
		"Field": "Technology",
	})
	assert.Equal(t, "Hello Ada, field: Technology", out)
}

func TestRoadmapPromptPlaceholdersResolve(t *testing.T) {
	template := MustGet("roadmap.json", "generate-tasks")
	out := Format(template, map[string]string{
		"EducationLevel":  "High School",
		"Interests":       "music",
		"Strengths":       "patience",
		"WorkPreferences": "remote",
		"BroadField":      "Technology",
		"SpecificRole":    "Developer",
	})
	assert.False(t, strings.Contains(out, "{{."), "all placeholders should be substituted")
}
