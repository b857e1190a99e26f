package schemas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const conformingAnalysis = `{
	"atsScore": 70,
	"topSkills": [{"name": "Go", "value": 100}],
	"resumeMetrics": [{"subject": "Impact", "A": 60, "fullMark": 100}],
	"suggestions": {
		"skillsToLearn": [{"title": "Kubernetes"}],
		"relevantCourses": [],
		"projectIdeas": [],
		"certifications": []
	}
}`

func TestValidateAcceptsConformingDocument(t *testing.T) {
	assert.NoError(t, Validate("resume_analysis", []byte(conformingAnalysis)))
}

func TestValidateRejectsMissingRequiredFields(t *testing.T) {
	err := Validate("resume_analysis", []byte(`{"atsScore": 70}`))
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.NotEmpty(t, verr.Errors)
}

func TestValidateRejectsOutOfRangeScore(t *testing.T) {
	doc := `{
		"atsScore": 140,
		"topSkills": [],
		"resumeMetrics": [],
		"suggestions": {"skillsToLearn": [], "relevantCourses": [], "projectIdeas": [], "certifications": []}
	}`
	err := Validate("resume_analysis", []byte(doc))
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestValidateUnknownSchema(t *testing.T) {
	err := Validate("no_such_schema", []byte(`{}`))
	var lerr *SchemaLoadError
	assert.ErrorAs(t, err, &lerr)
}
