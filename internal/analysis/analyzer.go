// Package analysis turns an uploaded resume into a structured evaluation.
package analysis

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/jonathan/career-pilot/internal/llm"
	"github.com/jonathan/career-pilot/internal/prompts"
	"github.com/jonathan/career-pilot/internal/schemas"
	"github.com/jonathan/career-pilot/internal/types"
)

const (
	// DocxMIME is the only accepted upload content type.
	DocxMIME = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	// MaxUploadBytes caps resume uploads at 5MB.
	MaxUploadBytes = 5 << 20

	// minExtractedChars is the threshold below which extraction is treated as
	// failed rather than analyzing noise.
	minExtractedChars = 20
	// maxPromptChars bounds how much resume text goes into the prompt.
	maxPromptChars = 12000
)

// Analyzer runs the resume pipeline: validate the upload, extract text, ask
// the model for the structured evaluation, and check the result.
type Analyzer struct {
	client llm.Client

	// extract is swappable in tests so the pipeline can run without real
	// DOCX fixtures.
	extract func(data []byte) (string, error)
}

// NewAnalyzer creates an analyzer using the given LLM client.
func NewAnalyzer(client llm.Client) *Analyzer {
	return &Analyzer{client: client, extract: extractDocxText}
}

// Analyze validates and processes one uploaded resume.
func (a *Analyzer) Analyze(ctx context.Context, filename, contentType string, data []byte) (*types.ResumeAnalysis, error) {
	if contentType != DocxMIME {
		return nil, &UnsupportedFileError{ContentType: contentType}
	}
	if int64(len(data)) > MaxUploadBytes {
		return nil, &FileTooLargeError{Size: int64(len(data)), Max: MaxUploadBytes}
	}

	text, err := a.extract(data)
	if err != nil {
		return nil, &ExtractionError{Cause: err}
	}
	text = strings.TrimSpace(text)
	if len(text) < minExtractedChars {
		return nil, &ExtractionError{}
	}
	if len(text) > maxPromptChars {
		text = text[:maxPromptChars]
	}

	template := prompts.MustGet("analysis.json", "analyze-resume")
	prompt := prompts.Format(template, map[string]string{"ResumeText": text})

	raw, err := a.client.GenerateJSON(ctx, prompt, llm.TierStandard)
	if err != nil {
		return nil, &APICallError{Message: "model call failed", Cause: err}
	}

	if err := schemas.Validate("resume_analysis", []byte(raw)); err != nil {
		return nil, &ParseError{Message: "response does not match the analysis schema", Cause: err}
	}

	var result types.ResumeAnalysis
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return nil, &ParseError{Message: "response is not valid JSON", Cause: err}
	}

	normalizeTopSkills(&result)
	if err := result.Validate(); err != nil {
		return nil, &ParseError{Message: "analysis failed invariant checks", Cause: err}
	}
	return &result, nil
}

// normalizeTopSkills rescales the skill percentages to sum to exactly 100,
// assigning rounding remainder to the largest slice. Models frequently return
// values summing to 99 or 101.
func normalizeTopSkills(a *types.ResumeAnalysis) {
	total := a.TopSkillsTotal()
	if total == 0 || total == 100 || len(a.TopSkills) == 0 {
		return
	}

	scaled := 0
	largest := 0
	for i := range a.TopSkills {
		v := a.TopSkills[i].Value * 100 / total
		a.TopSkills[i].Value = v
		scaled += v
		if v > a.TopSkills[largest].Value {
			largest = i
		}
	}
	a.TopSkills[largest].Value += 100 - scaled
}
