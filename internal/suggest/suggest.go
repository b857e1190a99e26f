// Package suggest fetches field and role suggestions for the onboarding flow.
package suggest

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"golang.org/x/sync/singleflight"

	"github.com/jonathan/career-pilot/internal/llm"
	"github.com/jonathan/career-pilot/internal/prompts"
)

// Input is the profile context a suggestion request is built from. When
// SelectedField is set, only roles scoped to that field are requested.
type Input struct {
	EducationLevel  string   `json:"educationLevel"`
	Interests       []string `json:"interests"`
	Strengths       []string `json:"strengths"`
	WorkPreferences []string `json:"workPreferences"`
	SelectedField   string   `json:"selectedField,omitempty"`
}

// Suggestions is the model's answer. Fields is empty for field-scoped
// requests.
type Suggestions struct {
	Fields []string `json:"fields"`
	Roles  []string `json:"roles"`
}

// APICallError represents a failure calling the model provider.
type APICallError struct {
	Message string
	Cause   error
}

func (e *APICallError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("suggestion fetch failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("suggestion fetch failed: %s", e.Message)
}

func (e *APICallError) Unwrap() error { return e.Cause }

// ParseError represents model output that could not be decoded.
type ParseError struct {
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to parse suggestion response: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to parse suggestion response: %s", e.Message)
}

func (e *ParseError) Unwrap() error { return e.Cause }

// Client fetches suggestions, collapsing concurrent requests for identical
// input into a single model call.
type Client struct {
	llm   llm.Client
	group singleflight.Group
}

// NewClient creates a suggestion client over the given LLM client.
func NewClient(llmClient llm.Client) *Client {
	return &Client{llm: llmClient}
}

// Suggest returns field and role suggestions for the input. Concurrent calls
// with equal input share one in-flight model request.
func (c *Client) Suggest(ctx context.Context, input Input) (Suggestions, error) {
	result, err, _ := c.group.Do(Key(input), func() (any, error) {
		return c.fetch(ctx, input)
	})
	if err != nil {
		return Suggestions{}, err
	}
	return result.(Suggestions), nil
}

func (c *Client) fetch(ctx context.Context, input Input) (Suggestions, error) {
	data := map[string]string{
		"EducationLevel":  orUnspecified(input.EducationLevel),
		"Interests":       joinOrUnspecified(input.Interests),
		"Strengths":       joinOrUnspecified(input.Strengths),
		"WorkPreferences": joinOrUnspecified(input.WorkPreferences),
	}

	key := "fields-and-roles"
	if input.SelectedField != "" {
		key = "roles-for-field"
		data["SelectedField"] = input.SelectedField
	}
	prompt := prompts.Format(prompts.MustGet("suggest.json", key), data)

	raw, err := c.llm.GenerateJSON(ctx, prompt, llm.TierLite)
	if err != nil {
		return Suggestions{}, &APICallError{Message: "model call failed", Cause: err}
	}

	var out Suggestions
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return Suggestions{}, &ParseError{Message: "response is not a suggestions object", Cause: err}
	}
	if input.SelectedField != "" {
		out.Fields = nil
	}
	return out, nil
}

// Key is the deduplication key for an input. Struct fields marshal in
// declaration order, so equal inputs always collapse.
func Key(input Input) string {
	data, err := json.Marshal(input)
	if err != nil {
		return ""
	}
	return string(data)
}

func orUnspecified(s string) string {
	if strings.TrimSpace(s) == "" {
		return "Not specified"
	}
	return s
}

func joinOrUnspecified(values []string) string {
	if len(values) == 0 {
		return "Not specified"
	}
	return strings.Join(values, ", ")
}
