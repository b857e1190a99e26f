package roadmap

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jonathan/career-pilot/internal/llm"
	"github.com/jonathan/career-pilot/internal/prompts"
	"github.com/jonathan/career-pilot/internal/types"
)

// Generator produces roadmap tasks from profile attributes via the model.
type Generator struct {
	client llm.Client
}

// NewGenerator creates a generator using the given LLM client.
func NewGenerator(client llm.Client) *Generator {
	return &Generator{client: client}
}

// Generate asks the model for a roadmap tailored to the attrs and returns the
// normalized task list. Model output is accepted either as a bare task array
// or wrapped in a {"tasks": [...]} envelope.
func (g *Generator) Generate(ctx context.Context, attrs GenerationAttrs) ([]types.RoadmapItem, error) {
	template := prompts.MustGet("roadmap.json", "generate-tasks")
	prompt := prompts.Format(template, map[string]string{
		"EducationLevel":  orUnspecified(attrs.EducationLevel),
		"Interests":       joinOrUnspecified(attrs.Interests),
		"Strengths":       joinOrUnspecified(attrs.Strengths),
		"WorkPreferences": joinOrUnspecified(attrs.WorkPreferences),
		"BroadField":      orUnspecified(attrs.BroadField),
		"SpecificRole":    orUnspecified(attrs.SpecificRole),
	})

	raw, err := g.client.GenerateJSON(ctx, prompt, llm.TierStandard)
	if err != nil {
		return nil, &APICallError{Message: "model call failed", Cause: err}
	}

	tasks, err := parseTasks(raw)
	if err != nil {
		return nil, err
	}
	return normalizeTasks(tasks), nil
}

// parseTasks decodes the model output, tolerating both response shapes.
func parseTasks(raw string) ([]types.RoadmapItem, error) {
	var tasks []types.RoadmapItem
	if err := json.Unmarshal([]byte(raw), &tasks); err == nil {
		return tasks, nil
	}

	var envelope struct {
		Tasks []types.RoadmapItem `json:"tasks"`
	}
	if err := json.Unmarshal([]byte(raw), &envelope); err != nil {
		return nil, &ParseError{Message: "response is neither a task array nor a tasks object", Cause: err}
	}
	if envelope.Tasks == nil {
		return nil, &ParseError{Message: "response object has no tasks field"}
	}
	return envelope.Tasks, nil
}

// normalizeTasks fills in the fields the model is allowed to omit or mangle
// so downstream code never sees a partial task.
func normalizeTasks(tasks []types.RoadmapItem) []types.RoadmapItem {
	out := make([]types.RoadmapItem, len(tasks))
	for i, task := range tasks {
		if task.ID == "" {
			task.ID = fmt.Sprintf("task-%d", i)
		}
		if task.Title == "" {
			task.Title = "Untitled Task"
		}
		if task.Description == "" {
			task.Description = "No description provided"
		}
		switch task.Status {
		case types.StatusNotStarted, types.StatusInProgress, types.StatusDone:
		default:
			task.Status = types.StatusNotStarted
		}
		switch task.Difficulty {
		case types.DifficultyEasy, types.DifficultyMedium, types.DifficultyHard:
		default:
			task.Difficulty = types.DifficultyMedium
		}
		subtasks := make([]types.Subtask, len(task.Subtasks))
		for j, st := range task.Subtasks {
			if st.ID == "" {
				st.ID = fmt.Sprintf("subtask-%d-%d", i, j)
			}
			if st.Label == "" {
				st.Label = "Untitled Subtask"
			}
			// Fresh tasks start unchecked regardless of what the model claims.
			st.Done = false
			subtasks[j] = st
		}
		task.Subtasks = subtasks
		out[i] = task
	}
	return out
}

// TruncateForDisplay caps each task's subtask list at maxSubtasks for compact
// rendering. The stored tasks are left untouched.
func TruncateForDisplay(tasks []types.RoadmapItem, maxSubtasks int) []types.RoadmapItem {
	out := make([]types.RoadmapItem, len(tasks))
	for i, task := range tasks {
		if len(task.Subtasks) > maxSubtasks {
			task.Subtasks = task.Subtasks[:maxSubtasks]
		}
		out[i] = task
	}
	return out
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
