package roadmap

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/career-pilot/internal/llm"
	"github.com/jonathan/career-pilot/internal/types"
)

// fakeLLM returns canned responses and records call counts.
type fakeLLM struct {
	response string
	err      error
	calls    int
}

func (f *fakeLLM) GenerateJSON(_ context.Context, _ string, _ llm.ModelTier) (string, error) {
	f.calls++
	return f.response, f.err
}

func (f *fakeLLM) GenerateChat(_ context.Context, _ []llm.Message, _ llm.ModelTier) (string, error) {
	return "", errors.New("not implemented")
}

func (f *fakeLLM) Close() error { return nil }

func TestGenerateParsesBareArray(t *testing.T) {
	client := &fakeLLM{response: `[
		{"id":"t1","title":"Learn Python","description":"Basics","status":"not_started","difficulty":"easy",
		 "subtasks":[{"id":"s1","label":"Install Python","done":false}]}
	]`}
	gen := NewGenerator(client)

	tasks, err := gen.Generate(context.Background(), GenerationAttrs{BroadField: "Technology"})
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "Learn Python", tasks[0].Title)
	assert.Equal(t, "Install Python", tasks[0].Subtasks[0].Label)
}

func TestGenerateParsesTasksEnvelope(t *testing.T) {
	client := &fakeLLM{response: `{"tasks":[{"id":"t1","title":"Build a portfolio","description":"x","subtasks":[]}]}`}
	gen := NewGenerator(client)

	tasks, err := gen.Generate(context.Background(), GenerationAttrs{})
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "Build a portfolio", tasks[0].Title)
}

func TestGenerateNormalizesPartialTasks(t *testing.T) {
	client := &fakeLLM{response: `[
		{"subtasks":[{"done":true},{"label":"Read a book"}]},
		{"title":"Networking","status":"bogus","difficulty":"impossible"}
	]`}
	gen := NewGenerator(client)

	tasks, err := gen.Generate(context.Background(), GenerationAttrs{})
	require.NoError(t, err)
	require.Len(t, tasks, 2)

	first := tasks[0]
	assert.Equal(t, "task-0", first.ID)
	assert.Equal(t, "Untitled Task", first.Title)
	assert.Equal(t, "No description provided", first.Description)
	assert.Equal(t, types.StatusNotStarted, first.Status)
	assert.Equal(t, types.DifficultyMedium, first.Difficulty)
	require.Len(t, first.Subtasks, 2)
	assert.Equal(t, "subtask-0-0", first.Subtasks[0].ID)
	assert.Equal(t, "Untitled Subtask", first.Subtasks[0].Label)
	assert.False(t, first.Subtasks[0].Done, "model-claimed completion is discarded")
	assert.Equal(t, "subtask-0-1", first.Subtasks[1].ID)
	assert.Equal(t, "Read a book", first.Subtasks[1].Label)

	second := tasks[1]
	assert.Equal(t, "task-1", second.ID)
	assert.Equal(t, "Networking", second.Title)
	assert.Equal(t, types.StatusNotStarted, second.Status)
	assert.Equal(t, types.DifficultyMedium, second.Difficulty)
}

func TestGenerateWrapsModelFailure(t *testing.T) {
	client := &fakeLLM{err: errors.New("rate limited")}
	gen := NewGenerator(client)

	_, err := gen.Generate(context.Background(), GenerationAttrs{})
	var apiErr *APICallError
	require.ErrorAs(t, err, &apiErr)
}

func TestGenerateRejectsNonTaskJSON(t *testing.T) {
	tests := []struct {
		name     string
		response string
	}{
		{"prose", "I cannot help with that."},
		{"object without tasks", `{"items":[]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := NewGenerator(&fakeLLM{response: tt.response})
			_, err := gen.Generate(context.Background(), GenerationAttrs{})
			var parseErr *ParseError
			require.ErrorAs(t, err, &parseErr)
		})
	}
}

func TestTruncateForDisplay(t *testing.T) {
	subtasks := make([]types.Subtask, 8)
	for i := range subtasks {
		subtasks[i] = types.Subtask{ID: string(rune('a' + i))}
	}
	tasks := []types.RoadmapItem{{ID: "t1", Subtasks: subtasks}, {ID: "t2"}}

	display := TruncateForDisplay(tasks, 5)
	assert.Len(t, display[0].Subtasks, 5)
	assert.Empty(t, display[1].Subtasks)
	assert.Len(t, tasks[0].Subtasks, 8, "source list untouched")
}
