package roadmap

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/career-pilot/internal/types"
)

func twoTaskBoard() *Board {
	return &Board{Tasks: []types.RoadmapItem{
		{ID: "t1", Title: "Learn SQL", Subtasks: []types.Subtask{
			{ID: "s1", Label: "SELECT"},
			{ID: "s2", Label: "JOIN"},
		}},
		{ID: "t2", Title: "Build a project", Subtasks: []types.Subtask{
			{ID: "s3", Label: "Pick an idea"},
		}},
	}}
}

func TestToggleFlipsAndDerivesStatus(t *testing.T) {
	b := twoTaskBoard()

	res, err := b.Toggle("t1", "s1")
	require.NoError(t, err)
	assert.Equal(t, EventNone, res.Event)
	assert.True(t, b.Tasks[0].Subtasks[0].Done)
	assert.Equal(t, types.StatusInProgress, b.Tasks[0].Status)

	// Toggling back restores the original state.
	res, err = b.Toggle("t1", "s1")
	require.NoError(t, err)
	assert.Equal(t, EventNone, res.Event)
	assert.False(t, b.Tasks[0].Subtasks[0].Done)
	assert.Equal(t, types.StatusNotStarted, b.Tasks[0].Status)
}

func TestToggleTaskCompleteFiresWhenOthersRemain(t *testing.T) {
	b := twoTaskBoard()

	_, err := b.Toggle("t1", "s1")
	require.NoError(t, err)
	res, err := b.Toggle("t1", "s2")
	require.NoError(t, err)

	assert.Equal(t, EventTaskComplete, res.Event)
	assert.Equal(t, "Learn SQL", res.TaskTitle)
	assert.Equal(t, types.StatusDone, b.Tasks[0].Status)
}

func TestToggleAllDoneReplacesTaskComplete(t *testing.T) {
	b := twoTaskBoard()

	_, err := b.Toggle("t1", "s1")
	require.NoError(t, err)
	_, err = b.Toggle("t1", "s2")
	require.NoError(t, err)

	res, err := b.Toggle("t2", "s3")
	require.NoError(t, err)
	assert.Equal(t, EventAllDone, res.Event)
	assert.Empty(t, res.TaskTitle)
	assert.Equal(t, 100, res.Progress)
}

func TestToggleUnknownTargets(t *testing.T) {
	b := twoTaskBoard()

	_, err := b.Toggle("nope", "s1")
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)

	_, err = b.Toggle("t1", "nope")
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "t1", nf.TaskID)
}

func TestToggleLevelUpCrossesBandBoundary(t *testing.T) {
	// 7 archived subtask completions sit at the top of Skill Builder; the
	// 8th crosses into Aspiring Achiever.
	b := &Board{
		ArchivedCompleted: 7,
		ArchivedTotal:     9,
		Tasks: []types.RoadmapItem{
			{ID: "t1", Title: "Ship it", Subtasks: []types.Subtask{{ID: "s1"}}},
		},
	}

	res, err := b.Toggle("t1", "s1")
	require.NoError(t, err)
	assert.True(t, res.LevelUp)
	assert.Equal(t, "Aspiring Achiever", res.LevelTitle)
	assert.Equal(t, 5, res.Level)
}

func TestProgressCountsSubtasksAcrossArchive(t *testing.T) {
	b := twoTaskBoard()
	b.ArchivedCompleted = 1
	b.ArchivedTotal = 2

	// 1 of 5 subtasks done overall: 2 archived plus 3 current.
	assert.Equal(t, 20, b.Progress())

	_, err := b.Toggle("t2", "s3")
	require.NoError(t, err)
	assert.Equal(t, 40, b.Progress())

	_, err = b.Toggle("t1", "s1")
	require.NoError(t, err)
	assert.Equal(t, 60, b.Progress(), "a partially done task still moves progress")
}

func TestToggleLevelAndProgressCountSubtasks(t *testing.T) {
	b := &Board{}
	for i := 0; i < 3; i++ {
		task := types.RoadmapItem{ID: fmt.Sprintf("t%d", i)}
		for j := 0; j < 5; j++ {
			task.Subtasks = append(task.Subtasks, types.Subtask{ID: fmt.Sprintf("s%d-%d", i, j)})
		}
		b.Tasks = append(b.Tasks, task)
	}

	var res ToggleResult
	var err error
	for n := 0; n < 8; n++ {
		res, err = b.Toggle(fmt.Sprintf("t%d", n/5), fmt.Sprintf("s%d-%d", n/5, n%5))
		require.NoError(t, err)
	}

	// The 8th completed subtask of 15 crosses the 7->8 band boundary.
	assert.True(t, res.LevelUp)
	assert.Equal(t, 5, res.Level)
	assert.Equal(t, "Aspiring Achiever", res.LevelTitle)
	assert.Equal(t, 53, res.Progress)
}

func TestProgressEmptyBoardIsZero(t *testing.T) {
	b := &Board{}
	assert.Equal(t, 0, b.Progress())
}

func TestReplaceArchivesOutgoingRoadmap(t *testing.T) {
	b := twoTaskBoard()
	_, err := b.Toggle("t2", "s3")
	require.NoError(t, err)

	fresh := []types.RoadmapItem{{ID: "t3", Subtasks: []types.Subtask{{ID: "s4"}}}}
	b.Replace(fresh)

	assert.Equal(t, 1, b.ArchivedCompleted)
	assert.Equal(t, 3, b.ArchivedTotal)
	assert.Equal(t, "t3", b.Tasks[0].ID)
	// 1 of 4 subtasks done overall.
	assert.Equal(t, 25, b.Progress())
}

func TestLevelBands(t *testing.T) {
	tests := []struct {
		completed int
		title     string
	}{
		{0, "Newcomer"},
		{1, "Newcomer"},
		{2, "Beginner Explorer"},
		{7, "Skill Builder"},
		{8, "Aspiring Achiever"},
		{17, "Visionary"},
		{18, "Legend"},
		{40, "Legend"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.title, LevelTitle(tt.completed), "completed=%d", tt.completed)
	}
}
