package types

import "fmt"

// TaskStatus represents the lifecycle state of a roadmap task.
type TaskStatus string

// Task status constants
const (
	StatusNotStarted TaskStatus = "not_started"
	StatusInProgress TaskStatus = "in_progress"
	StatusDone       TaskStatus = "done"
)

// Difficulty represents the difficulty rating of a roadmap task.
type Difficulty string

// Difficulty constants
const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Subtask is a single checkable step within a roadmap task.
type Subtask struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Done  bool   `json:"done"`
}

// RoadmapItem is one generated roadmap task with its subtasks. The stored
// Status field reflects what the generator returned; done-ness is always
// derived from the subtasks via EffectiveStatus, never read back from Status.
type RoadmapItem struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      TaskStatus `json:"status"`
	Difficulty  Difficulty `json:"difficulty"`
	Subtasks    []Subtask  `json:"subtasks"`
}

// CloneRoadmapItems deep-copies a task list, including each task's subtasks,
// so the copy can be toggled without touching the original.
func CloneRoadmapItems(tasks []RoadmapItem) []RoadmapItem {
	if tasks == nil {
		return nil
	}
	out := make([]RoadmapItem, len(tasks))
	for i, task := range tasks {
		task.Subtasks = append([]Subtask(nil), task.Subtasks...)
		out[i] = task
	}
	return out
}

// DoneCount returns the number of completed subtasks.
func (t *RoadmapItem) DoneCount() int {
	n := 0
	for _, st := range t.Subtasks {
		if st.Done {
			n++
		}
	}
	return n
}

// AllDone reports whether every subtask is completed. A task with no subtasks
// is never considered done.
func (t *RoadmapItem) AllDone() bool {
	return len(t.Subtasks) > 0 && t.DoneCount() == len(t.Subtasks)
}

// EffectiveStatus derives the task status from subtask completion:
// none done is not_started, some done is in_progress, all done is done.
func (t *RoadmapItem) EffectiveStatus() TaskStatus {
	done := t.DoneCount()
	switch {
	case done == 0:
		return StatusNotStarted
	case done == len(t.Subtasks):
		return StatusDone
	default:
		return StatusInProgress
	}
}

// Validate checks structural invariants: non-empty id and unique subtask ids.
func (t *RoadmapItem) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("task id is required")
	}
	seen := make(map[string]bool, len(t.Subtasks))
	for _, st := range t.Subtasks {
		if st.ID == "" {
			return fmt.Errorf("task %s has a subtask with no id", t.ID)
		}
		if seen[st.ID] {
			return fmt.Errorf("task %s has duplicate subtask id %s", t.ID, st.ID)
		}
		seen[st.ID] = true
	}
	return nil
}
