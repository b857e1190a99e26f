package roadmap

import (
	"math"

	"github.com/jonathan/career-pilot/internal/types"
)

// ToggleEvent classifies what a subtask toggle caused.
type ToggleEvent string

// Toggle event constants
const (
	// EventNone means the toggle changed a checkbox and nothing else.
	EventNone ToggleEvent = "none"
	// EventTaskComplete means the toggle finished a task while others remain.
	EventTaskComplete ToggleEvent = "task_complete"
	// EventAllDone means the toggle finished the final remaining task.
	EventAllDone ToggleEvent = "all_done"
)

// ToggleResult reports the outcome of a subtask toggle.
type ToggleResult struct {
	Event      ToggleEvent `json:"event"`
	TaskTitle  string      `json:"taskTitle,omitempty"`
	LevelUp    bool        `json:"levelUp"`
	Level      int         `json:"level"`
	LevelTitle string      `json:"levelTitle"`
	Progress   int         `json:"progress"`
}

// Board is the mutable roadmap state: the current task list plus subtask
// counts archived from roadmaps that were replaced by regeneration.
type Board struct {
	Tasks             []types.RoadmapItem
	ArchivedCompleted int
	ArchivedTotal     int
}

// CompletedTasks counts the current tasks whose subtasks are all done. Used
// for toggle events; progress and level count subtasks, not tasks.
func (b *Board) CompletedTasks() int {
	n := 0
	for i := range b.Tasks {
		if b.Tasks[i].AllDone() {
			n++
		}
	}
	return n
}

// CompletedSubtasks counts the done subtasks across the current tasks.
func (b *Board) CompletedSubtasks() int {
	n := 0
	for i := range b.Tasks {
		n += b.Tasks[i].DoneCount()
	}
	return n
}

func (b *Board) subtaskTotal() int {
	n := 0
	for i := range b.Tasks {
		n += len(b.Tasks[i].Subtasks)
	}
	return n
}

// totalCompleted includes archived completions, which drive the level.
func (b *Board) totalCompleted() int {
	return b.ArchivedCompleted + b.CompletedSubtasks()
}

// Progress returns the overall completion percentage across archived and
// current subtasks, rounded to the nearest integer. An empty board is 0.
func (b *Board) Progress() int {
	total := b.ArchivedTotal + b.subtaskTotal()
	if total == 0 {
		return 0
	}
	return int(math.Round(100 * float64(b.totalCompleted()) / float64(total)))
}

// Toggle flips the named subtask and reports what the flip caused. A task
// completion fires task_complete unless it was the last incomplete task, in
// which case all_done fires instead; the two events never fire together.
func (b *Board) Toggle(taskID, subtaskID string) (ToggleResult, error) {
	taskIdx := -1
	for i := range b.Tasks {
		if b.Tasks[i].ID == taskID {
			taskIdx = i
			break
		}
	}
	if taskIdx == -1 {
		return ToggleResult{}, &NotFoundError{TaskID: taskID}
	}

	task := &b.Tasks[taskIdx]
	subIdx := -1
	for j := range task.Subtasks {
		if task.Subtasks[j].ID == subtaskID {
			subIdx = j
			break
		}
	}
	if subIdx == -1 {
		return ToggleResult{}, &NotFoundError{TaskID: taskID, SubtaskID: subtaskID}
	}

	prevLevel := Level(b.totalCompleted())
	wasDone := task.AllDone()

	task.Subtasks[subIdx].Done = !task.Subtasks[subIdx].Done
	task.Status = task.EffectiveStatus()

	completed := b.totalCompleted()
	result := ToggleResult{
		Event:      EventNone,
		Level:      Level(completed),
		LevelTitle: LevelTitle(completed),
		Progress:   b.Progress(),
	}
	result.LevelUp = result.Level > prevLevel

	if !wasDone && task.AllDone() {
		if b.CompletedTasks() == len(b.Tasks) {
			result.Event = EventAllDone
		} else {
			result.Event = EventTaskComplete
			result.TaskTitle = task.Title
		}
	}
	return result, nil
}

// Replace swaps in a freshly generated task list, folding the outgoing
// roadmap's subtask counts and completions into the archived totals so
// progress and level never move backwards on regeneration.
func (b *Board) Replace(tasks []types.RoadmapItem) {
	b.ArchivedCompleted += b.CompletedSubtasks()
	b.ArchivedTotal += b.subtaskTotal()
	b.Tasks = tasks
}
