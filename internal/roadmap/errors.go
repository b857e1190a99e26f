// Package roadmap generates and manages the user's learning roadmap.
package roadmap

import "fmt"

// APICallError represents a failure calling the model provider.
type APICallError struct {
	Message string
	Cause   error
}

func (e *APICallError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("roadmap generation failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("roadmap generation failed: %s", e.Message)
}

func (e *APICallError) Unwrap() error { return e.Cause }

// ParseError represents model output that could not be decoded into tasks.
type ParseError struct {
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to parse roadmap response: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to parse roadmap response: %s", e.Message)
}

func (e *ParseError) Unwrap() error { return e.Cause }

// NotFoundError indicates a toggle addressed a task or subtask that does not
// exist on the board.
type NotFoundError struct {
	TaskID    string
	SubtaskID string
}

func (e *NotFoundError) Error() string {
	if e.SubtaskID != "" {
		return fmt.Sprintf("subtask %s not found in task %s", e.SubtaskID, e.TaskID)
	}
	return fmt.Sprintf("task %s not found", e.TaskID)
}
