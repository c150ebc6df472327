package task

import (
	"errors"
	"fmt"
)

var (
	// ErrTaskNotFound is returned for missing, soft-deleted, or non-owned tasks.
	ErrTaskNotFound = errors.New("task not found")
	// ErrSubTaskNotFound is returned when a subtask does not exist.
	ErrSubTaskNotFound = errors.New("subtask not found")
	// ErrForbidden is returned when the requesting user lacks access.
	ErrForbidden = errors.New("not authorized")
	// ErrTitleRequired is returned when a task or subtask is created without a title.
	ErrTitleRequired = errors.New("title is required")
	// ErrDescriptionRequired is returned when subtask generation is requested
	// for a task without a description.
	ErrDescriptionRequired = errors.New("description is required")
)

// InvalidTransitionError reports a status edge rejected by the workflow.
type InvalidTransitionError struct {
	From Status
	To   Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid status transition: %s → %s", e.From, e.To)
}
