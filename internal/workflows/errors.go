package workflows

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/jonathan/yassu-studio/internal/types"
)

// IdeaNotFoundError is returned when the idea to plan does not exist. No run is created.
type IdeaNotFoundError struct {
	IdeaID uuid.UUID
}

func (e *IdeaNotFoundError) Error() string {
	return fmt.Sprintf("idea %s not found", e.IdeaID)
}

// LoadError wraps a failure to load the idea before a run exists.
type LoadError struct {
	IdeaID uuid.UUID
	Cause  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load idea %s: %v", e.IdeaID, e.Cause)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}

// UnknownWorkflowError is returned for a workflow type outside the fixed set.
type UnknownWorkflowError struct {
	Type types.WorkflowType
}

func (e *UnknownWorkflowError) Error() string {
	return fmt.Sprintf("unknown workflow type: %s", e.Type)
}

// WorkflowError wraps a failed single-workflow run.
type WorkflowError struct {
	Type  types.WorkflowType
	Cause error
}

func (e *WorkflowError) Error() string {
	return fmt.Sprintf("workflow %s failed: %v", e.Type, e.Cause)
}

func (e *WorkflowError) Unwrap() error {
	return e.Cause
}
