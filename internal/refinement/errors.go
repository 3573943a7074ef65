package refinement

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/yassu-studio/internal/types"
)

// ValidationError reports an unusable refinement request.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error in %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// validateInput runs the request's validation tags and reports the first failure.
func validateInput(input types.RawIdeaInput) error {
	err := input.Validate()
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return &ValidationError{Message: err.Error()}
	}

	fe := fieldErrs[0]
	switch {
	case fe.Field() == "RawIdea" && fe.Tag() == "required":
		return &ValidationError{Field: "raw_idea", Message: "raw idea is required"}
	case fe.Field() == "RawIdea":
		return &ValidationError{Field: "raw_idea", Message: fmt.Sprintf("raw idea must be at most %s characters", fe.Param())}
	case fe.Field() == "Clarifications":
		return &ValidationError{Field: "clarifications", Message: fmt.Sprintf("at most %s clarifications are allowed", fe.Param())}
	}
	return &ValidationError{Field: fe.Field(), Message: fe.Error()}
}

// RefinementError is returned when the final refinement call fails or its output is unusable.
// The caller is expected to retry.
type RefinementError struct {
	Message string
	Cause   error
}

func (e *RefinementError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("idea refinement failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("idea refinement failed: %s", e.Message)
}

func (e *RefinementError) Unwrap() error {
	return e.Cause
}
