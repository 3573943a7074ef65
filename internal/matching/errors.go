package matching

import "fmt"

// ValidationError reports unusable matching input.
type ValidationError struct {
	Message string
	Cause   error
}

func (e *ValidationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid matching needs: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("invalid matching needs: %s", e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Cause
}
