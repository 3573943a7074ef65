package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/yassu-studio/internal/llm"
	"github.com/jonathan/yassu-studio/internal/matching"
	"github.com/jonathan/yassu-studio/internal/refinement"
	"github.com/jonathan/yassu-studio/internal/workflows"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrNotFound indicates a missing resource
type ErrNotFound struct {
	Resource string
	ID       string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		reqErr        *ErrValidation
		validatorErrs validator.ValidationErrors
		refineInput   *refinement.ValidationError
		matchInput    *matching.ValidationError
		notFound      *ErrNotFound
		ideaNotFound  *workflows.IdeaNotFoundError
		unknownFlow   *workflows.UnknownWorkflowError
		refineFailed  *refinement.RefinementError
	)

	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &reqErr), errors.As(err, &validatorErrs),
		errors.As(err, &refineInput), errors.As(err, &matchInput), errors.As(err, &unknownFlow):
		return http.StatusBadRequest
	case errors.As(err, &notFound), errors.As(err, &ideaNotFound):
		return http.StatusNotFound
	}

	switch llm.KindOf(err) {
	case llm.FailureRateLimited:
		return http.StatusTooManyRequests
	case llm.FailureQuotaExceeded:
		return http.StatusPaymentRequired
	case llm.FailureUnavailable, llm.FailureMalformed:
		return http.StatusBadGateway
	}

	if errors.As(err, &refineFailed) {
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}
