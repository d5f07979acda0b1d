package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/openimpact/aia-engine/internal/scoring"
	"github.com/openimpact/aia-engine/internal/workflow"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrMalformedRequest indicates the request body could not be decoded
type ErrMalformedRequest struct {
	Cause error
}

func (e *ErrMalformedRequest) Error() string {
	return fmt.Sprintf("malformed request body: %v", e.Cause)
}

func (e *ErrMalformedRequest) Unwrap() error {
	return e.Cause
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		validationErr       *ErrValidation
		malformedErr        *ErrMalformedRequest
		notFoundErr         *workflow.SessionNotFoundError
		unknownTypeErr      *workflow.UnknownAssessmentTypeError
		stepInProgressErr   *workflow.StepInProgressError
		unknownQuestionErr  *scoring.UnknownQuestionError
		invalidSelectionErr *scoring.InvalidSelectionError
	)

	switch {
	case errors.As(err, &validationErr), errors.As(err, &malformedErr):
		return http.StatusBadRequest
	case errors.As(err, &unknownTypeErr):
		return http.StatusBadRequest
	case errors.As(err, &unknownQuestionErr), errors.As(err, &invalidSelectionErr):
		return http.StatusBadRequest
	case errors.As(err, &notFoundErr):
		return http.StatusNotFound
	case errors.As(err, &stepInProgressErr):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
