package mcp

import (
	"errors"
	"fmt"

	"github.com/rpggio/cloneai/internal/coordinator"
	"github.com/rpggio/cloneai/internal/domain/activity"
	"github.com/rpggio/cloneai/internal/domain/project"
)

// APIError represents an MCP tool error.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// MapError maps domain errors to MCP error codes. Unknown errors map to nil.
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, project.ErrProjectNotFound):
		return &APIError{Code: "PROJECT_NOT_FOUND", Message: "project not found", RecoveryHint: "Call list_projects for valid ids"}
	case errors.Is(err, coordinator.ErrEmptyRequest):
		return &APIError{Code: "EMPTY_REQUEST", Message: err.Error(), RecoveryHint: "Pass a description, url or image_url"}
	case errors.Is(err, coordinator.ErrCloneInFlight):
		return &APIError{Code: "CLONE_IN_FLIGHT", Message: err.Error(), RecoveryHint: "Wait for get_state to leave analyzing"}
	case errors.Is(err, coordinator.ErrCloneFailed):
		return &APIError{Code: "CLONE_FAILED", Message: coordinator.FailureMessage}
	case errors.Is(err, activity.ErrInvalidInput), errors.Is(err, project.ErrInvalidInput):
		return &APIError{Code: "INVALID_INPUT", Message: err.Error()}
	case errors.Is(err, ErrUnauthorized):
		return &APIError{Code: "UNAUTHORIZED", Message: "unauthorized"}
	default:
		return nil
	}
}

func mapError(err error) error {
	if apiErr := MapError(err); apiErr != nil {
		return apiErr
	}
	return err
}
