package utils

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound            = errors.New("resource not found")
	ErrInvalidInput        = errors.New("invalid input")
	ErrInternalServer      = errors.New("internal server error")
	ErrInvalidArgument     = errors.New("invalid argument")
	ErrInsufficientHistory = errors.New("insufficient match history")
	ErrScoringFailed       = errors.New("scoring model call failed")
	ErrScoringTimeout      = errors.New("scoring model call timed out")
)

type AppError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

func NewAppError(code string, message string, details ...string) *AppError {
	err := &AppError{
		Code:    code,
		Message: message,
	}
	if len(details) > 0 {
		err.Details = details[0]
	}
	return err
}

func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s - %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Common error codes
const (
	ErrCodeValidation          = "VALIDATION_ERROR"
	ErrCodeNotFound            = "NOT_FOUND"
	ErrCodeInternal            = "INTERNAL_ERROR"
	ErrCodeInvalidArgument     = "INVALID_ARGUMENT"
	ErrCodeNoFixtures          = "NO_FIXTURES_FOR_GAMEWEEK"
	ErrCodeInsufficientHistory = "INSUFFICIENT_HISTORY"
	ErrCodeScoringFailure      = "SCORING_FAILURE"
	ErrCodeScoringTimeout      = "SCORING_TIMEOUT"
)
