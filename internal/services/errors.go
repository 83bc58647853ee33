package services

import (
	"errors"

	apperrors "github.com/mockinsight/interview-service/internal/errors"
	"github.com/mockinsight/interview-service/internal/interview"
	"github.com/mockinsight/interview-service/internal/scoring"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrResultsNotReady = errors.New("results are available once the interview is completed")
	ErrEmptyPosition   = errors.New("job position is required")
)

type ValidationErrors = apperrors.ValidationErrors

// IsNotFound checks if error represents a "not found" condition
func IsNotFound(err error) bool {
	return errors.Is(err, ErrSessionNotFound)
}

// IsValidation checks if error represents user input the flow rejected
func IsValidation(err error) bool {
	if errors.Is(err, interview.ErrMissingInformation) ||
		errors.Is(err, interview.ErrAnswerRequired) ||
		errors.Is(err, ErrEmptyPosition) {
		return true
	}
	var ve apperrors.ValidationErrors
	return errors.As(err, &ve)
}

// IsConflict checks if error represents an action the current flow state does not allow
func IsConflict(err error) bool {
	return errors.Is(err, interview.ErrInvalidTransition) ||
		errors.Is(err, interview.ErrNoInterview) ||
		errors.Is(err, interview.ErrNoAnswers) ||
		errors.Is(err, ErrResultsNotReady) ||
		errors.Is(err, scoring.ErrNoAnswers)
}
