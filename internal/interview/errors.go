package interview

import (
	"errors"
	"fmt"

	"github.com/mockinsight/interview-service/internal/models"
)

var (
	// ErrMissingInformation is returned when a form submission lacks a required field.
	ErrMissingInformation = errors.New("please fill in all required fields")
	// ErrAnswerRequired is returned by Next when the current answer is blank.
	ErrAnswerRequired = errors.New("please provide an answer before proceeding")
	// ErrInvalidTransition is returned when an action is not allowed in the current state.
	ErrInvalidTransition = errors.New("invalid flow transition")
	// ErrNoInterview is returned when the interview has not been started.
	ErrNoInterview = errors.New("interview has not been started")
	// ErrNoAnswers is returned when results are requested without answers.
	ErrNoAnswers = errors.New("no answers to evaluate")
)

// TransitionError describes a rejected state change.
type TransitionError struct {
	From   models.FlowState
	Action string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%s: cannot %s from %s", ErrInvalidTransition, e.Action, e.From)
}

func (e *TransitionError) Unwrap() error {
	return ErrInvalidTransition
}
