package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"testing"
	"time"

	apperrors "github.com/mockinsight/interview-service/internal/errors"
	"github.com/mockinsight/interview-service/internal/interview"
	"github.com/mockinsight/interview-service/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestErrorClassification(t *testing.T) {
	transition := &interview.TransitionError{From: models.StateLanding, Action: "restart"}
	validation := fmt.Errorf("%w: %w", interview.ErrMissingInformation,
		apperrors.ValidationErrors{*apperrors.NewValidationError("job_position", "is required", "")})

	tests := []struct {
		name       string
		err        error
		notFound   bool
		validation bool
		conflict   bool
	}{
		{"session not found", fmt.Errorf("lookup: %w", ErrSessionNotFound), true, false, false},
		{"missing information", validation, false, true, false},
		{"answer required", interview.ErrAnswerRequired, false, true, false},
		{"transition", transition, false, false, true},
		{"no interview", interview.ErrNoInterview, false, false, true},
		{"results not ready", ErrResultsNotReady, false, false, true},
		{"other", errors.New("boom"), false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.notFound, IsNotFound(tt.err))
			assert.Equal(t, tt.validation, IsValidation(tt.err))
			assert.Equal(t, tt.conflict, IsConflict(tt.err))
		})
	}
}

func TestServiceLogger_LevelsFollowErrorClass(t *testing.T) {
	var buf bytes.Buffer
	logger := NewServiceLogger(slog.New(slog.NewTextHandler(&buf, nil)), "interview")
	ctx := context.Background()

	logger.LogOperation(ctx, "next_question", "s1", time.Millisecond, nil)
	assert.Contains(t, buf.String(), "level=INFO")
	assert.Contains(t, buf.String(), "status=success")

	buf.Reset()
	logger.LogOperation(ctx, "next_question", "s1", time.Millisecond, interview.ErrAnswerRequired)
	assert.Contains(t, buf.String(), "level=WARN")
	assert.Contains(t, buf.String(), "status=validation_error")

	buf.Reset()
	err := logger.WithOperation(ctx, "get_results", "s1").Done(errors.New("boom"))
	assert.EqualError(t, err, "boom")
	assert.Contains(t, buf.String(), "level=ERROR")
	assert.Contains(t, buf.String(), "service=interview")
}
