package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// ServiceLogger provides structured logging for service layer operations
type ServiceLogger struct {
	logger *slog.Logger
}

func NewServiceLogger(logger *slog.Logger, service string) *ServiceLogger {
	return &ServiceLogger{
		logger: logger.With("service", service),
	}
}

// LogOperation logs the outcome of one operation. Rejected user input and
// unknown sessions are expected traffic and stay below error level.
func (l *ServiceLogger) LogOperation(ctx context.Context, operation, sessionID string, duration time.Duration, err error) {
	level := slog.LevelInfo
	status := "success"

	if err != nil {
		level = slog.LevelError
		status = "error"

		switch {
		case IsValidation(err):
			level = slog.LevelWarn
			status = "validation_error"
		case IsConflict(err):
			level = slog.LevelWarn
			status = "conflict"
		case IsNotFound(err):
			level = slog.LevelInfo
			status = "not_found"
		}
	}

	attrs := []slog.Attr{
		slog.String("operation", operation),
		slog.String("session_id", sessionID),
		slog.String("status", status),
		slog.Duration("duration", duration),
	}

	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))

		var validationErrs ValidationErrors
		if errors.As(err, &validationErrs) {
			attrs = append(attrs, slog.Any("invalid_fields", validationErrs.Fields()))
		}
	}

	l.logger.LogAttrs(ctx, level, fmt.Sprintf("%s operation %s", operation, status), attrs...)
}

// OperationLogger times one operation and logs it when done
type OperationLogger struct {
	logger    *ServiceLogger
	ctx       context.Context
	operation string
	sessionID string
	startTime time.Time
}

func (l *ServiceLogger) WithOperation(ctx context.Context, operation, sessionID string) *OperationLogger {
	return &OperationLogger{
		logger:    l,
		ctx:       ctx,
		operation: operation,
		sessionID: sessionID,
		startTime: time.Now(),
	}
}

// Done logs err (nil for success) and returns it unchanged.
func (ol *OperationLogger) Done(err error) error {
	ol.logger.LogOperation(ol.ctx, ol.operation, ol.sessionID, time.Since(ol.startTime), err)
	return err
}
