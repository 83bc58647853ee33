package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mockinsight/interview-service/internal/models"
)

const (
	eventSource  = "interview-service"
	eventVersion = "1.0"
)

// EventType represents the lifecycle events of a mock interview session
type EventType string

const (
	EventSessionCreated     EventType = "session.created"
	EventSessionEnded       EventType = "session.ended"
	EventInterviewStarted   EventType = "interview.started"
	EventInterviewCompleted EventType = "interview.completed"
	EventInterviewRestarted EventType = "interview.restarted"
	EventResultsViewed      EventType = "results.viewed"
	EventReportExported     EventType = "results.exported"
)

// InterviewEvent is the envelope for every published event
type InterviewEvent struct {
	ID        string          `json:"id"`
	Type      EventType       `json:"type"`
	Timestamp time.Time       `json:"timestamp"`
	Source    string          `json:"source"`
	Version   string          `json:"version"`
	SessionID string          `json:"session_id"`
	Data      json.RawMessage `json:"data,omitempty"`
}

// Event payloads

type InterviewStartedEvent struct {
	JobPosition   string `json:"job_position"`
	Company       string `json:"company,omitempty"`
	QuestionCount int    `json:"question_count"`
}

type InterviewCompletedEvent struct {
	AnswerCount    int `json:"answer_count"`
	ElapsedSeconds int `json:"elapsed_seconds"`
}

type ResultsViewedEvent struct {
	OverallScore float64 `json:"overall_score"`
	ResultCount  int     `json:"result_count"`
	Cached       bool    `json:"cached"`
}

type SessionEndedEvent struct {
	Reason string           `json:"reason"`
	State  models.FlowState `json:"state"`
}

// NewEvent builds an envelope; data is marshalled into the payload.
func NewEvent(eventType EventType, sessionID string, data interface{}) (*InterviewEvent, error) {
	event := &InterviewEvent{
		ID:        GenerateEventID(),
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Source:    eventSource,
		Version:   eventVersion,
		SessionID: sessionID,
	}

	if data != nil {
		payload, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal %s payload: %w", eventType, err)
		}
		event.Data = payload
	}
	return event, nil
}

// DecodeData unmarshals the payload into dest.
func (e *InterviewEvent) DecodeData(dest interface{}) error {
	if len(e.Data) == 0 {
		return fmt.Errorf("event %s has no payload", e.ID)
	}
	return json.Unmarshal(e.Data, dest)
}

// GenerateEventID returns a new random event id
func GenerateEventID() string {
	return uuid.NewString()
}
