package metrics

import (
	"context"
	"sync"
	"time"

	"github.com/mockinsight/interview-service/internal/events"
	"github.com/mockinsight/interview-service/internal/models"
)

type Metrics struct {
	mu                  sync.RWMutex
	SessionsCreated     int64
	InterviewsStarted   int64
	InterviewsCompleted int64
	InterviewsRestarted int64
	ResultsViewed       int64
	ReportsExported     int64
	SessionsEnded       int64
	LastUpdateTime      time.Time
}

func NewMetrics() *Metrics {
	return &Metrics{
		LastUpdateTime: time.Now(),
	}
}

// HandleEvent counts one interview event. It satisfies events.EventHandler.
func (m *Metrics) HandleEvent(_ context.Context, event *events.InterviewEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch event.Type {
	case events.EventSessionCreated:
		m.SessionsCreated++
	case events.EventInterviewStarted:
		m.InterviewsStarted++
	case events.EventInterviewCompleted:
		m.InterviewsCompleted++
	case events.EventInterviewRestarted:
		m.InterviewsRestarted++
	case events.EventResultsViewed:
		m.ResultsViewed++
	case events.EventReportExported:
		m.ReportsExported++
	case events.EventSessionEnded:
		m.SessionsEnded++
	default:
		return nil
	}
	m.LastUpdateTime = time.Now()
	return nil
}

// Snapshot returns the counters; active sessions are filled in by the caller.
func (m *Metrics) Snapshot() models.ActivityStats {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return models.ActivityStats{
		SessionsCreated:     m.SessionsCreated,
		InterviewsStarted:   m.InterviewsStarted,
		InterviewsCompleted: m.InterviewsCompleted,
		InterviewsRestarted: m.InterviewsRestarted,
		ResultsViewed:       m.ResultsViewed,
		ReportsExported:     m.ReportsExported,
		SessionsEnded:       m.SessionsEnded,
	}
}
