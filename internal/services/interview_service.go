package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/mockinsight/interview-service/internal/cache"
	"github.com/mockinsight/interview-service/internal/events"
	"github.com/mockinsight/interview-service/internal/interview"
	"github.com/mockinsight/interview-service/internal/models"
	"github.com/mockinsight/interview-service/internal/scoring"
)

// InterviewService drives the mock interview flow of every open session.
type InterviewService interface {
	CreateSession(ctx context.Context) (*models.FlowSnapshot, error)
	GetSession(ctx context.Context, sessionID string) (*models.FlowSnapshot, error)
	EndSession(ctx context.Context, sessionID string) error

	// Navigation
	GetStarted(ctx context.Context, sessionID string) (*models.FlowSnapshot, error)
	BackToLanding(ctx context.Context, sessionID string) (*models.FlowSnapshot, error)
	SubmitRequest(ctx context.Context, sessionID string, req models.InterviewRequest) (*models.FlowSnapshot, error)
	Restart(ctx context.Context, sessionID string) (*models.FlowSnapshot, error)

	// Answering
	UpdateAnswer(ctx context.Context, sessionID, answer string) (*models.FlowSnapshot, error)
	Next(ctx context.Context, sessionID string, answer *string) (*models.FlowSnapshot, error)
	Previous(ctx context.Context, sessionID string, answer *string) (*models.FlowSnapshot, error)

	// Results
	GetResults(ctx context.Context, sessionID string) (*models.InterviewReport, error)
	ExportReport(ctx context.Context, sessionID string) ([]byte, error)

	PreviewQuestions(ctx context.Context, jobPosition string) ([]models.Question, error)
	Landing() models.LandingContent
	Stats() models.ActivityStats

	// Lifecycle
	RunReaper(ctx context.Context, interval time.Duration)
	Shutdown(ctx context.Context)
}

// StatsSource supplies activity counters
type StatsSource interface {
	Snapshot() models.ActivityStats
}

type ServiceConfig struct {
	// StableResults keeps the first report of a session until restart instead
	// of scoring the answers again on every view.
	StableResults  bool
	ReportCacheTTL time.Duration
	SessionIdleTTL time.Duration
	TimerInterval  time.Duration
}

type interviewService struct {
	registry       *SessionRegistry
	validator      interview.RequestValidator
	scorer         *scoring.Scorer
	cache          cache.CacheService
	eventPublisher events.EventPublisher
	stats          StatsSource
	config         ServiceConfig
	logger         *slog.Logger
	opLogger       *ServiceLogger
}

func NewInterviewService(
	validator interview.RequestValidator,
	scorer *scoring.Scorer,
	reportCache cache.CacheService,
	eventPublisher events.EventPublisher,
	stats StatsSource,
	config ServiceConfig,
	logger *slog.Logger,
) InterviewService {
	return &interviewService{
		registry:       NewSessionRegistry(config.SessionIdleTTL),
		validator:      validator,
		scorer:         scorer,
		cache:          reportCache,
		eventPublisher: eventPublisher,
		stats:          stats,
		config:         config,
		logger:         logger,
		opLogger:       NewServiceLogger(logger, "interview"),
	}
}

// ===== SESSIONS =====

func (s *interviewService) CreateSession(ctx context.Context) (*models.FlowSnapshot, error) {
	var opts []interview.SessionOption
	if s.config.TimerInterval > 0 {
		opts = append(opts, interview.WithTickInterval(s.config.TimerInterval))
	}
	flow := interview.NewFlow(s.validator, opts...)
	id, createdAt := s.registry.Add(flow)

	op := s.opLogger.WithOperation(ctx, "create_session", id)
	s.publish(ctx, events.EventSessionCreated, id, nil)

	snap := snapshot(id, createdAt, flow)
	return snap, op.Done(nil)
}

func (s *interviewService) GetSession(ctx context.Context, sessionID string) (*models.FlowSnapshot, error) {
	flow, createdAt, err := s.registry.Get(sessionID)
	if err != nil {
		return nil, err
	}
	return snapshot(sessionID, createdAt, flow), nil
}

func (s *interviewService) EndSession(ctx context.Context, sessionID string) error {
	op := s.opLogger.WithOperation(ctx, "end_session", sessionID)

	flow, err := s.registry.Remove(sessionID)
	if err != nil {
		return op.Done(err)
	}
	s.teardown(ctx, sessionID, flow, "closed")
	return op.Done(nil)
}

// ===== NAVIGATION =====

func (s *interviewService) GetStarted(ctx context.Context, sessionID string) (*models.FlowSnapshot, error) {
	return s.transition(ctx, "get_started", sessionID, func(flow *interview.Flow) error {
		return flow.GetStarted()
	})
}

func (s *interviewService) BackToLanding(ctx context.Context, sessionID string) (*models.FlowSnapshot, error) {
	return s.transition(ctx, "back_to_landing", sessionID, func(flow *interview.Flow) error {
		return flow.BackToLanding()
	})
}

func (s *interviewService) SubmitRequest(ctx context.Context, sessionID string, req models.InterviewRequest) (*models.FlowSnapshot, error) {
	return s.transition(ctx, "submit_request", sessionID, func(flow *interview.Flow) error {
		if err := flow.Submit(req); err != nil {
			return err
		}
		s.publish(ctx, events.EventInterviewStarted, sessionID, events.InterviewStartedEvent{
			JobPosition:   strings.TrimSpace(req.JobPosition),
			Company:       strings.TrimSpace(req.Company),
			QuestionCount: len(flow.Questions()),
		})
		return nil
	})
}

func (s *interviewService) Restart(ctx context.Context, sessionID string) (*models.FlowSnapshot, error) {
	return s.transition(ctx, "restart", sessionID, func(flow *interview.Flow) error {
		if err := flow.Restart(); err != nil {
			return err
		}
		s.forgetReport(ctx, sessionID)
		s.publish(ctx, events.EventInterviewRestarted, sessionID, nil)
		return nil
	})
}

// ===== ANSWERING =====

func (s *interviewService) UpdateAnswer(ctx context.Context, sessionID, answer string) (*models.FlowSnapshot, error) {
	flow, createdAt, err := s.registry.Get(sessionID)
	if err != nil {
		return nil, err
	}
	if err := flow.SetAnswer(answer); err != nil {
		return nil, err
	}
	return snapshot(sessionID, createdAt, flow), nil
}

func (s *interviewService) Next(ctx context.Context, sessionID string, answer *string) (*models.FlowSnapshot, error) {
	return s.transition(ctx, "next_question", sessionID, func(flow *interview.Flow) error {
		if answer != nil {
			if err := flow.SetAnswer(*answer); err != nil {
				return err
			}
		}

		session := flow.Session()
		completed, err := flow.Next()
		if err != nil || !completed {
			return err
		}

		payload := events.InterviewCompletedEvent{AnswerCount: len(flow.Responses())}
		if session != nil {
			payload.ElapsedSeconds = session.Elapsed()
		}
		s.publish(ctx, events.EventInterviewCompleted, sessionID, payload)
		return nil
	})
}

func (s *interviewService) Previous(ctx context.Context, sessionID string, answer *string) (*models.FlowSnapshot, error) {
	return s.transition(ctx, "previous_question", sessionID, func(flow *interview.Flow) error {
		if answer != nil {
			if err := flow.SetAnswer(*answer); err != nil {
				return err
			}
		}
		_, err := flow.Previous()
		return err
	})
}

// ===== RESULTS =====

func (s *interviewService) GetResults(ctx context.Context, sessionID string) (*models.InterviewReport, error) {
	op := s.opLogger.WithOperation(ctx, "get_results", sessionID)

	report, cached, err := s.report(ctx, sessionID)
	if err != nil {
		return nil, op.Done(err)
	}

	s.publish(ctx, events.EventResultsViewed, sessionID, events.ResultsViewedEvent{
		OverallScore: report.OverallScore,
		ResultCount:  len(report.Results),
		Cached:       cached,
	})
	return report, op.Done(nil)
}

func (s *interviewService) ExportReport(ctx context.Context, sessionID string) ([]byte, error) {
	op := s.opLogger.WithOperation(ctx, "export_report", sessionID)

	report, _, err := s.report(ctx, sessionID)
	if err != nil {
		return nil, op.Done(err)
	}

	flow, _, err := s.registry.Get(sessionID)
	if err != nil {
		return nil, op.Done(err)
	}

	data, err := BuildReportWorkbook(report, flow.Request())
	if err != nil {
		return nil, op.Done(err)
	}

	s.publish(ctx, events.EventReportExported, sessionID, events.ResultsViewedEvent{
		OverallScore: report.OverallScore,
		ResultCount:  len(report.Results),
	})
	return data, op.Done(nil)
}

// report scores the completed interview, or returns the cached report when
// results are stable.
func (s *interviewService) report(ctx context.Context, sessionID string) (*models.InterviewReport, bool, error) {
	flow, _, err := s.registry.Get(sessionID)
	if err != nil {
		return nil, false, err
	}
	done, ok := flow.Completed()
	if !ok {
		return nil, false, ErrResultsNotReady
	}
	key := reportKey(sessionID, done.Attempt)

	if s.config.StableResults {
		var cached models.InterviewReport
		err := s.cache.Get(ctx, key, &cached)
		if err == nil {
			return &cached, true, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			s.logger.Warn("Failed to read cached report", "session_id", sessionID, "error", err)
		}
	}

	report, err := s.scorer.Score(ctx, done.Questions, done.Responses)
	if err != nil {
		return nil, false, err
	}

	if s.config.StableResults {
		// A restart while scoring already moved the session on.
		if flow.Attempt() != done.Attempt {
			s.logger.Debug("Discarding report of a restarted interview", "session_id", sessionID)
			return report, false, nil
		}
		if err := s.cache.Set(ctx, key, report, s.config.ReportCacheTTL); err != nil {
			s.logger.Warn("Failed to cache report", "session_id", sessionID, "error", err)
		}
	}
	return report, false, nil
}

// ===== MISC =====

func (s *interviewService) PreviewQuestions(ctx context.Context, jobPosition string) ([]models.Question, error) {
	if strings.TrimSpace(jobPosition) == "" {
		return nil, ErrEmptyPosition
	}
	return interview.GenerateQuestions(jobPosition), nil
}

func (s *interviewService) Landing() models.LandingContent {
	return LandingContent()
}

func (s *interviewService) Stats() models.ActivityStats {
	var stats models.ActivityStats
	if s.stats != nil {
		stats = s.stats.Snapshot()
	}
	stats.ActiveSessions = s.registry.Len()
	return stats
}

// ===== LIFECYCLE =====

// RunReaper ends idle sessions every interval until ctx is cancelled.
func (s *interviewService) RunReaper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.reapIdle(ctx)
		}
	}
}

func (s *interviewService) reapIdle(ctx context.Context) {
	expired := s.registry.Expire()
	for _, session := range expired {
		s.teardown(ctx, session.ID, session.Flow, "idle")
	}
	if len(expired) > 0 {
		s.logger.Info("Reaped idle sessions", "count", len(expired))
	}
}

// Shutdown ends every open session.
func (s *interviewService) Shutdown(ctx context.Context) {
	sessions := s.registry.Drain()
	for _, session := range sessions {
		s.teardown(ctx, session.ID, session.Flow, "shutdown")
	}
	if s.config.StableResults {
		if err := s.cache.DeletePattern(ctx, reportPattern("*")); err != nil {
			s.logger.Warn("Failed to clear cached reports", "error", err)
		}
	}
	s.logger.Info("Interview sessions closed", "count", len(sessions))
}

// ===== HELPERS =====

// transition runs fn against the session's flow and returns the resulting snapshot.
func (s *interviewService) transition(ctx context.Context, operation, sessionID string, fn func(*interview.Flow) error) (*models.FlowSnapshot, error) {
	op := s.opLogger.WithOperation(ctx, operation, sessionID)

	flow, createdAt, err := s.registry.Get(sessionID)
	if err != nil {
		return nil, op.Done(err)
	}
	if err := fn(flow); err != nil {
		return nil, op.Done(err)
	}
	return snapshot(sessionID, createdAt, flow), op.Done(nil)
}

func (s *interviewService) teardown(ctx context.Context, sessionID string, flow *interview.Flow, reason string) {
	state := flow.State()
	flow.Close()
	s.forgetReport(ctx, sessionID)
	s.publish(ctx, events.EventSessionEnded, sessionID, events.SessionEndedEvent{
		Reason: reason,
		State:  state,
	})
}

func (s *interviewService) forgetReport(ctx context.Context, sessionID string) {
	if !s.config.StableResults {
		return
	}
	if err := s.cache.DeletePattern(ctx, reportPattern(sessionID)); err != nil {
		s.logger.Warn("Failed to drop cached report", "session_id", sessionID, "error", err)
	}
}

// publish never fails the caller; event delivery is best effort.
func (s *interviewService) publish(ctx context.Context, eventType events.EventType, sessionID string, data interface{}) {
	event, err := events.NewEvent(eventType, sessionID, data)
	if err != nil {
		s.logger.Error("Failed to build event", "event_type", eventType, "error", err)
		return
	}
	if err := s.eventPublisher.PublishEvent(ctx, event); err != nil {
		s.logger.Warn("Failed to publish event", "event_type", eventType, "session_id", sessionID, "error", err)
	}
}

func snapshot(sessionID string, createdAt time.Time, flow *interview.Flow) *models.FlowSnapshot {
	snap := flow.Snapshot()
	snap.SessionID = sessionID
	snap.CreatedAt = createdAt
	return &snap
}

func reportKey(sessionID string, attempt uint64) string {
	return fmt.Sprintf("report:%s:%d", sessionID, attempt)
}

func reportPattern(sessionID string) string {
	return "report:" + sessionID + ":*"
}
