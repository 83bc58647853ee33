package interview

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/mockinsight/interview-service/internal/models"
)

// DefaultTickInterval is how often the elapsed-time counter advances.
const DefaultTickInterval = time.Second

var ErrNoQuestions = errors.New("session needs at least one question")

// Session tracks one pass through an ordered question list: the current
// position, the answer being edited, the answers stored so far and the time
// spent. It is safe for concurrent use; the elapsed-time ticker runs on its
// own goroutine between Start and Stop.
type Session struct {
	mu        sync.Mutex
	questions []models.Question
	index     int
	draft     string
	answers   *AnswerSet
	elapsed   int

	interval time.Duration
	cancel   context.CancelFunc
	done     chan struct{}
}

type SessionOption func(*Session)

// WithTickInterval overrides how often the elapsed counter advances by one second.
func WithTickInterval(d time.Duration) SessionOption {
	return func(s *Session) {
		if d > 0 {
			s.interval = d
		}
	}
}

func NewSession(questions []models.Question, opts ...SessionOption) (*Session, error) {
	if len(questions) == 0 {
		return nil, ErrNoQuestions
	}

	s := &Session{
		questions: append([]models.Question(nil), questions...),
		answers:   NewAnswerSet(),
		interval:  DefaultTickInterval,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Start launches the elapsed-time ticker. Calling Start on a running session is a no-op.
func (s *Session) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	s.cancel = cancel
	s.done = done

	go s.run(ctx, done)
}

func (s *Session) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Tick()
		}
	}
}

// Stop cancels the ticker and waits for it to exit.
func (s *Session) Stop() {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.cancel, s.done = nil, nil
	s.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

func (s *Session) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cancel != nil
}

// Tick advances the elapsed counter by one second.
func (s *Session) Tick() {
	s.mu.Lock()
	s.elapsed++
	s.mu.Unlock()
}

// SetAnswer replaces the answer being edited for the current question.
func (s *Session) SetAnswer(text string) {
	s.mu.Lock()
	s.draft = text
	s.mu.Unlock()
}

// Next stores the current answer and moves forward. A blank answer is
// rejected with ErrAnswerRequired and the position does not change. On the
// last question Next returns the full answer list and completed is true.
func (s *Session) Next() (answers []models.Answer, completed bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if strings.TrimSpace(s.draft) == "" {
		return nil, false, ErrAnswerRequired
	}

	s.answers.Upsert(s.questions[s.index].ID, s.draft)

	if s.index < len(s.questions)-1 {
		s.index++
		s.draft = s.answers.Get(s.questions[s.index].ID)
		return nil, false, nil
	}

	return s.answers.List(s.questions), true, nil
}

// Previous stores the current answer as-is and moves back one question.
// It reports false and does nothing on the first question.
func (s *Session) Previous() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.index == 0 {
		return false
	}

	s.answers.Upsert(s.questions[s.index].ID, s.draft)
	s.index--
	s.draft = s.answers.Get(s.questions[s.index].ID)
	return true
}

func (s *Session) Index() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index
}

func (s *Session) Current() models.Question {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.questions[s.index]
}

func (s *Session) CurrentAnswer() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft
}

func (s *Session) Questions() []models.Question {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Question(nil), s.questions...)
}

func (s *Session) AnsweredCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.answers.Len()
}

// Progress returns (index+1)/total.
func (s *Session) Progress() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.progress()
}

func (s *Session) progress() float64 {
	return float64(s.index+1) / float64(len(s.questions))
}

func (s *Session) Elapsed() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.elapsed
}

func (s *Session) View() models.SessionView {
	s.mu.Lock()
	defer s.mu.Unlock()

	q := s.questions[s.index]
	return models.SessionView{
		QuestionNumber:   s.index + 1,
		TotalQuestions:   len(s.questions),
		Question:         q,
		CategoryLabel:    q.Category.Label(),
		CurrentAnswer:    s.draft,
		ProgressPercent:  int(math.Round(s.progress() * 100)),
		ElapsedSeconds:   s.elapsed,
		ElapsedFormatted: FormatTime(s.elapsed),
		IsFirst:          s.index == 0,
		IsLast:           s.index == len(s.questions)-1,
	}
}

// FormatTime renders seconds as m:ss.
func FormatTime(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
