package interview

import (
	"context"
	"fmt"
	"sync"

	"github.com/mockinsight/interview-service/internal/models"
)

// RequestValidator checks an InterviewRequest before the interview starts.
type RequestValidator interface {
	Validate(s interface{}) error
}

// Flow is the per-tab state machine: landing -> form -> interview -> results,
// and results -> form on restart. It owns the session tracker while an
// interview is running.
type Flow struct {
	mu        sync.Mutex
	state     models.FlowState
	request   *models.InterviewRequest
	questions []models.Question
	session   *Session
	responses []models.Answer
	// attempt identifies the current interview; it changes on every submit and restart.
	attempt uint64

	validator   RequestValidator
	sessionOpts []SessionOption
}

func NewFlow(validator RequestValidator, sessionOpts ...SessionOption) *Flow {
	return &Flow{
		state:       models.StateLanding,
		validator:   validator,
		sessionOpts: sessionOpts,
	}
}

// ValidateRequest runs v over req. Failures wrap both ErrMissingInformation
// and the field-level errors.
func ValidateRequest(v RequestValidator, req *models.InterviewRequest) error {
	if err := v.Validate(req); err != nil {
		return fmt.Errorf("%w: %w", ErrMissingInformation, err)
	}
	return nil
}

func (f *Flow) State() models.FlowState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// GetStarted moves from the landing page to the form.
func (f *Flow) GetStarted() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != models.StateLanding {
		return &TransitionError{From: f.state, Action: "get started"}
	}
	f.state = models.StateForm
	return nil
}

// BackToLanding leaves the form without submitting it.
func (f *Flow) BackToLanding() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != models.StateForm {
		return &TransitionError{From: f.state, Action: "go back to landing"}
	}
	f.state = models.StateLanding
	return nil
}

// Submit validates req and starts the interview. On a validation failure the
// flow stays on the form.
func (f *Flow) Submit(req models.InterviewRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != models.StateForm {
		return &TransitionError{From: f.state, Action: "submit the form"}
	}
	if err := ValidateRequest(f.validator, &req); err != nil {
		return err
	}

	questions := GenerateQuestions(req.JobPosition)
	session, err := NewSession(questions, f.sessionOpts...)
	if err != nil {
		return err
	}
	session.Start(context.Background())

	f.request = &req
	f.questions = questions
	f.session = session
	f.responses = nil
	f.attempt++
	f.state = models.StateInterview
	return nil
}

func (f *Flow) activeSession() (*Session, error) {
	if f.state != models.StateInterview || f.session == nil {
		return nil, ErrNoInterview
	}
	return f.session, nil
}

func (f *Flow) SetAnswer(text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	s, err := f.activeSession()
	if err != nil {
		return err
	}
	s.SetAnswer(text)
	return nil
}

// Next advances the interview. When the last question is answered the
// session is torn down and the flow enters results.
func (f *Flow) Next() (completed bool, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	s, err := f.activeSession()
	if err != nil {
		return false, err
	}

	answers, done, err := s.Next()
	if err != nil || !done {
		return false, err
	}
	if len(answers) == 0 {
		return false, ErrNoAnswers
	}

	s.Stop()
	f.responses = answers
	f.session = nil
	f.state = models.StateResults
	return true, nil
}

func (f *Flow) Previous() (moved bool, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	s, err := f.activeSession()
	if err != nil {
		return false, err
	}
	return s.Previous(), nil
}

// Restart discards the finished interview and returns to the form.
func (f *Flow) Restart() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != models.StateResults {
		return &TransitionError{From: f.state, Action: "restart"}
	}
	f.clear()
	f.state = models.StateForm
	return nil
}

// Close stops the session timer, if any. The flow must not be used afterwards.
func (f *Flow) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.clear()
}

func (f *Flow) clear() {
	if f.session != nil {
		f.session.Stop()
	}
	f.session = nil
	f.request = nil
	f.questions = nil
	f.responses = nil
	f.attempt++
}

// Request returns a copy of the submitted request, or nil before submission.
func (f *Flow) Request() *models.InterviewRequest {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.request == nil {
		return nil
	}
	req := *f.request
	return &req
}

func (f *Flow) Questions() []models.Question {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Question(nil), f.questions...)
}

// Responses returns the completed answers; empty until the flow reaches results.
func (f *Flow) Responses() []models.Answer {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Answer(nil), f.responses...)
}

// Completed is a finished interview as it stood when read.
type Completed struct {
	Attempt   uint64
	Questions []models.Question
	Responses []models.Answer
}

// Completed returns the finished interview, or false outside results.
func (f *Flow) Completed() (Completed, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != models.StateResults {
		return Completed{}, false
	}
	return Completed{
		Attempt:   f.attempt,
		Questions: append([]models.Question(nil), f.questions...),
		Responses: append([]models.Answer(nil), f.responses...),
	}, true
}

// Attempt returns the identifier of the current interview.
func (f *Flow) Attempt() uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.attempt
}

// Session returns the running session tracker, or nil outside the interview.
func (f *Flow) Session() *Session {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.session
}

func (f *Flow) Snapshot() models.FlowSnapshot {
	f.mu.Lock()
	defer f.mu.Unlock()

	snap := models.FlowSnapshot{
		State:         f.state,
		AnsweredCount: len(f.responses),
	}
	if f.request != nil {
		req := *f.request
		snap.Request = &req
	}
	if f.session != nil {
		view := f.session.View()
		snap.Session = &view
		snap.AnsweredCount = f.session.AnsweredCount()
	}
	return snap
}
