package models

import "time"

// InterviewRequest holds the job details collected by the interview form.
type InterviewRequest struct {
	JobPosition    string `json:"job_position" validate:"required,notblank"`
	Company        string `json:"company"`
	Experience     string `json:"experience" validate:"required,notblank"`
	JobDescription string `json:"job_description" validate:"required,notblank"`
}

type FlowState string

const (
	StateLanding   FlowState = "landing"
	StateForm      FlowState = "form"
	StateInterview FlowState = "interview"
	StateResults   FlowState = "results"
)

// SessionView is the read model of an interview in progress.
type SessionView struct {
	QuestionNumber   int      `json:"question_number"`
	TotalQuestions   int      `json:"total_questions"`
	Question         Question `json:"question"`
	CategoryLabel    string   `json:"category_label"`
	CurrentAnswer    string   `json:"current_answer"`
	ProgressPercent  int      `json:"progress_percent"`
	ElapsedSeconds   int      `json:"elapsed_seconds"`
	ElapsedFormatted string   `json:"elapsed"`
	IsFirst          bool     `json:"is_first"`
	IsLast           bool     `json:"is_last"`
}

// FlowSnapshot is the read model of a whole browser session.
type FlowSnapshot struct {
	SessionID     string            `json:"session_id"`
	State         FlowState         `json:"state"`
	Request       *InterviewRequest `json:"request,omitempty"`
	Session       *SessionView      `json:"session,omitempty"`
	AnsweredCount int               `json:"answered_count"`
	CreatedAt     time.Time         `json:"created_at"`
}
