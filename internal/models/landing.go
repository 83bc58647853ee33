package models

type LandingStep struct {
	Step        string `json:"step"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type LandingContent struct {
	Headline    string        `json:"headline"`
	Highlight   string        `json:"highlight"`
	Tagline     string        `json:"tagline"`
	StepsTitle  string        `json:"steps_title"`
	StepsIntro  string        `json:"steps_intro"`
	Steps       []LandingStep `json:"steps"`
	CallToTitle string        `json:"cta_title"`
	CallToText  string        `json:"cta_text"`
	CallToLabel string        `json:"cta_label"`
}

// ActivityStats is a point-in-time view of interview activity counters.
type ActivityStats struct {
	SessionsCreated     int64 `json:"sessions_created"`
	InterviewsStarted   int64 `json:"interviews_started"`
	InterviewsCompleted int64 `json:"interviews_completed"`
	InterviewsRestarted int64 `json:"interviews_restarted"`
	ResultsViewed       int64 `json:"results_viewed"`
	ReportsExported     int64 `json:"reports_exported"`
	SessionsEnded       int64 `json:"sessions_ended"`
	ActiveSessions      int   `json:"active_sessions"`
}
