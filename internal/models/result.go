package models

import "time"

// Evaluation is the verdict on a single answer.
type Evaluation struct {
	Score    float64  `json:"score"`
	Feedback string   `json:"feedback"`
	Tips     []string `json:"tips"`
}

type InterviewResult struct {
	QuestionID   int      `json:"question_id"`
	QuestionText string   `json:"question"`
	AnswerText   string   `json:"user_answer"`
	Score        float64  `json:"ai_score"`
	Feedback     string   `json:"ai_feedback"`
	Tips         []string `json:"improvement_tips"`
}

type InterviewReport struct {
	Results      []InterviewResult `json:"results"`
	OverallScore float64           `json:"overall_score"`
	Summary      string            `json:"summary"`
	GeneratedAt  time.Time         `json:"generated_at"`
}
