package models

// Answer is the latest text entered for a question.
type Answer struct {
	QuestionID int    `json:"question_id"`
	Text       string `json:"answer"`
}
