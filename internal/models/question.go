package models

import "strings"

type QuestionCategory string

const (
	CategoryBehavioral  QuestionCategory = "behavioral"
	CategorySituational QuestionCategory = "situational"
	CategoryTechnical   QuestionCategory = "technical"
)

// Valid reports whether c is one of the known categories.
func (c QuestionCategory) Valid() bool {
	switch c {
	case CategoryBehavioral, CategorySituational, CategoryTechnical:
		return true
	}
	return false
}

// Label returns the display form, e.g. "Behavioral".
func (c QuestionCategory) Label() string {
	if c == "" {
		return ""
	}
	s := string(c)
	return strings.ToUpper(s[:1]) + s[1:]
}

type Question struct {
	ID       int              `json:"id"`
	Text     string           `json:"question"`
	Category QuestionCategory `json:"type"`
}
