package interview

import "github.com/mockinsight/interview-service/internal/models"

// AnswerSet maps question ids to the latest answer text.
type AnswerSet struct {
	byQuestion map[int]string
}

func NewAnswerSet() *AnswerSet {
	return &AnswerSet{byQuestion: make(map[int]string)}
}

// Upsert stores text for questionID, replacing any earlier answer.
func (s *AnswerSet) Upsert(questionID int, text string) {
	s.byQuestion[questionID] = text
}

// Get returns the stored answer, or "" when the question has none.
func (s *AnswerSet) Get(questionID int) string {
	return s.byQuestion[questionID]
}

func (s *AnswerSet) Has(questionID int) bool {
	_, ok := s.byQuestion[questionID]
	return ok
}

func (s *AnswerSet) Len() int {
	return len(s.byQuestion)
}

// List returns the stored answers ordered like questions. Questions without
// an answer are skipped.
func (s *AnswerSet) List(questions []models.Question) []models.Answer {
	answers := make([]models.Answer, 0, len(s.byQuestion))
	for _, q := range questions {
		if text, ok := s.byQuestion[q.ID]; ok {
			answers = append(answers, models.Answer{QuestionID: q.ID, Text: text})
		}
	}
	return answers
}
