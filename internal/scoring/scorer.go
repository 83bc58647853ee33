package scoring

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mockinsight/interview-service/internal/models"
)

var ErrNoAnswers = errors.New("no answers to score")

type Scorer struct {
	evaluator Evaluator
	now       func() time.Time
}

func NewScorer(evaluator Evaluator) *Scorer {
	return &Scorer{evaluator: evaluator, now: time.Now}
}

// Score evaluates each answer independently and averages the scores.
// Results follow the order of answers; question text is looked up by id.
func (s *Scorer) Score(ctx context.Context, questions []models.Question, answers []models.Answer) (*models.InterviewReport, error) {
	if len(answers) == 0 {
		return nil, ErrNoAnswers
	}

	byID := make(map[int]models.Question, len(questions))
	for _, q := range questions {
		byID[q.ID] = q
	}

	results := make([]models.InterviewResult, 0, len(answers))
	var total float64
	for _, a := range answers {
		q, ok := byID[a.QuestionID]
		if !ok {
			q = models.Question{ID: a.QuestionID, Text: fmt.Sprintf("Interview question %d", a.QuestionID)}
		}

		eval, err := s.evaluator.Evaluate(ctx, q, a.Text)
		if err != nil {
			return nil, fmt.Errorf("failed to evaluate answer for question %d: %w", a.QuestionID, err)
		}

		total += eval.Score
		results = append(results, models.InterviewResult{
			QuestionID:   q.ID,
			QuestionText: q.Text,
			AnswerText:   a.Text,
			Score:        eval.Score,
			Feedback:     eval.Feedback,
			Tips:         eval.Tips,
		})
	}

	overall := total / float64(len(results))
	return &models.InterviewReport{
		Results:      results,
		OverallScore: overall,
		Summary:      OverallSummary(overall),
		GeneratedAt:  s.now(),
	}, nil
}

// OverallSummary is the headline message shown with the overall score.
func OverallSummary(score float64) string {
	switch {
	case score >= 8:
		return "Excellent performance! You're well-prepared for interviews."
	case score >= 6:
		return "Good job! With some practice, you'll be ready to ace your interviews."
	default:
		return "Keep practicing! Review the feedback below to improve your interview skills."
	}
}
