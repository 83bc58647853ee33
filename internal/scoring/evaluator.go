package scoring

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/mockinsight/interview-service/internal/models"
)

// Evaluator judges a single answer. MockEvaluator is the only implementation
// today; a real evaluation service plugs in here.
type Evaluator interface {
	Evaluate(ctx context.Context, question models.Question, answer string) (models.Evaluation, error)
}

var (
	mockScores = []float64{6, 7, 8, 7.5, 8.5, 6.5, 9}

	mockTips = []string{
		"Use the STAR method (Situation, Task, Action, Result) for behavioral questions",
		"Provide specific, quantifiable examples when possible",
		"Show enthusiasm and genuine interest in the role",
		"Demonstrate problem-solving skills and adaptability",
	}
)

// MockEvaluator draws a score at random from a fixed pool and derives canned
// feedback from it. Results differ between calls for the same input.
type MockEvaluator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewMockEvaluator() *MockEvaluator {
	seed := uint64(time.Now().UnixNano())
	return NewSeededMockEvaluator(seed, seed>>1)
}

// NewSeededMockEvaluator returns a MockEvaluator with a reproducible sequence.
func NewSeededMockEvaluator(seed1, seed2 uint64) *MockEvaluator {
	return &MockEvaluator{rng: rand.New(rand.NewPCG(seed1, seed2))}
}

func (e *MockEvaluator) Evaluate(ctx context.Context, question models.Question, answer string) (models.Evaluation, error) {
	if err := ctx.Err(); err != nil {
		return models.Evaluation{}, fmt.Errorf("evaluate question %d: %w", question.ID, err)
	}

	e.mu.Lock()
	score := mockScores[e.rng.IntN(len(mockScores))]
	tipCount := e.rng.IntN(3) + 1
	e.mu.Unlock()

	return models.Evaluation{
		Score:    score,
		Feedback: mockFeedback(score),
		Tips:     append([]string(nil), mockTips[:tipCount]...),
	}, nil
}

func mockFeedback(score float64) string {
	switch {
	case score >= 8:
		return "Your answer demonstrates excellent understanding. You provided specific examples and showed clear communication skills."
	case score >= 7:
		return "Your answer demonstrates good understanding. Your response was well-structured, but could benefit from more specific examples."
	default:
		return "Your answer demonstrates decent understanding. Consider providing more detailed examples and showing deeper analysis."
	}
}

// ScorePool returns the candidate scores MockEvaluator draws from.
func ScorePool() []float64 {
	return append([]float64(nil), mockScores...)
}

// TipPool returns the improvement tips MockEvaluator draws from, in order.
func TipPool() []string {
	return append([]string(nil), mockTips...)
}
