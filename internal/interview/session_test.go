package interview

import (
	"context"
	"testing"
	"time"

	"github.com/mockinsight/interview-service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func threeQuestions() []models.Question {
	return []models.Question{
		{ID: 1, Text: "q1", Category: models.CategoryBehavioral},
		{ID: 2, Text: "q2", Category: models.CategorySituational},
		{ID: 3, Text: "q3", Category: models.CategoryTechnical},
	}
}

func newTestSession(t *testing.T, qs []models.Question) *Session {
	t.Helper()
	s, err := NewSession(qs)
	require.NoError(t, err)
	return s
}

func TestNewSession_RequiresQuestions(t *testing.T) {
	_, err := NewSession(nil)
	assert.ErrorIs(t, err, ErrNoQuestions)
}

func TestSession_NextRejectsBlankAnswer(t *testing.T) {
	s := newTestSession(t, threeQuestions())

	for _, blank := range []string{"", "   ", "\n\t "} {
		s.SetAnswer(blank)
		_, completed, err := s.Next()
		assert.ErrorIs(t, err, ErrAnswerRequired)
		assert.False(t, completed)
		assert.Equal(t, 0, s.Index())
	}
	assert.Equal(t, 0, s.AnsweredCount())
}

func TestSession_PreviousRestoresAnswer(t *testing.T) {
	s := newTestSession(t, threeQuestions())

	s.SetAnswer("answer one")
	_, _, err := s.Next()
	require.NoError(t, err)
	assert.Equal(t, 1, s.Index())
	assert.Equal(t, "", s.CurrentAnswer())

	s.SetAnswer("answer two")
	assert.True(t, s.Previous())
	assert.Equal(t, 0, s.Index())
	assert.Equal(t, "answer one", s.CurrentAnswer())

	_, _, err = s.Next()
	require.NoError(t, err)
	assert.Equal(t, "answer two", s.CurrentAnswer())
}

func TestSession_PreviousAtFirstQuestionIsNoop(t *testing.T) {
	s := newTestSession(t, threeQuestions())
	s.SetAnswer("draft")

	assert.False(t, s.Previous())
	assert.Equal(t, 0, s.Index())
	assert.Equal(t, "draft", s.CurrentAnswer())
	assert.Equal(t, 0, s.AnsweredCount())
}

func TestSession_PreviousStoresBlankDraft(t *testing.T) {
	s := newTestSession(t, threeQuestions())
	s.SetAnswer("a1")
	_, _, err := s.Next()
	require.NoError(t, err)

	s.SetAnswer("")
	require.True(t, s.Previous())
	assert.Equal(t, 2, s.AnsweredCount())
}

func TestSession_CompletesOnLastQuestion(t *testing.T) {
	qs := GenerateQuestions("Frontend Developer")
	s := newTestSession(t, qs)

	for i, q := range qs {
		s.SetAnswer("draft for " + q.Text)
		if i == 2 {
			// revise question 2 after moving back
			require.True(t, s.Previous())
			s.SetAnswer("revised two")
			_, _, err := s.Next()
			require.NoError(t, err)
			s.SetAnswer("draft for " + q.Text)
		}

		answers, completed, err := s.Next()
		require.NoError(t, err)

		if i < len(qs)-1 {
			assert.False(t, completed)
			assert.Nil(t, answers)
			continue
		}

		require.True(t, completed)
		require.Len(t, answers, len(qs))
		for j, a := range answers {
			assert.Equal(t, qs[j].ID, a.QuestionID)
		}
		assert.Equal(t, "revised two", answers[1].Text)
		assert.Equal(t, "draft for "+qs[6].Text, answers[6].Text)
	}

	assert.Equal(t, len(qs)-1, s.Index())
}

func TestSession_ProgressAndView(t *testing.T) {
	s := newTestSession(t, threeQuestions())

	assert.InDelta(t, 1.0/3.0, s.Progress(), 1e-9)

	view := s.View()
	assert.Equal(t, 1, view.QuestionNumber)
	assert.Equal(t, 3, view.TotalQuestions)
	assert.Equal(t, 33, view.ProgressPercent)
	assert.Equal(t, "Behavioral", view.CategoryLabel)
	assert.True(t, view.IsFirst)
	assert.False(t, view.IsLast)
	assert.Equal(t, "0:00", view.ElapsedFormatted)

	s.SetAnswer("x")
	_, _, _ = s.Next()
	s.SetAnswer("y")
	_, _, _ = s.Next()

	view = s.View()
	assert.Equal(t, 100, view.ProgressPercent)
	assert.True(t, view.IsLast)
	assert.InDelta(t, 1.0, s.Progress(), 1e-9)
}

func TestSession_Timer(t *testing.T) {
	s, err := NewSession(threeQuestions(), WithTickInterval(5*time.Millisecond))
	require.NoError(t, err)

	s.Start(context.Background())
	s.Start(context.Background())
	assert.True(t, s.Running())

	require.Eventually(t, func() bool { return s.Elapsed() >= 3 }, time.Second, 5*time.Millisecond)

	s.Stop()
	assert.False(t, s.Running())
	stopped := s.Elapsed()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, stopped, s.Elapsed())

	s.Stop()
}

func TestSession_TimerStopsWithContext(t *testing.T) {
	s, err := NewSession(threeQuestions(), WithTickInterval(time.Millisecond))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	s.Start(ctx)
	cancel()
	s.Stop()
	assert.False(t, s.Running())
}

func TestSession_Tick(t *testing.T) {
	s := newTestSession(t, threeQuestions())
	for i := 0; i < 65; i++ {
		s.Tick()
	}
	assert.Equal(t, 65, s.Elapsed())
	assert.Equal(t, "1:05", s.View().ElapsedFormatted)
}

func TestFormatTime(t *testing.T) {
	assert.Equal(t, "0:00", FormatTime(0))
	assert.Equal(t, "0:09", FormatTime(9))
	assert.Equal(t, "1:05", FormatTime(65))
	assert.Equal(t, "9:59", FormatTime(599))
	assert.Equal(t, "61:01", FormatTime(3661))
	assert.Equal(t, "0:00", FormatTime(-4))
}
