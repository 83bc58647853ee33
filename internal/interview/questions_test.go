package interview

import (
	"errors"
	"testing"

	"github.com/mockinsight/interview-service/internal/models"
	"github.com/mockinsight/interview-service/internal/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func questionIDs(qs []models.Question) []int {
	ids := make([]int, 0, len(qs))
	for _, q := range qs {
		ids = append(ids, q.ID)
	}
	return ids
}

func TestGenerateQuestions_BaseSet(t *testing.T) {
	qs := GenerateQuestions("Product Manager")

	require.Len(t, qs, 5)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, questionIDs(qs))
	assert.Equal(t, "Tell me about yourself and your background.", qs[0].Text)
	assert.Equal(t, "What interests you about this Product Manager role?", qs[1].Text)
	assert.Equal(t, models.CategorySituational, qs[2].Category)
	assert.Equal(t, "Where do you see yourself in 5 years?", qs[4].Text)
	for _, q := range qs {
		assert.NotEqual(t, models.CategoryTechnical, q.Category)
	}
}

func TestGenerateQuestions_TechnicalAdditions(t *testing.T) {
	qs := GenerateQuestions("Frontend Developer")

	require.Len(t, qs, 7)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7}, questionIDs(qs))
	assert.Equal(t, models.CategoryTechnical, qs[5].Category)
	assert.Equal(t, models.CategoryTechnical, qs[6].Category)
	assert.Equal(t, "Explain the difference between var, let, and const in JavaScript.", qs[5].Text)
	assert.Equal(t, "How do you optimize website performance?", qs[6].Text)
}

func TestGenerateQuestions_KeywordMatching(t *testing.T) {
	tests := []struct {
		position string
		want     int
	}{
		{"FRONTEND engineer", 7},
		{"Backend developer", 7},
		{"Senior DeveloperRelations", 7},
		{"front-end engineer", 5},
		{"Data Scientist", 5},
		{"", 5},
	}

	for _, tt := range tests {
		t.Run(tt.position, func(t *testing.T) {
			assert.Len(t, GenerateQuestions(tt.position), tt.want)
		})
	}
}

func TestGenerateQuestions_Deterministic(t *testing.T) {
	first := GenerateQuestions("Frontend Developer")
	first[0].Text = "mutated"

	second := GenerateQuestions("Frontend Developer")
	assert.Equal(t, "Tell me about yourself and your background.", second[0].Text)
	assert.Equal(t, GenerateQuestions("Frontend Developer"), second)
}

func TestLoadQuestionBank_Rejects(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"empty base", "base: []\n"},
		{"gap in ids", "base:\n  - {id: 1, category: behavioral, text: a}\n  - {id: 3, category: behavioral, text: b}\n"},
		{"unknown category", "base:\n  - {id: 1, category: trivia, text: a}\n"},
		{"blank text", "base:\n  - {id: 1, category: behavioral, text: '  '}\n"},
		{"technical without keywords", "base:\n  - {id: 1, category: behavioral, text: a}\ntechnical:\n  questions:\n    - {id: 2, category: technical, text: b}\n"},
		{"malformed", "base: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadQuestionBank([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestLoadQuestionBank_ReportsFieldErrors(t *testing.T) {
	_, err := loadQuestionBank([]byte("base:\n  - {id: 1, category: trivia, text: a}\n  - {id: 2, category: behavioral, text: ' '}\n"))
	require.Error(t, err)

	var errs validator.ValidationErrors
	require.True(t, errors.As(err, &errs))
	require.Len(t, errs, 2)
	assert.ElementsMatch(t, []string{"question_category", "notblank"}, []string{errs[0].Rule, errs[1].Rule})
}
