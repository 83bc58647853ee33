package validator

import (
	"testing"

	"github.com/mockinsight/interview-service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_InterviewRequest(t *testing.T) {
	v := New()

	t.Run("all required fields present", func(t *testing.T) {
		err := v.Validate(&models.InterviewRequest{
			JobPosition:    "Product Manager",
			Experience:     "2-3 years",
			JobDescription: "Own the roadmap",
		})
		assert.NoError(t, err)
	})

	t.Run("company is optional", func(t *testing.T) {
		err := v.Validate(&models.InterviewRequest{
			JobPosition:    "Designer",
			Company:        "",
			Experience:     "Fresh Graduate",
			JobDescription: "Figma",
		})
		assert.NoError(t, err)
	})

	t.Run("whitespace counts as missing", func(t *testing.T) {
		err := v.Validate(&models.InterviewRequest{
			JobPosition:    "Frontend Developer",
			Experience:     "   ",
			JobDescription: "\n\t",
		})
		require.Error(t, err)

		errs, ok := err.(ValidationErrors)
		require.True(t, ok)
		assert.Equal(t, []string{"experience", "job_description"}, errs.Fields())
		for _, e := range errs {
			assert.Equal(t, "is required", e.Message)
		}
	})

	t.Run("empty request reports every required field", func(t *testing.T) {
		err := v.Validate(&models.InterviewRequest{})
		require.Error(t, err)

		var errs ValidationErrors
		require.ErrorAs(t, err, &errs)
		assert.ElementsMatch(t, []string{"job_position", "experience", "job_description"}, errs.Fields())
	})
}

func TestValidate_QuestionCategory(t *testing.T) {
	type categorized struct {
		Category string `json:"category" validate:"question_category"`
	}

	v := New()
	assert.NoError(t, v.Validate(&categorized{Category: "technical"}))

	err := v.Validate(&categorized{Category: "trivia"})
	require.Error(t, err)
	var errs ValidationErrors
	require.ErrorAs(t, err, &errs)
	require.Len(t, errs, 1)
	assert.Equal(t, "category", errs[0].Field)
	assert.Equal(t, "question_category", errs[0].Rule)
}
