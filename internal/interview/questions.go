package interview

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/mockinsight/interview-service/internal/models"
	"github.com/mockinsight/interview-service/internal/validator"
	"gopkg.in/yaml.v3"
)

const positionPlaceholder = "{position}"

//go:embed questionbank.yaml
var questionBankYAML []byte

type bankQuestion struct {
	ID       int                     `yaml:"id" json:"id" validate:"min=1"`
	Category models.QuestionCategory `yaml:"category" json:"category" validate:"question_category"`
	Text     string                  `yaml:"text" json:"text" validate:"required,notblank"`
}

type questionBank struct {
	Base      []bankQuestion `yaml:"base" json:"base" validate:"min=1,dive"`
	Technical struct {
		Keywords  []string       `yaml:"keywords" json:"keywords" validate:"dive,notblank"`
		Questions []bankQuestion `yaml:"questions" json:"questions" validate:"dive"`
	} `yaml:"technical" json:"technical"`
}

var bank = mustLoadQuestionBank(questionBankYAML)

func mustLoadQuestionBank(data []byte) *questionBank {
	b, err := loadQuestionBank(data)
	if err != nil {
		panic(fmt.Sprintf("interview: invalid question bank: %v", err))
	}
	return b
}

func loadQuestionBank(data []byte) (*questionBank, error) {
	var b questionBank
	if err := yaml.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("failed to parse question bank: %w", err)
	}
	if err := validateQuestionBank(&b); err != nil {
		return nil, err
	}
	for i, kw := range b.Technical.Keywords {
		b.Technical.Keywords[i] = strings.ToLower(kw)
	}
	return &b, nil
}

func validateQuestionBank(b *questionBank) error {
	if err := validator.New().Validate(b); err != nil {
		return fmt.Errorf("question bank: %w", err)
	}
	if len(b.Technical.Questions) > 0 && len(b.Technical.Keywords) == 0 {
		return fmt.Errorf("technical questions need at least one keyword")
	}

	all := append(append([]bankQuestion{}, b.Base...), b.Technical.Questions...)
	for i, q := range all {
		if q.ID != i+1 {
			return fmt.Errorf("question %d has id %d, expected %d", i, q.ID, i+1)
		}
	}
	return nil
}

// GenerateQuestions returns the interview questions for a job position: the
// fixed base set, followed by the technical set when the position mentions
// one of the technical keywords (case-insensitive substring match).
func GenerateQuestions(jobPosition string) []models.Question {
	return bank.generate(jobPosition)
}

func (b *questionBank) generate(jobPosition string) []models.Question {
	questions := make([]models.Question, 0, len(b.Base)+len(b.Technical.Questions))
	for _, q := range b.Base {
		questions = append(questions, q.render(jobPosition))
	}

	if b.isTechnical(jobPosition) {
		for _, q := range b.Technical.Questions {
			questions = append(questions, q.render(jobPosition))
		}
	}

	return questions
}

func (b *questionBank) isTechnical(jobPosition string) bool {
	position := strings.ToLower(jobPosition)
	for _, kw := range b.Technical.Keywords {
		if strings.Contains(position, kw) {
			return true
		}
	}
	return false
}

func (q bankQuestion) render(jobPosition string) models.Question {
	return models.Question{
		ID:       q.ID,
		Text:     strings.ReplaceAll(q.Text, positionPlaceholder, jobPosition),
		Category: q.Category,
	}
}
