package quizgen

import (
	"context"
	"fmt"

	"quiz-forge/internal/domain"
	"quiz-forge/internal/logger"

	"go.uber.org/zap"
)

// MockGenerator synthesizes placeholder questions without calling a provider.
// The document text is ignored.
type MockGenerator struct {
	shuffle Shuffler
}

// NewMockGenerator creates a new MockGenerator
func NewMockGenerator() *MockGenerator {
	return &MockGenerator{shuffle: RandomShuffle}
}

func (g *MockGenerator) GenerateQuestions(ctx context.Context, text string) ([]domain.Question, error) {
	questions := make([]domain.Question, 0, domain.QuestionsPerQuiz)
	for i := 1; i <= domain.QuestionsPerQuiz; i++ {
		options := []string{
			fmt.Sprintf("Option A for question %d", i),
			fmt.Sprintf("Option B for question %d", i),
			fmt.Sprintf("Option C for question %d", i),
			fmt.Sprintf("Option D for question %d", i),
		}
		questions = append(questions, newQuestion(
			fmt.Sprintf("Question %d based on the text: What is the main topic?", i),
			options,
			options[0],
			g.shuffle,
		))
	}

	logger.Get().Debug("Generated mock questions", zap.Int("count", len(questions)))
	return questions, nil
}

var _ domain.QuestionGenerator = (*MockGenerator)(nil)
