package repository

import (
	"context"
	"fmt"
	"sync"

	"quiz-forge/internal/domain"
)

// MemoryQuizRepository keeps quizzes in process memory for the lifetime of the server.
// Nothing is ever evicted.
type MemoryQuizRepository struct {
	mu      sync.RWMutex
	quizzes map[string][]domain.Question
}

// NewMemoryQuizRepository creates an empty in-memory store.
func NewMemoryQuizRepository() *MemoryQuizRepository {
	return &MemoryQuizRepository{quizzes: make(map[string][]domain.Question)}
}

func (r *MemoryQuizRepository) GetQuiz(ctx context.Context, id string) (*domain.Quiz, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	questions, ok := r.quizzes[id]
	if !ok {
		return nil, nil
	}
	return domain.NewQuiz(id, questions), nil
}

func (r *MemoryQuizRepository) SaveQuiz(ctx context.Context, quiz *domain.Quiz) error {
	if quiz == nil {
		return fmt.Errorf("cannot save nil quiz")
	}
	r.mu.Lock()
	r.quizzes[quiz.ID] = domain.CloneQuestions(quiz.Questions)
	r.mu.Unlock()
	return nil
}

func (r *MemoryQuizRepository) ReplaceQuestions(ctx context.Context, id string, questions []domain.Question) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.quizzes[id]; !ok {
		return domain.NewQuizNotFoundError(id)
	}
	r.quizzes[id] = domain.CloneQuestions(questions)
	return nil
}

func (r *MemoryQuizRepository) Ping(ctx context.Context) error {
	return nil
}

var _ domain.QuizRepository = (*MemoryQuizRepository)(nil)
