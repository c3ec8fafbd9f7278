package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"quiz-forge/internal/cache"
	"quiz-forge/internal/domain"
	"quiz-forge/internal/repository/models"
)

// CacheQuizRepository stores quizzes in a domain.Cache without expiry.
// With the Redis adapter this lets several server instances share quizzes.
type CacheQuizRepository struct {
	cache domain.Cache
}

// NewCacheQuizRepository creates a store over c.
func NewCacheQuizRepository(c domain.Cache) *CacheQuizRepository {
	return &CacheQuizRepository{cache: c}
}

// QuizKey returns the cache key holding a quiz's questions.
func QuizKey(id string) string {
	return cache.GenerateCacheKey("quiz", "questions", id)
}

func (r *CacheQuizRepository) GetQuiz(ctx context.Context, id string) (*domain.Quiz, error) {
	data, err := r.cache.Get(ctx, QuizKey(id))
	if err != nil {
		if errors.Is(err, domain.ErrCacheMiss) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get quiz %s from cache: %w", id, err)
	}

	var list models.QuestionList
	if err := json.Unmarshal([]byte(data), &list); err != nil {
		return nil, fmt.Errorf("failed to decode quiz %s: %w", id, err)
	}
	return domain.NewQuiz(id, list.ToDomain()), nil
}

func (r *CacheQuizRepository) SaveQuiz(ctx context.Context, quiz *domain.Quiz) error {
	if quiz == nil {
		return fmt.Errorf("cannot save nil quiz")
	}
	return r.put(ctx, quiz.ID, quiz.Questions)
}

// ReplaceQuestions refuses to recreate a quiz whose key has gone away.
func (r *CacheQuizRepository) ReplaceQuestions(ctx context.Context, id string, questions []domain.Question) error {
	exists, err := r.cache.Exists(ctx, QuizKey(id))
	if err != nil {
		return fmt.Errorf("failed to look up quiz %s: %w", id, err)
	}
	if !exists {
		return domain.NewQuizNotFoundError(id)
	}
	return r.put(ctx, id, questions)
}

func (r *CacheQuizRepository) Ping(ctx context.Context) error {
	return r.cache.Ping(ctx)
}

// put writes the whole question list under one key, so a replacement is a single SET.
func (r *CacheQuizRepository) put(ctx context.Context, id string, questions []domain.Question) error {
	data, err := json.Marshal(models.FromDomainQuestions(questions))
	if err != nil {
		return fmt.Errorf("failed to encode quiz %s: %w", id, err)
	}
	if err := r.cache.Set(ctx, QuizKey(id), string(data), 0); err != nil {
		return fmt.Errorf("failed to store quiz %s: %w", id, err)
	}
	return nil
}

var _ domain.QuizRepository = (*CacheQuizRepository)(nil)
