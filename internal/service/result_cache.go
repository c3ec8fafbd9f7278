package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"quiz-forge/internal/cache"
	"quiz-forge/internal/domain"
	"quiz-forge/internal/dto"
	"quiz-forge/internal/logger"

	"go.uber.org/zap"
)

// ErrResultNotFound is returned when no graded result is cached for a quiz.
var ErrResultNotFound = errors.New("quiz result not found in cache")

// ResultCacheService keeps the most recent graded result of each quiz.
type ResultCacheService interface {
	Put(ctx context.Context, quizID string, result *dto.QuizResultResponse) error
	Get(ctx context.Context, quizID string) (*dto.QuizResultResponse, error)
	Invalidate(ctx context.Context, quizID string) error
}

type resultCacheServiceImpl struct {
	cache domain.Cache
	ttl   time.Duration
}

// NewResultCacheService creates a new instance of resultCacheServiceImpl.
func NewResultCacheService(c domain.Cache, ttl time.Duration) ResultCacheService {
	if c == nil {
		logger.Get().Warn("ResultCacheService initialized with nil cache. Service will be no-op.")
		return &noopResultCacheService{}
	}
	return &resultCacheServiceImpl{cache: c, ttl: ttl}
}

func resultKey(quizID string) string {
	return cache.GenerateCacheKey("quiz", "result", quizID)
}

// Put stores the latest result of a quiz, replacing any earlier one.
func (s *resultCacheServiceImpl) Put(ctx context.Context, quizID string, result *dto.QuizResultResponse) error {
	if result == nil {
		return domain.NewInvalidInputError("cannot cache nil result")
	}

	key := resultKey(quizID)
	dataBytes, err := json.Marshal(result)
	if err != nil {
		logger.Get().Error("Failed to marshal quiz result for caching", zap.Error(err), zap.String("quizID", quizID))
		return domain.NewInternalError("failed to marshal result for caching", err)
	}

	if err := s.cache.Set(ctx, key, string(dataBytes), s.ttl); err != nil {
		logger.Get().Error("Failed to cache quiz result", zap.Error(err), zap.String("key", key))
		return domain.NewInternalError(fmt.Sprintf("failed to set quiz result to cache for key %s", key), err)
	}
	logger.Get().Debug("Cached quiz result", zap.String("key", key), zap.Duration("ttl", s.ttl))
	return nil
}

// Get returns the latest cached result of a quiz or ErrResultNotFound.
func (s *resultCacheServiceImpl) Get(ctx context.Context, quizID string) (*dto.QuizResultResponse, error) {
	key := resultKey(quizID)
	dataString, err := s.cache.Get(ctx, key)
	if err != nil {
		if errors.Is(err, domain.ErrCacheMiss) {
			logger.Get().Debug("Quiz result cache miss", zap.String("key", key))
			return nil, ErrResultNotFound
		}
		logger.Get().Error("Failed to get quiz result from cache", zap.Error(err), zap.String("key", key))
		return nil, domain.NewInternalError(fmt.Sprintf("failed to get quiz result from cache for key %s", key), err)
	}
	if dataString == "" {
		return nil, ErrResultNotFound
	}

	var result dto.QuizResultResponse
	if err := json.Unmarshal([]byte(dataString), &result); err != nil {
		logger.Get().Error("Failed to unmarshal quiz result from cache", zap.Error(err), zap.String("key", key))
		return nil, domain.NewInternalError(fmt.Sprintf("failed to unmarshal result from cache for key %s", key), err)
	}
	return &result, nil
}

// Invalidate drops the cached result of a quiz.
func (s *resultCacheServiceImpl) Invalidate(ctx context.Context, quizID string) error {
	key := resultKey(quizID)
	if err := s.cache.Delete(ctx, key); err != nil {
		return domain.NewInternalError(fmt.Sprintf("failed to delete quiz result for key %s", key), err)
	}
	return nil
}

type noopResultCacheService struct{}

func (s *noopResultCacheService) Put(ctx context.Context, quizID string, result *dto.QuizResultResponse) error {
	return nil
}

func (s *noopResultCacheService) Get(ctx context.Context, quizID string) (*dto.QuizResultResponse, error) {
	return nil, ErrResultNotFound
}

func (s *noopResultCacheService) Invalidate(ctx context.Context, quizID string) error {
	return nil
}
