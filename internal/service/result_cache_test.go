package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"quiz-forge/internal/adapter"
	"quiz-forge/internal/domain"
	"quiz-forge/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ManualMockCache for domain.Cache interface
type ManualMockCache struct {
	GetFunc    func(ctx context.Context, key string) (string, error)
	SetFunc    func(ctx context.Context, key string, value string, ttl time.Duration) error
	DeleteFunc func(ctx context.Context, key string) error
}

func (m *ManualMockCache) Get(ctx context.Context, key string) (string, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key)
	}
	return "", errors.New("GetFunc not set")
}

func (m *ManualMockCache) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	if m.SetFunc != nil {
		return m.SetFunc(ctx, key, value, ttl)
	}
	return errors.New("SetFunc not set")
}

func (m *ManualMockCache) Exists(ctx context.Context, key string) (bool, error) {
	return false, errors.New("Exists not implemented in mock")
}

func (m *ManualMockCache) Delete(ctx context.Context, key string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, key)
	}
	return errors.New("DeleteFunc not set")
}

func (m *ManualMockCache) Ping(ctx context.Context) error {
	return nil
}

func TestResultCacheService_PutGetInvalidate(t *testing.T) {
	svc := NewResultCacheService(adapter.NewMemoryCacheAdapter(), time.Hour)
	ctx := context.Background()

	_, err := svc.Get(ctx, "quiz-1")
	assert.ErrorIs(t, err, ErrResultNotFound)

	result := &dto.QuizResultResponse{
		QuizID: "quiz-1", Score: 1, Total: 10, Percentage: 10,
		Results: []dto.QuestionResultResponse{{QuestionID: "q1", SelectedAnswer: "a", CorrectAnswer: "a", IsCorrect: true}},
	}
	require.NoError(t, svc.Put(ctx, "quiz-1", result))

	got, err := svc.Get(ctx, "quiz-1")
	require.NoError(t, err)
	assert.Equal(t, result, got)

	require.NoError(t, svc.Invalidate(ctx, "quiz-1"))
	_, err = svc.Get(ctx, "quiz-1")
	assert.ErrorIs(t, err, ErrResultNotFound)
}

func TestResultCacheService_UsesKeyAndTTL(t *testing.T) {
	var gotKey string
	var gotTTL time.Duration
	mockCache := &ManualMockCache{
		SetFunc: func(ctx context.Context, key string, value string, ttl time.Duration) error {
			gotKey, gotTTL = key, ttl
			return nil
		},
	}

	svc := NewResultCacheService(mockCache, 24*time.Hour)
	require.NoError(t, svc.Put(context.Background(), "quiz-1", &dto.QuizResultResponse{QuizID: "quiz-1"}))
	assert.Equal(t, "quizforge:quiz:result:quiz-1", gotKey)
	assert.Equal(t, 24*time.Hour, gotTTL)
}

func TestResultCacheService_Errors(t *testing.T) {
	cacheErr := errors.New("redis timeout")
	mockCache := &ManualMockCache{
		GetFunc: func(ctx context.Context, key string) (string, error) {
			if key == "quizforge:quiz:result:garbled" {
				return "{not json", nil
			}
			return "", cacheErr
		},
		SetFunc: func(ctx context.Context, key string, value string, ttl time.Duration) error { return cacheErr },
	}
	svc := NewResultCacheService(mockCache, time.Minute)
	ctx := context.Background()

	_, err := svc.Get(ctx, "quiz-1")
	assert.True(t, domain.IsCode(err, domain.CodeInternal))
	assert.ErrorIs(t, err, cacheErr)

	_, err = svc.Get(ctx, "garbled")
	assert.True(t, domain.IsCode(err, domain.CodeInternal))

	err = svc.Put(ctx, "quiz-1", &dto.QuizResultResponse{})
	assert.ErrorIs(t, err, cacheErr)

	err = svc.Put(ctx, "quiz-1", nil)
	assert.True(t, domain.IsCode(err, domain.CodeInvalidInput))
}

func TestResultCacheService_NilCacheIsNoop(t *testing.T) {
	svc := NewResultCacheService(nil, time.Minute)
	ctx := context.Background()
	assert.NoError(t, svc.Put(ctx, "quiz-1", &dto.QuizResultResponse{}))
	_, err := svc.Get(ctx, "quiz-1")
	assert.ErrorIs(t, err, ErrResultNotFound)
	assert.NoError(t, svc.Invalidate(ctx, "quiz-1"))
}
