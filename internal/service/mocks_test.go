package service

import (
	"context"

	"quiz-forge/internal/domain"
	"quiz-forge/internal/dto"

	"github.com/stretchr/testify/mock"
)

// --- MockQuizRepository ---
type MockQuizRepository struct {
	mock.Mock
}

func (m *MockQuizRepository) GetQuiz(ctx context.Context, id string) (*domain.Quiz, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Quiz), args.Error(1)
}

func (m *MockQuizRepository) SaveQuiz(ctx context.Context, quiz *domain.Quiz) error {
	args := m.Called(ctx, quiz)
	return args.Error(0)
}

func (m *MockQuizRepository) ReplaceQuestions(ctx context.Context, id string, questions []domain.Question) error {
	args := m.Called(ctx, id, questions)
	return args.Error(0)
}

func (m *MockQuizRepository) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// --- MockTextExtractor ---
type MockTextExtractor struct {
	mock.Mock
}

func (m *MockTextExtractor) ExtractText(ctx context.Context, content []byte) (string, error) {
	args := m.Called(ctx, content)
	return args.String(0), args.Error(1)
}

// --- MockQuestionGenerator ---
type MockQuestionGenerator struct {
	mock.Mock
}

func (m *MockQuestionGenerator) GenerateQuestions(ctx context.Context, text string) ([]domain.Question, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Question), args.Error(1)
}

// --- MockDocumentArchive ---
type MockDocumentArchive struct {
	mock.Mock
}

func (m *MockDocumentArchive) Store(ctx context.Context, quizID, filename string, content []byte) error {
	args := m.Called(ctx, quizID, filename, content)
	return args.Error(0)
}

// --- MockResultCacheService ---
type MockResultCacheService struct {
	mock.Mock
}

func (m *MockResultCacheService) Put(ctx context.Context, quizID string, result *dto.QuizResultResponse) error {
	args := m.Called(ctx, quizID, result)
	return args.Error(0)
}

func (m *MockResultCacheService) Get(ctx context.Context, quizID string) (*dto.QuizResultResponse, error) {
	args := m.Called(ctx, quizID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.QuizResultResponse), args.Error(1)
}

func (m *MockResultCacheService) Invalidate(ctx context.Context, quizID string) error {
	args := m.Called(ctx, quizID)
	return args.Error(0)
}
