package service

import (
	"context"
	"errors"

	"quiz-forge/internal/domain"
	"quiz-forge/internal/dto"
	"quiz-forge/internal/logger"
	"quiz-forge/internal/monitoring"
	"quiz-forge/internal/tracing"
	"quiz-forge/internal/util"
	"quiz-forge/internal/validation"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// QuizService defines the interface for quiz-related operations
type QuizService interface {
	UploadDocument(ctx context.Context, req *dto.UploadRequest) (*dto.QuizResponse, error)
	GetQuestions(ctx context.Context, quizID string) (*dto.QuizResponse, error)
	UpdateQuestions(ctx context.Context, quizID string, questions []dto.QuestionDTO) (*dto.QuizResponse, error)
	SubmitAnswers(ctx context.Context, quizID string, req *dto.SubmitQuizRequest) (*dto.QuizResultResponse, error)
	GetLastResult(ctx context.Context, quizID string) (*dto.QuizResultResponse, error)
}

// quizService implements QuizService
type quizService struct {
	repo          domain.QuizRepository
	extractor     domain.TextExtractor
	generator     domain.QuestionGenerator
	archive       domain.DocumentArchive
	results       ResultCacheService
	validator     *validation.Validator
	generatorName string
}

// NewQuizService creates a new instance of quizService
func NewQuizService(
	repo domain.QuizRepository,
	extractor domain.TextExtractor,
	generator domain.QuestionGenerator,
	archive domain.DocumentArchive,
	results ResultCacheService,
	validator *validation.Validator,
	generatorName string,
) QuizService {
	return &quizService{
		repo:          repo,
		extractor:     extractor,
		generator:     generator,
		archive:       archive,
		results:       results,
		validator:     validator,
		generatorName: generatorName,
	}
}

func startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return tracing.Tracer().Start(ctx, name, trace.WithAttributes(attrs...))
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// UploadDocument implements QuizService
func (s *quizService) UploadDocument(ctx context.Context, req *dto.UploadRequest) (resp *dto.QuizResponse, err error) {
	ctx, span := startSpan(ctx, "QuizService.UploadDocument",
		attribute.String("filename", req.Filename),
		attribute.Int("size", len(req.Content)))
	defer func() { endSpan(span, err) }()

	l := logger.Get()

	if err := s.validator.ValidateUpload(req.Filename, int64(len(req.Content))); err != nil {
		var de *domain.DomainError
		if errors.As(err, &de) {
			monitoring.UploadRejections.WithLabelValues(string(de.Code)).Inc()
		}
		return nil, err
	}

	text, err := s.extractor.ExtractText(ctx, req.Content)
	if err != nil {
		l.Warn("Failed to extract text from upload", zap.String("filename", req.Filename), zap.Error(err))
		monitoring.UploadRejections.WithLabelValues(string(domain.CodeInvalidDocument)).Inc()
		return nil, domain.NewInvalidDocumentError(err)
	}

	questions, err := s.generator.GenerateQuestions(ctx, text)
	if err != nil {
		return nil, s.generationFailure(err)
	}
	if err := domain.ValidateQuestionSet(questions); err != nil {
		l.Error("Generator returned an invalid question set", zap.String("generator", s.generatorName), zap.Error(err))
		return nil, s.generationFailure(domain.NewGenerationError(domain.GenerationMalformedResponse,
			"Error generating questions: generated questions failed validation", err))
	}

	quiz := domain.NewQuiz(util.NewULID(), questions)
	if err := s.repo.SaveQuiz(ctx, quiz); err != nil {
		l.Error("Failed to save quiz", zap.String("quizID", quiz.ID), zap.Error(err))
		return nil, domain.NewInternalError("Failed to save quiz", err)
	}
	span.SetAttributes(attribute.String("quiz_id", quiz.ID))

	if err := s.archive.Store(ctx, quiz.ID, req.Filename, req.Content); err != nil {
		l.Warn("Failed to archive uploaded document", zap.String("quizID", quiz.ID), zap.Error(err))
	}

	monitoring.QuizzesGenerated.WithLabelValues(s.generatorName).Inc()
	l.Info("Quiz created from upload",
		zap.String("quizID", quiz.ID),
		zap.String("filename", req.Filename),
		zap.Int("textChars", len([]rune(text))))

	return dto.NewQuizResponse(quiz), nil
}

// generationFailure converts a generator error into the client-facing domain error.
func (s *quizService) generationFailure(err error) error {
	kind := domain.GenerationFailed
	message := "Error generating questions: " + err.Error()
	if genErr, ok := domain.AsGenerationError(err); ok {
		kind = genErr.Kind
		message = genErr.Message
	}

	monitoring.GenerationFailures.WithLabelValues(string(kind)).Inc()
	logger.Get().Warn("Question generation failed",
		zap.String("generator", s.generatorName),
		zap.String("kind", string(kind)),
		zap.Error(err))
	return domain.NewError(kind.Code(), message, err)
}

// getQuiz loads a quiz or returns a QUIZ_NOT_FOUND error.
func (s *quizService) getQuiz(ctx context.Context, quizID string) (*domain.Quiz, error) {
	if err := s.validator.ValidateQuizID(quizID); err != nil {
		return nil, err
	}
	quiz, err := s.repo.GetQuiz(ctx, quizID)
	if err != nil {
		logger.Get().Error("Failed to load quiz", zap.String("quizID", quizID), zap.Error(err))
		return nil, domain.NewInternalError("Failed to get quiz", err)
	}
	if quiz == nil {
		return nil, domain.NewQuizNotFoundError(quizID)
	}
	return quiz, nil
}

// GetQuestions implements QuizService
func (s *quizService) GetQuestions(ctx context.Context, quizID string) (resp *dto.QuizResponse, err error) {
	ctx, span := startSpan(ctx, "QuizService.GetQuestions", attribute.String("quiz_id", quizID))
	defer func() { endSpan(span, err) }()

	quiz, err := s.getQuiz(ctx, quizID)
	if err != nil {
		return nil, err
	}
	return dto.NewQuizResponse(quiz), nil
}

// UpdateQuestions implements QuizService
func (s *quizService) UpdateQuestions(ctx context.Context, quizID string, questions []dto.QuestionDTO) (resp *dto.QuizResponse, err error) {
	ctx, span := startSpan(ctx, "QuizService.UpdateQuestions",
		attribute.String("quiz_id", quizID),
		attribute.Int("questions", len(questions)))
	defer func() { endSpan(span, err) }()

	if _, err := s.getQuiz(ctx, quizID); err != nil {
		return nil, err
	}

	replacement := dto.ToDomainQuestions(questions)
	if err := domain.ValidateQuestionSet(replacement); err != nil {
		return nil, err
	}

	if err := s.repo.ReplaceQuestions(ctx, quizID, replacement); err != nil {
		// The quiz can disappear between the lookup and the write, e.g. an evicted redis key.
		if domain.IsCode(err, domain.CodeQuizNotFound) {
			return nil, err
		}
		logger.Get().Error("Failed to replace quiz questions", zap.String("quizID", quizID), zap.Error(err))
		return nil, domain.NewInternalError("Failed to update questions", err)
	}

	// A cached result was graded against the old questions.
	if err := s.results.Invalidate(ctx, quizID); err != nil {
		logger.Get().Warn("Failed to invalidate cached quiz result", zap.String("quizID", quizID), zap.Error(err))
	}

	logger.Get().Info("Quiz questions replaced", zap.String("quizID", quizID))
	return dto.NewQuizResponse(domain.NewQuiz(quizID, replacement)), nil
}

// SubmitAnswers implements QuizService
func (s *quizService) SubmitAnswers(ctx context.Context, quizID string, req *dto.SubmitQuizRequest) (resp *dto.QuizResultResponse, err error) {
	ctx, span := startSpan(ctx, "QuizService.SubmitAnswers", attribute.String("quiz_id", quizID))
	defer func() { endSpan(span, err) }()

	quiz, err := s.getQuiz(ctx, quizID)
	if err != nil {
		return nil, err
	}

	result := domain.Grade(quiz, req.ToDomainAnswers())
	resp = dto.NewQuizResultResponse(result)

	if err := s.results.Put(ctx, quizID, resp); err != nil {
		logger.Get().Warn("Failed to cache quiz result", zap.String("quizID", quizID), zap.Error(err))
	}

	monitoring.SubmissionPercentage.Observe(result.Percentage)
	span.SetAttributes(attribute.Int("score", result.Score), attribute.Float64("percentage", result.Percentage))
	logger.Get().Info("Quiz graded",
		zap.String("quizID", quizID),
		zap.Int("score", result.Score),
		zap.Int("total", result.Total))
	return resp, nil
}

// GetLastResult implements QuizService
func (s *quizService) GetLastResult(ctx context.Context, quizID string) (resp *dto.QuizResultResponse, err error) {
	ctx, span := startSpan(ctx, "QuizService.GetLastResult", attribute.String("quiz_id", quizID))
	defer func() { endSpan(span, err) }()

	if _, err := s.getQuiz(ctx, quizID); err != nil {
		return nil, err
	}

	resp, err = s.results.Get(ctx, quizID)
	if err != nil {
		if errors.Is(err, ErrResultNotFound) {
			return nil, domain.NewResultNotFoundError(quizID)
		}
		return nil, err
	}
	return resp, nil
}
