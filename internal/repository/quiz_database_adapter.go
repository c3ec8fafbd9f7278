package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"quiz-forge/internal/domain"
	"quiz-forge/internal/repository/models"

	"github.com/jmoiron/sqlx"
)

// QuizDatabaseAdapter implements domain.QuizRepository using sqlx.DB
type QuizDatabaseAdapter struct {
	db *sqlx.DB
}

// NewQuizDatabaseAdapter creates a new instance of QuizDatabaseAdapter
func NewQuizDatabaseAdapter(db *sqlx.DB) domain.QuizRepository {
	return &QuizDatabaseAdapter{db: db}
}

// GetQuiz implements domain.QuizRepository
func (a *QuizDatabaseAdapter) GetQuiz(ctx context.Context, id string) (*domain.Quiz, error) {
	var row models.Quiz
	query := `SELECT 
		id "id",
		questions "questions",
		created_at "created_at",
		updated_at "updated_at"
	FROM quizzes 
	WHERE id = :1`

	if err := a.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get quiz by ID %s: %w", id, err)
	}
	return domain.NewQuiz(row.ID, row.Questions.ToDomain()), nil
}

// SaveQuiz implements domain.QuizRepository
func (a *QuizDatabaseAdapter) SaveQuiz(ctx context.Context, quiz *domain.Quiz) error {
	if quiz == nil {
		return fmt.Errorf("cannot save nil quiz")
	}
	now := time.Now()

	query := `INSERT INTO quizzes (id, questions, created_at, updated_at) VALUES (:1, :2, :3, :4)`

	_, err := a.db.ExecContext(ctx, query,
		quiz.ID,
		models.FromDomainQuestions(quiz.Questions),
		now,
		now,
	)
	if err != nil {
		return fmt.Errorf("failed to save quiz: %w", err)
	}
	return nil
}

// ReplaceQuestions implements domain.QuizRepository.
// Oracle reports RowsAffected inconsistently, so existence is checked by the caller.
func (a *QuizDatabaseAdapter) ReplaceQuestions(ctx context.Context, id string, questions []domain.Question) error {
	query := `UPDATE quizzes SET 
		questions = :1, 
		updated_at = :2
	WHERE id = :3`

	_, err := a.db.ExecContext(ctx, query,
		models.FromDomainQuestions(questions),
		time.Now(),
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to replace questions of quiz %s: %w", id, err)
	}
	return nil
}

// Ping implements domain.QuizRepository
func (a *QuizDatabaseAdapter) Ping(ctx context.Context) error {
	return a.db.PingContext(ctx)
}
