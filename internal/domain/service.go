package domain

import "context"

// QuizRepository is the storage port for quizzes.
// Implementations must replace a quiz's questions atomically per quiz id.
type QuizRepository interface {
	// GetQuiz retrieves a quiz by its ID. It returns (nil, nil) when the quiz does not exist.
	GetQuiz(ctx context.Context, id string) (*Quiz, error)

	// SaveQuiz persists a new quiz
	SaveQuiz(ctx context.Context, quiz *Quiz) error

	// ReplaceQuestions overwrites the questions of an existing quiz wholesale.
	ReplaceQuestions(ctx context.Context, id string, questions []Question) error

	// Ping checks the health of the backing store.
	Ping(ctx context.Context) error
}

// TextExtractor turns raw document bytes into plain text.
type TextExtractor interface {
	ExtractText(ctx context.Context, content []byte) (string, error)
}

// DocumentArchive keeps a copy of uploaded source documents.
type DocumentArchive interface {
	Store(ctx context.Context, quizID, filename string, content []byte) error
}
