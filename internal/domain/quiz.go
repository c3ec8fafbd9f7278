package domain

import (
	"fmt"
	"math"
)

const (
	// QuestionsPerQuiz is the number of questions every stored quiz holds.
	QuestionsPerQuiz = 10
	// OptionsPerQuestion is the number of answer options every question holds.
	OptionsPerQuestion = 4
)

// Question is a single multiple-choice question.
// CorrectAnswer is compared by value, never by position in Options.
type Question struct {
	ID            string
	Text          string
	Options       []string
	CorrectAnswer string
}

// HasOption reports whether value is one of the question's options.
func (q *Question) HasOption(value string) bool {
	for _, opt := range q.Options {
		if opt == value {
			return true
		}
	}
	return false
}

// Quiz is an ordered set of questions generated from one document.
type Quiz struct {
	ID        string
	Questions []Question
}

// NewQuiz creates a new Quiz instance
func NewQuiz(id string, questions []Question) *Quiz {
	return &Quiz{
		ID:        id,
		Questions: CloneQuestions(questions),
	}
}

// Answer is a client's selection for one question. It is never stored.
type Answer struct {
	QuestionID     string
	SelectedAnswer string
}

// QuestionResult is the graded outcome of one question.
type QuestionResult struct {
	QuestionID     string
	Question       string
	SelectedAnswer string
	CorrectAnswer  string
	IsCorrect      bool
}

// QuizResult is the graded outcome of a whole submission.
type QuizResult struct {
	QuizID     string
	Score      int
	Total      int
	Percentage float64
	Results    []QuestionResult
}

// ValidateQuestionSet checks a replacement question list before it overwrites a stored quiz.
// The first violation is returned; the offending question is named in the error context.
func ValidateQuestionSet(questions []Question) error {
	if len(questions) != QuestionsPerQuiz {
		return NewValidationError(fmt.Sprintf("Must provide exactly %d questions", QuestionsPerQuiz)).
			WithContext("count", len(questions))
	}

	for i := range questions {
		q := &questions[i]
		if len(q.Options) != OptionsPerQuestion {
			return NewValidationError(fmt.Sprintf("Each question must have exactly %d options (question: %s)", OptionsPerQuestion, q.ID)).
				WithContext("question_id", q.ID).
				WithContext("index", i).
				WithContext("option_count", len(q.Options))
		}
		if !q.HasOption(q.CorrectAnswer) {
			return NewValidationError(fmt.Sprintf("Correct answer must be one of the options for question: %s", q.ID)).
				WithContext("question_id", q.ID).
				WithContext("index", i)
		}
	}
	return nil
}

// Grade scores answers against the quiz.
//
// Answers are indexed by question id; when a submission repeats a question id the last
// entry wins. Questions without an answer are graded against the empty string.
func Grade(quiz *Quiz, answers []Answer) *QuizResult {
	selected := make(map[string]string, len(answers))
	for _, a := range answers {
		selected[a.QuestionID] = a.SelectedAnswer
	}

	results := make([]QuestionResult, 0, len(quiz.Questions))
	correct := 0
	for _, q := range quiz.Questions {
		choice := selected[q.ID]
		isCorrect := choice == q.CorrectAnswer
		if isCorrect {
			correct++
		}
		results = append(results, QuestionResult{
			QuestionID:     q.ID,
			Question:       q.Text,
			SelectedAnswer: choice,
			CorrectAnswer:  q.CorrectAnswer,
			IsCorrect:      isCorrect,
		})
	}

	total := len(quiz.Questions)
	return &QuizResult{
		QuizID:     quiz.ID,
		Score:      correct,
		Total:      total,
		Percentage: Percentage(correct, total),
		Results:    results,
	}
}

// Percentage returns 100*score/total rounded to two decimal places, or 0 when total is 0.
func Percentage(score, total int) float64 {
	if total <= 0 {
		return 0
	}
	return math.Round(float64(score)/float64(total)*100*100) / 100
}

// CloneQuestions deep-copies questions so callers cannot mutate stored option slices.
func CloneQuestions(questions []Question) []Question {
	if questions == nil {
		return nil
	}
	out := make([]Question, len(questions))
	for i, q := range questions {
		out[i] = q
		out[i].Options = append([]string(nil), q.Options...)
	}
	return out
}
