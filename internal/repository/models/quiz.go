package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"quiz-forge/internal/domain"
)

// QuestionRecord is the stored form of one question.
type QuestionRecord struct {
	ID            string   `json:"id"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
}

// QuestionList is stored as a JSON array in a single CLOB column.
type QuestionList []QuestionRecord

// Value implements the driver.Valuer interface
func (l QuestionList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	jsonData, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(jsonData), nil
}

// Scan implements the sql.Scanner interface
func (l *QuestionList) Scan(value interface{}) error {
	if value == nil {
		*l = QuestionList{}
		return nil
	}

	var bytesToParse []byte

	switch v := value.(type) {
	case []byte:
		bytesToParse = v
	case string:
		bytesToParse = []byte(v)
	default:
		return errors.New("QuestionList Scan: unsupported type " + fmt.Sprintf("%T", value))
	}

	if len(bytesToParse) == 0 || string(bytesToParse) == "null" {
		*l = QuestionList{}
		return nil
	}

	return json.Unmarshal(bytesToParse, l)
}

// Quiz is a row of the quizzes table.
type Quiz struct {
	ID        string       `db:"id"`
	Questions QuestionList `db:"questions"`
	CreatedAt time.Time    `db:"created_at"`
	UpdatedAt time.Time    `db:"updated_at"`
}

// FromDomainQuestions converts domain questions into their stored form.
func FromDomainQuestions(questions []domain.Question) QuestionList {
	list := make(QuestionList, 0, len(questions))
	for _, q := range questions {
		list = append(list, QuestionRecord{
			ID:            q.ID,
			Question:      q.Text,
			Options:       append([]string(nil), q.Options...),
			CorrectAnswer: q.CorrectAnswer,
		})
	}
	return list
}

// ToDomain converts the stored list back into domain questions.
func (l QuestionList) ToDomain() []domain.Question {
	questions := make([]domain.Question, 0, len(l))
	for _, r := range l {
		questions = append(questions, domain.Question{
			ID:            r.ID,
			Text:          r.Question,
			Options:       append([]string(nil), r.Options...),
			CorrectAnswer: r.CorrectAnswer,
		})
	}
	return questions
}
