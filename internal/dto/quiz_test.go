package dto

import (
	"encoding/json"
	"testing"

	"quiz-forge/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewQuizResponse_IncludesCorrectAnswer(t *testing.T) {
	quiz := domain.NewQuiz("quiz-1", []domain.Question{
		{ID: "q1", Text: "2+2?", Options: []string{"3", "4", "5", "6"}, CorrectAnswer: "4"},
	})

	body, err := json.Marshal(NewQuizResponse(quiz))
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"quiz_id":"quiz-1","questions":[{"id":"q1","question":"2+2?","options":["3","4","5","6"],"correct_answer":"4"}]}`,
		string(body))
}

func TestToDomainQuestions_MissingOptions(t *testing.T) {
	var payload []QuestionDTO
	require.NoError(t, json.Unmarshal([]byte(`[{"id":"q1","question":"no options","correct_answer":"x"}]`), &payload))

	questions := ToDomainQuestions(payload)
	require.Len(t, questions, 1)
	assert.Empty(t, questions[0].Options)
	assert.Equal(t, "no options", questions[0].Text)
}

func TestSubmitQuizRequest_ToDomainAnswers(t *testing.T) {
	var req SubmitQuizRequest
	require.NoError(t, json.Unmarshal([]byte(`{"answers":[{"question_id":"q1","selected_answer":"4"}]}`), &req))

	assert.Equal(t, []domain.Answer{{QuestionID: "q1", SelectedAnswer: "4"}}, req.ToDomainAnswers())
	assert.Empty(t, (&SubmitQuizRequest{}).ToDomainAnswers())
}

func TestNewQuizResultResponse(t *testing.T) {
	result := &domain.QuizResult{
		QuizID: "quiz-1", Score: 1, Total: 2, Percentage: 50,
		Results: []domain.QuestionResult{
			{QuestionID: "q1", Question: "2+2?", SelectedAnswer: "4", CorrectAnswer: "4", IsCorrect: true},
			{QuestionID: "q2", Question: "3+3?", SelectedAnswer: "", CorrectAnswer: "6"},
		},
	}

	body, err := json.Marshal(NewQuizResultResponse(result))
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"quiz_id":"quiz-1","score":1,"total":2,"percentage":50,
		"results":[
			{"question_id":"q1","question":"2+2?","selected_answer":"4","correct_answer":"4","is_correct":true},
			{"question_id":"q2","question":"3+3?","selected_answer":"","correct_answer":"6","is_correct":false}
		]}`, string(body))
}
