package models

import (
	"testing"

	"quiz-forge/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuestionList_ValueNil(t *testing.T) {
	var l QuestionList
	v, err := l.Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", v)
}

func TestQuestionList_ScanEmptyValues(t *testing.T) {
	for _, raw := range []interface{}{nil, "", []byte(""), "null"} {
		var l QuestionList
		require.NoError(t, l.Scan(raw))
		assert.Empty(t, l)
		assert.NotNil(t, l)
	}
}

func TestQuestionList_ScanUnsupportedType(t *testing.T) {
	var l QuestionList
	err := l.Scan(42)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported type int")
}

func TestQuestionList_StoredRoundTrip(t *testing.T) {
	questions := []domain.Question{
		{ID: "q1", Text: "Capital of France?", Options: []string{"Lyon", "Paris", "Nice", "Lille"}, CorrectAnswer: "Paris"},
	}

	v, err := FromDomainQuestions(questions).Value()
	require.NoError(t, err)
	assert.JSONEq(t,
		`[{"id":"q1","question":"Capital of France?","options":["Lyon","Paris","Nice","Lille"],"correct_answer":"Paris"}]`,
		v.(string))

	var scanned QuestionList
	require.NoError(t, scanned.Scan([]byte(v.(string))))
	assert.Equal(t, questions, scanned.ToDomain())
}
