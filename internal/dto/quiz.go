package dto

import "quiz-forge/internal/domain"

// QuestionDTO is the wire form of a question. correct_answer is always included.
// @Description Multiple-choice question
type QuestionDTO struct {
	ID            string   `json:"id"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
}

// QuizResponse is returned by upload and question retrieval/update.
// @Description Quiz with its questions
type QuizResponse struct {
	QuizID    string        `json:"quiz_id"`
	Questions []QuestionDTO `json:"questions"`
}

// UploadRequest carries an uploaded document into the service layer.
type UploadRequest struct {
	Filename string
	Content  []byte
}

// AnswerRequest is one selected answer in a submission.
type AnswerRequest struct {
	QuestionID     string `json:"question_id"`
	SelectedAnswer string `json:"selected_answer"`
}

// SubmitQuizRequest is the body of a quiz submission.
// @Description Request body for grading a quiz
type SubmitQuizRequest struct {
	Answers []AnswerRequest `json:"answers"`
}

// QuestionResultResponse is the graded outcome of one question.
type QuestionResultResponse struct {
	QuestionID     string `json:"question_id"`
	Question       string `json:"question"`
	SelectedAnswer string `json:"selected_answer"`
	CorrectAnswer  string `json:"correct_answer"`
	IsCorrect      bool   `json:"is_correct"`
}

// QuizResultResponse is the graded outcome of a submission.
// @Description Quiz grading result
type QuizResultResponse struct {
	QuizID     string                   `json:"quiz_id"`
	Score      int                      `json:"score"`
	Total      int                      `json:"total"`
	Percentage float64                  `json:"percentage"`
	Results    []QuestionResultResponse `json:"results"`
}

// HealthResponse is returned by the health endpoint.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// NewQuizResponse converts a domain quiz to its response form.
func NewQuizResponse(quiz *domain.Quiz) *QuizResponse {
	questions := make([]QuestionDTO, 0, len(quiz.Questions))
	for _, q := range quiz.Questions {
		questions = append(questions, QuestionDTO{
			ID:            q.ID,
			Question:      q.Text,
			Options:       append([]string(nil), q.Options...),
			CorrectAnswer: q.CorrectAnswer,
		})
	}
	return &QuizResponse{QuizID: quiz.ID, Questions: questions}
}

// ToDomainQuestions converts request questions to domain questions.
// A missing options array stays nil so validation reports it.
func ToDomainQuestions(questions []QuestionDTO) []domain.Question {
	out := make([]domain.Question, 0, len(questions))
	for _, q := range questions {
		out = append(out, domain.Question{
			ID:            q.ID,
			Text:          q.Question,
			Options:       append([]string(nil), q.Options...),
			CorrectAnswer: q.CorrectAnswer,
		})
	}
	return out
}

// ToDomainAnswers converts a submission into domain answers.
func (r *SubmitQuizRequest) ToDomainAnswers() []domain.Answer {
	answers := make([]domain.Answer, 0, len(r.Answers))
	for _, a := range r.Answers {
		answers = append(answers, domain.Answer{QuestionID: a.QuestionID, SelectedAnswer: a.SelectedAnswer})
	}
	return answers
}

// NewQuizResultResponse converts a graded result to its response form.
func NewQuizResultResponse(result *domain.QuizResult) *QuizResultResponse {
	results := make([]QuestionResultResponse, 0, len(result.Results))
	for _, r := range result.Results {
		results = append(results, QuestionResultResponse{
			QuestionID:     r.QuestionID,
			Question:       r.Question,
			SelectedAnswer: r.SelectedAnswer,
			CorrectAnswer:  r.CorrectAnswer,
			IsCorrect:      r.IsCorrect,
		})
	}
	return &QuizResultResponse{
		QuizID:     result.QuizID,
		Score:      result.Score,
		Total:      result.Total,
		Percentage: result.Percentage,
		Results:    results,
	}
}
