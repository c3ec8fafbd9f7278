package handler

import (
	"io"

	"quiz-forge/internal/domain"
	"quiz-forge/internal/dto"
	"quiz-forge/internal/logger"
	"quiz-forge/internal/middleware"
	"quiz-forge/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// QuizHandler handles quiz-related HTTP requests
type QuizHandler struct {
	service service.QuizService
}

// NewQuizHandler creates a new QuizHandler instance
func NewQuizHandler(service service.QuizService) *QuizHandler {
	return &QuizHandler{
		service: service,
	}
}

// quizIDParam prefers the id stored by the validation middleware.
func quizIDParam(c *fiber.Ctx) string {
	if id, ok := c.Locals(middleware.LocalQuizID).(string); ok {
		return id
	}
	return c.Params("quizID")
}

// UploadDocument godoc
// @Summary Create a quiz from a PDF
// @Description Extracts the document text and generates ten multiple-choice questions
// @Tags quiz
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "PDF document (max 10MB)"
// @Success 200 {object} dto.QuizResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 429 {object} middleware.ErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /upload [post]
func (h *QuizHandler) UploadDocument(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return domain.NewInvalidInputError("A PDF file must be uploaded in the 'file' field").WithContext("field", "file")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return domain.NewInternalError("Failed to open uploaded file", err)
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return domain.NewInternalError("Failed to read uploaded file", err)
	}

	resp, err := h.service.UploadDocument(c.UserContext(), &dto.UploadRequest{
		Filename: fileHeader.Filename,
		Content:  content,
	})
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// GetQuestions godoc
// @Summary Get quiz questions
// @Description Returns the stored questions of a quiz, correct answers included
// @Tags quiz
// @Produce json
// @Param quizID path string true "Quiz ID"
// @Success 200 {object} dto.QuizResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /questions/{quizID} [get]
func (h *QuizHandler) GetQuestions(c *fiber.Ctx) error {
	resp, err := h.service.GetQuestions(c.UserContext(), quizIDParam(c))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// UpdateQuestions godoc
// @Summary Replace quiz questions
// @Description Overwrites all questions of a quiz after validating the full set
// @Tags quiz
// @Accept json
// @Produce json
// @Param quizID path string true "Quiz ID"
// @Param questions body []dto.QuestionDTO true "Exactly ten questions"
// @Success 200 {object} dto.QuizResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /questions/{quizID} [put]
func (h *QuizHandler) UpdateQuestions(c *fiber.Ctx) error {
	var questions []dto.QuestionDTO
	if err := c.BodyParser(&questions); err != nil {
		logger.Get().Debug("Invalid question payload", zap.Error(err))
		return domain.NewInvalidInputError("Request body must be a JSON array of questions")
	}

	resp, err := h.service.UpdateQuestions(c.UserContext(), quizIDParam(c), questions)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// SubmitQuiz godoc
// @Summary Grade a quiz submission
// @Description Scores the submitted answers against the stored questions
// @Tags quiz
// @Accept json
// @Produce json
// @Param quizID path string true "Quiz ID"
// @Param submission body dto.SubmitQuizRequest true "Answers"
// @Success 200 {object} dto.QuizResultResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /quiz/{quizID}/submit [post]
func (h *QuizHandler) SubmitQuiz(c *fiber.Ctx) error {
	var req dto.SubmitQuizRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Get().Debug("Invalid submission payload", zap.Error(err))
		return domain.NewInvalidInputError("Request body must be a JSON object with an 'answers' array")
	}

	resp, err := h.service.SubmitAnswers(c.UserContext(), quizIDParam(c), &req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// GetQuizResult godoc
// @Summary Get the last graded result
// @Description Returns the most recent result submitted for a quiz
// @Tags quiz
// @Produce json
// @Param quizID path string true "Quiz ID"
// @Success 200 {object} dto.QuizResultResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /quiz/{quizID}/result [get]
func (h *QuizHandler) GetQuizResult(c *fiber.Ctx) error {
	resp, err := h.service.GetLastResult(c.UserContext(), quizIDParam(c))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}
