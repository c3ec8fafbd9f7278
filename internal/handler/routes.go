package handler

import (
	"quiz-forge/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

// SetupRoutes registers the API on app. uploadLimiter guards document uploads.
func SetupRoutes(app *fiber.App, quiz *QuizHandler, health *HealthHandler, vm *middleware.ValidationMiddleware, uploadLimiter fiber.Handler) {
	app.Get("/health", health.Check)

	api := app.Group("/api")
	api.Post("/upload", uploadLimiter, quiz.UploadDocument)

	api.Get("/questions/:quizID", vm.ValidateQuizID(), quiz.GetQuestions)
	api.Put("/questions/:quizID", vm.ValidateQuizID(), quiz.UpdateQuestions)

	api.Post("/quiz/:quizID/submit", vm.ValidateQuizID(), quiz.SubmitQuiz)
	api.Get("/quiz/:quizID/result", vm.ValidateQuizID(), quiz.GetQuizResult)
}
