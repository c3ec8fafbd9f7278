package middleware

import (
	"quiz-forge/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// LocalQuizID is the fiber.Ctx local holding a validated quiz id.
const LocalQuizID = "validated_quiz_id"

// ValidationMiddleware provides request validation middleware
type ValidationMiddleware struct {
	validator *validation.Validator
}

// NewValidationMiddleware creates a new validation middleware instance
func NewValidationMiddleware(validator *validation.Validator) *ValidationMiddleware {
	return &ValidationMiddleware{validator: validator}
}

// ValidateQuizID checks the :quizID path parameter and stores it in the context.
func (vm *ValidationMiddleware) ValidateQuizID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		// Params are backed by the request buffer; copy before storing.
		quizID := c.Params("quizID")
		if err := vm.validator.ValidateQuizID(quizID); err != nil {
			return err
		}
		c.Locals(LocalQuizID, string([]byte(quizID)))
		return c.Next()
	}
}
