package middleware

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"quiz-forge/internal/domain"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testUploadLimit = 10 * 1024 * 1024

func newErrorTestApp(err error) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler(testUploadLimit)})
	app.Get("/fail", func(c *fiber.Ctx) error { return err })
	return app
}

func decodeError(t *testing.T, resp *http.Response) ErrorResponse {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out ErrorResponse
	require.NoError(t, json.Unmarshal(body, &out))
	return out
}

func TestErrorHandler_DomainErrorStatus(t *testing.T) {
	tests := []struct {
		code       domain.ErrorCode
		wantStatus int
	}{
		{domain.CodeQuizNotFound, http.StatusNotFound},
		{domain.CodeResultNotFound, http.StatusNotFound},
		{domain.CodeNotFound, http.StatusNotFound},
		{domain.CodeValidation, http.StatusBadRequest},
		{domain.CodeInvalidInput, http.StatusBadRequest},
		{domain.CodeUnsupportedFile, http.StatusBadRequest},
		{domain.CodeFileTooLarge, http.StatusBadRequest},
		{domain.CodeInvalidDocument, http.StatusBadRequest},
		{domain.CodeGenerationFailed, http.StatusBadRequest},
		{domain.CodeQuotaExceeded, http.StatusBadRequest},
		{domain.CodeInvalidCredential, http.StatusBadRequest},
		{domain.CodeProviderRateLimited, http.StatusBadRequest},
		{domain.CodeTooManyRequests, http.StatusTooManyRequests},
		{domain.CodeInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			app := newErrorTestApp(domain.NewError(tt.code, "message for "+string(tt.code), nil))
			resp, err := app.Test(httptest.NewRequest("GET", "/fail", nil))
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)

			body := decodeError(t, resp)
			assert.Equal(t, string(tt.code), body.Code)
			assert.Equal(t, "message for "+string(tt.code), body.Message)
			assert.Equal(t, tt.wantStatus, body.Status)
		})
	}
}

func TestErrorHandler_DetailsFromContext(t *testing.T) {
	err := domain.NewValidationError("Correct answer must be one of the options for question: q3").
		WithContext("question_id", "q3").
		WithContext("index", 3)
	resp, testErr := newErrorTestApp(err).Test(httptest.NewRequest("GET", "/fail", nil))
	require.NoError(t, testErr)

	body := decodeError(t, resp)
	assert.Equal(t, "q3", body.Details["question_id"])
	assert.Equal(t, float64(3), body.Details["index"])
}

func TestErrorHandler_InternalCauseNotExposed(t *testing.T) {
	err := domain.NewInternalError("Failed to save quiz", errors.New("ORA-12541: TNS:no listener"))
	resp, testErr := newErrorTestApp(err).Test(httptest.NewRequest("GET", "/fail", nil))
	require.NoError(t, testErr)

	body := decodeError(t, resp)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "Failed to save quiz", body.Message)
}

func TestErrorHandler_UnknownError(t *testing.T) {
	resp, err := newErrorTestApp(errors.New("kaboom")).Test(httptest.NewRequest("GET", "/fail", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	body := decodeError(t, resp)
	assert.Equal(t, string(domain.CodeInternal), body.Code)
	assert.Equal(t, "Internal server error", body.Message)
}

func TestErrorHandler_FiberError(t *testing.T) {
	resp, err := newErrorTestApp(fiber.ErrMethodNotAllowed).Test(httptest.NewRequest("GET", "/fail", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
	assert.Equal(t, "HTTP_ERROR", decodeError(t, resp).Code)
}

func TestErrorHandler_BodyLimitBecomesFileTooLarge(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler(testUploadLimit), BodyLimit: 16})
	app.Post("/upload", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	req := httptest.NewRequest("POST", "/upload", strings.NewReader(strings.Repeat("x", 64)))
	req.Header.Set("Content-Type", "application/octet-stream")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	body := decodeError(t, resp)
	assert.Equal(t, string(domain.CodeFileTooLarge), body.Code)
	assert.Equal(t, "File size must be less than 10MB", body.Message)
}
