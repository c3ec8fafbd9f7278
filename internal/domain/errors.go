package domain

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrorCode represents a specific type of error in the domain
type ErrorCode string

const (
	// Common errors
	CodeInternal        ErrorCode = "INTERNAL_ERROR"
	CodeInvalidInput    ErrorCode = "INVALID_INPUT"
	CodeNotFound        ErrorCode = "NOT_FOUND"
	CodeValidation      ErrorCode = "VALIDATION_ERROR"
	CodeTooManyRequests ErrorCode = "TOO_MANY_REQUESTS"

	// Upload errors
	CodeUnsupportedFile ErrorCode = "UNSUPPORTED_FILE"
	CodeFileTooLarge    ErrorCode = "FILE_TOO_LARGE"
	CodeInvalidDocument ErrorCode = "INVALID_DOCUMENT"

	// Generation errors
	CodeGenerationFailed    ErrorCode = "GENERATION_FAILED"
	CodeQuotaExceeded       ErrorCode = "QUOTA_EXCEEDED"
	CodeInvalidCredential   ErrorCode = "INVALID_CREDENTIAL"
	CodeProviderRateLimited ErrorCode = "PROVIDER_RATE_LIMITED"

	// Quiz specific errors
	CodeQuizNotFound   ErrorCode = "QUIZ_NOT_FOUND"
	CodeResultNotFound ErrorCode = "RESULT_NOT_FOUND"
)

// DomainError represents a domain-specific error
type DomainError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Cause   error                  `json:"-"`
	Context map[string]interface{} `json:"context,omitempty"`
}

func (e *DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap exposes the underlying cause to errors.Is / errors.As.
func (e *DomainError) Unwrap() error {
	return e.Cause
}

// MarshalJSON implements the json.Marshaler interface
func (e *DomainError) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Code    string                 `json:"code"`
		Message string                 `json:"message"`
		Context map[string]interface{} `json:"context,omitempty"`
	}{
		Code:    string(e.Code),
		Message: e.Message,
		Context: e.Context,
	})
}

// WithContext attaches a key/value pair that is reported to the client as error details.
func (e *DomainError) WithContext(key string, value interface{}) *DomainError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// NewError creates a new DomainError
func NewError(code ErrorCode, message string, cause error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Helper functions for common errors
func NewInvalidInputError(message string) *DomainError {
	return NewError(CodeInvalidInput, message, nil)
}

func NewValidationError(message string) *DomainError {
	return NewError(CodeValidation, message, nil)
}

func NewInternalError(message string, cause error) *DomainError {
	return NewError(CodeInternal, message, cause)
}

func NewQuizNotFoundError(quizID string) *DomainError {
	return NewError(CodeQuizNotFound, "Quiz not found", nil).WithContext("quiz_id", quizID)
}

func NewResultNotFoundError(quizID string) *DomainError {
	return NewError(CodeResultNotFound, "No result has been submitted for this quiz", nil).WithContext("quiz_id", quizID)
}

func NewUnsupportedFileError(filename string) *DomainError {
	return NewError(CodeUnsupportedFile, "Only PDF files are allowed", nil).WithContext("filename", filename)
}

func NewFileTooLargeError(limit int64) *DomainError {
	return NewError(CodeFileTooLarge, fmt.Sprintf("File size must be less than %dMB", limit/(1024*1024)), nil)
}

// ErrNoDocumentText is returned by extractors for documents without any text.
var ErrNoDocumentText = errors.New("no text could be extracted from the PDF")

// NewInvalidDocumentError reports a document whose text could not be extracted.
// The message is shown to the client as-is.
func NewInvalidDocumentError(cause error) *DomainError {
	reason := cause.Error()
	if errors.Is(cause, ErrNoDocumentText) {
		reason = "No text could be extracted from the PDF"
	}
	return NewError(CodeInvalidDocument, "Error extracting text from PDF: "+reason, cause)
}

// IsCode reports whether err is a DomainError carrying code.
func IsCode(err error, code ErrorCode) bool {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code == code
	}
	return false
}
