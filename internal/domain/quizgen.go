package domain

import (
	"context"
	"errors"
)

// QuestionGenerator produces the questions of a new quiz from extracted document text.
// Returned questions carry fresh ids and a correct answer that is one of their options.
type QuestionGenerator interface {
	GenerateQuestions(ctx context.Context, text string) ([]Question, error)
}

// GenerationErrorKind classifies a question generation failure.
type GenerationErrorKind string

const (
	GenerationFailed            GenerationErrorKind = "failed"
	GenerationMalformedResponse GenerationErrorKind = "malformed_response"
	GenerationQuotaExceeded     GenerationErrorKind = "quota_exceeded"
	GenerationInvalidCredential GenerationErrorKind = "invalid_credential"
	GenerationRateLimited       GenerationErrorKind = "rate_limited"
)

// GenerationError is returned by QuestionGenerator implementations.
// Message is human readable and safe to show to the client.
type GenerationError struct {
	Kind    GenerationErrorKind
	Message string
	Err     error
}

func (e *GenerationError) Error() string {
	return e.Message
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// NewGenerationError creates a new GenerationError
func NewGenerationError(kind GenerationErrorKind, message string, err error) *GenerationError {
	return &GenerationError{Kind: kind, Message: message, Err: err}
}

// AsGenerationError extracts a GenerationError from err's chain.
func AsGenerationError(err error) (*GenerationError, bool) {
	var genErr *GenerationError
	if errors.As(err, &genErr) {
		return genErr, true
	}
	return nil, false
}

// Code maps the generation failure kind onto the client-facing error code.
func (k GenerationErrorKind) Code() ErrorCode {
	switch k {
	case GenerationQuotaExceeded:
		return CodeQuotaExceeded
	case GenerationInvalidCredential:
		return CodeInvalidCredential
	case GenerationRateLimited:
		return CodeProviderRateLimited
	default:
		return CodeGenerationFailed
	}
}
