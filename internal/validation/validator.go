package validation

import (
	"path/filepath"
	"strings"

	"quiz-forge/internal/domain"
)

const pdfExtension = ".pdf"

// Validator provides request validation functionality
type Validator struct {
	maxUploadBytes int64
}

// NewValidator creates a new validator instance
func NewValidator(maxUploadBytes int64) *Validator {
	return &Validator{maxUploadBytes: maxUploadBytes}
}

// MaxUploadBytes returns the largest accepted document size.
func (v *Validator) MaxUploadBytes() int64 {
	return v.maxUploadBytes
}

// ValidateUpload checks the file name and size of an uploaded document.
// It runs before any parsing so rejected files are never read.
func (v *Validator) ValidateUpload(filename string, size int64) error {
	if !strings.EqualFold(filepath.Ext(filename), pdfExtension) {
		return domain.NewUnsupportedFileError(filename)
	}
	if size > v.maxUploadBytes {
		return domain.NewFileTooLargeError(v.maxUploadBytes).
			WithContext("size", size).
			WithContext("max_size", v.maxUploadBytes)
	}
	return nil
}

// ValidateQuizID rejects blank quiz ids.
func (v *Validator) ValidateQuizID(quizID string) error {
	if strings.TrimSpace(quizID) == "" {
		return domain.NewInvalidInputError("quiz_id is required").WithContext("field", "quiz_id")
	}
	return nil
}
