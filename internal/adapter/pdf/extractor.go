// Package pdf extracts plain text from uploaded PDF documents.
package pdf

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"quiz-forge/internal/domain"
	"quiz-forge/internal/logger"

	"github.com/ledongthuc/pdf"
	"go.uber.org/zap"
)

// ErrNoText is returned when a document parses but carries no extractable text.
var ErrNoText = domain.ErrNoDocumentText

// Extractor implements domain.TextExtractor on top of ledongthuc/pdf.
type Extractor struct{}

// NewExtractor creates a new PDF text extractor
func NewExtractor() domain.TextExtractor {
	return &Extractor{}
}

// ExtractText concatenates the text of every page and trims surrounding whitespace.
func (e *Extractor) ExtractText(ctx context.Context, content []byte) (text string, err error) {
	if len(content) == 0 {
		return "", ErrNoText
	}

	// The parser panics on some malformed cross-reference tables.
	defer func() {
		if r := recover(); r != nil {
			logger.Get().Warn("PDF parser panicked", zap.Any("panic", r))
			text = ""
			err = fmt.Errorf("malformed PDF: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", err
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", err
	}

	text = strings.TrimSpace(buf.String())
	if text == "" {
		return "", ErrNoText
	}

	logger.Get().Debug("Extracted text from PDF",
		zap.Int("pages", reader.NumPage()),
		zap.Int("chars", len(text)))
	return text, nil
}
