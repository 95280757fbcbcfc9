package resume

import (
	"bytes"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ledongthuc/pdf"

	"job-recommender/internal/domain"
)

// Extractor converts uploaded resume bytes into plain text based on the
// file extension.
type Extractor struct {
	logger *slog.Logger
}

// NewExtractor creates a resume text extractor.
func NewExtractor(logger *slog.Logger) *Extractor {
	return &Extractor{logger: logger}
}

// Extract returns the text content of a resume. Supported extensions
// are .pdf, .txt and .text; anything else fails with
// domain.ErrUnsupportedFormat.
func (e *Extractor) Extract(content []byte, extension string) (string, error) {
	switch strings.ToLower(extension) {
	case ".pdf":
		return e.extractPDF(content)
	case ".txt", ".text":
		return string(content), nil
	default:
		return "", fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, extension)
	}
}

func (e *Extractor) extractPDF(content []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("failed to open pdf: %w", err)
	}

	var sb strings.Builder
	skipped := 0
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			// Pages without extractable text contribute nothing,
			// same as unreadable pages in the upstream dataset.
			skipped++
			continue
		}
		sb.WriteString(text)
		sb.WriteString(" ")
	}

	if skipped > 0 {
		e.logger.Warn("pdf_pages_skipped",
			slog.Int("skipped", skipped),
			slog.Int("total", reader.NumPage()))
	}
	return sb.String(), nil
}

var _ domain.TextExtractor = (*Extractor)(nil)
