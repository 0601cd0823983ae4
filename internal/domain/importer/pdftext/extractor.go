// Package pdftext pulls plain text rows out of PDF statement documents.
package pdftext

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dslipak/pdf"
)

// ErrDocumentUnreadable is returned when the document is not a PDF or its
// content streams cannot be decoded.
var ErrDocumentUnreadable = errors.New("document unreadable")

// Extractor converts PDF bytes into row-ordered plain text.
type Extractor struct {
	logger *slog.Logger
}

func NewExtractor(logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{logger: logger}
}

// Extract returns the document text with one statement row per line, pages
// in order. A page whose text cannot be decoded is skipped with a warning;
// the whole document fails only when it cannot be opened at all.
func (e *Extractor) Extract(data []byte) (text string, err error) {
	// The underlying reader panics on some malformed xref tables instead
	// of returning an error.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrDocumentUnreadable, r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDocumentUnreadable, err)
	}

	var rows []string
	for pageNo := 1; pageNo <= reader.NumPage(); pageNo++ {
		page := reader.Page(pageNo)
		if page.V.IsNull() {
			continue
		}
		pageRows, err := page.GetTextByRow()
		if err != nil {
			e.logger.Warn("skipping unreadable page", slog.Int("page", pageNo), slog.Any("error", err))
			continue
		}
		for _, row := range pageRows {
			var b strings.Builder
			for i, t := range row.Content {
				if i > 0 {
					b.WriteByte(' ')
				}
				b.WriteString(t.S)
			}
			if b.Len() > 0 {
				rows = append(rows, b.String())
			}
		}
	}

	return strings.Join(rows, "\n"), nil
}
