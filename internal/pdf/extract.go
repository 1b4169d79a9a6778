package pdf

import (
	"context"
	"fmt"
	"strings"

	fitz "github.com/gen2brain/go-fitz"
)

// Extractor pulls plain text out of PDF documents
type Extractor struct{}

func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns the concatenated text of all pages in the document
func (e *Extractor) Extract(ctx context.Context, data []byte) (string, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	defer doc.Close()

	var sb strings.Builder
	for i := 0; i < doc.NumPage(); i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		text, err := doc.Text(i)
		if err != nil {
			return "", fmt.Errorf("extract text from page %d: %w", i+1, err)
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}

	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", fmt.Errorf("document contains no extractable text")
	}
	return text, nil
}
