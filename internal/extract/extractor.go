// Package extract reads paper text from document files for subject prediction.
package extract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultMaxRunes bounds the text handed to the predictor.
const DefaultMaxRunes = 4000

// Extractor extracts plain text, and the abstract within it, from document files.
type Extractor struct {
	maxRunes int
}

// ExtractorOption configures an Extractor.
type ExtractorOption func(*Extractor)

// WithMaxRunes sets the maximum length of extracted abstracts. Zero or less disables the limit.
func WithMaxRunes(n int) ExtractorOption {
	return func(e *Extractor) { e.maxRunes = n }
}

// NewExtractor returns a new Extractor.
func NewExtractor(opts ...ExtractorOption) *Extractor {
	e := &Extractor{maxRunes: DefaultMaxRunes}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract reads the file at path and returns its text content.
// Supported: PDF, DOCX, XLSX, LaTeX and plain text; unknown extensions are read as plain text.
func (e *Extractor) Extract(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read file: %w", err)
	}
	ext := strings.ToLower(filepath.Ext(path))
	return e.ExtractBytes(content, ext)
}

// ExtractBytes extracts text from content based on the given extension.
// ext should include the leading dot (e.g. ".pdf").
func (e *Extractor) ExtractBytes(content []byte, ext string) (string, error) {
	switch ext {
	case ".pdf":
		return extractPDF(content)
	case ".docx":
		return extractDOCX(content)
	case ".xlsx":
		return extractExcel(content)
	default:
		return extractPlain(content)
	}
}

// ExtractAbstract reads the file at path and returns its abstract, or the
// whole text when no abstract section can be found.
func (e *Extractor) ExtractAbstract(path string) (string, error) {
	text, err := e.Extract(path)
	if err != nil {
		return "", err
	}
	abstract := Abstract(text, e.maxRunes)
	if abstract == "" {
		return "", fmt.Errorf("no text found in %s", filepath.Base(path))
	}
	return abstract, nil
}
