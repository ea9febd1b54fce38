package cv

import (
	"bytes"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"code.sajari.com/docconv"
	"github.com/pkg/errors"

	"talent-search/internal/apperr"
)

// TextExtractor turns an uploaded document into plain text.
type TextExtractor interface {
	Extract(filename string, data []byte) (string, error)
}

type Parser struct {
	maxBytes int64
}

func NewParser(maxBytes int64) *Parser {
	return &Parser{maxBytes: maxBytes}
}

// Allowed reports whether filename has a supported extension.
func Allowed(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf", ".txt":
		return true
	}
	return false
}

// Extract returns the text of a PDF or plain-text resume.
func (p *Parser) Extract(filename string, data []byte) (string, error) {
	if !Allowed(filename) {
		return "", apperr.InvalidInput("Only PDF and TXT files are allowed", nil)
	}
	if p.maxBytes > 0 && int64(len(data)) > p.maxBytes {
		return "", apperr.InvalidInput("File is too large", nil)
	}

	var text string
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		res, err := docconv.Convert(bytes.NewReader(data), "application/pdf", false)
		if err != nil {
			return "", apperr.InvalidInput("Failed to read PDF file", errors.Wrap(err, "failed to parse document"))
		}
		text = res.Body
	case ".txt":
		if !utf8.Valid(data) {
			return "", apperr.InvalidInput("Text file is not valid UTF-8", nil)
		}
		text = string(data)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", apperr.InvalidInput("Could not extract any text from the file", nil)
	}
	return text, nil
}
