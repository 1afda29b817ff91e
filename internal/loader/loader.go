// ABOUTME: Document loader that extracts raw text from uploaded source files
// ABOUTME: Dispatches on declared extension with content sniffing fallback
package loader

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/harper/studygen/internal/models"
)

// ErrUnsupportedFormat is returned when a file is neither PDF, DOCX, nor plain text
var ErrUnsupportedFormat = errors.New("unsupported document format")

// LoadError wraps any failure to load one document. It is fatal to that
// document only, never to the session.
type LoadError struct {
	File   string
	Format models.SourceFormat
	Err    error
}

func (e *LoadError) Error() string {
	if e.Format != "" {
		return fmt.Sprintf("loading %s (%s): %v", e.File, e.Format, e.Err)
	}
	return fmt.Sprintf("loading %s: %v", e.File, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// EncodingError indicates a plain-text file that is not valid UTF-8
type EncodingError struct {
	Offset int
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("invalid UTF-8 byte sequence at offset %d", e.Offset)
}

// Load extracts the text of one uploaded file and returns an immutable
// Document. It never mutates shared state; the caller registers the result
// in the library.
func Load(filename string, data []byte) (*models.Document, error) {
	format := detectFormat(filename, data)

	var (
		text string
		err  error
	)
	switch format {
	case models.FormatPDF:
		text, err = extractPDF(data)
	case models.FormatDocx:
		text, err = extractDocx(data)
	case models.FormatText:
		text, err = decodeText(data)
	default:
		return nil, &LoadError{File: filename, Err: ErrUnsupportedFormat}
	}
	if err != nil {
		return nil, &LoadError{File: filename, Format: format, Err: err}
	}

	return &models.Document{
		ID:           "doc_" + uuid.New().String(),
		DisplayName:  filepath.Base(filename),
		SourceFormat: format,
		RawText:      text,
		UploadedAt:   time.Now(),
	}, nil
}

// detectFormat resolves the source format from the file extension, falling
// back to magic-byte sniffing when the extension is missing or unknown.
func detectFormat(filename string, data []byte) models.SourceFormat {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return models.FormatPDF
	case ".docx":
		return models.FormatDocx
	case ".txt", ".text", ".md":
		return models.FormatText
	}

	if len(data) >= 5 && string(data[:5]) == "%PDF-" {
		return models.FormatPDF
	}
	// DOCX files are ZIP archives
	if len(data) >= 4 && string(data[:4]) == "PK\x03\x04" {
		return models.FormatDocx
	}
	return ""
}
