// ABOUTME: Document represents one ingested source file in the library
// ABOUTME: Immutable once created; re-uploading the same name replaces it wholesale
package models

import (
	"time"
	"unicode/utf8"
)

// SourceFormat identifies the format a document was extracted from
type SourceFormat string

const (
	FormatPDF  SourceFormat = "pdf"
	FormatText SourceFormat = "text"
	FormatDocx SourceFormat = "docx"
)

// Document is the normalized text of one uploaded source file
type Document struct {
	ID           string       `json:"id"`
	DisplayName  string       `json:"display_name"`
	SourceFormat SourceFormat `json:"source_format"`
	RawText      string       `json:"raw_text"`
	UploadedAt   time.Time    `json:"uploaded_at"`
}

// CharCount returns the length of the extracted text in runes
func (d *Document) CharCount() int {
	return utf8.RuneCountInString(d.RawText)
}
