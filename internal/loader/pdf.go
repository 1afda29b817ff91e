// ABOUTME: PDF text extraction using ledongthuc/pdf
// ABOUTME: Concatenates per-page text; a bad page yields "" instead of failing the document
package loader

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// extractPDF concatenates the extracted text of every page in page order.
// Pages where extraction yields nothing contribute an empty string; only a
// document that cannot be opened at all fails.
func extractPDF(data []byte) (text string, err error) {
	// The pdf package can panic on corrupt cross-reference tables
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("malformed pdf: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("opening pdf: %w", err)
	}

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			// Tolerate unreadable pages; the rest of the document is still useful
			continue
		}
		if sb.Len() > 0 && pageText != "" {
			sb.WriteString("\n")
		}
		sb.WriteString(pageText)
	}
	return sb.String(), nil
}
