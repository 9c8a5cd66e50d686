// Package resume extracts plain text from uploaded résumé files.
package resume

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ExtractText returns the plain text of a résumé based on its content type.
// Applications only accept PDFs, but text/plain is handled for stored legacy
// objects.
func ExtractText(contentType string, data []byte) (string, error) {
	switch contentType {
	case "text/plain":
		return string(data), nil
	case "application/pdf":
		return extractPDFText(data)
	default:
		return "", fmt.Errorf("unsupported file type: %s", contentType)
	}
}

// DetectType sniffs the payload of a stored résumé object. Uploads are
// always PDFs, but older objects may hold plain text.
func DetectType(data []byte) string {
	if bytes.HasPrefix(data, []byte("%PDF")) {
		return "application/pdf"
	}
	return "text/plain"
}

func extractPDFText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to read pdf: %w", err)
	}

	var textBuilder strings.Builder
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, _ := page.GetPlainText(nil)
		textBuilder.WriteString(text)
	}
	return textBuilder.String(), nil
}
