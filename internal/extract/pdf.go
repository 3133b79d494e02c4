package extract

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// extractPDF pulls plain text page by page. Pages that fail individually
// are skipped rather than failing the document; a PDF with no readable
// page at all is an EmptyResultError.
func extractPDF(content []byte) (string, map[string]any, error) {
	text, pages, err := pdfText(content)
	if err != nil {
		return "", nil, &ParseError{Format: formatPDF, Err: err}
	}
	if strings.TrimSpace(text) == "" {
		return "", nil, &EmptyResultError{Format: formatPDF}
	}
	return text, map[string]any{"pages": pages}, nil
}

// pdfText is the shared PDF text routine, also used by the bundle
// preview strategy. Returns the concatenated page text and the page count.
func pdfText(content []byte) (string, int, error) {
	r, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", 0, fmt.Errorf("open PDF: %w", err)
	}
	var buf strings.Builder
	numPages := r.NumPage()
	for i := 1; i <= numPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		if buf.Len() > 0 {
			buf.WriteByte('\n')
		}
		buf.WriteString(text)
	}
	return buf.String(), numPages, nil
}
