// Package models defines the value types passed between the extraction
// core, the analysis client, and the HTTP layer.
package models

// RawDocument is one uploaded document: raw bytes plus what the caller
// told us about them. Immutable input; the declared MIME type is
// informational only and never overrides the extension-driven format choice.
type RawDocument struct {
	Content  []byte
	Filename string
	MIMEType string
}

// ExtractionResult is the outcome of one extraction attempt. Exactly one
// is returned per attempt and it is never mutated after construction; a
// retry produces a new result. JSON field names match the upload API.
type ExtractionResult struct {
	Success  bool           `json:"success"`
	Text     string         `json:"extractedText,omitempty"`
	Error    string         `json:"error,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// Length returns the extracted character count (runes, not bytes).
func (r *ExtractionResult) Length() int {
	return len([]rune(r.Text))
}
