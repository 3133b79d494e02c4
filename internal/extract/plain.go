package extract

import "strings"

// extractPlain decodes content as text (see decodeText for the encoding
// strategy). Whitespace-only output is an EmptyResultError, never an empty
// success. Also serves as the dispatcher's last-resort fallback for
// unknown extensions and failed structured parses.
func extractPlain(content []byte) (string, map[string]any, error) {
	text := decodeText(content)
	if strings.TrimSpace(text) == "" {
		return "", nil, &EmptyResultError{Format: formatText}
	}
	meta := map[string]any{
		"lines": len(strings.Split(text, "\n")),
	}
	return text, meta, nil
}
