package extract

import (
	"bytes"
	"errors"
	"regexp"
	"strings"

	"github.com/lu4p/cat/rtftxt"
)

var errNotRTF = errors.New(`missing {\rtf header`)

var (
	rtfControlRe = regexp.MustCompile(`\\[a-zA-Z]+-?\d*[ ]?`)
	rtfHexRe     = regexp.MustCompile(`\\'[0-9a-fA-F]{2}`)
	rtfGroupRe   = regexp.MustCompile(`[{}]`)
)

// extractRTF decodes an RTF document via the rtftxt tokenizer. When the
// tokenizer fails or yields nothing, control words and group braces are
// stripped by direct substitution instead, which recovers the visible text
// of most simple documents.
func extractRTF(content []byte) (string, map[string]any, error) {
	if !bytes.HasPrefix(bytes.TrimSpace(content), []byte(`{\rtf`)) {
		return "", nil, &ParseError{Format: formatRTF, Err: errNotRTF}
	}
	text := ""
	if buf, err := rtftxt.Text(bytes.NewReader(content)); err == nil {
		text = buf.String()
	}
	if strings.TrimSpace(text) == "" {
		text = stripRTF(decodeText(content))
	}
	if strings.TrimSpace(text) == "" {
		return "", nil, &EmptyResultError{Format: formatRTF}
	}
	return text, nil, nil
}

// stripRTF removes RTF control words, hex escapes, and group braces.
func stripRTF(s string) string {
	s = rtfHexRe.ReplaceAllString(s, " ")
	s = rtfControlRe.ReplaceAllString(s, "")
	s = rtfGroupRe.ReplaceAllString(s, "")
	return s
}
