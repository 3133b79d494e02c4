package extract

import (
	"strings"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding/charmap"
)

// centralEuropeanLangs are the languages the detector reports for text
// written in ISO-8859-2 or Windows-1250.
var centralEuropeanLangs = map[string]bool{
	"cs": true, "sk": true, "pl": true, "hu": true,
	"ro": true, "sl": true, "hr": true,
}

// decodeText converts raw bytes to a string on a best-effort basis. Valid
// UTF-8 passes through untouched. Otherwise the statistical detector's
// candidates pick an 8-bit codepage; anything it cannot place falls back
// to a lossy UTF-8 interpretation. This function never fails: encoding
// trouble degrades the text, it does not abort the extraction.
func decodeText(content []byte) string {
	if utf8.Valid(content) {
		return string(content)
	}
	if cm := detectCharmap(content); cm != nil {
		if s, err := cm.NewDecoder().String(string(content)); err == nil {
			return s
		}
	}
	return strings.ToValidUTF8(string(content), "�")
}

// detectCharmap chooses the 8-bit codepage for non-UTF-8 content. The
// detector has no models for the Central-European codepages themselves:
// it reports Czech and its neighbors as a generic Latin charset
// (ISO-8859-1) with the language attached. The language is therefore the
// discriminator, not the charset name; the charset names are still
// honored first in case a future detector version grows the models.
// Returns nil when no candidate points at a codepage this core maps.
func detectCharmap(content []byte) *charmap.Charmap {
	detector := chardet.NewTextDetector()
	results, err := detector.DetectAll(content)
	if err != nil {
		return nil
	}
	for _, r := range results {
		switch r.Charset {
		case "ISO-8859-2":
			return charmap.ISO8859_2
		case "windows-1250":
			return charmap.Windows1250
		}
	}
	for _, r := range results {
		if centralEuropeanLangs[r.Language] {
			return centralEuropeanCharmap(content)
		}
	}
	return nil
}

// centralEuropeanCharmap tells the two Central-European codepages apart.
// Windows-1250 places š, ž, ť and their uppercase forms in 0x80-0x9F, a
// range ISO-8859-2 reserves for control codes no text document carries;
// bytes there mean Windows-1250. Without them the two codepages agree on
// every Czech letter, so either decoder yields the same text and
// ISO-8859-2 is used.
func centralEuropeanCharmap(content []byte) *charmap.Charmap {
	for _, b := range content {
		if b >= 0x80 && b <= 0x9f {
			return charmap.Windows1250
		}
	}
	return charmap.ISO8859_2
}
