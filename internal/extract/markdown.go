package extract

import (
	"regexp"
	"strings"
)

// Markdown syntax is stripped by direct substitution; the goal is readable
// search text, not a rendering.
var (
	mdHeadingRe  = regexp.MustCompile(`(?m)^#{1,6}[ \t]+`)
	mdImageRe    = regexp.MustCompile(`!\[([^\]]*)\]\([^)]*\)`)
	mdLinkRe     = regexp.MustCompile(`\[([^\]]*)\]\([^)]*\)`)
	mdBoldRe     = regexp.MustCompile(`(\*\*|__)([^*_]+)(\*\*|__)`)
	mdEmphasisRe = regexp.MustCompile(`(\*|_)([^*_]+)(\*|_)`)
	mdCodeRe     = regexp.MustCompile("`+([^`]*)`+")
	mdFenceRe    = regexp.MustCompile("(?m)^```[^\n]*$")
	mdQuoteRe    = regexp.MustCompile(`(?m)^>[ \t]?`)
	mdBulletRe   = regexp.MustCompile(`(?m)^[ \t]*[-*+][ \t]+`)
	mdRuleRe     = regexp.MustCompile(`(?m)^[ \t]*([-*_][ \t]*){3,}$`)
)

// extractMarkdown decodes content as text and strips heading, emphasis,
// link, and related markup so only the written words remain.
func extractMarkdown(content []byte) (string, map[string]any, error) {
	text := decodeText(content)
	text = mdFenceRe.ReplaceAllString(text, "")
	text = mdImageRe.ReplaceAllString(text, "$1")
	text = mdLinkRe.ReplaceAllString(text, "$1")
	text = mdHeadingRe.ReplaceAllString(text, "")
	text = mdBoldRe.ReplaceAllString(text, "$2")
	text = mdEmphasisRe.ReplaceAllString(text, "$2")
	text = mdCodeRe.ReplaceAllString(text, "$1")
	text = mdQuoteRe.ReplaceAllString(text, "")
	text = mdBulletRe.ReplaceAllString(text, "")
	text = mdRuleRe.ReplaceAllString(text, "")

	if strings.TrimSpace(text) == "" {
		return "", nil, &EmptyResultError{Format: formatMarkdown}
	}
	return text, nil, nil
}
