package extract

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	spaceRunRe   = regexp.MustCompile(`[ \t]+`)
	lineEdgeRe   = regexp.MustCompile(` *\n *`)
	newlineRunRe = regexp.MustCompile(`\n{3,}`)

	wsRunRe          = regexp.MustCompile(`\s+`)
	spaceBeforePunct = regexp.MustCompile(` +([,.;:!?])`)
	punctNoSpace     = regexp.MustCompile(`([,.;:!?])([^\s,.;:!?])`)
)

// Normalize is the general post-extraction pass applied to every result:
// control characters are stripped (newlines survive), horizontal
// whitespace runs collapse to one space, line edges are trimmed, and runs
// of blank lines collapse to a single blank line. Idempotent.
func Normalize(s string) string {
	s = strings.Map(func(r rune) rune {
		switch {
		case r == '\n':
			return r
		case r == '\t':
			return ' '
		case unicode.IsControl(r):
			return -1
		}
		return r
	}, s)
	s = spaceRunRe.ReplaceAllString(s, " ")
	s = lineEdgeRe.ReplaceAllString(s, "\n")
	s = newlineRunRe.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}

// normalizeSpacing flattens all whitespace to single spaces and fixes
// punctuation spacing: no space before ,.;:!? and exactly one after.
// Applied to bundle-cascade output, where line structure is already lost.
// Idempotent.
func normalizeSpacing(s string) string {
	s = wsRunRe.ReplaceAllString(s, " ")
	s = spaceBeforePunct.ReplaceAllString(s, "$1")
	s = punctNoSpace.ReplaceAllString(s, "$1 $2")
	return strings.TrimSpace(s)
}

// cleanBundleText isolates real language content from the layout and
// metadata noise that low-confidence bundle strategies drag along.
// Precedence: matched domain phrases win outright; otherwise the word-run
// heuristic; if that stays under MinTextLen characters, the first
// FallbackWords word-like tokens of the whole candidate.
func (e *Extractor) cleanBundleText(candidate string) string {
	out := e.matchDomainPhrases(candidate)
	if out == "" {
		out = e.keepWordRuns(candidate)
		if utf8.RuneCountInString(out) < e.opts.MinTextLen {
			if fb := e.firstWordTokens(candidate); fb != "" {
				out = fb
			}
		}
	}
	return normalizeSpacing(out)
}

// matchDomainPhrases returns the concatenation of all domain allow-list
// matches, or "". Matched domain phrases are far more likely to be genuine
// content than anything else a heuristic strategy scraped up, so when any
// match, everything else is deliberately discarded.
func (e *Extractor) matchDomainPhrases(candidate string) string {
	var matches []string
	for _, re := range e.domainRes {
		matches = append(matches, re.FindAllString(candidate, -1)...)
	}
	return strings.Join(matches, " ")
}

// keepWordRuns splits the candidate on whitespace, drops tokens that look
// like metadata or binary artifacts, and keeps a run of surviving tokens
// only if it accumulates MinRunWords recognizable words before sentence
// punctuation or a dropped token breaks it.
func (e *Extractor) keepWordRuns(candidate string) string {
	var kept, run []string
	words := 0
	flush := func() {
		if words >= e.opts.MinRunWords {
			kept = append(kept, run...)
		}
		run = run[:0]
		words = 0
	}
	for _, tok := range strings.Fields(candidate) {
		if e.isNoiseToken(tok) {
			flush()
			continue
		}
		run = append(run, tok)
		if e.isWordToken(tok) {
			words++
		}
		if endsSentence(tok) {
			flush()
		}
	}
	flush()
	return strings.Join(kept, " ")
}

// firstWordTokens is the last-resort cleanup: the first FallbackWords
// word-like tokens from the candidate, deny-list still applied.
func (e *Extractor) firstWordTokens(candidate string) string {
	var kept []string
	for _, tok := range strings.Fields(candidate) {
		if e.isDenied(tok) {
			continue
		}
		if e.isWordToken(tok) {
			kept = append(kept, tok)
			if len(kept) >= e.opts.FallbackWords {
				break
			}
		}
	}
	return strings.Join(kept, " ")
}

// isNoiseToken reports whether tok looks like a metadata or binary
// artifact: all-uppercase identifiers, tokens with runes outside the
// expected alphabets, or deny-listed format vocabulary.
func (e *Extractor) isNoiseToken(tok string) bool {
	if e.isDenied(tok) {
		return true
	}
	letters, upper := 0, 0
	for _, r := range tok {
		if !allowedRune(r) {
			return true
		}
		if unicode.IsLetter(r) {
			letters++
			if unicode.IsUpper(r) {
				upper++
			}
		}
	}
	return letters >= 3 && letters == upper
}

func (e *Extractor) isDenied(tok string) bool {
	trimmed := strings.ToLower(strings.Trim(tok, ".,;:!?()\"'"))
	_, ok := e.noiseWords[trimmed]
	return ok
}

// isWordToken reports whether tok counts as a target-language word:
// at least MinWordLetters letters of the target alphabet, diacritics
// included.
func (e *Extractor) isWordToken(tok string) bool {
	letters := 0
	for _, r := range tok {
		if unicode.Is(unicode.Latin, r) {
			letters++
			if letters >= e.opts.MinWordLetters {
				return true
			}
		}
	}
	return false
}

// allowedRune reports whether r belongs to the alphabets expected in
// genuine document text: target-alphabet letters, digits, and common
// punctuation.
func allowedRune(r rune) bool {
	if unicode.Is(unicode.Latin, r) || unicode.IsDigit(r) {
		return true
	}
	return strings.ContainsRune(`.,;:!?()[]"'%&@+*/=§€$-–—_`, r)
}

func endsSentence(tok string) bool {
	return strings.HasSuffix(tok, ".") || strings.HasSuffix(tok, "!") || strings.HasSuffix(tok, "?")
}
