// Package extract converts uploaded document bytes into plain text.
//
// The dispatcher picks a format-specific extractor from the filename
// extension, falls back to plain text exactly once on failure, and
// normalizes whatever comes out. The .pages path runs a cascade of
// heuristic strategies, best-structured source first.
package extract

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/docfox/textract/internal/models"
	"go.uber.org/zap"
)

// Format names used in metadata and error messages.
const (
	formatText     = "text"
	formatPDF      = "pdf"
	formatDOCX     = "docx"
	formatXLSX     = "xlsx"
	formatXLS      = "xls"
	formatRTF      = "rtf"
	formatCSV      = "csv"
	formatMarkdown = "markdown"
	formatPages    = bundleKind
)

// Options tunes the bundle cascade cleanup. The thresholds are deliberate
// knobs, not constants: the upstream heuristic had no principled values
// for them.
type Options struct {
	// DomainPhrases are regular expressions for expected-content phrases;
	// any match makes the cleanup keep matches only.
	DomainPhrases []string
	// NoiseWords is the deny-list of format/library vocabulary dropped
	// during word classification.
	NoiseWords []string
	// MinRunWords is the number of recognized words a token run needs to
	// be kept.
	MinRunWords int
	// MinWordLetters is the number of target-alphabet letters a token
	// needs to count as a word.
	MinWordLetters int
	// MinTextLen is the character count under which cleanup falls through
	// to the next heuristic.
	MinTextLen int
	// FallbackWords caps the last-resort token harvest.
	FallbackWords int
	// MaxRawScanBytes bounds the raw-byte scan over bundle entries.
	MaxRawScanBytes int
}

// DefaultOptions returns the tuning used when the config does not say
// otherwise.
func DefaultOptions() Options {
	return Options{
		DomainPhrases:   DefaultDomainPhrases(),
		NoiseWords:      DefaultNoiseWords(),
		MinRunWords:     3,
		MinWordLetters:  3,
		MinTextLen:      100,
		FallbackWords:   100,
		MaxRawScanBytes: 1 << 20,
	}
}

// Extractor turns document bytes into plain text. It keeps no state
// between calls; concurrent extractions need no coordination.
type Extractor struct {
	opts       Options
	domainRes  []*regexp.Regexp
	noiseWords map[string]struct{}
	logger     *zap.Logger
}

// NewExtractor compiles the domain phrase patterns and returns a ready
// Extractor. Returns an error when a configured pattern does not compile.
func NewExtractor(opts Options, logger *zap.Logger) (*Extractor, error) {
	def := DefaultOptions()
	if opts.DomainPhrases == nil {
		opts.DomainPhrases = def.DomainPhrases
	}
	if opts.NoiseWords == nil {
		opts.NoiseWords = def.NoiseWords
	}
	if opts.MinRunWords <= 0 {
		opts.MinRunWords = def.MinRunWords
	}
	if opts.MinWordLetters <= 0 {
		opts.MinWordLetters = def.MinWordLetters
	}
	if opts.MinTextLen <= 0 {
		opts.MinTextLen = def.MinTextLen
	}
	if opts.FallbackWords <= 0 {
		opts.FallbackWords = def.FallbackWords
	}
	if opts.MaxRawScanBytes <= 0 {
		opts.MaxRawScanBytes = def.MaxRawScanBytes
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	e := &Extractor{
		opts:       opts,
		noiseWords: make(map[string]struct{}, len(opts.NoiseWords)),
		logger:     logger,
	}
	for _, pattern := range opts.DomainPhrases {
		re, err := regexp.Compile("(?i)" + pattern)
		if err != nil {
			return nil, fmt.Errorf("domain phrase %q: %w", pattern, err)
		}
		e.domainRes = append(e.domainRes, re)
	}
	for _, w := range opts.NoiseWords {
		e.noiseWords[strings.ToLower(w)] = struct{}{}
	}
	return e, nil
}

// extractFunc is the uniform per-format contract.
type extractFunc func(content []byte) (string, map[string]any, error)

// formatFor maps an extension (with leading dot, lowercased) to the format
// name and extractor. Unknown extensions are treated as plain text.
func (e *Extractor) formatFor(ext string) (string, extractFunc) {
	switch ext {
	case ".pdf":
		return formatPDF, extractPDF
	case ".docx":
		return formatDOCX, extractDOCX
	case ".pages":
		return formatPages, e.extractBundle
	case ".rtf":
		return formatRTF, extractRTF
	case ".xlsx":
		return formatXLSX, extractXLSX
	case ".xls":
		return formatXLS, extractXLS
	case ".csv":
		return formatCSV, extractCSV
	case ".md", ".markdown":
		return formatMarkdown, extractMarkdown
	default:
		return formatText, extractPlain
	}
}

// Extract converts content to plain text. The format is chosen from the
// filename's extension alone; mimeType is recorded but never overrides it.
// When the chosen extractor fails, one plain-text fallback attempt is made
// before giving up; the failure result keeps the original format's error
// so the caller can message the user precisely.
func (e *Extractor) Extract(content []byte, filename, mimeType string) *models.ExtractionResult {
	ext := strings.ToLower(filepath.Ext(filename))
	format, fn := e.formatFor(ext)

	text, meta, err := fn(content)
	if err != nil && format != formatText {
		e.logger.Debug("extraction failed, trying plain-text fallback",
			zap.String("filename", filename),
			zap.String("format", format),
			zap.Error(err))
		if fbText, fbMeta, fbErr := extractPlain(content); fbErr == nil {
			text, meta, err = fbText, fbMeta, nil
			format = formatText
		}
	}
	if err != nil {
		e.logger.Info("extraction failed",
			zap.String("filename", filename),
			zap.String("format", format),
			zap.Error(err))
		return failureResult(format, mimeType, err)
	}

	text = Normalize(text)
	if text == "" {
		err = &EmptyResultError{Format: format}
		return failureResult(format, mimeType, err)
	}

	if meta == nil {
		meta = map[string]any{}
	}
	meta["format"] = format
	if mimeType != "" {
		meta["declared_mime_type"] = mimeType
	}
	result := &models.ExtractionResult{
		Success:  true,
		Text:     text,
		Metadata: meta,
	}
	result.Metadata["length"] = result.Length()
	e.logger.Debug("extraction succeeded",
		zap.String("filename", filename),
		zap.String("format", format),
		zap.Int("length", result.Length()))
	return result
}

// ExtractDocument is Extract over the RawDocument value type.
func (e *Extractor) ExtractDocument(doc *models.RawDocument) *models.ExtractionResult {
	return e.Extract(doc.Content, doc.Filename, doc.MIMEType)
}

func failureResult(format, mimeType string, err error) *models.ExtractionResult {
	meta := map[string]any{
		"format":     format,
		"length":     0,
		"error_kind": errorKind(err),
	}
	if mimeType != "" {
		meta["declared_mime_type"] = mimeType
	}
	return &models.ExtractionResult{
		Success:  false,
		Error:    err.Error(),
		Metadata: meta,
	}
}

// errorKind classifies a failure so the caller can message "file has no
// readable text" differently from "file corrupt".
func errorKind(err error) string {
	var (
		empty     *EmptyResultError
		parse     *ParseError
		container *ContainerError
	)
	switch {
	case errors.As(err, &empty):
		return "empty"
	case errors.As(err, &container):
		return "container"
	case errors.As(err, &parse):
		return "parse"
	default:
		return "unknown"
	}
}
