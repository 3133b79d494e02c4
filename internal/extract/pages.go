package extract

import (
	"archive/zip"
	"bytes"
	"compress/gzip"
	"encoding/xml"
	"fmt"
	"io"
	"regexp"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
)

// bundleKind names the proprietary container in errors and metadata.
const bundleKind = "pages"

// gzipMagic is the two-byte gzip stream header.
var gzipMagic = []byte{0x1f, 0x8b}

// xmlTextElements is the allow-list of element local names whose character
// data counts as document text. Covers both plain names and the local part
// of format-specific namespaced variants (sf:p, sf:span, sf:text-body).
var xmlTextElements = map[string]bool{
	"text":      true,
	"p":         true,
	"span":      true,
	"content":   true,
	"t":         true,
	"title":     true,
	"text-body": true,
}

// printableRunRe matches runs of at least three printable characters in
// the supported scripts (Latin incl. diacritics, Cyrillic, CJK, Hebrew,
// Arabic). Used by the last-resort raw scan.
var printableRunRe = regexp.MustCompile(`[\p{Latin}\p{Cyrillic}\p{Han}\p{Hiragana}\p{Katakana}\p{Hangul}\p{Hebrew}\p{Arabic}]{3,}`)

// bundleStrategy is one independent attempt at recovering text from the
// container. Strategies return "" (not an error) when their source simply
// is not present; errors are diagnostic only and never break the cascade.
type bundleStrategy struct {
	name string
	run  func(*zip.Reader) (string, error)
}

// extractBundle treats content as a ZIP container and tries each strategy
// in strict priority order: the rendered preview PDF is the most reliable
// source when present, legacy structured markup next (plain, then
// gzip-compressed), and statistical raw-byte scraping is the explicit last
// resort. The first candidate that survives the domain cleanup wins; if no
// strategy produces text the whole extraction fails, never an empty
// success.
func (e *Extractor) extractBundle(content []byte) (string, map[string]any, error) {
	zr, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", nil, &ParseError{Format: bundleKind, Err: fmt.Errorf("not a zip container: %w", err)}
	}

	strategies := []bundleStrategy{
		{"preview_pdf", e.bundlePreview},
		{"legacy_xml", e.bundleLegacyXML},
		{"gzip_xml", e.bundleGzipXML},
		{"raw_scan", e.bundleRawScan},
	}
	for _, strategy := range strategies {
		candidate, err := strategy.run(zr)
		if err != nil {
			e.logger.Debug("bundle strategy failed",
				zap.String("strategy", strategy.name), zap.Error(err))
			continue
		}
		if strings.TrimSpace(candidate) == "" {
			continue
		}
		cleaned := e.cleanBundleText(candidate)
		if cleaned == "" {
			continue
		}
		meta := map[string]any{"strategy": strategy.name}
		return cleaned, meta, nil
	}
	return "", nil, &ContainerError{Kind: bundleKind, Reason: "no readable text recovered by any strategy"}
}

// bundlePreview extracts text from the rendered preview document the
// authoring application embeds (e.g. QuickLook/Preview.pdf).
func (e *Extractor) bundlePreview(zr *zip.Reader) (string, error) {
	for _, f := range zr.File {
		name := strings.ToLower(f.Name)
		if !strings.HasSuffix(name, ".pdf") || !strings.Contains(name, "preview") {
			continue
		}
		data, err := readZipEntry(zr, f.Name)
		if err != nil {
			return "", fmt.Errorf("read %s: %w", f.Name, err)
		}
		text, _, err := pdfText(data)
		if err != nil {
			return "", fmt.Errorf("preview %s: %w", f.Name, err)
		}
		return text, nil
	}
	return "", nil
}

// bundleLegacyXML collects text from the structured markup older format
// versions store as index.xml.
func (e *Extractor) bundleLegacyXML(zr *zip.Reader) (string, error) {
	for _, f := range zr.File {
		name := strings.ToLower(f.Name)
		if name != "index.xml" && !strings.HasSuffix(name, "/index.xml") {
			continue
		}
		data, err := readZipEntry(zr, f.Name)
		if err != nil {
			return "", fmt.Errorf("read %s: %w", f.Name, err)
		}
		return collectXMLText(data)
	}
	return "", nil
}

// bundleGzipXML is the same markup collection for entries whose raw bytes
// are themselves gzip-compressed (index.xml.gz and friends). Entries are
// sniffed by suffix or two-byte magic before being read in full, so large
// binary members cost this strategy nothing.
func (e *Extractor) bundleGzipXML(zr *zip.Reader) (string, error) {
	var collected []string
	for _, f := range zr.File {
		if !strings.HasSuffix(strings.ToLower(f.Name), ".gz") && !hasGzipMagic(f) {
			continue
		}
		data, err := readZipEntry(zr, f.Name)
		if err != nil {
			continue
		}
		gr, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			continue
		}
		plain, err := io.ReadAll(io.LimitReader(gr, int64(e.opts.MaxRawScanBytes)))
		_ = gr.Close()
		if err != nil {
			continue
		}
		text, err := collectXMLText(plain)
		if err != nil || text == "" {
			continue
		}
		collected = append(collected, text)
	}
	return strings.Join(collected, " "), nil
}

// bundleRawScan is the lowest-confidence strategy: scan a bounded prefix
// of every entry for printable runs in the supported scripts, and when
// that recovers almost nothing, additionally scan for UTF-16LE
// printable-ASCII code units.
func (e *Extractor) bundleRawScan(zr *zip.Reader) (string, error) {
	budget := e.opts.MaxRawScanBytes
	var raw []byte
	for _, f := range zr.File {
		if budget <= 0 {
			break
		}
		data, err := readZipEntryLimit(zr, f.Name, budget)
		if err != nil {
			continue
		}
		budget -= len(data)
		raw = append(raw, data...)
		raw = append(raw, 0) // entry boundary, never printable
	}

	lossy := strings.ToValidUTF8(string(raw), " ")
	runs := printableRunRe.FindAllString(lossy, -1)
	text := strings.Join(runs, " ")
	if utf8.RuneCountInString(text) < e.opts.MinTextLen {
		if wide := scanUTF16LE(raw); wide != "" {
			text = strings.TrimSpace(text + " " + wide)
		}
	}
	return text, nil
}

// hasGzipMagic reads only the first two bytes of the entry.
func hasGzipMagic(f *zip.File) bool {
	rc, err := f.Open()
	if err != nil {
		return false
	}
	defer rc.Close()
	var magic [2]byte
	if _, err := io.ReadFull(rc, magic[:]); err != nil {
		return false
	}
	return bytes.Equal(magic[:], gzipMagic)
}

// scanUTF16LE recovers runs of little-endian 16-bit printable-ASCII code
// units (byte pairs <ascii, 0x00>) of length >= 3.
func scanUTF16LE(raw []byte) string {
	var out strings.Builder
	var run []byte
	flush := func() {
		if len(run) >= 3 {
			if out.Len() > 0 {
				out.WriteByte(' ')
			}
			out.Write(run)
		}
		run = run[:0]
	}
	for i := 0; i+1 < len(raw); i += 2 {
		if raw[i] >= 0x20 && raw[i] <= 0x7e && raw[i+1] == 0x00 {
			run = append(run, raw[i])
			continue
		}
		flush()
	}
	flush()
	return out.String()
}

// collectXMLText walks the XML token stream and concatenates character
// data found directly inside allow-listed elements, separated by single
// spaces.
func collectXMLText(data []byte) (string, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	// Pages markup declares the sf: namespace; resolving it is not needed
	// because the allow-list compares local names only.
	dec.Strict = false

	var out strings.Builder
	depth := 0 // nesting depth inside allow-listed elements
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("parse xml: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if xmlTextElements[strings.ToLower(t.Name.Local)] {
				depth++
			}
		case xml.EndElement:
			if xmlTextElements[strings.ToLower(t.Name.Local)] && depth > 0 {
				depth--
			}
		case xml.CharData:
			if depth == 0 {
				continue
			}
			s := strings.TrimSpace(string(t))
			if s == "" {
				continue
			}
			if out.Len() > 0 {
				out.WriteByte(' ')
			}
			out.WriteString(s)
		}
	}
	return out.String(), nil
}

// readZipEntry reads one member of the archive in full.
func readZipEntry(zr *zip.Reader, name string) ([]byte, error) {
	return readZipEntryLimit(zr, name, 0)
}

// readZipEntryLimit reads one member, capped at limit bytes when limit > 0.
func readZipEntryLimit(zr *zip.Reader, name string, limit int) ([]byte, error) {
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, err
		}
		defer rc.Close()
		var r io.Reader = rc
		if limit > 0 {
			r = io.LimitReader(rc, int64(limit))
		}
		return io.ReadAll(r)
	}
	return nil, fmt.Errorf("entry %s not found", name)
}
