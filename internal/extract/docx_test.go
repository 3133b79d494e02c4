package extract

import (
	"archive/zip"
	"bytes"
	"errors"
	"testing"
)

// buildZip assembles an in-memory zip from name/content pairs.
func buildZip(t *testing.T, entries map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range entries {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}

// minimalDocx builds a .docx package whose body is a single text run.
func minimalDocx(text string) []byte {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, _ := zw.Create(docxDocumentXMLPath)
	w.Write([]byte(`<?xml version="1.0"?><w:document><w:body><w:p><w:r><w:t>` +
		text + `</w:t></w:r></w:p></w:body></w:document>`))
	zw.Close()
	return buf.Bytes()
}

func TestExtractDOCX_joinsTextRuns(t *testing.T) {
	content := buildZip(t, map[string]string{
		docxDocumentXMLPath: `<w:document><w:body>` +
			`<w:p><w:r><w:t>First run</w:t></w:r></w:p>` +
			`<w:p><w:r><w:t xml:space="preserve">second run</w:t></w:r></w:p>` +
			`</w:body></w:document>`,
	})
	text, meta, err := extractDOCX(content)
	if err != nil {
		t.Fatalf("extractDOCX: %v", err)
	}
	if text != "First run second run" {
		t.Errorf("got %q", text)
	}
	if meta["document_part"] != docxDocumentXMLPath {
		t.Errorf("document_part = %v", meta["document_part"])
	}
}

func TestExtractDOCX_resolvesMainPartFromContentTypes(t *testing.T) {
	content := buildZip(t, map[string]string{
		contentTypesPath: `<Types><Override PartName="/word/document2.xml" ContentType="` +
			docxMainContentType + `"/></Types>`,
		"word/document2.xml": `<w:document><w:body><w:p><w:r><w:t>Renamed part</w:t></w:r></w:p></w:body></w:document>`,
	})
	text, meta, err := extractDOCX(content)
	if err != nil {
		t.Fatalf("extractDOCX: %v", err)
	}
	if text != "Renamed part" {
		t.Errorf("got %q", text)
	}
	if meta["document_part"] != "word/document2.xml" {
		t.Errorf("document_part = %v", meta["document_part"])
	}
}

func TestExtractDOCX_notAZip(t *testing.T) {
	_, _, err := extractDOCX([]byte("plain text, not an archive"))
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected ParseError, got %v", err)
	}
	if pe.Format != formatDOCX {
		t.Errorf("format = %q", pe.Format)
	}
}

func TestExtractDOCX_missingDocumentPart(t *testing.T) {
	content := buildZip(t, map[string]string{"other.xml": "<x/>"})
	_, _, err := extractDOCX(content)
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected ParseError, got %v", err)
	}
}

func TestExtractDOCX_noTextRuns(t *testing.T) {
	content := buildZip(t, map[string]string{
		docxDocumentXMLPath: `<w:document><w:body><w:p/></w:body></w:document>`,
	})
	_, _, err := extractDOCX(content)
	var ee *EmptyResultError
	if !errors.As(err, &ee) {
		t.Fatalf("expected EmptyResultError, got %v", err)
	}
}
