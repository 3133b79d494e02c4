package extract

import (
	"bytes"
	"errors"
	"testing"

	"github.com/xuri/excelize/v2"
)

func workbookBytes(t *testing.T, cells map[string]string) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for ref, value := range cells {
		if err := f.SetCellValue("Sheet1", ref, value); err != nil {
			t.Fatalf("SetCellValue %s: %v", ref, err)
		}
	}
	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo: %v", err)
	}
	return buf.Bytes()
}

func TestExtractXLSX(t *testing.T) {
	content := workbookBytes(t, map[string]string{
		"A1": "Polozka",
		"B1": "Cena",
		"A2": "Dilo",
		"B2": "1200",
	})
	text, meta, err := extractXLSX(content)
	if err != nil {
		t.Fatalf("extractXLSX: %v", err)
	}
	want := "Sheet: Sheet1\nPolozka\tCena\nDilo\t1200"
	if text != want {
		t.Errorf("got %q, want %q", text, want)
	}
	sheets, ok := meta["sheets"].([]string)
	if !ok || len(sheets) != 1 || sheets[0] != "Sheet1" {
		t.Errorf("sheets = %v", meta["sheets"])
	}
}

func TestExtractXLSX_emptyWorkbook(t *testing.T) {
	content := workbookBytes(t, nil)
	_, _, err := extractXLSX(content)
	var ee *EmptyResultError
	if !errors.As(err, &ee) {
		t.Fatalf("expected EmptyResultError, got %v", err)
	}
}

func TestExtractXLSX_notAWorkbook(t *testing.T) {
	_, _, err := extractXLSX([]byte("not a zip"))
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected ParseError, got %v", err)
	}
	if pe.Format != formatXLSX {
		t.Errorf("format = %q", pe.Format)
	}
}

func TestExtractXLS_notAWorkbook(t *testing.T) {
	_, _, err := extractXLS([]byte("garbage that is not a compound file"))
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected ParseError, got %v", err)
	}
	if pe.Format != formatXLS {
		t.Errorf("format = %q", pe.Format)
	}
}

func TestAllSheetHeadersOnly(t *testing.T) {
	if !allSheetHeadersOnly([]string{"Sheet1"}, "Sheet: Sheet1") {
		t.Error("header-only text must report true")
	}
	if allSheetHeadersOnly([]string{"Sheet1"}, "Sheet: Sheet1\ncontent") {
		t.Error("text with content must report false")
	}
}
