package extract

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"
)

// extractXLSX serializes an OOXML workbook: each sheet prefixed with a
// "Sheet: <name>" header, rows tab-joined, sheets separated by blank lines.
func extractXLSX(content []byte) (string, map[string]any, error) {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return "", nil, &ParseError{Format: formatXLSX, Err: fmt.Errorf("open workbook: %w", err)}
	}
	defer f.Close()

	var buf strings.Builder
	sheets := f.GetSheetList()
	for _, sheet := range sheets {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return "", nil, &ParseError{Format: formatXLSX, Err: fmt.Errorf("sheet %q: %w", sheet, err)}
		}
		writeSheet(&buf, sheet, rows)
	}
	text := strings.TrimSpace(buf.String())
	if text == "" || allSheetHeadersOnly(sheets, text) {
		return "", nil, &EmptyResultError{Format: formatXLSX}
	}
	return text, map[string]any{"sheets": sheets}, nil
}

// extractXLS handles the legacy binary workbook format.
func extractXLS(content []byte) (string, map[string]any, error) {
	wb, err := xls.OpenReader(bytes.NewReader(content), "utf-8")
	if err != nil {
		return "", nil, &ParseError{Format: formatXLS, Err: fmt.Errorf("open workbook: %w", err)}
	}

	var buf strings.Builder
	var sheets []string
	for i := 0; i < wb.NumSheets(); i++ {
		sheet := wb.GetSheet(i)
		if sheet == nil {
			continue
		}
		sheets = append(sheets, sheet.Name)
		var rows [][]string
		for r := 0; r <= int(sheet.MaxRow); r++ {
			row := sheet.Row(r)
			if row == nil {
				continue
			}
			var cells []string
			for c := row.FirstCol(); c < row.LastCol(); c++ {
				cells = append(cells, row.Col(c))
			}
			rows = append(rows, cells)
		}
		writeSheet(&buf, sheet.Name, rows)
	}
	text := strings.TrimSpace(buf.String())
	if text == "" || allSheetHeadersOnly(sheets, text) {
		return "", nil, &EmptyResultError{Format: formatXLS}
	}
	return text, map[string]any{"sheets": sheets}, nil
}

// writeSheet appends one sheet block: header line, then tab-joined rows.
func writeSheet(buf *strings.Builder, name string, rows [][]string) {
	if buf.Len() > 0 {
		buf.WriteString("\n\n")
	}
	buf.WriteString("Sheet: ")
	buf.WriteString(name)
	for _, row := range rows {
		line := strings.TrimSpace(strings.Join(row, "\t"))
		if line == "" {
			continue
		}
		buf.WriteByte('\n')
		buf.WriteString(strings.Join(row, "\t"))
	}
}

// allSheetHeadersOnly reports whether text carries nothing beyond the
// generated sheet headers, i.e. the workbook had no cell content.
func allSheetHeadersOnly(sheets []string, text string) bool {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "Sheet: ") {
			continue
		}
		return false
	}
	return true
}
