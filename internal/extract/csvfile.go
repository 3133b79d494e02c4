package extract

import (
	"encoding/csv"
	"fmt"
	"strings"
)

// csvColumnJoin separates column values in the serialized output.
const csvColumnJoin = " | "

// extractCSV labels the first record "Header:" and each following record
// "Row N:", joining columns with a separator token so typed values stay
// attributable to their column when the text is searched.
func extractCSV(content []byte) (string, map[string]any, error) {
	r := csv.NewReader(strings.NewReader(decodeText(content)))
	r.FieldsPerRecord = -1 // ragged rows are fine, this is for search, not validation
	records, err := r.ReadAll()
	if err != nil {
		return "", nil, &ParseError{Format: formatCSV, Err: err}
	}
	hasContent := false
	for _, record := range records {
		for _, field := range record {
			if strings.TrimSpace(field) != "" {
				hasContent = true
			}
		}
	}
	if !hasContent {
		return "", nil, &EmptyResultError{Format: formatCSV}
	}

	var buf strings.Builder
	for i, record := range records {
		if i == 0 {
			buf.WriteString("Header: ")
		} else {
			buf.WriteByte('\n')
			fmt.Fprintf(&buf, "Row %d: ", i)
		}
		buf.WriteString(strings.Join(record, csvColumnJoin))
	}
	text := buf.String()
	meta := map[string]any{
		"rows":    len(records) - 1,
		"columns": len(records[0]),
	}
	return text, meta, nil
}
