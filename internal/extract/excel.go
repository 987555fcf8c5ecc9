package extract

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// extractExcel reads the first sheet. When its header row has an "abstract"
// column, the first non-empty abstract below it is returned; otherwise every
// row is returned tab separated.
func extractExcel(content []byte) (string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return "", fmt.Errorf("open Excel: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return "", nil
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return "", fmt.Errorf("get rows for sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return "", nil
	}

	col := -1
	for i, h := range rows[0] {
		if strings.EqualFold(strings.TrimSpace(h), "abstract") {
			col = i
			break
		}
	}
	if col >= 0 {
		for _, row := range rows[1:] {
			if col < len(row) && strings.TrimSpace(row[col]) != "" {
				return strings.TrimSpace(row[col]), nil
			}
		}
		return "", nil
	}

	var buf strings.Builder
	for _, row := range rows {
		buf.WriteString(strings.Join(row, "\t"))
		buf.WriteByte('\n')
	}
	return strings.TrimSpace(buf.String()), nil
}
