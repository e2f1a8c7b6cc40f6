package table

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/xuri/excelize/v2"
)

// Columns returns every field seen across rows, id first and the rest sorted.
func Columns(rows []map[string]string) []string {
	seen := map[string]bool{}
	var cols []string
	for _, r := range rows {
		for k := range r {
			if !seen[k] {
				seen[k] = true
				cols = append(cols, k)
			}
		}
	}
	sort.Slice(cols, func(i, j int) bool {
		if cols[i] == "id" || cols[j] == "id" {
			return cols[i] == "id"
		}
		return cols[i] < cols[j]
	})
	return cols
}

// ExportXLSX writes rows to a single-sheet workbook. With no columns given,
// every field is exported.
func ExportXLSX[T any](rows []T, sheet string, columns []string) ([]byte, error) {
	flat := make([]map[string]string, len(rows))
	for i, row := range rows {
		f, err := Flatten(row)
		if err != nil {
			return nil, err
		}
		flat[i] = f
	}
	if len(columns) == 0 {
		columns = Columns(flat)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("table: name sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("table: header style: %w", err)
	}

	for c, name := range columns {
		cell, _ := excelize.CoordinatesToCellName(c+1, 1)
		_ = f.SetCellValue(sheet, cell, name)
		_ = f.SetCellStyle(sheet, cell, cell, bold)
	}
	for r, row := range flat {
		for c, name := range columns {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			_ = f.SetCellValue(sheet, cell, row[name])
		}
	}
	if len(columns) > 0 {
		last, _ := excelize.ColumnNumberToName(len(columns))
		_ = f.SetColWidth(sheet, "A", last, 18)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("table: write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
