package export

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
)

const (
	// MaxSheetNameLength is the longest sheet name a workbook accepts
	MaxSheetNameLength = 31
	// DefaultSheetName names the sheet of an unnamed single table
	DefaultSheetName = "Data"

	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var sheetNameReplacer = strings.NewReplacer(
	":", "_", "\\", "_", "/", "_", "?", "_", "*", "_", "[", "_", "]", "_",
)

// SheetNames returns a valid, unique sheet name per table. Names are cleaned,
// cut to MaxSheetNameLength runes and, on collision, suffixed with ~N.
func SheetNames(tables []Table) []string {
	out := make([]string, len(tables))
	used := make(map[string]bool, len(tables))
	for i, t := range tables {
		base := strings.Trim(sheetNameReplacer.Replace(t.Name), "' ")
		if base == "" {
			base = DefaultSheetName
		}
		name := truncateRunes(base, MaxSheetNameLength)
		for n := 1; used[strings.ToLower(name)]; n++ {
			suffix := fmt.Sprintf("~%d", n)
			name = truncateRunes(base, MaxSheetNameLength-len(suffix)) + suffix
		}
		used[strings.ToLower(name)] = true
		out[i] = name
	}
	return out
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n])
}

// ColumnWidths returns the width of every column of t: the longest of the
// header and the values, plus padding, capped at maxWidth.
func ColumnWidths(t Table, maxWidth int) []float64 {
	widths := make([]float64, len(t.Columns))
	for i, col := range t.Columns {
		longest := utf8.RuneCountInString(col)
		for _, row := range t.Rows {
			if i >= len(row) {
				continue
			}
			if n := utf8.RuneCountInString(display(row[i])); n > longest {
				longest = n
			}
		}
		widths[i] = float64(min(longest+2, maxWidth))
	}
	return widths
}

// writeXLSX renders one sheet per table
func writeXLSX(tables []Table, maxWidth int) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	names := SheetNames(tables)
	first := f.GetSheetName(0)
	for i, t := range tables {
		sheet := names[i]
		if i == 0 {
			if err := f.SetSheetName(first, sheet); err != nil {
				return nil, fmt.Errorf("rename sheet %q: %w", sheet, err)
			}
		} else if _, err := f.NewSheet(sheet); err != nil {
			return nil, fmt.Errorf("create sheet %q: %w", sheet, err)
		}
		if err := writeSheet(f, sheet, t, maxWidth); err != nil {
			return nil, fmt.Errorf("write sheet %q: %w", sheet, err)
		}
	}
	f.SetActiveSheet(0)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeSheet(f *excelize.File, sheet string, t Table, maxWidth int) error {
	if len(t.Columns) == 0 {
		return nil
	}
	sw, err := f.NewStreamWriter(sheet)
	if err != nil {
		return err
	}
	for i, w := range ColumnWidths(t, maxWidth) {
		if err := sw.SetColWidth(i+1, i+1, w); err != nil {
			return err
		}
	}

	header := make([]any, len(t.Columns))
	for i, c := range t.Columns {
		header[i] = c
	}
	if err := sw.SetRow("A1", header); err != nil {
		return err
	}
	for r, row := range t.Rows {
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		values := make([]any, len(t.Columns))
		for i := range values {
			if i < len(row) {
				values[i] = cellValue(row[i])
			}
		}
		if err := sw.SetRow(cell, values); err != nil {
			return err
		}
	}
	return sw.Flush()
}

// cellValue keeps numbers and booleans typed and renders everything else as text
func cellValue(v any) any {
	switch x := v.(type) {
	case nil, string, bool,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return x
	case time.Time:
		return x.Format(time.RFC3339)
	default:
		return display(x)
	}
}
