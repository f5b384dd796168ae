package export

import (
	"archive/zip"
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"
)

const (
	ContentTypeCSV = "text/csv; charset=utf-8"
	ContentTypeZIP = "application/zip"
)

var fileNameReplacer = strings.NewReplacer(
	"/", "_", "\\", "_", "\"", "_", ":", "_", "*", "_", "?", "_", "<", "_", ">", "_", "|", "_",
)

func writeCSV(t Table) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if len(t.Columns) > 0 {
		if err := w.Write(t.Columns); err != nil {
			return nil, err
		}
	}
	record := make([]string, len(t.Columns))
	for _, row := range t.Rows {
		for i := range record {
			record[i] = ""
			if i < len(row) {
				record[i] = display(row[i])
			}
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// writeZIP stores one <section>.csv per table
func writeZIP(tables []Table) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	names := entryNames(tables)
	for i, t := range tables {
		data, err := writeCSV(t)
		if err != nil {
			return nil, fmt.Errorf("section %q: %w", t.Name, err)
		}
		fw, err := zw.Create(names[i])
		if err != nil {
			return nil, err
		}
		if _, err := fw.Write(data); err != nil {
			return nil, err
		}
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func entryNames(tables []Table) []string {
	out := make([]string, len(tables))
	used := make(map[string]bool, len(tables))
	for i, t := range tables {
		base := strings.TrimSpace(fileNameReplacer.Replace(t.Name))
		if base == "" {
			base = strings.ToLower(DefaultSheetName)
		}
		name := base
		for n := 1; used[name]; n++ {
			name = fmt.Sprintf("%s~%d", base, n)
		}
		used[name] = true
		out[i] = name + ".csv"
	}
	return out
}
