package export

import (
	"bytes"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"text/template"
	"time"

	"github.com/Masterminds/sprig/v3"
)

// summaryExcluded lists the query keys that never name an export
var summaryExcluded = map[string]bool{"format": true, "page": true, "page_size": true}

// FileNamer renders export file names from a template. The template sees
// .Base and .Time and has the sprig functions.
type FileNamer struct {
	tmpl *template.Template
}

type nameData struct {
	Base string
	Time time.Time
}

// NewFileNamer parses text
func NewFileNamer(text string) (*FileNamer, error) {
	tmpl, err := template.New("filename").Funcs(sprig.TxtFuncMap()).Parse(text)
	if err != nil {
		return nil, fmt.Errorf("parse filename template: %w", err)
	}
	return &FileNamer{tmpl: tmpl}, nil
}

// Name renders the file name for base at t and appends ext
func (n *FileNamer) Name(base string, t time.Time, ext string) (string, error) {
	var buf bytes.Buffer
	if err := n.tmpl.Execute(&buf, nameData{Base: base, Time: t}); err != nil {
		return "", fmt.Errorf("render filename: %w", err)
	}
	name := strings.TrimSpace(fileNameReplacer.Replace(buf.String()))
	if name == "" {
		name = "export"
	}
	return name + "." + ext, nil
}

// FilterSummary joins key_value pairs of the non-empty query parameters in
// key order. It returns "all" when no parameter applies.
func FilterSummary(params url.Values) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		if summaryExcluded[k] || strings.TrimSpace(params.Get(k)) == "" {
			continue
		}
		keys = append(keys, k)
	}
	if len(keys) == 0 {
		return "all"
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + "_" + strings.TrimSpace(params.Get(k))
	}
	return strings.Join(parts, "_")
}
