// Package export turns tabular data into downloadable files.
package export

import (
	"fmt"
	"reflect"
	"strings"
	"time"
)

// Table is an ordered list of columns and rows of scalar values
type Table struct {
	Name    string
	Columns []string
	Rows    [][]any
}

// Len returns the number of data rows
func (t Table) Len() int { return len(t.Rows) }

// Sections is an ordered list of named tables, one sheet or file each
type Sections []Table

func (s Sections) rows() int {
	n := 0
	for _, t := range s {
		n += t.Len()
	}
	return n
}

var (
	timeType     = reflect.TypeOf(time.Time{})
	stringerType = reflect.TypeOf((*fmt.Stringer)(nil)).Elem()
)

type fieldPath struct {
	name  string
	index []int
}

// FromStructs builds a table from a slice of structs. Columns follow the
// json tags in field order. Fields holding slices, maps or plain structs
// are skipped.
func FromStructs[T any](name string, items []T) Table {
	typ := reflect.TypeFor[T]()
	for typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}

	var fields []fieldPath
	if typ.Kind() == reflect.Struct {
		fields = collectFields(typ, nil)
	}

	t := Table{Name: name, Columns: make([]string, len(fields)), Rows: make([][]any, 0, len(items))}
	for i, f := range fields {
		t.Columns[i] = f.name
	}
	for _, item := range items {
		v := reflect.ValueOf(item)
		for v.Kind() == reflect.Pointer {
			if v.IsNil() {
				break
			}
			v = v.Elem()
		}
		row := make([]any, len(fields))
		if v.Kind() == reflect.Struct {
			for i, f := range fields {
				fv, ok := fieldByIndex(v, f.index)
				if ok {
					row[i] = scalar(fv)
				}
			}
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

func collectFields(typ reflect.Type, prefix []int) []fieldPath {
	var out []fieldPath
	for i := 0; i < typ.NumField(); i++ {
		sf := typ.Field(i)
		index := append(append([]int(nil), prefix...), i)

		tag := sf.Tag.Get("json")
		name, _, _ := strings.Cut(tag, ",")
		if name == "-" {
			continue
		}
		if sf.Anonymous && name == "" {
			et := sf.Type
			if et.Kind() == reflect.Pointer {
				et = et.Elem()
			}
			if et.Kind() == reflect.Struct && !isScalarType(et) {
				out = append(out, collectFields(et, index)...)
				continue
			}
		}
		if !sf.IsExported() || !isScalarType(sf.Type) {
			continue
		}
		if name == "" {
			name = sf.Name
		}
		out = append(out, fieldPath{name: name, index: index})
	}
	return out
}

func isScalarType(t reflect.Type) bool {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == timeType || t.Implements(stringerType) {
		return true
	}
	switch t.Kind() {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

func fieldByIndex(v reflect.Value, index []int) (reflect.Value, bool) {
	for i, x := range index {
		if i > 0 && v.Kind() == reflect.Pointer {
			if v.IsNil() {
				return reflect.Value{}, false
			}
			v = v.Elem()
		}
		v = v.Field(x)
	}
	return v, true
}

// scalar unwraps pointers and renders stringers; nil pointers become nil
func scalar(v reflect.Value) any {
	if v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}
	if v.Type() == timeType {
		return v.Interface()
	}
	if v.Type().Implements(stringerType) {
		s := v.Interface().(fmt.Stringer).String()
		if s == "" {
			return nil
		}
		return s
	}
	return v.Interface()
}

// display is the text form of a cell used for CSV output and column widths
func display(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case []byte:
		return string(x)
	case time.Time:
		return x.Format(time.RFC3339)
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}
