package export

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// LabelFunc resolves the label of the entity row with id
type LabelFunc func(ctx context.Context, entity string, id uint) (string, error)

type labelKey struct {
	entity string
	id     uint
}

// Humanize replaces every <x>_id column whose x is in entities by a column
// named x holding the label of the referenced row. Null ids and failed
// lookups keep the raw value.
func Humanize(ctx context.Context, t Table, entities []string, resolve LabelFunc) Table {
	known := make(map[string]bool, len(entities))
	for _, e := range entities {
		known[e] = true
	}

	out := Table{Name: t.Name, Columns: append([]string(nil), t.Columns...), Rows: make([][]any, len(t.Rows))}
	for i, row := range t.Rows {
		out.Rows[i] = append([]any(nil), row...)
	}

	cache := map[labelKey]*string{}
	for c, col := range t.Columns {
		entity, ok := strings.CutSuffix(col, "_id")
		if !ok || !known[entity] {
			continue
		}
		out.Columns[c] = entity
		for _, row := range out.Rows {
			if c >= len(row) {
				continue
			}
			id, ok := asID(row[c])
			if !ok {
				continue
			}
			key := labelKey{entity: entity, id: id}
			label, seen := cache[key]
			if !seen {
				if s, err := resolve(ctx, entity, id); err == nil {
					label = &s
				}
				cache[key] = label
			}
			if label != nil {
				row[c] = *label
			}
		}
	}
	return out
}

func asID(v any) (uint, bool) {
	switch x := v.(type) {
	case uint:
		return x, true
	case uint32:
		return uint(x), true
	case uint64:
		return uint(x), true
	case int:
		return uint(x), x > 0
	case int64:
		return uint(x), x > 0
	case string:
		n, err := strconv.ParseUint(x, 10, 0)
		return uint(n), err == nil
	case nil:
		return 0, false
	default:
		n, err := strconv.ParseUint(fmt.Sprint(x), 10, 0)
		return uint(n), err == nil
	}
}
