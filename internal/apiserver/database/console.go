package database

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/gold2201/LocalNetworkProject/internal/common/cnst"
	"github.com/gold2201/LocalNetworkProject/pkg/trace"
)

// StatementKind is how the console treats a raw statement
type StatementKind string

const (
	StatementQuery   StatementKind = "query"
	StatementCommand StatementKind = "command"
	StatementOther   StatementKind = "other"
)

var (
	queryKeywords     = []string{"SELECT", "SHOW", "DESCRIBE", "EXPLAIN", "PRAGMA", "WITH"}
	commandKeywords   = []string{"INSERT", "UPDATE", "DELETE", "CREATE", "ALTER", "DROP", "TRUNCATE"}
	dangerousKeywords = []string{"DROP", "DELETE", "ALTER", "TRUNCATE"}
)

// ClassifyStatement looks at the leading keyword of stmt, skipping comments.
// A WITH clause that feeds INSERT, UPDATE or DELETE is a command.
func ClassifyStatement(stmt string) StatementKind {
	words := statementWords(stripComments(stmt))
	if len(words) == 0 {
		return StatementOther
	}
	kind := classifyKeyword(words[0])
	if words[0] == "WITH" && (containsWord(words, "INSERT") || containsWord(words, "UPDATE") || containsWord(words, "DELETE")) {
		return StatementCommand
	}
	return kind
}

func classifyKeyword(kw string) StatementKind {
	for _, k := range queryKeywords {
		if kw == k {
			return StatementQuery
		}
	}
	for _, k := range commandKeywords {
		if kw == k {
			return StatementCommand
		}
	}
	return StatementOther
}

// DangerousKeyword returns the first data-destroying keyword appearing as a
// word anywhere in stmt, comments and literals included, or "" when there is
// none.
func DangerousKeyword(stmt string) string {
	words := statementWords(stmt)
	for _, k := range dangerousKeywords {
		if containsWord(words, k) {
			return k
		}
	}
	return ""
}

// statementWords splits stmt into upper-cased identifier-like words
func statementWords(stmt string) []string {
	words := strings.FieldsFunc(stmt, func(r rune) bool {
		return !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_')
	})
	for i, w := range words {
		words[i] = strings.ToUpper(w)
	}
	return words
}

func containsWord(words []string, kw string) bool {
	for _, w := range words {
		if w == kw {
			return true
		}
	}
	return false
}

// stripComments removes -- line comments and /* */ block comments
func stripComments(stmt string) string {
	var b strings.Builder
	for i := 0; i < len(stmt); {
		switch {
		case strings.HasPrefix(stmt[i:], "--"):
			end := strings.IndexByte(stmt[i:], '\n')
			if end < 0 {
				return b.String()
			}
			i += end
		case strings.HasPrefix(stmt[i:], "/*"):
			end := strings.Index(stmt[i+2:], "*/")
			if end < 0 {
				return b.String()
			}
			b.WriteByte(' ')
			i += end + 4
		default:
			b.WriteByte(stmt[i])
			i++
		}
	}
	return b.String()
}

// ResultSet is a stringified query result. Every value is a string or nil.
type ResultSet struct {
	Columns []string
	Rows    [][]any
}

// Maps returns rows keyed by column name
func (r *ResultSet) Maps() []map[string]any {
	out := make([]map[string]any, 0, len(r.Rows))
	for _, row := range r.Rows {
		m := make(map[string]any, len(r.Columns))
		for i, col := range r.Columns {
			m[col] = row[i]
		}
		out = append(out, m)
	}
	return out
}

type TableRef struct {
	Schema   string `json:"schema"`
	Name     string `json:"name"`
	FullName string `json:"full_name"`
}

type ColumnInfo struct {
	Name     string  `json:"name"`
	Type     string  `json:"type"`
	Nullable bool    `json:"nullable"`
	Default  *string `json:"default"`
}

// Console runs operator supplied SQL
type Console interface {
	// Query runs stmt and returns its result set. A statement producing no
	// result set returns a ResultSet without columns.
	Query(ctx context.Context, stmt string) (*ResultSet, error)
	// Exec runs stmt and returns the number of affected rows.
	Exec(ctx context.Context, stmt string) (int64, error)
	Tables(ctx context.Context) ([]TableRef, error)
	// TableColumns describes table. Unknown tables give ErrNotFound.
	TableColumns(ctx context.Context, table string) ([]ColumnInfo, error)
}

func (s *store) consoleSpan(ctx context.Context, stmt string, kind StatementKind) *trace.SpanScope {
	s.logger.Info("executing console statement",
		zap.String("kind", string(kind)),
		zap.String("statement", stmt))
	return trace.Tracer(cnst.TraceConsole).
		Start(ctx, cnst.SpanConsoleExecute).
		WithAttrs(attribute.String(cnst.AttrSQLStatement, string(kind)))
}

func (s *store) Query(ctx context.Context, stmt string) (*ResultSet, error) {
	sc := s.consoleSpan(ctx, stmt, StatementQuery)
	defer sc.End()

	rows, err := s.conn(sc.Ctx).Raw(stmt).Rows()
	if err != nil {
		sc.Fail(err)
		return nil, fmt.Errorf("console query: %w", err)
	}
	defer rows.Close()

	rs, err := readRows(rows)
	if err != nil {
		sc.Fail(err)
		return nil, fmt.Errorf("console query: %w", err)
	}
	sc.WithAttrs(attribute.Int(cnst.AttrSQLRows, len(rs.Rows)))
	return rs, nil
}

func (s *store) Exec(ctx context.Context, stmt string) (int64, error) {
	sc := s.consoleSpan(ctx, stmt, StatementCommand)
	defer sc.End()

	res := s.conn(sc.Ctx).Exec(stmt)
	if res.Error != nil {
		sc.Fail(res.Error)
		return 0, fmt.Errorf("console exec: %w", res.Error)
	}
	sc.WithAttrs(attribute.Int64(cnst.AttrSQLRows, res.RowsAffected))
	return res.RowsAffected, nil
}

func readRows(rows *sql.Rows) (*ResultSet, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	rs := &ResultSet{Columns: cols, Rows: [][]any{}}
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		row := make([]any, len(cols))
		for i, v := range vals {
			row[i] = stringifyValue(v)
		}
		rs.Rows = append(rs.Rows, row)
	}
	return rs, rows.Err()
}

func stringifyValue(v any) any {
	switch t := v.(type) {
	case nil:
		return nil
	case []byte:
		return string(t)
	case string:
		return t
	case time.Time:
		return t.Format(time.RFC3339)
	default:
		return fmt.Sprint(t)
	}
}

func (s *store) Tables(ctx context.Context) ([]TableRef, error) {
	m := s.conn(ctx).Migrator()
	names, err := m.GetTables()
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	sort.Strings(names)

	schema := m.CurrentDatabase()
	out := make([]TableRef, 0, len(names))
	for _, n := range names {
		ref := TableRef{Schema: schema, Name: n, FullName: n}
		if schema != "" {
			ref.FullName = schema + "." + n
		}
		out = append(out, ref)
	}
	return out, nil
}

func (s *store) TableColumns(ctx context.Context, table string) ([]ColumnInfo, error) {
	m := s.conn(ctx).Migrator()
	if !m.HasTable(table) {
		return nil, fmt.Errorf("table %q: %w", table, ErrNotFound)
	}
	types, err := m.ColumnTypes(table)
	if err != nil {
		return nil, fmt.Errorf("describe table %q: %w", table, err)
	}

	out := make([]ColumnInfo, 0, len(types))
	for _, ct := range types {
		info := ColumnInfo{Name: ct.Name(), Type: ct.DatabaseTypeName()}
		if full, ok := ct.ColumnType(); ok && full != "" {
			info.Type = full
		}
		if nullable, ok := ct.Nullable(); ok {
			info.Nullable = nullable
		}
		if def, ok := ct.DefaultValue(); ok {
			info.Default = &def
		}
		out = append(out, info)
	}
	return out, nil
}
