// Package filter turns list query parameters into gorm scopes.
package filter

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"github.com/gold2201/LocalNetworkProject/internal/apiserver/database"
	"github.com/gold2201/LocalNetworkProject/internal/common/errorx"
	"github.com/gold2201/LocalNetworkProject/internal/i18n"
)

const (
	ParamOrdering = "ordering"
	ParamPage     = "page"
	ParamPageSize = "page_size"

	MaxPageSize = 1000
)

// Kind is how a predicate compares its parameter with the columns
type Kind int

const (
	KindContains Kind = iota
	KindExact
	KindGte
	KindLte
	KindHas
	KindCustom
)

// ValueType is how a raw parameter value is parsed
type ValueType int

const (
	TypeString ValueType = iota
	TypeInt
	TypeDate
	TypeBool
)

// Column is a SQL column expression. Numeric columns are cast to text
// before substring matching.
type Column struct {
	Expr    string
	Numeric bool
}

// Text is a text column
func Text(expr string) Column { return Column{Expr: expr} }

// Num is a numeric column
func Num(expr string) Column { return Column{Expr: expr, Numeric: true} }

// Predicate binds one query parameter to one condition
type Predicate struct {
	Param   string
	Kind    Kind
	Type    ValueType
	Columns []Column
	// Cond is the SQL condition that is true when related rows exist (KindHas).
	Cond string
	// Apply builds the scope of a KindCustom predicate.
	Apply func(value string) (database.Scope, error)
}

// Contains matches a case-insensitive substring in any of cols
func Contains(param string, cols ...Column) Predicate {
	return Predicate{Param: param, Kind: KindContains, Columns: cols}
}

// Exact matches a string column
func Exact(param string, col Column) Predicate {
	return Predicate{Param: param, Kind: KindExact, Type: TypeString, Columns: []Column{col}}
}

// ExactInt matches an integer column, typically a foreign key
func ExactInt(param string, col Column) Predicate {
	return Predicate{Param: param, Kind: KindExact, Type: TypeInt, Columns: []Column{col}}
}

func GteInt(param string, col Column) Predicate {
	return Predicate{Param: param, Kind: KindGte, Type: TypeInt, Columns: []Column{col}}
}

func LteInt(param string, col Column) Predicate {
	return Predicate{Param: param, Kind: KindLte, Type: TypeInt, Columns: []Column{col}}
}

func GteDate(param string, col Column) Predicate {
	return Predicate{Param: param, Kind: KindGte, Type: TypeDate, Columns: []Column{col}}
}

func LteDate(param string, col Column) Predicate {
	return Predicate{Param: param, Kind: KindLte, Type: TypeDate, Columns: []Column{col}}
}

// Has is true when cond holds for the row, false when it does not
func Has(param, cond string) Predicate {
	return Predicate{Param: param, Kind: KindHas, Type: TypeBool, Cond: cond}
}

// Custom delegates to fn for parameters that do not fit the other kinds
func Custom(param string, fn func(value string) (database.Scope, error)) Predicate {
	return Predicate{Param: param, Kind: KindCustom, Apply: fn}
}

// Set is the declarative filter of one list endpoint
type Set struct {
	Predicates []Predicate
	// Ordering maps accepted ordering fields to columns.
	Ordering     map[string]string
	DefaultOrder string
}

// With returns a copy of s with extra predicates appended
func (s Set) With(preds ...Predicate) Set {
	out := s
	out.Predicates = append(append([]Predicate(nil), s.Predicates...), preds...)
	return out
}

// Query is a parsed request
type Query struct {
	Filters []database.Scope
	Order   database.Scope
	Page    database.Scope
}

// Paginated reports whether page or page_size was given
func (q *Query) Paginated() bool {
	return q.Page != nil
}

// ListScopes returns filters, ordering and pagination in application order
func (q *Query) ListScopes() []database.Scope {
	out := append([]database.Scope(nil), q.Filters...)
	if q.Order != nil {
		out = append(out, q.Order)
	}
	if q.Page != nil {
		out = append(out, q.Page)
	}
	return out
}

// Parse validates params against the set. Every malformed parameter is
// reported in one validation error.
func (s Set) Parse(params url.Values, dialect string) (*Query, error) {
	q := &Query{}
	fields := map[string]errorx.FieldError{}

	for _, p := range s.Predicates {
		raw := strings.TrimSpace(params.Get(p.Param))
		if raw == "" {
			continue
		}
		scope, fe := p.scope(raw, dialect)
		if fe != nil {
			fields[p.Param] = *fe
			continue
		}
		q.Filters = append(q.Filters, scope)
	}

	order, fe := s.order(params.Get(ParamOrdering))
	if fe != nil {
		fields[ParamOrdering] = *fe
	}
	q.Order = order

	page, pageFields := parsePage(params)
	for k, v := range pageFields {
		fields[k] = v
	}
	q.Page = page

	if len(fields) > 0 {
		return nil, errorx.ValidationError(fields)
	}
	return q, nil
}

func (p Predicate) scope(raw, dialect string) (database.Scope, *errorx.FieldError) {
	value, fe := parseValue(p.Type, raw)
	if fe != nil {
		return nil, fe
	}

	switch p.Kind {
	case KindContains:
		pattern := database.ContainsPattern(raw)
		conds := make([]string, 0, len(p.Columns))
		args := make([]any, 0, len(p.Columns))
		for _, c := range p.Columns {
			conds = append(conds, fmt.Sprintf("LOWER(%s) LIKE ?%s", c.textExpr(dialect), database.LikeEscape))
			args = append(args, pattern)
		}
		cond := "(" + strings.Join(conds, " OR ") + ")"
		return func(db *gorm.DB) *gorm.DB { return db.Where(cond, args...) }, nil
	case KindExact:
		return comparison(p.Columns[0].Expr, "=", value), nil
	case KindGte:
		return comparison(p.Columns[0].Expr, ">=", value), nil
	case KindLte:
		return comparison(p.Columns[0].Expr, "<=", value), nil
	case KindHas:
		cond := p.Cond
		if !value.(bool) {
			cond = "NOT (" + cond + ")"
		}
		return func(db *gorm.DB) *gorm.DB { return db.Where(cond) }, nil
	case KindCustom:
		sc, err := p.Apply(raw)
		if err != nil {
			return nil, asFieldError(err)
		}
		return sc, nil
	}
	return nil, &errorx.FieldError{MessageID: i18n.MsgFieldInvalid}
}

func comparison(expr, op string, value any) database.Scope {
	cond := fmt.Sprintf("%s %s ?", expr, op)
	return func(db *gorm.DB) *gorm.DB { return db.Where(cond, value) }
}

func (c Column) textExpr(dialect string) string {
	if !c.Numeric {
		return c.Expr
	}
	if dialect == "mysql" {
		return fmt.Sprintf("CAST(%s AS CHAR)", c.Expr)
	}
	return fmt.Sprintf("CAST(%s AS TEXT)", c.Expr)
}

func parseValue(t ValueType, raw string) (any, *errorx.FieldError) {
	switch t {
	case TypeInt:
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, &errorx.FieldError{MessageID: i18n.MsgFieldInvalidInteger}
		}
		return v, nil
	case TypeDate:
		d, err := database.ParseDate(raw)
		if err != nil {
			return nil, &errorx.FieldError{MessageID: i18n.MsgFieldInvalidDate}
		}
		return d.String(), nil
	case TypeBool:
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, &errorx.FieldError{MessageID: i18n.MsgFieldInvalidBool}
		}
		return v, nil
	default:
		return raw, nil
	}
}

// ChoiceError is returned by custom predicates for values outside their choices
type ChoiceError struct {
	Value string
}

func (e *ChoiceError) Error() string {
	return fmt.Sprintf("unknown choice %q", e.Value)
}

func asFieldError(err error) *errorx.FieldError {
	if ce, ok := err.(*ChoiceError); ok {
		return &errorx.FieldError{MessageID: i18n.MsgFieldUnknownChoice, Data: map[string]any{"Value": ce.Value}}
	}
	return &errorx.FieldError{MessageID: i18n.MsgFieldInvalid}
}

func (s Set) order(raw string) (database.Scope, *errorx.FieldError) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		if s.DefaultOrder == "" {
			return nil, nil
		}
		def := s.DefaultOrder
		return func(db *gorm.DB) *gorm.DB { return db.Order(def) }, nil
	}

	var clauses []string
	for _, field := range strings.Split(raw, ",") {
		field = strings.TrimSpace(field)
		desc := strings.HasPrefix(field, "-")
		col, ok := s.Ordering[strings.TrimPrefix(field, "-")]
		if !ok {
			return nil, &errorx.FieldError{MessageID: i18n.MsgFieldInvalidOrdering}
		}
		if desc {
			col += " DESC"
		}
		clauses = append(clauses, col)
	}
	order := strings.Join(clauses, ", ")
	return func(db *gorm.DB) *gorm.DB { return db.Order(order) }, nil
}

func parsePage(params url.Values) (database.Scope, map[string]errorx.FieldError) {
	rawPage := strings.TrimSpace(params.Get(ParamPage))
	rawSize := strings.TrimSpace(params.Get(ParamPageSize))
	if rawPage == "" && rawSize == "" {
		return nil, nil
	}

	fields := map[string]errorx.FieldError{}
	page, size := 1, 50
	if rawPage != "" {
		v, err := strconv.Atoi(rawPage)
		if err != nil {
			fields[ParamPage] = errorx.FieldError{MessageID: i18n.MsgFieldInvalidInteger}
		} else if v < 1 {
			fields[ParamPage] = errorx.FieldError{MessageID: i18n.MsgFieldMin, Data: map[string]any{"Param": 1}}
		}
		page = v
	}
	if rawSize != "" {
		v, err := strconv.Atoi(rawSize)
		switch {
		case err != nil:
			fields[ParamPageSize] = errorx.FieldError{MessageID: i18n.MsgFieldInvalidInteger}
		case v < 1:
			fields[ParamPageSize] = errorx.FieldError{MessageID: i18n.MsgFieldMin, Data: map[string]any{"Param": 1}}
		case v > MaxPageSize:
			fields[ParamPageSize] = errorx.FieldError{MessageID: i18n.MsgFieldMax, Data: map[string]any{"Param": MaxPageSize}}
		}
		size = v
	}
	if len(fields) > 0 {
		return nil, fields
	}

	offset := (page - 1) * size
	return func(db *gorm.DB) *gorm.DB { return db.Offset(offset).Limit(size) }, nil
}
