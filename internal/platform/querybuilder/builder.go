// Package querybuilder renders small PostgreSQL statements with positional
// ($n) placeholders.
package querybuilder

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// binder accumulates positional arguments while a statement is rendered.
type binder struct {
	args []any
}

func (b *binder) bind(v any) string {
	b.args = append(b.args, v)
	return "$" + strconv.Itoa(len(b.args))
}

// expand replaces each `?` in expr with the next bound argument.
func (b *binder) expand(expr string, values []any) string {
	if len(values) == 0 {
		return expr
	}
	var out strings.Builder
	next := 0
	for _, r := range expr {
		if r == '?' && next < len(values) {
			out.WriteString(b.bind(values[next]))
			next++
			continue
		}
		out.WriteRune(r)
	}
	return out.String()
}

type Condition func(*binder) string

func Eq(column string, value any) Condition {
	return func(b *binder) string { return column + " = " + b.bind(value) }
}

// EqFold compares case-insensitively after trimming both sides.
func EqFold(column string, value string) Condition {
	return func(b *binder) string {
		return "LOWER(TRIM(" + column + ")) = LOWER(TRIM(" + b.bind(value) + "))"
	}
}

func Gte(column string, value any) Condition {
	return func(b *binder) string { return column + " >= " + b.bind(value) }
}

func In(column string, values ...any) Condition {
	return func(b *binder) string {
		if len(values) == 0 {
			return "1=0"
		}
		marks := make([]string, 0, len(values))
		for _, v := range values {
			marks = append(marks, b.bind(v))
		}
		return column + " IN (" + strings.Join(marks, ", ") + ")"
	}
}

func Expr(expr string, values ...any) Condition {
	return func(b *binder) string { return b.expand(expr, values) }
}

func renderWhere(buf *strings.Builder, b *binder, conditions []Condition) {
	for i, c := range conditions {
		if i == 0 {
			buf.WriteString(" WHERE ")
		} else {
			buf.WriteString(" AND ")
		}
		buf.WriteString(c(b))
	}
}

type SelectBuilder struct {
	columns  []string
	table    string
	where    []Condition
	orderBy  []string
	distinct []string
	limit    int
}

func Select(columns ...string) *SelectBuilder {
	return &SelectBuilder{columns: append([]string(nil), columns...)}
}

func (s *SelectBuilder) From(table string) *SelectBuilder { s.table = table; return s }

func (s *SelectBuilder) Where(conditions ...Condition) *SelectBuilder {
	s.where = append(s.where, conditions...)
	return s
}

// DistinctOn renders a PostgreSQL DISTINCT ON (...) prefix.
func (s *SelectBuilder) DistinctOn(columns ...string) *SelectBuilder {
	s.distinct = append(s.distinct, columns...)
	return s
}

func (s *SelectBuilder) OrderBy(parts ...string) *SelectBuilder {
	s.orderBy = append(s.orderBy, parts...)
	return s
}

func (s *SelectBuilder) Limit(limit int) *SelectBuilder { s.limit = limit; return s }

func (s *SelectBuilder) ToSQL() (string, []any, error) {
	if len(s.columns) == 0 {
		return "", nil, errors.New("select columns are required")
	}
	if strings.TrimSpace(s.table) == "" {
		return "", nil, errors.New("select table is required")
	}

	var (
		buf strings.Builder
		b   binder
	)
	buf.WriteString("SELECT ")
	if len(s.distinct) > 0 {
		buf.WriteString("DISTINCT ON (" + strings.Join(s.distinct, ", ") + ") ")
	}
	buf.WriteString(strings.Join(s.columns, ", "))
	buf.WriteString(" FROM " + s.table)
	renderWhere(&buf, &b, s.where)
	if len(s.orderBy) > 0 {
		buf.WriteString(" ORDER BY " + strings.Join(s.orderBy, ", "))
	}
	if s.limit > 0 {
		buf.WriteString(" LIMIT " + strconv.Itoa(s.limit))
	}
	return buf.String(), b.args, nil
}

type InsertBuilder struct {
	table   string
	columns []string
	values  []any
	suffix  string
}

func InsertInto(table string) *InsertBuilder { return &InsertBuilder{table: table} }

func (i *InsertBuilder) Columns(columns ...string) *InsertBuilder {
	i.columns = append([]string(nil), columns...)
	return i
}

func (i *InsertBuilder) Values(values ...any) *InsertBuilder {
	i.values = append([]any(nil), values...)
	return i
}

func (i *InsertBuilder) Suffix(sql string) *InsertBuilder {
	i.suffix = strings.TrimSpace(sql)
	return i
}

func (i *InsertBuilder) ToSQL() (string, []any, error) {
	if strings.TrimSpace(i.table) == "" {
		return "", nil, errors.New("insert table is required")
	}
	if len(i.columns) == 0 {
		return "", nil, errors.New("insert columns are required")
	}
	if len(i.values) != len(i.columns) {
		return "", nil, fmt.Errorf("insert has %d values, expected %d", len(i.values), len(i.columns))
	}

	var (
		buf strings.Builder
		b   binder
	)
	marks := make([]string, 0, len(i.values))
	for _, v := range i.values {
		marks = append(marks, b.bind(v))
	}
	buf.WriteString("INSERT INTO " + i.table)
	buf.WriteString(" (" + strings.Join(i.columns, ", ") + ")")
	buf.WriteString(" VALUES (" + strings.Join(marks, ", ") + ")")
	if i.suffix != "" {
		buf.WriteString(" " + i.suffix)
	}
	return buf.String(), b.args, nil
}

type assignment struct {
	column string
	render func(*binder) string
}

type UpdateBuilder struct {
	table  string
	sets   []assignment
	where  []Condition
	suffix string
}

func Update(table string) *UpdateBuilder { return &UpdateBuilder{table: table} }

func (u *UpdateBuilder) Set(column string, value any) *UpdateBuilder {
	u.sets = append(u.sets, assignment{column: column, render: func(b *binder) string { return b.bind(value) }})
	return u
}

func (u *UpdateBuilder) SetExpr(column, expr string, values ...any) *UpdateBuilder {
	u.sets = append(u.sets, assignment{column: column, render: func(b *binder) string { return b.expand(expr, values) }})
	return u
}

func (u *UpdateBuilder) Where(conditions ...Condition) *UpdateBuilder {
	u.where = append(u.where, conditions...)
	return u
}

func (u *UpdateBuilder) Suffix(sql string) *UpdateBuilder {
	u.suffix = strings.TrimSpace(sql)
	return u
}

func (u *UpdateBuilder) ToSQL() (string, []any, error) {
	if strings.TrimSpace(u.table) == "" {
		return "", nil, errors.New("update table is required")
	}
	if len(u.sets) == 0 {
		return "", nil, errors.New("update sets are required")
	}

	var (
		buf strings.Builder
		b   binder
	)
	buf.WriteString("UPDATE " + u.table + " SET ")
	for i, s := range u.sets {
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString(s.column + " = " + s.render(&b))
	}
	renderWhere(&buf, &b, u.where)
	if u.suffix != "" {
		buf.WriteString(" " + u.suffix)
	}
	return buf.String(), b.args, nil
}
