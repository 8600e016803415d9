// Package query turns column/value conditions into parameterized SQL
// fragments over the words ⋈ meanings join.
//
// Only registry-validated, table-qualified column names are ever written
// into SQL text. Values always travel as bound arguments.
package query

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/ahrism10M501/voca/internal/schema"
)

// Condition maps a column name to a scalar (equality) or a slice (membership).
type Condition map[string]any

// Placeholder renders the n-th bound argument (1-based), e.g. "?" or "$n".
type Placeholder func(n int) string

// Question is the placeholder style of SQLite and MySQL.
func Question(int) string { return "?" }

// Dollar is the placeholder style of PostgreSQL.
func Dollar(n int) string { return fmt.Sprintf("$%d", n) }

// Clause is a filter expression and its arguments in placeholder order.
type Clause struct {
	SQL  string
	Args []any
}

type Builder struct {
	reg *schema.Registry
	ph  Placeholder
}

func NewBuilder(reg *schema.Registry, ph Placeholder) *Builder {
	return &Builder{reg: reg, ph: ph}
}

func (b *Builder) Registry() *schema.Registry { return b.reg }

// Placeholder renders the n-th argument in this builder's style.
func (b *Builder) Placeholder(n int) string { return b.ph(n) }

// Where builds the AND of every condition entry. offset is the number of
// arguments already bound by the caller's statement prefix.
func (b *Builder) Where(cond Condition, offset int) (Clause, error) {
	if len(cond) == 0 {
		return Clause{SQL: "1=1"}, nil
	}

	keys := make([]string, 0, len(cond))
	for k := range cond {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	var args []any
	n := offset

	for _, k := range keys {
		col, err := b.reg.Lookup(k)
		if err != nil {
			return Clause{}, err
		}

		values, isList := listValues(cond[k])
		if !isList {
			n++
			parts = append(parts, fmt.Sprintf("%s = %s", col.Qualified(), b.ph(n)))
			args = append(args, cond[k])
			continue
		}
		if len(values) == 0 {
			parts = append(parts, "1=0")
			continue
		}

		ph := make([]string, len(values))
		for i := range values {
			n++
			ph[i] = b.ph(n)
		}
		parts = append(parts, fmt.Sprintf("%s IN (%s)", col.Qualified(), strings.Join(ph, ", ")))
		args = append(args, values...)
	}

	return Clause{SQL: strings.Join(parts, " AND "), Args: args}, nil
}

// Columns resolves a projection. An empty list selects every column.
func (b *Builder) Columns(names []string) ([]schema.Column, error) {
	if len(names) == 0 {
		return b.reg.Columns(), nil
	}
	cols := make([]schema.Column, 0, len(names))
	for _, name := range names {
		c, err := b.reg.Lookup(name)
		if err != nil {
			return nil, err
		}
		cols = append(cols, c)
	}
	return cols, nil
}

// OrderBy returns an ORDER BY fragment, or "" for an empty name.
func (b *Builder) OrderBy(name string) (string, error) {
	if name == "" {
		return "", nil
	}
	c, err := b.reg.Lookup(name)
	if err != nil {
		return "", err
	}
	return " ORDER BY " + c.Qualified(), nil
}

// listValues flattens any slice or array except []byte.
func listValues(v any) ([]any, bool) {
	if v == nil {
		return nil, false
	}
	if _, ok := v.([]byte); ok {
		return nil, false
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}
