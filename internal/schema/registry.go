// Package schema describes the two vocabulary tables and which table owns
// each addressable column.
package schema

import (
	"fmt"
	"strings"

	"github.com/ahrism10M501/voca/internal/common"
)

const (
	Words    = "words"
	Meanings = "meanings"
)

type Kind int

const (
	Int Kind = iota
	Text
)

type Column struct {
	Name  string
	Table string
	Kind  Kind
	// Identity columns are assigned by the store and never updated.
	Identity bool
}

// Qualified returns table.column.
func (c Column) Qualified() string {
	return c.Table + "." + c.Name
}

// Registry is an immutable column -> table map.
type Registry struct {
	cols  []Column
	index map[string]int
}

// Default returns the registry for the words/meanings schema. word_id
// resolves to the words table; meanings.word_id is only a join key.
func Default() *Registry {
	return NewRegistry([]Column{
		{Name: "word_id", Table: Words, Kind: Int, Identity: true},
		{Name: "word", Table: Words, Kind: Text},
		{Name: "day", Table: Words, Kind: Int},
		{Name: "level", Table: Words, Kind: Int},
		{Name: "meaning_id", Table: Meanings, Kind: Int, Identity: true},
		{Name: "meaning", Table: Meanings, Kind: Text},
	})
}

func NewRegistry(cols []Column) *Registry {
	r := &Registry{cols: append([]Column(nil), cols...), index: make(map[string]int, len(cols))}
	for i, c := range r.cols {
		r.index[c.Name] = i
	}
	return r
}

// Lookup resolves a column name. Names containing ';' are rejected outright.
func (r *Registry) Lookup(name string) (Column, error) {
	if strings.Contains(name, ";") {
		return Column{}, fmt.Errorf("%w: %q contains ';'", common.ErrInvalidColumn, name)
	}
	i, ok := r.index[name]
	if !ok {
		return Column{}, fmt.Errorf("%w: %q", common.ErrInvalidColumn, name)
	}
	return r.cols[i], nil
}

// Columns returns every column in declaration order.
func (r *Registry) Columns() []Column {
	return append([]Column(nil), r.cols...)
}
