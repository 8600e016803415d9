package models

import (
	"fmt"
	"strconv"
	"strings"
)

// Level is the proficiency tier of a word, stored as an integer 0-5.
type Level int

const (
	Beginner Level = iota
	Elementary
	Intermediate
	Advanced
	Native
	Unknown
)

// Valid reports whether l is one of the stored tiers.
func (l Level) Valid() bool {
	return l >= Beginner && l <= Unknown
}

// Levels is an immutable name <-> tier lookup table. Build it once with
// DefaultLevels and pass it to whatever needs to parse or print tiers.
type Levels struct {
	names  []string
	byName map[string]Level
}

// DefaultLevels returns the standard table: beginner, elementary,
// intermediate, advanced, native, <unknown>.
func DefaultLevels() Levels {
	names := []string{"beginner", "elementary", "intermediate", "advanced", "native", "<unknown>"}
	byName := make(map[string]Level, len(names)+1)
	for i, n := range names {
		byName[n] = Level(i)
	}
	byName["unknown"] = Unknown
	return Levels{names: names, byName: byName}
}

// Name returns the tier name. Values outside the table map to <unknown>.
func (t Levels) Name(l Level) string {
	if l < 0 || int(l) >= len(t.names) {
		return t.names[Unknown]
	}
	return t.names[l]
}

// Parse accepts a tier name (case-insensitive) or its number.
func (t Levels) Parse(s string) (Level, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if l, ok := t.byName[s]; ok {
		return l, nil
	}
	if n, err := strconv.Atoi(s); err == nil && n >= 0 && n < len(t.names) {
		return Level(n), nil
	}
	return Unknown, fmt.Errorf("unknown level %q", s)
}

// All returns the tiers in ascending order.
func (t Levels) All() []Level {
	out := make([]Level, len(t.names))
	for i := range t.names {
		out[i] = Level(i)
	}
	return out
}
