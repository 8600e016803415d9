package vocab

import (
	"fmt"
	"strings"

	"github.com/ahrism10M501/voca/internal/query"
)

// Dialect carries the engine-specific parts of the SQL.
type Dialect struct {
	// Name is the configuration name: "sqlite" or "postgres".
	Name string
	// Driver is the database/sql driver name.
	Driver string
	// Goose is the goose dialect, also the migrations sub-directory.
	Goose       string
	Placeholder query.Placeholder

	ignorePrefix string
	ignoreSuffix string
}

func SQLite() Dialect {
	return Dialect{
		Name:         "sqlite",
		Driver:       "sqlite",
		Goose:        "sqlite3",
		Placeholder:  query.Question,
		ignorePrefix: "INSERT OR IGNORE INTO",
	}
}

func Postgres() Dialect {
	return Dialect{
		Name:         "postgres",
		Driver:       "pgx",
		Goose:        "postgres",
		Placeholder:  query.Dollar,
		ignorePrefix: "INSERT INTO",
		ignoreSuffix: " ON CONFLICT DO NOTHING",
	}
}

func DialectFor(name string) (Dialect, error) {
	switch strings.ToLower(name) {
	case "sqlite", "sqlite3":
		return SQLite(), nil
	case "postgres", "postgresql", "pgx":
		return Postgres(), nil
	}
	return Dialect{}, fmt.Errorf("unknown driver %q", name)
}

// MigrationsDir is the embedded directory holding this dialect's schema.
func (d Dialect) MigrationsDir() string {
	if d.Name == "postgres" {
		return "postgres"
	}
	return "sqlite"
}

// InsertIgnore renders a multi-row insert that skips rows violating a
// unique constraint.
func (d Dialect) InsertIgnore(table string, cols []string, rows int) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %s (%s) VALUES ", d.ignorePrefix, table, strings.Join(cols, ", "))
	sb.WriteString(d.tuples(rows, len(cols), 0))
	sb.WriteString(d.ignoreSuffix)
	return sb.String()
}

// List renders n placeholders "a, b, c" numbered after offset.
func (d Dialect) List(n, offset int) string {
	ph := make([]string, n)
	for i := range ph {
		ph[i] = d.Placeholder(offset + i + 1)
	}
	return strings.Join(ph, ", ")
}

func (d Dialect) tuples(rows, cols, offset int) string {
	parts := make([]string, rows)
	for r := range parts {
		parts[r] = "(" + d.List(cols, offset+r*cols) + ")"
	}
	return strings.Join(parts, ", ")
}
