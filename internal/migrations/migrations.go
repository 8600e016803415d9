// Package migrations embeds the schema bootstrap applied by goose, one
// directory per SQL dialect.
package migrations

import "embed"

//go:embed sqlite/*.sql postgres/*.sql
var Migrations embed.FS
