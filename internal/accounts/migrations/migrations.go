// Package migrations embeds the goose migrations of the SQLite account table.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
