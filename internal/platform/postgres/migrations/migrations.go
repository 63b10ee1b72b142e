// Package migrations embeds the goose SQL migration files so the server can
// apply them at startup without a migrations directory on disk.
package migrations

import "embed"

// FS contains the SQL migration files, ordered by their timestamp prefix.
//
//go:embed *.sql
var FS embed.FS
