// Package migrations embeds the web draft store schema.
package migrations

import "embed"

// FS holds the SQLite migrations applied at open.
//
//go:embed *.sql
var FS embed.FS
