// Package migrations embeds the PostgreSQL schema for profile storage.
package migrations

import "embed"

// FS holds golang-migrate NNNNNN_name.{up,down}.sql files.
//
//go:embed *.sql
var FS embed.FS
