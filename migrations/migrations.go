// Package migrations embeds the goose SQL migrations so the server
// binary can migrate its own database on boot.
package migrations

import "embed"

// FS holds the embedded SQL migration files.
//
//go:embed *.sql
var FS embed.FS
