// Package migrations embeds the forward-only goose migrations for the
// server's Postgres schema.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
