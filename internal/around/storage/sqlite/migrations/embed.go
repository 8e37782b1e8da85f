// Package migrations embeds the client state schema.
package migrations

import "embed"

// FS holds the SQL migrations applied when a store opens.
//
//go:embed *.sql
var FS embed.FS
