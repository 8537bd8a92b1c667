// Package migrations embeds the SQL migrations of the integration store.
//
// Files are named YYYYMMDD_HHMMSS_description.{up,down}.sql and sit at the
// root of FS.
package migrations

import "embed"

// FS holds every migration file.
//
//go:embed *.sql
var FS embed.FS
