// Package migrations embeds the SQL schema migrations so the server and the
// migrate command ship them inside the binary.
package migrations

import "embed"

// FS holds the *.up.sql / *.down.sql files.
//
//go:embed *.sql
var FS embed.FS
