// Package migrations embeds the SQL schema migrations so the executor can
// run them from any working directory, tests included.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
