// Package migrations embeds the SQL schema migrations for each supported driver.
package migrations

import (
	"embed"
)

// FS holds the postgresql/ and mysql/ migration directories.
//
//go:embed postgresql/*.sql mysql/*.sql
var FS embed.FS
