// Package handlescan embeds files shipped with the binary.
package handlescan

import "embed"

// Migrations holds the goose SQL migrations under the "migrations" directory.
//
//go:embed migrations/*.sql
var Migrations embed.FS
