// Package schemas embeds the MySQL migrations of the engine.
package schemas

import "embed"

// MigrationsDir is the directory of Migrations holding the golang-migrate files.
const MigrationsDir = "migrations"

//go:embed migrations/*.sql
var Migrations embed.FS
