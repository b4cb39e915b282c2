// Package database carries the embedded schema migrations applied at
// server startup.
package database

import "embed"

//go:embed migrations/*.sql
var MigrationsFS embed.FS

// MigrationsPath is the directory inside MigrationsFS holding the
// migration files.
const MigrationsPath = "migrations"
