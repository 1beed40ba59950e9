// Package assets embeds the SQL migrations shipped with the binary.
package assets

import "embed"

const (
	PostgresMigrationDir = "migrations/postgres"
	SqliteMigrationDir   = "migrations/sqlite"
)

//go:embed migrations/*
var EmbedMigrations embed.FS
