package database

import (
	"embed"
	"io/fs"
)

// embeddedMigrations holds the SQL files under migrations/, compiled into the
// binary so a deployment needs nothing next to it.
//
//go:embed migrations/*.sql
var embeddedMigrations embed.FS

// Migrations returns the embedded migrations rooted at the migrations directory.
func Migrations() fs.FS {
	sub, err := fs.Sub(embeddedMigrations, "migrations")
	if err != nil {
		// The pattern above guarantees the directory exists.
		panic(err)
	}
	return sub
}
