// Package main: repository layer setup.
package main

import (
	"database/sql"

	"github.com/akinalp/bloglist/repository"
)

// Repositories groups every repository instance.
type Repositories struct {
	User repository.UserRepository
	Blog repository.BlogRepository
}

// initRepositories builds the SQLite repositories on the connection pool.
func initRepositories(db *sql.DB) *Repositories {
	return &Repositories{
		User: repository.NewSQLiteUserRepo(db),
		Blog: repository.NewSQLiteBlogRepo(db),
	}
}
