// Package repository is the data access layer.
//
// Services never write SQL; they talk to the interfaces declared here, and
// the sqlite_*.go files implement them. Swapping the store, or faking it in a
// test, means providing another implementation of the interface.
package repository

import (
	"context"

	"github.com/akinalp/bloglist/models"
)

// UserRepository persists users.
type UserRepository interface {
	// Create inserts the user and fills in ID and CreatedAt.
	// A taken username yields pkg.ErrAlreadyExists.
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	// GetAll returns every user with their blogs filled in.
	GetAll(ctx context.Context) ([]models.User, error)
	Count(ctx context.Context) (int, error)
}
