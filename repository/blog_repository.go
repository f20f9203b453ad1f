package repository

import (
	"context"

	"github.com/akinalp/bloglist/models"
)

// BlogRepository persists blogs. Reads return the owning user expanded into Blog.User.
type BlogRepository interface {
	// Create inserts the blog and fills in ID and CreatedAt.
	Create(ctx context.Context, blog *models.Blog) error
	GetByID(ctx context.Context, id string) (*models.Blog, error)
	// GetAll returns every blog in insertion order.
	GetAll(ctx context.Context) ([]models.Blog, error)
	// Update writes title, author, url and likes of blog.ID.
	Update(ctx context.Context, blog *models.Blog) error
	Delete(ctx context.Context, id string) error
}
