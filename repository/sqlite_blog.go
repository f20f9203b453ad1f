package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/akinalp/bloglist/database"
	"github.com/akinalp/bloglist/models"
	"github.com/akinalp/bloglist/pkg"
)

// sqliteBlogRepo is the SQLite implementation of BlogRepository.
type sqliteBlogRepo struct {
	db database.TxQuerier
}

// NewSQLiteBlogRepo returns a BlogRepository backed by db (a pool or a transaction).
func NewSQLiteBlogRepo(db database.TxQuerier) BlogRepository {
	return &sqliteBlogRepo{db: db}
}

// selectBlog joins the owner so every read returns blog and user together.
const selectBlog = `
	SELECT b.id, b.title, b.author, b.url, b.likes, b.user_id, b.created_at,
	       u.id, u.username, u.name
	FROM blogs b
	LEFT JOIN users u ON u.id = b.user_id`

func (r *sqliteBlogRepo) Create(ctx context.Context, blog *models.Blog) error {
	query := `
		INSERT INTO blogs (id, title, author, url, likes, user_id)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING created_at`

	id := uuid.NewString()
	err := r.db.QueryRowContext(ctx, query,
		id, blog.Title, blog.Author, blog.URL, blog.Likes, blog.UserID,
	).Scan(&blog.CreatedAt)
	if err != nil {
		if isCheckViolation(err) {
			return fmt.Errorf("%w: invalid blog fields", pkg.ErrBadRequest)
		}
		return fmt.Errorf("failed to create blog: %w", err)
	}

	blog.ID = id
	return nil
}

func (r *sqliteBlogRepo) GetByID(ctx context.Context, id string) (*models.Blog, error) {
	blog, err := scanBlog(r.db.QueryRowContext(ctx, selectBlog+` WHERE b.id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: blog not found", pkg.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get blog by id: %w", err)
	}
	return blog, nil
}

func (r *sqliteBlogRepo) GetAll(ctx context.Context) ([]models.Blog, error) {
	rows, err := r.db.QueryContext(ctx, selectBlog+` ORDER BY b.rowid`)
	if err != nil {
		return nil, fmt.Errorf("failed to get all blogs: %w", err)
	}
	defer rows.Close()

	blogs := []models.Blog{}
	for rows.Next() {
		blog, err := scanBlog(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan blog row: %w", err)
		}
		blogs = append(blogs, *blog)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating blog rows: %w", err)
	}

	return blogs, nil
}

func (r *sqliteBlogRepo) Update(ctx context.Context, blog *models.Blog) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE blogs SET title = ?, author = ?, url = ?, likes = ?
		WHERE id = ?`,
		blog.Title, blog.Author, blog.URL, blog.Likes, blog.ID,
	)
	if err != nil {
		if isCheckViolation(err) {
			return fmt.Errorf("%w: invalid blog fields", pkg.ErrBadRequest)
		}
		return fmt.Errorf("failed to update blog: %w", err)
	}
	return expectOneRow(result, "blog")
}

func (r *sqliteBlogRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM blogs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete blog: %w", err)
	}
	return expectOneRow(result, "blog")
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanBlog(row rowScanner) (*models.Blog, error) {
	var (
		b                                 models.Blog
		ownerID, ownerUsername, ownerName sql.NullString
	)
	if err := row.Scan(
		&b.ID, &b.Title, &b.Author, &b.URL, &b.Likes, &b.UserID, &b.CreatedAt,
		&ownerID, &ownerUsername, &ownerName,
	); err != nil {
		return nil, err
	}

	if ownerID.Valid {
		b.User = &models.UserSummary{
			ID:       ownerID.String,
			Username: ownerUsername.String,
			Name:     ownerName.String,
		}
	}
	return &b, nil
}
