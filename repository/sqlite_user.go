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

// sqliteUserRepo is the SQLite implementation of UserRepository.
type sqliteUserRepo struct {
	db database.TxQuerier
}

// NewSQLiteUserRepo returns a UserRepository backed by db (a pool or a transaction).
func NewSQLiteUserRepo(db database.TxQuerier) UserRepository {
	return &sqliteUserRepo{db: db}
}

func (r *sqliteUserRepo) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (id, username, name, password_hash)
		VALUES (?, ?, ?, ?)
		RETURNING created_at`

	id := uuid.NewString()
	err := r.db.QueryRowContext(ctx, query,
		id, user.Username, user.Name, user.PasswordHash,
	).Scan(&user.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: username already taken", pkg.ErrAlreadyExists)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	user.ID = id
	if user.Blogs == nil {
		user.Blogs = []models.BlogSummary{}
	}
	return nil
}

func (r *sqliteUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	return r.getOne(ctx, `
		SELECT id, username, name, password_hash, created_at
		FROM users WHERE id = ?`, id)
}

func (r *sqliteUserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.getOne(ctx, `
		SELECT id, username, name, password_hash, created_at
		FROM users WHERE username = ?`, username)
}

func (r *sqliteUserRepo) getOne(ctx context.Context, query string, arg any) (*models.User, error) {
	user := &models.User{}
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&user.ID, &user.Username, &user.Name, &user.PasswordHash, &user.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: user not found", pkg.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	blogs, err := r.blogsOf(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	user.Blogs = blogs
	return user, nil
}

// GetAll loads users and blogs in two queries and stitches them together,
// rather than one blog query per user.
func (r *sqliteUserRepo) GetAll(ctx context.Context) ([]models.User, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, username, name, password_hash, created_at
		FROM users ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("failed to get all users: %w", err)
	}
	defer rows.Close()

	users := []models.User{}
	index := make(map[string]int)
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Username, &u.Name, &u.PasswordHash, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		u.Blogs = []models.BlogSummary{}
		index[u.ID] = len(users)
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user rows: %w", err)
	}

	blogRows, err := r.db.QueryContext(ctx, `
		SELECT user_id, id, title, author, url, likes
		FROM blogs WHERE user_id IS NOT NULL ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("failed to get user blogs: %w", err)
	}
	defer blogRows.Close()

	for blogRows.Next() {
		var (
			userID string
			b      models.BlogSummary
		)
		if err := blogRows.Scan(&userID, &b.ID, &b.Title, &b.Author, &b.URL, &b.Likes); err != nil {
			return nil, fmt.Errorf("failed to scan blog row: %w", err)
		}
		if i, ok := index[userID]; ok {
			users[i].Blogs = append(users[i].Blogs, b)
		}
	}
	if err := blogRows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating blog rows: %w", err)
	}

	return users, nil
}

func (r *sqliteUserRepo) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}

func (r *sqliteUserRepo) blogsOf(ctx context.Context, userID string) ([]models.BlogSummary, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, title, author, url, likes
		FROM blogs WHERE user_id = ? ORDER BY rowid`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user blogs: %w", err)
	}
	defer rows.Close()

	blogs := []models.BlogSummary{}
	for rows.Next() {
		var b models.BlogSummary
		if err := rows.Scan(&b.ID, &b.Title, &b.Author, &b.URL, &b.Likes); err != nil {
			return nil, fmt.Errorf("failed to scan blog row: %w", err)
		}
		blogs = append(blogs, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating blog rows: %w", err)
	}
	return blogs, nil
}
