package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akinalp/bloglist/database"
	"github.com/akinalp/bloglist/models"
	"github.com/akinalp/bloglist/pkg"
)

func openTestDB(t *testing.T) *database.DB {
	t.Helper()
	db, err := database.New(filepath.Join(t.TempDir(), "repo.db"), database.Migrations(), zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func strPtr(s string) *string { return &s }

func createUser(t *testing.T, repo UserRepository, username string) *models.User {
	t.Helper()
	u := &models.User{Username: username, Name: username + " name", PasswordHash: "hash"}
	require.NoError(t, repo.Create(context.Background(), u))
	return u
}

func TestUserRepoCreateAndGet(t *testing.T) {
	db := openTestDB(t)
	users := NewSQLiteUserRepo(db.Conn)
	ctx := context.Background()

	u := createUser(t, users, "root")
	assert.NotEmpty(t, u.ID)
	assert.False(t, u.CreatedAt.IsZero())

	byID, err := users.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "root", byID.Username)
	assert.Equal(t, "hash", byID.PasswordHash)
	assert.Empty(t, byID.Blogs)
	assert.NotNil(t, byID.Blogs)

	byName, err := users.GetByUsername(ctx, "root")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byName.ID)

	_, err = users.GetByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, pkg.ErrNotFound)

	count, err := users.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestUserRepoDuplicateUsername(t *testing.T) {
	db := openTestDB(t)
	users := NewSQLiteUserRepo(db.Conn)

	createUser(t, users, "root")
	err := users.Create(context.Background(), &models.User{Username: "root", PasswordHash: "x"})
	assert.ErrorIs(t, err, pkg.ErrAlreadyExists)
}

func TestBlogRepoLifecycle(t *testing.T) {
	db := openTestDB(t)
	users := NewSQLiteUserRepo(db.Conn)
	blogs := NewSQLiteBlogRepo(db.Conn)
	ctx := context.Background()

	owner := createUser(t, users, "owner")

	b := &models.Blog{Title: "First", Author: strPtr("Ada"), URL: "https://a.example", Likes: 3, UserID: &owner.ID}
	require.NoError(t, blogs.Create(ctx, b))
	assert.NotEmpty(t, b.ID)

	anon := &models.Blog{Title: "Second", URL: "https://b.example"}
	require.NoError(t, blogs.Create(ctx, anon))

	got, err := blogs.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "First", got.Title)
	require.NotNil(t, got.Author)
	assert.Equal(t, "Ada", *got.Author)
	require.NotNil(t, got.User)
	assert.Equal(t, models.UserSummary{ID: owner.ID, Username: "owner", Name: "owner name"}, *got.User)

	all, err := blogs.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, b.ID, all[0].ID)
	assert.Nil(t, all[1].Author)
	assert.Nil(t, all[1].User)

	got.Likes = 10
	got.Author = nil
	require.NoError(t, blogs.Update(ctx, got))
	got, err = blogs.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, got.Likes)
	assert.Nil(t, got.Author)

	require.NoError(t, blogs.Delete(ctx, b.ID))
	_, err = blogs.GetByID(ctx, b.ID)
	assert.ErrorIs(t, err, pkg.ErrNotFound)
	assert.ErrorIs(t, blogs.Delete(ctx, b.ID), pkg.ErrNotFound)
}

func TestBlogRepoRejectsNegativeLikes(t *testing.T) {
	db := openTestDB(t)
	blogs := NewSQLiteBlogRepo(db.Conn)

	err := blogs.Create(context.Background(), &models.Blog{Title: "t", URL: "u", Likes: -1})
	assert.ErrorIs(t, err, pkg.ErrBadRequest)
}

func TestUserBlogsFollowBlogOwnership(t *testing.T) {
	db := openTestDB(t)
	users := NewSQLiteUserRepo(db.Conn)
	blogs := NewSQLiteBlogRepo(db.Conn)
	ctx := context.Background()

	alice := createUser(t, users, "alice")
	bob := createUser(t, users, "bob")

	for _, title := range []string{"a1", "a2"} {
		require.NoError(t, blogs.Create(ctx, &models.Blog{Title: title, URL: "https://x", UserID: &alice.ID}))
	}
	b1 := &models.Blog{Title: "b1", URL: "https://y", UserID: &bob.ID}
	require.NoError(t, blogs.Create(ctx, b1))

	all, err := users.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "alice", all[0].Username)
	require.Len(t, all[0].Blogs, 2)
	assert.Equal(t, "a1", all[0].Blogs[0].Title)
	require.Len(t, all[1].Blogs, 1)

	require.NoError(t, blogs.Delete(ctx, b1.ID))
	got, err := users.GetByID(ctx, bob.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Blogs)
}
