package main

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/akinalp/bloglist/database"
	"github.com/akinalp/bloglist/models"
	"github.com/akinalp/bloglist/pkg/logger"
	"github.com/akinalp/bloglist/repository"
)

func seedStatsDB(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "stats.db")

	db, err := database.New(path, database.Migrations(), logger.Nop())
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	users := repository.NewSQLiteUserRepo(db.Conn)
	blogs := repository.NewSQLiteBlogRepo(db.Conn)

	u := &models.User{Username: "root", PasswordHash: "x"}
	require.NoError(t, users.Create(ctx, u))

	author := "Robert C. Martin"
	for _, seed := range []struct {
		title string
		likes int
	}{
		{"First class tests", 10},
		{"TDD harms architecture", 0},
		{"Type wars", 2},
	} {
		b := &models.Blog{Title: seed.title, Author: &author, URL: "https://x", Likes: seed.likes, UserID: &u.ID}
		require.NoError(t, blogs.Create(ctx, b))
	}
	return path
}

func TestStatsCommandJSON(t *testing.T) {
	path := seedStatsDB(t)

	var out bytes.Buffer
	cmd := rootCmd()
	cmd.Writer = &out
	require.NoError(t, cmd.Run(context.Background(), []string{"bloglist", "stats", "--db", path}))

	var report statsReport
	require.NoError(t, json.Unmarshal(out.Bytes(), &report))
	assert.Equal(t, 1, report.Users)
	assert.Equal(t, 3, report.Blogs)
	assert.Equal(t, 12, report.TotalLikes)
	assert.Equal(t, "First class tests", report.FavoriteBlog.Title)
	require.NotNil(t, report.MostBlogs)
	assert.Equal(t, models.AuthorBlogs{Author: "Robert C. Martin", Blogs: 3}, *report.MostBlogs)
}

func TestStatsCommandYAML(t *testing.T) {
	path := seedStatsDB(t)

	var out bytes.Buffer
	cmd := rootCmd()
	cmd.Writer = &out
	require.NoError(t, cmd.Run(context.Background(), []string{"bloglist", "stats", "--db", path, "--format", "yaml"}))

	var doc map[string]any
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &doc))
	assert.Equal(t, 12, doc["total_likes"])
	assert.Equal(t, 3, doc["blogs"])
	mostLikes, ok := doc["most_likes"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Robert C. Martin", mostLikes["author"])
}

func TestStatsCommandRejectsUnknownFormat(t *testing.T) {
	cmd := rootCmd()
	cmd.Writer = &bytes.Buffer{}
	err := cmd.Run(context.Background(), []string{"bloglist", "stats", "--db", filepath.Join(t.TempDir(), "x.db"), "--format", "xml"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown output format")
}
