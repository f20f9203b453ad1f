package models

import (
	"strings"
	"time"
)

// Blog is one post: a title, an optional author, a link and a like count,
// owned by the user who created it.
type Blog struct {
	ID        string       `json:"id"`
	Title     string       `json:"title"`
	Author    *string      `json:"author"` // nullable
	URL       string       `json:"url"`
	Likes     int          `json:"likes"`
	UserID    *string      `json:"-"`
	User      *UserSummary `json:"user"`
	CreatedAt time.Time    `json:"-"`
}

// AuthorName returns the author, or "" when the blog has none.
func (b *Blog) AuthorName() string {
	if b.Author == nil {
		return ""
	}
	return *b.Author
}

// OwnedBy reports whether userID created the blog.
func (b *Blog) OwnedBy(userID string) bool {
	return b.UserID != nil && *b.UserID == userID
}

// BlogSummary is a blog as embedded in a user response.
type BlogSummary struct {
	ID     string  `json:"id"`
	Title  string  `json:"title"`
	Author *string `json:"author"`
	URL    string  `json:"url"`
	Likes  int     `json:"likes"`
}

// CreateBlogRequest is the body of POST /api/blogs.
// Likes is a pointer so that "omitted" and "0" are told apart; omitted means 0.
type CreateBlogRequest struct {
	Title  string  `json:"title"`
	Author *string `json:"author" validate:"omitnil,max=256"`
	URL    string  `json:"url"`
	Likes  *int    `json:"likes" validate:"omitnil,min=0"`
}

// Normalize trims the text fields and turns a blank author into no author.
func (r *CreateBlogRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.URL = strings.TrimSpace(r.URL)
	r.Author = normalizeAuthor(r.Author)
}

// HasRequiredFields reports whether both title and url were sent.
func (r *CreateBlogRequest) HasRequiredFields() bool {
	return r.Title != "" && r.URL != ""
}

// UpdateBlogRequest is the body of PUT /api/blogs/{id}.
// Nil fields keep their stored value; present fields replace it.
type UpdateBlogRequest struct {
	Title  *string `json:"title" validate:"omitnil,min=1,max=512"`
	Author *string `json:"author" validate:"omitnil,max=256"`
	URL    *string `json:"url" validate:"omitnil,min=1,max=2048"`
	Likes  *int    `json:"likes" validate:"omitnil,min=0"`
}

// Normalize trims the text fields.
func (r *UpdateBlogRequest) Normalize() {
	if r.Title != nil {
		t := strings.TrimSpace(*r.Title)
		r.Title = &t
	}
	if r.URL != nil {
		u := strings.TrimSpace(*r.URL)
		r.URL = &u
	}
	r.Author = normalizeAuthor(r.Author)
}

// ApplyTo copies the present fields onto b.
func (r *UpdateBlogRequest) ApplyTo(b *Blog) {
	if r.Title != nil {
		b.Title = *r.Title
	}
	if r.Author != nil {
		b.Author = r.Author
	}
	if r.URL != nil {
		b.URL = *r.URL
	}
	if r.Likes != nil {
		b.Likes = *r.Likes
	}
}

func normalizeAuthor(author *string) *string {
	if author == nil {
		return nil
	}
	a := strings.TrimSpace(*author)
	if a == "" {
		return nil
	}
	return &a
}
