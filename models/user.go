// Package models defines the domain models.
//
// A model is the Go shape of a table row and, at the same time, the shape of
// the JSON the API sends and receives. `json:"-"` keeps a field off the wire.
package models

import (
	"strings"
	"time"
)

// User is a registered account.
type User struct {
	ID           string        `json:"id"`
	Username     string        `json:"username"`
	Name         string        `json:"name"`
	PasswordHash string        `json:"-"` // never serialized
	Blogs        []BlogSummary `json:"blogs"`
	CreatedAt    time.Time     `json:"-"`
}

// UserSummary is the owner as embedded in a blog response.
type UserSummary struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
}

// Summary projects the user onto the fields embedded in blog responses.
func (u *User) Summary() *UserSummary {
	return &UserSummary{ID: u.ID, Username: u.Username, Name: u.Name}
}

// MinPasswordLength is the shortest accepted password.
const MinPasswordLength = 3

// CreateUserRequest is the registration body.
// The password arrives in clear text; hashing happens in the service layer.
type CreateUserRequest struct {
	Username string `json:"username" validate:"required,min=3,max=64"`
	Name     string `json:"name" validate:"max=128"`
	Password string `json:"password"`
}

// Normalize trims whitespace from the identifying fields.
func (r *CreateUserRequest) Normalize() {
	r.Username = strings.TrimSpace(r.Username)
	r.Name = strings.TrimSpace(r.Name)
}

// LoginRequest is the login body.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse is returned after a successful login.
type LoginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Name     string `json:"name"`
}
