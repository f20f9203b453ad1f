// Package pkg holds utilities shared across the project.
// This file defines the domain-level errors.
//
// Errors are compared by identity, not by message:
//
//	if errors.Is(err, pkg.ErrNotFound) { ... }
//
// Services wrap them with context (fmt.Errorf("%w: ...")) and the handler
// layer maps them onto HTTP status codes.
package pkg

import (
	"errors"
	"strings"
)

// Domain-level errors.
var (
	ErrNotFound      = errors.New("not found")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden")
	ErrAlreadyExists = errors.New("already exists")
	ErrBadRequest    = errors.New("bad request")
	ErrTooManyTries  = errors.New("too many requests")
)

// Message strips the sentinel prefix from a wrapped domain error so the client
// sees "blog not found" instead of "not found: blog not found".
func Message(err error) string {
	msg := err.Error()
	for _, sentinel := range []error{
		ErrNotFound, ErrUnauthorized, ErrForbidden,
		ErrAlreadyExists, ErrBadRequest, ErrTooManyTries,
	} {
		if rest, ok := strings.CutPrefix(msg, sentinel.Error()+": "); ok && rest != "" {
			return rest
		}
	}
	return msg
}
