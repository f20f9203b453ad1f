// Package services holds the business rules.
//
// A service sits between the HTTP handlers and the repositories. It never
// sees an http.Request and never writes SQL: it takes and returns domain
// models and reports failures as wrapped pkg errors, which the handler layer
// turns into status codes.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/akinalp/bloglist/models"
	"github.com/akinalp/bloglist/pkg"
	"github.com/akinalp/bloglist/pkg/validate"
	"github.com/akinalp/bloglist/repository"
)

const tokenIssuer = "bloglist"

// AuthService issues and verifies bearer tokens.
type AuthService interface {
	// Login checks the credentials and returns a fresh token.
	Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error)
	// IssueToken signs a token carrying the user's username and id.
	IssueToken(user *models.User) (string, error)
	// ValidateToken verifies signature, algorithm and expiry.
	ValidateToken(tokenString string) (*models.TokenClaims, error)
}

type authService struct {
	userRepo    repository.UserRepository
	secret      []byte
	tokenExpiry time.Duration
	now         func() time.Time
}

// NewAuthService creates an AuthService signing with secret.
// tokenExpiry <= 0 issues tokens without an expiry.
func NewAuthService(userRepo repository.UserRepository, secret string, tokenExpiry time.Duration) AuthService {
	return &authService{
		userRepo:    userRepo,
		secret:      []byte(secret),
		tokenExpiry: tokenExpiry,
		now:         time.Now,
	}
}

func (s *authService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, pkg.ErrNotFound) {
			return nil, fmt.Errorf("%w: invalid username or password", pkg.ErrUnauthorized)
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, fmt.Errorf("%w: invalid username or password", pkg.ErrUnauthorized)
	}

	token, err := s.IssueToken(user)
	if err != nil {
		return nil, err
	}

	return &models.LoginResponse{
		Token:    token,
		Username: user.Username,
		Name:     user.Name,
	}, nil
}

func (s *authService) IssueToken(user *models.User) (string, error) {
	now := s.now()
	claims := &models.TokenClaims{
		Username: user.Username,
		ID:       user.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  user.ID,
			IssuedAt: jwt.NewNumericDate(now),
			Issuer:   tokenIssuer,
		},
	}
	if s.tokenExpiry > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(s.tokenExpiry))
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

func (s *authService) ValidateToken(tokenString string) (*models.TokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.TokenClaims{},
		func(token *jwt.Token) (any, error) {
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: token expired", pkg.ErrUnauthorized)
		}
		return nil, fmt.Errorf("%w: token invalid", pkg.ErrUnauthorized)
	}

	claims, ok := token.Claims.(*models.TokenClaims)
	if !ok || !token.Valid || claims.ID == "" {
		return nil, fmt.Errorf("%w: token invalid", pkg.ErrUnauthorized)
	}

	return claims, nil
}
