package services

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/akinalp/bloglist/models"
	"github.com/akinalp/bloglist/pkg"
	"github.com/akinalp/bloglist/pkg/validate"
	"github.com/akinalp/bloglist/repository"
)

// UserService handles registration and the public user listing.
type UserService interface {
	Register(ctx context.Context, req *models.CreateUserRequest) (*models.User, error)
	// List returns every user with the blogs they created.
	List(ctx context.Context) ([]models.User, error)
}

type userService struct {
	userRepo   repository.UserRepository
	bcryptCost int
}

// NewUserService creates a UserService hashing passwords at bcryptCost.
func NewUserService(userRepo repository.UserRepository, bcryptCost int) UserService {
	if bcryptCost < bcrypt.MinCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &userService{userRepo: userRepo, bcryptCost: bcryptCost}
}

// Register creates a user.
//
// Steps:
// 1. Password length, checked on the raw body before anything else
// 2. Normalize and validate username/name
// 3. bcrypt the password
// 4. Insert; a taken username is a client error, not a conflict
func (s *userService) Register(ctx context.Context, req *models.CreateUserRequest) (*models.User, error) {
	if len(req.Password) < models.MinPasswordLength {
		return nil, fmt.Errorf("%w: Password must be %d characters at least", pkg.ErrBadRequest, models.MinPasswordLength)
	}

	req.Normalize()
	if err := validate.Struct(req); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, fmt.Errorf("%w: password is too long", pkg.ErrBadRequest)
		}
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     req.Username,
		Name:         req.Name,
		PasswordHash: string(hash),
		Blogs:        []models.BlogSummary{},
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, pkg.ErrAlreadyExists) {
			return nil, fmt.Errorf("%w: expected `username` to be unique", pkg.ErrBadRequest)
		}
		return nil, err
	}

	return user, nil
}

func (s *userService) List(ctx context.Context) ([]models.User, error) {
	users, err := s.userRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = []models.User{}
	}
	return users, nil
}
