package handlers

import (
	"net/http"

	"github.com/akinalp/bloglist/models"
	"github.com/akinalp/bloglist/pkg"
	"github.com/akinalp/bloglist/services"
)

// UserHandler serves /api/users.
type UserHandler struct {
	userService services.UserService
}

// NewUserHandler creates a UserHandler.
func NewUserHandler(userService services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// List godoc
// GET /api/users
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.List(r.Context())
	if err != nil {
		pkg.Error(w, r, err)
		return
	}

	pkg.JSON(w, http.StatusOK, users)
}

// Create godoc
// POST /api/users
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateUserRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := h.userService.Register(r.Context(), &req)
	if err != nil {
		pkg.Error(w, r, err)
		return
	}

	pkg.JSON(w, http.StatusCreated, user)
}
