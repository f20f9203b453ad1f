package handlers

import (
	"net/http"

	"github.com/akinalp/bloglist/models"
	"github.com/akinalp/bloglist/pkg"
	"github.com/akinalp/bloglist/services"
)

// BlogHandler serves /api/blogs.
type BlogHandler struct {
	blogService services.BlogService
}

// NewBlogHandler creates a BlogHandler.
func NewBlogHandler(blogService services.BlogService) *BlogHandler {
	return &BlogHandler{blogService: blogService}
}

// List godoc
// GET /api/blogs
func (h *BlogHandler) List(w http.ResponseWriter, r *http.Request) {
	blogs, err := h.blogService.List(r.Context())
	if err != nil {
		pkg.Error(w, r, err)
		return
	}

	pkg.JSON(w, http.StatusOK, blogs)
}

// Get godoc
// GET /api/blogs/{id}
func (h *BlogHandler) Get(w http.ResponseWriter, r *http.Request) {
	blog, err := h.blogService.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		pkg.Error(w, r, err)
		return
	}

	pkg.JSON(w, http.StatusOK, blog)
}

// Create godoc
// POST /api/blogs
// The caller may be anonymous here; the service decides between 400 and 401.
func (h *BlogHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateBlogRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	blog, err := h.blogService.Create(r.Context(), UserFromContext(r.Context()), &req)
	if err != nil {
		pkg.Error(w, r, err)
		return
	}

	pkg.JSON(w, http.StatusCreated, blog)
}

// Update godoc
// PUT /api/blogs/{id}
// No token required.
func (h *BlogHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateBlogRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	blog, err := h.blogService.Update(r.Context(), r.PathValue("id"), &req)
	if err != nil {
		pkg.Error(w, r, err)
		return
	}

	pkg.JSON(w, http.StatusOK, blog)
}

// Delete godoc
// DELETE /api/blogs/{id}
func (h *BlogHandler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.blogService.Delete(r.Context(), UserFromContext(r.Context()), r.PathValue("id"))
	if err != nil {
		pkg.Error(w, r, err)
		return
	}

	pkg.NoContent(w)
}
