package handlers

import (
	"net/http"

	"github.com/akinalp/bloglist/pkg"
	"github.com/akinalp/bloglist/services"
)

// StatsHandler serves the public aggregates over all blogs.
type StatsHandler struct {
	blogService services.BlogService
}

// NewStatsHandler creates a StatsHandler.
func NewStatsHandler(blogService services.BlogService) *StatsHandler {
	return &StatsHandler{blogService: blogService}
}

// GetBlogStats godoc
// GET /api/blogs/stats
// Response: { "total_likes": 36, "favorite_blog": {...}, "most_blogs": {...}, "most_likes": {...} }
func (h *StatsHandler) GetBlogStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.blogService.Stats(r.Context())
	if err != nil {
		pkg.Error(w, r, err)
		return
	}

	pkg.JSON(w, http.StatusOK, stats)
}

// Health godoc
// GET /api/health
func Health(w http.ResponseWriter, _ *http.Request) {
	pkg.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
