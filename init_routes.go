// Package main: HTTP route registration.
//
// initRoutes binds every endpoint to the mux. Blog routes go through
// UserExtractor, so a bad token is refused on all of them and a good one
// puts the user in the context; whether a user is required is up to the
// service.
package main

import (
	"net/http"

	"github.com/akinalp/bloglist/handlers"
	"github.com/akinalp/bloglist/middleware"
	"github.com/akinalp/bloglist/repository"
	"github.com/akinalp/bloglist/services"
)

// initRoutes wires the endpoints.
//
// "/api/blogs/stats" and "/api/blogs/live" are literal and therefore more
// specific than "/api/blogs/{id}"; ServeMux picks them regardless of
// registration order.
func initRoutes(
	mux *http.ServeMux,
	h *Handlers,
	authService services.AuthService,
	userRepo repository.UserRepository,
	metrics *middleware.Metrics,
) {
	// ─── Middleware ───
	authMw := middleware.NewAuthMiddleware(authService, userRepo)
	withUser := authMw.UserExtractorFunc

	// ─── Blogs ───
	mux.Handle("GET /api/blogs", withUser(h.Blog.List))
	mux.Handle("POST /api/blogs", withUser(h.Blog.Create))
	mux.Handle("GET /api/blogs/stats", withUser(h.Stats.GetBlogStats))
	mux.HandleFunc("GET /api/blogs/live", h.Live.HandleConnection) // token via ?token=
	mux.Handle("GET /api/blogs/{id}", withUser(h.Blog.Get))
	mux.Handle("PUT /api/blogs/{id}", withUser(h.Blog.Update))
	mux.Handle("DELETE /api/blogs/{id}", withUser(h.Blog.Delete))

	// ─── Users ───
	mux.HandleFunc("GET /api/users", h.User.List)
	mux.HandleFunc("POST /api/users", h.User.Create)

	// ─── Auth ───
	mux.HandleFunc("POST /api/login", h.Auth.Login)

	// ─── Ops ───
	mux.HandleFunc("GET /api/health", handlers.Health)
	mux.Handle("GET /metrics", metrics.Handler())
}
