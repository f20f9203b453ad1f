// Package main: handler layer setup.
package main

import (
	"github.com/akinalp/bloglist/config"
	"github.com/akinalp/bloglist/handlers"
	"github.com/akinalp/bloglist/middleware"
	"github.com/akinalp/bloglist/pkg/ratelimit"
	"github.com/akinalp/bloglist/ws"
)

// Handlers groups every handler instance.
type Handlers struct {
	Auth  *handlers.AuthHandler
	User  *handlers.UserHandler
	Blog  *handlers.BlogHandler
	Stats *handlers.StatsHandler
	Live  *ws.Handler
}

func initHandlers(svcs *Services, hub *ws.Hub, metrics *middleware.Metrics, cfg *config.Config) *Handlers {
	clientIP := ratelimit.NewIPResolver(cfg.Auth.TrustedProxies)

	return &Handlers{
		Auth:  handlers.NewAuthHandler(svcs.Auth, svcs.LoginLimiter, clientIP, metrics.LoginRejected),
		User:  handlers.NewUserHandler(svcs.User),
		Blog:  handlers.NewBlogHandler(svcs.Blog),
		Stats: handlers.NewStatsHandler(svcs.Blog),
		Live:  ws.NewHandler(hub, svcs.Auth, cfg.CORS.AllowedOrigins),
	}
}
