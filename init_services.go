// Package main: service layer setup.
//
// initServices builds every service from the repositories and config. It
// also owns the background-swept helpers (stats cache, login limiter), which
// Services.Close stops.
package main

import (
	"database/sql"

	"github.com/rs/zerolog"

	"github.com/akinalp/bloglist/config"
	"github.com/akinalp/bloglist/models"
	"github.com/akinalp/bloglist/pkg/cache"
	"github.com/akinalp/bloglist/pkg/logger"
	"github.com/akinalp/bloglist/pkg/ratelimit"
	"github.com/akinalp/bloglist/services"
	"github.com/akinalp/bloglist/ws"
)

// Services groups every service instance.
type Services struct {
	Auth services.AuthService
	User services.UserService
	Blog services.BlogService

	LoginLimiter *ratelimit.LoginRateLimiter
	statsCache   *services.StatsCache
}

func initServices(db *sql.DB, repos *Repositories, hub *ws.Hub, cfg *config.Config, log zerolog.Logger) *Services {
	// Stats are recomputed at most once per TTL; writes clear them early.
	// A zero TTL turns the cache off.
	var statsCache *services.StatsCache
	if cfg.Stats.CacheTTL > 0 {
		statsCache = cache.New[string, models.BlogStats](cfg.Stats.CacheTTL, cfg.Stats.CacheTTL)
	}

	return &Services{
		Auth: services.NewAuthService(repos.User, cfg.Auth.Secret, cfg.Auth.TokenExpiry),
		User: services.NewUserService(repos.User, cfg.Auth.BcryptCost),
		Blog: services.NewBlogService(db, repos.Blog, statsCache, hub, logger.Component(log, "blogs")),

		LoginLimiter: ratelimit.NewLoginRateLimiter(cfg.Auth.LoginRatePerMinute),
		statsCache:   statsCache,
	}
}

// Close stops the background sweeps.
func (s *Services) Close() {
	s.LoginLimiter.Close()
	if s.statsCache != nil {
		s.statsCache.Close()
	}
}
