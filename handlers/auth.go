package handlers

import (
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/akinalp/bloglist/models"
	"github.com/akinalp/bloglist/pkg"
	"github.com/akinalp/bloglist/pkg/ratelimit"
	"github.com/akinalp/bloglist/services"
)

// AuthHandler serves the login endpoint.
type AuthHandler struct {
	authService  services.AuthService
	loginLimiter *ratelimit.LoginRateLimiter
	clientIP     *ratelimit.IPResolver
	rejected     prometheus.Counter
}

// NewAuthHandler creates an AuthHandler.
// loginLimiter nil disables rate limiting; rejected may be nil.
func NewAuthHandler(
	authService services.AuthService,
	loginLimiter *ratelimit.LoginRateLimiter,
	clientIP *ratelimit.IPResolver,
	rejected prometheus.Counter,
) *AuthHandler {
	if clientIP == nil {
		clientIP = ratelimit.NewIPResolver(nil)
	}
	return &AuthHandler{
		authService:  authService,
		loginLimiter: loginLimiter,
		clientIP:     clientIP,
		rejected:     rejected,
	}
}

// Login godoc
// POST /api/login
//
// Attempts are limited per client IP. Over the limit the answer is 429 with
// Retry-After; a successful login clears the IP's history.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ip := h.clientIP.ClientIP(r)
	if h.loginLimiter != nil && !h.loginLimiter.Allow(ip) {
		if h.rejected != nil {
			h.rejected.Inc()
		}
		seconds := int(math.Ceil(h.loginLimiter.RetryAfter(ip).Seconds()))
		if seconds < 1 {
			seconds = 1
		}
		w.Header().Set("Retry-After", strconv.Itoa(seconds))
		pkg.Error(w, r, fmt.Errorf("%w: too many login attempts, try again in %d seconds",
			pkg.ErrTooManyTries, seconds))
		return
	}

	var req models.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.authService.Login(r.Context(), &req)
	if err != nil {
		pkg.Error(w, r, err)
		return
	}

	if h.loginLimiter != nil {
		h.loginLimiter.Reset(ip)
	}

	pkg.JSON(w, http.StatusOK, resp)
}
