// Package ratelimit limits login attempts per client IP.
//
// Each IP gets its own token bucket (golang.org/x/time/rate): perMinute
// attempts refill evenly over a minute, with a burst of the same size. A
// successful login drops the bucket, so a user who finally types the right
// password starts clean. Idle buckets are swept in the background.
//
// The package imports nothing from the project, so both handlers and
// middleware can use it without an import cycle.
package ratelimit

import (
	"fmt"
	"net"
	"net/http"
	"net/netip"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// LoginRateLimiter tracks one token bucket per client IP.
type LoginRateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    rate.Limit
	burst    int
	idle     time.Duration
	now      func() time.Time

	stopCleanup chan struct{}
	closeOnce   sync.Once
}

// NewLoginRateLimiter allows perMinute attempts per IP per minute.
// perMinute <= 0 disables limiting.
func NewLoginRateLimiter(perMinute int) *LoginRateLimiter {
	rl := &LoginRateLimiter{
		visitors:    make(map[string]*visitor),
		limit:       rate.Inf,
		burst:       0,
		idle:        10 * time.Minute,
		now:         time.Now,
		stopCleanup: make(chan struct{}),
	}
	if perMinute > 0 {
		rl.limit = rate.Every(time.Minute / time.Duration(perMinute))
		rl.burst = perMinute
	}

	go rl.cleanupLoop()
	return rl
}

// Allow consumes one attempt for ip and reports whether it was allowed.
func (rl *LoginRateLimiter) Allow(ip string) bool {
	now := rl.now()
	return rl.visitor(ip, now).AllowN(now, 1)
}

// RetryAfter is how long ip has to wait for its next attempt.
func (rl *LoginRateLimiter) RetryAfter(ip string) time.Duration {
	now := rl.now()
	r := rl.visitor(ip, now).ReserveN(now, 1)
	if !r.OK() {
		return time.Minute
	}
	delay := r.DelayFrom(now)
	r.CancelAt(now)
	return delay
}

// Reset forgets ip, typically after a successful login.
func (rl *LoginRateLimiter) Reset(ip string) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	delete(rl.visitors, ip)
}

// Close stops the background sweep. Safe to call more than once.
func (rl *LoginRateLimiter) Close() {
	rl.closeOnce.Do(func() { close(rl.stopCleanup) })
}

func (rl *LoginRateLimiter) visitor(ip string, now time.Time) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	v, ok := rl.visitors[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.visitors[ip] = v
	}
	v.lastSeen = now
	return v.limiter
}

func (rl *LoginRateLimiter) cleanupLoop() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanup()
		case <-rl.stopCleanup:
			return
		}
	}
}

func (rl *LoginRateLimiter) cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	for ip, v := range rl.visitors {
		if now.Sub(v.lastSeen) > rl.idle {
			delete(rl.visitors, ip)
		}
	}
}

// IPResolver finds the client address a request should be limited by.
//
// RemoteAddr is the client unless the peer is a trusted proxy. Behind trusted
// proxies X-Forwarded-For is walked from the right and the first hop outside
// the trusted set wins; hops left of it are client-supplied and ignored.
type IPResolver struct {
	trusted []netip.Prefix
}

// NewIPResolver creates an IPResolver. No trusted prefixes means forwarding
// headers are never read.
func NewIPResolver(trusted []netip.Prefix) *IPResolver {
	return &IPResolver{trusted: trusted}
}

// ParsePrefixes parses CIDRs ("10.0.0.0/8") and bare addresses ("10.0.0.1").
func ParsePrefixes(list []string) ([]netip.Prefix, error) {
	prefixes := make([]netip.Prefix, 0, len(list))
	for _, raw := range list {
		if strings.Contains(raw, "/") {
			prefix, err := netip.ParsePrefix(raw)
			if err != nil {
				return nil, fmt.Errorf("invalid proxy %q: %w", raw, err)
			}
			prefixes = append(prefixes, prefix.Masked())
			continue
		}
		addr, err := netip.ParseAddr(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid proxy %q: %w", raw, err)
		}
		addr = addr.Unmap()
		prefixes = append(prefixes, netip.PrefixFrom(addr, addr.BitLen()))
	}
	return prefixes, nil
}

// ClientIP returns the client IP of r.
func (res *IPResolver) ClientIP(r *http.Request) string {
	peer := remoteHost(r.RemoteAddr)
	addr, err := netip.ParseAddr(peer)
	if err != nil || !res.isTrusted(addr) {
		return peer
	}

	if hops := forwardedHops(r.Header.Values("X-Forwarded-For")); len(hops) > 0 {
		client := addr
		for i := len(hops) - 1; i >= 0; i-- {
			hop, err := netip.ParseAddr(hops[i])
			if err != nil {
				break
			}
			client = hop.Unmap()
			if !res.isTrusted(client) {
				break
			}
		}
		return client.String()
	}

	if xri, err := netip.ParseAddr(strings.TrimSpace(r.Header.Get("X-Real-IP"))); err == nil {
		return xri.Unmap().String()
	}
	return peer
}

func (res *IPResolver) isTrusted(addr netip.Addr) bool {
	addr = addr.Unmap()
	for _, prefix := range res.trusted {
		if prefix.Contains(addr) {
			return true
		}
	}
	return false
}

// forwardedHops flattens repeated X-Forwarded-For headers into one hop list.
func forwardedHops(values []string) []string {
	var hops []string
	for _, v := range values {
		for _, hop := range strings.Split(v, ",") {
			if hop = strings.TrimSpace(hop); hop != "" {
				hops = append(hops, hop)
			}
		}
	}
	return hops
}

func remoteHost(remoteAddr string) string {
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		return remoteAddr
	}
	return host
}
