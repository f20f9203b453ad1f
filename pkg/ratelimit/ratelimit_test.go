package ratelimit

import (
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllowPerIP(t *testing.T) {
	rl := NewLoginRateLimiter(3)
	defer rl.Close()

	for i := 0; i < 3; i++ {
		assert.True(t, rl.Allow("1.1.1.1"), "attempt %d", i+1)
	}
	assert.False(t, rl.Allow("1.1.1.1"))
	assert.Greater(t, rl.RetryAfter("1.1.1.1"), time.Duration(0))

	// Other clients have their own bucket.
	assert.True(t, rl.Allow("2.2.2.2"))
}

func TestReset(t *testing.T) {
	rl := NewLoginRateLimiter(1)
	defer rl.Close()

	assert.True(t, rl.Allow("1.1.1.1"))
	assert.False(t, rl.Allow("1.1.1.1"))

	rl.Reset("1.1.1.1")
	assert.True(t, rl.Allow("1.1.1.1"))
}

func TestRefill(t *testing.T) {
	rl := NewLoginRateLimiter(60)
	defer rl.Close()

	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	for i := 0; i < 60; i++ {
		rl.Allow("ip")
	}
	assert.False(t, rl.Allow("ip"))

	now = now.Add(time.Second)
	assert.True(t, rl.Allow("ip"))
}

func TestDisabled(t *testing.T) {
	rl := NewLoginRateLimiter(0)
	defer rl.Close()

	for i := 0; i < 1000; i++ {
		assert.True(t, rl.Allow("ip"))
	}
}

func TestCleanupDropsIdleVisitors(t *testing.T) {
	rl := NewLoginRateLimiter(5)
	defer rl.Close()

	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	rl.Allow("old")
	now = now.Add(11 * time.Minute)
	rl.Allow("fresh")
	rl.cleanup()

	rl.mu.Lock()
	defer rl.mu.Unlock()
	assert.NotContains(t, rl.visitors, "old")
	assert.Contains(t, rl.visitors, "fresh")
}

func TestClientIP(t *testing.T) {
	trusted, err := ParsePrefixes([]string{"10.0.0.0/8", "192.168.1.1"})
	require.NoError(t, err)

	tests := []struct {
		name     string
		resolver *IPResolver
		headers  map[string]string
		remote   string
		want     string
	}{
		{name: "remote addr", resolver: NewIPResolver(nil), remote: "1.2.3.4:5678", want: "1.2.3.4"},
		{name: "remote addr without port", resolver: NewIPResolver(nil), remote: "1.2.3.4", want: "1.2.3.4"},
		{
			name:     "forwarded for ignored without trusted proxies",
			resolver: NewIPResolver(nil),
			headers:  map[string]string{"X-Forwarded-For": "9.9.9.9"},
			remote:   "1.2.3.4:5",
			want:     "1.2.3.4",
		},
		{
			name:     "forwarded for ignored from untrusted peer",
			resolver: NewIPResolver(trusted),
			headers:  map[string]string{"X-Forwarded-For": "9.9.9.9", "X-Real-IP": "8.8.8.8"},
			remote:   "1.2.3.4:5",
			want:     "1.2.3.4",
		},
		{
			name:     "right-most untrusted hop",
			resolver: NewIPResolver(trusted),
			headers:  map[string]string{"X-Forwarded-For": "6.6.6.6, 5.5.5.5, 10.1.2.3"},
			remote:   "192.168.1.1:443",
			want:     "5.5.5.5",
		},
		{
			name:     "all hops trusted",
			resolver: NewIPResolver(trusted),
			headers:  map[string]string{"X-Forwarded-For": "10.0.0.7, 10.0.0.8"},
			remote:   "10.0.0.9:1",
			want:     "10.0.0.7",
		},
		{
			name:     "garbage hop stops the walk",
			resolver: NewIPResolver(trusted),
			headers:  map[string]string{"X-Forwarded-For": "not-an-ip, 10.0.0.8"},
			remote:   "10.0.0.9:1",
			want:     "10.0.0.8",
		},
		{
			name:     "real ip from trusted peer",
			resolver: NewIPResolver(trusted),
			headers:  map[string]string{"X-Real-IP": "7.7.7.7"},
			remote:   "10.0.0.9:1",
			want:     "7.7.7.7",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("POST", "/api/login", nil)
			r.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, tt.resolver.ClientIP(r))
		})
	}
}

func TestSpoofedForwardedForSharesOneBucket(t *testing.T) {
	rl := NewLoginRateLimiter(2)
	defer rl.Close()
	resolver := NewIPResolver(nil)

	allowed := 0
	for i := 0; i < 50; i++ {
		r := httptest.NewRequest("POST", "/api/login", nil)
		r.RemoteAddr = "203.0.113.9:40000"
		r.Header.Set("X-Forwarded-For", fmt.Sprintf("198.51.100.%d", i))
		if rl.Allow(resolver.ClientIP(r)) {
			allowed++
		}
	}
	assert.Equal(t, 2, allowed)
}

func TestParsePrefixes(t *testing.T) {
	prefixes, err := ParsePrefixes([]string{"10.0.0.0/8", "::1", "172.16.5.4/12"})
	require.NoError(t, err)
	require.Len(t, prefixes, 3)
	assert.Equal(t, "172.16.0.0/12", prefixes[2].String())
	assert.Equal(t, 128, prefixes[1].Bits())

	_, err = ParsePrefixes([]string{"proxy.local"})
	assert.ErrorContains(t, err, "proxy.local")
}
