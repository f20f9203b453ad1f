package cache

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestCache(t *testing.T, ttl time.Duration) (*TTLCache[string, int], *time.Time) {
	t.Helper()
	c := New[string, int](ttl, time.Hour)
	t.Cleanup(c.Close)

	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }
	return c, &now
}

func TestGetSet(t *testing.T) {
	c, _ := newTestCache(t, time.Minute)

	_, ok := c.Get("missing")
	assert.False(t, ok)

	c.Set("a", 1)
	v, ok := c.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 1, v)

	c.Set("a", 2)
	v, _ = c.Get("a")
	assert.Equal(t, 2, v)
}

func TestExpiry(t *testing.T) {
	c, now := newTestCache(t, time.Minute)

	c.Set("a", 1)
	*now = now.Add(59 * time.Second)
	_, ok := c.Get("a")
	assert.True(t, ok)

	*now = now.Add(2 * time.Second)
	_, ok = c.Get("a")
	assert.False(t, ok)

	assert.Equal(t, 1, c.Len())
	c.evictExpired()
	assert.Equal(t, 0, c.Len())
}

func TestDeleteAndClear(t *testing.T) {
	c, _ := newTestCache(t, time.Minute)

	c.Set("a", 1)
	c.Set("b", 2)
	c.Delete("a")
	_, ok := c.Get("a")
	assert.False(t, ok)
	assert.Equal(t, 1, c.Len())

	c.Clear()
	assert.Equal(t, 0, c.Len())
}

func TestCloseTwice(t *testing.T) {
	c := New[string, int](time.Minute, time.Minute)
	assert.NotPanics(t, func() {
		c.Close()
		c.Close()
	})
}

func TestConcurrentAccess(t *testing.T) {
	c := New[int, int](time.Minute, time.Millisecond)
	defer c.Close()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				c.Set(j, i)
				c.Get(j)
				if j%10 == 0 {
					c.Delete(j)
				}
			}
		}(i)
	}
	wg.Wait()
}
