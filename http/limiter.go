package http

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// DefaultIdleTimeout is how long a client may stay silent before its limiter
// is dropped.
const DefaultIdleTimeout = 10 * time.Minute

// ClientLimiter provides per-client rate limiting using token buckets.
// Each client key gets its own limiter so one noisy caller cannot starve
// the rest. Limiters of clients idle longer than IdleTimeout are evicted,
// so memory is bounded by the clients seen within one timeout window.
type ClientLimiter struct {
	// IdleTimeout controls eviction. Set before first use.
	IdleTimeout time.Duration

	// Now returns the current time. Overridable for tests.
	Now func() time.Time

	mu        sync.Mutex
	clients   map[string]*client
	lastSweep time.Time
	rps       float64
	burst     int
}

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewClientLimiter creates a ClientLimiter allowing rps requests per second
// per client with the given burst. A burst below 1 is raised to 1.
func NewClientLimiter(rps float64, burst int) *ClientLimiter {
	if burst < 1 {
		burst = 1
	}
	return &ClientLimiter{
		IdleTimeout: DefaultIdleTimeout,
		Now:         time.Now,
		clients:     make(map[string]*client),
		rps:         rps,
		burst:       burst,
	}
}

// Allow reports whether a request from key may proceed now.
func (c *ClientLimiter) Allow(key string) bool {
	now := c.Now()

	c.mu.Lock()
	c.sweep(now)
	cl, ok := c.clients[key]
	if !ok {
		cl = &client{limiter: rate.NewLimiter(rate.Limit(c.rps), c.burst)}
		c.clients[key] = cl
	}
	cl.lastSeen = now
	c.mu.Unlock()

	return cl.limiter.AllowN(now, 1)
}

// sweep drops idle clients at most once per IdleTimeout. Callers hold mu.
func (c *ClientLimiter) sweep(now time.Time) {
	if c.IdleTimeout <= 0 || now.Sub(c.lastSweep) < c.IdleTimeout {
		return
	}
	c.lastSweep = now
	for key, cl := range c.clients {
		if now.Sub(cl.lastSeen) >= c.IdleTimeout {
			delete(c.clients, key)
		}
	}
}

// Len returns the number of clients currently tracked.
func (c *ClientLimiter) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.clients)
}
