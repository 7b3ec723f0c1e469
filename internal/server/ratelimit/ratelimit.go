// Package ratelimit provides per-client rate limiting for the HTTP API,
// backed by golang.org/x/time/rate token buckets.
package ratelimit

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// Info contains information about rate limit status.
type Info struct {
	Allowed    bool
	Limit      int
	Remaining  int
	RetryAfter time.Duration
}

// bucket is one client's token bucket plus the last time it was used.
type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// Limiter manages rate limiting for multiple clients.
type Limiter struct {
	mu       sync.Mutex
	limiters map[string]*bucket // client:path:method -> bucket
	config   *Config

	cleanupTicker *time.Ticker
	cleanupStop   chan struct{}
	stopOnce      sync.Once
}

// NewLimiter creates a new rate limiter with the given configuration. When
// cleanup is enabled a background sweep evicts idle buckets until Stop is called.
func NewLimiter(config *Config) *Limiter {
	if config == nil {
		config = &Config{
			Enabled:         true,
			DefaultLimit:    600,
			DefaultWindow:   time.Minute,
			Whitelist:       make(map[string]bool),
			CleanupInterval: 5 * time.Minute,
		}
	}
	limiter := &Limiter{
		limiters: make(map[string]*bucket),
		config:   config,
	}

	if config.Enabled && config.CleanupInterval > 0 {
		limiter.cleanupTicker = time.NewTicker(config.CleanupInterval)
		limiter.cleanupStop = make(chan struct{})
		go limiter.cleanup()
	}

	return limiter
}

// Allow checks if a request from the given client is allowed for the specified endpoint.
func (l *Limiter) Allow(clientID string, endpoint string, method string) (bool, Info) {
	if !l.config.Enabled || l.config.Whitelist[clientID] {
		return true, Info{Allowed: true}
	}

	endpointConfig := MatchEndpoint(endpoint, method, l.config.EndpointConfigs)
	if endpointConfig == nil {
		endpointConfig = &EndpointConfig{
			Limit:  l.config.DefaultLimit,
			Window: l.config.DefaultWindow,
		}
	}

	// Unlimited endpoint (e.g., health check)
	if endpointConfig.Limit <= 0 || endpointConfig.Window <= 0 {
		return true, Info{Allowed: true}
	}

	now := time.Now()
	limiter := l.limiterFor(clientID+":"+endpoint+":"+method, endpointConfig, now)

	reservation := limiter.ReserveN(now, 1)
	if delay := reservation.DelayFrom(now); delay > 0 {
		reservation.CancelAt(now)
		return false, Info{
			Limit:      endpointConfig.Limit,
			Remaining:  0,
			RetryAfter: delay,
		}
	}

	return true, Info{
		Allowed:   true,
		Limit:     endpointConfig.Limit,
		Remaining: max(0, int(limiter.TokensAt(now))),
	}
}

// limiterFor gets or creates the bucket for key and marks it used at now.
func (l *Limiter) limiterFor(key string, cfg *EndpointConfig, now time.Time) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	if b, ok := l.limiters[key]; ok {
		b.lastSeen = now
		return b.limiter
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = cfg.Limit
	}
	limiter := rate.NewLimiter(rate.Every(cfg.Window/time.Duration(cfg.Limit)), burst)
	l.limiters[key] = &bucket{limiter: limiter, lastSeen: now}
	return limiter
}

// cleanup removes old unused buckets to prevent memory leaks.
func (l *Limiter) cleanup() {
	for {
		select {
		case <-l.cleanupTicker.C:
			l.sweep(time.Now())
		case <-l.cleanupStop:
			return
		}
	}
}

// sweep evicts buckets that have been idle for a full cleanup interval and have
// refilled to their burst by now. It returns the number evicted.
func (l *Limiter) sweep(now time.Time) int {
	cutoff := now.Add(-l.config.CleanupInterval)

	l.mu.Lock()
	defer l.mu.Unlock()

	evicted := 0
	for key, b := range l.limiters {
		if b.lastSeen.After(cutoff) {
			continue
		}
		if b.limiter.TokensAt(now) < float64(b.limiter.Burst()) {
			continue
		}
		delete(l.limiters, key)
		evicted++
	}
	return evicted
}

// Len returns the number of tracked buckets.
func (l *Limiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.limiters)
}

// Stop stops the cleanup goroutine. It is safe to call more than once.
func (l *Limiter) Stop() {
	l.stopOnce.Do(func() {
		if l.cleanupTicker != nil {
			l.cleanupTicker.Stop()
		}
		if l.cleanupStop != nil {
			close(l.cleanupStop)
		}
	})
}

// Middleware returns a gin middleware enforcing the limiter per client IP.
func (l *Limiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, info := l.Allow(c.ClientIP(), c.FullPath(), c.Request.Method)
		if info.Limit > 0 {
			c.Header("X-RateLimit-Limit", strconv.Itoa(info.Limit))
			c.Header("X-RateLimit-Remaining", strconv.Itoa(info.Remaining))
		}
		if !allowed {
			retryAfter := int(info.RetryAfter.Seconds()) + 1
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":       "rate_limit_exceeded",
				"message":     "Rate limit exceeded. Please try again later.",
				"retry_after": retryAfter,
			})
			return
		}
		c.Next()
	}
}
