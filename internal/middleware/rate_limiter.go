package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/MateoRicci/gestion-cec-sub000/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// limiterEntry tracks request counts per IP within a sliding window.
type limiterEntry struct {
	count     int
	windowEnd time.Time
	mu        sync.Mutex
}

// limiter is a per-IP sliding-window counter shared by the login and
// general-API limiters.
type limiter struct {
	mu      sync.Mutex
	entries map[string]*limiterEntry
}

func newLimiter() *limiter {
	return &limiter{entries: make(map[string]*limiterEntry)}
}

// allow increments the IP's counter and reports whether it stays under limit.
func (l *limiter) allow(ip string, limit int, window time.Duration) (bool, time.Time) {
	l.mu.Lock()
	entry, exists := l.entries[ip]
	if !exists {
		entry = &limiterEntry{}
		l.entries[ip] = entry
	}
	l.mu.Unlock()

	entry.mu.Lock()
	defer entry.mu.Unlock()

	now := time.Now()
	if now.After(entry.windowEnd) {
		entry.count = 0
		entry.windowEnd = now.Add(window)
	}
	entry.count++
	return entry.count <= limit, entry.windowEnd
}

// purge drops expired entries so IPs that never return don't accumulate.
func (l *limiter) purge(now time.Time) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	purged := 0
	for ip, entry := range l.entries {
		entry.mu.Lock()
		if now.After(entry.windowEnd) {
			delete(l.entries, ip)
			purged++
		}
		entry.mu.Unlock()
	}
	return purged
}

var (
	loginLimiter = newLimiter()
	apiLimiter   = newLimiter()
)

// LoginRateLimiter limits login attempts to 20 per minute per IP.
func LoginRateLimiter() gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, _ := loginLimiter.allow(c.ClientIP(), 20, time.Minute)
		if !ok {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New("Demasiados intentos de login. Intente en 1 minuto."))
			return
		}
		c.Next()
	}
}

// RateLimiter is the general-purpose per-IP limiter for the whole API.
func RateLimiter(limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, windowEnd := apiLimiter.allow(c.ClientIP(), limit, window)
		if !ok {
			c.Header("Retry-After", windowEnd.Format(time.RFC1123))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New("Demasiadas solicitudes. Intente nuevamente en un momento."))
			return
		}
		c.Next()
	}
}

const purgeInterval = 5 * time.Minute

func init() {
	go func() {
		ticker := time.NewTicker(purgeInterval)
		defer ticker.Stop()
		for range ticker.C {
			now := time.Now()
			purged := loginLimiter.purge(now) + apiLimiter.purge(now)
			if purged > 0 {
				log.Debug().Int("entries_purged", purged).Msg("rate limiter maps purged")
			}
		}
	}()
}
