package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"repairs/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const purgeInterval = 5 * time.Minute

// window counts requests from one client IP within a fixed window.
type window struct {
	count int
	end   time.Time
}

// limiter is a fixed-window counter keyed by client IP. Expired entries are
// purged on the request path at most once per purgeInterval.
type limiter struct {
	limit     int
	span      time.Duration
	now       func() time.Time
	mu        sync.Mutex
	windows   map[string]*window
	nextPurge time.Time
}

func newLimiter(limit int, span time.Duration) *limiter {
	return &limiter{limit: limit, span: span, now: time.Now, windows: make(map[string]*window)}
}

// allow records one request and reports whether it is within the limit,
// along with the end of the current window.
func (l *limiter) allow(ip string) (bool, time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.After(l.nextPurge) {
		l.purge(now)
		l.nextPurge = now.Add(purgeInterval)
	}

	w, ok := l.windows[ip]
	if !ok || now.After(w.end) {
		w = &window{end: now.Add(l.span)}
		l.windows[ip] = w
	}
	w.count++
	return w.count <= l.limit, w.end
}

func (l *limiter) purge(now time.Time) {
	purged := 0
	for ip, w := range l.windows {
		if now.After(w.end) {
			delete(l.windows, ip)
			purged++
		}
	}
	if purged > 0 {
		log.Debug().Int("purged", purged).Int("remaining", len(l.windows)).Msg("rate limiter purged")
	}
}

func (l *limiter) handler(message string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, end := l.allow(c.ClientIP())
		if !ok {
			secs := int(time.Until(end).Seconds()) + 1
			c.Header("Retry-After", strconv.Itoa(secs))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New(message))
			return
		}
		c.Next()
	}
}

// LoginRateLimiter allows 20 sign-in attempts per minute per IP.
func LoginRateLimiter() gin.HandlerFunc {
	return newLimiter(20, time.Minute).handler("Too many sign-in attempts, try again in a minute")
}

// RateLimiter allows limit requests per window per IP.
func RateLimiter(limit int, span time.Duration) gin.HandlerFunc {
	return newLimiter(limit, span).handler("Too many requests, slow down")
}
