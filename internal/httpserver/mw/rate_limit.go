package mw

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/smash-proyect/bff/internal/logger"
	"github.com/smash-proyect/bff/internal/utils"
)

type RateLimitConfig struct {
	RequestsPerSec float64 // 0 disables the limiter
	Burst          int
	IdleTTL        time.Duration // drop limiters unused for this long
	TrustProxy     bool          // resolve the client IP from proxy headers
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type limiter struct {
	cfg       RateLimitConfig
	mu        sync.Mutex
	entries   map[string]*limiterEntry
	lastSweep time.Time
}

func newLimiter(cfg RateLimitConfig) *limiter {
	if cfg.IdleTTL <= 0 {
		cfg.IdleTTL = 15 * time.Minute
	}
	if cfg.Burst < 1 {
		cfg.Burst = 1
	}
	return &limiter{
		cfg:       cfg,
		entries:   make(map[string]*limiterEntry, 256),
		lastSweep: time.Now(),
	}
}

func (l *limiter) get(key string, now time.Time) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	if now.Sub(l.lastSweep) >= l.cfg.IdleTTL {
		for k, e := range l.entries {
			if now.Sub(e.lastSeen) > l.cfg.IdleTTL {
				delete(l.entries, k)
			}
		}
		l.lastSweep = now
	}

	e := l.entries[key]
	if e == nil {
		e = &limiterEntry{limiter: rate.NewLimiter(rate.Limit(l.cfg.RequestsPerSec), l.cfg.Burst)}
		l.entries[key] = e
	}
	e.lastSeen = now
	return e.limiter
}

// RateLimit applies a per client IP token bucket.
func RateLimit(cfg RateLimitConfig, log logger.Logger) func(http.Handler) http.Handler {
	if cfg.RequestsPerSec <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}

	l := newLimiter(cfg)
	limitStr := strconv.Itoa(l.cfg.Burst)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			now := time.Now()
			ip := utils.ClientIP(r, l.cfg.TrustProxy)

			res := l.get(ip, now).ReserveN(now, 1)
			if delay := res.DelayFrom(now); delay > 0 {
				res.CancelAt(now)
				retry := int(math.Ceil(delay.Seconds()))
				w.Header().Set("Retry-After", strconv.Itoa(retry))
				w.Header().Set("X-RateLimit-Limit", limitStr)
				w.Header().Set("X-RateLimit-Remaining", "0")
				log.Warn("rate limit exceeded",
					logger.String("ip", ip),
					logger.String("path", r.URL.Path))
				_ = utils.WriteJSON(w, http.StatusTooManyRequests, map[string]string{"error": "rate_limited"})
				return
			}

			w.Header().Set("X-RateLimit-Limit", limitStr)
			next.ServeHTTP(w, r)
		})
	}
}
