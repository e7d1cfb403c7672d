package middleware

import (
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/handler/http/response"
	"github.com/go-chi/jwtauth/v5"
	"golang.org/x/time/rate"
)

// RateLimiterConfig bounds per-user request rates.
type RateLimiterConfig struct {
	Rate            rate.Limit
	Burst           int
	CleanupInterval time.Duration
}

// PerMinute builds a config allowing n requests per minute with a burst of n.
func PerMinute(n int) RateLimiterConfig {
	return RateLimiterConfig{
		Rate:            rate.Limit(float64(n) / 60.0),
		Burst:           n,
		CleanupInterval: 5 * time.Minute,
	}
}

type userLimiter struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// RateLimiter keeps one token bucket per user_id claim.
type RateLimiter struct {
	config RateLimiterConfig

	mu       sync.Mutex
	limiters map[string]*userLimiter

	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewRateLimiter starts a background loop evicting idle users. Call Stop to
// end it.
func NewRateLimiter(config RateLimiterConfig) *RateLimiter {
	if config.CleanupInterval <= 0 {
		config.CleanupInterval = 5 * time.Minute
	}
	rl := &RateLimiter{
		config:   config,
		limiters: make(map[string]*userLimiter),
		stopCh:   make(chan struct{}),
	}

	go rl.cleanupLoop()

	return rl
}

func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stopCh) })
}

// Middleware limits requests by the caller's user_id. It must run after
// jwtauth.Verifier.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.Unauthorized(w, err.Error())
			return
		}
		userID, _ := claims["user_id"].(string)
		if userID == "" {
			response.Unauthorized(w, "Invalid token claims")
			return
		}

		if !rl.limiterFor(userID).Allow() {
			slog.Warn("rate limit exceeded", slog.String("user_id", userID), slog.String("path", r.URL.Path))
			w.Header().Set("Retry-After", strconv.Itoa(rl.retryAfterSeconds()))
			response.TooManyRequests(w, "Too many requests. Please try again later.")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// LimiterCount returns the number of tracked users.
func (rl *RateLimiter) LimiterCount() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.limiters)
}

func (rl *RateLimiter) limiterFor(userID string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	ul, ok := rl.limiters[userID]
	if !ok {
		ul = &userLimiter{limiter: rate.NewLimiter(rl.config.Rate, rl.config.Burst)}
		rl.limiters[userID] = ul
	}
	ul.lastAccess = time.Now()
	return ul.limiter
}

func (rl *RateLimiter) retryAfterSeconds() int {
	if rl.config.Rate <= 0 {
		return 60
	}
	sec := int(math.Ceil(1.0 / float64(rl.config.Rate)))
	if sec < 1 {
		sec = 1
	}
	return sec
}

func (rl *RateLimiter) cleanupLoop() {
	ticker := time.NewTicker(rl.config.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanup(time.Now())
		case <-rl.stopCh:
			return
		}
	}
}

// cleanup drops users idle for more than twice the cleanup interval.
func (rl *RateLimiter) cleanup(now time.Time) {
	ttl := rl.config.CleanupInterval * 2

	rl.mu.Lock()
	defer rl.mu.Unlock()
	for userID, ul := range rl.limiters {
		if now.Sub(ul.lastAccess) > ttl {
			delete(rl.limiters, userID)
		}
	}
}
