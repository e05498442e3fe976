/*
Package limiter provides request rate limiting keyed by caller.

It keeps one token bucket (rate.Limiter) per key, where the key is the authenticated user id
when one is present and the client IP otherwise. A cleanup goroutine drops idle buckets.
*/
package limiter

import (
	"context"
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"pinmap/internal/app/user"
	"pinmap/internal/pkg/errs"
	"pinmap/internal/pkg/logx"
	"pinmap/internal/pkg/resp"
)

// CleanupInterval is how often idle buckets are removed.
const CleanupInterval = 3 * time.Minute

// KeyedRateLimiter limits requests per caller key.
type KeyedRateLimiter struct {
	mu     sync.RWMutex
	limits map[string]*rate.Limiter
	r      rate.Limit
	b      int
}

// NewKeyedRateLimiter creates a limiter allowing r events per second with burst b.
// The cleanup goroutine runs until ctx is done.
func NewKeyedRateLimiter(ctx context.Context, r rate.Limit, b int) *KeyedRateLimiter {
	l := &KeyedRateLimiter{
		limits: make(map[string]*rate.Limiter),
		r:      r,
		b:      b,
	}

	go l.cleanUpLoop(ctx)

	return l
}

// GetLimiter returns the bucket for key, creating it on first use.
func (l *KeyedRateLimiter) GetLimiter(key string) *rate.Limiter {
	l.mu.RLock()
	limiter, exists := l.limits[key]
	l.mu.RUnlock()

	if exists {
		return limiter
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	limiter, exists = l.limits[key]
	if !exists {
		limiter = rate.NewLimiter(l.r, l.b)
		l.limits[key] = limiter
	}

	return limiter
}

func (l *KeyedRateLimiter) cleanUpLoop(ctx context.Context) {
	ticker := time.NewTicker(CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			removed, remaining := l.cleanUp(now)
			logx.Debug("Rate limiter cleanup finished", "removed", removed, "remaining", remaining)
		}
	}
}

// cleanUp removes every bucket that has refilled completely by now.
func (l *KeyedRateLimiter) cleanUp(now time.Time) (removed, remaining int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for key, limiter := range l.limits {
		if limiter.TokensAt(now) >= float64(limiter.Burst()) {
			delete(l.limits, key)
			removed++
		}
	}

	return removed, len(l.limits)
}

// callerKey prefers the authenticated user over the remote address.
func callerKey(r *http.Request) string {
	if u := user.CurrentUser(r.Context()); u != nil {
		return "user:" + u.ID
	}

	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		ip = r.RemoteAddr
	}
	if ip == "" {
		ip = "unknown_ip"
	}

	return "ip:" + ip
}

// Middleware rejects requests over the limit with ErrRateLimitExceeded (HTTP 429).
func (l *KeyedRateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !l.GetLimiter(callerKey(r)).Allow() {
			resp.RespondError(w, r, errs.NewError(errs.ErrRateLimitExceeded))
			return
		}

		next.ServeHTTP(w, r)
	})
}
