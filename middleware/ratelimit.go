package middleware

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"cmsadmin/logger"
)

// loginBucket is a token bucket for one client IP on the login route.
type loginBucket struct {
	tokens     float64
	lastAccess time.Time
}

// LoginLimiter throttles credential guessing against POST /login with a
// per-IP token bucket. In-memory only; the console is a single instance.
type LoginLimiter struct {
	mu         sync.Mutex
	buckets    map[string]*loginBucket
	capacity   int
	ratePerSec float64
}

// NewLoginLimiter allows capacity attempts immediately and one more every
// refill interval. A background goroutine drops buckets idle for an hour.
func NewLoginLimiter(capacity int, refill time.Duration) *LoginLimiter {
	l := &LoginLimiter{
		buckets:    make(map[string]*loginBucket),
		capacity:   capacity,
		ratePerSec: 1.0 / refill.Seconds(),
	}
	go l.cleanup(10*time.Minute, time.Hour)
	return l
}

// Allow reports whether one more attempt from ip is permitted.
func (l *LoginLimiter) Allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	bk, ok := l.buckets[ip]
	if !ok {
		bk = &loginBucket{tokens: float64(l.capacity), lastAccess: time.Now()}
		l.buckets[ip] = bk
	}

	now := time.Now()
	bk.tokens += now.Sub(bk.lastAccess).Seconds() * l.ratePerSec
	if bk.tokens > float64(l.capacity) {
		bk.tokens = float64(l.capacity)
	}
	bk.lastAccess = now

	if bk.tokens >= 1.0 {
		bk.tokens--
		return true
	}
	return false
}

func (l *LoginLimiter) cleanup(interval, stale time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for range ticker.C {
		l.mu.Lock()
		for ip, bk := range l.buckets {
			if time.Since(bk.lastAccess) > stale {
				delete(l.buckets, ip)
			}
		}
		l.mu.Unlock()
	}
}

// LimitLogin wraps a login handler with the limiter.
func LimitLogin(l *LoginLimiter, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ip := ClientIP(r)
		if !l.Allow(ip) {
			logger.Get().Warn().Str("ip", ip).Msg("Login rate limit exceeded")
			w.Header().Set("Retry-After", "10")
			http.Error(w, "Too Many Requests", http.StatusTooManyRequests)
			return
		}
		next(w, r)
	}
}

// ClientIP extracts the caller's address, honoring the first hop of
// X-Forwarded-For when the console sits behind a proxy.
func ClientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if i := strings.IndexByte(fwd, ','); i > 0 {
			return strings.TrimSpace(fwd[:i])
		}
		return strings.TrimSpace(fwd)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
