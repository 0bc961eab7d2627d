package server

import (
	"net"
	"net/http"
	"sync"
	"time"
)

const (
	rateLimitWindow = time.Minute
	rateLimitMax    = 60
)

// rateLimiter is a fixed-window counter keyed by action+client address.
// The kiosk only ever has a couple of tablets behind it, so anything
// hammering the API is a stuck script, not a player.
type rateLimiter struct {
	mu      sync.Mutex
	windows map[string]rateWindow
}

type rateWindow struct {
	start time.Time
	count int
}

func newRateLimiter() *rateLimiter {
	return &rateLimiter{
		windows: make(map[string]rateWindow),
	}
}

func (l *rateLimiter) allow(key string, now time.Time) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	window, ok := l.windows[key]
	if !ok || now.Sub(window.start) >= rateLimitWindow {
		l.windows[key] = rateWindow{start: now, count: 1}
		return true
	}
	if window.count >= rateLimitMax {
		return false
	}
	window.count++
	l.windows[key] = window
	return true
}

func (s *Server) enforceRateLimit(w http.ResponseWriter, r *http.Request, action string) bool {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	if s.limiter.allow(action+":"+host, time.Now()) {
		return true
	}
	writeError(w, http.StatusTooManyRequests, "too many requests")
	return false
}
