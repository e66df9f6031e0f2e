// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"log/slog"
	"math"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// visitorIdleTTL is how long a client may stay silent before Prune forgets
// its limiter.
const visitorIdleTTL = 10 * time.Minute

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// visitorTable hands out one token bucket per client IP.
type visitorTable struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    rate.Limit
	burst    int
}

func newVisitorTable(rps float64, burst int) *visitorTable {
	return &visitorTable{
		visitors: make(map[string]*visitor),
		limit:    rate.Limit(rps),
		burst:    burst,
	}
}

// take consumes a token for ip. When none is available it returns false and
// how long the client should wait.
func (vt *visitorTable) take(ip string) (bool, time.Duration) {
	now := time.Now()

	vt.mu.Lock()
	v, ok := vt.visitors[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(vt.limit, vt.burst)}
		vt.visitors[ip] = v
	}
	v.lastSeen = now
	vt.mu.Unlock()

	res := v.limiter.ReserveN(now, 1)
	if !res.OK() {
		return false, 0
	}
	if wait := res.DelayFrom(now); wait > 0 {
		res.CancelAt(now)
		return false, wait
	}
	return true, 0
}

// prune drops visitors idle for longer than idle. If more than maxSize remain,
// the table is reset. It returns how many visitors were dropped.
func (vt *visitorTable) prune(idle time.Duration, maxSize int) int {
	cutoff := time.Now().Add(-idle)

	vt.mu.Lock()
	defer vt.mu.Unlock()

	before := len(vt.visitors)
	for ip, v := range vt.visitors {
		if v.lastSeen.Before(cutoff) {
			delete(vt.visitors, ip)
		}
	}
	if len(vt.visitors) > maxSize {
		clear(vt.visitors)
	}
	return before - len(vt.visitors)
}

func (vt *visitorTable) size() int {
	vt.mu.Lock()
	defer vt.mu.Unlock()
	return len(vt.visitors)
}

// writeRateLimited writes a 429 with a Retry-After hint in whole seconds.
func writeRateLimited(w http.ResponseWriter, wait time.Duration, message string) {
	if wait > 0 {
		w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(wait.Seconds()))))
	}
	WriteAPIError(w, http.StatusTooManyRequests, CodeRateLimited, message, nil)
}

// GlobalRateLimiter limits every API request per client IP.
type GlobalRateLimiter struct {
	visitors *visitorTable
}

// NewGlobalRateLimiter allows rps requests per second per IP with the
// given burst.
func NewGlobalRateLimiter(rps float64, burst int) *GlobalRateLimiter {
	return &GlobalRateLimiter{visitors: newVisitorTable(rps, burst)}
}

// Middleware answers over-limit requests with 429 JSON.
func (rl *GlobalRateLimiter) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := clientIP(r)
			if ok, wait := rl.visitors.take(ip); !ok {
				slog.Debug("rate limit exceeded", "ip", ip, "path", r.URL.Path)
				writeRateLimited(w, wait, "Rate limit exceeded. Please slow down.")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Prune forgets idle clients and resets the table when it still tracks more
// than maxSize IPs.
func (rl *GlobalRateLimiter) Prune(maxSize int) {
	if n := rl.visitors.prune(visitorIdleTTL, maxSize); n > 0 {
		slog.Debug("pruned API rate limiters", "removed", n)
	}
}

// clientIP returns the host part of RemoteAddr. chi's RealIP runs earlier
// and has already applied any proxy headers.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
