package scoreboardhandlers

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// submitLimiterIdleTTL is how long an IP's limiter survives without traffic
// before the sweep drops it.
const submitLimiterIdleTTL = 10 * time.Minute

type limiterEntry struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

// SubmitLimiter throttles score submissions per client IP. Two browser tabs
// hammering retries should not be able to flood the ledger with writes.
// Idle entries are swept so a scan across many source IPs cannot grow the
// map for the process lifetime.
type SubmitLimiter struct {
	mu        sync.Mutex
	limiters  map[string]*limiterEntry
	rps       rate.Limit
	burst     int
	idleTTL   time.Duration
	lastSweep time.Time
}

// NewSubmitLimiter creates a limiter allowing rps submissions per second with
// the given burst, tracked per client IP.
func NewSubmitLimiter(rps float64, burst int) *SubmitLimiter {
	return &SubmitLimiter{
		limiters:  make(map[string]*limiterEntry),
		rps:       rate.Limit(rps),
		burst:     burst,
		idleTTL:   submitLimiterIdleTTL,
		lastSweep: time.Now(),
	}
}

func (l *SubmitLimiter) limiterFor(key string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	l.sweepLocked(now)

	entry, ok := l.limiters[key]
	if !ok {
		entry = &limiterEntry{lim: rate.NewLimiter(l.rps, l.burst)}
		l.limiters[key] = entry
	}
	entry.lastSeen = now
	return entry.lim
}

// sweepLocked drops entries idle past the TTL. At most one full scan per TTL
// keeps the amortized cost per request constant. Caller holds l.mu.
func (l *SubmitLimiter) sweepLocked(now time.Time) {
	if now.Sub(l.lastSweep) < l.idleTTL {
		return
	}
	l.lastSweep = now

	for key, entry := range l.limiters {
		if now.Sub(entry.lastSeen) >= l.idleTTL {
			delete(l.limiters, key)
		}
	}
}

// Middleware rejects requests past the per-IP budget with 429.
func (l *SubmitLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		host, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			host = r.RemoteAddr
		}

		if !l.limiterFor(host).Allow() {
			http.Error(w, "too many submissions, slow down", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}
