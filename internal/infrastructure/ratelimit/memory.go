package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// clientEntry tracks one client's token bucket and when it was last used
type clientEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// MemoryRegistry is a thread-safe per-client rate limiter registry.
// Each client key (typically the client IP) gets its own token bucket
// refilled at the configured per-minute rate.
type MemoryRegistry struct {
	clients    map[string]*clientEntry
	mutex      sync.Mutex
	perMin     int
	idleTTL    time.Duration
	sweepEvery time.Duration
}

// NewMemoryRegistry creates a registry allowing perMinute requests per
// client. Entries idle longer than idleTTL are evicted by a background
// sweep so the map does not grow without bound.
func NewMemoryRegistry(perMinute int, idleTTL time.Duration) *MemoryRegistry {
	if perMinute <= 0 {
		perMinute = 10
	}
	if idleTTL <= 0 {
		idleTTL = 10 * time.Minute
	}

	registry := &MemoryRegistry{
		clients:    make(map[string]*clientEntry),
		perMin:     perMinute,
		idleTTL:    idleTTL,
		sweepEvery: idleTTL,
	}

	go registry.sweepIdle()

	return registry
}

// Allow reports whether the client identified by key may make a request
// now. The first call for an unknown key creates its bucket full.
func (r *MemoryRegistry) Allow(key string) bool {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	entry, exists := r.clients[key]
	if !exists {
		// rate.Limit is events per second; burst equals the per-minute quota
		// so a quiet client can spend its whole minute at once
		limiter := rate.NewLimiter(rate.Limit(float64(r.perMin)/60.0), r.perMin)
		entry = &clientEntry{limiter: limiter}
		r.clients[key] = entry
	}

	entry.lastSeen = time.Now()
	return entry.limiter.Allow()
}

// Size returns the number of tracked clients
func (r *MemoryRegistry) Size() int {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return len(r.clients)
}

// sweepIdle periodically evicts clients that have been idle past the TTL
func (r *MemoryRegistry) sweepIdle() {
	ticker := time.NewTicker(r.sweepEvery)
	defer ticker.Stop()

	for range ticker.C {
		r.mutex.Lock()
		cutoff := time.Now().Add(-r.idleTTL)
		for key, entry := range r.clients {
			if entry.lastSeen.Before(cutoff) {
				delete(r.clients, key)
			}
		}
		r.mutex.Unlock()
	}
}
