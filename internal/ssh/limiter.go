package ssh

import (
	"net"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Limiter throttles new sessions per remote host.
type Limiter struct {
	limit rate.Limit
	burst int
	now   func() time.Time

	mu      sync.Mutex
	clients map[string]*rate.Limiter
}

// NewLimiter allows perSecond new sessions per host, with the given burst.
func NewLimiter(perSecond float64, burst int) *Limiter {
	return &Limiter{
		limit:   rate.Limit(perSecond),
		burst:   burst,
		now:     time.Now,
		clients: make(map[string]*rate.Limiter),
	}
}

// Allow reports whether a new session from addr may proceed.
func (l *Limiter) Allow(addr net.Addr) bool {
	host := hostOf(addr)

	l.mu.Lock()
	lim, ok := l.clients[host]
	if !ok {
		lim = rate.NewLimiter(l.limit, l.burst)
		l.clients[host] = lim
	}
	l.mu.Unlock()

	return lim.AllowN(l.now(), 1)
}

// Prune forgets hosts whose bucket has refilled, so the map does not grow
// without bound. Call it periodically.
func (l *Limiter) Prune() {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := l.now()
	for host, lim := range l.clients {
		if lim.TokensAt(now) >= float64(l.burst) {
			delete(l.clients, host)
		}
	}
}

// Len returns the number of tracked hosts.
func (l *Limiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.clients)
}

func hostOf(addr net.Addr) string {
	if addr == nil {
		return ""
	}
	if tcp, ok := addr.(*net.TCPAddr); ok {
		return tcp.IP.String()
	}
	host, _, err := net.SplitHostPort(addr.String())
	if err != nil {
		return addr.String()
	}
	return host
}
