package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	gossh "github.com/gliderlabs/ssh"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"starmap/internal/catalog"
	internalssh "starmap/internal/ssh"
	"starmap/internal/viewer"
)

type sessionMetrics struct {
	active   prometheus.Gauge
	total    *prometheus.CounterVec
	duration prometheus.Histogram
}

func newSessionMetrics(reg prometheus.Registerer) *sessionMetrics {
	m := &sessionMetrics{
		active: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "starmap_ssh_sessions_active",
			Help: "Number of SSH sessions currently viewing the map",
		}),
		total: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "starmap_ssh_sessions_total",
			Help: "SSH sessions by outcome",
		}, []string{"result"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "starmap_ssh_session_seconds",
			Help:    "Length of viewer sessions",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		}),
	}
	reg.MustRegister(m.active, m.total, m.duration)
	return m
}

// handler runs one viewer per SSH session over shared, read-only points.
type handler struct {
	points  []catalog.Point
	opts    viewer.Options
	limiter *internalssh.Limiter
	metrics *sessionMetrics
	log     *zap.Logger
}

// handleSession is the gliderlabs SSH handler for one connection. It blocks
// until the viewer exits so the SSH session stays open.
func (h *handler) handleSession(s gossh.Session) {
	log := h.log.With(
		zap.String("session", uuid.NewString()),
		zap.String("user", s.User()),
		zap.Stringer("remote", s.RemoteAddr()),
	)

	if !h.limiter.Allow(s.RemoteAddr()) {
		h.metrics.total.WithLabelValues("rate_limited").Inc()
		log.Warn("Session rejected: rate limited")
		fmt.Fprintln(s, "Too many connections, try again shortly.")
		_ = s.Exit(1)
		return
	}

	term, err := internalssh.NewTerminal(s)
	if err != nil {
		h.metrics.total.WithLabelValues("no_pty").Inc()
		fmt.Fprintln(s, "The star map requires a PTY. Connect with: ssh -t -p <port> <host>")
		_ = s.Exit(1)
		return
	}

	screen, err := term.Screen()
	if err != nil {
		h.metrics.total.WithLabelValues("error").Inc()
		log.Error("Terminal setup failed", zap.String("term", term.Term()), zap.Error(err))
		fmt.Fprintf(s, "Terminal setup failed: %v\n", err)
		_ = s.Exit(1)
		return
	}
	defer screen.Fini()

	h.metrics.active.Inc()
	defer h.metrics.active.Dec()
	start := time.Now()
	log.Info("Session started", zap.String("term", term.Term()))

	err = viewer.New(screen, h.points, h.opts).Run(s.Context())
	h.metrics.duration.Observe(time.Since(start).Seconds())
	if err != nil && !errors.Is(err, context.Canceled) {
		h.metrics.total.WithLabelValues("error").Inc()
		log.Warn("Session ended with error", zap.Error(err))
		return
	}
	h.metrics.total.WithLabelValues("ok").Inc()
	log.Info("Session ended", zap.Duration("took", time.Since(start)))
}

func (h *handler) pruneLoop(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			h.limiter.Prune()
		}
	}
}
