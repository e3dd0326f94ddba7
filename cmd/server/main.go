// starmap-server serves the star map viewer over SSH. The catalog is decoded
// once at startup and every session views the same stars. Build:
//
//	go build -o starmap-server ./cmd/server
//
// Usage:
//
//	./starmap-server <catalog-file> [--port 2222] [--key starmap_host_key]
//
// Connect with:
//
//	ssh -t -p 2222 localhost
package main

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"encoding/pem"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	gossh "github.com/gliderlabs/ssh"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	xssh "golang.org/x/crypto/ssh"

	"starmap/internal/catalog"
	"starmap/internal/config"
	"starmap/internal/console"
	"starmap/internal/logging"
	"starmap/internal/metrics"
	internalssh "starmap/internal/ssh"
	"starmap/internal/viewer"
)

var (
	port    int
	keyFile string
)

var rootCmd = &cobra.Command{
	Use:   "starmap-server <catalog-file>",
	Short: "Serve the star map viewer over SSH",
	Long: `starmap-server decodes a star catalog once and lets any number of SSH
clients open the interactive viewer on it. Sessions need a PTY (ssh -t).`,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runServer,
}

func init() {
	rootCmd.Flags().IntVarP(&port, "port", "p", 0, "SSH port (default from STARMAP_SSH_PORT)")
	rootCmd.Flags().StringVarP(&keyFile, "key", "k", "", "PEM host key path, generated if absent (default from STARMAP_SSH_HOST_KEY)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func runServer(_ *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if port != 0 {
		cfg.Server.Port = port
	}
	if keyFile != "" {
		cfg.Server.HostKey = keyFile
	}

	log := logging.Must(cfg.Logging)
	defer func() { _ = log.Sync() }()

	reg := prometheus.NewRegistry()
	lm := metrics.NewLoaderMetrics(reg)
	sm := newSessionMetrics(reg)

	reporter := console.NewReporter(os.Stdout, log)
	reporter.SetQuiet(true)
	start := time.Now()
	cat, err := catalog.NewLoader(reporter, lm).LoadFile(args[0])
	if err != nil {
		return err
	}
	took := time.Since(start)
	reporter.Summary(cat, took)
	lm.ObserveLoad(cat, took)

	signer, err := loadOrCreateHostKey(cfg.Server.HostKey, log)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	h := &handler{
		points:  catalog.StarPoints(cat.Entities),
		opts:    viewer.Options{FPS: cfg.Viewer.FPS, GridSlices: cfg.Viewer.GridSlices},
		limiter: internalssh.NewLimiter(cfg.Server.SessionRate, cfg.Server.SessionBurst),
		metrics: sm,
		log:     log,
	}
	go h.pruneLoop(ctx, time.Minute)

	if cfg.Server.MetricsAddr != "" {
		go serveMetrics(ctx, cfg.Server.MetricsAddr, reg, log)
	}

	srv := &gossh.Server{
		Addr:        fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:     h.handleSession,
		PtyCallback: func(_ gossh.Context, _ gossh.Pty) bool { return true },
		HostSigners: []gossh.Signer{signer},
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	log.Info("SSH server listening",
		zap.Int("port", cfg.Server.Port),
		zap.Int("stars", len(h.points)),
	)

	select {
	case err := <-errCh:
		if errors.Is(err, gossh.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("ssh server: %w", err)
	case <-ctx.Done():
		log.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func serveMetrics(ctx context.Context, addr string, reg *prometheus.Registry, log *zap.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		_ = srv.Close()
	}()
	log.Info("Metrics listening", zap.String("addr", addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("Metrics server failed", zap.Error(err))
	}
}

// loadOrCreateHostKey loads a PEM private key from path, or generates and
// persists a new ed25519 key if the file is absent or unreadable.
func loadOrCreateHostKey(path string, log *zap.Logger) (gossh.Signer, error) {
	if data, err := os.ReadFile(path); err == nil {
		if signer, err := xssh.ParsePrivateKey(data); err == nil {
			log.Info("Loaded host key", zap.String("path", path))
			return signer, nil
		}
		log.Warn("Host key unreadable, generating a new one", zap.String("path", path))
	}

	_, key, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("generate host key: %w", err)
	}
	signer, err := xssh.NewSignerFromKey(key)
	if err != nil {
		return nil, fmt.Errorf("create signer: %w", err)
	}

	pemBlock, err := xssh.MarshalPrivateKey(key, "starmap server")
	if err == nil {
		err = os.WriteFile(path, pem.EncodeToMemory(pemBlock), 0o600)
	}
	if err != nil {
		log.Warn("Host key not persisted", zap.String("path", path), zap.Error(err))
	} else {
		log.Info("Generated host key", zap.String("path", path))
	}
	return signer, nil
}
