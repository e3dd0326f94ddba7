// starmap decodes a binary star catalog, reports every entry, and shows the
// stars in an interactive terminal view. Build:
//
//	go build -o starmap .
//
// Usage:
//
//	./starmap <catalog-file> [--no-view] [--format text|json|yaml] [--quiet]
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"starmap/internal/catalog"
	"starmap/internal/config"
	"starmap/internal/console"
	"starmap/internal/export"
	"starmap/internal/logging"
	"starmap/internal/viewer"
)

type options struct {
	noView bool
	format string
	quiet  bool
}

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd(out io.Writer) *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:   "starmap <catalog-file>",
		Short: "Decode a binary star catalog and view it in the terminal",
		Long: `starmap reads a catalog of fixed 44-byte records, prints one line per
decoded star or planet, warns about malformed records and keeps going, then
opens a 3D view of the stars.

Controls: arrows or hjkl orbit, +/- zoom, r resets the camera, q quits.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), args[0], opts, out)
		},
	}
	cmd.Flags().BoolVar(&opts.noView, "no-view", false, "export the catalog instead of opening the viewer")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "text", "export format with --no-view: text, json or yaml")
	cmd.Flags().BoolVarP(&opts.quiet, "quiet", "q", false, "do not print a line per decoded entry")
	return cmd
}

func run(ctx context.Context, path string, opts options, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	format, err := export.ParseFormat(opts.format)
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := logging.Must(cfg.Logging)
	defer func() { _ = log.Sync() }()

	cat, err := loadCatalog(path, out, log, opts.quiet)
	if err != nil {
		return err
	}

	if opts.noView {
		return export.Write(out, cat, format)
	}
	return view(ctx, cat, cfg.Viewer)
}

func loadCatalog(path string, out io.Writer, log *zap.Logger, quiet bool) (*catalog.Catalog, error) {
	reporter := console.NewReporter(out, log)
	reporter.SetQuiet(quiet)

	start := time.Now()
	cat, err := catalog.NewLoader(reporter).LoadFile(path)
	if err != nil {
		return nil, err
	}
	reporter.Summary(cat, time.Since(start))
	return cat, nil
}

func view(ctx context.Context, cat *catalog.Catalog, cfg config.Viewer) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	v := viewer.New(screen, catalog.StarPoints(cat.Entities), viewer.Options{
		FPS:        cfg.FPS,
		GridSlices: cfg.GridSlices,
	})
	if err := v.Run(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}
