// starmap-generate writes a synthetic star catalog that starmap can load.
//
// Usage:
//
//	./starmap-generate <out-file> [--count 500] [--seed 1] [--planets 0.3] [--corrupt 0]
package main

import (
	"errors"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"starmap/internal/catalog"
	"starmap/internal/generate"
)

type options struct {
	count   int
	seed    int64
	planets float64
	corrupt int
	radius  float64
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:           "starmap-generate <out-file>",
		Short:         "Write a synthetic star catalog",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("seed") {
				opts.seed = time.Now().UnixNano()
			}
			return run(cmd, args[0], opts)
		},
	}
	cmd.Flags().IntVarP(&opts.count, "count", "n", 500, "number of records")
	cmd.Flags().Int64VarP(&opts.seed, "seed", "s", 0, "random seed (default: time based)")
	cmd.Flags().Float64Var(&opts.planets, "planets", 0.3, "share of records that are planets, 0 to 1")
	cmd.Flags().IntVar(&opts.corrupt, "corrupt", 0, "records to write with an invalid type tag")
	cmd.Flags().Float64Var(&opts.radius, "radius", 4.5, "disc radius in view units")
	return cmd
}

func (o options) validate() error {
	switch {
	case o.count < 0:
		return errors.New("--count must not be negative")
	case o.corrupt < 0 || o.corrupt > o.count:
		return fmt.Errorf("--corrupt must be between 0 and %d", o.count)
	case o.planets < 0 || o.planets > 1:
		return errors.New("--planets must be between 0 and 1")
	case o.radius <= 0 || o.radius > generate.MaxRadius*catalog.Scale:
		return fmt.Errorf("--radius must be in (0, %g]", generate.MaxRadius*catalog.Scale)
	}
	return nil
}

func run(cmd *cobra.Command, path string, opts options) error {
	if err := opts.validate(); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create catalog: %w", err)
	}
	defer f.Close()

	radius := opts.radius / catalog.Scale
	n, err := generate.Write(f, &generate.Config{
		Count:       opts.count,
		PlanetRatio: opts.planets,
		Corrupt:     opts.corrupt,
		Radius:      radius,
		Thickness:   radius / 20,
		Rand:        rand.New(rand.NewSource(opts.seed)),
	})
	if err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close catalog: %w", err)
	}

	size := uint64(opts.count * catalog.RecordSize)
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %d records (%d valid, %d corrupt, seed %d) to %s, %s\n",
		opts.count, n, opts.corrupt, opts.seed, path, humanize.Bytes(size))
	return nil
}
