// Package console prints catalog load progress for a human reader.
package console

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"

	"starmap/internal/catalog"
)

// Reporter writes one line per decoded entity to out and logs one warning
// per malformed record. It implements catalog.Observer.
//
// Every malformed record yields a diagnostic: when the logger has warnings
// disabled, the line goes to the fallback writer (stderr) instead.
type Reporter struct {
	out      io.Writer
	fallback io.Writer
	log      *zap.Logger
	quiet    bool
}

// NewReporter returns a Reporter. A nil logger sends malformed-record
// diagnostics straight to stderr.
func NewReporter(out io.Writer, log *zap.Logger) *Reporter {
	if log == nil {
		log = zap.NewNop()
	}
	return &Reporter{out: out, fallback: os.Stderr, log: log}
}

// SetFallback redirects diagnostics that the logger would drop.
func (r *Reporter) SetFallback(w io.Writer) { r.fallback = w }

// SetQuiet suppresses the per-entity lines. Warnings are still logged.
func (r *Reporter) SetQuiet(quiet bool) { r.quiet = quiet }

// Decoded prints the entity in catalog order.
func (r *Reporter) Decoded(n int, e catalog.Entity) {
	if r.quiet {
		return
	}
	fmt.Fprintln(r.out, FormatEntity(n, e))
}

// Malformed logs the skipped record.
func (r *Reporter) Malformed(n int, err error) {
	msg := fmt.Sprintf("Malformed entry at [%d]", n)
	if ce := r.log.Check(zap.WarnLevel, msg); ce != nil {
		ce.Write(
			zap.Int("record", n),
			zap.Stringer("reason", catalog.KindOf(err)),
			zap.Error(err),
		)
		return
	}
	fmt.Fprintf(r.fallback, "%s; %v\n", msg, err)
}

// Summary logs the totals of a finished load.
func (r *Reporter) Summary(cat *catalog.Catalog, took time.Duration) {
	r.log.Info("Catalog loaded",
		zap.Int("records", cat.Records),
		zap.Int("entities", cat.Len()),
		zap.Int("stars", len(cat.Stars())),
		zap.Int("planets", len(cat.Planets())),
		zap.Int("malformed", cat.Malformed),
		zap.String("size", humanize.Bytes(uint64(cat.Bytes))),
		zap.Duration("took", took),
	)
}

// FormatEntity renders the console line for the n-th record.
func FormatEntity(n int, e catalog.Entity) string {
	return fmt.Sprintf("Star/Planet: [%d] %d %d %d %s %d %s",
		n, e.X, e.Y, e.Z, e.Name, e.Index, e.TypeTag)
}
