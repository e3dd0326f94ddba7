package console

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"starmap/internal/catalog"
)

func TestFormatEntity(t *testing.T) {
	e := catalog.Entity{X: 1, Y: -2, Z: 3, Index: 42, Name: "Sirius A", TypeTag: "S01"}
	want := "Star/Planet: [7] 1 -2 3 Sirius A 42 S01"
	if got := FormatEntity(7, e); got != want {
		t.Errorf("FormatEntity = %q; want %q", got, want)
	}
}

func TestReporterDuringLoad(t *testing.T) {
	var rec bytes.Buffer
	for _, e := range []catalog.Entity{
		{X: 1, Name: "One", TypeTag: "S00"},
		{X: 2, Name: "Two", TypeTag: "P01"},
	} {
		if err := catalog.EncodeRecord(&rec, e, 0); err != nil {
			t.Fatal(err)
		}
	}
	rec.Write([]byte{1, 2, 3})

	core, logs := observer.New(zapcore.InfoLevel)
	var out bytes.Buffer
	r := NewReporter(&out, zap.New(core))

	cat, err := catalog.NewLoader(r).Load(&rec)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	r.Summary(cat, time.Millisecond)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines; want 2: %q", len(lines), out.String())
	}
	if !strings.HasPrefix(lines[1], "Star/Planet: [2] 2 ") {
		t.Errorf("second line = %q", lines[1])
	}

	warns := logs.FilterLevelExact(zapcore.WarnLevel).All()
	if len(warns) != 1 {
		t.Fatalf("got %d warnings; want 1", len(warns))
	}
	if warns[0].Message != "Malformed entry at [3]" {
		t.Errorf("warning = %q", warns[0].Message)
	}
	if got := warns[0].ContextMap()["record"]; got != int64(3) {
		t.Errorf("record field = %v; want 3", got)
	}

	infos := logs.FilterMessage("Catalog loaded").All()
	if len(infos) != 1 {
		t.Fatalf("got %d summaries; want 1", len(infos))
	}
	fields := infos[0].ContextMap()
	if fields["entities"] != int64(2) || fields["malformed"] != int64(1) || fields["stars"] != int64(1) {
		t.Errorf("summary fields = %v", fields)
	}
	if fields["size"] != "91 B" {
		t.Errorf("size = %v; want 91 B", fields["size"])
	}
}

func TestReporterQuiet(t *testing.T) {
	var out bytes.Buffer
	var diag bytes.Buffer
	r := NewReporter(&out, nil)
	r.SetFallback(&diag)
	r.SetQuiet(true)
	r.Decoded(1, catalog.Entity{TypeTag: "S00"})
	r.Malformed(2, &catalog.DecodeError{Kind: catalog.ErrInvalidTypeTag, Tag: "S99"})
	if out.Len() != 0 {
		t.Errorf("quiet reporter wrote %q", out.String())
	}
	if want := "Malformed entry at [2]; invalid typestr \"S99\"\n"; diag.String() != want {
		t.Errorf("diagnostic = %q; want %q", diag.String(), want)
	}
}

func TestReporterMalformedAboveWarnLevel(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	var out, diag bytes.Buffer
	r := NewReporter(&out, zap.New(core))
	r.SetFallback(&diag)

	r.Malformed(4, &catalog.DecodeError{Kind: catalog.ErrTruncatedRecord, Consumed: 10})
	r.Malformed(5, &catalog.DecodeError{Kind: catalog.ErrInvalidEncoding, Field: "name"})

	if logs.Len() != 0 {
		t.Errorf("logged %d entries at error level; want 0", logs.Len())
	}
	lines := strings.Split(strings.TrimSpace(diag.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d diagnostics; want 2: %q", len(lines), diag.String())
	}
	if !strings.HasPrefix(lines[0], "Malformed entry at [4]; truncated record") {
		t.Errorf("first diagnostic = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "Malformed entry at [5]; invalid encoding") {
		t.Errorf("second diagnostic = %q", lines[1])
	}
}
