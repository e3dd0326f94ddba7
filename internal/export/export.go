// Package export writes a decoded catalog in a machine-readable form.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"starmap/internal/catalog"
)

// Format selects the output encoding.
type Format uint8

const (
	FormatText Format = iota
	FormatJSON
	FormatYAML
)

func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	default:
		return "text"
	}
}

// ParseFormat maps a flag value to a Format.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "", "text":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return FormatText, fmt.Errorf("unknown format %q (want text, json or yaml)", s)
}

type document struct {
	Records   int      `json:"records" yaml:"records"`
	Malformed int      `json:"malformed" yaml:"malformed"`
	Entities  []record `json:"entities" yaml:"entities"`
}

type record struct {
	Index  int32      `json:"index" yaml:"index"`
	Name   string     `json:"name" yaml:"name"`
	Type   string     `json:"type" yaml:"type"`
	Kind   string     `json:"kind" yaml:"kind"`
	Raw    [3]int32   `json:"raw" yaml:"raw,flow"`
	Render [3]float64 `json:"render" yaml:"render,flow"`
}

func newDocument(cat *catalog.Catalog) document {
	doc := document{
		Records:   cat.Records,
		Malformed: cat.Malformed,
		Entities:  make([]record, len(cat.Entities)),
	}
	for i, e := range cat.Entities {
		p := catalog.Project(e)
		doc.Entities[i] = record{
			Index:  e.Index,
			Name:   e.Name,
			Type:   e.TypeTag,
			Kind:   e.Kind().String(),
			Raw:    [3]int32{e.X, e.Y, e.Z},
			Render: [3]float64{p.X, p.Y, p.Z},
		}
	}
	return doc
}

// Write encodes cat to w.
func Write(w io.Writer, cat *catalog.Catalog, f Format) error {
	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(newDocument(cat)); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(newDocument(cat)); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	default:
		return writeText(w, cat)
	}
}

func writeText(w io.Writer, cat *catalog.Catalog) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "INDEX\tNAME\tTYPE\tKIND\tX\tY\tZ")
	for _, e := range cat.Entities {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\t%d\t%d\n",
			e.Index, e.Name, e.TypeTag, e.Kind(), e.X, e.Y, e.Z)
	}
	return tw.Flush()
}
