package catalog

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
)

// Observer receives per-record events from a Loader. n is the 1-based record
// counter. Calls happen synchronously, in stream order.
type Observer interface {
	Decoded(n int, e Entity)
	Malformed(n int, err error)
}

// Catalog is the ordered result of one load.
type Catalog struct {
	Entities  []Entity
	Records   int   // record attempts, not counting the end-of-stream read
	Malformed int   // records skipped as malformed
	Bytes     int64 // bytes consumed from the stream
}

// Len returns the number of decoded entities.
func (c *Catalog) Len() int { return len(c.Entities) }

// Stars returns the star subset in catalog order.
func (c *Catalog) Stars() []Entity { return Stars(c.Entities) }

// Planets returns the planet subset in catalog order.
func (c *Catalog) Planets() []Entity { return Planets(c.Entities) }

// Loader drives Decode over a stream until end of stream.
//
// A malformed record is reported to observers and skipped; decoding resumes
// at the next 44-byte boundary. If corruption inserted or dropped bytes, the
// following records will be misaligned and will most likely be reported as
// malformed too. No attempt is made to resynchronize on content.
type Loader struct {
	observers []Observer
}

// NewLoader returns a Loader that notifies the given observers.
func NewLoader(observers ...Observer) *Loader {
	return &Loader{observers: observers}
}

// Load decodes r to completion. It returns an error only for I/O failures,
// which abort the load; malformed records never do.
func (l *Loader) Load(r io.Reader) (*Catalog, error) {
	cr := &countingReader{r: r}
	cat := &Catalog{}

	for n := 1; ; n++ {
		e, err := Decode(cr)
		if err != nil {
			if errors.Is(err, ErrEndOfStream) {
				break
			}
			if !IsMalformed(err) {
				return nil, err
			}
			cat.Records++
			cat.Malformed++
			for _, o := range l.observers {
				o.Malformed(n, err)
			}
			continue
		}

		cat.Records++
		cat.Entities = append(cat.Entities, e)
		for _, o := range l.observers {
			o.Decoded(n, e)
		}
	}

	cat.Bytes = cr.n
	return cat, nil
}

// LoadFile opens path and loads it through a buffered reader. Failing to
// open the file is returned as an error like any other I/O fault.
func (l *Loader) LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()
	return l.Load(bufio.NewReader(f))
}

// Load decodes r with no observers.
func Load(r io.Reader) (*Catalog, error) {
	return NewLoader().Load(r)
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}
