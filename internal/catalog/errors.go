package catalog

import (
	"errors"
	"fmt"
)

// ErrEndOfStream is returned by Decode when the stream has no bytes left at a
// record boundary. It terminates a load normally and is not a malformed entry.
var ErrEndOfStream = errors.New("end of stream")

// ErrorKind classifies a malformed record.
type ErrorKind uint8

const (
	// ErrTruncatedRecord indicates the stream ended partway through a record.
	ErrTruncatedRecord ErrorKind = iota + 1
	// ErrInvalidEncoding indicates non-ASCII bytes in the name or type tag.
	ErrInvalidEncoding
	// ErrInvalidTypeTag indicates a tag outside the P00-P99 / S00-S11 grammar.
	ErrInvalidTypeTag
)

func (k ErrorKind) String() string {
	switch k {
	case ErrTruncatedRecord:
		return "truncated_record"
	case ErrInvalidEncoding:
		return "invalid_encoding"
	case ErrInvalidTypeTag:
		return "invalid_type_tag"
	default:
		return "unknown"
	}
}

// DecodeError describes a malformed record. The loader skips it and continues.
type DecodeError struct {
	Kind     ErrorKind
	Field    string // set for ErrInvalidEncoding: "name" or "typestr"
	Tag      string // set for ErrInvalidTypeTag
	Consumed int    // set for ErrTruncatedRecord: bytes read before the stream ended
}

func (e *DecodeError) Error() string {
	switch e.Kind {
	case ErrTruncatedRecord:
		return fmt.Sprintf("truncated record: stream ended after %d of %d bytes", e.Consumed, RecordSize)
	case ErrInvalidEncoding:
		return fmt.Sprintf("invalid encoding: %s is not ascii", e.Field)
	case ErrInvalidTypeTag:
		return fmt.Sprintf("invalid typestr %q", e.Tag)
	default:
		return "malformed record"
	}
}

// IsMalformed reports whether err is a recoverable per-record failure.
func IsMalformed(err error) bool {
	var de *DecodeError
	return errors.As(err, &de)
}

// KindOf returns the ErrorKind of a malformed-record error, or 0 for any
// other error.
func KindOf(err error) ErrorKind {
	var de *DecodeError
	if errors.As(err, &de) {
		return de.Kind
	}
	return 0
}
