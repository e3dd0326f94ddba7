// Package catalog decodes starmap catalog files: flat streams of fixed-size
// little-endian records, each describing one star or planet.
//
// Record layout (44 bytes):
//
//	offset size field
//	0      4    x         int32
//	4      4    y         int32, negated on decode
//	8      4    z         int32
//	12     4    index     int32
//	16     4    reserved  int32, ignored
//	20     20   name      ASCII, space padded
//	40     4    typestr   ASCII, P00-P99 or S00-S11
package catalog

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"strings"
)

const (
	NameSize   = 20
	TagSize    = 4
	RecordSize = 5*4 + NameSize + TagSize

	offX        = 0
	offY        = 4
	offZ        = 8
	offIndex    = 12
	offReserved = 16
	offName     = 20
	offTag      = offName + NameSize
)

// Entity is one decoded star or planet. Y already carries the sign
// correction applied on decode.
type Entity struct {
	X, Y, Z int32
	Index   int32
	Name    string
	TypeTag string
}

// Kind reports whether the entity is a star or a planet.
func (e Entity) Kind() Kind {
	if e.IsStar() {
		return KindStar
	}
	return KindPlanet
}

// IsStar reports whether the type tag starts with 'S'.
func (e Entity) IsStar() bool {
	return len(e.TypeTag) > 0 && e.TypeTag[0] == 'S'
}

// SubType returns the two-digit sub-type encoded in the tag, or -1 if the
// tag is not valid.
func (e Entity) SubType() int {
	if !ValidTypeTag(e.TypeTag) {
		return -1
	}
	return subType(e.TypeTag)
}

// Decode reads exactly one record from r.
//
// It returns ErrEndOfStream when r is exhausted at a record boundary, a
// *DecodeError for a malformed record (including one cut short by the end of
// the stream), and a wrapped error for any other read failure.
func Decode(r io.Reader) (Entity, error) {
	var buf [RecordSize]byte
	n, err := io.ReadFull(r, buf[:])
	switch {
	case err == nil:
		return ParseRecord(buf[:])
	case errors.Is(err, io.EOF) && n == 0:
		return Entity{}, ErrEndOfStream
	case errors.Is(err, io.ErrUnexpectedEOF):
		return Entity{}, &DecodeError{Kind: ErrTruncatedRecord, Consumed: n}
	default:
		return Entity{}, fmt.Errorf("read record: %w", err)
	}
}

// ParseRecord validates and decodes a single RecordSize-byte record.
func ParseRecord(rec []byte) (Entity, error) {
	if len(rec) < RecordSize {
		return Entity{}, &DecodeError{Kind: ErrTruncatedRecord, Consumed: len(rec)}
	}

	le := binary.LittleEndian
	x := int32(le.Uint32(rec[offX:]))
	y := int32(le.Uint32(rec[offY:]))
	z := int32(le.Uint32(rec[offZ:]))
	index := int32(le.Uint32(rec[offIndex:]))
	// rec[offReserved:offName] carries no meaning.

	nameRaw := rec[offName : offName+NameSize]
	tagRaw := rec[offTag : offTag+TagSize]
	if !isASCII(nameRaw) {
		return Entity{}, &DecodeError{Kind: ErrInvalidEncoding, Field: "name"}
	}
	if !isASCII(tagRaw) {
		return Entity{}, &DecodeError{Kind: ErrInvalidEncoding, Field: "typestr"}
	}

	name := strings.TrimSpace(string(nameRaw))
	tag := strings.TrimSpace(string(tagRaw))
	if !ValidTypeTag(tag) {
		return Entity{}, &DecodeError{Kind: ErrInvalidTypeTag, Tag: tag}
	}

	return Entity{
		X:       x,
		Y:       -y,
		Z:       z,
		Index:   index,
		Name:    name,
		TypeTag: tag,
	}, nil
}

// AppendRecord appends the on-disk form of e to dst. Y is negated back, the
// reserved word is written as reserved, and name and tag are space padded.
// Callers must ensure Name and TypeTag fit; EncodeRecord checks this.
func (e Entity) AppendRecord(dst []byte, reserved int32) []byte {
	le := binary.LittleEndian
	dst = le.AppendUint32(dst, uint32(e.X))
	dst = le.AppendUint32(dst, uint32(-e.Y))
	dst = le.AppendUint32(dst, uint32(e.Z))
	dst = le.AppendUint32(dst, uint32(e.Index))
	dst = le.AppendUint32(dst, uint32(reserved))
	dst = appendPadded(dst, e.Name, NameSize)
	dst = appendPadded(dst, e.TypeTag, TagSize)
	return dst
}

// EncodeRecord writes e to w as one record.
func EncodeRecord(w io.Writer, e Entity, reserved int32) error {
	if len(e.Name) > NameSize || !isASCII([]byte(e.Name)) {
		return fmt.Errorf("encode record: name %q must be at most %d ascii bytes", e.Name, NameSize)
	}
	if !ValidTypeTag(e.TypeTag) {
		return fmt.Errorf("encode record: invalid typestr %q", e.TypeTag)
	}
	buf := e.AppendRecord(make([]byte, 0, RecordSize), reserved)
	if _, err := w.Write(buf); err != nil {
		return fmt.Errorf("encode record: %w", err)
	}
	return nil
}

func appendPadded(dst []byte, s string, width int) []byte {
	if len(s) > width {
		s = s[:width]
	}
	dst = append(dst, s...)
	for i := len(s); i < width; i++ {
		dst = append(dst, ' ')
	}
	return dst
}

func isASCII(b []byte) bool {
	for _, c := range b {
		if c >= 0x80 {
			return false
		}
	}
	return true
}
