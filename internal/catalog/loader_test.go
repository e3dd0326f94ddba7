package catalog

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type event struct {
	n      int
	entity Entity
	err    error
}

type recorder struct {
	events []event
}

func (r *recorder) Decoded(n int, e Entity)    { r.events = append(r.events, event{n: n, entity: e}) }
func (r *recorder) Malformed(n int, err error) { r.events = append(r.events, event{n: n, err: err}) }

func concat(recs ...[]byte) []byte {
	return bytes.Join(recs, nil)
}

func TestLoadAllValid(t *testing.T) {
	var recs [][]byte
	for i := int32(0); i < 5; i++ {
		recs = append(recs, rawRecord(i, i*10, i*100, i+1, 0, "Star", "S01"))
	}
	data := concat(recs...)

	cat, err := Load(bytes.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, len(data)/RecordSize, cat.Len())
	for i, e := range cat.Entities {
		assert.Equal(t, int32(i), e.X)
		assert.Equal(t, int32(-i*10), e.Y)
		assert.Equal(t, int32(i+1), e.Index)
	}
	assert.Equal(t, 5, cat.Records)
	assert.Zero(t, cat.Malformed)
	assert.Equal(t, int64(len(data)), cat.Bytes)
}

func TestLoadEmptyStream(t *testing.T) {
	cat, err := Load(bytes.NewReader(nil))
	require.NoError(t, err)
	assert.Zero(t, cat.Len())
	assert.Zero(t, cat.Records)
}

func TestLoadTrailingGarbage(t *testing.T) {
	data := concat(
		rawRecord(1, 1, 1, 1, 0, "A", "S00"),
		rawRecord(2, 2, 2, 2, 0, "B", "P05"),
		rawRecord(3, 3, 3, 3, 0, "C", "S11"),
		[]byte{0xde, 0xad, 0xbe, 0xef},
	)
	rec := &recorder{}

	cat, err := NewLoader(rec).Load(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 3, cat.Len())
	assert.Equal(t, 1, cat.Malformed)
	assert.Equal(t, 4, cat.Records)

	require.Len(t, rec.events, 4)
	last := rec.events[3]
	assert.Equal(t, 4, last.n)
	var de *DecodeError
	require.ErrorAs(t, last.err, &de)
	assert.Equal(t, ErrTruncatedRecord, de.Kind)
	assert.Equal(t, 4, de.Consumed)
}

func TestLoadSkipsMalformedAndContinues(t *testing.T) {
	badName := rawRecord(2, 2, 2, 2, 0, "Bad", "S01")
	badName[offName+5] = 0xff

	data := concat(
		rawRecord(1, 1, 1, 1, 0, "First", "S01"),
		badName,
		rawRecord(3, 3, 3, 3, 0, "Third", "S12"),
		rawRecord(4, 4, 4, 4, 0, "Fourth", "P42"),
	)
	rec := &recorder{}

	cat, err := NewLoader(rec).Load(bytes.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, 2, cat.Len())
	assert.Equal(t, "First", cat.Entities[0].Name)
	assert.Equal(t, "Fourth", cat.Entities[1].Name)
	assert.Equal(t, 2, cat.Malformed)

	require.Len(t, rec.events, 4)
	for i, ev := range rec.events {
		assert.Equal(t, i+1, ev.n)
	}
	assert.Equal(t, ErrInvalidEncoding, KindOf(rec.events[1].err))
	assert.Equal(t, ErrInvalidTypeTag, KindOf(rec.events[2].err))
	assert.NoError(t, rec.events[3].err)
}

func TestLoadPropagatesIOError(t *testing.T) {
	boom := errors.New("permission denied")
	r := io.MultiReader(
		bytes.NewReader(rawRecord(1, 1, 1, 1, 0, "A", "S00")),
		iotest.ErrReader(boom),
	)
	rec := &recorder{}

	cat, err := NewLoader(rec).Load(r)
	assert.ErrorIs(t, err, boom)
	assert.Nil(t, cat)
	assert.Len(t, rec.events, 1)
}

func TestLoadNotifiesAllObservers(t *testing.T) {
	a, b := &recorder{}, &recorder{}
	data := concat(rawRecord(1, 1, 1, 1, 0, "A", "S00"), rawRecord(2, 2, 2, 2, 0, "B", "P01"))

	_, err := NewLoader(a, b).Load(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, a.events, b.events)
	assert.Len(t, a.events, 2)
}

func TestCatalogSubsets(t *testing.T) {
	data := concat(
		rawRecord(1, 0, 0, 0, 0, "A", "S00"),
		rawRecord(2, 0, 0, 0, 0, "B", "P05"),
		rawRecord(3, 0, 0, 0, 0, "C", "S11"),
	)
	cat, err := Load(bytes.NewReader(data))
	require.NoError(t, err)

	stars := cat.Stars()
	require.Len(t, stars, 2)
	assert.Equal(t, "A", stars[0].Name)
	assert.Equal(t, "C", stars[1].Name)

	planets := cat.Planets()
	require.Len(t, planets, 1)
	assert.Equal(t, "B", planets[0].Name)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stars.bin")
	data := concat(
		rawRecord(1, 2, 3, 1, 0, "Sol", "S02"),
		rawRecord(4, 5, 6, 2, 0, "Earth", "P03"),
	)
	require.NoError(t, os.WriteFile(path, data, 0o600))

	rec := &recorder{}
	cat, err := NewLoader(rec).LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, cat.Len())
	assert.Len(t, rec.events, 2)
	assert.Equal(t, int64(len(data)), cat.Bytes)
}

func TestLoadFileMissing(t *testing.T) {
	_, err := NewLoader().LoadFile(filepath.Join(t.TempDir(), "nope.bin"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
	assert.False(t, IsMalformed(err))
}

func TestLoadTruncatedTailAfterMalformed(t *testing.T) {
	tail := rawRecord(9, 9, 9, 9, 0, "Tail", "S03")[:RecordSize-1]
	data := concat(
		rawRecord(1, 1, 1, 1, 0, "A", "S00"),
		rawRecord(2, 2, 2, 2, 0, "B", "S12"),
		rawRecord(3, 3, 3, 3, 0, "C", "P07"),
		tail,
	)

	rec := &recorder{}
	cat, err := NewLoader(rec).Load(iotest.OneByteReader(bytes.NewReader(data)))
	require.NoError(t, err)

	assert.Equal(t, 2, cat.Len())
	assert.Equal(t, 4, cat.Records)
	assert.Equal(t, 2, cat.Malformed)
	assert.Equal(t, int64(3*RecordSize+RecordSize-1), cat.Bytes)

	require.Len(t, rec.events, 4)
	assert.Equal(t, ErrInvalidTypeTag, KindOf(rec.events[1].err))
	last := rec.events[3]
	assert.Equal(t, 4, last.n)
	assert.EqualError(t, last.err, "truncated record: stream ended after 43 of 44 bytes")
}
