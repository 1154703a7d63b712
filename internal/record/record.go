package record

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"time"
	"unicode/utf8"
)

var (
	// ErrCorrupt is wrapped by every decoding failure.
	ErrCorrupt = errors.New("corrupt record")

	ErrEmptyKey      = errors.New("key is empty")
	ErrKeyTooLarge   = errors.New("key exceeds maximum size")
	ErrValueTooLarge = errors.New("value exceeds maximum size")
	ErrInvalidUTF8   = errors.New("key or value is not valid UTF-8")
)

// Timestamp (4) + KeySize (4) + ValueSize (4)
const HeaderSize = 12

// MaxFieldSize is the largest key or value the 4 byte size fields can describe.
const MaxFieldSize = math.MaxUint32

// Record is a single key-value entry as persisted in the log.
//
// On disk a record is laid out as
//
//	[timestamp:uint32][key_size:uint32][value_size:uint32][key][value]
//
// with every integer in little-endian byte order. There is no checksum.
type Record struct {
	Timestamp uint32 // Unix timestamp in seconds
	Key       string
	Value     string
}

// Header holds the fixed width fields at the start of every record.
type Header struct {
	Timestamp uint32
	KeySize   uint32
	ValueSize uint32
}

// RecordSize returns the length of the whole record described by h.
func (h Header) RecordSize() int64 {
	return HeaderSize + int64(h.KeySize) + int64(h.ValueSize)
}

// New creates a record stamped with t.
func New(t time.Time, key, value string) Record {
	return Record{
		Timestamp: uint32(t.Unix()),
		Key:       key,
		Value:     value,
	}
}

// Size returns the encoded length of r.
func (r Record) Size() int64 {
	return HeaderSize + int64(len(r.Key)) + int64(len(r.Value))
}

// Validate reports whether r can be encoded.
func (r Record) Validate() error {
	if r.Key == "" {
		return ErrEmptyKey
	}
	if uint64(len(r.Key)) > MaxFieldSize {
		return ErrKeyTooLarge
	}
	if uint64(len(r.Value)) > MaxFieldSize {
		return ErrValueTooLarge
	}
	if !utf8.ValidString(r.Key) || !utf8.ValidString(r.Value) {
		return ErrInvalidUTF8
	}
	return nil
}

// Encode serializes r into exactly r.Size() bytes.
func Encode(r Record) ([]byte, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}

	buf := make([]byte, r.Size())
	binary.LittleEndian.PutUint32(buf[0:4], r.Timestamp)
	binary.LittleEndian.PutUint32(buf[4:8], uint32(len(r.Key)))
	binary.LittleEndian.PutUint32(buf[8:12], uint32(len(r.Value)))

	n := copy(buf[HeaderSize:], r.Key)
	copy(buf[HeaderSize+n:], r.Value)

	return buf, nil
}

// DecodeHeader parses the fixed width header at the start of data.
func DecodeHeader(data []byte) (Header, error) {
	if len(data) < HeaderSize {
		return Header{}, fmt.Errorf("%w: header needs %d bytes, got %d", ErrCorrupt, HeaderSize, len(data))
	}

	return Header{
		Timestamp: binary.LittleEndian.Uint32(data[0:4]),
		KeySize:   binary.LittleEndian.Uint32(data[4:8]),
		ValueSize: binary.LittleEndian.Uint32(data[8:12]),
	}, nil
}

// Decode parses a single record that must occupy all of data.
func Decode(data []byte) (Record, error) {
	h, err := DecodeHeader(data)
	if err != nil {
		return Record{}, err
	}

	if h.RecordSize() != int64(len(data)) {
		return Record{}, fmt.Errorf("%w: declared size %d bytes, got %d bytes", ErrCorrupt, h.RecordSize(), len(data))
	}

	keyEnd := HeaderSize + int(h.KeySize)
	key := data[HeaderSize:keyEnd]
	value := data[keyEnd:]

	if !utf8.Valid(key) {
		return Record{}, fmt.Errorf("%w: key is not valid UTF-8", ErrCorrupt)
	}
	if !utf8.Valid(value) {
		return Record{}, fmt.Errorf("%w: value is not valid UTF-8", ErrCorrupt)
	}

	return Record{
		Timestamp: h.Timestamp,
		Key:       string(key),
		Value:     string(value),
	}, nil
}
