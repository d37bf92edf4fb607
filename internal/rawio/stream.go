// Package rawio implements the seekable byte source shared by every
// container and decoder package: a file-backed stream with a byte
// order that behaves like a stack, per the endianness discipline in
// the decoder design (sub-directories may switch order temporarily and
// must restore it on every exit path, including error paths).
package rawio

import (
	"encoding/binary"
	"errors"
	"io"
)

// Order is the byte order a Stream currently reads multi-byte values in.
type Order uint8

const (
	LittleEndian Order = iota
	BigEndian
)

func (o Order) byteOrder() binary.ByteOrder {
	if o == BigEndian {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

// Uint16 decodes a 2-byte value in this order.
func (o Order) Uint16(b []byte) uint16 { return o.byteOrder().Uint16(b) }

// Uint32 decodes a 4-byte value in this order.
func (o Order) Uint32(b []byte) uint32 { return o.byteOrder().Uint32(b) }

// Uint64 decodes an 8-byte value in this order.
func (o Order) Uint64(b []byte) uint64 { return o.byteOrder().Uint64(b) }

// ErrShortRead is returned when a fixed-size read returns fewer bytes
// than requested, the "truncated / short read" condition of the error
// handling design.
var ErrShortRead = errors.New("rawio: short read")

// Stream wraps a ReaderAt with a current position and a pushable byte
// order stack. It never panics on I/O errors; callers must check them.
type Stream struct {
	r        io.ReaderAt
	size     int64
	pos      int64
	orders   []Order
	corrupt  func(offset int64, detail string)
}

// New creates a Stream over r, whose content is size bytes long, with
// an initial byte order.
func New(r io.ReaderAt, size int64, initial Order) *Stream {
	return &Stream{r: r, size: size, orders: []Order{initial}}
}

// OnCorrupt installs a callback invoked whenever a short read is
// observed, so callers can route it into the sticky corrupt-data
// counter without every read site having to do so explicitly.
func (s *Stream) OnCorrupt(fn func(offset int64, detail string)) { s.corrupt = fn }

// Order returns the byte order currently in effect.
func (s *Stream) Order() Order { return s.orders[len(s.orders)-1] }

// PushOrder temporarily switches the stream's byte order; the
// returned function restores the previous order and MUST be called
// via defer on every exit path of the caller, including error paths.
func (s *Stream) PushOrder(o Order) (pop func()) {
	s.orders = append(s.orders, o)
	return func() {
		if len(s.orders) > 1 {
			s.orders = s.orders[:len(s.orders)-1]
		}
	}
}

// Size returns the total stream length in bytes.
func (s *Stream) Size() int64 { return s.size }

// Pos returns the current cursor position.
func (s *Stream) Pos() int64 { return s.pos }

// Seek moves the cursor to an absolute offset.
func (s *Stream) Seek(offset int64) { s.pos = offset }

// Skip advances the cursor by n bytes.
func (s *Stream) Skip(n int64) { s.pos += n }

// ReadAt reads len(buf) bytes starting at offset without moving the
// cursor, reporting a short read through the corrupt callback.
func (s *Stream) ReadAt(buf []byte, offset int64) (int, error) {
	n, err := s.r.ReadAt(buf, offset)
	if n < len(buf) {
		if s.corrupt != nil {
			s.corrupt(offset, "short read")
		}
		if err == nil {
			err = ErrShortRead
		}
	}
	return n, err
}

// Read reads len(buf) bytes from the current cursor and advances it.
func (s *Stream) Read(buf []byte) (int, error) {
	n, err := s.ReadAt(buf, s.pos)
	s.pos += int64(n)
	return n, err
}

// ReadAtN reads n bytes at offset without moving the cursor.
func (s *Stream) ReadAtN(n int, offset int64) ([]byte, error) {
	buf := make([]byte, n)
	_, err := s.ReadAt(buf, offset)
	return buf, err
}

// Bytes reads n bytes at the current cursor and advances it.
func (s *Stream) Bytes(n int) ([]byte, error) {
	buf := make([]byte, n)
	_, err := s.Read(buf)
	return buf, err
}

// U16 reads a uint16 at the current cursor in the stream's current order.
func (s *Stream) U16() (uint16, error) {
	buf, err := s.Bytes(2)
	if err != nil {
		return 0, err
	}
	return s.Order().byteOrder().Uint16(buf), nil
}

// U32 reads a uint32 at the current cursor in the stream's current order.
func (s *Stream) U32() (uint32, error) {
	buf, err := s.Bytes(4)
	if err != nil {
		return 0, err
	}
	return s.Order().byteOrder().Uint32(buf), nil
}

// U16At reads a uint16 at offset without moving the cursor.
func (s *Stream) U16At(offset int64) (uint16, error) {
	buf := make([]byte, 2)
	if _, err := s.ReadAt(buf, offset); err != nil {
		return 0, err
	}
	return s.Order().byteOrder().Uint16(buf), nil
}

// U32At reads a uint32 at offset without moving the cursor.
func (s *Stream) U32At(offset int64) (uint32, error) {
	buf := make([]byte, 4)
	if _, err := s.ReadAt(buf, offset); err != nil {
		return 0, err
	}
	return s.Order().byteOrder().Uint32(buf), nil
}
