// Package binary provides bounds-checked binary reading and writing
// primitives for in-memory container buffers.
package binary

import (
	"encoding/binary"
	"fmt"
)

// Reader wraps a byte buffer with bounds-checked access. All reads report
// a descriptive error instead of panicking when they would run past the
// end of the buffer.
type Reader struct {
	buf []byte
}

// NewReader creates a Reader over buf. The buffer is not copied.
func NewReader(buf []byte) *Reader {
	return &Reader{buf: buf}
}

// Size returns the total buffer length.
func (r *Reader) Size() int64 {
	return int64(len(r.buf))
}

// Bytes returns the slice [off, off+n) of the underlying buffer.
// The returned slice aliases the buffer; callers that retain it must copy.
func (r *Reader) Bytes(off int64, n int, what string) ([]byte, error) {
	if off < 0 || n < 0 || off+int64(n) > int64(len(r.buf)) {
		return nil, &BoundsError{What: what, Offset: off, Length: n, Size: int64(len(r.buf))}
	}
	return r.buf[off : off+int64(n)], nil
}

// Uint32 reads a big-endian uint32 at off.
func (r *Reader) Uint32(off int64, what string) (uint32, error) {
	b, err := r.Bytes(off, 4, what)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b), nil
}

// Uint32LE reads a little-endian uint32 at off.
func (r *Reader) Uint32LE(off int64, what string) (uint32, error) {
	b, err := r.Bytes(off, 4, what)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

// Uint16 reads a big-endian uint16 at off.
func (r *Reader) Uint16(off int64, what string) (uint16, error) {
	b, err := r.Bytes(off, 2, what)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b), nil
}

// Uint16LE reads a little-endian uint16 at off.
func (r *Reader) Uint16LE(off int64, what string) (uint16, error) {
	b, err := r.Bytes(off, 2, what)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

// Byte reads a single byte at off.
func (r *Reader) Byte(off int64, what string) (byte, error) {
	b, err := r.Bytes(off, 1, what)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// BoundsError is returned when a read would run past the buffer.
type BoundsError struct {
	What   string
	Offset int64
	Length int
	Size   int64
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("read of %d bytes at offset %d exceeds buffer size %d while reading %s",
		e.Length, e.Offset, e.Size, e.What)
}
