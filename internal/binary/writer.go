package binary

import "encoding/binary"

// Writer accumulates container bytes in memory. Appends never fail, so
// the API carries no error returns; the caller takes the finished buffer
// with Bytes.
type Writer struct {
	buf []byte
}

// NewWriter creates an empty Writer.
func NewWriter() *Writer {
	return &Writer{}
}

// Len returns the number of bytes written so far.
func (w *Writer) Len() int {
	return len(w.buf)
}

// Bytes returns the accumulated buffer.
func (w *Writer) Bytes() []byte {
	return w.buf
}

// Raw appends raw bytes.
func (w *Writer) Raw(b []byte) {
	w.buf = append(w.buf, b...)
}

// String appends a string's bytes.
func (w *Writer) String(s string) {
	w.buf = append(w.buf, s...)
}

// Byte appends a single byte.
func (w *Writer) Byte(b byte) {
	w.buf = append(w.buf, b)
}

// Uint32 appends a big-endian uint32.
func (w *Writer) Uint32(v uint32) {
	w.buf = binary.BigEndian.AppendUint32(w.buf, v)
}

// Uint32LE appends a little-endian uint32.
func (w *Writer) Uint32LE(v uint32) {
	w.buf = binary.LittleEndian.AppendUint32(w.buf, v)
}

// Uint16 appends a big-endian uint16.
func (w *Writer) Uint16(v uint16) {
	w.buf = binary.BigEndian.AppendUint16(w.buf, v)
}

// Uint16LE appends a little-endian uint16.
func (w *Writer) Uint16LE(v uint16) {
	w.buf = binary.LittleEndian.AppendUint16(w.buf, v)
}

// Uint24 appends a big-endian 24-bit unsigned integer, as used by FLAC
// metadata block lengths.
func (w *Writer) Uint24(v uint32) {
	w.buf = append(w.buf, byte(v>>16), byte(v>>8), byte(v))
}

// SetUint32LE overwrites 4 bytes at off with a little-endian uint32.
// Used to patch RIFF chunk sizes after the chunk body is written.
func (w *Writer) SetUint32LE(off int, v uint32) {
	binary.LittleEndian.PutUint32(w.buf[off:off+4], v)
}
