// Package datagram binds fixed-length windows over borrowed byte buffers and
// provides the composition primitives the SA record decoders are built on.
//
// A View is an immutable value: binding never mutates shared state, so any
// number of goroutines may decode independent views concurrently.
package datagram

import (
	"bytes"
	"encoding/binary"

	"github.com/tturner/sadecode/internal/codec"
	"github.com/tturner/sadecode/internal/diag"
)

// View is a bound window over a caller-owned buffer. Reads past the window
// are programming errors and panic; Bind guarantees the window itself is in
// range.
type View struct {
	buf   []byte
	order binary.ByteOrder
	diags *diag.Collector
}

// Bind attaches a length-byte view at offset. It fails with an
// *OutOfRangeError when offset+length exceeds the buffer, including when
// the sum would overflow int.
func Bind(buf []byte, offset, length int, order binary.ByteOrder) (View, error) {
	if offset < 0 || length < 0 || offset > len(buf) || length > len(buf)-offset {
		return View{}, &OutOfRangeError{Offset: offset, Length: length, BufferLen: len(buf)}
	}
	if order == nil {
		order = binary.BigEndian
	}
	return View{buf: buf[offset : offset+length : offset+length], order: order}, nil
}

// Wrap binds the whole of buf.
func Wrap(buf []byte, order binary.ByteOrder) View {
	v, _ := Bind(buf, 0, len(buf), order)
	return v
}

// New allocates a zeroed buffer of length bytes and wraps it. It is the
// starting point of every encoder.
func New(length int, order binary.ByteOrder) View {
	return Wrap(make([]byte, length), order)
}

// WithDiagnostics returns a copy of v that reports into c. Sub-views inherit
// the collector.
func (v View) WithDiagnostics(c *diag.Collector) View {
	v.diags = c
	return v
}

// Diagnostics returns the collector attached to v, possibly nil.
func (v View) Diagnostics() *diag.Collector {
	return v.diags
}

// Report adds d to the attached collector, if any.
func (v View) Report(d diag.Diagnostic) {
	v.diags.Add(d)
}

// Len returns the window length.
func (v View) Len() int {
	return len(v.buf)
}

// Order returns the byte order threaded from the bind call.
func (v View) Order() binary.ByteOrder {
	return v.order
}

// BigEndian reports whether the view was bound big-endian.
func (v View) BigEndian() bool {
	return codec.IsBigEndian(v.order)
}

// Bytes returns the window itself. The slice aliases the caller's buffer.
func (v View) Bytes() []byte {
	return v.buf
}

// Slice returns the sub-view [offset, offset+length) sharing the same
// backing array, byte order and collector.
func (v View) Slice(offset, length int) View {
	return View{buf: v.buf[offset : offset+length : offset+length], order: v.order, diags: v.diags}
}

// U8 reads the byte at offset.
func (v View) U8(offset int) uint8 {
	return v.buf[offset]
}

// U16 reads a 16-bit value at offset.
func (v View) U16(offset int) uint16 {
	return codec.Uint16(v.order, v.buf[offset:offset+2])
}

// U32 reads a 32-bit value at offset.
func (v View) U32(offset int) uint32 {
	return codec.Uint32(v.order, v.buf[offset:offset+4])
}

// U64 reads a 64-bit value at offset.
func (v View) U64(offset int) uint64 {
	return codec.Uint64(v.order, v.buf[offset:offset+8])
}

// CopyTo copies len(dst) bytes starting at offset into dst.
func (v View) CopyTo(offset int, dst []byte) {
	copy(dst, v.buf[offset:offset+len(dst)])
}

// Clone returns a copy of length bytes starting at offset. Records never
// alias the caller's buffer.
func (v View) Clone(offset, length int) []byte {
	out := make([]byte, length)
	copy(out, v.buf[offset:offset+length])
	return out
}

// String reads a fixed-width text field, dropping everything from the first
// NUL and any trailing spaces.
func (v View) String(offset, length int) string {
	raw := v.buf[offset : offset+length]
	if i := bytes.IndexByte(raw, 0); i >= 0 {
		raw = raw[:i]
	}
	return string(bytes.TrimRight(raw, " "))
}

// PutU8 writes b at offset.
func (v View) PutU8(offset int, b uint8) {
	v.buf[offset] = b
}

// PutU16 writes a 16-bit value at offset.
func (v View) PutU16(offset int, x uint16) {
	codec.PutUint16(v.order, v.buf[offset:offset+2], x)
}

// PutU32 writes a 32-bit value at offset.
func (v View) PutU32(offset int, x uint32) {
	codec.PutUint32(v.order, v.buf[offset:offset+4], x)
}

// PutU64 writes a 64-bit value at offset.
func (v View) PutU64(offset int, x uint64) {
	codec.PutUint64(v.order, v.buf[offset:offset+8], x)
}

// PutBytes copies src to offset.
func (v View) PutBytes(offset int, src []byte) {
	copy(v.buf[offset:offset+len(src)], src)
}

// PutString writes s into a length-byte field, truncating or NUL padding.
// padSpace pads with ASCII spaces instead, as SFF vendor fields require.
func (v View) PutString(offset, length int, s string, padSpace bool) {
	field := v.buf[offset : offset+length]
	n := copy(field, s)
	pad := byte(0)
	if padSpace {
		pad = ' '
	}
	for i := n; i < length; i++ {
		field[i] = pad
	}
}
