// Package sa decodes Subnet Administration attribute payloads into typed
// records and encodes records back into their wire layout.
//
// Each attribute has a fixed layout. Multi-byte fields are read in the
// byte order chosen when the payload is bound; SA payloads are network
// order unless the producer says otherwise.
package sa

import (
	"encoding/binary"

	"github.com/tturner/sadecode/internal/datagram"
	"github.com/tturner/sadecode/internal/diag"
)

// Decoder carries the per-call decode configuration. The zero value decodes
// big-endian and discards diagnostics.
//
// A Decoder holds no cursor state. It is safe for concurrent use unless
// Diagnostics is set, because the collector is appended to.
type Decoder struct {
	Order       binary.ByteOrder
	Diagnostics *diag.Collector
}

// NewDecoder returns a decoder for order reporting into diags.
func NewDecoder(order binary.ByteOrder, diags *diag.Collector) Decoder {
	return Decoder{Order: order, Diagnostics: diags}
}

func (d Decoder) order() binary.ByteOrder {
	if d.Order == nil {
		return binary.BigEndian
	}
	return d.Order
}

// decodeFixed binds length bytes at offset and decodes them with fn.
func decodeFixed[T any](d Decoder, length int, fn func(datagram.View) T, buf []byte, offset int) (T, error) {
	return datagram.Decode[T](datagram.Simple[T]{Length: length, Fn: fn}, buf, offset, d.order(), d.Diagnostics)
}

// encode allocates length bytes, lets put fill them and returns the buffer.
func encode(length int, order binary.ByteOrder, put func(v datagram.View)) []byte {
	if order == nil {
		order = binary.BigEndian
	}
	v := datagram.New(length, order)
	put(v)
	return v.Bytes()
}
