package datagram

import (
	"encoding/binary"

	"github.com/tturner/sadecode/internal/diag"
)

// Datagram is the decode contract of a fixed-length record. Decode must be
// a pure read of v: calling it twice yields equal values.
type Datagram[T any] interface {
	Len() int
	Decode(v View) T
}

// Simple is a single fixed window decoded by one function.
type Simple[T any] struct {
	Length int
	Fn     func(View) T
}

func (s Simple[T]) Len() int { return s.Length }

func (s Simple[T]) Decode(v View) T { return s.Fn(v) }

// Composed decodes a Layout by handing each part's sub-view to Assemble.
type Composed[T any] struct {
	Layout   Layout
	Assemble func(parts []View) T
}

// Len returns the fixed length of the layout.
func (c Composed[T]) Len() int { return c.Layout.FixedLen() }

// Decode splits v by the layout. For a variable layout every byte of v past
// the fixed parts goes to the trailing part.
func (c Composed[T]) Decode(v View) T {
	return c.Assemble(c.Layout.Split(v))
}

// DecodeMessage binds a message of msgLen bytes at offset, sizing the
// variable trailing part, and decodes it.
func (c Composed[T]) DecodeMessage(buf []byte, offset, msgLen int, order binary.ByteOrder, diags *diag.Collector) (T, error) {
	v, err := c.Layout.Bind(buf, offset, msgLen, order)
	if err != nil {
		var zero T
		return zero, err
	}
	return c.Decode(v.WithDiagnostics(diags)), nil
}

// Decode binds d.Len() bytes at offset and decodes them.
func Decode[T any](d Datagram[T], buf []byte, offset int, order binary.ByteOrder, diags *diag.Collector) (T, error) {
	v, err := Bind(buf, offset, d.Len(), order)
	if err != nil {
		var zero T
		return zero, err
	}
	return d.Decode(v.WithDiagnostics(diags)), nil
}
