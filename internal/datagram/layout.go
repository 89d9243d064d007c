package datagram

import (
	"encoding/binary"
	"fmt"
)

// Variable marks the single trailing part whose length is taken from the
// enclosing message length at bind time.
const Variable = -1

// Part is one child window of a composed datagram.
type Part struct {
	Name string
	Len  int
}

// Layout is an ordered list of contiguous, non-overlapping parts.
type Layout struct {
	parts    []Part
	fixed    int
	variable bool
}

// NewLayout builds a layout. Only the last part may be Variable; anything
// else is a programming error and panics.
func NewLayout(parts ...Part) Layout {
	l := Layout{parts: append([]Part(nil), parts...)}
	for i, p := range parts {
		switch {
		case p.Len == Variable && i != len(parts)-1:
			panic(fmt.Sprintf("datagram: variable part %q must be last", p.Name))
		case p.Len == Variable:
			l.variable = true
		case p.Len < 0:
			panic(fmt.Sprintf("datagram: part %q has negative length", p.Name))
		default:
			l.fixed += p.Len
		}
	}
	return l
}

// FixedLen is the sum of the fixed part lengths.
func (l Layout) FixedLen() int { return l.fixed }

// TotalLen returns the window length for a message of msgLen bytes. Fixed
// layouts ignore msgLen. A variable layout needs msgLen >= FixedLen.
func (l Layout) TotalLen(msgLen int) (int, error) {
	if !l.variable {
		return l.fixed, nil
	}
	if msgLen < l.fixed {
		return 0, &SizeMismatchError{Field: "message length", Expected: l.fixed, Actual: msgLen}
	}
	return msgLen, nil
}

// Split cuts v into one sub-view per part, in order. A variable part
// receives whatever follows the fixed parts.
func (l Layout) Split(v View) []View {
	out := make([]View, len(l.parts))
	pos := 0
	for i, p := range l.parts {
		n := p.Len
		if n == Variable {
			n = v.Len() - pos
		}
		out[i] = v.Slice(pos, n)
		pos += n
	}
	return out
}

// Bind binds the window of a msgLen-byte message at offset: the fixed
// length, or msgLen for a variable layout.
func (l Layout) Bind(buf []byte, offset, msgLen int, order binary.ByteOrder) (View, error) {
	total, err := l.TotalLen(msgLen)
	if err != nil {
		return View{}, err
	}
	return Bind(buf, offset, total, order)
}
