package datagram

// Unsigned is the set of scalar widths bit fields are carved from.
type Unsigned interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Bits names one bit field inside a scalar: Shift is the distance of the
// field's least significant bit from bit 0, Width its size in bits.
type Bits[T Unsigned] struct {
	Shift uint
	Width uint
}

// Mask returns the unshifted field mask.
func (b Bits[T]) Mask() T {
	return T(1)<<b.Width - 1
}

// Get extracts the field from word.
func (b Bits[T]) Get(word T) T {
	return (word >> b.Shift) & b.Mask()
}

// Set returns word with the field replaced by v. Bits of v above Width are
// dropped.
func (b Bits[T]) Set(word, v T) T {
	m := b.Mask() << b.Shift
	return word&^m | (v<<b.Shift)&m
}

// Flag names a single-bit boolean field.
type Flag[T Unsigned] struct {
	Bit uint
}

// Get reports whether the bit is set in word.
func (f Flag[T]) Get(word T) bool {
	return word>>f.Bit&1 == 1
}

// Set returns word with the bit set or cleared.
func (f Flag[T]) Set(word T, on bool) T {
	if on {
		return word | T(1)<<f.Bit
	}
	return word &^ (T(1) << f.Bit)
}
