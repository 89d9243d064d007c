package datagram

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfRange matches every *OutOfRangeError.
	ErrOutOfRange = errors.New("datagram: out of range")
	// ErrSizeMismatch matches every *SizeMismatchError.
	ErrSizeMismatch = errors.New("datagram: size mismatch")
)

// OutOfRangeError reports a window that does not fit in its buffer.
type OutOfRangeError struct {
	Offset    int
	Length    int
	BufferLen int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("datagram: window [%d, %d) exceeds buffer of %d bytes", e.Offset, e.Offset+e.Length, e.BufferLen)
}

// Is lets errors.Is match ErrOutOfRange.
func (e *OutOfRangeError) Is(target error) bool {
	return target == ErrOutOfRange
}

// SizeMismatchError reports an array or message whose length differs from
// the length its layout requires.
type SizeMismatchError struct {
	Field    string
	Expected int
	Actual   int
}

func (e *SizeMismatchError) Error() string {
	return fmt.Sprintf("datagram: %s size mismatch: expected %d, got %d", e.Field, e.Expected, e.Actual)
}

// Is lets errors.Is match ErrSizeMismatch.
func (e *SizeMismatchError) Is(target error) bool {
	return target == ErrSizeMismatch
}

// CheckSize returns a *SizeMismatchError when actual != expected.
func CheckSize(field string, expected, actual int) error {
	if expected != actual {
		return &SizeMismatchError{Field: field, Expected: expected, Actual: actual}
	}
	return nil
}
