package errors

import (
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/tturner/sadecode/internal/datagram"
)

// UserFriendlyError provides user-friendly error messages with context and hints
type UserFriendlyError struct {
	Message string
	Reason  string
	Hint    string
	Try     string
	Err     error
}

func (e UserFriendlyError) Error() string {
	var buf strings.Builder
	buf.WriteString(e.Message)
	if e.Reason != "" {
		buf.WriteString("\n  Reason: " + e.Reason)
	}
	if e.Hint != "" {
		buf.WriteString("\n  Hint: " + e.Hint)
	}
	if e.Try != "" {
		buf.WriteString("\n  Try: " + e.Try)
	}
	if e.Err != nil {
		buf.WriteString("\n  Details: " + e.Err.Error())
	}
	return buf.String()
}

func (e UserFriendlyError) Unwrap() error {
	return e.Err
}

// WrapDecodeError wraps a record decode failure with the attribute and offset
// that were being decoded.
func WrapDecodeError(err error, attr string, offset int) error {
	if err == nil {
		return nil
	}

	return UserFriendlyError{
		Message: fmt.Sprintf("Failed to decode %s at offset %d", attr, offset),
		Reason:  extractDecodeReason(err),
		Hint:    decodeHint(err),
		Try:     fmt.Sprintf("sadecode attrs  (lists %s and its length)", attr),
		Err:     err,
	}
}

// WrapInputError wraps errors reading or parsing the raw payload.
func WrapInputError(err error, source string) error {
	if err == nil {
		return nil
	}

	return UserFriendlyError{
		Message: fmt.Sprintf("Could not read payload from %s", source),
		Reason:  err.Error(),
		Hint:    "Hex input may contain whitespace, colons and an optional 0x prefix",
		Try:     "sadecode decode --attr NodeRecord --hex \"00 00 00 01 ...\"",
		Err:     err,
	}
}

// WrapConfigError wraps configuration errors with user-friendly context
func WrapConfigError(err error, configPath string) error {
	if err == nil {
		return nil
	}

	return UserFriendlyError{
		Message: fmt.Sprintf("Configuration error in %s", configPath),
		Reason:  err.Error(),
		Hint:    "Byte order must be big or little; output format must be text, json or yaml",
		Try:     fmt.Sprintf("Regenerate a default config: sadecode config --init --config %s", configPath),
		Err:     err,
	}
}

// WrapCaptureError wraps errors reading an InfiniBand capture.
func WrapCaptureError(err error, path string) error {
	if err == nil {
		return nil
	}

	return UserFriendlyError{
		Message: fmt.Sprintf("Failed to read capture %s", path),
		Reason:  extractCaptureReason(err),
		Hint:    "Captures must be pcap files with link type InfiniBand (247)",
		Try:     fmt.Sprintf("sadecode pcap --input %s --max 10", path),
		Err:     err,
	}
}

func extractDecodeReason(err error) string {
	var oor *datagram.OutOfRangeError
	if stderrors.As(err, &oor) {
		return fmt.Sprintf("Record needs %d bytes at offset %d but the payload has %d", oor.Length, oor.Offset, oor.BufferLen)
	}
	var sm *datagram.SizeMismatchError
	if stderrors.As(err, &sm) {
		return fmt.Sprintf("%s is %d, expected %d", sm.Field, sm.Actual, sm.Expected)
	}
	return "Payload is not a valid record"
}

func decodeHint(err error) string {
	switch {
	case stderrors.Is(err, datagram.ErrOutOfRange):
		return "The payload may be truncated, or --offset points past the record"
	case stderrors.Is(err, datagram.ErrSizeMismatch):
		return "Variable records need --msg-len covering at least the fixed header"
	}
	return "Check that --attr matches the payload"
}

func extractCaptureReason(err error) string {
	errStr := err.Error()

	if strings.Contains(errStr, "no such file") {
		return "Capture file does not exist"
	}
	if strings.Contains(errStr, "link type") {
		return "Capture is not an InfiniBand capture"
	}
	if strings.Contains(errStr, "magic") || strings.Contains(errStr, "Unknown") {
		return "File is not a pcap capture"
	}

	return "Capture could not be parsed"
}
