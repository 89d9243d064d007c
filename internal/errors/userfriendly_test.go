package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/tturner/sadecode/internal/datagram"
)

func TestUserFriendlyError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      UserFriendlyError
		contains []string
	}{
		{
			name:     "message only",
			err:      UserFriendlyError{Message: "something broke"},
			contains: []string{"something broke"},
		},
		{
			name: "all fields",
			err: UserFriendlyError{
				Message: "decode failed",
				Reason:  "short buffer",
				Hint:    "check input",
				Try:     "sadecode attrs",
				Err:     fmt.Errorf("window too small"),
			},
			contains: []string{"decode failed", "Reason: short buffer", "Hint: check input", "Try: sadecode attrs", "Details: window too small"},
		},
		{
			name: "no reason",
			err: UserFriendlyError{
				Message: "failed",
				Hint:    "hint here",
			},
			contains: []string{"failed", "Hint: hint here"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !strings.Contains(msg, s) {
					t.Errorf("Error() = %q, want to contain %q", msg, s)
				}
			}
		})
	}
}

func TestUserFriendlyError_ErrorOmitsEmptyFields(t *testing.T) {
	err := UserFriendlyError{Message: "msg"}
	msg := err.Error()
	if strings.Contains(msg, "Reason:") || strings.Contains(msg, "Hint:") || strings.Contains(msg, "Try:") || strings.Contains(msg, "Details:") {
		t.Errorf("Error() = %q, should not contain empty fields", msg)
	}
}

func TestWrappersNil(t *testing.T) {
	if WrapDecodeError(nil, "NodeRecord", 0) != nil {
		t.Error("WrapDecodeError(nil) should be nil")
	}
	if WrapInputError(nil, "stdin") != nil {
		t.Error("WrapInputError(nil) should be nil")
	}
	if WrapConfigError(nil, "x.yaml") != nil {
		t.Error("WrapConfigError(nil) should be nil")
	}
	if WrapCaptureError(nil, "x.pcap") != nil {
		t.Error("WrapCaptureError(nil) should be nil")
	}
}

func TestWrapDecodeError_OutOfRange(t *testing.T) {
	cause := &datagram.OutOfRangeError{Offset: 4, Length: 44, BufferLen: 20}
	err := WrapDecodeError(cause, "NodeInfo", 4)

	var ufe UserFriendlyError
	if !errors.As(err, &ufe) {
		t.Fatalf("expected UserFriendlyError, got %T", err)
	}
	if !strings.Contains(ufe.Message, "NodeInfo") {
		t.Errorf("Message = %q, want attribute name", ufe.Message)
	}
	if !strings.Contains(ufe.Reason, "needs 44 bytes") {
		t.Errorf("Reason = %q", ufe.Reason)
	}
	if !strings.Contains(ufe.Hint, "truncated") {
		t.Errorf("Hint = %q", ufe.Hint)
	}
	if !errors.Is(err, datagram.ErrOutOfRange) {
		t.Error("wrapped error should still match ErrOutOfRange")
	}
}

func TestWrapDecodeError_SizeMismatch(t *testing.T) {
	cause := &datagram.SizeMismatchError{Field: "message length", Expected: 96, Actual: 90}
	err := WrapDecodeError(fmt.Errorf("notice: %w", cause), "Notice", 0)

	var ufe UserFriendlyError
	if !errors.As(err, &ufe) {
		t.Fatalf("expected UserFriendlyError, got %T", err)
	}
	if ufe.Reason != "message length is 90, expected 96" {
		t.Errorf("Reason = %q", ufe.Reason)
	}
	if !strings.Contains(ufe.Hint, "--msg-len") {
		t.Errorf("Hint = %q", ufe.Hint)
	}
}

func TestWrapDecodeError_Other(t *testing.T) {
	err := WrapDecodeError(errors.New("boom"), "LinkRecord", 0)
	var ufe UserFriendlyError
	errors.As(err, &ufe)
	if ufe.Reason != "Payload is not a valid record" {
		t.Errorf("Reason = %q", ufe.Reason)
	}
}

func TestExtractCaptureReason(t *testing.T) {
	tests := []struct {
		err  string
		want string
	}{
		{"open x.pcap: no such file or directory", "Capture file does not exist"},
		{"unsupported link type 1", "Capture is not an InfiniBand capture"},
		{"Unknown magic a1b2c3d5", "File is not a pcap capture"},
		{"something else", "Capture could not be parsed"},
	}
	for _, tt := range tests {
		if got := extractCaptureReason(errors.New(tt.err)); got != tt.want {
			t.Errorf("extractCaptureReason(%q) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

func TestWrapConfigError(t *testing.T) {
	err := WrapConfigError(errors.New("bad order"), "sadecode.yaml")
	var ufe UserFriendlyError
	if !errors.As(err, &ufe) {
		t.Fatal("expected UserFriendlyError")
	}
	if !strings.Contains(ufe.Message, "sadecode.yaml") {
		t.Errorf("Message = %q", ufe.Message)
	}
	if ufe.Unwrap() == nil {
		t.Error("Unwrap should return cause")
	}
}
