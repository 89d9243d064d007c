package report

import (
	"testing"
	"time"
)

func TestFormatTimestamp(t *testing.T) {
	if got := FormatTimestamp(time.Time{}); got != "" {
		t.Fatalf("zero time: got %q", got)
	}
	ts := time.Date(2026, 1, 2, 3, 4, 5, 0, time.FixedZone("x", 3600))
	if got := FormatTimestamp(ts); got != "2026-01-02T02:04:05Z" {
		t.Fatalf("got %q", got)
	}
	if got := FormatTimestamp(ts.Add(1500 * time.Microsecond)); got != "2026-01-02T02:04:05.0015Z" {
		t.Fatalf("got %q", got)
	}
}
