// Package diag collects non-fatal decode diagnostics.
//
// Decoders never log. A lookup that misses or an auxiliary field that fails
// to parse appends a Diagnostic to the Collector supplied by the caller, and
// the caller decides whether to log, count or ignore it.
package diag

import "fmt"

// Kind classifies a diagnostic.
type Kind string

const (
	// KindLookupMiss is recorded when a raw code has no enumeration entry.
	KindLookupMiss Kind = "lookup_miss"
	// KindParseFailure is recorded when a derived field could not be parsed.
	KindParseFailure Kind = "parse_failure"
)

// Diagnostic describes one non-fatal decode event.
type Diagnostic struct {
	Kind    Kind   `json:"kind" yaml:"kind"`
	Source  string `json:"source" yaml:"source"`
	Code    string `json:"code,omitempty" yaml:"code,omitempty"`
	Message string `json:"message" yaml:"message"`
}

func (d Diagnostic) String() string {
	if d.Code != "" {
		return fmt.Sprintf("%s %s [%s]: %s", d.Kind, d.Source, d.Code, d.Message)
	}
	return fmt.Sprintf("%s %s: %s", d.Kind, d.Source, d.Message)
}

// LookupMiss builds a lookup-miss diagnostic for table and the formatted code.
func LookupMiss(table, code, sentinel string) Diagnostic {
	return Diagnostic{
		Kind:    KindLookupMiss,
		Source:  table,
		Code:    code,
		Message: fmt.Sprintf("no %s entry for %s, using %s", table, code, sentinel),
	}
}

// ParseFailure builds a parse-failure diagnostic for field.
func ParseFailure(field, raw string, err error) Diagnostic {
	return Diagnostic{
		Kind:    KindParseFailure,
		Source:  field,
		Code:    raw,
		Message: err.Error(),
	}
}

// Collector accumulates diagnostics for one decode call. A nil *Collector
// discards everything, so decoders can report unconditionally.
//
// A Collector is not safe for concurrent use.
type Collector struct {
	items []Diagnostic
}

// NewCollector returns an empty collector.
func NewCollector() *Collector {
	return &Collector{}
}

// Add records d.
func (c *Collector) Add(d Diagnostic) {
	if c == nil {
		return
	}
	c.items = append(c.items, d)
}

// Items returns a copy of the recorded diagnostics.
func (c *Collector) Items() []Diagnostic {
	if c == nil || len(c.items) == 0 {
		return nil
	}
	out := make([]Diagnostic, len(c.items))
	copy(out, c.items)
	return out
}

// Len returns the number of recorded diagnostics.
func (c *Collector) Len() int {
	if c == nil {
		return 0
	}
	return len(c.items)
}

// Count returns how many diagnostics of kind were recorded.
func (c *Collector) Count(kind Kind) int {
	if c == nil {
		return 0
	}
	n := 0
	for _, d := range c.items {
		if d.Kind == kind {
			n++
		}
	}
	return n
}

// Reset drops all recorded diagnostics.
func (c *Collector) Reset() {
	if c == nil {
		return
	}
	c.items = c.items[:0]
}
