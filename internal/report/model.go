package report

import "github.com/tturner/sadecode/internal/diag"

// DecodeReport captures the records decoded by one sadecode run.
type DecodeReport struct {
	GeneratedAt string         `json:"generated_at" yaml:"generated_at"`
	Version     string         `json:"sadecode_version" yaml:"sadecode_version"`
	Source      string         `json:"source" yaml:"source"`
	ByteOrder   string         `json:"byte_order" yaml:"byte_order"`
	Records     []RecordReport `json:"records" yaml:"records"`
}

// RecordReport captures one decoded attribute instance.
type RecordReport struct {
	Attribute   string            `json:"attribute" yaml:"attribute"`
	AttributeID uint16            `json:"attribute_id" yaml:"attribute_id"`
	Index       int               `json:"index" yaml:"index"`
	Offset      int               `json:"offset" yaml:"offset"`
	Length      int               `json:"length" yaml:"length"`
	TID         uint64            `json:"tid,omitempty" yaml:"tid,omitempty"`
	Captured    string            `json:"captured,omitempty" yaml:"captured,omitempty"`
	Record      any               `json:"record,omitempty" yaml:"record,omitempty"`
	Diagnostics []diag.Diagnostic `json:"diagnostics,omitempty" yaml:"diagnostics,omitempty"`
	Error       string            `json:"error,omitempty" yaml:"error,omitempty"`
	RawHex      string            `json:"raw_hex,omitempty" yaml:"raw_hex,omitempty"`

	// Raw is the decoded window, rendered as a hex dump by the text writer.
	Raw []byte `json:"-" yaml:"-"`
}

// Failed reports whether the record could not be decoded.
func (r RecordReport) Failed() bool {
	return r.Error != ""
}

// Counts returns the number of decoded and failed records.
func (r *DecodeReport) Counts() (decoded, failed int) {
	for _, rec := range r.Records {
		if rec.Failed() {
			failed++
		} else {
			decoded++
		}
	}
	return decoded, failed
}
