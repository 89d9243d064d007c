package report

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Formats lists the supported output formats.
var Formats = []string{"text", "json", "yaml"}

// Options controls rendering.
type Options struct {
	Color   bool
	HexDump bool
}

// Write renders report in the named format.
func Write(w io.Writer, report *DecodeReport, format string, opts Options) error {
	if opts.HexDump {
		for i := range report.Records {
			if rec := &report.Records[i]; len(rec.Raw) > 0 {
				rec.RawHex = hex.EncodeToString(rec.Raw)
			}
		}
	}
	switch format {
	case "", "text":
		return WriteText(w, report, opts)
	case "json":
		return WriteJSON(w, report)
	case "yaml":
		return WriteYAML(w, report)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

// WriteJSON writes a report as JSON to an io.Writer.
func WriteJSON(w io.Writer, report any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return nil
}

// WriteYAML writes a report as YAML to an io.Writer.
func WriteYAML(w io.Writer, report any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return enc.Close()
}
