package metrics

// Metrics output (CSV/JSON) and summary formatting

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Writer handles writing metrics to files
type Writer struct {
	csvFile   *os.File
	csvWriter *csv.Writer
	jsonFile  *os.File
	jsonCount int
}

// NewWriter creates a new metrics writer
func NewWriter(csvPath, jsonPath string) (*Writer, error) {
	w := &Writer{}

	if csvPath != "" {
		file, err := os.Create(csvPath)
		if err != nil {
			return nil, fmt.Errorf("create CSV file: %w", err)
		}
		w.csvFile = file
		w.csvWriter = csv.NewWriter(file)

		header := []string{
			"timestamp",
			"source",
			"attribute",
			"offset",
			"bytes",
			"success",
			"duration_us",
			"lookup_misses",
			"parse_failures",
			"error",
		}
		if err := w.csvWriter.Write(header); err != nil {
			file.Close()
			return nil, fmt.Errorf("write CSV header: %w", err)
		}
		w.csvWriter.Flush()
	}

	if jsonPath != "" {
		file, err := os.Create(jsonPath)
		if err != nil {
			if w.csvFile != nil {
				w.csvFile.Close()
			}
			return nil, fmt.Errorf("create JSON file: %w", err)
		}
		w.jsonFile = file

		if _, err := file.WriteString("[\n"); err != nil {
			file.Close()
			if w.csvFile != nil {
				w.csvFile.Close()
			}
			return nil, fmt.Errorf("write JSON start: %w", err)
		}
	}

	return w, nil
}

// WriteMetric writes a single metric
func (w *Writer) WriteMetric(m Metric) error {
	if w.csvWriter != nil {
		record := []string{
			m.Timestamp.Format(time.RFC3339Nano),
			string(m.Source),
			m.Attribute,
			strconv.Itoa(m.Offset),
			strconv.Itoa(m.Bytes),
			strconv.FormatBool(m.Success),
			formatDuration(m.Duration),
			strconv.Itoa(m.LookupMisses),
			strconv.Itoa(m.ParseFailures),
			m.Error,
		}
		if err := w.csvWriter.Write(record); err != nil {
			return fmt.Errorf("write CSV record: %w", err)
		}
		w.csvWriter.Flush()
	}

	if w.jsonFile != nil {
		jsonData, err := json.Marshal(m)
		if err != nil {
			return fmt.Errorf("marshal JSON: %w", err)
		}
		if w.jsonCount > 0 {
			if _, err := w.jsonFile.WriteString(",\n"); err != nil {
				return fmt.Errorf("write JSON comma: %w", err)
			}
		}

		var buf bytes.Buffer
		if err := json.Indent(&buf, jsonData, "", "  "); err != nil {
			return fmt.Errorf("indent JSON: %w", err)
		}
		if _, err := w.jsonFile.Write(buf.Bytes()); err != nil {
			return fmt.Errorf("write JSON: %w", err)
		}
		w.jsonCount++
	}

	return nil
}

// Close closes the writer and flushes all data
func (w *Writer) Close() error {
	var errs []error

	if w.csvWriter != nil {
		w.csvWriter.Flush()
	}
	if w.csvFile != nil {
		if err := w.csvFile.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	if w.jsonFile != nil {
		if _, err := w.jsonFile.WriteString("\n]\n"); err != nil {
			errs = append(errs, err)
		}
		if err := w.jsonFile.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close writer: %v", errs)
	}

	return nil
}

// formatDuration formats a duration in microseconds for CSV (empty if 0)
func formatDuration(d time.Duration) string {
	if d == 0 {
		return ""
	}
	return fmt.Sprintf("%.3f", micros(d))
}

// FormatSummary formats a summary for human-readable output
func FormatSummary(summary *Summary) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Total Decodes: %d\n", summary.TotalDecodes)
	if summary.TotalDecodes == 0 {
		return b.String()
	}
	fmt.Fprintf(&b, "Successful: %d (%.1f%%)\n",
		summary.Successful,
		float64(summary.Successful)/float64(summary.TotalDecodes)*100)
	fmt.Fprintf(&b, "Failed: %d (%.1f%%)\n",
		summary.Failed,
		float64(summary.Failed)/float64(summary.TotalDecodes)*100)
	fmt.Fprintf(&b, "Bytes Decoded: %d\n", summary.BytesDecoded)

	if summary.LookupMisses > 0 {
		fmt.Fprintf(&b, "Lookup Misses: %d\n", summary.LookupMisses)
	}
	if summary.ParseFailures > 0 {
		fmt.Fprintf(&b, "Parse Failures: %d\n", summary.ParseFailures)
	}

	if summary.MaxDurationUs > 0 {
		b.WriteString("\nDecode Time:\n")
		fmt.Fprintf(&b, "  Min: %.3f us\n", summary.MinDurationUs)
		fmt.Fprintf(&b, "  Max: %.3f us\n", summary.MaxDurationUs)
		fmt.Fprintf(&b, "  Avg: %.3f us\n", summary.AvgDurationUs)
		fmt.Fprintf(&b, "  P50: %.3f us\n", summary.P50DurationUs)
		fmt.Fprintf(&b, "  P90: %.3f us\n", summary.P90DurationUs)
		fmt.Fprintf(&b, "  P99: %.3f us\n", summary.P99DurationUs)
	}

	if len(summary.ByAttribute) > 0 {
		b.WriteString("\nPer-Attribute Statistics:\n")
		names := make([]string, 0, len(summary.ByAttribute))
		for name := range summary.ByAttribute {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			stats := summary.ByAttribute[name]
			fmt.Fprintf(&b, "  %s: %d decodes (%d success, %d failed, %d bytes)",
				name, stats.Count, stats.Success, stats.Failed, stats.Bytes)
			if stats.LookupMisses > 0 || stats.ParseFailures > 0 {
				fmt.Fprintf(&b, " - diagnostics: %d lookup, %d parse", stats.LookupMisses, stats.ParseFailures)
			}
			b.WriteString("\n")
		}
	}

	return b.String()
}
