package app

// Shared run environment for sadecode commands

import (
	"encoding/binary"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/tturner/sadecode/internal/logging"
	"github.com/tturner/sadecode/internal/metrics"
	"github.com/tturner/sadecode/internal/report"
)

// Env carries what every command needs: where to write, how to decode and
// where to log and count.
type Env struct {
	Out     io.Writer
	Logger  *logging.Logger
	Metrics *metrics.Sink
	Order   binary.ByteOrder
	Format  string
	Render  report.Options
	Version string
}

// NewEnv returns an Env with a silent logger, a fresh sink and big-endian
// decoding. Callers override fields as needed.
func NewEnv(out io.Writer) *Env {
	logger, _ := logging.NewLogger(logging.LogLevelSilent, "")
	return &Env{
		Out:     out,
		Logger:  logger,
		Metrics: metrics.NewSink(),
		Order:   binary.BigEndian,
		Format:  "text",
		Version: "dev",
	}
}

func (e *Env) orderName() string {
	if e.Order == binary.LittleEndian {
		return "little"
	}
	return "big"
}

func (e *Env) newReport(source string) *report.DecodeReport {
	return &report.DecodeReport{
		GeneratedAt: report.FormatTimestamp(time.Now()),
		Version:     e.Version,
		Source:      source,
		ByteOrder:   e.orderName(),
	}
}

func (e *Env) write(rep *report.DecodeReport) error {
	if err := report.Write(e.Out, rep, e.Format, e.Render); err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	return nil
}

// FinishMetrics writes the Prometheus exposition to w when w is non-nil and
// the per-decode metrics to path when it is set: JSON for a .json path,
// CSV otherwise.
func FinishMetrics(env *Env, w io.Writer, path string) error {
	if w != nil {
		if err := env.Metrics.WritePrometheus(w); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
	}
	if path == "" {
		return nil
	}
	csvPath, jsonPath := path, ""
	if strings.EqualFold(filepath.Ext(path), ".json") {
		csvPath, jsonPath = "", path
	}
	writer, err := metrics.NewWriter(csvPath, jsonPath)
	if err != nil {
		return err
	}
	for _, m := range env.Metrics.GetMetrics() {
		if err := writer.WriteMetric(m); err != nil {
			writer.Close()
			return err
		}
	}
	return writer.Close()
}
