package metrics

// Decode metrics for sadecode runs

import (
	"io"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"github.com/tturner/sadecode/internal/diag"
)

const namespace = "sadecode"

// Source identifies where a decoded payload came from.
type Source string

const (
	SourceHex  Source = "hex"
	SourceFile Source = "file"
	SourcePCAP Source = "pcap"
)

// Metric describes one decode call.
type Metric struct {
	Timestamp     time.Time     `json:"timestamp"`
	Source        Source        `json:"source"`
	Attribute     string        `json:"attribute"`
	Offset        int           `json:"offset"`
	Bytes         int           `json:"bytes"`
	Success       bool          `json:"success"`
	Duration      time.Duration `json:"duration_ns"`
	LookupMisses  int           `json:"lookup_misses"`
	ParseFailures int           `json:"parse_failures"`
	Error         string        `json:"error,omitempty"`
}

// WithDiagnostics fills the diagnostic counts of m from diags.
func (m Metric) WithDiagnostics(diags []diag.Diagnostic) Metric {
	for _, d := range diags {
		switch d.Kind {
		case diag.KindLookupMiss:
			m.LookupMisses++
		case diag.KindParseFailure:
			m.ParseFailures++
		}
	}
	return m
}

// Sink collects decode metrics, keeps a running summary and mirrors both
// into a private Prometheus registry.
type Sink struct {
	mu      sync.RWMutex
	metrics []Metric
	summary *Summary

	registry    *prometheus.Registry
	decodes     *prometheus.CounterVec
	diagnostics *prometheus.CounterVec
	bytes       prometheus.Counter
	packets     *prometheus.CounterVec
	duration    prometheus.Histogram
}

// Summary contains aggregated statistics
type Summary struct {
	TotalDecodes  int
	Successful    int
	Failed        int
	BytesDecoded  int
	LookupMisses  int
	ParseFailures int
	MinDurationUs float64
	MaxDurationUs float64
	AvgDurationUs float64
	P50DurationUs float64
	P90DurationUs float64
	P99DurationUs float64
	durationCount int
	ByAttribute   map[string]*AttributeStats
}

// AttributeStats contains statistics for one attribute
type AttributeStats struct {
	Count         int
	Success       int
	Failed        int
	Bytes         int
	LookupMisses  int
	ParseFailures int
}

func newSummary() *Summary {
	return &Summary{ByAttribute: make(map[string]*AttributeStats)}
}

// NewSink creates a new metrics sink
func NewSink() *Sink {
	s := &Sink{
		metrics:  make([]Metric, 0),
		summary:  newSummary(),
		registry: prometheus.NewRegistry(),
		decodes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "decodes_total",
				Help:      "Decode calls by attribute and outcome.",
			},
			[]string{"attribute", "outcome"},
		),
		diagnostics: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "diagnostics_total",
				Help:      "Non-fatal decode diagnostics by kind.",
			},
			[]string{"attribute", "kind"},
		),
		bytes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "decoded_bytes_total",
			Help:      "Bytes consumed by successful decodes.",
		}),
		packets: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "pcap",
				Name:      "packets_total",
				Help:      "Capture packets by disposition.",
			},
			[]string{"disposition"},
		),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "decode_duration_seconds",
			Help:      "Wall time of a single decode call.",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 8),
		}),
	}
	s.registry.MustRegister(s.decodes, s.diagnostics, s.bytes, s.packets, s.duration)
	return s
}

// Record records a new metric
func (s *Sink) Record(m Metric) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.metrics = append(s.metrics, m)
	s.updateSummary(m)

	outcome := "ok"
	if !m.Success {
		outcome = "error"
	}
	s.decodes.WithLabelValues(m.Attribute, outcome).Inc()
	if m.Success {
		s.bytes.Add(float64(m.Bytes))
	}
	if m.LookupMisses > 0 {
		s.diagnostics.WithLabelValues(m.Attribute, string(diag.KindLookupMiss)).Add(float64(m.LookupMisses))
	}
	if m.ParseFailures > 0 {
		s.diagnostics.WithLabelValues(m.Attribute, string(diag.KindParseFailure)).Add(float64(m.ParseFailures))
	}
	if m.Duration > 0 {
		s.duration.Observe(m.Duration.Seconds())
	}
}

// RecordPacket counts one capture packet with the given disposition
// ("sa", "skipped", "malformed", "reassembling").
func (s *Sink) RecordPacket(disposition string) {
	s.packets.WithLabelValues(disposition).Inc()
}

// GetMetrics returns a copy of all recorded metrics
func (s *Sink) GetMetrics() []Metric {
	s.mu.RLock()
	defer s.mu.RUnlock()

	metrics := make([]Metric, len(s.metrics))
	copy(metrics, s.metrics)
	return metrics
}

// GetSummary returns the aggregated summary
func (s *Sink) GetSummary() *Summary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	summary := *s.summary
	summary.ByAttribute = make(map[string]*AttributeStats, len(s.summary.ByAttribute))
	for attr, stats := range s.summary.ByAttribute {
		copied := *stats
		summary.ByAttribute[attr] = &copied
	}

	p := computePercentiles(durations(s.metrics))
	summary.P50DurationUs = p[0]
	summary.P90DurationUs = p[1]
	summary.P99DurationUs = p[2]

	return &summary
}

// Registry exposes the Prometheus registry backing the sink.
func (s *Sink) Registry() *prometheus.Registry {
	return s.registry
}

// WritePrometheus writes every collected metric family in the Prometheus
// text exposition format.
func (s *Sink) WritePrometheus(w io.Writer) error {
	families, err := s.registry.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}

// updateSummary updates the summary statistics with a new metric
func (s *Sink) updateSummary(m Metric) {
	s.summary.TotalDecodes++
	s.summary.LookupMisses += m.LookupMisses
	s.summary.ParseFailures += m.ParseFailures

	if m.Success {
		s.summary.Successful++
		s.summary.BytesDecoded += m.Bytes
	} else {
		s.summary.Failed++
	}

	if us := micros(m.Duration); us > 0 {
		if s.summary.MinDurationUs == 0 || us < s.summary.MinDurationUs {
			s.summary.MinDurationUs = us
		}
		if us > s.summary.MaxDurationUs {
			s.summary.MaxDurationUs = us
		}
		s.summary.durationCount++
		s.summary.AvgDurationUs += (us - s.summary.AvgDurationUs) / float64(s.summary.durationCount)
	}

	stats, exists := s.summary.ByAttribute[m.Attribute]
	if !exists {
		stats = &AttributeStats{}
		s.summary.ByAttribute[m.Attribute] = stats
	}
	stats.Count++
	stats.LookupMisses += m.LookupMisses
	stats.ParseFailures += m.ParseFailures
	if m.Success {
		stats.Success++
		stats.Bytes += m.Bytes
	} else {
		stats.Failed++
	}
}

func micros(d time.Duration) float64 {
	return float64(d) / float64(time.Microsecond)
}

func durations(metrics []Metric) []float64 {
	out := make([]float64, 0, len(metrics))
	for _, m := range metrics {
		if m.Duration > 0 {
			out = append(out, micros(m.Duration))
		}
	}
	return out
}

func computePercentiles(values []float64) [3]float64 {
	var result [3]float64
	if len(values) == 0 {
		return result
	}
	sort.Float64s(values)
	result[0] = percentile(values, 0.50)
	result[1] = percentile(values, 0.90)
	result[2] = percentile(values, 0.99)
	return result
}

func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	rank := int(math.Ceil(p*float64(len(sorted)))) - 1
	if rank < 0 {
		rank = 0
	}
	if rank >= len(sorted) {
		rank = len(sorted) - 1
	}
	return sorted[rank]
}
