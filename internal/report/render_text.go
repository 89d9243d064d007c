package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type textStyles struct {
	title lipgloss.Style
	key   lipgloss.Style
	value lipgloss.Style
	warn  lipgloss.Style
	err   lipgloss.Style
	dim   lipgloss.Style
}

func newTextStyles(w io.Writer, color bool) textStyles {
	r := lipgloss.NewRenderer(w)
	if !color {
		plain := r.NewStyle()
		return textStyles{title: plain, key: plain, value: plain, warn: plain, err: plain, dim: plain}
	}
	return textStyles{
		title: r.NewStyle().Bold(true).Foreground(lipgloss.Color("#7aa2f7")),
		key:   r.NewStyle().Foreground(lipgloss.Color("#565f89")),
		value: r.NewStyle().Foreground(lipgloss.Color("#c0caf5")),
		warn:  r.NewStyle().Foreground(lipgloss.Color("#e0af68")),
		err:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("#f7768e")),
		dim:   r.NewStyle().Faint(true),
	}
}

// WriteText renders report as aligned "name: value" lines per record.
func WriteText(w io.Writer, report *DecodeReport, opts Options) error {
	st := newTextStyles(w, opts.Color)
	var b strings.Builder

	decoded, failed := report.Counts()
	fmt.Fprintf(&b, "%s\n", st.title.Render("SA Decode Report"))
	if report.Source != "" {
		fmt.Fprintf(&b, "  Source: %s\n", report.Source)
	}
	if report.ByteOrder != "" {
		fmt.Fprintf(&b, "  Byte order: %s\n", report.ByteOrder)
	}
	fmt.Fprintf(&b, "  Records: %d decoded, %d failed\n", decoded, failed)

	for _, rec := range report.Records {
		b.WriteString("\n")
		writeRecord(&b, st, rec, opts)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func writeRecord(b *strings.Builder, st textStyles, rec RecordReport, opts Options) {
	header := fmt.Sprintf("%s #%d (0x%04x) offset=%d length=%d", rec.Attribute, rec.Index, rec.AttributeID, rec.Offset, rec.Length)
	if rec.TID != 0 {
		header += fmt.Sprintf(" tid=0x%x", rec.TID)
	}
	if rec.Captured != "" {
		header += " at " + rec.Captured
	}
	b.WriteString(st.title.Render(header))
	b.WriteString("\n")

	if rec.Failed() {
		fmt.Fprintf(b, "  %s %s\n", st.err.Render("error:"), rec.Error)
	} else {
		fields := Flatten(rec.Record)
		width := 0
		for _, f := range fields {
			if len(f.Name) > width {
				width = len(f.Name)
			}
		}
		keyStyle := st.key.Width(width + 1)
		for _, f := range fields {
			fmt.Fprintf(b, "  %s %s\n", keyStyle.Render(f.Name+":"), st.value.Render(f.Value))
		}
	}

	for _, d := range rec.Diagnostics {
		fmt.Fprintf(b, "  %s %s\n", st.warn.Render("warning:"), d.String())
	}

	if opts.HexDump && len(rec.Raw) > 0 {
		b.WriteString(st.dim.Render(indent(HexDump(rec.Raw, 16), "  ")))
		b.WriteString("\n")
	}
}

func indent(s, prefix string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i, line := range lines {
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}
