package report

// Hex dump utilities for decoded windows and captured MADs

import (
	"fmt"
	"strings"
)

// Section labels a leading slice of a buffer in an annotated dump.
type Section struct {
	Label  string
	Length int
}

// HexDump creates a hex dump of data
func HexDump(data []byte, width int) string {
	if width <= 0 {
		width = 16
	}

	var sb strings.Builder
	for i := 0; i < len(data); i += width {
		sb.WriteString(fmt.Sprintf("%04x: ", i))

		for j := 0; j < width; j++ {
			if i+j < len(data) {
				sb.WriteString(fmt.Sprintf("%02x ", data[i+j]))
			} else {
				sb.WriteString("   ")
			}
		}

		sb.WriteString(" |")
		for j := 0; j < width && i+j < len(data); j++ {
			b := data[i+j]
			if b >= 32 && b < 127 {
				sb.WriteByte(b)
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteString("|\n")
	}

	return sb.String()
}

// AnnotatedHexDump dumps data split into labelled sections. Bytes past the
// last section are dumped under rest when non-empty.
func AnnotatedHexDump(data []byte, sections []Section, rest string) string {
	var sb strings.Builder
	pos := 0
	for _, s := range sections {
		if pos >= len(data) {
			break
		}
		end := pos + s.Length
		if end > len(data) {
			end = len(data)
		}
		if sb.Len() > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(fmt.Sprintf("%s (%d bytes):\n", s.Label, end-pos))
		sb.WriteString(HexDump(data[pos:end], 16))
		pos = end
	}
	if pos < len(data) && rest != "" {
		if sb.Len() > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(fmt.Sprintf("%s (%d bytes):\n", rest, len(data)-pos))
		sb.WriteString(HexDump(data[pos:], 16))
	}
	return sb.String()
}
