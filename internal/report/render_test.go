package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/tturner/sadecode/internal/diag"
)

type sampleInner struct {
	Kind  string
	Count uint8
}

type sampleRecord struct {
	LID      uint32
	GUID     uint64
	Enabled  bool
	Name     string
	Inner    sampleInner
	Blob     [4]byte
	Words    [3]uint16
	Pairs    [2]sampleInner
	Many     [10]sampleInner
	Optional *sampleInner
	hidden   int
}

func newSampleReport() *DecodeReport {
	return &DecodeReport{
		GeneratedAt: "2026-01-02T03:04:05Z",
		Version:     "test",
		Source:      "hex",
		ByteOrder:   "big",
		Records: []RecordReport{
			{
				Attribute:   "NodeRecord",
				AttributeID: 0x0011,
				Length:      116,
				Record: sampleRecord{
					LID:     7,
					GUID:    0x0011750000000001,
					Enabled: true,
					Name:    "node-1",
					Inner:   sampleInner{Kind: "switch", Count: 3},
					Blob:    [4]byte{0xde, 0xad, 0xbe, 0xef},
					Words:   [3]uint16{1, 2, 3},
				},
				Diagnostics: []diag.Diagnostic{diag.LookupMiss("NodeType", "0x07", "Unknown")},
				Raw:         []byte("SA"),
			},
			{
				Attribute:   "PathRecord",
				AttributeID: 0x0035,
				Index:       1,
				Offset:      64,
				Error:       "datagram: read of 64 bytes at offset 64 exceeds buffer of 100 bytes",
			},
		},
	}
}

func TestFlatten(t *testing.T) {
	fields := Flatten(newSampleReport().Records[0].Record)
	got := make(map[string]string, len(fields))
	for _, f := range fields {
		got[f.Name] = f.Value
	}

	want := map[string]string{
		"LID":            "7",
		"GUID":           "0x11750000000001",
		"Enabled":        "true",
		"Name":           "node-1",
		"Inner.Kind":     "switch",
		"Blob":           "deadbeef",
		"Words":          "[1 2 3]",
		"Pairs[1].Count": "0",
		"Many[9]":        "{Kind: Count:0}",
		"Optional":       "<nil>",
	}
	for name, value := range want {
		if got[name] != value {
			t.Errorf("field %s = %q, want %q", name, got[name], value)
		}
	}
	if _, ok := got["hidden"]; ok {
		t.Errorf("unexported field should be skipped")
	}
	if fields[0].Name != "LID" {
		t.Errorf("fields should keep declaration order, first = %s", fields[0].Name)
	}
	if Flatten(nil) != nil {
		t.Errorf("Flatten(nil) should be empty")
	}
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, newSampleReport(), "text", Options{HexDump: true}); err != nil {
		t.Fatalf("Write text failed: %v", err)
	}
	output := buf.String()

	for _, want := range []string{
		"SA Decode Report",
		"Records: 1 decoded, 1 failed",
		"NodeRecord #0 (0x0011) offset=0 length=116",
		"Inner.Kind:",
		"node-1",
		"warning: lookup_miss NodeType [0x07]",
		"PathRecord #1 (0x0035) offset=64",
		"error: datagram: read of 64 bytes",
		"0000: 53 41",
		"|SA|",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output:\n%s", want, output)
		}
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, newSampleReport(), "json", Options{HexDump: true}); err != nil {
		t.Fatalf("Write json failed: %v", err)
	}

	var decoded struct {
		Source  string `json:"source"`
		Records []struct {
			Attribute   string            `json:"attribute"`
			AttributeID uint16            `json:"attribute_id"`
			Record      map[string]any    `json:"record"`
			Diagnostics []diag.Diagnostic `json:"diagnostics"`
			Error       string            `json:"error"`
			RawHex      string            `json:"raw_hex"`
		} `json:"records"`
	}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("Output is not valid JSON: %v", err)
	}
	if decoded.Source != "hex" || len(decoded.Records) != 2 {
		t.Fatalf("unexpected report: %+v", decoded)
	}
	first := decoded.Records[0]
	if first.AttributeID != 0x11 || first.Record["Name"] != "node-1" {
		t.Errorf("unexpected first record: %+v", first)
	}
	if first.RawHex != "5341" {
		t.Errorf("RawHex = %q, want 5341", first.RawHex)
	}
	if len(first.Diagnostics) != 1 || first.Diagnostics[0].Kind != diag.KindLookupMiss {
		t.Errorf("unexpected diagnostics: %+v", first.Diagnostics)
	}
	if decoded.Records[1].Error == "" {
		t.Errorf("expected error on second record")
	}
}

func TestWriteYAML(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, newSampleReport(), "yaml", Options{}); err != nil {
		t.Fatalf("Write yaml failed: %v", err)
	}

	var decoded map[string]any
	if err := yaml.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("Output is not valid YAML: %v", err)
	}
	if decoded["byte_order"] != "big" {
		t.Errorf("byte_order = %v, want big", decoded["byte_order"])
	}
	records, ok := decoded["records"].([]any)
	if !ok || len(records) != 2 {
		t.Fatalf("unexpected records: %v", decoded["records"])
	}
	if strings.Contains(buf.String(), "raw_hex") {
		t.Errorf("raw_hex should be omitted without hex dump")
	}
}

func TestWriteUnknownFormat(t *testing.T) {
	if err := Write(&bytes.Buffer{}, newSampleReport(), "xml", Options{}); err == nil {
		t.Fatalf("expected error for unknown format")
	}
}
