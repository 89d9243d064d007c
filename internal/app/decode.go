package app

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/tturner/sadecode/internal/diag"
	"github.com/tturner/sadecode/internal/errors"
	"github.com/tturner/sadecode/internal/metrics"
	"github.com/tturner/sadecode/internal/report"
	"github.com/tturner/sadecode/internal/sa"
)

// DecodeOptions selects the attribute and the bytes to decode.
type DecodeOptions struct {
	Attr       string
	Hex        string
	File       string // "-" reads stdin
	Stdin      io.Reader
	Offset     int
	MsgLen     int
	Table      bool
	AttrOffset uint16
}

// RunDecode decodes one record, or a table of records, from hex text or a
// binary file and renders the result.
func RunDecode(env *Env, opts DecodeOptions) error {
	codec, err := sa.ParseAttr(opts.Attr)
	if err != nil {
		return errors.WrapInputError(err, "--attr")
	}

	data, source, src, err := loadInput(opts)
	if err != nil {
		return err
	}
	env.Logger.LogHex("input", data)
	if opts.Offset < 0 || opts.Offset > len(data) {
		return errors.WrapInputError(fmt.Errorf("offset %d outside input of %d bytes", opts.Offset, len(data)), "--offset")
	}

	rep := env.newReport(source)
	if opts.Table {
		rep.Records, err = decodeTable(env, src, codec, data[opts.Offset:], opts.AttrOffset, opts.Offset)
		if err != nil {
			return errors.WrapDecodeError(err, codec.Name, opts.Offset)
		}
	} else {
		msgLen := opts.MsgLen
		if msgLen == 0 {
			msgLen = len(data) - opts.Offset
		}
		rep.Records = append(rep.Records, decodeOne(env, src, codec, data, opts.Offset, msgLen))
	}

	if err := env.write(rep); err != nil {
		return err
	}
	if _, failed := rep.Counts(); failed > 0 {
		return fmt.Errorf("%d of %d records failed to decode", failed, len(rep.Records))
	}
	return nil
}

func loadInput(opts DecodeOptions) ([]byte, string, metrics.Source, error) {
	switch {
	case opts.Hex != "" && opts.File != "":
		return nil, "", "", errors.WrapInputError(fmt.Errorf("--hex and --file are mutually exclusive"), "flags")
	case opts.Hex != "":
		data, err := ParseHex(opts.Hex)
		if err != nil {
			return nil, "", "", errors.WrapInputError(err, "--hex")
		}
		return data, "hex", metrics.SourceHex, nil
	case opts.File == "-":
		in := opts.Stdin
		if in == nil {
			in = os.Stdin
		}
		data, err := io.ReadAll(in)
		if err != nil {
			return nil, "", "", errors.WrapInputError(err, "stdin")
		}
		return data, "stdin", metrics.SourceFile, nil
	case opts.File != "":
		data, err := os.ReadFile(opts.File)
		if err != nil {
			return nil, "", "", errors.WrapInputError(err, opts.File)
		}
		return data, opts.File, metrics.SourceFile, nil
	default:
		return nil, "", "", errors.WrapInputError(fmt.Errorf("no input given"), "flags")
	}
}

var hexSeparators = strings.NewReplacer(" ", "", "\n", "", "\r", "", "\t", "", ":", "", "-", "", "0x", "", "0X", "")

// ParseHex decodes hex text, ignoring whitespace, colons, dashes and 0x
// prefixes.
func ParseHex(s string) ([]byte, error) {
	clean := hexSeparators.Replace(s)
	if len(clean)%2 != 0 {
		return nil, fmt.Errorf("odd number of hex digits (%d)", len(clean))
	}
	data, err := hex.DecodeString(clean)
	if err != nil {
		return nil, fmt.Errorf("invalid hex: %w", err)
	}
	return data, nil
}

// decodeOne decodes the record at off with its own diagnostics collector
// and records the outcome with the logger and the metrics sink.
func decodeOne(env *Env, src metrics.Source, codec sa.Codec, buf []byte, off, msgLen int) report.RecordReport {
	diags := diag.NewCollector()
	d := sa.NewDecoder(env.Order, diags)

	start := time.Now()
	rec, err := codec.Decode(d, buf, off, msgLen)
	elapsed := time.Since(start)

	length := codec.Len
	if codec.Variable {
		length = msgLen
	}
	items := diags.Items()
	env.Logger.LogDecode(codec.Name, off, length, items, err)

	m := metrics.Metric{
		Timestamp: start,
		Source:    src,
		Attribute: codec.Name,
		Offset:    off,
		Bytes:     length,
		Success:   err == nil,
		Duration:  elapsed,
	}.WithDiagnostics(items)

	rr := report.RecordReport{
		Attribute:   codec.Name,
		AttributeID: codec.ID,
		Offset:      off,
		Length:      length,
		Diagnostics: items,
	}
	if err != nil {
		m.Error = err.Error()
		rr.Error = errors.WrapDecodeError(err, codec.Name, off).Error()
	} else {
		rr.Record = rec
		if off+length <= len(buf) {
			rr.Raw = buf[off : off+length]
		}
	}
	env.Metrics.Record(m)
	return rr
}

// decodeTable decodes every record of a GetTable payload. base is added to
// the reported offsets.
func decodeTable(env *Env, src metrics.Source, codec sa.Codec, payload []byte, attrOffset uint16, base int) ([]report.RecordReport, error) {
	offsets, stride, err := sa.TableOffsets(codec, len(payload), attrOffset)
	if err != nil {
		return nil, err
	}
	env.Logger.Verbose("%s table: %d records, stride %d", codec.Name, len(offsets), stride)

	out := make([]report.RecordReport, 0, len(offsets))
	for i, off := range offsets {
		rr := decodeOne(env, src, codec, payload, off, sa.TableMsgLen(len(payload), off, stride))
		rr.Index = i
		rr.Offset += base
		out = append(out, rr)
	}
	return out, nil
}
