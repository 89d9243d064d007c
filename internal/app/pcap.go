package app

import (
	"fmt"

	"github.com/tturner/sadecode/internal/errors"
	"github.com/tturner/sadecode/internal/metrics"
	"github.com/tturner/sadecode/internal/pcap"
	"github.com/tturner/sadecode/internal/report"
	"github.com/tturner/sadecode/internal/sa"
)

// PCAPOptions selects the captures and the SA responses to decode.
type PCAPOptions struct {
	Input           string
	Attr            string
	Max             int
	IncludeRequests bool
}

var madSections = []report.Section{
	{Label: "MAD Header", Length: pcap.MADHeaderLen},
	{Label: "RMPP Header", Length: pcap.RMPPHeaderLen},
	{Label: "SA Header", Length: pcap.SAHeaderLen},
}

// RunPCAP extracts SA payloads from one capture or a directory of captures,
// decodes them and renders one report.
func RunPCAP(env *Env, opts PCAPOptions) error {
	var attrID uint16
	if opts.Attr != "" {
		codec, err := sa.ParseAttr(opts.Attr)
		if err != nil {
			return errors.WrapInputError(err, "--attr")
		}
		if !codec.IsAttribute() {
			return errors.WrapInputError(fmt.Errorf("%s is not an SA attribute", codec.Name), "--attr")
		}
		attrID = codec.ID
	}

	files, err := pcap.CollectCaptures(opts.Input)
	if err != nil {
		return errors.WrapCaptureError(err, opts.Input)
	}

	rep := env.newReport(opts.Input)
	remaining := opts.Max
	for _, file := range files {
		ex := &pcap.Extractor{
			Attribute:       attrID,
			IncludeRequests: opts.IncludeRequests,
			Max:             remaining,
			OnPacket:        env.Metrics.RecordPacket,
		}
		payloads, err := ex.ExtractFile(file)
		if err != nil {
			return errors.WrapCaptureError(err, file)
		}
		stats := ex.Stats()
		env.Logger.Info("%s: %d packets, %d SA, %d skipped, %d malformed, %d payloads",
			file, stats.Packets, stats.SA, stats.Skipped, stats.Malformed, stats.Payloads)
		for _, tid := range stats.Incomplete {
			env.Logger.Info("%s: incomplete RMPP transfer tid=0x%016x", file, tid)
		}

		for _, p := range payloads {
			rep.Records = append(rep.Records, decodePayload(env, p)...)
		}
		if opts.Max > 0 {
			remaining -= len(payloads)
			if remaining <= 0 {
				break
			}
		}
	}
	return env.write(rep)
}

// decodePayload decodes one SA response. Payloads carrying an attribute
// offset are GetTable responses and yield one report per record.
func decodePayload(env *Env, p pcap.SAPayload) []report.RecordReport {
	env.Logger.Debug("MAD tid=0x%016x %s\n%s", p.TID, pcap.MethodName(p.Method),
		report.AnnotatedHexDump(p.MAD, madSections, "Attribute Data"))

	codec, ok := sa.Lookup(p.AttributeID)
	if !ok || !codec.IsAttribute() {
		env.Logger.Info("tid=0x%016x: unsupported attribute 0x%04x", p.TID, p.AttributeID)
		return []report.RecordReport{{
			Attribute:   fmt.Sprintf("Unknown(0x%04x)", p.AttributeID),
			AttributeID: p.AttributeID,
			TID:         p.TID,
			Length:      len(p.Data),
			Error:       fmt.Sprintf("unsupported attribute id 0x%04x", p.AttributeID),
			Raw:         p.Data,
		}}
	}
	if p.Status != 0 {
		return []report.RecordReport{{
			Attribute:   codec.Name,
			AttributeID: codec.ID,
			TID:         p.TID,
			Error:       fmt.Sprintf("MAD status 0x%04x", p.Status),
		}}
	}

	var out []report.RecordReport
	if p.AttributeOffset != 0 {
		recs, err := decodeTable(env, metrics.SourcePCAP, codec, p.Data, p.AttributeOffset, 0)
		if err != nil {
			env.Logger.Error("tid=0x%016x: %v", p.TID, err)
			return []report.RecordReport{{
				Attribute:   codec.Name,
				AttributeID: codec.ID,
				TID:         p.TID,
				Length:      len(p.Data),
				Error:       errors.WrapDecodeError(err, codec.Name, 0).Error(),
				Raw:         p.Data,
			}}
		}
		out = recs
	} else {
		out = []report.RecordReport{decodeOne(env, metrics.SourcePCAP, codec, p.Data, 0, len(p.Data))}
	}
	for i := range out {
		out[i].TID = p.TID
		out[i].Captured = report.FormatTimestamp(p.Timestamp)
	}
	return out
}
