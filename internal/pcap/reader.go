package pcap

// Extraction of SA attribute payloads from InfiniBand captures

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcapgo"
)

// Packet dispositions reported to Extractor.OnPacket.
const (
	DispositionSA           = "sa"
	DispositionSkipped      = "skipped"
	DispositionMalformed    = "malformed"
	DispositionReassembling = "reassembling"
)

// SAPayload is the attribute data of one SA response, reassembled when it
// spanned several RMPP segments.
type SAPayload struct {
	Timestamp         time.Time
	SLID              uint16
	DLID              uint16
	TID               uint64
	Method            uint8
	Status            uint16
	AttributeID       uint16
	AttributeModifier uint32
	AttributeOffset   uint16 // record stride in 8-byte units, 0 for single records
	Segments          int
	Data              []byte
	MAD               []byte // first segment from the MAD header on
}

// Stats counts what an extraction saw.
type Stats struct {
	Packets    int
	SA         int
	Skipped    int
	Malformed  int
	Payloads   int
	Incomplete []uint64 // transaction ids left without a last segment
}

// Extractor pulls SA payloads out of a capture.
type Extractor struct {
	// Attribute keeps only payloads with this attribute id when non-zero.
	Attribute uint16
	// IncludeRequests keeps request MADs as well as responses.
	IncludeRequests bool
	// Max stops after this many payloads when positive.
	Max int
	// OnPacket is called once per packet with its disposition.
	OnPacket func(disposition string)

	stats Stats
	rmpp  *reassembler
}

// Stats returns the counters of the last extraction.
func (e *Extractor) Stats() Stats {
	return e.stats
}

// ExtractFile opens a pcap file and extracts its SA payloads.
func (e *Extractor) ExtractFile(path string) ([]SAPayload, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pcap file: %w", err)
	}
	defer f.Close()
	return e.Extract(f)
}

// captureReader is satisfied by both pcapgo readers.
type captureReader interface {
	gopacket.PacketDataSource
	LinkType() layers.LinkType
}

var pcapngMagic = []byte{0x0a, 0x0d, 0x0d, 0x0a}

func openCapture(r io.Reader) (captureReader, error) {
	br := bufio.NewReader(r)
	magic, err := br.Peek(4)
	if err != nil {
		return nil, fmt.Errorf("read capture magic: %w", err)
	}
	if bytes.Equal(magic, pcapngMagic) {
		reader, err := pcapgo.NewNgReader(br, pcapgo.DefaultNgReaderOptions)
		if err != nil {
			return nil, fmt.Errorf("read pcapng header: %w", err)
		}
		return reader, nil
	}
	reader, err := pcapgo.NewReader(br)
	if err != nil {
		return nil, fmt.Errorf("read pcap header: %w", err)
	}
	return reader, nil
}

// Extract reads a pcap or pcapng stream of link type InfiniBand and returns
// its SA payloads in completion order.
func (e *Extractor) Extract(r io.Reader) ([]SAPayload, error) {
	reader, err := openCapture(r)
	if err != nil {
		return nil, err
	}
	if lt := reader.LinkType(); lt != LinkTypeInfiniBand {
		return nil, fmt.Errorf("unsupported link type %d, want %d (InfiniBand)", lt, LinkTypeInfiniBand)
	}

	e.stats = Stats{}
	e.rmpp = newReassembler()

	source := gopacket.NewPacketSource(reader, LayerTypeLRH)
	var payloads []SAPayload
	for e.Max <= 0 || len(payloads) < e.Max {
		packet, err := source.NextPacket()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return payloads, fmt.Errorf("read packet %d: %w", e.stats.Packets+1, err)
		}
		e.stats.Packets++

		p, disposition := e.handle(packet)
		e.count(disposition)
		if disposition == DispositionSA {
			e.stats.Payloads++
			payloads = append(payloads, p)
		}
	}

	e.stats.Incomplete = e.rmpp.incomplete()
	return payloads, nil
}

func (e *Extractor) count(disposition string) {
	switch disposition {
	case DispositionSA, DispositionReassembling:
		e.stats.SA++
	case DispositionSkipped:
		e.stats.Skipped++
	case DispositionMalformed:
		e.stats.Malformed++
	}
	if e.OnPacket != nil {
		e.OnPacket(disposition)
	}
}

func (e *Extractor) handle(packet gopacket.Packet) (SAPayload, string) {
	if packet.ErrorLayer() != nil {
		return SAPayload{}, DispositionMalformed
	}
	saLayer, _ := packet.Layer(LayerTypeSA).(*SA)
	mad, _ := packet.Layer(LayerTypeMAD).(*MAD)
	lrh, _ := packet.Layer(LayerTypeLRH).(*LRH)
	if saLayer == nil || mad == nil || lrh == nil {
		return SAPayload{}, DispositionSkipped
	}
	if !mad.IsResponse() && !e.IncludeRequests {
		return SAPayload{}, DispositionSkipped
	}
	if e.Attribute != 0 && mad.AttributeID != e.Attribute {
		return SAPayload{}, DispositionSkipped
	}

	p := SAPayload{
		Timestamp:         packet.Metadata().Timestamp,
		SLID:              lrh.SLID,
		DLID:              lrh.DLID,
		TID:               mad.TID,
		Method:            mad.Method,
		Status:            mad.Status,
		AttributeID:       mad.AttributeID,
		AttributeModifier: mad.AttributeModifier,
		AttributeOffset:   saLayer.AttributeOffset,
		Segments:          1,
		Data:              append([]byte(nil), saLayer.Payload()...),
		MAD:               append([]byte(nil), mad.Contents...),
	}
	p.MAD = append(p.MAD, mad.Payload...)

	if !saLayer.Active() {
		return p, DispositionSA
	}
	full, ok := e.rmpp.add(p, saLayer)
	if !ok {
		return SAPayload{}, DispositionReassembling
	}
	return full, DispositionSA
}
