package pcap

// InfiniBand transport headers as gopacket layers

import (
	"encoding/binary"
	"fmt"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
)

// LinkTypeInfiniBand is the pcap link type of raw InfiniBand packets,
// starting at the local route header.
const LinkTypeInfiniBand layers.LinkType = 247

// Header lengths in bytes.
const (
	LRHLen  = 8
	GRHLen  = 40
	BTHLen  = 12
	DETHLen = 8
	ICRCLen = 4
)

// Link next header values.
const (
	LNHRaw       uint8 = 0
	LNHIPv6      uint8 = 1
	LNHIBALocal  uint8 = 2
	LNHIBAGlobal uint8 = 3
)

// GRHNextHeaderIBA is the GRH next header value announcing a BTH.
const GRHNextHeaderIBA uint8 = 0x1B

// OpUDSendOnly is the BTH opcode carrying management datagrams.
const OpUDSendOnly uint8 = 0x64

var (
	LayerTypeLRH  = gopacket.RegisterLayerType(1970, gopacket.LayerTypeMetadata{Name: "IB-LRH", Decoder: gopacket.DecodeFunc(decodeLRH)})
	LayerTypeGRH  = gopacket.RegisterLayerType(1971, gopacket.LayerTypeMetadata{Name: "IB-GRH", Decoder: gopacket.DecodeFunc(decodeGRH)})
	LayerTypeBTH  = gopacket.RegisterLayerType(1972, gopacket.LayerTypeMetadata{Name: "IB-BTH", Decoder: gopacket.DecodeFunc(decodeBTH)})
	LayerTypeDETH = gopacket.RegisterLayerType(1973, gopacket.LayerTypeMetadata{Name: "IB-DETH", Decoder: gopacket.DecodeFunc(decodeDETH)})
	LayerTypeMAD  = gopacket.RegisterLayerType(1974, gopacket.LayerTypeMetadata{Name: "IB-MAD", Decoder: gopacket.DecodeFunc(decodeMAD)})
	LayerTypeSA   = gopacket.RegisterLayerType(1975, gopacket.LayerTypeMetadata{Name: "IB-SA", Decoder: gopacket.DecodeFunc(decodeSA)})
)

// decodingLayer is implemented by every layer in this package.
type decodingLayer interface {
	gopacket.Layer
	DecodeFromBytes(data []byte, df gopacket.DecodeFeedback) error
	NextLayerType() gopacket.LayerType
}

func decodeWith(l decodingLayer, data []byte, p gopacket.PacketBuilder) error {
	if err := l.DecodeFromBytes(data, p); err != nil {
		return err
	}
	p.AddLayer(l)
	return p.NextDecoder(l.NextLayerType())
}

func short(name string, want, got int, df gopacket.DecodeFeedback) error {
	df.SetTruncated()
	return fmt.Errorf("%s: need %d bytes, have %d", name, want, got)
}

// LRH is the local route header.
type LRH struct {
	layers.BaseLayer
	VL     uint8
	LVer   uint8
	SL     uint8
	LNH    uint8
	DLID   uint16
	PktLen uint16 // 4-byte words from the LRH through the ICRC
	SLID   uint16
}

func (l *LRH) LayerType() gopacket.LayerType     { return LayerTypeLRH }
func (l *LRH) CanDecode() gopacket.LayerClass    { return LayerTypeLRH }
func (l *LRH) LinkFlow() gopacket.Flow           { return lidFlow(l.SLID, l.DLID) }
func (l *LRH) NextLayerType() gopacket.LayerType { return lnhLayer(l.LNH) }

func lnhLayer(lnh uint8) gopacket.LayerType {
	switch lnh {
	case LNHIBALocal:
		return LayerTypeBTH
	case LNHIBAGlobal:
		return LayerTypeGRH
	default:
		return gopacket.LayerTypePayload
	}
}

// DecodeFromBytes decodes the LRH. The payload stops before the ICRC when
// PktLen fits the captured bytes, which also drops the trailing VCRC.
func (l *LRH) DecodeFromBytes(data []byte, df gopacket.DecodeFeedback) error {
	if len(data) < LRHLen {
		return short("LRH", LRHLen, len(data), df)
	}
	l.VL = data[0] >> 4
	l.LVer = data[0] & 0x0f
	l.SL = data[1] >> 4
	l.LNH = data[1] & 0x03
	l.DLID = binary.BigEndian.Uint16(data[2:4])
	l.PktLen = binary.BigEndian.Uint16(data[4:6]) & 0x07ff
	l.SLID = binary.BigEndian.Uint16(data[6:8])

	end := len(data)
	if n := int(l.PktLen) * 4; n >= LRHLen+ICRCLen && n <= len(data) {
		end = n - ICRCLen
	}
	l.Contents = data[:LRHLen]
	l.Payload = data[LRHLen:end]
	return nil
}

// SerializeTo writes the LRH. With FixLengths, PktLen covers the bytes
// already in b plus a 4-byte ICRC the caller appends.
func (l *LRH) SerializeTo(b gopacket.SerializeBuffer, opts gopacket.SerializeOptions) error {
	payload := len(b.Bytes())
	bytes, err := b.PrependBytes(LRHLen)
	if err != nil {
		return err
	}
	if opts.FixLengths {
		l.PktLen = uint16((LRHLen + payload + ICRCLen + 3) / 4)
	}
	bytes[0] = l.VL<<4 | l.LVer&0x0f
	bytes[1] = l.SL<<4 | l.LNH&0x03
	binary.BigEndian.PutUint16(bytes[2:4], l.DLID)
	binary.BigEndian.PutUint16(bytes[4:6], l.PktLen&0x07ff)
	binary.BigEndian.PutUint16(bytes[6:8], l.SLID)
	return nil
}

func decodeLRH(data []byte, p gopacket.PacketBuilder) error {
	l := &LRH{}
	if err := l.DecodeFromBytes(data, p); err != nil {
		return err
	}
	p.AddLayer(l)
	p.SetLinkLayer(l)
	return p.NextDecoder(l.NextLayerType())
}

// GRH is the global route header.
type GRH struct {
	layers.BaseLayer
	IPVer     uint8
	TClass    uint8
	FlowLabel uint32
	PayLen    uint16
	NxtHdr    uint8
	HopLmt    uint8
	SGID      [16]byte
	DGID      [16]byte
}

func (g *GRH) LayerType() gopacket.LayerType  { return LayerTypeGRH }
func (g *GRH) CanDecode() gopacket.LayerClass { return LayerTypeGRH }

func (g *GRH) NextLayerType() gopacket.LayerType {
	if g.NxtHdr == GRHNextHeaderIBA {
		return LayerTypeBTH
	}
	return gopacket.LayerTypePayload
}

func (g *GRH) DecodeFromBytes(data []byte, df gopacket.DecodeFeedback) error {
	if len(data) < GRHLen {
		return short("GRH", GRHLen, len(data), df)
	}
	word := binary.BigEndian.Uint32(data[0:4])
	g.IPVer = uint8(word >> 28)
	g.TClass = uint8(word >> 20)
	g.FlowLabel = word & 0x000fffff
	g.PayLen = binary.BigEndian.Uint16(data[4:6])
	g.NxtHdr = data[6]
	g.HopLmt = data[7]
	copy(g.SGID[:], data[8:24])
	copy(g.DGID[:], data[24:40])
	g.Contents = data[:GRHLen]
	g.Payload = data[GRHLen:]
	return nil
}

// SerializeTo writes the GRH. With FixLengths, PayLen covers the bytes
// already in b plus the ICRC.
func (g *GRH) SerializeTo(b gopacket.SerializeBuffer, opts gopacket.SerializeOptions) error {
	payload := len(b.Bytes())
	bytes, err := b.PrependBytes(GRHLen)
	if err != nil {
		return err
	}
	if opts.FixLengths {
		g.PayLen = uint16(payload + ICRCLen)
	}
	binary.BigEndian.PutUint32(bytes[0:4], uint32(g.IPVer)<<28|uint32(g.TClass)<<20|g.FlowLabel&0x000fffff)
	binary.BigEndian.PutUint16(bytes[4:6], g.PayLen)
	bytes[6] = g.NxtHdr
	bytes[7] = g.HopLmt
	copy(bytes[8:24], g.SGID[:])
	copy(bytes[24:40], g.DGID[:])
	return nil
}

func decodeGRH(data []byte, p gopacket.PacketBuilder) error {
	return decodeWith(&GRH{}, data, p)
}

// BTH is the base transport header.
type BTH struct {
	layers.BaseLayer
	OpCode uint8
	SE     bool
	M      bool
	PadCnt uint8
	TVer   uint8
	PKey   uint16
	DestQP uint32
	AckReq bool
	PSN    uint32
}

func (h *BTH) LayerType() gopacket.LayerType  { return LayerTypeBTH }
func (h *BTH) CanDecode() gopacket.LayerClass { return LayerTypeBTH }

// IsUD reports whether the opcode belongs to the unreliable datagram
// transport, the only one followed by a DETH.
func (h *BTH) IsUD() bool {
	return h.OpCode>>5 == 0x3
}

func (h *BTH) NextLayerType() gopacket.LayerType {
	if h.IsUD() {
		return LayerTypeDETH
	}
	return gopacket.LayerTypePayload
}

func (h *BTH) DecodeFromBytes(data []byte, df gopacket.DecodeFeedback) error {
	if len(data) < BTHLen {
		return short("BTH", BTHLen, len(data), df)
	}
	h.OpCode = data[0]
	h.SE = data[1]&0x80 != 0
	h.M = data[1]&0x40 != 0
	h.PadCnt = (data[1] >> 4) & 0x03
	h.TVer = data[1] & 0x0f
	h.PKey = binary.BigEndian.Uint16(data[2:4])
	h.DestQP = binary.BigEndian.Uint32(data[4:8]) & 0x00ffffff
	h.AckReq = data[8]&0x80 != 0
	h.PSN = binary.BigEndian.Uint32(data[8:12]) & 0x00ffffff
	h.Contents = data[:BTHLen]
	h.Payload = data[BTHLen:]
	return nil
}

func (h *BTH) SerializeTo(b gopacket.SerializeBuffer, opts gopacket.SerializeOptions) error {
	bytes, err := b.PrependBytes(BTHLen)
	if err != nil {
		return err
	}
	bytes[0] = h.OpCode
	bytes[1] = h.PadCnt&0x03<<4 | h.TVer&0x0f
	if h.SE {
		bytes[1] |= 0x80
	}
	if h.M {
		bytes[1] |= 0x40
	}
	binary.BigEndian.PutUint16(bytes[2:4], h.PKey)
	binary.BigEndian.PutUint32(bytes[4:8], h.DestQP&0x00ffffff)
	binary.BigEndian.PutUint32(bytes[8:12], h.PSN&0x00ffffff)
	if h.AckReq {
		bytes[8] |= 0x80
	}
	return nil
}

func decodeBTH(data []byte, p gopacket.PacketBuilder) error {
	return decodeWith(&BTH{}, data, p)
}

// DETH is the datagram extended transport header.
type DETH struct {
	layers.BaseLayer
	QKey  uint32
	SrcQP uint32
}

func (d *DETH) LayerType() gopacket.LayerType     { return LayerTypeDETH }
func (d *DETH) CanDecode() gopacket.LayerClass    { return LayerTypeDETH }
func (d *DETH) NextLayerType() gopacket.LayerType { return LayerTypeMAD }

func (d *DETH) DecodeFromBytes(data []byte, df gopacket.DecodeFeedback) error {
	if len(data) < DETHLen {
		return short("DETH", DETHLen, len(data), df)
	}
	d.QKey = binary.BigEndian.Uint32(data[0:4])
	d.SrcQP = binary.BigEndian.Uint32(data[4:8]) & 0x00ffffff
	d.Contents = data[:DETHLen]
	d.Payload = data[DETHLen:]
	return nil
}

func (d *DETH) SerializeTo(b gopacket.SerializeBuffer, opts gopacket.SerializeOptions) error {
	bytes, err := b.PrependBytes(DETHLen)
	if err != nil {
		return err
	}
	binary.BigEndian.PutUint32(bytes[0:4], d.QKey)
	binary.BigEndian.PutUint32(bytes[4:8], d.SrcQP&0x00ffffff)
	return nil
}

func decodeDETH(data []byte, p gopacket.PacketBuilder) error {
	return decodeWith(&DETH{}, data, p)
}

// lidEndpoint is the endpoint type for 16-bit local identifiers.
var lidEndpoint = gopacket.RegisterEndpointType(1970, gopacket.EndpointTypeMetadata{
	Name: "IB-LID",
	Formatter: func(b []byte) string {
		return fmt.Sprintf("0x%04x", binary.BigEndian.Uint16(b))
	},
})

func lidFlow(src, dst uint16) gopacket.Flow {
	var s, d [2]byte
	binary.BigEndian.PutUint16(s[:], src)
	binary.BigEndian.PutUint16(d[:], dst)
	return gopacket.NewFlow(lidEndpoint, s[:], d[:])
}
