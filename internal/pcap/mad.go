package pcap

// Management datagram and subnet administration headers

import (
	"encoding/binary"
	"fmt"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
)

// Sizes of a management datagram and its SA headers.
const (
	MADLen        = 256
	MADHeaderLen  = 24
	RMPPHeaderLen = 12
	SAHeaderLen   = 20
	SAHeadersLen  = MADHeaderLen + RMPPHeaderLen + SAHeaderLen
	SADataLen     = MADLen - SAHeadersLen
)

// MgmtClassSubnAdm is the subnet administration management class.
const MgmtClassSubnAdm uint8 = 0x03

// MAD method codes. The response bit is 0x80.
const (
	MethodGet           uint8 = 0x01
	MethodSet           uint8 = 0x02
	MethodReport        uint8 = 0x06
	MethodGetTable      uint8 = 0x12
	MethodGetTraceTable uint8 = 0x13
	MethodGetMulti      uint8 = 0x14
	MethodDelete        uint8 = 0x15
	MethodResponse      uint8 = 0x80
)

// Response methods.
const (
	MethodGetResp      = MethodGet | MethodResponse
	MethodReportResp   = MethodReport | MethodResponse
	MethodGetTableResp = MethodGetTable | MethodResponse
	MethodGetMultiResp = MethodGetMulti | MethodResponse
	MethodDeleteResp   = MethodDelete | MethodResponse
)

var methodNames = map[uint8]string{
	MethodGet:           "Get",
	MethodSet:           "Set",
	MethodReport:        "Report",
	MethodGetTable:      "GetTable",
	MethodGetTraceTable: "GetTraceTable",
	MethodGetMulti:      "GetMulti",
	MethodDelete:        "Delete",
}

// MethodName returns the name of a MAD method, with a "Resp" suffix for
// responses.
func MethodName(method uint8) string {
	name, ok := methodNames[method&^MethodResponse]
	if !ok {
		name = fmt.Sprintf("Unknown(0x%02x)", method&^MethodResponse)
	}
	if method&MethodResponse != 0 {
		name += "Resp"
	}
	return name
}

// MAD is the common management datagram header.
type MAD struct {
	layers.BaseLayer
	BaseVersion       uint8
	MgmtClass         uint8
	ClassVersion      uint8
	Method            uint8
	Status            uint16
	ClassSpecific     uint16
	TID               uint64
	AttributeID       uint16
	AttributeModifier uint32
}

func (m *MAD) LayerType() gopacket.LayerType  { return LayerTypeMAD }
func (m *MAD) CanDecode() gopacket.LayerClass { return LayerTypeMAD }

// IsResponse reports whether the response bit of the method is set.
func (m *MAD) IsResponse() bool {
	return m.Method&MethodResponse != 0
}

func (m *MAD) NextLayerType() gopacket.LayerType {
	if m.MgmtClass == MgmtClassSubnAdm {
		return LayerTypeSA
	}
	return gopacket.LayerTypePayload
}

func (m *MAD) DecodeFromBytes(data []byte, df gopacket.DecodeFeedback) error {
	if len(data) < MADHeaderLen {
		return short("MAD", MADHeaderLen, len(data), df)
	}
	m.BaseVersion = data[0]
	m.MgmtClass = data[1]
	m.ClassVersion = data[2]
	m.Method = data[3]
	m.Status = binary.BigEndian.Uint16(data[4:6])
	m.ClassSpecific = binary.BigEndian.Uint16(data[6:8])
	m.TID = binary.BigEndian.Uint64(data[8:16])
	m.AttributeID = binary.BigEndian.Uint16(data[16:18])
	m.AttributeModifier = binary.BigEndian.Uint32(data[20:24])
	m.Contents = data[:MADHeaderLen]
	m.Payload = data[MADHeaderLen:]
	return nil
}

func (m *MAD) SerializeTo(b gopacket.SerializeBuffer, opts gopacket.SerializeOptions) error {
	bytes, err := b.PrependBytes(MADHeaderLen)
	if err != nil {
		return err
	}
	bytes[0] = m.BaseVersion
	bytes[1] = m.MgmtClass
	bytes[2] = m.ClassVersion
	bytes[3] = m.Method
	binary.BigEndian.PutUint16(bytes[4:6], m.Status)
	binary.BigEndian.PutUint16(bytes[6:8], m.ClassSpecific)
	binary.BigEndian.PutUint64(bytes[8:16], m.TID)
	binary.BigEndian.PutUint16(bytes[16:18], m.AttributeID)
	bytes[18], bytes[19] = 0, 0
	binary.BigEndian.PutUint32(bytes[20:24], m.AttributeModifier)
	return nil
}

func decodeMAD(data []byte, p gopacket.PacketBuilder) error {
	return decodeWith(&MAD{}, data, p)
}

// RMPP packet types.
const (
	RMPPTypeData  uint8 = 1
	RMPPTypeAck   uint8 = 2
	RMPPTypeStop  uint8 = 3
	RMPPTypeAbort uint8 = 4
)

// RMPP flag bits.
const (
	RMPPFlagActive uint8 = 0x1
	RMPPFlagFirst  uint8 = 0x2
	RMPPFlagLast   uint8 = 0x4
)

// SA carries the RMPP header and the SA class header. Its payload is the
// attribute data of this segment.
type SA struct {
	layers.BaseLayer
	RMPPVersion     uint8
	RMPPType        uint8
	RRespTime       uint8
	RMPPFlags       uint8
	RMPPStatus      uint8
	Data1           uint32 // segment number for DATA packets
	Data2           uint32 // payload length for first and last DATA packets
	SMKey           uint64
	AttributeOffset uint16 // record stride in 8-byte units
	ComponentMask   uint64
}

func (s *SA) LayerType() gopacket.LayerType     { return LayerTypeSA }
func (s *SA) CanDecode() gopacket.LayerClass    { return LayerTypeSA }
func (s *SA) NextLayerType() gopacket.LayerType { return gopacket.LayerTypePayload }

// Payload returns the attribute data carried by this segment.
func (s *SA) Payload() []byte { return s.BaseLayer.Payload }

// Active reports whether the datagram is part of an RMPP transfer.
func (s *SA) Active() bool { return s.RMPPFlags&RMPPFlagActive != 0 }

// First reports whether this is the first segment of a transfer.
func (s *SA) First() bool { return s.RMPPFlags&RMPPFlagFirst != 0 }

// Last reports whether this is the last segment of a transfer.
func (s *SA) Last() bool { return s.RMPPFlags&RMPPFlagLast != 0 }

// Segment returns the RMPP segment number.
func (s *SA) Segment() uint32 { return s.Data1 }

// PayloadLength returns the RMPP payload length field.
func (s *SA) PayloadLength() uint32 { return s.Data2 }

func (s *SA) DecodeFromBytes(data []byte, df gopacket.DecodeFeedback) error {
	const n = RMPPHeaderLen + SAHeaderLen
	if len(data) < n {
		return short("SA", n, len(data), df)
	}
	s.RMPPVersion = data[0]
	s.RMPPType = data[1]
	s.RRespTime = data[2] >> 3
	s.RMPPFlags = data[2] & 0x07
	s.RMPPStatus = data[3]
	s.Data1 = binary.BigEndian.Uint32(data[4:8])
	s.Data2 = binary.BigEndian.Uint32(data[8:12])
	s.SMKey = binary.BigEndian.Uint64(data[12:20])
	s.AttributeOffset = binary.BigEndian.Uint16(data[20:22])
	s.ComponentMask = binary.BigEndian.Uint64(data[24:32])

	end := len(data)
	if end > n+SADataLen {
		end = n + SADataLen
	}
	s.Contents = data[:n]
	s.BaseLayer.Payload = data[n:end]
	return nil
}

func (s *SA) SerializeTo(b gopacket.SerializeBuffer, opts gopacket.SerializeOptions) error {
	bytes, err := b.PrependBytes(RMPPHeaderLen + SAHeaderLen)
	if err != nil {
		return err
	}
	bytes[0] = s.RMPPVersion
	bytes[1] = s.RMPPType
	bytes[2] = s.RRespTime<<3 | s.RMPPFlags&0x07
	bytes[3] = s.RMPPStatus
	binary.BigEndian.PutUint32(bytes[4:8], s.Data1)
	binary.BigEndian.PutUint32(bytes[8:12], s.Data2)
	binary.BigEndian.PutUint64(bytes[12:20], s.SMKey)
	binary.BigEndian.PutUint16(bytes[20:22], s.AttributeOffset)
	bytes[22], bytes[23] = 0, 0
	binary.BigEndian.PutUint64(bytes[24:32], s.ComponentMask)
	return nil
}

func decodeSA(data []byte, p gopacket.PacketBuilder) error {
	s := &SA{}
	if err := s.DecodeFromBytes(data, p); err != nil {
		return err
	}
	p.AddLayer(s)
	p.SetApplicationLayer(s)
	return nil
}
