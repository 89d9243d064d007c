package sa

import (
	"encoding/binary"

	"github.com/tturner/sadecode/internal/datagram"
)

const (
	PathRecordLen = 64

	pathDGIDOffset = 8
	pathSGIDOffset = 24
)

var (
	prRawTraffic  = datagram.Flag[uint32]{Bit: 31}
	prFlowLabel   = datagram.Bits[uint32]{Shift: 8, Width: 20}
	prHopLimit    = datagram.Bits[uint32]{Shift: 0, Width: 8}
	prReversible  = datagram.Flag[uint8]{Bit: 7}
	prNumbPath    = datagram.Bits[uint8]{Shift: 0, Width: 7}
	prQosType     = datagram.Bits[uint16]{Shift: 14, Width: 2}
	prQosPriority = datagram.Bits[uint16]{Shift: 4, Width: 8}
	prSL          = datagram.Bits[uint16]{Shift: 0, Width: 4}
	prSelector    = datagram.Bits[uint8]{Shift: 6, Width: 2}
	prValue       = datagram.Bits[uint8]{Shift: 0, Width: 6}
)

// Selected is a selector plus value pair (MTU, rate, packet lifetime).
type Selected struct {
	Selector uint8
	Value    uint8
}

func decodeSelected(b uint8) Selected {
	return Selected{Selector: prSelector.Get(b), Value: prValue.Get(b)}
}

func (s Selected) packed() uint8 {
	return prValue.Set(prSelector.Set(0, s.Selector), s.Value)
}

// PathRecord describes one path between two end ports.
type PathRecord struct {
	ServiceID   uint64
	DGID        GID
	SGID        GID
	DLID        uint16
	SLID        uint16
	RawTraffic  bool
	FlowLabel   uint32
	HopLimit    uint8
	TClass      uint8
	Reversible  bool
	NumbPath    uint8
	PKey        uint16
	QosType     uint8
	QosPriority uint8
	SL          uint8
	MTU         Selected
	Rate        Selected
	PktLifeTime Selected
	Preference  uint8
}

func decodePathRecord(v datagram.View) PathRecord {
	hop := v.U32(44)
	rev := v.U8(49)
	qos := v.U16(52)
	return PathRecord{
		ServiceID:   v.U64(0),
		DGID:        decodeGID(v.Slice(pathDGIDOffset, GIDLen)),
		SGID:        decodeGID(v.Slice(pathSGIDOffset, GIDLen)),
		DLID:        v.U16(40),
		SLID:        v.U16(42),
		RawTraffic:  prRawTraffic.Get(hop),
		FlowLabel:   prFlowLabel.Get(hop),
		HopLimit:    uint8(prHopLimit.Get(hop)),
		TClass:      v.U8(48),
		Reversible:  prReversible.Get(rev),
		NumbPath:    prNumbPath.Get(rev),
		PKey:        v.U16(50),
		QosType:     uint8(prQosType.Get(qos)),
		QosPriority: uint8(prQosPriority.Get(qos)),
		SL:          uint8(prSL.Get(qos)),
		MTU:         decodeSelected(v.U8(54)),
		Rate:        decodeSelected(v.U8(55)),
		PktLifeTime: decodeSelected(v.U8(56)),
		Preference:  v.U8(57),
	}
}

func (p PathRecord) put(v datagram.View) {
	v.PutU64(0, p.ServiceID)
	p.DGID.put(v.Slice(pathDGIDOffset, GIDLen))
	p.SGID.put(v.Slice(pathSGIDOffset, GIDLen))
	v.PutU16(40, p.DLID)
	v.PutU16(42, p.SLID)
	hop := prRawTraffic.Set(0, p.RawTraffic)
	hop = prFlowLabel.Set(hop, p.FlowLabel)
	v.PutU32(44, prHopLimit.Set(hop, uint32(p.HopLimit)))
	v.PutU8(48, p.TClass)
	v.PutU8(49, prNumbPath.Set(prReversible.Set(0, p.Reversible), p.NumbPath))
	v.PutU16(50, p.PKey)
	qos := prQosType.Set(0, uint16(p.QosType))
	qos = prQosPriority.Set(qos, uint16(p.QosPriority))
	v.PutU16(52, prSL.Set(qos, uint16(p.SL)))
	v.PutU8(54, p.MTU.packed())
	v.PutU8(55, p.Rate.packed())
	v.PutU8(56, p.PktLifeTime.packed())
	v.PutU8(57, p.Preference)
}

// Encode returns the 64-byte wire form. The GIDs are written as raw bytes.
func (p PathRecord) Encode(order binary.ByteOrder) []byte {
	return encode(PathRecordLen, order, p.put)
}

// PathRecord decodes a PathRecord at offset.
func (d Decoder) PathRecord(buf []byte, offset int) (PathRecord, error) {
	return decodeFixed(d, PathRecordLen, decodePathRecord, buf, offset)
}

// GID decodes a bare GID at offset.
func (d Decoder) GID(buf []byte, offset int) (GID, error) {
	return decodeFixed(d, GIDLen, decodeGID, buf, offset)
}
