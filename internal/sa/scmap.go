package sa

import (
	"encoding/binary"

	"github.com/tturner/sadecode/internal/datagram"
)

const (
	SCMapRecordLen = tableKeyLen + NumSCs
	// NumSCs is the number of service channels in a mapping table.
	NumSCs = 32
)

var scEntry = datagram.Bits[uint8]{Shift: 0, Width: 5}

// SCMap maps each of the 32 service channels (or service levels) to a 5-bit
// value.
type SCMap [NumSCs]uint8

func decodeSCMap(v datagram.View) SCMap {
	var m SCMap
	for i := range m {
		m[i] = scEntry.Get(v.U8(i))
	}
	return m
}

func (m SCMap) put(v datagram.View) {
	for i, x := range m {
		v.PutU8(i, scEntry.Set(0, x))
	}
}

// SC2SLRecord maps SCs to SLs for a node.
type SC2SLRecord struct {
	LID uint32
	SL  SCMap
}

// SL2SCRecord maps SLs to SCs for a node.
type SL2SCRecord struct {
	LID uint32
	SC  SCMap
}

// SC2VLRecord maps SCs to VLs for one port. The transmit, neighbor
// transmit and receive tables share this layout.
type SC2VLRecord struct {
	LID  uint32
	Port uint8
	VL   SCMap
}

// SC2SCRecord maps SCs between an ingress and an egress port.
type SC2SCRecord struct {
	LID     uint32
	InPort  uint8
	OutPort uint8
	SC      SCMap
}

func mapData(v datagram.View) datagram.View {
	return v.Slice(tableDataStart, NumSCs)
}

func decodeSC2SLRecord(v datagram.View) SC2SLRecord {
	return SC2SLRecord{LID: v.U32(0), SL: decodeSCMap(mapData(v))}
}

func decodeSL2SCRecord(v datagram.View) SL2SCRecord {
	return SL2SCRecord{LID: v.U32(0), SC: decodeSCMap(mapData(v))}
}

func decodeSC2VLRecord(v datagram.View) SC2VLRecord {
	return SC2VLRecord{LID: v.U32(0), Port: v.U8(4), VL: decodeSCMap(mapData(v))}
}

func decodeSC2SCRecord(v datagram.View) SC2SCRecord {
	return SC2SCRecord{LID: v.U32(0), InPort: v.U8(4), OutPort: v.U8(5), SC: decodeSCMap(mapData(v))}
}

// Encode returns the 40-byte wire form.
func (r SC2SLRecord) Encode(order binary.ByteOrder) []byte {
	return encode(SCMapRecordLen, order, func(v datagram.View) {
		v.PutU32(0, r.LID)
		r.SL.put(mapData(v))
	})
}

// Encode returns the 40-byte wire form.
func (r SL2SCRecord) Encode(order binary.ByteOrder) []byte {
	return encode(SCMapRecordLen, order, func(v datagram.View) {
		v.PutU32(0, r.LID)
		r.SC.put(mapData(v))
	})
}

// Encode returns the 40-byte wire form.
func (r SC2VLRecord) Encode(order binary.ByteOrder) []byte {
	return encode(SCMapRecordLen, order, func(v datagram.View) {
		v.PutU32(0, r.LID)
		v.PutU8(4, r.Port)
		r.VL.put(mapData(v))
	})
}

// Encode returns the 40-byte wire form.
func (r SC2SCRecord) Encode(order binary.ByteOrder) []byte {
	return encode(SCMapRecordLen, order, func(v datagram.View) {
		v.PutU32(0, r.LID)
		v.PutU8(4, r.InPort)
		v.PutU8(5, r.OutPort)
		r.SC.put(mapData(v))
	})
}

func (d Decoder) SC2SLRecord(buf []byte, offset int) (SC2SLRecord, error) {
	return decodeFixed(d, SCMapRecordLen, decodeSC2SLRecord, buf, offset)
}

func (d Decoder) SL2SCRecord(buf []byte, offset int) (SL2SCRecord, error) {
	return decodeFixed(d, SCMapRecordLen, decodeSL2SCRecord, buf, offset)
}

func (d Decoder) SC2VLRecord(buf []byte, offset int) (SC2VLRecord, error) {
	return decodeFixed(d, SCMapRecordLen, decodeSC2VLRecord, buf, offset)
}

func (d Decoder) SC2SCRecord(buf []byte, offset int) (SC2SCRecord, error) {
	return decodeFixed(d, SCMapRecordLen, decodeSC2SCRecord, buf, offset)
}
