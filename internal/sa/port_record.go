package sa

import (
	"encoding/binary"

	"github.com/tturner/sadecode/internal/datagram"
)

const (
	PortDownReasonLen   = 16
	NumPortDownReasons  = 8
	PortInfoRecordLen   = portRecordKeyLen + PortInfoLen + NumPortDownReasons*PortDownReasonLen
	portRecordKeyLen    = 8
	portDownReasonsBase = portRecordKeyLen + PortInfoLen
)

// PortDownReason is one entry of the link down history.
type PortDownReason struct {
	NeighborLinkDownReason uint8
	LinkDownReason         uint8
	Timestamp              uint64
}

func decodePortDownReason(v datagram.View) PortDownReason {
	return PortDownReason{
		NeighborLinkDownReason: v.U8(6),
		LinkDownReason:         v.U8(7),
		Timestamp:              v.U64(8),
	}
}

func (r PortDownReason) put(v datagram.View) {
	v.PutU8(6, r.NeighborLinkDownReason)
	v.PutU8(7, r.LinkDownReason)
	v.PutU64(8, r.Timestamp)
}

// Encode returns the 16-byte wire form.
func (r PortDownReason) Encode(order binary.ByteOrder) []byte {
	return encode(PortDownReasonLen, order, r.put)
}

// PortInfoRecord is a PortInfo keyed by end port LID and port number,
// followed by the port's link down history.
type PortInfoRecord struct {
	EndPortLID      uint32
	PortNum         uint8
	PortInfo        PortInfo
	PortDownReasons [NumPortDownReasons]PortDownReason
}

func portInfoRecordLayout() datagram.Layout {
	parts := []datagram.Part{
		{Name: "key", Len: portRecordKeyLen},
		{Name: "PortInfo", Len: PortInfoLen},
	}
	for i := 0; i < NumPortDownReasons; i++ {
		parts = append(parts, datagram.Part{Name: "PortDownReason", Len: PortDownReasonLen})
	}
	return datagram.NewLayout(parts...)
}

var portInfoRecordDatagram = datagram.Composed[PortInfoRecord]{
	Layout: portInfoRecordLayout(),
	Assemble: func(parts []datagram.View) PortInfoRecord {
		r := PortInfoRecord{
			EndPortLID: parts[0].U32(0),
			PortNum:    parts[0].U8(4),
			PortInfo:   decodePortInfo(parts[1]),
		}
		for i, part := range parts[2:] {
			r.PortDownReasons[i] = decodePortDownReason(part)
		}
		return r
	},
}

func (r PortInfoRecord) put(v datagram.View) {
	v.PutU32(0, r.EndPortLID)
	v.PutU8(4, r.PortNum)
	r.PortInfo.put(v.Slice(portRecordKeyLen, PortInfoLen))
	for i, pdr := range r.PortDownReasons {
		pdr.put(v.Slice(portDownReasonsBase+i*PortDownReasonLen, PortDownReasonLen))
	}
}

// Encode returns the 378-byte wire form.
func (r PortInfoRecord) Encode(order binary.ByteOrder) []byte {
	return encode(PortInfoRecordLen, order, r.put)
}

// PortInfoRecord decodes a PortInfoRecord at offset.
func (d Decoder) PortInfoRecord(buf []byte, offset int) (PortInfoRecord, error) {
	return datagram.Decode[PortInfoRecord](portInfoRecordDatagram, buf, offset, d.order(), d.Diagnostics)
}

// PortDownReason decodes a single history entry at offset.
func (d Decoder) PortDownReason(buf []byte, offset int) (PortDownReason, error) {
	return decodeFixed(d, PortDownReasonLen, decodePortDownReason, buf, offset)
}
