package sa

import (
	"encoding/binary"

	"github.com/tturner/sadecode/internal/datagram"
	"github.com/tturner/sadecode/internal/sa/enums"
)

const TraceRecordLen = 40

// TraceMask is XORed over every identifier of a trace record on the wire.
const TraceMask uint64 = 0x5555555555555555

// TraceRecord is one hop of a path trace. The identifiers hold the unmasked
// values.
type TraceRecord struct {
	IDGeneration uint16
	NodeType     uint8
	Type         enums.NodeType
	EntryPort    uint8
	ExitPort     uint8
	NodeID       uint64
	ChassisID    uint64
	EntryPortID  uint64
	ExitPortID   uint64
}

func decodeTraceRecord(v datagram.View) TraceRecord {
	c := datagram.NewCursor(v)
	var r TraceRecord
	r.IDGeneration = c.U16()
	c.Skip(1)
	r.NodeType = c.U8()
	r.Type = enums.ResolveNodeType(r.NodeType, v.Diagnostics())
	r.EntryPort = c.U8()
	r.ExitPort = c.U8()
	c.Skip(2)
	r.NodeID = c.U64() ^ TraceMask
	r.ChassisID = c.U64() ^ TraceMask
	r.EntryPortID = c.U64() ^ TraceMask
	r.ExitPortID = c.U64() ^ TraceMask
	return r
}

func (r TraceRecord) put(v datagram.View) {
	c := datagram.NewCursor(v)
	c.PutU16(r.IDGeneration)
	c.Skip(1)
	c.PutU8(r.NodeType)
	c.PutU8(r.EntryPort)
	c.PutU8(r.ExitPort)
	c.Skip(2)
	c.PutU64(r.NodeID ^ TraceMask)
	c.PutU64(r.ChassisID ^ TraceMask)
	c.PutU64(r.EntryPortID ^ TraceMask)
	c.PutU64(r.ExitPortID ^ TraceMask)
}

// Encode returns the 40-byte wire form with the identifiers masked.
func (r TraceRecord) Encode(order binary.ByteOrder) []byte {
	return encode(TraceRecordLen, order, r.put)
}

// TraceRecord decodes a TraceRecord at offset.
func (d Decoder) TraceRecord(buf []byte, offset int) (TraceRecord, error) {
	return decodeFixed(d, TraceRecordLen, decodeTraceRecord, buf, offset)
}
