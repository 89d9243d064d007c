package sa

import (
	"encoding/binary"

	"github.com/tturner/sadecode/internal/datagram"
)

const (
	PKeyTableRecordLen = 72
	PKeyBlockSize      = 32
)

var (
	pkeyMembership = datagram.Flag[uint16]{Bit: 15}
	pkeyBase       = datagram.Bits[uint16]{Shift: 0, Width: 15}
)

// PKey is one partition key entry.
type PKey uint16

// FullMember reports the membership bit.
func (k PKey) FullMember() bool {
	return pkeyMembership.Get(uint16(k))
}

// Base returns the key without the membership bit.
func (k PKey) Base() uint16 {
	return pkeyBase.Get(uint16(k))
}

// NewPKey combines a base key and membership.
func NewPKey(base uint16, full bool) PKey {
	return PKey(pkeyMembership.Set(pkeyBase.Set(0, base), full))
}

// PKeyTableRecord is one 32-entry block of a port partition table.
type PKeyTableRecord struct {
	LID      uint32
	BlockNum uint16
	PortNum  uint8
	PKeys    [PKeyBlockSize]PKey
}

// SetPKeys replaces the block. keys must hold exactly 32 entries.
func (r *PKeyTableRecord) SetPKeys(keys []PKey) error {
	if err := datagram.CheckSize("PKeyBlock", PKeyBlockSize, len(keys)); err != nil {
		return err
	}
	copy(r.PKeys[:], keys)
	return nil
}

func decodePKeyTableRecord(v datagram.View) PKeyTableRecord {
	r := PKeyTableRecord{LID: v.U32(0), BlockNum: v.U16(4), PortNum: v.U8(6)}
	for i := range r.PKeys {
		r.PKeys[i] = PKey(v.U16(tableDataStart + 2*i))
	}
	return r
}

func (r PKeyTableRecord) put(v datagram.View) {
	v.PutU32(0, r.LID)
	v.PutU16(4, r.BlockNum)
	v.PutU8(6, r.PortNum)
	for i, k := range r.PKeys {
		v.PutU16(tableDataStart+2*i, uint16(k))
	}
}

// Encode returns the 72-byte wire form.
func (r PKeyTableRecord) Encode(order binary.ByteOrder) []byte {
	return encode(PKeyTableRecordLen, order, r.put)
}

// PKeyTableRecord decodes a partition table block at offset.
func (d Decoder) PKeyTableRecord(buf []byte, offset int) (PKeyTableRecord, error) {
	return decodeFixed(d, PKeyTableRecordLen, decodePKeyTableRecord, buf, offset)
}
