package sa

import (
	"encoding/binary"

	"github.com/tturner/sadecode/internal/datagram"
)

const (
	LFTRecordLen   = 72
	MFTRecordLen   = 72
	LFTBlockSize   = 64
	MFTMaskWords   = 8
	tableKeyLen    = 8
	tableDataStart = tableKeyLen
)

var (
	lftBlockNum = datagram.Bits[uint32]{Shift: 0, Width: 18}
	mftPosition = datagram.Bits[uint32]{Shift: 30, Width: 2}
	mftBlockNum = datagram.Bits[uint32]{Shift: 0, Width: 21}
)

// LFTRecord is one 64-LID block of a switch linear forwarding table.
type LFTRecord struct {
	LID      uint32
	BlockNum uint32
	// LinearFDB holds the egress port for each LID of the block.
	LinearFDB [LFTBlockSize]uint8
}

// SetLinearFDB replaces the block. ports must hold exactly 64 entries.
func (r *LFTRecord) SetLinearFDB(ports []uint8) error {
	if err := datagram.CheckSize("LinearFDB", LFTBlockSize, len(ports)); err != nil {
		return err
	}
	copy(r.LinearFDB[:], ports)
	return nil
}

// Port returns the egress port for the LID at index within the block.
func (r LFTRecord) Port(index int) uint8 {
	return r.LinearFDB[index]
}

// FirstLID returns the first LID the block covers.
func (r LFTRecord) FirstLID() uint32 {
	return r.BlockNum * LFTBlockSize
}

func decodeLFTRecord(v datagram.View) LFTRecord {
	r := LFTRecord{LID: v.U32(0), BlockNum: lftBlockNum.Get(v.U32(4))}
	v.CopyTo(tableDataStart, r.LinearFDB[:])
	return r
}

func (r LFTRecord) put(v datagram.View) {
	v.PutU32(0, r.LID)
	v.PutU32(4, lftBlockNum.Set(0, r.BlockNum))
	v.PutBytes(tableDataStart, r.LinearFDB[:])
}

// Encode returns the 72-byte wire form.
func (r LFTRecord) Encode(order binary.ByteOrder) []byte {
	return encode(LFTRecordLen, order, r.put)
}

// MFTRecord is one block of a switch multicast forwarding table.
type MFTRecord struct {
	LID      uint32
	Position uint8
	BlockNum uint32
	PortMask [MFTMaskWords]uint64
}

// SetPortMask replaces the port masks. masks must hold exactly 8 entries.
func (r *MFTRecord) SetPortMask(masks []uint64) error {
	if err := datagram.CheckSize("PortMask", MFTMaskWords, len(masks)); err != nil {
		return err
	}
	copy(r.PortMask[:], masks)
	return nil
}

func decodeMFTRecord(v datagram.View) MFTRecord {
	key := v.U32(4)
	r := MFTRecord{
		LID:      v.U32(0),
		Position: uint8(mftPosition.Get(key)),
		BlockNum: mftBlockNum.Get(key),
	}
	for i := range r.PortMask {
		r.PortMask[i] = v.U64(tableDataStart + 8*i)
	}
	return r
}

func (r MFTRecord) put(v datagram.View) {
	v.PutU32(0, r.LID)
	v.PutU32(4, mftBlockNum.Set(mftPosition.Set(0, uint32(r.Position)), r.BlockNum))
	for i, m := range r.PortMask {
		v.PutU64(tableDataStart+8*i, m)
	}
}

// Encode returns the 72-byte wire form.
func (r MFTRecord) Encode(order binary.ByteOrder) []byte {
	return encode(MFTRecordLen, order, r.put)
}

// LFTRecord decodes a linear forwarding table block at offset.
func (d Decoder) LFTRecord(buf []byte, offset int) (LFTRecord, error) {
	return decodeFixed(d, LFTRecordLen, decodeLFTRecord, buf, offset)
}

// MFTRecord decodes a multicast forwarding table block at offset.
func (d Decoder) MFTRecord(buf []byte, offset int) (MFTRecord, error) {
	return decodeFixed(d, MFTRecordLen, decodeMFTRecord, buf, offset)
}
