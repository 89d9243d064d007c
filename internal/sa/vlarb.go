package sa

import (
	"encoding/binary"

	"github.com/tturner/sadecode/internal/datagram"
)

const (
	VLArbTableRecordLen = tableKeyLen + VLArbDataLen
	VLArbDataLen        = 256
	VLArbElements       = 128
	VLArbMatrixWords    = 32
)

var vlarbVL = datagram.Bits[uint8]{Shift: 0, Width: 5}

// VLArbElement is one (VL, weight) arbitration entry.
type VLArbElement struct {
	VL     uint8
	Weight uint8
}

// VLArbTableRecord is one block of a port's VL arbitration table.
//
// The 256 data bytes are exposed both as 128 elements and as 32 matrix
// words. Which view applies depends on the block being queried, which the
// record alone cannot tell, so both are always populated from the same
// bytes and Data stays authoritative for encoding.
type VLArbTableRecord struct {
	LID           uint32
	OutputPortNum uint8
	BlockNum      uint8
	Elements      [VLArbElements]VLArbElement
	Matrix        [VLArbMatrixWords]uint32
	Data          [VLArbDataLen]byte
}

func (r *VLArbTableRecord) refresh(order binary.ByteOrder) {
	v := datagram.Wrap(r.Data[:], order)
	for i := range r.Elements {
		r.Elements[i] = VLArbElement{VL: vlarbVL.Get(v.U8(2 * i)), Weight: v.U8(2*i + 1)}
	}
	for i := range r.Matrix {
		r.Matrix[i] = v.U32(4 * i)
	}
}

// SetElements rewrites the data as elements. elems must hold exactly 128
// entries. The matrix view is recomputed for order.
func (r *VLArbTableRecord) SetElements(order binary.ByteOrder, elems []VLArbElement) error {
	if err := datagram.CheckSize("VLArbElements", VLArbElements, len(elems)); err != nil {
		return err
	}
	for i, e := range elems {
		r.Data[2*i] = vlarbVL.Set(0, e.VL)
		r.Data[2*i+1] = e.Weight
	}
	r.refresh(order)
	return nil
}

// SetMatrix rewrites the data as matrix words. words must hold exactly 32
// entries. The element view is recomputed.
func (r *VLArbTableRecord) SetMatrix(order binary.ByteOrder, words []uint32) error {
	if err := datagram.CheckSize("VLArbMatrix", VLArbMatrixWords, len(words)); err != nil {
		return err
	}
	v := datagram.Wrap(r.Data[:], order)
	for i, w := range words {
		v.PutU32(4*i, w)
	}
	r.refresh(order)
	return nil
}

func decodeVLArbTableRecord(v datagram.View) VLArbTableRecord {
	r := VLArbTableRecord{LID: v.U32(0), OutputPortNum: v.U8(4), BlockNum: v.U8(5)}
	v.CopyTo(tableDataStart, r.Data[:])
	r.refresh(v.Order())
	return r
}

func (r VLArbTableRecord) put(v datagram.View) {
	v.PutU32(0, r.LID)
	v.PutU8(4, r.OutputPortNum)
	v.PutU8(5, r.BlockNum)
	v.PutBytes(tableDataStart, r.Data[:])
}

// Encode returns the 264-byte wire form.
func (r VLArbTableRecord) Encode(order binary.ByteOrder) []byte {
	return encode(VLArbTableRecordLen, order, r.put)
}

// VLArbTableRecord decodes a VL arbitration block at offset.
func (d Decoder) VLArbTableRecord(buf []byte, offset int) (VLArbTableRecord, error) {
	return decodeFixed(d, VLArbTableRecordLen, decodeVLArbTableRecord, buf, offset)
}
