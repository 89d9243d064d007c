package sa

import (
	"encoding/binary"

	"github.com/tturner/sadecode/internal/datagram"
	"github.com/tturner/sadecode/internal/sa/enums"
)

const (
	SMInfoLen       = 26
	SMInfoRecordLen = recordKeyLen + SMInfoLen
)

var (
	smPriority         = datagram.Bits[uint16]{Shift: 12, Width: 4}
	smElevatedPriority = datagram.Bits[uint16]{Shift: 8, Width: 4}
	smInitialPriority  = datagram.Bits[uint16]{Shift: 4, Width: 4}
	smStateCurrent     = datagram.Bits[uint16]{Shift: 0, Width: 4}
)

// SMInfo describes one subnet manager instance.
type SMInfo struct {
	PortGUID         uint64
	SMKey            uint64
	ActCount         uint32
	ElapsedTime      uint32
	Priority         uint8
	ElevatedPriority uint8
	InitialPriority  uint8
	SMStateCurrent   uint8
}

// State returns the display name of the current SM state.
func (s SMInfo) State() string {
	return enums.SMStateName(s.SMStateCurrent)
}

func decodeSMInfo(v datagram.View) SMInfo {
	w := v.U16(24)
	return SMInfo{
		PortGUID:         v.U64(0),
		SMKey:            v.U64(8),
		ActCount:         v.U32(16),
		ElapsedTime:      v.U32(20),
		Priority:         uint8(smPriority.Get(w)),
		ElevatedPriority: uint8(smElevatedPriority.Get(w)),
		InitialPriority:  uint8(smInitialPriority.Get(w)),
		SMStateCurrent:   uint8(smStateCurrent.Get(w)),
	}
}

func (s SMInfo) put(v datagram.View) {
	v.PutU64(0, s.PortGUID)
	v.PutU64(8, s.SMKey)
	v.PutU32(16, s.ActCount)
	v.PutU32(20, s.ElapsedTime)
	w := smPriority.Set(0, uint16(s.Priority))
	w = smElevatedPriority.Set(w, uint16(s.ElevatedPriority))
	w = smInitialPriority.Set(w, uint16(s.InitialPriority))
	v.PutU16(24, smStateCurrent.Set(w, uint16(s.SMStateCurrent)))
}

// SMInfoRecord is an SMInfo keyed by the SM port LID.
type SMInfoRecord struct {
	LID    uint32
	SMInfo SMInfo
}

func decodeSMInfoRecord(v datagram.View) SMInfoRecord {
	return SMInfoRecord{LID: v.U32(0), SMInfo: decodeSMInfo(v.Slice(recordKeyLen, SMInfoLen))}
}

// Encode returns the 34-byte wire form.
func (r SMInfoRecord) Encode(order binary.ByteOrder) []byte {
	return encode(SMInfoRecordLen, order, func(v datagram.View) {
		v.PutU32(0, r.LID)
		r.SMInfo.put(v.Slice(recordKeyLen, SMInfoLen))
	})
}

// SMInfoRecord decodes an SMInfoRecord at offset.
func (d Decoder) SMInfoRecord(buf []byte, offset int) (SMInfoRecord, error) {
	return decodeFixed(d, SMInfoRecordLen, decodeSMInfoRecord, buf, offset)
}
