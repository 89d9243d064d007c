package sa

import (
	"encoding/binary"
	"net/netip"

	"github.com/tturner/sadecode/internal/datagram"
)

const (
	SwitchInfoLen       = 84
	SwitchInfoRecordLen = recordKeyLen + SwitchInfoLen
)

var (
	swLifeTimeValue   = datagram.Bits[uint8]{Shift: 3, Width: 5}
	swPortStateChange = datagram.Flag[uint8]{Bit: 2}
	swEnhancedPort0   = datagram.Flag[uint8]{Bit: 3}
	arEnable          = datagram.Flag[uint16]{Bit: 15}
	arPause           = datagram.Flag[uint16]{Bit: 14}
	arAlgorithm       = datagram.Bits[uint16]{Shift: 11, Width: 3}
	arFrequency       = datagram.Bits[uint16]{Shift: 8, Width: 3}
	arLostRoutesOnly  = datagram.Flag[uint16]{Bit: 7}
	arThreshold       = datagram.Bits[uint16]{Shift: 4, Width: 3}
)

// AdaptiveRouting is the switch adaptive routing configuration.
type AdaptiveRouting struct {
	Enable         bool
	Pause          bool
	Algorithm      uint8
	Frequency      uint8
	LostRoutesOnly bool
	Threshold      uint8
}

func decodeAdaptiveRouting(w uint16) AdaptiveRouting {
	return AdaptiveRouting{
		Enable:         arEnable.Get(w),
		Pause:          arPause.Get(w),
		Algorithm:      uint8(arAlgorithm.Get(w)),
		Frequency:      uint8(arFrequency.Get(w)),
		LostRoutesOnly: arLostRoutesOnly.Get(w),
		Threshold:      uint8(arThreshold.Get(w)),
	}
}

func (a AdaptiveRouting) word() uint16 {
	w := arEnable.Set(0, a.Enable)
	w = arPause.Set(w, a.Pause)
	w = arAlgorithm.Set(w, uint16(a.Algorithm))
	w = arFrequency.Set(w, uint16(a.Frequency))
	w = arLostRoutesOnly.Set(w, a.LostRoutesOnly)
	return arThreshold.Set(w, uint16(a.Threshold))
}

// SwitchInfo describes the forwarding capabilities of a switch.
type SwitchInfo struct {
	LinearFDBCap              uint32
	PortGroupFDBCap           uint32
	MulticastFDBCap           uint32
	LinearFDBTop              uint32
	MulticastFDBTop           uint32
	CollectiveCap             uint32
	CollectiveTop             uint32
	IPv6                      [16]byte
	IPv4                      [4]byte
	LifeTimeValue             uint8
	PortStateChange           bool
	PartitionEnforcementCap   uint16
	PortGroupCap              uint8
	PortGroupTop              uint8
	RoutingModeSupported      uint8
	RoutingModeEnabled        uint8
	EnhancedPort0             bool
	CollectiveMask            uint8
	MulticastMask             uint8
	AdaptiveRouting           AdaptiveRouting
	CapabilityMask            uint16
	CapabilityMaskCollectives uint16
}

func decodeSwitchInfo(v datagram.View) SwitchInfo {
	s := SwitchInfo{
		LinearFDBCap:              v.U32(0),
		PortGroupFDBCap:           v.U32(4),
		MulticastFDBCap:           v.U32(8),
		LinearFDBTop:              v.U32(12),
		MulticastFDBTop:           v.U32(16),
		CollectiveCap:             v.U32(20),
		CollectiveTop:             v.U32(24),
		LifeTimeValue:             swLifeTimeValue.Get(v.U8(64)),
		PortStateChange:           swPortStateChange.Get(v.U8(64)),
		PartitionEnforcementCap:   v.U16(66),
		PortGroupCap:              v.U8(68),
		PortGroupTop:              v.U8(69),
		RoutingModeSupported:      v.U8(70),
		RoutingModeEnabled:        v.U8(71),
		EnhancedPort0:             swEnhancedPort0.Get(v.U8(72)),
		CollectiveMask:            piCollectiveMask.Get(v.U8(73)),
		MulticastMask:             piMulticastMask.Get(v.U8(73)),
		AdaptiveRouting:           decodeAdaptiveRouting(v.U16(74)),
		CapabilityMask:            v.U16(76),
		CapabilityMaskCollectives: v.U16(78),
	}
	v.CopyTo(32, s.IPv6[:])
	v.CopyTo(48, s.IPv4[:])
	return s
}

func (s SwitchInfo) put(v datagram.View) {
	v.PutU32(0, s.LinearFDBCap)
	v.PutU32(4, s.PortGroupFDBCap)
	v.PutU32(8, s.MulticastFDBCap)
	v.PutU32(12, s.LinearFDBTop)
	v.PutU32(16, s.MulticastFDBTop)
	v.PutU32(20, s.CollectiveCap)
	v.PutU32(24, s.CollectiveTop)
	v.PutBytes(32, s.IPv6[:])
	v.PutBytes(48, s.IPv4[:])
	v.PutU8(64, swPortStateChange.Set(swLifeTimeValue.Set(0, s.LifeTimeValue), s.PortStateChange))
	v.PutU16(66, s.PartitionEnforcementCap)
	v.PutU8(68, s.PortGroupCap)
	v.PutU8(69, s.PortGroupTop)
	v.PutU8(70, s.RoutingModeSupported)
	v.PutU8(71, s.RoutingModeEnabled)
	v.PutU8(72, swEnhancedPort0.Set(0, s.EnhancedPort0))
	v.PutU8(73, piMulticastMask.Set(piCollectiveMask.Set(0, s.CollectiveMask), s.MulticastMask))
	v.PutU16(74, s.AdaptiveRouting.word())
	v.PutU16(76, s.CapabilityMask)
	v.PutU16(78, s.CapabilityMaskCollectives)
}

// Encode returns the 84-byte wire form.
func (s SwitchInfo) Encode(order binary.ByteOrder) []byte {
	return encode(SwitchInfoLen, order, s.put)
}

// IPv4Addr returns the switch IPv4 address.
func (s SwitchInfo) IPv4Addr() netip.Addr {
	return netip.AddrFrom4(s.IPv4)
}

// SwitchInfoRecord is a SwitchInfo keyed by LID.
type SwitchInfoRecord struct {
	LID        uint32
	SwitchInfo SwitchInfo
}

var switchInfoRecordDatagram = datagram.Composed[SwitchInfoRecord]{
	Layout: datagram.NewLayout(
		datagram.Part{Name: "key", Len: recordKeyLen},
		datagram.Part{Name: "SwitchInfo", Len: SwitchInfoLen},
	),
	Assemble: func(parts []datagram.View) SwitchInfoRecord {
		return SwitchInfoRecord{LID: parts[0].U32(0), SwitchInfo: decodeSwitchInfo(parts[1])}
	},
}

// Encode returns the 92-byte wire form.
func (r SwitchInfoRecord) Encode(order binary.ByteOrder) []byte {
	return encode(SwitchInfoRecordLen, order, func(v datagram.View) {
		v.PutU32(0, r.LID)
		r.SwitchInfo.put(v.Slice(recordKeyLen, SwitchInfoLen))
	})
}

// SwitchInfo decodes a bare SwitchInfo at offset.
func (d Decoder) SwitchInfo(buf []byte, offset int) (SwitchInfo, error) {
	return decodeFixed(d, SwitchInfoLen, decodeSwitchInfo, buf, offset)
}

// SwitchInfoRecord decodes a SwitchInfoRecord at offset.
func (d Decoder) SwitchInfoRecord(buf []byte, offset int) (SwitchInfoRecord, error) {
	return datagram.Decode[SwitchInfoRecord](switchInfoRecordDatagram, buf, offset, d.order(), d.Diagnostics)
}
