package sa

import (
	"encoding/binary"
	"net/netip"

	"github.com/tturner/sadecode/internal/datagram"
)

const (
	PortInfoLen    = 242
	VLBlockLen     = 8
	FlitControlLen = 10

	// NumVLs is the number of data VLs covered by the per-VL arrays.
	NumVLs = 32

	vlBlockOffset     = 8
	flitControlOffset = 78
	neighborMTUOffset = 124
	xmitQOffset       = 140
)

// PortStates word at offset 16.
var (
	psLEDEnabled        = datagram.Flag[uint32]{Bit: 22}
	psSMConfigStarted   = datagram.Flag[uint32]{Bit: 21}
	psNeighborNormal    = datagram.Flag[uint32]{Bit: 20}
	psOfflineDisabled   = datagram.Bits[uint32]{Shift: 16, Width: 4}
	psPortPhysicalState = datagram.Bits[uint32]{Shift: 4, Width: 4}
	psPortState         = datagram.Bits[uint32]{Shift: 0, Width: 4}
)

// Single-byte fields.
var (
	piPortType          = datagram.Bits[uint8]{Shift: 0, Width: 4}
	piCollectiveMask    = datagram.Bits[uint8]{Shift: 3, Width: 3}
	piMulticastMask     = datagram.Bits[uint8]{Shift: 0, Width: 3}
	piMKeyProtectBits   = datagram.Bits[uint8]{Shift: 6, Width: 2}
	piLMC               = datagram.Bits[uint8]{Shift: 0, Width: 4}
	piSL                = datagram.Bits[uint8]{Shift: 0, Width: 5}
	piLinkInitReason    = datagram.Bits[uint8]{Shift: 4, Width: 4}
	piPartEnfInbound    = datagram.Flag[uint8]{Bit: 3}
	piPartEnfOutbound   = datagram.Flag[uint8]{Bit: 2}
	piClientReregister  = datagram.Flag[uint8]{Bit: 7}
	piMcastPKeyTrapSupp = datagram.Bits[uint8]{Shift: 5, Width: 2}
	piSubnetTimeout     = datagram.Bits[uint8]{Shift: 0, Width: 5}
	piDRControl         = datagram.Flag[uint8]{Bit: 0}
	piMgmtAllowed       = datagram.Flag[uint8]{Bit: 3}
	piFWAuthenBypass    = datagram.Flag[uint8]{Bit: 2}
	piNeighborNodeType  = datagram.Bits[uint8]{Shift: 0, Width: 2}
	piMTUCap            = datagram.Bits[uint8]{Shift: 0, Width: 4}
	piRespTimeValue     = datagram.Bits[uint8]{Shift: 0, Width: 5}
	piNeighborMTUHigh   = datagram.Bits[uint8]{Shift: 4, Width: 4}
	piNeighborMTULow    = datagram.Bits[uint8]{Shift: 0, Width: 4}
	piVLStallCount      = datagram.Bits[uint8]{Shift: 5, Width: 3}
	piHOQLife           = datagram.Bits[uint8]{Shift: 0, Width: 5}
	vlCap               = datagram.Bits[uint8]{Shift: 0, Width: 5}
)

// Sixteen and 32-bit packed fields.
var (
	piQueuePair          = datagram.Bits[uint32]{Shift: 0, Width: 24}
	piLinkModeSupported  = datagram.Bits[uint16]{Shift: 10, Width: 5}
	piLinkModeEnabled    = datagram.Bits[uint16]{Shift: 5, Width: 5}
	piLinkModeActive     = datagram.Bits[uint16]{Shift: 0, Width: 5}
	piLTPCRCSupported    = datagram.Bits[uint16]{Shift: 8, Width: 4}
	piLTPCRCEnabled      = datagram.Bits[uint16]{Shift: 4, Width: 4}
	piLTPCRCActive       = datagram.Bits[uint16]{Shift: 0, Width: 4}
	pmActiveOptimize     = datagram.Flag[uint16]{Bit: 6}
	pmPassThrough        = datagram.Flag[uint16]{Bit: 5}
	pmVLMarker           = datagram.Flag[uint16]{Bit: 4}
	pm16BTrapQuery       = datagram.Flag[uint16]{Bit: 1}
	buVL15Init           = datagram.Bits[uint32]{Shift: 11, Width: 12}
	buVL15CreditRate     = datagram.Bits[uint32]{Shift: 6, Width: 5}
	buCreditAck          = datagram.Bits[uint32]{Shift: 3, Width: 3}
	buBufferAlloc        = datagram.Bits[uint32]{Shift: 0, Width: 3}
	dcUniversal          = datagram.Bits[uint16]{Shift: 12, Width: 4}
	dcVendor             = datagram.Bits[uint16]{Shift: 1, Width: 11}
	dcChain              = datagram.Flag[uint16]{Bit: 0}
	fcDistanceSupported  = datagram.Bits[uint16]{Shift: 12, Width: 2}
	fcDistanceEnabled    = datagram.Bits[uint16]{Shift: 10, Width: 2}
	fcMaxNestLevelTxEnab = datagram.Bits[uint16]{Shift: 5, Width: 5}
	fcMaxNestLevelRxSupp = datagram.Bits[uint16]{Shift: 0, Width: 5}
)

// VLBlock is the virtual lane capability block embedded in PortInfo.
type VLBlock struct {
	PreemptCap         uint8
	Cap                uint8
	HighLimit          uint16
	PreemptingLimit    uint16
	ArbitrationHighCap uint8
	ArbitrationLowCap  uint8
}

func decodeVLBlock(v datagram.View) VLBlock {
	return VLBlock{
		PreemptCap:         v.U8(0),
		Cap:                vlCap.Get(v.U8(1)),
		HighLimit:          v.U16(2),
		PreemptingLimit:    v.U16(4),
		ArbitrationHighCap: v.U8(6),
		ArbitrationLowCap:  v.U8(7),
	}
}

func (b VLBlock) put(v datagram.View) {
	v.PutU8(0, b.PreemptCap)
	v.PutU8(1, vlCap.Set(0, b.Cap))
	v.PutU16(2, b.HighLimit)
	v.PutU16(4, b.PreemptingLimit)
	v.PutU8(6, b.ArbitrationHighCap)
	v.PutU8(7, b.ArbitrationLowCap)
}

// FlitControl is the flit interleave and preemption block embedded in
// PortInfo.
type FlitControl struct {
	DistanceSupported       uint8
	DistanceEnabled         uint8
	MaxNestLevelTxEnabled   uint8
	MaxNestLevelRxSupported uint8
	MinInitial              uint16
	MinTail                 uint16
	LargePktLimit           uint8
	SmallPktLimit           uint8
	MaxSmallPktLimit        uint8
	PreemptionLimit         uint8
}

func decodeFlitControl(v datagram.View) FlitControl {
	il := v.U16(0)
	return FlitControl{
		DistanceSupported:       uint8(fcDistanceSupported.Get(il)),
		DistanceEnabled:         uint8(fcDistanceEnabled.Get(il)),
		MaxNestLevelTxEnabled:   uint8(fcMaxNestLevelTxEnab.Get(il)),
		MaxNestLevelRxSupported: uint8(fcMaxNestLevelRxSupp.Get(il)),
		MinInitial:              v.U16(2),
		MinTail:                 v.U16(4),
		LargePktLimit:           v.U8(6),
		SmallPktLimit:           v.U8(7),
		MaxSmallPktLimit:        v.U8(8),
		PreemptionLimit:         v.U8(9),
	}
}

func (f FlitControl) put(v datagram.View) {
	il := fcDistanceSupported.Set(0, uint16(f.DistanceSupported))
	il = fcDistanceEnabled.Set(il, uint16(f.DistanceEnabled))
	il = fcMaxNestLevelTxEnab.Set(il, uint16(f.MaxNestLevelTxEnabled))
	il = fcMaxNestLevelRxSupp.Set(il, uint16(f.MaxNestLevelRxSupported))
	v.PutU16(0, il)
	v.PutU16(2, f.MinInitial)
	v.PutU16(4, f.MinTail)
	v.PutU8(6, f.LargePktLimit)
	v.PutU8(7, f.SmallPktLimit)
	v.PutU8(8, f.MaxSmallPktLimit)
	v.PutU8(9, f.PreemptionLimit)
}

// PortStates is the packed port state word.
type PortStates struct {
	LEDEnabled               bool
	IsSMConfigurationStarted bool
	NeighborNormal           bool
	OfflineDisabledReason    uint8
	PortPhysicalState        uint8
	PortState                uint8
}

func decodePortStates(w uint32) PortStates {
	return PortStates{
		LEDEnabled:               psLEDEnabled.Get(w),
		IsSMConfigurationStarted: psSMConfigStarted.Get(w),
		NeighborNormal:           psNeighborNormal.Get(w),
		OfflineDisabledReason:    uint8(psOfflineDisabled.Get(w)),
		PortPhysicalState:        uint8(psPortPhysicalState.Get(w)),
		PortState:                uint8(psPortState.Get(w)),
	}
}

func (s PortStates) word() uint32 {
	w := psLEDEnabled.Set(0, s.LEDEnabled)
	w = psSMConfigStarted.Set(w, s.IsSMConfigurationStarted)
	w = psNeighborNormal.Set(w, s.NeighborNormal)
	w = psOfflineDisabled.Set(w, uint32(s.OfflineDisabledReason))
	w = psPortPhysicalState.Set(w, uint32(s.PortPhysicalState))
	return psPortState.Set(w, uint32(s.PortState))
}

// Triple is a supported/enabled/active capability set.
type Triple struct {
	Supported uint16
	Enabled   uint16
	Active    uint16
}

func decodeTriple(v datagram.View, off int) Triple {
	return Triple{Supported: v.U16(off), Enabled: v.U16(off + 2), Active: v.U16(off + 4)}
}

func (t Triple) put(v datagram.View, off int) {
	v.PutU16(off, t.Supported)
	v.PutU16(off+2, t.Enabled)
	v.PutU16(off+4, t.Active)
}

// LinkWidthDowngrade is the width downgrade capability set.
type LinkWidthDowngrade struct {
	Supported uint16
	Enabled   uint16
	TxActive  uint16
	RxActive  uint16
}

// PacketFormats is the supported/enabled packet format set.
type PacketFormats struct {
	Supported uint16
	Enabled   uint16
}

// PortMode holds the port mode flags.
type PortMode struct {
	IsActiveOptimizeEnabled bool
	IsPassThroughEnabled    bool
	IsVLMarkerEnabled       bool
	Is16BTrapQueryEnabled   bool
}

func decodePortMode(w uint16) PortMode {
	return PortMode{
		IsActiveOptimizeEnabled: pmActiveOptimize.Get(w),
		IsPassThroughEnabled:    pmPassThrough.Get(w),
		IsVLMarkerEnabled:       pmVLMarker.Get(w),
		Is16BTrapQueryEnabled:   pm16BTrapQuery.Get(w),
	}
}

func (m PortMode) word() uint16 {
	w := pmActiveOptimize.Set(0, m.IsActiveOptimizeEnabled)
	w = pmPassThrough.Set(w, m.IsPassThroughEnabled)
	w = pmVLMarker.Set(w, m.IsVLMarkerEnabled)
	return pm16BTrapQuery.Set(w, m.Is16BTrapQueryEnabled)
}

// BufferUnits is the packed buffer unit word.
type BufferUnits struct {
	VL15Init       uint16
	VL15CreditRate uint8
	CreditAck      uint8
	BufferAlloc    uint8
}

func decodeBufferUnits(w uint32) BufferUnits {
	return BufferUnits{
		VL15Init:       uint16(buVL15Init.Get(w)),
		VL15CreditRate: uint8(buVL15CreditRate.Get(w)),
		CreditAck:      uint8(buCreditAck.Get(w)),
		BufferAlloc:    uint8(buBufferAlloc.Get(w)),
	}
}

func (b BufferUnits) word() uint32 {
	w := buVL15Init.Set(0, uint32(b.VL15Init))
	w = buVL15CreditRate.Set(w, uint32(b.VL15CreditRate))
	w = buCreditAck.Set(w, uint32(b.CreditAck))
	return buBufferAlloc.Set(w, uint32(b.BufferAlloc))
}

// XmitQ is the per-VL transmit queue setting.
type XmitQ struct {
	VLStallCount uint8
	HOQLife      uint8
}

// DiagCode is the port diagnostic code.
type DiagCode struct {
	UniversalDiagCode uint8
	VendorDiagCode    uint16
	Chain             bool
}

// PortInfo is the state and configuration of one port.
type PortInfo struct {
	LID             uint32
	FlowControlMask uint32
	VL              VLBlock
	PortStates      PortStates

	PortType                            uint8
	CollectiveMask                      uint8
	MulticastMask                       uint8
	MKeyProtectBits                     uint8
	LMC                                 uint8
	MasterSMSL                          uint8
	LinkInitReason                      uint8
	PartitionEnforcementInbound         bool
	PartitionEnforcementOutbound        bool
	OperationalVL                       uint8
	PKey8B                              uint16
	PKey10B                             uint16
	MKeyViolations                      uint16
	PKeyViolations                      uint16
	QKeyViolations                      uint16
	SMTrapQP                            uint32
	SAQP                                uint32
	NeighborPortNum                     uint8
	LinkDownReason                      uint8
	NeighborLinkDownReason              uint8
	ClientReregister                    bool
	MulticastPKeyTrapSuppressionEnabled uint8
	SubnetTimeout                       uint8

	LinkSpeed          Triple
	LinkWidth          Triple
	LinkWidthDowngrade LinkWidthDowngrade
	PortLinkMode       Triple
	PortLTPCRCMode     Triple
	PortMode           PortMode
	PacketFormats      PacketFormats
	FlitControl        FlitControl

	PortErrorAction uint32
	EgressPort      uint8
	DRControl       bool
	MKeyLeasePeriod uint16
	BufferUnits     BufferUnits
	MasterSMLID     uint32
	MKey            uint64
	SubnetPrefix    uint64

	NeighborMTU [NumVLs]uint8
	XmitQ       [NumVLs]XmitQ

	IPv6             [16]byte
	IPv4             [4]byte
	NeighborNodeGUID uint64
	CapabilityMask   uint32
	CapabilityMask3  uint16

	OverallBufferSpace     uint16
	DiagCode               DiagCode
	BufferDepth            uint8
	WireDepth              uint8
	MgmtAllowed            bool
	NeighborFWAuthenBypass bool
	NeighborNodeType       uint8
	MTUCap                 uint8
	RespTimeValue          uint8
	LocalPortNum           uint8
}

func decodePortInfo(v datagram.View) PortInfo {
	p := PortInfo{
		LID:             v.U32(0),
		FlowControlMask: v.U32(4),
		VL:              decodeVLBlock(v.Slice(vlBlockOffset, VLBlockLen)),
		PortStates:      decodePortStates(v.U32(16)),
		FlitControl:     decodeFlitControl(v.Slice(flitControlOffset, FlitControlLen)),
	}

	p.PortType = piPortType.Get(v.U8(20))
	mc := v.U8(21)
	p.CollectiveMask = piCollectiveMask.Get(mc)
	p.MulticastMask = piMulticastMask.Get(mc)
	s1 := v.U8(22)
	p.MKeyProtectBits = piMKeyProtectBits.Get(s1)
	p.LMC = piLMC.Get(s1)
	p.MasterSMSL = piSL.Get(v.U8(23))
	s3 := v.U8(24)
	p.LinkInitReason = piLinkInitReason.Get(s3)
	p.PartitionEnforcementInbound = piPartEnfInbound.Get(s3)
	p.PartitionEnforcementOutbound = piPartEnfOutbound.Get(s3)
	p.OperationalVL = piSL.Get(v.U8(25))
	p.PKey8B = v.U16(26)
	p.PKey10B = v.U16(28)
	p.MKeyViolations = v.U16(30)
	p.PKeyViolations = v.U16(32)
	p.QKeyViolations = v.U16(34)
	p.SMTrapQP = piQueuePair.Get(v.U32(36))
	p.SAQP = piQueuePair.Get(v.U32(40))
	p.NeighborPortNum = v.U8(44)
	p.LinkDownReason = v.U8(45)
	p.NeighborLinkDownReason = v.U8(46)
	sub := v.U8(47)
	p.ClientReregister = piClientReregister.Get(sub)
	p.MulticastPKeyTrapSuppressionEnabled = piMcastPKeyTrapSupp.Get(sub)
	p.SubnetTimeout = piSubnetTimeout.Get(sub)

	p.LinkSpeed = decodeTriple(v, 48)
	p.LinkWidth = decodeTriple(v, 54)
	p.LinkWidthDowngrade = LinkWidthDowngrade{
		Supported: v.U16(60),
		Enabled:   v.U16(62),
		TxActive:  v.U16(64),
		RxActive:  v.U16(66),
	}
	lm := v.U16(68)
	p.PortLinkMode = Triple{
		Supported: piLinkModeSupported.Get(lm),
		Enabled:   piLinkModeEnabled.Get(lm),
		Active:    piLinkModeActive.Get(lm),
	}
	crc := v.U16(70)
	p.PortLTPCRCMode = Triple{
		Supported: piLTPCRCSupported.Get(crc),
		Enabled:   piLTPCRCEnabled.Get(crc),
		Active:    piLTPCRCActive.Get(crc),
	}
	p.PortMode = decodePortMode(v.U16(72))
	p.PacketFormats.Supported = v.U16(74)
	p.PacketFormats.Enabled = v.U16(76)

	p.PortErrorAction = v.U32(88)
	p.EgressPort = v.U8(92)
	p.DRControl = piDRControl.Get(v.U8(93))
	p.MKeyLeasePeriod = v.U16(94)
	p.BufferUnits = decodeBufferUnits(v.U32(96))
	p.MasterSMLID = v.U32(104)
	p.MKey = v.U64(108)
	p.SubnetPrefix = v.U64(116)

	for i := 0; i < NumVLs/2; i++ {
		b := v.U8(neighborMTUOffset + i)
		p.NeighborMTU[2*i] = piNeighborMTUHigh.Get(b)
		p.NeighborMTU[2*i+1] = piNeighborMTULow.Get(b)
	}
	for i := range p.XmitQ {
		b := v.U8(xmitQOffset + i)
		p.XmitQ[i] = XmitQ{VLStallCount: piVLStallCount.Get(b), HOQLife: piHOQLife.Get(b)}
	}

	v.CopyTo(172, p.IPv6[:])
	v.CopyTo(188, p.IPv4[:])
	p.NeighborNodeGUID = v.U64(208)
	p.CapabilityMask = v.U32(216)
	p.CapabilityMask3 = v.U16(222)
	p.OverallBufferSpace = v.U16(228)
	dc := v.U16(232)
	p.DiagCode = DiagCode{
		UniversalDiagCode: uint8(dcUniversal.Get(dc)),
		VendorDiagCode:    dcVendor.Get(dc),
		Chain:             dcChain.Get(dc),
	}
	p.BufferDepth = v.U8(234)
	p.WireDepth = v.U8(235)
	nm := v.U8(236)
	p.MgmtAllowed = piMgmtAllowed.Get(nm)
	p.NeighborFWAuthenBypass = piFWAuthenBypass.Get(nm)
	p.NeighborNodeType = piNeighborNodeType.Get(nm)
	p.MTUCap = piMTUCap.Get(v.U8(237))
	p.RespTimeValue = piRespTimeValue.Get(v.U8(238))
	p.LocalPortNum = v.U8(239)
	return p
}

func (p PortInfo) put(v datagram.View) {
	v.PutU32(0, p.LID)
	v.PutU32(4, p.FlowControlMask)
	p.VL.put(v.Slice(vlBlockOffset, VLBlockLen))
	v.PutU32(16, p.PortStates.word())
	p.FlitControl.put(v.Slice(flitControlOffset, FlitControlLen))

	v.PutU8(20, piPortType.Set(0, p.PortType))
	v.PutU8(21, piMulticastMask.Set(piCollectiveMask.Set(0, p.CollectiveMask), p.MulticastMask))
	v.PutU8(22, piLMC.Set(piMKeyProtectBits.Set(0, p.MKeyProtectBits), p.LMC))
	v.PutU8(23, piSL.Set(0, p.MasterSMSL))
	s3 := piLinkInitReason.Set(0, p.LinkInitReason)
	s3 = piPartEnfInbound.Set(s3, p.PartitionEnforcementInbound)
	v.PutU8(24, piPartEnfOutbound.Set(s3, p.PartitionEnforcementOutbound))
	v.PutU8(25, piSL.Set(0, p.OperationalVL))
	v.PutU16(26, p.PKey8B)
	v.PutU16(28, p.PKey10B)
	v.PutU16(30, p.MKeyViolations)
	v.PutU16(32, p.PKeyViolations)
	v.PutU16(34, p.QKeyViolations)
	v.PutU32(36, piQueuePair.Set(0, p.SMTrapQP))
	v.PutU32(40, piQueuePair.Set(0, p.SAQP))
	v.PutU8(44, p.NeighborPortNum)
	v.PutU8(45, p.LinkDownReason)
	v.PutU8(46, p.NeighborLinkDownReason)
	sub := piClientReregister.Set(0, p.ClientReregister)
	sub = piMcastPKeyTrapSupp.Set(sub, p.MulticastPKeyTrapSuppressionEnabled)
	v.PutU8(47, piSubnetTimeout.Set(sub, p.SubnetTimeout))

	p.LinkSpeed.put(v, 48)
	p.LinkWidth.put(v, 54)
	v.PutU16(60, p.LinkWidthDowngrade.Supported)
	v.PutU16(62, p.LinkWidthDowngrade.Enabled)
	v.PutU16(64, p.LinkWidthDowngrade.TxActive)
	v.PutU16(66, p.LinkWidthDowngrade.RxActive)
	lm := piLinkModeSupported.Set(0, p.PortLinkMode.Supported)
	lm = piLinkModeEnabled.Set(lm, p.PortLinkMode.Enabled)
	v.PutU16(68, piLinkModeActive.Set(lm, p.PortLinkMode.Active))
	crc := piLTPCRCSupported.Set(0, p.PortLTPCRCMode.Supported)
	crc = piLTPCRCEnabled.Set(crc, p.PortLTPCRCMode.Enabled)
	v.PutU16(70, piLTPCRCActive.Set(crc, p.PortLTPCRCMode.Active))
	v.PutU16(72, p.PortMode.word())
	v.PutU16(74, p.PacketFormats.Supported)
	v.PutU16(76, p.PacketFormats.Enabled)

	v.PutU32(88, p.PortErrorAction)
	v.PutU8(92, p.EgressPort)
	v.PutU8(93, piDRControl.Set(0, p.DRControl))
	v.PutU16(94, p.MKeyLeasePeriod)
	v.PutU32(96, p.BufferUnits.word())
	v.PutU32(104, p.MasterSMLID)
	v.PutU64(108, p.MKey)
	v.PutU64(116, p.SubnetPrefix)

	for i := 0; i < NumVLs/2; i++ {
		b := piNeighborMTUHigh.Set(0, p.NeighborMTU[2*i])
		v.PutU8(neighborMTUOffset+i, piNeighborMTULow.Set(b, p.NeighborMTU[2*i+1]))
	}
	for i, q := range p.XmitQ {
		v.PutU8(xmitQOffset+i, piHOQLife.Set(piVLStallCount.Set(0, q.VLStallCount), q.HOQLife))
	}

	v.PutBytes(172, p.IPv6[:])
	v.PutBytes(188, p.IPv4[:])
	v.PutU64(208, p.NeighborNodeGUID)
	v.PutU32(216, p.CapabilityMask)
	v.PutU16(222, p.CapabilityMask3)
	v.PutU16(228, p.OverallBufferSpace)
	dc := dcUniversal.Set(0, uint16(p.DiagCode.UniversalDiagCode))
	dc = dcVendor.Set(dc, p.DiagCode.VendorDiagCode)
	v.PutU16(232, dcChain.Set(dc, p.DiagCode.Chain))
	v.PutU8(234, p.BufferDepth)
	v.PutU8(235, p.WireDepth)
	nm := piMgmtAllowed.Set(0, p.MgmtAllowed)
	nm = piFWAuthenBypass.Set(nm, p.NeighborFWAuthenBypass)
	v.PutU8(236, piNeighborNodeType.Set(nm, p.NeighborNodeType))
	v.PutU8(237, piMTUCap.Set(0, p.MTUCap))
	v.PutU8(238, piRespTimeValue.Set(0, p.RespTimeValue))
	v.PutU8(239, p.LocalPortNum)
}

// Encode returns the 242-byte wire form.
func (p PortInfo) Encode(order binary.ByteOrder) []byte {
	return encode(PortInfoLen, order, p.put)
}

// IPv6Addr returns the port IPv6 address.
func (p PortInfo) IPv6Addr() netip.Addr {
	return netip.AddrFrom16(p.IPv6)
}

// IPv4Addr returns the port IPv4 address.
func (p PortInfo) IPv4Addr() netip.Addr {
	return netip.AddrFrom4(p.IPv4)
}

// PortInfo decodes a bare PortInfo at offset.
func (d Decoder) PortInfo(buf []byte, offset int) (PortInfo, error) {
	return decodeFixed(d, PortInfoLen, decodePortInfo, buf, offset)
}
