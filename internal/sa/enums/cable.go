package enums

import (
	"fmt"

	"github.com/tturner/sadecode/internal/diag"
)

// PowerClass is the QSFP module power class.
type PowerClass uint8

const (
	PowerClassUndefined PowerClass = iota
	PowerClass1
	PowerClass2
	PowerClass3
	PowerClass4
	PowerClass5
	PowerClass6
	PowerClass7
)

var powerClassNames = map[PowerClass]string{
	PowerClass1: "Power Class 1 (1.5 W max)",
	PowerClass2: "Power Class 2 (2.0 W max)",
	PowerClass3: "Power Class 3 (2.5 W max)",
	PowerClass4: "Power Class 4 (3.5 W max)",
	PowerClass5: "Power Class 5 (4.0 W max)",
	PowerClass6: "Power Class 6 (4.5 W max)",
	PowerClass7: "Power Class 7 (5.0 W max)",
}

func (p PowerClass) String() string {
	if name, ok := powerClassNames[p]; ok {
		return name
	}
	return Undefined
}

type powerClassKey struct {
	high uint8
	low  uint8
}

// Classes 5-7 are only defined with the legacy pair at class 4.
var powerClassTable = map[powerClassKey]PowerClass{
	{0, 0}: PowerClass1,
	{1, 0}: PowerClass2,
	{2, 0}: PowerClass3,
	{3, 0}: PowerClass4,
	{3, 1}: PowerClass5,
	{3, 2}: PowerClass6,
	{3, 3}: PowerClass7,
}

// LookupPowerClass maps the two extended-identifier bit pairs (bits 7:6 and
// bits 1:0) to a power class.
func LookupPowerClass(high, low uint8) (PowerClass, bool) {
	pc, ok := powerClassTable[powerClassKey{high: high, low: low}]
	if !ok {
		return PowerClassUndefined, false
	}
	return pc, true
}

// ResolvePowerClass is LookupPowerClass with the UNDEFINED sentinel.
func ResolvePowerClass(high, low uint8, c *diag.Collector) PowerClass {
	if pc, ok := LookupPowerClass(high, low); ok {
		return pc
	}
	miss(c, "PowerClass", fmt.Sprintf("high=%d low=%d", high, low), Undefined)
	return PowerClassUndefined
}

// DDPowerClass returns the QSFP-DD power class (1-8) for the 3-bit code.
// Every code is defined.
func DDPowerClass(code uint8) int {
	return int(code&0x07) + 1
}

// Connector codes (SFF-8024 table 4-3) the cable tables know about.
const (
	ConnectorLC             uint8 = 0x07
	ConnectorOpticalPigtail uint8 = 0x0B
	ConnectorMPO1x12        uint8 = 0x0C
	ConnectorMPO2x16        uint8 = 0x0D
	ConnectorCopperPigtail  uint8 = 0x21
	ConnectorNoSeparable    uint8 = 0x23
	ConnectorMPO1x16        uint8 = 0x27
)

var connectorNames = map[uint8]string{
	ConnectorLC:             "LC",
	ConnectorOpticalPigtail: "Optical pigtail",
	ConnectorMPO1x12:        "MPO 1x12",
	ConnectorMPO2x16:        "MPO 2x16",
	ConnectorCopperPigtail:  "Copper pigtail",
	ConnectorNoSeparable:    "No separable connector",
	ConnectorMPO1x16:        "MPO 1x16",
}

// ConnectorName returns the SFF-8024 connector name for code.
func ConnectorName(code uint8) string {
	if name, ok := connectorNames[code]; ok {
		return name
	}
	return unknownName(code)
}

// Transmitter technology codes (SFF-8636 byte 147 bits 7:4, CMIS media
// interface technology).
const (
	TxTech850VCSEL          uint8 = 0x0
	TxTech1490DFB           uint8 = 0x9
	TxTechCopperUnequalized uint8 = 0xA
	TxTechCopperPassiveEq   uint8 = 0xB
	TxTechCopperNearFarLim  uint8 = 0xC
	TxTechCopperFarLim      uint8 = 0xD
	TxTechCopperNearLim     uint8 = 0xE
	TxTechCopperLinearEq    uint8 = 0xF
)

var txTechNames = map[uint8]string{
	0x0: "850 nm VCSEL",
	0x1: "1310 nm VCSEL",
	0x2: "1550 nm VCSEL",
	0x3: "1310 nm FP",
	0x4: "1310 nm DFB",
	0x5: "1550 nm DFB",
	0x6: "1310 nm EML",
	0x7: "1550 nm EML",
	0x8: "Other",
	0x9: "1490 nm DFB",
	0xA: "Copper cable unequalized",
	0xB: "Copper cable passive equalized",
	0xC: "Copper cable, near and far end limiting active equalizers",
	0xD: "Copper cable, far end limiting active equalizers",
	0xE: "Copper cable, near end limiting active equalizers",
	0xF: "Copper cable, linear active equalizers",
}

// TxTechName returns the transmitter technology name for code.
func TxTechName(code uint8) string {
	if name, ok := txTechNames[code]; ok {
		return name
	}
	return unknownName(code)
}

// IsCopperTech reports whether the transmitter technology is a copper cable.
func IsCopperTech(code uint8) bool {
	return code >= TxTechCopperUnequalized && code <= TxTechCopperLinearEq
}

// CableType is the cable family derived from connector and technology.
type CableType uint8

const (
	CableTypeUndefined CableType = iota
	CableTypeOptical
	CableTypeActiveOptical
	CableTypePassiveCopper
	CableTypeActiveCopper
)

var cableTypeNames = map[CableType]string{
	CableTypeOptical:       "Optical",
	CableTypeActiveOptical: "Active Optical Cable",
	CableTypePassiveCopper: "Passive Copper",
	CableTypeActiveCopper:  "Active Copper",
}

func (t CableType) String() string {
	if name, ok := cableTypeNames[t]; ok {
		return name
	}
	return Undefined
}

// IsOpticalTransceiver reports whether t is a separable optical module.
func (t CableType) IsOpticalTransceiver() bool {
	return t == CableTypeOptical
}

type cableTypeKey struct {
	connector uint8
	tech      uint8
}

var cableTypeTable = buildCableTypeTable()

func buildCableTypeTable() map[cableTypeKey]CableType {
	table := make(map[cableTypeKey]CableType)
	optical := []uint8{ConnectorLC, ConnectorOpticalPigtail, ConnectorMPO1x12, ConnectorMPO2x16, ConnectorMPO1x16}
	for tech := TxTech850VCSEL; tech <= TxTech1490DFB; tech++ {
		for _, conn := range optical {
			table[cableTypeKey{conn, tech}] = CableTypeOptical
		}
		table[cableTypeKey{ConnectorNoSeparable, tech}] = CableTypeActiveOptical
	}
	for _, conn := range []uint8{ConnectorCopperPigtail, ConnectorNoSeparable} {
		table[cableTypeKey{conn, TxTechCopperUnequalized}] = CableTypePassiveCopper
		table[cableTypeKey{conn, TxTechCopperPassiveEq}] = CableTypePassiveCopper
		for tech := TxTechCopperNearFarLim; tech <= TxTechCopperLinearEq; tech++ {
			table[cableTypeKey{conn, tech}] = CableTypeActiveCopper
		}
	}
	return table
}

// LookupCableType maps a (connector, transmitter technology) pair.
func LookupCableType(connector, tech uint8) (CableType, bool) {
	t, ok := cableTypeTable[cableTypeKey{connector: connector, tech: tech}]
	if !ok {
		return CableTypeUndefined, false
	}
	return t, true
}

// ResolveCableType is LookupCableType with the UNDEFINED sentinel.
func ResolveCableType(connector, tech uint8, c *diag.Collector) CableType {
	if t, ok := LookupCableType(connector, tech); ok {
		return t
	}
	miss(c, "CableType", fmt.Sprintf("connector=%s tech=0x%X", hex8(connector), tech), Undefined)
	return CableTypeUndefined
}

// OPACertifiedMarker flags a cable certified for Omni-Path links.
const OPACertifiedMarker uint8 = 0xAB

// CertifiedRate is the certified data rate of an OPA cable.
type CertifiedRate uint8

const (
	CertifiedRateUndefined CertifiedRate = iota
	CertifiedRate100G
	CertifiedRate200G
	CertifiedRate100G200G
)

var certifiedRateNames = map[CertifiedRate]string{
	CertifiedRate100G:     "100G",
	CertifiedRate200G:     "200G",
	CertifiedRate100G200G: "100G/200G",
}

var certifiedRateTable = map[uint8]CertifiedRate{
	0x01: CertifiedRate100G,
	0x02: CertifiedRate200G,
	0x03: CertifiedRate100G200G,
}

func (r CertifiedRate) String() string {
	if name, ok := certifiedRateNames[r]; ok {
		return name
	}
	return Undefined
}

// LookupCertifiedRate maps the OPA certified data rate code.
func LookupCertifiedRate(code uint8) (CertifiedRate, bool) {
	r, ok := certifiedRateTable[code]
	if !ok {
		return CertifiedRateUndefined, false
	}
	return r, true
}

// ResolveCertifiedRate is LookupCertifiedRate with the UNDEFINED sentinel.
func ResolveCertifiedRate(code uint8, c *diag.Collector) CertifiedRate {
	if r, ok := LookupCertifiedRate(code); ok {
		return r
	}
	miss(c, "CertifiedRate", hex8(code), Undefined)
	return CertifiedRateUndefined
}

// ModuleType is the SFF-8024 identifier of the output module.
type ModuleType uint8

// ModuleTypeUndefined is outside the SFF-8024 identifiers in use.
const ModuleTypeUndefined ModuleType = 0xFF

const (
	ModuleTypeSFP      ModuleType = 0x03
	ModuleTypeQSFP     ModuleType = 0x0C
	ModuleTypeQSFPPlus ModuleType = 0x0D
	ModuleTypeQSFP28   ModuleType = 0x11
	ModuleTypeQSFPDD   ModuleType = 0x18
	ModuleTypeOSFP     ModuleType = 0x19
	ModuleTypeQSFPCMIS ModuleType = 0x1E
)

var moduleTypeNames = map[ModuleType]string{
	ModuleTypeSFP:      "SFP/SFP+/SFP28",
	ModuleTypeQSFP:     "QSFP",
	ModuleTypeQSFPPlus: "QSFP+",
	ModuleTypeQSFP28:   "QSFP28",
	ModuleTypeQSFPDD:   "QSFP-DD",
	ModuleTypeOSFP:     "OSFP",
	ModuleTypeQSFPCMIS: "QSFP+ (CMIS)",
}

func (m ModuleType) String() string {
	if name, ok := moduleTypeNames[m]; ok {
		return name
	}
	return Undefined
}

// LookupModuleType maps an SFF-8024 identifier byte.
func LookupModuleType(code uint8) (ModuleType, bool) {
	m := ModuleType(code)
	if _, ok := moduleTypeNames[m]; !ok {
		return ModuleTypeUndefined, false
	}
	return m, true
}

// ResolveModuleType is LookupModuleType with the UNDEFINED sentinel.
func ResolveModuleType(code uint8, c *diag.Collector) ModuleType {
	if m, ok := LookupModuleType(code); ok {
		return m
	}
	miss(c, "ModuleType", hex8(code), Undefined)
	return ModuleTypeUndefined
}

// ReachClass is the SFF-8024 extended specification compliance code.
type ReachClass uint8

// ReachClassUndefined is a reserved SFF-8024 extended compliance code.
const ReachClassUndefined ReachClass = 0xFF

var reachClassNames = map[ReachClass]string{
	0x00: "Unspecified",
	0x01: "100G AOC (BER 5e-5)",
	0x02: "100GBASE-SR4",
	0x03: "100GBASE-LR4",
	0x04: "100GBASE-ER4",
	0x05: "100GBASE-SR10",
	0x06: "100G CWDM4",
	0x07: "100G PSM4",
	0x08: "100G ACC (BER 5e-5)",
	0x0B: "100GBASE-CR4",
	0x18: "100G AOC (BER 1e-12)",
	0x19: "100G ACC (BER 1e-12)",
}

func (r ReachClass) String() string {
	if name, ok := reachClassNames[r]; ok {
		return name
	}
	return Undefined
}

// LookupReachClass maps an extended compliance code.
func LookupReachClass(code uint8) (ReachClass, bool) {
	r := ReachClass(code)
	if _, ok := reachClassNames[r]; !ok {
		return ReachClassUndefined, false
	}
	return r, true
}

// ResolveReachClass is LookupReachClass with the UNDEFINED sentinel.
func ResolveReachClass(code uint8, c *diag.Collector) ReachClass {
	if r, ok := LookupReachClass(code); ok {
		return r
	}
	miss(c, "ReachClass", hex8(code), Undefined)
	return ReachClassUndefined
}
