package sa

import (
	"encoding/binary"

	"github.com/tturner/sadecode/internal/datagram"
	"github.com/tturner/sadecode/internal/sa/enums"
)

// DDCableInfoLen is CMIS upper page 00h.
const DDCableInfoLen = 128

var (
	ddPowerClass   = datagram.Bits[uint8]{Shift: 5, Width: 3}
	ddLengthMult   = datagram.Bits[uint8]{Shift: 6, Width: 2}
	ddLengthBase   = datagram.Bits[uint8]{Shift: 0, Width: 6}
	ddLengthScales = [4]float64{0.1, 1, 10, 100}
)

// DDCableInfo is the QSFP-DD (CMIS) cable description.
type DDCableInfo struct {
	Identifier         uint8
	VendorName         string
	VendorOUI          [3]byte
	VendorPN           string
	VendorRev          string
	VendorSN           string
	DateCode           DateCode
	CLEI               string
	PowerClassCode     uint8
	MaxPower           uint8
	LengthMultiplier   uint8
	LengthBase         uint8
	Connector          uint8
	CopperAttenuation  [6]byte
	MediaLaneInfo      uint8
	MediaInterfaceTech uint8
	PageChecksum       uint8
	OPACertMarker      uint8
	OPACertDataRate    uint8
	VendorSpecific     [30]byte

	ModuleType enums.ModuleType
	// PowerClass is 1-8.
	PowerClass    int
	MaxPowerWatts float64
	LengthMeters  float64
	CableType     enums.CableType
	Certified     bool
	CertifiedRate enums.CertifiedRate
}

func decodeDDCableInfo(v datagram.View) DDCableInfo {
	c := v.Diagnostics()
	length := v.U8(74)
	d := DDCableInfo{
		Identifier:         v.U8(0),
		VendorName:         v.String(1, 16),
		VendorPN:           v.String(20, 16),
		VendorRev:          v.String(36, 2),
		VendorSN:           v.String(38, 16),
		DateCode:           parseDateCode("DDCableInfo.DateCode", v.String(54, 8), c),
		CLEI:               v.String(62, 10),
		PowerClassCode:     ddPowerClass.Get(v.U8(72)),
		MaxPower:           v.U8(73),
		LengthMultiplier:   ddLengthMult.Get(length),
		LengthBase:         ddLengthBase.Get(length),
		Connector:          v.U8(75),
		MediaLaneInfo:      v.U8(82),
		MediaInterfaceTech: v.U8(84),
		PageChecksum:       v.U8(94),
		OPACertMarker:      v.U8(96),
		OPACertDataRate:    v.U8(97),
	}
	v.CopyTo(17, d.VendorOUI[:])
	v.CopyTo(76, d.CopperAttenuation[:])
	v.CopyTo(98, d.VendorSpecific[:])

	d.ModuleType = enums.ResolveModuleType(d.Identifier, c)
	d.PowerClass = enums.DDPowerClass(d.PowerClassCode)
	d.MaxPowerWatts = float64(d.MaxPower) * 0.25
	d.LengthMeters = float64(d.LengthBase) * ddLengthScales[d.LengthMultiplier]
	d.CableType = enums.ResolveCableType(d.Connector, d.MediaInterfaceTech, c)
	d.Certified = d.OPACertMarker == enums.OPACertifiedMarker
	if d.Certified {
		d.CertifiedRate = enums.ResolveCertifiedRate(d.OPACertDataRate, c)
	}
	return d
}

func (d DDCableInfo) put(v datagram.View) {
	v.PutU8(0, d.Identifier)
	v.PutString(1, 16, d.VendorName, true)
	v.PutBytes(17, d.VendorOUI[:])
	v.PutString(20, 16, d.VendorPN, true)
	v.PutString(36, 2, d.VendorRev, true)
	v.PutString(38, 16, d.VendorSN, true)
	v.PutString(54, 8, d.DateCode.Raw, true)
	v.PutString(62, 10, d.CLEI, true)
	v.PutU8(72, ddPowerClass.Set(0, d.PowerClassCode))
	v.PutU8(73, d.MaxPower)
	v.PutU8(74, ddLengthBase.Set(ddLengthMult.Set(0, d.LengthMultiplier), d.LengthBase))
	v.PutU8(75, d.Connector)
	v.PutBytes(76, d.CopperAttenuation[:])
	v.PutU8(82, d.MediaLaneInfo)
	v.PutU8(84, d.MediaInterfaceTech)
	v.PutU8(94, d.PageChecksum)
	v.PutU8(96, d.OPACertMarker)
	v.PutU8(97, d.OPACertDataRate)
	v.PutBytes(98, d.VendorSpecific[:])
}

// Encode returns the 128-byte page.
func (d DDCableInfo) Encode(order binary.ByteOrder) []byte {
	return encode(DDCableInfoLen, order, d.put)
}

// DDCableInfo decodes a CMIS page at offset.
func (d Decoder) DDCableInfo(buf []byte, offset int) (DDCableInfo, error) {
	return decodeFixed(d, DDCableInfoLen, decodeDDCableInfo, buf, offset)
}
