package sa

import (
	"encoding/binary"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tturner/sadecode/internal/datagram"
	"github.com/tturner/sadecode/internal/diag"
	"github.com/tturner/sadecode/internal/sa/enums"
)

const (
	CableInfoRecordLen  = 72
	CableInfoDataLen    = 64
	CableInfoStdLen     = 2 * CableInfoDataLen
	cableInfoDataOffset = 8

	// Addresses of the two halves of upper page 00h.
	CableLowerAddress = 128
	CableUpperAddress = 192

	dateCodeLayout = "060102"
)

var (
	ciLength    = datagram.Bits[uint8]{Shift: 0, Width: 7}
	ciAddress   = datagram.Bits[uint16]{Shift: 4, Width: 12}
	ciPortType  = datagram.Bits[uint16]{Shift: 0, Width: 2}
	ciPowerHigh = datagram.Bits[uint8]{Shift: 6, Width: 2}
	ciPowerLow  = datagram.Bits[uint8]{Shift: 0, Width: 2}
	ciCLEI      = datagram.Flag[uint8]{Bit: 4}
	ciTxCDR     = datagram.Flag[uint8]{Bit: 3}
	ciRxCDR     = datagram.Flag[uint8]{Bit: 2}
	ciTxTech    = datagram.Bits[uint8]{Shift: 4, Width: 4}
)

// ErrCableAddress is returned when a cable info record does not cover one of
// the two halves of upper page 00h.
var ErrCableAddress = errors.New("cable info address is not 128 or 192")

// CableInfoRecord carries up to 64 bytes of a port's cable EEPROM.
type CableInfoRecord struct {
	LID uint32
	// Port is the switch port, or 0 for an HFI.
	Port uint8
	// Length is the number of valid data bytes minus one.
	Length   uint8
	Address  uint16
	PortType uint8
	Data     [CableInfoDataLen]byte
}

// DataLen returns the number of valid bytes in Data.
func (r CableInfoRecord) DataLen() int {
	return int(r.Length) + 1
}

func decodeCableInfoRecord(v datagram.View) CableInfoRecord {
	addr := v.U16(6)
	r := CableInfoRecord{
		LID:      v.U32(0),
		Port:     v.U8(4),
		Length:   ciLength.Get(v.U8(5)),
		Address:  ciAddress.Get(addr),
		PortType: uint8(ciPortType.Get(addr)),
	}
	v.CopyTo(cableInfoDataOffset, r.Data[:])
	return r
}

func (r CableInfoRecord) put(v datagram.View) {
	v.PutU32(0, r.LID)
	v.PutU8(4, r.Port)
	v.PutU8(5, ciLength.Set(0, r.Length))
	v.PutU16(6, ciPortType.Set(ciAddress.Set(0, r.Address), uint16(r.PortType)))
	v.PutBytes(cableInfoDataOffset, r.Data[:])
}

// Encode returns the 72-byte wire form.
func (r CableInfoRecord) Encode(order binary.ByteOrder) []byte {
	return encode(CableInfoRecordLen, order, r.put)
}

// CableInfoRecord decodes a CableInfoRecord at offset.
func (d Decoder) CableInfoRecord(buf []byte, offset int) (CableInfoRecord, error) {
	return decodeFixed(d, CableInfoRecordLen, decodeCableInfoRecord, buf, offset)
}

// DateCode is a vendor date code "YYMMDDLL". Date is nil when the text does
// not parse; Raw is always kept.
type DateCode struct {
	Raw   string
	Year  int
	Month int
	Day   int
	Lot   string
	Date  *time.Time
}

func parseDateCode(field, raw string, c *diag.Collector) DateCode {
	dc := DateCode{Raw: raw}
	if raw == "" {
		return dc
	}
	if len(raw) < len(dateCodeLayout) {
		c.Add(diag.ParseFailure(field, raw, fmt.Errorf("date code %q is shorter than YYMMDD", raw)))
		return dc
	}
	dc.Lot = strings.TrimSpace(raw[len(dateCodeLayout):])
	t, err := time.Parse(dateCodeLayout, raw[:len(dateCodeLayout)])
	if err != nil {
		c.Add(diag.ParseFailure(field, raw, err))
		return dc
	}
	dc.Year, dc.Month, dc.Day = t.Year(), int(t.Month()), t.Day()
	dc.Date = &t
	return dc
}

// CableInfoLower is the lower half of upper page 00h (addresses 128-191).
type CableInfoLower struct {
	Identifier        uint8
	ExtIdentifier     uint8
	PowerClassHigh    uint8
	PowerClassLow     uint8
	CLEIPresent       bool
	TxCDR             bool
	RxCDR             bool
	Connector         uint8
	SpecCompliance    [8]byte
	Encoding          uint8
	BitRateNominal    uint8
	ExtRateSelect     uint8
	LengthSMF         uint8
	LengthOM3         uint8
	LengthOM2         uint8
	LengthOM1         uint8
	LengthCopperOrOM4 uint8
	DeviceTech        uint8
	TxTech            uint8
	VendorName        string
	ExtModuleCodes    uint8
	VendorOUI         [3]byte
	VendorPN          string
	VendorRev         string
	Wavelength        uint16
	WavelengthTol     uint16
	MaxCaseTemp       uint8
	CCBase            uint8

	ModuleType enums.ModuleType
	PowerClass enums.PowerClass
	CableType  enums.CableType
	// LengthMeters is LengthCopperOrOM4 scaled for the cable type: 2 m units
	// for separable optical modules, meters otherwise.
	LengthMeters int
}

// CableInfoUpper is the upper half of upper page 00h (addresses 192-255).
type CableInfoUpper struct {
	LinkCodes          uint8
	Options            [3]byte
	VendorSN           string
	DateCode           DateCode
	DiagMonitoringType uint8
	EnhancedOptions    uint8
	CCExt              uint8
	OPACertMarker      uint8
	OPACertDataRate    uint8
	VendorSpecific     [30]byte

	ReachClass    enums.ReachClass
	Certified     bool
	CertifiedRate enums.CertifiedRate
}

// CableInfo is both halves of upper page 00h.
type CableInfo struct {
	Lower CableInfoLower
	Upper CableInfoUpper
}

func decodeCableInfoLower(v datagram.View) CableInfoLower {
	ext := v.U8(1)
	l := CableInfoLower{
		Identifier:        v.U8(0),
		ExtIdentifier:     ext,
		PowerClassHigh:    ciPowerHigh.Get(ext),
		PowerClassLow:     ciPowerLow.Get(ext),
		CLEIPresent:       ciCLEI.Get(ext),
		TxCDR:             ciTxCDR.Get(ext),
		RxCDR:             ciRxCDR.Get(ext),
		Connector:         v.U8(2),
		Encoding:          v.U8(11),
		BitRateNominal:    v.U8(12),
		ExtRateSelect:     v.U8(13),
		LengthSMF:         v.U8(14),
		LengthOM3:         v.U8(15),
		LengthOM2:         v.U8(16),
		LengthOM1:         v.U8(17),
		LengthCopperOrOM4: v.U8(18),
		DeviceTech:        v.U8(19),
		TxTech:            ciTxTech.Get(v.U8(19)),
		VendorName:        v.String(20, 16),
		ExtModuleCodes:    v.U8(36),
		VendorPN:          v.String(40, 16),
		VendorRev:         v.String(56, 2),
		Wavelength:        v.U16(58),
		WavelengthTol:     v.U16(60),
		MaxCaseTemp:       v.U8(62),
		CCBase:            v.U8(63),
	}
	v.CopyTo(3, l.SpecCompliance[:])
	v.CopyTo(37, l.VendorOUI[:])

	c := v.Diagnostics()
	l.ModuleType = enums.ResolveModuleType(l.Identifier, c)
	l.PowerClass = enums.ResolvePowerClass(l.PowerClassHigh, l.PowerClassLow, c)
	l.CableType = enums.ResolveCableType(l.Connector, l.TxTech, c)
	l.LengthMeters = int(l.LengthCopperOrOM4)
	if l.CableType.IsOpticalTransceiver() {
		l.LengthMeters *= 2
	}
	return l
}

func (l CableInfoLower) put(v datagram.View) {
	ext := ciPowerHigh.Set(l.ExtIdentifier, l.PowerClassHigh)
	ext = ciPowerLow.Set(ext, l.PowerClassLow)
	ext = ciCLEI.Set(ext, l.CLEIPresent)
	ext = ciTxCDR.Set(ext, l.TxCDR)
	ext = ciRxCDR.Set(ext, l.RxCDR)
	v.PutU8(0, l.Identifier)
	v.PutU8(1, ext)
	v.PutU8(2, l.Connector)
	v.PutBytes(3, l.SpecCompliance[:])
	v.PutU8(11, l.Encoding)
	v.PutU8(12, l.BitRateNominal)
	v.PutU8(13, l.ExtRateSelect)
	v.PutU8(14, l.LengthSMF)
	v.PutU8(15, l.LengthOM3)
	v.PutU8(16, l.LengthOM2)
	v.PutU8(17, l.LengthOM1)
	v.PutU8(18, l.LengthCopperOrOM4)
	v.PutU8(19, ciTxTech.Set(l.DeviceTech, l.TxTech))
	v.PutString(20, 16, l.VendorName, true)
	v.PutU8(36, l.ExtModuleCodes)
	v.PutBytes(37, l.VendorOUI[:])
	v.PutString(40, 16, l.VendorPN, true)
	v.PutString(56, 2, l.VendorRev, true)
	v.PutU16(58, l.Wavelength)
	v.PutU16(60, l.WavelengthTol)
	v.PutU8(62, l.MaxCaseTemp)
	v.PutU8(63, l.CCBase)
}

func decodeCableInfoUpper(v datagram.View) CableInfoUpper {
	c := v.Diagnostics()
	u := CableInfoUpper{
		LinkCodes:          v.U8(0),
		VendorSN:           v.String(4, 16),
		DateCode:           parseDateCode("CableInfo.DateCode", v.String(20, 8), c),
		DiagMonitoringType: v.U8(28),
		EnhancedOptions:    v.U8(29),
		CCExt:              v.U8(31),
		OPACertMarker:      v.U8(32),
		OPACertDataRate:    v.U8(33),
	}
	v.CopyTo(1, u.Options[:])
	v.CopyTo(34, u.VendorSpecific[:])

	u.ReachClass = enums.ResolveReachClass(u.LinkCodes, c)
	u.Certified = u.OPACertMarker == enums.OPACertifiedMarker
	if u.Certified {
		u.CertifiedRate = enums.ResolveCertifiedRate(u.OPACertDataRate, c)
	}
	return u
}

func (u CableInfoUpper) put(v datagram.View) {
	v.PutU8(0, u.LinkCodes)
	v.PutBytes(1, u.Options[:])
	v.PutString(4, 16, u.VendorSN, true)
	v.PutString(20, 8, u.DateCode.Raw, true)
	v.PutU8(28, u.DiagMonitoringType)
	v.PutU8(29, u.EnhancedOptions)
	v.PutU8(31, u.CCExt)
	v.PutU8(32, u.OPACertMarker)
	v.PutU8(33, u.OPACertDataRate)
	v.PutBytes(34, u.VendorSpecific[:])
}

// CableInfoStd is upper page 00h of a QSFP module as two 64-byte halves.
type CableInfoStd struct {
	Data  [CableInfoStdLen]byte
	order binary.ByteOrder
}

func decodeCableInfoStd(v datagram.View) CableInfoStd {
	s := CableInfoStd{order: v.Order()}
	v.CopyTo(0, s.Data[:])
	return s
}

// NewCableInfoStd builds the page from its two halves.
func NewCableInfoStd(order binary.ByteOrder, lower CableInfoLower, upper CableInfoUpper) CableInfoStd {
	s := CableInfoStd{}
	s.SetLower(order, lower)
	s.SetUpper(order, upper)
	return s
}

func (s CableInfoStd) view() datagram.View {
	return datagram.Wrap(s.Data[:], s.order)
}

func (s *CableInfoStd) half(order binary.ByteOrder, off int) datagram.View {
	s.order = order
	return datagram.Wrap(s.Data[:], order).Slice(off, CableInfoDataLen)
}

// SetLower writes the lower half.
func (s *CableInfoStd) SetLower(order binary.ByteOrder, l CableInfoLower) {
	l.put(s.half(order, 0))
}

// SetUpper writes the upper half.
func (s *CableInfoStd) SetUpper(order binary.ByteOrder, u CableInfoUpper) {
	u.put(s.half(order, CableInfoDataLen))
}

// LowerObject interprets the lower half. Lookup misses are reported to c.
func (s CableInfoStd) LowerObject(c *diag.Collector) CableInfoLower {
	return decodeCableInfoLower(s.view().WithDiagnostics(c).Slice(0, CableInfoDataLen))
}

// UpperObject interprets the upper half.
func (s CableInfoStd) UpperObject(c *diag.Collector) CableInfoUpper {
	return decodeCableInfoUpper(s.view().WithDiagnostics(c).Slice(CableInfoDataLen, CableInfoDataLen))
}

// CableInfo interprets both halves.
func (s CableInfoStd) CableInfo(c *diag.Collector) CableInfo {
	return CableInfo{Lower: s.LowerObject(c), Upper: s.UpperObject(c)}
}

// Encode returns the 128-byte page.
func (s CableInfoStd) Encode() []byte {
	out := make([]byte, CableInfoStdLen)
	copy(out, s.Data[:])
	return out
}

// CableInfoStd decodes a 128-byte page at offset.
func (d Decoder) CableInfoStd(buf []byte, offset int) (CableInfoStd, error) {
	return decodeFixed(d, CableInfoStdLen, decodeCableInfoStd, buf, offset)
}

// CableInfo decodes a 128-byte page at offset and interprets both halves.
func (d Decoder) CableInfo(buf []byte, offset int) (CableInfo, error) {
	s, err := d.CableInfoStd(buf, offset)
	if err != nil {
		return CableInfo{}, err
	}
	return s.CableInfo(d.Diagnostics), nil
}

// AssembleCableInfo places the data of records fetched at addresses 128 and
// 192 into one page. A missing half stays zero.
func AssembleCableInfo(order binary.ByteOrder, records ...CableInfoRecord) (CableInfoStd, error) {
	s := CableInfoStd{order: order}
	if s.order == nil {
		s.order = binary.BigEndian
	}
	for _, r := range records {
		switch r.Address {
		case CableLowerAddress:
			copy(s.Data[:CableInfoDataLen], r.Data[:])
		case CableUpperAddress:
			copy(s.Data[CableInfoDataLen:], r.Data[:])
		default:
			return CableInfoStd{}, fmt.Errorf("%w: LID 0x%X port %d address %d", ErrCableAddress, r.LID, r.Port, r.Address)
		}
	}
	return s, nil
}
