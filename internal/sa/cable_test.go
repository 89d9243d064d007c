package sa

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tturner/sadecode/internal/diag"
	"github.com/tturner/sadecode/internal/sa/enums"
)

func sampleCableLower() CableInfoLower {
	return CableInfoLower{
		Identifier:        0x11,
		ExtIdentifier:     0xD9,
		PowerClassHigh:    3,
		PowerClassLow:     1,
		CLEIPresent:       true,
		TxCDR:             true,
		Connector:         enums.ConnectorMPO1x12,
		SpecCompliance:    [8]byte{0x80},
		Encoding:          0x06,
		BitRateNominal:    0xFF,
		LengthOM3:         35,
		LengthCopperOrOM4: 50,
		DeviceTech:        0x0C,
		TxTech:            0,
		VendorName:        "INTEL CORP",
		VendorOUI:         [3]byte{0x00, 0x11, 0x75},
		VendorPN:          "FCBN425QE1C10",
		VendorRev:         "A1",
		Wavelength:        0x4268,
		WavelengthTol:     0x0BB8,
		MaxCaseTemp:       70,
		CCBase:            0x5A,

		ModuleType:   enums.ModuleTypeQSFP28,
		PowerClass:   enums.PowerClass5,
		CableType:    enums.CableTypeOptical,
		LengthMeters: 100,
	}
}

func sampleCableUpper(dateCode string) CableInfoUpper {
	return CableInfoUpper{
		LinkCodes:       0x02,
		Options:         [3]byte{0, 0x07, 0xDE},
		VendorSN:        "X2150001",
		DateCode:        DateCode{Raw: dateCode},
		EnhancedOptions: 0x10,
		CCExt:           0x33,
		OPACertMarker:   enums.OPACertifiedMarker,
		OPACertDataRate: 0x02,
	}
}

func TestCableInfoRecordRoundTrip(t *testing.T) {
	rec := CableInfoRecord{LID: 0x21, Port: 5, Length: 63, Address: CableUpperAddress, PortType: 3}
	for i := range rec.Data {
		rec.Data[i] = byte(i)
	}
	for _, tc := range orders {
		t.Run(tc.name, func(t *testing.T) {
			buf := rec.Encode(tc.order)
			require.Len(t, buf, CableInfoRecordLen)
			got, err := NewDecoder(tc.order, nil).CableInfoRecord(buf, 0)
			require.NoError(t, err)
			assert.Equal(t, rec, got)
			assert.Equal(t, 64, got.DataLen())
		})
	}
}

func TestCableInfoLowerAndUpperAreDisjoint(t *testing.T) {
	lowerOnly := NewCableInfoStd(binary.BigEndian, sampleCableLower(), CableInfoUpper{})
	assert.Equal(t, CableInfoUpper{}, lowerOnly.UpperObject(nil))
	assert.Equal(t, sampleCableLower(), lowerOnly.LowerObject(nil))

	upperOnly := NewCableInfoStd(binary.BigEndian, CableInfoLower{}, sampleCableUpper(""))
	assert.Equal(t, CableInfoLower{
		ModuleType: enums.ModuleTypeUndefined,
		PowerClass: enums.PowerClass1,
	}, upperOnly.LowerObject(nil))
	upper := upperOnly.UpperObject(nil)
	assert.Equal(t, "X2150001", upper.VendorSN)
	assert.Equal(t, enums.ReachClass(0x02), upper.ReachClass)
	assert.True(t, upper.Certified)
	assert.Equal(t, enums.CertifiedRate200G, upper.CertifiedRate)
}

func TestCableInfoStdRoundTrip(t *testing.T) {
	for _, tc := range orders {
		t.Run(tc.name, func(t *testing.T) {
			s := NewCableInfoStd(tc.order, sampleCableLower(), sampleCableUpper("19061501"))

			decoded, err := NewDecoder(tc.order, nil).CableInfoStd(s.Encode(), 0)
			require.NoError(t, err)
			assert.Equal(t, s.Data, decoded.Data)

			info := decoded.CableInfo(nil)
			again := NewCableInfoStd(tc.order, info.Lower, info.Upper)
			assert.Equal(t, s.Data, again.Data)
			assert.Equal(t, sampleCableLower(), info.Lower)
		})
	}
}

func TestCableInfoDateCode(t *testing.T) {
	s := NewCableInfoStd(binary.BigEndian, CableInfoLower{}, sampleCableUpper("19061501"))
	dc := s.UpperObject(nil).DateCode
	assert.Equal(t, "19061501", dc.Raw)
	assert.Equal(t, 2019, dc.Year)
	assert.Equal(t, 6, dc.Month)
	assert.Equal(t, 15, dc.Day)
	assert.Equal(t, "01", dc.Lot)
	require.NotNil(t, dc.Date)
	assert.Equal(t, "2019-06-15", dc.Date.Format("2006-01-02"))
}

func TestCableInfoBadDateCodeDegrades(t *testing.T) {
	diags := diag.NewCollector()
	s := NewCableInfoStd(binary.BigEndian, CableInfoLower{}, sampleCableUpper("19136001"))

	u := s.UpperObject(diags)
	assert.Nil(t, u.DateCode.Date)
	assert.Equal(t, "19136001", u.DateCode.Raw)
	assert.Zero(t, u.DateCode.Year)
	assert.Equal(t, "X2150001", u.VendorSN)
	assert.Equal(t, 1, diags.Count(diag.KindParseFailure))
}

func TestCableInfoLengthScaling(t *testing.T) {
	tests := []struct {
		name      string
		connector uint8
		tech      uint8
		raw       uint8
		want      int
		cable     enums.CableType
	}{
		{"optical module in 2 m units", enums.ConnectorMPO1x12, enums.TxTech850VCSEL, 50, 100, enums.CableTypeOptical},
		{"passive copper in meters", enums.ConnectorNoSeparable, enums.TxTechCopperUnequalized, 3, 3, enums.CableTypePassiveCopper},
		{"active optical in meters", enums.ConnectorNoSeparable, enums.TxTech850VCSEL, 30, 30, enums.CableTypeActiveOptical},
		{"undefined pair in meters", enums.ConnectorMPO1x12, enums.TxTechCopperUnequalized, 5, 5, enums.CableTypeUndefined},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := CableInfoLower{Connector: tt.connector, DeviceTech: tt.tech << 4, TxTech: tt.tech, LengthCopperOrOM4: tt.raw}
			got := NewCableInfoStd(binary.BigEndian, l, CableInfoUpper{}).LowerObject(nil)
			assert.Equal(t, tt.cable, got.CableType)
			assert.Equal(t, tt.want, got.LengthMeters)
		})
	}
}

func TestCableInfoLookupMisses(t *testing.T) {
	diags := diag.NewCollector()
	l := CableInfoLower{Identifier: 0x42, Connector: 0x99}
	u := CableInfoUpper{LinkCodes: 0x7F, OPACertMarker: enums.OPACertifiedMarker, OPACertDataRate: 0x09}
	info := NewCableInfoStd(binary.BigEndian, l, u).CableInfo(diags)

	assert.Equal(t, enums.ModuleTypeUndefined, info.Lower.ModuleType)
	assert.Equal(t, enums.CableTypeUndefined, info.Lower.CableType)
	assert.Equal(t, enums.ReachClassUndefined, info.Upper.ReachClass)
	assert.Equal(t, enums.CertifiedRateUndefined, info.Upper.CertifiedRate)
	assert.Equal(t, 4, diags.Count(diag.KindLookupMiss))
}

func TestCableInfoUncertifiedSkipsRateLookup(t *testing.T) {
	diags := diag.NewCollector()
	u := CableInfoUpper{LinkCodes: 0x02, OPACertDataRate: 0x09}
	got := NewCableInfoStd(binary.BigEndian, CableInfoLower{}, u).UpperObject(diags)
	assert.False(t, got.Certified)
	assert.Equal(t, enums.CertifiedRateUndefined, got.CertifiedRate)
	assert.Zero(t, diags.Len())
}

func TestAssembleCableInfo(t *testing.T) {
	s := NewCableInfoStd(binary.BigEndian, sampleCableLower(), sampleCableUpper("19061501"))
	lower := CableInfoRecord{Address: CableLowerAddress, Length: 63}
	upper := CableInfoRecord{Address: CableUpperAddress, Length: 63}
	copy(lower.Data[:], s.Data[:CableInfoDataLen])
	copy(upper.Data[:], s.Data[CableInfoDataLen:])

	got, err := AssembleCableInfo(binary.BigEndian, upper, lower)
	require.NoError(t, err)
	assert.Equal(t, s.Data, got.Data)

	_, err = AssembleCableInfo(binary.BigEndian, CableInfoRecord{Address: 0})
	assert.ErrorIs(t, err, ErrCableAddress)
}

func TestDDCableInfo(t *testing.T) {
	info := DDCableInfo{
		Identifier:         0x18,
		VendorName:         "INTEL CORP",
		VendorOUI:          [3]byte{0x00, 0x11, 0x75},
		VendorPN:           "DD-AOC-10",
		VendorRev:          "B0",
		VendorSN:           "DD0001",
		DateCode:           DateCode{Raw: "21030400"},
		CLEI:               "CLEICODE01",
		PowerClassCode:     7,
		MaxPower:           48,
		LengthMultiplier:   2,
		LengthBase:         3,
		Connector:          enums.ConnectorNoSeparable,
		CopperAttenuation:  [6]byte{1, 2, 3, 4, 5, 6},
		MediaLaneInfo:      0xF0,
		MediaInterfaceTech: enums.TxTechCopperUnequalized,
		PageChecksum:       0x5C,
		OPACertMarker:      enums.OPACertifiedMarker,
		OPACertDataRate:    0x03,
	}
	for _, tc := range orders {
		t.Run(tc.name, func(t *testing.T) {
			buf := info.Encode(tc.order)
			require.Len(t, buf, DDCableInfoLen)

			got, err := NewDecoder(tc.order, nil).DDCableInfo(buf, 0)
			require.NoError(t, err)
			assert.Equal(t, enums.ModuleTypeQSFPDD, got.ModuleType)
			assert.Equal(t, 8, got.PowerClass)
			assert.InDelta(t, 12.0, got.MaxPowerWatts, 1e-9)
			assert.InDelta(t, 30.0, got.LengthMeters, 1e-9)
			assert.Equal(t, enums.CableTypePassiveCopper, got.CableType)
			assert.True(t, got.Certified)
			assert.Equal(t, enums.CertifiedRate100G200G, got.CertifiedRate)
			require.NotNil(t, got.DateCode.Date)
			assert.Equal(t, 2021, got.DateCode.Year)
			assert.Equal(t, "00", got.DateCode.Lot)

			assert.Equal(t, buf, got.Encode(tc.order))
		})
	}
}

func TestDDCableLengthMultipliers(t *testing.T) {
	tests := []struct {
		mult uint8
		base uint8
		want float64
	}{
		{0, 25, 2.5},
		{1, 7, 7},
		{2, 3, 30},
		{3, 1, 100},
	}
	for _, tt := range tests {
		got, err := Decoder{}.DDCableInfo(DDCableInfo{LengthMultiplier: tt.mult, LengthBase: tt.base}.Encode(nil), 0)
		require.NoError(t, err)
		assert.InDelta(t, tt.want, got.LengthMeters, 1e-9)
	}
}
