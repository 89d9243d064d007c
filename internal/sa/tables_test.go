package sa

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tturner/sadecode/internal/datagram"
)

func TestLFTRecord(t *testing.T) {
	ports := make([]uint8, LFTBlockSize)
	for i := range ports {
		ports[i] = uint8(i%48 + 1)
	}
	rec := LFTRecord{LID: 0x10, BlockNum: 0x3FFFF}
	require.NoError(t, rec.SetLinearFDB(ports))

	for _, tc := range orders {
		t.Run(tc.name, func(t *testing.T) {
			buf := rec.Encode(tc.order)
			require.Len(t, buf, LFTRecordLen)
			got, err := NewDecoder(tc.order, nil).LFTRecord(buf, 0)
			require.NoError(t, err)
			assert.Equal(t, rec, got)
			assert.Equal(t, uint8(2), got.Port(1))
		})
	}
	assert.Equal(t, uint32(0x3FFFF*64), rec.FirstLID())
}

func TestTableSettersRejectWrongSizes(t *testing.T) {
	var lft LFTRecord
	err := lft.SetLinearFDB(make([]uint8, 63))
	var sm *datagram.SizeMismatchError
	require.ErrorAs(t, err, &sm)
	assert.Equal(t, "LinearFDB", sm.Field)
	assert.Equal(t, 64, sm.Expected)
	assert.Equal(t, 63, sm.Actual)

	var mft MFTRecord
	assert.ErrorIs(t, mft.SetPortMask(make([]uint64, 9)), datagram.ErrSizeMismatch)

	var pk PKeyTableRecord
	assert.ErrorIs(t, pk.SetPKeys(nil), datagram.ErrSizeMismatch)

	var vl VLArbTableRecord
	assert.ErrorIs(t, vl.SetElements(binary.BigEndian, make([]VLArbElement, 64)), datagram.ErrSizeMismatch)
	assert.ErrorIs(t, vl.SetMatrix(binary.BigEndian, make([]uint32, 33)), datagram.ErrSizeMismatch)
	assert.Equal(t, VLArbTableRecord{}, vl)
}

func TestMFTRecordRoundTrip(t *testing.T) {
	rec := MFTRecord{LID: 0xC000, Position: 3, BlockNum: 0x1FFFFF}
	require.NoError(t, rec.SetPortMask([]uint64{1, 2, 3, 4, 5, 6, 7, 0xFFFFFFFFFFFFFFFF}))
	for _, tc := range orders {
		t.Run(tc.name, func(t *testing.T) {
			got, err := NewDecoder(tc.order, nil).MFTRecord(rec.Encode(tc.order), 0)
			require.NoError(t, err)
			assert.Equal(t, rec, got)
		})
	}
}

func TestPKeyTableRecord(t *testing.T) {
	keys := make([]PKey, PKeyBlockSize)
	keys[0] = NewPKey(0x7FFF, true)
	keys[1] = NewPKey(0x0001, false)
	rec := PKeyTableRecord{LID: 5, BlockNum: 1, PortNum: 2}
	require.NoError(t, rec.SetPKeys(keys))

	assert.Equal(t, PKey(0xFFFF), rec.PKeys[0])
	assert.True(t, rec.PKeys[0].FullMember())
	assert.Equal(t, uint16(0x7FFF), rec.PKeys[0].Base())
	assert.False(t, rec.PKeys[1].FullMember())

	for _, tc := range orders {
		t.Run(tc.name, func(t *testing.T) {
			got, err := NewDecoder(tc.order, nil).PKeyTableRecord(rec.Encode(tc.order), 0)
			require.NoError(t, err)
			assert.Equal(t, rec, got)
		})
	}
}

func TestVLArbViewsShareBytes(t *testing.T) {
	elems := make([]VLArbElement, VLArbElements)
	elems[0] = VLArbElement{VL: 1, Weight: 2}
	elems[1] = VLArbElement{VL: 3, Weight: 4}
	elems[127] = VLArbElement{VL: 31, Weight: 255}

	var big, little VLArbTableRecord
	require.NoError(t, big.SetElements(binary.BigEndian, elems))
	require.NoError(t, little.SetElements(binary.LittleEndian, elems))

	assert.Equal(t, uint32(0x01020304), big.Matrix[0])
	assert.Equal(t, uint32(0x04030201), little.Matrix[0])
	assert.Equal(t, big.Elements, little.Elements)
	assert.Equal(t, elems[127], big.Elements[127])

	words := make([]uint32, VLArbMatrixWords)
	words[0] = 0x0A0B0C0D
	var m VLArbTableRecord
	require.NoError(t, m.SetMatrix(binary.BigEndian, words))
	assert.Equal(t, VLArbElement{VL: 0x0A, Weight: 0x0B}, m.Elements[0])
	assert.Equal(t, VLArbElement{VL: 0x0C, Weight: 0x0D}, m.Elements[1])
}

func TestVLArbTableRecordRoundTrip(t *testing.T) {
	for _, tc := range orders {
		t.Run(tc.name, func(t *testing.T) {
			rec := VLArbTableRecord{LID: 9, OutputPortNum: 4, BlockNum: 2}
			words := make([]uint32, VLArbMatrixWords)
			for i := range words {
				words[i] = uint32(i) * 0x01010101
			}
			require.NoError(t, rec.SetMatrix(tc.order, words))

			buf := rec.Encode(tc.order)
			require.Len(t, buf, VLArbTableRecordLen)
			got, err := NewDecoder(tc.order, nil).VLArbTableRecord(buf, 0)
			require.NoError(t, err)
			assert.Equal(t, rec, got)
			assert.Equal(t, words[31], got.Matrix[31])
		})
	}
}

func TestSCMapRecords(t *testing.T) {
	var m SCMap
	for i := range m {
		m[i] = uint8(31 - i)
	}

	for _, tc := range orders {
		t.Run(tc.name, func(t *testing.T) {
			d := NewDecoder(tc.order, nil)

			sc2sl := SC2SLRecord{LID: 1, SL: m}
			got1, err := d.SC2SLRecord(sc2sl.Encode(tc.order), 0)
			require.NoError(t, err)
			assert.Equal(t, sc2sl, got1)

			sl2sc := SL2SCRecord{LID: 2, SC: m}
			got2, err := d.SL2SCRecord(sl2sc.Encode(tc.order), 0)
			require.NoError(t, err)
			assert.Equal(t, sl2sc, got2)

			sc2vl := SC2VLRecord{LID: 3, Port: 7, VL: m}
			got3, err := d.SC2VLRecord(sc2vl.Encode(tc.order), 0)
			require.NoError(t, err)
			assert.Equal(t, sc2vl, got3)

			sc2sc := SC2SCRecord{LID: 4, InPort: 1, OutPort: 2, SC: m}
			got4, err := d.SC2SCRecord(sc2sc.Encode(tc.order), 0)
			require.NoError(t, err)
			assert.Equal(t, sc2sc, got4)
		})
	}
}

func TestSCMapMasksReservedBits(t *testing.T) {
	buf := make([]byte, SCMapRecordLen)
	buf[tableDataStart] = 0xFF
	got, err := Decoder{}.SC2SLRecord(buf, 0)
	require.NoError(t, err)
	assert.Equal(t, uint8(31), got.SL[0])
}
