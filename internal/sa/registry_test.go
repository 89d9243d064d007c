package sa

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tturner/sadecode/internal/datagram"
)

func TestRegistryLookup(t *testing.T) {
	c, ok := Lookup(AttrNodeRecord)
	require.True(t, ok)
	assert.Equal(t, "NodeRecord", c.Name)
	assert.True(t, c.Variable)
	assert.Equal(t, NodeRecordFixedLen, c.Len)

	c, ok = Lookup(AttrVLArbTableRecord)
	require.True(t, ok)
	assert.Equal(t, VLArbTableRecordLen, c.Len)

	_, ok = Lookup(0)
	assert.False(t, ok)
}

func TestParseAttr(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"PathRecord", "PathRecord", false},
		{"pathrecord", "PathRecord", false},
		{"0x0035", "PathRecord", false},
		{"53", "PathRecord", false},
		{"cableinfo", "CableInfo", false},
		{"0x9999", "", true},
		{"bogus", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			c, err := ParseAttr(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, c.Name)
		})
	}
}

func TestCodecsOrdering(t *testing.T) {
	all := Codecs()
	require.NotEmpty(t, all)
	assert.Equal(t, AttrNotice, all[0].ID)

	seenStructure := false
	var last uint16
	for _, c := range all {
		if !c.IsAttribute() {
			seenStructure = true
			continue
		}
		assert.False(t, seenStructure, "%s listed after a structure", c.Name)
		assert.Greater(t, c.ID, last)
		last = c.ID
	}
}

func TestCodecDecodeMatchesDecoder(t *testing.T) {
	rec := LinkRecord{FromLID: 1, FromPort: 2, ToPort: 3, ToLID: 4}
	c, ok := Lookup(AttrLinkRecord)
	require.True(t, ok)

	got, err := c.Decode(Decoder{}, rec.Encode(binary.BigEndian), 0, 0)
	require.NoError(t, err)
	assert.Equal(t, rec, got)
}

func TestDecodeTableFixedStride(t *testing.T) {
	var payload []byte
	for i := 0; i < 3; i++ {
		rec := LinkRecord{FromLID: uint32(i + 1), FromPort: 1, ToPort: 2, ToLID: uint32(i + 10)}
		payload = append(payload, rec.Encode(binary.BigEndian)...)
		payload = append(payload, 0, 0, 0, 0)
	}
	c, _ := Lookup(AttrLinkRecord)

	for _, attrOffset := range []uint16{2, 0} {
		recs, err := DecodeTable(c, Decoder{}, payload, attrOffset)
		require.NoError(t, err)
		require.Len(t, recs, 3)
		assert.Equal(t, uint32(12), recs[2].(LinkRecord).ToLID)
	}

	_, err := DecodeTable(c, Decoder{}, payload, 1)
	assert.ErrorIs(t, err, datagram.ErrSizeMismatch)
}

func TestDecodeTableVariableRecords(t *testing.T) {
	stride := 15 * AttributeOffsetUnit
	payload := make([]byte, 2*stride)
	copy(payload, NodeRecord{LID: 1, NodeInfo: sampleNodeInfo(), NodeDesc: "node-a"}.Encode(binary.BigEndian))
	copy(payload[stride:], NodeRecord{LID: 2, NodeInfo: sampleNodeInfo(), NodeDesc: "node-b"}.Encode(binary.BigEndian))

	c, _ := Lookup(AttrNodeRecord)
	recs, err := DecodeTable(c, Decoder{}, payload, 15)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "node-a", recs[0].(NodeRecord).NodeDesc)
	assert.Equal(t, "node-b", recs[1].(NodeRecord).NodeDesc)
	assert.Equal(t, uint32(2), recs[1].(NodeRecord).LID)

	_, err = DecodeTable(c, Decoder{}, payload, 0)
	assert.Error(t, err)
}

func TestDecodeTableIgnoresPadding(t *testing.T) {
	payload := append(LinkRecord{ToLID: 9}.Encode(binary.BigEndian), make([]byte, 8)...)
	c, _ := Lookup(AttrLinkRecord)
	recs, err := DecodeTable(c, Decoder{}, payload, 0)
	require.NoError(t, err)
	assert.Len(t, recs, 1)
}

func TestTableOffsets(t *testing.T) {
	c, _ := Lookup(AttrPathRecord)
	offsets, stride, err := TableOffsets(c, 3*PathRecordLen+10, 8)
	require.NoError(t, err)
	assert.Equal(t, PathRecordLen, stride)
	assert.Equal(t, []int{0, 64, 128}, offsets)
	assert.Equal(t, 64, TableMsgLen(200, 64, stride))
	assert.Equal(t, 8, TableMsgLen(200, 192, stride))

	offsets, _, err = TableOffsets(c, 10, 8)
	require.NoError(t, err)
	assert.Empty(t, offsets)
}
