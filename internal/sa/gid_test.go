package sa

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var orders = []struct {
	name  string
	order binary.ByteOrder
}{
	{"big", binary.BigEndian},
	{"little", binary.LittleEndian},
}

func sequentialGIDBytes() [GIDLen]byte {
	var raw [GIDLen]byte
	for i := range raw {
		raw[i] = byte(i)
	}
	return raw
}

func TestGIDRegisterOffsetsFollowOrder(t *testing.T) {
	raw := sequentialGIDBytes()
	big := GIDFromBytes(binary.BigEndian, raw).Reg32()
	little := GIDFromBytes(binary.LittleEndian, raw).Reg32()

	assert.Equal(t, Reg32{HH: 0x00010203, HL: 0x04050607, LH: 0x08090A0B, LL: 0x0C0D0E0F}, big)
	assert.Equal(t, Reg32{LL: 0x03020100, LH: 0x07060504, HL: 0x0B0A0908, HH: 0x0F0E0D0C}, little)
	assert.NotEqual(t, big, little)
}

func TestGIDRegisterViewsAgree(t *testing.T) {
	raw := sequentialGIDBytes()
	for _, tc := range orders {
		t.Run(tc.name, func(t *testing.T) {
			g := GIDFromBytes(tc.order, raw)
			r := g.Reg32()
			h, l := g.Reg64()
			assert.Equal(t, uint64(r.HH)<<32|uint64(r.HL), h)
			assert.Equal(t, uint64(r.LH)<<32|uint64(r.LL), l)
		})
	}
}

func TestGIDInterpretations(t *testing.T) {
	for _, tc := range orders {
		t.Run(tc.name, func(t *testing.T) {
			ll := LinkLocalGID{FormatPrefix: LinkLocalPrefix, InterfaceID: 0x0011223344556677}
			assert.Equal(t, ll, ll.GID(tc.order).LinkLocal())

			sl := SiteLocalGID{FormatPrefix: SiteLocalPrefix, SubnetPrefix: 0xBEEF, InterfaceID: 42}
			assert.Equal(t, sl, sl.GID(tc.order).SiteLocal())

			gl := GlobalGID{SubnetPrefix: 0xFE80000000000000, InterfaceID: 0x0002C90300001234}
			g := gl.GID(tc.order)
			assert.Equal(t, gl, g.Global())
			assert.Equal(t, "fe80:0000:0000:0000:0002:c903:0000:1234", g.String())
			assert.False(t, g.IsMulticast())

			mc := MulticastGID{FormatPrefix: MulticastPrefix, Flags: 1, Scope: 2, GroupID: [14]byte{0xA0, 1, 2, 3}}
			mg := mc.GID(tc.order)
			assert.Equal(t, mc, mg.Multicast())
			assert.True(t, mg.IsMulticast())
		})
	}
}

func TestGIDLinkLocalWireBytes(t *testing.T) {
	g := LinkLocalGID{FormatPrefix: LinkLocalPrefix, InterfaceID: 1}.GID(binary.BigEndian)
	assert.Equal(t, byte(0xFE), g.Raw[0])
	assert.Equal(t, byte(0x80), g.Raw[1])
	assert.Equal(t, byte(0x01), g.Raw[15])
}

func TestGIDMulticastMirrorsUnderLittleEndian(t *testing.T) {
	var big [GIDLen]byte
	big[0] = 0xFF
	big[1] = 0x15
	for i := 2; i < GIDLen; i++ {
		big[i] = byte(0x20 + i)
	}
	var little [GIDLen]byte
	for i := range big {
		little[GIDLen-1-i] = big[i]
	}

	want := GIDFromBytes(binary.BigEndian, big).Multicast()
	assert.Equal(t, uint8(1), want.Flags)
	assert.Equal(t, uint8(5), want.Scope)
	assert.Equal(t, byte(0x22), want.GroupID[0])
	assert.Equal(t, want, GIDFromBytes(binary.LittleEndian, little).Multicast())
}

func TestDecodeGIDOutOfRange(t *testing.T) {
	_, err := Decoder{}.GID(make([]byte, 20), 8)
	require.Error(t, err)
}
