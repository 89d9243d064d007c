package pcap

import (
	"testing"

	"github.com/google/gopacket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serialize(t *testing.T, ls ...gopacket.SerializableLayer) []byte {
	t.Helper()
	buf := gopacket.NewSerializeBuffer()
	opts := gopacket.SerializeOptions{FixLengths: true}
	require.NoError(t, gopacket.SerializeLayers(buf, opts, ls...))
	out := append([]byte(nil), buf.Bytes()...)
	// ICRC and VCRC are not checked on decode.
	return append(out, 0xa1, 0xa2, 0xa3, 0xa4, 0xb1, 0xb2)
}

type saFrame struct {
	slid, dlid uint16
	global     bool
	mad        MAD
	sa         SA
	data       []byte
}

func (f saFrame) bytes(t *testing.T) []byte {
	t.Helper()
	body := make([]byte, SADataLen)
	copy(body, f.data)

	mad := f.mad
	if mad.BaseVersion == 0 {
		mad.BaseVersion = 1
	}
	if mad.MgmtClass == 0 {
		mad.MgmtClass = MgmtClassSubnAdm
	}
	if mad.ClassVersion == 0 {
		mad.ClassVersion = 2
	}
	sa := f.sa

	lrh := &LRH{SL: 0, LNH: LNHIBALocal, DLID: f.dlid, SLID: f.slid}
	ls := []gopacket.SerializableLayer{lrh}
	if f.global {
		lrh.LNH = LNHIBAGlobal
		ls = append(ls, &GRH{IPVer: 6, NxtHdr: GRHNextHeaderIBA, HopLmt: 255, SGID: [16]byte{0: 0xfe, 1: 0x80, 15: 0x01}})
	}
	ls = append(ls,
		&BTH{OpCode: OpUDSendOnly, PKey: 0xffff, DestQP: 1},
		&DETH{QKey: 0x80010000, SrcQP: 1},
		&mad,
		&sa,
		gopacket.Payload(body),
	)
	return serialize(t, ls...)
}

func TestLayerDecodeLocal(t *testing.T) {
	frame := saFrame{
		slid: 0x0002,
		dlid: 0x0010,
		mad: MAD{
			Method:            MethodGetTableResp,
			Status:            0x0000,
			TID:               0x1122334455667788,
			AttributeID:       0x0011,
			AttributeModifier: 7,
		},
		sa:   SA{SMKey: 0xabcd, AttributeOffset: 15, ComponentMask: 0x3},
		data: []byte{0xde, 0xad},
	}
	data := frame.bytes(t)
	require.Len(t, data, LRHLen+BTHLen+DETHLen+MADLen+ICRCLen+2)

	packet := gopacket.NewPacket(data, LayerTypeLRH, gopacket.Default)
	require.Nil(t, packet.ErrorLayer())

	lrh := packet.Layer(LayerTypeLRH).(*LRH)
	assert.Equal(t, LNHIBALocal, lrh.LNH)
	assert.Equal(t, uint16(0x0002), lrh.SLID)
	assert.Equal(t, uint16(0x0010), lrh.DLID)
	assert.Equal(t, uint16(len(data)-2)/4, lrh.PktLen)
	assert.Equal(t, "0x0002->0x0010", packet.LinkLayer().LinkFlow().String())

	bth := packet.Layer(LayerTypeBTH).(*BTH)
	assert.Equal(t, OpUDSendOnly, bth.OpCode)
	assert.True(t, bth.IsUD())
	assert.Equal(t, uint16(0xffff), bth.PKey)

	deth := packet.Layer(LayerTypeDETH).(*DETH)
	assert.Equal(t, uint32(0x80010000), deth.QKey)

	mad := packet.Layer(LayerTypeMAD).(*MAD)
	assert.True(t, mad.IsResponse())
	assert.Equal(t, uint64(0x1122334455667788), mad.TID)
	assert.Equal(t, uint16(0x0011), mad.AttributeID)
	assert.Equal(t, uint32(7), mad.AttributeModifier)

	sa := packet.Layer(LayerTypeSA).(*SA)
	assert.Equal(t, uint64(0xabcd), sa.SMKey)
	assert.Equal(t, uint16(15), sa.AttributeOffset)
	assert.Equal(t, uint64(0x3), sa.ComponentMask)
	require.Len(t, sa.Payload(), SADataLen)
	assert.Equal(t, []byte{0xde, 0xad}, sa.Payload()[:2])

	app := packet.ApplicationLayer()
	require.NotNil(t, app)
	assert.Equal(t, LayerTypeSA, app.LayerType())
}

func TestLayerDecodeGlobal(t *testing.T) {
	frame := saFrame{
		slid:   1,
		dlid:   2,
		global: true,
		mad:    MAD{Method: MethodGetResp, AttributeID: 0x0035},
	}
	packet := gopacket.NewPacket(frame.bytes(t), LayerTypeLRH, gopacket.Default)
	require.Nil(t, packet.ErrorLayer())

	grh, ok := packet.Layer(LayerTypeGRH).(*GRH)
	require.True(t, ok)
	assert.Equal(t, uint8(6), grh.IPVer)
	assert.Equal(t, GRHNextHeaderIBA, grh.NxtHdr)
	assert.Equal(t, uint8(0xfe), grh.SGID[0])
	assert.Equal(t, uint16(BTHLen+DETHLen+MADLen+ICRCLen), grh.PayLen)
	assert.NotNil(t, packet.Layer(LayerTypeSA))
}

func TestLayerDecodeRMPPHeader(t *testing.T) {
	frame := saFrame{
		mad: MAD{Method: MethodGetTableResp, AttributeID: 0x0012},
		sa: SA{
			RMPPVersion: 1,
			RMPPType:    RMPPTypeData,
			RRespTime:   0x1f,
			RMPPFlags:   RMPPFlagActive | RMPPFlagFirst,
			Data1:       1,
			Data2:       660,
		},
	}
	packet := gopacket.NewPacket(frame.bytes(t), LayerTypeLRH, gopacket.Default)
	sa := packet.Layer(LayerTypeSA).(*SA)
	assert.True(t, sa.Active())
	assert.True(t, sa.First())
	assert.False(t, sa.Last())
	assert.Equal(t, uint8(0x1f), sa.RRespTime)
	assert.Equal(t, uint32(1), sa.Segment())
	assert.Equal(t, uint32(660), sa.PayloadLength())
}

func TestLayerDecodeTruncated(t *testing.T) {
	data := []byte{0x00, LNHIBALocal, 0x00, 0x01, 0x00, 0x00, 0x00, 0x02, 0x64, 0x00}
	packet := gopacket.NewPacket(data, LayerTypeLRH, gopacket.Default)
	require.NotNil(t, packet.ErrorLayer())
	assert.NotNil(t, packet.Layer(LayerTypeLRH))
	assert.Nil(t, packet.Layer(LayerTypeBTH))
}

func TestLayerNonSAClass(t *testing.T) {
	frame := saFrame{mad: MAD{MgmtClass: 0x01, Method: MethodGetResp}}
	packet := gopacket.NewPacket(frame.bytes(t), LayerTypeLRH, gopacket.Default)
	require.Nil(t, packet.ErrorLayer())
	assert.NotNil(t, packet.Layer(LayerTypeMAD))
	assert.Nil(t, packet.Layer(LayerTypeSA))
}

func TestMethodName(t *testing.T) {
	assert.Equal(t, "GetTable", MethodName(MethodGetTable))
	assert.Equal(t, "GetTableResp", MethodName(MethodGetTableResp))
	assert.Equal(t, "GetResp", MethodName(0x81))
	assert.Equal(t, "Unknown(0x7f)Resp", MethodName(0xff))
}
