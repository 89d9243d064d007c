package pcap

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcapgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCapture(t *testing.T, linkType layers.LinkType, packets ...[]byte) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	writer := pcapgo.NewWriter(&buf)
	require.NoError(t, writer.WriteFileHeader(65535, linkType))
	for i, packet := range packets {
		ci := gopacket.CaptureInfo{
			Timestamp:     time.Unix(1700000000, int64(i)*int64(time.Millisecond)),
			CaptureLength: len(packet),
			Length:        len(packet),
		}
		require.NoError(t, writer.WritePacket(ci, packet))
	}
	return &buf
}

func pattern(n int, seed byte) []byte {
	out := make([]byte, n)
	for i := range out {
		out[i] = seed + byte(i)
	}
	return out
}

func segment(t *testing.T, tid uint64, seg uint32, flags uint8, payLen uint32, data []byte) []byte {
	return saFrame{
		slid: 1,
		dlid: 9,
		mad:  MAD{Method: MethodGetTableResp, TID: tid, AttributeID: 0x0012},
		sa: SA{
			RMPPVersion:     1,
			RMPPType:        RMPPTypeData,
			RMPPFlags:       RMPPFlagActive | flags,
			Data1:           seg,
			Data2:           payLen,
			AttributeOffset: 48,
		},
		data: data,
	}.bytes(t)
}

func TestExtractSingleResponse(t *testing.T) {
	record := pattern(116, 0x10)
	capture := writeCapture(t, LinkTypeInfiniBand, saFrame{
		slid: 1,
		dlid: 5,
		mad:  MAD{Method: MethodGetResp, TID: 42, AttributeID: 0x0011},
		data: record,
	}.bytes(t))

	var seen []string
	e := &Extractor{OnPacket: func(d string) { seen = append(seen, d) }}
	payloads, err := e.Extract(capture)
	require.NoError(t, err)
	require.Len(t, payloads, 1)

	p := payloads[0]
	assert.Equal(t, uint64(42), p.TID)
	assert.Equal(t, uint16(0x0011), p.AttributeID)
	assert.Equal(t, MethodGetResp, p.Method)
	assert.Equal(t, uint16(1), p.SLID)
	assert.Equal(t, uint16(5), p.DLID)
	assert.Equal(t, 1, p.Segments)
	require.Len(t, p.Data, SADataLen)
	assert.Equal(t, record, p.Data[:116])
	assert.Len(t, p.MAD, MADLen)
	assert.True(t, p.Timestamp.Equal(time.Unix(1700000000, 0)))

	assert.Equal(t, []string{DispositionSA}, seen)
	assert.Equal(t, Stats{Packets: 1, SA: 1, Payloads: 1, Incomplete: []uint64{}}, e.Stats())
}

func TestExtractRMPPReassembly(t *testing.T) {
	seg1 := pattern(SADataLen, 0x00)
	seg2 := pattern(SADataLen, 0x40)
	seg3 := pattern(SADataLen, 0x80)
	total := uint32(3*SAHeaderLen + 2*SADataLen + 50)

	capture := writeCapture(t, LinkTypeInfiniBand,
		segment(t, 7, 1, RMPPFlagFirst, total, seg1),
		// retransmitted and out of order
		segment(t, 7, 3, RMPPFlagLast, SAHeaderLen+50, seg3),
		segment(t, 7, 1, RMPPFlagFirst, total, seg1),
		segment(t, 7, 2, 0, 0, seg2),
	)

	e := &Extractor{}
	payloads, err := e.Extract(capture)
	require.NoError(t, err)
	require.Len(t, payloads, 1)

	p := payloads[0]
	assert.Equal(t, 3, p.Segments)
	assert.Equal(t, uint16(48), p.AttributeOffset)
	require.Len(t, p.Data, 2*SADataLen+50)
	assert.Equal(t, seg1, p.Data[:SADataLen])
	assert.Equal(t, seg2, p.Data[SADataLen:2*SADataLen])
	assert.Equal(t, seg3[:50], p.Data[2*SADataLen:])

	stats := e.Stats()
	assert.Equal(t, 4, stats.Packets)
	assert.Equal(t, 4, stats.SA)
	assert.Equal(t, 1, stats.Payloads)
	assert.Empty(t, stats.Incomplete)
}

func TestExtractIncompleteTransfer(t *testing.T) {
	capture := writeCapture(t, LinkTypeInfiniBand,
		segment(t, 9, 1, RMPPFlagFirst, 1000, pattern(SADataLen, 0)),
		segment(t, 10, 1, RMPPFlagFirst|RMPPFlagLast, SAHeaderLen+16, pattern(SADataLen, 1)),
	)

	e := &Extractor{}
	payloads, err := e.Extract(capture)
	require.NoError(t, err)
	require.Len(t, payloads, 1)
	assert.Equal(t, uint64(10), payloads[0].TID)
	assert.Len(t, payloads[0].Data, 16)
	assert.Equal(t, []uint64{9}, e.Stats().Incomplete)
}

func TestExtractAbortDropsTransfer(t *testing.T) {
	abort := saFrame{
		slid: 1,
		mad:  MAD{Method: MethodGetTableResp, TID: 9, AttributeID: 0x0012},
		sa:   SA{RMPPVersion: 1, RMPPType: RMPPTypeAbort, RMPPFlags: RMPPFlagActive},
	}.bytes(t)
	capture := writeCapture(t, LinkTypeInfiniBand,
		segment(t, 9, 1, RMPPFlagFirst, 1000, pattern(SADataLen, 0)),
		abort,
	)

	e := &Extractor{}
	payloads, err := e.Extract(capture)
	require.NoError(t, err)
	assert.Empty(t, payloads)
	assert.Empty(t, e.Stats().Incomplete)
}

func TestExtractFiltering(t *testing.T) {
	request := saFrame{mad: MAD{Method: MethodGet, TID: 1, AttributeID: 0x0011}}.bytes(t)
	node := saFrame{mad: MAD{Method: MethodGetResp, TID: 1, AttributeID: 0x0011}}.bytes(t)
	path := saFrame{mad: MAD{Method: MethodGetResp, TID: 2, AttributeID: 0x0035}}.bytes(t)
	smp := saFrame{mad: MAD{MgmtClass: 0x01, Method: MethodGetResp, TID: 3, AttributeID: 0x0015}}.bytes(t)
	truncated := []byte{0x00, LNHIBALocal, 0x00, 0x01, 0x00, 0x00, 0x00, 0x02, 0x64}

	t.Run("responses only", func(t *testing.T) {
		e := &Extractor{}
		payloads, err := e.Extract(writeCapture(t, LinkTypeInfiniBand, request, node, path, smp, truncated))
		require.NoError(t, err)
		require.Len(t, payloads, 2)
		stats := e.Stats()
		assert.Equal(t, 5, stats.Packets)
		assert.Equal(t, 2, stats.Skipped)
		assert.Equal(t, 1, stats.Malformed)
	})

	t.Run("with requests", func(t *testing.T) {
		e := &Extractor{IncludeRequests: true}
		payloads, err := e.Extract(writeCapture(t, LinkTypeInfiniBand, request, node, path))
		require.NoError(t, err)
		assert.Len(t, payloads, 3)
	})

	t.Run("attribute", func(t *testing.T) {
		e := &Extractor{Attribute: 0x0035}
		payloads, err := e.Extract(writeCapture(t, LinkTypeInfiniBand, request, node, path))
		require.NoError(t, err)
		require.Len(t, payloads, 1)
		assert.Equal(t, uint64(2), payloads[0].TID)
	})

	t.Run("max", func(t *testing.T) {
		e := &Extractor{Max: 1}
		payloads, err := e.Extract(writeCapture(t, LinkTypeInfiniBand, node, path))
		require.NoError(t, err)
		require.Len(t, payloads, 1)
		assert.Equal(t, 1, e.Stats().Packets)
	})
}

func TestExtractUnsupportedLinkType(t *testing.T) {
	e := &Extractor{}
	_, err := e.Extract(writeCapture(t, layers.LinkTypeEthernet))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported link type 1")
}

func TestExtractFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sa.pcap")
	capture := writeCapture(t, LinkTypeInfiniBand, saFrame{mad: MAD{Method: MethodGetResp, AttributeID: 0x0020}}.bytes(t))
	require.NoError(t, os.WriteFile(path, capture.Bytes(), 0644))

	e := &Extractor{}
	payloads, err := e.ExtractFile(path)
	require.NoError(t, err)
	require.Len(t, payloads, 1)
	assert.Equal(t, uint16(0x0020), payloads[0].AttributeID)

	_, err = e.ExtractFile(filepath.Join(t.TempDir(), "missing.pcap"))
	assert.Error(t, err)
}

func TestExtractPcapNG(t *testing.T) {
	var buf bytes.Buffer
	writer, err := pcapgo.NewNgWriter(&buf, LinkTypeInfiniBand)
	require.NoError(t, err)
	packet := saFrame{mad: MAD{Method: MethodGetResp, TID: 5, AttributeID: 0x0039}}.bytes(t)
	require.NoError(t, writer.WritePacket(gopacket.CaptureInfo{
		Timestamp:      time.Unix(1700000000, 0),
		CaptureLength:  len(packet),
		Length:         len(packet),
		InterfaceIndex: 0,
	}, packet))
	require.NoError(t, writer.Flush())

	e := &Extractor{}
	payloads, err := e.Extract(&buf)
	require.NoError(t, err)
	require.Len(t, payloads, 1)
	assert.Equal(t, uint16(0x0039), payloads[0].AttributeID)
}

func TestCollectCaptures(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.pcap", "a.PCAPNG", "notes.txt", "sub/c.cap"} {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, nil, 0644))
	}

	files, err := CollectCaptures(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.PCAPNG"),
		filepath.Join(dir, "b.pcap"),
		filepath.Join(dir, "sub", "c.cap"),
	}, files)

	single, err := CollectCaptures(filepath.Join(dir, "b.pcap"))
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "b.pcap")}, single)

	_, err = CollectCaptures(filepath.Join(dir, "missing"))
	assert.Error(t, err)
}
