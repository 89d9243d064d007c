package sa

import (
	"encoding/binary"

	"github.com/tturner/sadecode/internal/datagram"
	"github.com/tturner/sadecode/internal/sa/enums"
)

const (
	NodeInfoLen = 44
	// NodeDescLen is the maximum node description length.
	NodeDescLen = 64
	// NodeRecordFixedLen covers the record key and the NodeInfo.
	NodeRecordFixedLen = recordKeyLen + NodeInfoLen
	NodeRecordLen      = NodeRecordFixedLen + NodeDescLen

	recordKeyLen = 8
)

var (
	nodeLocalPort = datagram.Bits[uint32]{Shift: 24, Width: 8}
	nodeVendorID  = datagram.Bits[uint32]{Shift: 0, Width: 24}
)

// NodeInfo describes one fabric node.
type NodeInfo struct {
	BaseVersion     uint8
	ClassVersion    uint8
	NodeType        uint8
	Type            enums.NodeType
	NumPorts        uint8
	SystemImageGUID uint64
	NodeGUID        uint64
	PortGUID        uint64
	PartitionCap    uint16
	DeviceID        uint16
	Revision        uint32
	LocalPortNum    uint8
	// VendorID is always masked to 24 bits.
	VendorID uint32
}

func decodeNodeInfo(v datagram.View) NodeInfo {
	word := v.U32(40)
	return NodeInfo{
		BaseVersion:     v.U8(0),
		ClassVersion:    v.U8(1),
		NodeType:        v.U8(2),
		Type:            enums.ResolveNodeType(v.U8(2), v.Diagnostics()),
		NumPorts:        v.U8(3),
		SystemImageGUID: v.U64(8),
		NodeGUID:        v.U64(16),
		PortGUID:        v.U64(24),
		PartitionCap:    v.U16(32),
		DeviceID:        v.U16(34),
		Revision:        v.U32(36),
		LocalPortNum:    uint8(nodeLocalPort.Get(word)),
		VendorID:        nodeVendorID.Get(word),
	}
}

func (n NodeInfo) put(v datagram.View) {
	v.PutU8(0, n.BaseVersion)
	v.PutU8(1, n.ClassVersion)
	v.PutU8(2, n.NodeType)
	v.PutU8(3, n.NumPorts)
	v.PutU64(8, n.SystemImageGUID)
	v.PutU64(16, n.NodeGUID)
	v.PutU64(24, n.PortGUID)
	v.PutU16(32, n.PartitionCap)
	v.PutU16(34, n.DeviceID)
	v.PutU32(36, n.Revision)
	word := nodeLocalPort.Set(0, uint32(n.LocalPortNum))
	v.PutU32(40, nodeVendorID.Set(word, n.VendorID))
}

// Encode returns the 44-byte wire form.
func (n NodeInfo) Encode(order binary.ByteOrder) []byte {
	return encode(NodeInfoLen, order, n.put)
}

// NodeRecord is a NodeInfo keyed by LID with its description.
type NodeRecord struct {
	LID      uint32
	NodeInfo NodeInfo
	NodeDesc string
}

var nodeRecordLayout = datagram.NewLayout(
	datagram.Part{Name: "key", Len: recordKeyLen},
	datagram.Part{Name: "NodeInfo", Len: NodeInfoLen},
	datagram.Part{Name: "NodeDesc", Len: datagram.Variable},
)

var nodeRecordDatagram = datagram.Composed[NodeRecord]{
	Layout: nodeRecordLayout,
	Assemble: func(parts []datagram.View) NodeRecord {
		desc := parts[2]
		if desc.Len() > NodeDescLen {
			desc = desc.Slice(0, NodeDescLen)
		}
		return NodeRecord{
			LID:      parts[0].U32(0),
			NodeInfo: decodeNodeInfo(parts[1]),
			NodeDesc: desc.String(0, desc.Len()),
		}
	},
}

// Encode returns the full 116-byte record with the description NUL padded.
func (r NodeRecord) Encode(order binary.ByteOrder) []byte {
	return encode(NodeRecordLen, order, func(v datagram.View) {
		v.PutU32(0, r.LID)
		r.NodeInfo.put(v.Slice(recordKeyLen, NodeInfoLen))
		v.PutString(NodeRecordFixedLen, NodeDescLen, r.NodeDesc, false)
	})
}

// NodeInfo decodes a bare NodeInfo at offset.
func (d Decoder) NodeInfo(buf []byte, offset int) (NodeInfo, error) {
	return decodeFixed(d, NodeInfoLen, decodeNodeInfo, buf, offset)
}

// NodeRecord decodes a record of msgLen bytes at offset. Everything past the
// NodeInfo, up to 64 bytes, is the node description; msgLen must cover at
// least the fixed part.
func (d Decoder) NodeRecord(buf []byte, offset, msgLen int) (NodeRecord, error) {
	return nodeRecordDatagram.DecodeMessage(buf, offset, msgLen, d.order(), d.Diagnostics)
}
