package sa

import (
	"encoding/binary"

	"github.com/tturner/sadecode/internal/datagram"
)

const LinkRecordLen = 12

// LinkRecord is one link between two ports.
type LinkRecord struct {
	FromLID  uint32
	FromPort uint8
	ToPort   uint8
	ToLID    uint32
}

func decodeLinkRecord(v datagram.View) LinkRecord {
	c := datagram.NewCursor(v)
	var r LinkRecord
	r.FromLID = c.U32()
	r.FromPort = c.U8()
	r.ToPort = c.U8()
	c.Skip(2)
	r.ToLID = c.U32()
	return r
}

func (r LinkRecord) put(v datagram.View) {
	c := datagram.NewCursor(v)
	c.PutU32(r.FromLID)
	c.PutU8(r.FromPort)
	c.PutU8(r.ToPort)
	c.Skip(2)
	c.PutU32(r.ToLID)
}

// Encode returns the 12-byte wire form.
func (r LinkRecord) Encode(order binary.ByteOrder) []byte {
	return encode(LinkRecordLen, order, r.put)
}

// LinkRecord decodes a LinkRecord at offset.
func (d Decoder) LinkRecord(buf []byte, offset int) (LinkRecord, error) {
	return decodeFixed(d, LinkRecordLen, decodeLinkRecord, buf, offset)
}
