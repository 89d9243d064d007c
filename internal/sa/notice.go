package sa

import (
	"encoding/binary"

	"github.com/tturner/sadecode/internal/datagram"
)

const (
	// NoticeHeaderLen is the fixed part of a notice; class data follows.
	NoticeHeaderLen = 96
	NoticeDataLen   = 64
	noticeAttrLen   = 6
)

var (
	ntIsGeneric = datagram.Flag[uint32]{Bit: 31}
	ntType      = datagram.Bits[uint32]{Shift: 24, Width: 7}
	ntProducer  = datagram.Bits[uint32]{Shift: 0, Width: 24}
	ntToggle    = datagram.Flag[uint16]{Bit: 15}
	ntCount     = datagram.Bits[uint16]{Shift: 0, Width: 15}
)

// NoticeAttr is the generic or vendor specific head of a notice.
type NoticeAttr interface {
	generic() bool
	word() (uint32, uint16)
}

// GenericNoticeAttr identifies a trap defined by the management class.
type GenericNoticeAttr struct {
	Type         uint8
	ProducerType uint32
	TrapNumber   uint16
}

// VendorNoticeAttr identifies a vendor specific trap.
type VendorNoticeAttr struct {
	Type     uint8
	VendorID uint32
	DeviceID uint16
}

func (GenericNoticeAttr) generic() bool { return true }

func (a GenericNoticeAttr) word() (uint32, uint16) {
	w := ntIsGeneric.Set(0, true)
	w = ntType.Set(w, uint32(a.Type))
	return ntProducer.Set(w, a.ProducerType), a.TrapNumber
}

func (VendorNoticeAttr) generic() bool { return false }

func (a VendorNoticeAttr) word() (uint32, uint16) {
	w := ntType.Set(0, uint32(a.Type))
	return ntProducer.Set(w, a.VendorID), a.DeviceID
}

func decodeNoticeAttr(v datagram.View) NoticeAttr {
	w := v.U32(0)
	if ntIsGeneric.Get(w) {
		return GenericNoticeAttr{
			Type:         uint8(ntType.Get(w)),
			ProducerType: ntProducer.Get(w),
			TrapNumber:   v.U16(4),
		}
	}
	return VendorNoticeAttr{
		Type:     uint8(ntType.Get(w)),
		VendorID: ntProducer.Get(w),
		DeviceID: v.U16(4),
	}
}

// Notice is a trap or notice with its trailing class data.
type Notice struct {
	Attr      NoticeAttr
	Toggle    bool
	Count     uint16
	IssuerLID uint32
	// IssuerGID is a global GID.
	IssuerGID GID
	Data      [NoticeDataLen]byte
	ClassData []byte
}

var noticeLayout = datagram.NewLayout(
	datagram.Part{Name: "attr", Len: noticeAttrLen},
	datagram.Part{Name: "toggleCount", Len: 2},
	datagram.Part{Name: "issuer", Len: 8},
	datagram.Part{Name: "IssuerGID", Len: GIDLen},
	datagram.Part{Name: "Data", Len: NoticeDataLen},
	datagram.Part{Name: "ClassData", Len: datagram.Variable},
)

var noticeDatagram = datagram.Composed[Notice]{
	Layout: noticeLayout,
	Assemble: func(parts []datagram.View) Notice {
		attr := decodeNoticeAttr(parts[0])
		tc := parts[1].U16(0)
		n := Notice{
			Attr:      attr,
			Toggle:    ntToggle.Get(tc),
			Count:     ntCount.Get(tc),
			IssuerLID: parts[2].U32(0),
			IssuerGID: decodeGID(parts[3]),
			ClassData: parts[5].Clone(0, parts[5].Len()),
		}
		parts[4].CopyTo(0, n.Data[:])
		return n
	},
}

// IsGeneric reports whether the notice carries a generic attribute. It
// follows the concrete Attr type, which is also what Encode writes.
func (n Notice) IsGeneric() bool {
	return n.Attr != nil && n.Attr.generic()
}

// Issuer returns the issuer GID in its global interpretation.
func (n Notice) Issuer() GlobalGID {
	return n.IssuerGID.Global()
}

// Len returns the encoded length, header plus class data.
func (n Notice) Len() int {
	return NoticeHeaderLen + len(n.ClassData)
}

// Encode returns the header followed by the class data. A nil Attr encodes
// as a zero vendor attribute.
func (n Notice) Encode(order binary.ByteOrder) []byte {
	return encode(n.Len(), order, func(v datagram.View) {
		attr := n.Attr
		if attr == nil {
			attr = VendorNoticeAttr{}
		}
		w, trap := attr.word()
		v.PutU32(0, w)
		v.PutU16(4, trap)
		v.PutU16(6, ntCount.Set(ntToggle.Set(0, n.Toggle), n.Count))
		v.PutU32(8, n.IssuerLID)
		n.IssuerGID.put(v.Slice(16, GIDLen))
		v.PutBytes(32, n.Data[:])
		v.PutBytes(NoticeHeaderLen, n.ClassData)
	})
}

// Notice decodes a notice of msgLen bytes at offset. The class data is
// msgLen minus the 96-byte header; a shorter message is a size mismatch.
func (d Decoder) Notice(buf []byte, offset, msgLen int) (Notice, error) {
	return noticeDatagram.DecodeMessage(buf, offset, msgLen, d.order(), d.Diagnostics)
}
