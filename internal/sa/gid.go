package sa

import (
	"encoding/binary"
	"fmt"

	"github.com/tturner/sadecode/internal/codec"
	"github.com/tturner/sadecode/internal/datagram"
)

// GIDLen is the size of a GID.
const GIDLen = 16

// GID format prefixes.
const (
	LinkLocalPrefix uint16 = 0x3FA // FE80::/10
	SiteLocalPrefix uint16 = 0x3FB // FEC0::/10
	MulticastPrefix uint8  = 0xFF
)

var (
	gidFormatPrefix = datagram.Bits[uint64]{Shift: 54, Width: 10}
	gidSubnetPrefix = datagram.Bits[uint64]{Shift: 0, Width: 16}
	gidMcastFlags   = datagram.Bits[uint8]{Shift: 4, Width: 4}
	gidMcastScope   = datagram.Bits[uint8]{Shift: 0, Width: 4}
)

// GID is a 128-bit global identifier kept as its raw wire bytes plus the
// byte order it was bound with.
//
// The register views mirror a native union: with big-endian order the high
// quadword sits at offset 0, with little-endian order at offset 8. The
// offsets move with the order, not just the byte significance, so every
// accessor computes its offset from the order.
type GID struct {
	Raw   [GIDLen]byte
	order binary.ByteOrder
}

// Reg32 is the GID as four 32-bit registers.
type Reg32 struct {
	HH, HL, LH, LL uint32
}

// LinkLocalGID is the link-local interpretation.
type LinkLocalGID struct {
	FormatPrefix uint16
	InterfaceID  uint64
}

// SiteLocalGID is the site-local interpretation.
type SiteLocalGID struct {
	FormatPrefix uint16
	SubnetPrefix uint16
	InterfaceID  uint64
}

// GlobalGID is the global interpretation.
type GlobalGID struct {
	SubnetPrefix uint64
	InterfaceID  uint64
}

// MulticastGID is the multicast interpretation.
type MulticastGID struct {
	FormatPrefix uint8
	Flags        uint8
	Scope        uint8
	GroupID      [14]byte
}

// NewGID builds a GID from its high and low quadwords for order.
func NewGID(order binary.ByteOrder, high, low uint64) GID {
	g := GID{order: order}
	if order == nil {
		g.order = binary.BigEndian
	}
	hOff, lOff := g.offsets64()
	g.order.PutUint64(g.Raw[hOff:hOff+8], high)
	g.order.PutUint64(g.Raw[lOff:lOff+8], low)
	return g
}

// GIDFromBytes wraps raw bytes received with order.
func GIDFromBytes(order binary.ByteOrder, raw [GIDLen]byte) GID {
	if order == nil {
		order = binary.BigEndian
	}
	return GID{Raw: raw, order: order}
}

func decodeGID(v datagram.View) GID {
	g := GID{order: v.Order()}
	v.CopyTo(0, g.Raw[:])
	return g
}

func (g GID) put(v datagram.View) {
	v.PutBytes(0, g.Raw[:])
}

// Order returns the byte order the GID was bound with.
func (g GID) Order() binary.ByteOrder {
	if g.order == nil {
		return binary.BigEndian
	}
	return g.order
}

func (g GID) big() bool {
	return codec.IsBigEndian(g.Order())
}

// offsets64 returns the byte offsets of the high and low quadwords.
func (g GID) offsets64() (high, low int) {
	if g.big() {
		return 0, 8
	}
	return 8, 0
}

// Reg64 returns the high and low quadwords.
func (g GID) Reg64() (high, low uint64) {
	hOff, lOff := g.offsets64()
	o := g.Order()
	return o.Uint64(g.Raw[hOff : hOff+8]), o.Uint64(g.Raw[lOff : lOff+8])
}

// Reg32 returns the four 32-bit registers.
func (g GID) Reg32() Reg32 {
	o := g.Order()
	at := func(off int) uint32 { return o.Uint32(g.Raw[off : off+4]) }
	if g.big() {
		return Reg32{HH: at(0), HL: at(4), LH: at(8), LL: at(12)}
	}
	return Reg32{LL: at(0), LH: at(4), HL: at(8), HH: at(12)}
}

// LinkLocal interprets the GID as a link-local address.
func (g GID) LinkLocal() LinkLocalGID {
	h, l := g.Reg64()
	return LinkLocalGID{FormatPrefix: uint16(gidFormatPrefix.Get(h)), InterfaceID: l}
}

// SiteLocal interprets the GID as a site-local address.
func (g GID) SiteLocal() SiteLocalGID {
	h, l := g.Reg64()
	return SiteLocalGID{
		FormatPrefix: uint16(gidFormatPrefix.Get(h)),
		SubnetPrefix: uint16(gidSubnetPrefix.Get(h)),
		InterfaceID:  l,
	}
}

// Global interprets the GID as a global address.
func (g GID) Global() GlobalGID {
	h, l := g.Reg64()
	return GlobalGID{SubnetPrefix: h, InterfaceID: l}
}

// Multicast interprets the GID as a multicast address. With little-endian
// order the prefix byte is the last byte and the group id runs backwards.
func (g GID) Multicast() MulticastGID {
	var m MulticastGID
	if g.big() {
		m.FormatPrefix = g.Raw[0]
		m.Flags = gidMcastFlags.Get(g.Raw[1])
		m.Scope = gidMcastScope.Get(g.Raw[1])
		copy(m.GroupID[:], g.Raw[2:])
		return m
	}
	m.FormatPrefix = g.Raw[15]
	m.Flags = gidMcastFlags.Get(g.Raw[14])
	m.Scope = gidMcastScope.Get(g.Raw[14])
	for i := range m.GroupID {
		m.GroupID[i] = g.Raw[13-i]
	}
	return m
}

// IsMulticast reports whether the GID carries the multicast prefix.
func (g GID) IsMulticast() bool {
	return g.Multicast().FormatPrefix == MulticastPrefix
}

// GID encodes the link-local view.
func (l LinkLocalGID) GID(order binary.ByteOrder) GID {
	return NewGID(order, gidFormatPrefix.Set(0, uint64(l.FormatPrefix)), l.InterfaceID)
}

// GID encodes the site-local view.
func (s SiteLocalGID) GID(order binary.ByteOrder) GID {
	h := gidFormatPrefix.Set(0, uint64(s.FormatPrefix))
	h = gidSubnetPrefix.Set(h, uint64(s.SubnetPrefix))
	return NewGID(order, h, s.InterfaceID)
}

// GID encodes the global view.
func (gl GlobalGID) GID(order binary.ByteOrder) GID {
	return NewGID(order, gl.SubnetPrefix, gl.InterfaceID)
}

// GID encodes the multicast view.
func (m MulticastGID) GID(order binary.ByteOrder) GID {
	g := GID{order: order}
	if order == nil {
		g.order = binary.BigEndian
	}
	fs := gidMcastScope.Set(gidMcastFlags.Set(0, m.Flags), m.Scope)
	if g.big() {
		g.Raw[0] = m.FormatPrefix
		g.Raw[1] = fs
		copy(g.Raw[2:], m.GroupID[:])
		return g
	}
	g.Raw[15] = m.FormatPrefix
	g.Raw[14] = fs
	for i := range m.GroupID {
		g.Raw[13-i] = m.GroupID[i]
	}
	return g
}

// String renders the GID in IPv6 notation from its high and low quadwords.
func (g GID) String() string {
	h, l := g.Reg64()
	return fmt.Sprintf("%04x:%04x:%04x:%04x:%04x:%04x:%04x:%04x",
		uint16(h>>48), uint16(h>>32), uint16(h>>16), uint16(h),
		uint16(l>>48), uint16(l>>32), uint16(l>>16), uint16(l))
}

// MarshalText renders the GID for JSON and YAML reports.
func (g GID) MarshalText() ([]byte, error) {
	return []byte(g.String()), nil
}
