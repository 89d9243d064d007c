package sa

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/tturner/sadecode/internal/datagram"
)

// SA attribute identifiers.
const (
	AttrNotice           uint16 = 0x0002
	AttrNodeRecord       uint16 = 0x0011
	AttrPortInfoRecord   uint16 = 0x0012
	AttrSC2SCRecord      uint16 = 0x0013
	AttrSwitchInfoRecord uint16 = 0x0014
	AttrLFTRecord        uint16 = 0x0015
	AttrMFTRecord        uint16 = 0x0017
	AttrSMInfoRecord     uint16 = 0x0018
	AttrLinkRecord       uint16 = 0x0020
	AttrPKeyTableRecord  uint16 = 0x0033
	AttrPathRecord       uint16 = 0x0035
	AttrVLArbTableRecord uint16 = 0x0036
	AttrTraceRecord      uint16 = 0x0039
	AttrSL2SCRecord      uint16 = 0x0080
	AttrSC2SLRecord      uint16 = 0x0081
	AttrSC2VLntRecord    uint16 = 0x0082
	AttrSC2VLtRecord     uint16 = 0x0083
	AttrSC2VLrRecord     uint16 = 0x0085
	AttrCableInfoRecord  uint16 = 0x0095
)

// AttributeOffsetUnit is the size of one SA AttributeOffset unit.
const AttributeOffsetUnit = 8

// Codec decodes one attribute or structure. ID is zero for structures that
// are not SA attributes themselves, such as a cable page.
type Codec struct {
	ID   uint16
	Name string
	// Len is the fixed length; for variable codecs the minimum length.
	Len      int
	Variable bool
	decode   func(d Decoder, buf []byte, offset, msgLen int) (any, error)
}

// Decode decodes one instance at offset. msgLen sizes the variable tail and
// is ignored by fixed codecs.
func (c Codec) Decode(d Decoder, buf []byte, offset, msgLen int) (any, error) {
	return c.decode(d, buf, offset, msgLen)
}

// IsAttribute reports whether the codec has an SA attribute id.
func (c Codec) IsAttribute() bool {
	return c.ID != 0
}

func (c Codec) String() string {
	if c.ID == 0 {
		return c.Name
	}
	return fmt.Sprintf("%s (0x%04X)", c.Name, c.ID)
}

func fixed[T any](id uint16, name string, length int, fn func(Decoder, []byte, int) (T, error)) Codec {
	return Codec{
		ID:   id,
		Name: name,
		Len:  length,
		decode: func(d Decoder, buf []byte, offset, _ int) (any, error) {
			return fn(d, buf, offset)
		},
	}
}

func variable[T any](id uint16, name string, minLen int, fn func(Decoder, []byte, int, int) (T, error)) Codec {
	return Codec{
		ID:       id,
		Name:     name,
		Len:      minLen,
		Variable: true,
		decode: func(d Decoder, buf []byte, offset, msgLen int) (any, error) {
			return fn(d, buf, offset, msgLen)
		},
	}
}

var codecs = []Codec{
	variable(AttrNotice, "Notice", NoticeHeaderLen, Decoder.Notice),
	variable(AttrNodeRecord, "NodeRecord", NodeRecordFixedLen, Decoder.NodeRecord),
	fixed(AttrPortInfoRecord, "PortInfoRecord", PortInfoRecordLen, Decoder.PortInfoRecord),
	fixed(AttrSC2SCRecord, "SC2SCRecord", SCMapRecordLen, Decoder.SC2SCRecord),
	fixed(AttrSwitchInfoRecord, "SwitchInfoRecord", SwitchInfoRecordLen, Decoder.SwitchInfoRecord),
	fixed(AttrLFTRecord, "LFTRecord", LFTRecordLen, Decoder.LFTRecord),
	fixed(AttrMFTRecord, "MFTRecord", MFTRecordLen, Decoder.MFTRecord),
	fixed(AttrSMInfoRecord, "SMInfoRecord", SMInfoRecordLen, Decoder.SMInfoRecord),
	fixed(AttrLinkRecord, "LinkRecord", LinkRecordLen, Decoder.LinkRecord),
	fixed(AttrPKeyTableRecord, "PKeyTableRecord", PKeyTableRecordLen, Decoder.PKeyTableRecord),
	fixed(AttrPathRecord, "PathRecord", PathRecordLen, Decoder.PathRecord),
	fixed(AttrVLArbTableRecord, "VLArbTableRecord", VLArbTableRecordLen, Decoder.VLArbTableRecord),
	fixed(AttrTraceRecord, "TraceRecord", TraceRecordLen, Decoder.TraceRecord),
	fixed(AttrSL2SCRecord, "SL2SCRecord", SCMapRecordLen, Decoder.SL2SCRecord),
	fixed(AttrSC2SLRecord, "SC2SLRecord", SCMapRecordLen, Decoder.SC2SLRecord),
	fixed(AttrSC2VLntRecord, "SC2VLntRecord", SCMapRecordLen, Decoder.SC2VLRecord),
	fixed(AttrSC2VLtRecord, "SC2VLtRecord", SCMapRecordLen, Decoder.SC2VLRecord),
	fixed(AttrSC2VLrRecord, "SC2VLrRecord", SCMapRecordLen, Decoder.SC2VLRecord),
	fixed(AttrCableInfoRecord, "CableInfoRecord", CableInfoRecordLen, Decoder.CableInfoRecord),

	fixed(0, "NodeInfo", NodeInfoLen, Decoder.NodeInfo),
	fixed(0, "PortInfo", PortInfoLen, Decoder.PortInfo),
	fixed(0, "SwitchInfo", SwitchInfoLen, Decoder.SwitchInfo),
	fixed(0, "GID", GIDLen, Decoder.GID),
	fixed(0, "CableInfo", CableInfoStdLen, Decoder.CableInfo),
	fixed(0, "DDCableInfo", DDCableInfoLen, Decoder.DDCableInfo),
}

var (
	codecsByID   = make(map[uint16]Codec)
	codecsByName = make(map[string]Codec)
)

func init() {
	for _, c := range codecs {
		if c.ID != 0 {
			codecsByID[c.ID] = c
		}
		codecsByName[strings.ToLower(c.Name)] = c
	}
}

// Codecs returns every codec, attributes first in id order.
func Codecs() []Codec {
	out := append([]Codec(nil), codecs...)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.IsAttribute() != b.IsAttribute() {
			return a.IsAttribute()
		}
		if a.IsAttribute() {
			return a.ID < b.ID
		}
		return false
	})
	return out
}

// Lookup returns the codec for an attribute id.
func Lookup(id uint16) (Codec, bool) {
	c, ok := codecsByID[id]
	return c, ok
}

// LookupName returns the codec with the given name, ignoring case.
func LookupName(name string) (Codec, bool) {
	c, ok := codecsByName[strings.ToLower(strings.TrimSpace(name))]
	return c, ok
}

// ParseAttr resolves a codec name or a numeric attribute id such as 0x0011.
func ParseAttr(s string) (Codec, error) {
	if c, ok := LookupName(s); ok {
		return c, nil
	}
	id, err := strconv.ParseUint(strings.TrimSpace(s), 0, 16)
	if err != nil {
		return Codec{}, fmt.Errorf("unknown attribute %q", s)
	}
	c, ok := Lookup(uint16(id))
	if !ok {
		return Codec{}, fmt.Errorf("unsupported attribute id 0x%04X", id)
	}
	return c, nil
}

// TableStride returns the record stride of a GetTable payload. attrOffset
// is the SA AttributeOffset in 8-byte units; zero means the fixed length
// rounded up to 8 bytes.
func TableStride(c Codec, attrOffset uint16) (int, error) {
	stride := int(attrOffset) * AttributeOffsetUnit
	if stride == 0 {
		if c.Variable {
			return 0, fmt.Errorf("%s: attribute offset required for variable records", c.Name)
		}
		stride = (c.Len + AttributeOffsetUnit - 1) / AttributeOffsetUnit * AttributeOffsetUnit
	}
	if stride < c.Len {
		return 0, &datagram.SizeMismatchError{Field: c.Name + " stride", Expected: c.Len, Actual: stride}
	}
	return stride, nil
}

// TableOffsets returns the offset of every record in a payload of n bytes.
// Trailing bytes shorter than the codec's length are padding.
func TableOffsets(c Codec, n int, attrOffset uint16) ([]int, int, error) {
	stride, err := TableStride(c, attrOffset)
	if err != nil {
		return nil, 0, err
	}
	var offsets []int
	for off := 0; n-off >= c.Len; off += stride {
		offsets = append(offsets, off)
	}
	return offsets, stride, nil
}

// DecodeTable decodes every record of a GetTable response payload.
func DecodeTable(c Codec, d Decoder, payload []byte, attrOffset uint16) ([]any, error) {
	offsets, stride, err := TableOffsets(c, len(payload), attrOffset)
	if err != nil {
		return nil, err
	}
	out := make([]any, 0, len(offsets))
	for i, off := range offsets {
		rec, err := c.Decode(d, payload, off, TableMsgLen(len(payload), off, stride))
		if err != nil {
			return out, fmt.Errorf("%s record %d: %w", c.Name, i, err)
		}
		out = append(out, rec)
	}
	return out, nil
}

// TableMsgLen is the message length of the record at off: one stride, or
// what is left of the payload.
func TableMsgLen(n, off, stride int) int {
	if rest := n - off; rest < stride {
		return rest
	}
	return stride
}
